// Copyright (c) 2014 Conformal Systems LLC <info@conformal.com>
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import "sync/atomic"

// WalletState is the façade's lifecycle state.
type WalletState int32

const (
	StateNotInitialized WalletState = iota
	StateLoading
	StateInitialized
	StateSaving
)

func (s WalletState) String() string {
	switch s {
	case StateNotInitialized:
		return "NOT_INITIALIZED"
	case StateLoading:
		return "LOADING"
	case StateInitialized:
		return "INITIALIZED"
	case StateSaving:
		return "SAVING"
	default:
		return "UNKNOWN"
	}
}

// stateHolder wraps an atomic int32 so WalletState can be read without
// holding the façade mutex, while all transitions still happen under it.
type stateHolder struct {
	v atomic.Int32
}

func (h *stateHolder) load() WalletState {
	return WalletState(h.v.Load())
}

func (h *stateHolder) store(s WalletState) {
	h.v.Store(int32(s))
}

// boolFlag is m_isStopping: an auxiliary flag orthogonal to WalletState,
// readable without the façade mutex so observer callbacks can short-circuit
// during teardown.
type boolFlag struct {
	v atomic.Bool
}

func (f *boolFlag) get() bool     { return f.v.Load() }
func (f *boolFlag) set(b bool)    { f.v.Store(b) }
