// Copyright (c) 2014 Conformal Systems LLC <info@conformal.com>
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"sync"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/coredeposit/corewallet/txcache"
)

// Observer is the interface exposed to embedders, mirroring spec.md §6's
// observer surface exactly.
type Observer interface {
	InitCompleted(err error)
	SaveCompleted(err error)
	SynchronizationProgressUpdated(current, total uint32)
	SynchronizationCompleted(err error)
	ActualBalanceUpdated(v btcutil.Amount)
	PendingBalanceUpdated(v btcutil.Amount)
	ActualDepositBalanceUpdated(v btcutil.Amount)
	PendingDepositBalanceUpdated(v btcutil.Amount)
	TransactionUpdated(id txcache.TransactionID)
	DepositsUpdated(ids []txcache.DepositID)
}

// NoopObserver implements Observer with empty methods, so embedders can
// embed it and override only what they care about.
type NoopObserver struct{}

func (NoopObserver) InitCompleted(err error)                             {}
func (NoopObserver) SaveCompleted(err error)                             {}
func (NoopObserver) SynchronizationProgressUpdated(current, total uint32) {}
func (NoopObserver) SynchronizationCompleted(err error)                  {}
func (NoopObserver) ActualBalanceUpdated(v btcutil.Amount)               {}
func (NoopObserver) PendingBalanceUpdated(v btcutil.Amount)              {}
func (NoopObserver) ActualDepositBalanceUpdated(v btcutil.Amount)        {}
func (NoopObserver) PendingDepositBalanceUpdated(v btcutil.Amount)       {}
func (NoopObserver) TransactionUpdated(id txcache.TransactionID)         {}
func (NoopObserver) DepositsUpdated(ids []txcache.DepositID)             {}

// observerRegistry supports concurrent add/remove/notify. notify iterates a
// snapshot of the observer list taken under its own lock (copy-on-notify),
// so an observer may add or remove others during delivery without
// deadlocking or racing the slice.
type observerRegistry struct {
	mu        sync.Mutex
	observers []Observer
}

func (r *observerRegistry) add(o Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, o)
}

func (r *observerRegistry) remove(o Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.observers {
		if existing == o {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

func (r *observerRegistry) snapshot() []Observer {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Observer, len(r.observers))
	copy(out, r.observers)
	return out
}

// notify calls fn with each currently-registered observer, in insertion
// order, without holding the registry lock during delivery.
func (r *observerRegistry) notify(fn func(Observer)) {
	for _, o := range r.snapshot() {
		fn(o)
	}
}
