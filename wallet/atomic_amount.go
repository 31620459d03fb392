// Copyright (c) 2014 Conformal Systems LLC <info@conformal.com>
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"sync/atomic"

	"github.com/btcsuite/btcd/btcutil"
)

// atomicAmount is a btcutil.Amount that can be read and swapped without
// holding the façade mutex, used for the last-notified balance trackers.
type atomicAmount struct {
	v atomic.Int64
}

func (a *atomicAmount) store(v btcutil.Amount) {
	a.v.Store(int64(v))
}

func (a *atomicAmount) swap(v btcutil.Amount) btcutil.Amount {
	return btcutil.Amount(a.v.Swap(int64(v)))
}
