// Copyright (c) 2014 Conformal Systems LLC <info@conformal.com>
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"github.com/btcsuite/btcd/btcutil"

	"github.com/coredeposit/corewallet/chainsync"
	"github.com/coredeposit/corewallet/txcache"
)

// computeActualBalance implements spec.md §4.3's actual-balance formula.
func computeActualBalance(transfers chainsync.TransfersContainer, cache *txcache.Cache) btcutil.Amount {
	return transfers.Balance(chainsync.IncludeTypeKey|chainsync.IncludeKeyUnlocked) -
		cache.UnconfirmedOutsAmount()
}

// computePendingBalance implements spec.md §4.3's pending-balance formula.
func computePendingBalance(transfers chainsync.TransfersContainer, cache *txcache.Cache,
	currency chainsync.Currency) btcutil.Amount {

	return transfers.Balance(chainsync.IncludeTypeKey|chainsync.IncludeKeyNotUnlocked) +
		(cache.UnconfirmedOutsAmount() - cache.UnconfirmedTransactionsAmount()) +
		cache.CountUnconfirmedSpentDepositsProfit(currency)
}

// computeActualDepositBalance implements spec.md §4.3's formula for the
// unlocked deposit balance, principal plus accrued interest.
func computeActualDepositBalance(transfers chainsync.TransfersContainer, cache *txcache.Cache,
	currency chainsync.Currency) btcutil.Amount {

	sum := sumDepositOutputsWithInterest(transfers, currency, chainsync.IncludeTypeDeposit|chainsync.IncludeStateUnlocked)
	return sum - cache.CountUnconfirmedSpentDepositsTotalAmount()
}

// computePendingDepositBalance implements spec.md §4.3's formula for the
// locked/soft-locked deposit balance, principal plus accrued interest.
func computePendingDepositBalance(transfers chainsync.TransfersContainer, cache *txcache.Cache,
	currency chainsync.Currency) btcutil.Amount {

	sum := sumDepositOutputsWithInterest(transfers, currency,
		chainsync.IncludeTypeDeposit|chainsync.IncludeStateLocked|chainsync.IncludeStateSoftLocked)
	return sum + cache.CountUnconfirmedCreatedDepositsSum()
}

func sumDepositOutputsWithInterest(transfers chainsync.TransfersContainer, currency chainsync.Currency,
	flags chainsync.OutputFlags) btcutil.Amount {

	var total btcutil.Amount
	for _, out := range transfers.Outputs(flags) {
		info, _, _, ok := transfers.TransactionInformation(out.TransactionHash)
		if !ok {
			continue
		}
		total += out.Amount + currency.CalculateInterest(out.Amount, out.Term, info.BlockHeight)
	}
	return total
}

// lastNotified tracks, per balance axis, the most recently emitted value so
// the façade can emit only on change (spec.md §4.3's "atomically exchange;
// emit if different" rule).
type lastNotified struct {
	actual        atomicAmount
	pending       atomicAmount
	actualDeposit atomicAmount
	pendingDeposit atomicAmount
}

func (l *lastNotified) reset() {
	l.actual.store(0)
	l.pending.store(0)
	l.actualDeposit.store(0)
	l.pendingDeposit.store(0)
}

// exchangeIfChanged stores v into slot and reports whether it differs from
// the previously stored value.
func exchangeIfChanged(slot *atomicAmount, v btcutil.Amount) bool {
	old := slot.swap(v)
	return old != v
}
