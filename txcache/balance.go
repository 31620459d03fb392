// Copyright (c) 2014 Conformal Systems LLC <info@conformal.com>
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txcache

import (
	"github.com/btcsuite/btcd/btcutil"

	"github.com/coredeposit/corewallet/chainsync"
)

// CountUnconfirmedSpentDepositsTotalAmount sums the principal of every
// deposit whose spending transaction is known but not yet confirmed.
func (c *Cache) CountUnconfirmedSpentDepositsTotalAmount() btcutil.Amount {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total btcutil.Amount
	for _, dep := range c.deposits {
		if !dep.HasSpendingTx {
			continue
		}
		tx, ok := c.byID[dep.SpendingTx]
		if !ok || tx.IsDeleted || tx.Confirmed() {
			continue
		}
		total += dep.Amount
	}
	return total
}

// CountUnconfirmedSpentDepositsProfit sums the interest component (not the
// principal) accrued by every deposit whose spending transaction is known
// but not yet confirmed. Interest is computed against the height at which
// the deposit's creating transaction confirmed.
func (c *Cache) CountUnconfirmedSpentDepositsProfit(currency chainsync.Currency) btcutil.Amount {
	c.mu.Lock()
	defer c.mu.Unlock()

	var profit btcutil.Amount
	for _, dep := range c.deposits {
		if !dep.HasSpendingTx {
			continue
		}
		spendTx, ok := c.byID[dep.SpendingTx]
		if !ok || spendTx.IsDeleted || spendTx.Confirmed() {
			continue
		}
		createTx, ok := c.byID[dep.CreatingTx]
		if !ok {
			continue
		}
		profit += currency.CalculateInterest(dep.Amount, dep.Term, createTx.BlockHeight)
	}
	return profit
}

// CountUnconfirmedCreatedDepositsSum sums the principal of every deposit
// whose creating transaction is known but not yet confirmed.
func (c *Cache) CountUnconfirmedCreatedDepositsSum() btcutil.Amount {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total btcutil.Amount
	for _, dep := range c.deposits {
		tx, ok := c.byID[dep.CreatingTx]
		if !ok || tx.IsDeleted || tx.Confirmed() {
			continue
		}
		total += dep.Amount
	}
	return total
}

// UnconfirmedOutsAmount sums the value of outputs consumed as inputs by
// the wallet's own unconfirmed, non-deposit-spending, outgoing
// transactions. These outputs are typically still reported spendable by
// the transfers container until the spend confirms, so the balance
// calculator subtracts this sum from the container's unlocked balance.
func (c *Cache) UnconfirmedOutsAmount() btcutil.Amount {
	c.mu.Lock()
	defer c.mu.Unlock()

	spendsDeposit := make(map[TransactionID]bool)
	for _, dep := range c.deposits {
		if dep.HasSpendingTx {
			spendsDeposit[dep.SpendingTx] = true
		}
	}

	var total btcutil.Amount
	for _, tx := range c.byID {
		if tx.IsDeleted || tx.Confirmed() || tx.Direction != DirectionOutgoing || spendsDeposit[tx.ID] {
			continue
		}
		total += tx.InputsAmount
	}
	return total
}

// UnconfirmedTransactionsAmount sums the negated TotalAmount (the amount
// sent plus the fee) of the wallet's own unconfirmed outgoing transactions.
func (c *Cache) UnconfirmedTransactionsAmount() btcutil.Amount {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total btcutil.Amount
	for _, tx := range c.byID {
		if tx.IsDeleted || tx.Confirmed() || tx.Direction != DirectionOutgoing {
			continue
		}
		total += -tx.TotalAmount
	}
	return total
}
