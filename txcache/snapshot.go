// Copyright (c) 2014 Conformal Systems LLC <info@conformal.com>
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txcache

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// Snapshot is a serialisable copy of a Cache's full contents: every
// transaction, transfer and deposit ever recorded, plus the id counters
// needed to keep new identifiers dense and non-reused after a reload. The
// wallet façade's serialiser gob-encodes this directly.
type Snapshot struct {
	Transactions      []Transaction
	Transfers         []Transfer
	Deposits          []Deposit
	NextTransactionID TransactionID
	NextTransferID    TransferID
	NextDepositID     DepositID
}

// Snapshot copies the cache's current contents out for serialisation.
func (c *Cache) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		NextTransactionID: c.nextTransactionID,
		NextTransferID:    c.nextTransferID,
		NextDepositID:     c.nextDepositID,
	}
	for _, tx := range c.byID {
		snap.Transactions = append(snap.Transactions, *tx)
	}
	for _, tr := range c.transfers {
		snap.Transfers = append(snap.Transfers, *tr)
	}
	for _, dep := range c.deposits {
		snap.Deposits = append(snap.Deposits, *dep)
	}
	return snap
}

// Restore replaces the cache's contents with snap's, rebuilding every
// index (by-hash, by-outpoint, payment id). Used by the façade's
// initAndLoad to reconstruct the cache from a "detailed" save.
func (c *Cache) Restore(snap Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.byHash = make(map[chainhash.Hash]*Transaction, len(snap.Transactions))
	c.byID = make(map[TransactionID]*Transaction, len(snap.Transactions))
	c.transfers = make(map[TransferID]*Transfer, len(snap.Transfers))
	c.deposits = make(map[DepositID]*Deposit, len(snap.Deposits))
	c.byOutPoint = make(map[string]DepositID, len(snap.Deposits))
	c.paymentIndex = make(map[PaymentID]map[TransactionID]struct{})

	for i := range snap.Transactions {
		tx := snap.Transactions[i]
		c.byID[tx.ID] = &tx
		c.byHash[tx.Hash] = &tx
		if tx.HasPaymentID {
			c.indexPaymentID(tx.PaymentID, tx.ID)
		}
	}
	for i := range snap.Transfers {
		tr := snap.Transfers[i]
		c.transfers[tr.ID] = &tr
	}
	for i := range snap.Deposits {
		dep := snap.Deposits[i]
		c.deposits[dep.ID] = &dep
		c.byOutPoint[outPointKey(dep.OutPoint)] = dep.ID
	}

	c.nextTransactionID = snap.NextTransactionID
	c.nextTransferID = snap.NextTransferID
	c.nextDepositID = snap.NextDepositID
}
