// Copyright (c) 2014 Conformal Systems LLC <info@conformal.com>
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txcache

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// GetTransactionCount returns the number of transactions ever recorded,
// including deleted ones.
func (c *Cache) GetTransactionCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.byID)
}

// GetTransferCount returns the number of transfers ever recorded.
func (c *Cache) GetTransferCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.transfers)
}

// GetDepositCount returns the number of deposits ever recorded.
func (c *Cache) GetDepositCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.deposits)
}

// GetTransaction looks up a transaction by id.
func (c *Cache) GetTransaction(id TransactionID) (Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx, ok := c.byID[id]
	if !ok {
		return Transaction{}, cacheError(ErrTransactionNotFound, "unknown transaction id", nil)
	}
	return *tx, nil
}

// GetTransactionByHash looks up a transaction by its hash.
func (c *Cache) GetTransactionByHash(hash chainhash.Hash) (Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx, ok := c.byHash[hash]
	if !ok {
		return Transaction{}, cacheError(ErrTransactionNotFound, "unknown transaction hash", nil)
	}
	return *tx, nil
}

// GetTransfer looks up a transfer by id.
func (c *Cache) GetTransfer(id TransferID) (Transfer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tr, ok := c.transfers[id]
	if !ok {
		return Transfer{}, cacheError(ErrTransferNotFound, "unknown transfer id", nil)
	}
	return *tr, nil
}

// GetDeposit looks up a deposit by id.
func (c *Cache) GetDeposit(id DepositID) (Deposit, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	dep, ok := c.deposits[id]
	if !ok {
		return Deposit{}, cacheError(ErrDepositNotFound, "unknown deposit id", nil)
	}
	return *dep, nil
}

// FindTransactionByTransferID returns the transaction that owns the named
// transfer.
func (c *Cache) FindTransactionByTransferID(id TransferID) (Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tr, ok := c.transfers[id]
	if !ok {
		return Transaction{}, cacheError(ErrTransferNotFound, "unknown transfer id", nil)
	}
	tx, ok := c.byID[tr.TransactionID]
	if !ok {
		return Transaction{}, cacheError(ErrTransactionNotFound, "dangling transfer", nil)
	}
	return *tx, nil
}

// GetTransactionsByPaymentIDs returns, for every requested payment id, the
// set of transactions that carry it. Unknown payment ids are simply
// omitted rather than reported as an error — absent in the original
// distillation, restored here since the cache already maintains the index
// needed to answer it cheaply.
func (c *Cache) GetTransactionsByPaymentIDs(ids []PaymentID) []PaymentTransactions {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]PaymentTransactions, 0, len(ids))
	for _, id := range ids {
		set, ok := c.paymentIndex[id]
		if !ok {
			continue
		}
		txIDs := make([]TransactionID, 0, len(set))
		for txID := range set {
			txIDs = append(txIDs, txID)
		}
		result = append(result, PaymentTransactions{PaymentID: id, TransactionIDs: txIDs})
	}
	return result
}
