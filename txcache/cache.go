// Copyright (c) 2014 Conformal Systems LLC <info@conformal.com>
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txcache stores the wallet's view of its own transactions,
// transfers and term deposits, and reconciles it against updates reported
// by the blockchain synchroniser. It plays the role the teacher's wtxmgr
// plays for a UTXO wallet, adapted to the richer transaction/transfer/
// deposit model this wallet exposes to observers.
package txcache

import (
	"sync"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/lnd/clock"

	"github.com/coredeposit/corewallet/chainsync"
)

// Cache is the in-memory store of everything the wallet knows about its own
// transactions. Every method takes the Cache's own mutex, so single calls
// are safe for concurrent use; callers (the wallet façade) additionally
// serialize sequences of calls under their own mutex, the same discipline
// the teacher applies to wtxmgr.Store via walletdb transactions.
type Cache struct {
	mu sync.Mutex

	clock clock.Clock

	byHash map[chainhash.Hash]*Transaction
	byID   map[TransactionID]*Transaction
	nextTransactionID TransactionID

	transfers      map[TransferID]*Transfer
	nextTransferID TransferID

	deposits      map[DepositID]*Deposit
	byOutPoint    map[string]DepositID // wire.OutPoint.String() -> DepositID, for spend matching
	nextDepositID DepositID

	paymentIndex map[PaymentID]map[TransactionID]struct{}
}

// New returns an empty Cache using the system clock.
func New() *Cache {
	return NewWithClock(clock.NewDefaultClock())
}

// NewWithClock returns an empty Cache using the supplied clock, so tests can
// control the passage of time deterministically.
func NewWithClock(c clock.Clock) *Cache {
	return &Cache{
		clock:        c,
		byHash:       make(map[chainhash.Hash]*Transaction),
		byID:         make(map[TransactionID]*Transaction),
		transfers:    make(map[TransferID]*Transfer),
		deposits:     make(map[DepositID]*Deposit),
		byOutPoint:   make(map[string]DepositID),
		paymentIndex: make(map[PaymentID]map[TransactionID]struct{}),
	}
}

// OnTransactionUpdated performs an idempotent insert-or-update of the
// transaction identified by info.TransactionHash. netAmount is the signed
// value of the transaction from the wallet's point of view (positive for
// incoming, negative for outgoing). newDepositOutputs and spentDepositInputs
// describe deposit outputs created or spent by this transaction, as
// reported by the transfers container.
func (c *Cache) OnTransactionUpdated(info chainsync.TransactionInformation, netAmount btcutil.Amount,
	newDepositOutputs, spentDepositInputs []chainsync.TransactionOutputInformation) []interface{} {

	c.mu.Lock()
	defer c.mu.Unlock()

	var events []interface{}

	tx, known := c.byHash[info.TransactionHash]
	if !known {
		if netAmount <= 0 {
			// Outgoing transactions are only tracked once the wallet
			// itself registers them via RegisterUnconfirmed; an unknown
			// transaction reported by the synchroniser with netAmount <= 0
			// is not ours to originate here.
			return nil
		}
		tx = &Transaction{
			ID:          c.nextTransactionID,
			Hash:        info.TransactionHash,
			Direction:   DirectionIncoming,
			TotalAmount: netAmount,
			BlockHeight: info.BlockHeight,
			Timestamp:   info.Timestamp,
			FirstSeen:   c.clock.Now().Unix(),
		}
		if info.HasPaymentID {
			tx.PaymentID = PaymentID(info.PaymentID)
			tx.HasPaymentID = true
			c.indexPaymentID(tx.PaymentID, tx.ID)
		}
		c.nextTransactionID++
		c.byHash[tx.Hash] = tx
		c.byID[tx.ID] = tx
	} else {
		tx.BlockHeight = info.BlockHeight
		tx.Timestamp = info.Timestamp
	}

	events = append(events, TransactionUpdated{ID: tx.ID})

	var touchedDeposits []DepositID
	for _, out := range newDepositOutputs {
		if _, exists := c.byOutPoint[outPointKey(out.OutPoint)]; exists {
			continue
		}
		dep := &Deposit{
			ID:         c.nextDepositID,
			OutPoint:   out.OutPoint,
			Term:       out.Term,
			Amount:     out.Amount,
			CreatingTx: tx.ID,
			IsLocked:   out.Locked,
		}
		c.nextDepositID++
		c.deposits[dep.ID] = dep
		c.byOutPoint[outPointKey(out.OutPoint)] = dep.ID
		tx.DepositIDs = append(tx.DepositIDs, dep.ID)
		touchedDeposits = append(touchedDeposits, dep.ID)
	}

	for _, in := range spentDepositInputs {
		id, ok := c.byOutPoint[outPointKey(in.OutPoint)]
		if !ok {
			continue
		}
		dep := c.deposits[id]
		dep.SpendingTx = tx.ID
		dep.HasSpendingTx = true
		touchedDeposits = append(touchedDeposits, dep.ID)
	}

	if len(touchedDeposits) > 0 {
		events = append(events, DepositsUpdated{IDs: touchedDeposits})
	}

	return events
}

// OnTransactionDeleted marks the named transaction deleted, orphans the
// spent-by pointer of any deposit it was recorded as spending, and reports
// the deletion event. It reports ok=false if the hash is unknown.
func (c *Cache) OnTransactionDeleted(hash chainhash.Hash) ([]interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx, ok := c.byHash[hash]
	if !ok {
		return nil, false
	}

	tx.IsDeleted = true

	var touchedDeposits []DepositID
	for _, dep := range c.deposits {
		if dep.HasSpendingTx && dep.SpendingTx == tx.ID {
			dep.HasSpendingTx = false
			touchedDeposits = append(touchedDeposits, dep.ID)
		}
	}

	events := []interface{}{TransactionDeleted{ID: tx.ID}}
	if len(touchedDeposits) > 0 {
		events = append(events, DepositsUpdated{IDs: touchedDeposits})
	}
	return events, true
}

// LockDeposits flips IsLocked to true for every deposit whose creating
// output matches one of outputs, returning the affected deposit ids.
func (c *Cache) LockDeposits(outputs []chainsync.TransactionOutputInformation) []DepositID {
	return c.setDepositsLocked(outputs, true)
}

// UnlockDeposits flips IsLocked to false for every deposit whose creating
// output matches one of outputs, returning the affected deposit ids.
func (c *Cache) UnlockDeposits(outputs []chainsync.TransactionOutputInformation) []DepositID {
	return c.setDepositsLocked(outputs, false)
}

func (c *Cache) setDepositsLocked(outputs []chainsync.TransactionOutputInformation, locked bool) []DepositID {
	c.mu.Lock()
	defer c.mu.Unlock()

	var affected []DepositID
	for _, out := range outputs {
		id, ok := c.byOutPoint[outPointKey(out.OutPoint)]
		if !ok {
			continue
		}
		dep := c.deposits[id]
		if dep.IsLocked == locked {
			continue
		}
		dep.IsLocked = locked
		affected = append(affected, dep.ID)
	}
	return affected
}

// DeleteOutdatedTransactions marks as deleted, and returns the ids of,
// every unconfirmed transaction whose TTL height is at or below
// currentHeight, or — for transactions with no TTL set — whose age has
// reached currency.MempoolTxLiveTime(). Matches the teacher's "reap stale unmined
// transactions" sweep, generalised to this cache's own TTL field.
func (c *Cache) DeleteOutdatedTransactions(currentHeight int32, currency chainsync.Currency) []TransactionID {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now().Unix()
	liveTime := int64(currency.MempoolTxLiveTime().Seconds())

	var outdated []TransactionID
	for _, tx := range c.byID {
		if tx.Confirmed() || tx.IsDeleted {
			continue
		}
		switch {
		case tx.TTL != 0 && tx.TTL <= currentHeight:
		case tx.TTL == 0 && now-tx.FirstSeen >= liveTime:
		default:
			continue
		}
		tx.IsDeleted = true
		outdated = append(outdated, tx.ID)
	}
	if len(outdated) > 0 {
		log.Debugf("deleted %d outdated unconfirmed transactions at height %d", len(outdated), currentHeight)
	}
	return outdated
}

// RegisterUnconfirmed inserts a transaction the wallet itself created,
// prior to submission, and returns its id. A later OnTransactionUpdated
// call for the same hash updates this entry rather than inserting a new one.
func (c *Cache) RegisterUnconfirmed(hash chainhash.Hash, totalAmount, fee, inputsAmount btcutil.Amount,
	extra []byte, messages []string, ttl int32, paymentID PaymentID, hasPaymentID bool) TransactionID {

	c.mu.Lock()
	defer c.mu.Unlock()

	tx := &Transaction{
		ID:           c.nextTransactionID,
		Hash:         hash,
		Direction:    DirectionOutgoing,
		TotalAmount:  totalAmount,
		Fee:          fee,
		InputsAmount: inputsAmount,
		BlockHeight:  -1,
		Extra:        extra,
		Messages:     messages,
		TTL:          ttl,
		PaymentID:    paymentID,
		HasPaymentID: hasPaymentID,
		FirstSeen:    c.clock.Now().Unix(),
	}
	c.nextTransactionID++
	c.byHash[hash] = tx
	c.byID[tx.ID] = tx
	if hasPaymentID {
		c.indexPaymentID(paymentID, tx.ID)
	}
	return tx.ID
}

// AddTransfer appends a recipient line item to an existing transaction.
func (c *Cache) AddTransfer(txID TransactionID, address string, amount btcutil.Amount) (TransferID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx, ok := c.byID[txID]
	if !ok {
		return 0, cacheError(ErrTransactionNotFound, "add transfer: unknown transaction", nil)
	}

	tr := &Transfer{
		ID:            c.nextTransferID,
		TransactionID: txID,
		Address:       address,
		Amount:        amount,
	}
	c.nextTransferID++
	c.transfers[tr.ID] = tr
	tx.TransferIDs = append(tx.TransferIDs, tr.ID)
	return tr.ID, nil
}

func (c *Cache) indexPaymentID(id PaymentID, txID TransactionID) {
	set, ok := c.paymentIndex[id]
	if !ok {
		set = make(map[TransactionID]struct{})
		c.paymentIndex[id] = set
	}
	set[txID] = struct{}{}
}

func outPointKey(op wire.OutPoint) string {
	return op.String()
}
