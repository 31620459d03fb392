// Copyright (c) 2014 Conformal Systems LLC <info@conformal.com>
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txcache

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// TransactionID, TransferID and DepositID are dense, non-negative
// identifiers assigned in insertion order by their owning Cache. They are
// never reused, even across deletions.
type TransactionID uint64
type TransferID uint64
type DepositID uint64

// Direction classifies a Transaction by the sign of its net amount.
type Direction int

const (
	DirectionIncoming Direction = iota
	DirectionOutgoing
)

// PaymentID is the 32-byte payment identifier optionally carried by a
// transaction's extra payload.
type PaymentID [32]byte

// Transaction is a single cache entry: a transaction known to the wallet,
// either because it was observed by the synchroniser or because the wallet
// itself created it and is waiting for it to confirm.
type Transaction struct {
	ID              TransactionID
	Hash            chainhash.Hash
	Direction       Direction
	TotalAmount     btcutil.Amount // signed: negative for outgoing
	Fee             btcutil.Amount
	BlockHeight     int32 // -1 while unconfirmed
	Timestamp       int64
	Extra           []byte
	Messages        []string
	TTL             int32 // absolute height; 0 means "no explicit TTL"
	TransferIDs     []TransferID
	DepositIDs      []DepositID
	PaymentID       PaymentID
	HasPaymentID    bool
	IsDeleted       bool
	FirstSeen       int64 // unix time the cache learned of this tx, for MempoolTxLiveTime; must survive Snapshot/Restore

	// InputsAmount is the total value of outputs this transaction spends
	// as inputs. Populated for transactions the wallet itself created
	// (see wallet's request engine); zero for transactions only observed
	// via OnTransactionUpdated. Used by UnconfirmedOutsAmount.
	InputsAmount btcutil.Amount
}

// Confirmed reports whether the transaction has a known block height.
func (t *Transaction) Confirmed() bool {
	return t.BlockHeight >= 0
}

// Transfer is a single recipient line item belonging to a Transaction.
type Transfer struct {
	ID            TransferID
	TransactionID TransactionID
	Address       string
	Amount        btcutil.Amount
}

// Deposit is a term-locked output, created by one transaction and
// (eventually) spent by another.
type Deposit struct {
	ID            DepositID
	OutPoint      wire.OutPoint
	Term          uint32
	Amount        btcutil.Amount
	CreatingTx    TransactionID
	SpendingTx    TransactionID // meaningful only if HasSpendingTx
	HasSpendingTx bool
	IsLocked      bool
}

// PaymentTransactions pairs a payment id with the transactions that carry
// it, as returned by Cache.GetTransactionsByPaymentIDs.
type PaymentTransactions struct {
	PaymentID    PaymentID
	TransactionIDs []TransactionID
}
