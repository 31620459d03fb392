// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainsync defines the boundary between the wallet core and its
// external collaborators: the blockchain synchroniser that tracks an
// account's outputs and spends, the node used to submit transactions, and
// the currency parameters that govern deposit interest. The core wallet
// only ever talks to these through the interfaces declared here, the same
// way the teacher's chain.Interface decouples the wallet from a specific
// chain backend (btcd RPC, bitcoind, neutrino, ...).
package chainsync

import (
	"io"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// OutputFlags is a bitmask selecting which outputs a TransfersContainer
// query should consider, mirroring ITransfersContainer's flags.
type OutputFlags uint32

const (
	IncludeKeyUnlocked OutputFlags = 1 << iota
	IncludeKeyNotUnlocked
	IncludeTypeDeposit
	IncludeTypeKey
	IncludeStateLocked
	IncludeStateSoftLocked
	IncludeStateUnlocked

	IncludeStateAll = IncludeStateLocked | IncludeStateSoftLocked | IncludeStateUnlocked
)

// Has reports whether all bits of want are set in f.
func (f OutputFlags) Has(want OutputFlags) bool {
	return f&want == want
}

// TransactionInformation describes the confirmation status of a
// transaction as known by the transfers container.
type TransactionInformation struct {
	TransactionHash chainhash.Hash
	BlockHeight     int32 // -1 if unconfirmed
	Timestamp       int64
	PaymentID       [32]byte
	HasPaymentID    bool
}

// Confirmed reports whether the transaction has been included in a block.
func (ti TransactionInformation) Confirmed() bool {
	return ti.BlockHeight >= 0
}

// TransactionOutputInformation describes a single output owned by the
// subscribed account, as returned by TransfersContainer queries. It plays
// the role of both a spendable UTXO (for coin selection, via txbuild) and
// a deposit output (when Term != 0).
type TransactionOutputInformation struct {
	OutPoint        wire.OutPoint
	PkScript        []byte
	Amount          btcutil.Amount
	TransactionHash chainhash.Hash
	Term            uint32 // 0 for ordinary outputs, lock term in blocks for deposits
	Locked          bool
	SoftLocked      bool
}

// AccountSubscription describes the account a Synchroniser should track.
type AccountSubscription struct {
	Address               string
	SpendPublicKey         [33]byte
	ViewPublicKey          [33]byte
	SyncStartHeight        int32
	SyncStartTimestamp     int64
	TransactionSpendableAge uint32
}

// TransfersObserver receives notifications about the subscribed account's
// outputs and spends. It is the Go analogue of ITransfersObserver.
type TransfersObserver interface {
	OnTransactionUpdated(hash chainhash.Hash)
	OnTransactionDeleted(hash chainhash.Hash)
	OnTransfersLocked(outs []TransactionOutputInformation)
	OnTransfersUnlocked(outs []TransactionOutputInformation)
}

// TransfersContainer is the authoritative, synchroniser-owned view of a
// single account's outputs. The core never mutates it directly; it only
// reads it under its own mutex in response to a TransfersObserver callback.
type TransfersContainer interface {
	Balance(flags OutputFlags) btcutil.Amount
	Outputs(flags OutputFlags) []TransactionOutputInformation
	TransactionInformation(hash chainhash.Hash) (info TransactionInformation, amountIn, amountOut btcutil.Amount, ok bool)
	TransactionOutputs(hash chainhash.Hash, flags OutputFlags) []TransactionOutputInformation
	TransactionInputs(hash chainhash.Hash, flags OutputFlags) []TransactionOutputInformation
}

// SubscriptionHandle is returned by Synchroniser.AddSubscription and lets
// the wallet reach the container and register itself as an observer.
type SubscriptionHandle interface {
	Container() TransfersContainer
	AddObserver(o TransfersObserver)
	RemoveObserver(o TransfersObserver)
}

// Synchroniser is the blockchain synchroniser collaborator: it watches the
// chain on its own thread, maintains the TransfersContainer for each
// subscribed account, and reports progress/completion.
type Synchroniser interface {
	AddSubscription(sub AccountSubscription) (SubscriptionHandle, error)
	RemoveSubscription(address string) error
	AddObserver(o ProgressObserver)
	RemoveObserver(o ProgressObserver)
	Start() error
	Stop()
	Save(w io.Writer) error
	Load(r io.Reader) error
}

// ProgressObserver receives synchronisation progress/completion events
// from a Synchroniser. Unlike TransfersObserver, which is scoped to a
// single subscription, this is registered against the Synchroniser itself.
type ProgressObserver interface {
	SynchronizationProgressUpdated(current, total uint32)
	SynchronizationCompleted(err error)
}

// ErrInterrupted is reported by a Synchroniser's SynchronizationCompleted
// when synchronisation was interrupted by Stop, rather than failing. The
// wallet core swallows this value instead of forwarding it to observers.
var ErrInterrupted = errInterrupted{}

type errInterrupted struct{}

func (errInterrupted) Error() string { return "synchronization interrupted" }

// NodeClient is the opaque RPC node collaborator used to submit
// transactions and learn the current chain height for TTL comparisons.
type NodeClient interface {
	SendRawTransaction(tx *wire.MsgTx) (chainhash.Hash, error)
	GetBlockCount() (int32, error)
}

// Currency provides the parameters the core needs to compute deposit
// interest and mempool expiry, without pulling in a concrete currency's
// full parameter table.
type Currency interface {
	// CalculateInterest returns the interest accrued by a deposit of
	// amount, locked for term blocks, given the block height at which
	// the deposit-creating transaction was confirmed.
	CalculateInterest(amount btcutil.Amount, term uint32, height int32) btcutil.Amount

	// MempoolTxLiveTime bounds how long an unconfirmed transaction with
	// no TTL may remain in the cache before being considered outdated.
	MempoolTxLiveTime() time.Duration

	// GenesisTimestamp is used as a floor for the synchronisation start
	// timestamp derived from an account's creation time.
	GenesisTimestamp() int64
}
