// Copyright (c) 2014 Conformal Systems LLC <info@conformal.com>
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txcache

import (
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/lightningnetwork/lnd/clock"
	"github.com/stretchr/testify/require"

	"github.com/coredeposit/corewallet/chainsync"
)

type stubCurrency struct {
	interest btcutil.Amount
	liveTime time.Duration
}

func (s stubCurrency) CalculateInterest(amount btcutil.Amount, term uint32, height int32) btcutil.Amount {
	return s.interest
}
func (s stubCurrency) MempoolTxLiveTime() time.Duration { return s.liveTime }
func (s stubCurrency) GenesisTimestamp() int64          { return 0 }

func hashFromByte(b byte) chainhash.Hash {
	var h chainhash.Hash
	h[0] = b
	return h
}

func TestOnTransactionUpdatedInsertsIncoming(t *testing.T) {
	c := New()

	hash := hashFromByte(1)
	events := c.OnTransactionUpdated(chainsync.TransactionInformation{
		TransactionHash: hash,
		BlockHeight:     100,
		Timestamp:       1000,
	}, 5000, nil, nil)

	require.Len(t, events, 1)
	require.IsType(t, TransactionUpdated{}, events[0])

	tx, err := c.GetTransactionByHash(hash)
	require.NoError(t, err)
	require.Equal(t, btcutil.Amount(5000), tx.TotalAmount)
	require.True(t, tx.Confirmed())
}

func TestOnTransactionUpdatedIgnoresUnknownOutgoing(t *testing.T) {
	c := New()

	events := c.OnTransactionUpdated(chainsync.TransactionInformation{
		TransactionHash: hashFromByte(2),
	}, -500, nil, nil)

	require.Nil(t, events)
	require.Equal(t, 0, c.GetTransactionCount())
}

func TestDepositLifecycle(t *testing.T) {
	c := New()

	createHash := hashFromByte(3)
	outPoint := wire.OutPoint{Hash: createHash, Index: 0}

	c.OnTransactionUpdated(chainsync.TransactionInformation{
		TransactionHash: createHash,
		BlockHeight:     10,
	}, 1000, []chainsync.TransactionOutputInformation{
		{OutPoint: outPoint, Amount: 1000, Term: 100, Locked: true},
	}, nil)

	require.Equal(t, 1, c.GetDepositCount())

	locked := c.LockDeposits([]chainsync.TransactionOutputInformation{{OutPoint: outPoint}})
	require.Empty(t, locked, "already locked, no change expected")

	unlocked := c.UnlockDeposits([]chainsync.TransactionOutputInformation{{OutPoint: outPoint}})
	require.Len(t, unlocked, 1)

	dep, err := c.GetDeposit(unlocked[0])
	require.NoError(t, err)
	require.False(t, dep.IsLocked)

	// The wallet registers its own withdrawal before the synchroniser
	// reports it; unknown outgoing transactions are never inserted.
	spendHash := hashFromByte(4)
	c.RegisterUnconfirmed(spendHash, -1000, 0, 0, nil, nil, 0, PaymentID{}, false)
	events := c.OnTransactionUpdated(chainsync.TransactionInformation{
		TransactionHash: spendHash,
		BlockHeight:     -1,
	}, -1000, nil, []chainsync.TransactionOutputInformation{
		{OutPoint: outPoint},
	})

	var sawDepositsUpdated bool
	for _, e := range events {
		if du, ok := e.(DepositsUpdated); ok {
			sawDepositsUpdated = true
			require.Contains(t, du.IDs, dep.ID)
		}
	}
	require.True(t, sawDepositsUpdated)

	dep, err = c.GetDeposit(dep.ID)
	require.NoError(t, err)
	require.True(t, dep.HasSpendingTx)
}

func TestOnTransactionDeletedOrphansDeposit(t *testing.T) {
	c := New()

	createHash := hashFromByte(5)
	outPoint := wire.OutPoint{Hash: createHash, Index: 0}
	c.OnTransactionUpdated(chainsync.TransactionInformation{TransactionHash: createHash, BlockHeight: 1}, 500,
		[]chainsync.TransactionOutputInformation{{OutPoint: outPoint, Amount: 500, Term: 10}}, nil)

	spendHash := hashFromByte(6)
	c.RegisterUnconfirmed(spendHash, -500, 0, 0, nil, nil, 0, PaymentID{}, false)
	c.OnTransactionUpdated(chainsync.TransactionInformation{TransactionHash: spendHash, BlockHeight: -1}, -500,
		nil, []chainsync.TransactionOutputInformation{{OutPoint: outPoint}})

	events, ok := c.OnTransactionDeleted(spendHash)
	require.True(t, ok)
	require.NotEmpty(t, events)

	dep, err := c.GetDeposit(0)
	require.NoError(t, err)
	require.False(t, dep.HasSpendingTx)

	_, ok = c.OnTransactionDeleted(hashFromByte(99))
	require.False(t, ok)
}

func TestDeleteOutdatedTransactionsByTTL(t *testing.T) {
	c := New()

	id := c.RegisterUnconfirmed(hashFromByte(7), -1000, 10, 1010, nil, nil, 50, PaymentID{}, false)

	outdated := c.DeleteOutdatedTransactions(49, stubCurrency{liveTime: time.Hour})
	require.Empty(t, outdated)

	outdated = c.DeleteOutdatedTransactions(50, stubCurrency{liveTime: time.Hour})
	require.Equal(t, []TransactionID{id}, outdated)

	tx, err := c.GetTransaction(id)
	require.NoError(t, err)
	require.True(t, tx.IsDeleted)
}

func TestDeleteOutdatedTransactionsByMempoolLiveTime(t *testing.T) {
	start := time.Unix(1_000_000, 0)
	testClock := clock.NewTestClock(start)
	c := NewWithClock(testClock)

	id := c.RegisterUnconfirmed(hashFromByte(8), -1000, 10, 1010, nil, nil, 0, PaymentID{}, false)

	outdated := c.DeleteOutdatedTransactions(0, stubCurrency{liveTime: time.Minute})
	require.Empty(t, outdated)

	testClock.SetTime(start.Add(2 * time.Minute))
	outdated = c.DeleteOutdatedTransactions(0, stubCurrency{liveTime: time.Minute})
	require.Equal(t, []TransactionID{id}, outdated)
}

func TestUnconfirmedBalanceSummations(t *testing.T) {
	c := New()

	c.RegisterUnconfirmed(hashFromByte(9), -2000, 100, 2100, nil, nil, 0, PaymentID{}, false)

	require.Equal(t, btcutil.Amount(2100), c.UnconfirmedOutsAmount())
	require.Equal(t, btcutil.Amount(2000), c.UnconfirmedTransactionsAmount())
}

func TestPaymentIndex(t *testing.T) {
	c := New()

	var pid PaymentID
	pid[0] = 0xAA

	hash := hashFromByte(10)
	c.OnTransactionUpdated(chainsync.TransactionInformation{
		TransactionHash: hash,
		PaymentID:       [32]byte(pid),
		HasPaymentID:    true,
	}, 100, nil, nil)

	results := c.GetTransactionsByPaymentIDs([]PaymentID{pid, {0xBB}})
	require.Len(t, results, 1)
	require.Equal(t, pid, results[0].PaymentID)
	require.Len(t, results[0].TransactionIDs, 1)
}

func TestAddTransferUnknownTransaction(t *testing.T) {
	c := New()
	_, err := c.AddTransfer(999, "addr", 100)
	require.Error(t, err)

	var cacheErr CacheError
	require.ErrorAs(t, err, &cacheErr)
	require.Equal(t, ErrTransactionNotFound, cacheErr.ErrorCode)
}
