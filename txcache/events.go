// Copyright (c) 2014 Conformal Systems LLC <info@conformal.com>
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txcache

// TransactionUpdated is emitted whenever a transaction is inserted or its
// confirmation status changes.
type TransactionUpdated struct {
	ID TransactionID
}

// TransactionDeleted is emitted by OnTransactionDeleted when the
// synchroniser drops a transaction. DeleteOutdatedTransactions returns the
// ids it marks deleted instead of emitting this event.
type TransactionDeleted struct {
	ID TransactionID
}

// DepositsUpdated is emitted whenever one or more deposits change state:
// created, spent, locked or unlocked.
type DepositsUpdated struct {
	IDs []DepositID
}
