// Copyright (c) 2014 Conformal Systems LLC <info@conformal.com>
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"github.com/btcsuite/btcd/btcutil"

	"github.com/coredeposit/corewallet/txcache"
)

// event is a queued notification, collected under the façade mutex and
// dispatched to observers only after the mutex is released. This is the Go
// rendering of spec.md §4.1's "collect into a local queue, release the
// mutex, drain the queue" discipline.
type event interface {
	dispatch(Observer)
}

type initCompletedEvent struct{ err error }

func (e initCompletedEvent) dispatch(o Observer) { o.InitCompleted(e.err) }

type saveCompletedEvent struct{ err error }

func (e saveCompletedEvent) dispatch(o Observer) { o.SaveCompleted(e.err) }

type syncProgressEvent struct{ current, total uint32 }

func (e syncProgressEvent) dispatch(o Observer) { o.SynchronizationProgressUpdated(e.current, e.total) }

type syncCompletedEvent struct{ err error }

func (e syncCompletedEvent) dispatch(o Observer) { o.SynchronizationCompleted(e.err) }

type actualBalanceEvent struct{ v btcutil.Amount }

func (e actualBalanceEvent) dispatch(o Observer) { o.ActualBalanceUpdated(e.v) }

type pendingBalanceEvent struct{ v btcutil.Amount }

func (e pendingBalanceEvent) dispatch(o Observer) { o.PendingBalanceUpdated(e.v) }

type actualDepositBalanceEvent struct{ v btcutil.Amount }

func (e actualDepositBalanceEvent) dispatch(o Observer) { o.ActualDepositBalanceUpdated(e.v) }

type pendingDepositBalanceEvent struct{ v btcutil.Amount }

func (e pendingDepositBalanceEvent) dispatch(o Observer) { o.PendingDepositBalanceUpdated(e.v) }

type transactionUpdatedEvent struct{ id txcache.TransactionID }

func (e transactionUpdatedEvent) dispatch(o Observer) { o.TransactionUpdated(e.id) }

type depositsUpdatedEvent struct{ ids []txcache.DepositID }

func (e depositsUpdatedEvent) dispatch(o Observer) { o.DepositsUpdated(e.ids) }

// cacheEventsToWalletEvents translates the events returned by txcache
// methods into the façade's own event envelope.
func cacheEventsToWalletEvents(cacheEvents []interface{}) []event {
	out := make([]event, 0, len(cacheEvents))
	for _, ce := range cacheEvents {
		switch v := ce.(type) {
		case txcache.TransactionUpdated:
			out = append(out, transactionUpdatedEvent{id: v.ID})
		case txcache.TransactionDeleted:
			// Surfaced to observers as a transaction update; spec.md's
			// observer surface has no distinct "deleted" notification.
			out = append(out, transactionUpdatedEvent{id: v.ID})
		case txcache.DepositsUpdated:
			out = append(out, depositsUpdatedEvent{ids: v.IDs})
		}
	}
	return out
}
