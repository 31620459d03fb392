// Copyright (c) 2014 Conformal Systems LLC <info@conformal.com>
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"

	"github.com/coredeposit/corewallet/chainsync"
	"github.com/coredeposit/corewallet/txbuild"
	"github.com/coredeposit/corewallet/txcache"
)

// Callback is invoked by the façade's request dispatcher after a Request's
// perform step returns. It runs with the façade mutex held, populates the
// events and follow-up request to chain, and reports any error that should
// abort the chain.
type Callback func(w *Wallet) (events []event, next *Request, err error)

// Request encapsulates one round trip to the node collaborator plus the
// callback that interprets its result. A Callback may return a follow-up
// Request, which the dispatcher performs next, so one user-facing operation
// can span several round trips off the caller's thread. The send, deposit
// and withdraw requests built here are each a single round trip: their
// callbacks return no follow-up.
type Request struct {
	// Label names the request for diagnostics ("send", "deposit",
	// "withdraw"), logged at debug level when perform starts and ends.
	Label string

	perform func(node chainsync.NodeClient) error
	callback Callback
}

// run performs the request's network step. It does not touch the façade
// mutex; callers run it outside of any lock.
func (r *Request) run(node chainsync.NodeClient) error {
	log.Debugf("request %s: starting", r.Label)
	err := r.perform(node)
	if err != nil {
		log.Debugf("request %s: failed: %v", r.Label, err)
	} else {
		log.Debugf("request %s: completed", r.Label)
	}
	return err
}

// makeSendRequest drafts, assigns an id to, and registers in the cache an
// outgoing transaction paying transfers, then returns a Request whose
// execution submits it to the node. It is the Go rendering of spec.md
// §4.4's makeSendRequest factory.
func makeSendRequest(w *Wallet, outputs []chainsync.TransactionOutputInformation, transfers []txTransfer,
	fee btcutil.Amount, extra []byte, unlockTime uint32, messages []string, ttl int32) (
	txcache.TransactionID, []event, *Request, error) {

	txOuts := make([]*wire.TxOut, 0, len(transfers))
	for _, tr := range transfers {
		txOuts = append(txOuts, &wire.TxOut{Value: int64(tr.Amount), PkScript: tr.PkScript})
	}

	drafted, err := txbuild.SelectInputs(txOuts, outputs, fee, w.changeScript())
	if err != nil {
		return 0, nil, nil, walletError(ErrInternal, "select inputs for send", err)
	}

	signedTx, err := w.signTransaction(drafted.Tx, drafted.Inputs)
	if err != nil {
		return 0, nil, nil, walletError(ErrInternal, "sign send transaction", err)
	}

	var total btcutil.Amount
	for _, tr := range transfers {
		total += tr.Amount
	}

	hash := signedTx.TxHash()
	var paymentID txcache.PaymentID
	hasPaymentID := len(extra) >= len(paymentID)
	if hasPaymentID {
		copy(paymentID[:], extra)
	}

	txID := w.cache.RegisterUnconfirmed(hash, -(total + drafted.Fee), drafted.Fee,
		drafted.InputTotal, extra, messages, ttl, paymentID, hasPaymentID)

	for _, tr := range transfers {
		if _, err := w.cache.AddTransfer(txID, tr.Address, tr.Amount); err != nil {
			log.Warnf("send %v: add transfer: %v", txID, err)
		}
	}

	events := []event{transactionUpdatedEvent{id: txID}}

	req := &Request{
		Label:   "send",
		perform: func(node chainsync.NodeClient) error { _, err := node.SendRawTransaction(signedTx); return err },
		callback: func(w *Wallet) ([]event, *Request, error) {
			return nil, nil, nil
		},
	}

	return txID, events, req, nil
}

// makeDepositRequest behaves like makeSendRequest but drafts a single
// output locked for term blocks, paid to the wallet's own deposit script.
func makeDepositRequest(w *Wallet, outputs []chainsync.TransactionOutputInformation,
	term uint32, amount, fee btcutil.Amount) (txcache.TransactionID, []event, *Request, error) {

	depositScript := w.depositScript(term)
	txOuts := []*wire.TxOut{{Value: int64(amount), PkScript: depositScript}}

	drafted, err := txbuild.SelectInputs(txOuts, outputs, fee, w.changeScript())
	if err != nil {
		return 0, nil, nil, walletError(ErrInternal, "select inputs for deposit", err)
	}

	signedTx, err := w.signTransaction(drafted.Tx, drafted.Inputs)
	if err != nil {
		return 0, nil, nil, walletError(ErrInternal, "sign deposit transaction", err)
	}

	hash := signedTx.TxHash()
	txID := w.cache.RegisterUnconfirmed(hash, -(amount + drafted.Fee), drafted.Fee,
		drafted.InputTotal, nil, nil, 0, txcache.PaymentID{}, false)

	events := []event{transactionUpdatedEvent{id: txID}}

	req := &Request{
		Label:   "deposit",
		perform: func(node chainsync.NodeClient) error { _, err := node.SendRawTransaction(signedTx); return err },
		callback: func(w *Wallet) ([]event, *Request, error) {
			return nil, nil, nil
		},
	}

	return txID, events, req, nil
}

// makeWithdrawDepositRequest spends the listed matured deposits back to
// the wallet's own address. It fails synchronously — no Request is
// returned — if any id is unknown or still locked, per spec.md §4.4.
func makeWithdrawDepositRequest(w *Wallet, depositIDs []txcache.DepositID, fee btcutil.Amount) (
	txcache.TransactionID, []event, *Request, error) {

	var inputs []chainsync.TransactionOutputInformation
	var total btcutil.Amount
	for _, id := range depositIDs {
		dep, err := w.cache.GetDeposit(id)
		if err != nil {
			return 0, nil, nil, walletError(ErrInternal, fmt.Sprintf("withdraw deposit %d", id), err)
		}
		if dep.IsLocked {
			return 0, nil, nil, walletError(ErrInternal, fmt.Sprintf("deposit %d is still locked", id), nil)
		}
		inputs = append(inputs, chainsync.TransactionOutputInformation{
			OutPoint: dep.OutPoint,
			Amount:   dep.Amount,
			Term:     dep.Term,
		})
		total += dep.Amount
	}

	payout := total - fee
	txOuts := []*wire.TxOut{{Value: int64(payout), PkScript: w.changeScript()}}
	if err := txbuild.CheckOutput(txOuts[0], txbuild.DefaultRelayFeePerKb); err != nil {
		return 0, nil, nil, walletError(ErrInternal, "withdraw deposit payout", err)
	}

	tx := wire.NewMsgTx(wire.TxVersion)
	for _, in := range inputs {
		tx.AddTxIn(wire.NewTxIn(&in.OutPoint, nil, nil))
	}
	tx.AddTxOut(txOuts[0])

	signedTx, err := w.signTransaction(tx, inputs)
	if err != nil {
		return 0, nil, nil, walletError(ErrInternal, "sign withdraw transaction", err)
	}

	hash := signedTx.TxHash()
	txID := w.cache.RegisterUnconfirmed(hash, payout, fee, total, nil, nil, 0, txcache.PaymentID{}, false)

	events := []event{transactionUpdatedEvent{id: txID}}

	req := &Request{
		Label:   "withdraw",
		perform: func(node chainsync.NodeClient) error { _, err := node.SendRawTransaction(signedTx); return err },
		callback: func(w *Wallet) ([]event, *Request, error) {
			return nil, nil, nil
		},
	}

	return txID, events, req, nil
}

// txTransfer is a recipient line item as supplied by SendTransaction's
// caller, prior to being recorded as a txcache.Transfer.
type txTransfer struct {
	Address  string
	PkScript []byte
	Amount   btcutil.Amount
}
