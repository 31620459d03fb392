// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txbuild selects spendable outputs and drafts the unsigned
// transaction for a send, deposit or deposit-withdrawal request. It is
// adapted from the teacher's wallet/txauthor, wallet/txrules and
// wallet/txsizes packages, generalised to operate over
// chainsync.TransactionOutputInformation instead of a concrete wtxmgr.Credit
// tied to a specific on-disk store.
package txbuild

import (
	"errors"
	"fmt"
	"sort"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/coredeposit/corewallet/chainsync"
)

// ErrInsufficientFunds is returned by SelectInputs when the available
// outputs cannot cover the requested amount plus fees.
type ErrInsufficientFunds struct {
	Target    btcutil.Amount
	Fee       btcutil.Amount
	Available btcutil.Amount
}

func (e *ErrInsufficientFunds) Error() string {
	return fmt.Sprintf("insufficient funds: target %v, fee %v, available %v",
		e.Target, e.Fee, e.Available)
}

// ErrNoChangeScript is returned when a caller requests a change output but
// supplies no script to pay it to.
var ErrNoChangeScript = errors.New("no change script supplied for change output")

// DraftedTx is the result of SelectInputs: an unsigned transaction plus the
// bookkeeping txbuild needed to compute it, handed back to the caller for
// signing and fee accounting.
type DraftedTx struct {
	Tx          *wire.MsgTx
	Inputs      []chainsync.TransactionOutputInformation
	InputTotal  btcutil.Amount
	ChangeIndex int // -1 if no change output was added
	Fee         btcutil.Amount
}

// SelectInputs picks unlocked outputs from available (largest-first, a
// deterministic stand-in for the original's non-deterministic selection —
// see DESIGN.md) sufficient to cover outputs plus the caller-specified flat
// fee, adds a change output paying changeScript when the leftover clears
// the dust limit, and returns the drafted, unsigned transaction. fee is an
// exact amount chosen by the caller, not a rate: this mirrors the
// original's sendTransaction/deposit/withdrawDeposits, which all take fee
// as a fixed parameter rather than deriving it from a fee-per-kb policy.
func SelectInputs(outputs []*wire.TxOut, available []chainsync.TransactionOutputInformation,
	fee btcutil.Amount, changeScript []byte) (*DraftedTx, error) {

	for _, out := range outputs {
		if err := CheckOutput(out, DefaultRelayFeePerKb); err != nil {
			return nil, err
		}
	}

	sorted := make([]chainsync.TransactionOutputInformation, len(available))
	copy(sorted, available)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Amount > sorted[j].Amount })

	target := sumOutputs(outputs)

	var (
		selected   []chainsync.TransactionOutputInformation
		inputTotal btcutil.Amount
	)

	for _, out := range sorted {
		selected = append(selected, out)
		inputTotal += out.Amount

		if inputTotal >= target+fee {
			break
		}
	}

	if inputTotal < target+fee {
		log.Debugf("input selection short by %v (target %v, fee %v, available %v)",
			target+fee-inputTotal, target, fee, inputTotal)
		return nil, &ErrInsufficientFunds{Target: target, Fee: fee, Available: inputTotal}
	}

	tx := wire.NewMsgTx(wire.TxVersion)
	for _, out := range selected {
		tx.AddTxIn(wire.NewTxIn(&out.OutPoint, nil, nil))
	}
	for _, out := range outputs {
		tx.AddTxOut(out)
	}

	changeIndex := -1
	change := inputTotal - target - fee
	changeOut := &wire.TxOut{Value: int64(change), PkScript: changeScript}
	if change > 0 && !IsDustOutput(changeOut, DefaultRelayFeePerKb) {
		if len(changeScript) == 0 {
			return nil, ErrNoChangeScript
		}
		tx.AddTxOut(changeOut)
		changeIndex = len(tx.TxOut) - 1
	} else {
		// Recompute the fee without a change output: the dust/zero
		// change simply goes to the fee.
		fee = inputTotal - target
	}

	return &DraftedTx{
		Tx:          tx,
		Inputs:      selected,
		InputTotal:  inputTotal,
		ChangeIndex: changeIndex,
		Fee:         fee,
	}, nil
}

func sumOutputs(outputs []*wire.TxOut) btcutil.Amount {
	var total btcutil.Amount
	for _, out := range outputs {
		total += btcutil.Amount(out.Value)
	}
	return total
}

// EstimateFee classifies each of inputs by script type and returns the fee
// implied by feeRatePerKb for a transaction spending them into outputs plus
// a change output of changeScriptSize bytes (0 if no change is expected).
// It does not pick a fee on the caller's behalf — sendTransaction, deposit
// and withdrawDeposits all take an explicit, caller-chosen fee — but gives
// callers a policy-driven number to start from.
func EstimateFee(inputs []chainsync.TransactionOutputInformation, outputs []*wire.TxOut,
	changeScriptSize int, feeRatePerKb btcutil.Amount) btcutil.Amount {

	var nested, p2wpkh, p2tr, p2pkh int
	for _, in := range inputs {
		switch {
		case txscript.IsPayToScriptHash(in.PkScript):
			nested++
		case txscript.IsPayToWitnessPubKeyHash(in.PkScript):
			p2wpkh++
		case txscript.IsPayToTaproot(in.PkScript):
			p2tr++
		default:
			p2pkh++
		}
	}

	size := EstimateVirtualSize(p2pkh, p2tr, p2wpkh, nested, outputs, changeScriptSize)
	return FeeForSerializeSize(feeRatePerKb, size)
}
