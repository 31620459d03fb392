// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txbuild

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"

	"github.com/coredeposit/corewallet/chainsync"
)

func hashFromByte(b byte) chainhash.Hash {
	var h chainhash.Hash
	h[0] = b
	return h
}

func p2pkhScript() []byte {
	script, _ := txscript.NewScriptBuilder().
		AddOp(txscript.OP_DUP).
		AddOp(txscript.OP_HASH160).
		AddData(make([]byte, 20)).
		AddOp(txscript.OP_EQUALVERIFY).
		AddOp(txscript.OP_CHECKSIG).
		Script()
	return script
}

func utxo(amount btcutil.Amount, idx uint32) chainsync.TransactionOutputInformation {
	return chainsync.TransactionOutputInformation{
		OutPoint: wire.OutPoint{Hash: hashFromByte(byte(idx + 1)), Index: idx},
		PkScript: p2pkhScript(),
		Amount:   amount,
	}
}

func TestSelectInputsPicksLargestFirst(t *testing.T) {
	available := []chainsync.TransactionOutputInformation{
		utxo(1000, 0),
		utxo(50000, 1),
		utxo(5000, 2),
	}
	outputs := []*wire.TxOut{{Value: 10000, PkScript: p2pkhScript()}}

	drafted, err := SelectInputs(outputs, available, 500, p2pkhScript())
	require.NoError(t, err)

	require.Len(t, drafted.Inputs, 1)
	require.Equal(t, btcutil.Amount(50000), drafted.Inputs[0].Amount)
	require.Equal(t, btcutil.Amount(500), drafted.Fee)
	require.NotEqual(t, -1, drafted.ChangeIndex)
}

func TestSelectInputsUsesExactCallerFee(t *testing.T) {
	available := []chainsync.TransactionOutputInformation{utxo(20000, 0)}
	outputs := []*wire.TxOut{{Value: 10000, PkScript: p2pkhScript()}}

	drafted, err := SelectInputs(outputs, available, 1234, p2pkhScript())
	require.NoError(t, err)
	require.Equal(t, btcutil.Amount(1234), drafted.Fee)

	change := drafted.Tx.TxOut[drafted.ChangeIndex]
	require.Equal(t, int64(20000-10000-1234), change.Value)
}

func TestSelectInputsFoldsDustChangeIntoFee(t *testing.T) {
	available := []chainsync.TransactionOutputInformation{utxo(10100, 0)}
	outputs := []*wire.TxOut{{Value: 10000, PkScript: p2pkhScript()}}

	drafted, err := SelectInputs(outputs, available, 0, p2pkhScript())
	require.NoError(t, err)

	require.Equal(t, -1, drafted.ChangeIndex)
	require.Equal(t, btcutil.Amount(100), drafted.Fee)
	require.Len(t, drafted.Tx.TxOut, 1)
}

func TestSelectInputsInsufficientFunds(t *testing.T) {
	available := []chainsync.TransactionOutputInformation{utxo(100, 0)}
	outputs := []*wire.TxOut{{Value: 10000, PkScript: p2pkhScript()}}

	_, err := SelectInputs(outputs, available, 500, p2pkhScript())
	require.Error(t, err)

	var insufficient *ErrInsufficientFunds
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, btcutil.Amount(10000), insufficient.Target)
}

func TestSelectInputsRejectsDustOutput(t *testing.T) {
	available := []chainsync.TransactionOutputInformation{utxo(100000, 0)}
	outputs := []*wire.TxOut{{Value: 1, PkScript: p2pkhScript()}}

	_, err := SelectInputs(outputs, available, 500, p2pkhScript())
	require.ErrorIs(t, err, ErrOutputIsDust)
}

func TestSelectInputsRequiresChangeScriptWhenChangeDue(t *testing.T) {
	available := []chainsync.TransactionOutputInformation{utxo(50000, 0)}
	outputs := []*wire.TxOut{{Value: 10000, PkScript: p2pkhScript()}}

	_, err := SelectInputs(outputs, available, 500, nil)
	require.ErrorIs(t, err, ErrNoChangeScript)
}

func TestEstimateFeeScalesWithInputCount(t *testing.T) {
	outputs := []*wire.TxOut{{Value: 10000, PkScript: p2pkhScript()}}

	oneInput := []chainsync.TransactionOutputInformation{utxo(50000, 0)}
	threeInputs := []chainsync.TransactionOutputInformation{utxo(50000, 0), utxo(1, 1), utxo(2, 2)}

	feeOne := EstimateFee(oneInput, outputs, len(p2pkhScript()), DefaultRelayFeePerKb)
	feeThree := EstimateFee(threeInputs, outputs, len(p2pkhScript()), DefaultRelayFeePerKb)

	require.Greater(t, feeThree, feeOne)
}
