// Copyright (c) 2014 Conformal Systems LLC <info@conformal.com>
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"

	"github.com/coredeposit/corewallet/chainsync"
)

// changeScript returns the standard P2PKH script paying the account's
// spend key. Deposit outputs use the same script: the lock term is tracked
// as cache metadata rather than enforced by the output script itself,
// mirroring the original wallet's term deposits, which are a distinct
// transaction output type rather than a scripted timelock.
func (w *Wallet) changeScript() []byte {
	pubKey := w.account.SpendKey.PubKey()
	addr, err := btcutil.NewAddressPubKeyHash(
		btcutil.Hash160(pubKey.SerializeCompressed()), w.chainParams)
	if err != nil {
		return nil
	}
	script, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return nil
	}
	return script
}

func (w *Wallet) depositScript(term uint32) []byte {
	return w.changeScript()
}

// signTransaction signs every input of tx assuming it spends a standard
// P2PKH output controlled by the account's spend key.
func (w *Wallet) signTransaction(tx *wire.MsgTx, inputs []chainsync.TransactionOutputInformation) (*wire.MsgTx, error) {
	privKey := w.account.SpendKey
	pubKey := privKey.PubKey().SerializeCompressed()

	for i, in := range inputs {
		sig, err := txscript.RawTxInSignature(tx, i, in.PkScript, txscript.SigHashAll, privKey)
		if err != nil {
			return nil, err
		}
		sigScript, err := txscript.NewScriptBuilder().AddData(sig).AddData(pubKey).Script()
		if err != nil {
			return nil, err
		}
		tx.TxIn[i].SignatureScript = sigScript
	}
	return tx, nil
}
