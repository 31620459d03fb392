// Copyright (c) 2014 Conformal Systems LLC <info@conformal.com>
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"github.com/btcsuite/btcd/btcec/v2"
)

// createTimeAccuracy is the quantum, in seconds, at which an account's
// createTime is tracked. One day, matching spec.md's data model.
const createTimeAccuracy = 86400

// Account holds the keypair material the wallet derives its address from,
// plus a createTime used as a synchronisation-start hint.
type Account struct {
	SpendKey   *btcec.PrivateKey
	ViewKey    *btcec.PrivateKey
	Address    string
	CreateTime int64
}

// AccountKeys is the subset of Account callers of GetAccountKeys receive:
// the private key material without the derived address/createTime
// bookkeeping.
type AccountKeys struct {
	SpendKey *btcec.PrivateKey
	ViewKey  *btcec.PrivateKey
}

func generateAccount(addressFromKeys func(spend, view *btcec.PrivateKey) (string, error), now int64) (*Account, error) {
	spend, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, walletError(ErrInternal, "generate spend key", err)
	}
	view, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, walletError(ErrInternal, "generate view key", err)
	}
	addr, err := addressFromKeys(spend, view)
	if err != nil {
		return nil, walletError(ErrInternal, "derive address", err)
	}
	return &Account{SpendKey: spend, ViewKey: view, Address: addr, CreateTime: now}, nil
}

func importAccount(spendKeyBytes, viewKeyBytes []byte, addressFromKeys func(spend, view *btcec.PrivateKey) (string, error)) (*Account, error) {
	spend, _ := btcec.PrivKeyFromBytes(spendKeyBytes)
	view, _ := btcec.PrivKeyFromBytes(viewKeyBytes)
	addr, err := addressFromKeys(spend, view)
	if err != nil {
		return nil, walletError(ErrInternal, "derive address", err)
	}
	// Imported accounts report a fixed createTime of one accuracy window
	// (createTimeAccuracy seconds), mirroring initWithKeys's fixed createTime.
	return &Account{SpendKey: spend, ViewKey: view, Address: addr, CreateTime: createTimeAccuracy}, nil
}
