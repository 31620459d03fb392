// Copyright (c) 2014 Conformal Systems LLC <info@conformal.com>
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import "fmt"

// ErrorCode identifies a kind of error returned by the wallet façade.
type ErrorCode int

const (
	// ErrAlreadyInitialized is returned by an init call on a wallet that
	// has already left NOT_INITIALIZED.
	ErrAlreadyInitialized ErrorCode = iota

	// ErrNotInitialized is returned by any operation that requires
	// INITIALIZED state when the wallet has not reached it.
	ErrNotInitialized

	// ErrWrongState is returned when an operation cannot proceed because
	// the wallet is transiently LOADING or SAVING.
	ErrWrongState

	// ErrWrongPassword is returned by changePassword or deserialisation
	// when the supplied password fails authenticated decryption.
	ErrWrongPassword

	// ErrInternal covers unexpected failures that don't map onto a more
	// specific code.
	ErrInternal

	// ErrOperationCancelled is returned when shutdown interrupts an
	// in-flight operation.
	ErrOperationCancelled

	// ErrTxCancelImpossible is always returned by CancelTransaction: this
	// wallet never models cancellation.
	ErrTxCancelImpossible

	// ErrNode wraps an error surfaced by the node collaborator.
	ErrNode
)

var errorCodeStrings = map[ErrorCode]string{
	ErrAlreadyInitialized: "ErrAlreadyInitialized",
	ErrNotInitialized:     "ErrNotInitialized",
	ErrWrongState:         "ErrWrongState",
	ErrWrongPassword:      "ErrWrongPassword",
	ErrInternal:           "ErrInternal",
	ErrOperationCancelled: "ErrOperationCancelled",
	ErrTxCancelImpossible: "ErrTxCancelImpossible",
	ErrNode:               "ErrNode",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error provides a single type for errors returned by the wallet façade.
type Error struct {
	ErrorCode   ErrorCode
	Description string
	Err         error
}

// Error satisfies the error interface.
func (e Error) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

// Unwrap allows errors.Is/As to reach the wrapped error, if any.
func (e Error) Unwrap() error {
	return e.Err
}

func walletError(c ErrorCode, desc string, err error) Error {
	return Error{ErrorCode: c, Description: desc, Err: err}
}

// Sentinel errors for the common cases callers are expected to compare
// against with errors.Is.
var (
	ErrWalletAlreadyInitialized = walletError(ErrAlreadyInitialized, "wallet is already initialized", nil)
	ErrWalletNotInitialized     = walletError(ErrNotInitialized, "wallet is not initialized", nil)
	ErrWalletWrongState         = walletError(ErrWrongState, "wallet is loading or saving", nil)
	ErrWalletWrongPassword      = walletError(ErrWrongPassword, "wrong password", nil)
	ErrWalletOperationCancelled = walletError(ErrOperationCancelled, "operation cancelled", nil)
	ErrWalletTxCancelImpossible = walletError(ErrTxCancelImpossible, "transaction cancellation is not supported", nil)
)
