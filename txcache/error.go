// Copyright (c) 2014 Conformal Systems LLC <info@conformal.com>
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txcache

import "fmt"

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific CacheError.
const (
	// ErrTransactionNotFound indicates that the requested transaction is
	// not known to the cache.
	ErrTransactionNotFound ErrorCode = iota

	// ErrTransferNotFound indicates that the requested transfer is not
	// known to the cache.
	ErrTransferNotFound

	// ErrDepositNotFound indicates that the requested deposit is not
	// known to the cache.
	ErrDepositNotFound

	// ErrDepositLocked indicates an attempt to spend a deposit that has
	// not matured yet.
	ErrDepositLocked

	// ErrDanglingDeposit indicates that a deposit references a creating
	// or spending transaction that does not exist in the cache.
	ErrDanglingDeposit
)

var errorCodeStrings = map[ErrorCode]string{
	ErrTransactionNotFound: "ErrTransactionNotFound",
	ErrTransferNotFound:    "ErrTransferNotFound",
	ErrDepositNotFound:     "ErrDepositNotFound",
	ErrDepositLocked:       "ErrDepositLocked",
	ErrDanglingDeposit:     "ErrDanglingDeposit",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// CacheError provides a single type for errors that can happen during
// cache operation.
type CacheError struct {
	ErrorCode   ErrorCode
	Description string
	Err         error
}

// Error satisfies the error interface and prints human-readable errors.
func (e CacheError) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

// Unwrap allows errors.Is/As to reach the wrapped error, if any.
func (e CacheError) Unwrap() error {
	return e.Err
}

func cacheError(c ErrorCode, desc string, err error) CacheError {
	return CacheError{ErrorCode: c, Description: desc, Err: err}
}
