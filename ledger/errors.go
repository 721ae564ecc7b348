// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific LedgerError.
const (
	// ErrFormat indicates a malformed or missing required field was
	// encountered while parsing a serialized ledger, transaction, or
	// item.  Format errors are fatal to the load operation; no partial
	// object is ever returned alongside one.
	ErrFormat ErrorCode = iota

	// ErrDuplicateNumber indicates the same transaction number appears
	// twice within one box.  This guards the uniqueness invariant at
	// the earliest possible point and is fatal to the load or insert.
	ErrDuplicateNumber

	// ErrVerification indicates a content identifier mismatch, a
	// signature failure, or a box receipt hash mismatch.
	ErrVerification

	// ErrMissingReceipt indicates an abbreviated entry is present but
	// its full form is not available from the receipt store.  This is
	// not fatal to the owning box; see Ledger.LoadBoxReceipts.
	ErrMissingReceipt

	// ErrNumbering indicates a transaction number bookkeeping failure,
	// such as harvesting a number that was never issued.
	ErrNumbering

	// ErrWrongBox indicates an operation was attempted on a ledger of
	// an incompatible box type, such as computing an inbox hash over a
	// nymbox.
	ErrWrongBox

	// ErrNotFound indicates a requested transaction or item is not
	// present.
	ErrNotFound

	// ErrDatabase indicates an error with the underlying receipt store
	// or database.  When this code is set, the Err field of the
	// LedgerError will be set to the underlying error.
	ErrDatabase

	// ErrInternal indicates a "should never happen" invariant
	// violation, such as an unknown box type reaching a serialization
	// switch.  It is reported as an error rather than a panic so the
	// condition is testable.
	ErrInternal
)

// Map of ErrorCode values back to their constant names for pretty
// printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrFormat:          "ErrFormat",
	ErrDuplicateNumber: "ErrDuplicateNumber",
	ErrVerification:    "ErrVerification",
	ErrMissingReceipt:  "ErrMissingReceipt",
	ErrNumbering:       "ErrNumbering",
	ErrWrongBox:        "ErrWrongBox",
	ErrNotFound:        "ErrNotFound",
	ErrDatabase:        "ErrDatabase",
	ErrInternal:        "ErrInternal",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// LedgerError provides a single type for errors that can happen during
// ledger operation.
type LedgerError struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
	Err         error     // Underlying error
}

// Error satisfies the error interface and prints human-readable errors.
func (e LedgerError) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

// Unwrap returns the underlying error, if any.
func (e LedgerError) Unwrap() error {
	return e.Err
}

// ledgerError creates a LedgerError given a set of arguments.
func ledgerError(c ErrorCode, desc string, err error) LedgerError {
	return LedgerError{ErrorCode: c, Description: desc, Err: err}
}

// IsError returns whether the error is a LedgerError with a matching
// error code.
func IsError(err error, code ErrorCode) bool {
	var e LedgerError
	if errors.As(err, &e) {
		return e.ErrorCode == code
	}
	return false
}
