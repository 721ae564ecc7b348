// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package receiptstore

import (
	"errors"
)

var (
	// ErrNotFound is returned when fetching a receipt or box that has
	// not been stored, or that has been marked deleted.
	ErrNotFound = errors.New("receipt not found")

	// ErrMessageBox is returned when attempting receipt operations
	// against the message box code, which is never receipt-split.
	ErrMessageBox = errors.New("message ledgers have no box receipts")
)

// Store persists the full serialized forms of transactions ("box
// receipts") separately from the abbreviated ledgers that reference them,
// along with the serialized ledgers themselves.
//
// All calls are synchronous.  Implementations apply their own retry or
// timeout policy and report unavailable data as ErrNotFound rather than
// propagating cancellation through the ledger core.
type Store interface {
	// Exists reports whether a live (not deletion-marked) receipt is
	// present for the key.
	Exists(k Key) (bool, error)

	// Fetch returns the receipt bytes for the key.  ErrNotFound is
	// returned when no live receipt is present.
	Fetch(k Key) ([]byte, error)

	// Put stores the receipt bytes for the key, overwriting any
	// previous value and clearing any deletion mark.
	Put(k Key, data []byte) error

	// MarkDeleted marks the stored receipt as deleted without removing
	// the underlying record, so servers can audit and recover receipts
	// after the fact.  Marking a missing receipt returns ErrNotFound.
	MarkDeleted(k Key) error

	// FetchBox returns the serialized ledger for the passed box,
	// keyed by (box type code, owner id, notary id).
	FetchBox(boxCode uint8, ownerID, notaryID string) ([]byte, error)

	// PutBox stores the serialized ledger for the passed box.
	PutBox(boxCode uint8, ownerID, notaryID string, data []byte) error
}
