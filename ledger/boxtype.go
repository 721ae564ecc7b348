// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"fmt"

	"github.com/opentxs/otledger/receiptstore"
)

// BoxType identifies which box a ledger represents.  The numeric values
// double as the storage type codes and must remain stable.
type BoxType uint8

const (
	// Nymbox holds per-nym administrative receipts: issued number
	// batches, reply notices, and instrument notices.
	Nymbox BoxType = 0

	// Inbox holds receipts affecting one asset account that the owner
	// has not yet accepted.
	Inbox BoxType = 1

	// Outbox holds the owner's own pending outbound transfers.
	Outbox BoxType = 2

	// Message is a transient ledger used to carry full transactions
	// inside protocol messages.  It is never persisted as receipts.
	Message BoxType = 3

	// PaymentInbox holds incoming payment instruments on the client
	// side.
	PaymentInbox BoxType = 4

	// RecordBox archives closed receipts on the client side.
	RecordBox BoxType = 5

	// ExpiredBox archives payment instruments that expired before
	// being accepted.
	ExpiredBox BoxType = 6

	// BoxError is the zero value for an uninitialized or unparsable
	// box type.
	BoxError BoxType = 255
)

// boxTypeNames maps box types to the literal names used in serialized
// ledgers and log output.
var boxTypeNames = map[BoxType]string{
	Nymbox:       "nymbox",
	Inbox:        "inbox",
	Outbox:       "outbox",
	Message:      "message",
	PaymentInbox: "paymentInbox",
	RecordBox:    "recordBox",
	ExpiredBox:   "expiredBox",
	BoxError:     "error_state",
}

// String returns the BoxType as its literal serialized name.
func (bt BoxType) String() string {
	if s, ok := boxTypeNames[bt]; ok {
		return s
	}
	return fmt.Sprintf("Unknown BoxType (%d)", uint8(bt))
}

// Valid reports whether the box type is one of the defined boxes.
func (bt BoxType) Valid() bool {
	_, ok := boxTypeNames[bt]
	return ok && bt != BoxError
}

// Persistent reports whether ledgers of this box type are stored as
// abbreviated records with separately persisted box receipts.  Message
// ledgers always carry full transactions inline and are never receipt
// split.
func (bt BoxType) Persistent() bool {
	return bt.Valid() && bt != Message
}

// RecordTag returns the per-type element name under which abbreviated
// records of this box type are serialized.
func (bt BoxType) RecordTag() (string, error) {
	switch bt {
	case Nymbox:
		return "nymboxRecord", nil
	case Inbox:
		return "inboxRecord", nil
	case Outbox:
		return "outboxRecord", nil
	case PaymentInbox:
		return "paymentInboxRecord", nil
	case RecordBox:
		return "recordBoxRecord", nil
	case ExpiredBox:
		return "expiredBoxRecord", nil
	case Message:
		return "", ledgerError(ErrWrongBox, "message ledgers have no "+
			"abbreviated records", nil)
	}
	return "", ledgerError(ErrInternal, fmt.Sprintf("unknown box type %d "+
		"in record tag switch", uint8(bt)), nil)
}

// StoreCode returns the receipt store type code for the box type.
func (bt BoxType) StoreCode() (uint8, error) {
	switch bt {
	case Nymbox:
		return receiptstore.BoxCodeNymbox, nil
	case Inbox:
		return receiptstore.BoxCodeInbox, nil
	case Outbox:
		return receiptstore.BoxCodeOutbox, nil
	case Message:
		return receiptstore.BoxCodeMessage, nil
	case PaymentInbox:
		return receiptstore.BoxCodePaymentInbox, nil
	case RecordBox:
		return receiptstore.BoxCodeRecordBox, nil
	case ExpiredBox:
		return receiptstore.BoxCodeExpiredBox, nil
	}
	return 0, ledgerError(ErrInternal, fmt.Sprintf("unknown box type %d "+
		"in store code switch", uint8(bt)), nil)
}
