// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package receiptstore

import (
	"fmt"
)

// Box type codes.  These are persisted in storage keys and must remain
// stable.  Code 3 is reserved for message ledgers, which are never split
// into separate receipts.
const (
	BoxCodeNymbox       uint8 = 0
	BoxCodeInbox        uint8 = 1
	BoxCodeOutbox       uint8 = 2
	BoxCodeMessage      uint8 = 3
	BoxCodePaymentInbox uint8 = 4
	BoxCodeRecordBox    uint8 = 5
	BoxCodeExpiredBox   uint8 = 6
)

// boxFolderNames maps a box type code to the storage folder it keeps its
// receipts under.
var boxFolderNames = map[uint8]string{
	BoxCodeNymbox:       "nymbox",
	BoxCodeInbox:        "inbox",
	BoxCodeOutbox:       "outbox",
	BoxCodePaymentInbox: "paymentInbox",
	BoxCodeRecordBox:    "recordBox",
	BoxCodeExpiredBox:   "expiredBox",
}

// BoxFolder returns the storage folder name for the passed box type code.
// An error is returned for the message code, which has no folder, and for
// unknown codes.
func BoxFolder(boxCode uint8) (string, error) {
	folder, ok := boxFolderNames[boxCode]
	if !ok {
		return "", fmt.Errorf("box type code %d has no receipt folder",
			boxCode)
	}
	return folder, nil
}

// Key identifies the full serialized form of a single transaction within
// the store.
type Key struct {
	// BoxCode is the type code of the box the receipt belongs to.
	BoxCode uint8

	// OwnerID is the account or nym identifier that owns the box,
	// rendered as a hex string.
	OwnerID string

	// NotaryID is the notary identifier, rendered as a hex string.
	NotaryID string

	// TxNum is the receipt's transaction number.
	TxNum int64
}

// Path returns the canonical storage path for the key:
//
//	{boxFolder}/{notaryID}/{ownerOrAcctID}.r/{transactionNumber}.rct
//
// The layout is fixed for interoperability with existing receipt archives.
func (k Key) Path() (string, error) {
	folder, err := BoxFolder(k.BoxCode)
	if err != nil {
		return "", err
	}
	if k.OwnerID == "" || k.NotaryID == "" {
		return "", fmt.Errorf("receipt key is missing an identifier")
	}
	if k.TxNum <= 0 {
		return "", fmt.Errorf("receipt key has invalid transaction "+
			"number %d", k.TxNum)
	}
	return fmt.Sprintf("%s/%s/%s.r/%d.rct", folder, k.NotaryID,
		k.OwnerID, k.TxNum), nil
}

// String returns the storage path, or a diagnostic placeholder when the
// key is malformed.
func (k Key) String() string {
	path, err := k.Path()
	if err != nil {
		return fmt.Sprintf("invalid receipt key (box=%d owner=%s "+
			"notary=%s num=%d)", k.BoxCode, k.OwnerID, k.NotaryID,
			k.TxNum)
	}
	return path
}
