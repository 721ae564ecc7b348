// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"

	"github.com/lightningnetwork/lnd/tlv"
	"github.com/opentxs/otledger/otid"
)

// Cheque is the minimal embedded form of a cheque or voucher instrument
// as it appears inside a deposit item's attachment.  The cheque's own
// transaction number is the number its drawer signed it with, which is
// what cheque receipts are looked up by.
type Cheque struct {
	// TransactionNum is the number the drawer wrote the cheque
	// against.
	TransactionNum int64

	// Amount is the face value.
	Amount int64

	// SenderAcctID is the account the cheque draws on.
	SenderAcctID otid.ID

	// RecipientNymID is the payee, or zero for a bearer instrument.
	RecipientNymID otid.ID

	// NotaryID is the notary the cheque is drawn at.
	NotaryID otid.ID

	// ValidFrom and ValidTo bound the validity window as unix
	// seconds.  Zero means unbounded.
	ValidFrom int64
	ValidTo   int64

	// Memo is an optional human-readable note.
	Memo []byte
}

// Cheque TLV type assignments.  Stable; do not renumber.
const (
	chequeTypeTxNum     tlv.Type = 1
	chequeTypeAmount    tlv.Type = 2
	chequeTypeSender    tlv.Type = 3
	chequeTypeRecipient tlv.Type = 4
	chequeTypeNotary    tlv.Type = 5
	chequeTypeValidFrom tlv.Type = 6
	chequeTypeValidTo   tlv.Type = 7
	chequeTypeMemo      tlv.Type = 8
)

// Serialize encodes the cheque for embedding in a deposit item's
// attachment.
func (c *Cheque) Serialize() ([]byte, error) {
	txNum := uint64(c.TransactionNum)
	amount := uint64(c.Amount)
	sender := [otid.Size]byte(c.SenderAcctID)
	recipient := [otid.Size]byte(c.RecipientNymID)
	notary := [otid.Size]byte(c.NotaryID)
	validFrom := uint64(c.ValidFrom)
	validTo := uint64(c.ValidTo)

	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(chequeTypeTxNum, &txNum),
		tlv.MakePrimitiveRecord(chequeTypeAmount, &amount),
		tlv.MakePrimitiveRecord(chequeTypeSender, &sender),
		tlv.MakePrimitiveRecord(chequeTypeRecipient, &recipient),
		tlv.MakePrimitiveRecord(chequeTypeNotary, &notary),
		tlv.MakePrimitiveRecord(chequeTypeValidFrom, &validFrom),
		tlv.MakePrimitiveRecord(chequeTypeValidTo, &validTo),
		tlv.MakePrimitiveRecord(chequeTypeMemo, &c.Memo),
	)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := stream.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseCheque decodes a cheque produced by Serialize.
func ParseCheque(raw []byte) (*Cheque, error) {
	var (
		txNum, amount      uint64
		validFrom, validTo uint64
		sender, recipient  [otid.Size]byte
		notary             [otid.Size]byte
		memo               []byte
	)
	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(chequeTypeTxNum, &txNum),
		tlv.MakePrimitiveRecord(chequeTypeAmount, &amount),
		tlv.MakePrimitiveRecord(chequeTypeSender, &sender),
		tlv.MakePrimitiveRecord(chequeTypeRecipient, &recipient),
		tlv.MakePrimitiveRecord(chequeTypeNotary, &notary),
		tlv.MakePrimitiveRecord(chequeTypeValidFrom, &validFrom),
		tlv.MakePrimitiveRecord(chequeTypeValidTo, &validTo),
		tlv.MakePrimitiveRecord(chequeTypeMemo, &memo),
	)
	if err != nil {
		return nil, err
	}
	parsedTypes, err := stream.DecodeWithParsedTypes(bytes.NewReader(raw))
	if err != nil {
		return nil, ledgerError(ErrFormat, "malformed cheque", err)
	}
	if _, ok := parsedTypes[chequeTypeTxNum]; !ok {
		return nil, ledgerError(ErrFormat, "cheque is missing its "+
			"transaction number", nil)
	}

	return &Cheque{
		TransactionNum: int64(txNum),
		Amount:         int64(amount),
		SenderAcctID:   otid.ID(sender),
		RecipientNymID: otid.ID(recipient),
		NotaryID:       otid.ID(notary),
		ValidFrom:      int64(validFrom),
		ValidTo:        int64(validTo),
		Memo:           memo,
	}, nil
}
