// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/lightningnetwork/lnd/tlv"
	"github.com/opentxs/otledger/internal/numlist"
	"github.com/opentxs/otledger/otcrypto"
)

// ItemType identifies the kind of claim an item makes about its owning
// transaction.
type ItemType uint8

const (
	// ItemBalanceStatement reports the predicted account balance and
	// inbox/outbox contents accompanying an account-affecting
	// operation.
	ItemBalanceStatement ItemType = iota

	// ItemTransactionStatement reports the issued transaction number
	// set accompanying a number-only operation.
	ItemTransactionStatement

	// ItemAcceptPending accepts an incoming transfer from the inbox.
	ItemAcceptPending

	// ItemRejectPending rejects an incoming transfer from the inbox.
	ItemRejectPending

	// ItemAcceptItemReceipt accepts a transfer or cheque receipt from
	// the inbox.
	ItemAcceptItemReceipt

	// ItemDisputeItemReceipt disputes a receipt in the inbox.
	ItemDisputeItemReceipt

	// ItemAcceptFinalReceipt accepts a final receipt from the inbox.
	ItemAcceptFinalReceipt

	// ItemAcceptBasketReceipt accepts a basket receipt from the inbox.
	ItemAcceptBasketReceipt

	// ItemAcceptTransaction signs for a batch of issued numbers from
	// the nymbox.
	ItemAcceptTransaction

	// ItemAcceptMessage accepts a message from the nymbox.
	ItemAcceptMessage

	// ItemAcceptNotice accepts a notice from the nymbox.
	ItemAcceptNotice

	// ItemTransfer is the primary item of an outbound transfer.
	ItemTransfer

	// ItemWithdrawal is the primary item of a cash withdrawal.
	ItemWithdrawal

	// ItemDeposit is the primary item of a cash or cheque deposit.
	ItemDeposit

	// ItemNotice carries an informational payload, such as an updated
	// cron contract.
	ItemNotice

	// ItemTypeError is the value used for an unparsable item type.
	ItemTypeError ItemType = 255
)

// itemTypeNames maps item types to their canonical serialized names.
var itemTypeNames = map[ItemType]string{
	ItemBalanceStatement:     "balanceStatement",
	ItemTransactionStatement: "transactionStatement",
	ItemAcceptPending:        "acceptPending",
	ItemRejectPending:        "rejectPending",
	ItemAcceptItemReceipt:    "acceptItemReceipt",
	ItemDisputeItemReceipt:   "disputeItemReceipt",
	ItemAcceptFinalReceipt:   "acceptFinalReceipt",
	ItemAcceptBasketReceipt:  "acceptBasketReceipt",
	ItemAcceptTransaction:    "acceptTransaction",
	ItemAcceptMessage:        "acceptMessage",
	ItemAcceptNotice:         "acceptNotice",
	ItemTransfer:             "transfer",
	ItemWithdrawal:           "withdrawal",
	ItemDeposit:              "deposit",
	ItemNotice:               "notice",
	ItemTypeError:            "error_state",
}

// String returns the ItemType as its canonical serialized name.
func (it ItemType) String() string {
	if s, ok := itemTypeNames[it]; ok {
		return s
	}
	return fmt.Sprintf("Unknown ItemType (%d)", uint8(it))
}

// Valid reports whether the item type is one of the defined types.
func (it ItemType) Valid() bool {
	_, ok := itemTypeNames[it]
	return ok && it != ItemTypeError
}

// ItemStatus is the disposition an item asserts.
type ItemStatus uint8

const (
	// StatusRequest marks an item the client is asking the notary to
	// perform.
	StatusRequest ItemStatus = iota

	// StatusAcknowledgement marks a reply item reporting success.
	StatusAcknowledgement

	// StatusRejection marks a reply item reporting failure.  A
	// rejection with the owning transaction's cancelled flag set means
	// the operation was cancelled rather than failed.
	StatusRejection
)

// String returns the ItemStatus as a human-readable name.
func (s ItemStatus) String() string {
	switch s {
	case StatusRequest:
		return "request"
	case StatusAcknowledgement:
		return "acknowledgement"
	case StatusRejection:
		return "rejection"
	}
	return fmt.Sprintf("Unknown ItemStatus (%d)", uint8(s))
}

// ReportEntry is one sub-report inside a balance statement item,
// summarizing a single transaction currently sitting in the inbox or
// outbox.
type ReportEntry struct {
	// Type is the reported transaction's type.
	Type TxType

	// TransactionNum is the reported transaction's number.
	TransactionNum int64

	// ReferenceNum is the reported transaction's in-reference-to
	// number.
	ReferenceNum int64

	// InRefDisplay is the reported transaction's display reference
	// number.
	InRefDisplay int64

	// Amount is the effect the reported transaction will have on the
	// account balance when accepted.
	Amount int64

	// ClosingNum is the closing number for final and basket receipts,
	// zero otherwise.
	ClosingNum int64
}

// reportEntryLen is the encoded width of one report entry.
const reportEntryLen = 1 + 5*8

// packReports flattens report entries into fixed-width binary records.
func packReports(reports []ReportEntry) []byte {
	if len(reports) == 0 {
		return nil
	}
	b := make([]byte, 0, reportEntryLen*len(reports))
	var scratch [8]byte
	for _, r := range reports {
		b = append(b, uint8(r.Type))
		for _, n := range []int64{
			r.TransactionNum, r.ReferenceNum, r.InRefDisplay,
			r.Amount, r.ClosingNum,
		} {
			binary.BigEndian.PutUint64(scratch[:], uint64(n))
			b = append(b, scratch[:]...)
		}
	}
	return b
}

// unpackReports reverses packReports.
func unpackReports(b []byte) ([]ReportEntry, error) {
	if len(b)%reportEntryLen != 0 {
		return nil, ledgerError(ErrFormat, fmt.Sprintf("report list "+
			"has ragged length %d", len(b)), nil)
	}
	if len(b) == 0 {
		return nil, nil
	}
	reports := make([]ReportEntry, 0, len(b)/reportEntryLen)
	for i := 0; i < len(b); i += reportEntryLen {
		rec := b[i : i+reportEntryLen]
		r := ReportEntry{Type: TxType(rec[0])}
		if !r.Type.Valid() {
			return nil, ledgerError(ErrFormat, fmt.Sprintf(
				"report entry has unknown transaction type "+
					"%d", rec[0]), nil)
		}
		nums := []*int64{
			&r.TransactionNum, &r.ReferenceNum, &r.InRefDisplay,
			&r.Amount, &r.ClosingNum,
		}
		for j, p := range nums {
			*p = int64(binary.BigEndian.Uint64(rec[1+j*8:]))
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// Item is the atomic signed unit: a typed claim about a transaction.
// Items are created in memory, signed once, and immutable thereafter;
// changing a signed item requires constructing a new instance.  An item
// is exclusively owned by its parent transaction's ordered list.
type Item struct {
	// Type is the kind of claim the item makes.
	Type ItemType

	// Status is the disposition the item asserts.
	Status ItemStatus

	// TransactionNum is the owning transaction's number.
	TransactionNum int64

	// ReferenceNum links to the transaction or item this one responds
	// to.
	ReferenceNum int64

	// NumberOfOrigin links a receipt chain back to the number of the
	// original operation.  Zero when not applicable.
	NumberOfOrigin int64

	// Amount is the value the item moves, or for balance statements
	// the predicted post-operation balance.
	Amount int64

	// Attachment is an opaque payload, such as an embedded cheque or
	// an updated cron contract.
	Attachment []byte

	// Note is an optional human-readable memo.
	Note []byte

	// Reports holds the per-transaction sub-reports of a balance
	// statement item.
	Reports []ReportEntry

	// Issued holds the issued-number statement of a balance or
	// transaction statement item.
	Issued []int64

	// payload caches the serialized unsigned form once signed or
	// parsed.
	payload []byte

	// signature covers payload.  A non-nil signature freezes the
	// item.
	signature []byte
}

// Item payload TLV type assignments.  Stable; do not renumber.
const (
	itemTypeType       tlv.Type = 1
	itemTypeStatus     tlv.Type = 2
	itemTypeTxNum      tlv.Type = 3
	itemTypeRefNum     tlv.Type = 4
	itemTypeOriginNum  tlv.Type = 5
	itemTypeAmount     tlv.Type = 6
	itemTypeAttachment tlv.Type = 7
	itemTypeNote       tlv.Type = 8
	itemTypeReports    tlv.Type = 9
	itemTypeIssued     tlv.Type = 10
)

// NewItem returns an unsigned item for the passed owning transaction
// number.
func NewItem(itemType ItemType, status ItemStatus, txNum,
	refNum int64) (*Item, error) {

	if !itemType.Valid() {
		return nil, ledgerError(ErrInternal, fmt.Sprintf("cannot "+
			"create item with type %d", uint8(itemType)), nil)
	}
	return &Item{
		Type:           itemType,
		Status:         status,
		TransactionNum: txNum,
		ReferenceNum:   refNum,
	}, nil
}

// Signed reports whether the item carries a signature and is therefore
// frozen.
func (it *Item) Signed() bool {
	return it.signature != nil
}

// Signature returns the item signature, or nil when unsigned.
func (it *Item) Signature() []byte {
	return it.signature
}

// serializePayload encodes the unsigned item contents.
func (it *Item) serializePayload() ([]byte, error) {
	itemType := uint8(it.Type)
	status := uint8(it.Status)
	txNum := uint64(it.TransactionNum)
	refNum := uint64(it.ReferenceNum)
	amount := uint64(it.Amount)

	records := []tlv.Record{
		tlv.MakePrimitiveRecord(itemTypeType, &itemType),
		tlv.MakePrimitiveRecord(itemTypeStatus, &status),
		tlv.MakePrimitiveRecord(itemTypeTxNum, &txNum),
		tlv.MakePrimitiveRecord(itemTypeRefNum, &refNum),
	}
	if it.NumberOfOrigin != 0 {
		originNum := uint64(it.NumberOfOrigin)
		records = append(records, tlv.MakePrimitiveRecord(
			itemTypeOriginNum, &originNum,
		))
	}
	records = append(records, tlv.MakePrimitiveRecord(
		itemTypeAmount, &amount,
	))
	if len(it.Attachment) > 0 {
		records = append(records, tlv.MakePrimitiveRecord(
			itemTypeAttachment, &it.Attachment,
		))
	}
	if len(it.Note) > 0 {
		records = append(records, tlv.MakePrimitiveRecord(
			itemTypeNote, &it.Note,
		))
	}
	if len(it.Reports) > 0 {
		reports := packReports(it.Reports)
		records = append(records, tlv.MakePrimitiveRecord(
			itemTypeReports, &reports,
		))
	}
	if len(it.Issued) > 0 {
		issued := numlist.Pack(it.Issued)
		records = append(records, tlv.MakePrimitiveRecord(
			itemTypeIssued, &issued,
		))
	}

	stream, err := tlv.NewStream(records...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := stream.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Sign serializes the item and signs it, freezing it against further
// mutation.  Signing an already signed item is an error.
func (it *Item) Sign(signer otcrypto.Signer) error {
	if it.Signed() {
		return ledgerError(ErrInternal, "item is already signed", nil)
	}
	payload, err := it.serializePayload()
	if err != nil {
		return err
	}
	sig, err := signer.Sign(payload)
	if err != nil {
		return err
	}
	it.payload = payload
	it.signature = sig
	return nil
}

// SignedBytes returns the serialized signed form of the item.
func (it *Item) SignedBytes() ([]byte, error) {
	if !it.Signed() {
		return nil, ledgerError(ErrInternal, "item is not signed", nil)
	}
	env := otcrypto.Envelope{Payload: it.payload, Signature: it.signature}
	return env.Bytes()
}

// VerifySignature checks the item signature against the passed verifier
// and public key.
func (it *Item) VerifySignature(v otcrypto.Verifier, pubKey []byte) error {
	if !it.Signed() {
		return ledgerError(ErrVerification, "item is not signed", nil)
	}
	if !v.Verify(it.payload, it.signature, pubKey) {
		return ledgerError(ErrVerification, fmt.Sprintf("signature "+
			"verification failed for %s item in transaction %d",
			it.Type, it.TransactionNum), nil)
	}
	return nil
}

// ParseItem decodes the serialized signed form of an item.
func ParseItem(raw []byte) (*Item, error) {
	env, err := otcrypto.ParseEnvelope(raw)
	if err != nil {
		return nil, ledgerError(ErrFormat, "malformed item envelope",
			err)
	}

	var (
		itemType, status  uint8
		txNum, refNum     uint64
		originNum, amount uint64
		attachment, note  []byte
		reports, issued   []byte
	)
	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(itemTypeType, &itemType),
		tlv.MakePrimitiveRecord(itemTypeStatus, &status),
		tlv.MakePrimitiveRecord(itemTypeTxNum, &txNum),
		tlv.MakePrimitiveRecord(itemTypeRefNum, &refNum),
		tlv.MakePrimitiveRecord(itemTypeOriginNum, &originNum),
		tlv.MakePrimitiveRecord(itemTypeAmount, &amount),
		tlv.MakePrimitiveRecord(itemTypeAttachment, &attachment),
		tlv.MakePrimitiveRecord(itemTypeNote, &note),
		tlv.MakePrimitiveRecord(itemTypeReports, &reports),
		tlv.MakePrimitiveRecord(itemTypeIssued, &issued),
	)
	if err != nil {
		return nil, err
	}
	parsedTypes, err := stream.DecodeWithParsedTypes(
		bytes.NewReader(env.Payload),
	)
	if err != nil {
		return nil, ledgerError(ErrFormat, "malformed item payload",
			err)
	}
	for _, required := range []tlv.Type{
		itemTypeType, itemTypeStatus, itemTypeTxNum, itemTypeRefNum,
		itemTypeAmount,
	} {
		if _, ok := parsedTypes[required]; !ok {
			return nil, ledgerError(ErrFormat, fmt.Sprintf(
				"item payload is missing required field %d",
				required), nil)
		}
	}

	it := &Item{
		Type:           ItemType(itemType),
		Status:         ItemStatus(status),
		TransactionNum: int64(txNum),
		ReferenceNum:   int64(refNum),
		NumberOfOrigin: int64(originNum),
		Amount:         int64(amount),
		Attachment:     attachment,
		Note:           note,
		payload:        env.Payload,
		signature:      env.Signature,
	}
	if !it.Type.Valid() {
		return nil, ledgerError(ErrFormat, fmt.Sprintf("item payload "+
			"has unknown type %d", itemType), nil)
	}
	if it.Reports, err = unpackReports(reports); err != nil {
		return nil, err
	}
	if it.Issued, err = numlist.Unpack(issued); err != nil {
		return nil, ledgerError(ErrFormat, "malformed issued number "+
			"list", err)
	}
	return it, nil
}
