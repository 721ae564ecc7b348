// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"
	"fmt"
	"time"

	"github.com/lightningnetwork/lnd/tlv"
	"github.com/opentxs/otledger/internal/numlist"
	"github.com/opentxs/otledger/otcrypto"
	"github.com/opentxs/otledger/otid"
	"github.com/opentxs/otledger/receiptstore"
)

// BoxContext is the immutable description of the box a transaction
// belongs to.  It is passed at construction time and used only to derive
// receipt storage keys; it carries no reference back to the owning
// ledger, so a transaction remains fully usable after removal from its
// box.
type BoxContext struct {
	// BoxType is the owning box's type.
	BoxType BoxType

	// NymID is the nym that owns the box.
	NymID otid.ID

	// AccountID is the account (or, for nym-level boxes, the nym)
	// the box belongs to.  This is the owner component of receipt
	// storage keys.
	AccountID otid.ID

	// NotaryID is the notary maintaining the box.
	NotaryID otid.ID
}

// Transaction represents one signed financial event, in either
// abbreviated or full form.
//
// An abbreviated transaction is built from a box's inline summary
// record: it carries no signature and no items, and its financial fields
// are expected values pending verification against the separately
// stored full form.  A full transaction is either constructed fresh or
// parsed from its signed serialized form.  VerifyBoxReceipt bridges the
// two.
//
// A transaction's number never changes after construction.  Signing
// freezes the transaction; mutating a signed transaction is an error.
type Transaction struct {
	identity
	box BoxContext

	number       int64
	referenceNum int64
	inRefDisplay int64
	txType       TxType
	originType   OriginType
	dateSigned   time.Time

	// originNum caches the lazily computed number of origin; originSet
	// records whether it has been computed or parsed yet.
	originNum int64
	originSet bool

	// ClosingNum is the closing number carried by final and basket
	// receipts.
	ClosingNum int64

	// RequestNum and ReplySuccess are carried only by reply notices.
	RequestNum   int64
	ReplySuccess bool

	// Cancelled distinguishes a rejection caused by a successful
	// cancellation from a genuine failure.
	Cancelled bool

	// Adjustment is the effect the transaction has on the account
	// balance when accepted; DisplayValue is the amount shown to the
	// user, which differs from the adjustment for some receipt types.
	Adjustment   int64
	DisplayValue int64

	// NumberList is the batch of transaction numbers carried by blank
	// and success notice transactions.
	NumberList []int64

	// InRefBlob is the opaque "in reference to" payload, such as the
	// serialized item this transaction responds to.
	InRefBlob []byte

	abbreviated bool
	receiptHash otid.ID

	items []*Item

	// payload and signature cache the serialized signed form.
	payload   []byte
	signature []byte
}

// Transaction payload TLV type assignments.  Stable; do not renumber.
const (
	txFieldNumber       tlv.Type = 1
	txFieldRefNum       tlv.Type = 2
	txFieldInRefDisplay tlv.Type = 3
	txFieldDateSigned   tlv.Type = 4
	txFieldType         tlv.Type = 5
	txFieldOriginNum    tlv.Type = 6
	txFieldOriginType   tlv.Type = 7
	txFieldNymID        tlv.Type = 8
	txFieldAccountID    tlv.Type = 9
	txFieldNotaryID     tlv.Type = 10
	txFieldClosingNum   tlv.Type = 11
	txFieldRequestNum   tlv.Type = 12
	txFieldReplyOK      tlv.Type = 13
	txFieldCancelled    tlv.Type = 14
	txFieldInRefBlob    tlv.Type = 15
	txFieldNumberList   tlv.Type = 16
	txFieldAdjustment   tlv.Type = 17
	txFieldDisplayValue tlv.Type = 18
	txFieldItems        tlv.Type = 19
)

// NewTransaction returns a fresh full-form transaction for the passed
// box.  The transaction number is fixed for the life of the instance.
func NewTransaction(box BoxContext, number int64, txType TxType,
	dateSigned time.Time) (*Transaction, error) {

	if !box.BoxType.Valid() {
		return nil, ledgerError(ErrInternal, fmt.Sprintf("cannot "+
			"create transaction in box type %d",
			uint8(box.BoxType)), nil)
	}
	if !txType.Valid() {
		return nil, ledgerError(ErrInternal, fmt.Sprintf("cannot "+
			"create transaction with type %d", uint8(txType)), nil)
	}
	if number <= 0 {
		return nil, ledgerError(ErrNumbering, fmt.Sprintf("invalid "+
			"transaction number %d", number), nil)
	}
	return &Transaction{
		identity: newIdentity(box.NymID, box.AccountID,
			box.NotaryID),
		box:        box,
		number:     number,
		txType:     txType,
		originType: OriginNotApplicable,
		dateSigned: dateSigned.UTC().Truncate(time.Second),
	}, nil
}

// newTransactionFromAbbrev builds an abbreviated transaction from a
// parsed box summary record.  The result has no signature and no items
// until hydrated through its box receipt.
func newTransactionFromAbbrev(box BoxContext, rec *abbrevRecord) *Transaction {
	return &Transaction{
		identity: newIdentity(box.NymID, box.AccountID,
			box.NotaryID),
		box:          box,
		number:       rec.TransactionNum,
		referenceNum: rec.ReferenceNum,
		inRefDisplay: rec.InRefDisplay,
		txType:       rec.Type,
		originType:   rec.OriginType,
		dateSigned:   rec.DateSigned,
		originNum:    rec.OriginNum,
		originSet:    rec.OriginNum != 0,
		ClosingNum:   rec.ClosingNum,
		RequestNum:   rec.RequestNum,
		ReplySuccess: rec.ReplySuccess,
		Adjustment:   rec.Adjustment,
		DisplayValue: rec.DisplayValue,
		NumberList:   rec.NumberList,
		abbreviated:  true,
		receiptHash:  rec.ReceiptHash,
	}
}

// Number returns the transaction number.
func (t *Transaction) Number() int64 {
	return t.number
}

// Type returns the transaction type.
func (t *Transaction) Type() TxType {
	return t.txType
}

// Box returns the box context the transaction was constructed with.
func (t *Transaction) Box() BoxContext {
	return t.box
}

// ReferenceNum returns the in-reference-to number.
func (t *Transaction) ReferenceNum() int64 {
	return t.referenceNum
}

// SetReferenceNum sets the in-reference-to number.  The transaction must
// not be signed yet.
func (t *Transaction) SetReferenceNum(n int64) error {
	if t.Signed() {
		return errFrozen(t)
	}
	t.referenceNum = n
	return nil
}

// InRefDisplay returns the display reference number shown to users.
func (t *Transaction) InRefDisplay() int64 {
	if t.inRefDisplay != 0 {
		return t.inRefDisplay
	}
	return t.referenceNum
}

// SetInRefDisplay sets the display reference number.  The transaction
// must not be signed yet.
func (t *Transaction) SetInRefDisplay(n int64) error {
	if t.Signed() {
		return errFrozen(t)
	}
	t.inRefDisplay = n
	return nil
}

// DateSigned returns the transaction's signing timestamp.
func (t *Transaction) DateSigned() time.Time {
	return t.dateSigned
}

// OriginType returns the origin qualifier of the receipt chain.
func (t *Transaction) OriginType() OriginType {
	return t.originType
}

// SetOriginType sets the origin qualifier.  The transaction must not be
// signed yet.
func (t *Transaction) SetOriginType(ot OriginType) error {
	if t.Signed() {
		return errFrozen(t)
	}
	t.originType = ot
	return nil
}

// NumberOfOrigin returns the number of the operation this receipt chain
// originates from.  Unless explicitly set or parsed, it defaults to the
// transaction's own number; the result is cached.
func (t *Transaction) NumberOfOrigin() int64 {
	if !t.originSet {
		t.originNum = t.number
		t.originSet = true
	}
	return t.originNum
}

// SetNumberOfOrigin overrides the lazily computed number of origin.  The
// transaction must not be signed yet.
func (t *Transaction) SetNumberOfOrigin(n int64) error {
	if t.Signed() {
		return errFrozen(t)
	}
	t.originNum = n
	t.originSet = true
	return nil
}

// IsAbbreviated reports whether the transaction is the abbreviated box
// summary rather than the full form.
func (t *Transaction) IsAbbreviated() bool {
	return t.abbreviated
}

// ReceiptHash returns the expected hash of the full form.  Only set for
// abbreviated transactions and full transactions that have been signed.
func (t *Transaction) ReceiptHash() otid.ID {
	return t.receiptHash
}

// Signed reports whether the transaction carries a signature and is
// therefore frozen.
func (t *Transaction) Signed() bool {
	return t.signature != nil
}

// errFrozen builds the error for mutations of a signed transaction.
func errFrozen(t *Transaction) error {
	return ledgerError(ErrInternal, fmt.Sprintf("transaction %d is "+
		"signed and immutable", t.number), nil)
}

// AddItem appends an item to the transaction's ordered list, taking
// ownership of it.  The item's owning number must match and the
// transaction must be full form and unsigned.
func (t *Transaction) AddItem(item *Item) error {
	if t.abbreviated {
		return ledgerError(ErrInternal, fmt.Sprintf("cannot add item "+
			"to abbreviated transaction %d", t.number), nil)
	}
	if t.Signed() {
		return errFrozen(t)
	}
	if item.TransactionNum != t.number {
		return ledgerError(ErrInternal, fmt.Sprintf("item claims "+
			"transaction %d but is being added to %d",
			item.TransactionNum, t.number), nil)
	}
	t.items = append(t.items, item)
	return nil
}

// Items returns the transaction's item list.  The list is empty for
// abbreviated transactions until they are hydrated.
func (t *Transaction) Items() []*Item {
	items := make([]*Item, len(t.items))
	copy(items, t.items)
	return items
}

// GetItem returns the first item of the passed type, or nil when no such
// item is present.
func (t *Transaction) GetItem(itemType ItemType) *Item {
	for _, item := range t.items {
		if item.Type == itemType {
			return item
		}
	}
	return nil
}

// serializePayload encodes the unsigned full-form contents.
func (t *Transaction) serializePayload() ([]byte, error) {
	if t.abbreviated {
		return nil, ledgerError(ErrInternal, fmt.Sprintf(
			"abbreviated transaction %d cannot be serialized in "+
				"full", t.number), nil)
	}

	number := uint64(t.number)
	refNum := uint64(t.referenceNum)
	inRefDisplay := uint64(t.inRefDisplay)
	dateSigned := uint64(t.dateSigned.Unix())
	txType := uint8(t.txType)
	originType := uint8(t.originType)
	nymID := [otid.Size]byte(t.purportedNymID)
	accountID := [otid.Size]byte(t.purportedAccountID)
	notaryID := [otid.Size]byte(t.purportedNotaryID)
	adjustment := uint64(t.Adjustment)
	displayValue := uint64(t.DisplayValue)

	records := []tlv.Record{
		tlv.MakePrimitiveRecord(txFieldNumber, &number),
		tlv.MakePrimitiveRecord(txFieldRefNum, &refNum),
		tlv.MakePrimitiveRecord(txFieldInRefDisplay, &inRefDisplay),
		tlv.MakePrimitiveRecord(txFieldDateSigned, &dateSigned),
		tlv.MakePrimitiveRecord(txFieldType, &txType),
	}
	if t.originSet && t.originNum != t.number {
		originNum := uint64(t.originNum)
		records = append(records, tlv.MakePrimitiveRecord(
			txFieldOriginNum, &originNum,
		))
	}
	records = append(records,
		tlv.MakePrimitiveRecord(txFieldOriginType, &originType),
		tlv.MakePrimitiveRecord(txFieldNymID, &nymID),
		tlv.MakePrimitiveRecord(txFieldAccountID, &accountID),
		tlv.MakePrimitiveRecord(txFieldNotaryID, &notaryID),
	)
	if t.txType.HasClosingNumber() {
		closingNum := uint64(t.ClosingNum)
		records = append(records, tlv.MakePrimitiveRecord(
			txFieldClosingNum, &closingNum,
		))
	}
	if t.txType == TxReplyNotice {
		requestNum := uint64(t.RequestNum)
		replyOK := uint8(0)
		if t.ReplySuccess {
			replyOK = 1
		}
		records = append(records,
			tlv.MakePrimitiveRecord(txFieldRequestNum,
				&requestNum),
			tlv.MakePrimitiveRecord(txFieldReplyOK, &replyOK),
		)
	}
	if t.Cancelled {
		cancelled := uint8(1)
		records = append(records, tlv.MakePrimitiveRecord(
			txFieldCancelled, &cancelled,
		))
	}
	if len(t.InRefBlob) > 0 {
		records = append(records, tlv.MakePrimitiveRecord(
			txFieldInRefBlob, &t.InRefBlob,
		))
	}
	if len(t.NumberList) > 0 {
		packed := numlist.Pack(t.NumberList)
		records = append(records, tlv.MakePrimitiveRecord(
			txFieldNumberList, &packed,
		))
	}
	records = append(records,
		tlv.MakePrimitiveRecord(txFieldAdjustment, &adjustment),
		tlv.MakePrimitiveRecord(txFieldDisplayValue, &displayValue),
	)
	if len(t.items) > 0 {
		itemBlobs := make([][]byte, 0, len(t.items))
		for _, item := range t.items {
			blob, err := item.SignedBytes()
			if err != nil {
				return nil, err
			}
			itemBlobs = append(itemBlobs, blob)
		}
		packed := packBlobs(itemBlobs)
		records = append(records, tlv.MakePrimitiveRecord(
			txFieldItems, &packed,
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

// Sign serializes the transaction and signs it, freezing it against
// further mutation.  Every contained item must already be signed.
func (t *Transaction) Sign(signer otcrypto.Signer) error {
	if t.Signed() {
		return errFrozen(t)
	}
	for _, item := range t.items {
		if !item.Signed() {
			return ledgerError(ErrInternal, fmt.Sprintf(
				"transaction %d contains an unsigned %s item",
				t.number, item.Type), nil)
		}
	}
	payload, err := t.serializePayload()
	if err != nil {
		return err
	}
	sig, err := signer.Sign(payload)
	if err != nil {
		return err
	}
	t.payload = payload
	t.signature = sig

	// The receipt hash of a full transaction is the content hash of
	// its signed serialized form.
	raw, err := t.SignedBytes()
	if err != nil {
		return err
	}
	t.receiptHash = otid.FromContent(raw)
	return nil
}

// SignedBytes returns the serialized signed form of the transaction,
// which is also the box receipt representation.
func (t *Transaction) SignedBytes() ([]byte, error) {
	if !t.Signed() {
		return nil, ledgerError(ErrInternal, fmt.Sprintf(
			"transaction %d is not signed", t.number), nil)
	}
	env := otcrypto.Envelope{Payload: t.payload, Signature: t.signature}
	return env.Bytes()
}

// VerifySignature checks the transaction signature against the passed
// verifier and public key.
func (t *Transaction) VerifySignature(v otcrypto.Verifier,
	pubKey []byte) error {

	if !t.Signed() {
		return ledgerError(ErrVerification, fmt.Sprintf(
			"transaction %d is not signed", t.number), nil)
	}
	if !v.Verify(t.payload, t.signature, pubKey) {
		return ledgerError(ErrVerification, fmt.Sprintf("signature "+
			"verification failed for transaction %d", t.number),
			nil)
	}
	return nil
}

// VerifyAccount composes the structural identity check with signature
// verification.  This is the canonical trust check before acting on a
// loaded transaction.
func (t *Transaction) VerifyAccount(v otcrypto.Verifier,
	pubKey []byte) error {

	if err := t.VerifyContractID(); err != nil {
		return err
	}
	if err := t.verifyNymID(); err != nil {
		return err
	}
	return t.VerifySignature(v, pubKey)
}

// ParseTransaction decodes the serialized signed form of a full
// transaction for the passed box.  The box identifiers become the
// expected values and the parsed identifiers the purported ones; callers
// should run VerifyAccount before trusting the result.
func ParseTransaction(box BoxContext, raw []byte) (*Transaction, error) {
	env, err := otcrypto.ParseEnvelope(raw)
	if err != nil {
		return nil, ledgerError(ErrFormat, "malformed transaction "+
			"envelope", err)
	}

	var (
		number, refNum       uint64
		inRefDisplay         uint64
		dateSigned           uint64
		txType, originType   uint8
		originNum            uint64
		nymID, accountID     [otid.Size]byte
		notaryID             [otid.Size]byte
		closingNum           uint64
		requestNum           uint64
		replyOK, cancelled   uint8
		inRefBlob, packedNum []byte
		adjustment           uint64
		displayValue         uint64
		packedItems          []byte
	)
	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(txFieldNumber, &number),
		tlv.MakePrimitiveRecord(txFieldRefNum, &refNum),
		tlv.MakePrimitiveRecord(txFieldInRefDisplay, &inRefDisplay),
		tlv.MakePrimitiveRecord(txFieldDateSigned, &dateSigned),
		tlv.MakePrimitiveRecord(txFieldType, &txType),
		tlv.MakePrimitiveRecord(txFieldOriginNum, &originNum),
		tlv.MakePrimitiveRecord(txFieldOriginType, &originType),
		tlv.MakePrimitiveRecord(txFieldNymID, &nymID),
		tlv.MakePrimitiveRecord(txFieldAccountID, &accountID),
		tlv.MakePrimitiveRecord(txFieldNotaryID, &notaryID),
		tlv.MakePrimitiveRecord(txFieldClosingNum, &closingNum),
		tlv.MakePrimitiveRecord(txFieldRequestNum, &requestNum),
		tlv.MakePrimitiveRecord(txFieldReplyOK, &replyOK),
		tlv.MakePrimitiveRecord(txFieldCancelled, &cancelled),
		tlv.MakePrimitiveRecord(txFieldInRefBlob, &inRefBlob),
		tlv.MakePrimitiveRecord(txFieldNumberList, &packedNum),
		tlv.MakePrimitiveRecord(txFieldAdjustment, &adjustment),
		tlv.MakePrimitiveRecord(txFieldDisplayValue, &displayValue),
		tlv.MakePrimitiveRecord(txFieldItems, &packedItems),
	)
	if err != nil {
		return nil, err
	}
	parsedTypes, err := stream.DecodeWithParsedTypes(
		bytes.NewReader(env.Payload),
	)
	if err != nil {
		return nil, ledgerError(ErrFormat, "malformed transaction "+
			"payload", err)
	}
	for _, required := range []tlv.Type{
		txFieldNumber, txFieldRefNum, txFieldDateSigned, txFieldType,
		txFieldOriginType, txFieldNymID, txFieldAccountID,
		txFieldNotaryID,
	} {
		if _, ok := parsedTypes[required]; !ok {
			return nil, ledgerError(ErrFormat, fmt.Sprintf(
				"transaction payload is missing required "+
					"field %d", required), nil)
		}
	}

	parsedType := TxType(txType)
	if !parsedType.Valid() {
		return nil, ledgerError(ErrFormat, fmt.Sprintf("transaction "+
			"payload has unknown type %d", txType), nil)
	}
	parsedOrigin := OriginType(originType)
	if !parsedOrigin.Valid() {
		return nil, ledgerError(ErrFormat, fmt.Sprintf("transaction "+
			"payload has unknown origin type %d", originType), nil)
	}
	numberList, err := numlist.Unpack(packedNum)
	if err != nil {
		return nil, ledgerError(ErrFormat, "malformed embedded "+
			"number list", err)
	}

	t := &Transaction{
		identity: newIdentity(box.NymID, box.AccountID,
			box.NotaryID),
		box:          box,
		number:       int64(number),
		referenceNum: int64(refNum),
		inRefDisplay: int64(inRefDisplay),
		txType:       parsedType,
		originType:   parsedOrigin,
		dateSigned:   time.Unix(int64(dateSigned), 0).UTC(),
		ClosingNum:   int64(closingNum),
		RequestNum:   int64(requestNum),
		ReplySuccess: replyOK == 1,
		Cancelled:    cancelled == 1,
		Adjustment:   int64(adjustment),
		DisplayValue: int64(displayValue),
		NumberList:   numberList,
		InRefBlob:    inRefBlob,
		payload:      env.Payload,
		signature:    env.Signature,
	}
	t.setPurported(otid.ID(nymID), otid.ID(accountID), otid.ID(notaryID))
	if _, ok := parsedTypes[txFieldOriginNum]; ok {
		t.originNum = int64(originNum)
		t.originSet = true
	}

	itemBlobs, err := unpackBlobs(packedItems)
	if err != nil {
		return nil, err
	}
	for _, blob := range itemBlobs {
		item, err := ParseItem(blob)
		if err != nil {
			return nil, err
		}
		t.items = append(t.items, item)
	}

	t.receiptHash = otid.FromContent(raw)
	return t, nil
}

// storeKey derives the receipt store key for the transaction from its
// box context.  Message boxes are never receipt split.
func (t *Transaction) storeKey() (receiptstore.Key, error) {
	if t.box.BoxType == Message {
		return receiptstore.Key{}, ledgerError(ErrWrongBox,
			"message ledgers have no box receipts", nil)
	}
	code, err := t.box.BoxType.StoreCode()
	if err != nil {
		return receiptstore.Key{}, err
	}
	return receiptstore.Key{
		BoxCode:  code,
		OwnerID:  t.box.AccountID.String(),
		NotaryID: t.box.NotaryID.String(),
		TxNum:    t.number,
	}, nil
}

// SaveBoxReceipt persists the transaction's full signed form in the
// receipt store under its canonical key.
func (t *Transaction) SaveBoxReceipt(store receiptstore.Store) error {
	if t.abbreviated {
		return ledgerError(ErrInternal, fmt.Sprintf("abbreviated "+
			"transaction %d has no full form to save", t.number),
			nil)
	}
	key, err := t.storeKey()
	if err != nil {
		return err
	}
	raw, err := t.SignedBytes()
	if err != nil {
		return err
	}
	if err := store.Put(key, raw); err != nil {
		return ledgerError(ErrDatabase, fmt.Sprintf("failed to store "+
			"box receipt %s", key), err)
	}
	return nil
}

// LoadBoxReceipt fetches, parses, and verifies the full form of an
// abbreviated transaction.  On success the verified full transaction is
// returned; the receiver is left untouched either way.
func (t *Transaction) LoadBoxReceipt(store receiptstore.Store) (*Transaction, error) {
	if !t.abbreviated {
		return nil, ledgerError(ErrInternal, fmt.Sprintf(
			"transaction %d is already in full form", t.number),
			nil)
	}
	key, err := t.storeKey()
	if err != nil {
		return nil, err
	}
	raw, err := store.Fetch(key)
	if err != nil {
		if err == receiptstore.ErrNotFound {
			return nil, ledgerError(ErrMissingReceipt,
				fmt.Sprintf("box receipt %s is not "+
					"available", key), nil)
		}
		return nil, ledgerError(ErrDatabase, fmt.Sprintf("failed to "+
			"fetch box receipt %s", key), err)
	}
	full, err := ParseTransaction(t.box, raw)
	if err != nil {
		return nil, err
	}
	if err := t.VerifyBoxReceipt(full); err != nil {
		return nil, err
	}
	return full, nil
}

// DeleteBoxReceipt marks the transaction's stored receipt as deleted.
// The record is kept in place so it can still be audited and recovered.
func (t *Transaction) DeleteBoxReceipt(store receiptstore.Store) error {
	key, err := t.storeKey()
	if err != nil {
		return err
	}
	if err := store.MarkDeleted(key); err != nil {
		if err == receiptstore.ErrNotFound {
			return ledgerError(ErrMissingReceipt, fmt.Sprintf(
				"box receipt %s is not stored", key), nil)
		}
		return ledgerError(ErrDatabase, fmt.Sprintf("failed to mark "+
			"box receipt %s deleted", key), err)
	}
	return nil
}

// VerifyBoxReceipt is called on an abbreviated transaction with a
// freshly loaded full-form candidate.  It confirms that the candidate's
// content hash matches the stored receipt hash and that the summary
// fields are consistent before the caller may treat the candidate as
// authoritative.
func (t *Transaction) VerifyBoxReceipt(full *Transaction) error {
	if !t.abbreviated {
		return ledgerError(ErrInternal, fmt.Sprintf("transaction %d "+
			"is not abbreviated", t.number), nil)
	}
	if full.abbreviated {
		return ledgerError(ErrInternal, fmt.Sprintf("candidate for "+
			"transaction %d is not in full form", t.number), nil)
	}
	if full.receiptHash != t.receiptHash {
		return ledgerError(ErrVerification, fmt.Sprintf("box receipt "+
			"hash mismatch for transaction %d: expected %s, got "+
			"%s", t.number, t.receiptHash, full.receiptHash), nil)
	}
	if full.number != t.number {
		return ledgerError(ErrVerification, fmt.Sprintf("box receipt "+
			"number mismatch: expected %d, got %d", t.number,
			full.number), nil)
	}
	if full.referenceNum != t.referenceNum {
		return ledgerError(ErrVerification, fmt.Sprintf("box receipt "+
			"reference mismatch for transaction %d: expected "+
			"%d, got %d", t.number, t.referenceNum,
			full.referenceNum), nil)
	}
	if full.InRefDisplay() != t.InRefDisplay() {
		return ledgerError(ErrVerification, fmt.Sprintf("box receipt "+
			"display reference mismatch for transaction %d",
			t.number), nil)
	}
	if t.txType == TxReplyNotice {
		if full.RequestNum != t.RequestNum ||
			full.ReplySuccess != t.ReplySuccess {

			return ledgerError(ErrVerification, fmt.Sprintf(
				"reply notice fields mismatch for "+
					"transaction %d", t.number), nil)
		}
	}
	return nil
}

// abbrev produces the transaction's abbreviated summary record.  A full
// transaction must be signed first, since the receipt hash covers the
// signed serialized form.
func (t *Transaction) abbrev() (*abbrevRecord, error) {
	if !t.abbreviated && !t.Signed() {
		return nil, ledgerError(ErrInternal, fmt.Sprintf(
			"transaction %d must be signed before abbreviating",
			t.number), nil)
	}
	rec := &abbrevRecord{
		TransactionNum: t.number,
		ReferenceNum:   t.referenceNum,
		InRefDisplay:   t.inRefDisplay,
		DateSigned:     t.dateSigned,
		Type:           t.txType,
		OriginType:     t.originType,
		ReceiptHash:    t.receiptHash,
		Adjustment:     t.Adjustment,
		DisplayValue:   t.DisplayValue,
		ClosingNum:     t.ClosingNum,
		RequestNum:     t.RequestNum,
		ReplySuccess:   t.ReplySuccess,
		NumberList:     t.NumberList,
	}
	if t.originSet && t.originNum != t.number {
		rec.OriginNum = t.originNum
	}
	return rec, nil
}

// GetSuccess scans the transaction's own items for acknowledgement or
// rejection markers.  Receipts and notices always report (false, false):
// they are not themselves "the" transaction, and callers needing their
// outcome must look at the operation they reference.
func (t *Transaction) GetSuccess() (hasSuccess, isSuccess bool) {
	if t.txType.IsReceipt() || t.txType.IsNotice() {
		return false, false
	}
	for _, item := range t.items {
		switch item.Status {
		case StatusAcknowledgement:
			return true, true
		case StatusRejection:
			return true, false
		}
	}
	return false, false
}
