// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/lightningnetwork/lnd/tlv"
	"github.com/opentxs/otledger/otcrypto"
	"github.com/opentxs/otledger/otid"
	"github.com/opentxs/otledger/receiptstore"
)

// LatestVersion is the most recent serialized box version.  Versions
// start at 1 and increment for each format change.
const LatestVersion = 1

// Ledger owns and indexes the transactions belonging to one box.  No two
// transactions in a ledger ever share a transaction number; the
// invariant is enforced at insertion and at load.
//
// Message ledgers always carry full transaction forms inline.  Every
// other box type stores abbreviated summary records and persists the
// full forms separately as box receipts.
//
// All exported methods are safe for concurrent use.  A transaction
// handle obtained before an abbreviated-to-full swap does not observe
// the swap; re-fetch by number after hydrating.
type Ledger struct {
	identity

	mtx     sync.RWMutex
	boxType BoxType
	txByNum map[int64]*Transaction
	order   []int64

	// payload and signature cache the most recent signed
	// serialization.
	payload   []byte
	signature []byte
}

// LoadInfo reports one-shot observations made while loading a box.
type LoadInfo struct {
	// LegacyData is true when a non-message box carried full
	// transaction forms inline, indicating a pre-abbreviation format.
	// Callers should re-save the box receipts and the box.
	LegacyData bool

	// LegacyNumbers lists the transactions that were loaded in full
	// from legacy inline data.
	LegacyNumbers []int64

	// IDMismatch is true when the purported box identifiers differ
	// from the expected ones.  The load still completes; VerifyAccount
	// adjudicates formally.
	IDMismatch bool
}

// Ledger payload TLV type assignments.  Stable; do not renumber.
const (
	boxFieldVersion    tlv.Type = 1
	boxFieldType       tlv.Type = 2
	boxFieldNymID      tlv.Type = 3
	boxFieldAccountID  tlv.Type = 4
	boxFieldNotaryID   tlv.Type = 5
	boxFieldNumPartial tlv.Type = 6
	boxFieldRecords    tlv.Type = 7
	boxFieldFullTxs    tlv.Type = 8
)

// NewLedger returns an empty ledger for the passed box.
func NewLedger(boxType BoxType, nymID, accountID,
	notaryID otid.ID) (*Ledger, error) {

	if !boxType.Valid() {
		return nil, ledgerError(ErrInternal, fmt.Sprintf("cannot "+
			"create ledger with box type %d", uint8(boxType)),
			nil)
	}
	return &Ledger{
		identity: newIdentity(nymID, accountID, notaryID),
		boxType:  boxType,
		txByNum:  make(map[int64]*Transaction),
	}, nil
}

// Type returns the ledger's box type.
func (l *Ledger) Type() BoxType {
	return l.boxType
}

// NymID returns the expected owner nym identifier.
func (l *Ledger) NymID() otid.ID {
	return l.realNymID
}

// AccountID returns the expected account identifier.
func (l *Ledger) AccountID() otid.ID {
	return l.realAccountID
}

// NotaryID returns the expected notary identifier.
func (l *Ledger) NotaryID() otid.ID {
	return l.realNotaryID
}

// BoxContext returns the construction context for transactions belonging
// to this ledger.
func (l *Ledger) BoxContext() BoxContext {
	return BoxContext{
		BoxType:   l.boxType,
		NymID:     l.realNymID,
		AccountID: l.realAccountID,
		NotaryID:  l.realNotaryID,
	}
}

// Count returns the number of transactions in the ledger.
func (l *Ledger) Count() int {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	return len(l.txByNum)
}

// AddTransaction inserts a transaction into the box.  The insert fails
// with ErrDuplicateNumber when a transaction with the same number is
// already present, leaving the box unchanged.
func (l *Ledger) AddTransaction(t *Transaction) error {
	if t.Number() <= 0 {
		return ledgerError(ErrNumbering, fmt.Sprintf("invalid "+
			"transaction number %d", t.Number()), nil)
	}

	l.mtx.Lock()
	defer l.mtx.Unlock()

	if _, exists := l.txByNum[t.Number()]; exists {
		return ledgerError(ErrDuplicateNumber, fmt.Sprintf(
			"transaction %d already exists in %s for account %s",
			t.Number(), l.boxType, l.realAccountID), nil)
	}
	l.txByNum[t.Number()] = t
	l.order = append(l.order, t.Number())
	return nil
}

// RemoveTransaction drops the transaction with the passed number from
// the box.  The transaction itself remains usable by any holder.
func (l *Ledger) RemoveTransaction(number int64) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	if _, exists := l.txByNum[number]; !exists {
		return ledgerError(ErrNotFound, fmt.Sprintf("transaction %d "+
			"is not in this %s", number, l.boxType), nil)
	}
	delete(l.txByNum, number)
	for i, n := range l.order {
		if n == number {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return nil
}

// GetTransaction returns the transaction with the passed number, or nil
// when the box does not contain it.
func (l *Ledger) GetTransaction(number int64) *Transaction {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	return l.txByNum[number]
}

// GetTransactionByIndex returns the transaction at the passed ordinal in
// the box's current iteration order, or nil when out of range.
func (l *Ledger) GetTransactionByIndex(index int) *Transaction {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	if index < 0 || index >= len(l.order) {
		return nil
	}
	return l.txByNum[l.order[index]]
}

// Transactions returns a snapshot of the box contents in iteration
// order.
func (l *Ledger) Transactions() []*Transaction {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	return l.transactionsLocked()
}

// transactionsLocked is Transactions without the lock, for reuse by
// holders of either lock.
func (l *Ledger) transactionsLocked() []*Transaction {
	txs := make([]*Transaction, 0, len(l.order))
	for _, n := range l.order {
		txs = append(txs, l.txByNum[n])
	}
	return txs
}

// serializePayload encodes the unsigned box contents.  Message ledgers
// serialize every transaction in full, inline; every other box type
// serializes abbreviated summary records only, with the full forms
// persisted separately as box receipts.
func (l *Ledger) serializePayload() ([]byte, error) {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	version := uint8(LatestVersion)
	boxType := uint8(l.boxType)
	nymID := [otid.Size]byte(l.purportedNymID)
	accountID := [otid.Size]byte(l.purportedAccountID)
	notaryID := [otid.Size]byte(l.purportedNotaryID)

	records := []tlv.Record{
		tlv.MakePrimitiveRecord(boxFieldVersion, &version),
		tlv.MakePrimitiveRecord(boxFieldType, &boxType),
		tlv.MakePrimitiveRecord(boxFieldNymID, &nymID),
		tlv.MakePrimitiveRecord(boxFieldAccountID, &accountID),
		tlv.MakePrimitiveRecord(boxFieldNotaryID, &notaryID),
	}

	var numPartial uint64
	if l.boxType == Message {
		blobs := make([][]byte, 0, len(l.order))
		for _, t := range l.transactionsLocked() {
			raw, err := t.SignedBytes()
			if err != nil {
				return nil, err
			}
			blobs = append(blobs, raw)
		}
		records = append(records, tlv.MakePrimitiveRecord(
			boxFieldNumPartial, &numPartial,
		))
		if len(blobs) > 0 {
			packed := packBlobs(blobs)
			records = append(records, tlv.MakePrimitiveRecord(
				boxFieldFullTxs, &packed,
			))
		}
	} else {
		blobs := make([][]byte, 0, len(l.order))
		for _, t := range l.transactionsLocked() {
			rec, err := t.abbrev()
			if err != nil {
				return nil, err
			}
			raw, err := rec.encode()
			if err != nil {
				return nil, err
			}
			blobs = append(blobs, raw)
		}
		numPartial = uint64(len(blobs))
		records = append(records, tlv.MakePrimitiveRecord(
			boxFieldNumPartial, &numPartial,
		))
		if len(blobs) > 0 {
			packed := packBlobs(blobs)
			records = append(records, tlv.MakePrimitiveRecord(
				boxFieldRecords, &packed,
			))
		}
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

// Sign serializes the current box contents and signs them.  Unlike
// transactions, a ledger is re-signed on every save, since its contents
// change as receipts come and go.
func (l *Ledger) Sign(signer otcrypto.Signer) error {
	payload, err := l.serializePayload()
	if err != nil {
		return err
	}
	sig, err := signer.Sign(payload)
	if err != nil {
		return err
	}

	l.mtx.Lock()
	defer l.mtx.Unlock()

	l.payload = payload
	l.signature = sig
	return nil
}

// SignedBytes returns the serialized signed form of the box as of the
// most recent Sign.
func (l *Ledger) SignedBytes() ([]byte, error) {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	if l.signature == nil {
		return nil, ledgerError(ErrInternal, fmt.Sprintf("%s for "+
			"account %s is not signed", l.boxType,
			l.realAccountID), nil)
	}
	env := otcrypto.Envelope{Payload: l.payload, Signature: l.signature}
	return env.Bytes()
}

// VerifySignature checks the ledger signature against the passed
// verifier and public key.
func (l *Ledger) VerifySignature(v otcrypto.Verifier, pubKey []byte) error {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	if l.signature == nil {
		return ledgerError(ErrVerification, fmt.Sprintf("%s for "+
			"account %s is not signed", l.boxType,
			l.realAccountID), nil)
	}
	if !v.Verify(l.payload, l.signature, pubKey) {
		return ledgerError(ErrVerification, fmt.Sprintf("signature "+
			"verification failed for %s owned by %s", l.boxType,
			l.realNymID), nil)
	}
	return nil
}

// VerifyAccount composes the structural identity check with signature
// verification.  This is the canonical trust check before acting on a
// loaded ledger.
func (l *Ledger) VerifyAccount(v otcrypto.Verifier, pubKey []byte) error {
	if err := l.VerifyContractID(); err != nil {
		return err
	}
	if err := l.verifyNymID(); err != nil {
		return err
	}
	return l.VerifySignature(v, pubKey)
}

// LoadFromBytes parses a serialized signed box into this ledger, which
// must be empty.  Message boxes must contain exactly zero abbreviated
// records; every other box type expects the declared number of
// abbreviated records.  Duplicate transaction numbers and malformed
// records are fatal; the ledger is left unusable on error.
//
// The returned LoadInfo reports legacy inline data and purported
// identifier mismatches; the latter are formally adjudicated by
// VerifyAccount.
func (l *Ledger) LoadFromBytes(raw []byte) (*LoadInfo, error) {
	env, err := otcrypto.ParseEnvelope(raw)
	if err != nil {
		return nil, ledgerError(ErrFormat, "malformed box envelope",
			err)
	}

	var (
		version, boxType uint8
		nymID, accountID [otid.Size]byte
		notaryID         [otid.Size]byte
		numPartial       uint64
		packedRecords    []byte
		packedFull       []byte
	)
	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(boxFieldVersion, &version),
		tlv.MakePrimitiveRecord(boxFieldType, &boxType),
		tlv.MakePrimitiveRecord(boxFieldNymID, &nymID),
		tlv.MakePrimitiveRecord(boxFieldAccountID, &accountID),
		tlv.MakePrimitiveRecord(boxFieldNotaryID, &notaryID),
		tlv.MakePrimitiveRecord(boxFieldNumPartial, &numPartial),
		tlv.MakePrimitiveRecord(boxFieldRecords, &packedRecords),
		tlv.MakePrimitiveRecord(boxFieldFullTxs, &packedFull),
	)
	if err != nil {
		return nil, err
	}
	parsedTypes, err := stream.DecodeWithParsedTypes(
		bytes.NewReader(env.Payload),
	)
	if err != nil {
		return nil, ledgerError(ErrFormat, "malformed box payload",
			err)
	}
	for _, required := range []tlv.Type{
		boxFieldVersion, boxFieldType, boxFieldNymID,
		boxFieldAccountID, boxFieldNotaryID, boxFieldNumPartial,
	} {
		if _, ok := parsedTypes[required]; !ok {
			return nil, ledgerError(ErrFormat, fmt.Sprintf("box "+
				"payload is missing required field %d",
				required), nil)
		}
	}
	if version == 0 || version > LatestVersion {
		return nil, ledgerError(ErrFormat, fmt.Sprintf("unsupported "+
			"box version %d", version), nil)
	}
	parsedBoxType := BoxType(boxType)
	if !parsedBoxType.Valid() {
		return nil, ledgerError(ErrFormat, fmt.Sprintf("box payload "+
			"has unknown box type %d", boxType), nil)
	}
	if parsedBoxType != l.boxType {
		return nil, ledgerError(ErrWrongBox, fmt.Sprintf("box "+
			"payload is a %s, expected %s", parsedBoxType,
			l.boxType), nil)
	}

	// A message ledger must not declare or carry abbreviated records.
	if l.boxType == Message {
		if numPartial > 0 {
			return nil, ledgerError(ErrFormat, fmt.Sprintf(
				"message box declares %d abbreviated "+
					"records", numPartial), nil)
		}
		if len(packedRecords) > 0 {
			return nil, ledgerError(ErrFormat, "message box "+
				"carries abbreviated records", nil)
		}
	}

	recordBlobs, err := unpackBlobs(packedRecords)
	if err != nil {
		return nil, err
	}
	if l.boxType != Message && uint64(len(recordBlobs)) != numPartial {
		return nil, ledgerError(ErrFormat, fmt.Sprintf("box declares "+
			"%d abbreviated records but carries %d", numPartial,
			len(recordBlobs)), nil)
	}
	fullBlobs, err := unpackBlobs(packedFull)
	if err != nil {
		return nil, err
	}

	l.mtx.Lock()
	defer l.mtx.Unlock()

	if len(l.txByNum) != 0 {
		return nil, ledgerError(ErrInternal, "cannot load into a "+
			"non-empty ledger", nil)
	}

	l.setPurported(otid.ID(nymID), otid.ID(accountID), otid.ID(notaryID))
	box := BoxContext{
		BoxType:   l.boxType,
		NymID:     l.realNymID,
		AccountID: l.realAccountID,
		NotaryID:  l.realNotaryID,
	}

	info := &LoadInfo{}
	insert := func(t *Transaction) error {
		if _, exists := l.txByNum[t.Number()]; exists {
			return ledgerError(ErrDuplicateNumber, fmt.Sprintf(
				"transaction %d appears twice in %s for "+
					"account %s", t.Number(), l.boxType,
				l.purportedAccountID), nil)
		}
		l.txByNum[t.Number()] = t
		l.order = append(l.order, t.Number())
		return nil
	}

	for _, blob := range recordBlobs {
		rec, err := decodeAbbrevRecord(blob)
		if err != nil {
			l.resetLocked()
			return nil, err
		}
		if err := insert(newTransactionFromAbbrev(box, rec)); err != nil {
			l.resetLocked()
			return nil, err
		}
	}

	// Full transactions inline in a non-message box are legacy data
	// from before receipts were split out.
	for _, blob := range fullBlobs {
		t, err := ParseTransaction(box, blob)
		if err != nil {
			l.resetLocked()
			return nil, err
		}
		if err := insert(t); err != nil {
			l.resetLocked()
			return nil, err
		}
		if l.boxType != Message {
			info.LegacyData = true
			info.LegacyNumbers = append(info.LegacyNumbers,
				t.Number())
		}
	}

	l.payload = env.Payload
	l.signature = env.Signature

	if l.purportedNymID != l.realNymID ||
		l.purportedAccountID != l.realAccountID ||
		l.purportedNotaryID != l.realNotaryID {

		info.IDMismatch = true
		log.Warnf("Loaded %s with purported ids (nym %s, account "+
			"%s, notary %s) differing from expected (nym %s, "+
			"account %s, notary %s)", l.boxType,
			l.purportedNymID, l.purportedAccountID,
			l.purportedNotaryID, l.realNymID, l.realAccountID,
			l.realNotaryID)
	}
	if info.LegacyData {
		log.Infof("Loaded %s for account %s with %d legacy inline "+
			"receipts", l.boxType, l.realAccountID,
			len(info.LegacyNumbers))
	}
	return info, nil
}

// resetLocked clears a partially populated box after a failed load.
func (l *Ledger) resetLocked() {
	l.txByNum = make(map[int64]*Transaction)
	l.order = nil
	l.payload = nil
	l.signature = nil
}

// LoadFromStore fetches the serialized box from the receipt store and
// parses it.  When legacy inline data is detected, each legacy
// transaction's box receipt is re-saved if not already separately
// persisted, so a subsequent save of the box can switch to abbreviated
// records safely.
func (l *Ledger) LoadFromStore(store receiptstore.Store) (*LoadInfo, error) {
	if l.boxType == Message {
		return nil, ledgerError(ErrWrongBox, "message ledgers are "+
			"never persisted", nil)
	}
	code, err := l.boxType.StoreCode()
	if err != nil {
		return nil, err
	}
	raw, err := store.FetchBox(code, l.realAccountID.String(),
		l.realNotaryID.String())
	if err != nil {
		if err == receiptstore.ErrNotFound {
			return nil, ledgerError(ErrNotFound, fmt.Sprintf(
				"no stored %s for account %s at notary %s",
				l.boxType, l.realAccountID, l.realNotaryID),
				nil)
		}
		return nil, ledgerError(ErrDatabase, fmt.Sprintf("failed to "+
			"fetch %s for account %s", l.boxType,
			l.realAccountID), err)
	}

	info, err := l.LoadFromBytes(raw)
	if err != nil {
		return nil, err
	}

	for _, number := range info.LegacyNumbers {
		t := l.GetTransaction(number)
		if t == nil || t.IsAbbreviated() {
			continue
		}
		key, err := t.storeKey()
		if err != nil {
			return info, err
		}
		exists, err := store.Exists(key)
		if err != nil {
			return info, ledgerError(ErrDatabase, fmt.Sprintf(
				"failed to probe box receipt %s", key), err)
		}
		if exists {
			continue
		}
		if err := t.SaveBoxReceipt(store); err != nil {
			return info, err
		}
		log.Debugf("Re-saved legacy box receipt %s", key)
	}
	return info, nil
}

// SaveToStore signs the current box contents and persists them.  The
// caller is responsible for having saved each member transaction's box
// receipt; only abbreviated records are written here.
func (l *Ledger) SaveToStore(store receiptstore.Store,
	signer otcrypto.Signer) error {

	if l.boxType == Message {
		return ledgerError(ErrWrongBox, "message ledgers are never "+
			"persisted", nil)
	}
	if err := l.Sign(signer); err != nil {
		return err
	}
	raw, err := l.SignedBytes()
	if err != nil {
		return err
	}
	code, err := l.boxType.StoreCode()
	if err != nil {
		return err
	}
	err = store.PutBox(code, l.realAccountID.String(),
		l.realNotaryID.String(), raw)
	if err != nil {
		return ledgerError(ErrDatabase, fmt.Sprintf("failed to store "+
			"%s for account %s", l.boxType, l.realAccountID), err)
	}
	return nil
}

// LoadBoxReceipt hydrates the single abbreviated transaction with the
// passed number, replacing it in the box with its verified full form.
// The swap is atomic: on any failure the abbreviated entry is left
// untouched.
func (l *Ledger) LoadBoxReceipt(store receiptstore.Store,
	number int64) error {

	t := l.GetTransaction(number)
	if t == nil {
		return ledgerError(ErrNotFound, fmt.Sprintf("transaction %d "+
			"is not in this %s", number, l.boxType), nil)
	}
	if !t.IsAbbreviated() {
		return nil
	}
	full, err := t.LoadBoxReceipt(store)
	if err != nil {
		return err
	}

	l.mtx.Lock()
	defer l.mtx.Unlock()

	// Re-check under the write lock: another hydration may have won,
	// or the entry may have been removed.
	current, exists := l.txByNum[number]
	if !exists {
		return ledgerError(ErrNotFound, fmt.Sprintf("transaction %d "+
			"was removed during hydration", number), nil)
	}
	if !current.IsAbbreviated() {
		return nil
	}
	l.txByNum[number] = full
	return nil
}

// LoadBoxReceipts hydrates every abbreviated transaction in the box from
// the receipt store.
//
// When failed is non-nil, individual failures are collected into it and
// hydration continues, so a single unavailable receipt does not prevent
// use of the rest of the box; the return value reports whether every
// receipt hydrated.  When failed is nil, the first failure aborts and is
// returned.
func (l *Ledger) LoadBoxReceipts(store receiptstore.Store,
	failed map[int64]struct{}) (bool, error) {

	allOK := true
	for _, t := range l.Transactions() {
		if !t.IsAbbreviated() {
			continue
		}
		err := l.LoadBoxReceipt(store, t.Number())
		if err == nil {
			continue
		}
		if failed == nil {
			return false, err
		}
		allOK = false
		failed[t.Number()] = struct{}{}
		log.Warnf("Failed to load box receipt for transaction %d in "+
			"%s owned by %s at notary %s: %v", t.Number(),
			l.boxType, l.realAccountID, l.realNotaryID, err)
	}
	return allOK, nil
}

// CalculateHash computes the box content hash over the serialized
// abbreviated contents.  Counterparties compare this hash to detect box
// changes without downloading every receipt.
func (l *Ledger) CalculateHash() (otid.ID, error) {
	payload, err := l.serializePayload()
	if err != nil {
		return otid.ID{}, err
	}
	return otid.FromContent(payload), nil
}

// calculateTypedHash gates CalculateHash on an expected box type.
func (l *Ledger) calculateTypedHash(expected BoxType) (otid.ID, error) {
	if l.boxType != expected {
		return otid.ID{}, ledgerError(ErrWrongBox, fmt.Sprintf(
			"cannot compute %s hash over a %s", expected,
			l.boxType), nil)
	}
	return l.CalculateHash()
}

// CalculateInboxHash computes the box hash, failing unless the ledger is
// an inbox.
func (l *Ledger) CalculateInboxHash() (otid.ID, error) {
	return l.calculateTypedHash(Inbox)
}

// CalculateOutboxHash computes the box hash, failing unless the ledger
// is an outbox.
func (l *Ledger) CalculateOutboxHash() (otid.ID, error) {
	return l.calculateTypedHash(Outbox)
}

// CalculateNymboxHash computes the box hash, failing unless the ledger
// is a nymbox.
func (l *Ledger) CalculateNymboxHash() (otid.ID, error) {
	return l.calculateTypedHash(Nymbox)
}

// GetTransferReceipt scans for the transfer receipt whose embedded
// accept item originates from the passed transfer number.  Matching is
// on the item's number of origin, not its in-reference-to number: the
// accept item refers to the pending transaction it accepted, which is
// not the original transfer's number.
func (l *Ledger) GetTransferReceipt(originNum int64) (*Transaction, error) {
	for _, t := range l.Transactions() {
		if t.Type() != TxTransferReceipt {
			continue
		}
		if len(t.InRefBlob) == 0 {
			return nil, ledgerError(ErrFormat, fmt.Sprintf(
				"transfer receipt %d carries no reference "+
					"item", t.Number()), nil)
		}
		item, err := ParseItem(t.InRefBlob)
		if err != nil {
			return nil, err
		}
		origin := item.NumberOfOrigin
		if origin == 0 {
			origin = item.ReferenceNum
		}
		if origin == originNum {
			return t, nil
		}
	}
	return nil, nil
}

// GetChequeReceipt scans for the cheque or voucher receipt whose
// embedded deposit item carries the cheque with the passed number.
func (l *Ledger) GetChequeReceipt(chequeNum int64) (*Transaction, error) {
	for _, t := range l.Transactions() {
		if t.Type() != TxChequeReceipt &&
			t.Type() != TxVoucherReceipt {

			continue
		}
		if len(t.InRefBlob) == 0 {
			return nil, ledgerError(ErrFormat, fmt.Sprintf(
				"cheque receipt %d carries no deposit item",
				t.Number()), nil)
		}
		item, err := ParseItem(t.InRefBlob)
		if err != nil {
			return nil, err
		}
		if len(item.Attachment) == 0 {
			return nil, ledgerError(ErrFormat, fmt.Sprintf(
				"deposit item in cheque receipt %d carries "+
					"no cheque", t.Number()), nil)
		}
		cheque, err := ParseCheque(item.Attachment)
		if err != nil {
			return nil, err
		}
		if cheque.TransactionNum == chequeNum {
			return t, nil
		}
	}
	return nil, nil
}

// GetFinalReceipt scans for the final receipt closing the cron item with
// the passed origin number.
func (l *Ledger) GetFinalReceipt(originNum int64) *Transaction {
	for _, t := range l.Transactions() {
		if t.Type() != TxFinalReceipt {
			continue
		}
		if t.NumberOfOrigin() == originNum ||
			t.ReferenceNum() == originNum {

			return t
		}
	}
	return nil
}

// GetFinalReceiptByClosingNumber scans for the final receipt carrying
// the passed closing number.
func (l *Ledger) GetFinalReceiptByClosingNumber(closingNum int64) *Transaction {
	for _, t := range l.Transactions() {
		if t.Type() == TxFinalReceipt && t.ClosingNum == closingNum {
			return t
		}
	}
	return nil
}
