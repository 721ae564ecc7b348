// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"testing"

	"github.com/opentxs/otledger/otcrypto"
	"github.com/opentxs/otledger/receiptstore"
	"github.com/stretchr/testify/require"
)

func TestTransactionParseRoundTrip(t *testing.T) {
	signer := testSigner(t)
	box := testBox(Inbox)

	item, err := NewItem(ItemAcceptPending, StatusAcknowledgement, 50, 40)
	require.NoError(t, err)
	item.Amount = 125
	require.NoError(t, item.Sign(signer))

	tx, err := NewTransaction(box, 50, TxProcessInbox, testDate)
	require.NoError(t, err)
	require.NoError(t, tx.SetReferenceNum(40))
	require.NoError(t, tx.AddItem(item))
	require.NoError(t, tx.Sign(signer))

	raw, err := tx.SignedBytes()
	require.NoError(t, err)

	parsed, err := ParseTransaction(box, raw)
	require.NoError(t, err)
	require.Equal(t, int64(50), parsed.Number())
	require.Equal(t, TxProcessInbox, parsed.Type())
	require.Equal(t, int64(40), parsed.ReferenceNum())
	require.Equal(t, testDate, parsed.DateSigned())
	require.Equal(t, tx.ReceiptHash(), parsed.ReceiptHash())
	require.Len(t, parsed.Items(), 1)
	require.Equal(t, int64(125), parsed.Items()[0].Amount)

	var v otcrypto.Secp256k1Verifier
	require.NoError(t, parsed.VerifyAccount(v, signer.PublicKey()))
}

func TestTransactionSignFreezes(t *testing.T) {
	signer := testSigner(t)
	tx := signedReceipt(t, testBox(Inbox), 7, TxPending, signer, nil)

	require.True(t, IsError(tx.SetReferenceNum(1), ErrInternal))
	require.True(t, IsError(tx.SetNumberOfOrigin(1), ErrInternal))
	require.True(t, IsError(tx.SetOriginType(OriginMarketOffer),
		ErrInternal))
	require.True(t, IsError(tx.Sign(signer), ErrInternal))
}

func TestTransactionNumberOfOriginDefaults(t *testing.T) {
	tx, err := NewTransaction(testBox(Inbox), 77, TxPending, testDate)
	require.NoError(t, err)

	// Defaults to the transaction's own number and caches.
	require.Equal(t, int64(77), tx.NumberOfOrigin())

	other, err := NewTransaction(testBox(Inbox), 78, TxTransferReceipt,
		testDate)
	require.NoError(t, err)
	require.NoError(t, other.SetNumberOfOrigin(42))
	require.Equal(t, int64(42), other.NumberOfOrigin())
}

func TestAddItemGuards(t *testing.T) {
	signer := testSigner(t)
	box := testBox(Inbox)

	tx, err := NewTransaction(box, 50, TxProcessInbox, testDate)
	require.NoError(t, err)

	// Item claiming a different owning transaction.
	wrong, err := NewItem(ItemAcceptPending, StatusRequest, 51, 40)
	require.NoError(t, err)
	require.True(t, IsError(tx.AddItem(wrong), ErrInternal))

	// Unsigned items block transaction signing.
	item, err := NewItem(ItemAcceptPending, StatusRequest, 50, 40)
	require.NoError(t, err)
	require.NoError(t, tx.AddItem(item))
	require.True(t, IsError(tx.Sign(signer), ErrInternal))
}

func TestBoxReceiptSaveLoad(t *testing.T) {
	signer := testSigner(t)
	store := receiptstore.NewMemStore()
	box := testBox(Inbox)

	tx := signedReceipt(t, box, 5, TxChequeReceipt, signer,
		func(tx *Transaction) {
			tx.Adjustment = -200
			tx.DisplayValue = 200
		})
	require.NoError(t, tx.SaveBoxReceipt(store))

	// Round-trip through the box to obtain the abbreviated form.
	inbox := newTestLedger(t, Inbox)
	require.NoError(t, inbox.AddTransaction(tx))
	require.NoError(t, inbox.Sign(signer))
	raw, err := inbox.SignedBytes()
	require.NoError(t, err)

	reloaded := newTestLedger(t, Inbox)
	_, err = reloaded.LoadFromBytes(raw)
	require.NoError(t, err)

	abbrev := reloaded.GetTransaction(5)
	require.NotNil(t, abbrev)
	require.True(t, abbrev.IsAbbreviated())
	require.Equal(t, tx.ReceiptHash(), abbrev.ReceiptHash())
	require.Equal(t, int64(-200), abbrev.Adjustment)

	full, err := abbrev.LoadBoxReceipt(store)
	require.NoError(t, err)
	require.False(t, full.IsAbbreviated())
	require.Equal(t, tx.ReceiptHash(), full.ReceiptHash())
	require.Equal(t, int64(-200), full.Adjustment)

	// The abbreviated receiver is untouched by hydration.
	require.True(t, abbrev.IsAbbreviated())
}

func TestLoadBoxReceiptMissing(t *testing.T) {
	signer := testSigner(t)
	store := receiptstore.NewMemStore()

	tx := signedReceipt(t, testBox(Inbox), 5, TxPending, signer, nil)
	inbox := newTestLedger(t, Inbox)
	require.NoError(t, inbox.AddTransaction(tx))
	require.NoError(t, inbox.Sign(signer))
	raw, err := inbox.SignedBytes()
	require.NoError(t, err)

	reloaded := newTestLedger(t, Inbox)
	_, err = reloaded.LoadFromBytes(raw)
	require.NoError(t, err)

	// The receipt was never stored.
	_, err = reloaded.GetTransaction(5).LoadBoxReceipt(store)
	require.True(t, IsError(err, ErrMissingReceipt))
}

func TestVerifyBoxReceiptHashMismatch(t *testing.T) {
	signer := testSigner(t)
	store := receiptstore.NewMemStore()
	box := testBox(Inbox)

	tx := signedReceipt(t, box, 5, TxPending, signer, nil)
	inbox := newTestLedger(t, Inbox)
	require.NoError(t, inbox.AddTransaction(tx))
	require.NoError(t, inbox.Sign(signer))
	raw, err := inbox.SignedBytes()
	require.NoError(t, err)

	reloaded := newTestLedger(t, Inbox)
	_, err = reloaded.LoadFromBytes(raw)
	require.NoError(t, err)

	// Store a different transaction's bytes under the same key.
	imposter := signedReceipt(t, box, 5, TxPending, signer,
		func(tx *Transaction) {
			tx.Adjustment = 999999
		})
	impRaw, err := imposter.SignedBytes()
	require.NoError(t, err)
	key, err := tx.storeKey()
	require.NoError(t, err)
	require.NoError(t, store.Put(key, impRaw))

	_, err = reloaded.GetTransaction(5).LoadBoxReceipt(store)
	require.True(t, IsError(err, ErrVerification))
}

func TestDeleteBoxReceipt(t *testing.T) {
	signer := testSigner(t)
	store := receiptstore.NewMemStore()

	tx := signedReceipt(t, testBox(RecordBox), 9, TxFinalReceipt,
		signer, func(tx *Transaction) {
			tx.ClosingNum = 12
		})
	require.NoError(t, tx.SaveBoxReceipt(store))
	require.NoError(t, tx.DeleteBoxReceipt(store))

	key, err := tx.storeKey()
	require.NoError(t, err)
	exists, err := store.Exists(key)
	require.NoError(t, err)
	require.False(t, exists)

	// Deleting a receipt that was never stored reports it missing.
	other := signedReceipt(t, testBox(RecordBox), 10, TxPending, signer,
		nil)
	require.True(t, IsError(other.DeleteBoxReceipt(store),
		ErrMissingReceipt))
}

func TestMessageBoxHasNoReceipts(t *testing.T) {
	signer := testSigner(t)
	store := receiptstore.NewMemStore()

	tx := signedReceipt(t, testBox(Message), 3, TxProcessInbox, signer,
		nil)
	require.True(t, IsError(tx.SaveBoxReceipt(store), ErrWrongBox))
	_, err := tx.storeKey()
	require.True(t, IsError(err, ErrWrongBox))
}

func TestGetSuccess(t *testing.T) {
	signer := testSigner(t)
	box := testBox(Message)

	// Receipts and notices never report an outcome themselves.
	receipt := signedReceipt(t, testBox(Inbox), 5, TxChequeReceipt,
		signer, nil)
	has, success := receipt.GetSuccess()
	require.False(t, has)
	require.False(t, success)

	// An acknowledged operation reports success.
	ack, err := NewItem(ItemAcceptPending, StatusAcknowledgement, 6, 5)
	require.NoError(t, err)
	require.NoError(t, ack.Sign(signer))
	tx, err := NewTransaction(box, 6, TxAtProcessInbox, testDate)
	require.NoError(t, err)
	require.NoError(t, tx.AddItem(ack))
	has, success = tx.GetSuccess()
	require.True(t, has)
	require.True(t, success)

	// A rejected operation reports failure.
	rej, err := NewItem(ItemRejectPending, StatusRejection, 7, 5)
	require.NoError(t, err)
	require.NoError(t, rej.Sign(signer))
	tx, err = NewTransaction(box, 7, TxAtProcessInbox, testDate)
	require.NoError(t, err)
	require.NoError(t, tx.AddItem(rej))
	has, success = tx.GetSuccess()
	require.True(t, has)
	require.False(t, success)
}
