// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"testing"

	"github.com/opentxs/otledger/receiptstore"
	"github.com/stretchr/testify/require"
)

func TestParseTxType(t *testing.T) {
	tests := []struct {
		name string
		want TxType
	}{
		{"blank", TxBlank},
		{"pending", TxPending},
		{"transferReceipt", TxTransferReceipt},
		{"finalReceipt", TxFinalReceipt},
		{"processInbox", TxProcessInbox},
		{"atProcessInbox", TxAtProcessInbox},
		{"payDividend", TxPayDividend},
	}
	for _, test := range tests {
		got, err := ParseTxType(test.name)
		require.NoError(t, err)
		require.Equal(t, test.want, got)
		require.Equal(t, test.name, got.String())
	}

	_, err := ParseTxType("bogus")
	require.True(t, IsError(err, ErrFormat))
	_, err = ParseTxType("error_state")
	require.True(t, IsError(err, ErrFormat))
}

func TestTxTypeClasses(t *testing.T) {
	require.True(t, TxPending.IsReceipt())
	require.True(t, TxBasketReceipt.IsReceipt())
	require.False(t, TxProcessInbox.IsReceipt())
	require.False(t, TxBlank.IsReceipt())

	require.True(t, TxBlank.IsNotice())
	require.True(t, TxReplyNotice.IsNotice())
	require.False(t, TxPending.IsNotice())
	require.False(t, TxTransfer.IsNotice())

	require.True(t, TxFinalReceipt.HasClosingNumber())
	require.True(t, TxBasketReceipt.HasClosingNumber())
	require.False(t, TxChequeReceipt.HasClosingNumber())

	require.True(t, TxBlank.HasNumberList())
	require.True(t, TxSuccessNotice.HasNumberList())
	require.False(t, TxReplyNotice.HasNumberList())
}

func TestBoxTypeRecordTag(t *testing.T) {
	tests := []struct {
		boxType BoxType
		tag     string
	}{
		{Nymbox, "nymboxRecord"},
		{Inbox, "inboxRecord"},
		{Outbox, "outboxRecord"},
		{PaymentInbox, "paymentInboxRecord"},
		{RecordBox, "recordBoxRecord"},
		{ExpiredBox, "expiredBoxRecord"},
	}
	for _, test := range tests {
		tag, err := test.boxType.RecordTag()
		require.NoError(t, err)
		require.Equal(t, test.tag, tag)
	}

	// Message ledgers are never abbreviated, so they have no record
	// tag.
	_, err := Message.RecordTag()
	require.True(t, IsError(err, ErrWrongBox))

	_, err = BoxError.RecordTag()
	require.True(t, IsError(err, ErrInternal))
}

func TestBoxTypePersistence(t *testing.T) {
	for _, boxType := range []BoxType{
		Nymbox, Inbox, Outbox, PaymentInbox, RecordBox, ExpiredBox,
	} {
		require.True(t, boxType.Valid())
		require.True(t, boxType.Persistent())

		code, err := boxType.StoreCode()
		require.NoError(t, err)
		folder, err := receiptstore.BoxFolder(code)
		require.NoError(t, err)
		require.NotEmpty(t, folder)
	}

	require.True(t, Message.Valid())
	require.False(t, Message.Persistent())
	require.False(t, BoxError.Valid())
}
