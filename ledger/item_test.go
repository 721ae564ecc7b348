// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

func TestItemParseRoundTrip(t *testing.T) {
	signer := testSigner(t)

	item, err := NewItem(ItemBalanceStatement, StatusRequest, 50, 50)
	require.NoError(t, err)
	item.Amount = 4500
	item.NumberOfOrigin = 42
	item.Note = []byte("note")
	item.Reports = []ReportEntry{
		{
			Type:           TxChequeReceipt,
			TransactionNum: 20,
			ReferenceNum:   15,
			InRefDisplay:   15,
			Amount:         -150,
		},
		{
			Type:           TxFinalReceipt,
			TransactionNum: 21,
			ReferenceNum:   16,
			InRefDisplay:   16,
			ClosingNum:     8,
		},
	}
	item.Issued = []int64{10, 20, 30}
	require.NoError(t, item.Sign(signer))

	raw, err := item.SignedBytes()
	require.NoError(t, err)
	parsed, err := ParseItem(raw)
	require.NoError(t, err)

	if !reflect.DeepEqual(parsed.Reports, item.Reports) {
		t.Fatalf("parsed reports mismatch: got %v want %v",
			spew.Sdump(parsed.Reports), spew.Sdump(item.Reports))
	}
	require.Equal(t, item.Type, parsed.Type)
	require.Equal(t, item.Status, parsed.Status)
	require.Equal(t, item.TransactionNum, parsed.TransactionNum)
	require.Equal(t, item.NumberOfOrigin, parsed.NumberOfOrigin)
	require.Equal(t, item.Amount, parsed.Amount)
	require.Equal(t, item.Note, parsed.Note)
	require.Equal(t, item.Issued, parsed.Issued)
	require.Equal(t, item.Signature(), parsed.Signature())
}

func TestItemSignFreezes(t *testing.T) {
	signer := testSigner(t)

	item, err := NewItem(ItemTransfer, StatusRequest, 5, 4)
	require.NoError(t, err)
	require.False(t, item.Signed())
	_, err = item.SignedBytes()
	require.True(t, IsError(err, ErrInternal))

	require.NoError(t, item.Sign(signer))
	require.True(t, item.Signed())
	require.True(t, IsError(item.Sign(signer), ErrInternal))
}

func TestItemVerifySignature(t *testing.T) {
	signer := testSigner(t)
	other := testSigner(t)

	item, err := NewItem(ItemTransfer, StatusRequest, 5, 4)
	require.NoError(t, err)
	require.NoError(t, item.Sign(signer))

	verifier := testVerifier()
	require.NoError(t, item.VerifySignature(verifier,
		signer.PublicKey()))
	err = item.VerifySignature(verifier, other.PublicKey())
	require.True(t, IsError(err, ErrVerification))
}

func TestParseItemRejectsUnknownType(t *testing.T) {
	signer := testSigner(t)

	item, err := NewItem(ItemNotice, StatusRequest, 5, 4)
	require.NoError(t, err)
	item.Type = ItemType(200)
	require.NoError(t, item.Sign(signer))

	raw, err := item.SignedBytes()
	require.NoError(t, err)
	_, err = ParseItem(raw)
	require.True(t, IsError(err, ErrFormat))
}

func TestUnpackReportsRejectsRagged(t *testing.T) {
	_, err := unpackReports(make([]byte, reportEntryLen+1))
	require.True(t, IsError(err, ErrFormat))
}
