// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"
	"testing"

	"github.com/lightningnetwork/lnd/tlv"
	"github.com/opentxs/otledger/otid"
	"github.com/stretchr/testify/require"
)

func baseAbbrevRecord(txType TxType) *abbrevRecord {
	return &abbrevRecord{
		TransactionNum: 5,
		ReferenceNum:   40,
		InRefDisplay:   40,
		DateSigned:     testDate,
		Type:           txType,
		OriginType:     OriginNotApplicable,
		ReceiptHash:    otid.FromContent([]byte("receipt")),
		Adjustment:     -100,
		DisplayValue:   100,
	}
}

func TestAbbrevRoundTripByType(t *testing.T) {
	tests := []struct {
		name   string
		record *abbrevRecord
		check  func(t *testing.T, got *abbrevRecord)
	}{
		{
			name:   "pending carries no conditional fields",
			record: baseAbbrevRecord(TxPending),
			check: func(t *testing.T, got *abbrevRecord) {
				require.Zero(t, got.ClosingNum)
				require.Zero(t, got.RequestNum)
				require.Nil(t, got.NumberList)
			},
		},
		{
			name: "final receipt carries closing number",
			record: func() *abbrevRecord {
				r := baseAbbrevRecord(TxFinalReceipt)
				r.ClosingNum = 42
				r.OriginNum = 99
				r.OriginType = OriginMarketOffer
				return r
			}(),
			check: func(t *testing.T, got *abbrevRecord) {
				require.Equal(t, int64(42), got.ClosingNum)
				require.Equal(t, int64(99), got.OriginNum)
				require.Equal(t, OriginMarketOffer,
					got.OriginType)
			},
		},
		{
			name: "reply notice carries request fields",
			record: func() *abbrevRecord {
				r := baseAbbrevRecord(TxReplyNotice)
				r.RequestNum = 17
				r.ReplySuccess = true
				return r
			}(),
			check: func(t *testing.T, got *abbrevRecord) {
				require.Equal(t, int64(17), got.RequestNum)
				require.True(t, got.ReplySuccess)
			},
		},
		{
			name: "blank carries number list",
			record: func() *abbrevRecord {
				r := baseAbbrevRecord(TxBlank)
				r.NumberList = []int64{5, 6, 7}
				return r
			}(),
			check: func(t *testing.T, got *abbrevRecord) {
				require.Equal(t, []int64{5, 6, 7},
					got.NumberList)
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			blob, err := test.record.encode()
			require.NoError(t, err)

			got, err := decodeAbbrevRecord(blob)
			require.NoError(t, err)
			require.Equal(t, test.record.TransactionNum,
				got.TransactionNum)
			require.Equal(t, test.record.Type, got.Type)
			require.Equal(t, test.record.ReceiptHash,
				got.ReceiptHash)
			require.Equal(t, test.record.DateSigned,
				got.DateSigned)
			test.check(t, got)
		})
	}
}

// encodeAbbrevWithExtra re-encodes a record with one extra field spliced
// in, to craft conditional field violations the encoder never produces.
func encodeAbbrevWithExtra(t *testing.T, record *abbrevRecord,
	extraType tlv.Type, extraValue uint64) []byte {

	t.Helper()

	txNum := uint64(record.TransactionNum)
	refNum := uint64(record.ReferenceNum)
	inRefDisplay := uint64(record.InRefDisplay)
	dateSigned := uint64(record.DateSigned.Unix())
	txType := uint8(record.Type)
	originType := uint8(record.OriginType)
	receiptHash := [otid.Size]byte(record.ReceiptHash)
	adjustment := uint64(record.Adjustment)
	displayValue := uint64(record.DisplayValue)

	records := []tlv.Record{
		tlv.MakePrimitiveRecord(abbrevTypeTxNum, &txNum),
		tlv.MakePrimitiveRecord(abbrevTypeRefNum, &refNum),
		tlv.MakePrimitiveRecord(abbrevTypeInRefDisplay, &inRefDisplay),
		tlv.MakePrimitiveRecord(abbrevTypeDateSigned, &dateSigned),
		tlv.MakePrimitiveRecord(abbrevTypeTxType, &txType),
		tlv.MakePrimitiveRecord(abbrevTypeOriginType, &originType),
		tlv.MakePrimitiveRecord(abbrevTypeReceiptHash, &receiptHash),
		tlv.MakePrimitiveRecord(abbrevTypeAdjustment, &adjustment),
		tlv.MakePrimitiveRecord(abbrevTypeDisplayValue, &displayValue),
	}
	if extraType != 0 {
		records = append(records, tlv.MakePrimitiveRecord(
			extraType, &extraValue,
		))
	}
	stream, err := tlv.NewStream(records...)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, stream.Encode(&buf))
	return buf.Bytes()
}

func TestDecodeRejectsMisplacedConditionalFields(t *testing.T) {
	// A closing number on a pending record.
	blob := encodeAbbrevWithExtra(t, baseAbbrevRecord(TxPending),
		abbrevTypeClosingNum, 42)
	_, err := decodeAbbrevRecord(blob)
	require.True(t, IsError(err, ErrFormat))

	// A request number outside a reply notice.
	blob = encodeAbbrevWithExtra(t, baseAbbrevRecord(TxPending),
		abbrevTypeRequestNum, 17)
	_, err = decodeAbbrevRecord(blob)
	require.True(t, IsError(err, ErrFormat))
}

func TestDecodeRejectsMissingConditionalFields(t *testing.T) {
	// A final receipt record without its closing number.
	blob := encodeAbbrevWithExtra(t, baseAbbrevRecord(TxFinalReceipt),
		0, 0)
	_, err := decodeAbbrevRecord(blob)
	require.True(t, IsError(err, ErrFormat))
}

func TestDecodeRejectsMissingRequiredField(t *testing.T) {
	// Strip the record down to a single field.
	txNum := uint64(5)
	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(abbrevTypeTxNum, &txNum),
	)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, stream.Encode(&buf))

	_, err = decodeAbbrevRecord(buf.Bytes())
	require.True(t, IsError(err, ErrFormat))
}
