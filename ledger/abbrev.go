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
	"github.com/opentxs/otledger/otid"
)

// abbrevRecord is the compact summary of a transaction stored inline in
// a box instead of the full receipt.  The receipt hash lets the full
// form be verified when it is fetched on demand.
type abbrevRecord struct {
	TransactionNum int64
	ReferenceNum   int64
	InRefDisplay   int64
	DateSigned     time.Time
	Type           TxType
	OriginNum      int64
	OriginType     OriginType
	ReceiptHash    otid.ID
	Adjustment     int64
	DisplayValue   int64

	// ClosingNum is present only for final and basket receipts.
	ClosingNum int64

	// RequestNum and ReplySuccess are present only for reply notices.
	RequestNum   int64
	ReplySuccess bool

	// NumberList is present only for blank and success notice
	// records, which carry a batch of numbers in one record.
	NumberList []int64
}

// Abbreviated record TLV type assignments.  Stable; do not renumber.
const (
	abbrevTypeTxNum        tlv.Type = 1
	abbrevTypeRefNum       tlv.Type = 2
	abbrevTypeInRefDisplay tlv.Type = 3
	abbrevTypeDateSigned   tlv.Type = 4
	abbrevTypeTxType       tlv.Type = 5
	abbrevTypeOriginNum    tlv.Type = 6
	abbrevTypeOriginType   tlv.Type = 7
	abbrevTypeReceiptHash  tlv.Type = 8
	abbrevTypeAdjustment   tlv.Type = 9
	abbrevTypeDisplayValue tlv.Type = 10
	abbrevTypeClosingNum   tlv.Type = 11
	abbrevTypeRequestNum   tlv.Type = 12
	abbrevTypeReplyOK      tlv.Type = 13
	abbrevTypeNumberList   tlv.Type = 14
)

// requiredAbbrevTypes are the fields every abbreviated record must
// carry regardless of transaction type.
var requiredAbbrevTypes = []tlv.Type{
	abbrevTypeTxNum, abbrevTypeRefNum, abbrevTypeInRefDisplay,
	abbrevTypeDateSigned, abbrevTypeTxType, abbrevTypeOriginType,
	abbrevTypeReceiptHash, abbrevTypeAdjustment, abbrevTypeDisplayValue,
}

// encode serializes the abbreviated record.  Conditional fields are only
// written for the transaction types that define them.
func (a *abbrevRecord) encode() ([]byte, error) {
	if !a.Type.Valid() {
		return nil, ledgerError(ErrInternal, fmt.Sprintf("cannot "+
			"encode abbreviated record with type %d",
			uint8(a.Type)), nil)
	}

	txNum := uint64(a.TransactionNum)
	refNum := uint64(a.ReferenceNum)
	inRefDisplay := uint64(a.InRefDisplay)
	dateSigned := uint64(a.DateSigned.Unix())
	txType := uint8(a.Type)
	originType := uint8(a.OriginType)
	receiptHash := [otid.Size]byte(a.ReceiptHash)
	adjustment := uint64(a.Adjustment)
	displayValue := uint64(a.DisplayValue)

	records := []tlv.Record{
		tlv.MakePrimitiveRecord(abbrevTypeTxNum, &txNum),
		tlv.MakePrimitiveRecord(abbrevTypeRefNum, &refNum),
		tlv.MakePrimitiveRecord(abbrevTypeInRefDisplay, &inRefDisplay),
		tlv.MakePrimitiveRecord(abbrevTypeDateSigned, &dateSigned),
		tlv.MakePrimitiveRecord(abbrevTypeTxType, &txType),
	}
	if a.OriginNum != 0 {
		originNum := uint64(a.OriginNum)
		records = append(records, tlv.MakePrimitiveRecord(
			abbrevTypeOriginNum, &originNum,
		))
	}
	records = append(records,
		tlv.MakePrimitiveRecord(abbrevTypeOriginType, &originType),
		tlv.MakePrimitiveRecord(abbrevTypeReceiptHash, &receiptHash),
		tlv.MakePrimitiveRecord(abbrevTypeAdjustment, &adjustment),
		tlv.MakePrimitiveRecord(abbrevTypeDisplayValue, &displayValue),
	)
	if a.Type.HasClosingNumber() {
		closingNum := uint64(a.ClosingNum)
		records = append(records, tlv.MakePrimitiveRecord(
			abbrevTypeClosingNum, &closingNum,
		))
	}
	if a.Type == TxReplyNotice {
		requestNum := uint64(a.RequestNum)
		replyOK := uint8(0)
		if a.ReplySuccess {
			replyOK = 1
		}
		records = append(records,
			tlv.MakePrimitiveRecord(abbrevTypeRequestNum,
				&requestNum),
			tlv.MakePrimitiveRecord(abbrevTypeReplyOK, &replyOK),
		)
	}
	if a.Type.HasNumberList() && len(a.NumberList) > 0 {
		packed := numlist.Pack(a.NumberList)
		records = append(records, tlv.MakePrimitiveRecord(
			abbrevTypeNumberList, &packed,
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

// decodeAbbrevRecord parses an abbreviated box record, enforcing the
// per-type conditional field rules: closing numbers only appear on final
// and basket receipts, request numbers only on reply notices, and number
// lists only on blank and success notice records.  Any missing required
// field is a format error.
func decodeAbbrevRecord(raw []byte) (*abbrevRecord, error) {
	var (
		txNum, refNum      uint64
		inRefDisplay       uint64
		dateSigned         uint64
		txType, originType uint8
		originNum          uint64
		receiptHash        [otid.Size]byte
		adjustment         uint64
		displayValue       uint64
		closingNum         uint64
		requestNum         uint64
		replyOK            uint8
		packedNums         []byte
	)
	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(abbrevTypeTxNum, &txNum),
		tlv.MakePrimitiveRecord(abbrevTypeRefNum, &refNum),
		tlv.MakePrimitiveRecord(abbrevTypeInRefDisplay, &inRefDisplay),
		tlv.MakePrimitiveRecord(abbrevTypeDateSigned, &dateSigned),
		tlv.MakePrimitiveRecord(abbrevTypeTxType, &txType),
		tlv.MakePrimitiveRecord(abbrevTypeOriginNum, &originNum),
		tlv.MakePrimitiveRecord(abbrevTypeOriginType, &originType),
		tlv.MakePrimitiveRecord(abbrevTypeReceiptHash, &receiptHash),
		tlv.MakePrimitiveRecord(abbrevTypeAdjustment, &adjustment),
		tlv.MakePrimitiveRecord(abbrevTypeDisplayValue, &displayValue),
		tlv.MakePrimitiveRecord(abbrevTypeClosingNum, &closingNum),
		tlv.MakePrimitiveRecord(abbrevTypeRequestNum, &requestNum),
		tlv.MakePrimitiveRecord(abbrevTypeReplyOK, &replyOK),
		tlv.MakePrimitiveRecord(abbrevTypeNumberList, &packedNums),
	)
	if err != nil {
		return nil, err
	}
	parsedTypes, err := stream.DecodeWithParsedTypes(bytes.NewReader(raw))
	if err != nil {
		return nil, ledgerError(ErrFormat, "malformed abbreviated "+
			"record", err)
	}
	for _, required := range requiredAbbrevTypes {
		if _, ok := parsedTypes[required]; !ok {
			return nil, ledgerError(ErrFormat, fmt.Sprintf(
				"abbreviated record is missing required "+
					"field %d", required), nil)
		}
	}

	parsedType := TxType(txType)
	if !parsedType.Valid() {
		return nil, ledgerError(ErrFormat, fmt.Sprintf("abbreviated "+
			"record has unknown transaction type %d", txType), nil)
	}
	parsedOrigin := OriginType(originType)
	if !parsedOrigin.Valid() {
		return nil, ledgerError(ErrFormat, fmt.Sprintf("abbreviated "+
			"record has unknown origin type %d", originType), nil)
	}

	// Conditional fields must be present exactly when the transaction
	// type defines them.
	_, hasClosing := parsedTypes[abbrevTypeClosingNum]
	if hasClosing != parsedType.HasClosingNumber() {
		return nil, ledgerError(ErrFormat, fmt.Sprintf("closing "+
			"number presence does not match %s record",
			parsedType), nil)
	}
	_, hasRequest := parsedTypes[abbrevTypeRequestNum]
	_, hasReplyOK := parsedTypes[abbrevTypeReplyOK]
	if isReply := parsedType == TxReplyNotice; hasRequest != isReply ||
		hasReplyOK != isReply {

		return nil, ledgerError(ErrFormat, fmt.Sprintf("reply notice "+
			"fields do not match %s record", parsedType), nil)
	}
	if _, hasNums := parsedTypes[abbrevTypeNumberList]; hasNums &&
		!parsedType.HasNumberList() {

		return nil, ledgerError(ErrFormat, fmt.Sprintf("number list "+
			"is not defined for %s record", parsedType), nil)
	}
	nums, err := numlist.Unpack(packedNums)
	if err != nil {
		return nil, ledgerError(ErrFormat, "malformed embedded number "+
			"list", err)
	}

	return &abbrevRecord{
		TransactionNum: int64(txNum),
		ReferenceNum:   int64(refNum),
		InRefDisplay:   int64(inRefDisplay),
		DateSigned:     time.Unix(int64(dateSigned), 0).UTC(),
		Type:           parsedType,
		OriginNum:      int64(originNum),
		OriginType:     parsedOrigin,
		ReceiptHash:    otid.ID(receiptHash),
		Adjustment:     int64(adjustment),
		DisplayValue:   int64(displayValue),
		ClosingNum:     int64(closingNum),
		RequestNum:     int64(requestNum),
		ReplySuccess:   replyOK == 1,
		NumberList:     nums,
	}, nil
}
