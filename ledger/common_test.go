// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"
	"testing"
	"time"

	"github.com/lightningnetwork/lnd/tlv"
	"github.com/opentxs/otledger/otcrypto"
	"github.com/opentxs/otledger/otid"
	"github.com/stretchr/testify/require"
)

var (
	testNymID    = otid.FromContent([]byte("test nym"))
	testAcctID   = otid.FromContent([]byte("test account"))
	testNotaryID = otid.FromContent([]byte("test notary"))

	testDate = time.Unix(1756000000, 0).UTC()
)

func testSigner(t *testing.T) *otcrypto.Secp256k1Signer {
	t.Helper()

	signer, err := otcrypto.GenerateSigner()
	require.NoError(t, err)
	return signer
}

func testVerifier() otcrypto.Verifier {
	return otcrypto.Secp256k1Verifier{}
}

func testBox(boxType BoxType) BoxContext {
	return BoxContext{
		BoxType:   boxType,
		NymID:     testNymID,
		AccountID: testAcctID,
		NotaryID:  testNotaryID,
	}
}

func newTestLedger(t *testing.T, boxType BoxType) *Ledger {
	t.Helper()

	l, err := NewLedger(boxType, testNymID, testAcctID, testNotaryID)
	require.NoError(t, err)
	return l
}

// signedReceipt builds and signs a transaction for the passed box, with
// an optional mutation hook applied before signing.
func signedReceipt(t *testing.T, box BoxContext, number int64,
	txType TxType, signer otcrypto.Signer,
	mutate func(*Transaction)) *Transaction {

	t.Helper()

	tx, err := NewTransaction(box, number, txType, testDate)
	require.NoError(t, err)
	require.NoError(t, tx.SetReferenceNum(number+1000))
	if mutate != nil {
		mutate(tx)
	}
	require.NoError(t, tx.Sign(signer))
	return tx
}

// buildBoxEnvelope hand-assembles a serialized signed box so tests can
// construct payload shapes the package itself never produces, such as
// legacy inline receipts or duplicate records.
func buildBoxEnvelope(t *testing.T, boxType BoxType, nymID, acctID,
	notaryID otid.ID, numPartial uint64, recordBlobs,
	fullBlobs [][]byte, signer otcrypto.Signer) []byte {

	t.Helper()

	version := uint8(LatestVersion)
	boxTypeRaw := uint8(boxType)
	nymRaw := [otid.Size]byte(nymID)
	acctRaw := [otid.Size]byte(acctID)
	notaryRaw := [otid.Size]byte(notaryID)

	records := []tlv.Record{
		tlv.MakePrimitiveRecord(boxFieldVersion, &version),
		tlv.MakePrimitiveRecord(boxFieldType, &boxTypeRaw),
		tlv.MakePrimitiveRecord(boxFieldNymID, &nymRaw),
		tlv.MakePrimitiveRecord(boxFieldAccountID, &acctRaw),
		tlv.MakePrimitiveRecord(boxFieldNotaryID, &notaryRaw),
		tlv.MakePrimitiveRecord(boxFieldNumPartial, &numPartial),
	}
	if len(recordBlobs) > 0 {
		packed := packBlobs(recordBlobs)
		records = append(records, tlv.MakePrimitiveRecord(
			boxFieldRecords, &packed,
		))
	}
	if len(fullBlobs) > 0 {
		packed := packBlobs(fullBlobs)
		records = append(records, tlv.MakePrimitiveRecord(
			boxFieldFullTxs, &packed,
		))
	}

	stream, err := tlv.NewStream(records...)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, stream.Encode(&buf))

	sig, err := signer.Sign(buf.Bytes())
	require.NoError(t, err)
	env := otcrypto.Envelope{Payload: buf.Bytes(), Signature: sig}
	raw, err := env.Bytes()
	require.NoError(t, err)
	return raw
}
