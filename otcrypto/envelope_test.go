// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package otcrypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	signer, err := GenerateSigner()
	require.NoError(t, err)

	payload := []byte("signed contract body")
	sig, err := signer.Sign(payload)
	require.NoError(t, err)

	env := Envelope{Payload: payload, Signature: sig}
	raw, err := env.Bytes()
	require.NoError(t, err)

	parsed, err := ParseEnvelope(raw)
	require.NoError(t, err)
	require.Equal(t, payload, parsed.Payload)
	require.Equal(t, sig, parsed.Signature)

	var v Secp256k1Verifier
	require.NoError(t, parsed.Verify(v, signer.PublicKey()))
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	signer, err := GenerateSigner()
	require.NoError(t, err)

	payload := []byte("original")
	sig, err := signer.Sign(payload)
	require.NoError(t, err)

	env := Envelope{Payload: []byte("tampered"), Signature: sig}
	var v Secp256k1Verifier
	require.Error(t, env.Verify(v, signer.PublicKey()))
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	signer, err := GenerateSigner()
	require.NoError(t, err)
	other, err := GenerateSigner()
	require.NoError(t, err)

	payload := []byte("payload")
	sig, err := signer.Sign(payload)
	require.NoError(t, err)

	env := Envelope{Payload: payload, Signature: sig}
	var v Secp256k1Verifier
	require.Error(t, env.Verify(v, other.PublicKey()))
}

func TestEncodeRequiresPayload(t *testing.T) {
	env := Envelope{Signature: []byte("sig")}
	_, err := env.Bytes()
	require.ErrorIs(t, err, ErrEmptyPayload)
}

func TestVerifyRequiresSignature(t *testing.T) {
	env := Envelope{Payload: []byte("payload")}
	var v Secp256k1Verifier
	require.ErrorIs(t, env.Verify(v, nil), ErrNoSignature)
}

func TestParseEnvelopeRejectsGarbage(t *testing.T) {
	_, err := ParseEnvelope([]byte{0xff, 0x01, 0x02})
	require.Error(t, err)
}
