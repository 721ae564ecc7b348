// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package otcrypto defines the signing capability consumed by the ledger
// core.  The core never touches key material directly; it is handed a
// Signer for producing signatures and a Verifier for checking them, and
// treats both as opaque.
package otcrypto

import (
	"bytes"
	"errors"
	"io"

	"github.com/lightningnetwork/lnd/tlv"
)

var (
	// ErrNoSignature is returned when verifying an envelope that does
	// not carry a signature.
	ErrNoSignature = errors.New("envelope is not signed")

	// ErrEmptyPayload is returned when encoding an envelope with no
	// payload bytes.
	ErrEmptyPayload = errors.New("envelope payload is empty")
)

// Signer produces signatures over arbitrary content with a single held
// key.  Implementations must be safe for use from a single goroutine at a
// time; the ledger core performs no internal parallelism.
type Signer interface {
	// Sign returns a signature over the passed content.
	Sign(content []byte) ([]byte, error)

	// PublicKey returns the serialized public key the signatures can be
	// checked against.
	PublicKey() []byte
}

// Verifier checks signatures produced by a Signer.
type Verifier interface {
	// Verify reports whether sig is a valid signature over content by
	// the private counterpart of the passed serialized public key.
	Verify(content, sig, pubKey []byte) bool
}

// Envelope couples a serialized payload with the signature covering it.
// It is the on-disk and on-wire shape of every signed object in this
// module: ledgers, transactions, and items.
type Envelope struct {
	Payload   []byte
	Signature []byte
}

// Envelope TLV type assignments.  Stable; do not renumber.
const (
	typePayload   tlv.Type = 1
	typeSignature tlv.Type = 2
)

// Encode serializes the envelope to the passed writer.
func (e *Envelope) Encode(w io.Writer) error {
	if len(e.Payload) == 0 {
		return ErrEmptyPayload
	}
	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(typePayload, &e.Payload),
		tlv.MakePrimitiveRecord(typeSignature, &e.Signature),
	)
	if err != nil {
		return err
	}
	return stream.Encode(w)
}

// Bytes serializes the envelope to a byte slice.
func (e *Envelope) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeEnvelope parses an envelope from the passed reader.
func DecodeEnvelope(r io.Reader) (*Envelope, error) {
	var e Envelope
	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(typePayload, &e.Payload),
		tlv.MakePrimitiveRecord(typeSignature, &e.Signature),
	)
	if err != nil {
		return nil, err
	}
	if err := stream.Decode(r); err != nil {
		return nil, err
	}
	if len(e.Payload) == 0 {
		return nil, ErrEmptyPayload
	}
	return &e, nil
}

// ParseEnvelope parses an envelope from a byte slice.
func ParseEnvelope(raw []byte) (*Envelope, error) {
	return DecodeEnvelope(bytes.NewReader(raw))
}

// Verify checks the envelope signature against the passed verifier and
// serialized public key.
func (e *Envelope) Verify(v Verifier, pubKey []byte) error {
	if len(e.Signature) == 0 {
		return ErrNoSignature
	}
	if !v.Verify(e.Payload, e.Signature, pubKey) {
		return errors.New("envelope signature verification failed")
	}
	return nil
}
