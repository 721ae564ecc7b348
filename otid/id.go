// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package otid

import (
	"encoding/hex"
	"errors"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Size is the byte length of an identifier.
const Size = chainhash.HashSize

// ID is an opaque, fixed-size, content-derived identifier.  The same type
// is used for nym, notary, and account identities as well as per-object
// content digests.  Equality is byte-exact.
type ID [Size]byte

// zeroID is used to test against an unset identifier.
var zeroID ID

// ErrIDSize describes an error where an identifier string decodes to the
// wrong number of bytes.
var ErrIDSize = errors.New("invalid identifier length")

// FromContent derives an identifier by hashing the passed content with
// double SHA-256.
func FromContent(content []byte) ID {
	return ID(chainhash.DoubleHashH(content))
}

// NewIDFromString decodes a hex-encoded identifier.
func NewIDFromString(s string) (ID, error) {
	var id ID
	raw, err := hex.DecodeString(s)
	if err != nil {
		return id, err
	}
	if len(raw) != Size {
		return id, ErrIDSize
	}
	copy(id[:], raw)
	return id, nil
}

// String returns the identifier as a hex-encoded string.
func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// Bytes returns a copy of the identifier bytes.
func (id ID) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, id[:])
	return b
}

// IsZero reports whether the identifier is unset.
func (id ID) IsZero() bool {
	return id == zeroID
}
