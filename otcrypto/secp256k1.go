// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package otcrypto

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Secp256k1Signer signs content with a secp256k1 private key.  Content is
// hashed with double SHA-256 before signing and signatures are DER
// serialized.
type Secp256k1Signer struct {
	priv *btcec.PrivateKey
}

// NewSecp256k1Signer returns a signer over the passed private key.
func NewSecp256k1Signer(priv *btcec.PrivateKey) *Secp256k1Signer {
	return &Secp256k1Signer{priv: priv}
}

// GenerateSigner returns a signer over a freshly generated private key.
func GenerateSigner() (*Secp256k1Signer, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	return NewSecp256k1Signer(priv), nil
}

// Sign returns a DER signature over the double SHA-256 of content.
//
// This is part of the Signer interface implementation.
func (s *Secp256k1Signer) Sign(content []byte) ([]byte, error) {
	digest := chainhash.DoubleHashB(content)
	sig := ecdsa.Sign(s.priv, digest)
	return sig.Serialize(), nil
}

// PublicKey returns the compressed serialization of the signing key's
// public counterpart.
//
// This is part of the Signer interface implementation.
func (s *Secp256k1Signer) PublicKey() []byte {
	return s.priv.PubKey().SerializeCompressed()
}

// Secp256k1Verifier checks DER signatures produced by Secp256k1Signer.
type Secp256k1Verifier struct{}

// Verify reports whether sig is a valid DER signature over the double
// SHA-256 of content by the passed compressed public key.
//
// This is part of the Verifier interface implementation.
func (Secp256k1Verifier) Verify(content, sig, pubKey []byte) bool {
	pub, err := btcec.ParsePubKey(pubKey)
	if err != nil {
		return false
	}
	parsedSig, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	return parsedSig.Verify(chainhash.DoubleHashB(content), pub)
}
