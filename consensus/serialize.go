// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package consensus

import (
	"bytes"
	"fmt"

	"github.com/lightningnetwork/lnd/tlv"
	"github.com/opentxs/otledger/boxdb"
	"github.com/opentxs/otledger/internal/numlist"
	"github.com/opentxs/otledger/otid"
)

// contextsBucketName is the bucket contexts are persisted under within
// the package's namespace.
var contextsBucketName = []byte("contexts")

// Context TLV type assignments.  Stable; do not renumber.
const (
	typeRequestNum       tlv.Type = 1
	typeIssued           tlv.Type = 2
	typeAvailable        tlv.Type = 3
	typeTentative        tlv.Type = 4
	typeLocalNymboxHash  tlv.Type = 5
	typeRemoteNymboxHash tlv.Type = 6
	typeInboxHashes      tlv.Type = 7
	typeOutboxHashes     tlv.Type = 8
)

// hashPairLen is the encoded width of one (account id, box hash) pair.
const hashPairLen = 2 * otid.Size

// contextKey builds the storage key for a context from its nym and notary
// identifiers.
func contextKey(localNym, notaryID otid.ID) []byte {
	k := make([]byte, 0, 2*otid.Size)
	k = append(k, localNym[:]...)
	k = append(k, notaryID[:]...)
	return k
}

// packHashMap flattens an account-to-hash map into concatenated fixed
// width pairs.
func packHashMap(m map[otid.ID]otid.ID) []byte {
	if len(m) == 0 {
		return nil
	}
	b := make([]byte, 0, hashPairLen*len(m))
	for acct, h := range m {
		b = append(b, acct[:]...)
		b = append(b, h[:]...)
	}
	return b
}

// unpackHashMap reverses packHashMap.
func unpackHashMap(b []byte) (map[otid.ID]otid.ID, error) {
	if len(b)%hashPairLen != 0 {
		return nil, fmt.Errorf("hash map has ragged length %d", len(b))
	}
	m := make(map[otid.ID]otid.ID, len(b)/hashPairLen)
	for i := 0; i < len(b); i += hashPairLen {
		var acct, h otid.ID
		copy(acct[:], b[i:])
		copy(h[:], b[i+otid.Size:])
		m[acct] = h
	}
	return m, nil
}

// setToSlice returns the set members as a slice.
func setToSlice(set map[int64]struct{}) []int64 {
	nums := make([]int64, 0, len(set))
	for n := range set {
		nums = append(nums, n)
	}
	return nums
}

// sliceToSet returns the slice members as a set.
func sliceToSet(nums []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(nums))
	for _, n := range nums {
		set[n] = struct{}{}
	}
	return set
}

// serialize encodes the context state as a TLV stream.
func (c *Context) serialize() ([]byte, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	requestNum := uint64(c.requestNum)
	issued := numlist.Pack(setToSlice(c.issued))
	available := numlist.Pack(setToSlice(c.available))
	tentative := numlist.Pack(setToSlice(c.tentative))
	localHash := [otid.Size]byte(c.localNymboxHash)
	remoteHash := [otid.Size]byte(c.remoteNymboxHash)
	inboxHashes := packHashMap(c.inboxHashes)
	outboxHashes := packHashMap(c.outboxHashes)

	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(typeRequestNum, &requestNum),
		tlv.MakePrimitiveRecord(typeIssued, &issued),
		tlv.MakePrimitiveRecord(typeAvailable, &available),
		tlv.MakePrimitiveRecord(typeTentative, &tentative),
		tlv.MakePrimitiveRecord(typeLocalNymboxHash, &localHash),
		tlv.MakePrimitiveRecord(typeRemoteNymboxHash, &remoteHash),
		tlv.MakePrimitiveRecord(typeInboxHashes, &inboxHashes),
		tlv.MakePrimitiveRecord(typeOutboxHashes, &outboxHashes),
	)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := stream.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// deserialize populates the context state from a TLV stream produced by
// serialize.
func (c *Context) deserialize(raw []byte) error {
	var (
		requestNum            uint64
		issued, available     []byte
		tentative             []byte
		localHash, remoteHash [otid.Size]byte
		inboxRaw, outboxRaw   []byte
	)
	stream, err := tlv.NewStream(
		tlv.MakePrimitiveRecord(typeRequestNum, &requestNum),
		tlv.MakePrimitiveRecord(typeIssued, &issued),
		tlv.MakePrimitiveRecord(typeAvailable, &available),
		tlv.MakePrimitiveRecord(typeTentative, &tentative),
		tlv.MakePrimitiveRecord(typeLocalNymboxHash, &localHash),
		tlv.MakePrimitiveRecord(typeRemoteNymboxHash, &remoteHash),
		tlv.MakePrimitiveRecord(typeInboxHashes, &inboxRaw),
		tlv.MakePrimitiveRecord(typeOutboxHashes, &outboxRaw),
	)
	if err != nil {
		return err
	}
	if err := stream.Decode(bytes.NewReader(raw)); err != nil {
		return err
	}

	issuedNums, err := numlist.Unpack(issued)
	if err != nil {
		return err
	}
	availableNums, err := numlist.Unpack(available)
	if err != nil {
		return err
	}
	tentativeNums, err := numlist.Unpack(tentative)
	if err != nil {
		return err
	}
	inboxHashes, err := unpackHashMap(inboxRaw)
	if err != nil {
		return err
	}
	outboxHashes, err := unpackHashMap(outboxRaw)
	if err != nil {
		return err
	}

	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.requestNum = int64(requestNum)
	c.issued = sliceToSet(issuedNums)
	c.available = sliceToSet(availableNums)
	c.tentative = sliceToSet(tentativeNums)
	c.localNymboxHash = otid.ID(localHash)
	c.remoteNymboxHash = otid.ID(remoteHash)
	c.inboxHashes = inboxHashes
	c.outboxHashes = outboxHashes
	return nil
}

// Save persists the context under its (nym, notary) key in the passed
// namespace.
func (c *Context) Save(ns boxdb.Namespace) error {
	raw, err := c.serialize()
	if err != nil {
		return err
	}
	return ns.Update(func(tx boxdb.Tx) error {
		b, err := tx.RootBucket().CreateBucketIfNotExists(
			contextsBucketName,
		)
		if err != nil {
			return err
		}
		return b.Put(contextKey(c.localNym, c.notaryID), raw)
	})
}

// LoadContext restores a previously saved context for the passed nym and
// notary pair.  ErrContextNotFound is returned when nothing has been
// saved under that pair.
func LoadContext(ns boxdb.Namespace, localNym,
	notaryID otid.ID) (*Context, error) {

	var raw []byte
	err := ns.View(func(tx boxdb.Tx) error {
		b := tx.RootBucket().Bucket(contextsBucketName)
		if b == nil {
			return ErrContextNotFound
		}
		v := b.Get(contextKey(localNym, notaryID))
		if v == nil {
			return ErrContextNotFound
		}
		raw = make([]byte, len(v))
		copy(raw, v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx := NewContext(localNym, notaryID)
	if err := ctx.deserialize(raw); err != nil {
		return nil, err
	}
	log.Debugf("Loaded consensus context for nym %s at notary %s: %d "+
		"issued, %d available", localNym, notaryID, len(ctx.issued),
		len(ctx.available))
	return ctx, nil
}
