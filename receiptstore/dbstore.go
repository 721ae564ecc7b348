// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package receiptstore

import (
	"encoding/binary"

	"github.com/opentxs/otledger/boxdb"
)

// Bucket names and value layout for the database-backed store.
//
// Receipts live under nested buckets mirroring the canonical path
// convention, folder/notary/owner.r, keyed by the big endian transaction
// number.  Values are prefixed with a one-byte liveness flag so a logical
// delete keeps the receipt bytes in place for later audit.
var (
	receiptsBucketName = []byte("receipts")
	boxesBucketName    = []byte("boxes")
)

const (
	flagLive    byte = 0
	flagDeleted byte = 1
)

// DBStore is a Store implementation persisting receipts in a boxdb
// namespace.
type DBStore struct {
	ns boxdb.Namespace
}

// Enforce DBStore implements the Store interface.
var _ Store = (*DBStore)(nil)

// NewDBStore returns a store over the passed namespace, creating the
// top-level buckets if needed.
func NewDBStore(ns boxdb.Namespace) (*DBStore, error) {
	err := ns.Update(func(tx boxdb.Tx) error {
		root := tx.RootBucket()
		if _, err := root.CreateBucketIfNotExists(receiptsBucketName); err != nil {
			return err
		}
		_, err := root.CreateBucketIfNotExists(boxesBucketName)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &DBStore{ns: ns}, nil
}

// numKey renders a transaction number as a fixed-width big endian key so
// cursor scans iterate receipts in number order.
func numKey(txNum int64) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], uint64(txNum))
	return k[:]
}

// receiptBucketPath returns the three nested bucket names leading to a
// key's receipt bucket.
func receiptBucketPath(k Key) ([][]byte, error) {
	folder, err := BoxFolder(k.BoxCode)
	if err != nil {
		return nil, err
	}
	if _, err := k.Path(); err != nil {
		return nil, err
	}
	return [][]byte{
		[]byte(folder),
		[]byte(k.NotaryID),
		[]byte(k.OwnerID + ".r"),
	}, nil
}

// fetchReceiptBucket descends to the receipt bucket for the key,
// optionally creating the intermediate buckets.
func fetchReceiptBucket(tx boxdb.Tx, k Key, create bool) (boxdb.Bucket, error) {
	path, err := receiptBucketPath(k)
	if err != nil {
		return nil, err
	}
	b := tx.RootBucket().Bucket(receiptsBucketName)
	if b == nil {
		return nil, boxdb.ErrBucketNotFound
	}
	for _, name := range path {
		if create {
			b, err = b.CreateBucketIfNotExists(name)
			if err != nil {
				return nil, err
			}
			continue
		}
		b = b.Bucket(name)
		if b == nil {
			return nil, nil
		}
	}
	return b, nil
}

// Exists reports whether a live receipt is present for the key.
//
// This function is part of the Store interface implementation.
func (s *DBStore) Exists(k Key) (bool, error) {
	var exists bool
	err := s.ns.View(func(tx boxdb.Tx) error {
		b, err := fetchReceiptBucket(tx, k, false)
		if err != nil || b == nil {
			return err
		}
		v := b.Get(numKey(k.TxNum))
		exists = len(v) > 0 && v[0] == flagLive
		return nil
	})
	return exists, err
}

// Fetch returns the receipt bytes for the key.
//
// This function is part of the Store interface implementation.
func (s *DBStore) Fetch(k Key) ([]byte, error) {
	var data []byte
	err := s.ns.View(func(tx boxdb.Tx) error {
		b, err := fetchReceiptBucket(tx, k, false)
		if err != nil {
			return err
		}
		if b == nil {
			return ErrNotFound
		}
		v := b.Get(numKey(k.TxNum))
		if len(v) == 0 || v[0] != flagLive {
			return ErrNotFound
		}
		data = make([]byte, len(v)-1)
		copy(data, v[1:])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Put stores the receipt bytes for the key, overwriting any previous
// value and clearing any deletion mark.
//
// This function is part of the Store interface implementation.
func (s *DBStore) Put(k Key, data []byte) error {
	return s.ns.Update(func(tx boxdb.Tx) error {
		b, err := fetchReceiptBucket(tx, k, true)
		if err != nil {
			return err
		}
		v := make([]byte, 1+len(data))
		v[0] = flagLive
		copy(v[1:], data)
		return b.Put(numKey(k.TxNum), v)
	})
}

// MarkDeleted flips the liveness flag on the stored receipt, keeping the
// receipt bytes in place.
//
// This function is part of the Store interface implementation.
func (s *DBStore) MarkDeleted(k Key) error {
	return s.ns.Update(func(tx boxdb.Tx) error {
		b, err := fetchReceiptBucket(tx, k, false)
		if err != nil {
			return err
		}
		if b == nil {
			return ErrNotFound
		}
		key := numKey(k.TxNum)
		v := b.Get(key)
		if len(v) == 0 {
			return ErrNotFound
		}
		marked := make([]byte, len(v))
		copy(marked, v)
		marked[0] = flagDeleted
		if err := b.Put(key, marked); err != nil {
			return err
		}
		log.Debugf("Marked box receipt %s deleted", k)
		return nil
	})
}

// fetchBoxBucket descends to the bucket holding serialized ledgers for
// the passed folder and notary.
func fetchBoxBucket(tx boxdb.Tx, boxCode uint8, notaryID string,
	create bool) (boxdb.Bucket, error) {

	if boxCode == BoxCodeMessage {
		return nil, ErrMessageBox
	}
	folder, err := BoxFolder(boxCode)
	if err != nil {
		return nil, err
	}
	b := tx.RootBucket().Bucket(boxesBucketName)
	if b == nil {
		return nil, boxdb.ErrBucketNotFound
	}
	for _, name := range [][]byte{[]byte(folder), []byte(notaryID)} {
		if create {
			b, err = b.CreateBucketIfNotExists(name)
			if err != nil {
				return nil, err
			}
			continue
		}
		b = b.Bucket(name)
		if b == nil {
			return nil, nil
		}
	}
	return b, nil
}

// FetchBox returns the serialized ledger for the passed box.
//
// This function is part of the Store interface implementation.
func (s *DBStore) FetchBox(boxCode uint8, ownerID, notaryID string) ([]byte, error) {
	var data []byte
	err := s.ns.View(func(tx boxdb.Tx) error {
		b, err := fetchBoxBucket(tx, boxCode, notaryID, false)
		if err != nil {
			return err
		}
		if b == nil {
			return ErrNotFound
		}
		v := b.Get([]byte(ownerID))
		if v == nil {
			return ErrNotFound
		}
		data = make([]byte, len(v))
		copy(data, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// PutBox stores the serialized ledger for the passed box.
//
// This function is part of the Store interface implementation.
func (s *DBStore) PutBox(boxCode uint8, ownerID, notaryID string, data []byte) error {
	return s.ns.Update(func(tx boxdb.Tx) error {
		b, err := fetchBoxBucket(tx, boxCode, notaryID, true)
		if err != nil {
			return err
		}
		stored := make([]byte, len(data))
		copy(stored, data)
		return b.Put([]byte(ownerID), stored)
	})
}
