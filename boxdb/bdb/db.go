// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bdb

import (
	"os"

	"github.com/opentxs/otledger/boxdb"
	bolt "go.etcd.io/bbolt"
)

// convertErr converts some bolt errors to the equivalent boxdb error.
func convertErr(err error) error {
	switch err {
	// Database open/create errors.
	case bolt.ErrDatabaseNotOpen:
		return boxdb.ErrDbNotOpen
	case bolt.ErrInvalid:
		return boxdb.ErrInvalid

	// Transaction errors.
	case bolt.ErrTxNotWritable:
		return boxdb.ErrTxNotWritable
	case bolt.ErrTxClosed:
		return boxdb.ErrTxClosed

	// Value/bucket errors.
	case bolt.ErrBucketNotFound:
		return boxdb.ErrBucketNotFound
	case bolt.ErrBucketExists:
		return boxdb.ErrBucketExists
	case bolt.ErrBucketNameRequired:
		return boxdb.ErrBucketNameRequired
	case bolt.ErrKeyRequired:
		return boxdb.ErrKeyRequired
	case bolt.ErrIncompatibleValue:
		return boxdb.ErrIncompatibleValue
	}

	// Return the original error if none of the above applies.
	return err
}

// bucket is an internal type used to represent a collection of key/value
// pairs and implements the boxdb Bucket interface.
type bucket bolt.Bucket

// Enforce bucket implements the boxdb Bucket interface.
var _ boxdb.Bucket = (*bucket)(nil)

// Bucket retrieves a nested bucket with the given key.  Returns nil if the
// bucket does not exist.
//
// This function is part of the boxdb.Bucket interface implementation.
func (b *bucket) Bucket(key []byte) boxdb.Bucket {
	boltBucket := (*bolt.Bucket)(b).Bucket(key)
	// Don't return a non-nil interface to a nil pointer.
	if boltBucket == nil {
		return nil
	}
	return (*bucket)(boltBucket)
}

// CreateBucket creates and returns a new nested bucket with the given key.
//
// This function is part of the boxdb.Bucket interface implementation.
func (b *bucket) CreateBucket(key []byte) (boxdb.Bucket, error) {
	boltBucket, err := (*bolt.Bucket)(b).CreateBucket(key)
	if err != nil {
		return nil, convertErr(err)
	}
	return (*bucket)(boltBucket), nil
}

// CreateBucketIfNotExists creates and returns a new nested bucket with the
// given key if it does not already exist.
//
// This function is part of the boxdb.Bucket interface implementation.
func (b *bucket) CreateBucketIfNotExists(key []byte) (boxdb.Bucket, error) {
	boltBucket, err := (*bolt.Bucket)(b).CreateBucketIfNotExists(key)
	if err != nil {
		return nil, convertErr(err)
	}
	return (*bucket)(boltBucket), nil
}

// DeleteBucket removes a nested bucket with the given key.
//
// This function is part of the boxdb.Bucket interface implementation.
func (b *bucket) DeleteBucket(key []byte) error {
	return convertErr((*bolt.Bucket)(b).DeleteBucket(key))
}

// ForEach invokes the passed function with every key/value pair in the
// bucket.  This includes nested buckets, in which case the value is nil,
// but it does not include the key/value pairs within those nested buckets.
//
// This function is part of the boxdb.Bucket interface implementation.
func (b *bucket) ForEach(fn func(k, v []byte) error) error {
	return convertErr((*bolt.Bucket)(b).ForEach(fn))
}

// Writable returns whether or not the bucket is writable.
//
// This function is part of the boxdb.Bucket interface implementation.
func (b *bucket) Writable() bool {
	return (*bolt.Bucket)(b).Writable()
}

// Put saves the specified key/value pair to the bucket.  Keys that do not
// already exist are added and keys that already exist are overwritten.
//
// This function is part of the boxdb.Bucket interface implementation.
func (b *bucket) Put(key, value []byte) error {
	return convertErr((*bolt.Bucket)(b).Put(key, value))
}

// Get returns the value for the given key.  Returns nil if the key does
// not exist in this bucket (or nested buckets).
//
// This function is part of the boxdb.Bucket interface implementation.
func (b *bucket) Get(key []byte) []byte {
	return (*bolt.Bucket)(b).Get(key)
}

// Delete removes the specified key from the bucket.  Deleting a key that
// does not exist does not return an error.
//
// This function is part of the boxdb.Bucket interface implementation.
func (b *bucket) Delete(key []byte) error {
	return convertErr((*bolt.Bucket)(b).Delete(key))
}

// transaction represents a database transaction.  It can be either
// read-only or read-write and implements the boxdb Tx interface.  The
// transaction provides a root bucket against which all reads and writes
// occur.
type transaction struct {
	boltTx  *bolt.Tx
	rootKey []byte
}

// Enforce transaction implements the boxdb Tx interface.
var _ boxdb.Tx = (*transaction)(nil)

// RootBucket returns the top-most bucket for the namespace the transaction
// was created from.
//
// This function is part of the boxdb.Tx interface implementation.
func (tx *transaction) RootBucket() boxdb.Bucket {
	boltBucket := tx.boltTx.Bucket(tx.rootKey)
	if boltBucket == nil {
		return nil
	}
	return (*bucket)(boltBucket)
}

// Commit commits all changes that have been made through the root bucket
// and all of its sub-buckets to persistent storage.
//
// This function is part of the boxdb.Tx interface implementation.
func (tx *transaction) Commit() error {
	return convertErr(tx.boltTx.Commit())
}

// Rollback undoes all changes that have been made to the root bucket and
// all of its sub-buckets.
//
// This function is part of the boxdb.Tx interface implementation.
func (tx *transaction) Rollback() error {
	return convertErr(tx.boltTx.Rollback())
}

// namespace represents a single top-level bucket reserved for one consumer
// of the database and implements the boxdb Namespace interface.
type namespace struct {
	db  *bolt.DB
	key []byte
}

// Enforce namespace implements the boxdb Namespace interface.
var _ boxdb.Namespace = (*namespace)(nil)

// Begin starts a transaction which is either read-only or read-write
// depending on the specified flag.
//
// This function is part of the boxdb.Namespace interface implementation.
func (ns *namespace) Begin(writable bool) (boxdb.Tx, error) {
	boltTx, err := ns.db.Begin(writable)
	if err != nil {
		return nil, convertErr(err)
	}
	return &transaction{boltTx: boltTx, rootKey: ns.key}, nil
}

// View invokes the passed function in the context of a managed read-only
// transaction.
//
// This function is part of the boxdb.Namespace interface implementation.
func (ns *namespace) View(fn func(boxdb.Tx) error) error {
	return convertErr(ns.db.View(func(boltTx *bolt.Tx) error {
		return fn(&transaction{boltTx: boltTx, rootKey: ns.key})
	}))
}

// Update invokes the passed function in the context of a managed
// read-write transaction.
//
// This function is part of the boxdb.Namespace interface implementation.
func (ns *namespace) Update(fn func(boxdb.Tx) error) error {
	return convertErr(ns.db.Update(func(boltTx *bolt.Tx) error {
		return fn(&transaction{boltTx: boltTx, rootKey: ns.key})
	}))
}

// db represents a collection of namespaces which are persisted and
// implements the boxdb.DB interface.  All database access is performed
// through transactions which are obtained through a specific Namespace.
type db bolt.DB

// Enforce db implements the boxdb.DB interface.
var _ boxdb.DB = (*db)(nil)

// Namespace returns a Namespace interface for the provided key.  The
// namespace bucket is created on first access.
//
// This function is part of the boxdb.DB interface implementation.
func (db *db) Namespace(key []byte) (boxdb.Namespace, error) {
	// Ensure the top-level bucket for the namespace exists before
	// handing out the namespace.
	err := (*bolt.DB)(db).Update(func(boltTx *bolt.Tx) error {
		_, err := boltTx.CreateBucketIfNotExists(key)
		return err
	})
	if err != nil {
		return nil, convertErr(err)
	}
	return &namespace{db: (*bolt.DB)(db), key: key}, nil
}

// DeleteNamespace deletes the namespace for the passed key.
//
// This function is part of the boxdb.DB interface implementation.
func (db *db) DeleteNamespace(key []byte) error {
	return convertErr((*bolt.DB)(db).Update(func(boltTx *bolt.Tx) error {
		return boltTx.DeleteBucket(key)
	}))
}

// Close cleanly shuts down the database and syncs all data.
//
// This function is part of the boxdb.DB interface implementation.
func (db *db) Close() error {
	return convertErr((*bolt.DB)(db).Close())
}

// fileExists reports whether the named file or directory exists.
func fileExists(name string) bool {
	if _, err := os.Stat(name); err != nil {
		if os.IsNotExist(err) {
			return false
		}
	}
	return true
}

// openDB opens the database at the provided path.  boxdb.ErrDbDoesNotExist
// is returned if the database doesn't exist and the create flag is not
// set.
func openDB(dbPath string, create bool) (boxdb.DB, error) {
	if !create && !fileExists(dbPath) {
		return nil, boxdb.ErrDbDoesNotExist
	}
	if create && fileExists(dbPath) {
		return nil, boxdb.ErrDbExists
	}

	boltDB, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, convertErr(err)
	}
	return (*db)(boltDB), nil
}
