// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package boxdb provides a namespaced database interface for the ledger
subsystem.

Overview

The ledger core needs durable storage for box receipts and for per-notary
consensus state.  Rather than hard code a particular backend, this package
exposes a small key/value interface with nested buckets and atomic
transactions, and backends register themselves as drivers much like the
standard database/sql package.

A namespace is a top-level bucket reserved for a single consumer, so the
receipt store and the consensus context store can share one database file
without interfering with each other.

The bdb subpackage provides a driver backed by bbolt.
*/
package boxdb
