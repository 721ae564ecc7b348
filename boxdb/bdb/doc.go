// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package bdb implements an instance of boxdb that uses bbolt for the
backing datastore.

Usage

This package is only a driver to the boxdb package and provides the
database type of "bdb".  The only parameter the Open and Create functions
take is the database path as a string:

	db, err := boxdb.Open("bdb", "path/to/database.db")
	if err != nil {
		// Handle error
	}
*/
package bdb
