// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package receiptstore

import (
	"fmt"
	"sync"
)

// memEntry is a stored receipt with its logical deletion mark.
type memEntry struct {
	data    []byte
	deleted bool
}

// MemStore is an in-memory Store implementation.  It is primarily useful
// for tests and for client sessions that never persist state.
type MemStore struct {
	mtx      sync.RWMutex
	receipts map[string]*memEntry
	boxes    map[string][]byte
}

// Enforce MemStore implements the Store interface.
var _ Store = (*MemStore)(nil)

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		receipts: make(map[string]*memEntry),
		boxes:    make(map[string][]byte),
	}
}

// Exists reports whether a live receipt is present for the key.
//
// This function is part of the Store interface implementation.
func (s *MemStore) Exists(k Key) (bool, error) {
	path, err := k.Path()
	if err != nil {
		return false, err
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	entry, ok := s.receipts[path]
	return ok && !entry.deleted, nil
}

// Fetch returns the receipt bytes for the key.
//
// This function is part of the Store interface implementation.
func (s *MemStore) Fetch(k Key) ([]byte, error) {
	path, err := k.Path()
	if err != nil {
		return nil, err
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	entry, ok := s.receipts[path]
	if !ok || entry.deleted {
		return nil, ErrNotFound
	}
	data := make([]byte, len(entry.data))
	copy(data, entry.data)
	return data, nil
}

// Put stores the receipt bytes for the key.
//
// This function is part of the Store interface implementation.
func (s *MemStore) Put(k Key, data []byte) error {
	path, err := k.Path()
	if err != nil {
		return err
	}

	stored := make([]byte, len(data))
	copy(stored, data)

	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.receipts[path] = &memEntry{data: stored}
	return nil
}

// MarkDeleted marks the stored receipt as deleted without removing it.
//
// This function is part of the Store interface implementation.
func (s *MemStore) MarkDeleted(k Key) error {
	path, err := k.Path()
	if err != nil {
		return err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	entry, ok := s.receipts[path]
	if !ok {
		return ErrNotFound
	}
	entry.deleted = true
	return nil
}

// boxPath builds the in-memory key for a serialized ledger.
func boxPath(boxCode uint8, ownerID, notaryID string) (string, error) {
	if boxCode == BoxCodeMessage {
		return "", ErrMessageBox
	}
	folder, err := BoxFolder(boxCode)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s", folder, notaryID, ownerID), nil
}

// FetchBox returns the serialized ledger for the passed box.
//
// This function is part of the Store interface implementation.
func (s *MemStore) FetchBox(boxCode uint8, ownerID, notaryID string) ([]byte, error) {
	path, err := boxPath(boxCode, ownerID, notaryID)
	if err != nil {
		return nil, err
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	data, ok := s.boxes[path]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// PutBox stores the serialized ledger for the passed box.
//
// This function is part of the Store interface implementation.
func (s *MemStore) PutBox(boxCode uint8, ownerID, notaryID string, data []byte) error {
	path, err := boxPath(boxCode, ownerID, notaryID)
	if err != nil {
		return err
	}

	stored := make([]byte, len(data))
	copy(stored, data)

	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.boxes[path] = stored
	return nil
}
