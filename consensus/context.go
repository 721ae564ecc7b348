// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package consensus tracks the transaction number agreement between one
// local nym and one notary.  Every number the notary has signed out to the
// nym is "issued"; the subset not yet committed to an in-flight operation
// is "available"; numbers the notary has offered but the nym has not yet
// accepted are "tentative".  The ledger core consults this state when
// generating statements and returns numbers to it when harvesting failed
// operations.
package consensus

import (
	"errors"
	"sort"
	"sync"

	"github.com/opentxs/otledger/otid"
)

var (
	// ErrNoAvailableNumbers is returned when drawing a transaction
	// number from an exhausted available pool.
	ErrNoAvailableNumbers = errors.New("no available transaction numbers")

	// ErrNotIssued is returned when operating on a number the notary
	// never issued to this nym, or that has since been consumed.
	ErrNotIssued = errors.New("transaction number is not issued")

	// ErrAlreadyAvailable is returned when recovering a number that is
	// already in the available pool.  This catches double harvesting.
	ErrAlreadyAvailable = errors.New("transaction number is already available")

	// ErrNotTentative is returned when accepting a number that was
	// never recorded as tentative.
	ErrNotTentative = errors.New("transaction number is not tentative")

	// ErrContextNotFound is returned when loading a context that has
	// never been saved.
	ErrContextNotFound = errors.New("consensus context not found")
)

// TransactionStatement is a snapshot of the numbers a nym considers
// issued, after simulating an operation's additions and removals.  It is
// embedded in transaction and balance statements so the notary can agree
// on number state before committing.
type TransactionStatement struct {
	// Issued is the sorted set of issued numbers after the simulated
	// operation.
	Issued []int64
}

// Context is the per-(local nym, notary) consensus state.  All methods
// are safe for concurrent use.
type Context struct {
	mtx sync.Mutex

	localNym   otid.ID
	notaryID   otid.ID
	requestNum int64

	issued    map[int64]struct{}
	available map[int64]struct{}
	tentative map[int64]struct{}

	localNymboxHash  otid.ID
	remoteNymboxHash otid.ID
	inboxHashes      map[otid.ID]otid.ID
	outboxHashes     map[otid.ID]otid.ID
}

// NewContext returns an empty context for the passed nym and notary pair.
func NewContext(localNym, notaryID otid.ID) *Context {
	return &Context{
		localNym:     localNym,
		notaryID:     notaryID,
		issued:       make(map[int64]struct{}),
		available:    make(map[int64]struct{}),
		tentative:    make(map[int64]struct{}),
		inboxHashes:  make(map[otid.ID]otid.ID),
		outboxHashes: make(map[otid.ID]otid.ID),
	}
}

// LocalNym returns the local nym identifier the context belongs to.
func (c *Context) LocalNym() otid.ID {
	return c.localNym
}

// Notary returns the notary identifier the context belongs to.
func (c *Context) Notary() otid.ID {
	return c.notaryID
}

// NextRequestNumber increments and returns the request number counter
// used for the message channel with the notary.
func (c *Context) NextRequestNumber() int64 {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.requestNum++
	return c.requestNum
}

// AddTentativeNumber records a number the notary has offered but the nym
// has not yet signed for.
func (c *Context) AddTentativeNumber(n int64) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.tentative[n] = struct{}{}
}

// AcceptIssuedNumber moves a tentative number into the issued and
// available sets.  ErrNotTentative is returned if the number was never
// tentative.
func (c *Context) AcceptIssuedNumber(n int64) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if _, ok := c.tentative[n]; !ok {
		return ErrNotTentative
	}
	delete(c.tentative, n)
	c.issued[n] = struct{}{}
	c.available[n] = struct{}{}
	return nil
}

// ManagedNumber is a transaction number drawn from the available pool
// that must be explicitly resolved.  If the operation it was drawn for
// does not positively succeed, the caller must Release it on every
// failure branch so the number returns to the available pool.
type ManagedNumber struct {
	num       int64
	ctx       *Context
	succeeded bool
	released  bool
}

// Value returns the drawn transaction number.
func (m *ManagedNumber) Value() int64 {
	return m.num
}

// MarkSuccess records that the operation consumed the number, so Release
// becomes a no-op.
func (m *ManagedNumber) MarkSuccess() {
	m.succeeded = true
}

// Release returns the number to the available pool unless the operation
// was marked successful.  Releasing twice is a no-op.
func (m *ManagedNumber) Release() error {
	if m.succeeded || m.released {
		return nil
	}
	m.released = true
	return m.ctx.RecoverAvailableNumber(m.num)
}

// NextTransactionNumber draws the smallest available number.  The number
// stays issued; it leaves the available pool until either consumed or
// recovered.
func (c *Context) NextTransactionNumber() (*ManagedNumber, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if len(c.available) == 0 {
		return nil, ErrNoAvailableNumbers
	}
	lowest := int64(0)
	for n := range c.available {
		if lowest == 0 || n < lowest {
			lowest = n
		}
	}
	delete(c.available, lowest)
	return &ManagedNumber{num: lowest, ctx: c}, nil
}

// VerifyIssuedNumber reports whether the number is currently issued.
func (c *Context) VerifyIssuedNumber(n int64) bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	_, ok := c.issued[n]
	return ok
}

// VerifyAvailableNumber reports whether the number is currently in the
// available pool.
func (c *Context) VerifyAvailableNumber(n int64) bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	_, ok := c.available[n]
	return ok
}

// VerifyTentativeNumber reports whether the number is currently
// tentative.
func (c *Context) VerifyTentativeNumber(n int64) bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	_, ok := c.tentative[n]
	return ok
}

// ConsumeIssued burns an issued number after the notary has accepted the
// operation that used it.  The number is removed from both the issued and
// available sets and can never be reused.
func (c *Context) ConsumeIssued(n int64) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if _, ok := c.issued[n]; !ok {
		return ErrNotIssued
	}
	delete(c.issued, n)
	delete(c.available, n)
	return nil
}

// CloseCronItem retires the closing number of a finished recurring item
// (market offer, payment plan, smart contract).  Mechanically identical
// to ConsumeIssued but kept distinct so callers state their intent.
func (c *Context) CloseCronItem(n int64) error {
	return c.ConsumeIssued(n)
}

// RecoverAvailableNumber returns an issued number to the available pool
// after its operation is known to have failed.  ErrNotIssued is returned
// for numbers the notary never issued; ErrAlreadyAvailable is returned
// when the number was never drawn, which indicates a double harvest.
func (c *Context) RecoverAvailableNumber(n int64) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if _, ok := c.issued[n]; !ok {
		return ErrNotIssued
	}
	if _, ok := c.available[n]; ok {
		return ErrAlreadyAvailable
	}
	c.available[n] = struct{}{}
	return nil
}

// Statement returns the issued number set after simulating an operation
// that signs for every number in adding and retires every number in
// removing.  The context itself is not modified.
func (c *Context) Statement(adding, removing []int64) *TransactionStatement {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	result := make(map[int64]struct{}, len(c.issued)+len(adding))
	for n := range c.issued {
		result[n] = struct{}{}
	}
	for _, n := range adding {
		result[n] = struct{}{}
	}
	for _, n := range removing {
		delete(result, n)
	}

	issued := make([]int64, 0, len(result))
	for n := range result {
		issued = append(issued, n)
	}
	sort.Slice(issued, func(i, j int) bool { return issued[i] < issued[j] })
	return &TransactionStatement{Issued: issued}
}

// IssuedCount returns the number of currently issued numbers.
func (c *Context) IssuedCount() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return len(c.issued)
}

// AvailableCount returns the size of the available pool.
func (c *Context) AvailableCount() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return len(c.available)
}

// SetLocalNymboxHash records the most recent locally computed nymbox
// hash.
func (c *Context) SetLocalNymboxHash(h otid.ID) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.localNymboxHash = h
}

// LocalNymboxHash returns the most recent locally computed nymbox hash.
func (c *Context) LocalNymboxHash() otid.ID {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.localNymboxHash
}

// SetRemoteNymboxHash records the nymbox hash most recently reported by
// the notary.
func (c *Context) SetRemoteNymboxHash(h otid.ID) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.remoteNymboxHash = h
}

// RemoteNymboxHash returns the nymbox hash most recently reported by the
// notary.
func (c *Context) RemoteNymboxHash() otid.ID {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.remoteNymboxHash
}

// SetInboxHash records the latest inbox hash for the passed account.
func (c *Context) SetInboxHash(acctID, h otid.ID) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.inboxHashes[acctID] = h
}

// InboxHash returns the latest recorded inbox hash for the passed
// account.
func (c *Context) InboxHash(acctID otid.ID) (otid.ID, bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	h, ok := c.inboxHashes[acctID]
	return h, ok
}

// SetOutboxHash records the latest outbox hash for the passed account.
func (c *Context) SetOutboxHash(acctID, h otid.ID) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.outboxHashes[acctID] = h
}

// OutboxHash returns the latest recorded outbox hash for the passed
// account.
func (c *Context) OutboxHash(acctID otid.ID) (otid.ID, bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	h, ok := c.outboxHashes[acctID]
	return h, ok
}
