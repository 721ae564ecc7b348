// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package consensus

import (
	"path/filepath"
	"testing"

	"github.com/opentxs/otledger/boxdb"
	_ "github.com/opentxs/otledger/boxdb/bdb"
	"github.com/opentxs/otledger/otid"
	"github.com/stretchr/testify/require"
)

var (
	testNym    = otid.FromContent([]byte("nym"))
	testNotary = otid.FromContent([]byte("notary"))
)

// issueNumbers walks numbers through the tentative-accept handshake.
func issueNumbers(t *testing.T, c *Context, nums ...int64) {
	t.Helper()
	for _, n := range nums {
		c.AddTentativeNumber(n)
		require.NoError(t, c.AcceptIssuedNumber(n))
	}
}

func TestNumberLifecycle(t *testing.T) {
	c := NewContext(testNym, testNotary)

	// Tentative numbers are neither issued nor available yet.
	c.AddTentativeNumber(10)
	require.True(t, c.VerifyTentativeNumber(10))
	require.False(t, c.VerifyIssuedNumber(10))
	require.False(t, c.VerifyAvailableNumber(10))

	// Accepting moves the number to issued and available.
	require.NoError(t, c.AcceptIssuedNumber(10))
	require.False(t, c.VerifyTentativeNumber(10))
	require.True(t, c.VerifyIssuedNumber(10))
	require.True(t, c.VerifyAvailableNumber(10))

	// Accepting a number that was never tentative fails.
	require.ErrorIs(t, c.AcceptIssuedNumber(11), ErrNotTentative)

	// Consuming retires the number entirely.
	require.NoError(t, c.ConsumeIssued(10))
	require.False(t, c.VerifyIssuedNumber(10))
	require.False(t, c.VerifyAvailableNumber(10))
	require.ErrorIs(t, c.ConsumeIssued(10), ErrNotIssued)
}

func TestNextTransactionNumberDrawsLowest(t *testing.T) {
	c := NewContext(testNym, testNotary)
	issueNumbers(t, c, 30, 10, 20)

	m, err := c.NextTransactionNumber()
	require.NoError(t, err)
	require.Equal(t, int64(10), m.Value())

	// Drawn but not consumed: still issued, no longer available.
	require.True(t, c.VerifyIssuedNumber(10))
	require.False(t, c.VerifyAvailableNumber(10))
}

func TestNextTransactionNumberExhausted(t *testing.T) {
	c := NewContext(testNym, testNotary)

	_, err := c.NextTransactionNumber()
	require.ErrorIs(t, err, ErrNoAvailableNumbers)
}

func TestManagedNumberRelease(t *testing.T) {
	c := NewContext(testNym, testNotary)
	issueNumbers(t, c, 10)

	m, err := c.NextTransactionNumber()
	require.NoError(t, err)

	// Release on failure returns the number to the pool; the second
	// release is a no-op.
	require.NoError(t, m.Release())
	require.True(t, c.VerifyAvailableNumber(10))
	require.NoError(t, m.Release())
}

func TestManagedNumberMarkSuccess(t *testing.T) {
	c := NewContext(testNym, testNotary)
	issueNumbers(t, c, 10)

	m, err := c.NextTransactionNumber()
	require.NoError(t, err)
	m.MarkSuccess()

	// A successful operation keeps the number out of the pool.
	require.NoError(t, m.Release())
	require.False(t, c.VerifyAvailableNumber(10))
	require.True(t, c.VerifyIssuedNumber(10))
}

func TestRecoverAvailableNumberGuards(t *testing.T) {
	c := NewContext(testNym, testNotary)
	issueNumbers(t, c, 10)

	// Recovering a number that was never drawn is a double harvest.
	require.ErrorIs(t, c.RecoverAvailableNumber(10), ErrAlreadyAvailable)

	// Recovering an unissued number fails.
	require.ErrorIs(t, c.RecoverAvailableNumber(99), ErrNotIssued)

	m, err := c.NextTransactionNumber()
	require.NoError(t, err)
	require.NoError(t, c.RecoverAvailableNumber(m.Value()))
	require.True(t, c.VerifyAvailableNumber(10))
}

func TestStatementSimulation(t *testing.T) {
	c := NewContext(testNym, testNotary)
	issueNumbers(t, c, 10, 20, 30)

	stmt := c.Statement([]int64{40}, []int64{20})
	require.Equal(t, []int64{10, 30, 40}, stmt.Issued)

	// The simulation must not touch the live state.
	require.True(t, c.VerifyIssuedNumber(20))
	require.False(t, c.VerifyIssuedNumber(40))
	require.Equal(t, 3, c.IssuedCount())
}

func TestRequestNumberMonotonic(t *testing.T) {
	c := NewContext(testNym, testNotary)

	require.Equal(t, int64(1), c.NextRequestNumber())
	require.Equal(t, int64(2), c.NextRequestNumber())
}

func TestContextSaveLoad(t *testing.T) {
	db, err := boxdb.Create("bdb",
		filepath.Join(t.TempDir(), "boxes.db"))
	require.NoError(t, err)
	defer db.Close()

	ns, err := db.Namespace([]byte("consensus"))
	require.NoError(t, err)

	c := NewContext(testNym, testNotary)
	issueNumbers(t, c, 10, 20)
	_, err = c.NextTransactionNumber()
	require.NoError(t, err)
	c.AddTentativeNumber(30)
	c.NextRequestNumber()

	acct := otid.FromContent([]byte("acct"))
	c.SetLocalNymboxHash(otid.FromContent([]byte("local")))
	c.SetRemoteNymboxHash(otid.FromContent([]byte("remote")))
	c.SetInboxHash(acct, otid.FromContent([]byte("inbox")))
	c.SetOutboxHash(acct, otid.FromContent([]byte("outbox")))

	require.NoError(t, c.Save(ns))

	restored, err := LoadContext(ns, testNym, testNotary)
	require.NoError(t, err)

	require.True(t, restored.VerifyIssuedNumber(10))
	require.True(t, restored.VerifyIssuedNumber(20))
	require.False(t, restored.VerifyAvailableNumber(10))
	require.True(t, restored.VerifyAvailableNumber(20))
	require.True(t, restored.VerifyTentativeNumber(30))
	require.Equal(t, int64(2), restored.NextRequestNumber())
	require.Equal(t, c.LocalNymboxHash(), restored.LocalNymboxHash())
	require.Equal(t, c.RemoteNymboxHash(), restored.RemoteNymboxHash())

	h, ok := restored.InboxHash(acct)
	require.True(t, ok)
	require.Equal(t, otid.FromContent([]byte("inbox")), h)
	h, ok = restored.OutboxHash(acct)
	require.True(t, ok)
	require.Equal(t, otid.FromContent([]byte("outbox")), h)

	_, err = LoadContext(ns, testNotary, testNym)
	require.ErrorIs(t, err, ErrContextNotFound)
}
