// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"testing"

	"github.com/opentxs/otledger/consensus"
	"github.com/stretchr/testify/require"
)

// drawNumber issues the passed number and removes it from the available
// pool, as an in-flight operation would.
func drawNumber(t *testing.T, ctx *consensus.Context, n int64) {
	t.Helper()

	ctx.AddTentativeNumber(n)
	require.NoError(t, ctx.AcceptIssuedNumber(n))
	m, err := ctx.NextTransactionNumber()
	require.NoError(t, err)
	require.Equal(t, n, m.Value())
}

func TestHarvestOpeningNumber(t *testing.T) {
	tests := []struct {
		name      string
		outcome   OperationOutcome
		recovered bool
	}{
		{
			name:      "pending",
			outcome:   OutcomePending,
			recovered: true,
		},
		{
			name:      "reply rejected",
			outcome:   OutcomeReplyRejected,
			recovered: true,
		},
		{
			name:      "reply accepted tx failed",
			outcome:   OutcomeReplyAcceptedTxFailed,
			recovered: true,
		},
		{
			name:      "reply accepted tx succeeded",
			outcome:   OutcomeReplyAcceptedTxSucceeded,
			recovered: false,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctx := consensus.NewContext(testNymID, testNotaryID)
			drawNumber(t, ctx, 10)

			tx, err := NewTransaction(testBox(Message), 10,
				TxWithdrawal, testDate)
			require.NoError(t, err)

			err = tx.HarvestOpeningNumber(ctx, test.outcome)
			require.NoError(t, err)
			require.Equal(t, test.recovered,
				ctx.VerifyAvailableNumber(10))
		})
	}
}

func TestHarvestOpeningNumberGuards(t *testing.T) {
	ctx := consensus.NewContext(testNymID, testNotaryID)
	drawNumber(t, ctx, 10)

	tx, err := NewTransaction(testBox(Message), 10, TxWithdrawal,
		testDate)
	require.NoError(t, err)

	// Unknown outcomes are a caller bug.
	err = tx.HarvestOpeningNumber(ctx, OperationOutcome(99))
	require.True(t, IsError(err, ErrInternal))

	// Harvesting an unissued number is a bookkeeping error.
	stranger, err := NewTransaction(testBox(Message), 55, TxWithdrawal,
		testDate)
	require.NoError(t, err)
	err = stranger.HarvestOpeningNumber(ctx, OutcomePending)
	require.True(t, IsError(err, ErrNumbering))

	// Double harvesting is caught.
	require.NoError(t, tx.HarvestOpeningNumber(ctx, OutcomePending))
	err = tx.HarvestOpeningNumber(ctx, OutcomePending)
	require.True(t, IsError(err, ErrNumbering))
}

func TestHarvestClosingNumbersFinalReceipt(t *testing.T) {
	ctx := consensus.NewContext(testNymID, testNotaryID)
	drawNumber(t, ctx, 21)

	tx, err := NewTransaction(testBox(Inbox), 900, TxFinalReceipt,
		testDate)
	require.NoError(t, err)
	tx.ClosingNum = 21

	require.NoError(t, tx.HarvestClosingNumbers(ctx,
		OutcomeReplyRejected))
	require.True(t, ctx.VerifyAvailableNumber(21))
}

func TestHarvestClosingNumbersFromList(t *testing.T) {
	ctx := consensus.NewContext(testNymID, testNotaryID)
	drawNumber(t, ctx, 21)
	drawNumber(t, ctx, 22)

	tx, err := NewTransaction(testBox(Message), 20, TxMarketOffer,
		testDate)
	require.NoError(t, err)
	tx.NumberList = []int64{21, 22}

	// A successful operation keeps its closing numbers committed.
	require.NoError(t, tx.HarvestClosingNumbers(ctx,
		OutcomeReplyAcceptedTxSucceeded))
	require.False(t, ctx.VerifyAvailableNumber(21))
	require.False(t, ctx.VerifyAvailableNumber(22))

	// A failed one recovers them all.
	require.NoError(t, tx.HarvestClosingNumbers(ctx,
		OutcomeReplyAcceptedTxFailed))
	require.True(t, ctx.VerifyAvailableNumber(21))
	require.True(t, ctx.VerifyAvailableNumber(22))
}

func TestOperationOutcomeString(t *testing.T) {
	require.Equal(t, "pending", OutcomePending.String())
	require.Equal(t, "replyAcceptedTxSucceeded",
		OutcomeReplyAcceptedTxSucceeded.String())
	require.Contains(t, OperationOutcome(99).String(), "Unknown")
}
