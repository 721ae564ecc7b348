// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"fmt"

	"github.com/opentxs/otledger/consensus"
)

// OperationOutcome is the caller-asserted result of an operation whose
// numbers may need harvesting.  Callers must derive the value from
// independently verified facts about the server reply and the
// transaction result; harvesting never guesses an outcome.
type OperationOutcome uint8

const (
	// OutcomePending means no reply has been processed for the
	// operation, for example because the message was dropped or is
	// being retried.
	OutcomePending OperationOutcome = iota

	// OutcomeReplyRejected means the server rejected the message
	// carrying the operation, so the operation was never attempted.
	OutcomeReplyRejected

	// OutcomeReplyAcceptedTxFailed means the server processed the
	// message but the transaction itself failed.
	OutcomeReplyAcceptedTxFailed

	// OutcomeReplyAcceptedTxSucceeded means the server processed the
	// message and the transaction succeeded.
	OutcomeReplyAcceptedTxSucceeded
)

// String returns the OperationOutcome as a human-readable name.
func (o OperationOutcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeReplyRejected:
		return "replyRejected"
	case OutcomeReplyAcceptedTxFailed:
		return "replyAcceptedTxFailed"
	case OutcomeReplyAcceptedTxSucceeded:
		return "replyAcceptedTxSucceeded"
	}
	return fmt.Sprintf("Unknown OperationOutcome (%d)", uint8(o))
}

// valid reports whether the outcome is one of the defined values.
func (o OperationOutcome) valid() bool {
	return o <= OutcomeReplyAcceptedTxSucceeded
}

// HarvestOpeningNumber returns the transaction's opening number to the
// context's available pool when the operation is not known to have
// burned it.  An opening number is burned exactly when a successful
// reply confirmed a successful transaction; every other outcome leaves
// it recoverable.
//
// The number must still verify as issued; harvesting a number the
// context does not consider issued is a bookkeeping error.
func (t *Transaction) HarvestOpeningNumber(ctx *consensus.Context,
	outcome OperationOutcome) error {

	if !outcome.valid() {
		return ledgerError(ErrInternal, fmt.Sprintf("invalid "+
			"operation outcome %d while harvesting transaction "+
			"%d", uint8(outcome), t.number), nil)
	}

	switch outcome {
	case OutcomeReplyAcceptedTxSucceeded:
		// The opening number was burned by the successful
		// operation.  Nothing to recover.
		return nil

	case OutcomePending, OutcomeReplyRejected, OutcomeReplyAcceptedTxFailed:
		if !ctx.VerifyIssuedNumber(t.number) {
			return ledgerError(ErrNumbering, fmt.Sprintf(
				"opening number %d is not issued to this "+
					"nym", t.number), nil)
		}
		if err := ctx.RecoverAvailableNumber(t.number); err != nil {
			return ledgerError(ErrNumbering, fmt.Sprintf(
				"failed to recover opening number %d",
				t.number), err)
		}
		log.Debugf("Harvested opening number %d (%s, outcome %s)",
			t.number, t.txType, outcome)
		return nil
	}

	// Unreachable: valid() admits only the cases above.
	return ledgerError(ErrInternal, fmt.Sprintf("unhandled operation "+
		"outcome %s", outcome), nil)
}

// closingNumbers collects the closing numbers the transaction committed
// for its operation.
func (t *Transaction) closingNumbers() []int64 {
	if t.txType.HasClosingNumber() && t.ClosingNum != 0 {
		return []int64{t.ClosingNum}
	}
	// Recurring operations commit their closing numbers through the
	// embedded number list.
	return t.NumberList
}

// HarvestClosingNumbers returns the transaction's closing numbers to the
// context's available pool when the operation overall failed, so the
// numbers were never consumed server side.  A successful operation keeps
// its closing numbers committed; they are retired later through the
// final receipt.
func (t *Transaction) HarvestClosingNumbers(ctx *consensus.Context,
	outcome OperationOutcome) error {

	if !outcome.valid() {
		return ledgerError(ErrInternal, fmt.Sprintf("invalid "+
			"operation outcome %d while harvesting transaction "+
			"%d", uint8(outcome), t.number), nil)
	}
	if outcome == OutcomeReplyAcceptedTxSucceeded {
		return nil
	}

	for _, n := range t.closingNumbers() {
		if !ctx.VerifyIssuedNumber(n) {
			return ledgerError(ErrNumbering, fmt.Sprintf(
				"closing number %d is not issued to this "+
					"nym", n), nil)
		}
		if err := ctx.RecoverAvailableNumber(n); err != nil {
			return ledgerError(ErrNumbering, fmt.Sprintf("failed "+
				"to recover closing number %d", n), err)
		}
		log.Debugf("Harvested closing number %d of transaction %d "+
			"(outcome %s)", n, t.number, outcome)
	}
	return nil
}
