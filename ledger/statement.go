// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"fmt"

	"github.com/opentxs/otledger/consensus"
	"github.com/opentxs/otledger/otcrypto"
	"github.com/opentxs/otledger/otid"
)

// Account is the view of an asset account a balance statement is
// generated against.
type Account struct {
	// AccountID identifies the account.
	AccountID otid.ID

	// NymID is the account owner.
	NymID otid.ID

	// NotaryID is the notary the account lives at.
	NotaryID otid.ID

	// Balance is the current signed account balance.
	Balance int64
}

// removesOpeningNumber reports whether a successful operation of the
// passed type retires its own opening number from the issued set, and
// whether the type is valid in a balance statement at all.  Cron item
// openings keep their number issued until the final receipt closes it;
// one-shot operations retire theirs immediately.
func removesOpeningNumber(txType TxType) (removes, ok bool) {
	switch txType {
	case TxProcessInbox, TxWithdrawal, TxDeposit, TxCancelCronItem,
		TxExchangeBasket, TxPayDividend:

		return true, true
	case TxTransfer, TxMarketOffer, TxPaymentPlan, TxSmartContract:
		return false, true
	}
	return false, false
}

// ProduceInboxReportItem condenses an inbox transaction into the report
// entry that represents it inside a balance statement.  The amount is
// the effect accepting the transaction will have on the account balance.
func ProduceInboxReportItem(t *Transaction) (ReportEntry, error) {
	if !t.Type().IsReceipt() {
		return ReportEntry{}, ledgerError(ErrInternal, fmt.Sprintf(
			"cannot report %s transaction %d from an inbox",
			t.Type(), t.Number()), nil)
	}
	entry := ReportEntry{
		Type:           t.Type(),
		TransactionNum: t.Number(),
		ReferenceNum:   t.ReferenceNum(),
		InRefDisplay:   t.InRefDisplay(),
		Amount:         t.Adjustment,
	}
	if t.Type().HasClosingNumber() {
		entry.ClosingNum = t.ClosingNum
	}
	return entry, nil
}

// ProduceOutboxReportItem condenses an outbox transaction into the
// report entry that represents it inside a balance statement.  Only
// pending outbound transfers live in the outbox; their amount is
// reported as a debit already excluded from the balance.
func ProduceOutboxReportItem(t *Transaction) (ReportEntry, error) {
	if t.Type() != TxPending {
		return ReportEntry{}, ledgerError(ErrInternal, fmt.Sprintf(
			"cannot report %s transaction %d from an outbox",
			t.Type(), t.Number()), nil)
	}
	return ReportEntry{
		Type:           t.Type(),
		TransactionNum: t.Number(),
		ReferenceNum:   t.ReferenceNum(),
		InRefDisplay:   t.InRefDisplay(),
		Amount:         -t.DisplayValue,
	}, nil
}

// GenerateBalanceStatement produces the signed balance statement item
// accompanying an account-affecting transaction.  It predicts the
// post-operation balance, reports every transaction currently in the
// account's inbox and outbox, and states the issued number set as it
// will stand if the operation succeeds.
//
// The owner transaction, the account, and both boxes must agree on
// account, nym, and notary identifiers; any disagreement fails the
// whole generation.
func GenerateBalanceStatement(owner *Transaction, ctx *consensus.Context,
	acct Account, inbox, outbox *Ledger, adjustment int64,
	signer otcrypto.Signer) (*Item, error) {

	if inbox.Type() != Inbox {
		return nil, ledgerError(ErrWrongBox, fmt.Sprintf("balance "+
			"statement needs an inbox, got %s", inbox.Type()), nil)
	}
	if outbox.Type() != Outbox {
		return nil, ledgerError(ErrWrongBox, fmt.Sprintf("balance "+
			"statement needs an outbox, got %s", outbox.Type()),
			nil)
	}

	box := owner.Box()
	for _, check := range []struct {
		name     string
		expected otid.ID
		actual   otid.ID
	}{
		{"account", acct.AccountID, box.AccountID},
		{"account", acct.AccountID, inbox.AccountID()},
		{"account", acct.AccountID, outbox.AccountID()},
		{"nym", acct.NymID, box.NymID},
		{"nym", acct.NymID, ctx.LocalNym()},
		{"nym", acct.NymID, inbox.NymID()},
		{"nym", acct.NymID, outbox.NymID()},
		{"notary", acct.NotaryID, box.NotaryID},
		{"notary", acct.NotaryID, ctx.Notary()},
		{"notary", acct.NotaryID, inbox.NotaryID()},
		{"notary", acct.NotaryID, outbox.NotaryID()},
	} {
		if check.expected != check.actual {
			return nil, ledgerError(ErrVerification, fmt.Sprintf(
				"balance statement %s id mismatch: %s vs %s",
				check.name, check.expected, check.actual),
				nil)
		}
	}

	removes, ok := removesOpeningNumber(owner.Type())
	if !ok {
		return nil, ledgerError(ErrInternal, fmt.Sprintf("%s "+
			"transactions do not carry balance statements",
			owner.Type()), nil)
	}
	var removing []int64
	if removes {
		removing = []int64{owner.Number()}
	}
	statement := ctx.Statement(nil, removing)

	item, err := NewItem(ItemBalanceStatement, StatusRequest,
		owner.Number(), owner.Number())
	if err != nil {
		return nil, err
	}
	item.Amount = acct.Balance + adjustment
	item.Issued = statement.Issued

	for _, t := range inbox.Transactions() {
		entry, err := ProduceInboxReportItem(t)
		if err != nil {
			return nil, err
		}
		item.Reports = append(item.Reports, entry)
	}
	for _, t := range outbox.Transactions() {
		entry, err := ProduceOutboxReportItem(t)
		if err != nil {
			return nil, err
		}
		item.Reports = append(item.Reports, entry)
	}

	if err := item.Sign(signer); err != nil {
		return nil, err
	}
	return item, nil
}

// GenerateTransactionStatement produces the signed transaction statement
// item accompanying an operation that affects transaction numbers but no
// account balance, such as processing the nymbox.  The statement lists
// the issued number set as it will stand if the operation succeeds; the
// owner transaction's own number is never removed here, since nymbox
// processing does not consume one.
func GenerateTransactionStatement(owner *Transaction,
	ctx *consensus.Context, adding, removing []int64,
	signer otcrypto.Signer) (*Item, error) {

	box := owner.Box()
	if box.NymID != ctx.LocalNym() {
		return nil, ledgerError(ErrVerification, fmt.Sprintf(
			"transaction statement nym id mismatch: %s vs %s",
			box.NymID, ctx.LocalNym()), nil)
	}
	if box.NotaryID != ctx.Notary() {
		return nil, ledgerError(ErrVerification, fmt.Sprintf(
			"transaction statement notary id mismatch: %s vs %s",
			box.NotaryID, ctx.Notary()), nil)
	}

	statement := ctx.Statement(adding, removing)

	item, err := NewItem(ItemTransactionStatement, StatusRequest,
		owner.Number(), owner.Number())
	if err != nil {
		return nil, err
	}
	item.Issued = statement.Issued

	if err := item.Sign(signer); err != nil {
		return nil, err
	}
	return item, nil
}
