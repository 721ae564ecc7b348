// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"fmt"
)

// TxType identifies the kind of event a transaction represents.  The
// literal names returned by String are the canonical serialized type
// names and must remain stable.
type TxType uint8

const (
	// TxBlank is a server-issued batch of fresh transaction numbers
	// waiting in the nymbox to be signed for.
	TxBlank TxType = iota

	// TxMessage carries a peer-to-peer message receipt in the nymbox.
	TxMessage

	// TxNotice notifies the nym of server-side activity on one of its
	// cron items.
	TxNotice

	// TxReplyNotice carries a copy of the server's reply to a request
	// the client may have missed.
	TxReplyNotice

	// TxSuccessNotice confirms a batch of tentative numbers was
	// successfully signed out.
	TxSuccessNotice

	// TxPending is an incoming transfer waiting to be accepted.
	TxPending

	// TxTransferReceipt is the sender's receipt for an accepted
	// transfer.
	TxTransferReceipt

	// TxChequeReceipt is the drawer's receipt for a deposited cheque.
	TxChequeReceipt

	// TxVoucherReceipt is the remitter's receipt for a deposited
	// voucher.
	TxVoucherReceipt

	// TxMarketReceipt is a receipt for market offer activity.
	TxMarketReceipt

	// TxPaymentReceipt is a receipt for payment plan activity.
	TxPaymentReceipt

	// TxFinalReceipt closes an expired or canceled cron item.
	TxFinalReceipt

	// TxBasketReceipt is a receipt for a basket currency exchange leg.
	TxBasketReceipt

	// TxInstrumentNotice delivers a payment instrument to the
	// recipient's payment inbox.
	TxInstrumentNotice

	// TxInstrumentRejection reports a rejected instrument.
	TxInstrumentRejection

	// TxProcessNymbox is the client operation accepting nymbox
	// contents.
	TxProcessNymbox

	// TxAtProcessNymbox is the server reply to TxProcessNymbox.
	TxAtProcessNymbox

	// TxProcessInbox is the client operation accepting inbox contents.
	TxProcessInbox

	// TxAtProcessInbox is the server reply to TxProcessInbox.
	TxAtProcessInbox

	// TxTransfer is the client operation sending an account-to-account
	// transfer.
	TxTransfer

	// TxAtTransfer is the server reply to TxTransfer.
	TxAtTransfer

	// TxDeposit is the client operation depositing cash or a cheque.
	TxDeposit

	// TxAtDeposit is the server reply to TxDeposit.
	TxAtDeposit

	// TxWithdrawal is the client operation withdrawing cash or a
	// voucher.
	TxWithdrawal

	// TxAtWithdrawal is the server reply to TxWithdrawal.
	TxAtWithdrawal

	// TxMarketOffer is the client operation placing a market offer.
	TxMarketOffer

	// TxAtMarketOffer is the server reply to TxMarketOffer.
	TxAtMarketOffer

	// TxPaymentPlan is the client operation activating a payment plan.
	TxPaymentPlan

	// TxAtPaymentPlan is the server reply to TxPaymentPlan.
	TxAtPaymentPlan

	// TxSmartContract is the client operation activating a smart
	// contract.
	TxSmartContract

	// TxAtSmartContract is the server reply to TxSmartContract.
	TxAtSmartContract

	// TxCancelCronItem is the client operation canceling a running
	// cron item.
	TxCancelCronItem

	// TxAtCancelCronItem is the server reply to TxCancelCronItem.
	TxAtCancelCronItem

	// TxExchangeBasket is the client operation exchanging in or out of
	// a basket currency.
	TxExchangeBasket

	// TxAtExchangeBasket is the server reply to TxExchangeBasket.
	TxAtExchangeBasket

	// TxPayDividend is the client operation paying a dividend to
	// shareholders.
	TxPayDividend

	// TxAtPayDividend is the server reply to TxPayDividend.
	TxAtPayDividend

	// TxTypeError is the value used for an unparsable transaction
	// type.
	TxTypeError TxType = 255
)

// txTypeNames maps transaction types to their canonical serialized
// names.
var txTypeNames = map[TxType]string{
	TxBlank:               "blank",
	TxMessage:             "message",
	TxNotice:              "notice",
	TxReplyNotice:         "replyNotice",
	TxSuccessNotice:       "successNotice",
	TxPending:             "pending",
	TxTransferReceipt:     "transferReceipt",
	TxChequeReceipt:       "chequeReceipt",
	TxVoucherReceipt:      "voucherReceipt",
	TxMarketReceipt:       "marketReceipt",
	TxPaymentReceipt:      "paymentReceipt",
	TxFinalReceipt:        "finalReceipt",
	TxBasketReceipt:       "basketReceipt",
	TxInstrumentNotice:    "instrumentNotice",
	TxInstrumentRejection: "instrumentRejection",
	TxProcessNymbox:       "processNymbox",
	TxAtProcessNymbox:     "atProcessNymbox",
	TxProcessInbox:        "processInbox",
	TxAtProcessInbox:      "atProcessInbox",
	TxTransfer:            "transfer",
	TxAtTransfer:          "atTransfer",
	TxDeposit:             "deposit",
	TxAtDeposit:           "atDeposit",
	TxWithdrawal:          "withdrawal",
	TxAtWithdrawal:        "atWithdrawal",
	TxMarketOffer:         "marketOffer",
	TxAtMarketOffer:       "atMarketOffer",
	TxPaymentPlan:         "paymentPlan",
	TxAtPaymentPlan:       "atPaymentPlan",
	TxSmartContract:       "smartContract",
	TxAtSmartContract:     "atSmartContract",
	TxCancelCronItem:      "cancelCronItem",
	TxAtCancelCronItem:    "atCancelCronItem",
	TxExchangeBasket:      "exchangeBasket",
	TxAtExchangeBasket:    "atExchangeBasket",
	TxPayDividend:         "payDividend",
	TxAtPayDividend:       "atPayDividend",
	TxTypeError:           "error_state",
}

// txTypesByName is the reverse of txTypeNames, used when parsing.
var txTypesByName = func() map[string]TxType {
	m := make(map[string]TxType, len(txTypeNames))
	for t, name := range txTypeNames {
		m[name] = t
	}
	return m
}()

// String returns the TxType as its canonical serialized name.
func (tt TxType) String() string {
	if s, ok := txTypeNames[tt]; ok {
		return s
	}
	return fmt.Sprintf("Unknown TxType (%d)", uint8(tt))
}

// ParseTxType maps a canonical serialized name back to its TxType.
func ParseTxType(name string) (TxType, error) {
	t, ok := txTypesByName[name]
	if !ok || t == TxTypeError {
		return TxTypeError, ledgerError(ErrFormat,
			fmt.Sprintf("unknown transaction type %q", name), nil)
	}
	return t, nil
}

// Valid reports whether the transaction type is one of the defined
// types.
func (tt TxType) Valid() bool {
	_, ok := txTypeNames[tt]
	return ok && tt != TxTypeError
}

// IsReceipt reports whether the type is a server-generated receipt
// dropped into a box, as opposed to an operation or its direct reply.
func (tt TxType) IsReceipt() bool {
	switch tt {
	case TxPending, TxTransferReceipt, TxChequeReceipt, TxVoucherReceipt,
		TxMarketReceipt, TxPaymentReceipt, TxFinalReceipt,
		TxBasketReceipt:

		return true
	}
	return false
}

// IsNotice reports whether the type is a notification rather than an
// operation, reply, or receipt.
func (tt TxType) IsNotice() bool {
	switch tt {
	case TxBlank, TxMessage, TxNotice, TxReplyNotice, TxSuccessNotice,
		TxInstrumentNotice, TxInstrumentRejection:

		return true
	}
	return false
}

// HasClosingNumber reports whether the type carries a closing
// transaction number in its abbreviated form.
func (tt TxType) HasClosingNumber() bool {
	return tt == TxFinalReceipt || tt == TxBasketReceipt
}

// HasNumberList reports whether the type carries an embedded batch of
// transaction numbers in its abbreviated form.
func (tt TxType) HasNumberList() bool {
	return tt == TxBlank || tt == TxSuccessNotice
}

// OriginType qualifies which kind of cron item a receipt chain
// originates from.
type OriginType uint8

const (
	// OriginNotApplicable is used by transactions outside any receipt
	// chain.
	OriginNotApplicable OriginType = 0

	// OriginMarketOffer marks a chain rooted in a market offer.
	OriginMarketOffer OriginType = 1

	// OriginPaymentPlan marks a chain rooted in a payment plan.
	OriginPaymentPlan OriginType = 2

	// OriginSmartContract marks a chain rooted in a smart contract.
	OriginSmartContract OriginType = 3

	// OriginPayDividend marks a chain rooted in a dividend payout.
	OriginPayDividend OriginType = 4

	// OriginError is the value used for an unparsable origin type.
	OriginError OriginType = 255
)

// originTypeNames maps origin types to their canonical serialized names.
var originTypeNames = map[OriginType]string{
	OriginNotApplicable: "not_applicable",
	OriginMarketOffer:   "origin_market_offer",
	OriginPaymentPlan:   "origin_payment_plan",
	OriginSmartContract: "origin_smart_contract",
	OriginPayDividend:   "origin_pay_dividend",
	OriginError:         "origin_error_state",
}

// String returns the OriginType as its canonical serialized name.
func (ot OriginType) String() string {
	if s, ok := originTypeNames[ot]; ok {
		return s
	}
	return fmt.Sprintf("Unknown OriginType (%d)", uint8(ot))
}

// Valid reports whether the origin type is one of the defined values.
func (ot OriginType) Valid() bool {
	_, ok := originTypeNames[ot]
	return ok && ot != OriginError
}
