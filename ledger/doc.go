// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package ledger implements the transaction container hierarchy used by
account-based notarized transactions.

A Ledger is one of a nym's or account's boxes (nymbox, inbox, outbox,
payment inbox, record box, expired box, or a transient message ledger)
and owns a set of transactions keyed by transaction number.  A
Transaction is one entry in a box and owns an ordered list of Items,
the atomic signed units describing what the transaction claims or does.

Persistent boxes serialize abbreviated per-transaction summary records;
the full signed transaction forms are stored individually as box
receipts and hydrated on demand, verified against the receipt hash
recorded in the abbreviated form.  Message ledgers, used only for
request/response transport, always carry full forms inline and are
never persisted.

The package also provides balance and transaction statement generation
and transaction number harvesting, both operating against a
consensus.Context.
*/
package ledger
