// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"fmt"

	"github.com/opentxs/otledger/otid"
)

// identity tracks the expected ("real") identifiers a signed object was
// constructed with against the "purported" identifiers read back from its
// serialized contents.  Both ledgers and transactions embed one.
//
// Until an object has been loaded from serialized data the purported
// values mirror the real ones.
type identity struct {
	realAccountID      otid.ID
	purportedAccountID otid.ID
	realNotaryID       otid.ID
	purportedNotaryID  otid.ID
	realNymID          otid.ID
	purportedNymID     otid.ID
}

// newIdentity returns an identity whose purported identifiers mirror the
// real ones.
func newIdentity(nymID, accountID, notaryID otid.ID) identity {
	return identity{
		realAccountID:      accountID,
		purportedAccountID: accountID,
		realNotaryID:       notaryID,
		purportedNotaryID:  notaryID,
		realNymID:          nymID,
		purportedNymID:     nymID,
	}
}

// setPurported records the identifiers read from serialized contents.
func (id *identity) setPurported(nymID, accountID, notaryID otid.ID) {
	id.purportedNymID = nymID
	id.purportedAccountID = accountID
	id.purportedNotaryID = notaryID
}

// VerifyContractID checks the structural identity invariant: the
// purported account identifier must equal the real one, and the purported
// notary identifier must equal the real one.  Any mismatch is a hard
// verification failure.
func (id *identity) VerifyContractID() error {
	if id.purportedAccountID != id.realAccountID {
		return ledgerError(ErrVerification, fmt.Sprintf("purported "+
			"account id %s does not match expected %s",
			id.purportedAccountID, id.realAccountID), nil)
	}
	if id.purportedNotaryID != id.realNotaryID {
		return ledgerError(ErrVerification, fmt.Sprintf("purported "+
			"notary id %s does not match expected %s",
			id.purportedNotaryID, id.realNotaryID), nil)
	}
	return nil
}

// verifyNymID checks the purported nym identifier against the real one.
func (id *identity) verifyNymID() error {
	if id.purportedNymID != id.realNymID {
		return ledgerError(ErrVerification, fmt.Sprintf("purported "+
			"nym id %s does not match expected %s",
			id.purportedNymID, id.realNymID), nil)
	}
	return nil
}
