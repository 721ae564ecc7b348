// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package receiptstore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyPath(t *testing.T) {
	k := Key{
		BoxCode:  BoxCodeInbox,
		OwnerID:  "acct1",
		NotaryID: "notary1",
		TxNum:    742,
	}

	path, err := k.Path()
	require.NoError(t, err)
	require.Equal(t, "inbox/notary1/acct1.r/742.rct", path)
	require.Equal(t, path, k.String())
}

func TestKeyPathErrors(t *testing.T) {
	tests := []struct {
		name string
		key  Key
	}{
		{
			name: "message box",
			key: Key{
				BoxCode: BoxCodeMessage, OwnerID: "a",
				NotaryID: "n", TxNum: 1,
			},
		},
		{
			name: "unknown box code",
			key: Key{
				BoxCode: 99, OwnerID: "a", NotaryID: "n",
				TxNum: 1,
			},
		},
		{
			name: "missing owner",
			key: Key{
				BoxCode: BoxCodeInbox, NotaryID: "n", TxNum: 1,
			},
		},
		{
			name: "missing notary",
			key: Key{
				BoxCode: BoxCodeInbox, OwnerID: "a", TxNum: 1,
			},
		},
		{
			name: "zero transaction number",
			key: Key{
				BoxCode: BoxCodeInbox, OwnerID: "a",
				NotaryID: "n",
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := test.key.Path()
			require.Error(t, err)
		})
	}
}

func TestBoxFolderCodesStable(t *testing.T) {
	// These folder names are persisted in storage keys and must never
	// change.
	expected := map[uint8]string{
		BoxCodeNymbox:       "nymbox",
		BoxCodeInbox:        "inbox",
		BoxCodeOutbox:       "outbox",
		BoxCodePaymentInbox: "paymentInbox",
		BoxCodeRecordBox:    "recordBox",
		BoxCodeExpiredBox:   "expiredBox",
	}
	for code, want := range expected {
		folder, err := BoxFolder(code)
		require.NoError(t, err)
		require.Equal(t, want, folder)
	}

	_, err := BoxFolder(BoxCodeMessage)
	require.Error(t, err)
}
