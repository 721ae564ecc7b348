// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
)

// packBlobs concatenates opaque byte slices into a single value using
// uvarint length prefixes.  Used for item lists and box record lists.
func packBlobs(blobs [][]byte) []byte {
	if len(blobs) == 0 {
		return nil
	}
	var scratch [binary.MaxVarintLen64]byte
	size := 0
	for _, blob := range blobs {
		size += binary.PutUvarint(scratch[:], uint64(len(blob)))
		size += len(blob)
	}
	out := make([]byte, 0, size)
	for _, blob := range blobs {
		n := binary.PutUvarint(scratch[:], uint64(len(blob)))
		out = append(out, scratch[:n]...)
		out = append(out, blob...)
	}
	return out
}

// unpackBlobs reverses packBlobs.
func unpackBlobs(b []byte) ([][]byte, error) {
	var blobs [][]byte
	for len(b) > 0 {
		blobLen, n := binary.Uvarint(b)
		if n <= 0 || blobLen > uint64(len(b)-n) {
			return nil, ledgerError(ErrFormat, "malformed blob "+
				"list", nil)
		}
		b = b[n:]
		blob := make([]byte, blobLen)
		copy(blob, b[:blobLen])
		blobs = append(blobs, blob)
		b = b[blobLen:]
	}
	return blobs, nil
}
