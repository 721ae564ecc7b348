// Copyright (c) 2026 The Open Transactions developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package numlist packs ordered transaction number lists to and from a
// fixed-width big endian byte encoding for storage and hashing.
package numlist

import (
	"encoding/binary"
	"errors"
	"sort"
)

// numLen is the encoded width of a single transaction number.
const numLen = 8

// ErrRagged describes a packed list whose length is not a multiple of the
// encoded number width.
var ErrRagged = errors.New("packed number list has ragged length")

// Pack encodes the passed transaction numbers, sorted ascending, as
// big endian 64-bit integers.  A nil slice encodes to nil.
func Pack(nums []int64) []byte {
	if len(nums) == 0 {
		return nil
	}
	sorted := make([]int64, len(nums))
	copy(sorted, nums)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	b := make([]byte, numLen*len(sorted))
	for i, n := range sorted {
		binary.BigEndian.PutUint64(b[i*numLen:], uint64(n))
	}
	return b
}

// Unpack decodes a byte slice produced by Pack.
func Unpack(b []byte) ([]int64, error) {
	if len(b)%numLen != 0 {
		return nil, ErrRagged
	}
	if len(b) == 0 {
		return nil, nil
	}
	nums := make([]int64, 0, len(b)/numLen)
	for i := 0; i < len(b); i += numLen {
		nums = append(nums, int64(binary.BigEndian.Uint64(b[i:])))
	}
	return nums, nil
}
