// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package dedup

import (
	"encoding/binary"

	"github.com/pckhoi/meow"
)

// KeyHasher sums the key cells of a row into a fixed size checksum. Cells
// are length-prefixed before hashing so that ["ab", "c"] and ["a", "bc"]
// produce different sums.
type KeyHasher struct {
	indices []int
	seed    uint64
	buf     []byte
}

func NewKeyHasher(indices []int, seed uint64) *KeyHasher {
	return &KeyHasher{
		indices: indices,
		seed:    seed,
	}
}

func (h *KeyHasher) encode(row []string) []byte {
	h.buf = h.buf[:0]
	for _, i := range h.indices {
		h.buf = binary.AppendUvarint(h.buf, uint64(len(row[i])))
		h.buf = append(h.buf, row[i]...)
	}
	return h.buf
}

// Sum returns the checksum of the key cells of row
func (h *KeyHasher) Sum(row []string) [meow.Size]byte {
	return meow.Checksum(h.seed, h.encode(row))
}
