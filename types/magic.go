/*
 * MilkyGo - UCI chess engine in GO
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package types

// Magic holds one square's magic-bitboard entry for a sliding piece: the
// relevant occupancy mask, the magic multiplier, the shift that compresses
// the multiplied product into a table index, and the slice of precomputed
// attack sets this square's occupancy variations index into. The attacks
// table itself is filled by the attacks package; this struct only carries
// the per-square parameters and the lookup.
type Magic struct {
	Mask    Bitboard
	Magic   uint64
	Shift   uint
	Attacks []Bitboard
}

// Index computes the table index for a given occupancy of the relevant
// blocker squares.
func (m *Magic) Index(occupied Bitboard) int {
	relevant := uint64(occupied & m.Mask)
	return int((relevant * m.Magic) >> m.Shift)
}

// AttacksBb returns the precomputed attack set for the given occupancy.
func (m *Magic) AttacksBb(occupied Bitboard) Bitboard {
	return m.Attacks[m.Index(occupied)]
}

// PrnG is a xorshift64star pseudo-random generator used to search for
// magic multipliers. Its output is biased toward sparse bit patterns,
// which tend to make good magic candidates.
type PrnG struct {
	seed uint64
}

// NewPrnG creates a generator seeded with the given nonzero value.
func NewPrnG(seed uint64) *PrnG {
	if seed == 0 {
		seed = 1
	}
	return &PrnG{seed: seed}
}

// Next returns the next pseudo-random 64-bit value.
func (g *PrnG) Next() uint64 {
	g.seed ^= g.seed >> 12
	g.seed ^= g.seed << 25
	g.seed ^= g.seed >> 27
	return g.seed * 2685821657736338717
}

// SparseNext returns a pseudo-random value with relatively few set bits,
// the shape that tends to make a workable magic multiplier.
func (g *PrnG) SparseNext() uint64 {
	return g.Next() & g.Next() & g.Next()
}
