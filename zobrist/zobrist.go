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

// Package zobrist provides the incremental position-hashing keys consumed
// by position.Position and the transposition table. Keys are drawn once,
// at package init, from a small xorshift32 generator seeded with a fixed
// constant so that a build always produces the same keys.
package zobrist

import "github.com/frankkopp/milky/types"

// random is a xorshift32 generator seeded with a fixed constant. It exists
// solely to fill the Zobrist key tables below at init time; nothing else
// in the engine should depend on its output being unpredictable.
type random struct {
	state uint32
}

func newRandom() *random {
	return &random{state: 1804289383}
}

func (r *random) u32() uint32 {
	n := r.state
	n ^= n << 13
	n ^= n >> 17
	n ^= n << 5
	r.state = n
	return n
}

func (r *random) u64() uint64 {
	n1 := uint64(r.u32()) & 0xFFFF
	n2 := uint64(r.u32()) & 0xFFFF
	n3 := uint64(r.u32()) & 0xFFFF
	n4 := uint64(r.u32()) & 0xFFFF
	return n1 | (n2 << 16) | (n3 << 32) | (n4 << 48)
}

// PieceSquare[p][s] is XORed in/out whenever piece p occupies square s.
var PieceSquare [types.PieceLength][types.SqLength]uint64

// EnPassant[s] is XORed in when s is the current en passant target square.
var EnPassant [types.SqLength]uint64

// Castling[cr] is XORed in for the current 4-bit castling rights value.
var Castling [16]uint64

// SideToMove is XORed in whenever it is Black to move.
var SideToMove uint64

func init() {
	rng := newRandom()

	for p := types.Piece(0); p < types.PieceLength; p++ {
		for s := types.Square(0); s < types.SqNone; s++ {
			PieceSquare[p][s] = rng.u64()
		}
	}
	for s := types.Square(0); s < types.SqNone; s++ {
		EnPassant[s] = rng.u64()
	}
	// index 0 (no rights) stays zero so it contributes nothing to a key
	for i := 1; i < 16; i++ {
		Castling[i] = rng.u64()
	}
	SideToMove = rng.u64()
}

// Position holds the minimal inputs needed to compute a from-scratch
// Zobrist key: used to verify an incrementally maintained key, and to seed
// a freshly parsed position.
type Position struct {
	Pieces      [types.PieceLength]types.Bitboard
	SideToMove  types.Color
	EnPassant   types.Square
	Castling    types.CastlingRights
}

// HashPosition computes the Zobrist key for pos from scratch.
func HashPosition(pos Position) uint64 {
	var key uint64
	for p := types.Piece(0); p < types.PieceLength; p++ {
		bb := pos.Pieces[p]
		for bb != 0 {
			var sq types.Square
			sq, bb = bb.PopLsb()
			key ^= PieceSquare[p][sq]
		}
	}
	if pos.EnPassant.IsValid() {
		key ^= EnPassant[pos.EnPassant]
	}
	key ^= Castling[pos.Castling]
	if pos.SideToMove == types.Black {
		key ^= SideToMove
	}
	return key
}
