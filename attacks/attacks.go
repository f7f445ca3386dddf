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

// Package attacks precomputes every lookup table the move generator and
// evaluator need: leaper attacks for pawns/knights/kings, magic-bitboard
// sliding attacks for bishops/rooks/queens, and the pawn-structure masks
// used by the evaluator. Everything here is built once at package init
// time from the types package's primitives, never from hand-transcribed
// hex constants.
package attacks

import "github.com/frankkopp/milky/types"

// PawnAttacks[c][s] is the set of squares a pawn of color c on s attacks.
var PawnAttacks [types.ColorLength][types.SqLength]types.Bitboard

// KnightAttacks[s] is the set of squares a knight on s attacks.
var KnightAttacks [types.SqLength]types.Bitboard

// KingAttacks[s] is the set of squares a king on s attacks.
var KingAttacks [types.SqLength]types.Bitboard

var bishopDirections = [4]types.Direction{types.Northeast, types.Southeast, types.Southwest, types.Northwest}
var rookDirections = [4]types.Direction{types.North, types.East, types.South, types.West}
var knightDeltas = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}

var bishopMagics [types.SqLength]types.Magic
var rookMagics [types.SqLength]types.Magic

func init() {
	initLeaperAttacks()
	initMagics(&bishopMagics, &bishopDirections)
	initMagics(&rookMagics, &rookDirections)
}

func initLeaperAttacks() {
	for s := types.Square(0); s < types.SqNone; s++ {
		// pawn
		if s.RankOf() != types.Rank8 {
			var bb types.Bitboard
			if t := s.To(types.Northeast); t.IsValid() {
				bb = bb.PushSquare(t)
			}
			if t := s.To(types.Northwest); t.IsValid() {
				bb = bb.PushSquare(t)
			}
			PawnAttacks[types.White][s] = bb
		}
		if s.RankOf() != types.Rank1 {
			var bb types.Bitboard
			if t := s.To(types.Southeast); t.IsValid() {
				bb = bb.PushSquare(t)
			}
			if t := s.To(types.Southwest); t.IsValid() {
				bb = bb.PushSquare(t)
			}
			PawnAttacks[types.Black][s] = bb
		}

		// knight
		var knightBb types.Bitboard
		f, r := int(s.FileOf()), int(s.RankOf())
		for _, d := range knightDeltas {
			nf, nr := f+d[0], r+d[1]
			if nf >= 0 && nf < int(types.FileLength) && nr >= 0 && nr < int(types.RankLength) {
				knightBb = knightBb.PushSquare(types.SquareOf(types.File(nf), types.Rank(nr)))
			}
		}
		KnightAttacks[s] = knightBb

		// king
		var kingBb types.Bitboard
		for _, d := range append(append([]types.Direction{}, bishopDirections[:]...), rookDirections[:]...) {
			if t := s.To(d); t.IsValid() {
				kingBb = kingBb.PushSquare(t)
			}
		}
		KingAttacks[s] = kingBb
	}
}

// slidingAttack computes, by brute force, the set of squares attacked by a
// slider standing on sq moving along directions, stopping at the edge of
// the board or at the first occupied square (inclusive).
func slidingAttack(directions *[4]types.Direction, sq types.Square, occupied types.Bitboard) types.Bitboard {
	var attack types.Bitboard
	for _, d := range directions {
		s := sq
		for {
			next := s.To(d)
			if !next.IsValid() {
				break
			}
			s = next
			attack = attack.PushSquare(s)
			if occupied.Has(s) {
				break
			}
		}
	}
	return attack
}

// initMagics fills in the per-square Magic entries and their attack tables
// for one slider (bishop or rook), following the Stockfish "fancy magics"
// approach: search random sparse multipliers until one maps every subset
// of the relevant occupancy to a unique, collision-free table index.
func initMagics(magics *[types.SqLength]types.Magic, directions *[4]types.Direction) {
	seeds := [types.RankLength]uint64{728, 10316, 55013, 32803, 12281, 15100, 16645, 255}

	var occupancy, reference [4096]types.Bitboard
	var epoch [4096]int
	table := make([]types.Bitboard, 0, 4096*types.SqLength)

	// cnt must outlive the square loop: epoch entries written for one
	// square would otherwise read as collisions for the next
	cnt := 0

	for sq := types.Square(0); sq < types.SqNone; sq++ {
		edges := (types.RankBb[types.Rank1] | types.RankBb[types.Rank8]) &^ types.RankBb[sq.RankOf()]
		edges |= (types.FileBb[types.FileA] | types.FileBb[types.FileH]) &^ types.FileBb[sq.FileOf()]

		m := &magics[sq]
		m.Mask = slidingAttack(directions, sq, 0) &^ edges
		m.Shift = uint(64 - m.Mask.PopCount())

		offset := len(table)
		size := 0
		var b types.Bitboard
		for {
			occupancy[size] = b
			reference[size] = slidingAttack(directions, sq, b)
			table = append(table, 0)
			size++
			b = (b - m.Mask) & m.Mask
			if b == 0 {
				break
			}
		}
		m.Attacks = table[offset : offset+size]

		rng := types.NewPrnG(seeds[sq.RankOf()])
		for i := 0; i < size; {
			for {
				m.Magic = rng.SparseNext()
				if bits1Count((uint64(m.Mask)*m.Magic)>>56) >= 6 {
					continue
				}
				break
			}
			cnt++
			for i = 0; i < size; i++ {
				idx := m.Index(occupancy[i])
				if epoch[idx] < cnt {
					epoch[idx] = cnt
					m.Attacks[idx] = reference[i]
				} else if m.Attacks[idx] != reference[i] {
					break
				}
			}
		}
	}
}

func bits1Count(v uint64) int {
	c := 0
	for v != 0 {
		c += int(v & 1)
		v >>= 1
	}
	return c
}

// SlidingAttacksBb returns the set of squares attacked by a bishop, rook or
// queen of the given piece type standing on s, given the full board
// occupancy (blocking both sides' pieces).
func SlidingAttacksBb(pt types.PieceType, s types.Square, occupied types.Bitboard) types.Bitboard {
	switch pt {
	case types.Bishop:
		return bishopMagics[s].AttacksBb(occupied)
	case types.Rook:
		return rookMagics[s].AttacksBb(occupied)
	case types.Queen:
		return bishopMagics[s].AttacksBb(occupied) | rookMagics[s].AttacksBb(occupied)
	default:
		return 0
	}
}

// Attackers is the set of piece-type bitboards (restricted to one color)
// needed to answer "is this square attacked". Position builds one of these
// from its own per-piece bitboards.
type Attackers struct {
	Pawns, Knights, Bishops, Rooks, Queens, Kings types.Bitboard
}

// IsSquareAttacked reports whether sq is attacked by any piece described in
// by, a color's piece-type bitboards, given the full board occupancy.
func IsSquareAttacked(sq types.Square, attackerColor types.Color, by Attackers, occupied types.Bitboard) bool {
	if PawnAttacks[attackerColor.Flip()][sq]&by.Pawns != 0 {
		return true
	}
	if KnightAttacks[sq]&by.Knights != 0 {
		return true
	}
	if KingAttacks[sq]&by.Kings != 0 {
		return true
	}
	bishopsQueens := by.Bishops | by.Queens
	if bishopsQueens != 0 && SlidingAttacksBb(types.Bishop, sq, occupied)&bishopsQueens != 0 {
		return true
	}
	rooksQueens := by.Rooks | by.Queens
	if rooksQueens != 0 && SlidingAttacksBb(types.Rook, sq, occupied)&rooksQueens != 0 {
		return true
	}
	return false
}
