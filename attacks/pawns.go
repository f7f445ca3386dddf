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

package attacks

import "github.com/frankkopp/milky/types"

// NeighborFilesBb[f] is the set of files adjacent to f, used to test for
// isolated pawns.
var NeighborFilesBb [types.FileLength]types.Bitboard

// PassedPawnMask[c][s] is the set of squares that must be free of enemy
// pawns for a pawn of color c on s to be passed: the pawn's own file and
// its neighbor files, from s forward to the promotion rank.
var PassedPawnMask [types.ColorLength][types.SqLength]types.Bitboard

// AheadMask[c][r] is the set of ranks strictly ahead of r from color c's
// point of view.
var AheadMask [types.ColorLength][types.RankLength]types.Bitboard

func init() {
	for f := types.FileA; f < types.FileLength; f++ {
		if f > types.FileA {
			NeighborFilesBb[f] |= types.FileBb[f-1]
		}
		if f < types.FileH {
			NeighborFilesBb[f] |= types.FileBb[f+1]
		}
	}

	// ranks are indexed from the top of the board, so "ahead" for White
	// means a smaller rank index
	for r := types.Rank8; r < types.RankLength; r++ {
		for rr := types.Rank8; rr < r; rr++ {
			AheadMask[types.White][r] |= types.RankBb[rr]
		}
		for rr := r + 1; rr < types.RankLength; rr++ {
			AheadMask[types.Black][r] |= types.RankBb[rr]
		}
	}

	for s := types.Square(0); s < types.SqNone; s++ {
		file := s.FileOf()
		rank := s.RankOf()
		fileMask := types.FileBb[file] | NeighborFilesBb[file]
		PassedPawnMask[types.White][s] = fileMask & AheadMask[types.White][rank]
		PassedPawnMask[types.Black][s] = fileMask & AheadMask[types.Black][rank]
	}
}

// IsIsolated reports whether a pawn on file f has no friendly pawns on
// either neighboring file, given that color's full pawn bitboard.
func IsIsolated(f types.File, ownPawns types.Bitboard) bool {
	return NeighborFilesBb[f]&ownPawns == 0
}

// IsDoubled reports whether more than one pawn of ownPawns sits on file f.
func IsDoubled(f types.File, ownPawns types.Bitboard) bool {
	return (types.FileBb[f] & ownPawns).PopCount() > 1
}

// IsPassed reports whether a pawn of color c on s faces no enemy pawns in
// its passed-pawn corridor.
func IsPassed(c types.Color, s types.Square, enemyPawns types.Bitboard) bool {
	return PassedPawnMask[c][s]&enemyPawns == 0
}
