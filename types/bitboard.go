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

import (
	"math/bits"
	"strings"
)

// Bitboard is a set of squares, one bit per square, indexed the same way
// as Square (bit 0 is a8, bit 63 is h1).
type Bitboard uint64

const FullBoard Bitboard = 0xFFFFFFFFFFFFFFFF

// SquareBb returns the singleton bitboard for sq.
func SquareBb(sq Square) Bitboard {
	return Bitboard(1) << uint(sq)
}

// FileBb, RankBb are filled at init from the File/Rank enumerations rather
// than from hand-written hex literals, since file membership depends only
// on sq&7 and is unaffected by the rank-numbering direction.
var FileBb [FileLength]Bitboard
var RankBb [RankLength]Bitboard

// SquareDistance holds the Chebyshev distance between every pair of squares.
var SquareDistance [SqLength][SqLength]int

func init() {
	for f := FileA; f < FileLength; f++ {
		for r := Rank8; r < RankLength; r++ {
			FileBb[f] |= SquareBb(SquareOf(f, r))
			RankBb[r] |= SquareBb(SquareOf(f, r))
		}
	}
	for s1 := Square(0); s1 < SqNone; s1++ {
		for s2 := Square(0); s2 < SqNone; s2++ {
			fd := int(s1.FileOf()) - int(s2.FileOf())
			rd := int(s1.RankOf()) - int(s2.RankOf())
			SquareDistance[s1][s2] = max(abs(fd), abs(rd))
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Has reports whether sq is a member of bb.
func (bb Bitboard) Has(sq Square) bool {
	return bb&SquareBb(sq) != 0
}

// PushSquare returns bb with sq added.
func (bb Bitboard) PushSquare(sq Square) Bitboard {
	return bb | SquareBb(sq)
}

// PopSquare returns bb with sq removed.
func (bb Bitboard) PopSquare(sq Square) Bitboard {
	return bb &^ SquareBb(sq)
}

// PopCount returns the number of set squares.
func (bb Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(bb))
}

// Lsb returns the least-significant set square, or SqNone if bb is empty.
func (bb Bitboard) Lsb() Square {
	if bb == 0 {
		return SqNone
	}
	return Square(bits.TrailingZeros64(uint64(bb)))
}

// PopLsb returns the least-significant set square together with bb with
// that square removed.
func (bb Bitboard) PopLsb() (Square, Bitboard) {
	sq := bb.Lsb()
	return sq, bb&(bb-1)
}

// Shift shifts an entire bitboard one step in the given direction,
// clearing squares that would wrap around a file edge.
func (bb Bitboard) Shift(d Direction) Bitboard {
	switch d {
	case North:
		return bb >> 8
	case South:
		return bb << 8
	case East:
		return (bb &^ FileBb[FileH]) << 1
	case West:
		return (bb &^ FileBb[FileA]) >> 1
	case Northeast:
		return (bb &^ FileBb[FileH]) >> 7
	case Southeast:
		return (bb &^ FileBb[FileH]) << 9
	case Southwest:
		return (bb &^ FileBb[FileA]) << 7
	case Northwest:
		return (bb &^ FileBb[FileA]) >> 9
	default:
		return 0
	}
}

// String renders the bitboard as an 8x8 grid, rank 8 first, for logging.
func (bb Bitboard) String() string {
	var sb strings.Builder
	for r := Rank8; r < RankLength; r++ {
		for f := FileA; f < FileLength; f++ {
			if bb.Has(SquareOf(f, r)) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
