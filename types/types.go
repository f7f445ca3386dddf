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

// Package types contains the basic, allocation-free value types shared by
// every other package: bitboards, squares, sides, pieces, castling rights
// and the packed move. None of these types depend on precomputed attack
// tables; those live in package attacks, which depends on types instead
// of the other way around.
package types

// SqLength is the number of squares on a board.
const SqLength int = 64

// MaxPly is the maximum search depth the engine ever recurses to; also
// the size of the PV table, killer table, and repetition-history array.
const MaxPly = 128

// MaxMoves is the capacity of a single move generation buffer. 256 is
// more than any reachable chess position can produce.
const MaxMoves = 256

const (
	// KB is 1024 bytes.
	KB uint64 = 1024
	// MB is 1024 KB.
	MB uint64 = KB * 1024
	// GB is 1024 MB.
	GB uint64 = MB * 1024
)

// GamePhaseMax is the non-pawn material sum (in game-phase units) of the
// starting position; used to normalize the tapered-eval game phase.
const GamePhaseMax = 24
