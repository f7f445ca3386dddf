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

import "github.com/frankkopp/milky/assert"

// MoveList is a fixed-capacity buffer of moves for one position, together
// with parallel ordering scores filled in by the search's move orderer.
// Capacity is MaxMoves; no chess position needs more.
type MoveList struct {
	moves  [MaxMoves]Move
	scores [MaxMoves]int32
	size   int
}

// Len returns the number of moves currently stored.
func (ml *MoveList) Len() int {
	return ml.size
}

// Clear empties the list without reallocating.
func (ml *MoveList) Clear() {
	ml.size = 0
}

// Add appends a move with score 0.
func (ml *MoveList) Add(m Move) {
	if assert.DEBUG {
		assert.Assert(ml.size < MaxMoves, "move list overflow")
	}
	ml.moves[ml.size] = m
	ml.scores[ml.size] = 0
	ml.size++
}

// At returns the move at index i.
func (ml *MoveList) At(i int) Move {
	return ml.moves[i]
}

// SetScore assigns an ordering score to the move at index i.
func (ml *MoveList) SetScore(i int, score int32) {
	ml.scores[i] = score
}

// Score returns the ordering score of the move at index i.
func (ml *MoveList) Score(i int) int32 {
	return ml.scores[i]
}

// Swap exchanges the moves (and their scores) at i and j.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
	ml.scores[i], ml.scores[j] = ml.scores[j], ml.scores[i]
}

// SelectSort performs one pass of selection sort, moving the
// highest-scoring move among index [from, size) into index from and
// returning it. Search consumes moves one at a time this way rather than
// sorting the whole list up front, since alpha-beta cutoffs often make
// later moves unnecessary to sort.
func (ml *MoveList) SelectSort(from int) Move {
	best := from
	for i := from + 1; i < ml.size; i++ {
		if ml.scores[i] > ml.scores[best] {
			best = i
		}
	}
	ml.Swap(from, best)
	return ml.moves[from]
}
