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

package search

import (
	"github.com/frankkopp/milky/moveslice"
	"github.com/frankkopp/milky/types"
)

// //////////////////////////////////////////////////////
// Statistics
// //////////////////////////////////////////////////////

// Statistics holds counters and current-node data collected during a search,
// extra information not essential to producing a move but useful for UCI
// "info" output and for judging move ordering/pruning quality.
type Statistics struct {
	// current node context, updated as the move loop descends/ascends
	CurrentVariation        moveslice.MoveSlice
	CurrentRootMove        types.Move
	CurrentRootMoveIndex   int
	CurrentSearchDepth     int
	CurrentExtraSearchDepth int
	BestMoveChanges        int

	// node counters
	LeafPositionsEvaluated uint64
	Evaluations            uint64
	EvaluationsFromTT      uint64

	// transposition table
	TTHit      uint64
	TTMiss     uint64
	TTCuts     uint64
	TTNoCuts   uint64
	TTMoveUsed uint64
	NoTTMove   uint64

	// pruning/ordering quality
	BetaCuts      uint64
	BetaCuts1st   uint64
	StandpatCuts  uint64
	NullMoveCuts  uint64
	MdpCuts       uint64
	PvsResearches uint64
	RootPvsResearches uint64
	LmrReductions uint64
	LmrResearches uint64

	// terminal nodes
	Checkmates uint64
	Stalemates uint64
}

// NewStatistics returns a zeroed Statistics with its move-slice fields
// allocated.
func NewStatistics() *Statistics {
	return &Statistics{CurrentVariation: *moveslice.NewMoveSlice(types.MaxPly)}
}

// Reset clears all counters for the start of a new search, keeping the
// already-allocated move slice capacity.
func (st *Statistics) Reset() {
	cv := st.CurrentVariation
	cv.Clear()
	*st = Statistics{CurrentVariation: cv}
}
