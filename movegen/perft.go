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

package movegen

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/milky/position"
	"github.com/frankkopp/milky/types"
)

var out = message.NewPrinter(language.German)

// Perft counts and classifies every leaf node reached by exhaustively
// playing out every legal move to a fixed depth, the standard way to
// validate a move generator against known node counts for well-studied
// positions.
type Perft struct {
	Nodes            uint64
	CheckCounter     uint64
	CheckMateCounter uint64
	CaptureCounter   uint64
	EnpassantCounter uint64
	CastleCounter    uint64
	PromotionCounter uint64
	stopFlag         bool
}

// NewPerft creates a new, zeroed Perft.
func NewPerft() *Perft {
	return &Perft{}
}

// Stop interrupts a StartPerft/StartPerftMulti call running in another
// goroutine at the next node boundary.
func (p *Perft) Stop() {
	p.stopFlag = true
}

// StartPerftMulti runs StartPerft once for every depth in [startDepth,
// endDepth], stopping early if Stop is called.
func (p *Perft) StartPerftMulti(fen string, startDepth, endDepth int, onDemandFlag bool) {
	p.stopFlag = false
	for d := startDepth; d <= endDepth; d++ {
		if p.stopFlag {
			out.Print("Perft multi depth stopped\n")
			return
		}
		p.StartPerft(fen, d, onDemandFlag)
	}
}

// StartPerft runs a single-depth perft from fen, using either bulk
// GeneratePseudoLegalMoves (onDemandFlag false) or the staged
// GetNextMove generator (onDemandFlag true) at every node.
func (p *Perft) StartPerft(fen string, depth int, onDemandFlag bool) {
	p.stopFlag = false

	if depth <= 0 {
		depth = 1
	}

	p.resetCounter()
	pos, err := position.NewFromFEN(fen)
	if err != nil {
		out.Printf("invalid FEN for perft: %s\n", err)
		return
	}
	mgList := make([]*Movegen, depth+1)
	for i := 0; i <= depth; i++ {
		mgList[i] = NewMoveGen()
	}

	out.Printf("Performing PERFT Test for Depth %d\n", depth)
	out.Printf("-----------------------------------------\n")

	var result uint64
	start := time.Now()
	if onDemandFlag {
		result = p.miniMaxOD(depth, pos, mgList)
	} else {
		result = p.miniMax(depth, pos, mgList)
	}
	elapsed := time.Since(start)

	if result == 0 {
		out.Print("Perft stopped\n")
		return
	}

	p.Nodes = result

	out.Printf("Time         : %d ms\n", elapsed.Milliseconds())
	out.Printf("NPS          : %d nps\n", (p.Nodes*uint64(time.Second.Nanoseconds()))/uint64(elapsed.Nanoseconds()+1))
	out.Printf("Results:\n")
	out.Printf("   Nodes     : %d\n", p.Nodes)
	out.Printf("   Captures  : %d\n", p.CaptureCounter)
	out.Printf("   EnPassant : %d\n", p.EnpassantCounter)
	out.Printf("   Checks    : %d\n", p.CheckCounter)
	out.Printf("   CheckMates: %d\n", p.CheckMateCounter)
	out.Printf("   Castles   : %d\n", p.CastleCounter)
	out.Printf("   Promotions: %d\n", p.PromotionCounter)
	out.Printf("-----------------------------------------\n")
	out.Printf("Finished PERFT Test for Depth %d\n\n", depth)
}

func (p *Perft) miniMax(depth int, pos *position.Position, mgList []*Movegen) uint64 {
	var totalNodes uint64
	moves := mgList[depth].GeneratePseudoLegalMoves(pos, GenAll)
	for i := 0; i < moves.Len(); i++ {
		move := moves.At(i)
		if p.stopFlag {
			return 0
		}
		if depth > 1 {
			pos.DoMove(move)
			if pos.WasLegalMove() {
				totalNodes += p.miniMax(depth-1, pos, mgList)
			}
			pos.UndoMove()
			continue
		}
		pos.DoMove(move)
		if pos.WasLegalMove() {
			totalNodes++
			p.tallyLeaf(move, pos, mgList[0])
		}
		pos.UndoMove()
	}
	return totalNodes
}

func (p *Perft) miniMaxOD(depth int, pos *position.Position, mgList []*Movegen) uint64 {
	var totalNodes uint64
	mg := mgList[depth]
	for move := mg.GetNextMove(pos, GenAll); move != types.MoveNone; move = mg.GetNextMove(pos, GenAll) {
		if p.stopFlag {
			return 0
		}
		if depth > 1 {
			pos.DoMove(move)
			if pos.WasLegalMove() {
				totalNodes += p.miniMaxOD(depth-1, pos, mgList)
			}
			pos.UndoMove()
			continue
		}
		pos.DoMove(move)
		if pos.WasLegalMove() {
			totalNodes++
			p.tallyLeaf(move, pos, mgList[0])
		}
		pos.UndoMove()
	}
	return totalNodes
}

// tallyLeaf updates the classification counters for move, which has already
// been applied to pos (the position after the move).
func (p *Perft) tallyLeaf(move types.Move, pos *position.Position, mg *Movegen) {
	if move.IsEnPassant() {
		p.EnpassantCounter++
		p.CaptureCounter++
	} else if move.IsCapture() {
		p.CaptureCounter++
	}
	if move.IsCastling() {
		p.CastleCounter++
	}
	if move.IsPromotion() {
		p.PromotionCounter++
	}
	if pos.InCheck() {
		p.CheckCounter++
		if !mg.HasLegalMove(pos) {
			p.CheckMateCounter++
		}
	}
}

func (p *Perft) resetCounter() {
	p.Nodes = 0
	p.CheckCounter = 0
	p.CheckMateCounter = 0
	p.CaptureCounter = 0
	p.EnpassantCounter = 0
	p.CastleCounter = 0
	p.PromotionCounter = 0
}

// String renders the last completed perft run's counters for logging.
func (p *Perft) String() string {
	return fmt.Sprintf("nodes=%d captures=%d ep=%d checks=%d mates=%d castles=%d promotions=%d",
		p.Nodes, p.CaptureCounter, p.EnpassantCounter, p.CheckCounter, p.CheckMateCounter, p.CastleCounter, p.PromotionCounter)
}
