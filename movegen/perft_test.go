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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/milky/position"
	"github.com/frankkopp/milky/types"
	"github.com/frankkopp/milky/zobrist"
)

// perftResults holds the well-known node/capture/en-passant/check/mate
// counts for the standard starting position at depths 0-5, used to
// cross-check the move generator end to end (make/undo, legality filtering
// and move classification all have to agree for these numbers to come out
// right).
var perftResults = [6][5]uint64{
	// Nodes, Captures, EP, Checks, Mates
	{1, 0, 0, 0, 0},
	{20, 0, 0, 0, 0},
	{400, 0, 0, 0, 0},
	{8_902, 34, 0, 12, 0},
	{197_281, 1_576, 0, 469, 8},
	{4_865_609, 82_719, 258, 27_351, 347},
}

func TestPerftStartPosBulk(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping perft in short mode")
	}
	for depth := 1; depth <= 4; depth++ {
		var p Perft
		p.StartPerft(position.StartFEN, depth, false)
		want := perftResults[depth]
		assert.EqualValues(t, want[0], p.Nodes, "depth %d nodes", depth)
		assert.EqualValues(t, want[1], p.CaptureCounter, "depth %d captures", depth)
		assert.EqualValues(t, want[2], p.EnpassantCounter, "depth %d ep", depth)
		assert.EqualValues(t, want[3], p.CheckCounter, "depth %d checks", depth)
		assert.EqualValues(t, want[4], p.CheckMateCounter, "depth %d mates", depth)
	}
}

// rehashPosition recomputes a position's Zobrist key from scratch through
// the public accessors, independent of the incremental maintenance inside
// DoMove/UndoMove.
func rehashPosition(p *position.Position) uint64 {
	var zp zobrist.Position
	for pc := types.Piece(0); pc < types.PieceLength; pc++ {
		zp.Pieces[pc] = p.PieceBb(pc)
	}
	zp.SideToMove = p.SideToMove()
	zp.EnPassant = p.EnPassantSquare()
	zp.Castling = p.CastlingRights()
	return zobrist.HashPosition(zp)
}

// walkCheckingZobrist recursively plays every pseudo-legal move to the
// given depth and fails the walk as soon as the incrementally maintained
// key disagrees with a from-scratch rehash at any visited node.
func walkCheckingZobrist(t *testing.T, mg *Movegen, p *position.Position, depth int) {
	t.Helper()
	if rehashPosition(p) != p.ZobristKey() {
		t.Fatalf("incremental zobrist key diverged from rehash at %s", p.StringFen())
	}
	if depth == 0 {
		return
	}
	moves := mg.GeneratePseudoLegalMoves(p, GenAll)
	for i := 0; i < moves.Len(); i++ {
		p.DoMove(moves.At(i))
		if p.WasLegalMove() {
			walkCheckingZobrist(t, mg, p, depth-1)
		}
		p.UndoMove()
	}
}

// TestZobristConsistencyPerftWalk asserts that the incrementally updated
// Zobrist key equals a full rehash at every node of a shallow game-tree
// walk. The two positions together reach double pushes, en passant, all
// four castles and a rich capture mix; promotion paths are covered by the
// position package's own rehash test.
func TestZobristConsistencyPerftWalk(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping tree walk in short mode")
	}
	fens := []string{
		position.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	}
	for _, fen := range fens {
		p, err := position.NewFromFEN(fen)
		assert.NoError(t, err, fen)
		walkCheckingZobrist(t, NewMoveGen(), p, 3)
	}
}

func TestPerftStartPosOnDemandMatchesBulk(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping perft in short mode")
	}
	const depth = 4
	var bulk, onDemand Perft
	bulk.StartPerft(position.StartFEN, depth, false)
	onDemand.StartPerft(position.StartFEN, depth, true)
	assert.EqualValues(t, bulk.Nodes, onDemand.Nodes)
	assert.EqualValues(t, bulk.CaptureCounter, onDemand.CaptureCounter)
	assert.EqualValues(t, bulk.CheckCounter, onDemand.CheckCounter)
}

func TestPerftKiwipete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping perft in short mode")
	}
	const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	var p Perft
	p.StartPerft(kiwipete, 3, false)
	assert.EqualValues(t, 97_862, p.Nodes)
}

// TestPerftPosition3 exercises pawn endgame perft: en passant and a lone
// defended king, none of which the starting position or Kiwipete
// stress on their own.
func TestPerftPosition3(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping perft in short mode")
	}
	const fen = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	var p Perft
	p.StartPerft(fen, 4, false)
	assert.EqualValues(t, 43_238, p.Nodes)
}

// TestPerftPosition4 stresses under-promotion and castling-through-capture
// interactions.
func TestPerftPosition4(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping perft in short mode")
	}
	const fen = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	var p Perft
	p.StartPerft(fen, 3, false)
	assert.EqualValues(t, 9_467, p.Nodes)
}

// TestPerftPosition5 covers a position reached after a pawn capture on f2
// that leaves a knight pinning/forking near the king, a case that has
// tripped up generators that mishandle discovered check on promotion.
func TestPerftPosition5(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping perft in short mode")
	}
	const fen = "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"
	var p Perft
	p.StartPerft(fen, 4, false)
	assert.EqualValues(t, 2_103_487, p.Nodes)
}
