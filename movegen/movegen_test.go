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
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/milky/moveslice"
	"github.com/frankkopp/milky/position"
	"github.com/frankkopp/milky/types"
)

// kiwipete and the 86-move position below are the two standard perft/movegen
// torture positions from the chess programming community: kiwipete exercises
// castling, promotions and en passant in one position, and the 86-move
// position piles up ambiguous knight/bishop moves and four different pawn
// promotion files at once.
const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -"
const ambiguousPos = "r3k2r/1ppn3p/2q1q1n1/4P3/2q1Pp2/B5R1/pbp2PPP/1R4K1 b kq e3"

func TestMovegenString(t *testing.T) {
	mg := NewMoveGen()
	out.Println(mg.String())
}

func TestMovegenGeneratePawnMoves(t *testing.T) {
	mg := NewMoveGen()
	pos, err := position.NewFromFEN("1kr3nr/pp1pP1P1/2p1p3/3P1p2/1n1bP3/2P5/PP3PPP/RNBQKBNR w KQ -")
	assert.NoError(t, err)
	moves := moveslice.NewMoveSlice(64)

	mg.generatePawnMoves(pos, GenCap, moves)
	assert.Equal(t, 9, moves.Len())

	moves.Clear()
	mg.generatePawnMoves(pos, GenNonCap, moves)
	assert.Equal(t, 16, moves.Len())

	moves.Clear()
	mg.generatePawnMoves(pos, GenAll, moves)
	assert.Equal(t, 25, moves.Len())
}

func TestMovegenGenerateCastling(t *testing.T) {
	mg := NewMoveGen()
	moves := moveslice.NewMoveSlice(8)

	pos, err := position.NewFromFEN("r3k2r/pbppqppp/1pn2n2/1B2p3/1b2P3/N1PP1N2/PP1BQPPP/R3K2R w KQkq -")
	assert.NoError(t, err)
	mg.generateCastling(pos, GenAll, moves)
	assert.Equal(t, 2, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		assert.True(t, moves.At(i).IsCastling())
	}
	moves.Clear()

	pos, err = position.NewFromFEN("r3k2r/pbppqppp/1pn2n2/1B2p3/1b2P3/N1PP1N2/PP1BQPPP/R3K2R b KQkq -")
	assert.NoError(t, err)
	mg.generateCastling(pos, GenAll, moves)
	assert.Equal(t, 2, moves.Len())
}

func TestMovegenGenerateKingMoves(t *testing.T) {
	mg := NewMoveGen()
	moves := moveslice.NewMoveSlice(8)

	pos, err := position.NewFromFEN("r3k2r/pbpNqppp/1pn2n2/1B2p3/1b2P3/2PP1N2/PP1nQPPP/R3K2R w KQkq -")
	assert.NoError(t, err)
	mg.generateKingMoves(pos, GenAll, moves)
	assert.Equal(t, 3, moves.Len())
	moves.Clear()

	pos, err = position.NewFromFEN(kiwipete)
	assert.NoError(t, err)
	mg.generateKingMoves(pos, GenAll, moves)
	assert.Equal(t, 2, moves.Len())
}

func TestMovegenGenerateMoves(t *testing.T) {
	mg := NewMoveGen()
	moves := moveslice.NewMoveSlice(128)

	pos, err := position.NewFromFEN(position.StartFEN)
	assert.NoError(t, err)
	mg.generateMoves(pos, GenAll, moves)
	assert.Equal(t, 4, moves.Len())
	moves.Clear()

	pos, err = position.NewFromFEN(kiwipete)
	assert.NoError(t, err)
	mg.generateMoves(pos, GenAll, moves)
	assert.Equal(t, 36, moves.Len())
	moves.Clear()

	pos, err = position.NewFromFEN(ambiguousPos)
	assert.NoError(t, err)
	mg.generateMoves(pos, GenAll, moves)
	assert.Equal(t, 57, moves.Len())
}

// TestOnDemand exercises GetNextMove's incremental move supply against
// several well-known positions, checking that the on-demand generator
// produces the expected number of moves and exactly as many - no more, no
// fewer - as the bulk GeneratePseudoLegalMoves call.
func TestOnDemand(t *testing.T) {
	positions := []struct {
		fen   string
		count int
	}{
		{position.StartFEN, 20},
		{kiwipete, 48},
		// the 86-move position yields 85 here: king-side castling is not
		// generated because the king would pass through the attacked f8
		{ambiguousPos, 85},
		{"R6R/3Q4/1Q4Q1/4Q3/2Q4Q/Q4Q2/pp1Q4/kBNN1KB1 w - -", 218},
	}

	for _, tc := range positions {
		mg := NewMoveGen()
		pos, err := position.NewFromFEN(tc.fen)
		assert.NoError(t, err, tc.fen)

		seen := moveslice.NewMoveSlice(256)
		for move := mg.GetNextMove(pos, GenAll); move != types.MoveNone; move = mg.GetNextMove(pos, GenAll) {
			seen.PushBack(move)
		}
		assert.Equal(t, tc.count, seen.Len(), tc.fen)

		bulk := mg.GeneratePseudoLegalMoves(pos, GenAll)
		assert.Equal(t, bulk.Len(), seen.Len(), tc.fen)
	}
}

func TestMovegenGeneratePseudoLegalMoves(t *testing.T) {
	mg := NewMoveGen()

	pos, err := position.NewFromFEN(ambiguousPos)
	assert.NoError(t, err)
	moves := mg.GeneratePseudoLegalMoves(pos, GenAll)
	assert.Equal(t, 85, moves.Len())

	pos, err = position.NewFromFEN(kiwipete)
	assert.NoError(t, err)
	moves = mg.GeneratePseudoLegalMoves(pos, GenAll)
	assert.Equal(t, 48, moves.Len())
}

func TestMovegenGenerateLegalMoves(t *testing.T) {
	mg := NewMoveGen()

	pos, err := position.NewFromFEN(position.StartFEN)
	assert.NoError(t, err)
	moves := mg.GenerateLegalMoves(pos, GenAll)
	assert.Equal(t, 20, moves.Len())

	// pinned bishop cannot move off the pin line
	pos, err = position.NewFromFEN("4k3/8/8/8/8/8/8/4KB1r w - -")
	assert.NoError(t, err)
	moves = mg.GenerateLegalMoves(pos, GenAll)
	for i := 0; i < moves.Len(); i++ {
		assert.NotEqual(t, types.SqF1, moves.At(i).From())
	}
}

func TestHasLegalMoves(t *testing.T) {
	mg := NewMoveGen()

	// checkmate position
	pos, err := position.NewFromFEN("rn2kbnr/pbpp1ppp/8/1p2p1q1/4K3/3P4/PPP1PPPP/RNBQ1BNR w kq -")
	assert.NoError(t, err)
	assert.False(t, mg.HasLegalMove(pos))
	assert.True(t, pos.InCheck())

	// stalemate position
	pos, err = position.NewFromFEN("7k/5K2/6Q1/8/8/8/8/8 b - -")
	assert.NoError(t, err)
	assert.False(t, mg.HasLegalMove(pos))
	assert.False(t, pos.InCheck())

	// only en passant gets the king out of its bind
	pos, err = position.NewFromFEN("8/8/8/8/5Pp1/6P1/7k/K3BQ2 b - f3")
	assert.NoError(t, err)
	assert.True(t, mg.HasLegalMove(pos))
	assert.False(t, pos.InCheck())
}

func TestMovegenGetMoveFromUci(t *testing.T) {
	mg := NewMoveGen()
	pos, err := position.NewFromFEN(ambiguousPos)
	assert.NoError(t, err)

	// invalid pattern
	assert.Equal(t, types.MoveNone, mg.GetMoveFromUci(pos, "8888"))

	// valid move
	move := mg.GetMoveFromUci(pos, "b7b5")
	assert.True(t, move.IsValid())
	assert.Equal(t, types.SqB7, move.From())
	assert.Equal(t, types.SqB5, move.To())

	// invalid move (no piece makes this move in this position)
	assert.Equal(t, types.MoveNone, mg.GetMoveFromUci(pos, "a7a5"))

	// valid promotion, upper and lower case letter both accepted
	move = mg.GetMoveFromUci(pos, "a2a1Q")
	assert.True(t, move.IsPromotion())
	assert.Equal(t, types.Queen, move.Promotion())
	assert.Equal(t, move, mg.GetMoveFromUci(pos, "a2a1q"))

	// valid castling
	move = mg.GetMoveFromUci(pos, "e8c8")
	assert.True(t, move.IsCastling())

	// invalid castling (the king would pass through the attacked f8)
	assert.Equal(t, types.MoveNone, mg.GetMoveFromUci(pos, "e8g8"))
}

func TestMovegenGetMoveFromSan(t *testing.T) {
	mg := NewMoveGen()
	pos, err := position.NewFromFEN(ambiguousPos)
	assert.NoError(t, err)

	// invalid pattern
	assert.Equal(t, types.MoveNone, mg.GetMoveFromSan(pos, "33"))

	// valid move
	move := mg.GetMoveFromSan(pos, "b5")
	assert.Equal(t, types.SqB7, move.From())
	assert.Equal(t, types.SqB5, move.To())

	// invalid move
	assert.Equal(t, types.MoveNone, mg.GetMoveFromSan(pos, "a5"))

	// valid promotion
	move = mg.GetMoveFromSan(pos, "a1Q")
	assert.Equal(t, types.SqA2, move.From())
	assert.Equal(t, types.Queen, move.Promotion())

	// lower case promotion letter is not accepted in SAN (ambiguous with a file)
	assert.Equal(t, types.MoveNone, mg.GetMoveFromSan(pos, "a1q"))

	// valid castling
	move = mg.GetMoveFromSan(pos, "O-O-O")
	assert.True(t, move.IsCastling())
	assert.Equal(t, types.MoveNone, mg.GetMoveFromSan(pos, "O-O"))

	// two knights can both capture on e5: disambiguation by file or rank
	// is required on top of the capture marker
	assert.Equal(t, types.MoveNone, mg.GetMoveFromSan(pos, "Nxe5"))
	move = mg.GetMoveFromSan(pos, "Ndxe5")
	assert.Equal(t, types.SqD7, move.From())
	move = mg.GetMoveFromSan(pos, "Ngxe5")
	assert.Equal(t, types.SqG6, move.From())
	move = mg.GetMoveFromSan(pos, "N7xe5")
	assert.Equal(t, types.SqD7, move.From())
	move = mg.GetMoveFromSan(pos, "N6xe5")
	assert.Equal(t, types.SqG6, move.From())

	// two pawns can promote capturing onto b1, told apart by origin file
	move = mg.GetMoveFromSan(pos, "axb1Q")
	assert.Equal(t, types.SqA2, move.From())
	move = mg.GetMoveFromSan(pos, "cxb1Q")
	assert.Equal(t, types.SqC2, move.From())
}

// TestOnDemandKillerPv checks that recording killers and a PV hint reorders
// the on-demand move stream without changing how many moves it produces:
// the PV move must come out first and a killer must still appear after it
// (captures are ordered ahead of killers, so killers need not be second).
func TestOnDemandKillerPv(t *testing.T) {
	mg := NewMoveGen()
	pos, err := position.NewFromFEN(ambiguousPos)
	assert.NoError(t, err)

	pv := mg.GetMoveFromUci(pos, "a2b1Q")
	k1 := mg.GetMoveFromUci(pos, "g6h4")
	k2 := mg.GetMoveFromUci(pos, "b7b6")
	mg.StoreKiller(k1)
	mg.StoreKiller(k2)
	mg.SetPvMove(pv)

	moves := moveslice.NewMoveSlice(128)
	for move := mg.GetNextMove(pos, GenAll); move != types.MoveNone; move = mg.GetNextMove(pos, GenAll) {
		moves.PushBack(move)
	}
	assert.Equal(t, 85, moves.Len())
	assert.Equal(t, pv, moves.At(0))

	seenKiller := false
	for i := 1; i < moves.Len(); i++ {
		if moves.At(i) == k1 || moves.At(i) == k2 {
			seenKiller = true
		}
	}
	assert.True(t, seenKiller)
}

func TestTimingOnDemandMoveGen(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}

	const iterations = 100_000

	mg := NewMoveGen()
	pos, err := position.NewFromFEN(ambiguousPos)
	assert.NoError(t, err)

	start := time.Now()
	generated := uint64(0)
	for i := 0; i < iterations; i++ {
		mg.ResetOnDemand()
		for move := mg.GetNextMove(pos, GenAll); move != types.MoveNone; move = mg.GetNextMove(pos, GenAll) {
			generated++
		}
	}
	elapsed := time.Since(start)
	out.Printf("%d moves generated in %s: %d mps\n", generated, elapsed, generated*uint64(time.Second)/uint64(elapsed.Nanoseconds()+1))
}
