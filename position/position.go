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

// Package position holds the board representation, move application and
// Zobrist hashing for one chess game. Unlike a delta/history based undo,
// Position keeps a stack of whole-state snapshots: DoMove pushes one,
// UndoMove pops it. This costs more per move than storing only the
// irreversible fields, but keeps make/undo trivially correct and keeps the
// per-move bookkeeping in one place.
package position

import (
	"fmt"
	"strings"

	"github.com/frankkopp/milky/assert"
	"github.com/frankkopp/milky/attacks"
	"github.com/frankkopp/milky/types"
	"github.com/frankkopp/milky/zobrist"
)

const (
	occWhite = 0
	occBlack = 1
	occBoth  = 2
)

// maxRepetitionHistory bounds how many plies of Zobrist keys are kept for
// repetition detection; a real game never approaches it.
const maxRepetitionHistory = 1024

// snapshot is the whole board state pushed by DoMove and popped by
// UndoMove: everything one ply of undo information has to restore.
type snapshot struct {
	pieces           [types.PieceLength]types.Bitboard
	occupied         [3]types.Bitboard
	sideToMove       types.Color
	enPassant        types.Square
	castlingRights   types.CastlingRights
	zobristKey       uint64
	fiftyMoveCounter int
}

// Position is the mutable board state the search recurses through via
// DoMove/UndoMove.
type Position struct {
	board          [types.SqLength]types.Piece
	pieces         [types.PieceLength]types.Bitboard
	occupied       [3]types.Bitboard
	sideToMove     types.Color
	enPassant      types.Square
	castlingRights types.CastlingRights

	fiftyMoveCounter int
	fullMoveNumber   int
	ply              int

	zobristKey uint64

	snapshots []snapshot

	repetitionKeys [maxRepetitionHistory]uint64
	repetitionIdx  int
}

// castlingUpdateMask[sq] is ANDed into castlingRights whenever a move's
// source or target square is sq, clearing the rights that square's rook or
// king movement (or capture) invalidates.
var castlingUpdateMask [types.SqLength]types.CastlingRights

func init() {
	for s := types.Square(0); s < types.SqNone; s++ {
		castlingUpdateMask[s] = types.CastlingAll
	}
	castlingUpdateMask[types.SqE1] &^= types.CastlingWK | types.CastlingWQ
	castlingUpdateMask[types.SqH1] &^= types.CastlingWK
	castlingUpdateMask[types.SqA1] &^= types.CastlingWQ
	castlingUpdateMask[types.SqE8] &^= types.CastlingBK | types.CastlingBQ
	castlingUpdateMask[types.SqH8] &^= types.CastlingBK
	castlingUpdateMask[types.SqA8] &^= types.CastlingBQ
}

// New returns the standard starting position.
func New() *Position {
	p, err := NewFromFEN(StartFEN)
	if err != nil {
		panic(fmt.Sprintf("built-in start FEN failed to parse: %s", err))
	}
	return p
}

// SideToMove returns the color to move.
func (p *Position) SideToMove() types.Color { return p.sideToMove }

// CastlingRights returns the castling rights still available.
func (p *Position) CastlingRights() types.CastlingRights { return p.castlingRights }

// EnPassantSquare returns the current en passant target square, or SqNone.
func (p *Position) EnPassantSquare() types.Square { return p.enPassant }

// FiftyMoveCounter returns the half-move clock since the last capture or
// pawn move.
func (p *Position) FiftyMoveCounter() int { return p.fiftyMoveCounter }

// Ply returns the number of half-moves played since the position was set up.
func (p *Position) Ply() int { return p.ply }

// ZobristKey returns the incrementally maintained hash of the position.
func (p *Position) ZobristKey() uint64 { return p.zobristKey }

// PieceOn returns the piece on sq, or PieceNone if empty.
func (p *Position) PieceOn(sq types.Square) types.Piece { return p.board[sq] }

// PieceBb returns the bitboard of all pieces of kind pc.
func (p *Position) PieceBb(pc types.Piece) types.Bitboard { return p.pieces[pc] }

// Occupied returns the combined occupancy of both sides.
func (p *Position) Occupied() types.Bitboard { return p.occupied[occBoth] }

// OccupiedBy returns the occupancy of one side.
func (p *Position) OccupiedBy(c types.Color) types.Bitboard {
	if c == types.White {
		return p.occupied[occWhite]
	}
	return p.occupied[occBlack]
}

// KingSquare returns the square of c's king.
func (p *Position) KingSquare(c types.Color) types.Square {
	return p.pieces[types.MakePiece(c, types.King)].Lsb()
}

// attackersOf builds the Attackers view needed by attacks.IsSquareAttacked
// for the given color.
func (p *Position) attackersOf(c types.Color) attacks.Attackers {
	return attacks.Attackers{
		Pawns:   p.pieces[types.MakePiece(c, types.Pawn)],
		Knights: p.pieces[types.MakePiece(c, types.Knight)],
		Bishops: p.pieces[types.MakePiece(c, types.Bishop)],
		Rooks:   p.pieces[types.MakePiece(c, types.Rook)],
		Queens:  p.pieces[types.MakePiece(c, types.Queen)],
		Kings:   p.pieces[types.MakePiece(c, types.King)],
	}
}

// IsSquareAttacked reports whether sq is attacked by a piece of color by.
func (p *Position) IsSquareAttacked(sq types.Square, by types.Color) bool {
	return attacks.IsSquareAttacked(sq, by, p.attackersOf(by), p.Occupied())
}

// InCheck reports whether the side to move's king is currently attacked.
func (p *Position) InCheck() bool {
	return p.IsSquareAttacked(p.KingSquare(p.sideToMove), p.sideToMove.Flip())
}

// IsRepetition reports whether the current Zobrist key has occurred earlier
// in the game, scanning the recorded key history with a linear walk, since
// repetition windows are short and this runs at most once per node. The
// most recently recorded slot is always this position's own key, so the
// scan stops one short of repetitionIdx to avoid matching the position
// against itself.
func (p *Position) IsRepetition() bool {
	for i := 0; i < p.repetitionIdx-1; i++ {
		if p.repetitionKeys[i] == p.zobristKey {
			return true
		}
	}
	return false
}

// IsFiftyMoveDraw reports whether the 50-move rule has been reached.
func (p *Position) IsFiftyMoveDraw() bool {
	return p.fiftyMoveCounter >= 100
}

// WasLegalMove reports whether the move just applied by DoMove left the
// mover's own king safe. The move generator only produces pseudo-legal
// moves, so the search calls this right after DoMove and undoes/skips the
// move if it returns false.
func (p *Position) WasLegalMove() bool {
	mover := p.sideToMove.Flip()
	return !p.IsSquareAttacked(p.KingSquare(mover), p.sideToMove)
}

// gamePhaseWeight values a piece's contribution to the game phase:
// minors 1, rooks 2, queens 4, so a full side sums to GamePhaseMax/2.
var gamePhaseWeight = [types.PieceTypeLength]int{0, 1, 1, 2, 4, 0}

// NonPawnMaterial returns the phase-weighted sum of c's knights, bishops,
// rooks and queens still on the board (types.GamePhaseMax for both sides
// of the starting position). Zero means a pawn-and-king-only ending, where
// the search avoids null-move pruning because of zugzwang.
func (p *Position) NonPawnMaterial(c types.Color) int {
	n := 0
	for _, pt := range [...]types.PieceType{types.Knight, types.Bishop, types.Rook, types.Queen} {
		n += gamePhaseWeight[pt] * p.pieces[types.MakePiece(c, pt)].PopCount()
	}
	return n
}

func (p *Position) putPiece(pc types.Piece, sq types.Square) {
	if assert.DEBUG {
		assert.Assert(p.board[sq] == types.PieceNone, "putPiece: square %s already occupied", sq.String())
	}
	c := pc.ColorOf()
	p.board[sq] = pc
	p.pieces[pc] = p.pieces[pc].PushSquare(sq)
	if c == types.White {
		p.occupied[occWhite] = p.occupied[occWhite].PushSquare(sq)
	} else {
		p.occupied[occBlack] = p.occupied[occBlack].PushSquare(sq)
	}
	p.occupied[occBoth] = p.occupied[occBoth].PushSquare(sq)
	p.zobristKey ^= zobrist.PieceSquare[pc][sq]
}

func (p *Position) removePiece(sq types.Square) types.Piece {
	pc := p.board[sq]
	if assert.DEBUG {
		assert.Assert(pc != types.PieceNone, "removePiece: square %s is empty", sq.String())
	}
	c := pc.ColorOf()
	p.board[sq] = types.PieceNone
	p.pieces[pc] = p.pieces[pc].PopSquare(sq)
	if c == types.White {
		p.occupied[occWhite] = p.occupied[occWhite].PopSquare(sq)
	} else {
		p.occupied[occBlack] = p.occupied[occBlack].PopSquare(sq)
	}
	p.occupied[occBoth] = p.occupied[occBoth].PopSquare(sq)
	p.zobristKey ^= zobrist.PieceSquare[pc][sq]
	return pc
}

func (p *Position) movePieceSq(from, to types.Square) {
	p.putPiece(p.removePiece(from), to)
}

func (p *Position) setCastlingRights(cr types.CastlingRights) {
	p.zobristKey ^= zobrist.Castling[p.castlingRights]
	p.castlingRights = cr
	p.zobristKey ^= zobrist.Castling[p.castlingRights]
}

func (p *Position) setEnPassant(sq types.Square) {
	if p.enPassant.IsValid() {
		p.zobristKey ^= zobrist.EnPassant[p.enPassant]
	}
	p.enPassant = sq
	if sq.IsValid() {
		p.zobristKey ^= zobrist.EnPassant[sq]
	}
}

// DoMove applies a pseudo-legal move to the position. The caller is
// responsible for only ever applying moves produced by the move generator
// for this exact position; DoMove does not re-derive legality beyond the
// panics enforced by assert.DEBUG.
func (p *Position) DoMove(m types.Move) {
	snap := snapshot{
		pieces:           p.pieces,
		occupied:         p.occupied,
		sideToMove:       p.sideToMove,
		enPassant:        p.enPassant,
		castlingRights:   p.castlingRights,
		zobristKey:       p.zobristKey,
		fiftyMoveCounter: p.fiftyMoveCounter,
	}
	p.snapshots = append(p.snapshots, snap)

	from, to := m.From(), m.To()
	piece := m.Piece()
	us := piece.ColorOf()

	p.setEnPassant(types.SqNone)

	if m.IsCapture() && !m.IsEnPassant() {
		p.removePiece(to)
	}

	switch {
	case m.IsCastling():
		p.movePieceSq(from, to)
		switch to {
		case types.SqG1:
			p.movePieceSq(types.SqH1, types.SqF1)
		case types.SqC1:
			p.movePieceSq(types.SqA1, types.SqD1)
		case types.SqG8:
			p.movePieceSq(types.SqH8, types.SqF8)
		case types.SqC8:
			p.movePieceSq(types.SqA8, types.SqD8)
		default:
			panic(fmt.Sprintf("invalid castling target square %s", to.String()))
		}
	case m.IsEnPassant():
		p.movePieceSq(from, to)
		capSq := types.SquareOf(to.FileOf(), from.RankOf())
		p.removePiece(capSq)
	case m.IsPromotion():
		p.removePiece(from)
		p.putPiece(types.MakePiece(us, m.Promotion()), to)
	default:
		p.movePieceSq(from, to)
	}

	if m.IsDoublePawnPush() {
		epSq := types.SquareOf(from.FileOf(), (from.RankOf()+to.RankOf())/2)
		p.setEnPassant(epSq)
	}

	if cr := p.castlingRights & castlingUpdateMask[from] & castlingUpdateMask[to]; cr != p.castlingRights {
		p.setCastlingRights(cr)
	}

	if piece.TypeOf() == types.Pawn || m.IsCapture() {
		p.fiftyMoveCounter = 0
	} else {
		p.fiftyMoveCounter++
	}

	p.sideToMove = p.sideToMove.Flip()
	p.zobristKey ^= zobrist.SideToMove
	p.ply++
	if p.sideToMove == types.White {
		p.fullMoveNumber++
	}

	if assert.DEBUG {
		assert.Assert(p.repetitionIdx < maxRepetitionHistory, "repetition history overflow")
	}
	p.repetitionKeys[p.repetitionIdx] = p.zobristKey
	p.repetitionIdx++
}

// UndoMove restores the position to the state before the last DoMove. It
// panics unconditionally (regardless of build tag) if called with no move
// to undo, since that is always a caller bug, not a recoverable state.
func (p *Position) UndoMove() {
	if len(p.snapshots) == 0 {
		panic("position: UndoMove called with an empty snapshot stack")
	}
	last := len(p.snapshots) - 1
	snap := p.snapshots[last]
	p.snapshots = p.snapshots[:last]

	p.pieces = snap.pieces
	p.occupied = snap.occupied
	p.sideToMove = snap.sideToMove
	p.enPassant = snap.enPassant
	p.castlingRights = snap.castlingRights
	p.zobristKey = snap.zobristKey
	p.fiftyMoveCounter = snap.fiftyMoveCounter
	p.ply--
	if p.sideToMove == types.Black {
		p.fullMoveNumber--
	}
	p.repetitionIdx--

	p.rebuildBoard()
}

// DoNullMove passes the turn without moving a piece: used only by the
// search's null-move pruning heuristic (never by the move generator, which
// never produces a null move). It clears the en passant square and flips
// the side to move, pushing a snapshot exactly like DoMove so UndoNullMove
// can restore it.
func (p *Position) DoNullMove() {
	snap := snapshot{
		pieces:           p.pieces,
		occupied:         p.occupied,
		sideToMove:       p.sideToMove,
		enPassant:        p.enPassant,
		castlingRights:   p.castlingRights,
		zobristKey:       p.zobristKey,
		fiftyMoveCounter: p.fiftyMoveCounter,
	}
	p.snapshots = append(p.snapshots, snap)

	p.setEnPassant(types.SqNone)
	p.sideToMove = p.sideToMove.Flip()
	p.zobristKey ^= zobrist.SideToMove
	p.ply++
	if p.sideToMove == types.White {
		p.fullMoveNumber++
	}

	if assert.DEBUG {
		assert.Assert(p.repetitionIdx < maxRepetitionHistory, "repetition history overflow")
	}
	p.repetitionKeys[p.repetitionIdx] = p.zobristKey
	p.repetitionIdx++
}

// UndoNullMove restores the position to the state before DoNullMove.
func (p *Position) UndoNullMove() {
	p.UndoMove()
}

// rebuildBoard reconstructs the square-indexed board array from the
// per-piece bitboards; everything else in Position is restored directly
// from the popped snapshot.
func (p *Position) rebuildBoard() {
	for sq := types.Square(0); sq < types.SqNone; sq++ {
		p.board[sq] = types.PieceNone
	}
	for pc := types.Piece(0); pc < types.PieceLength; pc++ {
		bb := p.pieces[pc]
		for bb != 0 {
			var sq types.Square
			sq, bb = bb.PopLsb()
			p.board[sq] = pc
		}
	}
}

// String renders the board as an 8x8 grid (rank 8 first) followed by the
// FEN for the current position, for logging.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := types.Rank8; r < types.RankLength; r++ {
		for f := types.FileA; f < types.FileLength; f++ {
			pc := p.board[types.SquareOf(f, r)]
			sb.WriteString("| ")
			if pc == types.PieceNone {
				sb.WriteString(" ")
			} else {
				sb.WriteString(pc.String())
			}
			sb.WriteString(" ")
		}
		sb.WriteString("|\n+---+---+---+---+---+---+---+---+\n")
	}
	sb.WriteString(p.FEN())
	sb.WriteString("\n")
	return sb.String()
}
