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

// Package movegen generates pseudo-legal and legal moves for a Position and
// provides an on-demand, ordered move stream for the search. Pseudo-legal
// moves are filtered to legal ones by applying them via Position.DoMove and
// checking Position.WasLegalMove, rather than by pre-checking pins, since
// that keeps the generator itself simple and the check is cheap relative to
// a full attack re-derivation.
package movegen

import (
	"fmt"

	"github.com/frankkopp/milky/assert"
	"github.com/frankkopp/milky/attacks"
	"github.com/frankkopp/milky/moveslice"
	"github.com/frankkopp/milky/position"
	"github.com/frankkopp/milky/types"
)

// GenMode selects which kind of pseudo-legal moves a generator call should
// produce. The two bits compose, so GenAll == GenCap|GenNonCap.
type GenMode int

const (
	GenZero   GenMode = 0b00
	GenCap    GenMode = 0b01
	GenNonCap GenMode = 0b10
	GenAll    GenMode = 0b11
)

// promoTypes is iterated in priority order: a queen promotion is almost
// always the best choice, so generating it first lets move ordering surface
// it before the underpromotions without extra scoring work.
var promoTypes = [4]types.PieceType{types.Queen, types.Rook, types.Bishop, types.Knight}

const (
	numKillerMoves = 2

	pvMoveScore      = 100_000_000
	captureScoreBase = 1_000_000
	killerMoveScore0 = 50_000
	killerMoveScore1 = 49_000

	// historyScoreCap keeps long-search history counters below the
	// killer scores
	historyScoreCap = 45_000
)

// Movegen is the move generator for one search thread. It caches the
// on-demand move order for the last position it was asked about, so
// repeated GetNextMove calls against the same node don't regenerate moves.
type Movegen struct {
	onDemand      types.MoveList
	onDemandKey   uint64
	onDemandValid bool
	onDemandIdx   int

	pvMove  types.Move
	killers [numKillerMoves]types.Move
	history *[types.ColorLength][64][64]int32
}

// NewMoveGen creates a move generator with no PV move or killers set.
func NewMoveGen() *Movegen {
	return &Movegen{}
}

// String renders the generator's current ordering hints for logging.
func (mg *Movegen) String() string {
	return fmt.Sprintf("Movegen: pv=%s killer1=%s killer2=%s",
		mg.pvMove.String(), mg.killers[0].String(), mg.killers[1].String())
}

// SetPvMove sets the move to be returned first by GetNextMove, when it is
// part of the generated pseudo-legal move set for the current position.
func (mg *Movegen) SetPvMove(m types.Move) {
	mg.pvMove = m
}

// StoreKiller records m as a killer move, a quiet move that caused a beta
// cutoff at this ply in a sibling node. The two most recent distinct
// killers are kept; a repeat move is not re-added.
func (mg *Movegen) StoreKiller(m types.Move) {
	if m == mg.killers[0] {
		return
	}
	mg.killers[1] = mg.killers[0]
	mg.killers[0] = m
}

// SetHistory gives the generator a shared history heuristic table, indexed
// [color][from][to], used to rank quiet moves that are neither the PV move
// nor a killer by how often they have caused a beta cutoff elsewhere in the
// tree. A nil table (the default) leaves all quiet moves ranked equally.
func (mg *Movegen) SetHistory(h *[types.ColorLength][64][64]int32) {
	mg.history = h
}

// ResetOnDemand forces the next GetNextMove call to regenerate and re-score
// moves even if called again for the same position, used when the PV move
// or killers have changed since the last call.
func (mg *Movegen) ResetOnDemand() {
	mg.onDemandValid = false
}

// GetNextMove returns the next move in search order for pos: the PV move
// first (if legal-looking and present in the pseudo-legal set), then
// captures best-victim-first, then killers, then remaining quiet moves.
// Returns MoveNone once exhausted.
func (mg *Movegen) GetNextMove(pos *position.Position, mode GenMode) types.Move {
	if !mg.onDemandValid || mg.onDemandKey != pos.ZobristKey() {
		mg.fillOnDemand(pos, mode)
		mg.onDemandKey = pos.ZobristKey()
		mg.onDemandValid = true
		mg.onDemandIdx = 0
	}
	if mg.onDemandIdx >= mg.onDemand.Len() {
		return types.MoveNone
	}
	m := mg.onDemand.SelectSort(mg.onDemandIdx)
	mg.onDemandIdx++
	return m
}

func (mg *Movegen) fillOnDemand(pos *position.Position, mode GenMode) {
	mg.onDemand.Clear()
	raw := moveslice.NewMoveSlice(64)
	mg.generatePawnMoves(pos, mode, raw)
	mg.generateCastling(pos, mode, raw)
	mg.generateKingMoves(pos, mode, raw)
	mg.generateMoves(pos, mode, raw)

	for i := 0; i < raw.Len(); i++ {
		m := raw.At(i)
		mg.onDemand.Add(m)
		mg.onDemand.SetScore(i, mg.orderingScore(pos, m))
	}
}

// orderingScore ranks m for move ordering: the PV move first, then captures
// by MVV-LVA (most valuable victim, least valuable attacker), then killers,
// then quiet moves last.
func (mg *Movegen) orderingScore(pos *position.Position, m types.Move) int32 {
	if m == mg.pvMove {
		return pvMoveScore
	}
	if m.IsCapture() {
		victim := pos.PieceOn(m.To())
		var victimValue types.Value
		if m.IsEnPassant() {
			victimValue = types.PieceTypeValueOpening[types.Pawn]
		} else {
			victimValue = types.PieceTypeValueOpening[victim.TypeOf()]
		}
		attackerValue := types.PieceTypeValueOpening[m.Piece().TypeOf()]
		return captureScoreBase + int32(victimValue)*10 - int32(attackerValue)
	}
	if m == mg.killers[0] {
		return killerMoveScore0
	}
	if m == mg.killers[1] {
		return killerMoveScore1
	}
	if mg.history != nil {
		h := mg.history[pos.SideToMove()][m.From()][m.To()]
		if h > historyScoreCap {
			h = historyScoreCap
		}
		return h
	}
	return 0
}

// GeneratePseudoLegalMoves returns every pseudo-legal move matching mode for
// pos: captures, non-captures, or both. Moves are not checked for leaving
// the mover's own king in check.
func (mg *Movegen) GeneratePseudoLegalMoves(pos *position.Position, mode GenMode) *moveslice.MoveSlice {
	ml := moveslice.NewMoveSlice(64)
	mg.generatePawnMoves(pos, mode, ml)
	mg.generateCastling(pos, mode, ml)
	mg.generateKingMoves(pos, mode, ml)
	mg.generateMoves(pos, mode, ml)
	return ml
}

// GenerateLegalMoves returns every legal move matching mode for pos, by
// generating pseudo-legal moves and discarding any that leave the mover's
// king in check.
func (mg *Movegen) GenerateLegalMoves(pos *position.Position, mode GenMode) *moveslice.MoveSlice {
	pseudo := mg.GeneratePseudoLegalMoves(pos, mode)
	legal := moveslice.NewMoveSlice(pseudo.Len())
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.At(i)
		pos.DoMove(m)
		ok := pos.WasLegalMove()
		pos.UndoMove()
		if ok {
			legal.PushBack(m)
		}
	}
	return legal
}

// HasLegalMove reports whether pos has at least one legal move, short
// circuiting on the first one found; used to detect checkmate and
// stalemate without generating (and sorting) the full move list.
func (mg *Movegen) HasLegalMove(pos *position.Position) bool {
	pseudo := mg.GeneratePseudoLegalMoves(pos, GenAll)
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.At(i)
		pos.DoMove(m)
		ok := pos.WasLegalMove()
		pos.UndoMove()
		if ok {
			return true
		}
	}
	return false
}

// GetMoveFromUci parses a UCI move string ("e2e4", "e7e8q") and returns the
// matching legal move for pos, or MoveNone if the string is malformed or
// does not correspond to a legal move.
func (mg *Movegen) GetMoveFromUci(pos *position.Position, uci string) types.Move {
	if len(uci) != 4 && len(uci) != 5 {
		return types.MoveNone
	}
	from := types.MakeSquare(uci[0:2])
	to := types.MakeSquare(uci[2:4])
	if !from.IsValid() || !to.IsValid() {
		return types.MoveNone
	}

	moves := mg.GenerateLegalMoves(pos, GenAll)
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if m.From() != from || m.To() != to {
			continue
		}
		if len(uci) == 5 {
			if !promoLetterMatches(m.Promotion(), uci[4]) {
				continue
			}
		} else if m.IsPromotion() {
			continue
		}
		return m
	}
	return types.MoveNone
}

func promoLetterMatches(pt types.PieceType, c byte) bool {
	switch c {
	case 'q', 'Q':
		return pt == types.Queen
	case 'r', 'R':
		return pt == types.Rook
	case 'b', 'B':
		return pt == types.Bishop
	case 'n', 'N':
		return pt == types.Knight
	default:
		return false
	}
}

// GetMoveFromSan parses a standard algebraic notation move (e.g. "Nf3",
// "exd5", "O-O", "a1Q" for a queen promotion) by generating every legal
// move for pos and returning the one whose own SAN rendering matches,
// ignoring a trailing '+' or '#' check/mate suffix. A piece move written
// with its origin rank ("N7xe5") is also accepted when that rank names
// exactly one legal move.
func (mg *Movegen) GetMoveFromSan(pos *position.Position, san string) types.Move {
	san = trimCheckSuffix(san)
	moves := mg.GenerateLegalMoves(pos, GenAll)
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		if moveToSan(pos, moves, m) == san {
			return m
		}
	}
	found := types.MoveNone
	for i := 0; i < moves.Len(); i++ {
		m := moves.At(i)
		prefix := m.Piece().TypeOf().String() + m.From().RankOf().String()
		if m.IsCapture() {
			prefix += "x"
		}
		if m.Piece().TypeOf() != types.Pawn && san == prefix+m.To().String() {
			if found.IsValid() {
				return types.MoveNone
			}
			found = m
		}
	}
	return found
}

func trimCheckSuffix(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '+' || s[len(s)-1] == '#') {
		s = s[:len(s)-1]
	}
	return s
}

// moveToSan renders m in standard algebraic notation. legal is the full
// legal move list for pos, used to compute file/rank disambiguation for
// piece moves.
func moveToSan(pos *position.Position, legal *moveslice.MoveSlice, m types.Move) string {
	if m.IsCastling() {
		if m.To() == types.SqG1 || m.To() == types.SqG8 {
			return "O-O"
		}
		return "O-O-O"
	}

	pt := m.Piece().TypeOf()
	capture := m.IsCapture()

	var s string
	if pt == types.Pawn {
		if capture {
			s += m.From().FileOf().String()
		}
	} else {
		s += pt.String()
		s += disambiguation(pos, legal, m)
	}
	if capture {
		s += "x"
	}
	s += m.To().String()
	if m.IsPromotion() {
		s += m.Promotion().String()
	}
	return s
}

// disambiguation returns the minimal file/rank/square prefix needed to tell
// m apart from other legal moves of the same piece type to the same target
// square.
func disambiguation(pos *position.Position, legal *moveslice.MoveSlice, m types.Move) string {
	pt := m.Piece().TypeOf()
	sameFile, sameRank, ambiguous := false, false, false
	for i := 0; i < legal.Len(); i++ {
		other := legal.At(i)
		if other == m {
			continue
		}
		if other.To() != m.To() || other.Piece().TypeOf() != pt {
			continue
		}
		ambiguous = true
		if other.From().FileOf() == m.From().FileOf() {
			sameFile = true
		}
		if other.From().RankOf() == m.From().RankOf() {
			sameRank = true
		}
	}
	if !ambiguous {
		return ""
	}
	if !sameFile {
		return m.From().FileOf().String()
	}
	if !sameRank {
		return m.From().RankOf().String()
	}
	return m.From().String()
}

// generatePawnMoves appends pseudo-legal pawn pushes, captures, double
// pushes, promotions and en passant captures for the side to move.
func (mg *Movegen) generatePawnMoves(pos *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	us := pos.SideToMove()
	them := us.Flip()
	piece := types.MakePiece(us, types.Pawn)
	pawns := pos.PieceBb(piece)
	empty := ^pos.Occupied()
	enemy := pos.OccupiedBy(them)

	forward := types.North
	promoRank := types.RankBb[types.Rank8]
	startPushRank := types.RankBb[types.Rank3]
	if us == types.Black {
		forward = types.South
		promoRank = types.RankBb[types.Rank1]
		startPushRank = types.RankBb[types.Rank6]
	}

	if mode&GenNonCap != 0 {
		singlePush := pawns.Shift(forward) & empty
		quietTargets := singlePush &^ promoRank
		bb := quietTargets
		for bb != 0 {
			var to types.Square
			to, bb = bb.PopLsb()
			from := to - types.Square(forward)
			ml.PushBack(types.MoveNormal(from, to, piece))
		}

		doublePush := (singlePush & startPushRank).Shift(forward) & empty
		bb = doublePush
		for bb != 0 {
			var to types.Square
			to, bb = bb.PopLsb()
			from := to - types.Square(2*forward)
			ml.PushBack(types.MoveDoublePawnPush(from, to, piece))
		}

		promoPush := singlePush & promoRank
		bb = promoPush
		for bb != 0 {
			var to types.Square
			to, bb = bb.PopLsb()
			from := to - types.Square(forward)
			for _, promo := range promoTypes {
				ml.PushBack(types.MovePromotion(from, to, piece, promo, false))
			}
		}
	}

	if mode&GenCap != 0 {
		for _, capDir := range pawnCaptureDirections(us) {
			targets := pawns.Shift(capDir) & enemy
			quietCapTargets := targets &^ promoRank
			bb := quietCapTargets
			for bb != 0 {
				var to types.Square
				to, bb = bb.PopLsb()
				from := to - types.Square(capDir)
				ml.PushBack(types.MoveCapture(from, to, piece))
			}
			promoCapTargets := targets & promoRank
			bb = promoCapTargets
			for bb != 0 {
				var to types.Square
				to, bb = bb.PopLsb()
				from := to - types.Square(capDir)
				for _, promo := range promoTypes {
					ml.PushBack(types.MovePromotion(from, to, piece, promo, true))
				}
			}
		}

		if ep := pos.EnPassantSquare(); ep.IsValid() {
			origins := attacks.PawnAttacks[them][ep] & pawns
			bb := origins
			for bb != 0 {
				var from types.Square
				from, bb = bb.PopLsb()
				ml.PushBack(types.MoveEnPassant(from, ep, piece))
			}
		}
	}
}

func pawnCaptureDirections(c types.Color) [2]types.Direction {
	if c == types.White {
		return [2]types.Direction{types.Northeast, types.Northwest}
	}
	return [2]types.Direction{types.Southeast, types.Southwest}
}

// generateCastling appends the (at most two) pseudo-legal castling moves
// available to the side to move: the squares between king and rook must be
// empty, and the king's start, transit and destination squares must not be
// attacked.
func (mg *Movegen) generateCastling(pos *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	if mode&GenNonCap == 0 {
		return
	}
	us := pos.SideToMove()
	them := us.Flip()
	cr := pos.CastlingRights()
	occupied := pos.Occupied()

	if us == types.White {
		if cr.Has(types.CastlingWK) &&
			occupied&(types.SquareBb(types.SqF1)|types.SquareBb(types.SqG1)) == 0 &&
			!pos.IsSquareAttacked(types.SqE1, them) &&
			!pos.IsSquareAttacked(types.SqF1, them) &&
			!pos.IsSquareAttacked(types.SqG1, them) {
			if assert.DEBUG {
				assert.Assert(pos.PieceOn(types.SqH1) == types.WhiteRook, "castling: white rook missing on h1")
			}
			ml.PushBack(types.MoveCastling(types.SqE1, types.SqG1, types.WhiteKing))
		}
		if cr.Has(types.CastlingWQ) &&
			occupied&(types.SquareBb(types.SqB1)|types.SquareBb(types.SqC1)|types.SquareBb(types.SqD1)) == 0 &&
			!pos.IsSquareAttacked(types.SqE1, them) &&
			!pos.IsSquareAttacked(types.SqD1, them) &&
			!pos.IsSquareAttacked(types.SqC1, them) {
			if assert.DEBUG {
				assert.Assert(pos.PieceOn(types.SqA1) == types.WhiteRook, "castling: white rook missing on a1")
			}
			ml.PushBack(types.MoveCastling(types.SqE1, types.SqC1, types.WhiteKing))
		}
		return
	}

	if cr.Has(types.CastlingBK) &&
		occupied&(types.SquareBb(types.SqF8)|types.SquareBb(types.SqG8)) == 0 &&
		!pos.IsSquareAttacked(types.SqE8, them) &&
		!pos.IsSquareAttacked(types.SqF8, them) &&
		!pos.IsSquareAttacked(types.SqG8, them) {
		if assert.DEBUG {
			assert.Assert(pos.PieceOn(types.SqH8) == types.BlackRook, "castling: black rook missing on h8")
		}
		ml.PushBack(types.MoveCastling(types.SqE8, types.SqG8, types.BlackKing))
	}
	if cr.Has(types.CastlingBQ) &&
		occupied&(types.SquareBb(types.SqB8)|types.SquareBb(types.SqC8)|types.SquareBb(types.SqD8)) == 0 &&
		!pos.IsSquareAttacked(types.SqE8, them) &&
		!pos.IsSquareAttacked(types.SqD8, them) &&
		!pos.IsSquareAttacked(types.SqC8, them) {
		if assert.DEBUG {
			assert.Assert(pos.PieceOn(types.SqA8) == types.BlackRook, "castling: black rook missing on a8")
		}
		ml.PushBack(types.MoveCastling(types.SqE8, types.SqC8, types.BlackKing))
	}
}

// generateKingMoves appends the king's pseudo-legal single-step moves,
// excluding castling (handled separately by generateCastling).
func (mg *Movegen) generateKingMoves(pos *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	us := pos.SideToMove()
	piece := types.MakePiece(us, types.King)
	from := pos.KingSquare(us)
	own := pos.OccupiedBy(us)
	enemy := pos.OccupiedBy(us.Flip())

	targets := attacks.KingAttacks[from] &^ own
	if mode&GenCap != 0 {
		bb := targets & enemy
		for bb != 0 {
			var to types.Square
			to, bb = bb.PopLsb()
			ml.PushBack(types.MoveCapture(from, to, piece))
		}
	}
	if mode&GenNonCap != 0 {
		bb := targets &^ enemy
		for bb != 0 {
			var to types.Square
			to, bb = bb.PopLsb()
			ml.PushBack(types.MoveNormal(from, to, piece))
		}
	}
}

// nonPawnNonKingPieceTypes are the piece types generateMoves handles: the
// pawn and king have their own generators above.
var nonPawnNonKingPieceTypes = [4]types.PieceType{types.Knight, types.Bishop, types.Rook, types.Queen}

// generateMoves appends pseudo-legal knight, bishop, rook and queen moves
// for the side to move.
func (mg *Movegen) generateMoves(pos *position.Position, mode GenMode, ml *moveslice.MoveSlice) {
	us := pos.SideToMove()
	own := pos.OccupiedBy(us)
	enemy := pos.OccupiedBy(us.Flip())
	occupied := pos.Occupied()

	for _, pt := range nonPawnNonKingPieceTypes {
		piece := types.MakePiece(us, pt)
		pieces := pos.PieceBb(piece)
		for pieces != 0 {
			var from types.Square
			from, pieces = pieces.PopLsb()

			var targets types.Bitboard
			if pt == types.Knight {
				targets = attacks.KnightAttacks[from] &^ own
			} else {
				targets = attacks.SlidingAttacksBb(pt, from, occupied) &^ own
			}

			if mode&GenCap != 0 {
				bb := targets & enemy
				for bb != 0 {
					var to types.Square
					to, bb = bb.PopLsb()
					ml.PushBack(types.MoveCapture(from, to, piece))
				}
			}
			if mode&GenNonCap != 0 {
				bb := targets &^ enemy
				for bb != 0 {
					var to types.Square
					to, bb = bb.PopLsb()
					ml.PushBack(types.MoveNormal(from, to, piece))
				}
			}
		}
	}
}
