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
	"time"

	"github.com/frankkopp/milky/config"
	"github.com/frankkopp/milky/movegen"
	"github.com/frankkopp/milky/moveslice"
	"github.com/frankkopp/milky/position"
	"github.com/frankkopp/milky/transpositiontable"
	"github.com/frankkopp/milky/types"
)

// rootSearch drives the move loop for the root position (ply 0) of one
// iterative-deepening iteration. Root moves are pre-generated and kept in
// s.rootMoves/s.rootValues by iterativeDeepening, re-sorted after every
// completed iteration so the previous best move is always tried first here;
// that ordering plays the role that following a recorded PV line plays at
// every other ply. prevPV is the PV produced by the previous iteration (or
// empty on the first one), used to seed move ordering deeper into the tree
// along the line the engine expects to actually play.
func (s *Search) rootSearch(p *position.Position, depth int, alpha, beta types.Value, prevPV *moveslice.MoveSlice) types.Value {
	followFirst := prevPV.Len() > 0

	for i := 0; i < s.rootMoves.Len(); i++ {
		if s.stopConditions() && depth > 1 {
			break
		}
		move := s.rootMoves.At(i)
		s.statistics.CurrentRootMove = move
		s.statistics.CurrentRootMoveIndex = i + 1
		if s.uciHandlerPtr != nil && time.Since(s.startTime) > time.Second {
			s.uciHandlerPtr.SendCurrentRootMove(move, i+1)
		}

		followChild := followFirst && i == 0 && move == prevPV.At(0)

		p.DoMove(move)
		var value types.Value
		switch {
		case i == 0:
			value = -s.negamax(p, depth-1, 1, -beta, -alpha, followChild, prevPV)
		default:
			value = -s.negamax(p, depth-1, 1, -alpha-1, -alpha, false, prevPV)
			if value > alpha && value < beta {
				s.statistics.RootPvsResearches++
				value = -s.negamax(p, depth-1, 1, -beta, -alpha, followChild, prevPV)
			}
		}
		p.UndoMove()

		s.rootValues[i] = value

		if value > alpha {
			alpha = value
			copyPV(s.pv[0], s.pv[1], move)
			if alpha >= beta {
				break
			}
		}
	}

	return alpha
}

// negamax is the recursive alpha-beta search core. It classifies the node as
// PV or non-PV purely from the width of its window (beta-alpha > 1), probes
// the transposition table, applies null-move pruning and late-move
// reductions, and falls into quiescence search once the horizon is reached.
func (s *Search) negamax(p *position.Position, depth, ply int, alpha, beta types.Value, followPV bool, prevPV *moveslice.MoveSlice) types.Value {
	if ply != 0 && s.checkDrawRepAnd50(p) {
		return types.ValueDraw
	}

	isPV := beta-alpha > 1

	var ttEntry *transpositiontable.Entry
	if config.Settings.Search.UseTT && s.tt != nil {
		ttEntry = s.tt.Probe(p.ZobristKey())
	}
	if ttEntry != nil {
		s.statistics.TTHit++
		if ply != 0 && !isPV && int(ttEntry.Depth) >= depth {
			val := valueFromTT(ttEntry.Value, ply)
			cut := false
			switch ttEntry.Type {
			case types.ValueTypeExact:
				cut = true
			case types.ValueTypeAlpha:
				cut = val <= alpha
			case types.ValueTypeBeta:
				cut = val >= beta
			}
			if cut {
				s.statistics.TTCuts++
				if ttEntry.Type == types.ValueTypeAlpha {
					return alpha
				}
				if ttEntry.Type == types.ValueTypeBeta {
					return beta
				}
				return val
			}
			s.statistics.TTNoCuts++
		}
	} else if config.Settings.Search.UseTT {
		s.statistics.TTMiss++
	}

	s.pv[ply].Clear()

	if depth <= 0 {
		return s.quiescence(p, ply, alpha, beta)
	}
	if ply >= types.MaxPly {
		return s.eval.Evaluate(p)
	}

	s.nodesVisited++
	if ply > s.statistics.CurrentExtraSearchDepth {
		s.statistics.CurrentExtraSearchDepth = ply
	}

	inCheck := p.InCheck()
	if inCheck {
		depth++
	}

	if s.stopConditions() {
		return types.ValueDraw
	}

	// Mate-distance pruning: a mate already proven closer to the root makes
	// the rest of this node's window moot, since no line through here can
	// beat a shorter mate that is already known.
	if mateAlpha := -types.ValueMate + types.Value(ply); alpha < mateAlpha {
		alpha = mateAlpha
	}
	if mateBeta := types.ValueMate - types.Value(ply) - 1; beta > mateBeta {
		beta = mateBeta
	}
	if alpha >= beta {
		s.statistics.MdpCuts++
		return alpha
	}

	if config.Settings.Search.UseNullMove &&
		ply != 0 &&
		!inCheck &&
		depth >= config.Settings.Search.MinNullMoveDepth &&
		p.NonPawnMaterial(p.SideToMove()) > 0 {
		p.DoNullMove()
		nullValue := -s.negamax(p, depth-1-config.Settings.Search.NullMoveR, ply+1, -beta, -beta+1, false, prevPV)
		p.UndoNullMove()
		if s.stopFlag {
			return types.ValueDraw
		}
		if nullValue >= beta {
			s.statistics.NullMoveCuts++
			if config.Settings.Search.UseTT && s.tt != nil {
				s.tt.Put(p.ZobristKey(), types.MoveNone, valueToTT(beta, ply), int8(depth), types.ValueTypeBeta, false)
			}
			return beta
		}
	}

	pvMoveHint := types.MoveNone
	if followPV && ply < prevPV.Len() {
		pvMoveHint = prevPV.At(ply)
	}
	if !pvMoveHint.IsValid() && ttEntry != nil {
		pvMoveHint = ttEntry.Move
	}

	mg := s.mg[ply]
	mg.ResetOnDemand()
	mg.SetPvMove(pvMoveHint)

	bestMove := types.MoveNone
	ttType := types.ValueTypeAlpha
	movesSearched := 0

	for move := mg.GetNextMove(p, movegen.GenAll); move != types.MoveNone; move = mg.GetNextMove(p, movegen.GenAll) {
		p.DoMove(move)
		if !p.WasLegalMove() {
			p.UndoMove()
			continue
		}
		movesSearched++

		childFollowPV := followPV && movesSearched == 1 && pvMoveHint.IsValid() && move == pvMoveHint

		newDepth := depth - 1
		lmrDepth := newDepth
		if config.Settings.Search.UseLMR &&
			!isPV &&
			movesSearched > config.Settings.Search.LmrMinMoveIndex &&
			depth >= config.Settings.Search.LmrMinDepth &&
			!inCheck &&
			move.IsQuiet() {
			lmrDepth -= config.Settings.Search.LmrReduction
			if lmrDepth < 0 {
				lmrDepth = 0
			}
			s.statistics.LmrReductions++
		}

		var value types.Value
		switch {
		case !config.Settings.Search.UsePVS || movesSearched == 1:
			value = -s.negamax(p, newDepth, ply+1, -beta, -alpha, childFollowPV, prevPV)
		default:
			value = -s.negamax(p, lmrDepth, ply+1, -alpha-1, -alpha, false, prevPV)
			if value > alpha && !s.stopConditions() {
				if lmrDepth < newDepth {
					s.statistics.LmrResearches++
					value = -s.negamax(p, newDepth, ply+1, -beta, -alpha, false, prevPV)
				} else if value < beta {
					s.statistics.PvsResearches++
					value = -s.negamax(p, newDepth, ply+1, -beta, -alpha, false, prevPV)
				}
			}
		}
		p.UndoMove()

		if s.stopConditions() {
			return types.ValueDraw
		}

		if value > alpha {
			bestMove = move
			ttType = types.ValueTypeExact
			if move.IsQuiet() && config.Settings.Search.UseHistory {
				s.history[p.SideToMove()][move.From()][move.To()] += int32(depth)
			}
			alpha = value
			copyPV(s.pv[ply], s.pv[ply+1], move)

			if alpha >= beta {
				s.statistics.BetaCuts++
				if movesSearched == 1 {
					s.statistics.BetaCuts1st++
				}
				if move.IsQuiet() && config.Settings.Search.UseKillerMoves {
					mg.StoreKiller(move)
				}
				if config.Settings.Search.UseTT && s.tt != nil {
					s.tt.Put(p.ZobristKey(), move, valueToTT(beta, ply), int8(depth), types.ValueTypeBeta, false)
				}
				return beta
			}
		}
	}

	if movesSearched == 0 {
		if inCheck {
			s.statistics.Checkmates++
			return -types.ValueMate + types.Value(ply)
		}
		s.statistics.Stalemates++
		return types.ValueDraw
	}

	if config.Settings.Search.UseTT && s.tt != nil {
		s.tt.Put(p.ZobristKey(), bestMove, valueToTT(alpha, ply), int8(depth), ttType, false)
	}
	return alpha
}

// quiescence extends the search along captures only, so the static
// evaluation taken at the search horizon is never a position with a pending
// capture that would immediately swing the material count.
func (s *Search) quiescence(p *position.Position, ply int, alpha, beta types.Value) types.Value {
	s.nodesVisited++
	if ply > s.statistics.CurrentExtraSearchDepth {
		s.statistics.CurrentExtraSearchDepth = ply
	}

	if !config.Settings.Search.UseQuiescence || ply >= types.MaxPly {
		s.statistics.Evaluations++
		return s.eval.Evaluate(p)
	}

	inCheck := p.InCheck()

	var standPat types.Value
	if !inCheck {
		standPat = s.eval.Evaluate(p)
		s.statistics.Evaluations++
		if standPat >= beta {
			s.statistics.StandpatCuts++
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	mg := s.mg[ply]
	mg.ResetOnDemand()
	mg.SetPvMove(types.MoveNone)

	// A position in check searches every move, not just captures: there may
	// be no capture that escapes check at all, and a quiet king move or
	// block is the only way to find out the position is not already mate.
	mode := movegen.GenCap
	if inCheck {
		mode = movegen.GenAll
	}

	movesSearched := 0
	for move := mg.GetNextMove(p, mode); move != types.MoveNone; move = mg.GetNextMove(p, mode) {
		if !inCheck && config.Settings.Search.UseSEE && !seeApprox(p, move) {
			continue
		}

		p.DoMove(move)
		if !p.WasLegalMove() {
			p.UndoMove()
			continue
		}
		movesSearched++

		var value types.Value
		if inCheck && s.checkDrawRepAnd50(p) {
			value = types.ValueDraw
		} else {
			value = -s.quiescence(p, ply+1, -beta, -alpha)
		}
		p.UndoMove()

		if s.stopFlag {
			return types.ValueDraw
		}

		if value > alpha {
			alpha = value
			if alpha >= beta {
				s.statistics.BetaCuts++
				return beta
			}
		}
	}

	if movesSearched == 0 && inCheck {
		s.statistics.Checkmates++
		return -types.ValueMate + types.Value(ply)
	}

	return alpha
}

// seeApprox is a cheap static-exchange approximation used to prune captures
// in quiescence search: a capture of an equal-or-greater value piece is
// always good, and an up-exchange (the attacker is worth more than the
// victim) is only played out if the destination square is otherwise
// undefended. It is not a full static exchange evaluator - no chain of
// subsequent recaptures is walked - but it catches the common losing-capture
// case cheaply, which is all quiescence needs it for.
func seeApprox(p *position.Position, m types.Move) bool {
	if !m.IsCapture() {
		return true
	}
	var victimValue types.Value
	if m.IsEnPassant() {
		victimValue = types.PieceTypeValueOpening[types.Pawn]
	} else {
		victimValue = types.PieceTypeValueOpening[p.PieceOn(m.To()).TypeOf()]
	}
	attackerValue := types.PieceTypeValueOpening[m.Piece().TypeOf()]
	if victimValue >= attackerValue {
		return true
	}
	return !p.IsSquareAttacked(m.To(), p.SideToMove().Flip())
}

// copyPV assembles the PV at ply from the move just played there and the
// continuation already discovered one ply deeper.
func copyPV(dst, src *moveslice.MoveSlice, m types.Move) {
	dst.Clear()
	dst.PushBack(m)
	for i := 0; i < src.Len(); i++ {
		dst.PushBack(src.At(i))
	}
}

// valueToTT shifts a mate score from "plies to mate from here" to "plies to
// mate from the root" before it is stored, so a later probe at a different
// ply can shift it back to that ply's own perspective.
func valueToTT(value types.Value, ply int) types.Value {
	if value.IsMateValue() {
		if value > 0 {
			return value + types.Value(ply)
		}
		return value - types.Value(ply)
	}
	return value
}

// valueFromTT is the inverse of valueToTT, applied when a stored score is
// read back at a given ply.
func valueFromTT(value types.Value, ply int) types.Value {
	if value.IsMateValue() {
		if value > 0 {
			return value - types.Value(ply)
		}
		return value + types.Value(ply)
	}
	return value
}
