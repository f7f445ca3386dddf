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

// Package evaluator computes a static value for a chess position, used as
// the leaf score of the search. Material and piece-square tables are
// tapered between the opening and endgame tables by how much non-pawn
// material remains on the board; pawn structure, mobility and king safety
// are then layered on top, each behind its own config.Settings.Eval toggle.
package evaluator

import (
	"github.com/op/go-logging"

	"github.com/frankkopp/milky/attacks"
	"github.com/frankkopp/milky/config"
	myLogging "github.com/frankkopp/milky/logging"
	"github.com/frankkopp/milky/position"
	"github.com/frankkopp/milky/types"
)

// Evaluator holds nothing but a logger; all evaluation state lives in the
// Position being scored. Create with NewEvaluator.
type Evaluator struct {
	log *logging.Logger
}

// NewEvaluator creates a new Evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{log: myLogging.GetLog("eval")}
}

// nonPawnPieceTypes is iterated wherever a heuristic needs every piece
// type except the pawn.
var nonPawnPieceTypes = [...]types.PieceType{types.Knight, types.Bishop, types.Rook, types.Queen, types.King}

// Evaluate scores pos from the side-to-move's point of view: positive means
// better for the side to move.
func (e *Evaluator) Evaluate(pos *position.Position) types.Value {
	g := gamePhaseScore(pos)
	threshold := types.Value(config.Settings.Eval.OpeningPhaseThreshold)
	phase := classifyPhase(g, threshold)

	matOpening, matEndgame := e.material(pos)
	posOpening, posEndgame := e.positional(pos)
	value := interpolate(phase, matOpening+posOpening, matEndgame+posEndgame, g, threshold)

	if config.Settings.Eval.UsePawnStructure {
		value += e.pawnStructure(pos, types.White) - e.pawnStructure(pos, types.Black)
	}
	if config.Settings.Eval.UseMobility {
		value += e.mobility(pos, types.White) - e.mobility(pos, types.Black)
	}
	if config.Settings.Eval.UseRookKingEval {
		value += e.rookAndKingSafety(pos, types.White) - e.rookAndKingSafety(pos, types.Black)
	}

	if pos.SideToMove() == types.Black {
		value = -value
	}

	value += interpolate(phase, types.Value(config.Settings.Eval.Tempo), 0, g, threshold)

	return value
}

// gamePhase classifies a position into three regimes: Opening above the
// threshold, Endgame below half of it, Midgame (the only regime that
// blends opening and endgame scores) in between.
type gamePhase int

const (
	phaseOpening gamePhase = iota
	phaseMidgame
	phaseEndgame
)

// classifyPhase returns the phase regime for a game-phase score g against
// the opening threshold.
func classifyPhase(g, threshold types.Value) gamePhase {
	switch {
	case g > threshold:
		return phaseOpening
	case g < threshold/2:
		return phaseEndgame
	default:
		return phaseMidgame
	}
}

// interpolate picks the pure opening or endgame score outside the midgame
// band and blends only inside it: a position in the Opening or Endgame
// regime never sees the other regime's score leak in.
func interpolate(phase gamePhase, opening, endgame, g, threshold types.Value) types.Value {
	switch phase {
	case phaseOpening:
		return opening
	case phaseEndgame:
		return endgame
	default:
		return (opening*g + endgame*(threshold-g)) / threshold
	}
}

// gamePhaseScore sums both sides' non-pawn, non-king material at opening
// piece values, the game-phase score g that classifyPhase/interpolate key
// their regime off of.
func gamePhaseScore(pos *position.Position) types.Value {
	var total types.Value
	for _, c := range [...]types.Color{types.White, types.Black} {
		for _, pt := range nonPawnPieceTypes {
			if pt == types.King {
				continue
			}
			total += types.Value(pos.PieceBb(types.MakePiece(c, pt)).PopCount()) * types.PieceTypeValueOpening[pt]
		}
	}
	return total
}

func (e *Evaluator) material(pos *position.Position) (opening, endgame types.Value) {
	for pt := types.Pawn; pt < types.PieceTypeLength; pt++ {
		white := pos.PieceBb(types.MakePiece(types.White, pt)).PopCount()
		black := pos.PieceBb(types.MakePiece(types.Black, pt)).PopCount()
		diff := types.Value(white - black)
		opening += diff * types.PieceTypeValueOpening[pt]
		endgame += diff * types.PieceTypeValueEndgame[pt]
	}
	return opening, endgame
}

func (e *Evaluator) positional(pos *position.Position) (opening, endgame types.Value) {
	for pc := types.Piece(0); pc < types.PieceLength; pc++ {
		sign := types.Value(1)
		if pc.ColorOf() == types.Black {
			sign = -1
		}
		bb := pos.PieceBb(pc)
		for bb != 0 {
			var sq types.Square
			sq, bb = bb.PopLsb()
			opening += sign * pstValue(&pstMid, pc, sq)
			endgame += sign * pstValue(&pstEnd, pc, sq)
		}
	}
	return opening, endgame
}

// pawnStructure penalizes isolated and doubled pawns and rewards passed
// pawns, scaled by how far advanced the passed pawn already is.
func (e *Evaluator) pawnStructure(pos *position.Position, c types.Color) types.Value {
	ownPawns := pos.PieceBb(types.MakePiece(c, types.Pawn))
	enemyPawns := pos.PieceBb(types.MakePiece(c.Flip(), types.Pawn))

	var value types.Value
	bb := ownPawns
	for bb != 0 {
		var sq types.Square
		sq, bb = bb.PopLsb()
		f := sq.FileOf()

		if attacks.IsIsolated(f, ownPawns) {
			value -= types.Value(config.Settings.Eval.IsolatedPawnMalus)
		}
		if attacks.IsDoubled(f, ownPawns) {
			value -= types.Value(config.Settings.Eval.DoubledPawnMalus)
		}
		if attacks.IsPassed(c, sq, enemyPawns) {
			rank := sq.RankOf()
			advance := int(types.Rank1 - rank)
			if c == types.Black {
				advance = int(rank - types.Rank8)
			}
			value += types.Value(config.Settings.Eval.PassedPawnBaseBonus + advance*config.Settings.Eval.PassedPawnRankFactor)
		}
	}
	return value
}

// mobility counts squares attacked by knights, bishops, rooks and queens
// that aren't occupied by a friendly piece. It ignores pins and x-rays
// through friendly pieces, a deliberately cheap approximation since this
// runs at every leaf node.
func (e *Evaluator) mobility(pos *position.Position, c types.Color) types.Value {
	occupied := pos.Occupied()
	own := pos.OccupiedBy(c)

	var squares int
	bb := pos.PieceBb(types.MakePiece(c, types.Knight))
	for bb != 0 {
		var sq types.Square
		sq, bb = bb.PopLsb()
		squares += (attacks.KnightAttacks[sq] &^ own).PopCount()
	}
	for _, pt := range [...]types.PieceType{types.Bishop, types.Rook, types.Queen} {
		pieces := pos.PieceBb(types.MakePiece(c, pt))
		for pieces != 0 {
			var sq types.Square
			sq, pieces = pieces.PopLsb()
			squares += (attacks.SlidingAttacksBb(pt, sq, occupied) &^ own).PopCount()
		}
	}
	return types.Value(squares * config.Settings.Eval.MobilityBonus)
}

// rookAndKingSafety rewards rooks on open/semi-open files and a pawn
// shield in front of the king.
func (e *Evaluator) rookAndKingSafety(pos *position.Position, c types.Color) types.Value {
	ownPawns := pos.PieceBb(types.MakePiece(c, types.Pawn))
	enemyPawns := pos.PieceBb(types.MakePiece(c.Flip(), types.Pawn))

	var value types.Value
	rooks := pos.PieceBb(types.MakePiece(c, types.Rook))
	for rooks != 0 {
		var sq types.Square
		sq, rooks = rooks.PopLsb()
		file := types.FileBb[sq.FileOf()]
		switch {
		case file&ownPawns == 0 && file&enemyPawns == 0:
			value += types.Value(config.Settings.Eval.RookOpenFileBonus)
		case file&ownPawns == 0:
			value += types.Value(config.Settings.Eval.RookSemiOpenBonus)
		}
	}

	kingSq := pos.KingSquare(c)
	shield := attacks.KingAttacks[kingSq] & attacks.AheadMask[c][kingSq.RankOf()] & ownPawns
	value += types.Value(shield.PopCount()) * types.Value(config.Settings.Eval.KingShieldBonus)

	return value
}
