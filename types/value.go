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

import "fmt"

// Value is a centipawn evaluation or search score.
type Value int32

const (
	ValueZero    Value = 0
	ValueDraw    Value = 0
	ValueInfinite Value = 20000
	ValueNone    Value = 32002

	// ValueMate is the score assigned to the side delivering mate at ply 0.
	// A mate found at a deeper ply is reported as ValueMate - ply so that
	// shorter mates always score higher than longer ones.
	ValueMate      Value = 19000
	ValueMateInMax Value = ValueMate - Value(MaxPly)
	ValueMatedInMax Value = -ValueMateInMax
)

// PieceTypeValue holds the material worth of each piece type, used by both
// the static exchange evaluator and as the base of the tapered evaluation.
var PieceTypeValueOpening = [PieceTypeLength]Value{
	Pawn: 100, Knight: 320, Bishop: 330, Rook: 500, Queen: 900, King: 0,
}

var PieceTypeValueEndgame = [PieceTypeLength]Value{
	Pawn: 100, Knight: 320, Bishop: 330, Rook: 500, Queen: 900, King: 0,
}

// IsMateValue reports whether v represents a forced mate score (for either
// side), as opposed to a material/positional evaluation.
func (v Value) IsMateValue() bool {
	return v >= ValueMateInMax || v <= ValueMatedInMax
}

// IsValid reports whether v is a real score rather than the ValueNone
// sentinel used to mean "no value computed yet".
func (v Value) IsValid() bool {
	return v != ValueNone
}

// String renders v in UCI "info score" format: "cp <n>" for a material
// score, or "mate <n>" (n in full moves, negative if being mated) for a
// forced mate.
func (v Value) String() string {
	if v >= ValueMateInMax {
		pliesToMate := int(ValueMate - v)
		return fmt.Sprintf("mate %d", (pliesToMate+1)/2)
	}
	if v <= ValueMatedInMax {
		pliesToMate := int(ValueMate + v)
		return fmt.Sprintf("mate -%d", (pliesToMate+1)/2)
	}
	return fmt.Sprintf("cp %d", v)
}
