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

package attacks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/milky/types"
)

func TestKnightAttacksCornerAndCenter(t *testing.T) {
	assert.Equal(t, 2, KnightAttacks[types.SqA8].PopCount())
	assert.Equal(t, 8, KnightAttacks[types.SqE4].PopCount())
}

func TestKingAttacksCornerAndCenter(t *testing.T) {
	assert.Equal(t, 3, KingAttacks[types.SqA8].PopCount())
	assert.Equal(t, 8, KingAttacks[types.SqE4].PopCount())
}

func TestPawnAttacks(t *testing.T) {
	assert.True(t, PawnAttacks[types.White][types.SqE4].Has(types.SqD5))
	assert.True(t, PawnAttacks[types.White][types.SqE4].Has(types.SqF5))
	assert.True(t, PawnAttacks[types.Black][types.SqE5].Has(types.SqD4))
	assert.True(t, PawnAttacks[types.Black][types.SqE5].Has(types.SqF4))
}

func TestRookAttacksOpenBoard(t *testing.T) {
	bb := SlidingAttacksBb(types.Rook, types.SqA1, 0)
	assert.Equal(t, 14, bb.PopCount())
}

func TestBishopAttacksOpenBoard(t *testing.T) {
	bb := SlidingAttacksBb(types.Bishop, types.SqD4, 0)
	assert.Equal(t, 13, bb.PopCount())
}

func TestRookAttacksBlocked(t *testing.T) {
	occ := types.SquareBb(types.SqA4)
	bb := SlidingAttacksBb(types.Rook, types.SqA1, occ)
	assert.True(t, bb.Has(types.SqA4))
	assert.False(t, bb.Has(types.SqA5))
}

func TestIsSquareAttackedByKnight(t *testing.T) {
	by := Attackers{Knights: types.SquareBb(types.SqF3)}
	assert.True(t, IsSquareAttacked(types.SqE5, types.White, by, types.SquareBb(types.SqF3)))
	assert.False(t, IsSquareAttacked(types.SqE4, types.White, by, types.SquareBb(types.SqF3)))
}

func TestIsolatedAndPassed(t *testing.T) {
	assert.True(t, IsIsolated(types.FileA, types.SquareBb(types.SqA2)))
	assert.False(t, IsIsolated(types.FileB, types.SquareBb(types.SqA2)|types.SquareBb(types.SqB2)))
	assert.True(t, IsPassed(types.White, types.SqE4, 0))
	assert.False(t, IsPassed(types.White, types.SqE4, types.SquareBb(types.SqE6)))
}
