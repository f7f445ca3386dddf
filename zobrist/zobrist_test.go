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

package zobrist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/milky/types"
)

func TestKeyTablesAreFilledAndDistinct(t *testing.T) {
	assert.NotZero(t, PieceSquare[types.WhitePawn][types.SqE4])
	assert.NotEqual(t, PieceSquare[types.WhitePawn][types.SqE4], PieceSquare[types.BlackPawn][types.SqE4])
	assert.NotEqual(t, PieceSquare[types.WhitePawn][types.SqE4], PieceSquare[types.WhitePawn][types.SqE5])
	assert.NotZero(t, SideToMove)
	assert.NotZero(t, Castling[1])
	assert.Zero(t, Castling[0])
}

func TestHashPositionEmptyIsZero(t *testing.T) {
	var pos Position
	pos.EnPassant = types.SqNone
	pos.SideToMove = types.White
	assert.EqualValues(t, 0, HashPosition(pos))
}

func TestHashPositionTogglesBySide(t *testing.T) {
	var white, black Position
	white.EnPassant, black.EnPassant = types.SqNone, types.SqNone
	white.SideToMove = types.White
	black.SideToMove = types.Black
	assert.NotEqual(t, HashPosition(white), HashPosition(black))
	assert.Equal(t, HashPosition(white)^SideToMove, HashPosition(black))
}

func TestHashPositionIncludesPiecesAndEnPassant(t *testing.T) {
	var pos Position
	pos.EnPassant = types.SqNone
	pos.SideToMove = types.White
	base := HashPosition(pos)

	pos.Pieces[types.WhitePawn] = types.SquareBb(types.SqE4)
	withPiece := HashPosition(pos)
	assert.NotEqual(t, base, withPiece)
	assert.Equal(t, base^PieceSquare[types.WhitePawn][types.SqE4], withPiece)

	pos.EnPassant = types.SqE3
	withEp := HashPosition(pos)
	assert.Equal(t, withPiece^EnPassant[types.SqE3], withEp)
}
