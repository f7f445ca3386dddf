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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoveNormalRoundTrip(t *testing.T) {
	m := MoveNormal(SqE2, SqE4, WhitePawn)
	assert.Equal(t, SqE2, m.From())
	assert.Equal(t, SqE4, m.To())
	assert.Equal(t, WhitePawn, m.Piece())
	assert.False(t, m.IsCapture())
	assert.True(t, m.IsQuiet())
	assert.Equal(t, "e2e4", m.String())
}

func TestMoveCapture(t *testing.T) {
	m := MoveCapture(SqD4, SqE5, WhiteQueen)
	assert.True(t, m.IsCapture())
	assert.False(t, m.IsQuiet())
	assert.Equal(t, SqD4, m.From())
	assert.Equal(t, SqE5, m.To())
}

func TestMoveDoublePawnPush(t *testing.T) {
	m := MoveDoublePawnPush(SqE2, SqE4, WhitePawn)
	assert.True(t, m.IsDoublePawnPush())
	assert.False(t, m.IsCapture())
}

func TestMoveEnPassant(t *testing.T) {
	m := MoveEnPassant(SqD5, SqE6, WhitePawn)
	assert.True(t, m.IsEnPassant())
	assert.True(t, m.IsCapture())
}

func TestMoveCastling(t *testing.T) {
	m := MoveCastling(SqE1, SqG1, WhiteKing)
	assert.True(t, m.IsCastling())
	assert.False(t, m.IsCapture())
}

func TestMovePromotion(t *testing.T) {
	m := MovePromotion(SqE7, SqE8, WhitePawn, Queen, false)
	assert.True(t, m.IsPromotion())
	assert.Equal(t, Queen, m.Promotion())
	assert.Equal(t, "e7e8q", m.String())

	mc := MovePromotion(SqD7, SqE8, WhitePawn, Knight, true)
	assert.True(t, mc.IsPromotion())
	assert.True(t, mc.IsCapture())
	assert.Equal(t, "d7e8n", mc.String())
}

func TestMoveNoneString(t *testing.T) {
	assert.Equal(t, "0000", MoveNone.String())
}
