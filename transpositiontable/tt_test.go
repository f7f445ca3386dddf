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

package transpositiontable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/milky/position"
	"github.com/frankkopp/milky/types"
)

func TestNewSizesToPowerOfTwo(t *testing.T) {
	// 24-byte entries: the entry count is the largest power of two whose
	// total byte size still fits the requested budget
	tt := New(2)
	assert.Equal(t, uint64(65_536), tt.maxEntries)
	assert.Equal(t, 65_536, cap(tt.data))

	tt = New(64)
	assert.Equal(t, uint64(2_097_152), tt.maxEntries)

	tt = New(100)
	assert.Equal(t, uint64(4_194_304), tt.maxEntries)
}

func TestGetAndProbe(t *testing.T) {
	tt := New(4)
	pos := position.New()
	move := types.MoveDoublePawnPush(types.SqE2, types.SqE4, types.WhitePawn)

	tt.data[tt.hash(pos.ZobristKey())] = Entry{
		Key:   pos.ZobristKey(),
		Move:  move,
		Value: 5,
		Depth: 5,
		Age:   1,
		Type:  types.ValueTypeExact,
	}
	tt.numEntries++

	e := tt.GetEntry(pos.ZobristKey())
	assert.Equal(t, pos.ZobristKey(), e.Key)
	assert.Equal(t, move, e.Move)
	assert.EqualValues(t, 5, e.Depth)
	assert.EqualValues(t, 1, e.Age)

	e = tt.Probe(pos.ZobristKey())
	assert.EqualValues(t, 0, e.Age)

	e = tt.Probe(pos.ZobristKey())
	assert.EqualValues(t, 0, e.Age)

	pos.DoMove(move)
	assert.Nil(t, tt.Probe(pos.ZobristKey()))
}

func TestClear(t *testing.T) {
	tt := New(1)
	pos := position.New()
	move := types.MoveDoublePawnPush(types.SqE2, types.SqE4, types.WhitePawn)

	tt.Put(pos.ZobristKey(), move, 5, 5, types.ValueTypeExact, false)
	assert.EqualValues(t, 1, tt.Len())

	tt.Clear()
	assert.Nil(t, tt.Probe(pos.ZobristKey()))
	assert.EqualValues(t, 0, tt.Len())
}

func TestAgeEntries(t *testing.T) {
	tt := New(1)
	tt.data[0] = Entry{Key: 1, Age: 0}
	tt.data[1] = Entry{Key: 2, Age: 1}
	tt.numEntries = 2

	tt.AgeEntries()

	assert.EqualValues(t, 1, tt.data[0].Age)
	assert.EqualValues(t, 2, tt.data[1].Age)
}

func TestPutAndOverwrite(t *testing.T) {
	tt := New(4)
	move := types.MoveDoublePawnPush(types.SqE2, types.SqE4, types.WhitePawn)

	tt.Put(111, move, 111, 4, types.ValueTypeAlpha, false)
	assert.EqualValues(t, 1, tt.Len())
	assert.EqualValues(t, 1, tt.Stats.Puts)
	e := tt.Probe(111)
	assert.EqualValues(t, 111, e.Key)
	assert.EqualValues(t, 111, e.Value)
	assert.EqualValues(t, 4, e.Depth)
	assert.Equal(t, types.ValueTypeAlpha, e.Type)

	tt.Put(111, move, 112, 5, types.ValueTypeBeta, true)
	assert.EqualValues(t, 1, tt.Len())
	assert.EqualValues(t, 1, tt.Stats.Updates)
	e = tt.Probe(111)
	assert.EqualValues(t, 112, e.Value)
	assert.EqualValues(t, 5, e.Depth)

	collisionKey := uint64(111) + tt.maxEntries
	tt.Put(collisionKey, move, 113, 6, types.ValueTypeExact, false)
	assert.EqualValues(t, 1, tt.Len())
	assert.EqualValues(t, 1, tt.Stats.Collisions)
	assert.EqualValues(t, 1, tt.Stats.Overwrites)
	e = tt.Probe(collisionKey)
	assert.EqualValues(t, collisionKey, e.Key)
	assert.EqualValues(t, 113, e.Value)

	lowerDepthKey := uint64(111) + 2*tt.maxEntries
	tt.Put(lowerDepthKey, move, 114, 4, types.ValueTypeBeta, false)
	assert.Nil(t, tt.Probe(lowerDepthKey))
	e = tt.Probe(collisionKey)
	assert.EqualValues(t, collisionKey, e.Key)
}

func TestHashfull(t *testing.T) {
	tt := New(0)
	assert.Equal(t, 0, tt.Hashfull())
}
