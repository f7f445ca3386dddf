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

package timemanager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock_Conventional(t *testing.T) {
	c := NewClock()
	start := time.Now()
	c.Start(Params{
		Control:   ControlConventional,
		TimeLeft:  60 * time.Second,
		Increment: 2 * time.Second,
		MovesToGo: 20,
	}, start)
	assert.EqualValues(t, 4500, c.TimeLimit().Milliseconds())
	assert.False(t, c.ShouldStop(1, 0))
}

func TestClock_MoveTime(t *testing.T) {
	c := NewClock()
	start := time.Now()
	c.Start(Params{Control: ControlMoveTime, MoveTime: 50 * time.Millisecond}, start)
	assert.False(t, c.ShouldStop(1, 0))
	time.Sleep(60 * time.Millisecond)
	assert.True(t, c.ShouldStop(1, 0))
}

func TestClock_FixedDepth(t *testing.T) {
	c := NewClock()
	c.Start(Params{Control: ControlFixedDepth, Depth: 5}, time.Now())
	assert.False(t, c.ShouldStop(5, 0))
	assert.True(t, c.ShouldStop(6, 0))
}

func TestClock_FixedNodes(t *testing.T) {
	c := NewClock()
	c.Start(Params{Control: ControlFixedNodes, Nodes: 1000}, time.Now())
	assert.False(t, c.ShouldStop(1, 999))
	assert.True(t, c.ShouldStop(1, 1000))
}

func TestClock_MateIn(t *testing.T) {
	c := NewClock()
	c.Start(Params{Control: ControlMateIn, MateMoves: 3}, time.Now())
	assert.False(t, c.ShouldStop(6, 0))
	assert.True(t, c.ShouldStop(7, 0))
}

func TestClock_Infinite(t *testing.T) {
	c := NewClock()
	c.Start(Params{Control: ControlInfinite}, time.Now())
	assert.False(t, c.ShouldStop(100, 1_000_000))
}

func TestClock_AddExtraTime(t *testing.T) {
	c := NewClock()
	start := time.Now()
	c.Start(Params{Control: ControlMoveTime, MoveTime: 50 * time.Millisecond}, start)
	c.AddExtraTime(1.0)
	time.Sleep(60 * time.Millisecond)
	assert.False(t, c.ShouldStop(1, 0))
	time.Sleep(60 * time.Millisecond)
	assert.True(t, c.ShouldStop(1, 0))
}
