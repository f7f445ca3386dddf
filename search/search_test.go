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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/milky/logging"
	"github.com/frankkopp/milky/position"
	"github.com/frankkopp/milky/timemanager"
)

var logTest = logging.GetLog("test")

func TestSearch_IsReady(t *testing.T) {
	s := NewSearch()
	s.IsReady()
}

func TestBuildTimeParams(t *testing.T) {
	s := NewSearch()

	p, err := position.NewFromFEN(position.StartFEN)
	assert.NoError(t, err)
	sl := &SearchLimits{
		TimeControl: true,
		WhiteTime:   60 * time.Second,
		BlackTime:   60 * time.Second,
		WhiteInc:    2 * time.Second,
		BlackInc:    2 * time.Second,
		MovesToGo:   20,
	}
	params := s.buildTimeParams(p, sl)
	clock := timemanager.NewClock()
	clock.Start(params, time.Now())
	assert.EqualValues(t, 4500, clock.TimeLimit().Milliseconds())

	// without an explicit MovesToGo the estimate is derived from the
	// board's remaining non-pawn material; a bit less time is budgeted per
	// move than when MovesToGo is given directly, since more moves are
	// assumed to remain in a full board.
	sl = &SearchLimits{
		TimeControl: true,
		WhiteTime:   60 * time.Second,
		BlackTime:   60 * time.Second,
		WhiteInc:    2 * time.Second,
		BlackInc:    2 * time.Second,
	}
	clock = timemanager.NewClock()
	clock.Start(s.buildTimeParams(p, sl), time.Now())
	timeLimit := clock.TimeLimit()
	assert.Greater(t, timeLimit.Milliseconds(), int64(1000))
	assert.Less(t, timeLimit.Milliseconds(), int64(10_000))

	// a near-empty endgame board: low non-pawn material shortens the
	// assumed moves-left estimate and so the per-move time budget grows.
	endgamePos, err := position.NewFromFEN("8/2P1P1P1/3PkP2/8/4K3/8/8/8 w - - 0 1")
	assert.NoError(t, err)
	endgameClock := timemanager.NewClock()
	endgameClock.Start(s.buildTimeParams(endgamePos, &SearchLimits{
		TimeControl: true,
		WhiteTime:   60 * time.Second,
		BlackTime:   60 * time.Second,
	}), time.Now())
	assert.Greater(t, endgameClock.TimeLimit().Milliseconds(), timeLimit.Milliseconds())
}

func TestWaitWhileSearching(t *testing.T) {
	s := NewSearch()
	p, err := position.NewFromFEN(position.StartFEN)
	assert.NoError(t, err)
	sl := NewSearchLimits()
	sl.TimeControl = true
	sl.MoveTime = 2 * time.Second

	start := time.Now()
	s.StartSearch(*p, *sl)
	logTest.Debug("Search started...waiting to finish")
	s.WaitWhileSearching()
	logTest.Debug("Search finished")
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed.Milliseconds(), int64(2_000))
}

func TestIsSearching(t *testing.T) {
	s := NewSearch()
	p, err := position.NewFromFEN(position.StartFEN)
	assert.NoError(t, err)
	sl := NewSearchLimits()
	sl.TimeControl = true
	sl.MoveTime = 2 * time.Second

	start := time.Now()
	s.StartSearch(*p, *sl)
	logTest.Debug("Check searching in 1 sec")
	time.Sleep(time.Second)
	assert.True(t, s.IsSearching())
	s.WaitWhileSearching()
	elapsed := time.Since(start)
	assert.False(t, s.IsSearching())
	assert.GreaterOrEqual(t, elapsed.Milliseconds(), int64(2_000))
}
