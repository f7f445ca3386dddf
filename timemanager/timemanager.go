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

// Package timemanager decides, for one search, when the engine should stop
// deepening. It is the only part of the engine that consults the wall
// clock: the search itself only ever asks a Manager "should I stop now"
// through cooperative polling, never a concrete clock read inside negamax.
package timemanager

import "time"

// Control enumerates the kinds of search budget a "go" command can hand to
// a Manager.
type Control int

const (
	// ControlInfinite searches until told to stop; ShouldStop never fires
	// on its own.
	ControlInfinite Control = iota
	// ControlMoveTime allots a fixed duration to this move.
	ControlMoveTime
	// ControlConventional derives a per-move budget from the clock each
	// side has left, an increment, and an estimated moves-to-go.
	ControlConventional
	// ControlFixedDepth stops once a given depth has been searched.
	ControlFixedDepth
	// ControlFixedNodes stops once a given node count has been visited.
	ControlFixedNodes
	// ControlMateIn searches for a mate within a given number of moves,
	// stopping once twice that many plies have been searched without one.
	ControlMateIn
)

// Params describes one search's time budget. Which fields are read depends
// on Control.
type Params struct {
	Control Control

	// ControlMoveTime
	MoveTime time.Duration

	// ControlConventional: TimeLeft/Increment are already resolved to the
	// side to move; MovesToGo is an already-resolved estimate (the caller
	// derives it from remaining non-pawn material when the GUI did not
	// supply movestogo), never zero when Control is ControlConventional.
	TimeLeft  time.Duration
	Increment time.Duration
	MovesToGo int

	// ControlFixedDepth
	Depth int
	// ControlFixedNodes
	Nodes int64
	// ControlMateIn
	MateMoves int
}

// Manager is the interface the search core consults. A Manager is started
// once per search and polled repeatedly via ShouldStop; AddExtraTime lets
// the search grant itself a bit more (or less) of a Conventional budget
// when the position demands it (e.g. a fail-low at the root).
type Manager interface {
	Start(p Params, startTime time.Time)
	ShouldStop(depth int, nodes int64) bool
	AddExtraTime(factor float64)
	TimeLimit() time.Duration
}

// Clock is the wall-clock-backed Manager the engine uses outside of tests
// that want a deterministic fake.
type Clock struct {
	params      Params
	startTime   time.Time
	stopTime    time.Time
	hasStopTime bool
	extraTime   time.Duration
}

// NewClock returns a ready-to-Start Clock.
func NewClock() *Clock {
	return &Clock{}
}

// Start computes the stop time (or the depth/node/mate ceiling) for a new
// search under p, beginning at startTime.
func (c *Clock) Start(p Params, startTime time.Time) {
	c.params = p
	c.startTime = startTime
	c.extraTime = 0
	c.hasStopTime = false

	switch p.Control {
	case ControlMoveTime:
		c.stopTime = startTime.Add(p.MoveTime)
		c.hasStopTime = true
	case ControlConventional:
		movesLeft := int64(p.MovesToGo)
		if movesLeft <= 0 {
			movesLeft = 1
		}
		timeLeft := p.TimeLeft + time.Duration(movesLeft*p.Increment.Nanoseconds())
		timeLimit := time.Duration(timeLeft.Nanoseconds() / movesLeft)
		if timeLimit.Milliseconds() < 100 {
			timeLimit = time.Duration(int64(0.8 * float64(timeLimit.Nanoseconds())))
		} else {
			timeLimit = time.Duration(int64(0.9 * float64(timeLimit.Nanoseconds())))
		}
		c.stopTime = startTime.Add(timeLimit)
		c.hasStopTime = true
	}
}

// ShouldStop reports whether the search should stop now, given the depth
// just entered and the total nodes visited so far.
func (c *Clock) ShouldStop(depth int, nodes int64) bool {
	if c.hasStopTime {
		return !time.Now().Before(c.stopTime.Add(c.extraTime))
	}
	switch c.params.Control {
	case ControlFixedDepth:
		// the iteration for the limit depth itself must still complete
		return depth > c.params.Depth
	case ControlFixedNodes:
		return nodes >= c.params.Nodes
	case ControlMateIn:
		return depth > c.params.MateMoves*2
	}
	return false
}

// AddExtraTime nudges a wall-clock budget (Conventional or MoveTime) by
// factor (positive grants more time, negative less), relative to the
// originally computed time limit. It has no effect under the depth, node,
// mate or infinite Controls.
func (c *Clock) AddExtraTime(factor float64) {
	if c.hasStopTime {
		c.extraTime += time.Duration(factor * float64(c.stopTime.Sub(c.startTime)))
	}
}

// TimeLimit returns the originally computed budget for this search, or 0
// if this Control has no wall-clock budget.
func (c *Clock) TimeLimit() time.Duration {
	if c.hasStopTime {
		return c.stopTime.Sub(c.startTime)
	}
	return 0
}
