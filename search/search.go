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

// Package search implements iterative deepening alpha-beta search with a
// transposition table, principal variation search, null move pruning and
// late move reductions on top of the position/movegen/evaluator packages.
package search

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/milky/config"
	"github.com/frankkopp/milky/evaluator"
	"github.com/frankkopp/milky/logging"
	"github.com/frankkopp/milky/movegen"
	"github.com/frankkopp/milky/moveslice"
	"github.com/frankkopp/milky/position"
	"github.com/frankkopp/milky/timemanager"
	"github.com/frankkopp/milky/transpositiontable"
	"github.com/frankkopp/milky/types"
	"github.com/frankkopp/milky/uciInterface"
)

var out = message.NewPrinter(language.German)
var log = logging.GetSearchLog()

// Search represents the data structure for a chess engine search.
// Create new instance with NewSearch()
type Search struct {
	uciHandlerPtr uciInterface.UciDriver
	initSemaphore *semaphore.Weighted
	isRunning     *semaphore.Weighted

	tt   *transpositiontable.Table
	eval *evaluator.Evaluator

	// previous search
	lastSearchResult *Result

	// current search
	stopFlag        bool
	startTime       time.Time
	hasResult       bool
	currentPosition *position.Position
	searchLimits    *SearchLimits
	tm              timemanager.Manager
	nodesVisited    int64
	curDepth        int
	curExtraDepth   int

	// per-ply search state, one slot per MaxPly
	mg []*movegen.Movegen
	pv []*moveslice.MoveSlice

	// root move ordering: rootMoves[i] scored by rootValues[i], re-sorted
	// after every completed iteration so the best move from the previous
	// iteration is always searched first in the next one
	rootMoves  *moveslice.MoveSlice
	rootValues []types.Value

	history    [types.ColorLength][64][64]int32
	statistics *Statistics
}

// //////////////////////////////////////////////////////
// // Public
// //////////////////////////////////////////////////////

// NewSearch creates a new Search instance with no uci handler set; until
// SetUciHandler is called, output goes to the log only.
func NewSearch() *Search {
	s := &Search{
		initSemaphore: semaphore.NewWeighted(int64(1)),
		isRunning:     semaphore.NewWeighted(int64(1)),
		statistics:    NewStatistics(),
		eval:          evaluator.NewEvaluator(),
		tm:            timemanager.NewClock(),
	}
	s.mg = make([]*movegen.Movegen, types.MaxPly+1)
	s.pv = make([]*moveslice.MoveSlice, types.MaxPly+1)
	for i := range s.mg {
		s.mg[i] = movegen.NewMoveGen()
		s.mg[i].SetHistory(&s.history)
		s.pv[i] = moveslice.NewMoveSlice(types.MaxPly)
	}
	return s
}

// NewGame resets the search to be ready for a different game.
// Any caches or states will be reset.
func (s *Search) NewGame() {
	if s.tt != nil {
		s.tt.Clear()
	}
	s.history = [types.ColorLength][64][64]int32{}
	s.lastSearchResult = nil
}

// ClearHash clears the transposition table without resizing it, the
// engine-side effect of the UCI "Clear Hash" button option.
func (s *Search) ClearHash() {
	if s.tt != nil {
		s.tt.Clear()
	}
}

// ResizeCache resizes the transposition table to config.Settings.Search.TtSizeMb,
// the engine-side effect of the UCI "Hash" spin option.
func (s *Search) ResizeCache() {
	if s.tt != nil {
		s.tt.Resize(config.Settings.Search.TtSizeMb)
	}
}

// StartSearch starts the search on the given position with
// the given search limits. Search can be stopped with StopSearch().
// Search status can be checked with IsSearching().
// This takes a copy of the position and the search limits.
func (s *Search) StartSearch(p position.Position, sl SearchLimits) {
	// acquire init phase lock
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
	s.searchLimits = &sl
	s.currentPosition = &p
	go s.run(&p, &sl)
	// wait until search is running and initialization
	// is done before returning
	_ = s.initSemaphore.Acquire(context.TODO(), 1)
}

// StopSearch stops a running search as quickly as possible.
// The search stops gracefully and a result will be sent to UCI.
func (s *Search) StopSearch() {
	s.stopFlag = true
	s.WaitWhileSearching()
}

// PonderHit converts a running ponder search into a live search. The
// opponent played the move we were pondering on, so the clock for the
// configured time control starts now rather than when the search was
// launched.
func (s *Search) PonderHit() {
	if !s.IsSearching() || s.searchLimits == nil || !s.searchLimits.Ponder {
		log.Warning("Ponderhit received but engine is not pondering")
		return
	}
	log.Debug("Ponderhit - continuing ponder search as regular search")
	s.startTime = time.Now()
	s.searchLimits.Ponder = false
	if s.searchLimits.TimeControl {
		s.tm.Start(s.buildTimeParams(s.currentPosition, s.searchLimits), s.startTime)
	}
}

// IsSearching checks if search is running.
func (s *Search) IsSearching() bool {
	if !s.isRunning.TryAcquire(1) {
		return true
	}
	s.isRunning.Release(1)
	return false
}

// WaitWhileSearching checks if search is running and blocks until
// search has stopped.
func (s *Search) WaitWhileSearching() {
	_ = s.isRunning.Acquire(context.TODO(), 1)
	s.isRunning.Release(1)
}

// SetUciHandler sets the UCI handler to communicate with the
// UCI user interface. If not set output will be sent to Stdout.
func (s *Search) SetUciHandler(uciHandler uciInterface.UciDriver) {
	s.uciHandlerPtr = uciHandler
}

// SetTimeManager replaces the time manager consulted for stop decisions.
// Mostly useful for tests that want a deterministic fake instead of a
// wall-clock backed timemanager.Clock.
func (s *Search) SetTimeManager(tm timemanager.Manager) {
	s.tm = tm
}

// GetUciHandlerPtr returns the current UciHandler or nil if none is set.
func (s *Search) GetUciHandlerPtr() uciInterface.UciDriver {
	return s.uciHandlerPtr
}

// IsReady signals the uciHandler that the search is ready. This is part of
// the UCI protocol to make sure a chess engine is initialized and ready to
// receive commands.
func (s *Search) IsReady() {
	s.initialize()
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendReadyOk()
	} else {
		log.Debug("uci >> readyok")
	}
}

// LastSearchResult returns a copy of the last search result.
func (s *Search) LastSearchResult() Result {
	return *s.lastSearchResult
}

// NodesVisited returns the number of nodes visited by the current or most
// recently finished search. Mostly useful for an nps benchmark.
func (s *Search) NodesVisited() int64 {
	return s.nodesVisited
}

// //////////////////////////////////////////////////////
// // Private
// //////////////////////////////////////////////////////

// run is called by StartSearch() in a separate goroutine. It runs the
// actual search until a search limit is reached or the search has been
// stopped by StopSearch().
func (s *Search) run(pos *position.Position, sl *SearchLimits) {
	if !s.isRunning.TryAcquire(1) {
		log.Error("Search already running")
		return
	}
	defer s.isRunning.Release(1)

	s.startTime = time.Now()
	s.initialize()
	s.hasResult = false
	s.stopFlag = false
	s.nodesVisited = 0
	s.curDepth = 0
	s.curExtraDepth = 0
	s.statistics.Reset()

	s.setupSearchLimits(pos, sl)

	if s.tt != nil {
		log.Debugf("Transposition Table: Using TT (%s)", s.tt.String())
		s.tt.AgeEntries()
	} else {
		log.Debug("Transposition Table: Not using TT")
	}

	// release the init phase lock to signal the calling goroutine
	// waiting in StartSearch() to return
	s.initSemaphore.Release(1)

	searchResult := s.iterativeDeepening(pos)

	// If we arrive here and the search is not stopped it means that the
	// search was finished before it was stopped by stopSearchFlag or
	// ponderhit. We wait here until told to stop.
	if !s.stopFlag && (s.searchLimits.Ponder || s.searchLimits.Infinite) {
		log.Debug("Search finished before stopped or ponderhit! Waiting for stop/ponderhit to send result")
		for !s.stopFlag && (s.searchLimits.Ponder || s.searchLimits.Infinite) {
			time.Sleep(5 * time.Millisecond)
		}
	}

	searchResult.SearchTime = time.Since(s.startTime)

	s.sendResult(searchResult)

	s.lastSearchResult = searchResult
	s.hasResult = true

	log.Info(out.Sprintf("Search finished after %d ms ", searchResult.SearchTime.Milliseconds()))
	log.Info(out.Sprintf("Search depth was %d(%d) with %d nodes visited. NPS = %d nps",
		s.curDepth, s.curExtraDepth, s.nodesVisited,
		(s.nodesVisited*time.Second.Nanoseconds())/(1+searchResult.SearchTime.Nanoseconds())))
	log.Infof("Search result: %s", searchResult.String())

	s.stopFlag = true
}

// iterativeDeepening repeatedly searches the root position at increasing
// depths, feeding each iteration's best move back in as move ordering for
// the next, and narrowing the alpha-beta window around the previous
// iteration's score (aspiration windows) once a score is available.
func (s *Search) iterativeDeepening(p *position.Position) *Result {
	s.rootMoves = s.mg[0].GenerateLegalMoves(p, movegen.GenAll)
	s.rootValues = make([]types.Value, s.rootMoves.Len())

	result := &Result{BestMove: types.MoveNone}
	if s.rootMoves.Len() == 0 {
		return result
	}
	result.BestMove = s.rootMoves.At(0)

	maxDepth := s.searchLimits.Depth
	if maxDepth <= 0 || maxDepth > types.MaxPly {
		maxDepth = types.MaxPly
	}

	var lastValue = types.ValueNone

	for depth := 1; depth <= maxDepth; depth++ {
		s.curDepth = depth
		s.statistics.CurrentSearchDepth = depth

		alpha, beta := -types.ValueInfinite, types.ValueInfinite
		window := types.Value(config.Settings.Search.AspirationWindow)
		if lastValue.IsValid() && window > 0 && depth > 1 {
			alpha = lastValue - window
			beta = lastValue + window
		}

		prevPV := result.Pv.Clone()

		var value types.Value
		for {
			value = s.rootSearch(p, depth, alpha, beta, prevPV)
			if s.stopConditions() {
				break
			}
			if value <= alpha {
				// a fail-low at the root usually means trouble ahead; grant
				// some extra thinking time before the research
				s.sendAspirationResearchToUci(depth, value, types.ValueTypeAlpha)
				s.addExtraTime(0.3)
				alpha = -types.ValueInfinite
				continue
			}
			if value >= beta {
				s.sendAspirationResearchToUci(depth, value, types.ValueTypeBeta)
				beta = types.ValueInfinite
				continue
			}
			break
		}

		if s.stopConditions() && depth > 1 {
			break
		}

		lastValue = value
		s.sortRootMoves()

		result.BestMove = s.rootMoves.At(0)
		result.BestValue = value
		result.SearchDepth = depth
		result.ExtraDepth = s.statistics.CurrentExtraSearchDepth
		result.Pv = *s.pv[0].Clone()
		if result.Pv.Len() > 1 {
			result.PonderMove = result.Pv.At(1)
		}

		s.sendIterationEndToUci(result)

		s.sendSearchUpdateToUci()

		if value.IsMateValue() {
			break
		}
		if s.stopConditions() {
			break
		}
	}

	return result
}

// sortRootMoves stable-sorts rootMoves/rootValues into descending value
// order using simple insertion sort: the list is short (at most the number
// of legal moves in the position) and is already near-sorted after the
// first iteration.
func (s *Search) sortRootMoves() {
	n := s.rootMoves.Len()
	for i := 1; i < n; i++ {
		move := s.rootMoves.At(i)
		value := s.rootValues[i]
		j := i - 1
		for j >= 0 && s.rootValues[j] < value {
			s.rootMoves.Set(j+1, s.rootMoves.At(j))
			s.rootValues[j+1] = s.rootValues[j]
			j--
		}
		s.rootMoves.Set(j+1, move)
		s.rootValues[j+1] = value
	}
}

// initialize sets up the transposition table and other potentially time
// consuming setup tasks. This can be called several times without doing
// initialization again.
func (s *Search) initialize() {
	if config.Settings.Search.UseTT {
		if s.tt == nil {
			sizeInMByte := config.Settings.Search.TtSizeMb
			if sizeInMByte == 0 {
				sizeInMByte = 64
			}
			s.tt = transpositiontable.New(sizeInMByte)
		}
	} else {
		log.Info("Transposition Table is disabled in configuration")
	}
}

// stopConditions is the search's cooperative poll point: called at node
// entry and between root moves, never on a separate goroutine, it consults
// the time manager rather than reading the wall clock directly.
func (s *Search) stopConditions() bool {
	if s.stopFlag {
		return true
	}
	if s.searchLimits.Nodes > 0 && s.nodesVisited >= s.searchLimits.Nodes {
		s.stopFlag = true
	}
	if s.tm != nil && s.tm.ShouldStop(s.curDepth, s.nodesVisited) {
		s.stopFlag = true
	}
	return s.stopFlag
}

func (s *Search) setupSearchLimits(pos *position.Position, sl *SearchLimits) {
	if sl.Infinite {
		log.Debug("Search mode: Infinite")
	}
	if sl.Ponder {
		log.Debug("Search mode: Ponder")
	}
	if sl.Mate > 0 {
		log.Debugf("Search mode: Search for mate in %d", sl.Mate)
	}
	if sl.Ponder {
		// while pondering the clock must not run; PonderHit() starts the
		// real time control when the expected move is actually played
		s.tm.Start(timemanager.Params{Control: timemanager.ControlInfinite}, s.startTime)
	} else if sl.TimeControl {
		params := s.buildTimeParams(pos, sl)
		s.tm.Start(params, s.startTime)
		if sl.MoveTime > 0 {
			log.Debug(out.Sprintf("Search mode: Time controlled: Time per move %d ms", sl.MoveTime.Milliseconds()))
		} else {
			log.Debug(out.Sprintf("Search mode: Time controlled: White = %d ms (inc %d ms) Black = %d ms (inc %d ms) Moves to go: %d",
				sl.WhiteTime.Milliseconds(), sl.WhiteInc.Milliseconds(),
				sl.BlackTime.Milliseconds(), sl.BlackInc.Milliseconds(),
				sl.MovesToGo))
			log.Debug(out.Sprintf("Search mode: Time limit     : %d ms", s.tm.TimeLimit().Milliseconds()))
		}
	} else if sl.Depth > 0 {
		s.tm.Start(timemanager.Params{Control: timemanager.ControlFixedDepth, Depth: sl.Depth}, s.startTime)
	} else if sl.Nodes > 0 {
		s.tm.Start(timemanager.Params{Control: timemanager.ControlFixedNodes, Nodes: sl.Nodes}, s.startTime)
	} else if sl.Mate > 0 {
		s.tm.Start(timemanager.Params{Control: timemanager.ControlMateIn, MateMoves: sl.Mate}, s.startTime)
	} else {
		s.tm.Start(timemanager.Params{Control: timemanager.ControlInfinite}, s.startTime)
	}
	if !sl.TimeControl {
		log.Debug("Search mode: No time control")
	}
	if sl.Depth > 0 {
		log.Debugf("Search mode: Depth limited  : %d", sl.Depth)
	}
	if sl.Nodes > 0 {
		log.Debug(out.Sprintf("Search mode: Nodes limited  : %d", sl.Nodes))
	}
	if sl.Moves.Len() > 0 {
		log.Debug(out.Sprintf("Search mode: Moves limited  : %s", sl.Moves.StringUci()))
	}
}

// buildTimeParams resolves a SearchLimits' time-control fields to the side
// to move and estimates moves-to-go from remaining non-pawn material when
// the GUI did not supply movestogo.
func (s *Search) buildTimeParams(p *position.Position, sl *SearchLimits) timemanager.Params {
	if sl.MoveTime > 0 {
		return timemanager.Params{Control: timemanager.ControlMoveTime, MoveTime: sl.MoveTime}
	}

	movesToGo := sl.MovesToGo
	if movesToGo <= 0 {
		phase := p.NonPawnMaterial(types.White) + p.NonPawnMaterial(types.Black)
		movesToGo = 10 + (30 * phase / (2 * types.GamePhaseMax))
	}

	var timeLeft, increment time.Duration
	switch p.SideToMove() {
	case types.White:
		timeLeft, increment = sl.WhiteTime, sl.WhiteInc
	case types.Black:
		timeLeft, increment = sl.BlackTime, sl.BlackInc
	}

	return timemanager.Params{
		Control:   timemanager.ControlConventional,
		TimeLeft:  timeLeft,
		Increment: increment,
		MovesToGo: movesToGo,
	}
}

// addExtraTime nudges the current Conventional time budget, used when a
// root fail-low/fail-high suggests the position deserves more thought than
// the original estimate budgeted.
func (s *Search) addExtraTime(f float64) {
	if s.searchLimits.TimeControl && s.searchLimits.MoveTime == 0 {
		s.tm.AddExtraTime(f)
		log.Debug(out.Sprintf("Time budget adjusted by factor %.2f", f))
	}
}

func (s *Search) sendResult(searchResult *Result) {
	if s.uciHandlerPtr != nil {
		s.uciHandlerPtr.SendResult(searchResult.BestMove, searchResult.PonderMove)
	}
}

func (s *Search) sendIterationEndToUci(result *Result) {
	if s.uciHandlerPtr == nil {
		return
	}
	elapsed := time.Since(s.startTime)
	nps := uint64(0)
	if elapsed.Nanoseconds() > 0 {
		nps = uint64(s.nodesVisited) * uint64(time.Second.Nanoseconds()) / uint64(elapsed.Nanoseconds())
	}
	s.uciHandlerPtr.SendIterationEndInfo(result.SearchDepth, result.ExtraDepth, result.BestValue,
		uint64(s.nodesVisited), nps, elapsed, result.Pv)
}

// sendAspirationResearchToUci reports a fail-low/fail-high against the
// current aspiration window, before the window is widened and the same
// depth is searched again.
func (s *Search) sendAspirationResearchToUci(depth int, value types.Value, valueType types.ValueType) {
	if s.uciHandlerPtr == nil {
		return
	}
	elapsed := time.Since(s.startTime)
	nps := uint64(0)
	if elapsed.Nanoseconds() > 0 {
		nps = uint64(s.nodesVisited) * uint64(time.Second.Nanoseconds()) / uint64(elapsed.Nanoseconds())
	}
	s.uciHandlerPtr.SendAspirationResearchInfo(depth, s.statistics.CurrentExtraSearchDepth, value, valueType,
		uint64(s.nodesVisited), nps, elapsed, *s.pv[0])
}

func (s *Search) sendSearchUpdateToUci() {
	if s.uciHandlerPtr == nil {
		return
	}
	elapsed := time.Since(s.startTime)
	nps := uint64(0)
	if elapsed.Nanoseconds() > 0 {
		nps = uint64(s.nodesVisited) * uint64(time.Second.Nanoseconds()) / uint64(elapsed.Nanoseconds())
	}
	hashfull := 0
	if s.tt != nil {
		hashfull = s.tt.Hashfull()
	}
	s.uciHandlerPtr.SendSearchUpdate(s.curDepth, s.curExtraDepth, uint64(s.nodesVisited), nps, elapsed, hashfull)
}

// checkDrawRepAnd50 reports whether pos is a draw by the fifty-move rule
// or by repetition. A single earlier occurrence of the current key counts:
// the recorded history spans both the game moves and the search path, so
// any line that revisits a position can claim the draw score right away
// instead of waiting for a formal threefold.
func (s *Search) checkDrawRepAnd50(pos *position.Position) bool {
	return pos.IsFiftyMoveDraw() || pos.IsRepetition()
}
