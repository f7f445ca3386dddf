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

package uci

import (
	"bufio"
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/milky/config"
	"github.com/frankkopp/milky/position"
)

func TestMain(m *testing.M) {
	config.Setup()
	os.Exit(m.Run())
}

func goTokens(cmd string) []string {
	return strings.Fields(cmd)
}

func TestNewUciHandler(t *testing.T) {
	u := NewUciHandler()
	assert.Same(t, u, u.mySearch.GetUciHandlerPtr())
}

func TestUciHandler_Loop(t *testing.T) {
	u := NewUciHandler()
	u.InIo = bufio.NewScanner(strings.NewReader("uci\nquit\n"))
	buffer := new(bytes.Buffer)
	u.OutIo = bufio.NewWriter(buffer)
	u.Loop()
	assert.Contains(t, buffer.String(), "uciok")
}

func TestUciCommand(t *testing.T) {
	u := NewUciHandler()
	result := u.Command("uci")
	assert.Contains(t, result, "id name MilkyGo")
	assert.Contains(t, result, "option name Hash")
	assert.Contains(t, result, "uciok")
}

func TestIsReadyCommand(t *testing.T) {
	u := NewUciHandler()
	assert.Contains(t, u.Command("isready"), "readyok")
}

func TestSetOptionCommand(t *testing.T) {
	u := NewUciHandler()

	u.Command("setoption name Hash value 128")
	assert.EqualValues(t, 128, config.Settings.Search.TtSizeMb)

	u.Command("setoption name Ponder value false")
	assert.False(t, config.Settings.Search.UsePonder)
	u.Command("setoption name Ponder value true")
	assert.True(t, config.Settings.Search.UsePonder)

	result := u.Command("setoption name No_Such_Option value 1")
	assert.Contains(t, result, "No such option")

	result = u.Command("setoption Hash value 64")
	assert.Contains(t, result, "malformed")

	// restore default
	u.Command("setoption name Hash value 64")
}

func TestPositionCommand(t *testing.T) {
	u := NewUciHandler()

	u.Command("position startpos")
	assert.EqualValues(t, position.StartFEN, u.myPosition.StringFen())

	u.Command("position fen " + position.StartFEN)
	assert.EqualValues(t, position.StartFEN, u.myPosition.StringFen())

	result := u.Command("position fen")
	assert.Contains(t, result, "malformed")

	u.Command("position fen " + position.StartFEN + "  moves     e2e4 e7e5 g1f3 b8c6")
	assert.EqualValues(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		u.myPosition.StringFen())

	// e7e5 is not a legal first move for this position
	result = u.Command("position fen " + position.StartFEN + "  moves e7e5 g1f3 b8c6")
	assert.Contains(t, result, "Invalid move")

	u.Command("position startpos  moves  e2e4 e7e5 g1f3 b8c6")
	assert.EqualValues(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		u.myPosition.StringFen())
}

func TestReadSearchLimits(t *testing.T) {
	u := NewUciHandler()

	sl, ok := u.readSearchLimits(goTokens("go infinite"))
	assert.True(t, ok)
	assert.True(t, sl.Infinite)
	assert.False(t, sl.TimeControl)

	sl, ok = u.readSearchLimits(goTokens("go infinite searchmoves e2e4 d2d4"))
	assert.True(t, ok)
	assert.True(t, sl.Infinite)
	assert.EqualValues(t, "e2e4 d2d4", sl.Moves.StringUci())

	sl, ok = u.readSearchLimits(goTokens("go searchmoves e2e4 d2d4 infinite"))
	assert.True(t, ok)
	assert.True(t, sl.Infinite)
	assert.EqualValues(t, "e2e4 d2d4", sl.Moves.StringUci())

	sl, ok = u.readSearchLimits(goTokens("go ponder"))
	assert.True(t, ok)
	assert.True(t, sl.Ponder)

	sl, ok = u.readSearchLimits(goTokens("go depth 6"))
	assert.True(t, ok)
	assert.EqualValues(t, 6, sl.Depth)
	assert.False(t, sl.TimeControl)

	sl, ok = u.readSearchLimits(goTokens("go nodes 10000000"))
	assert.True(t, ok)
	assert.EqualValues(t, 10_000_000, sl.Nodes)

	sl, ok = u.readSearchLimits(goTokens("go mate 4"))
	assert.True(t, ok)
	assert.EqualValues(t, 4, sl.Mate)

	sl, ok = u.readSearchLimits(goTokens("go depth 6 mate 4"))
	assert.True(t, ok)
	assert.EqualValues(t, 6, sl.Depth)
	assert.EqualValues(t, 4, sl.Mate)

	// missing depth value
	_, ok = u.readSearchLimits(goTokens("go depth mate 4"))
	assert.False(t, ok)

	sl, ok = u.readSearchLimits(goTokens("go movetime 5000"))
	assert.True(t, ok)
	assert.EqualValues(t, 5000, sl.MoveTime.Milliseconds())
	assert.True(t, sl.TimeControl)

	sl, ok = u.readSearchLimits(goTokens("go movetime 5000 depth 6 nodes 1000000"))
	assert.True(t, ok)
	assert.EqualValues(t, 5000, sl.MoveTime.Milliseconds())
	assert.EqualValues(t, 6, sl.Depth)
	assert.EqualValues(t, 1_000_000, sl.Nodes)
	assert.True(t, sl.TimeControl)

	// unknown subcommand
	_, ok = u.readSearchLimits(goTokens("go movetime 5000 depth 6 nodex 1000000"))
	assert.False(t, ok)

	sl, ok = u.readSearchLimits(goTokens("go wtime 60000 btime 60000 winc 2000 binc 2000 movestogo 20"))
	assert.True(t, ok)
	assert.EqualValues(t, 60000, sl.WhiteTime.Milliseconds())
	assert.EqualValues(t, 60000, sl.BlackTime.Milliseconds())
	assert.EqualValues(t, 2000, sl.WhiteInc.Milliseconds())
	assert.EqualValues(t, 2000, sl.BlackInc.Milliseconds())
	assert.EqualValues(t, 20, sl.MovesToGo)
	assert.True(t, sl.TimeControl)

	// no effective limit at all
	_, ok = u.readSearchLimits(goTokens("go winc 2000 binc 2000 movestogo 20"))
	assert.False(t, ok)

	// white to move but no white time
	_, ok = u.readSearchLimits(goTokens("go btime 60000"))
	assert.False(t, ok)
}

func TestFullSearchProcess(t *testing.T) {
	u := NewUciHandler()

	result := u.Command("uci")
	assert.Contains(t, result, "id name MilkyGo")
	assert.Contains(t, result, "uciok")

	assert.Contains(t, u.Command("isready"), "readyok")

	u.Command("position startpos moves e2e4 e7e5")
	assert.EqualValues(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2",
		u.myPosition.StringFen())

	u.Command("go wtime 60000 btime 60000 winc 2000 binc 2000 depth 4")
	assert.True(t, u.mySearch.IsSearching())
	u.mySearch.WaitWhileSearching()
	assert.True(t, u.mySearch.LastSearchResult().BestMove.IsValid())

	u.Command("quit")
}

func TestInfiniteStoppedByCommand(t *testing.T) {
	u := NewUciHandler()

	u.Command("position startpos moves e2e4 e7e5")

	u.Command("go infinite")
	assert.True(t, u.mySearch.IsSearching())

	time.Sleep(500 * time.Millisecond)

	u.Command("stop")
	u.mySearch.WaitWhileSearching()
	assert.False(t, u.mySearch.IsSearching())
}

func TestPonderhitFinishesSearch(t *testing.T) {
	u := NewUciHandler()

	u.Command("position startpos moves e2e4")

	u.Command("go ponder movetime 1000")
	assert.True(t, u.mySearch.IsSearching())

	time.Sleep(100 * time.Millisecond)
	u.Command("ponderhit")

	u.mySearch.WaitWhileSearching()
	assert.False(t, u.mySearch.IsSearching())
	assert.True(t, u.mySearch.LastSearchResult().BestMove.IsValid())
}
