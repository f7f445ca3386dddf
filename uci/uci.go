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

// Package uci implements the line-oriented UCI protocol between a chess
// user interface and the engine: a read loop over stdin (or any reader),
// command dispatch, and the outbound "info"/"bestmove" reporting the
// search package needs a driver for.
package uci

import (
	"bufio"
	"bytes"
	"fmt"
	golog "log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	logging2 "github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/milky/config"
	"github.com/frankkopp/milky/logging"
	"github.com/frankkopp/milky/movegen"
	"github.com/frankkopp/milky/moveslice"
	"github.com/frankkopp/milky/position"
	"github.com/frankkopp/milky/search"
	. "github.com/frankkopp/milky/types"
	"github.com/frankkopp/milky/uciInterface"
	"github.com/frankkopp/milky/version"
)

var out = message.NewPrinter(language.German)
var log = logging.GetLog("uci")

// UciHandler reads UCI commands from InIo, dispatches them to the search
// and move generator it owns, and writes all protocol responses to OutIo.
// Create an instance with NewUciHandler().
type UciHandler struct {
	InIo       *bufio.Scanner
	OutIo      *bufio.Writer
	myMoveGen  *movegen.Movegen
	mySearch   *search.Search
	myPosition *position.Position
	myPerft    *movegen.Perft
	uciLog     *logging2.Logger
}

// ///////////////////////////////////////////////////////////
// Public
// ///////////////////////////////////////////////////////////

// NewUciHandler creates a new UciHandler reading from Stdin and writing to
// Stdout. Both streams can be swapped out afterwards through the InIo and
// OutIo members, which the unit tests use to feed scripted command lines.
func NewUciHandler() *UciHandler {
	u := &UciHandler{
		InIo:       bufio.NewScanner(os.Stdin),
		OutIo:      bufio.NewWriter(os.Stdout),
		myMoveGen:  movegen.NewMoveGen(),
		mySearch:   search.NewSearch(),
		myPosition: position.New(),
		myPerft:    movegen.NewPerft(),
		uciLog:     getUciLog(),
	}
	var driver uciInterface.UciDriver = u
	u.mySearch.SetUciHandler(driver)
	return u
}

// Loop reads and handles commands from InIo until "quit" is received
// or the input stream is closed.
func (u *UciHandler) Loop() {
	for u.InIo.Scan() {
		if u.handleReceivedCommand(u.InIo.Text()) {
			return
		}
	}
}

// Command handles a single command line and returns everything the engine
// wrote in response. Used by unit tests to drive the handler without a
// real input stream.
func (u *UciHandler) Command(cmd string) string {
	saved := u.OutIo
	buffer := new(bytes.Buffer)
	u.OutIo = bufio.NewWriter(buffer)
	u.handleReceivedCommand(cmd)
	_ = u.OutIo.Flush()
	u.OutIo = saved
	return buffer.String()
}

// SendReadyOk sends "readyok", the response to the "isready" handshake.
func (u *UciHandler) SendReadyOk() {
	u.send("readyok")
}

// SendInfoString sends an arbitrary message to the UCI user interface
// wrapped in an "info string" line.
func (u *UciHandler) SendInfoString(info string) {
	u.send("info string " + info)
}

// SendIterationEndInfo reports the result of a completed iterative
// deepening iteration: depth, score and the principal variation.
func (u *UciHandler) SendIterationEndInfo(depth int, seldepth int, value Value, nodes uint64, nps uint64, time time.Duration, pv moveslice.MoveSlice) {
	u.send(fmt.Sprintf("info depth %d seldepth %d multipv 1 score %s nodes %d nps %d time %d pv %s",
		depth, seldepth, value.String(), nodes, nps, time.Milliseconds(), pv.StringUci()))
}

// SendSearchUpdate reports periodic search statistics while an iteration
// is still running.
func (u *UciHandler) SendSearchUpdate(depth int, seldepth int, nodes uint64, nps uint64, time time.Duration, hashfull int) {
	u.send(fmt.Sprintf("info depth %d seldepth %d nodes %d nps %d time %d hashfull %d",
		depth, seldepth, nodes, nps, time.Milliseconds(), hashfull))
}

// SendAspirationResearchInfo reports a fail-low/fail-high against the
// aspiration window before the same depth is searched again with a wider
// window. The score is marked as a bound per the UCI protocol.
func (u *UciHandler) SendAspirationResearchInfo(depth int, seldepth int, value Value, valueType ValueType, nodes uint64, nps uint64, time time.Duration, pv moveslice.MoveSlice) {
	bound := ""
	switch valueType {
	case ValueTypeAlpha:
		bound = " upperbound"
	case ValueTypeBeta:
		bound = " lowerbound"
	}
	u.send(fmt.Sprintf("info depth %d seldepth %d score %s%s nodes %d nps %d time %d pv %s",
		depth, seldepth, value.String(), bound, nodes, nps, time.Milliseconds(), pv.StringUci()))
}

// SendCurrentRootMove reports which root move the search is currently on.
func (u *UciHandler) SendCurrentRootMove(currMove Move, moveNumber int) {
	u.send(fmt.Sprintf("info currmove %s currmovenumber %d", currMove.StringUci(), moveNumber))
}

// SendCurrentLine reports the variation currently being searched.
func (u *UciHandler) SendCurrentLine(moveList moveslice.MoveSlice) {
	u.send(fmt.Sprintf("info currline %s", moveList.StringUci()))
}

// SendResult sends the final "bestmove" line, with the ponder move
// appended when the PV was at least two moves long.
func (u *UciHandler) SendResult(bestMove Move, ponderMove Move) {
	var sb strings.Builder
	sb.WriteString("bestmove ")
	sb.WriteString(bestMove.StringUci())
	if ponderMove != MoveNone {
		sb.WriteString(" ponder ")
		sb.WriteString(ponderMove.StringUci())
	}
	u.send(sb.String())
}

// ///////////////////////////////////////////////////////////
// Private
// ///////////////////////////////////////////////////////////

// handleReceivedCommand dispatches one command line. Returns true when the
// loop should terminate ("quit").
func (u *UciHandler) handleReceivedCommand(cmd string) bool {
	tokens := strings.Fields(cmd)
	if len(tokens) == 0 {
		return false
	}
	log.Debugf("Received command: %s", cmd)
	u.uciLog.Infof("<< %s", cmd)
	switch tokens[0] {
	case "quit":
		return true
	case "uci":
		u.uciCommand()
	case "setoption":
		u.setOptionCommand(tokens)
	case "isready":
		u.isReadyCommand()
	case "ucinewgame":
		u.uciNewGameCommand()
	case "position":
		u.positionCommand(tokens)
	case "go":
		u.goCommand(tokens)
	case "stop":
		u.stopCommand()
	case "ponderhit":
		u.ponderHitCommand()
	case "register":
		u.registerCommand()
	case "debug":
		u.debugCommand()
	case "perft":
		u.perftCommand(tokens)
	case "noop":
	default:
		log.Warningf("Error: Unknown command: %s", cmd)
	}
	log.Debugf("Processed command: %s", cmd)
	return false
}

// reject reports a malformed command both to the user interface and the log.
func (u *UciHandler) reject(format string, a ...interface{}) {
	msg := out.Sprintf(format, a...)
	u.SendInfoString(msg)
	log.Warning(msg)
}

func (u *UciHandler) uciCommand() {
	u.send("id name MilkyGo " + version.Version())
	u.send("id author Frank Kopp, Germany")
	for _, o := range uciOptions {
		u.send(o.String())
	}
	u.send("uciok")
}

// setOptionCommand parses "setoption name <name> [value <value>]". The
// option name may contain spaces, so tokens are collected until the
// "value" keyword (or the end of the line for button options).
func (u *UciHandler) setOptionCommand(tokens []string) {
	if len(tokens) < 3 || tokens[1] != "name" {
		u.reject("Command 'setoption' is malformed")
		return
	}
	var nameParts []string
	i := 2
	for i < len(tokens) && tokens[i] != "value" {
		nameParts = append(nameParts, tokens[i])
		i++
	}
	name := strings.Join(nameParts, " ")
	value := ""
	if i+1 < len(tokens) && tokens[i] == "value" {
		value = tokens[i+1]
	}
	o := lookupOption(name)
	if o == nil {
		u.reject("Command 'setoption': No such option '%s'", name)
		return
	}
	o.CurrentValue = value
	o.HandlerFunc(u, o)
}

// isReadyCommand lets the search finish any pending initialization
// (e.g. allocating the transposition table) before answering "readyok".
func (u *UciHandler) isReadyCommand() {
	u.mySearch.IsReady()
}

// ponderHitCommand converts a running ponder search into a live search:
// the opponent played the expected move, so the clock starts now.
func (u *UciHandler) ponderHitCommand() {
	u.mySearch.PonderHit()
}

// stopCommand stops a running search or perft as soon as possible.
func (u *UciHandler) stopCommand() {
	u.mySearch.StopSearch()
	u.myPerft.Stop()
}

// perftCommand runs a perft on the start position. An optional second
// depth runs every depth from the first to the second in sequence.
func (u *UciHandler) perftCommand(tokens []string) {
	startDepth := 4
	if len(tokens) > 1 {
		d, err := strconv.Atoi(tokens[1])
		if err != nil {
			log.Warningf("Can't perft on depth='%s'", tokens[1])
			return
		}
		startDepth = d
	}
	endDepth := startDepth
	if len(tokens) > 2 {
		d, err := strconv.Atoi(tokens[2])
		if err != nil {
			log.Warningf("Can't use second perft depth='%s'", tokens[2])
		} else {
			endDepth = d
		}
	}
	go u.myPerft.StartPerftMulti(position.StartFEN, startDepth, endDepth, true)
}

// goCommand parses the search limits and starts the search.
func (u *UciHandler) goCommand(tokens []string) {
	searchLimits, ok := u.readSearchLimits(tokens)
	if !ok {
		return
	}
	u.mySearch.StartSearch(*u.myPosition, *searchLimits)
}

// positionCommand sets up the internal position from
// "position [startpos | fen <fen>] [moves <m1> <m2> ...]".
func (u *UciHandler) positionCommand(tokens []string) {
	fen := position.StartFEN
	i := 1
	if i >= len(tokens) {
		u.reject("Command 'position' malformed. %s", tokens)
		return
	}
	switch tokens[i] {
	case "startpos":
		i++
	case "fen":
		i++
		var fenParts []string
		for i < len(tokens) && tokens[i] != "moves" {
			fenParts = append(fenParts, tokens[i])
			i++
		}
		if len(fenParts) == 0 {
			u.reject("Command 'position' malformed. %s", tokens)
			return
		}
		fen = strings.Join(fenParts, " ")
	default:
		u.reject("Command 'position' malformed. %s", tokens)
		return
	}

	newPos, err := position.NewFromFEN(fen)
	if err != nil {
		u.reject("Command 'position' malformed. Invalid FEN '%s': %s", fen, err)
		return
	}
	u.myPosition = newPos

	if i < len(tokens) {
		if tokens[i] != "moves" {
			u.reject("Command 'position' malformed moves. %s", tokens)
			return
		}
		for _, moveStr := range tokens[i+1:] {
			move := u.myMoveGen.GetMoveFromUci(u.myPosition, moveStr)
			if !move.IsValid() {
				u.reject("Command 'position' malformed. Invalid move '%s' (%s)", moveStr, tokens)
				return
			}
			u.myPosition.DoMove(move)
		}
	}
	log.Debugf("New position: %s", u.myPosition.StringFen())
}

// uciNewGameCommand resets position and search state for a new game.
func (u *UciHandler) uciNewGameCommand() {
	u.mySearch.StopSearch()
	u.myPosition = position.New()
	u.mySearch.NewGame()
}

func (u *UciHandler) debugCommand() {
	u.reject("Command 'debug' not implemented")
}

func (u *UciHandler) registerCommand() {
	u.reject("Command 'register' not implemented")
}

func (u *UciHandler) send(s string) {
	u.uciLog.Infof(">> %s", s)
	_, _ = u.OutIo.WriteString(s + "\n")
	_ = u.OutIo.Flush()
}

// millisToken parses a token as a millisecond count.
func millisToken(token string) (time.Duration, error) {
	ms, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// readSearchLimits parses the subcommands of "go" into a SearchLimits.
// Returns ok=false after reporting the problem if the command line was
// malformed or the resulting limits would not terminate the search.
func (u *UciHandler) readSearchLimits(tokens []string) (*search.SearchLimits, bool) {
	sl := search.NewSearchLimits()
	i := 1
	for i < len(tokens) {
		token := tokens[i]
		i++
		switch token {
		case "infinite":
			sl.Infinite = true
		case "ponder":
			sl.Ponder = true
		case "searchmoves", "moves":
			for i < len(tokens) {
				move := u.myMoveGen.GetMoveFromUci(u.myPosition, tokens[i])
				if !move.IsValid() {
					break
				}
				sl.Moves.PushBack(move)
				i++
			}
		case "depth", "mate", "movestogo":
			if i >= len(tokens) {
				u.reject("UCI command go malformed. Missing value for: %s", token)
				return nil, false
			}
			n, err := strconv.Atoi(tokens[i])
			if err != nil {
				u.reject("UCI command go malformed. %s value not a number: %s", token, tokens[i])
				return nil, false
			}
			i++
			switch token {
			case "depth":
				sl.Depth = n
			case "mate":
				sl.Mate = n
			case "movestogo":
				sl.MovesToGo = n
			}
		case "nodes":
			if i >= len(tokens) {
				u.reject("UCI command go malformed. Missing value for: nodes")
				return nil, false
			}
			n, err := strconv.ParseInt(tokens[i], 10, 64)
			if err != nil {
				u.reject("UCI command go malformed. Nodes value not a number: %s", tokens[i])
				return nil, false
			}
			sl.Nodes = n
			i++
		case "movetime", "moveTime", "wtime", "btime", "winc", "binc":
			if i >= len(tokens) {
				u.reject("UCI command go malformed. Missing value for: %s", token)
				return nil, false
			}
			d, err := millisToken(tokens[i])
			if err != nil {
				u.reject("UCI command go malformed. %s value not a number: %s", token, tokens[i])
				return nil, false
			}
			i++
			switch token {
			case "movetime", "moveTime":
				sl.MoveTime = d
				sl.TimeControl = true
			case "wtime":
				sl.WhiteTime = d
				sl.TimeControl = true
			case "btime":
				sl.BlackTime = d
				sl.TimeControl = true
			case "winc":
				sl.WhiteInc = d
			case "binc":
				sl.BlackInc = d
			}
		default:
			u.reject("UCI command go malformed. Invalid subcommand: %s", token)
			return nil, false
		}
	}

	// at least one limit must be in effect or the search would never stop
	if !(sl.Infinite || sl.Ponder || sl.TimeControl ||
		sl.Depth > 0 || sl.Nodes > 0 || sl.Mate > 0) {
		u.reject("UCI command go malformed. No effective limits set %s", tokens)
		return nil, false
	}
	// a conventional time control needs a clock for the side to move
	if sl.TimeControl && sl.MoveTime == 0 {
		if u.myPosition.SideToMove() == White && sl.WhiteTime == 0 {
			u.reject("UCI command go invalid. White to move but white time is zero! %s", tokens)
			return nil, false
		}
		if u.myPosition.SideToMove() == Black && sl.BlackTime == 0 {
			u.reject("UCI command go invalid. Black to move but black time is zero! %s", tokens)
			return nil, false
		}
	}
	return sl, true
}

// getUciLog builds the protocol logger which records the raw command
// traffic ("<<" in, ">>" out). It logs to a file below the configured log
// path and falls back to Stdout when the file cannot be created.
func getUciLog() *logging2.Logger {
	uciLog := logging2.MustGetLogger("UCI ")
	uciFormat := logging2.MustStringFormatter(`%{time:15:04:05.000} UCI %{message}`)

	stdBackend := logging2.AddModuleLevel(
		logging2.NewBackendFormatter(logging2.NewLogBackend(os.Stdout, "", golog.Lmsgprefix), uciFormat))
	stdBackend.SetLevel(logging2.DEBUG, "")

	logPath := config.Settings.Log.LogPath
	if !filepath.IsAbs(logPath) {
		dir, _ := os.Getwd()
		logPath = filepath.Join(dir, logPath)
	}
	programName, _ := os.Executable()
	exeName := strings.TrimSuffix(filepath.Base(programName), ".exe")
	logFilePath := filepath.Clean(filepath.Join(logPath, exeName+"_ucilog.log"))

	logFile, err := os.OpenFile(logFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		golog.Println("Logfile could not be created:", err)
		uciLog.SetBackend(stdBackend)
		return uciLog
	}
	fileBackend := logging2.AddModuleLevel(
		logging2.NewBackendFormatter(logging2.NewLogBackend(logFile, "", golog.Lmsgprefix), uciFormat))
	fileBackend.SetLevel(logging2.DEBUG, "")
	uciLog.SetBackend(fileBackend)
	uciLog.Infof("Log %s started at %s:", logFile.Name(), time.Now().String())
	return uciLog
}
