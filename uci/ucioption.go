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
	"strconv"
	"strings"

	"github.com/frankkopp/milky/config"
)

// uciOptionType enumerates the option types the UCI protocol defines.
type uciOptionType int

const (
	Check uciOptionType = iota
	Spin
	Combo
	Button
	String
)

// optionHandler is called when "setoption" changes the option it is
// attached to. CurrentValue has already been updated at that point.
type optionHandler func(*UciHandler, *uciOption)

// uciOption describes one configurable engine option as announced in
// response to the "uci" command.
type uciOption struct {
	NameID       string
	HandlerFunc  optionHandler
	OptionType   uciOptionType
	DefaultValue string
	MinValue     string
	MaxValue     string
	VarValue     string
	CurrentValue string
}

// uciOptions lists all options in the order they are announced.
var uciOptions []*uciOption

// init fills uciOptions. This runs after the config package's own init so
// the defaults reported to the GUI match the engine's actual settings.
func init() {
	uciOptions = []*uciOption{
		{NameID: "Hash", HandlerFunc: resizeHash, OptionType: Spin,
			DefaultValue: "64", CurrentValue: strconv.Itoa(config.Settings.Search.TtSizeMb),
			MinValue: "0", MaxValue: "65000"},
		{NameID: "Clear Hash", HandlerFunc: clearHash, OptionType: Button},
		{NameID: "Use_Hash", HandlerFunc: useHash, OptionType: Check,
			DefaultValue: "true", CurrentValue: strconv.FormatBool(config.Settings.Search.UseTT)},
		{NameID: "Ponder", HandlerFunc: usePonder, OptionType: Check,
			DefaultValue: "true", CurrentValue: strconv.FormatBool(config.Settings.Search.UsePonder)},
	}
}

// lookupOption finds an option by its announced name, nil if unknown.
func lookupOption(name string) *uciOption {
	for _, o := range uciOptions {
		if o.NameID == name {
			return o
		}
	}
	return nil
}

// String renders the option as an "option name ... type ..." line as
// required during the UCI initialization phase.
func (o *uciOption) String() string {
	var sb strings.Builder
	sb.WriteString("option name ")
	sb.WriteString(o.NameID)
	sb.WriteString(" type ")
	switch o.OptionType {
	case Check:
		sb.WriteString("check default ")
		sb.WriteString(o.DefaultValue)
	case Spin:
		sb.WriteString("spin default ")
		sb.WriteString(o.DefaultValue)
		sb.WriteString(" min ")
		sb.WriteString(o.MinValue)
		sb.WriteString(" max ")
		sb.WriteString(o.MaxValue)
	case Combo:
		sb.WriteString("combo default ")
		sb.WriteString(o.DefaultValue)
		sb.WriteString(" var ")
		sb.WriteString(o.VarValue)
	case Button:
		sb.WriteString("button")
	case String:
		sb.WriteString("string default ")
		sb.WriteString(o.DefaultValue)
	}
	return sb.String()
}

// ////////////////////////////////////////////////////////////////
// Option handlers
// ////////////////////////////////////////////////////////////////

func clearHash(u *UciHandler, o *uciOption) {
	u.mySearch.ClearHash()
	log.Debug("Cleared transposition table")
}

func useHash(u *UciHandler, o *uciOption) {
	v, _ := strconv.ParseBool(o.CurrentValue)
	config.Settings.Search.UseTT = v
	log.Debugf("Set Use_Hash to %v", config.Settings.Search.UseTT)
}

func resizeHash(u *UciHandler, o *uciOption) {
	v, err := strconv.Atoi(o.CurrentValue)
	if err != nil {
		log.Warningf("Invalid Hash size value '%s'", o.CurrentValue)
		return
	}
	config.Settings.Search.TtSizeMb = v
	u.mySearch.ResizeCache()
}

func usePonder(u *UciHandler, o *uciOption) {
	v, _ := strconv.ParseBool(o.CurrentValue)
	config.Settings.Search.UsePonder = v
	log.Debugf("Set Ponder to %v", config.Settings.Search.UsePonder)
}
