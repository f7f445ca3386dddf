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

package config

// searchConfiguration holds every feature toggle and tunable constant the
// search package consults. Keeping these here (rather than as search-package
// constants) lets a config.toml tune the engine without a rebuild.
type searchConfiguration struct {
	TtSizeMb int
	UseTT    bool

	UsePVS      bool
	UseNullMove bool
	NullMoveR   int
	MinNullMoveDepth int

	UseLMR          bool
	LmrMinDepth     int
	LmrMinMoveIndex int
	LmrReduction    int

	UseQuiescence bool
	UseSEE        bool

	UseKillerMoves bool
	UseHistory     bool

	AspirationWindow int

	UsePonder bool
}

// sets defaults which might be overwritten by config file
func init() {
	Settings.Search.TtSizeMb = 64
	Settings.Search.UseTT = true

	Settings.Search.UsePVS = true
	Settings.Search.UseNullMove = true
	Settings.Search.NullMoveR = 2
	Settings.Search.MinNullMoveDepth = 3

	Settings.Search.UseLMR = true
	Settings.Search.LmrMinDepth = 3
	Settings.Search.LmrMinMoveIndex = 4
	Settings.Search.LmrReduction = 1

	Settings.Search.UseQuiescence = true
	Settings.Search.UseSEE = false

	Settings.Search.UseKillerMoves = true
	Settings.Search.UseHistory = true

	Settings.Search.AspirationWindow = 50

	Settings.Search.UsePonder = true
}

// set defaults for configurations here in case a configuration
// is not available from the config file
func setupSearch() {
}
