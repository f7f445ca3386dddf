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

type evalConfiguration struct {
	// OpeningPhaseThreshold is the non-pawn material sum (opening piece
	// values) above which the position is considered to still be in the
	// opening for the purposes of tapered eval.
	OpeningPhaseThreshold int

	Tempo int

	UsePawnStructure     bool
	DoubledPawnMalus     int
	IsolatedPawnMalus    int
	PassedPawnBaseBonus  int
	PassedPawnRankFactor int

	UseMobility   bool
	MobilityBonus int

	UseRookKingEval     bool
	RookOpenFileBonus   int
	RookSemiOpenBonus   int
	KingShieldBonus     int
}

// sets defaults which might be overwritten by config file
func init() {
	Settings.Eval.OpeningPhaseThreshold = 6192

	Settings.Eval.Tempo = 18

	Settings.Eval.UsePawnStructure = true
	Settings.Eval.DoubledPawnMalus = 12
	Settings.Eval.IsolatedPawnMalus = 10
	Settings.Eval.PassedPawnBaseBonus = 10
	Settings.Eval.PassedPawnRankFactor = 8

	Settings.Eval.UseMobility = true
	Settings.Eval.MobilityBonus = 2

	Settings.Eval.UseRookKingEval = true
	Settings.Eval.RookOpenFileBonus = 20
	Settings.Eval.RookSemiOpenBonus = 10
	Settings.Eval.KingShieldBonus = 6
}

// set defaults for configurations here in case a configuration
// is not available from the config file
func setupEval() {
}
