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

package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/milky/config"
	"github.com/frankkopp/milky/position"
	"github.com/frankkopp/milky/types"
)

func TestMain(m *testing.M) {
	config.Setup()
	m.Run()
}

func TestStartPosIsSymmetric(t *testing.T) {
	config.Settings.Eval.Tempo = 0
	p := position.New()
	e := NewEvaluator()
	assert.EqualValues(t, 0, e.Evaluate(p))
}

func TestMirroredPositionIsSymmetric(t *testing.T) {
	config.Settings.Eval.Tempo = 0
	p, err := position.NewFromFEN("r1bq1rk1/pppp1pp1/2n2n1p/1B2p3/1b2P3/2N2N1P/PPPP1PP1/R1BQ1RK1 w - - 0 1")
	assert.NoError(t, err)
	e := NewEvaluator()
	assert.EqualValues(t, 0, e.Evaluate(p))
}

func TestTempoFavorsSideToMove(t *testing.T) {
	config.Settings.Eval.Tempo = 18
	p := position.New()
	e := NewEvaluator()
	assert.EqualValues(t, 18, e.Evaluate(p))
}

func TestMaterialImbalanceFavorsExtraPiece(t *testing.T) {
	config.Settings.Eval.Tempo = 0
	p, err := position.NewFromFEN("4k3/8/8/8/8/8/8/4KQ2 w - - 0 1")
	assert.NoError(t, err)
	e := NewEvaluator()
	assert.True(t, e.Evaluate(p) > 800)
}

func TestClassifyPhaseMatchesMaterialRegime(t *testing.T) {
	p := position.New()
	threshold := types.Value(config.Settings.Eval.OpeningPhaseThreshold)
	assert.Equal(t, phaseOpening, classifyPhase(gamePhaseScore(p), threshold))

	bare, err := position.NewFromFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	assert.NoError(t, err)
	assert.Equal(t, phaseEndgame, classifyPhase(gamePhaseScore(bare), threshold))

	// each side down to a queen, rook and bishop sits strictly between T/2
	// and T for the default threshold, landing in Midgame.
	mid, err := position.NewFromFEN("3qkbr1/8/8/8/8/8/8/2BQK2R w - - 0 1")
	assert.NoError(t, err)
	assert.Equal(t, phaseMidgame, classifyPhase(gamePhaseScore(mid), threshold))
}
