// +build !debug

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

// Package assert is a helper to allow assertions in a standardized,
// zero-cost-in-release manner. Using it makes clear that a check is a
// debug-time sanity check, not recoverable error handling.
package assert

// DEBUG if this is set to "true" asserts are evaluated
const DEBUG = false

// Assert is a no-op in release builds. Unfortunately Go still evaluates
// the call's arguments (e.g. a fmt.Sprintf building msg) even though the
// body does nothing, so callers on a hot path should additionally guard
// with "if assert.DEBUG { ... }" to let the compiler drop the whole
// statement.
//  if assert.DEBUG {
//	  assert.Assert(value > 0, "expected positive value, got %d", value)
//  }
func Assert(test bool, msg string, a ...interface{}) {}
