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

package types

// ValueType classifies a transposition table entry's score against the
// alpha/beta window that produced it.
type ValueType int8

const (
	// ValueTypeNone marks an empty/unset entry.
	ValueTypeNone ValueType = iota
	// ValueTypeExact is a fully resolved score (fell strictly between alpha and beta).
	ValueTypeExact
	// ValueTypeAlpha is an upper bound: the true score is <= the stored value.
	ValueTypeAlpha
	// ValueTypeBeta is a lower bound: the true score is >= the stored value.
	ValueTypeBeta
)

func (t ValueType) String() string {
	switch t {
	case ValueTypeExact:
		return "EXACT"
	case ValueTypeAlpha:
		return "ALPHA"
	case ValueTypeBeta:
		return "BETA"
	default:
		return "NONE"
	}
}
