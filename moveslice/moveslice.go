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

// Package moveslice provides a thin helper type over a plain slice of moves,
// used for move lists that don't need per-move ordering scores (the PV, the
// root move list, a "go searchmoves" restriction). Where moves need to carry
// a search score for ordering, use types.MoveList instead.
package moveslice

import (
	"fmt"
	"strings"

	"github.com/frankkopp/milky/types"
)

// MoveSlice is a growable list of moves.
type MoveSlice []types.Move

// NewMoveSlice creates an empty MoveSlice with the given starting capacity.
func NewMoveSlice(cap int) *MoveSlice {
	moves := make([]types.Move, 0, cap)
	return (*MoveSlice)(&moves)
}

// Len returns the number of moves currently stored in the slice.
func (ms *MoveSlice) Len() int {
	return len(*ms)
}

// Cap returns the capacity of the underlying array.
func (ms *MoveSlice) Cap() int {
	return cap(*ms)
}

// PushBack appends m to the end of the slice.
func (ms *MoveSlice) PushBack(m types.Move) {
	*ms = append(*ms, m)
}

// PopBack removes and returns the move at the back of the slice. Panics if
// the slice is empty.
func (ms *MoveSlice) PopBack() types.Move {
	if len(*ms) == 0 {
		panic("moveslice: PopBack on empty slice")
	}
	m := (*ms)[len(*ms)-1]
	*ms = (*ms)[:len(*ms)-1]
	return m
}

// At returns the move at index i. Panics if i is out of bounds.
func (ms *MoveSlice) At(i int) types.Move {
	if i < 0 || i >= len(*ms) {
		panic("moveslice: index out of bounds")
	}
	return (*ms)[i]
}

// Set overwrites the move at index i. Panics if i is out of bounds.
func (ms *MoveSlice) Set(i int, m types.Move) {
	if i < 0 || i >= len(*ms) {
		panic("moveslice: index out of bounds")
	}
	(*ms)[i] = m
}

// Clear empties the slice but keeps its underlying capacity.
func (ms *MoveSlice) Clear() {
	*ms = (*ms)[:0]
}

// Clone returns a deep copy of the slice.
func (ms *MoveSlice) Clone() *MoveSlice {
	dest := make([]types.Move, len(*ms))
	copy(dest, *ms)
	return (*MoveSlice)(&dest)
}

// String renders the slice for logging, e.g. "MoveList: [2] { e2e4, e7e5 }".
func (ms *MoveSlice) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "MoveList: [%d] { ", len(*ms))
	for i, m := range *ms {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(m.String())
	}
	b.WriteString(" }")
	return b.String()
}

// StringUci renders the slice as a space separated list of UCI move strings,
// the format used for "pv" and "searchmoves" in UCI "info"/"go" output.
func (ms *MoveSlice) StringUci() string {
	var b strings.Builder
	for i, m := range *ms {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(m.StringUci())
	}
	return b.String()
}
