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

// CastlingRights is a 4-bit set of the castling rights still available,
// one bit per side/wing.
type CastlingRights uint8

const CastlingNone CastlingRights = 0

const (
	CastlingWK CastlingRights = 1 << iota
	CastlingWQ
	CastlingBK
	CastlingBQ
)

const CastlingAll = CastlingWK | CastlingWQ | CastlingBK | CastlingBQ

// Has reports whether all bits of mask are set in cr.
func (cr CastlingRights) Has(mask CastlingRights) bool {
	return cr&mask == mask
}

// Remove clears the given bits and returns the result.
func (cr CastlingRights) Remove(mask CastlingRights) CastlingRights {
	return cr &^ mask
}

var castlingRightsToString = [4]string{"K", "Q", "k", "q"}

// String renders the rights in the FEN ordering KQkq, or "-" if none.
func (cr CastlingRights) String() string {
	if cr == CastlingNone {
		return "-"
	}
	s := ""
	bits := [4]CastlingRights{CastlingWK, CastlingWQ, CastlingBK, CastlingBQ}
	for i, b := range bits {
		if cr.Has(b) {
			s += castlingRightsToString[i]
		}
	}
	return s
}
