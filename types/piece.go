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

// PieceType identifies a piece's kind independent of color: used to index
// attack tables, MVV-LVA, and piece values.
type PieceType int8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	PieceTypeLength
	PieceTypeNone = PieceTypeLength
)

var pieceTypeToString = [...]string{"P", "N", "B", "R", "Q", "K"}

// String returns the upper-case letter for the piece type.
func (pt PieceType) String() string {
	if pt < Pawn || pt >= PieceTypeLength {
		return "-"
	}
	return pieceTypeToString[pt]
}

// Piece is one of the 12 piece kinds, indexed 0..11 in the order
// {WP, WN, WB, WR, WQ, WK, BP, BN, BB, BR, BQ, BK}. This ordering is
// load-bearing: move encoding, MVV-LVA, and PST indexing all rely on it.
type Piece int8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	PieceLength
	PieceNone = PieceLength
)

var pieceToString = [...]string{"P", "N", "B", "R", "Q", "K", "p", "n", "b", "r", "q", "k"}

// String returns a single-letter label: upper case for White, lower case
// for Black.
func (p Piece) String() string {
	if p < WhitePawn || p >= PieceLength {
		return "-"
	}
	return pieceToString[p]
}

// MakePiece builds the piece of the given color and kind.
func MakePiece(c Color, pt PieceType) Piece {
	return Piece(int(c)*int(PieceTypeLength) + int(pt))
}

// ColorOf returns the color of the given piece.
func (p Piece) ColorOf() Color {
	return Color(int(p) / int(PieceTypeLength))
}

// TypeOf returns the piece type of the given piece.
func (p Piece) TypeOf() PieceType {
	return PieceType(int(p) % int(PieceTypeLength))
}
