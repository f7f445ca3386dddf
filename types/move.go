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

// Move packs a chess move into a single 32-bit value:
//
//	bits 0-5    source square
//	bits 6-11   target square
//	bits 12-15  moving piece
//	bits 16-19  promotion piece type (PieceTypeNone if none)
//	bit  20     capture flag
//	bit  21     double pawn push flag
//	bit  22     en passant capture flag
//	bit  23     castling flag
type Move uint32

const MoveNone Move = 0

const (
	moveSourceShift  = 0
	moveTargetShift  = 6
	movePieceShift   = 12
	movePromoShift   = 16
	moveCaptureBit   = 1 << 20
	moveDoublePushBit = 1 << 21
	moveEnPassantBit = 1 << 22
	moveCastlingBit  = 1 << 23

	moveSquareMask = 0x3F
	movePieceMask  = 0xF
	movePromoMask  = 0xF
)

// MoveNormal builds a plain (non-capture, non-special) move.
func MoveNormal(from, to Square, piece Piece) Move {
	return makeMove(from, to, piece, PieceTypeNone, false, false, false, false)
}

// MoveCapture builds a capturing move.
func MoveCapture(from, to Square, piece Piece) Move {
	return makeMove(from, to, piece, PieceTypeNone, true, false, false, false)
}

// MoveDoublePawnPush builds a two-square pawn advance from its starting rank.
func MoveDoublePawnPush(from, to Square, piece Piece) Move {
	return makeMove(from, to, piece, PieceTypeNone, false, true, false, false)
}

// MoveEnPassant builds an en passant capture.
func MoveEnPassant(from, to Square, piece Piece) Move {
	return makeMove(from, to, piece, PieceTypeNone, true, false, true, false)
}

// MoveCastling builds a castling move; from/to are the king's squares.
func MoveCastling(from, to Square, piece Piece) Move {
	return makeMove(from, to, piece, PieceTypeNone, false, false, false, true)
}

// MovePromotion builds a promoting move, capture or not.
func MovePromotion(from, to Square, piece Piece, promo PieceType, capture bool) Move {
	return makeMove(from, to, piece, promo, capture, false, false, false)
}

func makeMove(from, to Square, piece Piece, promo PieceType, capture, doublePush, enPassant, castling bool) Move {
	m := Move(from&moveSquareMask) << moveSourceShift
	m |= Move(to&moveSquareMask) << moveTargetShift
	m |= Move(piece&movePieceMask) << movePieceShift
	m |= Move(promo&movePromoMask) << movePromoShift
	if capture {
		m |= moveCaptureBit
	}
	if doublePush {
		m |= moveDoublePushBit
	}
	if enPassant {
		m |= moveEnPassantBit
	}
	if castling {
		m |= moveCastlingBit
	}
	return m
}

// From returns the move's source square.
func (m Move) From() Square {
	return Square((m >> moveSourceShift) & moveSquareMask)
}

// To returns the move's target square.
func (m Move) To() Square {
	return Square((m >> moveTargetShift) & moveSquareMask)
}

// Piece returns the moving piece.
func (m Move) Piece() Piece {
	return Piece((m >> movePieceShift) & movePieceMask)
}

// Promotion returns the promotion piece type, or PieceTypeNone.
func (m Move) Promotion() PieceType {
	return PieceType((m >> movePromoShift) & movePromoMask)
}

// IsCapture reports whether the move captures a piece (including en passant).
func (m Move) IsCapture() bool {
	return m&moveCaptureBit != 0
}

// IsDoublePawnPush reports whether the move is a two-square pawn advance.
func (m Move) IsDoublePawnPush() bool {
	return m&moveDoublePushBit != 0
}

// IsEnPassant reports whether the move is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m&moveEnPassantBit != 0
}

// IsCastling reports whether the move is a castling move.
func (m Move) IsCastling() bool {
	return m&moveCastlingBit != 0
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Promotion() != PieceTypeNone
}

// IsQuiet reports whether the move is neither a capture nor a promotion,
// the set of moves eligible for killer/history ordering and LMR.
func (m Move) IsQuiet() bool {
	return !m.IsCapture() && !m.IsPromotion()
}

// String renders the move in coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == MoveNone {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += pieceTypeToLower(m.Promotion())
	}
	return s
}

// StringUci is an alias for String kept for call sites that mirror the UCI
// protocol's own naming for a move's wire representation.
func (m Move) StringUci() string {
	return m.String()
}

// IsValid reports whether m is anything other than the MoveNone sentinel.
func (m Move) IsValid() bool {
	return m != MoveNone
}

func pieceTypeToLower(pt PieceType) string {
	switch pt {
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	default:
		return ""
	}
}
