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

package position

import (
	"github.com/frankkopp/milky/fen"
	"github.com/frankkopp/milky/types"
	"github.com/frankkopp/milky/zobrist"
)

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewFromFEN builds a Position by parsing a FEN string wholesale and
// recomputing the Zobrist key from scratch, exactly as the engine has no
// other way to load an arbitrary test position.
func NewFromFEN(s string) (*Position, error) {
	rec, err := fen.Parse(s)
	if err != nil {
		return nil, err
	}

	p := &Position{
		sideToMove:       rec.SideToMove,
		enPassant:        rec.EnPassantSquare,
		castlingRights:   rec.CastlingRights,
		fiftyMoveCounter: rec.HalfMoveClock,
		fullMoveNumber:   rec.FullMoveNumber,
	}
	for sq := types.Square(0); sq < types.SqNone; sq++ {
		p.board[sq] = types.PieceNone
	}

	for sq := types.Square(0); sq < types.SqNone; sq++ {
		pc := rec.Board[sq]
		if pc == types.PieceNone {
			continue
		}
		p.board[sq] = pc
		p.pieces[pc] = p.pieces[pc].PushSquare(sq)
		if pc.ColorOf() == types.White {
			p.occupied[occWhite] = p.occupied[occWhite].PushSquare(sq)
		} else {
			p.occupied[occBlack] = p.occupied[occBlack].PushSquare(sq)
		}
		p.occupied[occBoth] = p.occupied[occBoth].PushSquare(sq)
	}

	p.zobristKey = zobrist.HashPosition(zobrist.Position{
		Pieces:     p.pieces,
		SideToMove: p.sideToMove,
		EnPassant:  p.enPassant,
		Castling:   p.castlingRights,
	})
	p.repetitionKeys[0] = p.zobristKey
	p.repetitionIdx = 1

	return p, nil
}

// FEN renders the current position back into Forsyth-Edwards Notation.
func (p *Position) FEN() string {
	rec := fen.Record{
		Board:           p.board,
		SideToMove:      p.sideToMove,
		CastlingRights:  p.castlingRights,
		EnPassantSquare: p.enPassant,
		HalfMoveClock:   p.fiftyMoveCounter,
		FullMoveNumber:  p.fullMoveNumber,
	}
	return rec.String()
}

// StringFen is an alias for FEN kept for callers that prefer the explicit
// name when logging alongside the ASCII board in String().
func (p *Position) StringFen() string {
	return p.FEN()
}
