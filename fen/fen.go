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

// Package fen parses and renders Forsyth-Edwards Notation. It knows nothing
// about Zobrist hashing or move legality; it only turns a FEN string into
// the plain fields a Position needs to set itself up from scratch, and back.
package fen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/frankkopp/milky/types"
)

// Record holds the parsed fields of one FEN string, ready for a Position to
// consume wholesale.
type Record struct {
	Board            [types.SqLength]types.Piece
	SideToMove       types.Color
	CastlingRights   types.CastlingRights
	EnPassantSquare  types.Square
	HalfMoveClock    int
	FullMoveNumber   int
}

var pieceLetters = map[byte]types.Piece{
	'P': types.WhitePawn, 'N': types.WhiteKnight, 'B': types.WhiteBishop,
	'R': types.WhiteRook, 'Q': types.WhiteQueen, 'K': types.WhiteKing,
	'p': types.BlackPawn, 'n': types.BlackKnight, 'b': types.BlackBishop,
	'r': types.BlackRook, 'q': types.BlackQueen, 'k': types.BlackKing,
}

// Parse reads a FEN string (board, side to move, castling, en passant, and
// optionally the half-move clock and full-move number) into a Record.
func Parse(s string) (Record, error) {
	var rec Record
	for i := range rec.Board {
		rec.Board[i] = types.PieceNone
	}
	rec.EnPassantSquare = types.SqNone

	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) < 4 {
		return rec, fmt.Errorf("fen: need at least 4 fields, got %d in %q", len(fields), s)
	}

	if err := parseBoard(fields[0], &rec); err != nil {
		return rec, err
	}

	switch fields[1] {
	case "w":
		rec.SideToMove = types.White
	case "b":
		rec.SideToMove = types.Black
	default:
		return rec, fmt.Errorf("fen: invalid side to move %q", fields[1])
	}

	rec.CastlingRights = types.CastlingNone
	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				rec.CastlingRights |= types.CastlingWK
			case 'Q':
				rec.CastlingRights |= types.CastlingWQ
			case 'k':
				rec.CastlingRights |= types.CastlingBK
			case 'q':
				rec.CastlingRights |= types.CastlingBQ
			default:
				return rec, fmt.Errorf("fen: invalid castling letter %q", fields[2][i])
			}
		}
	}

	if fields[3] == "-" {
		rec.EnPassantSquare = types.SqNone
	} else {
		sq := types.MakeSquare(fields[3])
		if !sq.IsValid() {
			return rec, fmt.Errorf("fen: invalid en passant square %q", fields[3])
		}
		rec.EnPassantSquare = sq
	}

	rec.HalfMoveClock = 0
	rec.FullMoveNumber = 1
	if len(fields) >= 5 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return rec, fmt.Errorf("fen: invalid half-move clock %q: %w", fields[4], err)
		}
		rec.HalfMoveClock = n
	}
	if len(fields) >= 6 {
		n, err := strconv.Atoi(fields[5])
		if err != nil {
			return rec, fmt.Errorf("fen: invalid full-move number %q: %w", fields[5], err)
		}
		rec.FullMoveNumber = n
	}

	return rec, nil
}

func parseBoard(board string, rec *Record) error {
	ranks := strings.Split(board, "/")
	if len(ranks) != int(types.RankLength) {
		return fmt.Errorf("fen: expected 8 ranks, got %d in %q", len(ranks), board)
	}
	for i, rankStr := range ranks {
		r := types.Rank(i)
		f := types.FileA
		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				f += types.File(c - '0')
				continue
			}
			pc, ok := pieceLetters[c]
			if !ok {
				return fmt.Errorf("fen: invalid piece letter %q", c)
			}
			if !f.IsValid() {
				return fmt.Errorf("fen: rank %d overflows with piece %q", i, c)
			}
			rec.Board[types.SquareOf(f, r)] = pc
			f++
		}
		if f != types.FileLength {
			return fmt.Errorf("fen: rank %d does not sum to 8 files: %q", i, rankStr)
		}
	}
	return nil
}

// String renders rec back into FEN notation.
func (rec Record) String() string {
	var sb strings.Builder
	for r := types.Rank8; r < types.RankLength; r++ {
		empty := 0
		for f := types.FileA; f < types.FileLength; f++ {
			pc := rec.Board[types.SquareOf(f, r)]
			if pc == types.PieceNone {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pc.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if r != types.RankLength-1 {
			sb.WriteString("/")
		}
	}
	sb.WriteString(" ")
	sb.WriteString(rec.SideToMove.String())
	sb.WriteString(" ")
	sb.WriteString(rec.CastlingRights.String())
	sb.WriteString(" ")
	sb.WriteString(rec.EnPassantSquare.String())
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(rec.HalfMoveClock))
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(rec.FullMoveNumber))
	return sb.String()
}
