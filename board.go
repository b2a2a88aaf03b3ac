// Tic-Tac-Toe Board Implementation
//
// Copyright (c) 2023  Philip Kaludercic
//
// This file is part of go-ttt.
//
// go-ttt is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.
//
// go-ttt is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public
// License, version 3, along with go-ttt. If not, see
// <http://www.gnu.org/licenses/>

package ttt

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const Size = 3

var repr = regexp.MustCompile(`^\s*([XO_]{3})/?([XO_]{3})/?([XO_]{3})\s*$`)

// Board represents a 3x3 grid
//
// The board is a value type, assigning it to a new variable creates
// an independent copy.  The search relies on this to explore
// hypothetical states without touching the caller's board.
type Board [Size][Size]Cell

// Every line that wins the game, in the order they are checked: The
// three rows, the three columns, the main diagonal and the
// anti-diagonal.
var lines = [...][Size]Square{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Parse reads a board in the format produced by Spec
func Parse(spec string) (Board, error) {
	var b Board

	match := repr.FindStringSubmatch(strings.ToUpper(spec))
	if match == nil {
		return b, errors.New("invalid specification")
	}

	for row, part := range match[1:] {
		for col, c := range part {
			switch c {
			case 'X':
				b[row][col] = X
			case 'O':
				b[row][col] = O
			}
		}
	}

	return b, nil
}

// Spec converts a board into a compact representation
//
// Rows are separated by slashes, empty cells are written as an
// underscore, e.g. "XX_/OO_/___".
func (b Board) Spec() string {
	var buf strings.Builder

	for row := range b {
		if row > 0 {
			buf.WriteByte('/')
		}
		for _, c := range b[row] {
			if c == Empty {
				buf.WriteByte('_')
			} else {
				buf.WriteString(c.String())
			}
		}
	}

	return buf.String()
}

// String renders the board for a human, with row and column labels
func (b Board) String() string {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "  0   1   2")
	for row := range b {
		fmt.Fprintf(&buf, "%d ", row)
		for col, c := range b[row] {
			fmt.Fprint(&buf, c)
			if col < Size-1 {
				fmt.Fprint(&buf, " | ")
			}
		}
		fmt.Fprintln(&buf)
		if row < Size-1 {
			fmt.Fprintln(&buf, "  ---------")
		}
	}

	return buf.String()
}

// Legal returns true if a piece may be placed on ROW and COL
func (b *Board) Legal(row, col int) bool {
	if row < 0 || row >= Size {
		return false
	}
	if col < 0 || col >= Size {
		return false
	}
	return b[row][col] == Empty
}

// Apply places a piece for SIDE, if the move is legal
func (b *Board) Apply(row, col int, side Cell) bool {
	if side == Empty {
		panic("Cannot apply an empty piece")
	}
	if !b.Legal(row, col) {
		return false
	}
	b[row][col] = side
	return true
}

// Moves returns all empty squares in row-major order
//
// The order determines which of several equally good moves the
// search picks, so it must not change.
func (b *Board) Moves() []Square {
	moves := make([]Square, 0, Size*Size)
	for row := range b {
		for col := range b[row] {
			if b[row][col] == Empty {
				moves = append(moves, Square{row, col})
			}
		}
	}
	return moves
}

// Free counts the number of empty squares
func (b *Board) Free() (n int) {
	for row := range b {
		for _, c := range b[row] {
			if c == Empty {
				n++
			}
		}
	}
	return
}

func (b *Board) Full() bool { return b.Free() == 0 }

// Status determines if the game is over, and if so who won
func (b *Board) Status() Status {
	for _, l := range lines {
		c := b[l[0].Row][l[0].Col]
		if c == Empty {
			continue
		}
		if c == b[l[1].Row][l[1].Col] && c == b[l[2].Row][l[2].Col] {
			if c == X {
				return X_WON
			}
			return O_WON
		}
	}

	if b.Full() {
		return DRAW
	}
	return ONGOING
}

// Score evaluates a board from the perspective of MAX
//
// A won game is worth 10 points, a lost game -10.  Draws and
// unfinished games are worth nothing.  Adjusting the score for the
// search depth is left to the search.
func (b *Board) Score(max Cell) int {
	switch b.Status().Winner() {
	case Empty:
		return 0
	case max:
		return 10
	default:
		return -10
	}
}
