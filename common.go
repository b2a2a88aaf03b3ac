// Common Interfaces and constants
//
// Copyright (c) 2021, 2022, 2023  Philip Kaludercic
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
	"fmt"
	"time"
)

type (
	Cell   uint8
	Status uint8
)

const (
	// Possible cell values
	Empty Cell = iota
	X
	O
)

const (
	// Possible game states
	ONGOING Status = iota
	X_WON
	O_WON
	DRAW
	ABORTED
)

func (c Cell) String() string {
	switch c {
	case Empty:
		return " "
	case X:
		return "X"
	case O:
		return "O"
	}
	panic(fmt.Sprintf("Illegal cell: %d", c))
}

// Opponent returns the other side
func (c Cell) Opponent() Cell {
	switch c {
	case X:
		return O
	case O:
		return X
	}
	panic("Empty cells have no opponent")
}

func (s Status) String() string {
	switch s {
	case ONGOING:
		return "Ongoing"
	case X_WON:
		return "X won"
	case O_WON:
		return "O won"
	case DRAW:
		return "Draw"
	case ABORTED:
		return "Aborted"
	default:
		panic(fmt.Sprintf("Illegal status: %d", s))
	}
}

// Winner returns the side that won, or Empty if nobody did
func (s Status) Winner() Cell {
	switch s {
	case X_WON:
		return X
	case O_WON:
		return O
	}
	return Empty
}

// Over returns true if no further moves can be made
func (s Status) Over() bool { return s != ONGOING }

// Square is a position on the board, counting from 0
type Square struct {
	Row, Col int
}

func (s Square) String() string {
	return fmt.Sprintf("(%d, %d)", s.Row, s.Col)
}

type Agent interface {
	// Request a move for the current side of the game.  If the
	// second return value is true, the agent has given up.
	Request(*Game) (*Move, bool)
	User() *User
}

type User struct {
	Id    int64
	Name  string
	Descr string
}

type Game struct {
	// The board the game is being played on
	Board     Board
	Id        uint64
	X         Agent
	O         Agent
	Current   Cell
	Outcome   Status
	MoveCount uint
	// The last move that was made, if any
	Last *Move
	// Name of the search strategy used by the bot
	Strategy string
	// Search diagnostics for this game
	Stats *Stats
}

// MakeGame prepares a new game on an empty board, with X to move
func MakeGame(x, o Agent) *Game {
	return &Game{
		X:       x,
		O:       o,
		Current: X,
		Stats:   &Stats{},
	}
}

func (g *Game) Side(a Agent) Cell {
	switch a {
	case g.X:
		return X
	case g.O:
		return O
	default:
		panic("Unknown Agent")
	}
}

func (g *Game) Player(c Cell) Agent {
	switch c {
	case X:
		return g.X
	case O:
		return g.O
	default:
		panic("Unknown Agent")
	}
}

func (g *Game) Active() Agent {
	return g.Player(g.Current)
}

type Move struct {
	Choice  Square
	Comment string
	Agent   Agent
	Game    *Game
	Stamp   time.Time
}
