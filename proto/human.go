// Human Players
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

package proto

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go-ttt"
	"go-ttt/bot"
	"go-ttt/cmd"
)

// Human wraps a text stream into a player
//
// The same stream may be a terminal or a network connection.  A
// closed input stream is interpreted as giving up.
type Human struct {
	user *ttt.User
	rw   io.ReadWriter
	in   *bufio.Scanner
	seen *ttt.Move // last move reported to the human
}

func MakeHuman(rw io.ReadWriter, name string) *Human {
	return &Human{
		user: &ttt.User{
			Name:  name,
			Descr: "A human player",
		},
		rw: rw,
		in: bufio.NewScanner(rw),
	}
}

func (h *Human) User() *ttt.User { return h.user }
func (h *Human) String() string  { return "human" }

func (h *Human) printf(format string, args ...interface{}) {
	_, err := fmt.Fprintf(h.rw, format, args...)
	if err != nil {
		ttt.Debug.Print(err)
	}
}

// Prompt the human and wait for a line of input
func (h *Human) readLine(prompt string) (string, bool) {
	h.printf("%s", prompt)
	if !h.in.Scan() {
		if err := h.in.Err(); err != nil {
			ttt.Debug.Print(err)
		}
		return "", false
	}
	return strings.TrimSpace(h.in.Text()), true
}

// Greet explains the rules of the game
func (h *Human) Greet() {
	h.printf("=== Tic Tac Toe vs AI ===\n" +
		"You play as X, computer plays as O\n" +
		"Enter moves as: row col (using 0, 1, 2)\n")
}

// AskStrategy lets the human pick the search strategy of the
// computer.  If the input was closed, the second value is false.
func (h *Human) AskStrategy() (bot.Strategy, bool) {
	for {
		h.printf("\nChoose AI algorithm:\n" +
			"1 - Minimax\n" +
			"2 - Alpha Beta Pruning\n")
		choice, ok := h.readLine("Enter 1 or 2: ")
		if !ok {
			return 0, false
		}

		switch choice {
		case "1":
			h.printf("Using Minimax algorithm\n")
			return bot.MINIMAX, true
		case "2":
			h.printf("Using Alpha-Beta Pruning\n")
			return bot.ALPHABETA, true
		default:
			h.printf("Invalid choice, try again\n")
		}
	}
}

// Pause until the human confirms with a new line
func (h *Human) Pause(prompt string) bool {
	_, ok := h.readLine(prompt)
	return ok
}

// Parse a move, returning a message for the human if it is invalid
func parse(input string, b *ttt.Board) (ttt.Square, string) {
	var sq ttt.Square

	parts := strings.Fields(input)
	if len(parts) != 2 {
		return sq, "Please enter row and column separated by space"
	}

	row, err := strconv.Atoi(parts[0])
	if err != nil {
		return sq, "Please enter valid numbers"
	}
	col, err := strconv.Atoi(parts[1])
	if err != nil {
		return sq, "Please enter valid numbers"
	}

	if row < 0 || row >= ttt.Size || col < 0 || col >= ttt.Size {
		return sq, "Numbers must be 0, 1, or 2"
	}
	if !b.Legal(row, col) {
		return sq, "That spot is taken, try another"
	}

	sq.Row, sq.Col = row, col
	return sq, ""
}

func who(a ttt.Agent) string {
	if a == nil || a.User() == nil || a.User().Name == "" {
		return "Opponent"
	}
	return a.User().Name
}

// Report the last move of the opponent, unless it was already shown
func (h *Human) announce(g *ttt.Game) {
	l := g.Last
	if l == nil || l == h.seen || l.Agent == ttt.Agent(h) {
		return
	}
	h.printf("%s chose position %s\n", who(l.Agent), l.Choice)
	h.seen = l
}

// Request a move from the human
func (h *Human) Request(g *ttt.Game) (*ttt.Move, bool) {
	h.announce(g)
	h.printf("\nBoard Status:\n%s\n", g.Board)
	h.printf("Your turn:\n")

	for {
		input, ok := h.readLine("Your move (row col): ")
		if !ok {
			return nil, true
		}

		sq, msg := parse(input, &g.Board)
		if msg != "" {
			h.printf("%s\n", msg)
			continue
		}

		// Show the move before the opponent starts thinking
		n := g.Board
		n.Apply(sq.Row, sq.Col, g.Current)
		if !n.Status().Over() {
			h.printf("\nBoard Status:\n%s\n", n)
			h.printf("%s is calculating move...\n",
				who(g.Player(g.Current.Opponent())))
		}

		return &ttt.Move{
			Choice: sq,
			Agent:  h,
			Game:   g,
			Stamp:  time.Now(),
		}, false
	}
}

// Finished shows the final position and the result
func (h *Human) Finished(g *ttt.Game) {
	h.announce(g)
	h.printf("\nBoard Status:\n%s\n", g.Board)

	banner := strings.Repeat("=", 40)
	h.printf("\n%s\nGAME FINISHED\n%s\n", banner, banner)

	switch w := g.Outcome.Winner(); {
	case g.Outcome == ttt.ABORTED:
		h.printf("The game was aborted\n")
	case w == ttt.Empty:
		h.printf("It's a tie game\n")
	case g.Player(w) == ttt.Agent(h):
		h.printf("You won! Great job!\n")
	default:
		h.printf("AI wins this round\n")
	}

	if err := cmd.Statistics(h.rw, g); err != nil {
		ttt.Debug.Print(err)
	}
}
