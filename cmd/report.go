// Game Reports
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

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go-ttt"
	"go-ttt/bot"
)

// algorithm returns the human readable name of a strategy
func algorithm(name string, short bool) string {
	s, err := bot.ParseStrategy(name)
	if err != nil {
		return name
	}
	if short {
		return s.Short()
	}
	return s.Title()
}

// Winner describes who won a finished game
func Winner(g *ttt.Game) string {
	switch g.Outcome {
	case ttt.X_WON, ttt.O_WON:
		a := g.Player(g.Outcome.Winner())
		if a != nil && a.User() != nil && a.User().Name != "" {
			return a.User().Name
		}
		return g.Outcome.Winner().String()
	default:
		return g.Outcome.String()
	}
}

// Statistics prints the search diagnostics of a single game
func Statistics(w io.Writer, g *ttt.Game) error {
	var st ttt.Stats
	if g.Stats != nil {
		st = *g.Stats
	}

	_, err := fmt.Fprintf(w, "\nStatistics:\n"+
		"Algorithm: %s\n"+
		"AI thinking time: %.2f milliseconds\n"+
		"Function calls made: %d\n",
		algorithm(g.Strategy, false), st.Millis(), st.Calls)
	return err
}

// Summary prints a table of all games received from C
func Summary(w io.Writer, c <-chan *ttt.Game) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "\n%s\n", strings.Repeat("=", 70))
	fmt.Fprintln(bw, "RESULTS SUMMARY")
	fmt.Fprintf(bw, "%s\n", strings.Repeat("=", 70))
	fmt.Fprintf(bw, "%-6s %-18s %-10s %-8s %-10s\n",
		"Game", "Algorithm", "Winner", "Calls", "Time(ms)")
	fmt.Fprintln(bw, strings.Repeat("-", 70))

	n := 0
	for g := range c {
		n++
		var st ttt.Stats
		if g.Stats != nil {
			st = *g.Stats
		}
		fmt.Fprintf(bw, "%-6d %-18s %-10s %-8d %-10.2f\n",
			n, algorithm(g.Strategy, true), Winner(g),
			st.Calls, st.Millis())
	}
	if n == 0 {
		fmt.Fprintln(bw, "No games were played.")
	}

	return bw.Flush()
}

// Transcript prints the moves of a game, one board per move
func Transcript(w io.Writer, g *ttt.Game, moves <-chan *ttt.Move) error {
	var b ttt.Board
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Game %d: %s (X) against %s (O) using %s\n",
		g.Id, name(g.X), name(g.O), algorithm(g.Strategy, false))
	for m := range moves {
		side := g.Side(m.Agent)
		if !b.Apply(m.Choice.Row, m.Choice.Col, side) {
			fmt.Fprintf(bw, "Illegal move %s by %s\n", m.Choice, side)
			break
		}
		fmt.Fprintf(bw, "\n%s: %s", side, m.Choice)
		if m.Comment != "" {
			fmt.Fprintf(bw, " [%s]", m.Comment)
		}
		fmt.Fprintf(bw, "\n%s", b)
	}
	fmt.Fprintf(bw, "\nResult: %s\n", Winner(g))

	return bw.Flush()
}

func name(a ttt.Agent) string {
	if a == nil || a.User() == nil {
		return "unknown"
	}
	return a.User().Name
}
