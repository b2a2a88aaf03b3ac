// Search Implementation Tests
//
// Copyright (c) 2022, 2023  Philip Kaludercic
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

package bot

import (
	"math"
	"testing"

	"go-ttt"
)

var strategies = []Strategy{MINIMAX, ALPHABETA}

func TestBestMove(t *testing.T) {
	for i, test := range []struct {
		state    string
		side     ttt.Cell
		expected ttt.Square
		score    int
	}{
		{ // immediate win
			state:    "XX_/OO_/___",
			side:     ttt.O,
			expected: ttt.Square{Row: 1, Col: 2},
			score:    10,
		},
		{ // the same position from the other side
			state:    "OO_/XX_/___",
			side:     ttt.X,
			expected: ttt.Square{Row: 1, Col: 2},
			score:    10,
		},
		{ // two winning moves, the first one is chosen
			state:    "OO_/OXX/_XX",
			side:     ttt.O,
			expected: ttt.Square{Row: 0, Col: 2},
			score:    10,
		},
		{ // the only move that doesn't lose
			state:    "XX_/_O_/___",
			side:     ttt.O,
			expected: ttt.Square{Row: 0, Col: 2},
			score:    0,
		},
		{ // the last free square ends in a draw
			state:    "XOX/XOO/OX_",
			side:     ttt.X,
			expected: ttt.Square{Row: 2, Col: 2},
			score:    0,
		},
		{ // only a corner avoids a fork
			state:    "O__/_X_/__X",
			side:     ttt.O,
			expected: ttt.Square{Row: 0, Col: 2},
			score:    0,
		},
	} {
		state, err := ttt.Parse(test.state)
		if err != nil {
			t.Fatalf("Parse error: %s", err)
		}

		for _, s := range strategies {
			var st ttt.Stats
			move, ev, ok := BestMove(state, test.side, s, &st)
			switch {
			case !ok:
				t.Errorf("[%d/%s] No move proposed given %s",
					i, s, state.Spec())
			case !state.Legal(move.Row, move.Col):
				t.Errorf("[%d/%s] Proposed illegal move %s given %s (%d)",
					i, s, move, state.Spec(), ev)
			case move != test.expected:
				t.Errorf("[%d/%s] Expected move %s, but got %s (%d)",
					i, s, test.expected, move, ev)
			case ev != test.score:
				t.Errorf("[%d/%s] Expected score %d, but got %d",
					i, s, test.score, ev)
			}
			if st.Calls == 0 {
				t.Errorf("[%d/%s] No calls were counted", i, s)
			}
		}
	}
}

func TestBestMoveFull(t *testing.T) {
	state, err := ttt.Parse("XOX/XOO/OXX")
	if err != nil {
		t.Fatal(err)
	}
	if state.Status() != ttt.DRAW {
		t.Fatalf("Expected a draw, got %s", state.Status())
	}

	for _, s := range strategies {
		var st ttt.Stats
		if move, _, ok := BestMove(state, ttt.O, s, &st); ok {
			t.Errorf("[%s] Proposed move %s on a full board", s, move)
		}
		if st.Calls != 0 {
			t.Errorf("[%s] Searched %d nodes on a full board", s, st.Calls)
		}
	}
}

func TestBestMoveLastSquare(t *testing.T) {
	state, err := ttt.Parse("XOX/XOO/OX_")
	if err != nil {
		t.Fatal(err)
	}
	if state.Status() != ttt.ONGOING {
		t.Fatalf("Expected an ongoing game, got %s", state.Status())
	}

	for _, s := range strategies {
		b := state
		move, ev, ok := BestMove(b, ttt.O, s, nil)
		if !ok || ev != 0 {
			t.Fatalf("[%s] Unexpected result %s (%d)", s, move, ev)
		}
		if !b.Apply(move.Row, move.Col, ttt.O) {
			t.Fatalf("[%s] Illegal move %s", s, move)
		}
		if b.Status() != ttt.DRAW {
			t.Errorf("[%s] Expected a draw, got %s", s, b.Status())
		}
	}
}

func TestTerminalScore(t *testing.T) {
	for i, test := range []struct {
		state string
		depth int
		score int
	}{
		{state: "OOO/XX_/X__", depth: 0, score: 10},
		{state: "OOO/XX_/X__", depth: 3, score: 7},
		{state: "XO_/XO_/X_O", depth: 0, score: -10},
		{state: "XO_/XO_/X_O", depth: 4, score: -6},
		{state: "XOX/XOO/OXX", depth: 5, score: 0},
	} {
		state, err := ttt.Parse(test.state)
		if err != nil {
			t.Fatalf("Parse error: %s", err)
		}

		var st ttt.Stats
		if ev := Minimax(state, ttt.O, ttt.X, test.depth, &st); ev != test.score {
			t.Errorf("[%d] Minimax scored %s as %d, expected %d",
				i, test.state, ev, test.score)
		}
		ev := AlphaBeta(state, ttt.O, ttt.X, test.depth,
			math.MinInt, math.MaxInt, &st)
		if ev != test.score {
			t.Errorf("[%d] AlphaBeta scored %s as %d, expected %d",
				i, test.state, ev, test.score)
		}
		if st.Calls != 2 {
			t.Errorf("[%d] Terminal states expanded (%d calls)", i, st.Calls)
		}
	}
}

func TestEvaluate(t *testing.T) {
	for b := range reachable() {
		for _, π := range []ttt.Cell{ttt.X, ttt.O} {
			for _, Δ := range []int{0, 4} {
				φ, over := evaluate(&b, π, Δ)
				if over != b.Status().Over() {
					t.Fatalf("%s: expected over to be %t",
						b.Spec(), b.Status().Over())
				}

				expected := 0
				switch score := b.Score(π); {
				case !over:
				case score > 0:
					expected = score - Δ
				case score < 0:
					expected = score + Δ
				}
				if φ != expected {
					t.Fatalf("%s for %s at depth %d: expected %d, got %d",
						b.Spec(), π, Δ, expected, φ)
				}
			}
		}
	}
}

func TestMinimaxTreeSize(t *testing.T) {
	var (
		empty ttt.Board
		st    ttt.Stats
	)

	// The complete game tree of tic-tac-toe has 549946 nodes
	if ev := Search(MINIMAX, empty, ttt.X, ttt.X, &st); ev != 0 {
		t.Errorf("The empty board is worth %d", ev)
	}
	if st.Calls != 549946 {
		t.Errorf("Expected 549946 calls, got %d", st.Calls)
	}

	// BestMove does not count the root
	st.Reset()
	if _, _, ok := BestMove(empty, ttt.O, MINIMAX, &st); !ok {
		t.Fatal("No move on the empty board")
	}
	if st.Calls != 549945 {
		t.Errorf("Expected 549945 calls, got %d", st.Calls)
	}
	if st.Elapsed <= 0 {
		t.Errorf("No time was recorded")
	}
}

// reachable collects all positions that can occur in a game, mapped
// to the side that has to move next.
func reachable() map[ttt.Board]ttt.Cell {
	seen := make(map[ttt.Board]ttt.Cell)

	var walk func(ttt.Board, ttt.Cell)
	walk = func(b ttt.Board, ω ttt.Cell) {
		if _, ok := seen[b]; ok {
			return
		}
		seen[b] = ω
		if b.Status().Over() {
			return
		}
		for _, m := range b.Moves() {
			n := b
			n[m.Row][m.Col] = ω
			walk(n, ω.Opponent())
		}
	}
	walk(ttt.Board{}, ttt.X)

	return seen
}

func TestStrategiesAgree(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive comparison")
	}

	states := reachable()
	if len(states) != 5478 {
		t.Errorf("Expected 5478 reachable states, found %d", len(states))
	}

	for b, ω := range states {
		for _, π := range []ttt.Cell{ttt.X, ttt.O} {
			var mm, ab ttt.Stats

			φ := Minimax(b, π, ω, 0, &mm)
			ψ := AlphaBeta(b, π, ω, 0, math.MinInt, math.MaxInt, &ab)
			if φ != ψ {
				t.Fatalf("Minimax (%d) and AlphaBeta (%d) disagree on %s for %s",
					φ, ψ, b.Spec(), π)
			}
			if ab.Calls > mm.Calls {
				t.Fatalf("AlphaBeta made more calls (%d) than Minimax (%d) on %s",
					ab.Calls, mm.Calls, b.Spec())
			}
		}
	}
}

func TestBestMoveAgree(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive comparison")
	}

	for b, ω := range reachable() {
		if b.Status().Over() {
			continue
		}

		var mm, ab ttt.Stats
		μ, φ, ok1 := BestMove(b, ω, MINIMAX, &mm)
		ν, ψ, ok2 := BestMove(b, ω, ALPHABETA, &ab)
		if !ok1 || !ok2 {
			t.Fatalf("No move given %s", b.Spec())
		}
		if !b.Legal(μ.Row, μ.Col) {
			t.Fatalf("Illegal move %s given %s", μ, b.Spec())
		}
		if μ != ν || φ != ψ {
			t.Fatalf("Strategies disagree on %s: %s (%d) vs. %s (%d)",
				b.Spec(), μ, φ, ν, ψ)
		}
		if ab.Calls > mm.Calls {
			t.Fatalf("AlphaBeta made more calls (%d) than Minimax (%d) on %s",
				ab.Calls, mm.Calls, b.Spec())
		}
	}
}

func TestAlphaBetaPrunes(t *testing.T) {
	for _, spec := range []string{
		"___/___/___",
		"XX_/OO_/___",
		"X__/_O_/__X",
	} {
		state, err := ttt.Parse(spec)
		if err != nil {
			t.Fatal(err)
		}

		var mm, ab ttt.Stats
		BestMove(state, ttt.O, MINIMAX, &mm)
		BestMove(state, ttt.O, ALPHABETA, &ab)
		if ab.Calls >= mm.Calls {
			t.Errorf("No pruning on %s: %d vs. %d calls",
				spec, ab.Calls, mm.Calls)
		}
	}
}

func TestSearchDoesNotMutate(t *testing.T) {
	state, err := ttt.Parse("X__/_O_/___")
	if err != nil {
		t.Fatal(err)
	}
	orig := state

	for _, s := range strategies {
		BestMove(state, ttt.X, s, nil)
		Search(s, state, ttt.X, ttt.X, new(ttt.Stats))
		if state != orig {
			t.Fatalf("[%s] Board changed from %s to %s",
				s, orig.Spec(), state.Spec())
		}
	}
}

// Optimal play from any opening leads to a draw
func TestOptimalPlay(t *testing.T) {
	for _, s := range strategies {
		for _, open := range (&ttt.Board{}).Moves() {
			if s == MINIMAX && testing.Short() && open != (ttt.Square{Row: 1, Col: 1}) {
				continue
			}

			var (
				b  ttt.Board
				st ttt.Stats
				ω  = ttt.X
			)
			b.Apply(open.Row, open.Col, ω)
			ω = ω.Opponent()

			for !b.Status().Over() {
				m, _, ok := BestMove(b, ω, s, &st)
				if !ok {
					t.Fatalf("[%s] No move on %s", s, b.Spec())
				}
				if !b.Apply(m.Row, m.Col, ω) {
					t.Fatalf("[%s] Illegal move %s on %s", s, m, b.Spec())
				}
				ω = ω.Opponent()
			}

			if b.Status() != ttt.DRAW {
				t.Errorf("[%s] Opening %s ended with %s (%s)",
					s, open, b.Status(), b.Spec())
			}
		}
	}
}

func TestParseStrategy(t *testing.T) {
	for i, test := range []struct {
		name     string
		expected Strategy
		fail     bool
	}{
		{name: "minimax", expected: MINIMAX},
		{name: "1", expected: MINIMAX},
		{name: " Alpha-Beta ", expected: ALPHABETA},
		{name: "alpha_beta", expected: ALPHABETA},
		{name: "2", expected: ALPHABETA},
		{name: "3", fail: true},
		{name: "", fail: true},
	} {
		s, err := ParseStrategy(test.name)
		if test.fail {
			if err == nil {
				t.Errorf("[%d] Expected %q to be rejected", i, test.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("[%d] Unexpected error: %s", i, err)
		} else if s != test.expected {
			t.Errorf("[%d] Expected %s, got %s", i, test.expected, s)
		}
	}
}
