// Exhaustive Game-Tree Search
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
	"fmt"
	"math"
	"strings"
	"time"

	"go-ttt"
)

type Strategy uint8

// Value of a won game before the depth is taken into account
const win = 10

const (
	MINIMAX Strategy = iota
	ALPHABETA
)

func (s Strategy) String() string {
	switch s {
	case MINIMAX:
		return "minimax"
	case ALPHABETA:
		return "alphabeta"
	}
	panic(fmt.Sprintf("Illegal strategy: %d", s))
}

// Title returns a name suitable for reports
func (s Strategy) Title() string {
	switch s {
	case MINIMAX:
		return "Minimax"
	case ALPHABETA:
		return "Alpha-Beta Pruning"
	}
	panic(fmt.Sprintf("Illegal strategy: %d", s))
}

func (s Strategy) Short() string {
	switch s {
	case MINIMAX:
		return "Minimax"
	case ALPHABETA:
		return "Alpha-Beta"
	}
	panic(fmt.Sprintf("Illegal strategy: %d", s))
}

// ParseStrategy accepts the name of a strategy or its menu number
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "1", "minimax":
		return MINIMAX, nil
	case "2", "alphabeta", "alpha_beta", "alpha-beta":
		return ALPHABETA, nil
	}
	return 0, fmt.Errorf("unknown strategy %q", name)
}

// Evaluate a board at depth Δ if the game is over
//
// Winning sooner is better than winning later, and losing later is
// better than losing sooner, hence the depth is subtracted from a win
// and added to a loss.
func evaluate(σ *ttt.Board, π ttt.Cell, Δ int) (int, bool) {
	switch ς := σ.Status(); ς {
	case ttt.ONGOING:
		return 0, false
	case ttt.DRAW:
		return 0, true
	default:
		if ς.Winner() == π {
			return win - Δ, true
		}
		return Δ - win, true
	}
}

// Minimax evaluates σ for the maximising side π, with ω to move
//
// Every invocation is counted in ST, which must not be nil.
func Minimax(σ ttt.Board, π, ω ttt.Cell, Δ int, st *ttt.Stats) int {
	st.Calls++
	if φ, over := evaluate(&σ, π, Δ); over {
		return φ
	}

	var Φ int // best evaluation
	if ω == π {
		Φ = math.MinInt
	} else {
		Φ = math.MaxInt
	}

	for i := 0; i < ttt.Size*ttt.Size; i++ {
		r, c := i/ttt.Size, i%ttt.Size
		if σ[r][c] != ttt.Empty {
			continue
		}

		// σ is a copy, so is n
		n := σ
		n[r][c] = ω
		φ := Minimax(n, π, ω.Opponent(), Δ+1, st)

		if ω == π { // maximising
			if φ > Φ {
				Φ = φ
			}
		} else { // minimising
			if φ < Φ {
				Φ = φ
			}
		}
	}

	return Φ
}

// AlphaBeta evaluates σ like Minimax, but skips branches that cannot
// influence the result
//
// The value is always the same as the one Minimax would compute,
// while the number of calls recorded in ST is never larger.
func AlphaBeta(σ ttt.Board, π, ω ttt.Cell, Δ, α, β int, st *ttt.Stats) int {
	st.Calls++
	if φ, over := evaluate(&σ, π, Δ); over {
		return φ
	}

	var Φ int
	if ω == π {
		Φ = math.MinInt
	} else {
		Φ = math.MaxInt
	}

	for i := 0; i < ttt.Size*ttt.Size; i++ {
		r, c := i/ttt.Size, i%ttt.Size
		if σ[r][c] != ttt.Empty {
			continue
		}

		n := σ
		n[r][c] = ω
		φ := AlphaBeta(n, π, ω.Opponent(), Δ+1, α, β, st)

		if ω == π { // maximising
			if φ > Φ {
				Φ = φ
			}
			if φ > α {
				α = φ
			}
		} else { // minimising
			if φ < Φ {
				Φ = φ
			}
			if φ < β {
				β = φ
			}
		}
		if β <= α {
			break
		}
	}

	return Φ
}

// Search evaluates σ from the root using strategy S
func Search(s Strategy, σ ttt.Board, π, ω ttt.Cell, st *ttt.Stats) int {
	switch s {
	case MINIMAX:
		return Minimax(σ, π, ω, 0, st)
	case ALPHABETA:
		return AlphaBeta(σ, π, ω, 0, math.MinInt, math.MaxInt, st)
	}
	panic(fmt.Sprintf("Illegal strategy: %d", s))
}

// BestMove finds the best move for π on σ
//
// Each legal move is tried in row-major order and the resulting
// position is searched with the opponent to move.  The first move
// with the highest value is chosen.  The time spent is added to ST.
// If σ has no empty squares, the last return value is false.
func BestMove(σ ttt.Board, π ttt.Cell, s Strategy, st *ttt.Stats) (ttt.Square, int, bool) {
	if st == nil {
		st = new(ttt.Stats)
	}
	start := time.Now()
	defer func() { st.Elapsed += time.Since(start) }()

	var (
		μ  ttt.Square // best move
		Φ  = math.MinInt
		ok bool
	)
	for _, m := range σ.Moves() {
		n := σ
		n[m.Row][m.Col] = π
		φ := Search(s, n, π, π.Opponent(), st)
		// Do not replace the move on equal values, so that
		// the first optimal move is kept.
		if φ > Φ {
			Φ, μ, ok = φ, m, true
		}
	}

	return μ, Φ, ok
}
