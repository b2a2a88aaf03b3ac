// MinMax Agent
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
	"time"

	"go-ttt"
)

type minmax struct {
	strategy Strategy
	user     *ttt.User // database entry
}

func (m *minmax) Request(g *ttt.Game) (*ttt.Move, bool) {
	if g.Board.Status().Over() {
		panic("Unexpected final state")
	}

	side := g.Side(m)
	calls := uint64(0)
	if g.Stats != nil {
		calls = g.Stats.Calls
	}
	move, ev, ok := BestMove(g.Board, side, m.strategy, g.Stats)
	if !ok || !g.Board.Legal(move.Row, move.Col) {
		panic(fmt.Sprintf("Proposing illegal move %s for %s given %s",
			move, side, g.Board.Spec()))
	}
	if g.Stats != nil {
		ttt.Debug.Printf("Game %d: %s chose %s (%d) after %d calls",
			g.Id, m, move, ev, g.Stats.Calls-calls)
	}

	return &ttt.Move{
		Choice:  move,
		Comment: fmt.Sprintf("Evaluation: %d", ev),
		Agent:   m,
		Game:    g,
		Stamp:   time.Now(),
	}, false
}

func (m *minmax) User() *ttt.User    { return m.user }
func (m *minmax) String() string     { return m.strategy.String() }
func (m *minmax) Strategy() Strategy { return m.strategy }
func (*minmax) IsBot()               {}

func MakeMinMax(s Strategy) ttt.Agent {
	return &minmax{
		strategy: s,
		user: &ttt.User{
			Name:  "AI",
			Descr: fmt.Sprintf("Exhaustive search using %s.", s.Title()),
		},
	}
}
