// Random Agent
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
	"math/rand"
	"time"

	"go-ttt"
)

type random struct {
	user *ttt.User // database entry
	rng  *rand.Rand
}

func (r *random) Request(g *ttt.Game) (*ttt.Move, bool) {
	if g.Board.Status().Over() {
		panic("Unexpected final state")
	}

	// Request must not be called on a full board, which is
	// always a final state.
	legal := g.Board.Moves()
	return &ttt.Move{
		Choice:  legal[r.rng.Intn(len(legal))],
		Comment: "[random move]",
		Agent:   r,
		Game:    g,
		Stamp:   time.Now(),
	}, false
}

func (r *random) User() *ttt.User { return r.user }
func (r *random) String() string  { return "random" }
func (*random) IsBot()            {}

// MakeRandom returns an agent that only makes random moves
//
// Games played with the same SEED are reproducible.
func MakeRandom(seed int64) ttt.Agent {
	return &random{
		user: &ttt.User{
			Name:  "Random",
			Descr: "An agent that only makes random moves",
		},
		rng: rand.New(rand.NewSource(seed)),
	}
}
