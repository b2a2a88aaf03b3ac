// Game Model
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

package game

import (
	"context"

	"go-ttt"
	"go-ttt/cmd"
)

// Agents that want to know when a game has ended
type watcher interface {
	Finished(*ttt.Game)
}

// Bots are expected to never propose an illegal move
type computer interface {
	IsBot()
}

// Move applies M to the game, if it is legal
func Move(g *ttt.Game, m *ttt.Move) bool {
	if g.Current != g.Side(m.Agent) {
		panic("Unexpected side")
	}
	if !g.Board.Apply(m.Choice.Row, m.Choice.Col, g.Current) {
		return false
	}

	m.Game = g
	g.Last = m
	g.MoveCount++
	g.Current = g.Current.Opponent()
	return true
}

// Request a legal move from the active agent
//
// An agent may try RETRIES times to propose a legal move.  If it
// fails to do so or gives up, the second return value is false.
func request(g *ttt.Game, retries uint) (*ttt.Move, bool) {
	dbg := ttt.Debug.Printf

	for try := uint(0); try <= retries; try++ {
		m, resign := g.Active().Request(g)
		if resign {
			dbg("Game %d: %s resigned", g.Id, g.Current)
			return nil, false
		}
		if Move(g, m) {
			return m, true
		}

		if _, ok := g.Active().(computer); ok {
			panic("Bot proposed an illegal move")
		}
		dbg("Game %d: %s made illegal move %s",
			g.Id, g.Current, m.Choice)
	}

	return nil, false
}

// Play a game until it is over
//
// The diagnostics of the game are reset before the first move, and
// the game and every move are recorded in DB.
func Play(ctx context.Context, g *ttt.Game, db cmd.Database, retries uint) ttt.Status {
	dbg := ttt.Debug.Printf

	if g.Stats == nil {
		g.Stats = &ttt.Stats{}
	}
	g.Stats.Reset()

	g.Outcome = ttt.ONGOING
	db.SaveGame(ctx, g)

	for !g.Board.Status().Over() {
		if ctx.Err() != nil {
			g.Outcome = ttt.ABORTED
			goto save
		}

		m, ok := request(g, retries)
		if !ok {
			g.Outcome = ttt.ABORTED
			goto save
		}
		dbg("Game %d: %s made the move %s (%s)",
			g.Id, g.Board.Spec(), m.Choice, m.Comment)

		// Save the move in the database, and take as much
		// time as necessary.
		db.SaveMove(ctx, m)
	}

	g.Outcome = g.Board.Status()
save:
	db.SaveGame(ctx, g)
	dbg("Game %d finished (%s, %s)", g.Id, g.Outcome, g.Stats)

	for _, a := range []ttt.Agent{g.X, g.O} {
		if w, ok := a.(watcher); ok {
			w.Finished(g)
		}
	}

	return g.Outcome
}
