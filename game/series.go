// Series of Games
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

package game

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go-ttt"
	"go-ttt/bot"
	"go-ttt/cmd"
	"go-ttt/proto"
)

// Pick the search strategy for the Nth game
//
// Unless configured, a human is asked.  Unattended games alternate
// between the strategies.
func strategy(conf *cmd.Conf, h *proto.Human, n uint) (bot.Strategy, bool) {
	if conf.Game.Strategy != "" {
		s, err := bot.ParseStrategy(conf.Game.Strategy)
		return s, err == nil
	}
	if h != nil {
		return h.AskStrategy()
	}
	if n%2 == 1 {
		return bot.MINIMAX, true
	}
	return bot.ALPHABETA, true
}

// Series plays GAMES games against the computer, communicating over
// RW.  Each game is started with fresh diagnostics.  The series ends
// early if the human gives up.
func Series(ctx context.Context, db cmd.Database, conf *cmd.Conf, rw io.ReadWriter, games uint) []*ttt.Game {
	var (
		played []*ttt.Game
		human  = proto.MakeHuman(rw, "Human")
		stars  = strings.Repeat("*", 50)
	)

	for n := uint(1); n <= games; n++ {
		fmt.Fprintf(rw, "\n%s\nSTARTING GAME %d\n%s\n", stars, n, stars)

		var (
			x ttt.Agent
			h *proto.Human
		)
		switch conf.Game.Opponent {
		case "random":
			x = bot.MakeRandom(conf.Game.Seed + int64(n))
		default:
			h = human
			x = h
			h.Greet()
		}

		s, ok := strategy(conf, h, n)
		if !ok {
			break
		}

		g := ttt.MakeGame(x, bot.MakeMinMax(s))
		g.Strategy = s.String()
		outcome := Play(ctx, g, db, conf.Game.Retries)
		played = append(played, g)

		if h == nil {
			fmt.Fprintf(rw, "\n%s\nResult: %s\n", g.Board, cmd.Winner(g))
			if err := cmd.Statistics(rw, g); err != nil {
				ttt.Debug.Print(err)
			}
		}
		if outcome == ttt.ABORTED {
			break
		}

		if h != nil && conf.Game.Pause && n < games {
			prompt := fmt.Sprintf("\nPress Enter to start Game %d...", n+1)
			if !h.Pause(prompt) {
				break
			}
		}
	}

	return played
}
