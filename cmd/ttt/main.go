// Entry point
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

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go-ttt"
	"go-ttt/cmd"
	"go-ttt/db"
	"go-ttt/game"
	"go-ttt/web"
)

// terminal joins standard input and output
type terminal struct {
	io.Reader
	io.Writer
}

func main() {
	flag.Parse()
	if flag.NArg() != 0 {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Too many arguments passed to %s.\nUsage:\n",
			os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load the configuration from disk (if available)
	config := cmd.LoadConf()
	state := cmd.MakeState()

	// Enable the database
	db.Register(state, config)

	// Serve games over the network, until interrupted
	if config.Web.Enabled {
		web.Register(state, config)
		state.Start(config)
		return
	}

	// ...or play on the terminal, with the database maintained in
	// the background
	state.Launch(config)
	term := terminal{os.Stdin, os.Stdout}
	fmt.Fprintln(term, "Tic-Tac-Toe against an exhaustive search")
	played := game.Series(state.Context, state.Database, config, term, config.Game.Games)
	ttt.Debug.Printf("Played %d games", len(played))

	c := make(chan *ttt.Game)
	go state.Database.QueryGames(state.Context, c)
	if err := cmd.Summary(os.Stdout, c); err != nil {
		log.Print(err)
	}
	for range c {
	}

	state.Shutdown()
}
