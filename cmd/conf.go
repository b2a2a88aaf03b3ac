// Configuration
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

package cmd

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go-ttt"
	"go-ttt/bot"

	"github.com/BurntSushi/toml"
)

const defconf = "go-ttt.toml"

func init() {
	def := &defaultConfig

	flag.UintVar(&def.Game.Games, "games", def.Game.Games,
		"Number of games to play in a row")
	flag.StringVar(&def.Game.Strategy, "strategy", def.Game.Strategy,
		"Search strategy of the computer (minimax or alphabeta, ask if empty)")
	flag.StringVar(&def.Game.Opponent, "opponent", def.Game.Opponent,
		"Who plays against the computer (human or random)")
	flag.Int64Var(&def.Game.Seed, "seed", def.Game.Seed,
		"Seed for the random opponent")
	flag.UintVar(&def.Game.Retries, "retries", def.Game.Retries,
		"Number of illegal moves tolerated before a game is aborted")
	flag.BoolVar(&def.Game.Pause, "pause", def.Game.Pause,
		"Wait for confirmation between games")

	flag.StringVar(&def.Database.File, "db", def.Database.File,
		"Database to record games in")

	flag.BoolVar(&def.Web.Enabled, "web", def.Web.Enabled,
		"Serve games over WebSocket instead of the terminal")
	flag.UintVar(&def.Web.Port, "wwwport", def.Web.Port,
		"Port to use for the HTTP server")

	flag.BoolVar(&debug, "debug", debug, "Enable debug output")
	flag.BoolVar(&silent, "silent", silent, "Disable regular log output")
	flag.BoolVar(&dump, "dump-config", dump, "Dump configuration to standard output")
	flag.StringVar(&cfile, "conf", cfile, "Path to configuration file")
}

type DatabaseConf struct {
	File string `toml:"file"`
}

type GameConf struct {
	Games    uint   `toml:"games"`
	Strategy string `toml:"strategy,omitempty"`
	Opponent string `toml:"opponent"`
	Seed     int64  `toml:"seed"`
	Retries  uint   `toml:"retries"`
	Pause    bool   `toml:"pause"`
}

type WebConf struct {
	Enabled bool `toml:"enabled"`
	Port    uint `toml:"port"`
}

type Conf struct {
	Database DatabaseConf `toml:"database"`
	Game     GameConf     `toml:"game"`
	Web      WebConf      `toml:"web"`
}

// Configuration object used by default
//
// The database lives in memory and disappears with the process.
var defaultConfig = Conf{
	Database: DatabaseConf{
		File: "file:go-ttt?mode=memory&cache=shared",
	},
	Game: GameConf{
		Games:    3,
		Opponent: "human",
		Seed:     1,
		Retries:  5,
		Pause:    true,
	},
	Web: WebConf{
		Enabled: false,
		Port:    8080,
	},
}

var (
	debug  = false
	silent = false
	dump   = false
	cfile  = defconf
)

// Default returns a copy of the default configuration
func Default() *Conf {
	c := defaultConfig
	return &c
}

// Load parses a configuration from R on top of the defaults
func Load(r io.Reader) (*Conf, error) {
	c := defaultConfig
	if _, err := toml.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	return &c, c.Check()
}

// Check reports invalid configuration values
func (c *Conf) Check() error {
	if c.Game.Strategy != "" {
		if _, err := bot.ParseStrategy(c.Game.Strategy); err != nil {
			return err
		}
	}
	switch c.Game.Opponent {
	case "human", "random":
	default:
		return fmt.Errorf("unknown opponent %q", c.Game.Opponent)
	}
	if c.Game.Games == 0 {
		return fmt.Errorf("at least one game has to be played")
	}
	return nil
}

// Open the configuration file and return it
//
// A missing default configuration file is not an error, any other
// problem is fatal.
func LoadConf() *Conf {
	ttt.SetVerbosity(debug, silent)

	var c *Conf
	file, err := os.Open(cfile)
	switch {
	case err == nil:
		defer file.Close()
		c, err = Load(file)
		if err != nil {
			log.Fatal(cfile, ": ", err)
		}
	case os.IsNotExist(err) && cfile == defconf:
		c = Default()
		if err = c.Check(); err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatal(err)
	}

	// Dump the configuration onto the disk if requested
	if dump {
		err = c.Dump(os.Stdout)
		if err != nil {
			log.Fatalln("Failed to dump default configuration:", err)
		}
		os.Exit(0)
	}

	return c
}

// Serialise the configuration into a writer
func (c *Conf) Dump(wr io.Writer) error {
	return toml.NewEncoder(wr).Encode(c)
}
