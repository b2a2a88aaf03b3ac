// Database management
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

package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"go-ttt"
	"go-ttt/cmd"
)

//go:embed *.sql
var sql_dir embed.FS

type db struct {
	// The database connections
	read  *sql.DB
	write *sql.DB

	// The SQL queries are embedded from this directory and are
	// loaded when the database is opened.  QUERIES are the
	// commands handled by READ, and COMMANDS are the queries
	// handled by WRITE.
	queries  map[string]*sql.Stmt
	commands map[string]*sql.Stmt

	// Maintenance requests (SIGUSR1), registered by Open
	maint chan os.Signal
}

// Players loaded from the database are stand-ins that cannot move
type user ttt.User

func (u *user) Request(*ttt.Game) (*ttt.Move, bool) {
	panic("Cannot request a move from a recorded player")
}

func (u *user) User() *ttt.User {
	return (*ttt.User)(u)
}

func name(a ttt.Agent) string {
	if a == nil || a.User() == nil {
		return ""
	}
	return a.User().Name
}

func stats(g *ttt.Game) (uint64, float64) {
	if g.Stats == nil {
		return 0, 0
	}
	return g.Stats.Calls, g.Stats.Millis()
}

func (db *db) scanGame(scan func(dest ...interface{}) error) (*ttt.Game, error) {
	var (
		xname, oname string
		board        string
		millis       float64
		st           ttt.Stats
		g            = &ttt.Game{Stats: &st}
	)

	err := scan(
		&g.Id,
		&xname, &oname,
		&g.Strategy,
		&board,
		&g.Outcome,
		&g.MoveCount,
		&st.Calls,
		&millis)
	if err != nil {
		return nil, err
	}
	st.Elapsed = time.Duration(millis * float64(time.Millisecond))

	g.Board, err = ttt.Parse(board)
	if err != nil {
		return nil, fmt.Errorf("game %d: %w", g.Id, err)
	}
	g.X = &user{Name: xname}
	g.O = &user{Name: oname}
	g.Current = ttt.X
	if g.MoveCount%2 == 1 {
		g.Current = ttt.O
	}

	return g, nil
}

// Collect all games, so that no cursor is open while the
// receiver is consuming them
//
// An open cursor on a shared-cache database locks the table it
// reads from, and concurrent writes would fail instead of waiting.
func (db *db) games(ctx context.Context) ([]*ttt.Game, error) {
	rows, err := db.queries["select-games"].QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []*ttt.Game
	for rows.Next() {
		g, err := db.scanGame(rows.Scan)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// Collect the moves of G in the order they were made
func (db *db) moves(ctx context.Context, g *ttt.Game) ([]*ttt.Move, error) {
	rows, err := db.queries["select-moves"].QueryContext(ctx, g.Id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var moves []*ttt.Move
	for rows.Next() {
		var (
			m    = &ttt.Move{Game: g}
			side string
		)
		err = rows.Scan(&side, &m.Choice.Row, &m.Choice.Col, &m.Comment, &m.Stamp)
		if err != nil {
			return nil, err
		}
		switch side {
		case "X":
			m.Agent = g.X
		case "O":
			m.Agent = g.O
		default:
			return nil, fmt.Errorf("game %d: invalid side %q", g.Id, side)
		}
		moves = append(moves, m)
	}
	return moves, rows.Err()
}

func (db *db) QueryGames(ctx context.Context, c chan<- *ttt.Game) {
	defer close(c)

	games, err := db.games(ctx)
	if err != nil {
		log.Print(err)
		return
	}
	for _, g := range games {
		select {
		case c <- g:
		case <-ctx.Done():
			return
		}
	}
}

func (db *db) QueryGame(ctx context.Context, gid uint64, gc chan<- *ttt.Game, mc chan<- *ttt.Move) {
	defer close(gc)
	defer close(mc)

	row := db.queries["select-game"].QueryRowContext(ctx, gid)
	g, err := db.scanGame(row.Scan)
	if err != nil {
		log.Print(err)
		return
	}
	moves, err := db.moves(ctx, g)
	if err != nil {
		log.Print(err)
		return
	}

	gc <- g
	for _, m := range moves {
		select {
		case mc <- m:
		case <-ctx.Done():
			return
		}
	}
}

func (db *db) SaveGame(ctx context.Context, game *ttt.Game) {
	tx, err := db.write.BeginTx(ctx, nil)
	if err != nil {
		log.Print(err)
		return
	}

	if !db.saveGame(ctx, tx, game) {
		err = tx.Rollback()
		if err != nil {
			log.Print(err)
		}
		return
	}

	err = tx.Commit()
	if err != nil {
		log.Print(err)
	}
}

func (db *db) saveGame(ctx context.Context, tx *sql.Tx, game *ttt.Game) bool {
	calls, millis := stats(game)

	if game.Id == 0 {
		ttt.Debug.Printf("Saving game between %q and %q",
			name(game.X), name(game.O))
		res, err := tx.Stmt(db.commands["insert-game"]).ExecContext(ctx,
			name(game.X), name(game.O), game.Strategy,
			game.Board.Spec(), game.Outcome, game.MoveCount,
			calls, millis)
		if err != nil {
			log.Print(err)
			return false
		}

		id, err := res.LastInsertId()
		if err != nil {
			log.Print(err)
			return false
		}
		game.Id = uint64(id)
	} else {
		_, err := tx.Stmt(db.commands["update-game"]).ExecContext(ctx,
			game.Board.Spec(), game.Outcome, game.MoveCount,
			calls, millis, game.Id)
		if err != nil {
			log.Print(err)
			return false
		}
	}

	return true
}

func (db *db) SaveMove(ctx context.Context, move *ttt.Move) {
	tx, err := db.write.BeginTx(ctx, nil)
	if err != nil {
		log.Print(err)
		return
	}

	game := move.Game
	if !db.saveGame(ctx, tx, game) {
		goto fail
	}

	_, err = tx.Stmt(db.commands["insert-move"]).ExecContext(ctx,
		game.Id,
		game.MoveCount,
		game.Side(move.Agent).String(),
		move.Choice.Row,
		move.Choice.Col,
		move.Comment,
		move.Stamp)
	if err != nil {
		log.Print(err)
		goto fail
	}

	err = tx.Commit()
	if err != nil {
		log.Print(err)
	}
	return

fail:
	err = tx.Rollback()
	if err != nil {
		log.Print(err)
	}
}

func (db *db) Start(st *cmd.State, conf *cmd.Conf) {
	for {
		var err error
		select {
		case <-st.Context.Done():
			return
		case <-db.maint:
			// https://www.sqlite.org/lang_vacuum.html
			ttt.Debug.Print("Vacuuming the database")
			_, err = db.write.Exec("VACUUM;")
		}
		if err != nil {
			log.Print(err)
		}
	}
}

func (db *db) Shutdown() {
	var err error

	signal.Stop(db.maint)

	// https://www.sqlite.org/pragma.html#pragma_optimize
	_, err = db.write.Exec("PRAGMA optimize;")
	if err != nil {
		log.Print(err)
	}

	err = db.write.Close()
	if err != nil {
		log.Print(err)
	}

	err = db.read.Close()
	if err != nil {
		log.Print(err)
	}
}

func (*db) String() string { return "Database Manager" }

// Open initialises the database in FILE
func Open(file string) (cmd.Database, error) {
	read, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	read.SetConnMaxLifetime(0)
	read.SetMaxIdleConns(1)

	write, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	write.SetConnMaxLifetime(0)
	write.SetMaxIdleConns(1)
	write.SetMaxOpenConns(1)

	db := &db{
		queries:  make(map[string]*sql.Stmt),
		commands: make(map[string]*sql.Stmt),
		write:    write,
		read:     read,
	}

	for _, pragma := range []string{
		// https://www.sqlite.org/pragma.html#pragma_journal_mode
		"journal_mode = WAL",
		// https://www.sqlite.org/pragma.html#pragma_synchronous
		"synchronous = normal",
		// https://www.sqlite.org/pragma.html#pragma_temp_store
		"temp_store = memory",
		// https://www.sqlite.org/pragma.html#pragma_foreign_keys
		"foreign_keys = on",
	} {
		ttt.Debug.Printf("Run PRAGMA %v", pragma)
		_, err = db.write.Exec("PRAGMA " + pragma + ";")
		if err != nil {
			return nil, err
		}
	}

	entries, err := sql_dir.ReadDir(".")
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		base := path.Base(entry.Name())
		data, err := fs.ReadFile(sql_dir, entry.Name())
		if err != nil {
			return nil, err
		}

		if strings.HasPrefix(base, "create-") {
			_, err = db.write.Exec(string(data))
			ttt.Debug.Printf("Executed query %v", base)
		} else {
			query := strings.TrimSuffix(base, ".sql")
			if strings.HasPrefix(query, "select-") {
				db.queries[query], err = db.read.Prepare(string(data))
				ttt.Debug.Printf("Registered query %v", query)
			} else {
				db.commands[query], err = db.write.Prepare(string(data))
				ttt.Debug.Printf("Registered command %v", query)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
	}

	if len(db.queries) == 0 {
		panic("No queries loaded")
	}

	db.maint = make(chan os.Signal, 1)
	signal.Notify(db.maint, syscall.SIGUSR1)

	return db, nil
}

// Initialise the database and register the database manager
func Register(st *cmd.State, conf *cmd.Conf) {
	db, err := Open(conf.Database.File)
	if err != nil {
		log.Fatal(err, ": ", conf.Database.File)
	}
	st.Register(db)
}
