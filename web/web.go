// Web interface
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

package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"go-ttt"
	"go-ttt/cmd"
)

type web struct {
	server *http.Server
}

func (*web) String() string { return "Web server" }

// List all recorded games as a summary table
func games(st *cmd.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := make(chan *ttt.Game)
		go st.Database.QueryGames(r.Context(), c)

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := cmd.Summary(w, c); err != nil {
			ttt.Debug.Print(err)
		}
		// Drain the channel in case writing failed
		for range c {
		}
	}
}

// Show the moves of a single game
func show(st *cmd.State) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(r.URL.Query().Get("id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid game ID", http.StatusBadRequest)
			return
		}

		var (
			gc = make(chan *ttt.Game, 1)
			mc = make(chan *ttt.Move)
		)
		go st.Database.QueryGame(r.Context(), id, gc, mc)

		g, ok := <-gc
		if !ok || g == nil {
			for range mc {
			}
			http.Error(w, fmt.Sprintf("No game %d", id), http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := cmd.Transcript(w, g, mc); err != nil {
			ttt.Debug.Print(err)
		}
		for range mc {
		}
	}
}

func routes(st *cmd.State, conf *cmd.Conf) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/play", upgrader(st, conf))
	mux.HandleFunc("/games", games(st))
	mux.HandleFunc("/game", show(st))
	return mux
}

func (s *web) Start(st *cmd.State, conf *cmd.Conf) {
	log.Printf("Listening on %s", s.server.Addr)
	err := s.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Print(err)
		st.Kill()
	}
}

func (s *web) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.Print(err)
	}
}

// Register the web server as a manager
func Register(st *cmd.State, conf *cmd.Conf) {
	st.Register(&web{
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", conf.Web.Port),
			Handler: routes(st, conf),
		},
	})
}
