// Shared State
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
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"go-ttt"
)

type Manager interface {
	fmt.Stringer
	Start(*State, *Conf)
	Shutdown()
}

type Database interface {
	Manager

	// Access interface
	QueryGames(context.Context, chan<- *ttt.Game)
	QueryGame(context.Context, uint64, chan<- *ttt.Game, chan<- *ttt.Move)

	// Store interface
	SaveMove(context.Context, *ttt.Move)
	SaveGame(context.Context, *ttt.Game)
}

type State struct {
	Context context.Context
	Kill    context.CancelFunc
	Running bool

	Database Database
	Managers []Manager
}

func MakeState() *State {
	ctx, kill := context.WithCancel(context.Background())
	return &State{
		Context: ctx,
		Kill:    kill,
	}
}

func (st *State) Register(m Manager) {
	if st.Running {
		panic(fmt.Sprintf("Late register: %#v", m))
	}

	if db, ok := m.(Database); ok {
		st.Database = db
	}

	st.Managers = append(st.Managers, m)
}

// Launch starts all managers in the background
func (st *State) Launch(c *Conf) {
	for _, m := range st.Managers {
		ttt.Debug.Printf("Starting %s", m)
		go m.Start(st, c)
	}
	st.Running = true
}

// Start all managers and block until the state is killed or the
// process is interrupted
func (st *State) Start(c *Conf) {
	st.Launch(c)

	// Catch an interrupt request...
	intr := make(chan os.Signal, 1)
	signal.Notify(intr, os.Interrupt)
	select {
	case <-intr:
		log.Println("Caught interrupt")
	case <-st.Context.Done():
		log.Println("Requested shutdown")
	}

	done := make(chan struct{})
	go func() {
		st.Shutdown()
		done <- struct{}{}
	}()

	select {
	case <-intr:
		log.Println("Forced shutdown")
	case <-done:
		ttt.Debug.Println("Shutting down regularly")
	}
}

// Shutdown requests all managers to shut down, in reverse order of
// registration
func (st *State) Shutdown() {
	ttt.Debug.Println("Waiting for managers to shutdown...")
	for i := len(st.Managers) - 1; i >= 0; i-- {
		m := st.Managers[i]
		ttt.Debug.Printf("Shutting %s down", m)
		m.Shutdown()
	}
	st.Kill()
}
