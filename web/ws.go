// Websocket interface
//
// Copyright (c) 2021, 2022, 2023  Philip Kaludercic
// Copyright (c) 2021  Tom Wiesing
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
	"io"
	"log"
	"net/http"

	"go-ttt"
	"go-ttt/cmd"
	"go-ttt/game"

	"github.com/gorilla/websocket"
)

// adapted from https://github.com/gorilla/websocket/issues/282

// wsrwc is a read-write-closer using websockets
type wsrwc struct {
	*websocket.Conn
	r io.Reader
}

// Convert a write call to a Websocket message
func (c *wsrwc) Write(p []byte) (int, error) {
	err := c.WriteMessage(websocket.TextMessage, p)
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

// Convert a read call into a Websocket query
func (c *wsrwc) Read(p []byte) (int, error) {
	for {
		if c.r == nil {
			// Advance to next message.
			var err error
			_, c.r, err = c.NextReader()
			if err != nil {
				return 0, err
			}
		}
		n, err := c.r.Read(p)
		if err == io.EOF {
			// At end of message.
			c.r = nil
			if n > 0 {
				return n, nil
			} else {
				// No data read, continue to next message.
				continue
			}
		}
		return n, err
	}
}

// Upgrade a HTTP connection to a WebSocket and play a game over it
func upgrader(st *cmd.State, conf *cmd.Conf) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// upgrade to websocket or bail out
		conn, err := (&websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		}).Upgrade(w, r, nil)
		if err != nil {
			ttt.Debug.Printf("Unable to upgrade connection: %s", err)
			return
		}

		log.Printf("New connection from %s", conn.RemoteAddr())
		rwc := &wsrwc{Conn: conn}
		defer rwc.Close()

		// Every connection plays a single game against the
		// person on the other end, with its own diagnostics.
		c := *conf
		c.Game.Opponent = "human"
		for _, g := range game.Series(st.Context, st.Database, &c, rwc, 1) {
			ttt.Debug.Printf("Game %d with %s ended (%s)",
				g.Id, conn.RemoteAddr(), g.Outcome)
		}

		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "goodbye")
		err = conn.WriteMessage(websocket.CloseMessage, msg)
		if err != nil {
			ttt.Debug.Print(err)
		}
	}
}
