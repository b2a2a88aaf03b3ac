// Terminal client for remote games
//
// Copyright (c) 2021, 2023  Philip Kaludercic
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
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"regexp"

	"nhooyr.io/websocket"
)

var scheme = regexp.MustCompile(`^wss?://`)

// Forward every line from R as a separate message
func forward(ctx context.Context, c *websocket.Conn, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		err := c.Write(ctx, websocket.MessageText, []byte(scanner.Text()+"\n"))
		if err != nil {
			return err
		}
	}
	return scanner.Err()
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s [server address]\n", os.Args[0])
		os.Exit(1)
	}

	dest := os.Args[1]
	if !scheme.MatchString(dest) {
		dest = "ws://" + dest + "/play"
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	c, _, err := websocket.Dial(ctx, dest, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close(websocket.StatusNormalClosure, "")

	go func() {
		if err := forward(ctx, c, os.Stdin); err != nil {
			log.Print(err)
		}
		c.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		_, data, err := c.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			default:
				if ctx.Err() == nil {
					log.Print(err)
				}
			}
			return
		}
		os.Stdout.Write(data)
	}
}
