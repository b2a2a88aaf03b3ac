// Search Diagnostics
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

package ttt

import (
	"fmt"
	"time"
)

// Stats accumulates the work done by the search during one game
//
// A Stats value belongs to exactly one game and is not safe for
// concurrent use.
type Stats struct {
	Calls   uint64        // recursive search invocations
	Elapsed time.Duration // time spent selecting moves
}

func (s *Stats) Reset() { *s = Stats{} }

// Millis returns the elapsed search time in milliseconds
func (s *Stats) Millis() float64 {
	return float64(s.Elapsed) / float64(time.Millisecond)
}

func (s *Stats) String() string {
	return fmt.Sprintf("%d calls in %.2fms", s.Calls, s.Millis())
}
