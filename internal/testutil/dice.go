// Package testutil provides test helpers shared across packages.
package testutil

import (
	"fmt"
	"sync"
)

// ScriptedSource is a dice.Source that replays a fixed sequence of die faces.
//
// Each call to Intn(n) consumes the next face f and returns f-1, so a die of
// any size shows exactly f. The sequence wraps around when exhausted.
type ScriptedSource struct {
	mu    sync.Mutex
	faces []int
	next  int
	calls int
}

// NewScriptedSource returns a ScriptedSource yielding faces in order.
//
// Precondition: len(faces) > 0 and every face >= 1.
func NewScriptedSource(faces ...int) *ScriptedSource {
	if len(faces) == 0 {
		panic("testutil: NewScriptedSource requires at least one face")
	}
	return &ScriptedSource{faces: faces}
}

// Intn returns the next scripted face minus one.
//
// Panics if the scripted face does not fit a die of n sides, which always
// indicates a broken test script.
func (s *ScriptedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.faces[s.next]
	s.next = (s.next + 1) % len(s.faces)
	s.calls++
	if f < 1 || f > n {
		panic(fmt.Sprintf("testutil: scripted face %d does not fit a d%d (call %d)", f, n, s.calls))
	}
	return f - 1
}

// Calls returns how many values have been drawn.
func (s *ScriptedSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
