// Package measurer observes the dimensions available to a component.
//
// Bubble Tea reports terminal resizes as tea.WindowSizeMsg, often in bursts
// while a window is dragged. The measurer coalesces a burst into a single
// DimensionsMsg per debounce window so the table lays out once per resize.
package measurer

import (
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"
)

var lastID atomic.Int64

// Dimensions is an observed width and height, in cells.
type Dimensions struct {
	Width  int
	Height int
}

// DimensionsMsg reports new dimensions for the observer with the given ID.
type DimensionsMsg struct {
	Observer int64
	Dimensions
}

type flushMsg struct {
	observer int64
	seq      int
}

// Model is a debounced dimension observer. Feed it tea.WindowSizeMsg and
// forward every other message too; it ignores what is not its own.
type Model struct {
	id   int64
	wait time.Duration

	seq      int
	pending  Dimensions
	current  Dimensions
	reported bool
}

// New returns an observer that reports at most once per wait. A wait of
// zero or less reports every change immediately.
func New(wait time.Duration) Model {
	return Model{id: lastID.Add(1), wait: wait}
}

// ID identifies this observer in DimensionsMsg.
func (m Model) ID() int64 { return m.id }

// Dimensions returns the last reported dimensions and whether any were
// reported yet.
func (m Model) Dimensions() (Dimensions, bool) { return m.current, m.reported }

// Wait returns the debounce interval.
func (m Model) Wait() time.Duration { return m.wait }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.pending = Dimensions{Width: msg.Width, Height: msg.Height}
		m.seq++
		if m.wait <= 0 {
			return m.flush()
		}
		id, seq := m.id, m.seq
		return m, tea.Tick(m.wait, func(time.Time) tea.Msg {
			return flushMsg{observer: id, seq: seq}
		})

	case flushMsg:
		// A newer resize restarted the window.
		if msg.observer != m.id || msg.seq != m.seq {
			return m, nil
		}
		return m.flush()
	}
	return m, nil
}

func (m Model) flush() (Model, tea.Cmd) {
	if m.reported && m.pending == m.current {
		return m, nil
	}
	m.current = m.pending
	m.reported = true
	out := DimensionsMsg{Observer: m.id, Dimensions: m.current}
	return m, func() tea.Msg { return out }
}
