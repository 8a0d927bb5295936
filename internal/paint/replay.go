package paint

import (
	"encoding/json"
	"fmt"
	"io"
)

// EventType names a recorded pointer or control event.
type EventType string

const (
	EventPress    EventType = "press"
	EventMove     EventType = "move"
	EventRelease  EventType = "release"
	EventLeave    EventType = "leave"
	EventDiameter EventType = "diameter"
)

// Event is one entry of a stroke script.
type Event struct {
	Type  EventType `json:"type"`
	X     float64   `json:"x,omitempty"`
	Y     float64   `json:"y,omitempty"`
	Value int       `json:"value,omitempty"`
}

// Script is the JSON document read by LoadScript.
type Script struct {
	Events []Event `json:"events"`
}

// LoadScript decodes a stroke script.
func LoadScript(r io.Reader) ([]Event, error) {
	var sc Script
	if err := json.NewDecoder(r).Decode(&sc); err != nil {
		return nil, fmt.Errorf("decode stroke script: %w", err)
	}
	return sc.Events, nil
}

// Replay applies events to s in order. It stops at the first unknown event.
func Replay(s *Surface, events []Event) error {
	for i, ev := range events {
		switch ev.Type {
		case EventPress:
			s.Press(ev.X, ev.Y)
		case EventMove:
			s.Move(ev.X, ev.Y)
		case EventRelease:
			s.Release()
		case EventLeave:
			s.Leave()
		case EventDiameter:
			s.SetBrushDiameter(ev.Value)
		default:
			return fmt.Errorf("event %d: unknown type %q", i, ev.Type)
		}
	}
	return nil
}
