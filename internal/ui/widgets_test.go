package ui

import (
	"errors"
	"image"
	"testing"

	"maskpaint/internal/inpaint"
)

func TestSliderMapsTrackToRange(t *testing.T) {
	s := slider{x: 10, y: 50, width: 99, min: 1, max: 100}
	if got := s.valueAt(10); got != 1 {
		t.Fatalf("left edge should be min, got %d", got)
	}
	if got := s.valueAt(109); got != 100 {
		t.Fatalf("right edge should be max, got %d", got)
	}
	if got := s.valueAt(-50); got != 1 {
		t.Fatalf("values left of the track clamp to min, got %d", got)
	}
	if got := s.valueAt(500); got != 100 {
		t.Fatalf("values right of the track clamp to max, got %d", got)
	}
	if got := s.valueAt(s.knobX(50)); got != 50 {
		t.Fatalf("knob position should round trip, got %d", got)
	}
	if !s.grab(s.knobX(30), 50, 30) {
		t.Fatal("press on the knob should grab the slider")
	}
	if s.grab(60, 90, 30) {
		t.Fatal("press far below the track should not grab")
	}
}

func TestPromptFieldEditing(t *testing.T) {
	f := newPromptField("a cat")
	f.insert([]rune{' ', 'o', 'n', '\n', ' ', 'a', ' ', 'm', 'a', 't'})
	if f.String() != "a cat on a mat" {
		t.Fatalf("unexpected prompt %q", f.String())
	}
	for i := 0; i < 4; i++ {
		f.backspace()
	}
	if f.String() != "a cat on a" {
		t.Fatalf("unexpected prompt after backspace %q", f.String())
	}
	f.set("")
	f.backspace()
	if f.String() != "" {
		t.Fatal("backspace on an empty field must be a no-op")
	}
	long := make([]rune, maxPromptRunes+10)
	for i := range long {
		long[i] = 'x'
	}
	f.insert(long)
	if len(f.runes) != maxPromptRunes {
		t.Fatalf("prompt should be capped at %d runes, got %d", maxPromptRunes, len(f.runes))
	}
}

func TestVisibleTail(t *testing.T) {
	if visibleTail("abcdef", 3) != "def" || visibleTail("ab", 3) != "ab" || visibleTail("ab", 0) != "" {
		t.Fatal("unexpected tail clipping")
	}
}

func TestStatusLineAndLabel(t *testing.T) {
	if generateLabel(true) != "Generating.." || generateLabel(false) != "Generate" {
		t.Fatal("unexpected generate labels")
	}
	cases := []struct {
		busy    bool
		loading bool
		o       inpaint.Outcome
		want    string
	}{
		{false, false, inpaint.Outcome{}, "ready"},
		{true, false, inpaint.Outcome{State: inpaint.OutcomeDone}, "generating..."},
		{false, true, inpaint.Outcome{State: inpaint.OutcomeDone, URL: "u"}, "loading result..."},
		{false, false, inpaint.Outcome{State: inpaint.OutcomeDone, URL: "u"}, "done"},
		{false, true, inpaint.Outcome{State: inpaint.OutcomeFailed, Err: errors.New("boom")}, "failed: boom"},
	}
	for _, c := range cases {
		if got := statusLine(c.busy, c.loading, c.o); got != c.want {
			t.Fatalf("statusLine(%v, %v, %+v) = %q, want %q", c.busy, c.loading, c.o, got, c.want)
		}
	}
}

func TestPointInRect(t *testing.T) {
	r := image.Rect(0, 0, 10, 10)
	if !pointInRect(0, 0, r) || pointInRect(10, 5, r) {
		t.Fatal("rect bounds are half-open")
	}
}
