package console

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestFilterAccepts(t *testing.T) {
	f := DefaultFilter()
	if f.Accepts(Debug, Client) {
		t.Fatalf("expected debug rejected at info level")
	}
	if !f.Accepts(Info, Server) {
		t.Fatalf("expected info accepted")
	}
	f.Enabled[Switch] = false
	if f.Accepts(Error, Switch) {
		t.Fatalf("expected disabled source rejected regardless of level")
	}
	f.MinLevel = Error
	if f.Accepts(Warn, Client) {
		t.Fatalf("expected warn rejected at error level")
	}
}

func TestFilterCloneIsIndependent(t *testing.T) {
	f := DefaultFilter()
	dup := f.Clone()
	dup.Enabled[Client] = false
	if !f.Enabled[Client] {
		t.Fatalf("expected original filter untouched")
	}
}

func TestFormatLine(t *testing.T) {
	now := time.Date(2024, 1, 2, 13, 4, 5, 0, time.UTC)
	got := FormatLine(now, Warn, Switch, "hello")
	if got != "[13:04:05][W][switch] hello\n" {
		t.Fatalf("unexpected line %q", got)
	}
}

func TestAppendRespectsCap(t *testing.T) {
	buffer := ""
	for i := 0; i < 500; i++ {
		buffer = Append(buffer, strings.Repeat("x", 17)+"\n")
		if len(buffer) > MaxLength {
			t.Fatalf("buffer exceeded cap after %d appends: %d", i, len(buffer))
		}
	}
	last := "most recent line\n"
	buffer = Append(buffer, last)
	if !strings.HasSuffix(buffer, last) {
		t.Fatalf("expected most recent content preserved")
	}
	if len(buffer) != MaxLength {
		t.Fatalf("expected full buffer of %d, got %d", MaxLength, len(buffer))
	}
}

func TestAppendDropsFromFrontOnly(t *testing.T) {
	buffer := strings.Repeat("a", MaxLength-2)
	buffer = Append(buffer, "bcd")
	if len(buffer) != MaxLength {
		t.Fatalf("expected %d, got %d", MaxLength, len(buffer))
	}
	if !strings.HasSuffix(buffer, "abcd") {
		t.Fatalf("expected tail preserved, got %q", buffer[len(buffer)-8:])
	}
}

func TestAppendOversizedLine(t *testing.T) {
	line := strings.Repeat("z", MaxLength+10)
	got := Append("previous", line)
	if len(got) != MaxLength {
		t.Fatalf("expected oversized line truncated to %d, got %d", MaxLength, len(got))
	}
}

func TestParseLevel(t *testing.T) {
	for _, level := range Levels {
		parsed, err := ParseLevel(level.String())
		if err != nil || parsed != level {
			t.Fatalf("expected %v, got %v (%v)", level, parsed, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestAppendCutsOnRuneBoundary(t *testing.T) {
	// "é" is two bytes; the byte cut lands inside the first one.
	buffer := strings.Repeat("é", MaxLength/2)
	got := Append(buffer, "x")
	if !utf8.ValidString(got) {
		t.Fatalf("expected valid UTF-8 after truncation")
	}
	if len(got) > MaxLength {
		t.Fatalf("expected at most %d bytes, got %d", MaxLength, len(got))
	}
	if !strings.HasSuffix(got, "éx") {
		t.Fatalf("expected tail preserved, got %q", got[len(got)-6:])
	}
}
