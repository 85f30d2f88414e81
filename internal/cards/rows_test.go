package cards

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadRowsComma(t *testing.T) {
	src := "Hello world,tag1\nGoodbye,tag2\n"
	rows, err := ReadRows(strings.NewReader(src), Comma)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0][0] != "Hello world" || rows[1][1] != "tag2" {
		t.Fatalf("unexpected rows: %v", rows)
	}
}

func TestReadRowsTabAllowsRaggedRows(t *testing.T) {
	src := "Hello\ttag1\textra\nGoodbye\n"
	rows, err := ReadRows(strings.NewReader(src), Tab)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows[0]) != 3 || len(rows[1]) != 1 {
		t.Fatalf("field counts not preserved: %v", rows)
	}
}

func TestWriteRowsRoundTrip(t *testing.T) {
	rows := [][]string{
		{"Hello, with comma", "tag1", "[sound:parrot_1.mp3]"},
		{"Goodbye", "[sound:parrot_2.mp3]"},
	}
	var buf bytes.Buffer
	if err := WriteRows(&buf, Comma, rows); err != nil {
		t.Fatalf("write: %v", err)
	}
	back, err := ReadRows(&buf, Comma)
	if err != nil {
		t.Fatalf("reread: %v", err)
	}
	if len(back) != 2 || back[0][0] != "Hello, with comma" || back[1][1] != "[sound:parrot_2.mp3]" {
		t.Fatalf("round trip mismatch: %v", back)
	}
}

func TestParseDelimiter(t *testing.T) {
	if d, err := ParseDelimiter("tab"); err != nil || d != Tab {
		t.Fatalf("tab: %v %v", d, err)
	}
	if d, err := ParseDelimiter("comma"); err != nil || d != Comma {
		t.Fatalf("comma: %v %v", d, err)
	}
	if _, err := ParseDelimiter("pipe"); err == nil {
		t.Fatalf("expected error for unknown delimiter")
	}
}
