package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestShouldUsePrettyOutputNonTTY(t *testing.T) {
	var buf bytes.Buffer
	if shouldUsePrettyOutput(&buf) {
		t.Fatal("a bytes.Buffer is not a terminal")
	}
}

func TestShouldUsePrettyOutputNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	if shouldUsePrettyOutput(&buf) {
		t.Fatal("NO_COLOR should disable pretty output")
	}
}

func TestPrintRowsPlain(t *testing.T) {
	var buf bytes.Buffer
	printRows(&buf, []outputRow{
		{Key: "Schedule", Value: "Saturday, 1:00 PM"},
		{Key: "Signed up", Value: "2"},
	})

	out := buf.String()
	if !strings.Contains(out, "Schedule: Saturday, 1:00 PM\n") {
		t.Fatalf("output = %q", out)
	}
	if strings.Contains(out, "\033[") {
		t.Fatalf("plain output contains ANSI escapes: %q", out)
	}
}

func TestPrintHeadingPlain(t *testing.T) {
	var buf bytes.Buffer
	printHeading(&buf, "Chess Club")
	if got := buf.String(); got != "Chess Club\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestPrintNoticeAndErrorPlain(t *testing.T) {
	var buf bytes.Buffer
	printNotice(&buf, "done")
	printErrorLine(&buf, "failed")
	out := buf.String()
	if out != "done\nfailed\n" {
		t.Fatalf("output = %q", out)
	}
}
