package main

import (
	"bufio"
	"os"
	"strings"
	"testing"
)

func TestSniffFormatDetectsScanResultCSV(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("saddr,type\n2001:db8::1,129\n"))
	if got := sniffFormat(br); got != "csv" {
		t.Fatalf("sniffFormat() = %q, want csv", got)
	}
}

func TestSniffFormatDetectsPlainList(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("2001:db8::1\n2001:db8::2\n"))
	if got := sniffFormat(br); got != "list" {
		t.Fatalf("sniffFormat() = %q, want list", got)
	}
}

func writeTemp(t *testing.T, contents string) *os.File {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "analyze-input-*")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(contents); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestReadAnalyzeInputAutoDetectsCSV(t *testing.T) {
	f := writeTemp(t, "saddr,type\n2001:db8::1,129\n2001:db8::2,0\n")
	defer f.Close()

	addrs, err := readAnalyzeInput(f, "auto", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(addrs) != 2 {
		t.Fatalf("got %d addresses, want 2", len(addrs))
	}
}

func TestReadAnalyzeInputActiveOnlyFiltersByType(t *testing.T) {
	f := writeTemp(t, "saddr,type\n2001:db8::1,129\n2001:db8::2,0\n")
	defer f.Close()

	addrs, err := readAnalyzeInput(f, "csv", true)
	if err != nil {
		t.Fatal(err)
	}
	if len(addrs) != 1 {
		t.Fatalf("got %d addresses, want 1 (active only)", len(addrs))
	}
	if addrs[0].String() != "2001:db8::1" {
		t.Fatalf("got %s, want 2001:db8::1", addrs[0])
	}
}

func TestReadAnalyzeInputAutoDetectsPlainList(t *testing.T) {
	f := writeTemp(t, "2001:db8::1\n2001:db8::2\n")
	defer f.Close()

	addrs, err := readAnalyzeInput(f, "auto", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(addrs) != 2 {
		t.Fatalf("got %d addresses, want 2", len(addrs))
	}
}

func TestReadAnalyzeInputUnknownFormatErrors(t *testing.T) {
	f := writeTemp(t, "2001:db8::1\n")
	defer f.Close()

	if _, err := readAnalyzeInput(f, "yaml", false); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
