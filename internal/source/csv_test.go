package source

import (
	"strings"
	"testing"
)

func TestCSVReaderParsesSaddrAndType(t *testing.T) {
	input := "saddr,type\n2001:db8::1,129\nfe80::1,135\n"
	rows, err := ReadAllScanResults(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if !rows[0].IsActive {
		t.Error("expected type=129 to be active")
	}
	if rows[1].IsActive {
		t.Error("expected type=135 to be inactive")
	}
}

func TestCSVReaderMissingSaddrColumnErrors(t *testing.T) {
	_, err := NewCSVReader(strings.NewReader("foo,bar\n1,2\n"))
	if err == nil {
		t.Fatal("expected error for missing saddr column")
	}
}

func TestCSVReaderWithoutTypeColumn(t *testing.T) {
	input := "saddr\n2001:db8::1\n"
	rows, err := ReadAllScanResults(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].IsActive {
		t.Fatalf("rows = %+v", rows)
	}
}

func TestCSVReaderEmptySaddrErrors(t *testing.T) {
	// encoding/csv skips fully blank lines; a row with content but a
	// missing saddr field still must error.
	input := "saddr,type\n,129\nextra,129\n"
	_, err := ReadAllScanResults(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error for malformed saddr value")
	}
}
