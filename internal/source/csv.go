package source

import (
	"encoding/csv"
	"fmt"
	"io"

	"v6recon/internal/addr"
)

// ScanResultRow is one parsed row of a CSV scan-result file: the target
// address, whether the ICMPv6 type code marks it active (129 = Echo
// Reply), and the raw field values for columns the reader doesn't
// interpret itself.
type ScanResultRow struct {
	Address  addr.Address
	IsActive bool
	Fields   []string
}

// CSVReader reads a scan-result CSV: a header row naming columns, a
// required "saddr" column, and an optional "type" column whose value
// "129" marks the row active.
type CSVReader struct {
	r         *csv.Reader
	saddrIdx  int
	typeIdx   int // -1 if absent
}

// NewCSVReader reads and validates the header row of r, locating the
// required "saddr" column and the optional "type" column.
func NewCSVReader(r io.Reader) (*CSVReader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("source: read csv header: %w", err)
	}

	saddrIdx := indexOf(header, "saddr")
	if saddrIdx < 0 {
		return nil, fmt.Errorf("source: csv header missing required %q column", "saddr")
	}

	return &CSVReader{r: cr, saddrIdx: saddrIdx, typeIdx: indexOf(header, "type")}, nil
}

func indexOf(fields []string, name string) int {
	for i, f := range fields {
		if f == name {
			return i
		}
	}
	return -1
}

// Next returns the next row, or io.EOF once exhausted.
func (r *CSVReader) Next() (ScanResultRow, error) {
	fields, err := r.r.Read()
	if err != nil {
		return ScanResultRow{}, err
	}
	if r.saddrIdx >= len(fields) {
		return ScanResultRow{}, fmt.Errorf("source: row has fewer fields than expected: %v", fields)
	}

	a, err := addr.Parse(fields[r.saddrIdx])
	if err != nil {
		return ScanResultRow{}, fmt.Errorf("source: parse saddr %q: %w", fields[r.saddrIdx], err)
	}

	isActive := false
	if r.typeIdx >= 0 && r.typeIdx < len(fields) {
		isActive = fields[r.typeIdx] == "129"
	}

	return ScanResultRow{Address: a, IsActive: isActive, Fields: fields}, nil
}

// ReadAllScanResults reads every row from r, stopping at the first
// malformed row and returning the rows read before it with the error.
func ReadAllScanResults(r io.Reader) ([]ScanResultRow, error) {
	cr, err := NewCSVReader(r)
	if err != nil {
		return nil, err
	}
	var out []ScanResultRow
	for {
		row, err := cr.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, row)
	}
}
