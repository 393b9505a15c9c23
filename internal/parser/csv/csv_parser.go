// Package csv reads retail CSV extracts into typed tables and writes cleaned
// tables back out. Input is decoded as UTF-8 and falls back to latin-1 when
// the bytes are not valid UTF-8.
package csv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/Ahmed-M-Fayad/retail-store-data-pipeline/internal/table"
)

// Encoding names reported by Decode.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin-1"
)

// ErrEmpty is returned when the input has no header row.
var ErrEmpty = errors.New("csv: empty input")

// Options configures the parser. The zero value reads comma-separated input.
type Options struct {
	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune
}

// Parser turns CSV bytes into a table.Table. It is safe to reuse across
// inputs but not for concurrent use.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// Result is a parsed table plus what the parser had to tolerate to build it.
type Result struct {
	Table    *table.Table
	Encoding string
	// Skipped counts body rows dropped for having more fields than the header.
	Skipped int
}

// Parse reads all of r and parses it as a table called name. Short rows are
// padded with nulls; rows wider than the header are skipped and counted.
func (p *Parser) Parse(r io.Reader, name string) (Result, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", name, err)
	}

	enc := EncodingUTF8
	var src io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		enc = EncodingLatin1
		src = transform.NewReader(src, charmap.ISO8859_1.NewDecoder())
	}

	cr := csv.NewReader(src)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return Result{}, fmt.Errorf("%s: %w", name, ErrEmpty)
	}
	if err != nil {
		return Result{}, fmt.Errorf("read %s header: %w", name, err)
	}
	header = StripHeaderBOM(header)
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	t := table.New(name, header)
	skipped := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("read %s: %w", name, err)
		}
		if len(rec) > len(header) {
			skipped++
			continue
		}
		row := make(table.Row, len(header))
		for i, s := range rec {
			row[i] = table.Parse(s)
		}
		t.Append(row)
	}
	return Result{Table: t, Encoding: enc, Skipped: skipped}, nil
}

// Write renders t as CSV with a header row.
func Write(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write %s header: %w", t.Name, err)
	}
	rec := make([]string, len(t.Columns))
	for _, r := range t.Rows {
		for i := range rec {
			rec[i] = ""
			if i < len(r) {
				rec[i] = r[i].Text()
			}
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write %s: %w", t.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
