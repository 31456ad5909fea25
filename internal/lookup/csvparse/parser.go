package csvparse

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alraulpm-lang/checador/internal/lookup/model"
	logx "github.com/alraulpm-lang/checador/pkg/logger"
	"github.com/jszwec/csvutil"
)

// Parser turns delimited text into Records. Rows whose field count differs
// from the header are dropped without error.
type Parser struct {
	delimiter rune
	fields    model.FieldConfig
}

func NewParser(fields model.FieldConfig, delimiter string) (*Parser, error) {
	d := ','
	if delimiter != "" {
		r, size := utf8.DecodeRuneInString(delimiter)
		if size != len(delimiter) || r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
			return nil, fmt.Errorf("invalid csv delimiter %q", delimiter)
		}
		d = r
	}
	return &Parser{delimiter: d, fields: fields}, nil
}

// Parse parses in-memory text. It never fails: text that yields fewer than two
// usable lines produces an empty slice.
func (p *Parser) Parse(text string) []model.Record {
	records, err := p.ParseReader(strings.NewReader(text))
	if err != nil {
		// strings.Reader cannot fail mid-read
		return []model.Record{}
	}
	return records
}

// ParseReader streams r. Only read failures of r itself are returned.
func (p *Parser) ParseReader(r io.Reader) ([]model.Record, error) {
	rows := newRowReader(r, p.delimiter)

	header, err := rows.Read()
	if err == io.EOF {
		return []model.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	dec, err := csvutil.NewDecoder(rows, p.canonicalHeader(header)...)
	if err != nil {
		return nil, fmt.Errorf("create csv decoder: %w", err)
	}

	records := make([]model.Record, 0, 64)
	dropped := 0
	for {
		var product model.Product
		err := dec.Decode(&product)
		if err == io.EOF {
			break
		}
		if errors.Is(err, csvutil.ErrFieldCount) {
			dropped++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		records = append(records, model.Record{
			Values:  zip(header, dec.Record()),
			Product: product,
		})
	}

	logx.Debug().Int("records", len(records)).Int("dropped", dropped).Msg("csv parsed")
	return records, nil
}

// canonicalHeader renames the configured columns to the csv tags of
// model.Product. Every other column gets a unique positional name so csvutil
// never sees duplicates. When a configured name repeats, the last column wins,
// matching the map built by zip.
func (p *Parser) canonicalHeader(header []string) []string {
	out := make([]string, len(header))
	assigned := make([]bool, len(header))
	for i := range header {
		out[i] = "col_" + strconv.Itoa(i)
	}

	mapping := []struct{ name, canonical string }{
		{p.fields.Code, "code"},
		{p.fields.Name, "name"},
		{p.fields.Price, "price"},
		{p.fields.Description, "description"},
		{p.fields.Image, "image"},
	}
	for _, m := range mapping {
		if m.name == "" {
			continue
		}
		for i := len(header) - 1; i >= 0; i-- {
			if header[i] == m.name && !assigned[i] {
				out[i] = m.canonical
				assigned[i] = true
				break
			}
		}
	}
	return out
}

func zip(header, row []string) map[string]string {
	values := make(map[string]string, len(header))
	for i, h := range header {
		values[h] = row[i]
	}
	return values
}

// rowReader feeds csvutil one physical line at a time, so quoting never spans
// a line break. Blank lines are skipped, a leading byte order mark is dropped
// and every field is trimmed.
type rowReader struct {
	sc        *bufio.Scanner
	delimiter rune
	started   bool
}

func newRowReader(r io.Reader, delimiter rune) *rowReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return &rowReader{sc: sc, delimiter: delimiter}
}

func (rr *rowReader) Read() ([]string, error) {
	for rr.sc.Scan() {
		line := rr.sc.Text()
		if !rr.started {
			line = strings.TrimPrefix(line, "\ufeff")
			rr.started = true
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		row := rr.split(line)
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
		return row, nil
	}
	if err := rr.sc.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// split honors well-formed quoting within the line. Anything encoding/csv
// rejects falls back to a plain split on the delimiter.
func (rr *rowReader) split(line string) []string {
	cr := csv.NewReader(strings.NewReader(line))
	cr.Comma = rr.delimiter
	cr.FieldsPerRecord = -1
	row, err := cr.Read()
	if err == nil {
		if _, err = cr.Read(); err == io.EOF {
			return row
		}
	}
	return strings.Split(line, string(rr.delimiter))
}
