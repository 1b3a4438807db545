package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"kvstore/internal/domain"
)

const (
	fieldSep  = '\t'
	recordSep = '\n'
)

// validate reports whether key and value survive a write/load round-trip.
// Keys end at the first tab, so only values may contain tabs.
func validate(key, value string) error {
	if !utf8.ValidString(key) || !utf8.ValidString(value) {
		return fmt.Errorf("%w: key %q or its value is not valid UTF-8", domain.ErrUnencodable, key)
	}
	if strings.ContainsAny(key, "\t\n\r") {
		return fmt.Errorf("%w: key %q contains a tab or line break", domain.ErrUnencodable, key)
	}
	if strings.ContainsAny(value, "\n\r") {
		return fmt.Errorf("%w: value for key %q contains a line break", domain.ErrUnencodable, key)
	}
	return nil
}

// writeRecords writes one KEY<TAB>VALUE line per entry.
func writeRecords(w io.Writer, entries []domain.Entry) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, e := range entries {
		k, err := bw.WriteString(e.Key)
		n += int64(k)
		if err != nil {
			return n, err
		}
		if err := bw.WriteByte(fieldSep); err != nil {
			return n, err
		}
		n++
		k, err = bw.WriteString(e.Value)
		n += int64(k)
		if err != nil {
			return n, err
		}
		if err := bw.WriteByte(recordSep); err != nil {
			return n, err
		}
		n++
	}
	return n, bw.Flush()
}

// lineReader decodes records from a line-delimited stream.
type lineReader struct {
	r    *bufio.Reader
	name string
	line int
}

func newLineReader(r io.Reader, name string) *lineReader {
	return &lineReader{r: bufio.NewReader(r), name: name}
}

// next returns the next record, or io.EOF when the stream is exhausted.
func (lr *lineReader) next() (key, value string, err error) {
	text, err := lr.r.ReadString(recordSep)
	if errors.Is(err, io.EOF) {
		if text == "" {
			return "", "", io.EOF
		}
	} else if err != nil {
		return "", "", fmt.Errorf("%w: read %s: %w", domain.ErrIO, lr.name, err)
	}
	lr.line++

	text = strings.TrimSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\r")
	if !utf8.ValidString(text) {
		return "", "", fmt.Errorf("%w: read %s:%d: content is not valid UTF-8", domain.ErrIO, lr.name, lr.line)
	}

	key, value, ok := strings.Cut(text, string(fieldSep))
	if !ok {
		return "", "", fmt.Errorf("%w: %s:%d: record %q has no value field", domain.ErrCorruptData, lr.name, lr.line, text)
	}
	return key, value, nil
}
