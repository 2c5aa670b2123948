// Package jsonl implements a snapshot backend that stores the CRM state
// as JSON Lines: one client or interaction record per line.
package jsonl

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	gojson "github.com/goccy/go-json"

	"github.com/mesh-intelligence/insurapro/internal/paths"
)

// errRead marks a failure while reading an opened file, as opposed to
// opening it.
var errRead = errors.New("read failed")

// rawLine is one non-empty line of a JSONL file and its 1-based line number.
type rawLine struct {
	line int
	data gojson.RawMessage
}

// readJSONL reads path and returns each non-empty line. Lines that are not
// valid JSON are returned in invalid by line number and left out of
// records. Lines have no length limit. A read failure after the file
// opened wraps errRead.
func readJSONL(path string) (records []rawLine, invalid []int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return nil, nil, fmt.Errorf("%w: %s line %d: %v", errRead, path, lineNo, err)
		}
		line = bytes.TrimSuffix(bytes.TrimSuffix(line, []byte("\n")), []byte("\r"))
		switch {
		case len(line) == 0:
		case !gojson.Valid(line):
			invalid = append(invalid, lineNo)
		default:
			records = append(records, rawLine{line: lineNo, data: line})
		}
		if err == io.EOF {
			break
		}
	}
	return records, invalid, nil
}

// writeJSONL replaces path with records, one per line. The records go to
// a temp file in the same directory, which is synced and renamed over path;
// on any failure the temp file is removed and path is untouched. The new
// file keeps the old one's mode, and a symlink at path is followed.
func writeJSONL(path string, records []gojson.RawMessage) error {
	target, mode, err := paths.SaveTarget(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	tmp, err := paths.CreateTemp(target, ".crm-*.jsonl.tmp", mode)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	for i, rec := range records {
		if _, err := w.Write(append(rec, '\n')); err != nil {
			return fmt.Errorf("writing record %d: %w", i+1, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing records: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("replacing %s: %w", target, err)
	}
	committed = true
	return nil
}
