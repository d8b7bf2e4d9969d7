package analyzer

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Format is the encoding of a unit dump.
type Format uint8

const (
	FormatMsgpack Format = iota + 1
	FormatJSON
)

// ErrUnknownFormat is returned for dump files with an unrecognised extension.
var ErrUnknownFormat = errors.New("unknown unit dump format")

// FormatForPath picks the dump format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp", ".msgpack":
		return FormatMsgpack, nil
	case ".json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Decode reads one unit dump.
func Decode(r io.Reader, format Format) (*Unit, error) {
	var u Unit
	switch format {
	case FormatMsgpack:
		dec := msgpack.NewDecoder(bufio.NewReader(r))
		if err := dec.Decode(&u); err != nil {
			return nil, fmt.Errorf("decode msgpack unit: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&u); err != nil {
			return nil, fmt.Errorf("decode json unit: %w", err)
		}
	default:
		return nil, ErrUnknownFormat
	}
	if err := u.validate(); err != nil {
		return nil, err
	}
	return &u, nil
}

// Encode writes one unit dump. Used by tests and by tools that produce dumps.
func Encode(w io.Writer, u *Unit, format Format) error {
	switch format {
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetOmitEmpty(true)
		return enc.Encode(u)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(u)
	default:
		return ErrUnknownFormat
	}
}

// LoadUnit reads and decodes a dump file. An empty Path inside the dump is
// replaced by the file path.
func LoadUnit(path string) (*Unit, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	u, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if u.Path == "" {
		u.Path = filepath.ToSlash(path)
	}
	return u, nil
}

// MalformedError reports a node missing a slot its kind requires.
type MalformedError struct {
	Kind NodeKind
	Span Span
	What string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed %s node at %d..%d: %s", e.Kind, e.Span.Start, e.Span.End, e.What)
}

func (u *Unit) validate() error {
	var err error
	for _, n := range u.Nodes {
		Walk(n, func(n *Node) bool {
			if err != nil {
				return false
			}
			if n.Kind == "" {
				err = &MalformedError{Span: n.Span, What: "missing kind"}
				return false
			}
			if n.Span.End < n.Span.Start {
				err = &MalformedError{Kind: n.Kind, Span: n.Span, What: "span end before start"}
				return false
			}
			return true
		})
		if err != nil {
			return err
		}
	}
	return nil
}
