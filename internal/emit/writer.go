package emit

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/bldgen/bldgen/internal/model"
)

// ErrDuplicateOutput is returned when a round tries to write a builder for
// the same target type twice.
var ErrDuplicateOutput = errors.New("emit: builder already written this round")

// Writer persists rendered files. It tracks what has been written so each
// target type produces exactly one file per round.
type Writer struct {
	written map[string]string // target key -> output path
}

// NewWriter returns a Writer for one round.
func NewWriter() *Writer {
	return &Writer{written: make(map[string]string)}
}

// FileName is the output file name for a target type.
func FileName(typeName string) string {
	return toSnake(typeName) + "_builder_gen.go"
}

// WriteAll renders every definition and writes the files concurrently.
// dirFor maps a definition to the directory of its target's package. The
// returned paths are in definition order.
func (w *Writer) WriteAll(defs []*model.BuilderDefinition, dirFor func(*model.BuilderDefinition) string) ([]string, error) {
	paths := make([]string, 0, len(defs))
	var g errgroup.Group

	for _, def := range defs {
		def := def
		key := def.Target().Key()
		if prev, dup := w.written[key]; dup {
			return nil, fmt.Errorf("%w: %s already at %s", ErrDuplicateOutput, key, prev)
		}
		path := filepath.Join(dirFor(def), FileName(def.Target().Name))
		w.written[key] = path
		paths = append(paths, path)

		g.Go(func() error {
			var buf bytes.Buffer
			if err := File(def).Render(&buf); err != nil {
				return fmt.Errorf("render %s: %w", key, err)
			}
			return os.WriteFile(path, buf.Bytes(), 0o644)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// Written returns the target-key to path map accumulated so far.
func (w *Writer) Written() map[string]string {
	out := make(map[string]string, len(w.written))
	for k, v := range w.written {
		out[k] = v
	}
	return out
}

// toSnake lowercases a type name with underscores at word boundaries,
// keeping acronym runs intact: URLValue becomes url_value.
func toSnake(s string) string {
	r := []rune(s)
	var b strings.Builder
	for i, c := range r {
		if !unicode.IsUpper(c) {
			b.WriteRune(c)
			continue
		}
		boundary := i > 0 && (!unicode.IsUpper(r[i-1]) || (i+1 < len(r) && unicode.IsLower(r[i+1])))
		if boundary {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(c))
	}
	return b.String()
}
