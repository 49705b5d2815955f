package golden

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/goccy/go-json"
	"github.com/wkalt/bitptr/cursor"
	"github.com/wkalt/bitptr/util"
	"golang.org/x/sync/errgroup"
)

/*
Package golden reads, writes, and checks the traversal table file used as a
fixture by the cursor tests. The file is a JSON object with a single "tables"
array, one table per line, so that diffs of regenerated files stay readable.
*/

////////////////////////////////////////////////////////////////////////////////

type file struct {
	Tables []cursor.Table `json:"tables"`
}

// Result is the outcome of checking one table.
type Result struct {
	Key    string
	OK     bool
	Detail string
}

// Encode writes tables in golden file format.
func Encode(w io.Writer, tables []cursor.Table) error {
	buf := &bytes.Buffer{}
	buf.WriteString("{\"tables\":[\n")
	for i, table := range tables {
		line, err := json.Marshal(table)
		if err != nil {
			return fmt.Errorf("failed to encode table %s: %w", table.Key(), err)
		}
		buf.Write(line)
		if i < len(tables)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("]}\n")
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write tables: %w", err)
	}
	return nil
}

// Decode reads a golden file.
func Decode(r io.Reader) ([]cursor.Table, error) {
	var f file
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode tables: %w", err)
	}
	return f.Tables, nil
}

// Verify checks tables against the traversals computed by the cursor package.
// Results are ordered by key. Every computed table absent from the input and
// every input table that is not computed yields a failing result.
func Verify(ctx context.Context, tables []cursor.Table) ([]Result, error) {
	computed := make(map[string]cursor.Table)
	for _, table := range cursor.Traversals() {
		computed[table.Key()] = table
	}
	found := make(map[string]bool)
	for _, table := range tables {
		key := table.Key()
		if found[key] {
			return nil, fmt.Errorf("duplicate table %s", key)
		}
		found[key] = true
	}
	results := make([]Result, len(tables))
	g, ctx := errgroup.WithContext(ctx)
	for i, table := range tables {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = check(table.Key(), table, computed)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, key := range util.Okeys(computed) {
		if !found[key] {
			results = append(results, Result{Key: key, Detail: "missing"})
		}
	}
	slices.SortFunc(results, func(a, b Result) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return results, nil
}

func check(key string, table cursor.Table, computed map[string]cursor.Table) Result {
	expected, ok := computed[key]
	if !ok {
		return Result{Key: key, Detail: "unexpected"}
	}
	for i := range expected.Bytes {
		if i >= len(table.Bytes) || i >= len(table.Bits) {
			return Result{Key: key, Detail: fmt.Sprintf("truncated at index %d", i)}
		}
		if table.Bytes[i] != expected.Bytes[i] || table.Bits[i] != expected.Bits[i] {
			return Result{
				Key: key,
				Detail: fmt.Sprintf("index %d: got byte %d bit %d, want byte %d bit %d",
					i, table.Bytes[i], table.Bits[i], expected.Bytes[i], expected.Bits[i]),
			}
		}
	}
	if len(table.Bytes) != len(expected.Bytes) || len(table.Bits) != len(expected.Bits) {
		return Result{Key: key, Detail: "trailing entries"}
	}
	return Result{Key: key, OK: true}
}

// Failed returns the failing results.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.OK {
			failed = append(failed, r)
		}
	}
	return failed
}
