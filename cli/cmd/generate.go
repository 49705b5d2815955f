package cmd

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"
	"github.com/wkalt/bitptr/cli/golden"
	"github.com/wkalt/bitptr/cli/util"
	"github.com/wkalt/bitptr/cursor"
	"github.com/wkalt/bitptr/util/log"
)

var (
	generateOut    string
	generateCursor string
	generateOrder  string
)

// selectTables returns the traversal tables, restricted to one cursor and one
// byte order when those are named.
func selectTables(cursorName, orderName string) ([]cursor.Table, error) {
	tables := cursor.Traversals()
	if cursorName != "" {
		c, err := cursor.ByName(cursorName)
		if err != nil {
			return nil, err
		}
		tables = slices.DeleteFunc(tables, func(t cursor.Table) bool { return t.Cursor != c.String() })
	}
	if orderName != "" {
		o, err := cursor.ParseByteOrder(orderName)
		if err != nil {
			return nil, err
		}
		tables = slices.DeleteFunc(tables, func(t cursor.Table) bool { return t.Order != o.String() })
	}
	return tables, nil
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the traversal tables for every cursor, width and byte order",
	Run: func(*cobra.Command, []string) {
		ctx := log.AddTags(context.Background(), "command", "generate")
		tables, err := selectTables(generateCursor, generateOrder)
		checkErr(err)
		if generateOut == "" || generateOut == "-" {
			checkErr(golden.Encode(os.Stdout, tables))
			return
		}
		checkErr(util.EnsureDirectoryExists(filepath.Dir(generateOut)))
		f, err := os.Create(generateOut)
		if err != nil {
			bailf("failed to create output file: %v", err)
		}
		defer f.Close()
		checkErr(golden.Encode(f, tables))
		log.Debugw(ctx, "wrote traversal tables", "tables", len(tables), "path", generateOut)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "output file (default stdout)")
	generateCmd.Flags().StringVarP(&generateCursor, "cursor", "", "", "only this cursor (lsb0 or msb0)")
	generateCmd.Flags().StringVarP(&generateOrder, "order", "", "", "only this byte order (little, big or native)")
}
