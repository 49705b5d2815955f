package cmd

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/wkalt/bitptr/cli/golden"
	cliutil "github.com/wkalt/bitptr/cli/util"
	"github.com/wkalt/bitptr/cursor"
	"github.com/wkalt/bitptr/util"
	"github.com/wkalt/bitptr/util/log"
)

var (
	verifyFile  string
	verifyQuiet bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check a traversal table file against the cursor package",
	Run: func(*cobra.Command, []string) {
		ctx := log.AddTags(context.Background(), "command", "verify", "file", verifyFile)
		f, err := os.Open(verifyFile)
		if err != nil {
			bailf("failed to open table file: %v", err)
		}
		defer f.Close()
		tables, err := golden.Decode(f)
		checkErr(err)
		log.Debugw(ctx, "loaded traversal tables", "tables", len(tables), "native", cursor.Native.String())

		results, err := golden.Verify(ctx, tables)
		checkErr(err)
		if !verifyQuiet {
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{r.Key, util.When(r.OK, "ok", "FAIL"), r.Detail})
			}
			cliutil.PrintTable(os.Stdout, []string{"Table", "Status", "Detail"}, rows)
		}
		failed := golden.Failed(results)
		if len(failed) > 0 {
			color.New(color.FgRed).Fprintf(os.Stderr, "%d of %d tables failed\n", len(failed), len(results))
			os.Exit(1)
		}
		color.New(color.FgGreen).Printf("all %d tables match\n", len(results))
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVarP(&verifyFile, "file", "f", "cursor/testdata/traversal.json", "table file to verify")
	verifyCmd.Flags().BoolVarP(&verifyQuiet, "quiet", "q", false, "print only the summary")
}
