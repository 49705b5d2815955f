package util

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// EnsureDirectoryExists creates a directory if it does not exist.
func EnsureDirectoryExists(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

/*
PrintTable writes rows under centered headers, formatted like this:

	|     Table     | Status |       Detail       |
	|---------------|--------|--------------------|
	| Lsb0/8/big    | ok     |                    |
	| Msb0/16/big   | FAIL   | index 3: got ...   |
*/
func PrintTable(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header) + 4
	}
	for _, row := range rows {
		for i, col := range row {
			widths[i] = max(widths[i], len(col)+2)
		}
	}
	// even padding on both sides of each header
	for i, header := range headers {
		if (widths[i]-len(header))%2 == 1 {
			widths[i]++
		}
	}

	fmt.Fprint(w, "|")
	for i, header := range headers {
		pad := strings.Repeat(" ", (widths[i]-len(header))/2)
		fmt.Fprintf(w, "%s%s%s|", pad, header, pad)
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, "|")
	for _, width := range widths {
		fmt.Fprintf(w, "%s|", strings.Repeat("-", width))
	}
	fmt.Fprintln(w)
	for _, row := range rows {
		fmt.Fprint(w, "|")
		for i, col := range row {
			fmt.Fprintf(w, " %-*s|", widths[i]-1, col)
		}
		fmt.Fprintln(w)
	}
}
