package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectTables(t *testing.T) {
	cases := []struct {
		assertion string
		cursor    string
		order     string
		count     int
	}{
		{"all tables", "", "", 16},
		{"one cursor", "msb0", "", 8},
		{"one order", "", "big", 8},
		{"cursor and order", "Lsb0", "little", 4},
	}
	for _, c := range cases {
		t.Run(c.assertion, func(t *testing.T) {
			tables, err := selectTables(c.cursor, c.order)
			require.NoError(t, err)
			require.Len(t, tables, c.count)
		})
	}
	t.Run("unknown cursor", func(t *testing.T) {
		_, err := selectTables("lsb1", "")
		require.Error(t, err)
	})
	t.Run("unknown order", func(t *testing.T) {
		_, err := selectTables("", "middle")
		require.Error(t, err)
	})
}
