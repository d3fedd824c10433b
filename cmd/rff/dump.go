package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file.rff>",
	Short: "Print every row of a Raw Flat File as tab-joined decoded content",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().Int("limit", 0, "stop after this many rows (0 = no limit)")
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	rff, err := readRFF(args[0])
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	lines := rff.NumLines()
	if limit > 0 && limit < lines {
		lines = limit
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	for line := 0; line < lines; line++ {
		for col := 0; col < int(rff.Columns); col++ {
			if col > 0 {
				w.WriteByte('\t')
			}
			cell, err := rff.GetItem(line, col)
			if err != nil {
				return err
			}
			w.Write(cell)
		}
		w.WriteByte('\n')
	}

	if limit > 0 && limit < rff.NumLines() {
		fmt.Fprintf(os.Stderr, "... %d more rows omitted\n", rff.NumLines()-limit)
	}
	return nil
}
