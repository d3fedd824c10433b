package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gboya/flatfiles/flatfile"
	"github.com/gboya/flatfiles/internal/ioutil"
	"github.com/gboya/flatfiles/rffio"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.rff>",
	Short: "Deserialize a Raw Flat File and validate its invariants",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	rff, err := readRFF(args[0])
	if err != nil {
		return err
	}

	if err := flatfile.CheckConsistency(rff); err != nil {
		return err
	}

	fmt.Printf("%s: OK\n", args[0])
	fmt.Printf("  columns:  %d\n", rff.Columns)
	fmt.Printf("  lines:    %d\n", rff.NumLines())
	fmt.Printf("  cells:    %d\n", len(rff.Cells))
	fmt.Printf("  content:  %d\n", len(rff.Content))
	return nil
}

// readRFF opens path, auto-detects an optional zstd/gzip transport wrapper
// from its leading bytes, and deserializes the RFF beneath it.
func readRFF(path string) (*flatfile.RawFlatFile, error) {
	f, _, closeF, err := ioutil.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer closeF()

	br := bufio.NewReader(f)
	compression, err := rffio.DetectCompression(br)
	if err != nil {
		return nil, err
	}
	r, err := rffio.NewDecompressReader(br, compression)
	if err != nil {
		return nil, err
	}
	return rffio.Deserialize(r)
}
