package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gboya/flatfiles/flatfile"
	"github.com/gboya/flatfiles/internal/ioutil"
	"github.com/gboya/flatfiles/rffio"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output.rff>",
	Short: "Parse a delimited text file and write it as a binary Raw Flat File",
	Args:  cobra.ExactArgs(2),
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().Int("max-lines", 0, "cap on non-header lines (0 = unbounded)")
	convertCmd.Flags().Int("max-cells", 0, "cap on non-header cells (0 = unbounded)")
	convertCmd.Flags().Int("read-buffer-size", 0, "InputBuffer capacity in bytes (0 = default 100 MiB)")
	convertCmd.Flags().String("compress", "none", "transport compression for the output file: none, zstd, or gzip")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath, outputPath := args[0], args[1]

	maxLines, _ := cmd.Flags().GetInt("max-lines")
	maxCells, _ := cmd.Flags().GetInt("max-cells")
	readBufferSize, _ := cmd.Flags().GetInt("read-buffer-size")
	compressFlag, _ := cmd.Flags().GetString("compress")

	compression, err := rffio.ParseCompression(compressFlag)
	if err != nil {
		return err
	}

	src, _, closeSrc, err := ioutil.OpenFile(inputPath)
	if err != nil {
		return err
	}
	defer closeSrc()

	buf, err := flatfile.NewInputBuffer(src, bufferSizeOrDefault(readBufferSize))
	if err != nil {
		return err
	}

	opts := flatfile.ParserOptions{
		MaxLineCount:   maxLines,
		MaxCellCount:   maxCells,
		ReadBufferSize: readBufferSize,
	}
	p, err := flatfile.NewParser(buf, opts)
	if err != nil {
		return err
	}

	rff, err := p.Parse()
	if err != nil {
		return err
	}

	logger.Info("parsed input",
		"separator", fmt.Sprintf("%q", rune(rff.Separator)),
		"spaceSeparatedHeaders", rff.SpaceSeparatedHeaders,
		"encoding", rff.FileEncoding,
		"columns", rff.Columns,
		"lines", rff.NumLines(),
		"contentEntries", len(rff.Content),
		"unexpectedCells", len(rff.UnexpectedCells),
		"truncated", rff.IsTruncated,
	)

	dst, closeDst, err := ioutil.CreateFile(outputPath)
	if err != nil {
		return err
	}
	defer closeDst()

	cw, err := rffio.NewCompressWriter(dst, compression)
	if err != nil {
		return err
	}
	if err := rffio.Serialize(cw, rff); err != nil {
		cw.Close()
		return err
	}
	if err := cw.Close(); err != nil {
		return err
	}

	fmt.Printf("wrote %s: columns=%d lines=%d content=%d truncated=%v\n",
		outputPath, rff.Columns, rff.NumLines(), len(rff.Content), rff.IsTruncated)
	return nil
}

// bufferSizeOrDefault mirrors flatfile.ParserOptions.normalize's default so
// that NewInputBuffer (built before the Parser validates options) uses the
// same capacity the Parser will end up configured with.
func bufferSizeOrDefault(n int) int {
	if n == 0 {
		return flatfile.DefaultReadBufferSize
	}
	return n
}
