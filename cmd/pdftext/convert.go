// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdftext/internal/convert"
	"github.com/pdiddy/pdftext/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [dir]",
	Short: "Convert every PDF in a directory to a plain-text sibling",
	Long: `Convert scans a directory for *.pdf files (case-insensitive, non-recursive)
and writes one .txt per PDF next to its source. A PDF whose .txt already
exists is skipped without being read, so re-running is cheap and never
overwrites earlier output.

Failures are reported per file and per page and never stop the run; the
command exits 0 regardless.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		convert.ConvertDir(convert.NewPDFExtractor(), targetDir(cmd, args), os.Stdout)
	},
}

// targetDir resolves the directory to operate on: positional argument, then
// --dir flag, then config, then the fixed knowledge default.
func targetDir(cmd *cobra.Command, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		return dir
	}
	if dir := viper.GetString("convert.dir"); dir != "" {
		return dir
	}
	return types.DefaultDir()
}

func init() {
	convertCmd.Flags().String("dir", "", "directory to scan for PDF files")

	rootCmd.AddCommand(convertCmd)
}
