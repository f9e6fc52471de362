// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdftext/internal/convert"
	"github.com/pdiddy/pdftext/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Convert PDFs continuously as they appear in a directory",
	Long: `Watch converts everything already in the directory, then keeps running
and converts PDF files as they are created or written. Already-converted
files are skipped by the same presence check the convert command uses.
Stop with Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	settle, _ := cmd.Flags().GetDuration("settle")

	w, err := watch.New(convert.NewPDFExtractor(), settle)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return w.Run(ctx, targetDir(cmd, args), os.Stdout)
}

func init() {
	watchCmd.Flags().String("dir", "", "directory to watch for PDF files")
	watchCmd.Flags().Duration("settle", time.Second, "wait after a file event before converting")

	rootCmd.AddCommand(watchCmd)
}
