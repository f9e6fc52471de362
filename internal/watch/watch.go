// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch converts PDFs as they arrive in a directory. It layers
// fsnotify on top of the batch converter; the presence-based skip policy
// makes duplicate filesystem events harmless.
package watch

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pdiddy/pdftext/internal/convert"
)

// Watcher monitors a directory and converts new PDFs with the configured
// extraction backend.
type Watcher struct {
	fsw       *fsnotify.Watcher
	extractor convert.Extractor
	settle    time.Duration
}

// New creates a watcher. settle is how long to wait after a file event
// before converting, giving files still being copied in a chance to finish.
func New(e convert.Extractor, settle time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	return &Watcher{fsw: fsw, extractor: e, settle: settle}, nil
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run converts everything already in dir, then blocks converting PDFs as
// they are created or written, until ctx is cancelled. Conversion stays
// strictly sequential; events arriving during a conversion queue up in the
// watcher.
func (w *Watcher) Run(ctx context.Context, dir string, out io.Writer) error {
	convert.ConvertDir(w.extractor, dir, out)

	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	fmt.Fprintf(out, "Watching %s for new PDF files...\n", dir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !convert.IsPDF(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !w.wait(ctx) {
				return nil
			}
			convert.ConvertFile(w.extractor, event.Name, out)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(out, "watch error: %v\n", err)
		}
	}
}

// wait sleeps for the settle delay, returning false if ctx was cancelled.
func (w *Watcher) wait(ctx context.Context) bool {
	if w.settle <= 0 {
		return true
	}
	t := time.NewTimer(w.settle)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
