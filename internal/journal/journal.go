// Package journal writes combat events to hourly-rotated, zstd-compressed
// JSONL files for offline analysis and replay.
package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/akorchagin/mobd/internal/combat"
)

// Writer appends JSON lines to <dir>/<prefix>-YYYY-MM-DD-HH.jsonl.zst,
// rotating when the hour changes.
type Writer struct {
	dir    string
	prefix string

	mu      sync.Mutex
	curHour string
	f       *os.File
	enc     *zstd.Encoder
	w       *bufio.Writer
}

// NewWriter creates a journal writer rooted at dir.
func NewWriter(dir, prefix string) *Writer {
	return &Writer{dir: dir, prefix: prefix}
}

// HandleEvent implements combat.Sink. A journal write failure must not take
// the simulation down: it is logged and the event is dropped.
func (w *Writer) HandleEvent(event combat.Event) {
	if err := w.Write(event); err != nil {
		slog.Error("journal write failed", "kind", event.Kind, "error", err)
	}
}

// Write appends one record.
func (w *Writer) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	hour := time.Now().UTC().Format("2006-01-02-15")
	if hour != w.curHour {
		if err := w.rotateLocked(hour); err != nil {
			return err
		}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

// Close flushes and closes the current segment.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *Writer) rotateLocked(hour string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}

	path := w.pathForHour(hour)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating journal dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening journal segment: %w", err)
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("creating zstd encoder: %w", err)
	}

	w.curHour = hour
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriter(enc)
	return nil
}

func (w *Writer) closeLocked() error {
	if w.f == nil {
		return nil
	}
	var firstErr error
	if err := w.w.Flush(); err != nil {
		firstErr = err
	}
	if err := w.enc.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := w.f.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	w.f = nil
	w.enc = nil
	w.w = nil
	w.curHour = ""
	return firstErr
}

func (w *Writer) pathForHour(hour string) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s-%s.jsonl.zst", w.prefix, hour))
}
