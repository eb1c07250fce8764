package store

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/metcalfc/wordlist/internal/model"
)

func openAppend(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

// ReviewLog is the append-only list of records that need a human look, one
// "<subject> <reason>" line each.
type ReviewLog struct {
	mu sync.Mutex
	f  *os.File
}

// OpenReviewLog opens path for appending.
func OpenReviewLog(path string) (*ReviewLog, error) {
	f, err := openAppend(path)
	if err != nil {
		return nil, err
	}
	return &ReviewLog{f: f}, nil
}

// Append writes items in order.
func (l *ReviewLog) Append(items ...model.ReviewItem) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	w := bufio.NewWriter(l.f)
	for _, item := range items {
		if _, err := fmt.Fprintln(w, item.String()); err != nil {
			return err
		}
	}
	return w.Flush()
}

func (l *ReviewLog) Close() error {
	return l.f.Close()
}

// ErrorLog records segmentation and refinement failures through a slog text
// handler, so every line carries key=value attributes.
type ErrorLog struct {
	f      *os.File
	logger *slog.Logger
}

// OpenErrorLog opens path for appending.
func OpenErrorLog(path string) (*ErrorLog, error) {
	f, err := openAppend(path)
	if err != nil {
		return nil, err
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &ErrorLog{f: f, logger: slog.New(h)}, nil
}

// Logger returns the underlying logger for run-level records.
func (l *ErrorLog) Logger() *slog.Logger {
	return l.logger
}

// ParseFailures logs paragraphs the segmentation engine skipped.
func (l *ErrorLog) ParseFailures(failures []model.ParseFailure) {
	for _, f := range failures {
		l.logger.Error("failed to parse paragraph",
			slog.Int("paragraph", f.Paragraph),
			slog.String("reason", f.Reason),
			slog.String("text", f.Text),
		)
	}
}

// RefineFailure logs one half of an entry's refinement that failed.
func (l *ErrorLog) RefineFailure(section int, headword, stage string, err error) {
	l.logger.Error("failed to refine entry",
		slog.Int("section", section),
		slog.String("headword", headword),
		slog.String("stage", stage),
		slog.String("reason", err.Error()),
	)
}

func (l *ErrorLog) Close() error {
	return l.f.Close()
}

// ReadLines returns the lines of a log file. A missing file has no lines.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}
