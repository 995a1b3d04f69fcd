// Package logs reads back the run log written during extraction.
package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

const pollInterval = 500 * time.Millisecond

// LastLines returns up to limit trailing lines of the file at path and the
// offset just past the last byte read. A missing file yields no lines and
// offset zero.
func LastLines(path string, limit int) ([]string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	var lines []string
	var offset int64
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		offset += int64(len(scanner.Bytes())) + 1
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("read log file: %w", err)
	}
	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	return lines, offset, nil
}

// Follow streams complete lines appended after offset to emit until ctx is
// cancelled. It polls rather than relying on filesystem notifications.
func Follow(ctx context.Context, path string, offset int64, emit func(line string)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}

		next, err := readFrom(path, offset, emit)
		if err != nil {
			return err
		}
		if next < offset {
			// Log file was truncated or rotated; start over.
			next = 0
		}
		offset = next
	}
}

func readFrom(path string, offset int64, emit func(line string)) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return offset, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return offset, fmt.Errorf("stat log file: %w", err)
	}
	if info.Size() < offset {
		return 0, nil
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return offset, fmt.Errorf("seek log file: %w", err)
	}

	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if err == nil {
			offset += int64(len(line))
			emit(line[:len(line)-1])
			continue
		}
		if errors.Is(err, io.EOF) {
			// Partial trailing line stays unread until it is completed.
			return offset, nil
		}
		return offset, fmt.Errorf("read log file: %w", err)
	}
}
