package logging

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const tailBlockSize = 8 * 1024

// Tail returns at most maxLines from the end of the log file at path, oldest
// first. A missing file yields no lines and no error.
func Tail(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 || strings.TrimSpace(path) == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat log: %w", err)
	}

	// Read blocks backwards until the buffer holds maxLines complete lines
	// or the start of the file is reached.
	offset := info.Size()
	var buf []byte
	for offset > 0 && bytes.Count(buf, []byte{'\n'}) <= maxLines {
		n := int64(tailBlockSize)
		if offset < n {
			n = offset
		}
		offset -= n
		block := make([]byte, n)
		if _, err := f.ReadAt(block, offset); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read log: %w", err)
		}
		buf = append(block, buf...)
	}

	text := strings.TrimRight(string(buf), "\n")
	if text == "" {
		return nil, nil
	}
	lines := strings.Split(text, "\n")
	if offset > 0 && len(lines) > 0 {
		// The first line may be cut mid-way by the block boundary.
		lines = lines[1:]
	}
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines, nil
}
