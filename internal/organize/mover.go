package organize

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"reelsort/internal/logging"
)

// Mover performs the final move of a classified track into the library.
type Mover interface {
	Move(src, dst string) error
}

// FSMover renames files, falling back to copy-and-remove when the
// destination lives on another filesystem.
type FSMover struct{}

func (FSMover) Move(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
		if copyErr := copyFile(src, dst); copyErr != nil {
			return copyErr
		}
		return os.Remove(src)
	}
	return err
}

// DryRunMover logs the planned move and leaves the filesystem alone.
type DryRunMover struct {
	Logger *slog.Logger
}

func (m DryRunMover) Move(src, dst string) error {
	logger := m.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger.Info("dry-run move",
		logging.String("src", src),
		logging.String("dst", dst),
	)
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
