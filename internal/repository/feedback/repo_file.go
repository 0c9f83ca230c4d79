package feedback

import (
	"Feedback_Backend/internal/model"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2/log"
)

const tempFilePrefix = "feedback-tmp-"

type fileRepository struct {
	path string
	perm os.FileMode
}

func NewFileRepository(path string) Repository {
	return &fileRepository{
		path: path,
		perm: 0644,
	}
}

func (r *fileRepository) Load(ctx context.Context) ([]model.Feedback, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []model.Feedback{}, nil
		}
		log.Error("Error while reading feedback file:", err)
		return nil, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: %s does not contain a JSON array", ErrDataCorruption, r.path)
	}

	var feedback []model.Feedback
	if err := json.Unmarshal(trimmed, &feedback); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataCorruption, err)
	}
	if feedback == nil {
		feedback = []model.Feedback{}
	}
	return feedback, nil
}

func (r *fileRepository) Save(ctx context.Context, feedback []model.Feedback) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if feedback == nil {
		feedback = []model.Feedback{}
	}

	data, err := marshalIndent(feedback)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDataCorruption, err)
	}

	perm := r.perm
	if info, err := os.Stat(r.path); err == nil {
		perm = info.Mode().Perm()
	}

	if err := writeFileAtomic(r.path, data, perm); err != nil {
		log.Error("Error while writing feedback file:", err)
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return nil
}

// marshalIndent renders the store with two-space indentation and leaves
// HTML characters unescaped.
func marshalIndent(feedback []model.Feedback) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(feedback); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// writeFileAtomic writes data next to filename and renames it into place,
// so readers see either the old or the new store. The directory must be
// writable, not only the file.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmpFile, err := os.CreateTemp(dir, tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}

	return nil
}
