// Package storage keeps uploaded resume files on an afero filesystem.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

var ErrBlobNotFound = errors.New("dosya bulunamadı")

const resumePrefix = "resumes"

type BlobStore struct {
	fs afero.Fs
}

// NewBlobStore roots all blob paths at dir on the given filesystem.
func NewBlobStore(fs afero.Fs, dir string) (*BlobStore, error) {
	if err := fs.MkdirAll(path.Join(dir, resumePrefix), 0o755); err != nil {
		return nil, fmt.Errorf("dosya dizini oluşturulamadı: %w", err)
	}
	return &BlobStore{fs: afero.NewBasePathFs(fs, dir)}, nil
}

// Save writes content under resumes/<owner>/ with a fresh random name and
// returns its relative path and size.
func (s *BlobStore) Save(owner int64, content io.Reader, ext string) (string, int64, error) {
	dir := path.Join(resumePrefix, strconv.FormatInt(owner, 10))
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("dosya dizini oluşturulamadı: %w", err)
	}
	name := path.Join(dir, uuid.NewString()+ext)

	f, err := s.fs.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("dosya oluşturulamadı: %w", err)
	}

	n, err := io.Copy(f, content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = s.fs.Remove(name)
		return "", 0, fmt.Errorf("dosya yazılamadı: %w", err)
	}

	return name, n, nil
}

func (s *BlobStore) Open(name string) (io.ReadCloser, int64, error) {
	name, err := clean(name)
	if err != nil {
		return nil, 0, err
	}

	f, err := s.fs.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, ErrBlobNotFound
		}
		return nil, 0, fmt.Errorf("dosya açılamadı: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("dosya bilgisi okunamadı: %w", err)
	}

	return f, info.Size(), nil
}

// Remove deletes a blob; a missing blob is not an error.
func (s *BlobStore) Remove(name string) error {
	name, err := clean(name)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("dosya silinemedi: %w", err)
	}
	return nil
}

func clean(name string) (string, error) {
	cleaned := path.Clean("/" + name)[1:]
	if cleaned == "" || !strings.HasPrefix(cleaned, resumePrefix+"/") {
		return "", ErrBlobNotFound
	}
	return cleaned, nil
}
