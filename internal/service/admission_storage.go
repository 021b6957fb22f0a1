package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/ptit-edu/portal-backend/internal/model"
)

// Sentinel errors for admission attachments.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrTooManyFiles        = errors.New("too many files")
)

// Allowed attachment extensions (transcripts, certificates, ID scans).
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".heic": true,
	".pdf":  true,
}

const defaultExtension = ".jpg"

// AdmissionStorage writes one folder per submission under root.
type AdmissionStorage struct {
	root string
}

func NewAdmissionStorage(root string) *AdmissionStorage {
	return &AdmissionStorage{root: root}
}

// FolderName returns the per-submission folder name for an admission ID.
func FolderName(id int) string {
	return fmt.Sprintf("admission_%d", id)
}

// Dir returns the absolute-or-relative folder path for an admission ID.
func (s *AdmissionStorage) Dir(id int) string {
	return filepath.Join(s.root, FolderName(id))
}

// Save writes the attachments as 1<ext>, 2<ext>, ... and then info.json.
// The returned files reference the on-disk paths for mail attachments.
func (s *AdmissionStorage) Save(info model.AdmissionInfo, files []*multipart.FileHeader) ([]model.StoredFile, error) {
	dir := s.Dir(info.ID)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create admission dir: %w", err)
	}

	stored := make([]model.StoredFile, 0, len(files))
	for i, fh := range files {
		name := fmt.Sprintf("%d%s", i+1, attachmentExt(fh.Filename))
		dest := filepath.Join(dir, name)
		if err := copyUpload(fh, dest); err != nil {
			return stored, err
		}
		stored = append(stored, model.StoredFile{OriginalName: fh.Filename, Path: dest})
		info.Files = append(info.Files, name)
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return stored, fmt.Errorf("encode info.json: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "info.json"), data, 0o640); err != nil {
		return stored, fmt.Errorf("write info.json: %w", err)
	}
	return stored, nil
}

// ValidateAttachments checks count, size and type before anything is stored.
func ValidateAttachments(files []*multipart.FileHeader, maxFiles int, maxBytes int64) error {
	if maxFiles > 0 && len(files) > maxFiles {
		return fmt.Errorf("%w: %d (max: %d)", ErrTooManyFiles, len(files), maxFiles)
	}
	for _, fh := range files {
		if maxBytes > 0 && fh.Size > maxBytes {
			return fmt.Errorf("%w: %s is %d bytes (max: %d)", ErrFileTooLarge, fh.Filename, fh.Size, maxBytes)
		}
		if ext := strings.ToLower(filepath.Ext(fh.Filename)); ext != "" && !allowedExtensions[ext] {
			return fmt.Errorf("%w: %s", ErrUnsupportedFileType, ext)
		}
	}
	return nil
}

func attachmentExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return defaultExtension
	}
	return ext
}

func copyUpload(fh *multipart.FileHeader, dest string) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	dst, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
