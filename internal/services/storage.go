package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StorageService holds uploads for the lifetime of a single request.
type StorageService interface {
	SaveTemp(file *multipart.FileHeader) (string, error)
	Remove(filePath string)
	EnsureTempDir() error
}

type storageService struct {
	tempPath string
	logger   *zap.Logger
}

func NewStorageService(tempPath string, logger *zap.Logger) StorageService {
	return &storageService{
		tempPath: tempPath,
		logger:   logger,
	}
}

func (s *storageService) EnsureTempDir() error {
	if err := os.MkdirAll(s.tempPath, 0755); err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}

	return nil
}

// SaveTemp writes the upload to a path unique to this call and checks that
// the content is a PDF. The caller owns the returned path and must Remove it.
func (s *storageService) SaveTemp(file *multipart.FileHeader) (string, error) {
	filePath := filepath.Join(s.tempPath, fmt.Sprintf("upload_%s.pdf", uuid.New().String()))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	_, copyErr := io.Copy(dst, src)
	closeErr := dst.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		s.Remove(filePath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	mtype, err := mimetype.DetectFile(filePath)
	if err != nil {
		s.Remove(filePath)
		return "", fmt.Errorf("failed to detect file type: %w", err)
	}
	if !mtype.Is("application/pdf") {
		s.Remove(filePath)
		return "", fmt.Errorf("%w: detected %s", ErrNotPDF, mtype.String())
	}

	return filePath, nil
}

// Remove deletes a temp file. Failures are logged, never returned.
func (s *storageService) Remove(filePath string) {
	if filePath == "" {
		return
	}

	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove temp file",
			zap.String("path", filePath),
			zap.Error(err))
	}
}
