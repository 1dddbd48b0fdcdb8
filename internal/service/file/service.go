package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/attendly/timeclock-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type FileService interface {
	// SaveImportArchive keeps the raw device export so a disputed
	// reconciliation can be replayed against its source.
	SaveImportArchive(ctx context.Context, batchID string, file io.Reader, filename string) (string, error)

	// SaveExportWorkbook stores a rendered report workbook and returns the
	// stored path.
	SaveExportWorkbook(ctx context.Context, file io.Reader, filename string) (string, error)

	// Generic operations
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// SaveImportArchive stores the uploaded device export under its batch id.
func (s *fileServiceImpl) SaveImportArchive(ctx context.Context, batchID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".xlsx" && ext != ".xls" {
		return "", fmt.Errorf("invalid file type: only xlsx, xls allowed")
	}

	newFilename := fmt.Sprintf("%d%s", time.Now().Unix(), ext)
	path := filepath.Join("imports", batchID, newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, xlsxContentType)
	if err != nil {
		return "", fmt.Errorf("failed to archive import: %w", err)
	}

	return uploadedPath, nil
}

// SaveExportWorkbook stores a rendered report workbook.
func (s *fileServiceImpl) SaveExportWorkbook(ctx context.Context, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".xlsx"
	}

	uniqueID := uuid.New().String()
	newFilename := fmt.Sprintf("%s-%s%s", strings.TrimSuffix(filepath.Base(filename), ext), uniqueID, ext)
	path := filepath.Join("exports", newFilename)

	uploadedPath, err := s.storage.Upload(ctx, file, path, xlsxContentType)
	if err != nil {
		return "", fmt.Errorf("failed to store export workbook: %w", err)
	}

	return uploadedPath, nil
}

// DeleteFile deletes a file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL generates URL to access file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}
