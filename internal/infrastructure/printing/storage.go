package printing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StoreRequest contains a rendered PDF and its addressing information
type StoreRequest struct {
	PropertyID uuid.UUID
	InvoiceID  uuid.UUID
	PDFData    []byte
	// GeneratedAt determines the year/month path segments
	GeneratedAt time.Time
}

// StoreResult describes where a PDF was stored
type StoreResult struct {
	// Key is the storage-relative path of the document
	Key string
	// URL is an accessible location for the document, when the backend has one
	URL  string
	Size int64
}

// PDFStorage persists rendered invoice documents
type PDFStorage interface {
	Store(ctx context.Context, req *StoreRequest) (*StoreResult, error)
	// Retrieve returns the raw PDF bytes for a previously stored key
	Retrieve(ctx context.Context, key string) ([]byte, error)
}

// FileSystemStorage stores PDFs on the local filesystem under
// {base}/{property}/{year}/{month}/{invoice}.pdf
type FileSystemStorage struct {
	basePath string
}

// NewFileSystemStorage creates the storage rooted at basePath
func NewFileSystemStorage(basePath string) (*FileSystemStorage, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("resolve storage path: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &FileSystemStorage{basePath: abs}, nil
}

func (s *FileSystemStorage) Store(ctx context.Context, req *StoreRequest) (*StoreResult, error) {
	if len(req.PDFData) == 0 {
		return nil, NewRenderError(ErrCodeStorageFailed, "PDF data is empty", nil)
	}

	key := StorageKey(req.PropertyID, req.InvoiceID, req.GeneratedAt)
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(key))

	// The key is built from UUIDs and date parts, but keep the guard anyway.
	if !strings.HasPrefix(fullPath, s.basePath) {
		return nil, NewRenderError(ErrCodeStorageFailed, "invalid storage path", nil)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to create directory", err)
	}
	if err := os.WriteFile(fullPath, req.PDFData, 0o644); err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to write PDF", err)
	}

	return &StoreResult{
		Key:  key,
		URL:  "file://" + fullPath,
		Size: int64(len(req.PDFData)),
	}, nil
}

func (s *FileSystemStorage) Retrieve(ctx context.Context, key string) ([]byte, error) {
	cleaned := filepath.Clean(filepath.FromSlash(key))
	if strings.Contains(cleaned, "..") || filepath.IsAbs(cleaned) {
		return nil, NewRenderError(ErrCodeStorageFailed, "invalid storage key", nil)
	}

	fullPath := filepath.Join(s.basePath, cleaned)
	if !strings.HasPrefix(fullPath, s.basePath) {
		return nil, NewRenderError(ErrCodeStorageFailed, "invalid storage key", nil)
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, NewRenderError(ErrCodeStorageFailed, "failed to read PDF", err)
	}
	return data, nil
}

// StorageKey builds the canonical document key for an invoice
func StorageKey(propertyID, invoiceID uuid.UUID, generatedAt time.Time) string {
	return fmt.Sprintf("%s/%04d/%02d/%s.pdf",
		propertyID.String(), generatedAt.Year(), int(generatedAt.Month()), invoiceID.String())
}
