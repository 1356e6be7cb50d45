package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/commons-backend/internal/storage"
)

// UploadService normalises uploaded images and puts them in the store.
type UploadService struct {
	store  storage.Store
	maxDim int
}

func NewUploadService(store storage.Store, maxDim int) *UploadService {
	return &UploadService{store: store, maxDim: maxDim}
}

type StoredImage struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// SaveImage stores r under prefix and returns the object name.
func (s *UploadService) SaveImage(ctx context.Context, prefix, filename string, r io.Reader) (*StoredImage, error) {
	img, err := storage.NormalizeImage(r, filename, s.maxDim)
	if err != nil {
		return nil, err
	}

	name := storage.ObjectName(prefix, img.Ext)
	if err := s.store.Save(ctx, name, img.Data, img.ContentType); err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	slog.Info("image stored", "name", name, "width", img.Width, "height", img.Height)
	return &StoredImage{Name: name, URL: s.store.URL(name)}, nil
}

// Discard removes an object stored by SaveImage, typically after the
// owning row failed to save.
func (s *UploadService) Discard(ctx context.Context, name string) {
	if err := s.store.Delete(ctx, name); err != nil {
		slog.Warn("failed to discard stored image", "name", name, "error", err)
	}
}

func (s *UploadService) URL(name string) string {
	if name == "" {
		return ""
	}
	return s.store.URL(name)
}
