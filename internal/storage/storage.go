package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store persists uploaded objects. Names are slash separated keys such as
// "avatars/3f1c...jpg"; they are what models keep in their image columns.
type Store interface {
	Save(ctx context.Context, name string, data []byte, contentType string) error
	Delete(ctx context.Context, name string) error
	URL(name string) string
}

// ObjectName returns a fresh key under prefix with the given extension.
func ObjectName(prefix, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return path.Join(prefix, uuid.NewString()+strings.ToLower(ext))
}

// LocalStore keeps objects on disk below Dir and serves them from BaseURL.
type LocalStore struct {
	Dir     string
	BaseURL string
}

func NewLocalStore(dir, baseURL string) *LocalStore {
	return &LocalStore{Dir: dir, BaseURL: strings.TrimSuffix(baseURL, "/")}
}

func (ls *LocalStore) fullPath(name string) (string, error) {
	clean := path.Clean("/" + name)
	if clean == "/" {
		return "", fmt.Errorf("invalid object name %q", name)
	}
	return filepath.Join(ls.Dir, filepath.FromSlash(clean)), nil
}

func (ls *LocalStore) Save(_ context.Context, name string, data []byte, _ string) error {
	full, err := ls.fullPath(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}

func (ls *LocalStore) Delete(_ context.Context, name string) error {
	full, err := ls.fullPath(name)
	if err != nil {
		return err
	}
	err = os.Remove(full)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (ls *LocalStore) URL(name string) string {
	return ls.BaseURL + "/" + strings.TrimPrefix(name, "/")
}

// S3Store keeps objects in an S3 compatible bucket.
type S3Store struct {
	Client     *minio.Client
	BucketName string
	PublicURL  string
}

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	PublicURL string
	UseSSL    bool
}

func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	endpoint := strings.TrimPrefix(cfg.Endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")

	var creds *credentials.Credentials
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		creds = credentials.NewIAM("")
	} else {
		creds = credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, "")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  creds,
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", cfg.Bucket)
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		protocol := "http"
		if cfg.UseSSL {
			protocol = "https"
		}
		publicURL = fmt.Sprintf("%s://%s.%s", protocol, cfg.Bucket, endpoint)
	}

	return &S3Store{
		Client:     client,
		BucketName: cfg.Bucket,
		PublicURL:  strings.TrimSuffix(publicURL, "/"),
	}, nil
}

func (s *S3Store) Save(ctx context.Context, name string, data []byte, contentType string) error {
	_, err := s.Client.PutObject(ctx, s.BucketName, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (s *S3Store) Delete(ctx context.Context, name string) error {
	return s.Client.RemoveObject(ctx, s.BucketName, name, minio.RemoveObjectOptions{})
}

func (s *S3Store) URL(name string) string {
	return s.PublicURL + "/" + strings.TrimPrefix(name, "/")
}
