package services

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/ecosortapp/ecosort/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore is the blob storage used for waste images and complaint media.
type ObjectStore interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, objectName string) error
}

// MinioStore implements ObjectStore on a MinIO (S3-compatible) bucket with
// public-read URL issuance.
type MinioStore struct {
	client *minio.Client
	bucket string
	// baseURL is the public prefix objects are served from
	baseURL string
}

// NewMinioStore connects to the configured MinIO endpoint and ensures the
// bucket exists.
func NewMinioStore(cfg *config.Config) (*MinioStore, error) {
	client, err := minio.New(cfg.StorageEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
		Secure: cfg.StorageUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.StorageBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.StorageBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.StorageBucket, err)
		}
		log.Printf("Created bucket %s", cfg.StorageBucket)
	}

	scheme := "http"
	if cfg.StorageUseSSL {
		scheme = "https"
	}

	log.Printf("Object store initialized: %s/%s", cfg.StorageEndpoint, cfg.StorageBucket)

	return &MinioStore{
		client:  client,
		bucket:  cfg.StorageBucket,
		baseURL: fmt.Sprintf("%s://%s/%s", scheme, cfg.StorageEndpoint, cfg.StorageBucket),
	}, nil
}

// Upload stores the object and returns its public URL.
func (s *MinioStore) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s", s.baseURL, objectName), nil
}

// Remove deletes the object. Used to compensate a failed report pipeline.
func (s *MinioStore) Remove(ctx context.Context, objectName string) error {
	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}
