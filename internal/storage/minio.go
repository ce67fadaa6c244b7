package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioStorage struct {
	client   *minio.Client
	endpoint string
	bucket   string
	useSSL   bool
}

func NewMinioStorage(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &MinioStorage{
		client:   client,
		endpoint: endpoint,
		bucket:   bucket,
		useSSL:   useSSL,
	}, nil
}

// ensureBucket lazily creates the bucket. Two callers can race the
// existence check; losing the race surfaces as "already exists" from
// the create call and is treated as success.
func (s *MinioStorage) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}

	log.Printf("bucket %s does not exist, creating", s.bucket)
	err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	if err != nil {
		code := minio.ToErrorResponse(err).Code
		if code == "BucketAlreadyOwnedByYou" || code == "BucketAlreadyExists" {
			return nil
		}
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}

	return nil
}

func (s *MinioStorage) Upload(
	ctx context.Context,
	reader io.Reader,
	size int64,
	taskID uint,
	filename, mimeType string,
) (*UploadResult, error) {
	if err := ValidateFile(size, filename, mimeType); err != nil {
		return nil, err
	}

	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("tasks/%d/%d-%s", taskID, time.Now().UnixMilli(), filename)

	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: mimeType,
		UserMetadata: map[string]string{
			"task-id":       fmt.Sprintf("%d", taskID),
			"uploaded-at":   time.Now().UTC().Format(time.RFC3339),
			"original-name": filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}

	log.Printf("uploaded attachment %s/%s", s.bucket, key)

	return &UploadResult{
		URL:      s.publicURL(key),
		Filename: filename,
		Size:     size,
		MimeType: mimeType,
		Key:      key,
	}, nil
}

func (s *MinioStorage) Delete(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		code := minio.ToErrorResponse(err).Code
		if code == "NoSuchKey" || code == "NoSuchBucket" {
			return nil
		}
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// publicURL builds the externally reachable address for a stored
// object. Whether the bucket is actually readable at that address is a
// deployment concern, not enforced here.
func (s *MinioStorage) publicURL(key string) string {
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, key)
}
