package faqsource

import (
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yanqian/faq-assistant/internal/domain/faq"
)

// ObjectConfig locates the table in an S3-compatible bucket (R2, MinIO, S3).
type ObjectConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Key       string
}

// ObjectSource reads the table from object storage.
type ObjectSource struct {
	client   *minio.Client
	bucket   string
	key      string
	maxBytes int64
}

// NewObjectSource constructs the storage adapter.
func NewObjectSource(cfg ObjectConfig) (*ObjectSource, error) {
	useSSL := !strings.HasPrefix(strings.ToLower(strings.TrimSpace(cfg.Endpoint)), "http://")
	client, err := minio.New(sanitizeEndpoint(cfg.Endpoint), &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       useSSL,
		Region:       cfg.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init object storage client: %w", err)
	}
	return &ObjectSource{client: client, bucket: cfg.Bucket, key: cfg.Key, maxBytes: maxTableBytes}, nil
}

// Name implements faq.Source.
func (s *ObjectSource) Name() string {
	return fmt.Sprintf("s3:%s/%s", s.bucket, s.key)
}

// Load implements faq.Source.
func (s *ObjectSource) Load(ctx context.Context) (faq.RecordSet, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get faq object: %w", err)
	}
	defer obj.Close()
	// GetObject is lazy; Stat surfaces missing keys before reading.
	if _, err := obj.Stat(); err != nil {
		return nil, fmt.Errorf("stat faq object: %w", err)
	}
	data, err := readTable(obj, s.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("read faq object: %w", err)
	}
	return faq.ParseRecords(data), nil
}

// sanitizeEndpoint removes schemes and paths to satisfy minio.New expectations.
func sanitizeEndpoint(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	if idx := strings.Index(raw, "/"); idx >= 0 {
		raw = raw[:idx]
	}
	return raw
}

var _ faq.Source = (*ObjectSource)(nil)
