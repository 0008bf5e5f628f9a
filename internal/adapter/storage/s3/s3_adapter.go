package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/listing/domain"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/logger"
)

// objectClient is the subset of *minio.Client the storage needs.
type objectClient interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBaseURL prefixes every returned URL. Defaults to the endpoint.
	PublicBaseURL string
}

// S3Storage stores listing assets in a MinIO/S3 bucket.
type S3Storage struct {
	client  objectClient
	bucket  string
	baseURL string
	now     func() time.Time
	logger  *logger.Logger
}

// publicReadPolicy lets anonymous clients read uploaded assets.
const publicReadPolicy = `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/upload/*"]}]}`

func NewS3Storage(ctx context.Context, cfg Config, log *logger.Logger) (*S3Storage, error) {
	log = log.Named("S3Storage")
	log.Info("Initializing MinIO storage",
		zap.String("endpoint", cfg.Endpoint), zap.String("bucket", cfg.Bucket), zap.Bool("use_ssl", cfg.UseSSL))

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", cfg.Endpoint, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		log.Info("Bucket created", zap.String("bucket", cfg.Bucket))
	}
	if err := client.SetBucketPolicy(ctx, cfg.Bucket, fmt.Sprintf(publicReadPolicy, cfg.Bucket)); err != nil {
		log.Warn("Failed to set public read policy, asset URLs may not resolve", zap.Error(err))
	}

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = client.EndpointURL().String()
	}
	return newS3Storage(client, cfg.Bucket, baseURL, log), nil
}

func newS3Storage(client objectClient, bucket, baseURL string, log *logger.Logger) *S3Storage {
	return &S3Storage{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
		logger:  log,
	}
}

// Store uploads a single asset under folder and returns its URL and key.
func (s *S3Storage) Store(ctx context.Context, data []byte, folder string, opts domain.UploadOptions) (domain.StoredAsset, error) {
	kind := opts.Kind
	if kind == "" {
		kind = domain.ResourceImage
	}
	p, err := prepare(data, kind)
	if err != nil {
		return domain.StoredAsset{}, err
	}

	key := NewAssetKey(folder, opts.Prefix, s.now())
	name := objectName(key)
	info, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(p.data), int64(len(p.data)), minio.PutObjectOptions{
		ContentType:  p.contentType,
		UserMetadata: map[string]string{"resource-kind": string(kind)},
	})
	if err != nil {
		s.logger.Error("PutObject failed", zap.String("object", name), zap.Error(err))
		return domain.StoredAsset{}, fmt.Errorf("%w: %s: %v", domain.ErrUpload, key, err)
	}

	s.logger.Debug("Asset stored", zap.String("key", key), zap.Int64("size", info.Size), zap.String("etag", info.ETag))
	return domain.StoredAsset{URL: s.publicURL(key), Key: key}, nil
}

// StoreMany uploads payloads concurrently and returns the assets in input
// order. If any upload fails the ones that succeeded are removed again.
func (s *S3Storage) StoreMany(ctx context.Context, payloads [][]byte, folder string, opts domain.UploadOptions) ([]domain.StoredAsset, error) {
	if len(payloads) == 0 {
		return []domain.StoredAsset{}, nil
	}

	assets := make([]domain.StoredAsset, len(payloads))
	g, gctx := errgroup.WithContext(ctx)
	for i, data := range payloads {
		g.Go(func() error {
			asset, err := s.Store(gctx, data, folder, opts)
			if err != nil {
				return err
			}
			assets[i] = asset
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var stored []string
		for _, a := range assets {
			if a.Key != "" {
				stored = append(stored, a.Key)
			}
		}
		if len(stored) > 0 {
			s.logger.Warn("Batch upload failed, removing stored assets", zap.Strings("keys", stored))
			s.RemoveMany(context.WithoutCancel(ctx), stored, opts.Kind)
		}
		return nil, err
	}
	return assets, nil
}

// Remove deletes the asset with the given key.
func (s *S3Storage) Remove(ctx context.Context, key string, kind domain.ResourceKind) error {
	name := objectName(key)
	if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		s.logger.Error("RemoveObject failed", zap.String("object", name), zap.String("kind", string(kind)), zap.Error(err))
		return fmt.Errorf("%w: %s: %v", domain.ErrDelete, key, err)
	}
	return nil
}

// RemoveByURL derives the key from a public URL and removes the asset.
func (s *S3Storage) RemoveByURL(ctx context.Context, rawURL string, kind domain.ResourceKind) error {
	key, err := KeyFromURL(rawURL)
	if err != nil {
		s.logger.Warn("Cannot derive asset key", zap.String("url", rawURL), zap.Error(err))
		return err
	}
	return s.Remove(ctx, key, kind)
}

// RemoveMany removes keys concurrently. Each key succeeds or fails on its
// own; the report holds one item per key in input order.
func (s *S3Storage) RemoveMany(ctx context.Context, keys []string, kind domain.ResourceKind) domain.CleanupReport {
	items := make([]domain.CleanupItem, len(keys))
	var wg sync.WaitGroup
	for i, key := range keys {
		wg.Add(1)
		go func() {
			defer wg.Done()
			items[i] = domain.CleanupItem{Key: key, Err: s.Remove(ctx, key, kind)}
		}()
	}
	wg.Wait()

	report := domain.CleanupReport{Items: items}
	if failed := report.FailedKeys(); len(failed) > 0 {
		s.logger.Warn("Some assets could not be removed", zap.Strings("keys", failed))
	}
	return report
}

// KeyFromURL implements domain.Storage.
func (s *S3Storage) KeyFromURL(rawURL string) (string, error) {
	return KeyFromURL(rawURL)
}

func (s *S3Storage) publicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, objectName(key))
}
