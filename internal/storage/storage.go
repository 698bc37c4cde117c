package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	log "github.com/sirupsen/logrus"

	"github.com/KAMEVETRICS/gensyn-portal/internal/config"
)

// Category scopes stored assets; each category carries its own size ceiling.
type Category string

const (
	CategoryArtworks Category = "artworks"
	CategoryAvatars  Category = "avatars"
)

var (
	ErrTooLarge    = errors.New("file exceeds the size limit")
	ErrInvalidType = errors.New("unsupported file type")
)

// Storage abstracts over the local-disk and remote backends. Put returns an
// opaque locator: a site-relative path for local, an absolute URL for remote.
type Storage interface {
	Put(data []byte, category Category, filename, contentType string) (string, error)
	Delete(locator string) error
}

// Limits holds the upload policy applied before any byte is persisted.
type Limits struct {
	MaxArtworkSize int64
	MaxAvatarSize  int64
	AllowedTypes   []string
}

func LimitsFromConfig(cfg *config.Config) Limits {
	return Limits{
		MaxArtworkSize: cfg.Storage.MaxArtworkSize,
		MaxAvatarSize:  cfg.Storage.MaxAvatarSize,
		AllowedTypes:   cfg.Storage.AllowedTypes,
	}
}

// Max returns the size ceiling for a category.
func (l Limits) Max(category Category) int64 {
	if category == CategoryAvatars {
		return l.MaxAvatarSize
	}
	return l.MaxArtworkSize
}

// Validate rejects oversized payloads and declared types outside the raster
// image allow-list. It runs before any write on every backend.
func (l Limits) Validate(category Category, size int64, contentType string) error {
	for _, allowed := range l.AllowedTypes {
		if strings.EqualFold(contentType, allowed) {
			if size > l.Max(category) {
				return ErrTooLarge
			}
			return nil
		}
	}
	return ErrInvalidType
}

var sanitizePattern = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// lastStamp keeps generated names unique even within one millisecond.
var lastStamp int64

// UniqueFilename sanitizes a client-supplied name and prefixes it with a
// monotonically increasing timestamp, preventing collisions and path
// traversal.
func UniqueFilename(filename string) string {
	name := sanitizePattern.ReplaceAllString(filepath.Base(filename), "_")
	stamp := time.Now().UnixMilli()
	for {
		prev := atomic.LoadInt64(&lastStamp)
		if stamp <= prev {
			stamp = prev + 1
		}
		if atomic.CompareAndSwapInt64(&lastStamp, prev, stamp) {
			break
		}
	}
	return fmt.Sprintf("%d-%s", stamp, name)
}

// LocalStorage writes under a category-scoped directory on local disk.
// Locators are /uploads/<category>/<file> paths served statically.
type LocalStorage struct {
	root   string
	limits Limits
}

func NewLocalStorage(root string, limits Limits) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %v", err)
	}
	return &LocalStorage{root: root, limits: limits}, nil
}

func (s *LocalStorage) Put(data []byte, category Category, filename, contentType string) (string, error) {
	if err := s.limits.Validate(category, int64(len(data)), contentType); err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, string(category))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create category directory: %v", err)
	}

	name := UniqueFilename(filename)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %v", err)
	}

	return fmt.Sprintf("/uploads/%s/%s", category, name), nil
}

// Delete is best-effort: a locator that no longer resolves to a file (already
// deleted, not one of ours) completes without error.
func (s *LocalStorage) Delete(locator string) error {
	rel, ok := strings.CutPrefix(locator, "/uploads/")
	if !ok {
		log.WithField("locator", locator).Warn("skipping delete of unrecognized locator")
		return nil
	}
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") {
		log.WithField("locator", locator).Warn("skipping delete of unsafe locator")
		return nil
	}

	err := os.Remove(filepath.Join(s.root, rel))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %v", err)
	}
	return nil
}

// S3Storage uploads to a remote bucket under category-scoped keys. Locators
// are absolute URLs.
type S3Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
	limits    Limits
}

func NewS3Storage(cfg config.S3Config, limits Limits) (*S3Storage, error) {
	awsCfg := aws.Config{
		Region: cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	}

	if cfg.Endpoint != "" {
		customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               cfg.Endpoint,
				SigningRegion:     cfg.Region,
				HostnameImmutable: true,
			}, nil
		})
		awsCfg.EndpointResolverWithOptions = customResolver
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.ForcePathStyle
	})

	return &S3Storage{
		client:    client,
		bucket:    cfg.BucketName,
		publicURL: cfg.PublicURL,
		limits:    limits,
	}, nil
}

func (s *S3Storage) Put(data []byte, category Category, filename, contentType string) (string, error) {
	if err := s.limits.Validate(category, int64(len(data)), contentType); err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s/%s", category, UniqueFilename(filename))
	_, err := s.client.PutObject(context.Background(), &s3.PutObjectInput{
		Body:        bytes.NewReader(data),
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %v", err)
	}

	return s.urlFor(key), nil
}

func (s *S3Storage) Delete(locator string) error {
	key := s.keyFor(locator)
	if key == "" {
		log.WithField("locator", locator).Warn("skipping delete of unrecognized locator")
		return nil
	}

	_, err := s.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %v", err)
	}
	return nil
}

func (s *S3Storage) urlFor(key string) string {
	if s.publicURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(s.publicURL, "/"), key)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}

func (s *S3Storage) keyFor(locator string) string {
	base := s.urlFor("")
	if strings.HasPrefix(locator, base) {
		return strings.TrimPrefix(locator, base)
	}
	return ""
}

var provider Storage

// Initialize selects the backend once at process start. The choice is a
// deployment-time configuration, never a per-call decision.
func Initialize(cfg *config.Config) error {
	limits := LimitsFromConfig(cfg)

	switch strings.ToLower(cfg.Storage.Provider) {
	case "local":
		local, err := NewLocalStorage(cfg.Storage.LocalPath, limits)
		if err != nil {
			return err
		}
		provider = local
	case "s3":
		remote, err := NewS3Storage(cfg.Storage.S3, limits)
		if err != nil {
			return err
		}
		provider = remote
	default:
		return fmt.Errorf("unsupported storage provider: %s", cfg.Storage.Provider)
	}
	return nil
}

// Get returns the backend selected by Initialize.
func Get() Storage {
	return provider
}

// SetProvider swaps the backend; used by tests.
func SetProvider(s Storage) {
	provider = s
}

// CleanupAsset deletes a locator after its owning database row is gone.
// Failures are logged and abandoned: the data store is the source of truth
// and an orphaned asset is an acceptable leak.
func CleanupAsset(locator string) {
	if provider == nil || locator == "" {
		return
	}
	if err := provider.Delete(locator); err != nil {
		log.WithField("locator", locator).WithError(err).Warn("asset delete failed, continuing")
	}
}
