// Package s3 provides the shared remote record as one object in an
// S3-compatible bucket (AWS S3 or MinIO).
//
// S3 has no change feed, so Watch polls the object's ETag and re-reads the
// body when it changes.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/mmynk/seatsync/internal/models"
	"github.com/mmynk/seatsync/internal/storage"
)

// Ensure Store implements storage.Remote
var _ storage.Remote = (*Store)(nil)

// DefaultPollInterval is used when Config.PollInterval is zero.
const DefaultPollInterval = 2 * time.Second

// objectAPI is the subset of *s3.Client the store needs.
type objectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config holds construction parameters.
type Config struct {
	Bucket          string
	Region          string        // default us-east-1
	Endpoint        string        // optional; set for MinIO or other S3-compatible services
	AccessKeyID     string        // optional (falls back to default credentials chain)
	SecretAccessKey string        // optional
	PathStyle       bool
	PollInterval    time.Duration // default DefaultPollInterval
}

// Store implements storage.Remote on a single bucket. Keys map to
// "<key>.json" objects.
type Store struct {
	client   objectAPI
	bucket   string
	interval time.Duration
}

// New creates an S3 store from cfg.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return newStore(client, cfg.Bucket, cfg.PollInterval), nil
}

func newStore(client objectAPI, bucket string, interval time.Duration) *Store {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Store{client: client, bucket: bucket, interval: interval}
}

// Close is a no-op; the SDK client holds no resources that need releasing.
func (s *Store) Close() error {
	return nil
}

// Save overwrites the object for key.
func (s *Store) Save(ctx context.Context, key string, snapshot models.Snapshot) error {
	body, err := storage.Encode(snapshot)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey(key)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Watch pushes the current object, then polls every interval and pushes
// again whenever the ETag changes. Any request failure ends the watch.
func (s *Store) Watch(ctx context.Context, key string, fn func(storage.Push)) error {
	push, etag, err := s.read(ctx, key)
	if err != nil {
		return err
	}
	fn(push)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		current, err := s.etag(ctx, key)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if current == etag {
			continue
		}

		push, etag, err = s.read(ctx, key)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		fn(push)
	}
}

// read fetches the object body. A missing object is an absent push with an
// empty ETag.
func (s *Store) read(ctx context.Context, key string) (storage.Push, string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(key)),
	})
	if isNotFound(err) {
		return storage.Push{}, "", nil
	}
	if err != nil {
		return storage.Push{}, "", fmt.Errorf("get %s: %w", key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return storage.Push{}, "", fmt.Errorf("read %s: %w", key, err)
	}
	snapshot, ok := storage.Decode(body)
	return storage.Push{Snapshot: snapshot, Exists: ok}, aws.ToString(out.ETag), nil
}

func (s *Store) etag(ctx context.Context, key string) (string, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(key)),
	})
	if isNotFound(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("head %s: %w", key, err)
	}
	return aws.ToString(out.ETag), nil
}

func objectKey(key string) string {
	return key + ".json"
}

func isNotFound(err error) bool {
	var noKey *types.NoSuchKey
	var notFound *types.NotFound
	return errors.As(err, &noKey) || errors.As(err, &notFound)
}
