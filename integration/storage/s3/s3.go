package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/dmitrymomot/visitortrack/core/visitor"
)

// Compile-time check that Storage implements the visitor storage contract.
var _ visitor.Storage = (*Storage)(nil)

// defaultKey is the object key used when none is configured.
const defaultKey = "visitortrack/snapshot.json"

// Client defines the S3 operations used by Storage. The real
// *s3.Client satisfies it; tests substitute a mock.
type Client interface {
	GetObject(ctx context.Context, params *s3aws.GetObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3aws.PutObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.PutObjectOutput, error)
}

// Config contains S3 connection settings with environment variable mapping.
// Endpoint and ForcePathStyle support S3-compatible services like MinIO.
type Config struct {
	Bucket         string `env:"S3_BUCKET,required"`
	Region         string `env:"S3_REGION,required"`
	Key            string `env:"S3_SNAPSHOT_KEY" envDefault:"visitortrack/snapshot.json"`
	AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"S3_SECRET_KEY"`
	Endpoint       string `env:"S3_ENDPOINT"`
	ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE"`
}

// Storage persists the visitor snapshot as one JSON object in an S3 bucket,
// replaced wholesale on every save.
type Storage struct {
	client  Client
	bucket  string
	key     string
	timeout time.Duration
}

// Option configures the S3 storage.
type Option func(*options)

type options struct {
	httpClient    *http.Client
	s3Client      Client
	configOptions []func(*config.LoadOptions) error
	clientOptions []func(*s3aws.Options)
	timeout       time.Duration
}

// WithClient sets a custom pre-configured S3 client. Primarily used for
// testing with mocks.
func WithClient(client Client) Option {
	return func(o *options) {
		o.s3Client = client
	}
}

// WithHTTPClient sets a custom HTTP client for S3 requests. Useful for
// custom timeout, proxy, or TLS configuration.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithConfigOption adds a custom AWS config option.
func WithConfigOption(option func(*config.LoadOptions) error) Option {
	return func(o *options) {
		o.configOptions = append(o.configOptions, option)
	}
}

// WithClientOption adds a custom S3 client option.
func WithClientOption(option func(*s3aws.Options)) Option {
	return func(o *options) {
		o.clientOptions = append(o.clientOptions, option)
	}
}

// WithTimeout bounds every storage operation. If not set, operations rely on
// the context deadline from the caller.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// New creates an S3-backed storage. Supports both AWS S3 and S3-compatible
// services; credentials fall back to IAM roles and the environment when not
// set in the config.
func New(ctx context.Context, cfg Config, opts ...Option) (*Storage, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, fmt.Errorf("%w: bucket and region are required", visitor.ErrInvalidConfig)
	}
	if cfg.Key == "" {
		cfg.Key = defaultKey
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	client := o.s3Client
	if client == nil {
		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretKey,
					"",
				)),
			)
		}
		if o.httpClient != nil {
			awsOptions = append(awsOptions, config.WithHTTPClient(o.httpClient))
		}
		awsOptions = append(awsOptions, o.configOptions...)

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}

		client = s3aws.NewFromConfig(awsConfig, func(so *s3aws.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle

			for _, opt := range o.clientOptions {
				opt(so)
			}
		})
	}

	return &Storage{
		client:  client,
		bucket:  cfg.Bucket,
		key:     cfg.Key,
		timeout: o.timeout,
	}, nil
}

// Load fetches and decodes the snapshot object.
func (s *Storage) Load(ctx context.Context) (*visitor.Snapshot, error) {
	ctx, cancel := s.opContext(ctx)
	defer cancel()

	out, err := s.client.GetObject(ctx, &s3aws.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, visitor.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("get snapshot object: %w", err)
	}
	defer out.Body.Close()

	b, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read snapshot object: %w", err)
	}

	var snap visitor.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("%w: %w", visitor.ErrCorruptSnapshot, err)
	}
	return &snap, nil
}

// Save replaces the snapshot object.
func (s *Storage) Save(ctx context.Context, snap *visitor.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	_, err = s.client.PutObject(ctx, &s3aws.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(b),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put snapshot object: %w", err)
	}
	return nil
}

func (s *Storage) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return ctx, func() {}
}
