// Package evidence uploads incident and voucher images to S3-compatible
// object storage.
package evidence

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var (
	ErrDisabled         = errors.New("evidence storage is not configured")
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrTooLarge         = errors.New("image exceeds the upload limit")
)

// MaxImageSize bounds a single upload.
const MaxImageSize = 10 << 20

var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

type putter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Store struct {
	client    putter
	bucket    string
	publicURL string
}

type Config struct {
	Bucket    string
	Endpoint  string // empty for AWS itself
	Region    string
	PublicURL string // base URL objects are served from
}

// New loads credentials from the default AWS chain. Custom endpoints use
// path-style addressing so MinIO and Supabase storage work.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, ErrDisabled
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newStore(client, cfg), nil
}

func newStore(client putter, cfg Config) *Store {
	public := cfg.PublicURL
	if public == "" {
		if cfg.Endpoint != "" {
			public = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
		} else {
			public = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}
	return &Store{client: client, bucket: cfg.Bucket, publicURL: strings.TrimRight(public, "/")}
}

// Upload stores an image under folder/recordID/ and returns its public URL.
func (s *Store) Upload(ctx context.Context, folder, recordID, contentType string, body io.Reader) (string, error) {
	if s == nil {
		return "", ErrDisabled
	}
	contentType = strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	ext, ok := extensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedImage, contentType)
	}
	// The SDK needs a seekable body of known length to checksum the
	// payload when the endpoint is plain HTTP.
	data, err := io.ReadAll(io.LimitReader(body, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(data) > MaxImageSize {
		return "", ErrTooLarge
	}
	key := fmt.Sprintf("%s/%s/%s.%s", folder, recordID, uuid.NewString(), ext)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return s.publicURL + "/" + key, nil
}
