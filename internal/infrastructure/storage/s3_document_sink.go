package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"transporte_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

var ErrMissingBucket = errors.New("missing S3_BUCKET")

// PutObjectAPI is the part of the S3 client the sink uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3DocumentSink stores pre-invoice snapshots where the document renderer
// picks them up.
type S3DocumentSink struct {
	client PutObjectAPI
	bucket string
	prefix string
	logger *zap.Logger
}

var _ interfaces.IDocumentSink = (*S3DocumentSink)(nil)

func NewS3DocumentSink(client PutObjectAPI, bucket, prefix string, logger *zap.Logger) (*S3DocumentSink, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, ErrMissingBucket
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &S3DocumentSink{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: logger.Named("storage.s3"),
	}, nil
}

// ObjectKey places key under the configured prefix.
func (s *S3DocumentSink) ObjectKey(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.prefix == "" {
		return key
	}
	return path.Join(s.prefix, key)
}

func (s *S3DocumentSink) Publish(ctx context.Context, key string, body []byte, contentType string) error {
	objectKey := s.ObjectKey(key)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", s.bucket, objectKey, err)
	}
	s.logger.Info("document published",
		zap.String("bucket", s.bucket),
		zap.String("key", objectKey),
		zap.Int("bytes", len(body)))
	return nil
}
