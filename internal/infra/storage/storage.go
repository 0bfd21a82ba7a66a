package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pocketvibe/pocketvibe-backend/pkg/env"
)

// Storage keeps generated and rebranded app icons in S3 under public URLs
// with long-lived cache headers.
type Storage struct {
	client *s3.Client
	bucket string
	region string
}

func NewStorage(config aws.Config) *Storage {
	return &Storage{
		initClient(config),
		env.GetEnv("S3_BUCKET", "pocket-vibe"),
		env.GetEnv("AWS_DEFAULT_REGION", "us-west-1"),
	}
}

func initClient(config aws.Config) *s3.Client {
	return s3.NewFromConfig(config, func(o *s3.Options) {
		o.UsePathStyle = true
	})
}

func (s *Storage) UploadFile(ctx context.Context, key string, contentType *string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading for content-type detection: %v", err)
	}

	var ct string
	if contentType == nil {
		ct = http.DetectContentType(data)
		if strings.HasSuffix(key, ".png") {
			ct = "image/png"
		}
	} else {
		ct = *contentType
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(ct),
		CacheControl:  aws.String("max-age=31536000"),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", err
	}

	return s.ObjectURL(key), nil
}

func (s *Storage) GetFile(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("error downloading file %v: %v", key, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading file contents, %v", err)
	}
	return data, nil
}

// BaseURL is the public prefix all objects in the bucket share.
func (s *Storage) BaseURL() string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
}

// ObjectURL is the public URL shape the bucket serves icons from; retention
// is handled by a bucket lifecycle rule, not by the application.
func (s *Storage) ObjectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
