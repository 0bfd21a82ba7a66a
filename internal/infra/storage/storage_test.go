package storage

import (
	"bytes"
	"context"
	"log"
	"os"
	"strings"
	"testing"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/localstack"
)

var icons *Storage

func TestMain(m *testing.M) {
	ctx := context.Background()

	ls, err := localstack.Run(ctx,
		"localstack/localstack:1.4.0",
		testcontainers.WithEnv(map[string]string{"SERVICES": "s3"}),
	)
	if err != nil {
		log.Fatalf("failed to start localstack: %v", err)
	}

	mappedPort, err := ls.MappedPort(ctx, "4566/tcp")
	if err != nil {
		log.Fatalf("failed to get port: %v", err)
	}
	provider, err := testcontainers.NewDockerProvider()
	if err != nil {
		log.Fatalf("failed to start docker provider: %v", err)
	}
	defer provider.Close()
	host, err := provider.DaemonHost(ctx)
	if err != nil {
		log.Fatalf("failed to get host: %v", err)
	}

	os.Setenv("AWS_ACCESS_KEY_ID", "test")
	os.Setenv("AWS_SECRET_ACCESS_KEY", "test")
	os.Setenv("AWS_REGION", "us-east-1")
	os.Setenv("AWS_ENDPOINT_URL", "http://"+host+":"+mappedPort.Port())
	os.Setenv("S3_BUCKET", "pocket-vibe-test")

	cfg, err := awsConfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("failed to load aws config: %v", err)
	}
	icons = NewStorage(cfg)

	bucket := "pocket-vibe-test"
	if _, err := icons.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: &bucket}); err != nil {
		log.Fatalf("failed to create bucket: %v", err)
	}

	exitCode := m.Run()

	if err := ls.Terminate(ctx); err != nil {
		log.Printf("failed to terminate localstack: %s", err)
	}
	os.Exit(exitCode)
}

func TestUploadAndGetFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	payload := []byte("fake png bytes")

	url, err := icons.UploadFile(ctx, "icons/test-icon.png", nil, bytes.NewReader(payload))
	require.NoError(t, err)
	require.Equal(t, icons.ObjectURL("icons/test-icon.png"), url)

	data, err := icons.GetFile(ctx, "icons/test-icon.png")
	require.NoError(t, err)
	require.Equal(t, payload, data)
}

func TestUploadFileDetectsPNGByExtension(t *testing.T) {
	ctx := context.Background()

	_, err := icons.UploadFile(ctx, "icons/ext-check.png", nil, bytes.NewReader([]byte("not really a png")))
	require.NoError(t, err)

	head, err := icons.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: &icons.bucket,
		Key:    strPtr("icons/ext-check.png"),
	})
	require.NoError(t, err)
	require.Equal(t, "image/png", *head.ContentType)
	require.Equal(t, "max-age=31536000", *head.CacheControl)
}

func TestObjectURLShape(t *testing.T) {
	url := icons.ObjectURL("icons/a.png")
	require.True(t, strings.HasPrefix(url, icons.BaseURL()))
	require.Contains(t, url, "pocket-vibe-test.s3.")
	require.True(t, strings.HasSuffix(url, "/icons/a.png"))
}

func strPtr(s string) *string {
	return &s
}
