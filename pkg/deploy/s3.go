package deploy

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client used by S3Publisher.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Publisher publishes a built site to an S3 bucket.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	pub := deploy.NewS3Publisher(s3.NewFromConfig(cfg), "my-bucket", "app/")
//	err := pub.Publish(ctx, site)
type S3Publisher struct {
	client       S3API
	bucket       string
	prefix       string
	cacheControl string
}

// NewS3Publisher creates a publisher targeting bucket under prefix.
// A non-empty prefix should end with "/".
func NewS3Publisher(client S3API, bucket, prefix string) *S3Publisher {
	return &S3Publisher{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// WithCacheControl sets the Cache-Control header for uploaded objects.
func (p *S3Publisher) WithCacheControl(value string) *S3Publisher {
	p.cacheControl = value
	return p
}

// Publish uploads the build output, the manifest, and a copy of the app
// shell for each static route, so S3 static hosting serves deep links.
func (p *S3Publisher) Publish(ctx context.Context, site Site) error {
	files, err := collectFiles(site.BuildDir)
	if err != nil {
		return err
	}

	for _, f := range files {
		data, err := os.ReadFile(f.abs)
		if err != nil {
			return err
		}
		if err := p.put(ctx, f.rel, data, contentType(f.rel)); err != nil {
			return err
		}
	}

	var shell []byte
	for _, f := range files {
		if f.rel == IndexName {
			shell, err = os.ReadFile(f.abs)
			if err != nil {
				return err
			}
			break
		}
	}

	if site.Manifest != nil {
		var buf bytes.Buffer
		if _, err := site.Manifest.WriteTo(&buf); err != nil {
			return err
		}
		if err := p.put(ctx, ManifestName, buf.Bytes(), "application/json"); err != nil {
			return err
		}
	}

	for _, dest := range shellCopies(site.Manifest) {
		if err := p.put(ctx, dest, shell, "text/html; charset=utf-8"); err != nil {
			return err
		}
	}

	return nil
}

func (p *S3Publisher) put(ctx context.Context, rel string, data []byte, ct string) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(path.Join(p.prefix, rel)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(ct),
	}
	if p.cacheControl != "" {
		input.CacheControl = aws.String(p.cacheControl)
	}

	if _, err := p.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s3 upload of %s failed: %w", rel, err)
	}
	return nil
}
