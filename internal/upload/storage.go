// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package upload stores admin-supplied cover images in S3-compatible object
storage and hands back a public URL for the site record.
*/
package upload

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Storage persists one object and returns the URL clients should use.
type Storage interface {
	Put(context context.Context, key string, body io.Reader, contentType string) (string, error)
}

// S3Config describes the bucket and how to reach it. Endpoint is only set
// for non-AWS providers (R2, MinIO), which then use path-style addressing.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string
}

// S3Storage implements [Storage] with the S3 upload manager.
type S3Storage struct {
	uploader  *manager.Uploader
	bucket    string
	publicURL string
}

// NewS3Storage builds a client from static credentials, falling back to the
// default AWS credential chain when none are given.
func NewS3Storage(ctx context.Context, config S3Config) (*S3Storage, error) {
	options := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(config.Region)}
	if config.AccessKeyID != "" {
		options = append(options, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(config.AccessKeyID, config.SecretAccessKey, ""),
		))
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("upload: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if config.Endpoint != "" {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{
		uploader:  manager.NewUploader(client),
		bucket:    config.Bucket,
		publicURL: strings.TrimRight(config.PublicURL, "/"),
	}, nil
}

// Put uploads body under key. The returned URL is built from PublicURL when
// configured, otherwise it is the location reported by the provider.
func (storage *S3Storage) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	output, err := storage.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(storage.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload: put %s: %w", key, err)
	}

	if storage.publicURL != "" {
		return storage.publicURL + "/" + key, nil
	}
	return output.Location, nil
}
