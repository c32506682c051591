// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage provides the S3-compatible bucket that holds portfolio
// images (project screenshots, testimonial avatars, service and process
// illustrations). Rows may store either a full public URL or a bare object
// key; this package turns keys into URLs and deletes objects that the
// application owns. It wraps the AWS SDK v2 configured for path-style
// access (required by CEPH/Hetzner).
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config holds the bucket connection settings.
type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	// PublicURL is an optional CDN or custom domain serving the bucket.
	PublicURL string
}

// Client is the public image bucket.
type Client struct {
	s3        *s3.Client
	bucket    string
	endpoint  string
	publicURL string
}

// New creates a storage client. It returns (nil, nil) if the endpoint or
// credentials are empty, allowing the app to start without storage. A nil
// *Client leaves image references untouched and owns no objects.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, nil
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket is required when an endpoint is set")
	}

	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		s3:        s3Client,
		bucket:    cfg.Bucket,
		endpoint:  endpoint,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// Delete removes an object from the bucket.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil {
		return nil
	}
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// FileURL returns the public URL for a key.
// Uses the configured public URL if set, otherwise builds a path-style URL.
func (c *Client) FileURL(key string) string {
	key = strings.TrimLeft(key, "/")
	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}
	return c.endpoint + "/" + c.bucket + "/" + key
}

// ResolveURL turns a stored image reference into something a browser can
// load. Absolute URLs, site-relative paths and data URIs pass through;
// anything else is treated as an object key in the bucket.
func (c *Client) ResolveURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if c == nil || ref == "" || external(ref) {
		return ref
	}
	return c.FileURL(ref)
}

// ExtractKey returns the object key for a reference owned by this bucket:
// a URL under the public URL or the path-style bucket URL, or a bare key.
// It returns ("", false) for anything else.
func (c *Client) ExtractKey(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if c == nil || ref == "" {
		return "", false
	}

	// Try publicURL prefix first (CDN or custom domain).
	if c.publicURL != "" {
		prefix := c.publicURL + "/"
		if strings.HasPrefix(ref, prefix) {
			return nonEmpty(ref[len(prefix):])
		}
	}

	// Try endpoint/bucket prefix (path-style S3).
	prefix := c.endpoint + "/" + c.bucket + "/"
	if strings.HasPrefix(ref, prefix) {
		return nonEmpty(ref[len(prefix):])
	}

	if external(ref) {
		return "", false
	}
	return ref, true
}

// Bucket returns the bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}

func external(ref string) bool {
	return strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "//") ||
		strings.HasPrefix(ref, "/") ||
		strings.HasPrefix(ref, "data:")
}

func nonEmpty(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	return key, true
}
