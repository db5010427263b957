package s3

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"inkwell/pkg/apperr"
	"inkwell/pkg/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type Client struct {
	s3Client *s3.S3
	bucket   string
}

// NewClient builds the object-store client. A missing bucket name does not
// fail here; every operation returns a StorageError until it is configured.
func NewClient(cfg *config.Config) (*Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}

	// Support MinIO for local development
	if cfg.AWSEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AWSEndpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if cfg.S3UseSSL == "false" {
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	client := &Client{
		s3Client: s3.New(sess),
		bucket:   cfg.S3BucketName,
	}

	if client.bucket != "" {
		// Ensure bucket exists (for MinIO)
		_, err = client.s3Client.HeadBucket(&s3.HeadBucketInput{
			Bucket: aws.String(client.bucket),
		})
		if err != nil {
			_, _ = client.s3Client.CreateBucket(&s3.CreateBucketInput{
				Bucket: aws.String(client.bucket),
			})
		}
	}

	return client, nil
}

func (c *Client) ready() error {
	if c == nil || c.s3Client == nil || c.bucket == "" {
		return apperr.Storage(nil, "object storage is not initialized")
	}
	return nil
}

// UploadFile stores the blob under key and returns the key.
func (c *Client) UploadFile(key string, file io.Reader, contentType string) (string, error) {
	if err := c.ready(); err != nil {
		return "", err
	}

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, file); err != nil {
		return "", apperr.Storage(err, "failed to read file")
	}

	_, err := c.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", apperr.Storage(err, "failed to upload file")
	}

	return key, nil
}

func (c *Client) DeleteFile(key string) error {
	if err := c.ready(); err != nil {
		return err
	}

	_, err := c.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return apperr.Storage(err, "failed to delete file")
	}
	return nil
}

// FileViewURL builds the public object URL. No network round trip.
func (c *Client) FileViewURL(key string) (string, error) {
	if err := c.ready(); err != nil {
		return "", err
	}
	return c.objectURL(key), nil
}

// FilePreviewURL builds a downscaled-preview URL understood by the image
// proxy in front of the bucket. Falls back to the plain object URL shape.
func (c *Client) FilePreviewURL(key string) (string, error) {
	if err := c.ready(); err != nil {
		return "", err
	}
	return c.objectURL(key) + "?width=400", nil
}

func (c *Client) objectURL(key string) string {
	endpoint := aws.StringValue(c.s3Client.Config.Endpoint)
	if endpoint != "" && !strings.Contains(endpoint, "amazonaws.com") {
		// MinIO URL format
		protocol := "http"
		if c.s3Client.Config.DisableSSL != nil && !*c.s3Client.Config.DisableSSL {
			protocol = "https"
		}
		endpoint = strings.TrimPrefix(endpoint, "http://")
		endpoint = strings.TrimPrefix(endpoint, "https://")
		return fmt.Sprintf("%s://%s/%s/%s", protocol, endpoint, c.bucket, key)
	}

	region := aws.StringValue(c.s3Client.Config.Region)
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, region, key)
}
