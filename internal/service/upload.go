package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	cldconfig "github.com/cloudinary/cloudinary-go/v2/config"

	"github.com/mealmate/backend/config"
)

// IsLocalImage reports whether an image reference still points at a
// device-local file rather than a hosted URL.
func IsLocalImage(uri string) bool {
	return strings.HasPrefix(uri, "file://")
}

// CloudinaryUploader uploads meal photos to Cloudinary.
type CloudinaryUploader struct {
	cloudName string
	uploader  *uploader.API
	folder    string
}

// NewCloudinaryUploader creates an uploader from Cloudinary credentials.
func NewCloudinaryUploader(cloudName, apiKey, apiSecret, folder string) (*CloudinaryUploader, error) {
	cfg, err := cldconfig.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	up, err := uploader.NewWithConfiguration(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary uploader: %w", err)
	}
	if folder == "" {
		folder = "mealmate/meals"
	}
	return &CloudinaryUploader{cloudName: cloudName, uploader: up, folder: folder}, nil
}

// UploadImage implements ImageUploader. A response without a secure URL
// is an upload failure, not a success with an empty result.
func (u *CloudinaryUploader) UploadImage(ctx context.Context, file io.Reader, name string) (string, error) {
	result, err := u.uploader.Upload(ctx, file, uploader.UploadParams{
		Folder:   u.folder,
		PublicID: name,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload returned no secure_url for %s", name)
	}
	return result.SecureURL, nil
}

// S3Uploader stores meal photos in an S3 bucket with public-read
// access. Alternative backend to Cloudinary.
type S3Uploader struct {
	s3Config *config.S3Config
	prefix   string
}

// NewS3Uploader creates an uploader over an initialized S3 config.
func NewS3Uploader(s3Config *config.S3Config, prefix string) *S3Uploader {
	if prefix == "" {
		prefix = "meal-images"
	}
	return &S3Uploader{s3Config: s3Config, prefix: prefix}
}

// UploadImage implements ImageUploader.
func (u *S3Uploader) UploadImage(ctx context.Context, file io.Reader, name string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}

	key := fmt.Sprintf("%s/%s.jpg", u.prefix, name)
	_, err = u.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", u.s3Config.BucketName, key), nil
}
