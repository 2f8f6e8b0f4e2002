package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/loren166/foodgram-project-react/config"
)

// ImageStorage persists decoded recipe image uploads and returns the URL
// stored on the recipe.
type ImageStorage interface {
	Save(ctx context.Context, data []byte, ext string) (string, error)
}

// LocalImageStorage writes images under a media directory on disk.
type LocalImageStorage struct {
	root    string
	baseURL string
}

func NewLocalImageStorage(root, baseURL string) *LocalImageStorage {
	return &LocalImageStorage{
		root:    root,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *LocalImageStorage) Save(ctx context.Context, data []byte, ext string) (string, error) {
	fileName := fmt.Sprintf("recipes/%s.%s", uuid.New().String(), ext)

	fullPath := filepath.Join(s.root, filepath.FromSlash(fileName))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return s.baseURL + "/" + fileName, nil
}

// S3ImageStorage uploads images to an S3 bucket with public-read URLs.
type S3ImageStorage struct {
	s3Config *config.S3Config
}

func NewS3ImageStorage(s3Config *config.S3Config) *S3ImageStorage {
	return &S3ImageStorage{s3Config: s3Config}
}

func (s *S3ImageStorage) Save(ctx context.Context, data []byte, ext string) (string, error) {
	fileName := fmt.Sprintf("recipes/%s.%s", uuid.New().String(), ext)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/" + ext),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	log.Printf("[ImageStorage] Uploaded recipe image to S3: %s", publicURL)

	return publicURL, nil
}
