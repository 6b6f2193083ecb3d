package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Service struct {
	BucketName string
	Client     *s3.Client
}

// NewS3Service initializes the S3 service
func NewS3Service(bucketName string) (*S3Service, error) {
	// Load AWS configuration
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(aws.AnonymousCredentials{}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %v", err)
	}

	if bucketName == "" {
		return nil, fmt.Errorf("bucket name is not set")
	}

	client := s3.NewFromConfig(cfg)

	return &S3Service{
		BucketName: bucketName,
		Client:     client,
	}, nil
}

// UploadServicioImagen sube la imagen de un servicio al bucket y retorna la
// URL pública. La clave queda bajo el prefijo servicios/
func (s *S3Service) UploadServicioImagen(
	ctx context.Context,
	servicioID int,
	file multipart.File,
	fileHeader *multipart.FileHeader,
) (string, error) {
	defer file.Close()

	buffer := bytes.NewBuffer(nil)
	if _, err := buffer.ReadFrom(file); err != nil {
		return "", fmt.Errorf("failed to read file: %v", err)
	}

	key := fmt.Sprintf("servicios/%d_%d%s", servicioID, time.Now().Unix(), filepath.Ext(fileHeader.Filename))

	putObjectInput := &s3.PutObjectInput{
		Bucket:      aws.String(s.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buffer.Bytes()),
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	}

	if _, err := s.Client.PutObject(ctx, putObjectInput); err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %v", err)
	}

	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.BucketName, key)
	return url, nil
}
