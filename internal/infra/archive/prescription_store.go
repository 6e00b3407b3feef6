package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/igabaycare/clinic-core/internal/models"
)

// S3API is the subset of the S3 client used by PrescriptionStore.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// PrescriptionStore keeps an immutable JSON copy of every issued
// prescription. An empty bucket disables it.
type PrescriptionStore struct {
	bucket string
	client S3API
	log    zerolog.Logger
}

func NewPrescriptionStore(client S3API, bucket string, log zerolog.Logger) *PrescriptionStore {
	return &PrescriptionStore{bucket: bucket, client: client, log: log}
}

type S3Options struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// NewS3Client builds a client from static credentials. A custom endpoint
// (MinIO, LocalStack) switches to path-style addressing.
func NewS3Client(opts S3Options) *s3.Client {
	cfg := aws.Config{
		Region: opts.Region,
	}
	if opts.AccessKey != "" {
		cfg.Credentials = credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
}

func (s *PrescriptionStore) Enabled() bool {
	return s != nil && s.bucket != "" && s.client != nil
}

func Key(rx *models.Prescription) string {
	return fmt.Sprintf("prescriptions/%s/%s.json", rx.ClinicID, rx.PrescriptionNumber)
}

func (s *PrescriptionStore) ArchivePrescription(ctx context.Context, rx *models.Prescription) error {
	if !s.Enabled() {
		return nil
	}

	data, err := json.Marshal(rx)
	if err != nil {
		return fmt.Errorf("archive: marshal prescription: %w", err)
	}

	key := Key(rx)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("archive: s3 put %s: %w", key, err)
	}

	s.log.Info().
		Str("prescription_number", rx.PrescriptionNumber).
		Str("s3_key", key).
		Msg("archived prescription")
	return nil
}
