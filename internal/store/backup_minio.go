package store

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
)

const (
	backupPrefix         = "backups"
	defaultBackupRegion  = "us-east-1"
	ensureBucketTimeout  = 10 * time.Second
	backupContentType    = "application/json"
	backupFormatMetadata = "go-pass-vault/backup-v1"
)

// minioBackupStorage implements [BackupStorage] on an S3-compatible object
// store. Objects are written under backups/<objectName>.
type minioBackupStorage struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

// NewMinioBackupStorage connects to the object store described by cfg and
// makes sure the bucket exists.
func NewMinioBackupStorage(ctx context.Context, cfg config.Backup, log *logger.Logger) (BackupStorage, error) {
	region := cfg.Region
	if region == "" {
		region = defaultBackupRegion
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:       cfg.UseSSL,
		Region:       region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	storage := &minioBackupStorage{
		client: client,
		bucket: cfg.Bucket,
		logger: log,
	}

	ctx, cancel := context.WithTimeout(ctx, ensureBucketTimeout)
	defer cancel()

	if err = storage.ensureBucket(ctx, region); err != nil {
		return nil, err
	}

	log.Info().Str("endpoint", cfg.Endpoint).Str("bucket", cfg.Bucket).Msg("backup storage ready")
	return storage, nil
}

func (s *minioBackupStorage) ensureBucket(ctx context.Context, region string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("%w: check bucket %q: %w", ErrStoreUnavailable, s.bucket, err)
	}
	if exists {
		return nil
	}

	if err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("create bucket %q: %w", s.bucket, err)
	}
	s.logger.Info().Str("bucket", s.bucket).Msg("backup bucket created")

	return nil
}

// Put implements [BackupStorage].
func (s *minioBackupStorage) Put(ctx context.Context, objectName string, data []byte) (string, error) {
	log := logger.FromContext(ctx)
	key := path.Join(backupPrefix, objectName)

	info, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  backupContentType,
		UserMetadata: map[string]string{"format": backupFormatMetadata},
	})
	if err != nil {
		log.Err(err).
			Str("func", "minioBackupStorage.Put").
			Str("object", key).
			Msg("failed to upload backup")
		return "", fmt.Errorf("%w: %w", ErrBackupNotSaved, err)
	}

	log.Debug().Str("object", key).Int64("size", info.Size).Msg("backup uploaded")
	return key, nil
}
