package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"donormatch/internal/utils"
	"donormatch/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
)

// ObjectPutter is the part of the S3 client the archive needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ResetArchive uploads the store contents to S3 before a reset wipes them.
type ResetArchive struct {
	client ObjectPutter
	bucket string
	prefix string
	logger *logrus.Logger
}

func NewResetArchive(client ObjectPutter, bucket, prefix string, logger *logrus.Logger) *ResetArchive {
	return &ResetArchive{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

// Archive writes snap as a JSON object. Empty snapshots are skipped.
// Its signature matches store.ResetHook.
func (a *ResetArchive) Archive(ctx context.Context, snap *types.Snapshot) error {
	if len(snap.Victims) == 0 && len(snap.Donors) == 0 {
		return nil
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := a.Key(snap)

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload snapshot to s3://%s/%s: %w", a.bucket, key, err)
	}

	a.logger.WithFields(logrus.Fields{
		"bucket":  a.bucket,
		"key":     key,
		"victims": len(snap.Victims),
		"donors":  len(snap.Donors),
	}).Info("archived store before reset")

	return nil
}

// Key builds the object key for snap: <prefix>/<timestamp>-<random>.json.
func (a *ResetArchive) Key(snap *types.Snapshot) string {
	name := fmt.Sprintf("%s-%s.json", snap.TakenAt.UTC().Format("20060102T150405Z"), utils.KeySuffix())
	return path.Join(a.prefix, name)
}
