package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"donormatch/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestResetArchiveUploadsSnapshot(t *testing.T) {
	putter := &fakePutter{}
	archive := NewResetArchive(putter, "demo-bucket", "resets", quietLogger())

	snap := &types.Snapshot{
		Victims: []*types.Victim{{ID: 1, Name: "A", NeedType: "food", AmountNeeded: 100}},
		Donors:  []*types.Donor{},
		TakenAt: time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC),
	}

	require.NoError(t, archive.Archive(context.Background(), snap))
	require.Len(t, putter.inputs, 1)

	in := putter.inputs[0]
	assert.Equal(t, "demo-bucket", aws.ToString(in.Bucket))
	assert.Equal(t, "application/json", aws.ToString(in.ContentType))
	assert.True(t, strings.HasPrefix(aws.ToString(in.Key), "resets/20260304T050607Z-"))
	assert.True(t, strings.HasSuffix(aws.ToString(in.Key), ".json"))
	assert.Regexp(t, `^resets/20260304T050607Z-[0-9a-z]{8}\.json$`, aws.ToString(in.Key))

	var decoded types.Snapshot
	require.NoError(t, json.Unmarshal(putter.bodies[0], &decoded))
	require.Len(t, decoded.Victims, 1)
	assert.Equal(t, "A", decoded.Victims[0].Name)
}

func TestResetArchiveSkipsEmptySnapshot(t *testing.T) {
	putter := &fakePutter{}
	archive := NewResetArchive(putter, "demo-bucket", "resets", quietLogger())

	require.NoError(t, archive.Archive(context.Background(), &types.Snapshot{}))
	assert.Empty(t, putter.inputs)
}

func TestResetArchivePropagatesUploadError(t *testing.T) {
	boom := errors.New("access denied")
	archive := NewResetArchive(&fakePutter{err: boom}, "demo-bucket", "", quietLogger())

	err := archive.Archive(context.Background(), &types.Snapshot{Donors: []*types.Donor{{ID: 1}}})
	assert.ErrorIs(t, err, boom)
}
