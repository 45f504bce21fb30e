package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	f.body, _ = io.ReadAll(params.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestUploadFile(t *testing.T) {
	putter := &fakePutter{}
	store := &awsS3{client: putter, bucket: "billora-archive", region: "ap-southeast-1"}

	url, err := store.UploadFile(context.Background(), "invoices/a.pdf", []byte("%PDF"), "application/pdf")
	require.NoError(t, err)

	assert.Equal(t, "https://billora-archive.s3.ap-southeast-1.amazonaws.com/invoices/a.pdf", url)
	assert.Equal(t, "billora-archive", aws.ToString(putter.input.Bucket))
	assert.Equal(t, "application/pdf", aws.ToString(putter.input.ContentType))
	assert.Equal(t, []byte("%PDF"), putter.body)
}

func TestUploadFile_Error(t *testing.T) {
	store := &awsS3{client: &fakePutter{err: errors.New("denied")}, bucket: "b", region: "r"}

	_, err := store.UploadFile(context.Background(), "k", nil, "application/pdf")
	assert.ErrorContains(t, err, "denied")
}
