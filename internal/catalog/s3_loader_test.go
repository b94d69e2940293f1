package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 serves a single object body.
type fakeS3 struct {
	body      []byte
	err       error
	gotBucket string
	gotKey    string
}

func (f *fakeS3) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.gotBucket = aws.ToString(params.Bucket)
	f.gotKey = aws.ToString(params.Key)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(f.body))}, nil
}

func TestS3Loader_Load_Success(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, DefaultDocument()))
	client := &fakeS3{body: buf.Bytes()}

	loader := newS3Loader(client, "menus", "catalog/menu.json.gz", zerolog.Nop())
	c, err := loader.Load(context.Background())

	require.NoError(t, err)
	assert.Len(t, c.Foods(), 12)
	assert.Equal(t, "menus", client.gotBucket)
	assert.Equal(t, "catalog/menu.json.gz", client.gotKey)
}

func TestS3Loader_Load_GetObjectFails(t *testing.T) {
	client := &fakeS3{err: errors.New("access denied")}

	c, err := newS3Loader(client, "menus", "menu.json.gz", zerolog.Nop()).Load(context.Background())

	require.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "failed to get object from S3")
}

func TestS3Loader_Load_CorruptObject(t *testing.T) {
	client := &fakeS3{body: []byte("not gzip")}

	c, err := newS3Loader(client, "menus", "menu.json.gz", zerolog.Nop()).Load(context.Background())

	require.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "failed to decode S3 catalog")
}
