package promo

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"mattress-shop/internal/model"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[*params.Bucket+"/"+*params.Key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestS3Loader_Load(t *testing.T) {
	client := &fakeS3{objects: map[string][]byte{
		"promos/promo-codes/batch.csv.gz": gzipLines(t, []string{"s3code,fixed,1000,0,10"}),
	}}
	loader := newS3Loader(client, "promos", zerolog.Nop())

	codes, err := loader.Load(context.Background(), "promo-codes/batch.csv.gz")

	require.NoError(t, err)
	require.Len(t, codes, 1)
	assert.Equal(t, "S3CODE", codes[0].Code)
	assert.Equal(t, 10, codes[0].MaxUses)
}

func TestS3Loader_Load_MissingObject(t *testing.T) {
	loader := newS3Loader(&fakeS3{objects: map[string][]byte{}}, "promos", zerolog.Nop())

	codes, err := loader.Load(context.Background(), "missing.csv.gz")

	require.Error(t, err)
	assert.Nil(t, codes)
	assert.Contains(t, err.Error(), "failed to get object from S3")
}

func TestS3Loader_Load_InvalidGzip(t *testing.T) {
	client := &fakeS3{objects: map[string][]byte{"promos/plain.csv": []byte("CODE,fixed,1,0,0")}}
	loader := newS3Loader(client, "promos", zerolog.Nop())

	_, err := loader.Load(context.Background(), "plain.csv")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create gzip reader")
}

// mockLoader is a mock implementation of the Loader interface for testing.
type mockLoader struct {
	loadFunc func(ctx context.Context, filePath string) ([]model.PromoCode, error)
}

func (m *mockLoader) Load(ctx context.Context, filePath string) ([]model.PromoCode, error) {
	if m.loadFunc != nil {
		return m.loadFunc(ctx, filePath)
	}
	return nil, errors.New("not implemented")
}

func TestFallbackLoader(t *testing.T) {
	s3Codes := []model.PromoCode{{Code: "FROMS3"}}
	localCodes := []model.PromoCode{{Code: "FROMDISK"}}

	okS3 := func(t *testing.T) Loader {
		return &mockLoader{loadFunc: func(_ context.Context, key string) ([]model.PromoCode, error) {
			assert.Equal(t, "promo-codes/batch.gz", key)
			return s3Codes, nil
		}}
	}
	failingS3 := func(*testing.T) Loader {
		return &mockLoader{loadFunc: func(context.Context, string) ([]model.PromoCode, error) {
			return nil, errors.New("S3 connection failed")
		}}
	}
	unusedS3 := func(t *testing.T) Loader {
		return &mockLoader{loadFunc: func(context.Context, string) ([]model.PromoCode, error) {
			t.Error("S3 loader should not be called")
			return nil, errors.New("should not be called")
		}}
	}
	disk := func(t *testing.T) Loader {
		return &mockLoader{loadFunc: func(_ context.Context, path string) ([]model.PromoCode, error) {
			assert.Equal(t, "batch.gz", path)
			return localCodes, nil
		}}
	}

	tests := []struct {
		name      string
		s3        func(*testing.T) Loader
		s3Enabled bool
		want      []model.PromoCode
	}{
		{"S3 succeeds", okS3, true, s3Codes},
		{"S3 fails falls back to disk", failingS3, true, localCodes},
		{"S3 disabled", unusedS3, false, localCodes},
		{"S3 loader nil", nil, true, localCodes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var remote Loader
			if tt.s3 != nil {
				remote = tt.s3(t)
			}
			loader := NewFallbackLoader(remote, disk(t), "promo-codes/", tt.s3Enabled, zerolog.Nop())

			codes, err := loader.Load(context.Background(), "batch.gz")

			require.NoError(t, err)
			assert.Equal(t, tt.want, codes)
		})
	}
}

func TestFallbackLoader_BothFail(t *testing.T) {
	failing := &mockLoader{loadFunc: func(context.Context, string) ([]model.PromoCode, error) {
		return nil, errors.New("boom")
	}}
	loader := NewFallbackLoader(failing, failing, "", true, zerolog.Nop())

	codes, err := loader.Load(context.Background(), "batch.gz")

	require.Error(t, err)
	assert.Nil(t, codes)
}
