package evidence

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	data, _ := io.ReadAll(in.Body)
	f.body = string(data)
	return &s3.PutObjectOutput{}, f.err
}

func TestUpload(t *testing.T) {
	t.Parallel()

	fake := &fakeS3{}
	s := newStore(fake, Config{Bucket: "evidencias", Endpoint: "http://minio:9000/", Region: "us-east-1"})

	url, err := s.Upload(context.Background(), "incidencias", "i1", "image/jpeg; charset=binary", strings.NewReader("jpegdata"))
	require.NoError(t, err)

	key := aws.ToString(fake.input.Key)
	assert.True(t, strings.HasPrefix(key, "incidencias/i1/"), key)
	assert.True(t, strings.HasSuffix(key, ".jpg"), key)
	assert.Equal(t, "evidencias", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "image/jpeg", aws.ToString(fake.input.ContentType))
	assert.Equal(t, "jpegdata", fake.body)
	assert.Equal(t, "http://minio:9000/evidencias/"+key, url)
}

func TestUploadPublicURL(t *testing.T) {
	t.Parallel()

	s := newStore(&fakeS3{}, Config{Bucket: "b", Region: "sa-east-1"})
	assert.Equal(t, "https://b.s3.sa-east-1.amazonaws.com", s.publicURL)

	s = newStore(&fakeS3{}, Config{Bucket: "b", PublicURL: "https://cdn.example.pe/"})
	assert.Equal(t, "https://cdn.example.pe", s.publicURL)
}

func TestUploadRejectsNonImages(t *testing.T) {
	t.Parallel()

	s := newStore(&fakeS3{}, Config{Bucket: "b"})
	_, err := s.Upload(context.Background(), "vouchers", "v1", "application/pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestUploadErrors(t *testing.T) {
	t.Parallel()

	s := newStore(&fakeS3{err: errors.New("access denied")}, Config{Bucket: "b"})
	_, err := s.Upload(context.Background(), "vouchers", "v1", "image/png", strings.NewReader("x"))
	assert.ErrorContains(t, err, "access denied")

	var disabled *Store
	_, err = disabled.Upload(context.Background(), "vouchers", "v1", "image/png", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrDisabled)

	_, err = New(context.Background(), Config{})
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestUploadTooLarge(t *testing.T) {
	t.Parallel()

	fake := &fakeS3{}
	s := newStore(fake, Config{Bucket: "b"})
	_, err := s.Upload(context.Background(), "vouchers", "v1", "image/png", io.LimitReader(zeros{}, MaxImageSize+1))
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Nil(t, fake.input)
}

type zeros struct{}

func (zeros) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}

// s3Server accepts PutObject requests over plain HTTP, like a local MinIO.
type s3Server struct {
	mu     sync.Mutex
	path   string
	body   string
	header http.Header
}

func (s *s3Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	s.path, s.body, s.header = r.URL.Path, string(data), r.Header.Clone()
	s.mu.Unlock()
	w.Header().Set("ETag", `"etag"`)
	w.WriteHeader(http.StatusOK)
}

func TestUploadPlainHTTPEndpoint(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "minio")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "minio123")
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")

	srv := &s3Server{}
	ts := httptest.NewServer(srv)
	defer ts.Close()

	s, err := New(context.Background(), Config{Bucket: "evidencias", Endpoint: ts.URL, Region: "us-east-1"})
	require.NoError(t, err)

	// an unseekable stream, as an HTTP request body is
	body := io.MultiReader(strings.NewReader("\x89PNG"), strings.NewReader("rest-of-image"))
	url, err := s.Upload(context.Background(), "incidencias", "i1", "image/png", body)
	require.NoError(t, err)

	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.True(t, strings.HasPrefix(srv.path, "/evidencias/incidencias/i1/"), srv.path)
	assert.True(t, strings.HasSuffix(srv.path, ".png"), srv.path)
	assert.Equal(t, "\x89PNGrest-of-image", srv.body)
	assert.Equal(t, "image/png", srv.header.Get("Content-Type"))
	assert.Equal(t, ts.URL+srv.path, url)
}
