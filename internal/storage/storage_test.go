package storage

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader builds a real multipart.FileHeader the way gin receives one.
func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestNormalizeFilename(t *testing.T) {
	at := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)
	assert.Equal(t, "Summer_Promo_20240304_050607.000000000.mp4", normalizeFilename("Summer Promo!.MP4", at))
	assert.Equal(t, "file_20240304_050607.000000000.png", normalizeFilename("../../!!!.png", at))
}

func TestLocalStorageSaveFile(t *testing.T) {
	dir := t.TempDir()
	ls := NewLocalStorage(dir, "/uploads/")

	url, err := ls.SaveFile(fileHeader(t, "logo.png", []byte("png-bytes")), "tenant-1", "logo.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/tenant-1/logo_"), url)

	stored := filepath.Join(dir, "tenant-1", filepath.Base(url))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

type fakeS3 struct {
	s3iface.S3API
	input *s3.PutObjectInput
	body  []byte
}

func (f *fakeS3) PutObject(in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestSpacesStorageSaveFile(t *testing.T) {
	fake := &fakeS3{}
	ss := &SpacesStorage{client: fake, bucket: "media", cdnURL: "https://cdn.example.com/"}

	url, err := ss.SaveFile(fileHeader(t, "clip.mp4", []byte("video")), "t1", "clip.mp4")
	require.NoError(t, err)

	require.NotNil(t, fake.input)
	assert.Equal(t, "media", *fake.input.Bucket)
	assert.Equal(t, "video/mp4", *fake.input.ContentType)
	assert.True(t, strings.HasPrefix(*fake.input.Key, "uploads/t1/clip_"))
	assert.Equal(t, "https://cdn.example.com/"+*fake.input.Key, url)
	assert.Equal(t, "video", string(fake.body))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", ContentType("a.JPG"))
	assert.Equal(t, "application/pdf", ContentType("menu.pdf"))
	assert.Equal(t, "text/html", ContentType("board.html"))
	assert.Equal(t, "application/octet-stream", ContentType("archive.zip"))
}
