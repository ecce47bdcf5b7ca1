package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/rs/zerolog/log"
)

// Storage keeps uploaded media files. SaveFile returns the URL players
// fetch the file from. folder groups files per tenant.
type Storage interface {
	SaveFile(fileHeader *multipart.FileHeader, folder, filename string) (string, error)
}

type LocalStorage struct {
	uploadDir  string
	publicPath string
}

type SpacesStorage struct {
	client s3iface.S3API
	bucket string
	cdnURL string
}

// NewLocalStorage writes below uploadDir; the files are expected to be served
// under publicPath (for example "/uploads").
func NewLocalStorage(uploadDir, publicPath string) *LocalStorage {
	if publicPath == "" {
		publicPath = "/uploads"
	}
	return &LocalStorage{uploadDir: uploadDir, publicPath: strings.TrimSuffix(publicPath, "/")}
}

func NewSpacesStorage(endpoint, region, bucket, cdnURL, accessKey, secretKey string) (*SpacesStorage, error) {
	config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(false),
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if cdnURL == "" {
		cdnURL = fmt.Sprintf("https://%s.%s", bucket, strings.TrimPrefix(endpoint, "https://"))
	}
	return &SpacesStorage{client: s3.New(sess), bucket: bucket, cdnURL: cdnURL}, nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// normalizeFilename creates a unique, normalized filename without spaces
func normalizeFilename(originalFilename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	baseName := strings.TrimSuffix(filepath.Base(originalFilename), filepath.Ext(originalFilename))

	baseName = strings.ReplaceAll(baseName, " ", "_")
	baseName = unsafeChars.ReplaceAllString(baseName, "")
	if baseName == "" {
		baseName = "file"
	}

	return fmt.Sprintf("%s_%s%s", baseName, now.Format("20060102_150405.000000000"), ext)
}

// cleanFolder keeps a single safe path segment.
func cleanFolder(folder string) string {
	return unsafeChars.ReplaceAllString(folder, "")
}

func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader, folder, filename string) (string, error) {
	normalizedFilename := normalizeFilename(filename, time.Now())
	folder = cleanFolder(folder)
	log.Debug().Str("original", filename).Str("normalized", normalizedFilename).Msg("File upload normalized")

	dir := filepath.Join(ls.uploadDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, normalizedFilename))
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return path.Join(ls.publicPath, folder, normalizedFilename), nil
}

func (ss *SpacesStorage) SaveFile(fileHeader *multipart.FileHeader, folder, filename string) (string, error) {
	normalizedFilename := normalizeFilename(filename, time.Now())
	log.Debug().Str("original", filename).Str("normalized", normalizedFilename).Msg("File upload normalized")

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	key := path.Join("uploads", cleanFolder(folder), normalizedFilename)

	_, err = ss.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(ss.bucket),
		Key:         aws.String(key),
		Body:        src,
		ContentType: aws.String(ContentType(normalizedFilename)),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("Failed to upload file to Spaces")
		return "", fmt.Errorf("failed to upload to Spaces: %w", err)
	}

	return fmt.Sprintf("%s/%s", strings.TrimSuffix(ss.cdnURL, "/"), key), nil
}

// ContentType guesses a MIME type from the file extension.
func ContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".avi":
		return "video/x-msvideo"
	case ".mov":
		return "video/quicktime"
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".ogg":
		return "audio/ogg"
	case ".pdf":
		return "application/pdf"
	case ".html", ".htm":
		return "text/html"
	default:
		return "application/octet-stream"
	}
}
