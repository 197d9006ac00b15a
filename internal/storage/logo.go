package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/BruksfildServices01/saloes-online/internal/config"
	"github.com/BruksfildServices01/saloes-online/internal/httperr"
)

const (
	logoPrefix   = "logos/"
	cacheControl = "max-age=3600"
	listLimit    = 100
)

// ObjectAPI é o subconjunto do cliente S3 usado aqui.
type ObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, opts ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, opts ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// Object é um arquivo listado no bucket.
type Object struct {
	Key          string    `json:"key"`
	URL          string    `json:"url"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

type LogoStorage struct {
	api     ObjectAPI
	bucket  string
	region  string
	baseURL string
	now     func() time.Time
}

// NewLogoStorage monta o cliente S3 a partir da configuração. Com S3_ENDPOINT
// definido (MinIO, R2, Supabase) o endereçamento passa a ser path-style.
func NewLogoStorage(cfg *config.Config) *LogoStorage {
	opts := s3.Options{
		Region:      cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
		opts.UsePathStyle = true
	}

	return NewLogoStorageWithAPI(s3.New(opts), cfg.S3Bucket, cfg.S3Region, publicBase(cfg))
}

func NewLogoStorageWithAPI(api ObjectAPI, bucket, region, baseURL string) *LogoStorage {
	return &LogoStorage{
		api:     api,
		bucket:  bucket,
		region:  region,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

func publicBase(cfg *config.Config) string {
	switch {
	case cfg.S3PublicBaseURL != "":
		return cfg.S3PublicBaseURL
	case cfg.S3Endpoint != "":
		return strings.TrimRight(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
	}
}

func (s *LogoStorage) Bucket() string {
	return s.bucket
}

func (s *LogoStorage) PublicURL(key string) string {
	return s.baseURL + "/" + strings.TrimLeft(key, "/")
}

// KeyFromURL devolve a chave do objeto para uma URL pública deste bucket.
func (s *LogoStorage) KeyFromURL(url string) (string, error) {
	key, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || !strings.HasPrefix(key, logoPrefix) || strings.Contains(key, "..") {
		return "", httperr.ErrBusiness("invalid_logo_url")
	}
	return key, nil
}

// Upload grava o logo do salão e devolve a URL pública.
// Imagens raster são reduzidas e convertidas para WebP antes do envio.
func (s *LogoStorage) Upload(ctx context.Context, salonID, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", httperr.ErrBusiness("empty_logo")
	}

	logo, err := Normalize(data, path.Ext(filename))
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("%s%s-%d.%s", logoPrefix, salonID, s.now().UnixMilli(), logo.Ext)

	_, err = s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(logo.Data),
		ContentType:  aws.String(logo.ContentType),
		CacheControl: aws.String(cacheControl),
	})
	if err != nil {
		return "", fmt.Errorf("upload logo: %w", err)
	}

	return s.PublicURL(key), nil
}

func (s *LogoStorage) Delete(ctx context.Context, url string) error {
	key, err := s.KeyFromURL(url)
	if err != nil {
		return err
	}

	_, err = s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete logo: %w", err)
	}
	return nil
}

func (s *LogoStorage) List(ctx context.Context) ([]Object, error) {
	out, err := s.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(logoPrefix),
		MaxKeys: aws.Int32(listLimit),
	})
	if err != nil {
		return nil, fmt.Errorf("list logos: %w", err)
	}

	objects := make([]Object, 0, len(out.Contents))
	for _, o := range out.Contents {
		key := aws.ToString(o.Key)
		objects = append(objects, Object{
			Key:          key,
			URL:          s.PublicURL(key),
			Size:         aws.ToInt64(o.Size),
			LastModified: aws.ToTime(o.LastModified),
		})
	}
	return objects, nil
}

func (s *LogoStorage) BucketExists(ctx context.Context) (bool, error) {
	_, err := s.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, fmt.Errorf("head bucket: %w", err)
}

// EnsureBucket cria o bucket quando ele ainda não existe. Devolve true se criou.
func (s *LogoStorage) EnsureBucket(ctx context.Context) (bool, error) {
	exists, err := s.BucketExists(ctx)
	if err != nil || exists {
		return false, err
	}

	in := &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}
	if s.region != "" && s.region != "us-east-1" {
		in.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(s.region),
		}
	}

	if _, err := s.api.CreateBucket(ctx, in); err != nil {
		return false, fmt.Errorf("create bucket: %w", err)
	}
	return true, nil
}

func isNotFound(err error) bool {
	var nf *s3types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nb *s3types.NoSuchBucket
	if errors.As(err, &nb) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchBucket"
	}
	return false
}
