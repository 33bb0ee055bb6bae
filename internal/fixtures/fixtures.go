// Package fixtures loads seed users and orders from YAML, either from a
// local file or from an s3://bucket/key object.
package fixtures

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"gopkg.in/yaml.v3"

	"github.com/BruksfildServices01/orders-api/internal/config"
)

type File struct {
	Users  []UserFixture  `yaml:"users"`
	Orders []OrderFixture `yaml:"orders"`
}

type UserFixture struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Sex      string `yaml:"sex"`
	Role     string `yaml:"role"`
}

// OrderFixture references its owner by email.
type OrderFixture struct {
	Owner  string `yaml:"owner"`
	Status string `yaml:"status"`
}

// DefaultAdmin is always seeded.
var DefaultAdmin = UserFixture{
	Name:     "Admin User",
	Email:    "user@example.com",
	Password: "secret",
	Sex:      "MALE",
	Role:     "ROLE_ADMIN",
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures YAML: %w", err)
	}

	for i := range f.Users {
		if f.Users[i].Sex == "" {
			f.Users[i].Sex = "OTHER"
		}
		if f.Users[i].Role == "" {
			f.Users[i].Role = "ROLE_USER"
		}
	}
	for i := range f.Orders {
		if f.Orders[i].Status == "" {
			f.Orders[i].Status = "WAITING"
		}
	}

	return &f, nil
}

// ObjectGetter is the subset of the S3 client used to fetch fixtures.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Load reads fixtures from location. An empty location yields an empty
// file. s3 may be nil when location is a local path.
func Load(ctx context.Context, location string, s3c ObjectGetter) (*File, error) {
	if location == "" {
		return &File{}, nil
	}

	var (
		data []byte
		err  error
	)
	if bucket, key, ok := parseS3URL(location); ok {
		if s3c == nil {
			return nil, fmt.Errorf("fixtures %s: no s3 client configured", location)
		}
		data, err = fetchS3(ctx, s3c, bucket, key)
	} else {
		data, err = os.ReadFile(location)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures %s: %w", location, err)
	}

	return Parse(data)
}

func parseS3URL(location string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(location, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

func fetchS3(ctx context.Context, s3c ObjectGetter, bucket, key string) ([]byte, error) {
	out, err := s3c.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

// NewS3Client builds a client from static credentials. A custom endpoint
// (MinIO, LocalStack) switches to path-style addressing.
func NewS3Client(cfg config.S3Config) *s3.Client {
	opts := s3.Options{
		Region: cfg.Region,
	}

	if cfg.AccessKeyID != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	} else {
		opts.Credentials = aws.AnonymousCredentials{}
	}

	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return s3.New(opts)
}
