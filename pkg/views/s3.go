package views

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"maps"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// ErrInvalidS3Config is returned when the bucket or region is missing.
var ErrInvalidS3Config = errors.New("views.invalid_s3_config")

// S3Client defines the S3 operations used by S3Lookup.
type S3Client interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Lookup finds html/template sources stored as objects in a bucket, using
// the same layout as FSLookup. LastModified is the freshness timestamp.
type S3Lookup struct {
	client S3Client
	bucket string
	root   string
	ext    string
	funcs  template.FuncMap
}

// S3Option configures an S3Lookup.
type S3Option func(*s3Options)

type s3Options struct {
	client        S3Client
	ext           string
	funcs         template.FuncMap
	configOptions []func(*config.LoadOptions) error
	clientOptions []func(*s3.Options)
}

// WithS3Client uses a pre-configured client.
func WithS3Client(client S3Client) S3Option {
	return func(o *s3Options) { o.client = client }
}

// WithS3Extension sets the object key extension, ".tmpl" by default.
func WithS3Extension(ext string) S3Option {
	if ext == "" {
		panic("WithS3Extension: extension cannot be empty")
	}
	return func(o *s3Options) { o.ext = ext }
}

// WithS3Funcs registers template functions available at parse time.
func WithS3Funcs(funcs template.FuncMap) S3Option {
	return func(o *s3Options) {
		if o.funcs == nil {
			o.funcs = template.FuncMap{}
		}
		maps.Copy(o.funcs, funcs)
	}
}

// WithS3ConfigOption adds an AWS config load option.
func WithS3ConfigOption(opt func(*config.LoadOptions) error) S3Option {
	return func(o *s3Options) { o.configOptions = append(o.configOptions, opt) }
}

// WithS3ClientOption adds an S3 client option.
func WithS3ClientOption(opt func(*s3.Options)) S3Option {
	return func(o *s3Options) { o.clientOptions = append(o.clientOptions, opt) }
}

// NewS3Lookup creates a lookup over cfg.Bucket.
func NewS3Lookup(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Lookup, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidS3Config
	}

	o := &s3Options{ext: DefaultExtension}
	for _, opt := range opts {
		opt(o)
	}

	client := o.client
	if client == nil {
		awsOptions := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
		if cfg.AccessKey != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
			))
		}
		awsOptions = append(awsOptions, o.configOptions...)

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, errors.Join(ErrInvalidS3Config, err)
		}

		client = s3.NewFromConfig(awsConfig, func(so *s3.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle
			for _, opt := range o.clientOptions {
				opt(so)
			}
		})
	}

	return &S3Lookup{
		client: client,
		bucket: cfg.Bucket,
		root:   cfg.Prefix,
		ext:    o.ext,
		funcs:  o.funcs,
	}, nil
}

// Find issues one HeadObject per requested format.
func (l *S3Lookup) Find(ctx context.Context, s Search) ([]Candidate, error) {
	var found []Candidate
	for _, format := range s.Formats {
		key := path.Join(l.root, sourcePath(s, format, l.ext))
		out, err := l.client.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(l.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			if isS3NotFound(err) {
				continue
			}
			return nil, fmt.Errorf("head %s: %w", key, err)
		}
		c := Candidate{
			Identifier:  key,
			VirtualPath: virtualPath(s.Prefix, s.Name),
			Format:      format,
		}
		if out.LastModified != nil {
			c.UpdatedAt = *out.LastModified
		}
		found = append(found, c)
	}
	if len(found) == 0 {
		return nil, ErrNotFound
	}
	return found, nil
}

// Decorate downloads and parses the object.
func (l *S3Lookup) Decorate(ctx context.Context, c Candidate) (*Template, error) {
	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(c.Identifier),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", c.Identifier, err)
	}
	defer out.Body.Close()

	src, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, err
	}
	t, err := parseHTML(c.Identifier, src, l.funcs)
	if err != nil {
		return nil, err
	}
	return &Template{Candidate: c, HTML: t}, nil
}

func isS3NotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}
