package views_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/devicekit/pkg/views"
)

type s3Object struct {
	body     string
	modified time.Time
}

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]s3Object
	heads   []string
	failing error
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.heads = append(f.heads, aws.ToString(in.Key))
	if f.failing != nil {
		return nil, f.failing
	}
	obj, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{LastModified: aws.Time(obj.modified)}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	obj, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewBufferString(obj.body))}, nil
}

func TestS3Lookup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	newLookup := func(t *testing.T, client *fakeS3) *views.S3Lookup {
		t.Helper()
		l, err := views.NewS3Lookup(ctx, views.S3Config{Bucket: "tpl", Region: "us-east-1", Prefix: "views"}, views.WithS3Client(client))
		require.NoError(t, err)
		return l
	}

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()
		_, err := views.NewS3Lookup(ctx, views.S3Config{Region: "us-east-1"})
		assert.ErrorIs(t, err, views.ErrInvalidS3Config)
	})

	t.Run("last modified drives freshness", func(t *testing.T) {
		t.Parallel()
		client := &fakeS3{objects: map[string]s3Object{
			"views/home/index.mobile.tmpl": {body: `m {{.}}`, modified: epoch},
		}}
		l := newLookup(t, client)

		found, err := l.Find(ctx, views.Search{Name: "index", Prefix: "home", Formats: []string{"mobile", "html"}})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "views/home/index.mobile.tmpl", found[0].Identifier)
		assert.Equal(t, epoch, found[0].UpdatedAt)
		assert.Equal(t, []string{"views/home/index.mobile.tmpl", "views/home/index.html.tmpl"}, client.heads)

		tpl, err := l.Decorate(ctx, found[0])
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, tpl.HTML.Execute(&buf, "x"))
		assert.Equal(t, "m x", buf.String())
	})

	t.Run("missing object", func(t *testing.T) {
		t.Parallel()
		l := newLookup(t, &fakeS3{objects: map[string]s3Object{}})
		_, err := l.Find(ctx, views.Search{Name: "index", Prefix: "home", Formats: []string{"html"}})
		assert.ErrorIs(t, err, views.ErrNotFound)
	})

	t.Run("transport errors propagate", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("connection reset")
		l := newLookup(t, &fakeS3{objects: map[string]s3Object{}, failing: boom})
		_, err := l.Find(ctx, views.Search{Name: "index", Prefix: "home", Formats: []string{"html"}})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("partial through resolver", func(t *testing.T) {
		t.Parallel()
		client := &fakeS3{objects: map[string]s3Object{
			"views/home/_card.html.tmpl": {body: `card`, modified: epoch},
		}}
		r := views.NewResolver(newLookup(t, client))

		tpl, err := r.ResolveOne(ctx, views.Query{Name: "card", Prefix: "home", Partial: true, Format: "tablet", CacheKey: "default"})
		require.NoError(t, err)
		assert.Equal(t, "html", tpl.Format)
	})
}
