package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrymomot/devicekit/pkg/render"
	"github.com/dmitrymomot/devicekit/pkg/views"
)

// newLookup chains the template sources in priority order: the S3 bucket when
// configured, the views directory when it exists, then the built-in
// components.
func newLookup(ctx context.Context, s settings) (views.Chain, error) {
	var chain views.Chain

	if s.S3.Bucket != "" {
		s3, err := views.NewS3Lookup(ctx, s.S3,
			views.WithS3Extension(s.Views.Extension),
			views.WithS3Funcs(render.FuncStubs()),
		)
		if err != nil {
			return nil, fmt.Errorf("s3 views: %w", err)
		}
		chain = append(chain, s3)
	}

	if s.Views.Root != "" {
		if info, err := os.Stat(s.Views.Root); err == nil && info.IsDir() {
			chain = append(chain, views.NewFSLookup(os.DirFS(s.Views.Root),
				views.WithExtension(s.Views.Extension),
				views.WithFuncs(render.FuncStubs()),
			))
		}
	}

	return append(chain, builtinViews()), nil
}
