package huek

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// LoadOptions configures LoadLayersWithOptions. The two inputs are read
// with separate options since they usually come in different formats and
// reference systems.
type LoadOptions struct {
	Base       ReadOptions
	Catchments ReadOptions
}

// DefaultLoadOptions returns load options with defaults.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Base:       DefaultReadOptions(),
		Catchments: DefaultReadOptions(),
	}
}

// LoadLayers reads the base map and the catchment layer concurrently with
// default options.
func LoadLayers(ctx context.Context, reader Reader, basePath, catchmentPath string) (base, catchments *Layer, err error) {
	return LoadLayersWithOptions(ctx, reader, basePath, catchmentPath, DefaultLoadOptions())
}

// LoadLayersWithOptions reads the base map and the catchment layer
// concurrently. If either read fails, no layer is returned.
func LoadLayersWithOptions(ctx context.Context, reader Reader, basePath, catchmentPath string, opts LoadOptions) (base, catchments *Layer, err error) {
	if reader == nil {
		reader = NewReader()
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		l, err := readLayer(ctx, reader, basePath, opts.Base)
		if err != nil {
			return fmt.Errorf("base map: %w", err)
		}
		base = l
		return nil
	})
	g.Go(func() error {
		l, err := readLayer(ctx, reader, catchmentPath, opts.Catchments)
		if err != nil {
			return fmt.Errorf("catchments: %w", err)
		}
		catchments = l
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return base, catchments, nil
}

func readLayer(ctx context.Context, reader Reader, path string, opts ReadOptions) (*Layer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return reader.ReadWithOptions(path, opts)
}
