// Package filter narrows the images under a root directory by dimension ranges
// and by score metadata.
package filter

import (
	"context"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"imagefilter/imageprocessor"
	"imagefilter/metadata"
	"imagefilter/scanner"
	"imagefilter/types"
)

// Options holds the resolved inputs of one run
type Options struct {
	Root         string
	MetadataPath string
	ScoreFilters []ScoreFilter
	Width        *Range
	Height       *Range
	// Workers bounds concurrent dimension probes; values below 2 probe sequentially
	Workers int
}

// HasDimensionFilter reports whether a width or height range is set
func (o Options) HasDimensionFilter() bool {
	return o.Width != nil || o.Height != nil
}

// MetadataLoader reads all records of a metadata file
type MetadataLoader func(path string) ([]types.ImageMeta, error)

// Stats counts the candidates left after each step of the last run
type Stats struct {
	Files           int
	Candidates      int
	AfterDimensions int
	AfterScore      int
	MissingMetadata int
}

// Pipeline runs the enumeration and filter steps in order
type Pipeline struct {
	opts   Options
	prober imageprocessor.Prober
	load   MetadataLoader
	logger *zap.Logger
	stats  Stats
}

// New creates a pipeline. A nil prober uses the default header prober registry,
// a nil loader uses metadata.Load and a nil logger discards output.
func New(opts Options, prober imageprocessor.Prober, load MetadataLoader, logger *zap.Logger) *Pipeline {
	if prober == nil {
		prober = imageprocessor.NewProberRegistry()
	}
	if load == nil {
		load = metadata.Load
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{opts: opts, prober: prober, load: load, logger: logger}
}

// Stats returns the counts of the last Run
func (p *Pipeline) Stats() Stats { return p.stats }

// Run returns the surviving image paths in enumeration order.
// On error nothing is returned.
func (p *Pipeline) Run(ctx context.Context) ([]string, error) {
	p.stats = Stats{}

	if err := checkRoot(p.opts.Root); err != nil {
		return nil, err
	}
	if len(p.opts.ScoreFilters) > 0 && p.opts.MetadataPath == "" {
		return nil, ErrMissingMetadataSource
	}

	p.logger.Info("walking root directory", zap.String("root", p.opts.Root))
	tally := &scanner.Tally{}
	images, err := scanner.ListImages(ctx, scanner.ScanOptions{
		FolderPath: p.opts.Root,
		Logger:     p.logger,
		Tally:      tally,
	})
	if err != nil {
		return nil, err
	}
	p.stats.Files = tally.Files()
	p.stats.Candidates = len(images)
	p.logger.Info("enumerated images", tally.Fields()...)

	p.stats.AfterDimensions = len(images)
	if p.opts.HasDimensionFilter() {
		p.logger.Info("applying dimensions filter",
			zap.Stringer("width", p.opts.Width),
			zap.Stringer("height", p.opts.Height))
		images, err = p.filterByDimensions(ctx, images)
		if err != nil {
			return nil, err
		}
		p.stats.AfterDimensions = len(images)
	}

	p.stats.AfterScore = len(images)
	if len(p.opts.ScoreFilters) > 0 {
		p.logger.Info("applying image meta score filters", zap.Int("filters", len(p.opts.ScoreFilters)))
		images, err = p.filterByScore(images)
		if err != nil {
			return nil, err
		}
		p.stats.AfterScore = len(images)
	}

	p.logger.Info("filtering complete",
		zap.Int("candidates", p.stats.Candidates),
		zap.Int("after_dimensions", p.stats.AfterDimensions),
		zap.Int("after_score", p.stats.AfterScore))
	return images, nil
}

// Directories returns every directory under the root, the root included, in walk order
func (p *Pipeline) Directories(ctx context.Context) ([]string, error) {
	if err := checkRoot(p.opts.Root); err != nil {
		return nil, err
	}
	p.logger.Debug("listing directories", zap.String("root", p.opts.Root))
	return scanner.ListDirectories(ctx, scanner.ScanOptions{FolderPath: p.opts.Root, Logger: p.logger})
}

func checkRoot(root string) error {
	if root == "" {
		return &ConfigError{Key: "root_images_dir", Err: ErrMissingDirectory}
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return missingDirectory(root)
	}
	return nil
}

// filterByDimensions probes images concurrently; keep is indexed by position so
// the result preserves enumeration order
func (p *Pipeline) filterByDimensions(ctx context.Context, images []string) ([]string, error) {
	keep := make([]bool, len(images))

	g, gctx := errgroup.WithContext(ctx)
	if p.opts.Workers > 1 {
		g.SetLimit(p.opts.Workers)
	} else {
		g.SetLimit(1)
	}

	for i, img := range images {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ok, err := checkDims(p.prober, img, p.opts.Width, p.opts.Height)
			if err != nil {
				p.logger.Debug("cannot probe dimensions, excluding image", zap.String("path", img), zap.Error(err))
			}
			keep[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(images))
	for i, img := range images {
		if keep[i] {
			out = append(out, img)
		}
	}
	return out, nil
}

func (p *Pipeline) filterByScore(images []string) ([]string, error) {
	metas, err := p.load(p.opts.MetadataPath)
	if err != nil {
		return nil, &MetadataLoadError{Path: p.opts.MetadataPath, Err: err}
	}

	store := metadata.NewStore(metas)
	p.logger.Info("loaded metadata",
		zap.String("path", p.opts.MetadataPath),
		zap.Int("records", len(metas)),
		zap.Int("distinct", store.Len()),
		zap.Int("duplicates", store.Duplicates()))

	for _, img := range images {
		if meta, ok := store.Find(img); ok {
			p.logger.Debug("image has metadata", zap.String("path", img), zap.Float64("score", meta.Score), zap.Bool("has_score", meta.HasScore))
			continue
		}
		p.stats.MissingMetadata++
		p.logger.Warn("image does not have metadata, it will be ignored when filtering", zap.String("path", img))
	}

	survivors := Narrow(store.All(), p.opts.ScoreFilters, p.logger)
	matched := make(map[string]struct{}, len(survivors))
	for _, meta := range survivors {
		matched[meta.Path] = struct{}{}
	}

	out := make([]string, 0, len(images))
	for _, img := range images {
		if _, ok := matched[img]; ok {
			out = append(out, img)
		}
	}
	return out, nil
}
