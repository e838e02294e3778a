package scanner

import (
	"context"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"
)

// Walk traverses options.FolderPath in lexical order and calls fn for every entry,
// the root included. Entries that cannot be read are skipped.
func Walk(ctx context.Context, options ScanOptions, fn func(Entry) error) error {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return filepath.WalkDir(options.FolderPath, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			logger.Debug("skipping unreadable entry", zap.String("path", path), zap.Error(err))
			if options.Tally != nil {
				options.Tally.skipped++
			}
			return nil
		}

		entry := Entry{Path: path, IsDir: d.IsDir()}
		if options.Tally != nil {
			options.Tally.Add(entry)
		}
		return fn(entry)
	})
}

// ListImages walks the folder and returns every image file in walk order
func ListImages(ctx context.Context, options ScanOptions) ([]string, error) {
	var images []string
	err := Walk(ctx, options, func(e Entry) error {
		if !e.IsDir && IsImageFile(e.Path) {
			images = append(images, e.Path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

// ListDirectories walks the folder and returns every directory in walk order
func ListDirectories(ctx context.Context, options ScanOptions) ([]string, error) {
	var dirs []string
	err := Walk(ctx, options, func(e Entry) error {
		if e.IsDir {
			dirs = append(dirs, e.Path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dirs, nil
}
