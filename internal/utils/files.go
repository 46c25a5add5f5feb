package utils

import (
	"errors"
	"io/fs"
	"path/filepath"

	ds "github.com/bmatcuk/doublestar/v4"
)

// MatchFiles walks base and returns files whose slash-separated path relative
// to base matches the doublestar pattern (supports **). A missing base yields
// no matches.
func MatchFiles(base, pattern string) ([]string, error) {
	if !ds.ValidatePattern(pattern) {
		return nil, ds.ErrBadPattern
	}
	matches := []string{}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == base {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		ok, err := ds.Match(pattern, filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		if ok {
			matches = append(matches, path)
		}
		return nil
	})
	return matches, err
}
