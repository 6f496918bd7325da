package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/repoindex/core/internal/gitignore"
)

// Scan discovers indexable files under each of roots. A root may itself be
// a single file, in which case it is returned as the sole result for that
// root. Results across roots are concatenated in the order roots were given.
func Scan(ctx context.Context, roots []string, opts Options) ([]FileInfo, error) {
	var all []FileInfo
	for _, root := range roots {
		files, err := scanRoot(ctx, root, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, files...)
	}
	return all, nil
}

func scanRoot(ctx context.Context, root string, opts Options) ([]FileInfo, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat root %s: %w", root, err)
	}

	if !info.IsDir() {
		return []FileInfo{{
			Path:    filepath.Base(absRoot),
			AbsPath: absRoot,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}}, nil
	}

	matcher := gitignore.New()
	for _, p := range opts.ExcludePatterns {
		matcher.AddPattern(p)
	}

	var results []FileInfo
	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil {
			return nil
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			return nil
		}
		if relPath == "." {
			return nil
		}

		if d.IsDir() {
			if opts.RespectGitignore {
				gitignorePath := filepath.Join(path, ".gitignore")
				if _, statErr := os.Stat(gitignorePath); statErr == nil {
					_ = matcher.AddFromFile(gitignorePath, relPath)
				}
			}
			if isExcludedDirName(d.Name()) || matcher.Match(relPath, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 && !opts.FollowSymlinks {
			return nil
		}

		base := d.Name()
		if isExcludedFileName(base) || isSensitiveFileName(base) {
			return nil
		}
		if matcher.Match(relPath, false) {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return nil
		}

		results = append(results, FileInfo{
			Path:    relPath,
			AbsPath: path,
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
		return nil
	})

	if walkErr != nil {
		return results, walkErr
	}
	return results, nil
}

func isExcludedDirName(name string) bool {
	for _, d := range defaultExcludeDirs {
		if name == d {
			return true
		}
	}
	return false
}

func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

func isExcludedFileName(name string) bool {
	return matchesAny(name, defaultExcludeFiles)
}

func isSensitiveFileName(name string) bool {
	return matchesAny(name, sensitiveFilePatterns)
}
