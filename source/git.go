package source

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// DefaultGitLimit caps the commits a GitLog reads when Limit is unset.
const DefaultGitLimit = 1000

var errStop = errors.New("stop")

// GitLog reads the commit log of the repository containing Path. Commit
// messages keep their line breaks, so rows vary in height.
type GitLog struct {
	Path  string
	Limit int
}

func (s GitLog) Name() string { return "git:" + s.path() }

func (s GitLog) path() string {
	if s.Path == "" {
		return "."
	}
	return s.Path
}

func (s GitLog) Load(ctx context.Context) (Dataset, error) {
	limit := s.Limit
	if limit <= 0 {
		limit = DefaultGitLimit
	}
	ds := Dataset{
		Name:    filepath.Base(absOr(s.path())),
		Columns: []string{"hash", "author", "date", "message"},
	}

	repo, err := git.PlainOpenWithOptions(s.path(), &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Dataset{}, fmt.Errorf("open repo: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			// No commits yet.
			return ds, nil
		}
		return Dataset{}, fmt.Errorf("head: %w", err)
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return Dataset{}, fmt.Errorf("log: %w", err)
	}
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		if len(ds.Rows) >= limit {
			return errStop
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		ds.Rows = append(ds.Rows, map[string]any{
			"hash":    c.Hash.String()[:8],
			"author":  c.Author.Name,
			"date":    c.Author.When.UTC().Format(time.DateOnly),
			"message": strings.TrimRight(c.Message, "\n"),
		})
		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		return Dataset{}, fmt.Errorf("walk log: %w", err)
	}
	return ds, nil
}

func absOr(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
