// Package vcs selects and reads Python sources through git.
package vcs

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Repo is a git worktree opened from any directory inside it.
type Repo struct {
	root string
	repo *git.Repository
}

// Open finds the repository enclosing dir.
func Open(dir string) (*Repo, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("vcs: resolve %s: %w", dir, err)
	}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("vcs: open %s: %w", abs, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("vcs: worktree %s: %w", abs, err)
	}
	return &Repo{root: worktree.Filesystem.Root(), repo: repo}, nil
}

// Root returns the worktree's top-level directory.
func (r *Repo) Root() string {
	return r.root
}

// ChangedFiles returns the absolute paths of modified, staged and untracked
// .py files, sorted. Deleted files are omitted.
func (r *Repo) ChangedFiles() ([]string, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("vcs: worktree: %w", err)
	}
	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("vcs: status: %w", err)
	}

	var files []string
	for path, st := range status {
		if !strings.HasSuffix(path, ".py") {
			continue
		}
		if st.Worktree == git.Deleted || (st.Staging == git.Deleted && st.Worktree != git.Untracked) {
			continue
		}
		if st.Worktree == git.Unmodified && st.Staging == git.Unmodified {
			continue
		}
		files = append(files, filepath.Join(r.root, filepath.FromSlash(path)))
	}
	sort.Strings(files)
	return files, nil
}

// ReadAt returns the contents of path as of revision rev
// (a hash, branch, tag or expression such as HEAD~1).
func (r *Repo) ReadAt(rev, path string) ([]byte, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("vcs: resolve revision %s: %w", rev, err)
	}
	commit, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("vcs: commit %s: %w", rev, err)
	}

	rel, err := r.relPath(path)
	if err != nil {
		return nil, err
	}
	file, err := commit.File(rel)
	if err != nil {
		return nil, fmt.Errorf("vcs: %s at %s: %w", rel, rev, err)
	}
	contents, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("vcs: read %s at %s: %w", rel, rev, err)
	}
	return []byte(contents), nil
}

// relPath converts path to the slash-separated form git trees use.
func (r *Repo) relPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("vcs: resolve %s: %w", path, err)
	}
	rel, err := filepath.Rel(r.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("vcs: %s is outside the worktree %s", path, r.root)
	}
	return filepath.ToSlash(rel), nil
}
