package git

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Fixed identity used for commits and tags created by the tool.
const (
	signatureName  = "automsg"
	signatureEmail = "automsg@local"
)

// Options configures a repository handle.
type Options struct {
	Path    string
	Include []string // Glob patterns to include
	Exclude []string // Glob patterns to exclude
}

// Repository wraps a go-git repository and exposes the history and staging
// facts the message pipeline consumes. It performs no synthesis of its own.
type Repository struct {
	repo *git.Repository
	opts Options
}

// Open opens the repository at the configured path.
func Open(opts Options) (*Repository, error) {
	repo, err := git.PlainOpen(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("open repository at %q: %w", opts.Path, err)
	}
	return &Repository{repo: repo, opts: opts}, nil
}

// StagedFiles lists the files that differ between the index and the working
// tree, including untracked files. Paths are returned in sorted order.
func (r *Repository) StagedFiles() ([]StagedFile, error) {
	status, err := r.worktreeStatus()
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(status))
	for path := range status {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var files []StagedFile
	for _, path := range paths {
		code := status[path].Worktree
		if code == git.Unmodified {
			continue
		}
		if !r.matchesFilters(path) {
			continue
		}
		files = append(files, StagedFile{Path: path, Status: worktreeFileStatus(code)})
	}

	return files, nil
}

// ResolveCommit resolves a revision (SHA, ref name, or symbolic name such as
// HEAD~2) to a commit record. FilesChanged is the diff between the commit's
// tree and its first parent's tree; root commits diff against an empty tree.
func (r *Repository) ResolveCommit(reference string) (CommitRecord, error) {
	commit, err := r.resolve(reference)
	if err != nil {
		return CommitRecord{}, err
	}
	return r.record(commit)
}

// RecentCommits walks history starting at HEAD and returns up to count
// commits in reverse-chronological traversal order.
func (r *Repository) RecentCommits(count int) ([]CommitRecord, error) {
	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoHead, err)
	}

	iter, err := r.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, err
	}

	var records []CommitRecord
	err = iter.ForEach(func(c *object.Commit) error {
		if len(records) >= count {
			return storerIterStop
		}
		rec, err := r.record(c)
		if err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil && !errors.Is(err, storerIterStop) {
		return nil, err
	}

	return records, nil
}

// CommitsInRange returns the commits reachable from the end of a
// "start..end" expression and not reachable from its start, in the walk's
// natural reverse-chronological order. The start commit and all of its
// ancestors are excluded.
func (r *Repository) CommitsInRange(rangeExpr string) ([]CommitRecord, error) {
	spec, err := ParseRange(rangeExpr)
	if err != nil {
		return nil, err
	}

	start, err := r.resolve(spec.Start)
	if err != nil {
		return nil, err
	}
	end, err := r.resolve(spec.End)
	if err != nil {
		return nil, err
	}

	// Hiding the start commit alone is not enough in merge histories:
	// an ancestor of start can still be reachable from end through
	// another parent, so the whole ancestor set must be hidden.
	hidden := map[plumbing.Hash]bool{}
	err = object.NewCommitPreorderIter(start, nil, nil).ForEach(func(c *object.Commit) error {
		hidden[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	iter := object.NewCommitPreorderIter(end, hidden, nil)

	var records []CommitRecord
	err = iter.ForEach(func(c *object.Commit) error {
		rec, err := r.record(c)
		if err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// CreateCommit commits the current index tree as a child of HEAD using the
// fixed tool identity. It fails if HEAD points at an unborn branch.
func (r *Repository) CreateCommit(message string) error {
	if _, err := r.repo.Head(); err != nil {
		return fmt.Errorf("%w: %v", ErrNoHead, err)
	}

	w, err := r.repo.Worktree()
	if err != nil {
		return err
	}

	sig := toolSignature()
	_, err = w.Commit(message, &git.CommitOptions{
		Author:    sig,
		Committer: sig,
	})
	if err != nil {
		return fmt.Errorf("create commit: %w", err)
	}
	return nil
}

// CreateAnnotatedTag resolves reference to a commit and creates an annotated
// tag object pointing at it. A taken tag name surfaces ErrTagExists.
func (r *Repository) CreateAnnotatedTag(name, message, reference string) error {
	commit, err := r.resolve(reference)
	if err != nil {
		return err
	}

	_, err = r.repo.CreateTag(name, commit.Hash, &git.CreateTagOptions{
		Tagger:  toolSignature(),
		Message: message,
	})
	if errors.Is(err, git.ErrTagExists) {
		return fmt.Errorf("%w: %q", ErrTagExists, name)
	}
	if err != nil {
		return fmt.Errorf("create tag %q: %w", name, err)
	}
	return nil
}

// storerIterStop terminates a commit walk early without signalling failure.
var storerIterStop = errors.New("stop iteration")

// resolve turns a revision string into a commit object.
func (r *Repository) resolve(reference string) (*object.Commit, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(reference))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrNotFound, reference, err)
	}

	commit, err := r.repo.CommitObject(*hash)
	if err == nil {
		return commit, nil
	}

	// The revision may point at an annotated tag object; peel it.
	if tag, tagErr := r.repo.TagObject(*hash); tagErr == nil {
		if commit, err = tag.Commit(); err == nil {
			return commit, nil
		}
	}

	return nil, fmt.Errorf("%w: %q: %v", ErrNotFound, reference, err)
}

// record builds a CommitRecord from a commit object.
func (r *Repository) record(c *object.Commit) (CommitRecord, error) {
	files, err := r.filesChanged(c)
	if err != nil {
		return CommitRecord{}, err
	}

	return CommitRecord{
		SHA:          c.Hash.String(),
		Message:      c.Message,
		Author:       c.Author.Name,
		Date:         c.Author.When.Format(time.RFC3339),
		FilesChanged: files,
	}, nil
}

// filesChanged diffs a commit's tree against its first parent's tree. Root
// commits have no parent, so every file in the tree counts as changed.
func (r *Repository) filesChanged(c *object.Commit) ([]string, error) {
	tree, err := c.Tree()
	if err != nil {
		return nil, err
	}

	if c.NumParents() == 0 {
		var files []string
		err := tree.Files().ForEach(func(f *object.File) error {
			if r.matchesFilters(f.Name) {
				files = append(files, f.Name)
			}
			return nil
		})
		return files, err
	}

	parent, err := c.Parent(0)
	if err != nil {
		return nil, err
	}
	parentTree, err := parent.Tree()
	if err != nil {
		return nil, err
	}

	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, change := range changes {
		name := change.To.Name
		if name == "" {
			name = change.From.Name
		}
		if name == "" {
			continue
		}
		if !r.matchesFilters(name) {
			continue
		}
		files = append(files, name)
	}

	return files, nil
}

// worktreeStatus reads the porcelain status of the working tree.
func (r *Repository) worktreeStatus() (git.Status, error) {
	w, err := r.repo.Worktree()
	if err != nil {
		return nil, err
	}
	status, err := w.Status()
	if err != nil {
		return nil, fmt.Errorf("read worktree status: %w", err)
	}
	return status, nil
}

// worktreeFileStatus maps a porcelain worktree status code to a FileStatus.
func worktreeFileStatus(code git.StatusCode) FileStatus {
	switch code {
	case git.Untracked, git.Added:
		return StatusAdded
	case git.Modified:
		return StatusModified
	case git.Deleted:
		return StatusDeleted
	case git.Renamed:
		return StatusRenamed
	case git.Copied:
		return StatusCopied
	default:
		return StatusUnknown
	}
}

func toolSignature() *object.Signature {
	return &object.Signature{
		Name:  signatureName,
		Email: signatureEmail,
		When:  time.Now(),
	}
}

// matchesFilters checks if a path matches the include/exclude filters.
func (r *Repository) matchesFilters(path string) bool {
	// Normalize path separators
	path = strings.ReplaceAll(path, "\\", "/")

	// Check exclude patterns first
	for _, pattern := range r.opts.Exclude {
		matched, _ := doublestar.Match(pattern, path)
		if matched {
			return false
		}
	}

	// If no include patterns, accept all
	if len(r.opts.Include) == 0 {
		return true
	}

	for _, pattern := range r.opts.Include {
		matched, _ := doublestar.Match(pattern, path)
		if matched {
			return true
		}
	}

	return false
}
