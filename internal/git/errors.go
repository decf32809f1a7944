package git

import "errors"

var (
	// ErrNotFound indicates a reference or revision that does not resolve
	// to a commit in the repository.
	ErrNotFound = errors.New("reference not found")

	// ErrInvalidRange indicates a range expression that does not split into
	// exactly two non-empty revisions on "..".
	ErrInvalidRange = errors.New("invalid range expression")

	// ErrTagExists indicates an attempt to create a tag whose name is
	// already taken. The caller decides how to proceed; the name is never
	// auto-renamed.
	ErrTagExists = errors.New("tag already exists")

	// ErrNoHead indicates a repository whose HEAD points at an unborn
	// branch, so there is no commit to build on.
	ErrNoHead = errors.New("repository has no HEAD commit")
)
