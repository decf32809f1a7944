package git

// FileStatus represents the change kind of a file in the pending diff.
type FileStatus int

const (
	StatusUnknown FileStatus = iota
	StatusAdded
	StatusModified
	StatusDeleted
	StatusRenamed
	StatusCopied
)

// String returns a string representation of the file status.
func (s FileStatus) String() string {
	switch s {
	case StatusAdded:
		return "added"
	case StatusModified:
		return "modified"
	case StatusDeleted:
		return "deleted"
	case StatusRenamed:
		return "renamed"
	case StatusCopied:
		return "copied"
	default:
		return "unknown"
	}
}

// StagedFile represents one file in the diff between the index and the
// working tree, scoped to what the next commit would include.
type StagedFile struct {
	Path   string
	Status FileStatus
}

// CommitRecord represents a resolved commit with the file paths it touched.
type CommitRecord struct {
	SHA          string
	Message      string
	Author       string
	Date         string
	FilesChanged []string
}

// ShortSHA returns at most the first 8 characters of the commit SHA.
// Shorter identifiers are returned as-is, never padded or sliced past their
// length.
func (c CommitRecord) ShortSHA() string {
	return shortSHA(c.SHA)
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
