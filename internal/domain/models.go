package domain

import "path/filepath"

// SourceKind identifies where a candidate came from
type SourceKind string

const (
	SourceFile       SourceKind = "file"
	SourceStdin      SourceKind = "stdin"
	SourceRepository SourceKind = "repo"
)

// Candidate is one selectable entry offered by the host application
type Candidate struct {
	Label  string // text shown and matched against the query
	Detail string // secondary text (path for repositories, line number for files)
	Source string // source name, e.g. the file path or "stdin"
	Kind   SourceKind
}

// String returns the label so the default formatter renders candidates sensibly
func (c Candidate) String() string {
	return c.Label
}

// Repository represents a git repository found on disk
type Repository struct {
	Path        string
	Name        string
	DisplayName string // Name shown in UI, may include parent dir for duplicates
}

// Candidate converts the repository into a selectable candidate
func (r Repository) Candidate(root string) Candidate {
	label := r.DisplayName
	if label == "" {
		label = r.Name
	}
	return Candidate{
		Label:  label,
		Detail: r.Path,
		Source: filepath.Clean(root),
		Kind:   SourceRepository,
	}
}

// ScanProgress represents the current loading state
type ScanProgress struct {
	IsScanning       bool
	SourcesLoaded    int
	CandidatesLoaded int
}

// Output is the text printed when the candidate is chosen: the path for
// repositories, the label otherwise
func (c Candidate) Output() string {
	if c.Kind == SourceRepository && c.Detail != "" {
		return c.Detail
	}
	return c.Label
}
