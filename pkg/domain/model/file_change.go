package model

import "strings"

// ChangeStatus is the change kind reported by the source-control collector.
// Values outside the known set are kept verbatim.
type ChangeStatus string

const (
	ChangeStatusAdded     ChangeStatus = "added"
	ChangeStatusRemoved   ChangeStatus = "removed"
	ChangeStatusModified  ChangeStatus = "modified"
	ChangeStatusRenamed   ChangeStatus = "renamed"
	ChangeStatusCopied    ChangeStatus = "copied"
	ChangeStatusChanged   ChangeStatus = "changed"
	ChangeStatusUnchanged ChangeStatus = "unchanged"
)

// FileChange is one changed file of a pull request in canonical shape
type FileChange struct {
	Filename  string
	Status    ChangeStatus
	Additions int
	Deletions int
	Patch     string // empty for binary files or when the collector omitted the diff
}

// ChangedLines returns additions plus deletions
func (f *FileChange) ChangedLines() int {
	return f.Additions + f.Deletions
}

// RawFileChange is a per-file record as delivered by a collector. Any field may be missing.
type RawFileChange struct {
	Filename  *string
	Status    *string
	Additions *int
	Deletions *int
	Patch     *string
}

// NormalizeFileChanges converts raw collector records into FileChange values.
// Missing strings become "" and missing or negative counts become 0. Order is preserved.
func NormalizeFileChanges(raws []*RawFileChange) []*FileChange {
	files := make([]*FileChange, 0, len(raws))
	for _, raw := range raws {
		files = append(files, raw.normalize())
	}
	return files
}

func (x *RawFileChange) normalize() *FileChange {
	if x == nil {
		return &FileChange{}
	}

	return &FileChange{
		Filename:  derefString(x.Filename),
		Status:    ChangeStatus(derefString(x.Status)),
		Additions: derefCount(x.Additions),
		Deletions: derefCount(x.Deletions),
		Patch:     derefString(x.Patch),
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefCount(n *int) int {
	if n == nil || *n < 0 {
		return 0
	}
	return *n
}

// CombineDiffs joins the patches of all files that have one into a single
// document. Each patch is preceded by a "--- a/<name>" / "+++ b/<name>" header pair
// and patches are separated by a blank line.
func CombineDiffs(files []*FileChange) string {
	var parts []string
	for _, f := range files {
		if f == nil || f.Patch == "" {
			continue
		}
		parts = append(parts, "--- a/"+f.Filename+"\n+++ b/"+f.Filename+"\n"+f.Patch)
	}
	return strings.Join(parts, "\n\n")
}
