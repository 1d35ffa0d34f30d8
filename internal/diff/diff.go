// Package diff computes line-level change scripts between snapshots.
// It uses github.com/pmezard/go-difflib/difflib for longest-common-
// subsequence line matching. The output is plain structured data;
// rendering (coloring, escaping) is a presentation concern.
package diff

import (
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"pit-go/internal/pit"
)

// Status classifies how a file changed between two snapshots.
type Status string

const (
	StatusAdded    Status = "added"
	StatusDeleted  Status = "deleted"
	StatusModified Status = "modified"
)

// SegmentKind classifies a contiguous run of lines in a change script.
type SegmentKind string

const (
	SegmentAdded     SegmentKind = "added"
	SegmentRemoved   SegmentKind = "removed"
	SegmentUnchanged SegmentKind = "unchanged"
)

// Segment is a contiguous run of lines with a single classification.
type Segment struct {
	Kind  SegmentKind
	Lines []string
}

// FileDiff describes one file's change between two snapshots.
type FileDiff struct {
	Path     string
	Status   Status
	Segments []Segment
}

// Snapshots computes per-file differences over the union of paths present
// in either snapshot, sorted by path. Files present in both with identical
// content are omitted entirely: unchanged files carry no signal.
func Snapshots(oldSnap, newSnap *pit.Snapshot) []FileDiff {
	oldByPath := captureIndex(oldSnap)
	newByPath := captureIndex(newSnap)

	paths := make([]string, 0, len(oldByPath)+len(newByPath))
	for p := range oldByPath {
		paths = append(paths, p)
	}
	for p := range newByPath {
		if _, ok := oldByPath[p]; !ok {
			paths = append(paths, p)
		}
	}
	slices.Sort(paths)

	var diffs []FileDiff
	for _, p := range paths {
		oldContent, inOld := oldByPath[p]
		newContent, inNew := newByPath[p]
		switch {
		case !inOld:
			diffs = append(diffs, FileDiff{
				Path:     p,
				Status:   StatusAdded,
				Segments: []Segment{{Kind: SegmentAdded, Lines: splitLines(newContent)}},
			})
		case !inNew:
			diffs = append(diffs, FileDiff{
				Path:     p,
				Status:   StatusDeleted,
				Segments: []Segment{{Kind: SegmentRemoved, Lines: splitLines(oldContent)}},
			})
		case oldContent == newContent:
			// Unchanged: omitted from the result.
		default:
			diffs = append(diffs, FileDiff{
				Path:     p,
				Status:   StatusModified,
				Segments: Lines(oldContent, newContent),
			})
		}
	}
	return diffs
}

// Lines computes the line-level change script between two text blobs.
// A replace opcode is emitted as a removed segment followed by an added one.
func Lines(oldContent, newContent string) []Segment {
	a := splitLines(oldContent)
	b := splitLines(newContent)

	var segs []Segment
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		switch op.Tag {
		case 'e':
			segs = append(segs, Segment{Kind: SegmentUnchanged, Lines: slices.Clone(a[op.I1:op.I2])})
		case 'd':
			segs = append(segs, Segment{Kind: SegmentRemoved, Lines: slices.Clone(a[op.I1:op.I2])})
		case 'i':
			segs = append(segs, Segment{Kind: SegmentAdded, Lines: slices.Clone(b[op.J1:op.J2])})
		case 'r':
			segs = append(segs,
				Segment{Kind: SegmentRemoved, Lines: slices.Clone(a[op.I1:op.I2])},
				Segment{Kind: SegmentAdded, Lines: slices.Clone(b[op.J1:op.J2])},
			)
		}
	}
	return segs
}

func captureIndex(snap *pit.Snapshot) map[string]string {
	byPath := make(map[string]string, len(snap.Files))
	for _, f := range snap.Files {
		byPath[f.Path] = f.Content
	}
	return byPath
}

// splitLines splits content on newlines, excluding the blank trailing
// fragment a trailing newline produces.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
