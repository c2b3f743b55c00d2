// Package fix applies the edits attached to diagnostics back to the files
// they point at.
package fix

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"cci/internal/diag"
	"cci/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// Options selects which fixes Apply takes.
type Options struct {
	Codes  []diag.Code // пусто: все коды
	DryRun bool        // не трогать диск, только FileChange.Content
}

// Applied records a fix that made it into the output.
type Applied struct {
	Title   string
	Code    diag.Code
	Message string
	Path    string
	Edits   int
}

// Skipped captures a fix that was not applied, with the reason.
type Skipped struct {
	Title  string
	Path   string
	Reason string
}

// FileChange is the new content of one modified file.
type FileChange struct {
	Path    string
	Edits   int
	Content []byte
}

// Result aggregates applied fixes, skipped ones, and file changes.
type Result struct {
	Applied []Applied
	Skipped []Skipped
	Files   []FileChange
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply takes every fix from diagnostics that does not overlap an earlier
// one and rewrites the affected files. Fixes are visited in source order.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts Options) (*Result, error) {
	if fs == nil {
		return nil, fmt.Errorf("fix: FileSet is nil")
	}
	result := &Result{}

	cands := gather(diagnostics, opts.Codes)
	if len(cands) == 0 {
		return result, ErrNoFixes
	}
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i].diag.Primary, cands[j].diag.Primary
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return cands[i].order < cands[j].order
	})

	accepted := make(map[source.FileID][]diag.FixEdit)
	var dirty []source.FileID
	for _, c := range cands {
		path := displayPath(fs, c.diag.Primary.File)
		if reason := check(fs, accepted, c.fix.Edits); reason != "" {
			result.Skipped = append(result.Skipped, Skipped{Title: c.fix.Title, Path: path, Reason: reason})
			continue
		}
		for _, e := range c.fix.Edits {
			if _, seen := accepted[e.Span.File]; !seen {
				dirty = append(dirty, e.Span.File)
			}
			accepted[e.Span.File] = append(accepted[e.Span.File], e)
		}
		result.Applied = append(result.Applied, Applied{
			Title:   c.fix.Title,
			Code:    c.diag.Code,
			Message: c.diag.Message,
			Path:    path,
			Edits:   len(c.fix.Edits),
		})
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	slices.Sort(dirty)
	for _, id := range dirty {
		file := fs.Get(id)
		content := rewrite(file.Content, accepted[id])
		if !opts.DryRun {
			if err := writeAtomic(file.Path, restoreEncoding(file.Flags, content)); err != nil {
				return result, err
			}
		}
		result.Files = append(result.Files, FileChange{
			Path:    displayPath(fs, id),
			Edits:   len(accepted[id]),
			Content: content,
		})
	}
	return result, nil
}

func gather(diagnostics []diag.Diagnostic, codes []diag.Code) []candidate {
	var out []candidate
	for _, d := range diagnostics {
		if len(codes) > 0 && !slices.Contains(codes, d.Code) {
			continue
		}
		for _, f := range d.Fixes {
			out = append(out, candidate{diag: d, fix: f, order: len(out)})
		}
	}
	return out
}

// check returns why edits cannot be applied on top of accepted, or "".
func check(fs *source.FileSet, accepted map[source.FileID][]diag.FixEdit, edits []diag.FixEdit) string {
	if len(edits) == 0 {
		return "fix has no edits"
	}
	for i, e := range edits {
		file, ok := fs.Lookup(e.Span.File)
		if !ok {
			return "unknown file"
		}
		if file.Flags&source.FileVirtual != 0 {
			return "target file is virtual"
		}
		if e.Span.Start > e.Span.End || e.Span.End > file.Size() {
			return "edit span out of range"
		}
		for _, prev := range accepted[e.Span.File] {
			if spansConflict(prev.Span, e.Span) {
				return "conflicts with a previously applied fix"
			}
		}
		for _, other := range edits[:i] {
			if other.Span.File == e.Span.File && spansConflict(other.Span, e.Span) {
				return "fix edits overlap"
			}
		}
	}
	return ""
}

// spansConflict treats spans as half-open. Two insertions never conflict;
// an insertion conflicts with a span that strictly contains its position.
func spansConflict(a, b source.Span) bool {
	if a.Empty() && b.Empty() {
		return false
	}
	if a.Empty() {
		return b.Start < a.Start && a.Start < b.End
	}
	if b.Empty() {
		return a.Start < b.Start && b.Start < a.End
	}
	return a.Start < b.End && b.Start < a.End
}

// rewrite applies non-overlapping edits. Insertions at the same offset keep
// the order in which they were accepted.
func rewrite(content []byte, edits []diag.FixEdit) []byte {
	idx := make([]int, len(edits))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		a, b := edits[idx[i]].Span, edits[idx[j]].Span
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		// вставка перед удалением с того же места
		return a.Empty() && !b.Empty()
	})
	out := make([]byte, 0, len(content))
	var pos uint32
	for _, i := range idx {
		e := edits[i]
		out = append(out, content[pos:e.Span.Start]...)
		out = append(out, e.NewText...)
		pos = max(pos, e.Span.End)
	}
	return append(out, content[pos:]...)
}

// restoreEncoding undoes the BOM and CRLF normalization done by FileSet.Load.
func restoreEncoding(flags source.FileFlags, content []byte) []byte {
	if flags&source.FileNormalizedCRLF != 0 {
		content = bytes.ReplaceAll(content, []byte("\n"), []byte("\r\n"))
	}
	if flags&source.FileHadBOM != 0 {
		content = append([]byte{0xEF, 0xBB, 0xBF}, content...)
	}
	return content
}

func writeAtomic(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".cci-fix-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }() // после rename файла уже нет
	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func displayPath(fs *source.FileSet, id source.FileID) string {
	file, ok := fs.Lookup(id)
	if !ok {
		return ""
	}
	return file.FormatPath("auto", fs.BaseDir())
}
