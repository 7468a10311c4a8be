// Package scan enumerates candidate text files under a root directory.
//
// The walk honors .gitignore files (nested scopes, .git/info/exclude at the
// root, plus the user's global ignore file), skips hidden entries, filters
// by extension blacklist and an
// optional type alias, enforces a size ceiling, and sniffs binary content.
// Per-entry failures are swallowed so a single unreadable file never aborts
// a scan.
package scan

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/scour/internal/diag"
	"github.com/standardbeagle/scour/pkg/pathutil"
)

// Options controls which files a walk yields.
type Options struct {
	// TypeFilter restricts files to a type alias ("ts", "python", ...).
	// Empty means no restriction.
	TypeFilter string

	// MaxFileBytes is the size ceiling; larger files are counted, not read
	MaxFileBytes int64

	// Exclude holds doublestar globs (relative to root) to skip
	Exclude []string

	// Include, when non-empty, restricts the walk to matching files
	Include []string
}

// File is one candidate yielded by a walk, read fully into memory.
type File struct {
	// Path is the absolute path on disk
	Path string

	// DisplayPath is the root-relative, slash-separated path used in output
	DisplayPath string

	// Content is the file body, decoded as UTF-8 with lossy replacement
	Content string
}

// Stats aggregates walk counters so callers can distinguish "no matches"
// from "most files were excluded".
type Stats struct {
	Scanned       int
	SkippedLarge  int
	SkippedBinary int
}

// Walker performs a single synchronous recursive scan. Files are visited
// strictly one at a time in deterministic (lexicographic) order.
type Walker struct {
	root   string
	opts   Options
	global *IgnoreList
}

// NewWalker creates a walker rooted at root. The caller is responsible for
// verifying that root exists before walking.
func NewWalker(root string, opts Options) *Walker {
	return &Walker{
		root:   root,
		opts:   opts,
		global: GlobalIgnore(),
	}
}

// ignoreScope binds an ignore list to the directory it was loaded from;
// its patterns apply to paths relative to that directory.
type ignoreScope struct {
	baseRel string
	list    *IgnoreList
}

// Walk visits every candidate file under the root and returns aggregate
// counters. Traversal-level problems (permission denied, broken entries)
// are absorbed and reflected only by absence from the counts.
func (w *Walker) Walk(visit func(File)) Stats {
	stats := Stats{}
	w.walkDir(w.root, "", nil, &stats, visit)
	return stats
}

func (w *Walker) walkDir(dir, rel string, scopes []ignoreScope, stats *Stats, visit func(File)) {
	if rel == "" {
		// Repo-local excludes live outside the tree, same syntax as .gitignore
		if il := LoadIgnoreFile(filepath.Join(dir, ".git", "info", "exclude")); !il.Empty() {
			scopes = append(scopes, ignoreScope{baseRel: rel, list: il})
		}
	}
	if il := LoadIgnoreFile(filepath.Join(dir, ".gitignore")); !il.Empty() {
		scopes = append(scopes, ignoreScope{baseRel: rel, list: il})
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		diag.Logf(2, "scan: skipping unreadable directory %s: %v\n", dir, err)
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		entryRel := path.Join(rel, name)
		entryAbs := filepath.Join(dir, name)

		if entry.IsDir() {
			if w.ignored(entryRel, true, scopes) || w.excluded(entryRel) {
				continue
			}
			w.walkDir(entryAbs, entryRel, scopes, stats, visit)
			continue
		}

		if !entry.Type().IsRegular() {
			continue
		}
		if w.ignored(entryRel, false, scopes) {
			continue
		}
		w.visitFile(entryAbs, entryRel, stats, visit)
	}
}

func (w *Walker) visitFile(abs, rel string, stats *Stats, visit func(File)) {
	if !IsSupportedTextFile(abs) {
		return
	}
	if !MatchesFileType(abs, w.opts.TypeFilter) {
		return
	}
	if w.excluded(rel) || !w.included(rel) {
		return
	}

	info, err := os.Stat(abs)
	if err != nil {
		return
	}
	stats.Scanned++

	if w.opts.MaxFileBytes > 0 && info.Size() > w.opts.MaxFileBytes {
		stats.SkippedLarge++
		return
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return
	}
	if LooksBinary(data) {
		stats.SkippedBinary++
		return
	}

	visit(File{
		Path:        abs,
		DisplayPath: pathutil.DisplayPath(abs, w.root),
		Content:     strings.ToValidUTF8(string(data), "�"),
	})
}

// ignored applies the global ignore file plus every .gitignore scope above
// the entry.
func (w *Walker) ignored(rel string, isDir bool, scopes []ignoreScope) bool {
	if w.global.Ignored(rel, isDir) {
		return true
	}
	for _, scope := range scopes {
		scoped := rel
		if scope.baseRel != "" {
			scoped = strings.TrimPrefix(rel, scope.baseRel+"/")
		}
		if scope.list.Ignored(scoped, isDir) {
			return true
		}
	}
	return false
}

func (w *Walker) excluded(rel string) bool {
	for _, pattern := range w.opts.Exclude {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
	}
	return false
}

func (w *Walker) included(rel string) bool {
	if len(w.opts.Include) == 0 {
		return true
	}
	for _, pattern := range w.opts.Include {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
	}
	return false
}
