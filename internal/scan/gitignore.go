package scan

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IgnoreList holds parsed .gitignore patterns for one scope (the directory
// the ignore file lives in). Matching follows standard gitignore semantics:
// later patterns win, "!" re-includes, a trailing "/" restricts to
// directories, a leading "/" anchors at the scope root.
type IgnoreList struct {
	patterns []ignorePattern
}

type ignorePattern struct {
	pattern   string
	negate    bool
	dirOnly   bool
	anchored  bool
	hasGlob   bool
}

// LoadIgnoreFile parses the ignore file at path. A missing file yields an
// empty list, not an error.
func LoadIgnoreFile(path string) *IgnoreList {
	file, err := os.Open(path)
	if err != nil {
		return &IgnoreList{}
	}
	defer file.Close()

	return parseIgnoreReader(file)
}

// GlobalIgnore loads the user-level git ignore file when one exists.
func GlobalIgnore() *IgnoreList {
	home, err := os.UserHomeDir()
	if err != nil {
		return &IgnoreList{}
	}
	return LoadIgnoreFile(filepath.Join(home, ".config", "git", "ignore"))
}

func parseIgnoreReader(r io.Reader) *IgnoreList {
	il := &IgnoreList{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		il.Add(line)
	}
	return il
}

// Add parses a single pattern line into the list.
func (il *IgnoreList) Add(line string) {
	p := ignorePattern{}

	if strings.HasPrefix(line, "!") {
		p.negate = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		p.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}
	// A slash anywhere except the end anchors the pattern at the scope root
	if strings.HasPrefix(line, "/") {
		p.anchored = true
		line = line[1:]
	} else if strings.Contains(line, "/") {
		p.anchored = true
	}

	p.pattern = line
	p.hasGlob = strings.ContainsAny(line, "*?[")
	il.patterns = append(il.patterns, p)
}

// Empty reports whether the list has no patterns
func (il *IgnoreList) Empty() bool {
	return il == nil || len(il.patterns) == 0
}

// Ignored reports whether relPath (slash-separated, relative to the scope
// root) should be ignored. Last matching pattern decides.
func (il *IgnoreList) Ignored(relPath string, isDir bool) bool {
	if il == nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)

	ignored := false
	for _, p := range il.patterns {
		if matchIgnorePattern(p, relPath, isDir) {
			ignored = !p.negate
		}
	}
	return ignored
}

func matchIgnorePattern(p ignorePattern, relPath string, isDir bool) bool {
	// Directory-only patterns match the directory itself and everything
	// inside it
	if p.dirOnly {
		if isDir && matchPathPattern(p, relPath) {
			return true
		}
		return insideMatchedDir(p, relPath)
	}

	if matchPathPattern(p, relPath) {
		return true
	}
	// A plain name pattern also ignores whole subtrees rooted at a matching
	// directory component
	return insideMatchedDir(p, relPath)
}

// matchPathPattern matches the pattern against the full path (anchored) or
// against any path suffix (unanchored), mirroring git's behavior for
// patterns without a slash.
func matchPathPattern(p ignorePattern, relPath string) bool {
	if p.anchored {
		return segmentMatch(p, relPath)
	}

	if segmentMatch(p, relPath) {
		return true
	}
	parts := strings.Split(relPath, "/")
	for i := 1; i < len(parts); i++ {
		if segmentMatch(p, strings.Join(parts[i:], "/")) {
			return true
		}
	}
	return false
}

func insideMatchedDir(p ignorePattern, relPath string) bool {
	parts := strings.Split(relPath, "/")
	for i := 1; i < len(parts); i++ {
		prefix := strings.Join(parts[:i], "/")
		if matchPathPattern(p, prefix) {
			return true
		}
	}
	return false
}

func segmentMatch(p ignorePattern, path string) bool {
	if !p.hasGlob {
		return p.pattern == path
	}
	matched, err := doublestar.Match(p.pattern, path)
	return err == nil && matched
}
