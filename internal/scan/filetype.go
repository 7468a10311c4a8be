package scan

import (
	"path/filepath"
	"strings"
)

// binaryExtensions lists extensions that are never worth scanning:
// images, archives, audio/video, fonts, databases, lockfiles and compiled
// artifacts. Fixed at process start.
var binaryExtensions = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true, "webp": true,
	"ico": true, "pdf": true, "zip": true, "gz": true, "tar": true,
	"7z": true, "mp3": true, "mp4": true, "mov": true, "db": true,
	"sqlite": true, "woff": true, "woff2": true, "ttf": true, "otf": true,
	"lock": true, "jar": true, "class": true, "wasm": true,
}

// typeAliases maps user-facing type names to the extensions they cover.
// Unknown names fall back to raw extension equality.
var typeAliases = map[string][]string{
	"rust":       {"rs"},
	"rs":         {"rs"},
	"python":     {"py"},
	"py":         {"py"},
	"javascript": {"js", "jsx", "mjs", "cjs"},
	"js":         {"js", "jsx", "mjs", "cjs"},
	"typescript": {"ts", "tsx"},
	"ts":         {"ts", "tsx"},
	"go":         {"go"},
	"java":       {"java"},
	"c":          {"c", "h"},
	"cpp":        {"cc", "cpp", "cxx", "hpp", "hh", "hxx"},
	"c++":        {"cc", "cpp", "cxx", "hpp", "hh", "hxx"},
	"markdown":   {"md", "mdx"},
	"md":         {"md", "mdx"},
	"json":       {"json"},
}

// extensionOf returns the lowercased extension without the leading dot.
func extensionOf(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsSupportedTextFile reports whether the file's extension is outside the
// binary blacklist.
func IsSupportedTextFile(path string) bool {
	return !binaryExtensions[extensionOf(path)]
}

// MatchesFileType reports whether path satisfies a type filter token such as
// "ts", "typescript" or a literal extension. An empty filter matches
// everything.
func MatchesFileType(path, fileType string) bool {
	wanted := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(fileType), "."))
	if wanted == "" {
		return true
	}

	ext := extensionOf(path)
	if exts, ok := typeAliases[wanted]; ok {
		for _, e := range exts {
			if ext == e {
				return true
			}
		}
		return false
	}
	return ext == wanted
}

// LooksBinary reports whether the content appears binary: any NUL byte in
// the first 4096 bytes.
func LooksBinary(data []byte) bool {
	limit := len(data)
	if limit > 4096 {
		limit = 4096
	}
	for _, b := range data[:limit] {
		if b == 0 {
			return true
		}
	}
	return false
}
