package pathutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToRelative(t *testing.T) {
	tests := []struct {
		name string
		path string
		root string
		want string
	}{
		{"inside root", "/home/user/project/src/main.go", "/home/user/project", filepath.FromSlash("src/main.go")},
		{"root itself", "/home/user/project", "/home/user/project", "."},
		{"outside root stays absolute", "/other/location/file.go", "/home/user/project", "/other/location/file.go"},
		{"already relative", "src/main.go", "/home/user/project", "src/main.go"},
		{"empty path", "", "/home/user/project", ""},
		{"empty root", "/home/user/project/main.go", "", "/home/user/project/main.go"},
		{"unclean inputs", "/home/user/project/./src/../src/main.go", "/home/user/project/", filepath.FromSlash("src/main.go")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToRelative(tt.path, tt.root))
		})
	}
}

func TestDisplayPath(t *testing.T) {
	t.Run("relative to root with forward slashes", func(t *testing.T) {
		got := DisplayPath("/proj/src/main.go", "/proj")
		assert.Equal(t, "src/main.go", got)
	})

	t.Run("no dot-slash prefix", func(t *testing.T) {
		got := DisplayPath("/proj/main.go", "/proj")
		assert.Equal(t, "main.go", got)
	})
}
