package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// FileName is the per-project configuration file looked up at the search root.
const FileName = ".scour.kdl"

// Load reads .scour.kdl from root. A missing file returns defaults with no
// error; a malformed or invalid file is an error.
func Load(root string) (*Config, error) {
	return LoadFile(filepath.Join(root, FileName))
}

// LoadFile reads a specific configuration file, for the --config override.
func LoadFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}

	cfg, err := ParseKDL(string(content))
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseKDL parses a .scour.kdl document over the defaults.
func ParseKDL(content string) (*Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "search":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "max_results":
					if v, ok := firstIntArg(cn); ok {
						cfg.Search.MaxResults = v
					}
				case "context_lines":
					if v, ok := firstIntArg(cn); ok {
						cfg.Search.ContextLines = v
					}
				case "max_file_kb":
					if v, ok := firstIntArg(cn); ok {
						cfg.Search.MaxFileKB = v
					}
				case "type_filter":
					if s, ok := firstStringArg(cn); ok {
						cfg.Search.TypeFilter = s
					}
				case "exclude":
					cfg.Search.Exclude = append(cfg.Search.Exclude, collectStringArgs(cn)...)
				case "include":
					cfg.Search.Include = append(cfg.Search.Include, collectStringArgs(cn)...)
				}
			}
		case "matching":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "stemmer":
					if s, ok := firstStringArg(cn); ok {
						cfg.Matching.Stemmer = s
					}
				case "fuzzy":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Matching.Fuzzy = b
					}
				case "fuzzy_algorithm":
					if s, ok := firstStringArg(cn); ok {
						cfg.Matching.FuzzyAlgorithm = s
					}
				case "fuzzy_threshold":
					if v, ok := firstFloatArg(cn); ok {
						cfg.Matching.FuzzyThreshold = v
					}
				}
			}
		case "tracking":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "enabled":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Tracking.Enabled = b
					}
				case "data_dir":
					if s, ok := firstStringArg(cn); ok {
						cfg.Tracking.DataDir = s
					}
				}
			}
		}
	}

	return cfg, nil
}

// Helpers over the kdl-go document model.

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstFloatArg(n *document.Node) (float64, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

// collectStringArgs gathers strings from inline arguments, or from child
// nodes when the block form is used.
func collectStringArgs(n *document.Node) []string {
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

	if len(out) == 0 && len(n.Children) > 0 {
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}

	return out
}
