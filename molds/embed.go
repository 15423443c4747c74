package molds

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml curves/*.tengo
var MoldsFS embed.FS

// DefaultDir is where on-disk overrides of the embedded molds live.
const DefaultDir = "molds"

// Loader reads mold files, preferring a copy under Dir over the embedded one.
type Loader struct {
	Dir string
}

func (l Loader) Load(name string) ([]byte, error) {
	clean := cleanMoldPath(name)
	if l.Dir != "" {
		if data, err := os.ReadFile(l.diskPath(clean)); err == nil {
			return data, nil
		}
	}
	return MoldsFS.ReadFile(clean)
}

func (l Loader) diskPath(clean string) string {
	return filepath.Join(l.Dir, filepath.FromSlash(clean))
}

func cleanMoldPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, DefaultDir+"/"); ok {
		s = after
	}
	return s
}
