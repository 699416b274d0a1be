package driver

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// ListPHPFiles returns the sorted *.php files under dir. Hidden directories
// are skipped. An exclude pattern matches either the base name or the
// slash-separated path relative to dir (filepath.Match syntax).
func ListPHPFiles(dir string, exclude []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if path != dir && (strings.HasPrefix(d.Name(), ".") || excluded(rel, d.Name(), exclude)) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".php") && !excluded(rel, d.Name(), exclude) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func excluded(rel, name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
		if ok, _ := filepath.Match(p, rel); ok {
			return true
		}
	}
	return false
}
