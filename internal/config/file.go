package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is looked up from the target path upwards.
const FileName = "provcheck.toml"

// File is the decoded provcheck.toml.
//
//	[rules]
//	tag = "@dataProvider"
//	test_prefix = "test_"
//	iterable_types = ["iterable", "Generator"]
//
//	[check]
//	jobs = 4
//	exclude = ["vendor"]
type File struct {
	Path  string `toml:"-"`
	Rules Rules  `toml:"rules"`
	Check Check  `toml:"check"`
}

// Check holds defaults for the check and fix commands.
type Check struct {
	Jobs    int      `toml:"jobs"`
	Format  string   `toml:"format"`
	Exclude []string `toml:"exclude"`
	Cache   bool     `toml:"cache"`
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path on top of the defaults. Keys the decoder does not know
// are an error so typos do not silently fall back to defaults.
func Load(path string) (File, error) {
	cfg := File{Path: path, Rules: Default()}
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return File{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return File{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Rules.Validate(); err != nil {
		return File{}, fmt.Errorf("%s: [rules]: %w", path, err)
	}
	if cfg.Check.Jobs < 0 {
		return File{}, fmt.Errorf("%s: [check].jobs must not be negative", path)
	}
	return cfg, nil
}

// Discover finds and loads the config for target. Without a file it returns
// the defaults and ok=false.
func Discover(target string) (File, bool, error) {
	path, ok, err := Find(target)
	if err != nil || !ok {
		return File{Rules: Default()}, false, err
	}
	cfg, err := Load(path)
	if err != nil {
		return File{}, true, err
	}
	return cfg, true, nil
}
