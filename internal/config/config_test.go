package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default rules invalid: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Rules){
		"empty tag":       func(r *Rules) { r.TagKeyword = "" },
		"no at":           func(r *Rules) { r.TagKeyword = "dataProvider" },
		"space in tag":    func(r *Rules) { r.TagKeyword = "@data Provider" },
		"empty prefix":    func(r *Rules) { r.TestPrefix = " " },
		"no return types": func(r *Rules) { r.ArrayTypes, r.IterableTypes = nil, nil },
		"bad test tag":    func(r *Rules) { r.TestTag = "test" },
	}
	for name, mutate := range cases {
		r := Default()
		mutate(&r)
		if err := r.Validate(); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestDigestChangesWithRules(t *testing.T) {
	a := Default()
	b := Default()
	if a.Digest() != b.Digest() {
		t.Fatal("digest must be deterministic")
	}
	b.TestPrefix = "check_"
	if a.Digest() == b.Digest() {
		t.Fatal("digest must change when rules change")
	}
	c := Default()
	c.ArrayTypes = []string{"array", "iterable"}
	c.IterableTypes = []string{"Generator", `\Generator`}
	if a.Digest() == c.Digest() {
		t.Fatal("moving a type between lists must change the digest")
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "[rules]\ntest_prefix = \"check_\"\n")
	nested := filepath.Join(root, "tests", "unit")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find: ok=%v err=%v", ok, err)
	}
	if filepath.Dir(path) != root {
		t.Fatalf("found %s, want it in %s", path, root)
	}

	cfg, found, err := Discover(nested)
	if err != nil || !found {
		t.Fatalf("Discover: found=%v err=%v", found, err)
	}
	if cfg.Rules.TestPrefix != "check_" {
		t.Fatalf("prefix %q", cfg.Rules.TestPrefix)
	}
	if cfg.Rules.TagKeyword != DefaultTagKeyword {
		t.Fatalf("unset keys must keep defaults, got %q", cfg.Rules.TagKeyword)
	}
}

func TestDiscoverWithoutFile(t *testing.T) {
	cfg, found, err := Discover(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Skip("a provcheck.toml exists above the temp dir")
	}
	if cfg.Rules.TagKeyword != DefaultTagKeyword {
		t.Fatalf("expected defaults, got %+v", cfg.Rules)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "[rules]\ntag = \"@dataProvider\"\ntset_prefix = \"x\"\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "rules.tset_prefix") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadCheckSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "[check]\njobs = 3\nformat = \"short\"\nexclude = [\"vendor\"]\ncache = true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Check.Jobs != 3 || cfg.Check.Format != "short" || !cfg.Check.Cache || len(cfg.Check.Exclude) != 1 {
		t.Fatalf("unexpected check section %+v", cfg.Check)
	}
}
