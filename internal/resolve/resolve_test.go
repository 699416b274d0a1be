package resolve

import (
	"testing"

	"provcheck/internal/annot"
	"provcheck/internal/config"
	"provcheck/internal/decl"
	"provcheck/internal/source"
	"provcheck/internal/syntax"
)

func resolveSource(t *testing.T, src string) []Resolution {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.php", []byte(src))
	s, err := syntax.Build(fs.Get(id))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	rules := config.Default()
	f := decl.Index(s, decl.Options{ArrayTypes: rules.ArrayTypes, IterableTypes: rules.IterableTypes})
	return Resolve(annot.Extract(f, rules))
}

func TestResolveOutcomes(t *testing.T) {
	res := resolveSource(t, `<?php
namespace local_mod;

class some_test {
    /**
     * @dataProvider provider
     * @dataProvider provider()
     * @dataProvider self::provider
     * @dataProvider static::provider()
     * @dataProvider some_test::provider
     * @dataProvider \local_mod\SOME_TEST::provider
     * @dataProvider other_test::provider
     * @dataProvider missing
     * @dataProvider Provider
     * @dataProvider
     */
    public function test_it(): void {
    }

    public static function provider(): array {
        return [];
    }
}
`)
	type want struct {
		outcome Outcome
		name    string
		paren   bool
	}
	expected := []want{
		{Found, "provider", false},
		{Found, "provider", true},
		{Found, "provider", false},
		{Found, "provider", true},
		{Found, "provider", false},
		{Found, "provider", false},
		{Skipped, "provider", false},
		{NotFound, "missing", false},
		{NotFound, "Provider", false},
		{Malformed, "", false},
	}
	if len(res) != len(expected) {
		t.Fatalf("got %d resolutions", len(res))
	}
	for i, w := range expected {
		r := res[i]
		if r.Outcome != w.outcome || r.Name != w.name || r.HasParen != w.paren {
			t.Errorf("resolution %d (%q) = %s %q paren=%v, want %+v",
				i, r.Tag.Reference, r.Outcome, r.Name, r.HasParen, w)
		}
		if (r.Outcome == Found) != (r.Provider != nil) {
			t.Errorf("resolution %d: provider set only when found", i)
		}
	}
}

func TestResolveDoesNotCrossClasses(t *testing.T) {
	res := resolveSource(t, `<?php
class first_test {
    /**
     * @dataProvider provider
     */
    public function test_one(): void {
    }
}

class second_test {
    /**
     * @dataProvider provider
     */
    public function test_two(): void {
    }

    public static function provider(): array {
        return [];
    }
}
`)
	if len(res) != 2 {
		t.Fatalf("got %d resolutions", len(res))
	}
	if res[0].Outcome != NotFound {
		t.Fatalf("first_test sees %s", res[0].Outcome)
	}
	if res[1].Outcome != Found || res[1].Provider.Name != "provider" {
		t.Fatalf("second_test resolution = %s", res[1].Outcome)
	}
}

func TestOutcomeString(t *testing.T) {
	for o, s := range map[Outcome]string{Found: "found", NotFound: "not-found", Malformed: "malformed", Skipped: "skipped"} {
		if o.String() != s {
			t.Errorf("%d.String() = %q", o, o.String())
		}
	}
}
