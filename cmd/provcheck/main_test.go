package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"provcheck/internal/diagfmt"
)

const warningOnly = `<?php
class a_test {
    /**
     * @dataProvider provider
     */
    public function test_a(): void {
    }

    public function provider(): array {
        return [];
    }
}
`

const errorOnly = `<?php
class b_test {
    /**
     * @dataProvider nothing
     */
    public function test_b(): void {
    }
}
`

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCheckShortOutput(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a_test.php": warningOnly, "b_test.php": errorOnly})
	code, out, errOut := run(t, "check", "--format", "short", "--path-mode", "relative", dir)
	if code != 1 {
		t.Fatalf("exit code = %d, stderr: %s", code, errOut)
	}
	want := `warning PRV2004 a_test.php:9 Data provider method "provider" will need to be converted to static in future. [fix: full]
error TAG1004 b_test.php:4 Data provider method "nothing" not found.
`
	if out != want {
		t.Fatalf("stdout:\n%s\nwant:\n%s", out, want)
	}
}

func TestCheckExitCodes(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a_test.php": warningOnly})
	target := filepath.Join(dir, "a_test.php")

	if code, _, errOut := run(t, "check", "--format", "short", target); code != 0 {
		t.Fatalf("warnings alone must exit 0, got %d: %s", code, errOut)
	}
	code, out, _ := run(t, "check", "--format", "short", "--warnings-as-errors", target)
	if code != 1 || !strings.HasPrefix(out, "error PRV2004") {
		t.Fatalf("code = %d, out = %q", code, out)
	}
	code, out, _ = run(t, "check", "--format", "short", "--no-warnings", target)
	if code != 0 || out != "" {
		t.Fatalf("code = %d, out = %q", code, out)
	}
	if code, _, errOut := run(t, "check", "--no-warnings", "--warnings-as-errors", target); code != 2 || !strings.Contains(errOut, "cannot be used together") {
		t.Fatalf("code = %d, stderr = %q", code, errOut)
	}
	if code, _, _ := run(t, "check", "--format", "xml", target); code != 2 {
		t.Fatalf("unknown format must be a usage error, got %d", code)
	}
}

func TestCheckOutputLimitKeepsErrors(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a_test.php": warningOnly, "b_test.php": errorOnly})

	code, out, _ := run(t, "check", "--format", "short", "--max-diagnostics", "1", dir)
	if code != 1 {
		t.Fatalf("an error past the limit must still exit 1, got %d", code)
	}
	if !strings.HasPrefix(out, "warning PRV2004") || strings.Count(out, "\n") != 1 {
		t.Fatalf("out = %q", out)
	}

	code, out, _ = run(t, "check", "--format", "short", "--max-diagnostics", "1", "--no-warnings", dir)
	if code != 1 || !strings.HasPrefix(out, "error TAG1004") {
		t.Fatalf("code = %d, out = %q", code, out)
	}

	code, out, errOut := run(t, "check", "--color", "off", "--max-diagnostics", "1", dir)
	if code != 1 || strings.Contains(out, "TAG1004") {
		t.Fatalf("code = %d, out = %q", code, out)
	}
	if !strings.Contains(errOut, "1 error, 1 warning in 2 files (output limited to 1)") {
		t.Fatalf("stderr:\n%s", errOut)
	}
}

func TestCheckPrettySummary(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a_test.php": warningOnly})
	code, out, errOut := run(t, "check", "--color", "off", dir)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out, "PRV2004") || !strings.Contains(out, "public function provider(): array {") {
		t.Fatalf("stdout:\n%s", out)
	}
	if !strings.Contains(errOut, "0 errors, 1 warning in 1 file") {
		t.Fatalf("stderr:\n%s", errOut)
	}

	_, _, quiet := run(t, "check", "--quiet", dir)
	if strings.Contains(quiet, "warning in") {
		t.Fatalf("--quiet must hide the summary: %q", quiet)
	}
}

func TestCheckJSONIncludesFailures(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a_test.php":      warningOnly,
		"broken_test.php": "<?php\nclass broken_test {\n",
	})
	code, out, _ := run(t, "check", "--format", "json", "--suggest", "--path-mode", "basename", dir)
	if code != 1 {
		t.Fatalf("a failure must exit 1, got %d", code)
	}
	var got diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if got.Count != 1 || got.Diagnostics[0].Code != "PRV2004" || len(got.Diagnostics[0].Fixes) != 1 {
		t.Fatalf("diagnostics = %+v", got.Diagnostics)
	}
	if len(got.Failures) != 1 || got.Failures[0].File != "broken_test.php" {
		t.Fatalf("failures = %+v", got.Failures)
	}
}

func TestCheckSarif(t *testing.T) {
	dir := writeFiles(t, map[string]string{"b_test.php": errorOnly})
	code, out, _ := run(t, "check", "--format", "sarif", dir)
	if code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid sarif: %v", err)
	}
	if doc["version"] != "2.1.0" {
		t.Fatalf("version = %v", doc["version"])
	}
}

func TestConfigFile(t *testing.T) {
	src := strings.ReplaceAll(errorOnly, "test_b", "check_b")
	dir := writeFiles(t, map[string]string{
		"b_test.php":     src,
		"provcheck.toml": "[rules]\ntest_prefix = \"check_\"\n\n[check]\nformat = \"short\"\n",
	})
	code, out, _ := run(t, "check", dir)
	if code != 1 || !strings.Contains(out, "error TAG1004") {
		t.Fatalf("config prefix not applied: code = %d, out = %q", code, out)
	}

	code, out, _ = run(t, "check", "--test-prefix", "test_", dir)
	if code != 0 || out != "" {
		t.Fatalf("flag must override the file: code = %d, out = %q", code, out)
	}

	bad := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(bad, []byte("[rules]\ntypo = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	code, _, errOut := run(t, "check", "--config", bad, dir)
	if code != 2 || !strings.Contains(errOut, "unknown keys: rules.typo") {
		t.Fatalf("code = %d, stderr = %q", code, errOut)
	}
}

func TestCheckCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := writeFiles(t, map[string]string{"a_test.php": warningOnly})
	if code, _, _ := run(t, "check", "--cache", dir); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	_, _, errOut := run(t, "check", "--cache", dir)
	if !strings.Contains(errOut, "(1 cached)") {
		t.Fatalf("second run should hit the cache:\n%s", errOut)
	}
}

func TestFixCommand(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a_test.php": warningOnly})
	path := filepath.Join(dir, "a_test.php")

	code, out, _ := run(t, "fix", "--all", "--dry-run", dir)
	if code != 0 || !strings.Contains(out, "Would apply 1 fix(es):") {
		t.Fatalf("code = %d, out:\n%s", code, out)
	}
	content, _ := os.ReadFile(path)
	if string(content) != warningOnly {
		t.Fatal("--dry-run must not write")
	}

	code, out, _ = run(t, "fix", "--all", dir)
	if code != 0 || !strings.Contains(out, "Applied 1 fix(es):") {
		t.Fatalf("code = %d, out:\n%s", code, out)
	}
	content, _ = os.ReadFile(path)
	if !strings.Contains(string(content), "public static function provider(): array {") {
		t.Fatalf("file not fixed:\n%s", content)
	}

	_, out, _ = run(t, "fix", "--all", dir)
	if !strings.Contains(out, "No applicable fixes found.") {
		t.Fatalf("out:\n%s", out)
	}
}

func TestFixFlagConflicts(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a_test.php": warningOnly})
	if code, _, errOut := run(t, "fix", "--id", "x", dir); code != 2 || !strings.Contains(errOut, "single file") {
		t.Fatalf("code = %d, stderr = %q", code, errOut)
	}
	if code, _, _ := run(t, "fix", "--all", "--once", dir); code != 2 {
		t.Fatalf("code = %d", code)
	}
}

func TestOutlineAndTokenize(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a_test.php": warningOnly})
	path := filepath.Join(dir, "a_test.php")

	code, out, _ := run(t, "outline", "--format", "json", path)
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	var classes []diagfmt.ClassOutline
	if err := json.Unmarshal([]byte(out), &classes); err != nil {
		t.Fatal(err)
	}
	if len(classes) != 1 || len(classes[0].Methods) != 2 || len(classes[0].Tags) != 1 || classes[0].Tags[0].Outcome != "found" {
		t.Fatalf("outline = %+v", classes)
	}

	code, out, _ = run(t, "tokenize", path)
	if code != 0 || !strings.Contains(out, "KwClass") {
		t.Fatalf("code = %d, out:\n%s", code, out)
	}
}

func TestVersionCommand(t *testing.T) {
	code, out, _ := run(t, "version", "--format", "json")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatal(err)
	}
	if payload["tool"] != "provcheck" || payload["version"] == "" {
		t.Fatalf("payload = %v", payload)
	}
}

func TestGlobalFlagValidation(t *testing.T) {
	tests := [][]string{
		{"--color", "sometimes", "version"},
		{"--log-level", "loud", "version"},
		{"--log-format", "xml", "version"},
	}
	for _, args := range tests {
		if code, _, _ := run(t, args...); code != 2 {
			t.Errorf("%v: exit code = %d", args, code)
		}
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Error("expected an error")
	}
	if shouldUseTUI(uiModeAuto, &bytes.Buffer{}) {
		t.Error("a buffer is never a terminal")
	}
}

func TestProfilingFlags(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a_test.php": warningOnly})
	mem := filepath.Join(t.TempDir(), "mem.out")
	if code, _, errOut := run(t, "--mem-profile", mem, "check", "--format", "short", "--timings", dir); code != 0 || !strings.Contains(errOut, "timings:") {
		t.Fatalf("code = %d, stderr:\n%s", code, errOut)
	}
	if info, err := os.Stat(mem); err != nil || info.Size() == 0 {
		t.Fatalf("heap profile not written: %v", err)
	}
}
