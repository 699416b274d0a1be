package config

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultTagKeyword = "@dataProvider"
	DefaultTestPrefix = "test_"
	DefaultTestTag    = "@test"
)

// DefaultArrayTypes and DefaultIterableTypes are matched case-insensitively
// against a provider's declared return type.
var (
	DefaultArrayTypes    = []string{"array"}
	DefaultIterableTypes = []string{"iterable", "Generator", `\Generator`}
)

// Rules holds the parameters of the data provider rule. The zero value is not
// usable; start from Default.
type Rules struct {
	TagKeyword    string   `toml:"tag"`
	TestPrefix    string   `toml:"test_prefix"`
	TestTag       string   `toml:"test_tag"`
	ArrayTypes    []string `toml:"array_types"`
	IterableTypes []string `toml:"iterable_types"`
}

func Default() Rules {
	return Rules{
		TagKeyword:    DefaultTagKeyword,
		TestPrefix:    DefaultTestPrefix,
		TestTag:       DefaultTestTag,
		ArrayTypes:    append([]string(nil), DefaultArrayTypes...),
		IterableTypes: append([]string(nil), DefaultIterableTypes...),
	}
}

var errEmptyTag = errors.New("tag keyword must not be empty")

// Validate checks that every field can be used for matching.
func (r Rules) Validate() error {
	tag := strings.TrimSpace(r.TagKeyword)
	if tag == "" || tag == "@" {
		return errEmptyTag
	}
	if !strings.HasPrefix(tag, "@") {
		return fmt.Errorf("tag keyword %q must start with '@'", r.TagKeyword)
	}
	if strings.ContainsAny(tag, " \t\r\n") {
		return fmt.Errorf("tag keyword %q must not contain whitespace", r.TagKeyword)
	}
	if r.TestTag != "" && !strings.HasPrefix(r.TestTag, "@") {
		return fmt.Errorf("test tag %q must start with '@'", r.TestTag)
	}
	if strings.TrimSpace(r.TestPrefix) == "" {
		return errors.New("test prefix must not be empty")
	}
	if len(r.ArrayTypes)+len(r.IterableTypes) == 0 {
		return errors.New("at least one accepted return type is required")
	}
	return nil
}

// Digest is a stable fingerprint of r, used in cache keys.
func (r Rules) Digest() string {
	h := sha256.New()
	write := func(parts ...string) {
		for _, p := range parts {
			h.Write([]byte(p))
			h.Write([]byte{0})
		}
		h.Write([]byte{1})
	}
	write(r.TagKeyword, r.TestPrefix, r.TestTag)
	write(r.ArrayTypes...)
	write(r.IterableTypes...)
	return hex.EncodeToString(h.Sum(nil))[:16]
}
