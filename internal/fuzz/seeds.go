package fuzztests

import (
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10

func addCorpusSeeds(f *testing.F) {
	addFixtureSeeds(f)
	f.Add([]byte{})
	f.Add([]byte("<?php\n"))
	f.Add([]byte("<?php class a_test { /** @dataProvider p */ public function test_a() {} public static function p(): array { return []; } }\n"))
}

// addFixtureSeeds adds the analysis fixtures, broken ones included.
func addFixtureSeeds(f *testing.F) {
	paths, err := filepath.Glob(filepath.Join("..", "analysis", "testdata", "*.php"))
	if err != nil {
		return
	}
	for _, path := range paths {
		// #nosec G304 -- path comes from the repository testdata glob
		src, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		f.Add(clampSeed(src))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
