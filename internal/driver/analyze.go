package driver

import (
	"provcheck/internal/analysis"
	"provcheck/internal/config"
	"provcheck/internal/source"
)

// Analyze runs the full pipeline on one file and keeps every intermediate
// model. It bypasses the cache.
func Analyze(path string, rules config.Rules) (*source.FileSet, *analysis.Result, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, nil, err
	}
	res, err := analysis.Run(fs.Get(id), rules)
	if err != nil {
		return fs, nil, err
	}
	return fs, res, nil
}
