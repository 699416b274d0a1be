package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"provcheck/internal/analysis"
	"provcheck/internal/config"
	"provcheck/internal/diag"
	"provcheck/internal/observ"
	"provcheck/internal/source"
	"provcheck/internal/syntax"
)

// Options configures a check run.
type Options struct {
	Rules          config.Rules
	Jobs           int // <= 0 means GOMAXPROCS
	MaxDiagnostics int // cap of Result.Bag, <= 0 means unlimited
	Exclude        []string
	Cache          *DiskCache
	Progress       ProgressSink
	Timer          *observ.Timer
	Log            logrus.FieldLogger
	// KeepAnalysis keeps the full analysis.Result of every analysed file.
	// Cached files never have one.
	KeepAnalysis bool
}

// FileFailure is a file that produced no diagnostics because it could not
// be read or tokenized. It is not a diagnostic.
type FileFailure struct {
	Path string
	Err  error
}

func (f FileFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.Path, f.Err)
}

func (f FileFailure) Unwrap() error { return f.Err }

// FileResult is the outcome for one file.
type FileResult struct {
	Path        string
	FileID      source.FileID
	Diagnostics []diag.Diagnostic
	Analysis    *analysis.Result
	Cached      bool
	Failure     error
}

// Result is the outcome of a run. Files and Failures are sorted by path;
// Bag holds the diagnostics of all files in the same order, capped by
// Options.MaxDiagnostics.
type Result struct {
	FileSet  *source.FileSet
	Files    []FileResult
	Failures []FileFailure
	Bag      *diag.Bag
	Stats    Stats
}

// Stats counts what a run did.
type Stats struct {
	Files      int
	Analyzed   int64
	CacheHits  int64
	CacheFails int64
}

// HasErrors reports whether any error diagnostic or file failure exists.
func (r *Result) HasErrors() bool {
	return len(r.Failures) > 0 || r.Bag.HasErrors()
}

// AllDiagnostics returns every diagnostic of every file, ignoring the Bag cap.
func (r *Result) AllDiagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, f := range r.Files {
		out = append(out, f.Diagnostics...)
	}
	return out
}

func logger(opts Options) logrus.FieldLogger {
	if opts.Log != nil {
		return opts.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Check analyses target, which is either a file or a directory.
func Check(ctx context.Context, target string, opts Options) (*Result, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return CheckDir(ctx, target, opts)
	}
	return CheckFiles(ctx, filepath.Dir(target), []string{target}, opts)
}

// CheckDir analyses every *.php file under dir that is not excluded.
func CheckDir(ctx context.Context, dir string, opts Options) (*Result, error) {
	stopDiscover := opts.Timer.Start("discover")
	files, err := ListPHPFiles(dir, opts.Exclude)
	stopDiscover(fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return nil, err
	}
	return CheckFiles(ctx, dir, files, opts)
}

// CheckFiles analyses paths in parallel. Paths are loaded up front so the
// FileSet is only read by the workers.
func CheckFiles(ctx context.Context, base string, paths []string, opts Options) (*Result, error) {
	log := logger(opts)
	paths = append([]string(nil), paths...)
	sort.Strings(paths)

	fileSet := source.NewFileSetWithBase(base)
	res := &Result{
		FileSet: fileSet,
		Files:   make([]FileResult, len(paths)),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
		Stats:   Stats{Files: len(paths)},
	}

	stopLoad := opts.Timer.Start("load")
	loaded := make([]bool, len(paths))
	for i, path := range paths {
		res.Files[i].Path = path
		emit(opts.Progress, path, StageLoad, StatusQueued, nil, 0)
		id, err := fileSet.Load(path)
		if err != nil {
			res.Files[i].Failure = err
			emit(opts.Progress, path, StageLoad, StatusError, err, 0)
			log.WithField("file", path).WithError(err).Warn("cannot read file")
			continue
		}
		res.Files[i].FileID = id
		loaded[i] = true
	}
	stopLoad("")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	digest := opts.Rules.Digest()

	var analyzed, hits, cacheFails atomic.Int64
	stopRun := opts.Timer.Start("check")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(min(jobs, len(paths)), 1))
	for i := range paths {
		if !loaded[i] {
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			fr := &res.Files[i]
			file := fileSet.Get(fr.FileID)
			w := worker{opts: opts, log: log, digest: digest}
			w.check(file, fr)
			if fr.Cached {
				hits.Add(1)
			} else {
				analyzed.Add(1)
			}
			if w.cacheFailed {
				cacheFails.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	stopRun(fmt.Sprintf("%d analysed, %d cached", analyzed.Load(), hits.Load()))
	res.Stats.Analyzed, res.Stats.CacheHits, res.Stats.CacheFails = analyzed.Load(), hits.Load(), cacheFails.Load()

	for _, fr := range res.Files {
		if fr.Failure != nil {
			res.Failures = append(res.Failures, FileFailure{Path: fr.Path, Err: fr.Failure})
			continue
		}
		for _, d := range fr.Diagnostics {
			if !res.Bag.Add(d) {
				break
			}
		}
	}
	return res, nil
}

type worker struct {
	opts        Options
	log         logrus.FieldLogger
	digest      string
	cacheFailed bool
}

func (w *worker) check(file *source.File, fr *FileResult) {
	start := time.Now()
	fields := logrus.Fields{"file": fr.Path}

	var key Digest
	if w.opts.Cache != nil {
		key = cacheKey(file.Hash, w.digest)
		emit(w.opts.Progress, fr.Path, StageCache, StatusWorking, nil, 0)
		var payload DiskPayload
		ok, err := w.opts.Cache.Get(key, &payload)
		switch {
		case err != nil:
			w.cacheFailed = true
			w.log.WithFields(fields).WithError(err).Warn("cache read failed")
		case ok:
			fr.Cached = true
			emit(w.opts.Progress, fr.Path, StageCache, StatusDone, nil, 0)
			if payload.Failure != nil {
				fr.Failure = payloadToFailure(&payload, file)
			} else {
				fr.Diagnostics = payloadToDiagnostics(&payload, file.ID)
			}
			w.finish(fr, fields, start)
			return
		}
	}

	emit(w.opts.Progress, fr.Path, StageAnalyze, StatusWorking, nil, 0)
	ares, err := analysis.Run(file, w.opts.Rules)
	w.opts.Timer.Add("analyze", time.Since(start))

	var payload *DiskPayload
	if err != nil {
		fr.Failure = err
		var se *syntax.Error
		if errors.As(err, &se) {
			payload = failureToPayload(fr.Path, w.digest, se)
		}
	} else {
		fr.Diagnostics = ares.Diagnostics
		if w.opts.KeepAnalysis {
			fr.Analysis = ares
		}
		payload = diagnosticsToPayload(fr.Path, w.digest, ares.Diagnostics)
	}

	if w.opts.Cache != nil && payload != nil {
		if err := w.opts.Cache.Put(key, payload); err != nil {
			w.cacheFailed = true
			w.log.WithFields(fields).WithError(err).Warn("cache write failed")
		}
	}
	w.finish(fr, fields, start)
}

func (w *worker) finish(fr *FileResult, fields logrus.Fields, start time.Time) {
	elapsed := time.Since(start)
	entry := w.log.WithFields(fields).WithFields(logrus.Fields{
		"diagnostics": len(fr.Diagnostics),
		"cached":      fr.Cached,
		"duration":    elapsed,
	})
	if fr.Failure != nil {
		entry.WithError(fr.Failure).Debug("file failed")
		emit(w.opts.Progress, fr.Path, StageAnalyze, StatusError, fr.Failure, elapsed)
		return
	}
	entry.Debug("file checked")
	emit(w.opts.Progress, fr.Path, StageAnalyze, StatusDone, nil, elapsed)
}
