// Package fileproc provides bounded-concurrency file processing. Per-file
// work fans out on a conc pool; results fan in under a single mutex, which
// is the only synchronization point of a run.
package fileproc

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"
)

// DefaultWorkerMultiplier is applied to NumCPU for the worker count. 2x
// suits the mixed I/O and string-scanning workload.
const DefaultWorkerMultiplier = 2

// ProgressFunc is called after each file is processed.
type ProgressFunc func()

// FileError records a per-file failure. Failures never abort the run; the
// caller decides what a failed file means (here: protect it).
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Map processes files in parallel and returns results in arbitrary order
// together with the per-file errors. fn runs inside a recover boundary so a
// misbehaving front-end cannot take the pool down.
func Map[T any](files []string, fn func(path string) (T, error)) ([]T, []FileError) {
	return MapN(files, 0, fn, nil)
}

// MapWithProgress is Map with a progress callback.
func MapWithProgress[T any](files []string, fn func(path string) (T, error), onProgress ProgressFunc) ([]T, []FileError) {
	return MapN(files, 0, fn, onProgress)
}

// MapN processes files with a configurable worker count. maxWorkers <= 0
// defaults to 2x NumCPU.
func MapN[T any](files []string, maxWorkers int, fn func(path string) (T, error), onProgress ProgressFunc) ([]T, []FileError) {
	if len(files) == 0 {
		return nil, nil
	}

	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU() * DefaultWorkerMultiplier
	}

	results := make([]T, 0, len(files))
	var errs []FileError
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(maxWorkers)
	for _, path := range files {
		p.Go(func() {
			result, err := safeCall(fn, path)

			if onProgress != nil {
				onProgress()
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, FileError{Path: path, Err: err})
				return
			}
			results = append(results, result)
		})
	}
	p.Wait()

	return results, errs
}

func safeCall[T any](fn func(string) (T, error), path string) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(path)
}
