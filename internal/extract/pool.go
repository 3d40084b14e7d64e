package extract

import (
	"context"
	"sync"

	"github.com/phrazzld/scry-cards/internal/domain"
)

// FileResult is the outcome of extracting one file.
type FileResult struct {
	Path  string
	Cards []domain.Card
	Err   error
}

// FromFiles extracts every file using a pool of opts.Workers goroutines.
// Results come back in the order of files, so the output is the same as
// extracting the files one after another. Files not started before ctx is
// cancelled report ctx.Err().
func FromFiles(ctx context.Context, files []string, opts Options) []FileResult {
	results := make([]FileResult, len(files))
	if len(files) == 0 {
		return results
	}

	workerCount := opts.Workers
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(files) {
		workerCount = len(files)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				cards, err := FromFile(files[i], opts)
				results[i] = FileResult{Path: files[i], Cards: cards, Err: err}
			}
		}()
	}

	next := 0
dispatch:
	for ; next < len(files); next++ {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- next:
		}
	}
	close(jobs)
	wg.Wait()

	for i := next; i < len(files); i++ {
		results[i] = FileResult{Path: files[i], Err: ctx.Err()}
	}

	return results
}
