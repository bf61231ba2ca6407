package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/panjf2000/ants/v2"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-crawler-plugin/internal/adapters/driven/docfile"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/adapters/driven/docwatch"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Process descriptors as they appear in a directory",
	Long: `Watches a directory for JSON document descriptors and runs the crawler
plugin on each one as it is written. Updated descriptors are written to the
output directory under the same name. Failed documents are reported and
journalled, and watching continues.

Stops on interrupt.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

// Flags for the watch command.
var (
	watchOutDir   string
	watchExisting bool
	watchPattern  string
	watchWorkers  int
)

func init() {
	watchCmd.Flags().StringVar(&watchOutDir, "out", "", "Directory for updated descriptors (required)")
	watchCmd.Flags().BoolVar(&watchExisting, "existing", false, "Process descriptors already in the directory first")
	watchCmd.Flags().StringVar(&watchPattern, "match", docwatch.DefaultPattern, "Pattern descriptor file names must match")
	watchCmd.Flags().IntVarP(&watchWorkers, "workers", "w", 1, "Number of descriptors processed concurrently")
	_ = watchCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	inDir := args[0]
	if sameDir(inDir, watchOutDir) {
		return fmt.Errorf("output directory must differ from %s", inDir)
	}

	watcher, err := docwatch.New(inDir, docwatch.WithPattern(watchPattern))
	if err != nil {
		return err
	}

	stop, err := startPlugin()
	if err != nil {
		return err
	}
	defer stop()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	workers, err := newWorkerPool(ctx, cmd, watchOutDir, watchWorkers)
	if err != nil {
		return err
	}
	defer workers.Release()

	if watchExisting {
		paths, err := watcher.Existing()
		if err != nil {
			return err
		}
		for _, path := range paths {
			if err := workers.Submit(path); err != nil {
				return err
			}
		}
	}

	paths, err := watcher.Watch(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s, writing to %s\n", inDir, watchOutDir)
	for path := range paths {
		if err := workers.Submit(path); err != nil {
			return err
		}
	}
	workers.Wait()
	cmd.Println("Stopped watching.")
	return nil
}

// workerPool processes descriptors on a bounded number of goroutines and
// serialises their output.
type workerPool struct {
	pool *ants.PoolWithFunc
	wg   sync.WaitGroup
	mu   sync.Mutex
}

func newWorkerPool(ctx context.Context, cmd *cobra.Command, outDir string, size int) (*workerPool, error) {
	if size <= 0 {
		return nil, fmt.Errorf("workers must be greater than 0, got %d", size)
	}

	wp := &workerPool{}
	pool, err := ants.NewPoolWithFunc(size, func(arg any) {
		defer wp.wg.Done()
		path, ok := arg.(string)
		if !ok {
			return
		}

		line, err := processFile(ctx, path, outDir)

		wp.mu.Lock()
		defer wp.mu.Unlock()
		if err != nil {
			cmd.PrintErrln(err)
			return
		}
		cmd.Println(line)
	})
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	wp.pool = pool
	return wp, nil
}

// Submit queues path, blocking while every worker is busy.
func (wp *workerPool) Submit(path string) error {
	wp.wg.Add(1)
	if err := wp.pool.Invoke(path); err != nil {
		wp.wg.Done()
		return fmt.Errorf("submit %s: %w", path, err)
	}
	return nil
}

// Wait blocks until every submitted descriptor is processed.
func (wp *workerPool) Wait() {
	wp.wg.Wait()
}

// Release waits for running work and frees the pool.
func (wp *workerPool) Release() {
	wp.Wait()
	wp.pool.Release()
}

// processFile runs the plugin on one descriptor and writes the result to
// outDir. It returns a one-line report of the outcome.
func processFile(ctx context.Context, path, outDir string) (string, error) {
	name := filepath.Base(path)

	doc, err := docfile.Load(path)
	if err != nil {
		return "", fmt.Errorf("skipping %s: %w", name, err)
	}

	entry, err := documentProcessor.Process(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed %s: %w", name, err)
	}

	outPath := filepath.Join(outDir, name)
	if err := docfile.Save(outPath, doc); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	logger.Debug("Wrote %s", outPath)
	return fmt.Sprintf("%s: %s", name, entry.Outcome), nil
}

func sameDir(a, b string) bool {
	if abs, err := filepath.Abs(a); err == nil {
		a = abs
	}
	if abs, err := filepath.Abs(b); err == nil {
		b = abs
	}
	return filepath.Clean(a) == filepath.Clean(b)
}
