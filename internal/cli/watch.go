package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var watchDebounce time.Duration

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <document>",
	Short: "Re-render a document's marker overlay on every change",
	Long: `Watch keeps the marker listing of a document live: whenever the document
or the relevance table changes on disk, the decoration set is recomputed
from scratch and printed again. Editors save in bursts, so re-renders are
debounced.

Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 200*time.Millisecond, "minimum interval between re-renders")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fs := appFs()
	doc := args[0]
	st := newStore(fs, cfg)

	render := func() {
		data, err := afero.ReadFile(fs, doc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read document: %v\n", err)
			return
		}
		fmt.Printf("── %s @ %s ──\n", doc, time.Now().Format("15:04:05"))
		if err := renderMarkers(os.Stdout, string(data), st, 0, -1); err != nil {
			fmt.Fprintf(os.Stderr, "render: %v\n", err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the parent directories: editors typically replace files on save,
	// which drops a watch placed on the file itself.
	watched := map[string]bool{
		filepath.Clean(doc):                     true,
		filepath.Clean(cfg.Paths.RelevanceFile): true,
	}
	dirs := map[string]bool{}
	for path := range watched {
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter := rate.NewLimiter(rate.Every(watchDebounce), 1)
	render()

	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(os.Stderr, "\nStopped.")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if err := limiter.Wait(ctx); err != nil {
				return nil
			}
			render()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}
