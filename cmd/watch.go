package cmd

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/bldgen/bldgen/pkg/action/generate"
)

func init() {
	rootCmd.AddCommand(newWatchCommand())
}

func newWatchCommand() *cobra.Command {
	var (
		dir      string
		debounce time.Duration
	)

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "regenerate builders on source changes",
		Long:  "Watch a directory tree and re-run generation whenever a Go source file changes.",
		RunE: func(c *cobra.Command, args []string) error {
			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return err
			}
			defer func() { _ = watcher.Close() }()

			err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
				if err != nil || !d.IsDir() {
					return err
				}
				if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				return watcher.Add(path)
			})
			if err != nil {
				return err
			}

			run := func() {
				res, err := generate.Run(generate.Options{
					Dir:         dir,
					ProcessWide: processWideOptions(),
					Templates:   templateOptions(),
				})
				if err != nil {
					slog.Error("generation failed", "error", err)
					return
				}
				slog.Info("generation finished", "files", len(res.Files), "failed", len(res.Errors))
			}
			run()

			timer := time.NewTimer(debounce)
			if !timer.Stop() {
				<-timer.C
			}
			for {
				select {
				case ev, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if !relevant(ev) {
						continue
					}
					slog.Debug("source change", "file", ev.Name, "op", ev.Op.String())
					timer.Reset(debounce)
				case <-timer.C:
					run()
				case werr, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					slog.Warn("watch error", "error", werr)
				}
			}
		},
	}
	watchCmd.Flags().StringVarP(&dir, "input-directory", "i", ".", "directory to watch")
	watchCmd.Flags().DurationVar(&debounce, "debounce", 300*time.Millisecond, "settle time before regenerating")
	return watchCmd
}

// relevant filters watch events down to edits of hand-written Go sources.
// Generated output is excluded so a run does not retrigger itself.
func relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Base(ev.Name)
	if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
		return false
	}
	return !strings.HasSuffix(name, "_builder_gen.go")
}
