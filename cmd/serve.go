package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serverPort int

const debounceDuration = 500 * time.Millisecond

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the exported bundles locally and rebuilds on changes",
	Long: `The serve command performs an initial build, then serves the output
directory over HTTP. It watches the content directory, the static directory,
the UI table and the changelog file, and rebuilds after changes settle.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("performing initial build")
		if err := runBuildProcess(); err != nil {
			return fmt.Errorf("initial build failed, fix the issues and try again: %w", err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create file watcher: %w", err)
		}
		defer watcher.Close()

		ws := newWatchSet()
		go watchAndRebuild(watcher, ws, runBuildProcess)
		ws.add(watcher)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, fmt.Sprintf(":%d", serverPort), appConfig.OutputDir)
	},
}

// watchSet is what serve watches: content and static trees, and single
// files such as the UI table and the changelog. The output directory is
// never watched since every rebuild rewrites it.
type watchSet struct {
	trees  []string
	files  []string
	output string
}

func newWatchSet() watchSet {
	ws := watchSet{output: filepath.Clean(appConfig.OutputDir)}
	for _, dir := range []string{appConfig.ContentDir, appConfig.StaticDir} {
		if dir != "" {
			ws.trees = append(ws.trees, filepath.Clean(dir))
		}
	}
	for _, file := range []string{appConfig.UITable, appConfig.ChangelogFile} {
		if file != "" {
			ws.files = append(ws.files, filepath.Clean(file))
		}
	}
	return ws
}

// relevant reports whether a change at path should trigger a rebuild.
func (ws watchSet) relevant(path string) bool {
	path = filepath.Clean(path)
	if within(path, ws.output) {
		return false
	}
	for _, f := range ws.files {
		if path == f {
			return true
		}
	}
	for _, t := range ws.trees {
		if within(path, t) {
			return true
		}
	}
	return false
}

// add registers the trees recursively and the parent directory of each
// file on its own. Files are watched through their directory because
// editors often replace a file instead of writing it.
func (ws watchSet) add(watcher *fsnotify.Watcher) {
	for _, root := range ws.trees {
		addWatches(watcher, root, ws.output)
	}
	seen := make(map[string]bool)
	for _, f := range ws.files {
		dir := filepath.Dir(f)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := watcher.Add(dir); err != nil {
			logger.Warn("failed to watch directory", zap.String("dir", dir), zap.Error(err))
		}
	}
}

// within reports whether path is dir or below it.
func within(path, dir string) bool {
	if dir == "" {
		return false
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func watchAndRebuild(watcher *fsnotify.Watcher, ws watchSet, rebuild func() error) {
	var buildTimer *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !ws.relevant(event.Name) {
				continue
			}
			logger.Info("change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))

			// new subdirectories are not watched automatically
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := watcher.Add(event.Name); err != nil {
					logger.Warn("failed to watch new directory", zap.String("dir", event.Name), zap.Error(err))
				}
			}

			if buildTimer != nil {
				buildTimer.Stop()
			}
			buildTimer = time.AfterFunc(debounceDuration, func() {
				logger.Info("rebuilding after changes")
				if err := rebuild(); err != nil {
					logger.Error("rebuild failed", zap.Error(err))
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// addWatches watches root and every directory below it except skip.
func addWatches(watcher *fsnotify.Watcher, root, skip string) {
	if _, err := os.Stat(root); errors.Is(err, os.ErrNotExist) {
		logger.Info("directory not found, not watching", zap.String("dir", root))
		return
	}
	logger.Debug("watching directory tree", zap.String("dir", root))
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			logger.Warn("error walking directory", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if within(path, skip) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			logger.Warn("failed to watch directory", zap.String("dir", path), zap.Error(err))
		}
		return nil
	})
	if err != nil {
		logger.Warn("initial walk failed", zap.String("dir", root), zap.Error(err))
	}
}

// noCacheHandler serves dir with caching disabled. Directories other than
// the root are only served when they hold an index.html.
func noCacheHandler(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") && r.URL.Path != "/" {
			if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(r.URL.Path), "index.html")); err != nil {
				http.NotFound(w, r)
				return
			}
		}
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		files.ServeHTTP(w, r)
	})
}

func serve(ctx context.Context, addr, dir string) error {
	srv := &http.Server{Addr: addr, Handler: noCacheHandler(dir), ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() {
		logger.Info("serving output directory", zap.String("dir", dir), zap.String("url", "http://localhost"+addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("start HTTP server: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 4321, "port to serve on")
	rootCmd.AddCommand(serveCmd)
}
