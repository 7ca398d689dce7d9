package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/sunwei/blogsite/log"
	"github.com/sunwei/blogsite/sitelib"
	"golang.org/x/sync/errgroup"
)

const (
	rebuildDebounce = 300 * time.Millisecond
	shutdownTimeout = 5 * time.Second
)

type serveCmd struct {
	*commandeer

	bind  string
	port  int
	watch bool
}

func newServeCmd(c *commandeer) *cobra.Command {
	sc := &serveCmd{commandeer: c}

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		Short:   "Build the site and serve the publish dir",
		Long: `serve builds the site, then serves the publish dir over HTTP. With
--watch (the default) it rebuilds the site when a file below the content,
layouts, static or data dir changes, or when the config or .env file does.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return sc.serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&sc.bind, "bind", "127.0.0.1", "interface to which the server will bind")
	cmd.Flags().IntVarP(&sc.port, "port", "p", 1313, "port on which the server will listen")
	cmd.Flags().BoolVarP(&sc.watch, "watch", "w", true, "watch the filesystem for changes and rebuild")

	return cmd
}

func (sc *serveCmd) serve(ctx context.Context) error {
	cfg, err := sc.buildCfg()
	if err != nil {
		return err
	}

	s, err := sitelib.Build(ctx, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	publishDir := s.PublishDir()
	e := newServer(publishDir, sc.logger)
	addr := net.JoinHostPort(sc.bind, strconv.Itoa(sc.port))

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		fmt.Fprintf(sc.out, "Serving %s at http://%s/ (press Ctrl+C to stop)\n", publishDir, addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if sc.watch {
		g.Go(func() error {
			return sc.watchAndRebuild(ctx, cfg, s)
		})
	}

	return g.Wait()
}

func newServer(publishDir string, logger *log.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Infof("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Root:  publishDir,
		Index: "index.html",
	}))

	e.HTTPErrorHandler = notFoundPageHandler(publishDir, e.DefaultHTTPErrorHandler)

	return e
}

// notFoundPageHandler answers 404s with the site's 404.html, when there
// is one.
func notFoundPageHandler(publishDir string, next echo.HTTPErrorHandler) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var he *echo.HTTPError
		if c.Response().Committed || !errors.As(err, &he) || he.Code != http.StatusNotFound {
			next(err, c)
			return
		}

		b, rerr := os.ReadFile(filepath.Join(publishDir, "404.html"))
		if rerr != nil {
			next(err, c)
			return
		}

		if werr := c.HTMLBlob(http.StatusNotFound, b); werr != nil {
			c.Logger().Error(werr)
		}
	}
}

// watchAndRebuild runs a full build, debounced, for every relevant change
// until ctx is done.
func (sc *serveCmd) watchAndRebuild(ctx context.Context, cfg sitelib.BuildCfg, s *sitelib.Site) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	w := &siteWatcher{
		watcher:    watcher,
		publishDir: s.PublishDir(),
		logger:     sc.logger,
	}

	for _, dir := range sourceDirs(s) {
		w.addRecursive(dir)
	}
	// The config and .env files.
	if err := watcher.Add(cfg.WorkingDir); err != nil {
		return fmt.Errorf("watch %q: %w", cfg.WorkingDir, err)
	}

	var (
		timer   *time.Timer
		rebuild = make(chan struct{}, 1)
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			sc.logger.Warnf("watcher: %s", err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}

			sc.logger.Infof("change detected: %s %s", ev.Op, ev.Name)

			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					w.addRecursive(ev.Name)
				}
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(rebuildDebounce, func() {
				select {
				case rebuild <- struct{}{}:
				default:
				}
			})
		case <-rebuild:
			sc.logger.Reset()
			start := time.Now()
			rs, err := sitelib.Build(ctx, cfg)
			if err != nil {
				sc.logger.Errorf("rebuild failed: %s", err)
				continue
			}
			fmt.Fprintf(sc.out, "Rebuilt %d pages in %s\n", rs.Stats().Pages, time.Since(start).Round(time.Millisecond))
		}
	}
}

func sourceDirs(s *sitelib.Site) []string {
	sc := s.SiteConfig
	return []string{
		s.Fs.AbsPath(sc.ContentDir),
		s.Fs.AbsPath(sc.LayoutDir),
		s.Fs.AbsPath(sc.StaticDir),
		s.Fs.AbsPath(sc.DataDir),
	}
}

type siteWatcher struct {
	watcher    *fsnotify.Watcher
	publishDir string
	logger     *log.Logger
}

// addRecursive watches dir and all dirs below it. A missing dir is
// skipped.
func (w *siteWatcher) addRecursive(dir string) {
	osFs := afero.NewOsFs()
	if exists, _ := afero.DirExists(osFs, dir); !exists {
		return
	}

	err := afero.Walk(osFs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		return w.watcher.Add(path)
	})
	if err != nil {
		w.logger.Warnf("watch %q: %s", dir, err)
	}
}

func (w *siteWatcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}

	if ev.Name == w.publishDir || strings.HasPrefix(ev.Name, w.publishDir+string(filepath.Separator)) {
		return false
	}

	base := filepath.Base(ev.Name)
	if strings.HasSuffix(base, "~") {
		return false
	}
	if strings.HasPrefix(base, ".") && base != sitelib.DefaultEnvFile {
		return false
	}

	return true
}
