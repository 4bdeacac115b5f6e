package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zapio"
)

const (
	readyPollInterval = 250 * time.Millisecond
	readyTimeout      = 30 * time.Second
	stopTimeout       = 10 * time.Second
)

// Server is a handle to the launched backend process. It is returned by
// Start and must be stopped with Stop when the gateway shuts down.
type Server struct {
	cmd    *exec.Cmd
	url    string
	logger *zap.Logger
	done   chan error
	out    *zapio.Writer
}

// Start locates the backend artifact, launches it configured for the
// loopback address in opts and waits until its health endpoint answers.
func Start(ctx context.Context, opts Options, logger *zap.Logger) (*Server, error) {
	path, err := Locate(opts.Backend.LibDir)
	if err != nil {
		return nil, err
	}

	out := &zapio.Writer{Log: logger.Named("backend"), Level: zapcore.InfoLevel}

	cmd := exec.Command(path)
	cmd.Env = append(os.Environ(), processEnv(opts)...)
	cmd.Stdout = out
	cmd.Stderr = out

	if err := cmd.Start(); err != nil {
		out.Close()
		return nil, fmt.Errorf("start backend %s: %w", path, err)
	}

	s := &Server{
		cmd:    cmd,
		url:    opts.Backend.URL(),
		logger: logger,
		done:   make(chan error, 1),
		out:    out,
	}
	go func() { s.done <- cmd.Wait() }()

	if err := s.waitReady(ctx); err != nil {
		_ = s.Stop(context.Background())
		return nil, err
	}

	logger.Info("Backend started",
		zap.String("artifact", path),
		zap.String("url", s.url),
		zap.Int("pid", cmd.Process.Pid),
	)
	return s, nil
}

// URL returns the backend base URL.
func (s *Server) URL() string {
	return s.url
}

// waitReady polls the backend health endpoint until it answers, the process
// exits, or the deadline passes.
func (s *Server) waitReady(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()

	client := &http.Client{Timeout: readyPollInterval}
	target := s.url + "/health"

	ticker := time.NewTicker(readyPollInterval)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return err
		}
		if resp, err := client.Do(req); err == nil {
			resp.Body.Close()
			if resp.StatusCode < http.StatusInternalServerError {
				return nil
			}
		}

		select {
		case err := <-s.done:
			// Put the exit result back so Stop still observes it.
			s.done <- err
			if err == nil {
				return errors.New("backend exited before becoming ready")
			}
			return fmt.Errorf("backend exited before becoming ready: %w", err)
		case <-ctx.Done():
			return fmt.Errorf("backend not ready at %s: %w", target, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Stop terminates the backend process, escalating from SIGTERM to SIGKILL
// when it does not exit within the stop timeout.
func (s *Server) Stop(ctx context.Context) error {
	defer s.out.Close()

	if s.cmd.Process == nil {
		return nil
	}

	if err := s.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		// Already gone or signalling unsupported on this platform.
		_ = s.cmd.Process.Kill()
	}

	timer := time.NewTimer(stopTimeout)
	defer timer.Stop()

	select {
	case err := <-s.done:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Termination by our own signal is the expected path.
			s.logger.Debug("Backend exited", zap.String("state", exitErr.ProcessState.String()))
			return nil
		}
		return err
	case <-timer.C:
		s.logger.Warn("Backend did not exit in time, killing")
		_ = s.cmd.Process.Kill()
		return <-s.done
	case <-ctx.Done():
		_ = s.cmd.Process.Kill()
		return ctx.Err()
	}
}

// processEnv renders the launch options as MANATAN_* environment variables,
// the configuration contract the backend artifact reads. Host and port are
// rebound to the loopback backend address.
func processEnv(opts Options) []string {
	env := []string{
		"MANATAN_HOST=" + opts.Backend.Host,
		"MANATAN_PORT=" + strconv.Itoa(opts.Backend.Port),
		"MANATAN_JAVA_URL=" + opts.Runtime.JavaURL,
		"MANATAN_WEBVIEW_ENABLED=" + strconv.FormatBool(opts.Runtime.WebviewEnabled),
		"MANATAN_DB_PATH=" + opts.Runtime.DBPath,
		"MANATAN_DOWNLOADS_PATH=" + opts.Runtime.DownloadsPath,
		"MANATAN_LOCAL_MANGA_PATH=" + opts.Runtime.LocalMangaPath,
		"MANATAN_LOCAL_ANIME_PATH=" + opts.Runtime.LocalAnimePath,
		"MANATAN_AIDOKU_INDEX=" + opts.Aidoku.Index,
		"MANATAN_AIDOKU_ENABLED=" + strconv.FormatBool(opts.Aidoku.Enabled),
		"MANATAN_AIDOKU_CACHE=" + opts.Aidoku.Cache,
		"MANATAN_TRACKER_REMOTE_SEARCH=" + strconv.FormatBool(opts.Tracker.RemoteSearch),
		"MANATAN_TRACKER_SEARCH_TTL_SECONDS=" + strconv.FormatInt(opts.Tracker.SearchTTLSeconds, 10),
	}
	if opts.Runtime.MigratePath != "" {
		env = append(env, "MANATAN_MIGRATE_PATH="+opts.Runtime.MigratePath)
	}
	return env
}
