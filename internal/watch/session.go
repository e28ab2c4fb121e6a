// Package watch implements the filesystem watch subsystem: a debounced,
// test-file-aware monitor that drives the Task Pipeline whenever a test
// class's failing targets change.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"jwright/internal/buildtool"
	"jwright/internal/logging"
	"jwright/internal/model"
	"jwright/internal/task"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// PipelineRunner is the subset of *task.Pipeline a watch session drives.
type PipelineRunner interface {
	Run(ctx context.Context, req task.Request) (model.PipelineResult, error)
}

// Callbacks are the session's observable events; any left nil is a no-op.
type Callbacks struct {
	OnTestDetected       func(target string)
	OnGenerationStarted  func(target string)
	OnGenerationComplete func(target string, result model.PipelineResult)
	OnError              func(err error)
}

// Request configures one watch session.
type Request struct {
	ProjectDir     string
	WatchPaths     []string
	Ignore         []string
	Debounce       time.Duration
	TestSuffix     string
	TestSourceRoot string
	MaxRetries     int
	Adapter        buildtool.Adapter
	Runner         PipelineRunner
	Callbacks      Callbacks
}

// Session owns one fsnotify watcher over exactly one directory: the first
// of WatchPaths if present, else ProjectDir.
type Session struct {
	req      Request
	dir      string
	watcher  *fsnotify.Watcher
	debounce *Debouncer
	detector TestFileDetector
	finder   FailingTestFinder

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	stopped sync.Once

	dispatches errgroup.Group
}

// Handle is the caller-facing lifecycle control returned by Start.
type Handle struct {
	session *Session
}

func (h *Handle) IsRunning() bool         { return h.session.isRunning() }
func (h *Handle) Stop()                   { h.session.stop() }
func (h *Handle) WatchedDirectory() string { return h.session.dir }

// Start begins a watch session per req and returns a Handle immediately;
// the monitor loop runs on its own goroutine.
func Start(req Request) (*Handle, error) {
	dir := req.ProjectDir
	if len(req.WatchPaths) > 0 {
		dir = req.WatchPaths[0]
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	s := &Session{
		req:      req,
		dir:      dir,
		watcher:  watcher,
		detector: TestFileDetector{TestSuffix: req.TestSuffix, TestSourceRoot: req.TestSourceRoot},
		finder:   FailingTestFinder{Adapter: req.Adapter},
		stopCh:   make(chan struct{}),
	}

	debounceDur := req.Debounce
	if debounceDur <= 0 {
		debounceDur = 500 * time.Millisecond
	}
	s.debounce = NewDebouncer(debounceDur, s.onSettled)

	if err := addRecursive(watcher, dir, req.Ignore); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	s.running = true
	s.debounce.Start()
	go s.monitor()

	logging.Watch("watch session started: dir=%s debounce=%v", dir, debounceDur)
	return &Handle{session: s}, nil
}

func (s *Session) isRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// stop is idempotent: it halts the monitor, cancels pending debounced
// emissions, and waits for already-dispatched pipeline runs to finish.
func (s *Session) stop() {
	s.stopped.Do(func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()

		close(s.stopCh)
		s.debounce.Stop()
		_ = s.dispatches.Wait()
		_ = s.watcher.Close()
		logging.Watch("watch session stopped: dir=%s", s.dir)
	})
}

func (s *Session) monitor() {
	for {
		select {
		case <-s.stopCh:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			s.handleEvent(event)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			logging.WatchError("fsnotify error: %v", err)
		}
	}
}

func (s *Session) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	if isIgnored(event.Name, s.req.Ignore) {
		return
	}
	s.debounce.Touch(event.Name)
}

// onSettled is the debouncer's emit callback: the change handler described
// in spec §4.10 step 3 onward. It runs the rest of the pipeline on its own
// tracked goroutine so Stop() can wait for it without forcing cancellation.
func (s *Session) onSettled(path string) {
	s.dispatches.Go(func() error {
		s.dispatch(path)
		return nil
	})
}

func (s *Session) dispatch(path string) {
	if !s.detector.IsTestFile(path) {
		return
	}
	className := s.detector.ClassName(path)

	targets, err := s.finder.Find(s.req.ProjectDir, className)
	if err != nil {
		s.onError(err)
		return
	}

	for _, target := range targets {
		class, method := splitTarget(target)
		s.onTestDetected(target)
		s.onGenerationStarted(target)

		result, err := s.req.Runner.Run(context.Background(), task.Request{
			ProjectDir:     s.req.ProjectDir,
			TestClass:      class,
			TestMethod:     method,
			TestSourcePath: path,
			MaxRetries:     s.req.MaxRetries,
		})
		if err != nil {
			s.onError(err)
			continue
		}
		s.onGenerationComplete(target, result)
	}
}

func (s *Session) onTestDetected(target string) {
	if s.req.Callbacks.OnTestDetected != nil {
		s.req.Callbacks.OnTestDetected(target)
	}
}

func (s *Session) onGenerationStarted(target string) {
	if s.req.Callbacks.OnGenerationStarted != nil {
		s.req.Callbacks.OnGenerationStarted(target)
	}
}

func (s *Session) onGenerationComplete(target string, result model.PipelineResult) {
	if s.req.Callbacks.OnGenerationComplete != nil {
		s.req.Callbacks.OnGenerationComplete(target, result)
	}
}

func (s *Session) onError(err error) {
	logging.WatchWarn("watch dispatch error: %v", err)
	if s.req.Callbacks.OnError != nil {
		s.req.Callbacks.OnError(err)
	}
}

func splitTarget(target string) (class, method string) {
	idx := strings.IndexByte(target, '#')
	if idx == -1 {
		return target, ""
	}
	return target[:idx], target[idx+1:]
}

func isIgnored(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			return true
		}
	}
	return false
}

func addRecursive(watcher *fsnotify.Watcher, root string, ignore []string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if isIgnored(path, ignore) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
