package reforge

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"plugin"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FactorySymbol is the symbol a logic plugin must export: a
// func() reforge.Program that produces a fresh program instance.
const FactorySymbol = "NewProgram"

// pluginDebounce is how long the host waits for the build tool to finish
// writing the plugin file before swapping. Linkers write .so files in
// several bursts; swapping on the first write would load a torn file.
const pluginDebounce = 200 * time.Millisecond

// ProgramFactory produces a fresh [Program] instance.
type ProgramFactory func() Program

// PluginHost loads a program's logic from a Go plugin and swaps it whenever
// the plugin file is rebuilt on disk.
//
// The plugin is built with -buildmode=plugin and must export [FactorySymbol].
// Because the Go runtime refuses to open the same plugin path twice, each
// (re)load copies the file to a uniquely named temp path first; the previous
// plugin's code stays mapped, which is acceptable for a development-time
// tool.
//
// PluginHost implements [SwapObserver]. It must be paired with
// [MonitorSwaps] (as [Run] does): the host blocks on the observer's wait
// points around each swap so the frame loop is in [PhaseReloading] while the
// new plugin is loaded and never calls into a half-swapped unit.
//
// Go plugins are supported on Linux, macOS, and FreeBSD; elsewhere
// [OpenPluginHost] fails with the runtime's "not implemented" error.
type PluginHost struct {
	path    string
	watcher *fsnotify.Watcher

	about    chan struct{}
	complete chan struct{}

	mu      sync.Mutex
	factory ProgramFactory
	version int
}

// OpenPluginHost loads the plugin at path and starts watching it for
// replacement. The initial load must succeed; later reloads that fail are
// logged and keep the previous logic in use.
func OpenPluginHost(path string) (*PluginHost, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("reforge: resolve plugin path %s: %w", path, err)
	}

	factory, err := loadFactory(abs)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("reforge: watch plugin: %w", err)
	}
	// Watch the directory, not the file: rebuilds typically replace the
	// file (write temp + rename), which drops a file-level watch.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("reforge: watch plugin dir: %w", err)
	}

	h := &PluginHost{
		path:     abs,
		watcher:  watcher,
		about:    make(chan struct{}),
		complete: make(chan struct{}),
		factory:  factory,
		version:  1,
	}
	go h.run()
	return h, nil
}

// AwaitAboutToSwap implements [SwapObserver].
func (h *PluginHost) AwaitAboutToSwap() { <-h.about }

// AwaitSwapComplete implements [SwapObserver].
func (h *PluginHost) AwaitSwapComplete() { <-h.complete }

// Version returns how many times a plugin has been loaded, starting at 1
// for the initial load. Implements [Versioner].
func (h *PluginHost) Version() int {
	h.mu.Lock()
	v := h.version
	h.mu.Unlock()
	return v
}

// NewProgram builds a fresh program instance from the most recently loaded
// plugin.
func (h *PluginHost) NewProgram() Program {
	h.mu.Lock()
	factory := h.factory
	h.mu.Unlock()
	return factory()
}

// Close stops watching the plugin file. In-flight swaps finish first.
func (h *PluginHost) Close() error {
	return h.watcher.Close()
}

// run watches for plugin file replacement, debounces the write burst, and
// performs the swap handshake.
func (h *PluginHost) run() {
	debounceSwaps(h.watcher.Events, h.watcher.Errors, h.relevant, pluginDebounce, h.swap)
}

// relevant reports whether a filesystem event concerns the plugin file
// itself and could change its content.
func (h *PluginHost) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != h.path {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Rename)
}

// debounceSwaps collapses a burst of relevant events into a single swap call
// once events stop arriving for the wait duration. Returns when the events
// channel closes.
func debounceSwaps(events <-chan fsnotify.Event, errs <-chan error,
	relevant func(fsnotify.Event) bool, wait time.Duration, swap func()) {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(wait)
				fire = timer.C
			} else {
				// Reset requires the channel drained: the timer may have
				// fired between this event and the previous iteration, and
				// swapping on that stale tick would land mid-burst.
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(wait)
			}
		case <-fire:
			timer = nil
			fire = nil
			swap()
		case err, ok := <-errs:
			if !ok {
				return
			}
			logf("plugin watch error: %v", err)
		}
	}
}

// swap announces the reload, loads the replacement plugin, and announces
// completion. A failed load keeps the previous factory so the program keeps
// running on the old logic.
func (h *PluginHost) swap() {
	h.about <- struct{}{}

	factory, err := loadFactory(h.path)
	if err != nil {
		logf("plugin reload failed, keeping previous logic: %v", err)
	} else {
		h.mu.Lock()
		h.factory = factory
		h.version++
		h.mu.Unlock()
	}

	h.complete <- struct{}{}
}

// loadFactory copies the plugin to a unique temp path, opens it, and
// resolves the program factory. The copy is what lets the same logical
// plugin be opened more than once per process.
func loadFactory(path string) (ProgramFactory, error) {
	tmp, err := copyToTemp(path)
	if err != nil {
		return nil, fmt.Errorf("reforge: stage plugin %s: %w", path, err)
	}

	plug, err := plugin.Open(tmp)
	// Unlink the staged copy either way: on failure it is garbage, and after
	// a successful open the mapping survives the unlink on the platforms
	// plugins load on.
	_ = os.Remove(tmp)
	if err != nil {
		return nil, fmt.Errorf("reforge: open plugin %s: %w", path, err)
	}
	sym, err := plug.Lookup(FactorySymbol)
	if err != nil {
		return nil, fmt.Errorf("reforge: plugin %s: %w", path, err)
	}
	factory, ok := sym.(func() Program)
	if !ok {
		return nil, fmt.Errorf("reforge: plugin %s: symbol %s is %T, want func() reforge.Program",
			path, FactorySymbol, sym)
	}
	return factory, nil
}

// copyToTemp copies the file at path to a fresh temp file and returns the
// temp path.
func copyToTemp(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.CreateTemp("", "reforge-plugin-*.so")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}
	return dst.Name(), nil
}
