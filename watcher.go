package reforge

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ShaderWatcher watches a shader directory tree and appends every changed
// path to a [ReloadState] so the frame loop rebuilds passes on its next
// tick.
//
// The watcher runs on its own goroutine for the life of the process; it only
// touches the shared record under its lock and returns immediately from each
// event, so a slow frame never blocks the filesystem notification thread.
// Watch errors after setup are logged and non-fatal: the watcher may stop
// producing events but never crashes the process.
type ShaderWatcher struct {
	root    string
	state   *ReloadState
	watcher *fsnotify.Watcher
}

// WatchShaders starts watching root (recursively) for shader changes.
// A missing root or failed watch setup returns an error; callers typically
// log it and run without live reload rather than aborting.
func WatchShaders(root string, state *ReloadState) (*ShaderWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// fsnotify watches single directories; walk the tree and register each.
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		_ = watcher.Close()
		return nil, err
	}

	w := &ShaderWatcher{root: root, state: state, watcher: watcher}
	go w.run()
	return w, nil
}

// Root returns the directory the watcher was started on.
func (w *ShaderWatcher) Root() string {
	return w.root
}

// Close stops the watcher goroutine and releases the OS watch handles.
func (w *ShaderWatcher) Close() error {
	return w.watcher.Close()
}

// run forwards filesystem events into the reload state until the watcher is
// closed.
func (w *ShaderWatcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Create) {
				// Directories created after setup must be registered too,
				// or edits inside them would go unseen.
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.watcher.Add(event.Name); err != nil {
						logf("watch %s: %v", event.Name, err)
					}
					continue
				}
			}
			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) ||
				event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
				logf("change: %s", event.Name)
				w.state.AppendPaths(event.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logf("watch error: %v", err)
		}
	}
}
