package anglegradient

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is the default debounce interval for file watch events.
const DefaultWatchDebounce = 500 * time.Millisecond

// watchedOps are the operations that count as a document change. Create
// and Rename cover editors that save by replacing the file.
const watchedOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

// documentWatcher calls onChange once per burst of changes to one file.
type documentWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func() error
	onError  func(error)

	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
	mu      sync.Mutex
	started bool
}

// newDocumentWatcher watches path. The containing directory is watched
// rather than the file so that atomic renames are seen.
func newDocumentWatcher(path string, debounce time.Duration, onChange func() error, onError func(error)) (*documentWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	return &documentWatcher{
		watcher:  w,
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		onError:  onError,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start launches the watch goroutine. Calling it twice is a no-op.
func (dw *documentWatcher) Start() {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.started {
		return
	}
	dw.started = true
	go dw.loop()
}

// Stop ends watching and waits for the goroutine to exit. A watcher that
// was never started only releases its fsnotify handle.
func (dw *documentWatcher) Stop() {
	dw.once.Do(func() {
		dw.mu.Lock()
		started := dw.started
		dw.mu.Unlock()

		close(dw.stop)
		if started {
			<-dw.done
		} else {
			dw.watcher.Close()
		}
	})
}

// matches reports whether an event refers to the watched file.
func (dw *documentWatcher) matches(event fsnotify.Event) bool {
	if event.Op&watchedOps == 0 {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return filepath.Base(event.Name) == filepath.Base(dw.path)
	}
	return name == dw.path
}

func (dw *documentWatcher) loop() {
	defer close(dw.done)
	defer dw.watcher.Close()

	timer := time.NewTimer(dw.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-dw.stop:
			return

		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			if dw.matches(event) {
				timer.Reset(dw.debounce)
			}

		case <-timer.C:
			if dw.onChange == nil {
				continue
			}
			if err := dw.onChange(); err != nil && dw.onError != nil {
				dw.onError(err)
			}

		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			if dw.onError != nil {
				dw.onError(err)
			}
		}
	}
}
