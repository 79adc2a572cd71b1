package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileWatcher polls a set of files and directories and reports the source
// files that changed, appeared or disappeared since the previous poll.
type FileWatcher struct {
	paths        []string
	onChange     func(changed []string)
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
}

func NewFileWatcher(paths []string, onChange func(changed []string)) *FileWatcher {
	return &FileWatcher{
		paths:        paths,
		onChange:     onChange,
		stopCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
	}
}

// SetInterval changes the polling interval. It must be called before Start.
func (w *FileWatcher) SetInterval(d time.Duration) {
	if d > 0 {
		w.pollInterval = d
	}
}

func (w *FileWatcher) Start() {
	w.Scan()
	go w.run()
}

func (w *FileWatcher) Stop() {
	close(w.stopCh)
}

func (w *FileWatcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			if changed := w.Scan(); len(changed) > 0 && w.onChange != nil {
				w.onChange(changed)
			}
		}
	}
}

// Scan polls once and returns the changed paths. The first scan reports
// every file it finds.
func (w *FileWatcher) Scan() []string {
	var changed []string
	current := make(map[string]bool)

	check := func(path string, info os.FileInfo) {
		current[path] = true
		lastMod, known := w.modTimes[path]
		if !known || info.ModTime().After(lastMod) {
			w.modTimes[path] = info.ModTime()
			changed = append(changed, path)
		}
	}

	for _, root := range w.paths {
		info, err := os.Stat(root)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			check(root, info)
			continue
		}
		filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if info.IsDir() {
				if path != root && strings.HasPrefix(info.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) == SourceExt {
				check(path, info)
			}
			return nil
		})
	}

	for path := range w.modTimes {
		if !current[path] {
			delete(w.modTimes, path)
			changed = append(changed, path)
		}
	}
	return changed
}
