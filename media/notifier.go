package media

import (
	"fmt"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Notifier tells a media index about a newly written file. Calls are fire
// and forget: implementations deal with their own failures.
type Notifier interface {
	Notify(path string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(path string)

func (f NotifierFunc) Notify(path string) {
	f(path)
}

// LogNotifier only logs the new file.
type LogNotifier struct{}

func (LogNotifier) Notify(path string) {
	log.Infof("media index: added %s", path)
}

// IndexFileNotifier appends each new file's path to a plain text index, one
// path per line, for indexers that watch that file.
type IndexFileNotifier struct {
	mu   sync.Mutex
	path string
}

func NewIndexFileNotifier(path string) *IndexFileNotifier {
	return &IndexFileNotifier{path: path}
}

func (n *IndexFileNotifier) Notify(path string) {
	if err := n.append(path); err != nil {
		log.Errorf("Unable to add %s to media index %s: %v", path, n.path, err)
	}
}

func (n *IndexFileNotifier) append(path string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	f, err := os.OpenFile(n.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(f, path); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
