package testcommon

import (
	"errors"
	"io"
	"sync"
)

var ErrFakeRead = errors.New("fake read failure")

// FailingReader serves Data then fails every later read with Err
// (ErrFakeRead if nil), like a stream closed underneath the reader.
type FailingReader struct {
	Data []byte
	Err  error
	pos  int
}

func (fr *FailingReader) Read(p []byte) (int, error) {
	if fr.pos < len(fr.Data) {
		n := copy(p, fr.Data[fr.pos:])
		fr.pos += n
		return n, nil
	}
	if fr.Err != nil {
		return 0, fr.Err
	}
	return 0, ErrFakeRead
}

// NoSeekReadSeeker fails every Seek.
type NoSeekReadSeeker struct {
	io.Reader
}

func (NoSeekReadSeeker) Seek(offset int64, whence int) (int64, error) {
	return 0, errors.New("seek not supported")
}

// RecordingNotifier records every path it is asked to index.
type RecordingNotifier struct {
	mu    sync.Mutex
	paths []string
	done  chan string
}

func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{done: make(chan string, 16)}
}

func (rn *RecordingNotifier) Notify(path string) {
	rn.mu.Lock()
	rn.paths = append(rn.paths, path)
	rn.mu.Unlock()
	select {
	case rn.done <- path:
	default:
	}
}

// Notified delivers each notified path, for tests waiting on async notifies.
func (rn *RecordingNotifier) Notified() <-chan string {
	return rn.done
}

func (rn *RecordingNotifier) Paths() []string {
	rn.mu.Lock()
	defer rn.mu.Unlock()
	out := make([]string, len(rn.paths))
	copy(out, rn.paths)
	return out
}
