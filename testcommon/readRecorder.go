package testcommon

import "io"

// ReadRecorder wraps a reader and records how much was pulled through it.
type ReadRecorder struct {
	BytesRead int
	ReadCalls int
	Closed    bool

	realReader io.Reader
}

func NewReadRecorder(realReader io.Reader) *ReadRecorder {
	return &ReadRecorder{realReader: realReader}
}

func (rr *ReadRecorder) Read(p []byte) (int, error) {
	n, err := rr.realReader.Read(p)
	rr.BytesRead += n
	rr.ReadCalls++
	return n, err
}

func (rr *ReadRecorder) Close() error {
	rr.Closed = true
	return nil
}
