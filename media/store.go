package media

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/kpfaulkner/imgsample/core"
	"github.com/kpfaulkner/imgsample/options"
)

// maxCaptureAttempts bounds retries when a generated capture name is taken.
const maxCaptureAttempts = 100

var (
	ErrAlreadyExists      = errors.New("file already exists")
	ErrStorageUnavailable = errors.New("storage directory unavailable")
	ErrWrite              = errors.New("write failed")
)

// SaveResult is delivered once by SaveImageAsync.
type SaveResult struct {
	Path string
	Err  error
}

// Store saves images as PNGs into <PicturesDir>/<AppName>.
type Store struct {
	appName     string
	picturesDir string
	notifier    Notifier
	now         func() time.Time

	notifying sync.WaitGroup
}

type StoreOption func(*Store)

// WithNotifier sets the media index notified after each save.
func WithNotifier(n Notifier) StoreOption {
	return func(s *Store) {
		s.notifier = n
	}
}

// WithClock overrides the time source used for file names.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(cfg options.Config, opts ...StoreOption) *Store {
	s := &Store{
		appName:     cfg.AppName,
		picturesDir: cfg.PicturesDir,
		notifier:    LogNotifier{},
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StorageDir returns the album directory, creating it if missing. Only the
// album itself is created; the pictures directory must already exist.
func (s *Store) StorageDir() (string, error) {
	dir := filepath.Join(s.picturesDir, s.appName)

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			log.Errorf("The path %s exists and is not a directory.", dir)
			return "", fmt.Errorf("%s: %w", dir, ErrStorageUnavailable)
		}
		return dir, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%s: %w: %w", dir, ErrStorageUnavailable, err)
	}

	if err := os.Mkdir(dir, 0755); err != nil && !errors.Is(err, fs.ErrExist) {
		log.Errorf("The directory %s failed to be created: %v", dir, err)
		return "", fmt.Errorf("%s: %w: %w", dir, ErrStorageUnavailable, err)
	}
	return dir, nil
}

// SaveImage encodes img as PNG and writes it to a new, timestamped file in
// the album. An existing file is never overwritten: that case returns
// ErrAlreadyExists. The media index is notified in the background.
func (s *Store) SaveImage(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir, err := s.StorageDir()
	if err != nil {
		return "", err
	}

	data, err := core.EncodePNG(img)
	if err != nil {
		return "", fmt.Errorf("encoding png: %w", err)
	}

	name := SaveFileName(s.appName, s.now())
	path := filepath.Join(dir, name)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			log.Errorf("File %s could not be created. Image was not saved.", name)
			return "", fmt.Errorf("%s: %w", path, ErrAlreadyExists)
		}
		log.Errorf("An error occurred while creating %s. Image was not saved: %v", name, err)
		return "", fmt.Errorf("%s: %w: %w", path, ErrWrite, err)
	}

	if err := writeAndClose(f, data); err != nil {
		log.Errorf("An error occurred while writing the image to file (%s). Image was not saved: %v", name, err)
		// the file is ours from O_EXCL, don't leave half a PNG behind
		_ = os.Remove(path)
		return "", fmt.Errorf("%s: %w: %w", path, ErrWrite, err)
	}

	s.notifying.Add(1)
	go func() {
		defer s.notifying.Done()
		s.notifier.Notify(path)
	}()
	return path, nil
}

// WaitNotified blocks until every notification started by SaveImage has
// returned. Callers about to exit use it so the index isn't cut short.
func (s *Store) WaitNotified() {
	s.notifying.Wait()
}

// SaveImageAsync runs SaveImage in the background. Exactly one SaveResult is
// sent on the returned channel, which is then closed.
func (s *Store) SaveImageAsync(ctx context.Context, img image.Image) <-chan SaveResult {
	results := make(chan SaveResult, 1)
	go func() {
		defer close(results)
		path, err := s.SaveImage(ctx, img)
		results <- SaveResult{Path: path, Err: err}
	}()
	return results
}

// NewImageFile creates an empty, uniquely named capture file in the album
// and returns it open for writing.
func (s *Store) NewImageFile() (*os.File, error) {
	dir, err := s.StorageDir()
	if err != nil {
		return nil, err
	}

	for i := 0; i < maxCaptureAttempts; i++ {
		path := filepath.Join(dir, CaptureFileName(s.now()))
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			log.Errorf("The image file failed to be created: %v", err)
			return nil, fmt.Errorf("%s: %w: %w", path, ErrWrite, err)
		}
	}

	log.Errorf("The image file failed to be created: no free name after %d attempts", maxCaptureAttempts)
	return nil, fmt.Errorf("%s: %w", dir, ErrAlreadyExists)
}

// LoadFile decodes the image at path, bounded to reqWidth x reqHeight when
// both are positive and at full resolution otherwise.
func LoadFile(d *core.Decoder, path string, reqWidth int, reqHeight int) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if reqWidth > 0 && reqHeight > 0 {
		return d.LoadBounded(f, reqWidth, reqHeight)
	}
	return d.LoadFull(f)
}

func writeAndClose(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
