package media

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// TimestampLayout is yyyyMMdd-hh:mm:ss with a 12 hour clock.
	TimestampLayout = "20060102-03:04:05"

	FileNameSuffix    = ".png"
	CaptureFilePrefix = "IMG_"
)

func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// SaveFileName returns <APPNAME>_<timestamp>.png.
func SaveFileName(appName string, t time.Time) string {
	return strings.ToUpper(appName) + "_" + Timestamp(t) + FileNameSuffix
}

// CaptureFileName returns IMG_<timestamp>_<unique>.png. The unique part is
// random so two captures in the same second don't collide.
func CaptureFileName(t time.Time) string {
	return CaptureFilePrefix + Timestamp(t) + "_" + uniqueSuffix() + FileNameSuffix
}

func uniqueSuffix() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:12]
}
