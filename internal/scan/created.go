package scan

import (
	"os"
	"time"

	"github.com/djherbis/times"
	"github.com/rwcarlsen/goexif/exif"
)

// CreationTime returns the best available creation timestamp for a file:
// filesystem birth time, then the EXIF DateTime, then the modification time.
func CreationTime(path string, info os.FileInfo) time.Time {
	if ts, err := times.Stat(path); err == nil && ts.HasBirthTime() {
		return ts.BirthTime()
	}
	if t, ok := exifTime(path); ok {
		return t
	}
	if info != nil {
		return info.ModTime()
	}
	return time.Time{}
}

func exifTime(path string) (time.Time, bool) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, false
	}
	t, err := x.DateTime()
	if err != nil || t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}
