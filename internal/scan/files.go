// Package scan operates on files in a directory and its subdirectories
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"slidey/internal/logging"

	"github.com/bmatcuk/doublestar/v4"
)

// LoggerFunc receives progress and skip messages from a scan.
type LoggerFunc = logging.LoggerFunc

// imagePattern is the extension allow-list, matched against lower-cased base names.
const imagePattern = "*.{jpg,jpeg,png,gif,bmp,tif,tiff,heic,webp}"

// FileItem represents an image file found by a scan.
type FileItem struct {
	Path    string
	Info    os.FileInfo
	Created time.Time
}

// FileItems is a slice of FileItem
type FileItems []FileItem

// NewFileItem creates a new FileItem
func NewFileItem(p string, info os.FileInfo) FileItem {
	return FileItem{
		Path: p,
		Info: info,
	}
}

// TimestampFunc resolves the creation timestamp used to order a file.
type TimestampFunc func(path string, info os.FileInfo) time.Time

// FileScannerImpl walks directory trees. The zero value uses CreationTime.
type FileScannerImpl struct {
	Timestamp TimestampFunc
}

// Run walks dir on a background goroutine and streams every image file found.
// The channel is closed when the walk is complete.
func (s *FileScannerImpl) Run(dir string, logger LoggerFunc) <-chan FileItem {
	stamp := s.Timestamp
	if stamp == nil {
		stamp = CreationTime
	}
	out := make(chan FileItem)
	go func() {
		defer close(out)
		if err := searchTree(dir, stamp, logger, out); err != nil {
			logf(logger, "scan of %s stopped: %v", dir, err)
		}
	}()
	return out
}

// Run is the package-level entry point using the default scanner.
func Run(dir string, logger LoggerFunc) <-chan FileItem {
	var s FileScannerImpl
	return s.Run(dir, logger)
}

// Collect runs a scan and returns every item sorted by creation time.
func Collect(scanner interface {
	Run(string, LoggerFunc) <-chan FileItem
}, dir string, logger LoggerFunc) FileItems {
	var items FileItems
	for item := range scanner.Run(dir, logger) {
		items = append(items, item)
	}
	SortByCreated(items)
	return items
}

func searchTree(dir string, stamp TimestampFunc, logger LoggerFunc, out chan<- FileItem) error {
	root, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dir, err)
	}
	// WalkDir does not descend into a symlinked root.
	if root, err = filepath.EvalSymlinks(root); err != nil {
		return fmt.Errorf("resolving %s: %w", dir, err)
	}

	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			logf(logger, "skipping %s: %v", p, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		// ignore the root itself even if its name is hidden
		if p != root && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() || !IsImage(p) {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			logf(logger, "skipping %s: %v", p, err)
			return nil
		}
		if fi.Size() == 0 {
			return nil
		}

		item := NewFileItem(p, fi)
		item.Created = stamp(p, fi)
		out <- item
		return nil
	})
}

// IsImage checks if a file name carries one of the supported image extensions.
func IsImage(n string) bool {
	ok, err := doublestar.Match(imagePattern, strings.ToLower(filepath.Base(n)))
	return err == nil && ok
}

// SortByCreated orders items by creation time ascending. Ties fall back to path order.
func SortByCreated(items FileItems) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Created.Equal(items[j].Created) {
			return items[i].Path < items[j].Path
		}
		return items[i].Created.Before(items[j].Created)
	})
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

func logf(logger LoggerFunc, format string, args ...interface{}) {
	if logger != nil {
		logger(fmt.Sprintf(format, args...))
	}
}
