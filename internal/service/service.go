package service

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"runtime"
	"sync"

	"slidey/internal/scan"
	"slidey/internal/slideshow"
)

// FileScanner abstracts file scanning.
type FileScanner interface {
	Run(dir string, logger scan.LoggerFunc) <-chan scan.FileItem
}

// Decoder abstracts decoding a single file.
type Decoder interface {
	Decode(path string) (image.Image, string, error)
}

// LoadResult is the outcome of loading a directory.
type LoadResult struct {
	Dir     string
	Slides  []slideshow.Slide
	Scanned int
	Skipped int
}

// Service is the main entry point for business logic.
type Service struct {
	FileScan FileScanner
	Images   Decoder
	Logger   func(string)
	Workers  int // Decode concurrency; <= 0 means runtime.NumCPU()
}

// NewService constructs a new Service.
func NewService(fileScan FileScanner, images Decoder, logger func(string)) *Service {
	if logger == nil {
		logger = func(string) {}
	}
	return &Service{
		FileScan: fileScan,
		Images:   images,
		Logger:   logger,
	}
}

// LoadDirectory scans dir, orders the images by creation time and decodes them.
// Files that fail to decode are skipped. The returned slides keep scan order.
func (s *Service) LoadDirectory(dir string) (LoadResult, error) {
	if dir == "" {
		return LoadResult{}, errors.New("directory required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return LoadResult{}, fmt.Errorf("resolving %s: %w", dir, err)
	}

	items := scan.Collect(s.FileScan, abs, func(msg string) { s.Logger(fmt.Sprintf("scan: %s", msg)) })
	slides := s.decodeAll(items)

	result := LoadResult{
		Dir:     abs,
		Scanned: len(items),
		Skipped: len(items) - len(slides),
		Slides:  slides,
	}
	s.Logger(fmt.Sprintf("Loaded %d images from %s (%d skipped)", len(slides), abs, result.Skipped))
	return result, nil
}

// decodeAll decodes items with a bounded worker pool and drops failures,
// preserving the order of items.
func (s *Service) decodeAll(items scan.FileItems) []slideshow.Slide {
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	decoded := make([]image.Image, len(items))
	semaphore := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			img, format, err := s.Images.Decode(path)
			if err != nil {
				s.Logger(fmt.Sprintf("Skipping %s (format %q): %v", filepath.Base(path), format, err))
				return
			}
			decoded[i] = img
		}(i, item.Path)
	}
	wg.Wait()

	slides := make([]slideshow.Slide, 0, len(items))
	for i, item := range items {
		if decoded[i] == nil {
			continue
		}
		slides = append(slides, slideshow.Slide{
			Path:    item.Path,
			Created: item.Created,
			Image:   decoded[i],
		})
	}
	return slides
}
