package service

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"slidey/internal/scan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func writeJPEG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, nil))
}

type logRecorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *logRecorder) log(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

func setTimes(t *testing.T, path string, ts time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, ts, ts))
}

func newTestService(rec *logRecorder) *Service {
	scanner := &scan.FileScannerImpl{Timestamp: func(_ string, info os.FileInfo) time.Time {
		return info.ModTime()
	}}
	return NewService(scanner, NewImageService(), rec.log)
}

func TestLoadDirectoryOrdersByCreation(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.jpg")
	b := filepath.Join(dir, "b.png")
	writePNG(t, b, solid(4, 3, color.White))
	writeJPEG(t, a, solid(6, 2, color.Black))

	base := time.Date(2023, 5, 1, 8, 0, 0, 0, time.UTC)
	setTimes(t, a, base)
	setTimes(t, b, base.Add(time.Minute))

	rec := &logRecorder{}
	result, err := newTestService(rec).LoadDirectory(dir)
	require.NoError(t, err)

	require.Len(t, result.Slides, 2)
	assert.Equal(t, "a.jpg", filepath.Base(result.Slides[0].Path))
	assert.Equal(t, "b.png", filepath.Base(result.Slides[1].Path))
	assert.Equal(t, 6, result.Slides[0].Image.Bounds().Dx())
	assert.Equal(t, 4, result.Slides[1].Image.Bounds().Dx())
	assert.Equal(t, 2, result.Scanned)
	assert.Zero(t, result.Skipped)
}

func TestLoadDirectorySkipsUndecodableFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.png")
	bad := filepath.Join(dir, "bad.png")
	heic := filepath.Join(dir, "phone.heic")
	writePNG(t, good, solid(2, 2, color.White))
	require.NoError(t, os.WriteFile(bad, []byte("not really a png"), 0644))
	require.NoError(t, os.WriteFile(heic, []byte("ftypheic....."), 0644))

	rec := &logRecorder{}
	svc := newTestService(rec)
	svc.Workers = 1
	result, err := svc.LoadDirectory(dir)
	require.NoError(t, err)

	require.Len(t, result.Slides, 1)
	assert.Equal(t, good, result.Slides[0].Path)
	assert.Equal(t, 3, result.Scanned)
	assert.Equal(t, 2, result.Skipped)
	assert.NotEmpty(t, rec.messages)
}

func TestLoadDirectoryEmptyDir(t *testing.T) {
	rec := &logRecorder{}
	result, err := newTestService(rec).LoadDirectory(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, result.Slides)
}

func TestLoadDirectoryRequiresDir(t *testing.T) {
	_, err := NewService(&scan.FileScannerImpl{}, NewImageService(), nil).LoadDirectory("")
	assert.Error(t, err)
}

func TestGetImageInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "info.png")
	writePNG(t, path, solid(5, 7, color.White))

	info, img, err := NewImageService().GetImageInfo(path)
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, 5, info.Width)
	assert.Equal(t, 7, info.Height)
	assert.Equal(t, "png", info.Format)
	assert.Positive(t, info.Size)
	assert.Empty(t, info.EXIFData)
}

func TestDecodeMissingFile(t *testing.T) {
	_, _, err := NewImageService().Decode(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}
