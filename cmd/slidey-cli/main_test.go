package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"slidey/internal/settings"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommandC executes a cobra command and captures its output.
func executeCommandC(root *cobra.Command, args ...string) (string, string, error) {
	// flags are package level and survive between runs
	dbPathFlag = ""
	logLevelFlag = "warn"
	degreesFlag = 90
	decodeFlag = false

	actualStdout := new(bytes.Buffer)
	actualStderr := new(bytes.Buffer)
	root.SetOut(actualStdout)
	root.SetErr(actualStderr)
	root.SetArgs(args)

	err := root.Execute()

	return actualStdout.String(), actualStderr.String(), err
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 20), G: uint8(y * 20), B: 128, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func readSize(t *testing.T, path string) image.Point {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	return image.Pt(cfg.Width, cfg.Height)
}

func TestRootHelp(t *testing.T) {
	stdout, stderr, err := executeCommandC(NewRootCmd(settings.Open), "--help")
	require.NoError(t, err, "stdout: %s, stderr: %s", stdout, stderr)
	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "slidey-cli [command]")
}

func TestRecentCommands(t *testing.T) {
	dbDir := t.TempDir()
	photos := t.TempDir()
	trips := t.TempDir()

	t.Run("empty", func(t *testing.T) {
		stdout, stderr, err := executeCommandC(NewRootCmd(settings.Open), "--dbpath", dbDir, "recent", "list")
		require.NoError(t, err, "stderr: %s", stderr)
		assert.Contains(t, stdout, "No recent directories.")
	})

	t.Run("add moves to front", func(t *testing.T) {
		_, stderr, err := executeCommandC(NewRootCmd(settings.Open), "--dbpath", dbDir, "recent", "add", photos)
		require.NoError(t, err, "stderr: %s", stderr)
		_, _, err = executeCommandC(NewRootCmd(settings.Open), "--dbpath", dbDir, "recent", "add", trips)
		require.NoError(t, err)
		stdout, _, err := executeCommandC(NewRootCmd(settings.Open), "--dbpath", dbDir, "recent", "add", photos)
		require.NoError(t, err)

		assert.Contains(t, stdout, "1. "+photos)
		assert.Contains(t, stdout, "2. "+trips)
		assert.NotContains(t, stdout, "3. ")
	})

	t.Run("bare recent lists", func(t *testing.T) {
		stdout, _, err := executeCommandC(NewRootCmd(settings.Open), "--dbpath", dbDir, "recent")
		require.NoError(t, err)
		assert.Contains(t, stdout, "1. "+photos)
	})

	t.Run("add rejects files", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "x.png")
		writePNG(t, file, 2, 2)
		_, _, err := executeCommandC(NewRootCmd(settings.Open), "--dbpath", dbDir, "recent", "add", file)
		assert.Error(t, err)
	})

	t.Run("clear", func(t *testing.T) {
		stdout, _, err := executeCommandC(NewRootCmd(settings.Open), "--dbpath", dbDir, "recent", "clear")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Recent directories cleared.")

		stdout, _, err = executeCommandC(NewRootCmd(settings.Open), "--dbpath", dbDir, "recent", "list")
		require.NoError(t, err)
		assert.Contains(t, stdout, "No recent directories.")
	})
}

func TestScanCommand(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "one.png"), 3, 2)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.jpg"), []byte("nope"), 0644))

	stdout, stderr, err := executeCommandC(NewRootCmd(settings.Open), "scan", dir)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "one.png")
	assert.Contains(t, stdout, "broken.jpg")
	assert.NotContains(t, stdout, "notes.txt")
	assert.Contains(t, stdout, "2 images")

	stdout, _, err = executeCommandC(NewRootCmd(settings.Open), "scan", "--decode", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "3x2")
	assert.Contains(t, stdout, "1 images, 1 skipped")
}

func TestInfoCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pic.png")
	writePNG(t, path, 5, 4)

	stdout, _, err := executeCommandC(NewRootCmd(settings.Open), "info", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Format: png")
	assert.Contains(t, stdout, "Size: 5x4")
}

func TestFilterCommands(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writePNG(t, in, 6, 3)

	for _, name := range []string{"enhance", "smooth"} {
		t.Run(name, func(t *testing.T) {
			out := filepath.Join(dir, name+".png")
			stdout, stderr, err := executeCommandC(NewRootCmd(settings.Open), name, in, out)
			require.NoError(t, err, "stderr: %s", stderr)
			assert.Contains(t, stdout, "Wrote "+out)
			assert.Equal(t, image.Pt(6, 3), readSize(t, out))
		})
	}

	t.Run("rotate", func(t *testing.T) {
		out := filepath.Join(dir, "rotated.jpg")
		_, _, err := executeCommandC(NewRootCmd(settings.Open), "rotate", in, out, "--degrees", "-90")
		require.NoError(t, err)
		assert.Equal(t, image.Pt(3, 6), readSize(t, out))

		_, _, err = executeCommandC(NewRootCmd(settings.Open), "rotate", in, out, "--degrees", "45")
		assert.Error(t, err)
	})

	t.Run("refuses to overwrite input", func(t *testing.T) {
		_, _, err := executeCommandC(NewRootCmd(settings.Open), "enhance", in, in)
		assert.Error(t, err)
	})

	t.Run("missing input", func(t *testing.T) {
		_, _, err := executeCommandC(NewRootCmd(settings.Open), "smooth", filepath.Join(dir, "nope.png"), filepath.Join(dir, "x.png"))
		assert.Error(t, err)
	})
}
