package ui

import (
	"path/filepath"
)

const appTitle = "Slidey"

// updateDisplay shows the image view when there is something to show and
// the welcome screen otherwise.
func (a *App) updateDisplay() {
	win := a.UI.MainWin
	if a.loadingDir == "" && !a.viewer.Slides().IsEmpty() {
		win.SetTitle(windowTitle(a.dir))
		if win.Content() != a.UI.zoomPanArea {
			win.SetContent(a.UI.zoomPanArea)
		}
		a.UI.zoomPanArea.Refresh()
		return
	}

	win.SetTitle(appTitle)
	w := a.UI.welcome
	switch {
	case a.loadingDir != "":
		w.SetStatus("Loading " + a.loadingDir + "…")
	case a.dir != "":
		w.SetStatus("No images found in " + a.dir)
	default:
		w.SetStatus("")
	}
	w.SetRecent(a.recent.List())
	if win.Content() != w.Content() {
		win.SetContent(w.Content())
	}
}

// windowTitle is the base name of the open directory.
func windowTitle(dir string) string {
	if dir == "" {
		return appTitle
	}
	return filepath.Base(dir)
}
