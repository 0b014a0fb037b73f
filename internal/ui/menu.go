package ui

import (
	"path/filepath"

	"slidey/internal/command"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// buildMainMenu (re)creates the window menu. It is rebuilt whenever the
// recent directories change.
func (a *App) buildMainMenu() {
	publish := func(topic command.Topic) func() {
		return func() { a.broker.Publish(topic) }
	}

	open := fyne.NewMenuItem("Open…", publish(command.SelectDirectory))
	open.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: a.UI.mainModKey}

	recent := fyne.NewMenuItem("Recent Directories", nil)
	recent.ChildMenu = fyne.NewMenu("", a.recentMenuItems()...)

	file := fyne.NewMenu("File", open, recent)

	image := fyne.NewMenu("Image",
		fyne.NewMenuItem("Enhance", publish(command.EnhanceImage)),
		fyne.NewMenuItem("Remove Enhancement", publish(command.RemoveEnhancement)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Smooth", publish(command.SmoothImage)),
		fyne.NewMenuItem("Remove Smoothing", publish(command.RemoveSmoothing)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Scale to Native Size", publish(command.ScaleToNative)),
		fyne.NewMenuItem("Scale to Fill", publish(command.ScaleToFill)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Rotate Clockwise", publish(command.RotateClockwise)),
		fyne.NewMenuItem("Rotate Counter-Clockwise", publish(command.RotateCounterClockwise)),
	)

	a.UI.MainWin.SetMainMenu(fyne.NewMainMenu(file, image))
}

// recentMenuItems lists the recent directories, or one disabled
// placeholder when there are none.
func (a *App) recentMenuItems() []*fyne.MenuItem {
	dirs := a.recent.List()
	if len(dirs) == 0 {
		none := fyne.NewMenuItem("No Recent Directories", nil)
		none.Disabled = true
		return []*fyne.MenuItem{none}
	}
	items := make([]*fyne.MenuItem, 0, len(dirs)+2)
	for _, dir := range dirs {
		dir := dir
		items = append(items, fyne.NewMenuItem(filepath.Base(dir), func() {
			a.broker.Publish(command.OpenDirectory, dir)
		}))
	}
	items = append(items, fyne.NewMenuItemSeparator(), fyne.NewMenuItem("Clear Menu", func() {
		if err := a.recent.Clear(); err != nil {
			a.log.Warn().Err(err).Msg("could not clear recent directories")
		}
		a.buildMainMenu()
		a.updateDisplay()
	}))
	return items
}
