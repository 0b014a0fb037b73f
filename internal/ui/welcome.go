package ui

import (
	"path/filepath"

	"slidey/internal/command"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Welcome is the screen shown while no images are loaded: a title, a button
// to pick a directory and one button per recent directory.
type Welcome struct {
	broker    *command.Broker
	status    *widget.Label
	recentBox *fyne.Container
	container *fyne.Container
}

// NewWelcome builds the welcome screen. Its buttons publish commands.
func NewWelcome(broker *command.Broker) *Welcome {
	w := &Welcome{broker: broker}

	title := canvas.NewText(appTitle, theme.Color(theme.ColorNameForeground))
	title.TextSize = 48
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter

	selectBtn := widget.NewButtonWithIcon("Select Directory", theme.FolderOpenIcon(), func() {
		broker.Publish(command.SelectDirectory)
	})
	selectBtn.Importance = widget.HighImportance

	w.status = widget.NewLabel("")
	w.status.Alignment = fyne.TextAlignCenter
	w.status.Hide()
	w.recentBox = container.NewVBox()

	w.container = container.NewCenter(container.NewVBox(
		title,
		w.status,
		container.NewHBox(layout.NewSpacer(), selectBtn, layout.NewSpacer()),
		w.recentBox,
	))
	return w
}

// Content is the screen's root object.
func (w *Welcome) Content() fyne.CanvasObject {
	return w.container
}

// SetStatus shows a line under the title. An empty message hides it.
func (w *Welcome) SetStatus(msg string) {
	w.status.SetText(msg)
	if msg == "" {
		w.status.Hide()
	} else {
		w.status.Show()
	}
}

// SetRecent replaces the recent directory buttons.
func (w *Welcome) SetRecent(dirs []string) {
	w.recentBox.RemoveAll()
	if len(dirs) == 0 {
		return
	}
	heading := widget.NewLabelWithStyle("Recent Directories", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	w.recentBox.Add(heading)
	for _, dir := range dirs {
		dir := dir
		btn := widget.NewButtonWithIcon(filepath.Base(dir), theme.FolderIcon(), func() {
			w.broker.Publish(command.OpenDirectory, dir)
		})
		btn.Alignment = widget.ButtonAlignLeading
		w.recentBox.Add(btn)
	}
	w.recentBox.Refresh()
}

// RecentCount is the number of recent directory buttons shown.
func (w *Welcome) RecentCount() int {
	if len(w.recentBox.Objects) == 0 {
		return 0
	}
	return len(w.recentBox.Objects) - 1
}
