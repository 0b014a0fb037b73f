// Package ui  Shortcuts for keyboard actions
package ui

import (
	"slidey/internal/viewport"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

var arrowKeys = map[fyne.KeyName]viewport.Direction{
	fyne.KeyLeft:  viewport.Left,
	fyne.KeyRight: viewport.Right,
	fyne.KeyUp:    viewport.Up,
	fyne.KeyDown:  viewport.Down,
}

func (a *App) buildKeyboardShortcuts() {
	c := a.UI.MainWin.Canvas()

	// ctrl+q to quit application
	c.AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyQ,
		Modifier: a.UI.mainModKey,
	}, func(_ fyne.Shortcut) {
		a.close()
		a.app.Quit()
	})

	// ctrl+o to pick a directory
	c.AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyO,
		Modifier: a.UI.mainModKey,
	}, func(_ fyne.Shortcut) { a.showOpenDialog() })

	c.SetOnTypedKey(a.handleKey)
	c.SetOnTypedRune(a.handleRune)
}

func (a *App) handleKey(key *fyne.KeyEvent) {
	if dir, ok := arrowKeys[key.Name]; ok {
		a.apply(func() bool { return a.viewer.HandleArrow(dir) })
		return
	}
	if key.Name == fyne.KeyEscape {
		// close dialogs first, then leave or enter full screen
		if top := a.UI.MainWin.Canvas().Overlays().Top(); top != nil {
			top.Hide()
			return
		}
		a.UI.MainWin.SetFullScreen(!a.UI.MainWin.FullScreen())
	}
}

func (a *App) handleRune(r rune) {
	if a.UI.MainWin.Canvas().Overlays().Top() != nil {
		return
	}
	a.apply(func() bool { return a.viewer.HandleRune(r) })
}
