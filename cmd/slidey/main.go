// Command slidey is the full-screen slideshow viewer.
package main

import (
	"slidey/internal/ui"
)

func main() {
	ui.CreateApplication()
}
