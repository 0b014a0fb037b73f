// Package ui  Setup for the Slidey Application
package ui

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"slidey/internal/command"
	"slidey/internal/history"
	"slidey/internal/logging"
	"slidey/internal/scan"
	"slidey/internal/service"
	"slidey/internal/settings"
	"slidey/internal/slideshow"
	"slidey/internal/viewport"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
)

const (
	appID = "com.github.slidey"
	// commandQueueSize bounds the per-subscriber queue of the command bus.
	commandQueueSize = 16
)

// Options are the command-line settings of the GUI.
type Options struct {
	SettingsDir string
	LogLevel    string
	PanStep     float64
	Dir         string // opened at start-up when set
}

// ParseOptions reads the GUI flags from args, not including the program name.
func ParseOptions(args []string, errOut io.Writer) (Options, error) {
	var opts Options
	fs := flag.NewFlagSet("slidey", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&opts.SettingsDir, "settings-dir", "", "Directory holding the settings database (default: user config dir)")
	fs.StringVar(&opts.LogLevel, "log-level", "info", "Log level: debug, info, warn or error")
	fs.Float64Var(&opts.PanStep, "pan-step", viewport.DefaultPanStep, "How far one arrow press pans a zoomed image")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: slidey [flags] [directory]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	if fs.NArg() > 1 {
		return Options{}, errors.New("at most one directory may be given")
	}
	if opts.PanStep <= 0 {
		return Options{}, fmt.Errorf("pan-step must be positive, got %v", opts.PanStep)
	}
	if fs.NArg() == 1 {
		opts.Dir = fs.Arg(0)
	}
	return opts, nil
}

// App represents the whole application with its window, widgets and state.
type App struct {
	app fyne.App
	UI  UI

	log      *logging.Logger
	broker   *command.Broker
	settings *settings.DB
	recent   *history.RecentDirectories
	Service  *service.Service
	viewer   *slideshow.Viewer

	dir        string // directory of the current collection
	loadingDir string // directory being scanned, empty when idle
	generation int    // bumped per Open; results from older scans are dropped

	runAsync func(func()) // starts a directory load off the UI goroutine
}

// UI holds the widgets of the main window.
type UI struct {
	MainWin     fyne.Window
	mainModKey  fyne.KeyModifier
	zoomPanArea *ZoomPanArea
	welcome     *Welcome
}

// CreateApplication is the GUI entrypoint
func CreateApplication() {
	opts, err := ParseOptions(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logging.New(os.Stderr, opts.LogLevel)
	a := app.NewWithID(appID)
	a.Settings().SetTheme(NewSlideshowTheme(a.Settings().Theme()))

	ui := newApp(a, opts, logger)
	ui.UI.MainWin.SetCloseIntercept(func() {
		ui.close()
		ui.UI.MainWin.Close()
	})

	if opts.Dir != "" {
		ui.openDirectory(opts.Dir)
	}
	ui.UI.MainWin.ShowAndRun()
}

// newApp wires the services, the command bus and the main window.
func newApp(fa fyne.App, opts Options, logger *logging.Logger) *App {
	ui := &App{app: fa, log: logger, runAsync: func(fn func()) { go fn() }}

	db, err := settings.Open(opts.SettingsDir, logger.Func("settings"))
	if err != nil {
		// Run without persistence rather than refuse to start.
		logger.Warn().Err(err).Msg("settings unavailable, recent directories will not be saved")
	}
	var store history.Store
	if db != nil {
		ui.settings = db
		store = db
	}
	ui.recent = history.NewRecentDirectories(store, settings.RecentDirectoriesKey, history.DefaultCapacity, logger.Func("history"))

	scanner := &scan.FileScannerImpl{}
	ui.Service = service.NewService(scanner, service.NewImageService(), logger.Func("service"))
	ui.viewer = slideshow.NewViewer(logger.Func("viewer"))
	ui.viewer.SetPanStep(opts.PanStep)
	ui.broker = command.NewBroker(commandQueueSize, fyne.Do, logger.With("command"))

	ui.UI.mainModKey = fyne.KeyModifierShortcutDefault
	ui.UI.MainWin = fa.NewWindow("Slidey")
	ui.UI.MainWin.Resize(fyne.NewSize(1024, 768))
	ui.UI.MainWin.CenterOnScreen()

	ui.UI.zoomPanArea = NewZoomPanArea(ui.viewer)
	ui.UI.zoomPanArea.HideCursor = func() bool { return ui.UI.MainWin.FullScreen() }
	ui.UI.zoomPanArea.OnScroll = func(step int) {
		if step > 0 {
			ui.apply(ui.viewer.ZoomIn)
		} else {
			ui.apply(ui.viewer.ZoomOut)
		}
	}
	ui.UI.welcome = NewWelcome(ui.broker)

	ui.subscribe()
	ui.buildMainMenu()
	ui.buildKeyboardShortcuts()
	ui.updateDisplay()
	return ui
}

// subscribe connects every command topic to the window.
func (a *App) subscribe() {
	actions := map[command.Topic]func() bool{
		command.EnhanceImage:           a.viewer.Enhance,
		command.RemoveEnhancement:      a.viewer.RemoveEnhancement,
		command.SmoothImage:            a.viewer.Smooth,
		command.RemoveSmoothing:        a.viewer.RemoveSmoothing,
		command.ScaleToNative:          a.viewer.ScaleToNative,
		command.ScaleToFill:            a.viewer.ScaleToFill,
		command.RotateClockwise:        a.viewer.RotateClockwise,
		command.RotateCounterClockwise: a.viewer.RotateCounterClockwise,
	}
	for topic, action := range actions {
		action := action
		a.connect(topic, func() { a.apply(action) })
	}
	a.connect(command.SelectDirectory, a.showOpenDialog)
	a.connect(command.OpenDirectory, a.openDirectory)
}

func (a *App) connect(topic command.Topic, callback interface{}) {
	if err := a.broker.ConnectToGui(topic, callback); err != nil {
		a.log.Error().Err(err).Str("topic", string(topic)).Msg("could not subscribe")
	}
}

// apply runs a viewer action and repaints when it changed something.
func (a *App) apply(action func() bool) {
	if action() {
		a.UI.zoomPanArea.Refresh()
	}
}

// showOpenDialog asks the user for a directory to show.
func (a *App) showOpenDialog() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			a.log.Warn().Err(err).Msg("folder dialog failed")
			return
		}
		if uri == nil {
			return // cancelled
		}
		a.openDirectory(uri.Path())
	}, a.UI.MainWin)
}

// openDirectory records dir as recent and loads it in the background. The
// viewer is updated on the UI goroutine when loading finishes, unless
// another directory was opened in the meantime.
func (a *App) openDirectory(dir string) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		a.log.Warn().Err(err).Str("dir", dir).Msg("cannot resolve directory")
		return
	}
	if err := a.recent.Add(abs); err != nil {
		a.log.Warn().Err(err).Msg("could not save recent directories")
	}
	a.buildMainMenu()

	a.generation++
	gen := a.generation
	a.loadingDir = abs
	a.viewer.Reset()
	a.updateDisplay()
	a.log.Info().Str("dir", abs).Msg("loading directory")

	a.runAsync(func() {
		result, err := a.Service.LoadDirectory(abs)
		fyne.Do(func() { a.finishLoad(gen, abs, result, err) })
	})
}

// finishLoad publishes the outcome of the scan started as generation gen.
func (a *App) finishLoad(gen int, dir string, result service.LoadResult, err error) {
	if gen != a.generation {
		a.log.Debug().Str("dir", dir).Msg("dropping superseded scan")
		return
	}
	a.loadingDir = ""
	if err != nil {
		a.log.Warn().Err(err).Str("dir", dir).Msg("loading failed")
		a.updateDisplay()
		return
	}
	a.showCollection(result)
}

// showCollection publishes a finished load to the viewer.
func (a *App) showCollection(result service.LoadResult) {
	a.dir = result.Dir
	a.viewer.SetSlides(result.Slides)
	a.log.Info().
		Str("dir", result.Dir).
		Int("images", len(result.Slides)).
		Int("skipped", result.Skipped).
		Msg("directory loaded")
	a.updateDisplay()
	if len(result.Slides) > 0 {
		a.UI.MainWin.SetFullScreen(true)
	}
}

// close releases the settings database.
func (a *App) close() {
	if a.settings == nil {
		return
	}
	a.log.Debug().Msg("closing settings database")
	if err := a.settings.Close(); err != nil {
		a.log.Warn().Err(err).Msg("closing settings database")
	}
}
