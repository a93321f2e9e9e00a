package ui

import (
	"os"
	"path/filepath"
	"time"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/yllada/pxls-desktop/common"
	"github.com/yllada/pxls-desktop/config"
	"github.com/yllada/pxls-desktop/platform"
	"github.com/yllada/pxls-desktop/presence"
	"github.com/yllada/pxls-desktop/shell"
	"github.com/yllada/pxls-desktop/site"
	"github.com/yllada/pxls-desktop/userext"
)

// Application represents the main application
type Application struct {
	app       *adw.Application
	window    *MainWindow
	settings  *config.Store
	publisher *presence.Publisher
	ctrl      *shell.Controller
	reporter  *dialogReporter
	tray      *TrayIndicator
	version   string
	bootTime  time.Time
}

// NewApplication creates a new application
func NewApplication(appID, version string) *Application {
	application := &Application{
		app:      adw.NewApplication(appID, gio.ApplicationFlagsNone),
		version:  version,
		bootTime: time.Now(),
	}
	application.reporter = &dialogReporter{app: application}

	application.app.ConnectStartup(application.onStartup)
	application.app.ConnectActivate(application.onActivate)
	application.app.ConnectShutdown(application.onShutdown)

	return application
}

// Run runs the application
func (a *Application) Run(args []string) int {
	return a.app.Run(args)
}

// onStartup prepares everything that outlives a single window.
func (a *Application) onStartup() {
	a.setupAppIcon()

	a.settings = a.openSettings()
	target := site.Resolve(common.URLFileCandidates()...)
	common.LogInfo("Loading %s", target)

	userextsDir, err := common.GetUserextsDir()
	if err != nil {
		common.LogError("Locating userexts folder: %v", err)
	} else if err := userext.EnsureDir(userextsDir); err != nil {
		common.LogWarn("%v", err)
	}

	a.publisher = presence.NewPublisher(presence.Dialer(common.DiscordClientID), a.reporter)
	a.publisher.Connect()

	a.ctrl = shell.New(shell.Config{
		Target:      target,
		Payload:     presence.DefaultPayload(a.bootTime),
		UserextsDir: userextsDir,
		Settings:    a.settings,
		Presence:    a.publisher,
		Launcher:    launcher{},
		NewWatcher: func(dir string, onChange func()) (shell.Watcher, error) {
			return userext.NewWatcher(dir, common.UserextsDebounce, onChange)
		},
		Go:   func(fn func()) { go fn() },
		Main: func(fn func()) { glib.IdleAdd(fn) },
	})

	if platform.StayResidentWithoutWindows() {
		a.app.Hold()
	}

	if platform.SupportsTray() {
		a.tray = NewTrayIndicator(a)
		go a.tray.Run()
	}
}

// openSettings opens the settings file, falling back to in-memory
// defaults when it cannot be located.
func (a *Application) openSettings() *config.Store {
	path, err := config.DefaultPath()
	if err != nil {
		common.LogError("Locating settings: %v", err)
		path = filepath.Join(os.TempDir(), common.ConfigDirName, common.SettingsFileName)
	}

	store, err := config.Open(path)
	if err != nil {
		common.LogWarn("Using default settings: %v", err)
	}
	return store
}

// onActivate creates the window on first activation and raises it on
// every later one (dock click, second launch, tray).
func (a *Application) onActivate() {
	if a.window != nil {
		a.window.Present()
		return
	}

	a.window = NewMainWindow(a)
	a.window.Show()
	a.ctrl.WindowCreated()
}

// onShutdown releases the presence connection, the watcher and the tray.
func (a *Application) onShutdown() {
	common.LogInfo("Shutting down")
	if a.ctrl != nil {
		a.ctrl.Shutdown()
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			common.LogDebug("Closing presence: %v", err)
		}
	}
	if a.tray != nil {
		a.tray.Quit()
	}
}

// windowClosed forgets the window so the next activation builds a new one.
func (a *Application) windowClosed() {
	a.window = nil
	a.ctrl.Detach()
}

// setupAppIcon sets up the application icon
func (a *Application) setupAppIcon() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}

	iconTheme := gtk.IconThemeGetForDisplay(display)
	if iconTheme == nil {
		return
	}

	// GTK4 looks for theme subdirectories (like "hicolor") inside these paths
	if appDir, err := common.GetAppDir(); err == nil {
		iconTheme.AddSearchPath(filepath.Join(appDir, "assets", "icons"))
	}
	if cwd, err := os.Getwd(); err == nil {
		iconTheme.AddSearchPath(filepath.Join(cwd, "assets", "icons"))
	}

	gtk.WindowSetDefaultIconName(common.ConfigDirName)
}

// GetVersion returns the application version
func (a *Application) GetVersion() string {
	return a.version
}

// showWindow activates the application, creating the window if needed.
func (a *Application) showWindow() {
	a.app.Activate()
}

// Quit closes the application
func (a *Application) Quit() {
	a.app.Quit()
}
