// Package ui provides the graphical user interface for Pxls Desktop.
// This file contains the system tray indicator functionality.
package ui

import (
	"sync"

	"fyne.io/systray"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/yllada/pxls-desktop/common"
	"github.com/yllada/pxls-desktop/config"
	"github.com/yllada/pxls-desktop/shell"
)

// Pre-generated icons for performance.
var (
	iconPresenceOn  = GeneratePresenceOnIcon()
	iconPresenceOff = GeneratePresenceOffIcon()
)

// TrayIndicator manages the system tray icon and menu.
// It offers quick access to the window and the presence without opening
// the menubar.
type TrayIndicator struct {
	app *Application

	mu    sync.Mutex
	ready bool
}

// NewTrayIndicator creates a new system tray indicator.
func NewTrayIndicator(app *Application) *TrayIndicator {
	return &TrayIndicator{app: app}
}

// Run starts the system tray indicator.
// This should be called from a goroutine as it blocks.
func (t *TrayIndicator) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the systray is ready.
func (t *TrayIndicator) onReady() {
	systray.SetTitle(common.AppName)

	t.mu.Lock()
	t.ready = true
	t.mu.Unlock()
	t.SetPresenceEnabled(t.app.settings.Bool(config.KeyEnableRichPresence))

	showItem := systray.AddMenuItem("Open Pxls", "Show the canvas window")
	go func() {
		for range showItem.ClickedCh {
			glib.IdleAdd(t.app.showWindow)
		}
	}()

	updateItem := systray.AddMenuItem("Update Rich Presence", "Republish the Discord status")
	go func() {
		for range updateItem.ClickedCh {
			glib.IdleAdd(func() {
				t.dispatch(shell.ActionPresenceUpdate)
			})
		}
	}()

	systray.AddSeparator()

	quitItem := systray.AddMenuItem("Quit", "Close "+common.AppName)
	go func() {
		for range quitItem.ClickedCh {
			glib.IdleAdd(t.app.Quit)
		}
	}()
}

// onExit is called when the systray is about to exit.
func (t *TrayIndicator) onExit() {
	t.mu.Lock()
	t.ready = false
	t.mu.Unlock()
	common.LogInfo("Tray indicator cleanup completed")
}

// dispatch runs a menu action through the window when one exists so its
// checkbox state follows.
func (t *TrayIndicator) dispatch(id shell.ActionID) {
	if t.app.window != nil {
		t.app.window.Dispatch(id)
		return
	}
	if err := t.app.ctrl.Dispatch(id); err != nil {
		common.LogError("Tray action %s: %v", id, err)
	}
}

// SetPresenceEnabled switches the icon to match the presence setting.
func (t *TrayIndicator) SetPresenceEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.ready {
		return
	}

	if enabled {
		systray.SetIcon(iconPresenceOn)
		systray.SetTooltip(common.AppName + " - Rich presence on")
	} else {
		systray.SetIcon(iconPresenceOff)
		systray.SetTooltip(common.AppName + " - Rich presence off")
	}
}

// Quit stops the tray loop.
func (t *TrayIndicator) Quit() {
	systray.Quit()
}
