package ui

import (
	"strings"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/yllada/pxls-desktop/common"
	"github.com/yllada/pxls-desktop/shell"
)

// MainWindow represents the main application window.
type MainWindow struct {
	app     *Application
	window  *gtk.ApplicationWindow
	toasts  *adw.ToastOverlay
	webView *WebView
	actions map[shell.ActionID]*gio.SimpleAction
}

// NewMainWindow creates the browser window. It stays hidden until Show.
func NewMainWindow(app *Application) *MainWindow {
	mw := &MainWindow{
		app:     app,
		actions: make(map[shell.ActionID]*gio.SimpleAction),
	}

	mw.window = gtk.NewApplicationWindow(&app.app.Application)
	mw.window.SetTitle(common.AppName)
	mw.window.SetDefaultSize(common.DefaultWindowWidth, common.DefaultWindowHeight)
	mw.window.SetIconName(common.ConfigDirName)
	mw.window.SetShowMenubar(true)

	mw.createLayout()
	mw.setupActions()

	mw.window.ConnectDestroy(func() {
		app.windowClosed()
	})

	return mw
}

// createLayout creates the window layout.
func (mw *MainWindow) createLayout() {
	mw.webView = NewWebView(mw.app.ctrl)

	mw.toasts = adw.NewToastOverlay()
	mw.toasts.SetChild(mw.webView.Widget())
	mw.window.SetChild(mw.toasts)

	mw.app.ctrl.Attach(mw.webView, newClipboard(mw.webView.Widget()), mw)
	mw.webView.LoadURL(mw.app.ctrl.Target().String())
}

// setupActions registers one application action per menu item and
// installs the rendered menubar.
func (mw *MainWindow) setupActions() {
	menubar := gio.NewMenu()

	for _, group := range shell.Menu() {
		section := gio.NewMenu()
		for _, item := range group.Items {
			name := actionName(item.Action)
			section.Append(item.Label, "app."+name)
			mw.addAction(name, item)
			if len(item.Accels) > 0 {
				mw.app.app.SetAccelsForAction("app."+name, item.Accels)
			}
		}
		menubar.AppendSubmenu(group.Label, section)
	}

	mw.app.app.SetMenubar(menubar)
}

func (mw *MainWindow) addAction(name string, item shell.MenuItem) {
	id := item.Action

	var action *gio.SimpleAction
	if item.Checkbox {
		action = gio.NewSimpleActionStateful(name, nil, glib.NewVariantBoolean(mw.app.ctrl.Checked(id)))
	} else {
		action = gio.NewSimpleAction(name, nil)
	}

	action.ConnectActivate(func(_ *glib.Variant) {
		mw.Dispatch(id)
	})

	mw.actions[id] = action
	mw.app.app.AddAction(action)
}

// Dispatch runs a menu action and refreshes its checkbox state.
func (mw *MainWindow) Dispatch(id shell.ActionID) {
	if err := mw.app.ctrl.Dispatch(id); err != nil {
		common.LogError("Action %s: %v", id, err)
		mw.showError("Action failed", err.Error())
	}
	mw.syncState(id)
}

// syncState copies the controller's checkbox state into the action and
// the tray.
func (mw *MainWindow) syncState(id shell.ActionID) {
	action, ok := mw.actions[id]
	if !ok || action.State() == nil {
		return
	}
	checked := mw.app.ctrl.Checked(id)
	action.SetState(glib.NewVariantBoolean(checked))

	if id == shell.ActionPresenceToggle && mw.app.tray != nil {
		mw.app.tray.SetPresenceEnabled(checked)
	}
}

// Show maximizes and presents the window once everything is wired.
func (mw *MainWindow) Show() {
	mw.window.Maximize()
	mw.window.Present()
}

// Present raises an existing window.
func (mw *MainWindow) Present() {
	mw.window.Present()
}

// Toast shows a short message over the page.
func (mw *MainWindow) Toast(message string) {
	toast := adw.NewToast(message)
	toast.SetTimeout(common.ToastTimeout)
	mw.toasts.AddToast(toast)
}

// showError displays an error dialog.
func (mw *MainWindow) showError(title, message string) {
	showErrorDialog(&mw.window.Window, title, message)
}

// actionName maps a menu action ID onto a GAction name.
func actionName(id shell.ActionID) string {
	return strings.ReplaceAll(string(id), ".", "-")
}
