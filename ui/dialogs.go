package ui

import (
	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// dialogReporter shows errors raised off the main loop as modal dialogs.
type dialogReporter struct {
	app *Application
}

// ReportError may be called from any goroutine.
func (r *dialogReporter) ReportError(title, message string) {
	glib.IdleAdd(func() {
		var parent *gtk.Window
		if r.app.window != nil {
			parent = &r.app.window.window.Window
		}
		showErrorDialog(parent, title, message)
	})
}

// showErrorDialog displays an error dialog, modal to parent when set.
func showErrorDialog(parent *gtk.Window, title, message string) {
	dialog := adw.NewMessageDialog(parent, title, message)
	dialog.AddResponse("ok", "OK")
	dialog.SetDefaultResponse("ok")
	dialog.SetCloseResponse("ok")
	dialog.SetModal(parent != nil)
	dialog.Present()
}
