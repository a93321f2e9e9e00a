// Package ui provides the graphical user interface for Pxls Desktop.
//
// This package is the GTK4 host for the toolkit-independent shell package:
//
//   - Application: GTK application lifecycle (startup, activate, shutdown)
//   - MainWindow: browser window with the menubar and toast overlay
//   - WebView: WebKit view, new-window policy and user extension injection
//   - TrayIndicator: system tray integration
//
// # Architecture
//
// The UI is built on GTK4 and libadwaita using the gotk4 bindings, and
// WebKitGTK 6 for the page. Menu items come from shell.Menu and are
// registered as application actions; activating one calls
// shell.Controller.Dispatch. Everything the controller needs from the
// toolkit goes through the small interfaces in package shell, so the
// behaviour is tested there without a display.
//
// # Thread Safety
//
// GTK operations must execute on the main thread. Presence calls run on
// goroutines and the tray has its own loop; both use glib.IdleAdd() to
// schedule UI updates on the main thread.
//
// Example:
//
//	go func() {
//	    // Background work...
//	    glib.IdleAdd(func() {
//	        // Safe to update UI here
//	        showErrorDialog(parent, "Title", "Message")
//	    })
//	}()
//
// # File Organization
//
//   - app.go: Application lifecycle and main window creation
//   - main_window.go: Main window layout and menubar actions
//   - webview.go: WebKit view wiring
//   - clipboard.go: Clipboard and URI launcher adapters
//   - dialogs.go: Error dialogs
//   - tray.go: System tray indicator
//   - icons.go: Icon generation for tray
package ui
