// Package shell holds the window and menu logic of the desktop shell,
// independent of the GUI toolkit. The toolkit layer implements the small
// host interfaces below and forwards menu activations and webview events
// to a Controller.
package shell

import (
	"context"

	"github.com/yllada/pxls-desktop/presence"
)

// Window is the browser window showing the canvas.
type Window interface {
	LoadURL(uri string)
	URL() string
	Reload()
	ToggleDevTools()
}

// Clipboard is the system clipboard. ReadText may complete asynchronously.
type Clipboard interface {
	ReadText(done func(text string, err error))
	WriteText(text string)
}

// Launcher hands URIs to the operating system's default handlers.
type Launcher interface {
	OpenURI(uri string) error
}

// Notifier shows short, non-modal feedback.
type Notifier interface {
	Toast(message string)
}

// Settings is the subset of the settings store the controller uses.
type Settings interface {
	Bool(key string) bool
	SetBool(key string, value bool) error
}

// Presence publishes and clears the rich presence status.
type Presence interface {
	Publish(ctx context.Context, payload presence.Payload) error
	Clear(ctx context.Context) error
}

// Watcher is a started-on-demand folder watcher.
type Watcher interface {
	Start() error
	Stop()
}
