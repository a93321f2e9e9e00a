package ui

import (
	"context"
	"strings"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/yllada/pxls-desktop/common"
	"github.com/yllada/pxls-desktop/platform"
)

// clipboard adapts the widget's display clipboard to shell.Clipboard.
type clipboard struct {
	cb *gdk.Clipboard
}

func newClipboard(widget *gtk.Widget) *clipboard {
	return &clipboard{cb: widget.Clipboard()}
}

// ReadText reads plain text asynchronously; done runs on the main loop.
func (c *clipboard) ReadText(done func(string, error)) {
	c.cb.ReadTextAsync(context.Background(), func(res gio.AsyncResulter) {
		text, err := c.cb.ReadTextFinish(res)
		done(text, err)
	})
}

func (c *clipboard) WriteText(text string) {
	c.cb.SetText(text)
}

// launcher opens URIs with the desktop's default handler. Folders go to
// the file manager service first so they open as a window rather than in
// whatever handles inode/directory.
type launcher struct{}

func (launcher) OpenURI(uri string) error {
	if strings.HasPrefix(uri, "file://") {
		ctx, cancel := context.WithTimeout(context.Background(), common.BusTimeout)
		defer cancel()
		err := platform.ShowFolder(ctx, uri)
		if err == nil {
			return nil
		}
		common.LogDebug("File manager service: %v", err)
	}
	return gio.AppInfoLaunchDefaultForURI(uri, nil)
}
