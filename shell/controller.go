package shell

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/yllada/pxls-desktop/common"
	"github.com/yllada/pxls-desktop/config"
	"github.com/yllada/pxls-desktop/presence"
	"github.com/yllada/pxls-desktop/site"
	"github.com/yllada/pxls-desktop/userext"
)

// ErrUnknownAction is returned by Dispatch for an unregistered ActionID.
var ErrUnknownAction = errors.New("unknown action")

// Decision is the outcome of a new-window request from the page.
type Decision int

const (
	// DecisionAllow lets the trusted site navigate in place.
	DecisionAllow Decision = iota
	// DecisionExternal cancels the request and opens the URI in the
	// system's default handler.
	DecisionExternal
	// DecisionDeny cancels the request and does nothing else.
	DecisionDeny
)

// String returns a human-readable decision.
func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionExternal:
		return "external"
	case DecisionDeny:
		return "deny"
	default:
		return "unknown"
	}
}

// Config carries the application context the controller works with.
type Config struct {
	Target      *url.URL
	Payload     presence.Payload
	UserextsDir string
	Settings    Settings
	Presence    Presence
	Launcher    Launcher
	// NewWatcher creates the userexts watcher; nil disables watching.
	NewWatcher func(dir string, onChange func()) (Watcher, error)
	// Go runs blocking work off the UI loop. Defaults to a new goroutine.
	Go func(func())
	// Main schedules fn on the UI loop. Defaults to calling fn directly.
	Main func(func())
}

// Controller implements the menu actions and webview policies. All
// methods are called from the UI loop.
type Controller struct {
	cfg     Config
	log     common.Logger
	actions map[ActionID]func() error

	window    Window
	clipboard Clipboard
	notifier  Notifier

	watcher Watcher
}

// New creates a controller for cfg.
func New(cfg Config) *Controller {
	if cfg.Go == nil {
		cfg.Go = func(fn func()) { go fn() }
	}
	if cfg.Main == nil {
		cfg.Main = func(fn func()) { fn() }
	}

	c := &Controller{
		cfg: cfg,
		log: common.Named("shell"),
	}
	c.actions = map[ActionID]func() error{
		ActionPresenceUpdate: c.UpdatePresence,
		ActionPresenceToggle: func() error { return c.SetRichPresence(!c.Checked(ActionPresenceToggle)) },
		ActionTemplateOpen:   c.OpenTemplateFromClipboard,
		ActionTemplateCopy:   c.CopyURL,
		ActionUserextsOpen:   c.OpenUserextsFolder,
		ActionUserextsWatch:  func() error { return c.SetWatchUserexts(!c.Checked(ActionUserextsWatch)) },
		ActionDevTools:       c.ToggleDevTools,
	}
	return c
}

// Target returns the site the window loads.
func (c *Controller) Target() *url.URL {
	return c.cfg.Target
}

// Attach binds the controller to a newly created window.
func (c *Controller) Attach(w Window, cb Clipboard, n Notifier) {
	c.window = w
	c.clipboard = cb
	c.notifier = n
}

// Detach forgets the window after it is destroyed.
func (c *Controller) Detach() {
	c.window = nil
	c.clipboard = nil
	c.notifier = nil
}

// Dispatch runs the action registered for id. Checkbox actions flip
// their current state.
func (c *Controller) Dispatch(id ActionID) error {
	action, ok := c.actions[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, id)
	}
	return action()
}

// Checked returns the state of a checkbox action.
func (c *Controller) Checked(id ActionID) bool {
	switch id {
	case ActionPresenceToggle:
		return c.cfg.Settings.Bool(config.KeyEnableRichPresence)
	case ActionUserextsWatch:
		return c.watcher != nil
	default:
		return false
	}
}

// WindowCreated publishes the presence once if it is enabled.
func (c *Controller) WindowCreated() {
	if c.cfg.Settings.Bool(config.KeyEnableRichPresence) {
		c.publish()
	}
}

// LoadFinished injects the user extensions into the page that just loaded.
func (c *Controller) LoadFinished(inj userext.Injector) userext.Result {
	return userext.Load(c.cfg.UserextsDir, inj)
}

// UpdatePresence republishes the payload now.
func (c *Controller) UpdatePresence() error {
	c.publish()
	return nil
}

// SetRichPresence persists the checkbox state, then publishes when enabled
// or clears when disabled. When saving fails the setting keeps its old
// value and the presence is left alone, so both still agree.
func (c *Controller) SetRichPresence(enabled bool) error {
	if err := c.cfg.Settings.SetBool(config.KeyEnableRichPresence, enabled); err != nil {
		c.log.Error("Saving rich presence setting: %v", err)
		return err
	}

	if enabled {
		c.publish()
	} else {
		c.clear()
	}
	return nil
}

// OpenTemplateFromClipboard navigates to the clipboard URL when it is a
// template link for the target site. Anything else is ignored silently.
func (c *Controller) OpenTemplateFromClipboard() error {
	if c.clipboard == nil || c.window == nil {
		return nil
	}
	c.clipboard.ReadText(func(text string, err error) {
		if err != nil {
			c.log.Debug("Reading clipboard: %v", err)
			return
		}
		u, ok := site.TemplateURL(text, c.cfg.Target)
		if !ok || c.window == nil {
			return
		}
		c.log.Info("Opening template %s", u)
		c.window.LoadURL(u.String())
	})
	return nil
}

// CopyURL copies the window's current URL.
func (c *Controller) CopyURL() error {
	if c.clipboard == nil || c.window == nil {
		return nil
	}
	uri := c.window.URL()
	if uri == "" {
		return nil
	}
	c.clipboard.WriteText(uri)
	if c.notifier != nil {
		c.notifier.Toast("URL copied to clipboard")
	}
	return nil
}

// OpenUserextsFolder shows the userexts folder in the file manager,
// creating it first if needed.
func (c *Controller) OpenUserextsFolder() error {
	if err := userext.EnsureDir(c.cfg.UserextsDir); err != nil {
		return err
	}
	return c.cfg.Launcher.OpenURI(FileURI(c.cfg.UserextsDir))
}

// ToggleDevTools shows or hides the web inspector.
func (c *Controller) ToggleDevTools() error {
	if c.window != nil {
		c.window.ToggleDevTools()
	}
	return nil
}

// SetWatchUserexts starts or stops reloading the page when a user
// extension changes. The state is not persisted.
func (c *Controller) SetWatchUserexts(on bool) error {
	if !on {
		c.stopWatcher()
		return nil
	}
	if c.watcher != nil {
		return nil
	}
	if c.cfg.NewWatcher == nil {
		return fmt.Errorf("%w: %s", ErrUnknownAction, ActionUserextsWatch)
	}
	if err := userext.EnsureDir(c.cfg.UserextsDir); err != nil {
		return err
	}

	w, err := c.cfg.NewWatcher(c.cfg.UserextsDir, func() {
		c.cfg.Main(func() {
			if c.window != nil {
				c.log.Info("User extensions changed, reloading")
				c.window.Reload()
			}
		})
	})
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		w.Stop()
		return err
	}
	c.watcher = w
	return nil
}

// NewWindowPolicy decides what happens to a request from the page to open
// uri in a new window. Only the target host may navigate inside the app;
// any other web or mail link leaves for the system handler.
func (c *Controller) NewWindowPolicy(uri string) Decision {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" {
		c.log.Debug("Denying new window for %q", uri)
		return DecisionDeny
	}

	switch strings.ToLower(u.Scheme) {
	case "about", "javascript", "data", "blob", "file":
		return DecisionDeny
	}

	if site.SameHost(c.cfg.Target, u) {
		return DecisionAllow
	}

	if err := c.cfg.Launcher.OpenURI(u.String()); err != nil {
		c.log.Warn("Opening %s externally: %v", u, err)
	}
	return DecisionExternal
}

// Shutdown releases resources held by the controller.
func (c *Controller) Shutdown() {
	c.stopWatcher()
}

func (c *Controller) stopWatcher() {
	if c.watcher != nil {
		c.watcher.Stop()
		c.watcher = nil
	}
}

func (c *Controller) publish() {
	payload := c.cfg.Payload
	c.cfg.Go(func() {
		_ = c.cfg.Presence.Publish(context.Background(), payload)
	})
}

func (c *Controller) clear() {
	c.cfg.Go(func() {
		_ = c.cfg.Presence.Clear(context.Background())
	})
}

// FileURI converts a local path to a file:// URI.
func FileURI(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
