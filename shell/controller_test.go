package shell

import (
	"context"
	"errors"
	"net/url"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yllada/pxls-desktop/common"
	"github.com/yllada/pxls-desktop/config"
	"github.com/yllada/pxls-desktop/presence"
)

type fakeWindow struct {
	loaded   []string
	url      string
	reloads  int
	devtools int
}

func (w *fakeWindow) LoadURL(uri string) { w.loaded = append(w.loaded, uri); w.url = uri }
func (w *fakeWindow) URL() string        { return w.url }
func (w *fakeWindow) Reload()            { w.reloads++ }
func (w *fakeWindow) ToggleDevTools()    { w.devtools++ }

type fakeClipboard struct {
	text    string
	err     error
	written []string
}

func (c *fakeClipboard) ReadText(done func(string, error)) { done(c.text, c.err) }
func (c *fakeClipboard) WriteText(text string)             { c.written = append(c.written, text) }

type fakeLauncher struct {
	opened []string
	err    error
}

func (l *fakeLauncher) OpenURI(uri string) error {
	l.opened = append(l.opened, uri)
	return l.err
}

type fakeNotifier struct{ toasts []string }

func (n *fakeNotifier) Toast(msg string) { n.toasts = append(n.toasts, msg) }

type presenceCall struct {
	op      string
	payload presence.Payload
}

type fakePresence struct {
	mu    sync.Mutex
	calls []presenceCall
}

func (p *fakePresence) Publish(_ context.Context, payload presence.Payload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, presenceCall{op: "publish", payload: payload})
	return nil
}

func (p *fakePresence) Clear(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, presenceCall{op: "clear"})
	return nil
}

type fakeWatcher struct {
	onChange func()
	started  bool
	stopped  bool
}

func (w *fakeWatcher) Start() error { w.started = true; return nil }
func (w *fakeWatcher) Stop()        { w.stopped = true }

type harness struct {
	ctrl      *Controller
	window    *fakeWindow
	clipboard *fakeClipboard
	launcher  *fakeLauncher
	notifier  *fakeNotifier
	presence  *fakePresence
	settings  *config.Store
	watcher   *fakeWatcher
	payload   presence.Payload
	dir       string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	settings, err := config.Open(filepath.Join(dir, common.SettingsFileName))
	require.NoError(t, err)
	target, _ := url.Parse("https://pxls.space")

	h := &harness{
		window:    &fakeWindow{url: "https://pxls.space/"},
		clipboard: &fakeClipboard{},
		launcher:  &fakeLauncher{},
		notifier:  &fakeNotifier{},
		presence:  &fakePresence{},
		settings:  settings,
		payload:   presence.DefaultPayload(time.Unix(1_700_000_000, 0)),
		dir:       filepath.Join(dir, common.UserextsDirName),
	}
	h.ctrl = New(Config{
		Target:      target,
		Payload:     h.payload,
		UserextsDir: h.dir,
		Settings:    settings,
		Presence:    h.presence,
		Launcher:    h.launcher,
		NewWatcher: func(dir string, onChange func()) (Watcher, error) {
			h.watcher = &fakeWatcher{onChange: onChange}
			return h.watcher, nil
		},
		Go: func(fn func()) { fn() },
	})
	h.ctrl.Attach(h.window, h.clipboard, h.notifier)
	return h
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "allow", DecisionAllow.String())
	assert.Equal(t, "external", DecisionExternal.String())
	assert.Equal(t, "deny", DecisionDeny.String())
	assert.Equal(t, "unknown", Decision(9).String())
}

func TestMenu_EveryItemIsDispatchable(t *testing.T) {
	h := newHarness(t)

	labels := []string{}
	for _, group := range Menu() {
		labels = append(labels, group.Label)
		for _, item := range group.Items {
			_, ok := h.ctrl.actions[item.Action]
			assert.True(t, ok, "no action registered for %s", item.Action)
		}
	}
	assert.Equal(t, []string{"Rich Presence", "Template", "Developer"}, labels)

	err := h.ctrl.Dispatch("nope")
	assert.True(t, errors.Is(err, ErrUnknownAction))
}

func TestToggleOffThenOn(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.ctrl.Checked(ActionPresenceToggle))

	require.NoError(t, h.ctrl.Dispatch(ActionPresenceToggle))
	assert.False(t, h.ctrl.Checked(ActionPresenceToggle))
	require.NoError(t, h.ctrl.Dispatch(ActionPresenceToggle))
	assert.True(t, h.ctrl.Checked(ActionPresenceToggle))

	require.Len(t, h.presence.calls, 2)
	assert.Equal(t, "clear", h.presence.calls[0].op)
	assert.Equal(t, "publish", h.presence.calls[1].op)
	assert.Equal(t, h.payload, h.presence.calls[1].payload)
}

func TestToggle_PersistsSetting(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.ctrl.SetRichPresence(false))

	reloaded, err := config.Open(h.settings.Path())
	require.NoError(t, err)
	assert.False(t, reloaded.Bool(config.KeyEnableRichPresence))
}

type failingSettings struct{ value bool }

func (s *failingSettings) Bool(string) bool { return s.value }
func (s *failingSettings) SetBool(string, bool) error {
	return errors.New("read-only file system")
}

func TestToggle_SaveFailureLeavesPresenceAlone(t *testing.T) {
	h := newHarness(t)
	h.ctrl.cfg.Settings = &failingSettings{value: true}

	err := h.ctrl.Dispatch(ActionPresenceToggle)

	require.Error(t, err)
	assert.True(t, h.ctrl.Checked(ActionPresenceToggle), "checkbox keeps the saved state")
	assert.Empty(t, h.presence.calls, "presence still matches the checkbox")
}

func TestWindowCreated_PublishesOnlyWhenEnabled(t *testing.T) {
	h := newHarness(t)

	h.ctrl.WindowCreated()
	require.Len(t, h.presence.calls, 1)
	assert.Equal(t, "publish", h.presence.calls[0].op)

	require.NoError(t, h.settings.SetBool(config.KeyEnableRichPresence, false))
	h.ctrl.WindowCreated()
	assert.Len(t, h.presence.calls, 1)
}

func TestUpdatePresence(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.ctrl.Dispatch(ActionPresenceUpdate))
	require.NoError(t, h.ctrl.Dispatch(ActionPresenceUpdate))

	require.Len(t, h.presence.calls, 2)
	assert.Equal(t, h.presence.calls[0], h.presence.calls[1])
}

func TestOpenTemplateFromClipboard(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		err      error
		navigate bool
	}{
		{"template", "https://pxls.space/#template=https://i.imgur.com/a.png&ox=1&oy=2", nil, true},
		{"bare root", "https://pxls.space", nil, true},
		{"not a url", "hello there", nil, false},
		{"empty", "", nil, false},
		{"other host", "https://example.com/#template=x", nil, false},
		{"sub path", "https://pxls.space/faq", nil, false},
		{"clipboard error", "https://pxls.space/", errors.New("no text"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.clipboard.text = tt.text
			h.clipboard.err = tt.err

			require.NoError(t, h.ctrl.Dispatch(ActionTemplateOpen))

			if tt.navigate {
				require.Len(t, h.window.loaded, 1)
				assert.Contains(t, h.window.loaded[0], "pxls.space")
			} else {
				assert.Empty(t, h.window.loaded)
			}
			assert.Empty(t, h.notifier.toasts, "template loading never shows feedback")
		})
	}
}

func TestCopyURL(t *testing.T) {
	h := newHarness(t)
	h.window.url = "https://pxls.space/#x=10&y=20&scale=4"

	require.NoError(t, h.ctrl.Dispatch(ActionTemplateCopy))

	assert.Equal(t, []string{"https://pxls.space/#x=10&y=20&scale=4"}, h.clipboard.written)
	assert.Len(t, h.notifier.toasts, 1)
}

func TestActionsWithoutWindowAreNoops(t *testing.T) {
	h := newHarness(t)
	h.ctrl.Detach()
	h.clipboard.text = "https://pxls.space/"

	require.NoError(t, h.ctrl.Dispatch(ActionTemplateOpen))
	require.NoError(t, h.ctrl.Dispatch(ActionTemplateCopy))
	require.NoError(t, h.ctrl.Dispatch(ActionDevTools))

	assert.Empty(t, h.window.loaded)
	assert.Empty(t, h.clipboard.written)
	assert.Zero(t, h.window.devtools)
}

func TestNewWindowPolicy(t *testing.T) {
	tests := []struct {
		uri      string
		decision Decision
		opened   bool
	}{
		{"https://pxls.space/", DecisionAllow, false},
		{"https://pxls.space/auth/discord", DecisionAllow, false},
		{"http://PXLS.space/info", DecisionAllow, false},
		{"https://github.com/pxlsspace/Pxls", DecisionExternal, true},
		{"https://pxls.space.evil.example/", DecisionExternal, true},
		{"https://pxls.space:8080/", DecisionExternal, true},
		{"https://pxls.space:443/info", DecisionAllow, false},
		{"mailto:admin@pxls.space", DecisionExternal, true},
		{"about:blank", DecisionDeny, false},
		{"javascript:alert(1)", DecisionDeny, false},
		{"relative/path", DecisionDeny, false},
		{"http://[::1", DecisionDeny, false},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			h := newHarness(t)

			assert.Equal(t, tt.decision, h.ctrl.NewWindowPolicy(tt.uri))
			if tt.opened {
				assert.Len(t, h.launcher.opened, 1)
			} else {
				assert.Empty(t, h.launcher.opened)
			}
		})
	}
}

func TestNewWindowPolicy_LauncherFailureStillCancels(t *testing.T) {
	h := newHarness(t)
	h.launcher.err = errors.New("no browser")

	assert.Equal(t, DecisionExternal, h.ctrl.NewWindowPolicy("https://example.com"))
}

func TestOpenUserextsFolder(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.ctrl.Dispatch(ActionUserextsOpen))

	assert.DirExists(t, h.dir)
	require.Len(t, h.launcher.opened, 1)
	assert.Equal(t, FileURI(h.dir), h.launcher.opened[0])
}

func TestWatchUserexts(t *testing.T) {
	h := newHarness(t)
	assert.False(t, h.ctrl.Checked(ActionUserextsWatch))

	require.NoError(t, h.ctrl.Dispatch(ActionUserextsWatch))
	assert.True(t, h.ctrl.Checked(ActionUserextsWatch))
	require.NotNil(t, h.watcher)
	assert.True(t, h.watcher.started)

	h.watcher.onChange()
	assert.Equal(t, 1, h.window.reloads)

	require.NoError(t, h.ctrl.Dispatch(ActionUserextsWatch))
	assert.False(t, h.ctrl.Checked(ActionUserextsWatch))
	assert.True(t, h.watcher.stopped)
}

func TestDevTools(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.ctrl.Dispatch(ActionDevTools))
	assert.Equal(t, 1, h.window.devtools)
}

func TestLoadFinished(t *testing.T) {
	h := newHarness(t)

	res := h.ctrl.LoadFinished(nil)
	assert.Empty(t, res.Loaded, "missing userexts folder injects nothing")
	assert.NoError(t, res.Err)
}

func TestFileURI(t *testing.T) {
	assert.Equal(t, "file:///home/user/userexts", FileURI("/home/user/userexts"))
	assert.Equal(t, "file:///home/user/my%20exts", FileURI("/home/user/my exts"))
}
