package ui

import (
	"context"

	"github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	"github.com/diamondburned/gotk4/pkg/gio/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/yllada/pxls-desktop/common"
	"github.com/yllada/pxls-desktop/shell"
	"github.com/yllada/pxls-desktop/site"
)

// WebView wraps the WebKit view showing the canvas. It implements
// shell.Window and userext.Injector.
type WebView struct {
	view      *webkit.WebView
	ctrl      *shell.Controller
	log       common.Logger
	override  *site.UserAgentOverride
	defaultUA string
	inspector bool
}

// NewWebView creates the view and wires its signals to ctrl.
func NewWebView(ctrl *shell.Controller) *WebView {
	wv := &WebView{
		view:     webkit.NewWebView(),
		ctrl:     ctrl,
		log:      common.Named("webview"),
		override: site.OAuthOverride(),
	}
	wv.view.SetHExpand(true)
	wv.view.SetVExpand(true)

	settings := wv.view.Settings()
	settings.SetEnableDeveloperExtras(true)
	wv.defaultUA = settings.UserAgent()

	wv.view.ConnectDecidePolicy(wv.onDecidePolicy)
	wv.view.ConnectLoadChanged(wv.onLoadChanged)
	wv.view.Inspector().ConnectClosed(func() {
		wv.inspector = false
	})

	return wv
}

// Widget returns the GTK widget to embed.
func (wv *WebView) Widget() *gtk.Widget {
	return &wv.view.Widget
}

// LoadURL navigates the view.
func (wv *WebView) LoadURL(uri string) {
	wv.view.LoadURI(uri)
}

// URL returns the address currently shown, fragment included.
func (wv *WebView) URL() string {
	return wv.view.URI()
}

// Reload reloads the current page.
func (wv *WebView) Reload() {
	wv.view.Reload()
}

// ToggleDevTools shows the web inspector, or closes it when open.
func (wv *WebView) ToggleDevTools() {
	inspector := wv.view.Inspector()
	if wv.inspector {
		inspector.Close()
		wv.inspector = false
		return
	}
	inspector.Show()
	wv.inspector = true
}

// InsertCSS adds a user stylesheet to the page.
func (wv *WebView) InsertCSS(name, source string) {
	sheet := webkit.NewUserStyleSheet(source, webkit.UserContentInjectTopFrame, webkit.UserStyleLevelUser, nil, nil)
	wv.view.UserContentManager().AddStyleSheet(sheet)
}

// ExecuteScript evaluates source in the page's main world.
func (wv *WebView) ExecuteScript(name, source string) {
	wv.view.EvaluateJavascript(context.Background(), source, len(source), "", name, func(res gio.AsyncResulter) {
		if _, err := wv.view.EvaluateJavascriptFinish(res); err != nil {
			wv.log.Warn("Script %s failed: %v", name, err)
		}
	})
}

// onDecidePolicy routes new-window requests through the controller and
// applies the user agent override on navigations.
func (wv *WebView) onDecidePolicy(decision webkit.PolicyDecisioner, typ webkit.PolicyDecisionType) bool {
	nav, ok := decision.(*webkit.NavigationPolicyDecision)
	if !ok {
		return false
	}
	uri := nav.NavigationAction().Request().URI()

	switch typ {
	case webkit.PolicyDecisionTypeNewWindowAction:
		// Allowed windows load in place instead of opening a second view.
		nav.Ignore()
		if wv.ctrl.NewWindowPolicy(uri) == shell.DecisionAllow {
			wv.LoadURL(uri)
		}
		return true

	case webkit.PolicyDecisionTypeNavigationAction:
		wv.applyUserAgent(uri)
	}
	return false
}

func (wv *WebView) applyUserAgent(uri string) {
	settings := wv.view.Settings()
	want := wv.defaultUA
	if wv.override.Match(uri) {
		want = wv.override.UserAgent
	}
	if settings.UserAgent() != want {
		wv.log.Debug("Using user agent %q for %s", want, uri)
		settings.SetUserAgent(want)
	}
}

// onLoadChanged injects user extensions once a page has finished loading.
// Stylesheets from the previous page are dropped first so a reload does
// not stack them.
func (wv *WebView) onLoadChanged(event webkit.LoadEvent) {
	switch event {
	case webkit.LoadStarted:
		wv.view.UserContentManager().RemoveAllStyleSheets()
	case webkit.LoadFinished:
		wv.ctrl.LoadFinished(wv)
		common.GetLogger().CheckRotation()
	}
}
