// Package common provides shared constants, types, and utilities
// used across the Pxls Desktop application.
package common

import "time"

// Application metadata.
const (
	// AppID is the unique identifier for the application.
	AppID = "space.pxls.Desktop"
	// AppName is the display name of the application.
	AppName = "Pxls Desktop"
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = "pxls-desktop"
)

// File names used by the application.
const (
	SettingsFileName = "settings.yaml"
	URLFileName      = "pxls-url.txt"
	UserextsDirName  = "userexts"
	LogFileName      = "pxls-desktop.log"
)

// Remote site defaults.
const (
	// DefaultPxlsURL is loaded when no pxls-url.txt can be read.
	DefaultPxlsURL = "https://pxls.space"
	// OAuthURLPattern matches the Google sign-in pages embedded by the site.
	OAuthURLPattern = "https://accounts.google.com/o/oauth2/*"
	// DesktopUserAgent is sent to OAuthURLPattern; Google refuses to
	// authenticate embedded webviews that announce themselves.
	DesktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/86.0.4240.111 Safari/537.36"
)

// Rich presence.
const (
	// DiscordClientID is the Discord application registered for Pxls.
	DiscordClientID = "771579064750047252"
	// PresenceState is the status line shown to contacts.
	PresenceState = "Placing pixels"
	// PresenceImageKey is the uploaded asset key of the large image.
	PresenceImageKey = "logo"
	// PresenceTimeout bounds a single connect or RPC round trip.
	PresenceTimeout = 10 * time.Second
)

// UI constants.
const (
	// DefaultWindowWidth is the main window width before it is maximized.
	DefaultWindowWidth = 1280
	// DefaultWindowHeight is the main window height before it is maximized.
	DefaultWindowHeight = 800
	// TrayIconSize is the size of the system tray icon.
	TrayIconSize = 22
	// ToastTimeout is how long toasts stay on screen, in seconds.
	ToastTimeout = 2
)

// UserextsDebounce coalesces bursts of filesystem events in the userexts folder.
const UserextsDebounce = 250 * time.Millisecond

// BusTimeout bounds a session bus call made from the UI loop.
const BusTimeout = 2 * time.Second
