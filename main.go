// Package main provides the entry point for Pxls Desktop.
// Pxls Desktop wraps the pxls.space canvas in a native GTK4 window with a
// menubar, Discord rich presence, user extensions and clipboard template
// loading.
//
// Usage:
//
//	pxls-desktop
//
// Files:
//
//	The canvas URL is read from pxls-url.txt in the configuration folder or
//	next to the executable. User extensions (.css and .js) are loaded from
//	the userexts folder in the configuration folder.
package main

import (
	"fmt"
	"os"

	"github.com/yllada/pxls-desktop/common"
	"github.com/yllada/pxls-desktop/platform"
	"github.com/yllada/pxls-desktop/ui"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
// Default values are used for local development builds
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

func main() {
	// The Windows installer launches the executable with lifecycle
	// arguments and expects it to exit once shortcuts are handled.
	if platform.HandleInstallerEvent(os.Args) {
		os.Exit(0)
	}

	if err := common.InitLogger(common.LogConfig{
		Level:       common.LevelInfo,
		EnableFile:  true,
		MaxFileSize: 5 * 1024 * 1024, // 5MB
		MaxBackups:  5,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize file logging: %v\n", err)
	}

	common.LogInfo("Starting %s v%s (build %s, commit %s)", common.AppName, appVersion, buildTime, commitSHA)
	app := ui.NewApplication(common.AppID, appVersion)
	exitCode := app.Run(platform.ToolkitArgs(os.Args))

	if exitCode != 0 {
		common.LogWarn("Application exited with code %d", exitCode)
	}
	common.CloseLogger()
	os.Exit(exitCode)
}
