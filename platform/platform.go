// Package platform holds the operating-system conventions the application
// lifecycle follows.
package platform

import (
	"runtime"
	"strings"
)

// StayResidentWithoutWindows reports whether the process keeps running
// after its last window closes. macOS applications stay active until the
// user quits explicitly; everywhere else closing the last window quits.
func StayResidentWithoutWindows() bool {
	return stayResident(runtime.GOOS)
}

func stayResident(goos string) bool {
	return goos == "darwin"
}

// SupportsTray reports whether the tray indicator can run its own loop
// next to GTK. The macOS status bar must be driven from the main thread,
// which GTK already owns.
func SupportsTray() bool {
	return supportsTray(runtime.GOOS)
}

func supportsTray(goos string) bool {
	return goos != "darwin"
}

// InstallerEvent is a lifecycle argument passed by the Windows installer.
type InstallerEvent string

const (
	EventInstall   InstallerEvent = "--squirrel-install"
	EventUpdated   InstallerEvent = "--squirrel-updated"
	EventUninstall InstallerEvent = "--squirrel-uninstall"
	EventObsolete  InstallerEvent = "--squirrel-obsolete"
)

// ParseInstallerEvent returns the installer event named by args[1], if any.
func ParseInstallerEvent(args []string) (InstallerEvent, bool) {
	if len(args) < 2 {
		return "", false
	}
	switch ev := InstallerEvent(args[1]); ev {
	case EventInstall, EventUpdated, EventUninstall, EventObsolete:
		return ev, true
	default:
		return "", false
	}
}

// ToolkitArgs drops installer arguments that GApplication would reject as
// unknown options, such as --squirrel-firstrun on the first launch.
func ToolkitArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if i > 0 && strings.HasPrefix(arg, "--squirrel-") {
			continue
		}
		out = append(out, arg)
	}
	return out
}
