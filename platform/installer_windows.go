//go:build windows

package platform

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/yllada/pxls-desktop/common"
)

// HandleInstallerEvent manages Start menu and desktop shortcuts when the
// installer launches the executable. It returns true when the process must
// exit immediately without starting the UI.
func HandleInstallerEvent(args []string) bool {
	ev, ok := ParseInstallerEvent(args)
	if !ok {
		return false
	}

	exe, err := os.Executable()
	if err != nil {
		common.LogError("Installer event %s: %v", ev, err)
		return true
	}
	// Update.exe lives one level above the versioned app-x.y.z directory.
	updateExe := filepath.Join(filepath.Dir(filepath.Dir(exe)), "Update.exe")
	target := filepath.Base(exe)

	var flag string
	switch ev {
	case EventInstall, EventUpdated:
		flag = "--createShortcut=" + target
	case EventUninstall:
		flag = "--removeShortcut=" + target
	case EventObsolete:
		return true
	}

	cmd := exec.Command(updateExe, flag)
	if err := cmd.Start(); err != nil {
		common.LogError("Installer event %s: running %s: %v", ev, updateExe, err)
		return true
	}
	_ = cmd.Process.Release()
	common.LogInfo("Installer event %s handled", ev)
	return true
}
