//go:build !windows

package platform

// HandleInstallerEvent reports whether the process must exit for an
// installer event. Only the Windows installer sends them.
func HandleInstallerEvent(args []string) bool {
	return false
}
