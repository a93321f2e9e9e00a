//go:build !windows

package presence

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
)

// ipcDirs lists where the Discord client creates its sockets, including the
// sandboxed Flatpak and Snap locations.
func ipcDirs() []string {
	var bases []string
	for _, env := range []string{"XDG_RUNTIME_DIR", "TMPDIR", "TMP", "TEMP"} {
		if v := os.Getenv(env); v != "" {
			bases = append(bases, v)
		}
	}
	bases = append(bases, "/tmp")

	var dirs []string
	seen := make(map[string]bool)
	for _, base := range bases {
		for _, sub := range []string{"", "app/com.discordapp.Discord", "snap.discord"} {
			dir := filepath.Join(base, sub)
			if !seen[dir] {
				seen[dir] = true
				dirs = append(dirs, dir)
			}
		}
	}
	return dirs
}

// Endpoints returns every socket path that may belong to a Discord client.
func Endpoints() []string {
	var paths []string
	for _, dir := range ipcDirs() {
		for i := 0; i < 10; i++ {
			paths = append(paths, filepath.Join(dir, fmt.Sprintf("discord-ipc-%d", i)))
		}
	}
	return paths
}

func dialEndpoint(ctx context.Context, path string) (io.ReadWriteCloser, error) {
	var d net.Dialer
	return d.DialContext(ctx, "unix", path)
}
