//go:build windows

package presence

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Endpoints returns the named pipes a Discord client may listen on.
func Endpoints() []string {
	paths := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		paths = append(paths, fmt.Sprintf(`\\.\pipe\discord-ipc-%d`, i))
	}
	return paths
}

// dialEndpoint opens the client end of a named pipe. Opening a pipe does
// not block, so ctx is only checked up front.
func dialEndpoint(ctx context.Context, path string) (io.ReadWriteCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_RDWR, 0)
}
