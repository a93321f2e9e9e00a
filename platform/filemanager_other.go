//go:build !linux

package platform

import (
	"context"
	"errors"
)

// ErrNoFileManager is returned where no file manager service exists.
var ErrNoFileManager = errors.New("no file manager service")

// ShowFolder is only available over D-Bus.
func ShowFolder(ctx context.Context, uri string) error {
	return ErrNoFileManager
}
