//go:build linux

package platform

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	fileManagerName = "org.freedesktop.FileManager1"
	fileManagerPath = dbus.ObjectPath("/org/freedesktop/FileManager1")
	showFoldersCall = fileManagerName + ".ShowFolders"
)

// ShowFolder asks the desktop's file manager to open the folder at uri
// over the session bus.
func ShowFolder(ctx context.Context, uri string) error {
	conn, err := dbus.ConnectSessionBus(dbus.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("connecting to session bus: %w", err)
	}
	defer conn.Close()

	obj := conn.Object(fileManagerName, fileManagerPath)
	call := obj.CallWithContext(ctx, showFoldersCall, 0, []string{uri}, "")
	if call.Err != nil {
		return fmt.Errorf("%s: %w", showFoldersCall, call.Err)
	}
	return nil
}
