// Package common provides shared constants, types, utilities, and interfaces
// used throughout the Pxls Desktop application.
//
// This package serves as the foundation for cross-cutting concerns:
//
//   - Constants: application metadata, file names, presence and site defaults
//   - Errors: sentinel errors for consistent error handling across packages
//   - Interfaces: the Logger and ErrorReporter abstractions
//   - Logger: leveled logging to stdout and a rotated file
//   - Utils: configuration, userexts and executable directory lookup
//
// # Usage
//
//	import "github.com/yllada/pxls-desktop/common"
//
//	common.LogInfo("Pxls URL: %s", target)
//
//	log := common.Named("userext")
//	log.Warn("skipping %s: %v", name, err)
//
//	if errors.Is(err, common.ErrConfigLoad) {
//	    // Settings file was corrupt; defaults are in effect
//	}
package common
