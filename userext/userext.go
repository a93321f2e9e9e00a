// Package userext loads user extensions: stylesheets and scripts the user
// drops into the userexts folder, injected into the page after every load.
package userext

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yllada/pxls-desktop/common"
)

// Kind is the type of a user extension.
type Kind int

const (
	KindCSS Kind = iota
	KindScript
)

// String returns the short name used in log lines.
func (k Kind) String() string {
	switch k {
	case KindCSS:
		return "css"
	case KindScript:
		return "js"
	default:
		return "unknown"
	}
}

// KindOf classifies a file name by its suffix.
func KindOf(name string) (Kind, bool) {
	switch {
	case strings.HasSuffix(name, ".css"):
		return KindCSS, true
	case strings.HasSuffix(name, ".js"):
		return KindScript, true
	default:
		return 0, false
	}
}

// Extension is one file found in the userexts folder.
type Extension struct {
	Name    string
	Path    string
	Kind    Kind
	Content string
}

// Injector applies extensions to the loaded page.
type Injector interface {
	// InsertCSS adds source as a user stylesheet.
	InsertCSS(name, source string)
	// ExecuteScript runs source in the page's own script context.
	ExecuteScript(name, source string)
}

// Result summarizes one Load call.
type Result struct {
	Loaded []string
	Err    error
}

var log = common.Named("userext")

// EnsureDir creates the userexts folder if it is missing.
func EnsureDir(dir string) error {
	if err := common.EnsureDir(dir); err != nil {
		return common.WrapError(err, "failed to create userexts folder")
	}
	return nil
}

// Scan lists the extensions directly inside dir in directory enumeration
// order; it does not sort. A missing dir yields nothing and no error. A file
// that cannot be read is skipped and reported in the joined error while the
// remaining entries are still returned.
func Scan(dir string) ([]Extension, error) {
	f, err := os.Open(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, common.WrapError(err, "failed to open userexts folder")
	}
	defer f.Close()

	// (*os.File).ReadDir keeps the order the filesystem returns, unlike
	// os.ReadDir which sorts by name.
	entries, err := f.ReadDir(-1)
	if err != nil && len(entries) == 0 {
		return nil, common.WrapError(err, "failed to list userexts folder")
	}

	var (
		exts []Extension
		errs []error
	)
	for _, entry := range entries {
		kind, ok := KindOf(entry.Name())
		if !ok {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w %s: %v", common.ErrUserextRead, entry.Name(), err))
			continue
		}

		exts = append(exts, Extension{
			Name:    entry.Name(),
			Path:    path,
			Kind:    kind,
			Content: string(data),
		})
	}

	return exts, errors.Join(errs...)
}

// Load scans dir and hands every extension to inj. Failures are logged and
// never stop the remaining files from loading.
func Load(dir string, inj Injector) Result {
	exts, err := Scan(dir)
	if err != nil {
		log.Warn("%v", err)
	}

	res := Result{Err: err}
	for _, ext := range exts {
		switch ext.Kind {
		case KindCSS:
			inj.InsertCSS(ext.Name, ext.Content)
		case KindScript:
			inj.ExecuteScript(ext.Name, ext.Content)
		}
		log.Info("Loaded user extension %s %s", ext.Kind, ext.Name)
		res.Loaded = append(res.Loaded, ext.Name)
	}
	return res
}
