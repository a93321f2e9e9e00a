// Package site resolves the Pxls instance the shell loads and answers the
// questions that depend on it: which hosts are trusted, which clipboard
// URLs are templates, and which requests need the desktop User-Agent.
package site

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/gobwas/glob"
	"github.com/yllada/pxls-desktop/common"
)

// DefaultURL is the instance used when no URL file can be read.
var DefaultURL = mustParse(common.DefaultPxlsURL)

var log = common.Named("site")

// Resolve reads the first readable file among paths and parses its trimmed
// content as the target URL. Every failure is logged and the next candidate
// tried; when none succeeds a copy of DefaultURL is returned. Resolve never
// fails.
func Resolve(paths ...string) *url.URL {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Warn("Cannot read %s: %v", path, err)
			}
			continue
		}

		u, err := Parse(string(data))
		if err != nil {
			log.Warn("Ignoring %s: %v", path, err)
			continue
		}
		return u
	}

	log.Info("Using default URL %s", DefaultURL)
	u := *DefaultURL
	return &u
}

// Parse parses s as an absolute http(s) URL after trimming surrounding
// whitespace. Errors wrap common.ErrInvalidURL.
func Parse(s string) (*url.URL, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", common.ErrInvalidURL)
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q is not an http(s) URL", common.ErrInvalidURL, s)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: %q has no host", common.ErrInvalidURL, s)
	}
	return u, nil
}

// SameHost reports whether u points at the target's host. Like the DOM's
// URL.host, the comparison includes the port unless it is the scheme's
// default.
func SameHost(target, u *url.URL) bool {
	if target == nil || u == nil {
		return false
	}
	return strings.EqualFold(hostKey(u), hostKey(target))
}

var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
}

// hostKey returns u.Host with a default port dropped.
func hostKey(u *url.URL) string {
	port := u.Port()
	if port != "" && port == defaultPorts[strings.ToLower(u.Scheme)] {
		return strings.TrimSuffix(u.Host, ":"+port)
	}
	return u.Host
}

// TemplateURL validates clipboard text as a template link for target: it must
// parse, live on the target's host, and address the root path. Query and
// fragment carry the template and are kept.
func TemplateURL(raw string, target *url.URL) (*url.URL, bool) {
	u, err := Parse(raw)
	if err != nil {
		return nil, false
	}
	if !SameHost(target, u) {
		return nil, false
	}
	if u.Path != "" && u.Path != "/" {
		return nil, false
	}
	return u, true
}

// UserAgentOverride replaces the User-Agent for requests matching Pattern.
type UserAgentOverride struct {
	Pattern   string
	UserAgent string
	matcher   glob.Glob
}

// NewUserAgentOverride compiles pattern. A '*' matches any run of
// characters, including slashes.
func NewUserAgentOverride(pattern, userAgent string) (*UserAgentOverride, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling %q: %w", pattern, err)
	}
	return &UserAgentOverride{Pattern: pattern, UserAgent: userAgent, matcher: g}, nil
}

// OAuthOverride returns the override used for Google sign-in.
func OAuthOverride() *UserAgentOverride {
	o, err := NewUserAgentOverride(common.OAuthURLPattern, common.DesktopUserAgent)
	if err != nil {
		panic(err)
	}
	return o
}

// Match reports whether uri is covered by the override.
func (o *UserAgentOverride) Match(uri string) bool {
	return o != nil && o.matcher.Match(uri)
}

func mustParse(s string) *url.URL {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}
