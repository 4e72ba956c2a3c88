// Package detector classifies a page into a site family by hostname so the
// extraction chain can pick a dedicated extractor.
package detector

import (
	"net/url"
	"strings"
)

// SiteID names a site family with a dedicated extractor.
type SiteID string

const (
	Reddit    SiteID = "reddit"
	Wikipedia SiteID = "wikipedia"
)

// SiteFamily is either Generic (zero value) or a known site.
type SiteFamily struct {
	ID SiteID
}

// Generic is the family of pages with no dedicated extractor.
var Generic = SiteFamily{}

// Known reports whether the family has a dedicated extractor.
func (f SiteFamily) Known() bool {
	return f.ID != ""
}

func (f SiteFamily) String() string {
	if !f.Known() {
		return "generic"
	}
	return string(f.ID)
}

// hostSuffixes maps registrable domains to their family.
var hostSuffixes = []struct {
	suffix string
	id     SiteID
}{
	{"reddit.com", Reddit},
	{"redd.it", Reddit},
	{"wikipedia.org", Wikipedia},
}

// Classify resolves the site family of u. It is pure: the same URL always
// yields the same family.
func Classify(u *url.URL) SiteFamily {
	if u == nil {
		return Generic
	}
	return ClassifyHost(u.Hostname())
}

// ClassifyHost resolves the site family of a bare hostname.
func ClassifyHost(host string) SiteFamily {
	host = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
	if host == "" {
		return Generic
	}
	for _, h := range hostSuffixes {
		if host == h.suffix || strings.HasSuffix(host, "."+h.suffix) {
			return SiteFamily{ID: h.id}
		}
	}
	return Generic
}
