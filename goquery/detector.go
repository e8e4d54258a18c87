package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitesnap"
)

// Detector picks the site profile that fits a page.
// Profiles whose base URL shares the page's host win outright. Otherwise
// the first generic profile (one without a base URL) whose content
// selector matches the page is chosen.
type Detector struct {
	profiles []*sitesnap.Profile
	content  []goquery.Matcher
	fallback *sitesnap.Profile
}

// NewDetector creates a Detector over profiles, tried in order. fallback is
// returned when nothing matches. Returns EINVALID if a content selector
// cannot be parsed.
func NewDetector(profiles []*sitesnap.Profile, fallback *sitesnap.Profile) (*Detector, error) {
	d := &Detector{profiles: profiles, fallback: fallback}
	for _, p := range profiles {
		m, err := CompileSelector(p.ContentSelector)
		if err != nil {
			return nil, err
		}
		d.content = append(d.content, m)
	}
	return d, nil
}

// Detect returns the profile for the page at pageURL with the given HTML.
func (d *Detector) Detect(pageURL, html string) *sitesnap.Profile {
	if host := hostOf(pageURL); host != "" {
		for _, p := range d.profiles {
			if p.BaseURL != "" && hostOf(p.BaseURL) == host {
				return p
			}
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return d.fallback
	}
	for i, p := range d.profiles {
		if p.BaseURL != "" {
			continue
		}
		if doc.FindMatcher(d.content[i]).Length() > 0 {
			return p
		}
	}
	return d.fallback
}

// hostOf returns the lowercased host of rawURL without a leading "www.".
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
