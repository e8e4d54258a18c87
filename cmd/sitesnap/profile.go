package main

import (
	"github.com/fwojciec/sitesnap"
	"github.com/fwojciec/sitesnap/goquery"
	"github.com/fwojciec/sitesnap/yaml"
)

// resolveProfile loads the named profile. For yaml.AutoProfile it fetches
// probeURL and lets a goquery.Detector choose among the built-in profiles.
func resolveProfile(deps *Dependencies, name, probeURL string) (*sitesnap.Profile, error) {
	if name != yaml.AutoProfile {
		return yaml.LoadProfile(name)
	}
	if probeURL == "" {
		return nil, sitesnap.Errorf(sitesnap.EINVALID, "profile auto needs a URL to inspect")
	}

	builtins, err := yaml.LoadBuiltinProfiles()
	if err != nil {
		return nil, err
	}
	var candidates []*sitesnap.Profile
	var fallback *sitesnap.Profile
	for _, p := range builtins {
		if p.Name == yaml.DefaultProfile {
			fallback = p
			continue
		}
		candidates = append(candidates, p)
	}
	d, err := goquery.NewDetector(candidates, fallback)
	if err != nil {
		return nil, err
	}

	html, err := deps.Fetcher.Fetch(deps.Ctx, probeURL)
	if err != nil {
		return nil, err
	}
	p := d.Detect(probeURL, html)
	deps.Logger.Info("detected profile", "url", probeURL, "profile", p.Name)
	return p, nil
}
