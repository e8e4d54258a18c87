package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/sitesnap"
	"github.com/fwojciec/sitesnap/crawl"
	"github.com/fwojciec/sitesnap/fs"
	"github.com/fwojciec/sitesnap/goquery"
	snapslog "github.com/fwojciec/sitesnap/slog"
)

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	structure, err := c.discover(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitesnap.ErrorMessage(err))
		return err
	}

	if err := fs.WriteStructure(c.Output, structure); err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to write %s: %v\n", c.Output, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Discovered %d pages, wrote %s\n", len(structure.URLs()), c.Output)
	return nil
}

func (c *DiscoverCmd) discover(deps *Dependencies) (sitesnap.Structure, error) {
	profile, err := resolveProfile(deps, c.Profile, c.URL)
	if err != nil {
		return nil, err
	}

	pages := c.Page
	if len(pages) == 0 && c.URL == "" {
		pages = profile.Pages
	}
	if len(pages) > 0 {
		base := c.URL
		if base == "" {
			base = profile.BaseURL
		}
		return crawl.StaticStructure(base, pages)
	}

	seeds, err := c.seeds(profile)
	if err != nil {
		return nil, err
	}

	mode := c.Mode
	if mode == "" {
		mode = profile.Mode
	}
	m, err := crawl.ParseMode(mode)
	if err != nil {
		return nil, err
	}
	order, err := crawl.ParseOrder(c.Order)
	if err != nil {
		return nil, err
	}

	links, err := goquery.NewLinkExtractor(profile.Regions())
	if err != nil {
		return nil, err
	}

	d := &crawl.Discoverer{
		Fetcher:  deps.Fetcher,
		Links:    snapslog.NewLoggingLinkExtractor(links, deps.Logger),
		Blocked:  profile.Blocked(),
		Mode:     m,
		Order:    order,
		Progress: discoverProgress(deps),
	}

	var structure sitesnap.Structure
	for _, seed := range seeds {
		fmt.Fprintf(deps.Stdout, "Discovering %s\n", seed)
		root, err := d.Discover(deps.Ctx, seed, c.RootPath)
		if err != nil {
			return nil, err
		}
		structure = append(structure, root)
	}
	return structure, nil
}

// seeds returns the root URLs to crawl: the URL argument, else one per
// profile section below the profile's base URL.
func (c *DiscoverCmd) seeds(profile *sitesnap.Profile) ([]string, error) {
	if c.URL != "" {
		return []string{c.URL}, nil
	}
	if profile.BaseURL == "" {
		return nil, sitesnap.Errorf(sitesnap.EINVALID, "a URL is required: profile %q has no base URL", profile.Name)
	}
	base := strings.TrimRight(profile.BaseURL, "/")
	if len(profile.Sections) == 0 {
		return []string{base}, nil
	}
	seeds := make([]string, 0, len(profile.Sections))
	for _, s := range profile.Sections {
		seeds = append(seeds, base+"/"+strings.Trim(s, "/"))
	}
	return seeds, nil
}

func discoverProgress(deps *Dependencies) crawl.ProgressFunc {
	return func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s (+%d links, %d outside)\n",
				event.Completed, event.Total, crawl.DisplayPath(event.URL, 60), event.Links, event.Outside)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] ✗ %s: %s\n",
				event.Completed, event.Total, crawl.DisplayPath(event.URL, 60), sitesnap.ErrorMessage(event.Error))
		}
	}
}
