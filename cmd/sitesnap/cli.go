package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/sitesnap"
	"github.com/fwojciec/sitesnap/fs"
	snaphttp "github.com/fwojciec/sitesnap/http"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Fetcher sitesnap.Fetcher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose   bool          `short:"v" env:"SITESNAP_VERBOSE" help:"Log every fetch, extraction and save to stderr"`
	Timeout   time.Duration `short:"t" default:"10s" env:"SITESNAP_TIMEOUT" help:"Fetch timeout per page"`
	UserAgent string        `name:"user-agent" default:"${user_agent}" env:"SITESNAP_USER_AGENT" help:"User-Agent header sent with every request"`

	Discover DiscoverCmd `cmd:"" help:"Discover a site's page hierarchy and write a structure file"`
	Extract  ExtractCmd  `cmd:"" help:"Snapshot every page of a structure file as HTML and text"`
	Archive  ArchiveCmd  `cmd:"" help:"Render a static HTML index of a snapshot directory"`
	Profiles ProfilesCmd `cmd:"" help:"List built-in site profiles or print one"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	URL      string   `arg:"" optional:"" help:"Root URL (default: the profile's base URL and sections)"`
	RootPath string   `name:"root-path" help:"Only follow links below this path (default: the root URL's path)"`
	Mode     string   `help:"Tree layout: hierarchy or pathtree (default: the profile's mode)"`
	Order    string   `default:"bfs" enum:"bfs,dfs" help:"Traversal order: bfs or dfs"`
	Page     []string `help:"Fixed page path; skips link discovery (repeatable)"`
	Profile  string   `short:"p" default:"default" env:"SITESNAP_PROFILE" help:"Built-in profile name, YAML file, or auto to detect from the first page"`
	Output   string   `short:"o" default:"structure.json" help:"Structure file to write"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Structure   string `arg:"" help:"Structure file produced by discover"`
	Output      string `short:"o" default:"output" env:"SITESNAP_OUTPUT" help:"Snapshot directory"`
	Profile     string `short:"p" default:"default" env:"SITESNAP_PROFILE" help:"Built-in profile name, YAML file, or auto to detect from the first page"`
	Concurrency int    `short:"c" default:"1" env:"SITESNAP_CONCURRENCY" help:"Pages processed at once"`
}

// ArchiveCmd is the "archive" subcommand.
type ArchiveCmd struct {
	Dir     string `arg:"" optional:"" default:"output" help:"Snapshot directory"`
	BaseURL string `name:"base-url" env:"SITESNAP_BASE_URL" help:"Remote location the snapshot is published at (default: relative links)"`
	Title   string `default:"${archive_title}" help:"Page heading"`
	Output  string `short:"o" default:"index.html" help:"Archive page to write"`
}

// ProfilesCmd is the "profiles" subcommand.
type ProfilesCmd struct {
	Name string `arg:"" optional:"" help:"Profile to print as YAML"`
}

// kongVars are interpolated into CLI tags.
func kongVars() map[string]string {
	return map[string]string{
		"user_agent":    snaphttp.DefaultUserAgent,
		"archive_title": fs.DefaultArchiveTitle,
	}
}
