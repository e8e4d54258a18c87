package crawl

import (
	"fmt"
	"net/url"
	"time"
)

// DisplayPath shortens a URL for progress output. It shows the path only
// and keeps the end of long paths, which is the more informative part.
func DisplayPath(rawURL string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		p = u.EscapedPath()
		if p == "" {
			p = "/"
		}
	}
	if maxLen < 4 {
		return p[:min(len(p), maxLen)]
	}
	if len(p) <= maxLen {
		return p
	}
	return "..." + p[len(p)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatSummary renders a one-line summary of a snapshot walk.
func FormatSummary(r *Result, elapsed time.Duration) string {
	return fmt.Sprintf("Saved %d pages (%s), %d failed, %d skipped in %s",
		r.Saved, FormatBytes(r.Bytes), r.Failed, r.Skipped, elapsed.Round(time.Millisecond))
}
