package sitesnap

import "strings"

// ExtractionResult holds the content extracted from one page.
type ExtractionResult struct {
	// Title is the document title, if any.
	Title string

	// RawHTML is the serialized main-content region with scripts and
	// styles removed.
	RawHTML string

	// Text is the structured plain-text rendering of the region.
	Text string

	// ReferencedDocuments lists absolute URLs of downloadable documents
	// linked from the region, in first-seen order without duplicates.
	ReferencedDocuments []string
}

// Extractor extracts the main content region of an HTML page.
type Extractor interface {
	// Extract parses html and renders its main content region.
	// Relative links are resolved against baseURL.
	// Returns ENOCONTENT if no content region exists.
	Extract(html string, baseURL string) (*ExtractionResult, error)
}

// LinkExtractor collects link targets from a page's navigable region.
type LinkExtractor interface {
	// ExtractLinks returns the normalized absolute URLs of every anchor in
	// the page's primary region. Malformed hrefs are skipped.
	ExtractLinks(html string, baseURL string) ([]string, error)
}

// TagRole classifies how the text renderer treats an element.
type TagRole int

// Tag roles for the text renderer.
const (
	RoleTransparent TagRole = iota
	RoleSkip
	RoleHeading
	RoleParagraph
	RoleControl
	RoleList
	RoleListItem
)

var roleNames = map[TagRole]string{
	RoleTransparent: "transparent",
	RoleSkip:        "skip",
	RoleHeading:     "heading",
	RoleParagraph:   "paragraph",
	RoleControl:     "control",
	RoleList:        "list",
	RoleListItem:    "list-item",
}

// String returns the configuration name of the role.
func (r TagRole) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return "unknown"
}

// ParseTagRole returns the role with the given configuration name.
func ParseTagRole(s string) (TagRole, error) {
	for role, name := range roleNames {
		if strings.EqualFold(name, s) {
			return role, nil
		}
	}
	return RoleTransparent, Errorf(EINVALID, "unknown tag role %q", s)
}

// DefaultRoles returns the tag table used when a profile does not override it.
// Tags missing from the table are transparent.
func DefaultRoles() map[string]TagRole {
	return map[string]TagRole{
		"script": RoleSkip,
		"style":  RoleSkip,
		"nav":    RoleSkip,
		"footer": RoleSkip,
		"h1":     RoleHeading,
		"h2":     RoleHeading,
		"h3":     RoleHeading,
		"h4":     RoleHeading,
		"h5":     RoleHeading,
		"h6":     RoleHeading,
		"p":      RoleParagraph,
		"button": RoleControl,
		"ul":     RoleList,
		"ol":     RoleList,
		"li":     RoleListItem,
	}
}

// TextLine is one unit of rendered text.
type TextLine struct {
	// Depth is the indentation level; each level is two spaces.
	Depth int

	// Text is the line content without indentation.
	Text string

	// Attached lines follow the previous line directly instead of
	// starting a new block.
	Attached bool
}

// String returns the indented line.
func (l TextLine) String() string {
	return strings.Repeat("  ", l.Depth) + l.Text
}

// JoinLines assembles rendered lines into the final text. Lines that are
// blank after trimming are dropped. Blocks are separated by a blank line;
// attached lines are separated from their predecessor by a single newline.
func JoinLines(lines []TextLine) string {
	var b strings.Builder
	for _, l := range lines {
		if strings.TrimSpace(l.Text) == "" {
			continue
		}
		if b.Len() > 0 {
			if l.Attached {
				b.WriteString("\n")
			} else {
				b.WriteString("\n\n")
			}
		}
		b.WriteString(l.String())
	}
	return b.String()
}

// PhraseFilter drops boilerplate text. Matching is case-insensitive on the
// trimmed text: Exact phrases must match the whole text, Prefixes the start.
type PhraseFilter struct {
	Exact    []string `yaml:"exact" json:"exact"`
	Prefixes []string `yaml:"prefixes" json:"prefixes"`
}

// Match reports whether text is boilerplate. A nil filter matches nothing.
func (f *PhraseFilter) Match(text string) bool {
	if f == nil {
		return false
	}
	t := strings.ToLower(strings.TrimSpace(text))
	for _, p := range f.Exact {
		if t == strings.ToLower(p) {
			return true
		}
	}
	for _, p := range f.Prefixes {
		if strings.HasPrefix(t, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// DefaultPhraseFilter returns the boilerplate phrases common to government
// and nonprofit CMS templates.
func DefaultPhraseFilter() *PhraseFilter {
	return &PhraseFilter{
		Exact: []string{
			"body",
			"intro",
			"hero",
			"expand all",
			"collapse all",
			"skip to main content",
			"title",
			"last updated",
			"last updated:",
			"spanish language toggle",
			"español",
			"breadcrumbs",
			"your browser is not supported",
			"switch to chrome, edge, firefox or safari",
			"main page content",
			"source",
		},
		Prefixes: []string{
			"last updated",
		},
	}
}
