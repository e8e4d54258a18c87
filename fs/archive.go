package fs

import (
	"fmt"
	"html/template"
	"io"
	iofs "io/fs"
	"net/url"
	"path"
	"strings"
)

// DefaultArchiveTitle is the heading of the archive page.
const DefaultArchiveTitle = "Site Snapshot Index"

// Archive renders a static HTML index of a snapshot directory: one
// collapsible section per content tree, nested sections per directory,
// and view/download links per file.
type Archive struct {
	Title string
	// BaseURL prefixes every link. Empty means links relative to the
	// snapshot root.
	BaseURL string
}

// ArchiveNode is a directory or file in the archive index.
type ArchiveNode struct {
	ID       string
	Name     string
	URL      string
	Children []*ArchiveNode
}

// IsDir reports whether n is a directory node.
func (n *ArchiveNode) IsDir() bool {
	return n.URL == ""
}

type archivePage struct {
	Title    string
	Sections []*ArchiveNode
}

// Build reads the text and html trees of fsys into archive sections.
// Entries are listed in name order; a missing tree is omitted.
func (a *Archive) Build(fsys iofs.FS) ([]*ArchiveNode, error) {
	var ids int
	var sections []*ArchiveNode
	for _, tree := range []string{TextDir, HTMLDir} {
		info, err := iofs.Stat(fsys, tree)
		if err != nil || !info.IsDir() {
			continue
		}
		children, err := a.build(fsys, tree, tree, &ids)
		if err != nil {
			return nil, err
		}
		sections = append(sections, &ArchiveNode{ID: tree, Name: tree, Children: children})
	}
	return sections, nil
}

func (a *Archive) build(fsys iofs.FS, dir, tree string, ids *int) ([]*ArchiveNode, error) {
	entries, err := iofs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	var nodes []*ArchiveNode
	for _, e := range entries {
		p := path.Join(dir, e.Name())
		if e.IsDir() {
			*ids++
			children, err := a.build(fsys, p, tree, ids)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, &ArchiveNode{
				ID:       fmt.Sprintf("accordion-%d", *ids),
				Name:     e.Name(),
				Children: children,
			})
			continue
		}
		if !strings.HasSuffix(e.Name(), ".txt") && !strings.HasSuffix(e.Name(), ".html") {
			continue
		}
		nodes = append(nodes, &ArchiveNode{Name: e.Name(), URL: a.link(p)})
	}
	return nodes, nil
}

func (a *Archive) link(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	escaped := strings.Join(segments, "/")
	if a.BaseURL == "" {
		return escaped
	}
	return strings.TrimRight(a.BaseURL, "/") + "/" + escaped
}

// Write renders the archive page for fsys to w.
func (a *Archive) Write(w io.Writer, fsys iofs.FS) error {
	sections, err := a.Build(fsys)
	if err != nil {
		return err
	}
	title := a.Title
	if title == "" {
		title = DefaultArchiveTitle
	}
	return archiveTemplate.Execute(w, archivePage{Title: title, Sections: sections})
}

var archiveTemplate = template.Must(template.New("archive").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <title>{{.Title}}</title>
  <link href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.0/dist/css/bootstrap.min.css" rel="stylesheet" />
  <script src="https://cdn.jsdelivr.net/npm/bootstrap@5.3.0/dist/js/bootstrap.bundle.min.js"></script>
  <style>
    body { padding: 2rem; }
    ul { padding-left: 1rem; }
    .btn { font-size: 0.8rem; }
  </style>
</head>
<body>
  <div class="container">
    <h1 class="mb-3">{{.Title}}</h1>
    <p class="text-muted">Directory of all structured text and HTML content.</p>
    <div class="accordion" id="rootAccordion">
{{- range .Sections}}
      <div class="accordion-item">
        <h2 class="accordion-header" id="heading-{{.ID}}">
          <button class="accordion-button collapsed" type="button" data-bs-toggle="collapse" data-bs-target="#collapse-{{.ID}}" aria-expanded="false" aria-controls="collapse-{{.ID}}">{{.Name}}</button>
        </h2>
        <div id="collapse-{{.ID}}" class="accordion-collapse collapse" aria-labelledby="heading-{{.ID}}" data-bs-parent="#rootAccordion">
          <div class="accordion-body">{{template "entries" .Children}}</div>
        </div>
      </div>
{{- end}}
    </div>
  </div>
</body>
</html>
{{define "entries"}}
<ul class="list-unstyled">
{{- range .}}
{{- if .IsDir}}
  <li>
    <div class="accordion" id="{{.ID}}">
      <div class="accordion-item">
        <h2 class="accordion-header" id="heading-{{.ID}}">
          <button class="accordion-button collapsed" type="button" data-bs-toggle="collapse" data-bs-target="#collapse-{{.ID}}" aria-expanded="false" aria-controls="collapse-{{.ID}}">{{.Name}}</button>
        </h2>
        <div id="collapse-{{.ID}}" class="accordion-collapse collapse" aria-labelledby="heading-{{.ID}}" data-bs-parent="#{{.ID}}">
          <div class="accordion-body">{{template "entries" .Children}}</div>
        </div>
      </div>
    </div>
  </li>
{{- else}}
  <li class="ms-3 mb-2">
    <strong>{{.Name}}</strong><br/>
    <a href="{{.URL}}" class="btn btn-sm btn-primary me-2" target="_blank">View</a>
    <a href="{{.URL}}" download class="btn btn-sm btn-secondary">Download</a>
  </li>
{{- end}}
{{- end}}
</ul>
{{- end}}
`))
