package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitesnap"
)

// Ensure FileStore implements sitesnap.ContentStore at compile time.
var _ sitesnap.ContentStore = (*FileStore)(nil)

// ManifestEntry describes one saved page.
type ManifestEntry struct {
	URL                 string   `json:"url"`
	Title               string   `json:"title"`
	HTML                string   `json:"html"`
	Text                string   `json:"text"`
	Hash                string   `json:"hash"`
	ReferencedDocuments []string `json:"referenced_documents,omitempty"`
}

// FileStore implements sitesnap.ContentStore with atomic update semantics.
// Pages are saved to a temporary directory, then moved into place on Commit,
// replacing the previous snapshot entirely.
type FileStore struct {
	baseDir string
	name    string

	prepare sync.Once
	prepErr error

	mu      sync.Mutex
	entries map[string]ManifestEntry
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
		entries: make(map[string]ManifestEntry),
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Dir returns the directory holding the committed snapshot.
func (s *FileStore) Dir() string {
	return s.finalDir()
}

// ContentHash returns the hex xxhash of content.
func ContentHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// Save writes the page's HTML and text files. It is safe for concurrent use.
func (s *FileStore) Save(ctx context.Context, page *sitesnap.Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.prepare.Do(func() {
		// Leftovers of an interrupted run must not leak into this snapshot.
		s.prepErr = os.RemoveAll(s.tempDir())
	})
	if s.prepErr != nil {
		return s.prepErr
	}

	htmlPath, textPath, err := PagePaths(page.URL)
	if err != nil {
		return err
	}
	if err := s.write(htmlPath, page.HTML); err != nil {
		return err
	}
	if err := s.write(textPath, page.Text); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[page.URL] = ManifestEntry{
		URL:                 page.URL,
		Title:               page.Title,
		HTML:                htmlPath,
		Text:                textPath,
		Hash:                ContentHash(page.Text),
		ReferencedDocuments: page.ReferencedDocuments,
	}
	return nil
}

func (s *FileStore) write(rel, content string) error {
	fullPath := filepath.Join(s.tempDir(), filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

// Commit writes the manifest and replaces the final directory with
// everything saved so far.
func (s *FileStore) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}

	s.mu.Lock()
	entries := make([]ManifestEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.Unlock()
	sort.Slice(entries, func(i, j int) bool { return entries[i].URL < entries[j].URL })

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.tempDir(), Manifest), append(data, '\n'), 0644); err != nil {
		return err
	}

	// Remove existing final directory if present
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards everything saved since the last commit.
func (s *FileStore) Abort() error {
	s.mu.Lock()
	s.entries = make(map[string]ManifestEntry)
	s.mu.Unlock()
	return os.RemoveAll(s.tempDir())
}

// ReadManifest loads the manifest of a committed snapshot directory.
func ReadManifest(dir string) ([]ManifestEntry, error) {
	data, err := os.ReadFile(filepath.Join(dir, Manifest))
	if err != nil {
		return nil, err
	}
	var entries []ManifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, sitesnap.Errorf(sitesnap.EINVALID, "invalid manifest: %v", err)
	}
	return entries, nil
}
