package highlighter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"jjcolor/internal/lang"
	"jjcolor/internal/log"
	"jjcolor/internal/readfile"
	"jjcolor/internal/text"
)

const (
	DefaultDocumentExpiration = 10 * time.Minute
	DefaultDocumentCleanup    = 30 * time.Minute

	sniffBytes = 2048
)

// Document is a loaded input file.
type Document struct {
	Path    string
	Lang    lang.ID
	Text    string
	Doc     *text.Doc
	ModTime time.Time
}

// WithLang returns a copy of d treated as id. The cached entry is left
// alone.
func (d *Document) WithLang(id lang.ID) *Document {
	c := *d
	c.Lang = id
	return &c
}

// DocumentCache keeps loaded files keyed by absolute path. An entry is
// reused only while the file's modification time is unchanged.
type DocumentCache struct {
	cache *gocache.Cache
}

func NewDocumentCache(expiration time.Duration, cleanup time.Duration) *DocumentCache {
	return &DocumentCache{cache: gocache.New(expiration, cleanup)}
}

func (c *DocumentCache) Load(path string) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if value, found := c.cache.Get(abs); found {
		doc, ok := value.(*Document)
		switch {
		case !ok:
			log.Error(log.CatHighlight, "wrong type assertion when getting document", "path", abs)
		case doc.ModTime.Equal(info.ModTime()):
			log.Debug(log.CatHighlight, "document cache hit", "path", abs)
			return doc, nil
		}
	}

	src, err := readfile.ReadNormalized(abs)
	if err != nil {
		return nil, err
	}
	head := src
	if len(head) > sniffBytes {
		head = head[:sniffBytes]
	}

	doc := &Document{
		Path:    abs,
		Lang:    lang.DetectWithContent(abs, head),
		Text:    src,
		Doc:     text.NewDocument(src),
		ModTime: info.ModTime(),
	}
	c.cache.Set(abs, doc, gocache.DefaultExpiration)
	return doc, nil
}

func (c *DocumentCache) Invalidate(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		c.cache.Delete(abs)
	}
}

func (c *DocumentCache) Flush() {
	c.cache.Flush()
}
