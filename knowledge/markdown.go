package knowledge

import (
	"bytes"

	lru "github.com/hashicorp/golang-lru"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/zeebo/blake3"
)

// Renderer converts article Markdown to HTML. Raw HTML in the source is
// omitted from the output. Results are cached by content digest.
type Renderer struct {
	md    goldmark.Markdown
	cache *lru.Cache
}

// NewRenderer returns a Renderer caching up to size documents.
func NewRenderer(size int) (*Renderer, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		cache: cache,
	}, nil
}

// Render returns the HTML of source.
func (r *Renderer) Render(source string) (string, error) {
	key := blake3.Sum256([]byte(source))
	if html, ok := r.cache.Get(key); ok {
		return html.(string), nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	html := buf.String()
	r.cache.Add(key, html)
	return html, nil
}

// Cached reports whether the HTML of source is cached.
func (r *Renderer) Cached(source string) bool {
	return r.cache.Contains(blake3.Sum256([]byte(source)))
}
