// Package knowledge manages the knowledge base of trading articles: listing,
// searching, editing and reading them, and the list of recently read ones.
package knowledge

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"

	"github.com/williamleo0369-ux/quant-monitor-sub001/date"
	"github.com/williamleo0369-ux/quant-monitor-sub001/kv"
)

// Key is the storage key of the knowledge base.
const Key = "knowledgeBaseData"

// AllCategories is the pseudo category matching every article.
const AllCategories = "all"

// MaxRecent is the number of recently read articles kept.
const MaxRecent = 10

var (
	ErrNotFound     = errors.New("article not found")
	ErrInvalidInput = errors.New("invalid article")
)

// Base is the knowledge base. It is not safe for concurrent use.
type Base struct {
	articles []Article
	recent   []RecentItem // newest first

	renderer *Renderer
	now      func() time.Time
	log      zerolog.Logger
}

// Option configures a Base.
type Option func(*Base)

// WithClock sets the clock used for dates and read times.
func WithClock(now func() time.Time) Option { return func(b *Base) { b.now = now } }

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(b *Base) { b.log = log.With().Str("module", "knowledge").Logger() }
}

// WithRenderer sets the Markdown renderer.
func WithRenderer(r *Renderer) Option { return func(b *Base) { b.renderer = r } }

// New returns a knowledge base holding articles.
func New(articles []Article, opts ...Option) *Base {
	b := &Base{
		articles: slices.Clone(articles),
		now:      time.Now,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.renderer == nil {
		b.renderer = defaultRenderer()
	}
	return b
}

// DefaultCacheSize is the number of rendered articles a Base caches unless
// WithRenderer is given.
const DefaultCacheSize = 64

func defaultRenderer() *Renderer {
	r, err := NewRenderer(DefaultCacheSize)
	if err != nil {
		panic(fmt.Sprintf("knowledge: default renderer: %v", err))
	}
	return r
}

// Load reads the knowledge base from store. When the key is absent the base is
// seeded with the default articles.
func Load(store kv.Store, opts ...Option) (*Base, error) {
	var data struct {
		Articles     []Article    `json:"articles"`
		RecentViewed []RecentItem `json:"recentViewed"`
	}
	found, err := kv.GetJSON(store, Key, &data)
	if err != nil {
		return nil, fmt.Errorf("loading knowledge base: %w", err)
	}
	if !found {
		data.Articles = DefaultArticles()
	}
	b := New(data.Articles, opts...)
	b.recent = data.RecentViewed
	if len(b.recent) > MaxRecent {
		b.log.Debug().Int("recent", len(b.recent)).Msg("recent reads trimmed")
		b.recent = b.recent[:MaxRecent]
	}
	b.log.Debug().Int("articles", len(b.articles)).Bool("seeded", !found).Msg("knowledge base loaded")
	return b, nil
}

// Save writes the knowledge base to store.
func (b *Base) Save(store kv.Store) error {
	data := struct {
		Articles     []Article    `json:"articles"`
		RecentViewed []RecentItem `json:"recentViewed"`
	}{b.articles, b.recent}
	if data.Articles == nil {
		data.Articles = []Article{}
	}
	if data.RecentViewed == nil {
		data.RecentViewed = []RecentItem{}
	}
	if err := kv.SetJSON(store, Key, data); err != nil {
		return fmt.Errorf("saving knowledge base: %w", err)
	}
	return nil
}

// Query selects articles.
type Query struct {
	Category    string // empty or AllCategories for every category
	Search      string // substring of title, category or tags, case insensitive
	StarredOnly bool
}

// List returns the articles matching q, newest first.
func (b *Base) List(q Query) []Article {
	fold := cases.Fold()
	search := fold.String(strings.TrimSpace(q.Search))
	var res []Article
	for _, a := range b.articles {
		if q.Category != "" && q.Category != AllCategories && a.Category != q.Category {
			continue
		}
		if q.StarredOnly && !a.Starred {
			continue
		}
		if search != "" && !matches(fold, a, search) {
			continue
		}
		res = append(res, clone(a))
	}
	slices.SortFunc(res, func(x, y Article) int {
		switch {
		case x.Date.After(y.Date):
			return -1
		case x.Date.Before(y.Date):
			return 1
		}
		return cmp.Compare(x.ID, y.ID)
	})
	return res
}

func matches(fold cases.Caser, a Article, search string) bool {
	fields := append([]string{a.Title, a.Category}, a.Tags...)
	for _, f := range fields {
		if strings.Contains(fold.String(f), search) {
			return true
		}
	}
	return false
}

// Categories returns the categories in first-seen order, preceded by
// AllCategories counting every article.
func (b *Base) Categories() []Category {
	res := []Category{{Name: AllCategories, Count: len(b.articles)}}
	index := map[string]int{}
	for _, a := range b.articles {
		i, ok := index[a.Category]
		if !ok {
			i = len(res)
			index[a.Category] = i
			res = append(res, Category{Name: a.Category})
		}
		res[i].Count++
	}
	return res
}

// Tags returns the tags by decreasing number of articles, then by name.
func (b *Base) Tags() []string {
	count := map[string]int{}
	for _, a := range b.articles {
		for _, t := range a.Tags {
			count[t]++
		}
	}
	tags := make([]string, 0, len(count))
	for t := range count {
		tags = append(tags, t)
	}
	slices.SortFunc(tags, func(x, y string) int {
		if c := cmp.Compare(count[y], count[x]); c != 0 {
			return c
		}
		return strings.Compare(x, y)
	})
	return tags
}

// Get returns the article id.
func (b *Base) Get(id int) (Article, error) {
	i := b.indexOf(id)
	if i < 0 {
		return Article{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return clone(b.articles[i]), nil
}

// Add stores a new article and returns it with its assigned id. The title is
// required; the date defaults to today.
func (b *Base) Add(a Article) (Article, error) {
	if err := validate(&a); err != nil {
		return Article{}, err
	}
	a.ID = 1
	for _, x := range b.articles {
		a.ID = max(a.ID, x.ID+1)
	}
	if a.Date.IsZero() {
		a.Date = date.Of(b.now())
	}
	a.Views = 0
	b.articles = append(b.articles, clone(a))
	b.log.Info().Int("article", a.ID).Str("title", a.Title).Msg("article added")
	return a, nil
}

// Update replaces the editable fields of an existing article. Views are kept.
func (b *Base) Update(a Article) error {
	i := b.indexOf(a.ID)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, a.ID)
	}
	if err := validate(&a); err != nil {
		return err
	}
	old := b.articles[i]
	a.Views = old.Views
	if a.Date.IsZero() {
		a.Date = old.Date
	}
	b.articles[i] = clone(a)
	for j := range b.recent {
		if b.recent[j].ArticleID == a.ID {
			b.recent[j].Title = a.Title
		}
	}
	b.log.Info().Int("article", a.ID).Msg("article updated")
	return nil
}

// Delete removes an article and its recent reads.
func (b *Base) Delete(id int) error {
	i := b.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	b.articles = slices.Delete(b.articles, i, i+1)
	b.recent = slices.DeleteFunc(b.recent, func(r RecentItem) bool { return r.ArticleID == id })
	b.log.Info().Int("article", id).Msg("article deleted")
	return nil
}

// ToggleStar flips the starred flag of an article and returns the new value.
func (b *Base) ToggleStar(id int) (bool, error) {
	i := b.indexOf(id)
	if i < 0 {
		return false, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	b.articles[i].Starred = !b.articles[i].Starred
	return b.articles[i].Starred, nil
}

// View reads an article: its views are incremented, it moves to the top of
// the recently read list, and its content is rendered.
func (b *Base) View(id int) (Rendered, error) {
	i := b.indexOf(id)
	if i < 0 {
		return Rendered{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	html, err := b.renderer.Render(b.articles[i].Content)
	if err != nil {
		return Rendered{}, fmt.Errorf("rendering article %d: %w", id, err)
	}
	b.articles[i].Views++
	a := b.articles[i]
	b.recent = slices.DeleteFunc(b.recent, func(r RecentItem) bool { return r.ArticleID == id })
	b.recent = slices.Insert(b.recent, 0, RecentItem{ArticleID: id, Title: a.Title, ViewedAt: b.now()})
	if len(b.recent) > MaxRecent {
		b.recent = b.recent[:MaxRecent]
	}
	b.log.Debug().Int("article", id).Int("views", a.Views).Msg("article viewed")
	return Rendered{Article: clone(a), HTML: html}, nil
}

// Recent returns the recently read articles, newest first.
func (b *Base) Recent() []RecentItem { return slices.Clone(b.recent) }

// Len returns the number of articles.
func (b *Base) Len() int { return len(b.articles) }

func (b *Base) indexOf(id int) int {
	return slices.IndexFunc(b.articles, func(a Article) bool { return a.ID == id })
}

func validate(a *Article) error {
	a.Title = strings.TrimSpace(a.Title)
	if a.Title == "" {
		return fmt.Errorf("%w: title is empty", ErrInvalidInput)
	}
	t, err := ParseType(string(a.Type))
	if err != nil {
		return err
	}
	a.Type = t
	return nil
}

func clone(a Article) Article {
	a.Tags = slices.Clone(a.Tags)
	return a
}
