package knowledge

import (
	"fmt"
	"time"

	"github.com/williamleo0369-ux/quant-monitor-sub001/date"
)

// Type is the kind of content an article points to.
type Type string

const (
	TypeArticle Type = "article"
	TypeVideo   Type = "video"
	TypeLink    Type = "link"
)

// ParseType parses "article", "video" or "link". An empty string is an article.
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case "":
		return TypeArticle, nil
	case TypeArticle, TypeVideo, TypeLink:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown article type %q", ErrInvalidInput, s)
	}
}

// Article is an entry of the knowledge base. Content is Markdown.
type Article struct {
	ID       int       `json:"id"`
	Title    string    `json:"title"`
	Category string    `json:"category"`
	Type     Type      `json:"type"`
	Views    int       `json:"views"`
	Starred  bool      `json:"starred"`
	Date     date.Date `json:"date"`
	Tags     []string  `json:"tags,omitempty"`
	Content  string    `json:"content,omitempty"`
}

// RecentItem records that an article was read.
type RecentItem struct {
	ArticleID int       `json:"articleId"`
	Title     string    `json:"title"`
	ViewedAt  time.Time `json:"viewedAt"`
}

// Category is a category name with its number of articles.
type Category struct {
	Name  string
	Count int
}

// Rendered is an article with its content rendered as HTML.
type Rendered struct {
	Article
	HTML string
}
