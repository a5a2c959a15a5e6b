package article

import "errors"

// ErrNotFound indicates no article exists for the requested ID.
var ErrNotFound = errors.New("article: not found")

// Collection is an ordered, immutable set of articles as served to the
// presentation layer. The order is the sorted order from the aggregator.
type Collection struct {
	articles []Article
	byID     map[string]int
}

// NewCollection builds a collection over the given articles. The slice is
// taken as-is; callers sort before constructing.
func NewCollection(articles []Article) *Collection {
	byID := make(map[string]int, len(articles))
	for i, a := range articles {
		byID[a.ID] = i
	}
	return &Collection{articles: articles, byID: byID}
}

// Len returns the number of articles.
func (c *Collection) Len() int { return len(c.articles) }

// All returns every article in sorted order.
func (c *Collection) All() []Article { return c.articles }

// ByID returns the article with the given ID.
func (c *Collection) ByID(id string) (Article, error) {
	i, ok := c.byID[id]
	if !ok {
		return Article{}, ErrNotFound
	}
	return c.articles[i], nil
}

// Adjacent returns the articles one position before and after the article
// with the given ID. A nil pointer marks a boundary position.
func (c *Collection) Adjacent(id string) (prev, next *Article, err error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, nil, ErrNotFound
	}
	if i > 0 {
		prev = &c.articles[i-1]
	}
	if i < len(c.articles)-1 {
		next = &c.articles[i+1]
	}
	return prev, next, nil
}
