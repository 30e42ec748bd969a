package journal

import (
	"net/url"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Criteria holds the optional filter fields. Only present fields contribute
// predicates; a zero Criteria matches everything.
type Criteria struct {
	Search *string
	Mood   *string
	Tags   *string
	Date   *time.Time

	// Query matches the owner's name or email. Admin filters only.
	Query *string
}

// CriteriaFromValues builds a Criteria from request query parameters. Blank
// parameters are treated as absent.
func CriteriaFromValues(v url.Values) (Criteria, error) {
	var c Criteria
	if s := strings.TrimSpace(v.Get("search")); s != "" {
		c.Search = &s
	}
	if m := strings.TrimSpace(v.Get("mood")); m != "" {
		c.Mood = &m
	}
	if t := strings.TrimSpace(v.Get("tags")); t != "" {
		c.Tags = &t
	}
	if q := strings.TrimSpace(v.Get("query")); q != "" {
		c.Query = &q
	}
	if d := strings.TrimSpace(v.Get("date")); d != "" {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			return c, err
		}
		c.Date = &t
	}
	return c, nil
}

// apply composes predicates over an entry-scoped query. Search covers title
// and tags; feeds that also search content and author use applyFeed.
func (c Criteria) apply(q *gorm.DB) *gorm.DB {
	if c.Mood != nil {
		q = q.Where("journal_entries.mood ILIKE ?", "%"+*c.Mood+"%")
	}
	if c.Tags != nil {
		q = q.Where("journal_entries.tags ILIKE ?", "%"+*c.Tags+"%")
	}
	if c.Date != nil {
		q = q.Where("journal_entries.date = ?", c.Date.Format("2006-01-02"))
	}
	if c.Search != nil {
		s := "%" + *c.Search + "%"
		q = q.Where("journal_entries.title ILIKE ? OR journal_entries.tags ILIKE ?", s, s)
	}
	return q
}

// applyFeed composes predicates for the cross-user feeds, where search also
// covers content and the author's name, and Query matches the owner.
func (c Criteria) applyFeed(q *gorm.DB) *gorm.DB {
	if c.Mood != nil {
		q = q.Where("journal_entries.mood ILIKE ?", "%"+*c.Mood+"%")
	}
	if c.Tags != nil {
		q = q.Where("journal_entries.tags ILIKE ?", "%"+*c.Tags+"%")
	}
	if c.Date != nil {
		q = q.Where("journal_entries.date = ?", c.Date.Format("2006-01-02"))
	}
	if c.Search != nil {
		s := "%" + *c.Search + "%"
		q = q.Where(
			"journal_entries.title ILIKE ? OR journal_entries.content ILIKE ? OR journal_entries.tags ILIKE ? OR users.name ILIKE ?",
			s, s, s, s,
		)
	}
	if c.Query != nil {
		s := "%" + *c.Query + "%"
		q = q.Where("users.name ILIKE ? OR users.email ILIKE ?", s, s)
	}
	return q
}
