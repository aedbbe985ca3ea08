package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/tuaha311/aesthetics-clinic/pkg/markdown"
)

const excerptLength = 200

type BlogPost struct {
	Base
	Title         string    `json:"title" db:"title"`
	Slug          string    `json:"slug" db:"slug"`
	AuthorID      uuid.UUID `json:"author_id" db:"author_id"`
	Content       string    `json:"content" db:"content"`
	FeaturedImage string    `json:"featured_image" db:"featured_image"`
	Excerpt       string    `json:"excerpt" db:"excerpt"`
	PublishedDate time.Time `json:"published_date" db:"published_date"`
	Featured      bool      `json:"featured" db:"featured"`
	Timestamps

	Author *User `json:"author,omitempty" db:"-"`
}

func (p BlogPost) String() string { return p.Title }

func (p BlogPost) URL() string { return "/blog/" + p.Slug + "/" }

// Summary is the stored excerpt, or a plain-text cut of the content when none was written.
func (p BlogPost) Summary() string {
	if p.Excerpt != "" {
		return p.Excerpt
	}
	return markdown.Excerpt(p.Content, excerptLength)
}

// Touch defaults the published date to now and maintains the timestamps.
func (p *BlogPost) Touch(now time.Time) {
	if p.PublishedDate.IsZero() {
		p.PublishedDate = now
	}
	p.Timestamps.Touch(now)
}
