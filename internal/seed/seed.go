// Package seed loads the demonstration content shown on a fresh clinic site.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tuaha311/aesthetics-clinic/internal/model"
	"github.com/tuaha311/aesthetics-clinic/internal/repository"
	apperrors "github.com/tuaha311/aesthetics-clinic/pkg/errors"
	"github.com/tuaha311/aesthetics-clinic/pkg/security"
	"github.com/tuaha311/aesthetics-clinic/pkg/slug"
)

const (
	AdminUsername = "admin"
	AdminEmail    = "admin@example.com"
	AdminPassword = "admin123"

	placeholderTreatment = "treatments/placeholder.jpg"
	placeholderTeam      = "team/placeholder.jpg"
	placeholderBlog      = "blog/placeholder.jpg"
)

// Seeder replaces the site content with the demonstration dataset.
type Seeder struct {
	repos  *repository.Repositories
	hasher security.PasswordHasher
	now    func() time.Time
}

func New(repos *repository.Repositories, hasher security.PasswordHasher) *Seeder {
	return &Seeder{repos: repos, hasher: hasher, now: model.Now}
}

// Run wipes treatments, team members, testimonials and blog posts and loads them again.
// Contacts and users are kept; the admin account is created when missing.
func (s *Seeder) Run(ctx context.Context) error {
	author, err := s.ensureAdmin(ctx)
	if err != nil {
		return err
	}
	if err := s.clean(ctx); err != nil {
		return err
	}

	byName, err := s.createTreatments(ctx)
	if err != nil {
		return err
	}
	if err := s.createTeam(ctx); err != nil {
		return err
	}
	if err := s.createTestimonials(ctx, byName); err != nil {
		return err
	}
	if err := s.createPosts(ctx, author); err != nil {
		return err
	}

	log.Info().
		Int("treatments", len(treatments)).
		Int("team_members", len(team)).
		Int("testimonials", len(testimonials)).
		Int("blog_posts", len(posts)).
		Msg("sample data loaded")
	return nil
}

func (s *Seeder) ensureAdmin(ctx context.Context) (*model.User, error) {
	u, err := s.repos.Users.GetByUsername(ctx, AdminUsername)
	if err == nil {
		return u, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, err
	}

	hash, err := s.hasher.Hash(AdminPassword)
	if err != nil {
		return nil, err
	}
	u = &model.User{
		Username:     AdminUsername,
		Email:        AdminEmail,
		PasswordHash: hash,
		IsStaff:      true,
		IsSuperuser:  true,
		IsActive:     true,
	}
	if err := s.repos.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	log.Info().Str("username", AdminUsername).Msg("created admin user")
	return u, nil
}

func wipe[T any](ctx context.Context, store repository.Store[T], id func(T) uuid.UUID) error {
	rows, err := store.Find(ctx, repository.Query{})
	if err != nil {
		return err
	}
	for _, row := range rows {
		if err := store.Delete(ctx, id(row)); err != nil {
			return err
		}
	}
	return nil
}

// clean removes testimonials before treatments so none is left orphaned.
func (s *Seeder) clean(ctx context.Context) error {
	steps := []struct {
		name string
		run  func() error
	}{
		{"testimonials", func() error {
			return wipe[model.Testimonial](ctx, s.repos.Testimonials, func(r model.Testimonial) uuid.UUID { return r.ID })
		}},
		{"treatments", func() error {
			return wipe[model.Treatment](ctx, s.repos.Treatments, func(r model.Treatment) uuid.UUID { return r.ID })
		}},
		{"team members", func() error {
			return wipe[model.TeamMember](ctx, s.repos.Team, func(r model.TeamMember) uuid.UUID { return r.ID })
		}},
		{"blog posts", func() error {
			return wipe[model.BlogPost](ctx, s.repos.Posts, func(r model.BlogPost) uuid.UUID { return r.ID })
		}},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return fmt.Errorf("failed to clear %s: %w", step.name, err)
		}
	}
	log.Debug().Msg("cleared existing content")
	return nil
}

func (s *Seeder) createTreatments(ctx context.Context) (map[string]uuid.UUID, error) {
	byName := make(map[string]uuid.UUID, len(treatments))
	for _, t := range treatments {
		tr := &model.Treatment{
			Name:         t.name,
			Slug:         slug.Make(t.name),
			Description:  t.description,
			WhatToExpect: t.whatToExpect,
			PriceRange:   t.priceRange,
			Duration:     t.duration,
			Image:        placeholderTreatment,
			Category:     t.category,
			Featured:     t.featured,
		}
		if err := s.repos.Treatments.Create(ctx, tr); err != nil {
			return nil, err
		}
		byName[t.name] = tr.ID

		for i, f := range t.faqs {
			faq := &model.TreatmentFAQ{
				TreatmentID: tr.ID,
				Question:    f.question,
				Answer:      f.answer,
				Order:       i + 1,
			}
			if err := s.repos.FAQs.Create(ctx, faq); err != nil {
				return nil, err
			}
		}
		log.Debug().Str("treatment", tr.Name).Msg("created treatment")
	}
	return byName, nil
}

func (s *Seeder) createTeam(ctx context.Context) error {
	for i, m := range team {
		member := &model.TeamMember{
			Name:  m.name,
			Role:  m.role,
			Bio:   m.bio,
			Image: placeholderTeam,
			Order: i + 1,
		}
		if err := s.repos.Team.Create(ctx, member); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) createTestimonials(ctx context.Context, byName map[string]uuid.UUID) error {
	today := s.now()
	for _, t := range testimonials {
		tm := &model.Testimonial{
			Name:     t.name,
			Quote:    t.quote,
			Date:     today,
			Featured: t.featured,
		}
		if id, ok := byName[t.treatment]; ok {
			tm.TreatmentID = uuid.NullUUID{UUID: id, Valid: true}
		}
		if err := s.repos.Testimonials.Create(ctx, tm); err != nil {
			return err
		}
	}
	return nil
}

// createPosts spaces publication dates a week apart so the newest post comes first.
func (s *Seeder) createPosts(ctx context.Context, author *model.User) error {
	now := s.now()
	for i, p := range posts {
		post := &model.BlogPost{
			Title:         p.title,
			Slug:          slug.Make(p.title),
			AuthorID:      author.ID,
			Content:       p.content,
			FeaturedImage: placeholderBlog,
			Excerpt:       p.excerpt,
			PublishedDate: now.AddDate(0, 0, -7*(len(posts)-1-i)),
			Featured:      i == len(posts)-1,
		}
		if err := s.repos.Posts.Create(ctx, post); err != nil {
			return err
		}
	}
	return nil
}
