// Package testutil provides an in-memory database and fixtures for package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/tuaha311/aesthetics-clinic/internal/model"
	"github.com/tuaha311/aesthetics-clinic/internal/repository"
	"github.com/tuaha311/aesthetics-clinic/internal/repository/postgres"
	"github.com/tuaha311/aesthetics-clinic/pkg/slug"
)

// NewDB opens a migrated in-memory SQLite database that lives as long as the test.
func NewDB(t testing.TB) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	// every connection would get its own empty memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, postgres.Migrate(context.Background(), db))
	return db
}

// NewRepositories returns repositories over a fresh database.
func NewRepositories(t testing.TB) (*repository.Repositories, *sqlx.DB) {
	t.Helper()
	db := NewDB(t)
	return postgres.NewRepositories(db), db
}

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func CreateTreatment(t testing.TB, repos *repository.Repositories, name string, category model.Category, featured bool) *model.Treatment {
	t.Helper()
	tr := &model.Treatment{
		Name:        name,
		Slug:        slug.Make(name),
		Description: name + " description",
		PriceRange:  "$100 - $200",
		Duration:    "30 minutes",
		Category:    category,
		Featured:    featured,
	}
	require.NoError(t, repos.Treatments.Create(context.Background(), tr))
	return tr
}

func CreateUser(t testing.TB, repos *repository.Repositories, username string) *model.User {
	t.Helper()
	u := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		IsStaff:      true,
		IsActive:     true,
	}
	require.NoError(t, repos.Users.Create(context.Background(), u))
	return u
}

func CreatePost(t testing.TB, repos *repository.Repositories, author *model.User, title string, published time.Time, featured bool) *model.BlogPost {
	t.Helper()
	p := &model.BlogPost{
		Title:         title,
		Slug:          slug.Make(title),
		AuthorID:      author.ID,
		Content:       title + " content",
		PublishedDate: published,
		Featured:      featured,
	}
	require.NoError(t, repos.Posts.Create(context.Background(), p))
	return p
}
