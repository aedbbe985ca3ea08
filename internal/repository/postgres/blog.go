package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/tuaha311/aesthetics-clinic/internal/model"
	"github.com/tuaha311/aesthetics-clinic/internal/repository"
)

type blogPostRepository struct {
	*Table[model.BlogPost, *model.BlogPost]
}

func NewBlogPostRepository(base BaseRepository) repository.BlogPostRepository {
	return &blogPostRepository{
		NewTable[model.BlogPost](base, model.TableBlogPosts, "blog post", repository.Desc("published_date")),
	}
}

func (r *blogPostRepository) GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	return r.First(ctx, repository.Query{}.Filter(repository.Eq("slug", slug)))
}

// FindWithAuthor lists posts with their Author populated.
func (r *blogPostRepository) FindWithAuthor(ctx context.Context, q repository.Query) ([]model.BlogPost, error) {
	posts, err := r.Find(ctx, q)
	if err != nil || len(posts) == 0 {
		return posts, err
	}

	seen := make(map[uuid.UUID]bool, len(posts))
	ids := make([]interface{}, 0, len(posts))
	for _, p := range posts {
		if !seen[p.AuthorID] {
			seen[p.AuthorID] = true
			ids = append(ids, p.AuthorID)
		}
	}

	users, err := NewTable[model.User](r.BaseRepository, model.TableUsers, "user").
		Find(ctx, repository.Query{}.Filter(repository.In("id", ids...)))
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*model.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	for i := range posts {
		posts[i].Author = byID[posts[i].AuthorID]
	}
	return posts, nil
}
