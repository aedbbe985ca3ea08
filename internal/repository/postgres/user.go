package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tuaha311/aesthetics-clinic/internal/model"
	"github.com/tuaha311/aesthetics-clinic/internal/repository"
)

type userRepository struct {
	*Table[model.User, *model.User]
}

func NewUserRepository(base BaseRepository) repository.UserRepository {
	return &userRepository{
		NewTable[model.User](base, model.TableUsers, "user", repository.Asc("username")),
	}
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.First(ctx, repository.Query{}.Filter(repository.Eq("username", username)))
}

// Delete removes the user and the blog posts they authored.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query, args, err := r.dialect.Delete(model.TableBlogPosts).Prepared(true).
			Where(goqu.C("author_id").Eq(id)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("failed to build blog post delete: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to delete posts of user: %w", err)
		}
		return r.deleteWith(ctx, tx, id)
	})
}
