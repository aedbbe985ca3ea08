package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuaha311/aesthetics-clinic/internal/model"
	"github.com/tuaha311/aesthetics-clinic/internal/repository"
	"github.com/tuaha311/aesthetics-clinic/internal/testutil"
	apperrors "github.com/tuaha311/aesthetics-clinic/pkg/errors"
)

func TestTreatmentCRUD(t *testing.T) {
	ctx := context.Background()
	repos, _ := testutil.NewRepositories(t)

	tr := testutil.CreateTreatment(t, repos, "Hydrafacial", model.CategoryFace, true)
	assert.NotEqual(t, uuid.Nil, tr.ID)
	assert.False(t, tr.CreatedAt.IsZero())

	got, err := repos.Treatments.GetBySlug(ctx, "hydrafacial")
	require.NoError(t, err)
	assert.Equal(t, tr.ID, got.ID)
	assert.Equal(t, model.CategoryFace, got.Category)
	assert.True(t, got.Featured)

	got.PriceRange = "$150 - $300"
	require.NoError(t, repos.Treatments.Update(ctx, got))
	again, err := repos.Treatments.Get(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, "$150 - $300", again.PriceRange)

	require.NoError(t, repos.Treatments.UpdateFields(ctx, tr.ID, map[string]interface{}{"featured": false}))
	again, err = repos.Treatments.Get(ctx, tr.ID)
	require.NoError(t, err)
	assert.False(t, again.Featured)

	_, err = repos.Treatments.GetBySlug(ctx, "missing")
	assert.True(t, apperrors.IsNotFound(err))

	err = repos.Treatments.Delete(ctx, uuid.New())
	assert.True(t, apperrors.IsNotFound(err))
}

func TestTreatmentFindFilterSearchAndCount(t *testing.T) {
	ctx := context.Background()
	repos, _ := testutil.NewRepositories(t)

	testutil.CreateTreatment(t, repos, "Morpheus8", model.CategoryBody, false)
	testutil.CreateTreatment(t, repos, "Anti-Wrinkle Injections", model.CategoryInjectables, true)
	testutil.CreateTreatment(t, repos, "Chemical Peel", model.CategoryFace, false)

	all, err := repos.Treatments.Find(ctx, repository.Query{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Anti-Wrinkle Injections", all[0].Name, "ordered by name")

	face, err := repos.Treatments.Find(ctx, repository.Query{}.Filter(repository.IEq("category", "face")))
	require.NoError(t, err)
	require.Len(t, face, 1)
	assert.Equal(t, "Chemical Peel", face[0].Name)

	found, err := repos.Treatments.Find(ctx, repository.Query{}.Matching("PEEL", "name", "description"))
	require.NoError(t, err)
	assert.Len(t, found, 1)

	n, err := repos.Treatments.Count(ctx, repository.Query{}.Filter(repository.Eq("featured", true)).Take(1))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	page, err := repos.Treatments.Find(ctx, repository.Query{}.Page(2, 2))
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Morpheus8", page[0].Name)

	none, err := repos.Treatments.Find(ctx, repository.Query{}.Filter(repository.In("id")))
	require.NoError(t, err)
	assert.Empty(t, none)

	cats, err := repos.Treatments.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Category{model.CategoryBody, model.CategoryFace, model.CategoryInjectables}, cats)
}

func TestSearchMatchesWildcardsLiterally(t *testing.T) {
	ctx := context.Background()
	repos, _ := testutil.NewRepositories(t)

	testutil.CreateTreatment(t, repos, "Hydrafacial", model.CategoryFace, false)
	testutil.CreateTreatment(t, repos, "Morpheus8", model.CategoryBody, false)
	testutil.CreateTreatment(t, repos, "Peel at 50% off", model.CategoryFace, false)

	percent, err := repos.Treatments.Find(ctx, repository.Query{}.Matching("%", "name", "description"))
	require.NoError(t, err)
	require.Len(t, percent, 1)
	assert.Equal(t, "Peel at 50% off", percent[0].Name)

	for _, term := range []string{"_", `\`, "h_drafacial", "hydra%l"} {
		n, err := repos.Treatments.Count(ctx, repository.Query{}.Matching(term, "name", "description"))
		require.NoError(t, err)
		assert.Zero(t, n, term)
	}

	n, err := repos.Treatments.Count(ctx, repository.Query{}.Matching("HYDRA", "name"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRunInTxCommitsOrRollsBack(t *testing.T) {
	ctx := context.Background()
	repos, _ := testutil.NewRepositories(t)

	err := repos.Tx.RunInTx(ctx, func(ctx context.Context) error {
		tr := &model.Treatment{Name: "Chemical Peel", Slug: "chemical-peel", Category: model.CategoryFace}
		if err := repos.Treatments.Create(ctx, tr); err != nil {
			return err
		}
		return repos.FAQs.Create(ctx, &model.TreatmentFAQ{TreatmentID: tr.ID, Question: "Q?", Answer: "A."})
	})
	require.NoError(t, err)

	failure := errors.New("inline save failed")
	err = repos.Tx.RunInTx(ctx, func(ctx context.Context) error {
		tr := &model.Treatment{Name: "Morpheus8", Slug: "morpheus8", Category: model.CategoryBody}
		if err := repos.Treatments.Create(ctx, tr); err != nil {
			return err
		}
		// Delete opens its own transaction outside RunInTx; inside it joins this one.
		peel, err := repos.Treatments.GetBySlug(ctx, "chemical-peel")
		if err != nil {
			return err
		}
		if err := repos.Treatments.Delete(ctx, peel.ID); err != nil {
			return err
		}
		return failure
	})
	assert.ErrorIs(t, err, failure)

	all, err := repos.Treatments.Find(ctx, repository.Query{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Chemical Peel", all[0].Name)

	faqs, err := repos.FAQs.Count(ctx, repository.Query{})
	require.NoError(t, err)
	assert.Equal(t, 1, faqs)
}

func TestTreatmentDeleteCascades(t *testing.T) {
	ctx := context.Background()
	repos, _ := testutil.NewRepositories(t)

	tr := testutil.CreateTreatment(t, repos, "Hydrafacial", model.CategoryFace, true)
	other := testutil.CreateTreatment(t, repos, "Morpheus8", model.CategoryBody, false)

	for i := 0; i < 3; i++ {
		require.NoError(t, repos.FAQs.Create(ctx, &model.TreatmentFAQ{
			TreatmentID: tr.ID, Question: "Q?", Answer: "A.", Order: i,
		}))
	}
	require.NoError(t, repos.FAQs.Create(ctx, &model.TreatmentFAQ{TreatmentID: other.ID, Question: "Q?", Answer: "A."}))
	require.NoError(t, repos.BeforeAfter.Create(ctx, &model.BeforeAfterImage{
		TreatmentID: tr.ID, Title: "Glow", BeforeImage: "b.jpg", AfterImage: "a.jpg",
		PatientAge: sql.NullInt32{Int32: 34, Valid: true},
	}))
	quote := &model.Testimonial{
		Name: "Sarah J.", Quote: "Lovely", TreatmentID: uuid.NullUUID{UUID: tr.ID, Valid: true},
	}
	require.NoError(t, repos.Testimonials.Create(ctx, quote))

	require.NoError(t, repos.Treatments.Delete(ctx, tr.ID))

	faqs, err := repos.FAQs.Count(ctx, repository.Query{})
	require.NoError(t, err)
	assert.Equal(t, 1, faqs)

	images, err := repos.BeforeAfter.Count(ctx, repository.Query{})
	require.NoError(t, err)
	assert.Zero(t, images)

	kept, err := repos.Testimonials.Get(ctx, quote.ID)
	require.NoError(t, err)
	assert.False(t, kept.TreatmentID.Valid)
	assert.False(t, kept.Date.IsZero())
}

func TestFindWithRelations(t *testing.T) {
	ctx := context.Background()
	repos, _ := testutil.NewRepositories(t)

	tr := testutil.CreateTreatment(t, repos, "Chemical Peel", model.CategoryFace, false)
	require.NoError(t, repos.BeforeAfter.Create(ctx, &model.BeforeAfterImage{
		TreatmentID: tr.ID, Title: "Brighter", BeforeImage: "b.jpg", AfterImage: "a.jpg",
	}))
	require.NoError(t, repos.Testimonials.Create(ctx, &model.Testimonial{Name: "Anon", Quote: "Great"}))
	require.NoError(t, repos.Testimonials.Create(ctx, &model.Testimonial{
		Name: "Emma", Quote: "Glowing", TreatmentID: uuid.NullUUID{UUID: tr.ID, Valid: true},
	}))

	images, err := repos.BeforeAfter.FindWithTreatment(ctx, repository.Query{})
	require.NoError(t, err)
	require.Len(t, images, 1)
	require.NotNil(t, images[0].Treatment)
	assert.Equal(t, "Chemical Peel", images[0].Treatment.Name)
	assert.False(t, images[0].PatientAge.Valid)

	quotes, err := repos.Testimonials.FindWithTreatment(ctx, repository.Query{}.Order(repository.Asc("name")))
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Nil(t, quotes[0].Treatment)
	require.NotNil(t, quotes[1].Treatment)
	assert.Equal(t, tr.ID, quotes[1].Treatment.ID)

	author := testutil.CreateUser(t, repos, "sophia")
	testutil.CreatePost(t, repos, author, "Collagen 101", testutil.Day(2024, 2, 1), false)

	posts, err := repos.Posts.FindWithAuthor(ctx, repository.Query{})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.NotNil(t, posts[0].Author)
	assert.Equal(t, "sophia", posts[0].Author.Username)
}

func TestBlogPostOrderingAndNeighbours(t *testing.T) {
	ctx := context.Background()
	repos, _ := testutil.NewRepositories(t)
	author := testutil.CreateUser(t, repos, "admin")

	older := testutil.CreatePost(t, repos, author, "Winter Skincare", testutil.Day(2024, 1, 10), false)
	middle := testutil.CreatePost(t, repos, author, "Collagen 101", testutil.Day(2024, 2, 10), true)
	newer := testutil.CreatePost(t, repos, author, "Summer Glow", testutil.Day(2024, 3, 10), false)

	posts, err := repos.Posts.Find(ctx, repository.Query{})
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, newer.ID, posts[0].ID)
	assert.Equal(t, older.ID, posts[2].ID)
	assert.True(t, posts[1].PublishedDate.Equal(middle.PublishedDate))

	next, err := repos.Posts.First(ctx, repository.Query{}.
		Filter(repository.Gt("published_date", middle.PublishedDate)).
		Order(repository.Asc("published_date")))
	require.NoError(t, err)
	assert.Equal(t, newer.ID, next.ID)

	prev, err := repos.Posts.First(ctx, repository.Query{}.
		Filter(repository.Lt("published_date", middle.PublishedDate)))
	require.NoError(t, err)
	assert.Equal(t, older.ID, prev.ID)

	_, err = repos.Posts.First(ctx, repository.Query{}.
		Filter(repository.Lt("published_date", older.PublishedDate)))
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUserDeleteRemovesPosts(t *testing.T) {
	ctx := context.Background()
	repos, _ := testutil.NewRepositories(t)

	author := testutil.CreateUser(t, repos, "writer")
	keeper := testutil.CreateUser(t, repos, "keeper")
	testutil.CreatePost(t, repos, author, "Gone", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), false)
	testutil.CreatePost(t, repos, keeper, "Stays", time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), false)

	require.NoError(t, repos.Users.Delete(ctx, author.ID))

	posts, err := repos.Posts.Find(ctx, repository.Query{})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Stays", posts[0].Title)

	got, err := repos.Users.GetByUsername(ctx, "keeper")
	require.NoError(t, err)
	assert.True(t, got.IsActive)
	assert.False(t, got.LastLogin.Valid)
}

func TestContactsAndTeamOrdering(t *testing.T) {
	ctx := context.Background()
	repos, _ := testutil.NewRepositories(t)

	for i, name := range []string{"Dr. Sarah Smith", "Emma Johnson"} {
		require.NoError(t, repos.Team.Create(ctx, &model.TeamMember{Name: name, Role: "Role", Bio: "Bio", Order: 2 - i}))
	}
	team, err := repos.Team.Find(ctx, repository.Query{})
	require.NoError(t, err)
	require.Len(t, team, 2)
	assert.Equal(t, "Emma Johnson", team[0].Name)

	c := &model.Contact{Name: "Jane Doe", Email: "jane@example.com", Message: "Hello"}
	require.NoError(t, repos.Contacts.Create(ctx, c))
	assert.False(t, c.CreatedAt.IsZero())

	c.Responded = true
	require.NoError(t, repos.Contacts.Update(ctx, c))
	got, err := repos.Contacts.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, got.Responded)
	assert.True(t, got.CreatedAt.Equal(c.CreatedAt))
}
