package site

import (
	"context"
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

func newService(t *testing.T) (*Service, *repository.Repositories) {
	t.Helper()
	repos, _ := testutil.NewRepositories(t)
	return NewService(repos), repos
}

func createPost(t *testing.T, repos *repository.Repositories, author *model.User, title string, created time.Time, featured bool) *model.BlogPost {
	t.Helper()
	p := &model.BlogPost{
		Title:         title,
		Slug:          uuid.NewString()[:8],
		AuthorID:      author.ID,
		Content:       "About " + title,
		PublishedDate: created,
		Featured:      featured,
		Timestamps:    model.Timestamps{CreatedAt: created},
	}
	require.NoError(t, repos.Posts.Create(context.Background(), p))
	return p
}

func TestTreatmentListFiltersByCategory(t *testing.T) {
	ctx := context.Background()
	svc, repos := newService(t)
	testutil.CreateTreatment(t, repos, "Hydrafacial", model.CategoryFace, true)
	testutil.CreateTreatment(t, repos, "Chemical Peel", model.CategoryFace, false)
	testutil.CreateTreatment(t, repos, "Morpheus8", model.CategoryBody, false)

	all, err := svc.TreatmentList(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all.Treatments, 3)
	assert.Len(t, all.Categories, 3)

	face, err := svc.TreatmentList(ctx, "FACE")
	require.NoError(t, err)
	assert.Len(t, face.Treatments, 2)
	assert.Equal(t, "FACE", face.CurrentCategory)
	for _, tr := range face.Treatments {
		assert.Equal(t, model.CategoryFace, tr.Category)
	}
}

func TestTreatmentDetail(t *testing.T) {
	ctx := context.Background()
	svc, repos := newService(t)
	tr := testutil.CreateTreatment(t, repos, "Hydrafacial", model.CategoryFace, true)
	testutil.CreateTreatment(t, repos, "Chemical Peel", model.CategoryFace, false)
	testutil.CreateTreatment(t, repos, "Morpheus8", model.CategoryBody, false)

	for i, q := range []string{"Second?", "First?"} {
		require.NoError(t, repos.FAQs.Create(ctx, &model.TreatmentFAQ{TreatmentID: tr.ID, Question: q, Answer: "Yes.", Order: 2 - i}))
	}
	require.NoError(t, repos.Testimonials.Create(ctx, &model.Testimonial{
		Name: "Sarah", Quote: "Great", TreatmentID: uuid.NullUUID{UUID: tr.ID, Valid: true},
	}))

	detail, err := svc.TreatmentDetail(ctx, "hydrafacial")
	require.NoError(t, err)
	assert.Equal(t, tr.ID, detail.Treatment.ID)
	require.Len(t, detail.FAQs, 2)
	assert.Equal(t, "First?", detail.FAQs[0].Question)
	require.Len(t, detail.RelatedTreatments, 1)
	assert.Equal(t, "Chemical Peel", detail.RelatedTreatments[0].Name)
	assert.Len(t, detail.Testimonials, 1)
	assert.Empty(t, detail.BeforeAfterImages)

	_, err = svc.TreatmentDetail(ctx, "nope")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGalleryPagesAndFilters(t *testing.T) {
	ctx := context.Background()
	svc, repos := newService(t)
	face := testutil.CreateTreatment(t, repos, "Hydrafacial", model.CategoryFace, true)
	body := testutil.CreateTreatment(t, repos, "Morpheus8", model.CategoryBody, false)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		tr := face
		if i%4 == 0 {
			tr = body
		}
		require.NoError(t, repos.BeforeAfter.Create(ctx, &model.BeforeAfterImage{
			TreatmentID: tr.ID,
			Title:       "Result",
			BeforeImage: "before.jpg",
			AfterImage:  "after.jpg",
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		}))
	}

	first, err := svc.Gallery(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, first.Images, GalleryPerPage)
	assert.Equal(t, 2, first.Page.NumPages)
	assert.True(t, first.Images[0].CreatedAt.Equal(base.Add(11*time.Hour)))
	require.NotNil(t, first.Images[0].Treatment)
	assert.Equal(t, []model.Category{model.CategoryBody, model.CategoryFace}, first.Categories)

	second, err := svc.Gallery(ctx, "all", "2")
	require.NoError(t, err)
	assert.Len(t, second.Images, 3)

	bodyOnly, err := svc.Gallery(ctx, "body", "1")
	require.NoError(t, err)
	assert.Len(t, bodyOnly.Images, 3)
	for _, img := range bodyOnly.Images {
		assert.Equal(t, body.ID, img.TreatmentID)
	}

	none, err := svc.Gallery(ctx, "injectables", "")
	require.NoError(t, err)
	assert.Empty(t, none.Images)

	_, err = svc.Gallery(ctx, "", "3")
	assert.True(t, apperrors.IsNotFound(err))
	_, err = svc.Gallery(ctx, "", "abc")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestBlogFeaturedAndNeighbours(t *testing.T) {
	ctx := context.Background()
	svc, repos := newService(t)
	author := testutil.CreateUser(t, repos, "admin")

	list, err := svc.BlogList(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, list.FeaturedPost)
	assert.Empty(t, list.Posts)

	t1 := createPost(t, repos, author, "One", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), true)
	t2 := createPost(t, repos, author, "Two", time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC), true)
	t3 := createPost(t, repos, author, "Three", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), false)

	list, err = svc.BlogList(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, list.FeaturedPost)
	assert.Equal(t, t2.ID, list.FeaturedPost.ID)
	require.Len(t, list.Posts, 3)
	assert.Equal(t, t3.ID, list.Posts[0].ID)
	require.NotNil(t, list.Posts[0].Author)

	detail, err := svc.BlogDetail(ctx, t2.Slug)
	require.NoError(t, err)
	require.NotNil(t, detail.NextPost)
	require.NotNil(t, detail.PreviousPost)
	assert.Equal(t, t3.ID, detail.NextPost.ID)
	assert.Equal(t, t1.ID, detail.PreviousPost.ID)
	assert.Len(t, detail.RecentPosts, 2)
	require.NotNil(t, detail.Post.Author)
	assert.Equal(t, "admin", detail.Post.Author.Username)

	last, err := svc.BlogDetail(ctx, t3.Slug)
	require.NoError(t, err)
	assert.Nil(t, last.NextPost)
	require.NotNil(t, last.PreviousPost)
	assert.Equal(t, t2.ID, last.PreviousPost.ID)

	_, err = svc.BlogDetail(ctx, "missing")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	svc, repos := newService(t)
	testutil.CreateTreatment(t, repos, "Chemical Peel", model.CategoryFace, false)
	author := testutil.CreateUser(t, repos, "admin")
	p := createPost(t, repos, author, "Peel season", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), false)
	require.NoError(t, repos.Posts.UpdateFields(ctx, p.ID, map[string]interface{}{"excerpt": "Why autumn suits resurfacing"}))

	res, err := svc.Search(ctx, "peel")
	require.NoError(t, err)
	assert.Len(t, res.Treatments, 1)
	assert.Len(t, res.Posts, 1)
	assert.Equal(t, 2, res.Count)

	res, err = svc.Search(ctx, "AUTUMN")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)

	for _, wildcard := range []string{"%", "_"} {
		res, err = svc.Search(ctx, wildcard)
		require.NoError(t, err)
		assert.Zero(t, res.Count, wildcard)
	}

	empty, err := svc.Search(ctx, "  ")
	require.NoError(t, err)
	assert.Zero(t, empty.Count)
	assert.Empty(t, empty.Treatments)

	blog, err := svc.BlogSearch(ctx, "autumn")
	require.NoError(t, err)
	assert.Len(t, blog.Posts, 1)
	assert.Equal(t, "autumn", blog.SearchQuery)
	assert.Nil(t, blog.Page)

	recent, err := svc.BlogSearch(ctx, "")
	require.NoError(t, err)
	assert.Len(t, recent.Posts, 1)
}

func TestHome(t *testing.T) {
	ctx := context.Background()
	svc, repos := newService(t)
	for _, name := range []string{"A", "B", "C", "D"} {
		testutil.CreateTreatment(t, repos, name, model.CategoryFace, true)
		require.NoError(t, repos.Team.Create(ctx, &model.TeamMember{Name: name, Role: "r", Bio: "b"}))
	}
	testutil.CreateTreatment(t, repos, "E", model.CategoryFace, false)

	home, err := svc.Home(ctx)
	require.NoError(t, err)
	assert.Len(t, home.FeaturedTreatments, 3)
	assert.Len(t, home.TeamMembers, 3)
	assert.Empty(t, home.Testimonials)
	assert.Empty(t, home.LatestPosts)
}
