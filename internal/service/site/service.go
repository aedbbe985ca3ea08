package site

import (
	"context"
	"errors"
	"strings"

	"github.com/tuaha311/aesthetics-clinic/internal/model"
	"github.com/tuaha311/aesthetics-clinic/internal/repository"
	apperrors "github.com/tuaha311/aesthetics-clinic/pkg/errors"
	"github.com/tuaha311/aesthetics-clinic/pkg/pagination"
)

const (
	GalleryPerPage = 9
	BlogPerPage    = 6

	homeLimit    = 3
	relatedLimit = 3
)

// CategoryAll in the gallery filter means no filter.
const CategoryAll = "all"

// Service assembles the data each public page renders.
type Service struct {
	repos *repository.Repositories
}

func NewService(repos *repository.Repositories) *Service {
	return &Service{repos: repos}
}

type HomeContext struct {
	FeaturedTreatments []model.Treatment
	Testimonials       []model.Testimonial
	TeamMembers        []model.TeamMember
	LatestPosts        []model.BlogPost
}

func (s *Service) Home(ctx context.Context) (*HomeContext, error) {
	featured := repository.Query{}.Filter(repository.Eq("featured", true)).Take(homeLimit)

	treatments, err := s.repos.Treatments.Find(ctx, featured)
	if err != nil {
		return nil, err
	}
	testimonials, err := s.repos.Testimonials.FindWithTreatment(ctx, featured)
	if err != nil {
		return nil, err
	}
	team, err := s.repos.Team.Find(ctx, repository.Query{}.Take(homeLimit))
	if err != nil {
		return nil, err
	}
	posts, err := s.repos.Posts.FindWithAuthor(ctx, repository.Query{}.Take(homeLimit))
	if err != nil {
		return nil, err
	}

	return &HomeContext{
		FeaturedTreatments: treatments,
		Testimonials:       testimonials,
		TeamMembers:        team,
		LatestPosts:        posts,
	}, nil
}

type TreatmentListContext struct {
	Treatments      []model.Treatment
	Categories      []model.CategoryChoice
	CurrentCategory string
}

// TreatmentList lists every treatment, or only those whose category equals category.
func (s *Service) TreatmentList(ctx context.Context, category string) (*TreatmentListContext, error) {
	q := repository.Query{}
	if category != "" {
		q = q.Filter(repository.Eq("category", category))
	}

	treatments, err := s.repos.Treatments.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	return &TreatmentListContext{
		Treatments:      treatments,
		Categories:      model.Categories(),
		CurrentCategory: category,
	}, nil
}

type TreatmentDetailContext struct {
	Treatment         *model.Treatment
	FAQs              []model.TreatmentFAQ
	BeforeAfterImages []model.BeforeAfterImage
	RelatedTreatments []model.Treatment
	Testimonials      []model.Testimonial
}

func (s *Service) TreatmentDetail(ctx context.Context, slug string) (*TreatmentDetailContext, error) {
	treatment, err := s.repos.Treatments.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	ofTreatment := repository.Query{}.Filter(repository.Eq("treatment_id", treatment.ID))

	faqs, err := s.repos.FAQs.Find(ctx, ofTreatment)
	if err != nil {
		return nil, err
	}
	images, err := s.repos.BeforeAfter.Find(ctx, ofTreatment)
	if err != nil {
		return nil, err
	}
	related, err := s.repos.Treatments.Find(ctx, repository.Query{}.
		Filter(repository.Eq("category", treatment.Category), repository.Neq("id", treatment.ID)).
		Take(relatedLimit))
	if err != nil {
		return nil, err
	}
	testimonials, err := s.repos.Testimonials.Find(ctx, ofTreatment.Take(relatedLimit))
	if err != nil {
		return nil, err
	}

	return &TreatmentDetailContext{
		Treatment:         treatment,
		FAQs:              faqs,
		BeforeAfterImages: images,
		RelatedTreatments: related,
		Testimonials:      testimonials,
	}, nil
}

func (s *Service) About(ctx context.Context) ([]model.TeamMember, error) {
	return s.repos.Team.Find(ctx, repository.Query{})
}

type GalleryContext struct {
	Images          []model.BeforeAfterImage
	Page            pagination.Page
	Categories      []model.Category
	CategoryChoices []model.CategoryChoice
	CurrentCategory string
}

// Gallery pages through before/after images, newest first. category matches the
// treatment category ignoring case; blank or "all" shows everything.
func (s *Service) Gallery(ctx context.Context, category, page string) (*GalleryContext, error) {
	q := repository.Query{}
	if category != "" && category != CategoryAll {
		ids, err := s.treatmentIDs(ctx, repository.Query{}.Filter(repository.IEq("category", category)))
		if err != nil {
			return nil, err
		}
		q = q.Filter(repository.In("treatment_id", ids...))
	}

	total, err := s.repos.BeforeAfter.Count(ctx, q)
	if err != nil {
		return nil, err
	}
	p, err := paginate(page, GalleryPerPage, total)
	if err != nil {
		return nil, err
	}

	images, err := s.repos.BeforeAfter.FindWithTreatment(ctx, q.Page(p.Limit(), p.Offset()))
	if err != nil {
		return nil, err
	}
	categories, err := s.repos.Treatments.Categories(ctx)
	if err != nil {
		return nil, err
	}

	return &GalleryContext{
		Images:          images,
		Page:            p,
		Categories:      categories,
		CategoryChoices: model.Categories(),
		CurrentCategory: category,
	}, nil
}

func (s *Service) treatmentIDs(ctx context.Context, q repository.Query) ([]interface{}, error) {
	treatments, err := s.repos.Treatments.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	ids := make([]interface{}, 0, len(treatments))
	for _, t := range treatments {
		ids = append(ids, t.ID)
	}
	return ids, nil
}

func (s *Service) Testimonials(ctx context.Context) ([]model.Testimonial, error) {
	return s.repos.Testimonials.FindWithTreatment(ctx, repository.Query{})
}

type BlogListContext struct {
	Posts        []model.BlogPost
	Page         *pagination.Page
	FeaturedPost *model.BlogPost
	SearchQuery  string
}

// BlogList pages through posts, newest published first, alongside the most recently
// created featured post.
func (s *Service) BlogList(ctx context.Context, page string) (*BlogListContext, error) {
	total, err := s.repos.Posts.Count(ctx, repository.Query{})
	if err != nil {
		return nil, err
	}
	p, err := paginate(page, BlogPerPage, total)
	if err != nil {
		return nil, err
	}

	posts, err := s.repos.Posts.FindWithAuthor(ctx, repository.Query{}.Page(p.Limit(), p.Offset()))
	if err != nil {
		return nil, err
	}
	featured, err := s.optionalPost(ctx, repository.Query{}.
		Filter(repository.Eq("featured", true)).
		Order(repository.Desc("created_at")))
	if err != nil {
		return nil, err
	}

	return &BlogListContext{Posts: posts, Page: &p, FeaturedPost: featured}, nil
}

// BlogSearch matches posts on title, content or excerpt. A blank query lists the latest
// posts instead.
func (s *Service) BlogSearch(ctx context.Context, query string) (*BlogListContext, error) {
	query = strings.TrimSpace(query)
	q := repository.Query{}.Take(BlogPerPage)
	if query != "" {
		q = repository.Query{}.Matching(query, "title", "content", "excerpt")
	}

	posts, err := s.repos.Posts.FindWithAuthor(ctx, q)
	if err != nil {
		return nil, err
	}
	return &BlogListContext{Posts: posts, SearchQuery: query}, nil
}

type BlogDetailContext struct {
	Post         *model.BlogPost
	RecentPosts  []model.BlogPost
	NextPost     *model.BlogPost
	PreviousPost *model.BlogPost
}

// BlogDetail loads a post with up to three other posts and its neighbours by creation
// time.
func (s *Service) BlogDetail(ctx context.Context, slug string) (*BlogDetailContext, error) {
	post, err := s.repos.Posts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if author, err := s.repos.Users.Get(ctx, post.AuthorID); err == nil {
		post.Author = author
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	recent, err := s.repos.Posts.Find(ctx, repository.Query{}.
		Filter(repository.Neq("id", post.ID)).
		Take(relatedLimit))
	if err != nil {
		return nil, err
	}
	next, err := s.optionalPost(ctx, repository.Query{}.
		Filter(repository.Gt("created_at", post.CreatedAt)).
		Order(repository.Asc("created_at")))
	if err != nil {
		return nil, err
	}
	previous, err := s.optionalPost(ctx, repository.Query{}.
		Filter(repository.Lt("created_at", post.CreatedAt)).
		Order(repository.Desc("created_at")))
	if err != nil {
		return nil, err
	}

	return &BlogDetailContext{
		Post:         post,
		RecentPosts:  recent,
		NextPost:     next,
		PreviousPost: previous,
	}, nil
}

func (s *Service) optionalPost(ctx context.Context, q repository.Query) (*model.BlogPost, error) {
	post, err := s.repos.Posts.First(ctx, q)
	if apperrors.IsNotFound(err) {
		return nil, nil
	}
	return post, err
}

type SearchContext struct {
	Query      string
	Treatments []model.Treatment
	Posts      []model.BlogPost
	Count      int
}

// Search matches treatments on name or description and posts on title, content or
// excerpt. A blank query matches nothing.
func (s *Service) Search(ctx context.Context, query string) (*SearchContext, error) {
	query = strings.TrimSpace(query)
	out := &SearchContext{Query: query, Treatments: []model.Treatment{}, Posts: []model.BlogPost{}}
	if query == "" {
		return out, nil
	}

	treatments, err := s.repos.Treatments.Find(ctx, repository.Query{}.Matching(query, "name", "description"))
	if err != nil {
		return nil, err
	}
	posts, err := s.repos.Posts.Find(ctx, repository.Query{}.Matching(query, "title", "content", "excerpt"))
	if err != nil {
		return nil, err
	}

	out.Treatments, out.Posts = treatments, posts
	out.Count = len(treatments) + len(posts)
	return out, nil
}

func paginate(raw string, perPage, total int) (pagination.Page, error) {
	p, err := pagination.New(raw, perPage, total)
	if errors.Is(err, pagination.ErrInvalidPage) || errors.Is(err, pagination.ErrEmptyPage) {
		return p, apperrors.NotFound("page", err)
	}
	return p, err
}
