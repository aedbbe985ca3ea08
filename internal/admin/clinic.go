package admin

import (
	"context"

	"github.com/tuaha311/aesthetics-clinic/internal/model"
	"github.com/tuaha311/aesthetics-clinic/internal/repository"
	"github.com/tuaha311/aesthetics-clinic/pkg/media"
)

func categoryChoices() ChoiceLoader {
	var choices []Choice
	for _, c := range model.Categories() {
		choices = append(choices, Choice{Value: string(c.Value), Label: c.Label})
	}
	return StaticChoices(choices...)
}

func treatmentChoices(treatments repository.TreatmentRepository) ChoiceLoader {
	return func(ctx context.Context) ([]Choice, error) {
		rows, err := treatments.Find(ctx, repository.Query{})
		if err != nil {
			return nil, err
		}
		choices := make([]Choice, 0, len(rows))
		for _, t := range rows {
			choices = append(choices, Choice{Value: t.ID.String(), Label: t.Name})
		}
		return choices, nil
	}
}

func userChoices(users repository.UserRepository) ChoiceLoader {
	return func(ctx context.Context) ([]Choice, error) {
		rows, err := users.Find(ctx, repository.Query{})
		if err != nil {
			return nil, err
		}
		choices := make([]Choice, 0, len(rows))
		for _, u := range rows {
			choices = append(choices, Choice{Value: u.ID.String(), Label: u.Username})
		}
		return choices, nil
	}
}

// RegisterClinic registers the clinic's content models. FAQs and before/after images
// are edited inline on their treatment.
func RegisterClinic(s *Site, repos *repository.Repositories) {
	if repos.Tx != nil {
		s.UseTransactions(repos.Tx)
	}
	faqs := NewInline[model.TreatmentFAQ](repos.FAQs, "faqs", "treatment FAQ", "Treatment FAQs", "treatment_id",
		Field{Column: "question", Label: "Question", Kind: KindText, Rules: "required,max=255"},
		Field{Column: "answer", Label: "Answer", Kind: KindTextarea, Rules: "required"},
		Field{Column: "sort_order", Label: "Order", Kind: KindNumber, Rules: "omitempty,numeric"},
	)
	images := NewInline[model.BeforeAfterImage](repos.BeforeAfter, "before_after_images", "before after image", "Before after images", "treatment_id",
		Field{Column: "title", Label: "Title", Kind: KindText, Rules: "required,max=100"},
		Field{Column: "before_image", Label: "Before image", Kind: KindImage, Rules: "required", UploadDir: media.DirBefore},
		Field{Column: "after_image", Label: "After image", Kind: KindImage, Rules: "required", UploadDir: media.DirAfter},
		Field{Column: "patient_age", Label: "Patient age", Kind: KindNumber, Rules: "omitempty,numeric"},
		Field{Column: "sessions", Label: "Sessions", Kind: KindNumber, Rules: "omitempty,numeric"},
	)

	treatments := NewModelAdmin[model.Treatment](repos.Treatments, "treatment", "Treatment", "Treatments").
		Fields(
			Field{Column: "name", Label: "Name", Kind: KindText, Rules: "required,max=100"},
			Field{Column: "slug", Label: "Slug", Kind: KindSlug, Rules: "required,max=100", PrepopulateFrom: "name", Unique: true},
			Field{Column: "description", Label: "Description", Kind: KindTextarea, Rules: "required"},
			Field{Column: "what_to_expect", Label: "What to expect", Kind: KindTextarea, Rules: "required"},
			Field{Column: "price_range", Label: "Price range", Kind: KindText, Rules: "required,max=100"},
			Field{Column: "duration", Label: "Duration", Kind: KindText, Rules: "required,max=50"},
			Field{Column: "image", Label: "Image", Kind: KindImage, Rules: "required", UploadDir: media.DirTreatments},
			Field{Column: "category", Label: "Category", Kind: KindSelect, Rules: "required", Choices: categoryChoices()},
			Field{Column: "featured", Label: "Featured", Kind: KindBool},
		).
		ListDisplay("name", "category", "price_range", "duration", "featured").
		ListFilter("category", "featured").
		SearchFields("name", "description").
		ListEditable("featured").
		Inlines(faqs, images)

	team := NewModelAdmin[model.TeamMember](repos.Team, "teammember", "Team member", "Team members").
		Fields(
			Field{Column: "name", Label: "Name", Kind: KindText, Rules: "required,max=100"},
			Field{Column: "role", Label: "Role", Kind: KindText, Rules: "required,max=100"},
			Field{Column: "bio", Label: "Bio", Kind: KindTextarea, Rules: "required"},
			Field{Column: "image", Label: "Image", Kind: KindImage, Rules: "required", UploadDir: media.DirTeam},
			Field{Column: "sort_order", Label: "Order", Kind: KindNumber, Rules: "omitempty,numeric"},
		).
		ListDisplay("name", "role", "sort_order").
		SearchFields("name", "role", "bio").
		ListEditable("sort_order")

	testimonials := NewModelAdmin[model.Testimonial](repos.Testimonials, "testimonial", "Testimonial", "Testimonials").
		Fields(
			Field{Column: "name", Label: "Name", Kind: KindText, Rules: "required,max=100"},
			Field{Column: "treatment_id", Label: "Treatment", Kind: KindForeignKey, Choices: treatmentChoices(repos.Treatments)},
			Field{Column: "quote", Label: "Quote", Kind: KindTextarea, Rules: "required"},
			Field{Column: "image", Label: "Image", Kind: KindImage, UploadDir: media.DirTestimonials},
			Field{Column: "date", Label: "Date", Kind: KindDate, Help: "Leave blank for today."},
			Field{Column: "featured", Label: "Featured", Kind: KindBool},
		).
		ListDisplay("name", "treatment_id", "date", "featured").
		ListFilter("featured", "treatment_id").
		SearchFields("name", "quote").
		DateHierarchy("date").
		ListEditable("featured")

	posts := NewModelAdmin[model.BlogPost](repos.Posts, "blogpost", "Blog post", "Blog posts").
		Fields(
			Field{Column: "title", Label: "Title", Kind: KindText, Rules: "required,max=200"},
			Field{Column: "slug", Label: "Slug", Kind: KindSlug, Rules: "required,max=200", PrepopulateFrom: "title", Unique: true},
			Field{Column: "author_id", Label: "Author", Kind: KindForeignKey, Rules: "required", Choices: userChoices(repos.Users)},
			Field{Column: "content", Label: "Content", Kind: KindTextarea, Rules: "required", Help: "Markdown is supported."},
			Field{Column: "featured_image", Label: "Featured image", Kind: KindImage, Rules: "required", UploadDir: media.DirBlog},
			Field{Column: "excerpt", Label: "Excerpt", Kind: KindTextarea},
			Field{Column: "published_date", Label: "Published date", Kind: KindDateTime, Help: "Leave blank to publish now."},
			Field{Column: "featured", Label: "Featured", Kind: KindBool},
		).
		ListDisplay("title", "author_id", "published_date").
		ListFilter("author_id", "published_date").
		SearchFields("title", "content").
		DateHierarchy("published_date")

	contacts := NewModelAdmin[model.Contact](repos.Contacts, "contact", "Contact", "Contacts").
		Fields(
			Field{Column: "name", Label: "Name", Kind: KindText, ReadOnly: true},
			Field{Column: "email", Label: "Email", Kind: KindEmail, ReadOnly: true},
			Field{Column: "phone", Label: "Phone", Kind: KindText, ReadOnly: true},
			Field{Column: "message", Label: "Message", Kind: KindTextarea, ReadOnly: true},
			Field{Column: "created_at", Label: "Created at", Kind: KindDateTime, ReadOnly: true},
			Field{Column: "responded", Label: "Responded", Kind: KindBool},
		).
		ListDisplay("name", "email", "phone", "created_at", "responded").
		ListFilter("responded", "created_at").
		SearchFields("name", "email", "message").
		DateHierarchy("created_at").
		ListEditable("responded").
		DisableAdd()

	s.Register(treatments, team, testimonials, posts, contacts)
}
