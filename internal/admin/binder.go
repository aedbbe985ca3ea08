package admin

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/tuaha311/aesthetics-clinic/pkg/media"
	"github.com/tuaha311/aesthetics-clinic/pkg/slug"
	pkgvalidator "github.com/tuaha311/aesthetics-clinic/pkg/validator"
)

const errUnsupportedImage = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."

type upload struct {
	target reflect.Value
	dir    string
	file   *multipart.FileHeader
	prev   string
	ref    string
}

// binder copies submitted form input onto rows. It keeps the raw input and the per-input
// errors so an invalid form can be shown again as it was submitted. Uploaded files are
// only stored by commit, once the whole submission validated.
type binder struct {
	c        *gin.Context
	validate *validator.Validate
	raw      map[string]string
	errors   map[string]string
	uploads  []upload
	stored   []upload
}

func newBinder(c *gin.Context, validate *validator.Validate) *binder {
	return &binder{
		c:        c,
		validate: validate,
		raw:      make(map[string]string),
		errors:   make(map[string]string),
	}
}

func (b *binder) value(name string) string {
	return strings.TrimSpace(b.c.PostForm(name))
}

func (b *binder) file(name string) *multipart.FileHeader {
	fh, err := b.c.FormFile(name)
	if err != nil {
		return nil
	}
	return fh
}

// filled reports whether any input of the prefixed fields carries a value.
func (b *binder) filled(prefix string, fields []Field) bool {
	for _, f := range fields {
		if !f.blankable() {
			continue
		}
		if f.Kind == KindImage {
			if b.file(prefix+f.Column) != nil {
				return true
			}
			continue
		}
		if b.value(prefix+f.Column) != "" {
			return true
		}
	}
	return false
}

// bind applies the input named prefix+column of every editable field to row.
func (b *binder) bind(ctx context.Context, row reflect.Value, prefix string, fields []Field) {
	for _, f := range fields {
		if f.ReadOnly {
			continue
		}
		name := prefix + f.Column
		target := column(row, f.Column)

		if f.Kind == KindImage {
			b.bindImage(target, name, f)
			continue
		}

		raw := b.value(name)
		if raw == "" && f.PrepopulateFrom != "" {
			raw = slug.Make(b.value(prefix + f.PrepopulateFrom))
		}
		b.raw[name] = raw

		if f.Kind == KindBool {
			_ = setValue(target, f.Kind, raw)
			continue
		}
		if f.Rules != "" {
			if err := b.validate.Var(raw, f.Rules); err != nil {
				b.errors[name] = ruleMessage(err)
				continue
			}
		}
		if raw != "" {
			if err := checkValue(ctx, f, raw); err != nil {
				b.errors[name] = err.Error()
				continue
			}
		}
		if err := setValue(target, f.Kind, raw); err != nil {
			b.errors[name] = err.Error()
		}
	}
}

func (b *binder) bindImage(target reflect.Value, name string, f Field) {
	if fh := b.file(name); fh != nil {
		if !media.Supported(fh.Filename) {
			b.errors[name] = errUnsupportedImage
			return
		}
		b.uploads = append(b.uploads, upload{target: target, dir: f.UploadDir, file: fh})
		return
	}
	if !f.Required() && b.value(name+"-clear") != "" {
		target.SetString("")
	}
	if f.Required() && target.String() == "" {
		b.errors[name] = pkgvalidator.Message("required", "")
	}
}

// checkValue applies the checks validator tags cannot express.
func checkValue(ctx context.Context, f Field, raw string) error {
	switch f.Kind {
	case KindSlug:
		if !slug.Valid(raw) {
			return errInvalidSlug
		}
	case KindSelect, KindForeignKey:
		if f.Choices == nil {
			return nil
		}
		choices, err := f.Choices(ctx)
		if err != nil {
			return err
		}
		for _, choice := range choices {
			if choice.Value == raw {
				return nil
			}
		}
		return errInvalidChoice
	}
	return nil
}

func ruleMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return pkgvalidator.Message(verrs[0].Tag(), verrs[0].Param())
	}
	return err.Error()
}

func (b *binder) valid() bool { return len(b.errors) == 0 }

// commit stores the pending uploads and points their fields at the stored files.
func (b *binder) commit(ctx context.Context, store media.Storage) error {
	for _, u := range b.uploads {
		f, err := u.file.Open()
		if err != nil {
			return fmt.Errorf("failed to open upload: %w", err)
		}
		ref, err := store.Save(ctx, u.dir, u.file.Filename, f)
		f.Close()
		if err != nil {
			return err
		}
		u.prev, u.ref = u.target.String(), ref
		u.target.SetString(ref)
		b.stored = append(b.stored, u)
	}
	b.uploads = nil
	return nil
}

// discard removes the files commit stored and puts the previous references back, for a
// submission whose rows were not saved.
func (b *binder) discard(ctx context.Context, store media.Storage) {
	for _, u := range b.stored {
		if err := store.Delete(ctx, u.ref); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("ref", u.ref).Msg("failed to remove unsaved upload")
		}
		u.target.SetString(u.prev)
	}
	b.stored = nil
}

// multipartLimit bounds the memory used for parsing uploads before spilling to disk.
const multipartLimit = 8 << 20

func parseForm(c *gin.Context) error {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.Request.ParseMultipartForm(multipartLimit); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return err
		}
		return nil
	}
	return c.Request.ParseForm()
}
