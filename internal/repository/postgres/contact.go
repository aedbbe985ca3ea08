package postgres

import (
	"github.com/tuaha311/aesthetics-clinic/internal/model"
	"github.com/tuaha311/aesthetics-clinic/internal/repository"
)

type contactRepository struct {
	*Table[model.Contact, *model.Contact]
}

func NewContactRepository(base BaseRepository) repository.ContactRepository {
	return &contactRepository{
		NewTable[model.Contact](base, model.TableContacts, "contact", repository.Desc("created_at")),
	}
}
