package postgres

import (
	"github.com/tuaha311/aesthetics-clinic/internal/model"
	"github.com/tuaha311/aesthetics-clinic/internal/repository"
)

type teamMemberRepository struct {
	*Table[model.TeamMember, *model.TeamMember]
}

func NewTeamMemberRepository(base BaseRepository) repository.TeamMemberRepository {
	return &teamMemberRepository{
		NewTable[model.TeamMember](base, model.TableTeamMembers, "team member", repository.Asc("sort_order")),
	}
}
