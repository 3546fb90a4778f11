package dto

import (
	"time"

	"github.com/google/uuid"

	"sparkle/internal/domains/team/model"
	"sparkle/shared"
	"sparkle/shared/constant"
	gDto "sparkle/shared/dto"
	gModel "sparkle/shared/model"
	"sparkle/shared/timezone"
)

type CreateTeamRequest struct {
	Name        string  `json:"name"        validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

func (c *CreateTeamRequest) ToModel(user string) model.Team {
	return model.Team{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateTeamRequest struct {
	Name        string  `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description *string `db:"description" json:"description" validate:"omitempty,max=500"`
}

type AddMemberRequest struct {
	StaffID  string `json:"staff_id"  validate:"required,uuid"`
	JoinedAt string `json:"joined_at" validate:"omitempty"`
}

func (a *AddMemberRequest) ToModel(teamID, user string) (model.TeamMember, error) {
	joinedAt := timezone.Now()

	if a.JoinedAt != "" {
		parsed, err := time.Parse(constant.DateOnlyFormat, a.JoinedAt)
		if err != nil {
			return model.TeamMember{}, err
		}

		joinedAt = parsed
	}

	return model.TeamMember{
		ID:       uuid.NewString(),
		TeamID:   teamID,
		StaffID:  a.StaffID,
		JoinedAt: joinedAt,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type TeamResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	gDto.Metadata
}

func (r *TeamResponse) FromModel(model model.Team) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Metadata.FromModel(model.Metadata)
}

type GetTeamsResponse struct {
	Teams     []TeamResponse `json:"teams"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetTeamsResponse) FromModels(models []model.Team, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Teams = make([]TeamResponse, len(models))
	for i, mod := range models {
		r.Teams[i].FromModel(mod)
	}
}

type MemberResponse struct {
	ID       string     `json:"id"`
	TeamID   string     `json:"team_id"`
	StaffID  string     `json:"staff_id"`
	JoinedAt time.Time  `json:"joined_at"`
	LeftAt   *time.Time `json:"left_at,omitempty"`
}

func (r *MemberResponse) FromModel(model model.TeamMember) {
	r.ID = model.ID
	r.TeamID = model.TeamID
	r.StaffID = model.StaffID
	r.JoinedAt = model.JoinedAt
	r.LeftAt = model.LeftAt
}

type GetMembersResponse struct {
	Members []MemberResponse `json:"members"`
}

func (r *GetMembersResponse) FromModels(models []model.TeamMember) {
	r.Members = make([]MemberResponse, len(models))
	for i, mod := range models {
		r.Members[i].FromModel(mod)
	}
}
