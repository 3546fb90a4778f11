package model

import (
	"time"

	"sparkle/shared/model"
)

const (
	TableName  = "teams"
	EntityName = "team"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
)

const (
	MemberTableName  = "team_members"
	MemberEntityName = "team_member"

	FieldMemberID = "id"
	FieldTeamID   = "team_id"
	FieldStaffID  = "staff_id"
	FieldJoinedAt = "joined_at"
	FieldLeftAt   = "left_at"
)

type Team struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	model.Metadata
	model.SoftDelete
}

// TeamMember is one membership period. A staff member who leaves and
// rejoins the same team gets a new row, so the full interval history
// is preserved for booking visibility checks.
type TeamMember struct {
	ID       string     `db:"id"`
	TeamID   string     `db:"team_id"`
	StaffID  string     `db:"staff_id"`
	JoinedAt time.Time  `db:"joined_at"`
	LeftAt   *time.Time `db:"left_at"`
	model.Metadata
}
