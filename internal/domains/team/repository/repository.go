package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"sparkle/infras/otel"
	"sparkle/infras/postgres"
	"sparkle/internal/domains/team/model"
	gDto "sparkle/shared/dto"
	gRepo "sparkle/shared/repository"
)

type Team interface {
	Insert(ctx context.Context, model model.Team) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Team, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Team, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type Member interface {
	Insert(ctx context.Context, model model.TeamMember) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.TeamMember, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.TeamMember, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type teamRepositoryImpl struct {
	gRepo.Repository[model.Team]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Team {
	return &teamRepositoryImpl{
		Repository: gRepo.NewRepository[model.Team](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type memberRepositoryImpl struct {
	gRepo.Repository[model.TeamMember]
	db   *postgres.Connection
	otel otel.Otel
}

func NewMember(db *postgres.Connection, otel otel.Otel) Member {
	return &memberRepositoryImpl{
		Repository: gRepo.NewRepository[model.TeamMember](model.MemberEntityName, model.MemberTableName, model.FieldMemberID, db, otel),
		db:         db,
		otel:       otel,
	}
}
