package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"sparkle/infras/otel"
	"sparkle/infras/postgres"
	"sparkle/internal/domains/settings/model"
	gDto "sparkle/shared/dto"
	gRepo "sparkle/shared/repository"
)

type Settings interface {
	Insert(ctx context.Context, model model.BusinessSettings) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BusinessSettings, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.BusinessSettings]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Settings {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.BusinessSettings](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
