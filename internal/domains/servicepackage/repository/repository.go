package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"sparkle/infras/otel"
	"sparkle/infras/postgres"
	"sparkle/internal/domains/servicepackage/model"
	gDto "sparkle/shared/dto"
	gRepo "sparkle/shared/repository"
)

type ServicePackage interface {
	Insert(ctx context.Context, model model.ServicePackage) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ServicePackage, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ServicePackage, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type Tier interface {
	InsertBulk(ctx context.Context, models []model.PackageTier) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.PackageTier, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type packageRepositoryImpl struct {
	gRepo.Repository[model.ServicePackage]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) ServicePackage {
	return &packageRepositoryImpl{
		Repository: gRepo.NewRepository[model.ServicePackage](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type tierRepositoryImpl struct {
	gRepo.Repository[model.PackageTier]
	db   *postgres.Connection
	otel otel.Otel
}

func NewTier(db *postgres.Connection, otel otel.Otel) Tier {
	return &tierRepositoryImpl{
		Repository: gRepo.NewRepository[model.PackageTier](model.TierEntityName, model.TierTableName, model.FieldTierID, db, otel),
		db:         db,
		otel:       otel,
	}
}
