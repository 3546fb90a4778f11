package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"sparkle/config"
	"sparkle/infras/otel"
	"sparkle/internal/domains/servicepackage/model"
	"sparkle/internal/domains/servicepackage/model/dto"
	"sparkle/internal/domains/servicepackage/repository"
	"sparkle/shared"
	"sparkle/shared/cache"
	"sparkle/shared/constant"
	gDto "sparkle/shared/dto"
	"sparkle/shared/failure"
	"sparkle/shared/timezone"
)

const (
	cacheGetPackage    = "package:get"
	cacheGetAllPackage = "package:gets"
	cacheCountPackage  = "package:count"
)

type ServicePackage interface {
	Create(ctx context.Context, req dto.CreatePackageRequest) (dto.PackageResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPackagesResponse, error)
	Get(ctx context.Context, id string) (dto.PackageResponse, error)
	Update(ctx context.Context, req dto.UpdatePackageRequest, id string) error
	Delete(ctx context.Context, id string) error
	Quote(ctx context.Context, id string, area float64) (dto.QuoteResponse, error)
}

type serviceImpl struct {
	repo     repository.ServicePackage
	tierRepo repository.Tier
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.ServicePackage, tierRepo repository.Tier, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) ServicePackage {
	return &serviceImpl{
		repo:     repo,
		tierRepo: tierRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePackageRequest) (res dto.PackageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.PricingModel == model.PricingModelTiered && len(req.Tiers) == 0 {
		return res, failure.BadRequestFromString("tiered packages need at least one tier") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	pkg, tiers := req.ToModel(user)

	if err = s.repo.Insert(ctx, pkg); err != nil {
		log.Error().Err(err).Msg("failed to create package")

		return res, fmt.Errorf("failed to create package: %w", err)
	}

	if len(tiers) > 0 {
		if err = s.tierRepo.InsertBulk(ctx, tiers); err != nil {
			log.Error().Err(err).Msg("failed to create package tiers")

			return res, fmt.Errorf("failed to create package tiers: %w", err)
		}
	}

	res.FromModel(pkg, tiers)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllPackage)
		shared.InvalidateCaches(c, s.cache, cacheCountPackage)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPackagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter.Filters = append(filter.Filters, shared.FilterNotDeleted(model.TableName))

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPackage, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for packages")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count packages")

		return res, fmt.Errorf("failed to count packages: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get packages")

		return res, fmt.Errorf("failed to get packages: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save packages to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PackageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPackage, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for package")

		return res, nil
	}

	pkg, tiers, err := s.getWithTiers(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(pkg, tiers)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save package to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePackageRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(nil)

	if req == (dto.UpdatePackageRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	filter.Filters = append(filter.Filters, shared.FilterNotDeleted(model.TableName))

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if package exists")

		return fmt.Errorf("failed to check if package exists: %w", err)
	}

	if !exist {
		return failure.NotFound("package not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update package")

		return fmt.Errorf("failed to update package: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPackage, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete package from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPackage)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(nil)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	filter.Filters = append(filter.Filters, shared.FilterNotDeleted(model.TableName))

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if package exists")

		return fmt.Errorf("failed to check if package exists: %w", err)
	}

	if !exist {
		return failure.NotFound("package not found") // nolint:wrapcheck
	}

	// Soft delete so historical bookings keep their package reference.
	deletedFields := map[string]any{
		constant.FieldDeletedAt:  timezone.Now(),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, deletedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete package")

		return fmt.Errorf("failed to delete package: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPackage, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete package from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPackage)
		shared.InvalidateCaches(c, s.cache, cacheCountPackage)
	}()

	return nil
}

func (s *serviceImpl) Quote(ctx context.Context, id string, area float64) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer scope.TraceIfError(err)

	if area < 0 {
		return res, failure.BadRequestFromString("area cannot be negative") // nolint:wrapcheck
	}

	pkg, tiers, err := s.getWithTiers(ctx, id)
	if err != nil {
		return res, err
	}

	price, ok := pkg.PriceFor(area, tiers)
	if !ok {
		return res, failure.BadRequestFromString("no pricing tier covers the requested area") // nolint:wrapcheck
	}

	return dto.QuoteResponse{
		PackageID: pkg.ID,
		Area:      area,
		Price:     price,
	}, nil
}

func (s *serviceImpl) getWithTiers(ctx context.Context, id string) (pkg model.ServicePackage, tiers []model.PackageTier, err error) {
	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	filter.Filters = append(filter.Filters, shared.FilterNotDeleted(model.TableName))

	pkg, err = s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get package")

		return pkg, nil, fmt.Errorf("failed to get package: %w", err)
	}

	if pkg.ID == constant.Empty {
		return pkg, nil, failure.NotFound("package not found") // nolint:wrapcheck
	}

	tierFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldPackageID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    model.TierTableName,
			},
		},
	}

	params := gDto.QueryParams{SortBy: model.TierTableName + "." + model.FieldMinArea, SortDir: "ASC"}

	tiers, err = s.tierRepo.GetAll(ctx, params, tierFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get package tiers")

		return pkg, nil, fmt.Errorf("failed to get package tiers: %w", err)
	}

	return pkg, tiers, nil
}
