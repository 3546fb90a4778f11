package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"sparkle/config"
	"sparkle/infras/otel"
	staffModel "sparkle/internal/domains/staff/model"
	staffRepo "sparkle/internal/domains/staff/repository"
	"sparkle/internal/domains/team/model"
	"sparkle/internal/domains/team/model/dto"
	"sparkle/internal/domains/team/repository"
	"sparkle/shared"
	"sparkle/shared/cache"
	"sparkle/shared/constant"
	gDto "sparkle/shared/dto"
	"sparkle/shared/failure"
	"sparkle/shared/timezone"
)

const (
	cacheGetTeam    = "team:get"
	cacheGetAllTeam = "team:gets"
	cacheCountTeam  = "team:count"
	cacheMembers    = "team:members"
)

type Team interface {
	Create(ctx context.Context, req dto.CreateTeamRequest) (dto.TeamResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTeamsResponse, error)
	Get(ctx context.Context, id string) (dto.TeamResponse, error)
	Update(ctx context.Context, req dto.UpdateTeamRequest, id string) error
	Delete(ctx context.Context, id string) error

	Members(ctx context.Context, teamID string, includeLeft bool) (dto.GetMembersResponse, error)
	AddMember(ctx context.Context, teamID string, req dto.AddMemberRequest) error
	RemoveMember(ctx context.Context, teamID, staffID string) error
	MembershipHistory(ctx context.Context, staffID string) ([]model.TeamMember, error)
}

type serviceImpl struct {
	repo       repository.Team
	memberRepo repository.Member
	staffRepo  staffRepo.Staff
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(repo repository.Team, memberRepo repository.Member, staffRepo staffRepo.Staff, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Team {
	return &serviceImpl{
		repo:       repo,
		memberRepo: memberRepo,
		staffRepo:  staffRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTeamRequest) (res dto.TeamResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	team := req.ToModel(user)

	if err = s.repo.Insert(ctx, team); err != nil {
		log.Error().Err(err).Msg("failed to create team")

		return res, fmt.Errorf("failed to create team: %w", err)
	}

	res.FromModel(team)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllTeam)
		shared.InvalidateCaches(c, s.cache, cacheCountTeam)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTeamsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter.Filters = append(filter.Filters, shared.FilterNotDeleted(model.TableName))

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTeam, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for teams")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count teams")

		return res, fmt.Errorf("failed to count teams: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get teams")

		return res, fmt.Errorf("failed to get teams: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save teams to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TeamResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetTeam, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for team")

		return res, nil
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	filter.Filters = append(filter.Filters, shared.FilterNotDeleted(model.TableName))

	team, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get team")

		return res, fmt.Errorf("failed to get team: %w", err)
	}

	if team.ID == constant.Empty {
		return res, failure.NotFound("team not found") // nolint:wrapcheck
	}

	res.FromModel(team)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save team to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTeamRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(nil)

	if req == (dto.UpdateTeamRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	filter.Filters = append(filter.Filters, shared.FilterNotDeleted(model.TableName))

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if team exists")

		return fmt.Errorf("failed to check if team exists: %w", err)
	}

	if !exist {
		return failure.NotFound("team not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update team")

		return fmt.Errorf("failed to update team: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTeam, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete team from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllTeam)
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
		log.Error().Err(err).Msg("failed to check if team exists")

		return fmt.Errorf("failed to check if team exists: %w", err)
	}

	if !exist {
		return failure.NotFound("team not found") // nolint:wrapcheck
	}

	deletedFields := map[string]any{
		constant.FieldDeletedAt:  timezone.Now(),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, deletedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete team")

		return fmt.Errorf("failed to delete team: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTeam, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete team from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllTeam)
		shared.InvalidateCaches(c, s.cache, cacheCountTeam)
	}()

	return nil
}

func (s *serviceImpl) Members(ctx context.Context, teamID string, includeLeft bool) (res dto.GetMembersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Members")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTeamID,
				Operator: gDto.FilterOperatorEq,
				Value:    teamID,
				Table:    model.MemberTableName,
			},
		},
	}

	if !includeLeft {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldLeftAt,
			Operator: gDto.FilterIsNull,
			Table:    model.MemberTableName,
		})
	}

	params := gDto.QueryParams{SortBy: model.MemberTableName + "." + model.FieldJoinedAt, SortDir: "ASC"}

	members, err := s.memberRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get team members")

		return res, fmt.Errorf("failed to get team members: %w", err)
	}

	res.FromModels(members)

	return res, nil
}

func (s *serviceImpl) AddMember(ctx context.Context, teamID string, req dto.AddMemberRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddMember")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	teamFilter := shared.FilterByID(teamID, model.FieldID, model.TableName)
	teamFilter.Filters = append(teamFilter.Filters, shared.FilterNotDeleted(model.TableName))

	teamExists, err := s.repo.Exist(ctx, teamFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if team exists")

		return fmt.Errorf("failed to check if team exists: %w", err)
	}

	if !teamExists {
		return failure.NotFound("team not found") // nolint:wrapcheck
	}

	staffExists, err := s.staffRepo.Exist(ctx, shared.FilterByID(req.StaffID, staffModel.FieldID, staffModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if staff exists")

		return fmt.Errorf("failed to check if staff exists: %w", err)
	}

	if !staffExists {
		return failure.BadRequestFromString("staff does not exist") // nolint:wrapcheck
	}

	activeExists, err := s.memberRepo.Exist(ctx, s.activeMembershipFilter(teamID, req.StaffID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check active membership")

		return fmt.Errorf("failed to check active membership: %w", err)
	}

	if activeExists {
		return failure.Conflict("staff is already an active member of this team") // nolint:wrapcheck
	}

	member, err := req.ToModel(teamID, user)
	if err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("invalid joined_at format: %v", err)) // nolint:wrapcheck
	}

	if err = s.memberRepo.Insert(ctx, member); err != nil {
		log.Error().Err(err).Msg("failed to add team member")

		return fmt.Errorf("failed to add team member: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheMembers)
	}()

	return nil
}

func (s *serviceImpl) RemoveMember(ctx context.Context, teamID, staffID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RemoveMember")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	filter := s.activeMembershipFilter(teamID, staffID)

	activeExists, err := s.memberRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check active membership")

		return fmt.Errorf("failed to check active membership: %w", err)
	}

	if !activeExists {
		return failure.NotFound("active membership not found") // nolint:wrapcheck
	}

	// Leaving closes the interval instead of deleting the row. The closed
	// period still grants visibility into bookings created while active.
	updatedFields := map[string]any{
		model.FieldLeftAt:        timezone.Now(),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.memberRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to remove team member")

		return fmt.Errorf("failed to remove team member: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheMembers)
	}()

	return nil
}

// MembershipHistory returns every membership period the staff member has
// ever held, including closed ones, ordered by join time.
func (s *serviceImpl) MembershipHistory(ctx context.Context, staffID string) (res []model.TeamMember, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MembershipHistory")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStaffID,
				Operator: gDto.FilterOperatorEq,
				Value:    staffID,
				Table:    model.MemberTableName,
			},
		},
	}

	params := gDto.QueryParams{SortBy: model.MemberTableName + "." + model.FieldJoinedAt, SortDir: "ASC"}

	res, err = s.memberRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get membership history")

		return nil, fmt.Errorf("failed to get membership history: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) activeMembershipFilter(teamID, staffID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTeamID,
				Operator: gDto.FilterOperatorEq,
				Value:    teamID,
				Table:    model.MemberTableName,
			},
			gDto.Filter{
				Field:    model.FieldStaffID,
				Operator: gDto.FilterOperatorEq,
				Value:    staffID,
				Table:    model.MemberTableName,
			},
			gDto.Filter{
				Field:    model.FieldLeftAt,
				Operator: gDto.FilterIsNull,
				Table:    model.MemberTableName,
			},
		},
	}
}
