package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"sparkle/config"
	"sparkle/infras/otel"
	"sparkle/internal/domains/booking/events"
	"sparkle/internal/domains/booking/model"
	"sparkle/internal/domains/booking/model/dto"
	"sparkle/internal/domains/booking/recurring"
	"sparkle/internal/domains/booking/repository"
	"sparkle/internal/domains/booking/visibility"
	customerModel "sparkle/internal/domains/customer/model"
	customerRepo "sparkle/internal/domains/customer/repository"
	teamModel "sparkle/internal/domains/team/model"
	teamRepo "sparkle/internal/domains/team/repository"
	"sparkle/shared"
	"sparkle/shared/cache"
	"sparkle/shared/constant"
	gDto "sparkle/shared/dto"
	"sparkle/shared/failure"
	"sparkle/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	CreateSeries(ctx context.Context, bookings []model.Booking) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetModel(ctx context.Context, id string) (model.Booking, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) error
	UpdatePayment(ctx context.Context, id, paymentStatus string, slipURL *string) error
	Delete(ctx context.Context, id string) error
	Group(ctx context.Context, bookingID string) (dto.GroupResponse, error)
	History(ctx context.Context, customerID string) (dto.HistoryResponse, error)
	RelevantTo(ctx context.Context, event events.BookingEvent, role, staffID string) (bool, error)
	Events(ctx context.Context) (<-chan events.BookingEvent, func())
}

type serviceImpl struct {
	repo       repository.Booking
	custRepo   customerRepo.Customer
	memberRepo teamRepo.Member
	bus        events.Bus
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(repo repository.Booking, custRepo customerRepo.Customer, memberRepo teamRepo.Member, bus events.Bus, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:       repo,
		custRepo:   custRepo,
		memberRepo: memberRepo,
		bus:        bus,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

// CreateSeries persists one or more bookings produced by wizard
// submission. A recurring series arrives as multiple bookings sharing a
// recurring_group_id; a standalone booking arrives alone.
func (s *serviceImpl) CreateSeries(ctx context.Context, bookings []model.Booking) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateSeries")
	defer scope.End()
	defer scope.TraceIfError(err)

	if len(bookings) == 0 {
		return failure.BadRequestFromString("no bookings to create") // nolint:wrapcheck
	}

	for i := range bookings {
		if bookings[i].StaffID != nil && bookings[i].TeamID != nil {
			return failure.BadRequestFromString("booking cannot be assigned to both a staff member and a team") // nolint:wrapcheck
		}
	}

	customerExists, err := s.custRepo.Exist(ctx, shared.FilterByID(bookings[0].CustomerID, customerModel.FieldID, customerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if customer exists")

		return fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if !customerExists {
		return failure.BadRequestFromString("customer does not exist") // nolint:wrapcheck
	}

	if len(bookings) == 1 {
		err = s.repo.Insert(ctx, bookings[0])
	} else {
		err = s.repo.InsertBulk(ctx, bookings)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to create bookings")

		return fmt.Errorf("failed to create bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)

		for i := range bookings {
			s.publish(c, events.EventCreated, bookings[i])
		}
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter.Filters = append(filter.Filters, shared.FilterNotDeleted(model.TableName))

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	staffID, _ := ctx.Value(constant.ContextKeyStaffID).(string)

	if role == constant.RoleStaff {
		return s.getAllForStaff(ctx, req, filter, staffID)
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit, timezone.Now())

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

// getAllForStaff applies the membership-period filter. The visibility
// decision needs the staff member's full interval history, so the page
// is cut in memory after filtering rather than in SQL.
func (s *serviceImpl) getAllForStaff(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup, staffID string) (res dto.GetBookingsResponse, err error) {
	if staffID == constant.Empty {
		return res, failure.Forbidden("user has no linked staff record") // nolint:wrapcheck
	}

	unpaged := gDto.QueryParams{SortBy: req.SortBy, SortDir: req.SortDir}

	models, err := s.repo.GetAll(ctx, unpaged, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	periods, err := s.membershipPeriods(ctx, staffID)
	if err != nil {
		return res, err
	}

	visible := make([]model.Booking, 0, len(models))

	for _, mod := range models {
		ref := visibility.BookingRef{
			StaffID:   mod.StaffID,
			TeamID:    mod.TeamID,
			CreatedAt: mod.CreatedAt,
		}

		if visibility.VisibleTo(ref, staffID, periods) {
			visible = append(visible, mod)
		}
	}

	total := len(visible)

	if req.Page > 0 && req.Limit > 0 {
		start := (req.Page - 1) * req.Limit
		if start > total {
			start = total
		}

		end := start + req.Limit
		if end > total {
			end = total
		}

		visible = visible[start:end]
	}

	res.FromModels(visible, total, req.Limit, timezone.Now())

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.GetModel(ctx, id)
	if err != nil {
		return res, err
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	staffID, _ := ctx.Value(constant.ContextKeyStaffID).(string)

	if role == constant.RoleStaff {
		periods, err := s.membershipPeriods(ctx, staffID)
		if err != nil {
			return res, err
		}

		ref := visibility.BookingRef{
			StaffID:   booking.StaffID,
			TeamID:    booking.TeamID,
			CreatedAt: booking.CreatedAt,
		}

		if !visibility.VisibleTo(ref, staffID, periods) {
			return res, failure.ResourceRestrictedError // nolint:wrapcheck
		}
	}

	res.FromModel(booking, timezone.Now())

	return res, nil
}

func (s *serviceImpl) GetModel(ctx context.Context, id string) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetModel")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	filter.Filters = append(filter.Filters, shared.FilterNotDeleted(model.TableName))

	res, err = s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if res.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return res, nil
}

// Update patches booking fields. Assignment changes are merged against
// the stored booking so a partial patch cannot silently violate the
// one-of-{staff, team} rule.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(nil)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.GetModel(ctx, id)
	if err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, user)

	if req.BookingDate != "" {
		bookingDate, err := timezone.Parse(constant.DateOnlyFormat, req.BookingDate)
		if err != nil {
			return failure.BadRequestFromString(fmt.Sprintf("invalid booking_date format: %v", err)) // nolint:wrapcheck
		}

		updatedFields[model.FieldBookingDate] = bookingDate
	}

	if req.StaffID != nil || req.TeamID != nil {
		staffID := booking.StaffID
		teamID := booking.TeamID

		if req.StaffID != nil {
			staffID = normalizeAssignee(*req.StaffID)
		}

		if req.TeamID != nil {
			teamID = normalizeAssignee(*req.TeamID)
		}

		if staffID != nil && teamID != nil {
			return failure.BadRequestFromString("booking cannot be assigned to both a staff member and a team") // nolint:wrapcheck
		}

		updatedFields[model.FieldStaffID] = staffID
		updatedFields[model.FieldTeamID] = teamID
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c, id)
		s.publish(c, events.EventUpdated, booking)
	}()

	return nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(nil)

	if !model.ValidStatus(req.Status) {
		return failure.BadRequestFromString("invalid booking status") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	staffID, _ := ctx.Value(constant.ContextKeyStaffID).(string)

	booking, err := s.GetModel(ctx, id)
	if err != nil {
		return err
	}

	if role == constant.RoleStaff {
		periods, err := s.membershipPeriods(ctx, staffID)
		if err != nil {
			return err
		}

		ref := visibility.BookingRef{
			StaffID:   booking.StaffID,
			TeamID:    booking.TeamID,
			CreatedAt: booking.CreatedAt,
		}

		if !visibility.VisibleTo(ref, staffID, periods) {
			return failure.ResourceRestrictedError // nolint:wrapcheck
		}
	}

	updatedFields := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c, id)
		s.publish(c, events.EventStatusChanged, booking)
	}()

	return nil
}

// UpdatePayment moves a booking through the payment lifecycle. A nil
// slipURL leaves the stored slip untouched.
func (s *serviceImpl) UpdatePayment(ctx context.Context, id, paymentStatus string, slipURL *string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdatePayment")
	defer scope.End()
	defer scope.TraceIfError(nil)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.GetModel(ctx, id)
	if err != nil {
		return err
	}

	updatedFields := map[string]any{
		model.FieldPaymentStatus: paymentStatus,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if slipURL != nil {
		updatedFields[model.FieldPaymentSlipURL] = *slipURL
	}

	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking payment")

		return fmt.Errorf("failed to update booking payment: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c, id)
		s.publish(c, events.EventUpdated, booking)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(nil)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.GetModel(ctx, id)
	if err != nil {
		return err
	}

	deletedFields := map[string]any{
		constant.FieldDeletedAt:  timezone.Now(),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, deletedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c, id)
		s.publish(c, events.EventDeleted, booking)
	}()

	return nil
}

func (s *serviceImpl) Group(ctx context.Context, bookingID string) (res dto.GroupResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Group")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.GetModel(ctx, bookingID)
	if err != nil {
		return res, err
	}

	if booking.RecurringGroupID == nil {
		return res, failure.BadRequestFromString("booking is not part of a recurring series") // nolint:wrapcheck
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRecurringGroupID,
				Operator: gDto.FilterOperatorEq,
				Value:    *booking.RecurringGroupID,
				Table:    model.TableName,
			},
			shared.FilterNotDeleted(model.TableName),
		},
	}

	members, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get recurring group")

		return res, fmt.Errorf("failed to get recurring group: %w", err)
	}

	now := timezone.Now()
	group := recurring.BuildGroup(*booking.RecurringGroupID, members, now)

	res.FromGroup(group, now)

	return res, nil
}

func (s *serviceImpl) History(ctx context.Context, customerID string) (res dto.HistoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".History")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCustomerID,
				Operator: gDto.FilterOperatorEq,
				Value:    customerID,
				Table:    model.TableName,
			},
			shared.FilterNotDeleted(model.TableName),
		},
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking history")

		return res, fmt.Errorf("failed to get booking history: %w", err)
	}

	now := timezone.Now()

	res.FromItems(recurring.CombineHistory(models, now), now)

	return res, nil
}

// RelevantTo is the realtime twin of the query-path visibility check.
// Admins and managers see every event; staff see an event only when the
// same membership-period rule admits the underlying booking.
func (s *serviceImpl) RelevantTo(ctx context.Context, event events.BookingEvent, role, staffID string) (bool, error) {
	if role != constant.RoleStaff {
		return true, nil
	}

	if staffID == constant.Empty {
		return false, nil
	}

	periods, err := s.membershipPeriods(ctx, staffID)
	if err != nil {
		return false, err
	}

	ref := visibility.BookingRef{
		StaffID:   event.StaffID,
		TeamID:    event.TeamID,
		CreatedAt: event.BookingCreatedAt,
	}

	return visibility.VisibleTo(ref, staffID, periods), nil
}

func (s *serviceImpl) Events(ctx context.Context) (<-chan events.BookingEvent, func()) {
	return s.bus.Subscribe(ctx)
}

func (s *serviceImpl) membershipPeriods(ctx context.Context, staffID string) ([]visibility.MembershipPeriod, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    teamModel.FieldStaffID,
				Operator: gDto.FilterOperatorEq,
				Value:    staffID,
				Table:    teamModel.MemberTableName,
			},
		},
	}

	members, err := s.memberRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get membership periods")

		return nil, fmt.Errorf("failed to get membership periods: %w", err)
	}

	periods := make([]visibility.MembershipPeriod, len(members))
	for i, member := range members {
		periods[i] = visibility.MembershipPeriod{
			TeamID:   member.TeamID,
			JoinedAt: member.JoinedAt,
			LeftAt:   member.LeftAt,
		}
	}

	return periods, nil
}

// normalizeAssignee maps an empty string to an unassigned side.
func normalizeAssignee(id string) *string {
	if id == constant.Empty {
		return nil
	}

	return &id
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllBooking)
	shared.InvalidateCaches(ctx, s.cache, cacheCountBooking)
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, booking model.Booking) {
	event := events.BookingEvent{
		Type:             eventType,
		BookingID:        booking.ID,
		CustomerID:       booking.CustomerID,
		StaffID:          booking.StaffID,
		TeamID:           booking.TeamID,
		BookingCreatedAt: booking.CreatedAt,
		OccurredAt:       timezone.Now(),
	}

	if err := s.bus.Publish(ctx, event); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to publish booking event")
	}
}
