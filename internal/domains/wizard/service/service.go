package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"sparkle/config"
	"sparkle/infras/otel"
	bookingModel "sparkle/internal/domains/booking/model"
	bookingService "sparkle/internal/domains/booking/service"
	customerModel "sparkle/internal/domains/customer/model"
	customerRepo "sparkle/internal/domains/customer/repository"
	pkgModel "sparkle/internal/domains/servicepackage/model"
	pkgRepo "sparkle/internal/domains/servicepackage/repository"
	"sparkle/internal/domains/wizard/model/dto"
	"sparkle/internal/domains/wizard/repository"
	"sparkle/internal/domains/wizard/state"
	"sparkle/shared"
	"sparkle/shared/constant"
	gDto "sparkle/shared/dto"
	"sparkle/shared/failure"
	gModel "sparkle/shared/model"
	"sparkle/shared/timezone"
)

const recurrenceIntervalDays = 7

type Wizard interface {
	Draft(ctx context.Context) (dto.DraftResponse, error)
	Apply(ctx context.Context, req dto.ActionRequest) (dto.DraftResponse, error)
	Clear(ctx context.Context) error
	Submit(ctx context.Context) (dto.SubmitResponse, error)
	Preference(ctx context.Context) (dto.PreferenceResponse, error)
	SetPreference(ctx context.Context, req dto.PreferenceRequest) error
}

type serviceImpl struct {
	draftRepo repository.Draft
	prefRepo  repository.Preference
	custRepo  customerRepo.Customer
	pkgRepo   pkgRepo.ServicePackage
	tierRepo  pkgRepo.Tier
	bookings  bookingService.Booking
	cfg       *config.Config
	otel      otel.Otel
}

func New(draftRepo repository.Draft, prefRepo repository.Preference, custRepo customerRepo.Customer, packageRepo pkgRepo.ServicePackage, tierRepo pkgRepo.Tier, bookings bookingService.Booking, cfg *config.Config, otel otel.Otel) Wizard {
	return &serviceImpl{
		draftRepo: draftRepo,
		prefRepo:  prefRepo,
		custRepo:  custRepo,
		pkgRepo:   packageRepo,
		tierRepo:  tierRepo,
		bookings:  bookings,
		cfg:       cfg,
		otel:      otel,
	}
}

func (s *serviceImpl) Draft(ctx context.Context) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Draft")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	draft, _, err := s.draftRepo.Load(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load wizard draft")

		return res, err
	}

	res.State = draft

	return res, nil
}

// Apply resolves the action's references, runs the reducer and persists
// the next draft.
func (s *serviceImpl) Apply(ctx context.Context, req dto.ActionRequest) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Apply")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	draft, _, err := s.draftRepo.Load(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load wizard draft")

		return res, err
	}

	action, err := s.resolveAction(ctx, req, draft)
	if err != nil {
		return res, err
	}

	next := state.Apply(draft, action)

	if err = s.draftRepo.Save(ctx, userID, next); err != nil {
		log.Error().Err(err).Msg("failed to save wizard draft")

		return res, err
	}

	res.State = next

	return res, nil
}

func (s *serviceImpl) Clear(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Clear")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.draftRepo.Clear(ctx, userID); err != nil {
		log.Error().Err(err).Msg("failed to clear wizard draft")
	}

	return err
}

// Submit turns a complete draft into bookings. Validation always runs
// against the full draft here, regardless of which step the client last
// showed, so backward navigation can never smuggle an invalid draft
// through.
func (s *serviceImpl) Submit(ctx context.Context) (res dto.SubmitResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Submit")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	draft, found, err := s.draftRepo.Load(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load wizard draft")

		return res, err
	}

	if !found {
		return res, failure.NotFound("wizard draft not found") // nolint:wrapcheck
	}

	if errs := state.ValidateFull(draft); len(errs) > 0 {
		fields := make([]string, 0, len(errs))
		for field := range errs {
			fields = append(fields, field)
		}

		sort.Strings(fields)

		return res, failure.BadRequestFromString("draft is incomplete: " + strings.Join(fields, ", ")) // nolint:wrapcheck
	}

	customerID := draft.CustomerID
	if customerID == constant.Empty {
		customerID, err = s.createCustomer(ctx, draft, userID)
		if err != nil {
			return res, err
		}
	}

	bookings, groupID, err := s.buildBookings(draft, customerID, userID)
	if err != nil {
		return res, err
	}

	if err = s.bookings.CreateSeries(ctx, bookings); err != nil {
		return res, err
	}

	if err = s.draftRepo.Clear(ctx, userID); err != nil {
		log.Error().Err(err).Msg("failed to clear wizard draft after submit")
	}

	res.CustomerID = customerID
	res.RecurringGroupID = groupID
	res.BookingIDs = make([]string, len(bookings))

	for i := range bookings {
		res.BookingIDs[i] = bookings[i].ID
	}

	return res, nil
}

func (s *serviceImpl) Preference(ctx context.Context) (res dto.PreferenceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Preference")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	mode, err := s.prefRepo.Load(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load wizard preference")

		return res, err
	}

	res.Mode = mode

	return res, nil
}

func (s *serviceImpl) SetPreference(ctx context.Context, req dto.PreferenceRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetPreference")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.prefRepo.Save(ctx, userID, req.Mode); err != nil {
		log.Error().Err(err).Msg("failed to save wizard preference")
	}

	return err
}

func (s *serviceImpl) resolveAction(ctx context.Context, req dto.ActionRequest, draft state.State) (state.Action, error) {
	action := state.Action{
		Type:    req.Type,
		Step:    req.Step,
		Mode:    req.Mode,
		Value:   req.Value,
		Name:    req.Name,
		Phone:   req.Phone,
		Price:   req.Price,
		Count:   req.Count,
		Enabled: req.Enabled,
		Manual:  req.Manual,
		StaffID: req.StaffID,
		TeamID:  req.TeamID,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		ZipCode: req.ZipCode,
	}

	switch req.Type {
	case state.ActionSelectCustomer:
		info, err := s.customerInfo(ctx, req.CustomerID)
		if err != nil {
			return action, err
		}

		action.Customer = info

	case state.ActionToggleCustomerAddress:
		if req.Enabled && draft.CustomerID != constant.Empty {
			info, err := s.customerInfo(ctx, draft.CustomerID)
			if err != nil {
				return action, err
			}

			action.Customer = info
		}

	case state.ActionSelectPackage:
		info, err := s.packageInfo(ctx, req.PackageID, draft.Area)
		if err != nil {
			return action, err
		}

		action.Package = info
	}

	return action, nil
}

func (s *serviceImpl) customerInfo(ctx context.Context, id string) (*state.CustomerInfo, error) {
	if id == constant.Empty {
		return nil, failure.BadRequestFromString("customer_id is required") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, customerModel.FieldID, customerModel.TableName)
	filter.Filters = append(filter.Filters, shared.FilterNotDeleted(customerModel.TableName))

	customer, err := s.custRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == constant.Empty {
		return nil, failure.NotFound("customer not found") // nolint:wrapcheck
	}

	return &state.CustomerInfo{
		ID:      customer.ID,
		Name:    customer.Name,
		Phone:   customer.Phone,
		Address: customer.Address,
		City:    customer.City,
		State:   customer.State,
		ZipCode: customer.ZipCode,
	}, nil
}

// packageInfo resolves a package and prices it against the draft's
// area. Tiered packages without a matching band fall back to the base
// price; the quote endpoint is the strict path.
func (s *serviceImpl) packageInfo(ctx context.Context, id string, area *float64) (*state.PackageInfo, error) {
	if id == constant.Empty {
		return nil, failure.BadRequestFromString("package_id is required") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, pkgModel.FieldID, pkgModel.TableName)
	filter.Filters = append(filter.Filters, shared.FilterNotDeleted(pkgModel.TableName))

	pkg, err := s.pkgRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get package")

		return nil, fmt.Errorf("failed to get package: %w", err)
	}

	if pkg.ID == constant.Empty {
		return nil, failure.NotFound("package not found") // nolint:wrapcheck
	}

	price := pkg.BasePrice

	if pkg.PricingModel == pkgModel.PricingModelTiered && area != nil {
		tierFilter := gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{
					Field:    pkgModel.FieldPackageID,
					Operator: gDto.FilterOperatorEq,
					Value:    id,
					Table:    pkgModel.TierTableName,
				},
			},
		}

		params := gDto.QueryParams{SortBy: pkgModel.TierTableName + "." + pkgModel.FieldMinArea, SortDir: gDto.SortDirAsc}

		tiers, err := s.tierRepo.GetAll(ctx, params, tierFilter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get package tiers")

			return nil, fmt.Errorf("failed to get package tiers: %w", err)
		}

		if tiered, ok := pkg.PriceFor(*area, tiers); ok {
			price = tiered
		}
	}

	return &state.PackageInfo{
		ID:              pkg.ID,
		Price:           price,
		DurationMinutes: pkg.DurationMinutes,
	}, nil
}

func (s *serviceImpl) createCustomer(ctx context.Context, draft state.State, userID string) (string, error) {
	customer := customerModel.Customer{
		ID:      uuid.NewString(),
		Name:    draft.NewCustomerName,
		Phone:   draft.NewCustomerPhone,
		Address: draft.Address,
		City:    draft.City,
		State:   draft.State,
		ZipCode: draft.ZipCode,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}

	if err := s.custRepo.Insert(ctx, customer); err != nil {
		log.Error().Err(err).Msg("failed to create customer from wizard draft")

		return "", fmt.Errorf("failed to create customer: %w", err)
	}

	return customer.ID, nil
}

// buildBookings expands the draft into its booking rows: one for a
// plain visit, one per day for a multi-day job, or one per occurrence
// for a weekly recurring series. Multi-day and recurring series share a
// recurring_group_id so history views can fold them.
func (s *serviceImpl) buildBookings(draft state.State, customerID, userID string) ([]bookingModel.Booking, *string, error) {
	firstDate, err := timezone.Parse(constant.DateOnlyFormat, draft.BookingDate)
	if err != nil {
		return nil, nil, failure.BadRequestFromString(fmt.Sprintf("invalid booking_date format: %v", err)) // nolint:wrapcheck
	}

	dates := []time.Time{firstDate}

	var groupID *string

	switch {
	case draft.MultiDay:
		endDate, err := timezone.Parse(constant.DateOnlyFormat, draft.EndDate)
		if err != nil {
			return nil, nil, failure.BadRequestFromString(fmt.Sprintf("invalid end_date format: %v", err)) // nolint:wrapcheck
		}

		if endDate.Before(firstDate) {
			return nil, nil, failure.BadRequestFromString("end_date cannot be before booking_date") // nolint:wrapcheck
		}

		for d := firstDate.AddDate(0, 0, 1); !d.After(endDate); d = d.AddDate(0, 0, 1) {
			dates = append(dates, d)
		}

	case draft.IsRecurring:
		for i := 1; i < draft.RecurrenceCount; i++ {
			dates = append(dates, firstDate.AddDate(0, 0, i*recurrenceIntervalDays))
		}
	}

	if len(dates) > 1 {
		id := uuid.NewString()
		groupID = &id
	}

	price := 0.0

	switch draft.PriceMode {
	case state.PriceModeCustom:
		if draft.CustomPrice != nil {
			price = *draft.CustomPrice
		}
	default:
		if draft.TotalPrice != nil {
			price = *draft.TotalPrice
		}
	}

	var staffID, teamID *string

	if draft.StaffID != constant.Empty {
		v := draft.StaffID
		staffID = &v
	}

	if draft.TeamID != constant.Empty {
		v := draft.TeamID
		teamID = &v
	}

	var packageID, jobName, notes *string

	if draft.PackageID != constant.Empty {
		v := draft.PackageID
		packageID = &v
	}

	if draft.JobName != constant.Empty {
		v := draft.JobName
		jobName = &v
	}

	if draft.Notes != constant.Empty {
		v := draft.Notes
		notes = &v
	}

	now := timezone.Now()
	bookings := make([]bookingModel.Booking, len(dates))

	for i, date := range dates {
		bookings[i] = bookingModel.Booking{
			ID:               uuid.NewString(),
			CustomerID:       customerID,
			PackageID:        packageID,
			JobName:          jobName,
			BookingDate:      date,
			StartTime:        draft.StartTime,
			EndTime:          draft.EndTime,
			StaffID:          staffID,
			TeamID:           teamID,
			Address:          draft.Address,
			City:             draft.City,
			State:            draft.State,
			ZipCode:          draft.ZipCode,
			Area:             draft.Area,
			PriceMode:        draft.PriceMode,
			TotalPrice:       price,
			Status:           bookingModel.StatusConfirmed,
			PaymentStatus:    bookingModel.PaymentStatusUnpaid,
			RecurringGroupID: groupID,
			Notes:            notes,
			Metadata: gModel.Metadata{
				CreatedAt:  now,
				ModifiedAt: now,
				CreatedBy:  userID,
				ModifiedBy: userID,
			},
		}
	}

	return bookings, groupID, nil
}
