package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"sparkle/infras/otel"
	bookingModel "sparkle/internal/domains/booking/model"
	bookingRepo "sparkle/internal/domains/booking/repository"
	customerModel "sparkle/internal/domains/customer/model"
	customerRepo "sparkle/internal/domains/customer/repository"
	"sparkle/internal/domains/report/model/dto"
	"sparkle/shared"
	"sparkle/shared/constant"
	gDto "sparkle/shared/dto"
	"sparkle/shared/failure"
	"sparkle/shared/timezone"
)

const (
	formatCSV  = "csv"
	formatXLSX = "xlsx"

	exportSheet = "Bookings"
)

var exportHeader = []string{
	"Booking ID", "Date", "Start", "End", "Customer", "Job",
	"Address", "City", "State", "Zip", "Area", "Price Mode",
	"Total Price", "Status", "Payment Status", "Recurring Group",
}

type Report interface {
	Summary(ctx context.Context, req dto.SummaryRequest) (dto.SummaryResponse, error)
	ExportBookings(ctx context.Context, req dto.ExportRequest) (dto.ExportFile, error)
}

type serviceImpl struct {
	bookingRepo  bookingRepo.Booking
	customerRepo customerRepo.Customer
	otel         otel.Otel
}

func New(bookingRepo bookingRepo.Booking, customerRepo customerRepo.Customer, otel otel.Otel) Report {
	return &serviceImpl{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		otel:         otel,
	}
}

// Summary aggregates booking counts and revenue over an optional date
// range. Status counts use the derived status, so confirmed future
// bookings report as upcoming.
func (s *serviceImpl) Summary(ctx context.Context, req dto.SummaryRequest) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summary")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookings, err := s.bookingsInRange(ctx, req.From, req.To)
	if err != nil {
		return res, err
	}

	now := timezone.Now()
	customers := map[string]struct{}{}

	res.From = req.From
	res.To = req.To
	res.BookingsByStatus = map[string]int{}
	res.PaymentsByStatus = map[string]int{}

	for i := range bookings {
		b := &bookings[i]

		res.TotalBookings++
		res.BookingsByStatus[b.EffectiveStatus(now)]++
		res.PaymentsByStatus[b.PaymentStatus]++

		customers[b.CustomerID] = struct{}{}

		// Cancelled and no-show visits never count toward revenue.
		countsRevenue := b.Status != bookingModel.StatusCancelled && b.Status != bookingModel.StatusNoShow

		if countsRevenue {
			res.TotalRevenue += b.TotalPrice
		}

		switch b.PaymentStatus {
		case bookingModel.PaymentStatusPaid:
			res.CollectedRevenue += b.TotalPrice
		default:
			if countsRevenue {
				res.OutstandingCount++
			}
		}
	}

	res.UniqueCustomers = len(customers)

	return res, nil
}

// ExportBookings produces a CSV or Excel file of the bookings in the
// requested range, one row per booking with the customer name resolved.
func (s *serviceImpl) ExportBookings(ctx context.Context, req dto.ExportRequest) (res dto.ExportFile, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ExportBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookings, err := s.bookingsInRange(ctx, req.From, req.To)
	if err != nil {
		return res, err
	}

	names, err := s.customerNames(ctx, bookings)
	if err != nil {
		return res, err
	}

	rows := make([][]string, 0, len(bookings))
	now := timezone.Now()

	for i := range bookings {
		rows = append(rows, exportRow(&bookings[i], names, now))
	}

	stamp := now.Format(constant.DateOnlyFormat)

	switch req.Format {
	case formatXLSX:
		payload, err := buildXLSX(rows)
		if err != nil {
			log.Error().Err(err).Msg("failed to build bookings workbook")

			return res, fmt.Errorf("failed to build bookings workbook: %w", err)
		}

		res.FileName = "bookings-" + stamp + ".xlsx"
		res.ContentType = constant.ContentTypeXLSX
		res.Payload = payload
	default:
		payload, err := buildCSV(rows)
		if err != nil {
			log.Error().Err(err).Msg("failed to build bookings csv")

			return res, fmt.Errorf("failed to build bookings csv: %w", err)
		}

		res.FileName = "bookings-" + stamp + ".csv"
		res.ContentType = constant.ContentTypeCSV
		res.Payload = payload
	}

	return res, nil
}

func (s *serviceImpl) bookingsInRange(ctx context.Context, from, to string) ([]bookingModel.Booking, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			shared.FilterNotDeleted(bookingModel.TableName),
		},
	}

	if from != constant.Empty {
		fromDate, err := timezone.Parse(constant.DateOnlyFormat, from)
		if err != nil {
			return nil, failure.BadRequestFromString(fmt.Sprintf("invalid from date: %v", err)) // nolint:wrapcheck
		}

		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "date_from",
			Field:    bookingModel.FieldBookingDate,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    fromDate,
			Table:    bookingModel.TableName,
		})
	}

	if to != constant.Empty {
		toDate, err := timezone.Parse(constant.DateOnlyFormat, to)
		if err != nil {
			return nil, failure.BadRequestFromString(fmt.Sprintf("invalid to date: %v", err)) // nolint:wrapcheck
		}

		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName:  "date_to",
			Field:    bookingModel.FieldBookingDate,
			Operator: gDto.FilterOperatorLessEq,
			Value:    toDate,
			Table:    bookingModel.TableName,
		})
	}

	params := gDto.QueryParams{
		SortBy:  bookingModel.TableName + "." + bookingModel.FieldBookingDate,
		SortDir: gDto.SortDirAsc,
	}

	bookings, err := s.bookingRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for report")

		return nil, fmt.Errorf("failed to get bookings for report: %w", err)
	}

	return bookings, nil
}

func (s *serviceImpl) customerNames(ctx context.Context, bookings []bookingModel.Booking) (map[string]string, error) {
	ids := make([]string, 0, len(bookings))
	seen := map[string]struct{}{}

	for i := range bookings {
		if _, ok := seen[bookings[i].CustomerID]; ok {
			continue
		}

		seen[bookings[i].CustomerID] = struct{}{}
		ids = append(ids, bookings[i].CustomerID)
	}

	names := map[string]string{}

	if len(ids) == 0 {
		return names, nil
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    customerModel.FieldID,
				Operator: gDto.FilterOperatorIn,
				Value:    ids,
				Table:    customerModel.TableName,
			},
		},
	}

	customers, err := s.customerRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get customers for report")

		return nil, fmt.Errorf("failed to get customers for report: %w", err)
	}

	for i := range customers {
		names[customers[i].ID] = customers[i].Name
	}

	return names, nil
}

func exportRow(b *bookingModel.Booking, names map[string]string, now time.Time) []string {
	area := constant.Empty
	if b.Area != nil {
		area = strconv.FormatFloat(*b.Area, 'f', 2, 64)
	}

	group := constant.Empty
	if b.RecurringGroupID != nil {
		group = *b.RecurringGroupID
	}

	jobName := constant.Empty
	if b.JobName != nil {
		jobName = *b.JobName
	}

	return []string{
		b.ID,
		b.BookingDate.Format(constant.DateOnlyFormat),
		b.StartTime,
		b.EndTime,
		names[b.CustomerID],
		jobName,
		b.Address,
		b.City,
		b.State,
		b.ZipCode,
		area,
		b.PriceMode,
		strconv.FormatFloat(b.TotalPrice, 'f', 2, 64),
		b.EffectiveStatus(now),
		b.PaymentStatus,
		group,
	}
}

func buildCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write csv rows: %w", err)
	}

	return buf.Bytes(), nil
}

func buildXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()

	defer func() {
		if err := f.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close workbook")
		}
	}()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	f.SetActiveSheet(index)

	if err = f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err = writeSheetRow(f, 1, exportHeader); err != nil {
		return nil, err
	}

	for i, row := range rows {
		if err = writeSheetRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func writeSheetRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to resolve cell name: %w", err)
	}

	converted := make([]any, len(values))
	for i := range values {
		converted[i] = values[i]
	}

	if err = f.SetSheetRow(exportSheet, cell, &converted); err != nil {
		return fmt.Errorf("failed to write sheet row: %w", err)
	}

	return nil
}
