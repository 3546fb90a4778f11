package wizard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"sparkle/infras/otel"
	"sparkle/internal/domains/wizard/model/dto"
	"sparkle/internal/domains/wizard/service"
	"sparkle/shared/constant"
	"sparkle/shared/validator"
	"sparkle/transport/http/response"
)

type Handler struct {
	service service.Wizard
	otel    otel.Otel
}

func New(service service.Wizard, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/wizard", func(routerGroup chi.Router) {
		routerGroup.Get("/draft", handler.GetDraft)
		routerGroup.Delete("/draft", handler.ClearDraft)
		routerGroup.Post("/actions", handler.ApplyAction)
		routerGroup.Post("/submit", handler.Submit)
		routerGroup.Get("/preferences", handler.GetPreference)
		routerGroup.Put("/preferences", handler.SetPreference)
	})
}

// GetDraft retrieves the caller's booking draft, creating a fresh one
// if none exists.
// @Summary Get the booking draft
// @Description Retrieve the caller's current booking draft state.
// @Tags Wizard
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.DraftResponse] "Draft state"
// @Failure 500 {object} response.Error
// @Router /v1/wizard/draft [get]
// @Security BearerAuth
func (handler *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDraft")
	defer scope.End()

	draft, err := handler.service.Draft(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get wizard draft")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Wizard draft retrieved successfully")

	response.WithJSON(w, http.StatusOK, draft)
}

// ClearDraft discards the caller's booking draft.
// @Summary Clear the booking draft
// @Description Discard the caller's current booking draft.
// @Tags Wizard
// @Accept json
// @Produce json
// @Success 200 {object} response.Message "Draft cleared successfully"
// @Failure 500 {object} response.Error
// @Router /v1/wizard/draft [delete]
// @Security BearerAuth
func (handler *Handler) ClearDraft(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ClearDraft")
	defer scope.End()

	if err := handler.service.Clear(ctx); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to clear wizard draft")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Wizard draft cleared successfully")

	response.WithMessage(w, http.StatusOK, "Draft cleared successfully")
}

// ApplyAction applies a single action to the caller's booking draft
// and returns the resulting state.
// @Summary Apply a wizard action
// @Description Apply a single action to the booking draft and return the next state.
// @Tags Wizard
// @Accept json
// @Produce json
// @Param request body dto.ActionRequest true "Action to apply"
// @Success 200 {object} response.Data[dto.DraftResponse] "Next draft state"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/wizard/actions [post]
// @Security BearerAuth
func (handler *Handler) ApplyAction(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApplyAction")
	defer scope.End()

	req := dto.ActionRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	draft, err := handler.service.Apply(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to apply wizard action")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Wizard action applied: " + req.Type)

	response.WithJSON(w, http.StatusOK, draft)
}

// Submit turns a complete draft into one or more bookings.
// @Summary Submit the booking draft
// @Description Validate the full draft and create the resulting bookings.
// @Tags Wizard
// @Accept json
// @Produce json
// @Success 201 {object} response.Data[dto.SubmitResponse] "Created bookings"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/wizard/submit [post]
// @Security BearerAuth
func (handler *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Submit")
	defer scope.End()

	res, err := handler.service.Submit(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit wizard draft")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Wizard draft submitted successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetPreference retrieves the caller's booking entry mode preference.
// @Summary Get the wizard preference
// @Description Retrieve the caller's preferred booking entry mode.
// @Tags Wizard
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.PreferenceResponse] "Preference"
// @Failure 500 {object} response.Error
// @Router /v1/wizard/preferences [get]
// @Security BearerAuth
func (handler *Handler) GetPreference(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPreference")
	defer scope.End()

	pref, err := handler.service.Preference(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get wizard preference")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Wizard preference retrieved successfully")

	response.WithJSON(w, http.StatusOK, pref)
}

// SetPreference updates the caller's booking entry mode preference.
// @Summary Set the wizard preference
// @Description Update the caller's preferred booking entry mode.
// @Tags Wizard
// @Accept json
// @Produce json
// @Param request body dto.PreferenceRequest true "Preference"
// @Success 200 {object} response.Message "Preference saved successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/wizard/preferences [put]
// @Security BearerAuth
func (handler *Handler) SetPreference(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetPreference")
	defer scope.End()

	req := dto.PreferenceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.SetPreference(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set wizard preference")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Wizard preference saved successfully")

	response.WithMessage(w, http.StatusOK, "Preference saved successfully")
}
