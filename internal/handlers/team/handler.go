package team

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"sparkle/infras/otel"
	"sparkle/internal/domains/team/model"
	"sparkle/internal/domains/team/model/dto"
	"sparkle/internal/domains/team/service"
	"sparkle/shared/constant"
	gDto "sparkle/shared/dto"
	"sparkle/shared/validator"
	"sparkle/transport/http/response"
)

type Handler struct {
	service service.Team
	otel    otel.Otel
}

func New(service service.Team, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/teams", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTeam)
		routerGroup.Get("/", handler.GetTeams)
		routerGroup.Get("/{id}", handler.GetTeamByID)
		routerGroup.Put("/{id}", handler.UpdateTeam)
		routerGroup.Delete("/{id}", handler.DeleteTeam)
		routerGroup.Get("/{id}/members", handler.GetMembers)
		routerGroup.Post("/{id}/members", handler.AddMember)
		routerGroup.Delete("/{id}/members/{staffId}", handler.RemoveMember)
	})
}

// CreateTeam handles the creation of a new team.
// @Summary Create a new team
// @Description Create a new team with a name and description.
// @Tags Team
// @Accept json
// @Produce json
// @Param request body dto.CreateTeamRequest true "Team details"
// @Success 201 {object} response.Data[dto.TeamResponse] "Created team"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/teams [post]
// @Security BearerAuth
func (handler *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTeam")
	defer scope.End()

	req := dto.CreateTeamRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create team")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Team created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetTeams retrieves all teams based on query parameters.
// @Summary Get all teams
// @Description Retrieve all teams with optional filtering and pagination.
// @Tags Team
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Success 200 {object} response.Data[dto.GetTeamsResponse] "List of teams"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/teams [get]
// @Security BearerAuth
func (handler *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTeams")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if name := r.URL.Query().Get(model.FieldName); name != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	teams, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get teams")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Teams retrieved successfully")

	response.WithJSON(w, http.StatusOK, teams)
}

// GetTeamByID retrieves a team by ID.
// @Summary Get a team by ID
// @Description Retrieve a team by its unique identifier.
// @Tags Team
// @Accept json
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} response.Data[dto.TeamResponse] "Team details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/teams/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetTeamByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTeamByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	team, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get team by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Team retrieved successfully")

	response.WithJSON(w, http.StatusOK, team)
}

// UpdateTeam updates an existing team by ID.
// @Summary Update a team by ID
// @Description Update the details of an existing team.
// @Tags Team
// @Accept json
// @Produce json
// @Param id path string true "Team ID"
// @Param request body dto.UpdateTeamRequest true "Team details"
// @Success 200 {object} response.Message "Team updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/teams/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTeam")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateTeamRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update team")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Team updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Team updated successfully")
}

// DeleteTeam deletes a team by ID.
// @Summary Delete a team by ID
// @Description Soft delete a team using its unique identifier.
// @Tags Team
// @Accept json
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} response.Message "Team deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/teams/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTeam")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete team")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Team deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Team deleted successfully")
}

// GetMembers retrieves the members of a team.
// @Summary Get team members
// @Description Retrieve the members of a team. Pass include_left=true to include past members.
// @Tags Team
// @Accept json
// @Produce json
// @Param id path string true "Team ID"
// @Param include_left query boolean false "Include members who have left"
// @Success 200 {object} response.Data[dto.GetMembersResponse] "Team members"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/teams/{id}/members [get]
// @Security BearerAuth
func (handler *Handler) GetMembers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMembers")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	includeLeft := r.URL.Query().Get("include_left") == "true"

	members, err := handler.service.Members(ctx, id, includeLeft)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get team members")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Team members retrieved successfully")

	response.WithJSON(w, http.StatusOK, members)
}

// AddMember adds a staff member to a team.
// @Summary Add a team member
// @Description Start a new membership period for a staff member in a team.
// @Tags Team
// @Accept json
// @Produce json
// @Param id path string true "Team ID"
// @Param request body dto.AddMemberRequest true "Member details"
// @Success 201 {object} response.Message "Member added successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/teams/{id}/members [post]
// @Security BearerAuth
func (handler *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddMember")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.AddMemberRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.AddMember(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add team member")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Team member added successfully by user " + user)

	response.WithMessage(w, http.StatusCreated, "Member added successfully")
}

// RemoveMember closes a staff member's membership period in a team.
// @Summary Remove a team member
// @Description End the active membership period of a staff member. Past bookings stay visible to them.
// @Tags Team
// @Accept json
// @Produce json
// @Param id path string true "Team ID"
// @Param staffId path string true "Staff ID"
// @Success 200 {object} response.Message "Member removed successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/teams/{id}/members/{staffId} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveMember")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	staffID := chi.URLParam(r, constant.RequestParamStaffID)

	if err := handler.service.RemoveMember(ctx, id, staffID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove team member")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Team member removed successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Member removed successfully")
}
