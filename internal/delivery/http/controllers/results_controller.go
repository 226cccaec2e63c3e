package controllers

import (
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"conferencehall/internal/delivery/http/helpers"
	"conferencehall/internal/delivery/http/middleware"
	"conferencehall/internal/domain"
)

// PublishRequest is the request body for POST /teams/{team}/events/{event}/results/publish.
type PublishRequest struct {
	ProposalID string `json:"proposal_id"`
	SendEmail  bool   `json:"send_email"`
}

// Validate implements Validator.
func (p PublishRequest) Validate() []string {
	return helpers.ValidationMessages(validation.ValidateStruct(&p,
		validation.Field(&p.ProposalID, validation.Required.Error("proposal_id is required")),
	))
}

// PublishAllRequest is the request body for POST /teams/{team}/events/{event}/results/publish-all.
type PublishAllRequest struct {
	Status    domain.DeliberationStatus `json:"status" enums:"ACCEPTED,REJECTED"`
	SendEmail bool                      `json:"send_email"`
}

// Validate implements Validator. Only final deliberation outcomes can be published.
func (p PublishAllRequest) Validate() []string {
	return helpers.ValidationMessages(validation.ValidateStruct(&p,
		validation.Field(&p.Status,
			validation.Required.Error("status is required"),
			validation.In(domain.DeliberationAccepted, domain.DeliberationRejected).Error("status must be ACCEPTED or REJECTED"),
		),
	))
}

// PublishResponse is the response body of a single publication.
type PublishResponse struct {
	ProposalID string `json:"proposal_id"`
	Published  bool   `json:"published"`
	SendEmail  bool   `json:"send_email"`
}

// PublishAllResponse is the response body of a bulk publication.
type PublishAllResponse struct {
	Status    domain.DeliberationStatus `json:"status"`
	Published bool                      `json:"published"`
	SendEmail bool                      `json:"send_email"`
}

// ResetPublicationResponse is the response body of DELETE .../results/publication.
type ResetPublicationResponse struct {
	Reset int `json:"reset"`
}

// StatisticsSuccessResponse is the success envelope for GET .../results/statistics (200).
type StatisticsSuccessResponse struct {
	Data  *domain.ResultsStatistics `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// PublishSuccessResponse is the success envelope for POST .../results/publish (200).
type PublishSuccessResponse struct {
	Data  PublishResponse   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// PublishAllSuccessResponse is the success envelope for POST .../results/publish-all (200).
type PublishAllSuccessResponse struct {
	Data  PublishAllResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ResetPublicationSuccessResponse is the success envelope for DELETE .../results/publication (200).
type ResetPublicationSuccessResponse struct {
	Data  ResetPublicationResponse `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

type ResultsController struct {
	Logger  *slog.Logger
	Service domain.ResultsService
}

func NewResultsController(logger *slog.Logger, svc domain.ResultsService) *ResultsController {
	return &ResultsController{
		Logger:  logger,
		Service: svc,
	}
}

// results binds the caller and the team and event slugs of the request.
func (c *ResultsController) results(w http.ResponseWriter, r *http.Request) (domain.EventResults, bool) {
	teamSlug, eventSlug := r.PathValue("team"), r.PathValue("event")
	if teamSlug == "" || eventSlug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing team or event")
		return nil, false
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return nil, false
	}
	return c.Service.For(userID, teamSlug, eventSlug), true
}

// Statistics godoc
// @Summary Get deliberation and publication statistics
// @Description Counts the non-draft proposals of the event by deliberation status, and the accepted and rejected ones by publication status. Owners and members only; not available for meetups.
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param team path string true "Team slug"
// @Param event path string true "Event slug"
// @Success 200 {object} controllers.StatisticsSuccessResponse "data contains the statistics"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /teams/{team}/events/{event}/results/statistics [get]
func (c *ResultsController) Statistics(w http.ResponseWriter, r *http.Request) {
	results, ok := c.results(w, r)
	if !ok {
		return
	}
	stats, err := results.Statistics(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}

// Publish godoc
// @Summary Publish the result of one proposal
// @Description Publishes one accepted or rejected proposal. Accepted proposals become pending confirmation. When send_email is true the speakers are notified once the publication is stored.
// @Tags results
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param team path string true "Team slug"
// @Param event path string true "Event slug"
// @Param body body PublishRequest true "Proposal to publish"
// @Success 200 {object} controllers.PublishSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown, pending or already published proposal)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /teams/{team}/events/{event}/results/publish [post]
func (c *ResultsController) Publish(w http.ResponseWriter, r *http.Request) {
	var req PublishRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	results, ok := c.results(w, r)
	if !ok {
		return
	}
	if err := results.Publish(r.Context(), req.ProposalID, req.SendEmail); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PublishResponse{
		ProposalID: req.ProposalID,
		Published:  true,
		SendEmail:  req.SendEmail,
	})
}

// PublishAll godoc
// @Summary Publish every proposal with a deliberation outcome
// @Description Publishes all unpublished non-draft proposals with the given status. Fails with forbidden when none is eligible or for meetups.
// @Tags results
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param team path string true "Team slug"
// @Param event path string true "Event slug"
// @Param body body PublishAllRequest true "Outcome to publish"
// @Success 200 {object} controllers.PublishAllSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /teams/{team}/events/{event}/results/publish-all [post]
func (c *ResultsController) PublishAll(w http.ResponseWriter, r *http.Request) {
	var req PublishAllRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	results, ok := c.results(w, r)
	if !ok {
		return
	}
	if err := results.PublishAll(r.Context(), req.Status, req.SendEmail); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PublishAllResponse{
		Status:    req.Status,
		Published: true,
		SendEmail: req.SendEmail,
	})
}

// ResetPublication godoc
// @Summary Unpublish every result of the event
// @Description Sets all proposals back to not published and clears their confirmation. Owners only.
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param team path string true "Team slug"
// @Param event path string true "Event slug"
// @Success 200 {object} controllers.ResetPublicationSuccessResponse "data.reset is the number of proposals unpublished"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /teams/{team}/events/{event}/results/publication [delete]
func (c *ResultsController) ResetPublication(w http.ResponseWriter, r *http.Request) {
	results, ok := c.results(w, r)
	if !ok {
		return
	}
	n, err := results.ResetPublication(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ResetPublicationResponse{Reset: n})
}
