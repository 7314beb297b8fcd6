package rank_http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"search-orchestrator/internal/usecase"
)

// SearchRequest is the JSON body of POST /v1/search. AutoEscalate
// defaults to true when omitted.
type SearchRequest struct {
	Query            string `json:"query"`
	CostMode         string `json:"cost_mode,omitempty"`
	MaxProviderCalls int    `json:"max_provider_calls,omitempty"`
	AutoEscalate     *bool  `json:"auto_escalate,omitempty"`
}

type Handler struct {
	searchUsecase usecase.EscalatingSearchUsecase
}

func NewHandler(searchUsecase usecase.EscalatingSearchUsecase) *Handler {
	return &Handler{searchUsecase: searchUsecase}
}

// Search runs the ranking pipeline for a query.
// (POST /v1/search)
func (h *Handler) Search(ctx echo.Context) error {
	var req SearchRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if req.Query == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "missing query"})
	}

	report, err := h.searchUsecase.Execute(ctx.Request().Context(), usecase.EscalatingSearchInput{
		Query:             req.Query,
		CostMode:          req.CostMode,
		MaxProviderCalls:  req.MaxProviderCalls,
		DisableEscalation: req.AutoEscalate != nil && !*req.AutoEscalate,
	})
	if err != nil {
		return ctx.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(http.StatusOK, report)
}
