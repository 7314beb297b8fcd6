package rank_http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"search-orchestrator/internal/adapter/rank_http"
	"search-orchestrator/internal/domain"
	"search-orchestrator/internal/usecase"
)

type stubSearchUsecase struct {
	input  usecase.EscalatingSearchInput
	report *domain.SearchReport
	err    error
}

func (s *stubSearchUsecase) Execute(_ context.Context, input usecase.EscalatingSearchInput) (*domain.SearchReport, error) {
	s.input = input
	return s.report, s.err
}

func doSearch(t *testing.T, stub *stubSearchUsecase, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/search", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	require.NoError(t, rank_http.NewHandler(stub).Search(ctx))
	return rec
}

func TestSearch_ReturnsReport(t *testing.T) {
	stub := &stubSearchUsecase{report: &domain.SearchReport{
		Results: []domain.NormalizedResult{
			{Title: "Median income", URL: "https://data.census.gov/table", Domain: "data.census.gov", IsPriority: true, Score: 1250},
		},
		Metadata:     domain.PipelineMetadata{CostMode: "economy", TotalResultCount: 1, PriorityResultCount: 1},
		QualityScore: 21,
	}}

	rec := doSearch(t, stub, `{"query": "median income tennessee", "cost_mode": "economy", "max_provider_calls": 4}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "median income tennessee", stub.input.Query)
	assert.Equal(t, "economy", stub.input.CostMode)
	assert.Equal(t, 4, stub.input.MaxProviderCalls)

	var got domain.SearchReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Results, 1)
	assert.Equal(t, "Median income", got.Results[0].Title)
	assert.Equal(t, 21, got.QualityScore)
}

func TestSearch_AutoEscalateFlag(t *testing.T) {
	stub := &stubSearchUsecase{report: &domain.SearchReport{}}
	doSearch(t, stub, `{"query": "income"}`)
	assert.False(t, stub.input.DisableEscalation, "escalation is on by default")

	doSearch(t, stub, `{"query": "income", "auto_escalate": false}`)
	assert.True(t, stub.input.DisableEscalation)

	doSearch(t, stub, `{"query": "income", "auto_escalate": true}`)
	assert.False(t, stub.input.DisableEscalation)
}

func TestSearch_RejectsMissingQuery(t *testing.T) {
	rec := doSearch(t, &stubSearchUsecase{}, `{"cost_mode": "economy"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearch_RejectsMalformedBody(t *testing.T) {
	rec := doSearch(t, &stubSearchUsecase{}, `{"query": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearch_UsecaseErrorIsBadGateway(t *testing.T) {
	stub := &stubSearchUsecase{err: errors.New("provider unreachable")}

	rec := doSearch(t, stub, `{"query": "income"}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "provider unreachable")
}
