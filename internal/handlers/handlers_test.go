package handlers

import (
	"bizdash-backend/internal/llm"
	"bizdash-backend/internal/models"
	"bizdash-backend/internal/projection"
	"bizdash-backend/internal/services"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeRelay emits its fragments and then reports result.
type fakeRelay struct {
	fragments []string
	result    services.ChatResult
	got       []models.UIMessage
}

func (f *fakeRelay) Relay(ctx context.Context, messages []models.UIMessage, emit func(string) error) services.ChatResult {
	f.got = messages
	for _, fragment := range f.fragments {
		if err := emit(fragment); err != nil {
			return services.ChatResult{Outcome: services.ChatAborted}
		}
	}
	return f.result
}

// sseEvents returns the data payloads of an event-stream body.
func sseEvents(t *testing.T, body string) []string {
	t.Helper()
	var events []string
	for _, block := range strings.Split(strings.TrimSpace(body), "\n\n") {
		require.True(t, strings.HasPrefix(block, "data: "), "unexpected block %q", block)
		events = append(events, strings.TrimPrefix(block, "data: "))
	}
	return events
}

func chunkTypes(t *testing.T, events []string) []string {
	t.Helper()
	var types []string
	for _, e := range events {
		if e == "[DONE]" {
			types = append(types, e)
			continue
		}
		var chunk models.StreamChunk
		require.NoError(t, json.Unmarshal([]byte(e), &chunk))
		types = append(types, chunk.Type)
	}
	return types
}

const chatBody = `{"id":"chat-1","messages":[{"id":"m1","role":"user","parts":[{"type":"text","text":"¿Cómo van las ventas?"}]}]}`

func TestHandleChat_StreamsFragments(t *testing.T) {
	relay := &fakeRelay{
		fragments: []string{"Las ventas ", "crecen."},
		result:    services.ChatResult{Outcome: services.ChatCompleted, Fragments: 2},
	}
	rec := httptest.NewRecorder()
	NewChatHandlers(relay, testLogger()).HandleChat(rec, httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(chatBody)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "v1", rec.Header().Get(models.UIMessageStreamHeader))

	events := sseEvents(t, rec.Body.String())
	assert.Equal(t, []string{"start", "text-start", "text-delta", "text-delta", "text-end", "finish", "[DONE]"}, chunkTypes(t, events))

	var delta models.StreamChunk
	require.NoError(t, json.Unmarshal([]byte(events[3]), &delta))
	assert.Equal(t, "crecen.", delta.Delta)
	assert.NotEmpty(t, delta.ID)

	require.Len(t, relay.got, 1)
	assert.Equal(t, "¿Cómo van las ventas?", relay.got[0].Text())
}

func TestHandleChat_ProviderErrorEndsStream(t *testing.T) {
	relay := &fakeRelay{
		fragments: []string{"Parcial"},
		result: services.ChatResult{
			Outcome: services.ChatFailed,
			Err:     &llm.StatusError{Provider: "openai", StatusCode: http.StatusTooManyRequests, Message: "slow down"},
		},
	}
	rec := httptest.NewRecorder()
	NewChatHandlers(relay, testLogger()).HandleChat(rec, httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(chatBody)))

	events := sseEvents(t, rec.Body.String())
	assert.Equal(t, []string{"start", "text-start", "text-delta", "error", "[DONE]"}, chunkTypes(t, events))

	var chunk models.StreamChunk
	require.NoError(t, json.Unmarshal([]byte(events[3]), &chunk))
	assert.Contains(t, chunk.ErrorText, "status 429")
}

func TestHandleChat_TimeoutMessage(t *testing.T) {
	relay := &fakeRelay{result: services.ChatResult{Outcome: services.ChatFailed, Err: services.ErrChatTimeout}}
	rec := httptest.NewRecorder()
	NewChatHandlers(relay, testLogger()).HandleChat(rec, httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(chatBody)))

	events := sseEvents(t, rec.Body.String())
	assert.Equal(t, []string{"start", "error", "[DONE]"}, chunkTypes(t, events))
	assert.Contains(t, events[1], "took too long")
}

func TestHandleChat_AbortWritesNothingMore(t *testing.T) {
	relay := &fakeRelay{result: services.ChatResult{Outcome: services.ChatAborted}}
	rec := httptest.NewRecorder()
	NewChatHandlers(relay, testLogger()).HandleChat(rec, httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(chatBody)))

	assert.Equal(t, []string{"start"}, chunkTypes(t, sseEvents(t, rec.Body.String())))
}

func TestHandleChat_EmptyTranscript(t *testing.T) {
	relay := &fakeRelay{result: services.ChatResult{Outcome: services.ChatCompleted}}
	rec := httptest.NewRecorder()
	NewChatHandlers(relay, testLogger()).HandleChat(rec, httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(`{"messages":[]}`)))

	assert.Equal(t, []string{"start", "finish", "[DONE]"}, chunkTypes(t, sseEvents(t, rec.Body.String())))
}

func TestHandleChat_BadRequests(t *testing.T) {
	bodies := map[string]string{
		"not json":     `{"messages":`,
		"unknown role": `{"messages":[{"role":"tool","parts":[]}]}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			relay := &fakeRelay{}
			rec := httptest.NewRecorder()
			NewChatHandlers(relay, testLogger()).HandleChat(rec, httptest.NewRequest(http.MethodPost, "/v1/chat", strings.NewReader(body)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, relay.got)
		})
	}
}

type fakeInsights struct {
	result  services.InsightResult
	summary projection.Summary
}

func (f *fakeInsights) Generate(ctx context.Context, summary projection.Summary) services.InsightResult {
	f.summary = summary
	return f.result
}

func newProjectionHandlers(insights InsightService) *ProjectionHandlers {
	svc := services.NewProjectionService(models.FinancialBase{BaseRevenue: 100000, BaseCost: 70000})
	return NewProjectionHandlers(svc, insights, testLogger())
}

func TestHandleProject(t *testing.T) {
	rec := httptest.NewRecorder()
	body := `{"revenueGrowthPct":10,"costIncreasePct":5,"inflationRatePct":3}`
	newProjectionHandlers(&fakeInsights{}).HandleProject(rec, httptest.NewRequest(http.MethodPost, "/v1/projections", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.ProjectionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Periods, 12)
	assert.Equal(t, "Month 12", resp.Periods[11].Month)
	assert.Equal(t, int64(109167), resp.Periods[11].Revenue)
	assert.Equal(t, int64(73208), resp.Periods[11].Cost)
	assert.Equal(t, int64(32956), resp.ProjectedProfit)
	require.NotNil(t, resp.ProfitChangePct)
	assert.InDelta(t, 9.8533, *resp.ProfitChangePct, 1e-3)
	assert.Contains(t, resp.Summary, "expected to grow by 9.9%")
}

func TestHandleProject_ZeroProfitIsNull(t *testing.T) {
	rec := httptest.NewRecorder()
	body := `{"revenueGrowthPct":0,"costIncreasePct":0,"inflationRatePct":0,"baseRevenue":5000,"baseCost":5000}`
	newProjectionHandlers(&fakeInsights{}).HandleProject(rec, httptest.NewRequest(http.MethodPost, "/v1/projections", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"profitChangePct":null`)
	assert.Contains(t, rec.Body.String(), `"profitChangeDefined":false`)
}

func TestHandleProject_InvalidInput(t *testing.T) {
	bodies := []string{
		`{"revenueGrowthPct":51}`,
		`{"inflationRatePct":-1}`,
		`{"baseRevenue":0}`,
		`{"revenueGrowth":10}`,
		`nope`,
	}
	for _, body := range bodies {
		rec := httptest.NewRecorder()
		newProjectionHandlers(&fakeInsights{}).HandleProject(rec, httptest.NewRequest(http.MethodPost, "/v1/projections", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestHandleInsight_FailureIsStill200(t *testing.T) {
	insights := &fakeInsights{result: services.InsightResult{
		State:    services.InsightFailed,
		Text:     services.InsightFallbackMessage,
		Attempts: 3,
	}}
	rec := httptest.NewRecorder()
	body := `{"revenueGrowthPct":10,"costIncreasePct":5,"profitChangePct":9.85}`
	newProjectionHandlers(insights).HandleInsight(rec, httptest.NewRequest(http.MethodPost, "/v1/insights", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.InsightResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "failed", resp.State)
	assert.Equal(t, services.InsightFallbackMessage, resp.Text)
	assert.Equal(t, 3, resp.Attempts)

	assert.True(t, insights.summary.ProfitChange.Defined)
	assert.Equal(t, 9.85, insights.summary.ProfitChange.Pct)
}

type staticDashboard struct{}

func (staticDashboard) Dashboard() models.DashboardResponse {
	return models.DashboardResponse{
		HeaderInfo: models.HeaderInfo{Title: "Business AI"},
		Metrics:    []models.Metric{{Title: "Ingresos", Icon: models.IconDollarSign, Trend: models.TrendUp}},
	}
}

func (staticDashboard) Companies() []models.CompanySummary {
	return []models.CompanySummary{{ID: "EMP-001"}}
}

func TestDashboardHandlers(t *testing.T) {
	h := NewDashboardHandlers(staticDashboard{})

	rec := httptest.NewRecorder()
	h.HandleGetDashboard(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"icon":"DollarSign"`)
	assert.Contains(t, rec.Body.String(), `"title":"Business AI"`)

	rec = httptest.NewRecorder()
	h.HandleListCompanies(rec, httptest.NewRequest(http.MethodGet, "/v1/companies", nil))
	assert.JSONEq(t, `[{"empresa_id":"EMP-001"}]`, rec.Body.String())
}
