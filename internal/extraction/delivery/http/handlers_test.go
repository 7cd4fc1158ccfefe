package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"voicetask/internal/extraction"
	extractionHTTP "voicetask/internal/extraction/delivery/http"
	"voicetask/internal/middleware"
	"voicetask/internal/model"
	"voicetask/pkg/priority"
)

// ── Mocks ──────────────────────────────────────────────────────────────────

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Info(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Warn(ctx context.Context, args ...interface{})                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...interface{})   {}
func (m *mockLogger) Error(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...interface{})                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...interface{}) {}
func (m *mockLogger) Panic(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...interface{})  {}

type mockUseCase struct {
	lastScope     model.Scope
	lastExtract   extraction.ExtractInput
	extractOutput extraction.ExtractOutput
	extractErr    error
	confirmOutput extraction.ConfirmOutput
	confirmErr    error
}

func (m *mockUseCase) Extract(ctx context.Context, sc model.Scope, input extraction.ExtractInput) (extraction.ExtractOutput, error) {
	m.lastScope = sc
	m.lastExtract = input
	return m.extractOutput, m.extractErr
}

func (m *mockUseCase) Confirm(ctx context.Context, sc model.Scope, input extraction.ConfirmInput) (extraction.ConfirmOutput, error) {
	m.lastScope = sc
	return m.confirmOutput, m.confirmErr
}

// ── Test Helpers ───────────────────────────────────────────────────────────

func newTestEngine(t *testing.T, muc *mockUseCase) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	l := &mockLogger{}
	engine := gin.New()
	h := extractionHTTP.New(l, muc)
	mw := middleware.New(l, 600)
	extractionHTTP.RegisterRoutes(engine.Group("/api/v1"), h, mw)
	return engine
}

func postJSON(engine *gin.Engine, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

type respEnvelope struct {
	ErrorCode int             `json:"error_code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) respEnvelope {
	t.Helper()
	var env respEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response envelope: %v", err)
	}
	return env
}

// ── Tests ──────────────────────────────────────────────────────────────────

func TestExtract_OK(t *testing.T) {
	due := time.Date(2026, 2, 20, 18, 30, 0, 0, time.UTC)
	draft := model.NewTaskDraft("Тренировка")
	draft.DueAt = &due
	draft.Priority = priority.Urgent

	muc := &mockUseCase{
		extractOutput: extraction.ExtractOutput{
			Drafts:    []model.TaskDraft{draft},
			TaskCount: 1,
		},
	}
	engine := newTestEngine(t, muc)

	w := postJSON(engine, "/api/v1/extraction/extract",
		`{"transcript":"завтра в 18:30 срочно тренировка"}`,
		map[string]string{"X-User-ID": "user-1"})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.ErrorCode != 0 {
		t.Errorf("expected error_code 0, got %d", env.ErrorCode)
	}

	var data struct {
		Drafts []struct {
			ID       string `json:"id"`
			Title    string `json:"title"`
			Priority string `json:"priority"`
		} `json:"drafts"`
		TaskCount int `json:"task_count"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.TaskCount != 1 || len(data.Drafts) != 1 {
		t.Fatalf("expected 1 draft, got %+v", data)
	}
	if data.Drafts[0].Title != "Тренировка" {
		t.Errorf("unexpected title %q", data.Drafts[0].Title)
	}
	if data.Drafts[0].Priority != "urgent" {
		t.Errorf("unexpected priority %q", data.Drafts[0].Priority)
	}
	if _, err := uuid.Parse(data.Drafts[0].ID); err != nil {
		t.Errorf("draft id is not a uuid: %q", data.Drafts[0].ID)
	}
	if muc.lastScope.UserID != "user-1" {
		t.Errorf("expected scope user-1, got %q", muc.lastScope.UserID)
	}
	if muc.lastExtract.Transcript != "завтра в 18:30 срочно тренировка" {
		t.Errorf("unexpected transcript %q", muc.lastExtract.Transcript)
	}
}

func TestExtract_AnonymousScope(t *testing.T) {
	muc := &mockUseCase{}
	engine := newTestEngine(t, muc)

	w := postJSON(engine, "/api/v1/extraction/extract", `{"transcript":"купить хлеб"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if muc.lastScope.UserID != "anonymous" {
		t.Errorf("expected anonymous scope, got %q", muc.lastScope.UserID)
	}
}

func TestExtract_BadJSON(t *testing.T) {
	engine := newTestEngine(t, &mockUseCase{})

	w := postJSON(engine, "/api/v1/extraction/extract", `{bad json`, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExtract_MissingTranscript(t *testing.T) {
	engine := newTestEngine(t, &mockUseCase{})

	w := postJSON(engine, "/api/v1/extraction/extract", `{}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestExtract_DomainErrorPassesThrough(t *testing.T) {
	muc := &mockUseCase{extractErr: extraction.ErrEmptyTranscript}
	engine := newTestEngine(t, muc)

	w := postJSON(engine, "/api/v1/extraction/extract", `{"transcript":"   "}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env.Message != extraction.ErrEmptyTranscript.Error() {
		t.Errorf("expected domain error message, got %q", env.Message)
	}
}

func TestExtract_UnknownErrorIsMasked(t *testing.T) {
	muc := &mockUseCase{extractErr: errors.New("calendar credentials leaked")}
	engine := newTestEngine(t, muc)

	w := postJSON(engine, "/api/v1/extraction/extract", `{"transcript":"купить хлеб"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	env := decodeEnvelope(t, w)
	if strings.Contains(env.Message, "leaked") {
		t.Errorf("internal error text leaked to client: %q", env.Message)
	}
	if env.Message != "internal error" {
		t.Errorf("expected masked message, got %q", env.Message)
	}
}

func TestConfirm_OK(t *testing.T) {
	id := uuid.New()
	reminderAt := time.Date(2026, 2, 20, 18, 20, 0, 0, time.UTC)
	muc := &mockUseCase{
		confirmOutput: extraction.ConfirmOutput{
			Tasks: []extraction.ConfirmedTask{
				{
					TaskID:       id,
					Title:        "Тренировка",
					CalendarLink: "https://calendar.example/evt1",
					Coordinate:   &model.Coordinate{Lat: 55.75, Lon: 37.61},
					ReminderAt:   &reminderAt,
				},
			},
			TaskCount: 1,
		},
	}
	engine := newTestEngine(t, muc)

	body := `{"drafts":[{"id":"` + id.String() + `","title":"Тренировка","due_at":"2026-02-20T18:30:00Z","priority":"urgent","reminder_enabled":true}]}`
	w := postJSON(engine, "/api/v1/extraction/confirm", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	env := decodeEnvelope(t, w)
	var data struct {
		Tasks []struct {
			TaskID       string `json:"task_id"`
			CalendarLink string `json:"calendar_link"`
			Coordinate   *struct {
				Lat float64 `json:"lat"`
				Lon float64 `json:"lon"`
			} `json:"coordinate"`
		} `json:"tasks"`
		TaskCount int `json:"task_count"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.TaskCount != 1 || len(data.Tasks) != 1 {
		t.Fatalf("expected 1 task, got %+v", data)
	}
	if data.Tasks[0].TaskID != id.String() {
		t.Errorf("unexpected task id %q", data.Tasks[0].TaskID)
	}
	if data.Tasks[0].Coordinate == nil || data.Tasks[0].Coordinate.Lat != 55.75 {
		t.Errorf("expected coordinate in response, got %+v", data.Tasks[0].Coordinate)
	}
}

func TestConfirm_RejectsBadDraft(t *testing.T) {
	engine := newTestEngine(t, &mockUseCase{})

	cases := map[string]string{
		"no drafts":    `{"drafts":[]}`,
		"bad uuid":     `{"drafts":[{"id":"not-a-uuid","title":"x"}]}`,
		"no title":     `{"drafts":[{"id":"` + uuid.NewString() + `"}]}`,
		"bad priority": `{"drafts":[{"id":"` + uuid.NewString() + `","title":"x","priority":"p0"}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := postJSON(engine, "/api/v1/extraction/confirm", body, nil)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}
