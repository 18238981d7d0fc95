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

	"github.com/m-mizutani/gt"

	httpctrl "github.com/edu-lab/mentor/pkg/controller/http"
	"github.com/edu-lab/mentor/pkg/repository/memory"
	"github.com/edu-lab/mentor/pkg/service/llm"
	"github.com/edu-lab/mentor/pkg/usecase"
)

func newTestServer(t *testing.T, mock *llm.Mock, opts ...httpctrl.Options) *httpctrl.Server {
	t.Helper()
	uc := usecase.New(memory.New(), mock, mock)
	srv, err := httpctrl.New(uc, opts...)
	gt.NoError(t, err).Required()
	return srv
}

func postJSON(srv http.Handler, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, &llm.Mock{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.Bool(t, strings.Contains(rec.Body.String(), "ok")).True()
}

func TestChatEndpoint(t *testing.T) {
	mock := &llm.Mock{
		GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
			return "use the * operator", nil
		},
	}
	srv := newTestServer(t, mock)

	rec := postJSON(srv, "/api/chat", map[string]any{
		"user_id":    "alice",
		"session_id": "s1",
		"message":    "how do I dereference a pointer?",
	})

	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var resp struct {
		Response string `json:"response"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
	gt.Value(t, resp.Response).Equal("use the * operator")
}

func TestChatEndpointRejectsInvalidBody(t *testing.T) {
	srv := newTestServer(t, &llm.Mock{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestChatEndpointRejectsMissingFields(t *testing.T) {
	srv := newTestServer(t, &llm.Mock{})

	rec := postJSON(srv, "/api/chat", map[string]any{
		"message": "question without a user",
	})

	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestChatEndpointGeneratorFailureIs500(t *testing.T) {
	mock := &llm.Mock{
		GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("model unavailable")
		},
	}
	srv := newTestServer(t, mock)

	rec := postJSON(srv, "/api/chat", map[string]any{
		"user_id":    "alice",
		"session_id": "s1",
		"message":    "question",
	})

	gt.Value(t, rec.Code).Equal(http.StatusInternalServerError)
}

func TestUserLifecycle(t *testing.T) {
	srv := newTestServer(t, &llm.Mock{})

	rec := postJSON(srv, "/api/users", map[string]any{"name": "Alice"})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var created struct {
		UserID       string `json:"user_id"`
		Name         string `json:"name"`
		CurrentLevel int    `json:"current_level"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created)).Required()
	gt.String(t, created.UserID).NotEqual("")
	gt.Value(t, created.Name).Equal("Alice")
	gt.Value(t, created.CurrentLevel).Equal(1)

	req := httptest.NewRequest(http.MethodGet, "/api/users/"+created.UserID, nil)
	getRec := httptest.NewRecorder()
	srv.ServeHTTP(getRec, req)

	gt.Value(t, getRec.Code).Equal(http.StatusOK)
	gt.Bool(t, strings.Contains(getRec.Body.String(), "Alice")).True()
}

func TestGetUserNotFound(t *testing.T) {
	srv := newTestServer(t, &llm.Mock{})

	req := httptest.NewRequest(http.MethodGet, "/api/users/no-such-user", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	gt.Value(t, rec.Code).Equal(http.StatusNotFound)
}

func TestCreateUserRejectsEmptyName(t *testing.T) {
	srv := newTestServer(t, &llm.Mock{})

	rec := postJSON(srv, "/api/users", map[string]any{})
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestQuizEndpoint(t *testing.T) {
	mock := &llm.Mock{
		GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
			return `Q: Which header declares printf?
A) stdlib.h
B) string.h
C) stdio.h
D) math.h
Correct: C
Explanation: printf is declared in stdio.h.
---`, nil
		},
	}
	srv := newTestServer(t, mock)

	rec := postJSON(srv, "/api/quiz/pointers?difficulty=3&count=1", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var resp struct {
		Quiz []struct {
			Question string   `json:"question"`
			Options  []string `json:"options"`
			Correct  int      `json:"correct"`
		} `json:"quiz"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
	gt.Array(t, resp.Quiz).Length(1)
	gt.Value(t, resp.Quiz[0].Correct).Equal(2)
	gt.Array(t, resp.Quiz[0].Options).Length(4)
}

func TestQuizEndpointRejectsBadDifficulty(t *testing.T) {
	srv := newTestServer(t, &llm.Mock{})

	rec := postJSON(srv, "/api/quiz/pointers?difficulty=abc", nil)
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t, &llm.Mock{},
		httpctrl.WithCORSOrigins([]string{"https://tutor.example.com"}))

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "https://tutor.example.com")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	gt.Value(t, rec.Code).Equal(http.StatusNoContent)
	gt.Value(t, rec.Header().Get("Access-Control-Allow-Origin")).Equal("https://tutor.example.com")
}
