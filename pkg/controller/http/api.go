package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/edu-lab/mentor/pkg/domain/model"
	"github.com/edu-lab/mentor/pkg/domain/types"
	"github.com/edu-lab/mentor/pkg/usecase"
	"github.com/edu-lab/mentor/pkg/utils/errutil"
	"github.com/edu-lab/mentor/pkg/utils/safe"
)

// statusFromError maps the typed error taxonomy to HTTP status codes
func statusFromError(err error) int {
	switch {
	case errors.Is(err, types.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"),
			http.StatusInternalServerError)
		return
	}
	safe.Write(r.Context(), w, data)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

type chatRequest struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	Level     int    `json:"level,omitempty"`
}

type chatResponse struct {
	Response string `json:"response"`
}

func chatHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), w,
				goerr.Wrap(types.ErrValidation, "invalid chat request body"),
				http.StatusBadRequest)
			return
		}

		answer, err := uc.Ask(r.Context(),
			types.UserID(req.UserID),
			types.SessionID(req.SessionID),
			req.Message,
			req.Level,
		)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusFromError(err))
			return
		}

		writeJSON(w, r, http.StatusOK, chatResponse{Response: answer})
	}
}

type createUserRequest struct {
	Name string `json:"name"`
}

type userResponse struct {
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	CurrentLevel int    `json:"current_level"`
	CreatedAt    string `json:"created_at"`
	LastActiveAt string `json:"last_active_at"`
}

func toUserResponse(u *model.UserProfile) userResponse {
	return userResponse{
		UserID:       string(u.ID),
		Name:         u.Name,
		CurrentLevel: u.CurrentLevel,
		CreatedAt:    u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		LastActiveAt: u.LastActiveAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func createUserHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), w,
				goerr.Wrap(types.ErrValidation, "invalid user request body"),
				http.StatusBadRequest)
			return
		}

		created, err := uc.CreateUser(r.Context(), req.Name)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusFromError(err))
			return
		}

		writeJSON(w, r, http.StatusOK, toUserResponse(created))
	}
}

func getUserHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")

		profile, err := uc.GetUser(r.Context(), types.UserID(userID))
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusFromError(err))
			return
		}

		writeJSON(w, r, http.StatusOK, toUserResponse(profile))
	}
}

type quizQuestionResponse struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation"`
	Difficulty  int      `json:"difficulty"`
}

func quizHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topic := chi.URLParam(r, "topic")

		difficulty := 0
		if v := r.URL.Query().Get("difficulty"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errutil.HandleHTTP(r.Context(), w,
					goerr.Wrap(types.ErrValidation, "invalid difficulty", goerr.V("difficulty", v)),
					http.StatusBadRequest)
				return
			}
			difficulty = n
		}

		count := 0
		if v := r.URL.Query().Get("count"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errutil.HandleHTTP(r.Context(), w,
					goerr.Wrap(types.ErrValidation, "invalid count", goerr.V("count", v)),
					http.StatusBadRequest)
				return
			}
			count = n
		}

		questions, err := uc.GenerateQuiz(r.Context(), topic, difficulty, count)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, statusFromError(err))
			return
		}

		out := make([]quizQuestionResponse, len(questions))
		for i, q := range questions {
			out[i] = quizQuestionResponse{
				Question:    q.Question,
				Options:     q.Options,
				Correct:     q.Correct,
				Explanation: q.Explanation,
				Difficulty:  q.Difficulty,
			}
		}

		writeJSON(w, r, http.StatusOK, map[string]any{"quiz": out})
	}
}
