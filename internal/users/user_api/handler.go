package user_api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ms-users/internal/database"
	"ms-users/internal/logger"
	"ms-users/internal/models"
	"ms-users/internal/users/db"
	"ms-users/internal/utils"
)

// MaxBodyBytes caps request bodies; a user row is far below this.
const MaxBodyBytes = 1 << 20

type Handler struct {
	Logger *logger.Logger
}

func NewHandler(logger *logger.Logger) *Handler {
	return &Handler{Logger: logger}
}

// RegisterRoutes mounts the user routes. Every route except the welcome one
// runs inside sessions, which must open and release a database session.
func (h *Handler) RegisterRoutes(r chi.Router, sessions func(http.Handler) http.Handler) {
	r.Get("/", h.Root)

	r.Group(func(r chi.Router) {
		r.Use(sessions)

		r.Post("/users", h.CreateUser)
		r.Post("/users/", h.CreateUser)
		r.Get("/users", h.ListUsers)
		r.Get("/users/", h.ListUsers)
		r.Get("/user/{id}", h.GetUser)
		r.Delete("/user/{id}", h.DeleteUser)
	})
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Welcome"})
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.UserCreate
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if errs := utils.DecodeAndValidate(body, &req); len(errs) > 0 {
		status := http.StatusUnprocessableEntity
		if errs[0].Type == utils.ErrTypeBodyTooLarge {
			status = http.StatusRequestEntityTooLarge
		}
		utils.WriteJSON(w, status, utils.NewValidationErrorResponse(errs...))
		return
	}

	users, ok := h.session(w, r)
	if !ok {
		return
	}

	user, err := users.CreateUser(r.Context(), models.ToUserRow(req))
	if err != nil {
		h.writeError(w, "create", err)
		return
	}

	h.Logger.Info("USERS", fmt.Sprintf("Created user %d", user.ID))
	utils.WriteJSON(w, http.StatusOK, models.ToUserResponse(*user))
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, ok := h.session(w, r)
	if !ok {
		return
	}

	rows, err := users.ListUsers(r.Context())
	if err != nil {
		h.writeError(w, "list", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.ToUserResponses(rows))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	users, ok := h.session(w, r)
	if !ok {
		return
	}

	user, err := users.GetUser(r.Context(), id)
	if err != nil {
		h.writeError(w, "get", err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, models.ToUserResponse(*user))
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	users, ok := h.session(w, r)
	if !ok {
		return
	}

	msg, err := users.DeleteUser(r.Context(), id)
	if err != nil {
		h.writeError(w, "delete", err)
		return
	}

	h.Logger.Info("USERS", msg)
	utils.WriteJSON(w, http.StatusOK, msg)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*db.DB, bool) {
	session, ok := database.SessionFromContext(r.Context())
	if !ok {
		h.Logger.Error("DATABASE", "No database session bound to request")
		utils.WriteJSON(w, http.StatusInternalServerError, utils.NewErrorResponse("Internal Server Error"))
		return nil, false
	}
	return &db.DB{Bun: session}, true
}

func (h *Handler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, db.ErrUserNotFound):
		utils.WriteJSON(w, http.StatusNotFound, utils.NewErrorResponse("User not found"))
	case errors.Is(err, db.ErrUserExists):
		utils.WriteJSON(w, http.StatusConflict, utils.NewErrorResponse("User with this id already exists"))
	default:
		h.Logger.Error("USERS", fmt.Sprintf("Failed to %s user: %v", op, err))
		utils.WriteJSON(w, http.StatusInternalServerError, utils.NewErrorResponse("Internal Server Error"))
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusUnprocessableEntity, utils.NewValidationErrorResponse(utils.ValidationError{
			Loc:  []string{"path", "id"},
			Msg:  "value is not a valid integer",
			Type: "type_error.integer",
		}))
		return 0, false
	}
	return id, true
}
