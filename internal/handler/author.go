package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/iliyamo/author-service/internal/config"
	"github.com/iliyamo/author-service/internal/middleware"
	"github.com/iliyamo/author-service/internal/model"
	"github.com/iliyamo/author-service/internal/queue"
	"github.com/iliyamo/author-service/internal/repository"
	"github.com/iliyamo/author-service/internal/utils"
	"github.com/iliyamo/author-service/internal/validate"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
	dbTimeout         = 5 * time.Second
	publishTimeout    = 3 * time.Second
)

// EventPublisher is the outbound side of author registration.
type EventPublisher interface {
	PublishAuthorRegistered(ctx context.Context, ev queue.AuthorRegisteredEvent) error
}

// AuthorHandler bundles dependencies for author and auth endpoints.
// Events may be nil, in which case nothing is published.
type AuthorHandler struct {
	Cfg     config.Config
	Authors *repository.AuthorRepo
	Events  EventPublisher
	Log     zerolog.Logger
}

func NewAuthorHandler(cfg config.Config, authors *repository.AuthorRepo, events EventPublisher, log zerolog.Logger) *AuthorHandler {
	return &AuthorHandler{Cfg: cfg, Authors: authors, Events: events, Log: log}
}

// ----- DTOs -----

type registerReq struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	AvatarURL string `json:"avatar_url"`
}

// updateReq fields are optional; nil leaves the column alone.
type updateReq struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	AvatarURL *string `json:"avatar_url"`
}

// authorResp is the public view of an author. It never carries the hash or
// the activation token.
type authorResp struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	Activated bool   `json:"activated"`
}

func toAuthorResp(a *model.Author) authorResp {
	return authorResp{
		ID:        a.ID().String(),
		Username:  a.Username(),
		Email:     a.Email(),
		AvatarURL: a.AvatarURL(),
		Activated: a.IsActivated(),
	}
}

func checkPassword(pw string) error {
	err := validation.Validate(pw, validation.Required, validation.RuneLength(minPasswordLength, maxPasswordLength))
	if err == nil {
		return nil
	}
	if strings.TrimSpace(pw) == "" {
		return fmt.Errorf("%w: password %v", validate.ErrInvalidFormat, err)
	}
	return fmt.Errorf("%w: password %v", validate.ErrOutOfRange, err)
}

// Register: create an inactive author and announce it on the broker.
func (h *AuthorHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := checkPassword(req.Password); err != nil {
		return h.fail(c, err)
	}

	token, err := utils.NewActivationToken()
	if err != nil {
		return h.fail(c, err)
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return h.fail(c, err)
	}
	a, err := model.NewAuthor(validate.IDValue(uuid.New()), token, req.AvatarURL, req.Email, hash, req.Username)
	if err != nil {
		return h.fail(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	if err := h.Authors.Insert(ctx, a); err != nil {
		return h.fail(c, err)
	}

	h.publishRegistered(a)
	return c.JSON(http.StatusCreated, toAuthorResp(a))
}

// publishRegistered never fails the request; the broker being down only costs
// the activation mail.
func (h *AuthorHandler) publishRegistered(a *model.Author) {
	if h.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	ev := queue.AuthorRegisteredEvent{
		AuthorID:        a.ID().String(),
		Username:        a.Username(),
		Email:           a.Email(),
		ActivationToken: a.ActivationToken(),
		RegisteredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Events.PublishAuthorRegistered(ctx, ev); err != nil {
		h.Log.Warn().Err(err).Str("author_id", ev.AuthorID).Msg("author registered event not published")
	}
}

// Activate clears the activation token it is given.
func (h *AuthorHandler) Activate(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	a, err := h.Authors.GetByActivationToken(ctx, c.Param("token"))
	if err != nil {
		return h.fail(c, err)
	}
	if err := a.SetActivationToken(""); err != nil {
		return h.fail(c, err)
	}
	if err := h.Authors.Update(ctx, a); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, toAuthorResp(a))
}

func (h *AuthorHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	authors, err := h.Authors.GetAll(ctx)
	if err != nil {
		return h.fail(c, err)
	}
	out := make([]authorResp, 0, len(authors))
	for _, a := range authors {
		out = append(out, toAuthorResp(a))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthorHandler) Get(c echo.Context) error {
	id, err := validate.ParseIdentifier(c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	a, err := h.Authors.GetByID(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, toAuthorResp(a))
}

func (h *AuthorHandler) GetByUsername(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	a, err := h.Authors.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, toAuthorResp(a))
}

// Me returns the authenticated author.
func (h *AuthorHandler) Me(c echo.Context) error {
	id, ok := middleware.AuthorID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	a, err := h.Authors.GetByID(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, toAuthorResp(a))
}

// Update applies a partial profile change. Every supplied field is validated
// before anything is written.
func (h *AuthorHandler) Update(c echo.Context) error {
	id, err := h.selfTarget(c)
	if err != nil {
		return h.fail(c, err)
	}
	var req updateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	a, err := h.Authors.GetByID(ctx, id)
	if err != nil {
		return h.fail(c, err)
	}
	if req.Username != nil {
		if err := a.SetUsername(*req.Username); err != nil {
			return h.fail(c, err)
		}
	}
	if req.Email != nil {
		if err := a.SetEmail(*req.Email); err != nil {
			return h.fail(c, err)
		}
	}
	if req.AvatarURL != nil {
		if err := a.SetAvatarURL(*req.AvatarURL); err != nil {
			return h.fail(c, err)
		}
	}
	if req.Password != nil {
		if err := checkPassword(*req.Password); err != nil {
			return h.fail(c, err)
		}
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return h.fail(c, err)
		}
		if err := a.SetHash(hash); err != nil {
			return h.fail(c, err)
		}
	}

	if err := h.Authors.Update(ctx, a); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, toAuthorResp(a))
}

func (h *AuthorHandler) Delete(c echo.Context) error {
	id, err := h.selfTarget(c)
	if err != nil {
		return h.fail(c, err)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Authors.Delete(ctx, id); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// selfTarget parses :id and checks it against the caller. RequireSelf does
// the same in front of the routes; this keeps the handlers safe if mounted
// without it.
func (h *AuthorHandler) selfTarget(c echo.Context) (uuid.UUID, error) {
	id, err := validate.ParseIdentifier(c.Param("id"))
	if err != nil {
		return uuid.Nil, err
	}
	if caller, ok := middleware.AuthorID(c); !ok || caller != id {
		return uuid.Nil, repository.ErrForbidden
	}
	return id, nil
}
