package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/author-service/internal/model"
	"github.com/iliyamo/author-service/internal/repository"
	"github.com/iliyamo/author-service/internal/utils"
)

type loginReq struct {
	Login    string `json:"login"` // email or username
	Password string `json:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type loginResp struct {
	Author authorResp `json:"author"`
	Access tokenPart  `json:"access"`
}

var verifyPassword = utils.VerifyPassword

// dummyHash is verified against when the login is unknown so both paths pay
// for one argon2 run.
var dummyHash = sync.OnceValue(func() string {
	h, err := utils.HashPassword("not-a-real-password")
	if err != nil {
		panic(err)
	}
	return h
})

// Login verifies credentials and returns an access token. Unknown logins and
// wrong passwords get the same 401; accounts still waiting on activation get
// a 403.
func (h *AuthorHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "login/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	var (
		a   *model.Author
		err error
	)
	if strings.Contains(req.Login, "@") {
		a, err = h.Authors.GetByEmail(ctx, req.Login)
	} else {
		a, err = h.Authors.GetByUsername(ctx, req.Login)
	}
	if err != nil {
		if errors.Is(err, repository.ErrAuthorNotFound) {
			verifyPassword(dummyHash(), req.Password)
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return h.fail(c, err)
	}
	if !verifyPassword(a.Hash(), req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if !a.IsActivated() {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account not activated"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWT.Secret, a.ID(), h.Cfg.JWT.AccessTTLMin)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, loginResp{
		Author: toAuthorResp(a),
		Access: tokenPart{Token: access.Token, Expires: access.Exp},
	})
}
