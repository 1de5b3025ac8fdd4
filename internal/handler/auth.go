package handler

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/roshnikutty/neighborfoods-api/internal/config"
	"github.com/roshnikutty/neighborfoods-api/internal/model"
	"github.com/roshnikutty/neighborfoods-api/internal/repository"
	"github.com/roshnikutty/neighborfoods-api/internal/utils"
)

// AuthHandler bundles dependencies for the account endpoints.  Everything
// past the token exchange treats authentication as an opaque gate; handlers
// never inspect the identity beyond its presence.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	if users == nil {
		panic("nil store passed to NewAuthHandler")
	}
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type registerReq struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
type tokenReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /users: hash the password, create the account and
// return its public projection.  The hash never leaves the server.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Username, req.Password, req.FirstName, req.LastName, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		}
		log.Printf("users: create failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}

	u := model.User{
		ID:        uid,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	return c.JSON(http.StatusCreated, u.Repr())
}

// Token handles POST /users/token: exchange credentials for a bearer token.
// Any failure -- absent fields, unknown user, wrong password -- responds 401
// without detail, so the endpoint does not leak which part was wrong.
func (h *AuthHandler) Token(c echo.Context) error {
	var req tokenReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		log.Printf("users: token lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, h.Cfg.TokenTTLMin)
	if err != nil {
		log.Printf("users: issue token failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"token": access.Token})
}
