package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"todo-api/internal/models"
	"todo-api/internal/store"
)

func (h *Handler) Register(c *gin.Context) {
	request := &models.Credentials{}
	err := c.ShouldBindJSON(request)
	if err != nil {
		bindError(c, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		renderError(c, err)
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), models.User{
		ID:        uuid.New(),
		Email:     normalizeEmail(request.Email),
		Password:  string(hashed),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	})
	if errors.Is(err, store.ErrEmailTaken) {
		c.JSON(http.StatusConflict, models.ErrorResponse{Detail: "email already registered"})
		return
	}
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *Handler) Login(c *gin.Context) {
	request := &models.Credentials{}
	err := c.ShouldBindJSON(request)
	if err != nil {
		bindError(c, err)
		return
	}

	user, err := h.users.UserByEmail(c.Request.Context(), normalizeEmail(request.Email))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Detail: "Invalid credentials."})
		return
	}
	if err != nil {
		renderError(c, err)
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password))
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Detail: "Invalid credentials."})
		return
	}

	tokenString, err := h.tokens.Issue(user.ID)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.Token{Token: tokenString})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
