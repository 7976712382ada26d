package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amanisrajpoot/youandonly-sub000/internal/auth"
	"github.com/amanisrajpoot/youandonly-sub000/internal/http/middleware"
	"github.com/amanisrajpoot/youandonly-sub000/internal/http/respond"
	"github.com/amanisrajpoot/youandonly-sub000/internal/http/validation"
	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/users"
	"github.com/amanisrajpoot/youandonly-sub000/internal/shared/apperr"
)

type AuthHandler struct {
	Users  *users.Service
	Tokens *auth.Tokens
}

func NewAuthHandler(u *users.Service, t *auth.Tokens) *AuthHandler {
	return &AuthHandler{Users: u, Tokens: t}
}

type registerInput struct {
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	FirstName string `json:"firstName" binding:"required,min=2,max=100"`
	LastName  string `json:"lastName" binding:"required,min=2,max=100"`
}

type userDTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

func userToDTO(u users.User) userDTO {
	return userDTO{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName, Role: u.Role}
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in registerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.ErrorFields(c, http.StatusBadRequest, "Validation failed.", validation.FromBindError(err, &in))
		return
	}

	u, err := h.Users.Register(c.Request.Context(), users.RegisterInput{
		Email:     in.Email,
		Password:  in.Password,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	})
	if err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			respond.Error(c, http.StatusConflict, "Email is already registered.")
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	token, err := h.Tokens.Issue(u.ID, u.Role)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	respond.OK(c, http.StatusCreated, gin.H{"user": userToDTO(u), "token": token})
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.ErrorFields(c, http.StatusBadRequest, "Validation failed.", validation.FromBindError(err, &in))
		return
	}

	u, err := h.Users.Authenticate(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "Invalid email or password.")
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	token, err := h.Tokens.Issue(u.ID, u.Role)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	respond.OK(c, http.StatusOK, gin.H{"user": userToDTO(u), "token": token})
}
