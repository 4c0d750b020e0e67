package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sanavia/clinica/internal/domain"
	"github.com/sanavia/clinica/internal/service"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	IdentNumber string `json:"numero_identificacion"`
}

type setActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	token, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, token)
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req updateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.users.UpdateDetails(c.Request.Context(), id, req.Username, req.Email, domain.Role(req.Role), req.IdentNumber); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "usuario actualizado")
}

func (h *UserHandler) SetActive(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req setActiveRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.users.SetActive(c.Request.Context(), id, *req.IsActive); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "estado de usuario actualizado")
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "usuario eliminado")
}
