package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Dosada05/ticket-tournament/middleware"
	"github.com/Dosada05/ticket-tournament/models"
	"github.com/Dosada05/ticket-tournament/services"
)

type AuthHandler struct {
	authService  services.AuthService
	tokens       *services.TokenIssuer
	cookieSecure bool
}

func NewAuthHandler(authService services.AuthService, tokens *services.TokenIssuer, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokens:       tokens,
		cookieSecure: cookieSecure,
	}
}

// RegisterPlayer godoc
// @Summary Регистрация игрока
// @Tags auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Данные игрока"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string "Email уже занят"
// @Router /auth/player/register [post]
func (h *AuthHandler) RegisterPlayer(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, models.RolePlayer)
}

func (h *AuthHandler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, models.RoleAdmin)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request, role models.UserRole) {
	var input services.RegisterInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Email == "" || input.Password == "" || input.Name == "" {
		badRequestResponse(w, r, errors.New("name, email, and password are required"))
		return
	}

	account, err := h.authService.Register(r.Context(), role, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{string(role): account}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// LoginPlayer godoc
// @Summary Вход игрока
// @Description Возвращает Bearer-токен для заголовка Authorization.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Email и пароль"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /auth/player/login [post]
func (h *AuthHandler) LoginPlayer(w http.ResponseWriter, r *http.Request) {
	account, ok := h.login(w, r, models.RolePlayer)
	if !ok {
		return
	}

	token, expiresAt, err := h.tokens.Issue(account)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	response := jsonResponse{
		"token":      token,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
		"player":     account,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// LoginAdmin godoc
// @Summary Вход администратора
// @Description Устанавливает HttpOnly cookie admin_token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Email и пароль"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /auth/admin/login [post]
func (h *AuthHandler) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	account, ok := h.login(w, r, models.RoleAdmin)
	if !ok {
		return
	}

	token, expiresAt, err := h.tokens.Issue(account)
	if err != nil {
		serverErrorResponse(w, r, fmt.Errorf("admin login: %w", err))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	if err := writeJSON(w, http.StatusOK, jsonResponse{"admin": account}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AuthHandler) LogoutAdmin(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AdminCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, role models.UserRole) (*models.Account, bool) {
	var input services.LoginInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return nil, false
	}
	if input.Email == "" || input.Password == "" {
		badRequestResponse(w, r, errors.New("email and password are required"))
		return nil, false
	}

	account, err := h.authService.Login(r.Context(), role, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return nil, false
	}
	return account, true
}
