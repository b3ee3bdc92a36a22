package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fleet-management/internal/auth"
	"github.com/iliyamo/fleet-management/internal/config"
	"github.com/iliyamo/fleet-management/internal/model"
	"github.com/iliyamo/fleet-management/internal/repository"
	"github.com/iliyamo/fleet-management/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.  Credential
// checks and the reset flow live in auth.Flow; the handler only
// binds requests, maps flow errors to HTTP codes and issues tokens.
type AuthHandler struct {
	Cfg     config.Config
	Users   *repository.UserRepo
	Drivers *repository.DriverRepo
	Tokens  *repository.TokenRepo
	Flow    *auth.Flow
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, d *repository.DriverRepo, t *repository.TokenRepo, f *auth.Flow) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Drivers: d, Tokens: t, Flow: f}
}

// ----- DTOs -----

type registerReq struct {
	Phone           string `json:"phone"`
	Username        string `json:"username"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Role            string `json:"role"` // MANAGER | DRIVER
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	LicenseNumber   string `json:"license_number"` // required for DRIVER
	LicenseExpiry   string `json:"license_expiry"` // required for DRIVER, YYYY-MM-DD
}
type loginReq struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}
type resetRequestReq struct {
	Phone string `json:"phone"`
}
type resetVerifyReq struct {
	ResetToken string `json:"reset_token"`
	Code       string `json:"code"`
}
type resetConfirmReq struct {
	ResetToken      string `json:"reset_token"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID    uint64 `json:"id"`
	Phone string `json:"phone"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
type authResp struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

// Register: create user (and driver profile for DRIVER role) and
// return tokens immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Phone == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone/password required"})
	}
	if req.Password != req.ConfirmPassword {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "passwords do not match"})
	}
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role != model.RoleManager && role != model.RoleDriver {
		role = model.RoleDriver
	}

	var licenseExpiry time.Time
	if role == model.RoleDriver {
		// Licence data is mandatory for drivers, mirroring how the
		// fleet manager tracks expiring permits.
		if strings.TrimSpace(req.LicenseNumber) == "" || req.LicenseExpiry == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "license_number and license_expiry required for drivers"})
		}
		var err error
		licenseExpiry, err = time.Parse("2006-01-02", req.LicenseExpiry)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "license_expiry must be YYYY-MM-DD"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Phone, req.Username, req.FirstName, req.LastName, req.Password, role, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrPhoneExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "phone already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	u := model.User{ID: uid, Phone: req.Phone, FirstName: req.FirstName, LastName: req.LastName, Role: role}

	if role == model.RoleDriver {
		driver := &model.Driver{
			UserID:        &uid,
			FullName:      u.FullName(),
			Phone:         req.Phone,
			Status:        model.DriverAvailable,
			LicenseNumber: strings.TrimSpace(req.LicenseNumber),
			LicenseExpiry: licenseExpiry,
		}
		if err := h.Drivers.Create(ctx, driver); err != nil {
			if errors.Is(err, repository.ErrLicenseExists) {
				return c.JSON(http.StatusConflict, echo.Map{"error": "license number already exists"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create driver profile failed"})
		}
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, uid, role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	if err := h.Tokens.StoreRefresh(ctx, uid, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}

	return c.JSON(http.StatusCreated, authResp{
		User:    userPart{ID: uid, Phone: req.Phone, Name: u.FullName(), Role: role},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
	})
}

// Login: verify phone+password and return a new token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Phone) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Flow.Authenticate(ctx, req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	if err := h.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}

	return c.JSON(http.StatusOK, authResp{
		User:    userPart{ID: u.ID, Phone: u.Phone, Name: u.FullName(), Role: u.Role},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp},
	})
}

// Refresh: validate by hash, revoke old, issue new.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	raw := strings.TrimSpace(req.RefreshToken)
	hash := utils.HashRefreshRaw(raw)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	_ = h.Tokens.RevokeByHash(ctx, hash)

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, userID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	newRef, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	if err := h.Tokens.StoreRefresh(ctx, userID, utils.HashRefreshRaw(newRef.Raw), newRef.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}

	return c.JSON(http.StatusOK, authResp{
		User:    userPart{ID: userID, Phone: u.Phone, Name: u.FullName(), Role: u.Role},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: newRef.Raw, Expires: newRef.Exp},
	})
}

// Logout: revoke the refresh token supplied in the body.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated user's information.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, userPart{ID: u.ID, Phone: u.Phone, Name: u.FullName(), Role: u.Role})
}

// ----- Password reset (request -> verify -> confirm) -----

// RequestReset: issue a one-time code for the phone number and open
// a reset intent.  The returned reset_token identifies the flow in
// the two following steps.
func (h *AuthHandler) RequestReset(c echo.Context) error {
	var req resetRequestReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Phone) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	token, err := h.Flow.RequestReset(ctx, strings.TrimSpace(req.Phone))
	if err != nil {
		if errors.Is(err, auth.ErrUnknownPhone) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown phone number"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reset request failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reset_token": token})
}

// VerifyReset: check the submitted code against the active one.  A
// wrong code returns 400 and leaves the flow open for a retry.
func (h *AuthHandler) VerifyReset(c echo.Context) error {
	var req resetVerifyReq
	if err := c.Bind(&req); err != nil || req.ResetToken == "" || req.Code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reset_token/code required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Flow.VerifyCode(ctx, req.ResetToken, strings.TrimSpace(req.Code)); {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"verified": true})
	case errors.Is(err, auth.ErrNoPendingReset):
		return c.JSON(http.StatusGone, echo.Map{"error": "no pending password reset"})
	case errors.Is(err, auth.ErrInvalidCode):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid code"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verify failed"})
	}
}

// ConfirmReset: set the new password.  Requires a verified intent;
// otherwise the caller is redirected to the start of the flow.
func (h *AuthHandler) ConfirmReset(c echo.Context) error {
	var req resetConfirmReq
	if err := c.Bind(&req); err != nil || req.ResetToken == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reset_token/new_password required"})
	}
	if req.NewPassword != req.ConfirmPassword {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "passwords do not match"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.Flow.CommitPassword(ctx, req.ResetToken, req.NewPassword); {
	case err == nil:
		return c.JSON(http.StatusOK, echo.Map{"updated": true})
	case errors.Is(err, auth.ErrResetNotVerified):
		return c.JSON(http.StatusConflict, echo.Map{"error": "reset not verified"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "password update failed"})
	}
}
