package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/somtoval/foretrust-api/internal/handlers/render"
	"github.com/somtoval/foretrust-api/internal/handlers/userctx"
	"github.com/somtoval/foretrust-api/internal/logger"
	"github.com/somtoval/foretrust-api/internal/models"
)

// Token pair as returned to the client
type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func newTokenPairResponse(pair models.TokenPair) tokenPairResponse {
	return tokenPairResponse{
		AccessToken:  pair.Access.Value,
		RefreshToken: pair.Refresh.Value,
		TokenType:    "bearer",
	}
}

func handleLogin(auth authService, l logger.Logger) http.Handler {
	type request struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		pair, err := auth.Login(r.Context(), data.Username, data.Password)
		if err != nil {
			// One answer for every failure reason, nothing to enumerate
			l.Info("login rejected", "username", data.Username)
			render.ServiceError(w, "Invalid username or password", http.StatusUnauthorized)
			return
		}

		render.JSON(w, newTokenPairResponse(pair))
	})
}

func handleRefresh(auth authService, l logger.Logger) http.Handler {
	type request struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		pair, err := auth.Refresh(r.Context(), data.RefreshToken)
		if err != nil {
			l.Info("refresh rejected", "error", err.Error())
			render.ServiceError(w, "Invalid refresh token", http.StatusUnauthorized)
			return
		}

		render.JSON(w, newTokenPairResponse(pair))
	})
}

func handleMe() http.Handler {
	type response struct {
		ID        uuid.UUID `json:"id"`
		Username  string    `json:"username"`
		Email     string    `json:"email"`
		IsActive  bool      `json:"is_active"`
		IsAdmin   bool      `json:"is_admin"`
		CreatedAt time.Time `json:"created_at"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := userctx.FromContext(r.Context())
		render.JSON(w, response{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			IsActive:  user.IsActive,
			IsAdmin:   user.IsAdmin,
			CreatedAt: user.CreatedAt,
		})
	})
}

func handleChangePassword(auth authService, l logger.Logger) http.Handler {
	type request struct {
		OldPassword string `json:"old_password" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}
	type response struct {
		Message string `json:"message"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		err = auth.ChangePassword(r.Context(), user, data.OldPassword, data.NewPassword)
		if err != nil {
			l.Info("password change rejected", "username", user.Username)
			render.ServiceError(w, "Old password is incorrect", http.StatusUnauthorized)
			return
		}

		render.JSON(w, response{Message: "Password changed successfully"})
	})
}
