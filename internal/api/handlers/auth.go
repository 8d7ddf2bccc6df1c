package handlers

import (
	"net/http"

	"postly/internal/auth"
	"postly/internal/repositories"
	"postly/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// POST /auth/login
//
// Credentials arrive form-encoded. Unknown username and wrong password are
// deliberately indistinguishable in the response.
func LoginUser(tokens *auth.TokenService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
				Success: false,
				Message: "Method not allowed",
			})
			return
		}

		if err := r.ParseForm(); err != nil {
			utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
				Success: false,
				Message: "Invalid input",
			})
			return
		}

		username := r.PostFormValue("username")
		password := r.PostFormValue("password")
		if username == "" || password == "" {
			utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
				Success: false,
				Message: "Invalid input",
			})
			return
		}

		user, err := repositories.FindUserByUsername(r.Context(), username)
		switch err {
		case nil:
		case repositories.ErrNotFound:
			utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
				Success: false,
				Message: "Invalid Credentials",
			})
			return
		default:
			utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
				Success: false,
				Message: "Database query failed",
			})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
			utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
				Success: false,
				Message: "Invalid Credentials",
			})
			return
		}

		token, err := tokens.Issue(user.ID, user.Username)
		if err != nil {
			utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
				Success: false,
				Message: "Failed to create token",
			})
			return
		}

		utils.JSONResponse(w, http.StatusOK, utils.Payload{
			Success: true,
			Message: "Login successful",
			Data: tokenResponse{
				AccessToken: token,
				TokenType:   "bearer",
			},
		})
	}
}
