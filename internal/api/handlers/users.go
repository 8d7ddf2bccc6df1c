package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"postly/internal/repositories"
	"postly/internal/utils"
)

// POST /users
func RegisterUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
		return
	}

	type Input struct {
		Email       string `json:"email" validate:"required,email"`
		Username    string `json:"username" validate:"required"`
		Password    string `json:"password" validate:"required"`
		PhoneNumber string `json:"phone_number"`
	}

	var input Input

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	if err := validate.Struct(input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: validationDetail(err),
		})
		return
	}

	user, err := repositories.CreateUser(r.Context(), input.Email, input.Username, input.Password, input.PhoneNumber)
	switch err {
	case nil:
	case repositories.ErrEmailTaken:
		utils.JSONResponse(w, http.StatusConflict, utils.Payload{
			Success: false,
			Message: fmt.Sprintf("User with email: %s already exists", input.Email),
		})
		return
	case repositories.ErrUsernameTaken:
		utils.JSONResponse(w, http.StatusConflict, utils.Payload{
			Success: false,
			Message: "Username already taken",
		})
		return
	case repositories.ErrUserExists:
		utils.JSONResponse(w, http.StatusConflict, utils.Payload{
			Success: false,
			Message: "User already exists",
		})
		return
	default:
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Database insert failed",
		})
		return
	}

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "User registered successfully",
		Data:    user,
	})
}

// GET /users/{id}
func GetUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
		return
	}

	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid user id",
		})
		return
	}

	user, err := repositories.FindUserByID(r.Context(), uint(id))
	switch err {
	case nil:
	case repositories.ErrNotFound:
		utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
			Success: false,
			Message: fmt.Sprintf("User with id: %d was not found", id),
		})
		return
	default:
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Database query failed",
		})
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "User found",
		Data:    user,
	})
}
