package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"postly/internal/api/middleware"
	"postly/internal/repositories"
	"postly/internal/utils"
)

// POST /vote
//
// direction 1 adds a like, direction 0 removes one. The pair is a strict
// toggle: liking twice is a conflict, removing a missing like is a 404.
func CastVote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
		return
	}

	user, ok := middleware.CurrentUser(r)
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Could not validate credentials",
		})
		return
	}

	type Input struct {
		PostID    uint `json:"post_id" validate:"required"`
		Direction *int `json:"direction" validate:"required,min=0,max=1"`
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

	err := repositories.CastVote(r.Context(), user.ID, input.PostID, *input.Direction)
	switch err {
	case nil:
	case repositories.ErrNotFound:
		utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
			Success: false,
			Message: fmt.Sprintf("Post with id: %d was not found", input.PostID),
		})
		return
	case repositories.ErrUserNotFound:
		utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
			Success: false,
			Message: fmt.Sprintf("User with id: %d was not found", user.ID),
		})
		return
	case repositories.ErrAlreadyLiked:
		utils.JSONResponse(w, http.StatusConflict, utils.Payload{
			Success: false,
			Message: fmt.Sprintf("User %d has already Liked on post %d", user.ID, input.PostID),
		})
		return
	case repositories.ErrLikeNotFound:
		utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
			Success: false,
			Message: fmt.Sprintf("Like does not exist for post %d and user %d.", input.PostID, user.ID),
		})
		return
	default:
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Database query failed",
		})
		return
	}

	message := "Like added successfully"
	if *input.Direction == repositories.DirectionDislike {
		message = "Like removed successfully"
	}
	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: message,
	})
}
