package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"postly/internal/api/middleware"
	"postly/internal/models"
	"postly/internal/repositories"
	"postly/internal/utils"
)

type postInput struct {
	Title     string `json:"title" validate:"required"`
	Content   string `json:"content" validate:"required"`
	Published *bool  `json:"published"`
}

func (in postInput) published() bool {
	if in.Published == nil {
		return true
	}
	return *in.Published
}

// parseListParams reads the limit/skip/search window. Garbage or negative
// values fall back to the defaults instead of erroring.
func parseListParams(query url.Values) repositories.ListOptions {
	opts := repositories.ListOptions{
		Limit:  repositories.DefaultListLimit,
		Search: query.Get("search"),
	}
	if parsed, err := strconv.Atoi(query.Get("limit")); err == nil && parsed > 0 {
		opts.Limit = parsed
	}
	if parsed, err := strconv.Atoi(query.Get("skip")); err == nil && parsed >= 0 {
		opts.Offset = parsed
	}
	return opts
}

// GET /posts/all_posts
func ListAllPosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
		return
	}
	if _, ok := middleware.CurrentUser(r); !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Could not validate credentials",
		})
		return
	}

	posts, err := repositories.ListPosts(r.Context(), parseListParams(r.URL.Query()))
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Database query failed",
		})
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Posts found",
		Data:    posts,
	})
}

// GET /posts lists the caller's own posts; POST /posts creates one.
func Posts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		listOwnPosts(w, r)
	case http.MethodPost:
		createPost(w, r)
	default:
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
	}
}

func listOwnPosts(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Could not validate credentials",
		})
		return
	}

	opts := parseListParams(r.URL.Query())
	opts.OwnerID = &user.ID

	posts, err := repositories.ListPosts(r.Context(), opts)
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Database query failed",
		})
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Posts found",
		Data:    posts,
	})
}

func createPost(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Could not validate credentials",
		})
		return
	}

	var input postInput
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

	post, err := repositories.CreatePost(r.Context(), user.ID, input.Title, input.Content, input.published())
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Database insert failed",
		})
		return
	}

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "Post created successfully",
		Data:    post,
	})
}

// GET/PUT/DELETE /posts/{id}. Missing and not-owned are the same 404; the
// response never discloses whether someone else's post exists.
func PostByID(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r)
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Could not validate credentials",
		})
		return
	}

	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid post id",
		})
		return
	}
	postID := uint(id)

	switch r.Method {
	case http.MethodGet:
		getPost(w, r, user, postID)
	case http.MethodPut:
		updatePost(w, r, user, postID)
	case http.MethodDelete:
		deletePost(w, r, user, postID)
	default:
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
	}
}

func getPost(w http.ResponseWriter, r *http.Request, user *models.User, postID uint) {
	post, err := repositories.GetOwnedPost(r.Context(), user.ID, postID)
	switch err {
	case nil:
	case repositories.ErrNotFound:
		utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
			Success: false,
			Message: fmt.Sprintf("Post with id: %d was not found", postID),
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
		Message: "Post found",
		Data:    post,
	})
}

func updatePost(w http.ResponseWriter, r *http.Request, user *models.User, postID uint) {
	var input postInput
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

	post, err := repositories.UpdatePost(r.Context(), user.ID, postID, input.Title, input.Content, input.published())
	switch err {
	case nil:
	case repositories.ErrNotFound:
		utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
			Success: false,
			Message: fmt.Sprintf("Post with id: %d was not found", postID),
		})
		return
	default:
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Database update failed",
		})
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Post updated successfully",
		Data:    post,
	})
}

func deletePost(w http.ResponseWriter, r *http.Request, user *models.User, postID uint) {
	err := repositories.DeletePost(r.Context(), user.ID, postID)
	switch err {
	case nil:
	case repositories.ErrNotFound:
		utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
			Success: false,
			Message: fmt.Sprintf("Post with id: %d was not found", postID),
		})
		return
	default:
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Database delete failed",
		})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
