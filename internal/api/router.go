package api

import (
	"fmt"
	"net/http"

	_ "postly/docs"
	httpSwagger "github.com/swaggo/http-swagger"

	"postly/internal/api/handlers"
	"postly/internal/api/middleware"
	"postly/internal/auth"
	"postly/internal/config"
	"postly/internal/logger"

	"github.com/rs/cors"
)

func SetupRouter(tokens *auth.TokenService) http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(config.Envs.CorsConfig)

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	mainMux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	mainMux.HandleFunc("/users", handlers.RegisterUser)
	mainMux.HandleFunc("/users/{id}", handlers.GetUser)
	mainMux.HandleFunc("/auth/login", handlers.LoginUser(tokens))

	// ---------- PROTECTED ROUTES ----------
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("/posts/all_posts", handlers.ListAllPosts)
	protectedMux.HandleFunc("/posts", handlers.Posts)
	protectedMux.HandleFunc("/posts/{id}", handlers.PostByID)
	protectedMux.HandleFunc("/vote", handlers.CastVote)

	protected := middleware.Auth(tokens)(protectedMux)
	mainMux.Handle("/posts", protected)
	mainMux.Handle("/posts/", protected)
	mainMux.Handle("/vote", protected)

	logger.L.Info("router initialized")
	handler := c.Handler(mainMux)
	handler = middleware.RequestID(handler)
	handler = middleware.Logger(handler)
	return handler
}
