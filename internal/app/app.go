package app

import (
	"net/http"
	"oroshine/internal/app/deps"
	"oroshine/internal/app/services"
	beginpasswordreset "oroshine/internal/http/handlers/auth/begin_password_reset"
	confirmpasswordreset "oroshine/internal/http/handlers/auth/confirm_password_reset"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	isTestMode := deps.Config.IsTestMode

	authRouter := chi.NewRouter()
	authRouter.Method(
		http.MethodPost,
		"/password_reset",
		beginpasswordreset.New(s.BeginPasswordReset, isTestMode),
	)
	authRouter.Method(
		http.MethodPut,
		"/password_reset",
		confirmpasswordreset.New(s.ConfirmPasswordReset),
	)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/auth", authRouter)
	router.Get("/health", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusOK)
	})

	return &http.Server{
		Handler: router,
		Addr:    deps.Config.HTTPAddress,
	}
}
