package routes

import (
	"net/http"

	"github.com/go-chi/render"
)

func Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]any{
			"message": "Welcome to the Survey API",
		})
	}
}

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]any{
			"message": "Service is healthy",
		})
	}
}
