package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/cloudspace-consulting/survey-api/app"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)
	root.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{
			"https://topsurvey.cloudspace-consulting.com",
			"http://localhost:3000",
		},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	root.Use(httprate.LimitByIP(100, time.Minute))

	root.Get("/", Root())
	root.Get("/health", Health())

	root.Post("/surveys", CreateSurvey(app))
	root.Get("/surveys", ListSurveys(app))
	root.Get("/surveys/{survey_id}", GetSurveyByID(app))

	root.Post("/surveys/{survey_id}/responses", SubmitResponse(app))
	root.Get("/surveys/{survey_id}/responses", ListSurveyResponses(app))

	return root
}
