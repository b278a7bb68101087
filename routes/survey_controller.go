package routes

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/gofrs/uuid"

	"github.com/cloudspace-consulting/survey-api/app"
	"github.com/cloudspace-consulting/survey-api/httpx"
	"github.com/cloudspace-consulting/survey-api/log"
	"github.com/cloudspace-consulting/survey-api/model"
	"github.com/cloudspace-consulting/survey-api/store"
)

func CreateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := model.SurveyCreate{}
		err := render.DecodeJSON(r.Body, &payload)
		if err != nil {
			httpx.LogValidationError(w, "create_survey.parse_body", err)
			return
		}
		if err := payload.Validate(); err != nil {
			httpx.LogValidationError(w, "create_survey.validate", err)
			return
		}

		id, err := uuid.NewV4()
		if err != nil {
			httpx.LogInternalError(w, "create_survey.uuid", "Error creating survey", err)
			return
		}
		survey := payload.Survey(id.String(), model.Timestamp())

		log.Infof("Creating new survey: %s", survey.Title)
		err = app.Store.Put(r.Context(), app.SurveysCollection, payload.Item(survey.ID, survey.CreatedAt))
		if err != nil {
			httpx.LogInternalError(w, "store.put_survey", "Error creating survey", err)
			return
		}

		render.JSON(w, r, survey)
	}
}

func ListSurveys(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := app.Store.Scan(r.Context(), app.SurveysCollection)
		if err != nil {
			httpx.LogInternalError(w, "store.scan_surveys", "Error listing surveys", err)
			return
		}

		surveys := make([]model.Survey, 0, len(items))
		for _, item := range items {
			survey, err := model.SurveyFromItem(item)
			if err != nil {
				httpx.LogInternalError(w, "store.scan_surveys.decode", "Error listing surveys", err)
				return
			}
			surveys = append(surveys, survey)
		}

		log.Debugf("Found %d surveys", len(surveys))
		render.JSON(w, r, surveys)
	}
}

func GetSurveyByID(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyID := chi.URLParam(r, "survey_id")

		item, err := app.Store.Get(r.Context(), app.SurveysCollection, surveyID)
		if errors.Is(err, store.ErrItemNotFound) {
			httpx.LogNotFound(w, "get_survey", "Survey not found", surveyID)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "store.get_survey", "Error retrieving survey", err)
			return
		}

		survey, err := model.SurveyFromItem(item)
		if err != nil {
			httpx.LogInternalError(w, "store.get_survey.decode", "Error retrieving survey", err)
			return
		}

		render.JSON(w, r, survey)
	}
}
