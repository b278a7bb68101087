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

func SubmitResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyID := chi.URLParam(r, "survey_id")

		payload := model.SurveyResponseCreate{}
		err := render.DecodeJSON(r.Body, &payload)
		if err != nil {
			httpx.LogValidationError(w, "submit_response.parse_body", err)
			return
		}
		if err := payload.Validate(); err != nil {
			httpx.LogValidationError(w, "submit_response.validate", err)
			return
		}

		// the survey must exist before anything is written
		_, err = app.Store.Get(r.Context(), app.SurveysCollection, surveyID)
		if errors.Is(err, store.ErrItemNotFound) {
			httpx.LogNotFound(w, "submit_response.get_survey", "Survey not found", surveyID)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "store.get_survey", "Error submitting response", err)
			return
		}

		id, err := uuid.NewV4()
		if err != nil {
			httpx.LogInternalError(w, "submit_response.uuid", "Error submitting response", err)
			return
		}
		response := payload.Response(id.String(), surveyID, model.Timestamp())

		log.Infof("Saving response %s for survey %s", response.ID, surveyID)
		err = app.Store.Put(r.Context(), app.ResponsesCollection, payload.Item(response.ID, surveyID, response.CreatedAt))
		if err != nil {
			httpx.LogInternalError(w, "store.put_response", "Error submitting response", err)
			return
		}

		// Separate call from the insert above: if this one fails the response
		// is already stored and the counter stays behind by one.
		err = app.Store.IncrementField(r.Context(), app.SurveysCollection, surveyID, "responses")
		if err != nil {
			httpx.LogInternalError(w, "store.increment_responses", "Error submitting response", err)
			return
		}

		render.JSON(w, r, response)
	}
}

func ListSurveyResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyID := chi.URLParam(r, "survey_id")

		_, err := app.Store.Get(r.Context(), app.SurveysCollection, surveyID)
		if errors.Is(err, store.ErrItemNotFound) {
			httpx.LogNotFound(w, "get_responses.get_survey", "Survey not found", surveyID)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "store.get_survey", "Error retrieving responses", err)
			return
		}

		items, err := app.Store.Query(r.Context(), app.ResponsesCollection, "survey_id", surveyID)
		if err != nil {
			httpx.LogInternalError(w, "store.query_responses", "Error retrieving responses", err)
			return
		}

		responses := make([]model.SurveyResponse, 0, len(items))
		for _, item := range items {
			response, err := model.ResponseFromItem(item)
			if err != nil {
				httpx.LogInternalError(w, "store.query_responses.decode", "Error retrieving responses", err)
				return
			}
			responses = append(responses, response)
		}

		log.Debugf("Found %d responses for survey %s", len(responses), surveyID)
		render.JSON(w, r, responses)
	}
}
