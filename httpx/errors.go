package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cloudspace-consulting/survey-api/log"
)

type errorBody struct {
	Detail string `json:"detail"`
}

func writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Detail: detail})
}

// Will log an error with full context, and send an HTTP response with
// status 500 and a descriptive detail message
func LogInternalError(w http.ResponseWriter, code, msg string, err error) {
	log.Errorf("%s: %+v", code, err)
	writeError(w, http.StatusInternalServerError, fmt.Sprintf("%s: %s", msg, err))
}

// Will log a debug message, and send an HTTP response with status 404
func LogNotFound(w http.ResponseWriter, code, msg string, id any) {
	log.Debugf("%s: not found (%v)", code, id)
	writeError(w, http.StatusNotFound, msg)
}

// Will log a debug message, and send an HTTP response with status 422
// carrying the validation failure
func LogValidationError(w http.ResponseWriter, code string, err error) {
	log.Debugf("%s: %s", code, err)
	writeError(w, http.StatusUnprocessableEntity, err.Error())
}
