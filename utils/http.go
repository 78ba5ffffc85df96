package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the wire error shape: {"error": {"message": "..."}}
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the human-readable error message
type ErrorDetail struct {
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return nil
	}

	return json.NewEncoder(w).Encode(data)
}

// WriteRawJSON writes a pre-serialized JSON body with the given status code
func WriteRawJSON(w http.ResponseWriter, status int, body []byte) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_, err := w.Write(body)
	return err
}

// WriteErrorMessage writes an error response with the given status code
func WriteErrorMessage(w http.ResponseWriter, status int, message string) error {
	return WriteJSON(w, status, ErrorResponse{
		Error: ErrorDetail{Message: message},
	})
}

// WriteBadRequest writes a 400 Bad Request error response
func WriteBadRequest(w http.ResponseWriter, message string) error {
	return WriteErrorMessage(w, http.StatusBadRequest, message)
}

// WriteBadGateway writes a 502 Bad Gateway error response
func WriteBadGateway(w http.ResponseWriter, message string) error {
	return WriteErrorMessage(w, http.StatusBadGateway, message)
}

// WriteInternalServerError writes a 500 Internal Server Error response
func WriteInternalServerError(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Internal server error"
	}
	return WriteErrorMessage(w, http.StatusInternalServerError, message)
}

// WriteNotFound writes a 404 Not Found error response
func WriteNotFound(w http.ResponseWriter, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return WriteErrorMessage(w, http.StatusNotFound, message)
}
