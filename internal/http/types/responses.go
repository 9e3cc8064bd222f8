// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Response is the JSON body of every successful request.
type Response struct {
	Data    any         `json:"data"`
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Meta    *Pagination `json:"_meta,omitempty"`
}

type Pagination struct {
	Page     int64 `json:"page"`
	PageSize int64 `json:"size"`
}

func WriteJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	_ = json.NewEncoder(w).Encode(body)
}

// WriteData wraps data in a Response.
func WriteData(w http.ResponseWriter, code int, message string, data any, meta *Pagination) {
	WriteJSON(w, code, Response{Data: data, Message: message, Status: code, Meta: meta})
}

// WriteError writes err with the status mapped by HTTPStatusFromError.
// Internal errors are not echoed to the client.
func WriteError(w http.ResponseWriter, err error) {
	code := HTTPStatusFromError(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		message = http.StatusText(code)
	}

	WriteJSON(w, code, ErrorResponse{Status: code, Message: message})
}

// WriteBadRequest reports a malformed request body or parameter.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{Status: http.StatusBadRequest, Message: message})
}
