// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangacal/internal/platform/apperr"
	"github.com/taibuivan/mangacal/internal/platform/respond"
)

/*
TestOK verifies the success envelope and content type.
*/
func TestOK(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.OK(recorder, map[string]string{"id": "kim"})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"id":"kim"}}`, recorder.Body.String())
}

/*
TestRaw verifies that Raw skips the envelope.
*/
func TestRaw(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Raw(recorder, []int{1, 2})

	assert.JSONEq(t, `[1,2]`, recorder.Body.String())
}

/*
TestError verifies mapping of application and foreign errors.
*/
func TestError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not_found", apperr.NotFound("Series"), http.StatusNotFound, "NOT_FOUND"},
		{"validation", apperr.ValidationError("bad", apperr.FieldError{Field: "status", Message: "x"}), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"upstream", apperr.Upstream("Google Sheets", errors.New("timeout")), http.StatusBadGateway, "UPSTREAM_ERROR"},
		{"foreign", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest(http.MethodGet, "/", nil)

			respond.Error(recorder, request, tt.err)

			assert.Equal(t, tt.status, recorder.Code)
			var body respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotContains(t, body.Error, "boom")
		})
	}
}
