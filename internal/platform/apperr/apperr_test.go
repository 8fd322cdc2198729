// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangacal/internal/platform/apperr"
)

/*
TestAs_WrappedChain verifies AppErrors are found through fmt.Errorf wrapping.
*/
func TestAs_WrappedChain(t *testing.T) {
	wrapped := fmt.Errorf("series page: %w", apperr.NotFound("Series"))

	ae := apperr.As(wrapped)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
	assert.Equal(t, "Series not found", ae.Error())
	assert.True(t, apperr.IsAppError(wrapped))
	assert.Equal(t, http.StatusNotFound, apperr.Status(wrapped))
}

/*
TestStatus_Foreign verifies plain errors map to 500.
*/
func TestStatus_Foreign(t *testing.T) {
	assert.Nil(t, apperr.As(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, apperr.Status(errors.New("boom")))
}

/*
TestUpstream_KeepsCause verifies the cause is reachable but not part of the message.
*/
func TestUpstream_KeepsCause(t *testing.T) {
	cause := errors.New("googleapi: Error 403: API key not valid")
	err := apperr.Upstream("Google Sheets", cause)

	assert.Equal(t, http.StatusBadGateway, err.HTTPStatus)
	assert.Equal(t, "Google Sheets is unavailable", err.Error())
	assert.ErrorIs(t, err, cause)
}

/*
TestMethodNotAllowed_Message verifies the message names the rejected method.
*/
func TestMethodNotAllowed_Message(t *testing.T) {
	err := apperr.MethodNotAllowed(http.MethodPost)

	assert.Equal(t, http.StatusMethodNotAllowed, err.HTTPStatus)
	assert.Equal(t, "Method POST Not Allowed", err.Message)
}
