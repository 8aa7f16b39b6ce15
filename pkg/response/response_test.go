package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	appErrors "github.com/jlbernardo/barangaylink/pkg/errors"
)

func record(fn func(c *gin.Context)) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	fn(c)
	return recorder
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) Response {
	t.Helper()

	var payload Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	return payload
}

func TestSuccess(t *testing.T) {
	recorder := record(func(c *gin.Context) {
		Success(c, http.StatusOK, map[string]string{"hello": "world"})
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	payload := decode(t, recorder)
	require.True(t, payload.Success)
	require.Nil(t, payload.Error)
	require.Equal(t, map[string]any{"hello": "world"}, payload.Data)
}

func TestSuccessWithMessageAndMeta(t *testing.T) {
	recorder := record(func(c *gin.Context) {
		SuccessWithMessage(c, http.StatusCreated, "Request submitted successfully", nil)
	})
	require.Equal(t, http.StatusCreated, recorder.Code)
	require.Equal(t, "Request submitted successfully", decode(t, recorder).Message)

	recorder = record(func(c *gin.Context) {
		SuccessWithMeta(c, http.StatusOK, []string{}, &Meta{Page: 2, PerPage: 20, Total: 41})
	})
	payload := decode(t, recorder)
	require.NotNil(t, payload.Meta)
	require.Equal(t, 2, payload.Meta.Page)
	require.EqualValues(t, 41, payload.Meta.Total)
}

func TestErrorRendersAppError(t *testing.T) {
	recorder := record(func(c *gin.Context) {
		Error(c, appErrors.NewNotFound("Request not found"))
	})

	require.Equal(t, http.StatusNotFound, recorder.Code)
	payload := decode(t, recorder)
	require.False(t, payload.Success)
	require.NotNil(t, payload.Error)
	require.Equal(t, "NOT_FOUND", payload.Error.Code)
	require.Equal(t, "Request not found", payload.Error.Message)
}

func TestErrorHidesInternalDetails(t *testing.T) {
	recorder := record(func(c *gin.Context) {
		Error(c, errors.New("pq: connection refused"))
	})

	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	payload := decode(t, recorder)
	require.Equal(t, "INTERNAL_SERVER_ERROR", payload.Error.Code)
	require.NotContains(t, recorder.Body.String(), "connection refused")
}

func TestErrorNilDefaults(t *testing.T) {
	recorder := record(func(c *gin.Context) {
		Error(c, nil)
	})
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
}
