package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jlbernardo/barangaylink/internal/database/testutil"
	"github.com/jlbernardo/barangaylink/internal/models"
	"github.com/jlbernardo/barangaylink/internal/services"
)

func newTestContactHandler(t *testing.T) (*ContactHandler, *gorm.DB) {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	notifications, err := services.NewNotificationService(db)
	require.NoError(t, err)
	svc, err := services.NewContactService(db, notifications)
	require.NoError(t, err)

	return NewContactHandler(svc), db
}

func TestContactHandlerSubmit(t *testing.T) {
	handler, db := newTestContactHandler(t)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = jsonRequest(t, http.MethodPost, "/api/contact",
		`{"name":"Maria Santos","email":"maria@example.com","message":"When is the next assembly?"}`)

	handler.Submit(c)

	require.Equal(t, http.StatusCreated, recorder.Code)
	payload := decodeResponse(t, recorder)
	require.True(t, payload.Success)

	data, ok := payload.Data.(map[string]any)
	require.True(t, ok)
	require.NotEmpty(t, data["reference_number"])

	var stored models.ContactMessage
	require.NoError(t, db.First(&stored, "email = ?", "maria@example.com").Error)
	require.Equal(t, models.ContactStatusUnread, stored.Status)
}

func TestContactHandlerSubmitValidation(t *testing.T) {
	handler, _ := newTestContactHandler(t)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = jsonRequest(t, http.MethodPost, "/api/contact", `{"name":"Maria","email":"bad-email","message":"hi"}`)

	handler.Submit(c)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestContactHandlerMarkStatus(t *testing.T) {
	handler, db := newTestContactHandler(t)

	submit := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(submit)
	c.Request = jsonRequest(t, http.MethodPost, "/api/contact",
		`{"name":"Maria","email":"maria@example.com","message":"hi"}`)
	handler.Submit(c)
	require.Equal(t, http.StatusCreated, submit.Code)

	var stored models.ContactMessage
	require.NoError(t, db.First(&stored, "email = ?", "maria@example.com").Error)

	recorder := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(recorder)
	c2.Request = jsonRequest(t, http.MethodPut, "/api/admin/messages/1/status", `{"status":"read"}`)
	c2.Params = gin.Params{gin.Param{Key: "id", Value: jsonUint(stored.ID)}}

	handler.MarkStatus(c2)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, db.First(&stored, "id = ?", stored.ID).Error)
	require.Equal(t, models.ContactStatusRead, stored.Status)

	badRecorder := httptest.NewRecorder()
	c3, _ := gin.CreateTestContext(badRecorder)
	c3.Request = jsonRequest(t, http.MethodPut, "/api/admin/messages/1/status", `{"status":"spam"}`)
	c3.Params = gin.Params{gin.Param{Key: "id", Value: jsonUint(stored.ID)}}
	handler.MarkStatus(c3)
	require.Equal(t, http.StatusBadRequest, badRecorder.Code)
}
