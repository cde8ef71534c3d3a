package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teamfit-api/internal/models"
	appErrors "github.com/noah-isme/teamfit-api/pkg/errors"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, rec
}

func TestJSONEnvelope(t *testing.T) {
	c, rec := newContext()
	JSON(c, http.StatusOK, map[string]int{"id": 1}, &models.Pagination{Page: 1, PageSize: 20, TotalCount: 1})

	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["data"].(map[string]interface{})["id"])
	assert.Equal(t, float64(20), body["pagination"].(map[string]interface{})["page_size"])
}

func TestErrorCarriesValidationDetails(t *testing.T) {
	c, rec := newContext()
	Error(c, appErrors.FieldErrors{"name": "Name is required", "id_sport": "Sport is required"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Error appErrors.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "Sport is required", body.Error.Details["id_sport"])
}

func TestErrorDefaultsToInternal(t *testing.T) {
	c, rec := newContext()
	Error(c, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAttachment(t *testing.T) {
	c, rec := newContext()
	Attachment(c, "board.csv", "text/csv", []byte("a,b\n"))

	assert.Equal(t, `attachment; filename="board.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, "a,b\n", rec.Body.String())
}
