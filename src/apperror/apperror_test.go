package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func respond(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	Respond(ctx, err)
	return w
}

func TestRespondValidationError(t *testing.T) {
	w := respond(NewValidationError("Email is required", "customerEmail", ""))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation Error", gjson.Get(w.Body.String(), "error").String())
	assert.Equal(t, "Email is required", gjson.Get(w.Body.String(), "message").String())
	assert.Equal(t, CodeValidation, gjson.Get(w.Body.String(), "code").String())
	assert.Equal(t, "customerEmail", gjson.Get(w.Body.String(), "field").String())
}

func TestRespondNotFound(t *testing.T) {
	w := respond(NewNotFoundError("Booking not found", CodeBookingNotFound))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, CodeBookingNotFound, gjson.Get(w.Body.String(), "code").String())
	assert.False(t, gjson.Get(w.Body.String(), "field").Exists())
}

func TestRespondWrappedErrors(t *testing.T) {
	ve := NewValidationError("Package not found", "", CodePackageNotFound)
	w := respond(fmt.Errorf("create booking: %w", ve))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, CodePackageNotFound, gjson.Get(w.Body.String(), "code").String())

	w = respond(NewAuthenticationError("Unauthorized"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, CodeAuth, gjson.Get(w.Body.String(), "code").String())
}

func TestRespondHidesInternalDetails(t *testing.T) {
	w := respond(errors.New("dial tcp 10.0.0.1:5432: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, CodeInternal, gjson.Get(w.Body.String(), "code").String())
	assert.NotContains(t, w.Body.String(), "10.0.0.1")
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("driver failure")
	err := Wrap(cause, "Failed to retrieve bookings")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to retrieve bookings", err.Error())
	assert.Equal(t, http.StatusBadRequest, Status(err))
}
