package errs

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapsCategories(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Status(ErrInvalidInput))
	assert.Equal(t, http.StatusBadRequest, Status(ErrInvalidState))
	assert.Equal(t, http.StatusUnauthorized, Status(ErrUnauthorized))
	assert.Equal(t, http.StatusNotFound, Status(ErrNotFound))
	assert.Equal(t, http.StatusConflict, Status(ErrConflict))
	assert.Equal(t, http.StatusBadGateway, Status(ErrUpstream))
	assert.Equal(t, http.StatusInternalServerError, Status(fmt.Errorf("disk on fire")))
}

func TestStatusSeesWrappedErrors(t *testing.T) {
	err := fmt.Errorf("%w: product is already in your wishlist", ErrConflict)
	assert.Equal(t, http.StatusConflict, Status(err))
}

func TestFromStatusRoundTripsHandlerResponses(t *testing.T) {
	for _, sentinel := range []error{ErrUnauthorized, ErrNotFound, ErrConflict, ErrUpstream} {
		assert.ErrorIs(t, FromStatus(Status(sentinel)), sentinel)
	}
}
