package errors

import (
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundThroughWrapping(t *testing.T) {
	err := fmt.Errorf("failed to get treatment: %w", NotFound("treatment", sql.ErrNoRows))

	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Equal(t, "failed to get treatment: treatment not found: sql: no rows in result set", err.Error())
}

func TestStatusCode(t *testing.T) {
	cases := map[*AppError]int{
		NotFound("post", nil):          http.StatusNotFound,
		NewValidation("bad form", nil): http.StatusBadRequest,
		Unauthorized(nil):              http.StatusUnauthorized,
		Forbidden("no add"):            http.StatusForbidden,
		Internal(fmt.Errorf("boom")):   http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, err.StatusCode(), err.Error())
	}
}
