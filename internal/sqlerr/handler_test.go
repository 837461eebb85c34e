package sqlerr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/realty/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleError_UniqueViolationOnCompositeIndex(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:           "23505",
		TableName:      "cities",
		ConstraintName: "idx_cities_name_state",
	})

	httpErr := asHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "CITY_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A city with this name and state already exists", httpErr.Message)
}

func TestHandleError_ForeignKeyViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       "23503",
		TableName:  "neighborhoods",
		ColumnName: "city_id",
	})

	httpErr := asHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "NEIGHBORHOOD_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "The referenced city does not exist", httpErr.Message)
}

func TestHandleError_StillReferenced(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:      "23503",
		TableName: "neighborhoods",
		Detail:    `Key (id)=(x) is still referenced from table "neighborhoods".`,
	})

	httpErr := asHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Contains(t, httpErr.Message, "still referenced")
}

func TestHandleError_CheckViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:           "23514",
		TableName:      "properties",
		ConstraintName: "properties_price_check",
	})

	httpErr := asHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "PROPERTY_INVALID", httpErr.Code)
	assert.Equal(t, "The Price value does not meet required conditions", httpErr.Message)
}

func TestHandleError_NotFound(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(gorm.ErrRecordNotFound))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestHandleError_PassesHTTPErrorsThrough(t *testing.T) {
	original := errs.NewForbiddenError("nope", true)
	assert.Same(t, original, HandleError(original))
}

func TestHandleError_UnknownIsInternal(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, "Internal Server Error", httpErr.Message)
}

func TestSingular(t *testing.T) {
	assert.Equal(t, "property", singular("properties"))
	assert.Equal(t, "user", singular("users"))
	assert.Equal(t, "property_type", singular("property_types"))
}
