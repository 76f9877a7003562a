package utils_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ms-users/internal/models"
	"ms-users/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID   *int64 `json:"id" validate:"omitempty,gte=1"`
	Name string `json:"name" validate:"required,max=5"`
}

func TestDecodeAndValidateAcceptsValidBody(t *testing.T) {
	var p payload
	errs := utils.DecodeAndValidate(strings.NewReader(`{"id":3,"name":"Ann"}`), &p)
	assert.Empty(t, errs)
	require.NotNil(t, p.ID)
	assert.Equal(t, int64(3), *p.ID)
}

func TestDecodeAndValidateMissingField(t *testing.T) {
	var p payload
	errs := utils.DecodeAndValidate(strings.NewReader(`{"id":3}`), &p)
	require.Len(t, errs, 1)
	assert.Equal(t, []string{"body", "name"}, errs[0].Loc)
	assert.Equal(t, "value_error.missing", errs[0].Type)
}

func TestDecodeAndValidateReportsEveryField(t *testing.T) {
	var p payload
	errs := utils.DecodeAndValidate(strings.NewReader(`{"id":0,"name":"too long"}`), &p)
	require.Len(t, errs, 2)

	types := []string{errs[0].Type, errs[1].Type}
	assert.ElementsMatch(t, []string{"value_error.number.not_ge", "value_error.any_str.max_length"}, types)
}

func TestDecodeAndValidateMalformedJSON(t *testing.T) {
	for _, body := range []string{``, `{"name":`, `not json`, `{"name":"Ann"} garbage`, `{"name":"Ann"}{"name":"Bob"}`} {
		var p payload
		errs := utils.DecodeAndValidate(strings.NewReader(body), &p)
		require.Len(t, errs, 1, body)
		assert.Equal(t, []string{"body"}, errs[0].Loc, body)
		assert.Equal(t, "value_error.jsondecode", errs[0].Type, body)
	}
}

func TestDecodeAndValidateWrongType(t *testing.T) {
	var p payload
	errs := utils.DecodeAndValidate(strings.NewReader(`{"id":"abc","name":"Ann"}`), &p)
	require.Len(t, errs, 1)
	assert.Equal(t, []string{"body", "id"}, errs[0].Loc)
	assert.Equal(t, "type_error.int64", errs[0].Type)
}

func TestDecodeAndValidateAllowsTrailingWhitespace(t *testing.T) {
	var p payload
	errs := utils.DecodeAndValidate(strings.NewReader("{\"name\":\"Ann\"}\n\t "), &p)
	assert.Empty(t, errs)
	assert.Equal(t, "Ann", p.Name)
}

type dated struct {
	Birth *models.Timestamp `json:"birth"`
}

func TestDecodeAndValidateBadDatetime(t *testing.T) {
	var d dated
	errs := utils.DecodeAndValidate(strings.NewReader(`{"birth":"nope"}`), &d)
	require.Len(t, errs, 1)
	assert.Equal(t, []string{"body", "birth"}, errs[0].Loc)
	assert.Equal(t, "value_error.datetime", errs[0].Type)
}

func TestDecodeAndValidateBodyTooLarge(t *testing.T) {
	rec := httptest.NewRecorder()
	body := http.MaxBytesReader(rec, io.NopCloser(strings.NewReader(`{"name":"`+strings.Repeat("x", 64)+`"}`)), 16)

	var p payload
	errs := utils.DecodeAndValidate(body, &p)
	require.Len(t, errs, 1)
	assert.Equal(t, utils.ErrTypeBodyTooLarge, errs[0].Type)
}
