package common

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shared-finance-go/internal/domain/apperr"
	"shared-finance-go/pkg/logger"
)

type sampleRequest struct {
	Name   string  `json:"name" validate:"required,max=5"`
	Amount float64 `json:"amount" validate:"gt=0"`
	Ref    string  `json:"ref" validate:"omitempty,uuid"`
}

func TestValidateReportsFirstFieldByJSONName(t *testing.T) {
	cases := []struct {
		name    string
		input   sampleRequest
		message string
	}{
		{name: "missing name", input: sampleRequest{Amount: 1}, message: "name is required"},
		{name: "long name", input: sampleRequest{Name: "toolong", Amount: 1}, message: "name must be at most 5 characters"},
		{name: "zero amount", input: sampleRequest{Name: "ok"}, message: "amount must be greater than 0"},
		{name: "bad uuid", input: sampleRequest{Name: "ok", Amount: 1, Ref: "x"}, message: "ref must be a valid uuid"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(&tc.input)
			require.Error(t, err)

			appErr := apperr.Classify(err)
			assert.Equal(t, apperr.KindBadRequest, appErr.Kind)
			assert.Equal(t, "invalid_request", appErr.Code)
			assert.Equal(t, tc.message, appErr.Message)
		})
	}

	assert.NoError(t, Validate(&sampleRequest{Name: "ok", Amount: 2}))
}

func TestDecodeAndValidateRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok","amount":1,"extra":true}`))

	var dst sampleRequest
	err := DecodeAndValidate(req, &dst)
	assert.True(t, errors.Is(err, ErrInvalidJSON))
}

func TestWriteErrorHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, logger.Nop(), "test.op: failed", errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":{"kind":"internal","code":"internal_error","message":"internal error"}}`, rec.Body.String())
}

func TestQueryListAcceptsRepeatedAndCSV(t *testing.T) {
	query := url.Values{
		"users":        {"a,b", "c"},
		"categories[]": {"x", "y", "x"},
	}

	assert.Equal(t, []string{"a", "b", "c"}, QueryList(query, "users"))
	assert.Equal(t, []string{"x", "y"}, QueryList(query, "categories"))
	assert.Empty(t, QueryList(query, "missing"))
}

func TestScalarParams(t *testing.T) {
	value, err := ParseIntParam(" 7 ", 5)
	require.NoError(t, err)
	assert.Equal(t, 7, value)

	value, err = ParseIntParam("", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, value)

	_, err = ParseIntParam("seven", 5)
	assert.Error(t, err)

	amount, err := ParseFloatParam("12.5")
	require.NoError(t, err)
	require.NotNil(t, amount)
	assert.Equal(t, 12.5, *amount)

	amount, err = ParseFloatParam("")
	require.NoError(t, err)
	assert.Nil(t, amount)

	pending, err := ParseBoolParam("true")
	require.NoError(t, err)
	assert.True(t, pending)

	_, err = ParseBoolParam("maybe")
	assert.Error(t, err)

	years, err := QueryIntList(url.Values{"year": {"2024,2025"}}, "year")
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 2025}, years)
}
