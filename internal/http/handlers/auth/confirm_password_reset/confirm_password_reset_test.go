package confirmpasswordreset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"oroshine/internal/core/domain/user"
	service "oroshine/internal/core/services/confirm_password_reset"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	return result, s.err
}

func TestConfirmPasswordResetHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
	}{
		{
			id:             "success",
			body:           `{"reference": "ref", "token": "tok", "password": "new-password-1"}`,
			expectedStatus: http.StatusOK,
		},
		{
			id:             "invalid json",
			body:           `{`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "missing reference",
			body:           `{"token": "tok", "password": "new-password-1"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "password too short",
			body:           `{"reference": "ref", "token": "tok", "password": "short"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "malformed reference",
			body:           `{"reference": "ref", "token": "tok", "password": "new-password-1"}`,
			serviceErr:     user.ErrInvalidResetReference,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			id:             "unknown user",
			body:           `{"reference": "ref", "token": "tok", "password": "new-password-1"}`,
			serviceErr:     user.ErrUserDoesNotExist,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			id:             "token mismatch",
			body:           `{"reference": "ref", "token": "tok", "password": "new-password-1"}`,
			serviceErr:     user.ErrResetTokenMismatch,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			id:             "token expired",
			body:           `{"reference": "ref", "token": "tok", "password": "new-password-1"}`,
			serviceErr:     user.ErrResetTokenExpired,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			id:             "internal error",
			body:           `{"reference": "ref", "token": "tok", "password": "new-password-1"}`,
			serviceErr:     context.DeadlineExceeded,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			handler := New(&stubService{err: testcase.serviceErr})

			request := httptest.NewRequest(
				http.MethodPut,
				"/auth/password_reset",
				strings.NewReader(testcase.body),
			)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, testcase.expectedStatus, recorder.Code)
		})
	}
}

// The response for every rejected link is the same, regardless of which part
// of it was wrong.
func TestRejectionResponsesAreIndistinguishable(t *testing.T) {
	errs := []error{
		user.ErrInvalidResetReference,
		user.ErrUserDoesNotExist,
		user.ErrResetTokenMismatch,
		user.ErrResetTokenExpired,
	}

	bodies := make(map[string]struct{})
	for _, serviceErr := range errs {
		handler := New(&stubService{err: serviceErr})
		request := httptest.NewRequest(
			http.MethodPut,
			"/auth/password_reset",
			strings.NewReader(`{"reference": "ref", "token": "tok", "password": "new-password-1"}`),
		)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		bodies[recorder.Body.String()] = struct{}{}
	}

	assert.Len(t, bodies, 1)
}
