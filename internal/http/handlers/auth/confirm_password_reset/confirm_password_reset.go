package confirmpasswordreset

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	e "oroshine/internal/core/domain/errors"
	"oroshine/internal/core/domain/user"
	"oroshine/internal/core/services"
	service "oroshine/internal/core/services/confirm_password_reset"
	"oroshine/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(service services.Service[service.Input, service.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Reference string `json:"reference"`
	Token     string `json:"token"`
	Password  string `json:"password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Reference, validation.Required, validation.Length(0, 128)),
		validation.Field(&i.Token, validation.Required, validation.Length(0, 1024)),
		validation.Field(&i.Password, validation.Required, validation.Length(8, 256)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		service.Input{
			Reference:   user.PasswordResetReference(input.Reference),
			Token:       user.PasswordResetToken(input.Token),
			NewPassword: user.RawPassword(input.Password),
		},
	)
	// All validation failures collapse into one message so the response is
	// never an oracle for which part of the link was wrong.
	if errors.Is(err, user.ErrInvalidResetReference) ||
		errors.Is(err, user.ErrUserDoesNotExist) ||
		errors.Is(err, user.ErrResetTokenMismatch) ||
		errors.Is(err, user.ErrResetTokenExpired) {
		response.RenderError(rw, "link is invalid or expired", http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	response.Render(rw, struct{}{}, http.StatusOK)
}
