package beginpasswordreset

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "oroshine/internal/core/domain/common"
	e "oroshine/internal/core/domain/errors"
	ratelimiter "oroshine/internal/core/domain/rate_limiter"
	"oroshine/internal/core/services"
	service "oroshine/internal/core/services/begin_password_reset"
	"oroshine/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service    services.Service[service.Input, service.Result]
	isTestMode bool
}

func New(
	service services.Service[service.Input, service.Result],
	isTestMode bool,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, isTestMode: isTestMode}
}

type Input struct {
	Email string `json:"email"`
}

func (i *Input) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
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

	result, err := h.service.Run(
		r.Context(),
		service.Input{Email: c.NewEmail(input.Email)},
	)
	if errors.Is(err, ratelimiter.ErrRateLimitExceeded) {
		response.RenderRateLimitExceeded(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	if h.isTestMode && result.Token != "" {
		rw.Header().Set("x-test-password-reset-reference", string(result.Reference))
		rw.Header().Set("x-test-password-reset-token", string(result.Token))
	}
	// Identical acknowledgment whether or not the email maps to an account,
	// so the endpoint cannot be used to enumerate accounts.
	response.Render(rw, struct{}{}, http.StatusOK)
}
