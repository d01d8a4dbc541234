package email

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	c "oroshine/internal/core/domain/common"
	"oroshine/internal/core/domain/notification"
	"oroshine/internal/core/domain/outbox"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type SESSender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender                 string
	resetRequestedTemplate string
	resetSucceededTemplate string
	passwordResetBaseURL   url.URL
}

func NewSESSender(
	awsConfig aws.Config,
	sender string,
	resetRequestedTemplate string,
	resetSucceededTemplate string,
	passwordResetBaseURL url.URL,
) *SESSender {
	return &SESSender{
		ses:                    ses.NewFromConfig(awsConfig),
		sender:                 sender,
		resetRequestedTemplate: resetRequestedTemplate,
		resetSucceededTemplate: resetSucceededTemplate,
		passwordResetBaseURL:   passwordResetBaseURL,
	}
}

func (s *SESSender) Send(
	ctx context.Context,
	recipient c.Email,
	kind outbox.JobKind,
	params map[string]string,
) error {
	var template string
	var templateParams interface{}

	switch kind {
	case outbox.KindResetRequested:
		template = s.resetRequestedTemplate
		resetURL := s.passwordResetBaseURL.JoinPath(params["reference"], params["token"])
		templateParams = resetRequestedTemplateParams{PasswordResetUrl: resetURL.String()}
	case outbox.KindResetSucceeded:
		template = s.resetSucceededTemplate
		templateParams = resetSucceededTemplateParams{}
	default:
		return notification.NewPermanentError(fmt.Errorf("unknown notification kind %q", kind))
	}

	templateParamsBytes, err := json.Marshal(templateParams)
	if err != nil {
		return notification.NewPermanentError(err)
	}
	templateData := string(templateParamsBytes)

	email := string(recipient)
	_, err = s.ses.SendTemplatedEmail(
		ctx,
		&ses.SendTemplatedEmailInput{
			Source: &s.sender,
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{email},
			},
			Template:     &template,
			TemplateData: &templateData,
		},
	)
	if err != nil {
		return classify(err)
	}
	return nil
}

// classify maps SES failures onto the retry taxonomy: hard rejections and
// sender misconfiguration will not succeed on retry, everything else
// (network errors, throttling, 5xx) may.
func classify(err error) error {
	var rejected *types.MessageRejected
	var notVerified *types.MailFromDomainNotVerifiedException
	var paused *types.AccountSendingPausedException
	var noTemplate *types.TemplateDoesNotExistException

	if errors.As(err, &rejected) ||
		errors.As(err, &notVerified) ||
		errors.As(err, &paused) ||
		errors.As(err, &noTemplate) {
		return notification.NewPermanentError(err)
	}
	return notification.NewTransientError(err)
}

type resetRequestedTemplateParams struct {
	PasswordResetUrl string `json:"passwordResetUrl"`
}

type resetSucceededTemplateParams struct{}
