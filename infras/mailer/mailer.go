package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"sparkle/config"
	"sparkle/infras/otel"
	"sparkle/shared/constant"
)

const (
	otelAttrTo      = "to"
	otelAttrSubject = "subject"
)

type Mailer interface {
	Send(ctx context.Context, to []string, subject, html string) (messageID string, err error)
}

type mailerImpl struct {
	client *resend.Client
	from   string
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Mailer {
	return &mailerImpl{
		client: resend.NewClient(cfg.External.Resend.APIKey),
		from:   cfg.External.Resend.From,
		otel:   otel,
	}
}

func (m *mailerImpl) Send(ctx context.Context, to []string, subject, html string) (messageID string, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelMailerScopeName, constant.OtelMailerScopeName+".Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		otelAttrTo:      to,
		otelAttrSubject: subject,
	})

	sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      to,
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to send email: %w", err)
	}

	return sent.Id, nil
}
