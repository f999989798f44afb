package http

import (
	"fmt"
	"strings"

	"github.com/MarcJHerz/hoodfy-payments-service/config"
	payerrors "github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/errors"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// WebhookVerifier validates inbound event authenticity. The signing secret
// is selected by the request host from a routing table resolved once at
// startup; unknown hosts fall back to the default secret.
//
// Verification is pure: no state is read or written, and a failure
// short-circuits before any handler runs.
type WebhookVerifier struct {
	tenantSecrets map[string]string
	defaultSecret string
}

func NewWebhookVerifier(cfg *config.StripeConfig) (*WebhookVerifier, error) {
	if cfg.WebhookSecret == "" {
		return nil, fmt.Errorf("default webhook secret is required")
	}

	secrets := make(map[string]string, len(cfg.TenantWebhookSecrets))
	for host, secret := range cfg.TenantWebhookSecrets {
		secrets[strings.ToLower(host)] = secret
	}

	return &WebhookVerifier{
		tenantSecrets: secrets,
		defaultSecret: cfg.WebhookSecret,
	}, nil
}

// SecretForHost resolves the signing secret for a tenant host
func (v *WebhookVerifier) SecretForHost(host string) string {
	if secret, ok := v.tenantSecrets[strings.ToLower(strings.TrimSpace(host))]; ok {
		return secret
	}
	return v.defaultSecret
}

// Verify checks the signature of a raw webhook body and returns the decoded
// event. Any failure maps to ErrVerificationFailed; the caller must answer
// with a client error, never a disguised success.
func (v *WebhookVerifier) Verify(body []byte, signatureHeader, host string) (stripe.Event, error) {
	if strings.TrimSpace(signatureHeader) == "" {
		return stripe.Event{}, payerrors.ErrVerificationFailed
	}

	event, err := webhook.ConstructEventWithOptions(body, signatureHeader, v.SecretForHost(host), webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return stripe.Event{}, payerrors.ErrVerificationFailed
	}

	return event, nil
}
