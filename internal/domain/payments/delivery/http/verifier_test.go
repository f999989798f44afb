package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/MarcJHerz/hoodfy-payments-service/config"
	payerrors "github.com/MarcJHerz/hoodfy-payments-service/internal/domain/payments/errors"
)

const (
	testDefaultSecret = "whsec_default"
	testTenantSecret  = "whsec_tenant_a"
)

func newTestVerifier(t *testing.T) *WebhookVerifier {
	t.Helper()
	verifier, err := NewWebhookVerifier(&config.StripeConfig{
		WebhookSecret: testDefaultSecret,
		TenantWebhookSecrets: map[string]string{
			"tenant-a.example.com": testTenantSecret,
		},
	})
	if err != nil {
		t.Fatalf("Failed to create verifier: %v", err)
	}
	return verifier
}

// signPayload builds a Stripe-Signature header for the body with the secret
func signPayload(body []byte, secret string) string {
	timestamp := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", timestamp, body)
	return fmt.Sprintf("t=%d,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

func TestNewWebhookVerifier(t *testing.T) {
	t.Run("RequiresDefaultSecret", func(t *testing.T) {
		_, err := NewWebhookVerifier(&config.StripeConfig{})
		if err == nil {
			t.Error("Expected error for empty default secret")
		}
	})
}

func TestSecretForHost(t *testing.T) {
	verifier := newTestVerifier(t)

	t.Run("KnownTenant", func(t *testing.T) {
		if got := verifier.SecretForHost("tenant-a.example.com"); got != testTenantSecret {
			t.Errorf("Expected tenant secret, got %s", got)
		}
	})

	t.Run("HostMatchIsCaseInsensitive", func(t *testing.T) {
		if got := verifier.SecretForHost(" Tenant-A.Example.Com "); got != testTenantSecret {
			t.Errorf("Expected tenant secret, got %s", got)
		}
	})

	t.Run("UnknownHostFallsBack", func(t *testing.T) {
		if got := verifier.SecretForHost("other.example.com"); got != testDefaultSecret {
			t.Errorf("Expected default secret, got %s", got)
		}
	})
}

func TestVerify(t *testing.T) {
	verifier := newTestVerifier(t)
	body := []byte(`{"id":"evt_1","type":"invoice.payment_succeeded","data":{"object":{}}}`)

	t.Run("ValidSignature", func(t *testing.T) {
		event, err := verifier.Verify(body, signPayload(body, testDefaultSecret), "other.example.com")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if event.ID != "evt_1" {
			t.Errorf("Expected event evt_1, got %s", event.ID)
		}
	})

	t.Run("TenantSecretSelectedByHost", func(t *testing.T) {
		_, err := verifier.Verify(body, signPayload(body, testTenantSecret), "tenant-a.example.com")
		if err != nil {
			t.Fatalf("Expected tenant signature to verify, got %v", err)
		}
	})

	t.Run("WrongSecretFails", func(t *testing.T) {
		_, err := verifier.Verify(body, signPayload(body, testTenantSecret), "other.example.com")
		if !errors.Is(err, payerrors.ErrVerificationFailed) {
			t.Errorf("Expected ErrVerificationFailed, got %v", err)
		}
	})

	t.Run("MissingSignatureHeader", func(t *testing.T) {
		_, err := verifier.Verify(body, "", "other.example.com")
		if !errors.Is(err, payerrors.ErrVerificationFailed) {
			t.Errorf("Expected ErrVerificationFailed, got %v", err)
		}
	})

	t.Run("TamperedBodyFails", func(t *testing.T) {
		signature := signPayload(body, testDefaultSecret)
		tampered := []byte(`{"id":"evt_2","type":"invoice.payment_succeeded","data":{"object":{}}}`)

		_, err := verifier.Verify(tampered, signature, "other.example.com")
		if !errors.Is(err, payerrors.ErrVerificationFailed) {
			t.Errorf("Expected ErrVerificationFailed, got %v", err)
		}
	})
}
