package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func signWebhook(secret, svixID, svixTimestamp string, body []byte) string {
	signedContent := fmt.Sprintf("%s.%s.%s", svixID, svixTimestamp, string(body))
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signedContent))
	return "v1," + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignatureValid(t *testing.T) {
	os.Setenv("CLERK_WEBHOOK_SECRET", "whsec_test")
	defer os.Unsetenv("CLERK_WEBHOOK_SECRET")

	body := []byte(`{"type":"user.created","data":{"id":"user_123"}}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/clerk", nil)
	req.Header.Set("svix-id", "msg_abc")
	req.Header.Set("svix-timestamp", "1700000000")
	req.Header.Set("svix-signature", signWebhook("whsec_test", "msg_abc", "1700000000", body))

	if !verifyWebhookSignature(req, body) {
		t.Error("Expected valid signature to verify")
	}
}

func TestVerifyWebhookSignatureTampered(t *testing.T) {
	os.Setenv("CLERK_WEBHOOK_SECRET", "whsec_test")
	defer os.Unsetenv("CLERK_WEBHOOK_SECRET")

	body := []byte(`{"type":"user.created","data":{"id":"user_123"}}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/clerk", nil)
	req.Header.Set("svix-id", "msg_abc")
	req.Header.Set("svix-timestamp", "1700000000")
	req.Header.Set("svix-signature", signWebhook("whsec_test", "msg_abc", "1700000000", body))

	tampered := []byte(`{"type":"user.deleted","data":{"id":"user_123"}}`)
	if verifyWebhookSignature(req, tampered) {
		t.Error("Expected tampered body to fail verification")
	}
}

func TestVerifyWebhookSignatureWrongSecret(t *testing.T) {
	os.Setenv("CLERK_WEBHOOK_SECRET", "whsec_test")
	defer os.Unsetenv("CLERK_WEBHOOK_SECRET")

	body := []byte(`{"type":"user.created"}`)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/clerk", nil)
	req.Header.Set("svix-id", "msg_abc")
	req.Header.Set("svix-timestamp", "1700000000")
	req.Header.Set("svix-signature", signWebhook("whsec_other", "msg_abc", "1700000000", body))

	if verifyWebhookSignature(req, body) {
		t.Error("Expected signature from a different secret to fail")
	}
}

func TestVerifyWebhookSignatureMissingHeaders(t *testing.T) {
	os.Setenv("CLERK_WEBHOOK_SECRET", "whsec_test")
	defer os.Unsetenv("CLERK_WEBHOOK_SECRET")

	req := httptest.NewRequest(http.MethodPost, "/webhooks/clerk", nil)
	if verifyWebhookSignature(req, []byte(`{}`)) {
		t.Error("Expected missing svix headers to fail verification")
	}
}

func TestVerifyWebhookSignatureSkippedWithoutSecret(t *testing.T) {
	os.Unsetenv("CLERK_WEBHOOK_SECRET")

	req := httptest.NewRequest(http.MethodPost, "/webhooks/clerk", nil)
	if !verifyWebhookSignature(req, []byte(`{}`)) {
		t.Error("Expected verification to be skipped when no secret is configured")
	}
}
