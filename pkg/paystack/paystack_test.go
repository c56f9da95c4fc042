package paystack

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestValidateWebhookSignature(t *testing.T) {
	secret := "sk_test_abc"
	body := []byte(`{"event":"charge.success","data":{"reference":"ref1"}}`)

	if !ValidateWebhookSignature(secret, body, sign(secret, body)) {
		t.Error("valid signature rejected")
	}
	if ValidateWebhookSignature(secret, body, sign("other-secret", body)) {
		t.Error("signature with wrong key accepted")
	}
	if ValidateWebhookSignature(secret, []byte(`tampered`), sign(secret, body)) {
		t.Error("signature over different body accepted")
	}
	if ValidateWebhookSignature(secret, body, "") {
		t.Error("empty signature accepted")
	}
	if ValidateWebhookSignature("", body, sign("", body)) {
		t.Error("empty secret accepted")
	}
}

func TestInitializeTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/initialize" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_abc" {
			t.Errorf("auth header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":true,"message":"Authorization URL created","data":{"authorization_url":"https://checkout.paystack.com/x1","access_code":"x1","reference":"ref1"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test_abc")
	out, err := c.InitializeTransaction(context.Background(), InitializeRequest{
		Email:     "driver@example.com",
		AmountNgn: 1_000,
		Reference: "ref1",
	})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if out.AuthorizationURL != "https://checkout.paystack.com/x1" || out.Reference != "ref1" {
		t.Errorf("response = %+v", out)
	}
}

func TestInitializeTransactionAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":false,"message":"Invalid key"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad-key")
	if _, err := c.InitializeTransaction(context.Background(), InitializeRequest{Email: "a@b.c", AmountNgn: 1}); err == nil {
		t.Error("expected error from 401 response")
	}
}

func TestVerifyTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/verify/ref1" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"status":true,"message":"Verification successful","data":{"status":"success","reference":"ref1","amount":100000,"channel":"card","customer":{"email":"driver@example.com"}}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sk_test_abc")
	out, err := c.VerifyTransaction(context.Background(), "ref1")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if out.Status != "success" || out.AmountNgn() != 1_000 || out.Channel != "card" {
		t.Errorf("response = %+v", out)
	}
}
