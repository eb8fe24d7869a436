package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"skitourspots/internal/model"
)

func fakeSiteverify(t *testing.T, success bool, gotToken *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.FormValue("secret"); got != "test-secret" {
			t.Errorf("secret = %q, want %q", got, "test-secret")
		}
		if gotToken != nil {
			*gotToken = r.FormValue("response")
		}
		json.NewEncoder(w).Encode(siteverifyResponse{Success: success})
	}))
}

func TestHCaptchaVerifier_Verify(t *testing.T) {
	t.Run("accepted token", func(t *testing.T) {
		var gotToken string
		srv := fakeSiteverify(t, true, &gotToken)
		defer srv.Close()

		v := NewHCaptchaVerifierWithEndpoint("test-secret", srv.URL)
		if err := v.Verify(context.Background(), "valid-token"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotToken != "valid-token" {
			t.Errorf("token sent = %q, want %q", gotToken, "valid-token")
		}
	})

	t.Run("rejected token", func(t *testing.T) {
		srv := fakeSiteverify(t, false, nil)
		defer srv.Close()

		v := NewHCaptchaVerifierWithEndpoint("test-secret", srv.URL)
		if err := v.Verify(context.Background(), "bad-token"); !errors.Is(err, model.ErrCaptchaInvalid) {
			t.Errorf("error = %v, want %v", err, model.ErrCaptchaInvalid)
		}
	})

	t.Run("empty token skips the request", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("siteverify should not be called for an empty token")
		}))
		defer srv.Close()

		v := NewHCaptchaVerifierWithEndpoint("test-secret", srv.URL)
		if err := v.Verify(context.Background(), ""); !errors.Is(err, model.ErrCaptchaInvalid) {
			t.Errorf("error = %v, want %v", err, model.ErrCaptchaInvalid)
		}
	})

	t.Run("upstream failure is not a captcha rejection", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		v := NewHCaptchaVerifierWithEndpoint("test-secret", srv.URL)
		err := v.Verify(context.Background(), "some-token")
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if errors.Is(err, model.ErrCaptchaInvalid) {
			t.Error("a siteverify outage should not read as an invalid captcha")
		}
	})
}

func TestStaticVerifier(t *testing.T) {
	v := StaticVerifier{}
	if err := v.Verify(context.Background(), "anything"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := v.Verify(context.Background(), ""); !errors.Is(err, model.ErrCaptchaInvalid) {
		t.Errorf("error = %v, want %v", err, model.ErrCaptchaInvalid)
	}
}
