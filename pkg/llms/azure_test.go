package llms

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

type failingCredential struct{ err error }

func (c failingCredential) GetToken(context.Context, policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{}, c.err
}

func TestBearerTokenDoer(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cred := &fakeCredential{token: "fresh"}
	doer := NewBearerTokenDoer(NewBearerTokenProvider(cred, CognitiveServicesScope), nil)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer "+azureADTokenPlaceholder)

	resp, err := doer.Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()

	if gotAuth != "Bearer fresh" {
		t.Errorf("expected fresh bearer token, got %q", gotAuth)
	}
	if req.Header.Get("Authorization") != "Bearer "+azureADTokenPlaceholder {
		t.Error("expected the caller's request to stay untouched")
	}
}

func TestBearerTokenDoer_TokenError(t *testing.T) {
	boom := errors.New("no identity available")
	doer := NewBearerTokenDoer(NewBearerTokenProvider(failingCredential{err: boom}, CognitiveServicesScope), nil)

	req, err := http.NewRequest(http.MethodGet, "http://127.0.0.1:0", nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := doer.Do(req); !errors.Is(err, boom) {
		t.Fatalf("expected credential error, got %v", err)
	}
}
