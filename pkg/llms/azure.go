package llms

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// CognitiveServicesScope is the audience of Azure OpenAI tokens.
const CognitiveServicesScope = "https://cognitiveservices.azure.com/.default"

// The openai client refuses to start without a token. The real one is set
// per request by BearerTokenDoer.
const azureADTokenPlaceholder = "azure-ad"

// TokenProvider yields a bearer token on demand. Caching and refresh belong
// to the credential behind it.
type TokenProvider func(ctx context.Context) (string, error)

func NewBearerTokenProvider(cred azcore.TokenCredential, scopes ...string) TokenProvider {
	return func(ctx context.Context) (string, error) {
		token, err := cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: scopes})
		if err != nil {
			return "", fmt.Errorf("get azure token: %w", err)
		}
		return token.Token, nil
	}
}

type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// BearerTokenDoer authorizes each request with a fresh token before handing
// it to the next Doer.
type BearerTokenDoer struct {
	tokens TokenProvider
	next   doer
}

func NewBearerTokenDoer(tokens TokenProvider, next doer) *BearerTokenDoer {
	if next == nil {
		next = http.DefaultClient
	}
	return &BearerTokenDoer{
		tokens: tokens,
		next:   next,
	}
}

func (d *BearerTokenDoer) Do(req *http.Request) (*http.Response, error) {
	token, err := d.tokens(req.Context())
	if err != nil {
		return nil, err
	}

	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+token)

	return d.next.Do(req)
}

// azureTokenProvider falls back to the default credential chain
// (environment, workload identity, managed identity, Azure CLI).
func (in *initializer) azureTokenProvider() (TokenProvider, error) {
	cred := in.opts.azureCredential
	if cred == nil {
		defaultCred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("create azure credential: %w", err)
		}
		cred = defaultCred
	}
	return NewBearerTokenProvider(cred, CognitiveServicesScope), nil
}
