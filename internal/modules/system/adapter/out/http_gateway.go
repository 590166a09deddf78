package out

import (
	"context"
	"net/http"
	"net/url"

	"lifeos/internal/modules/system/domain"
	systemout "lifeos/internal/modules/system/port/out"
	"lifeos/internal/platform/httpapi"
)

type HTTPGateway struct {
	client     *httpapi.Client
	healthPath string
}

func NewHTTPGateway(client *httpapi.Client, healthPath string) systemout.Gateway {
	if healthPath == "" {
		healthPath = "/health/check"
	}
	return &HTTPGateway{client: client, healthPath: healthPath}
}

func (g *HTTPGateway) Reset(ctx context.Context) (string, error) {
	var out struct {
		Status string `json:"status"`
	}
	if err := g.client.Do(ctx, http.MethodPost, "/system/reset", nil, nil, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

var credentialNames = []string{"openai", "xai", "telegram"}

func (g *HTTPGateway) Health(ctx context.Context, verify bool) (domain.Health, error) {
	var query url.Values
	if verify {
		query = url.Values{"verify": {"true"}}
	}
	raw := map[string]string{}
	if err := g.client.Do(ctx, http.MethodGet, g.healthPath, query, nil, &raw); err != nil {
		return domain.Health{}, err
	}
	h := domain.Health{}
	for _, name := range credentialNames {
		state, ok := raw[name]
		if !ok {
			continue
		}
		h.Credentials = append(h.Credentials, domain.Credential{Name: name, State: state, Verified: raw[name+"_verified"]})
	}
	return h, nil
}
