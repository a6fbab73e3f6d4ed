package ebay

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront.GO/core/cache"
	"storefront.GO/marketplace"
)

const (
	defaultBaseURL = "https://api.ebay.com"
	tokenCacheKey  = "ebay:access_token"
)

// Client talks to the eBay Commerce APIs using the OAuth2 client-credentials
// flow. Access tokens are cached until shortly before expiry.
type Client struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client

	tokens *cache.Cache
}

func NewClient(clientID, clientSecret string) *Client {
	return &Client{
		BaseURL:      defaultBaseURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		HTTPClient:   &http.Client{Timeout: 15 * time.Second},
		tokens:       cache.New(),
	}
}

func (c *Client) Name() string { return "ebay" }

// accessToken returns a cached token or mints a new one via
// /identity/v1/oauth2/token with basic auth over client credentials.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	if v, ok := c.tokens.Get(tokenCacheKey); ok {
		return v.(string), nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", "https://api.ebay.com/oauth/api_scope")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/identity/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.ClientID + ":" + c.ClientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ebay: token request failed: %s", resp.Status)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	// Refresh a minute early so in-flight requests never carry a token that
	// expires mid-call.
	ttl := time.Duration(body.ExpiresIn-60) * time.Second
	if ttl > 0 {
		c.tokens.Set(tokenCacheKey, body.AccessToken, ttl)
	}
	return body.AccessToken, nil
}

// FetchCategoryTree pulls the default category tree's top two levels from
// the Taxonomy API.
func (c *Client) FetchCategoryTree(ctx context.Context) ([]marketplace.RemoteCategory, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/commerce/taxonomy/v1/category_tree/0", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ebay: category tree request failed: %s", resp.Status)
	}

	var body struct {
		RootCategoryNode struct {
			ChildCategoryTreeNodes []ebayNode `json:"childCategoryTreeNodes"`
		} `json:"rootCategoryNode"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	out := make([]marketplace.RemoteCategory, 0, len(body.RootCategoryNode.ChildCategoryTreeNodes))
	for _, n := range body.RootCategoryNode.ChildCategoryTreeNodes {
		out = append(out, n.toRemote())
	}
	return out, nil
}

type ebayNode struct {
	Category struct {
		CategoryName string `json:"categoryName"`
	} `json:"category"`
	ChildCategoryTreeNodes []ebayNode `json:"childCategoryTreeNodes"`
}

func (n ebayNode) toRemote() marketplace.RemoteCategory {
	rc := marketplace.RemoteCategory{Name: n.Category.CategoryName}
	for _, child := range n.ChildCategoryTreeNodes {
		rc.Children = append(rc.Children, marketplace.RemoteCategory{Name: child.Category.CategoryName})
	}
	return rc
}
