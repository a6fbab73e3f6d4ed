package walmart

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"storefront.GO/marketplace"
)

const defaultBaseURL = "https://marketplace.walmartapis.com"

// Client talks to the Walmart Marketplace API. Every request carries the
// WM_SVC.NAME, WM_QOS.CORRELATION_ID and basic-auth headers Walmart requires.
type Client struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	ServiceName  string
	HTTPClient   *http.Client
}

func NewClient(clientID, clientSecret string) *Client {
	return &Client{
		BaseURL:      defaultBaseURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		ServiceName:  "storefront.GO",
		HTTPClient:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Name() string { return "walmart" }

// newRequest builds a signed request. Walmart's affiliation headers must be
// present on every call or the API returns 401 without detail.
func (c *Client) newRequest(ctx context.Context, method, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	basic := base64.StdEncoding.EncodeToString([]byte(c.ClientID + ":" + c.ClientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("WM_SVC.NAME", c.ServiceName)
	req.Header.Set("WM_QOS.CORRELATION_ID", uuid.NewString())
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// FetchCategoryTree pulls the item taxonomy (departments and their
// categories).
func (c *Client) FetchCategoryTree(ctx context.Context) ([]marketplace.RemoteCategory, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/v3/items/taxonomy")
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("walmart: taxonomy request failed: %s", resp.Status)
	}

	var body struct {
		Payload []struct {
			Category    string `json:"category"`
			SubCategory []struct {
				SubCategoryName string `json:"subCategoryName"`
			} `json:"subCategory"`
		} `json:"payload"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	out := make([]marketplace.RemoteCategory, 0, len(body.Payload))
	for _, dep := range body.Payload {
		rc := marketplace.RemoteCategory{Name: dep.Category}
		for _, sub := range dep.SubCategory {
			rc.Children = append(rc.Children, marketplace.RemoteCategory{Name: sub.SubCategoryName})
		}
		out = append(out, rc)
	}
	return out, nil
}
