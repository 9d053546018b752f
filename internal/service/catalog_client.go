package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"oompa/backend/internal/config"
	"oompa/backend/internal/model"
	"oompa/backend/internal/network"
)

const (
	resourceList   = "list"
	resourceDetail = "detail"

	maxResponseBytes = 4 << 20
)

// CatalogClient talks to the remote catalog API.
type CatalogClient interface {
	// FetchPage returns the entities of one page. An empty slice ends pagination.
	FetchPage(ctx context.Context, page int) ([]model.Oompa, error)
	FetchDetail(ctx context.Context, id int64) (model.OompaDetail, error)
}

type oompaPayload struct {
	ID         int64  `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Profession string `json:"profession"`
	Image      string `json:"image"`
}

type pagePayload struct {
	Results *[]oompaPayload `json:"results"`
}

type detailPayload struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Profession  string `json:"profession"`
	Gender      string `json:"gender"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Email       string `json:"email"`
	Country     string `json:"country"`
	Age         int    `json:"age"`
	Height      int    `json:"height"`
}

type catalogClient struct {
	baseURL       string
	clientFactory *network.ClientFactory
	limiter       *network.RateLimiter
	timeout       time.Duration
}

func NewCatalogClient(baseURL string, clientFactory *network.ClientFactory, limiter *network.RateLimiter, timeout time.Duration) CatalogClient {
	if clientFactory == nil {
		clientFactory = network.NewClientFactory(nil)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &catalogClient{
		baseURL:       baseURL,
		clientFactory: clientFactory,
		limiter:       limiter,
		timeout:       timeout,
	}
}

func (c *catalogClient) FetchPage(ctx context.Context, page int) ([]model.Oompa, error) {
	url := c.baseURL + "/oompa-loompas?page=" + strconv.Itoa(page)

	var payload pagePayload
	if err := c.getJSON(ctx, resourceList, url, &payload); err != nil {
		return nil, err
	}
	if payload.Results == nil {
		return nil, &FetchError{Resource: resourceList, URL: url, Kind: FetchKindDeserialization, Err: errors.New("missing results")}
	}

	items := make([]model.Oompa, 0, len(*payload.Results))
	for _, p := range *payload.Results {
		if p.ID <= 0 {
			return nil, &FetchError{Resource: resourceList, URL: url, Kind: FetchKindDeserialization, Err: fmt.Errorf("invalid id %d", p.ID)}
		}
		items = append(items, model.Oompa(p))
	}
	return items, nil
}

func (c *catalogClient) FetchDetail(ctx context.Context, id int64) (model.OompaDetail, error) {
	url := c.baseURL + "/oompa-loompas/" + strconv.FormatInt(id, 10)

	var payload detailPayload
	if err := c.getJSON(ctx, resourceDetail, url, &payload); err != nil {
		return model.OompaDetail{}, err
	}

	detail := model.OompaDetail(payload)
	// the detail endpoint does not always echo the id
	detail.ID = id
	return detail, nil
}

func (c *catalogClient) getJSON(ctx context.Context, resource, url string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &FetchError{Resource: resource, URL: url, Kind: FetchKindTransport, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &FetchError{Resource: resource, URL: url, Kind: FetchKindTransport, Err: err}
	}
	req.Header.Set("User-Agent", config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.clientFactory.NewHTTPClient(ctx, c.timeout).Do(req)
	if err != nil {
		return &FetchError{Resource: resource, URL: url, Kind: FetchKindTransport, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return &FetchError{Resource: resource, URL: url, Kind: FetchKindStatus, StatusCode: resp.StatusCode, Err: errors.New(resp.Status)}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return &FetchError{Resource: resource, URL: url, Kind: FetchKindDeserialization, Err: err}
	}
	return nil
}
