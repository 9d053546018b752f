package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Noooste/azuretls-client"

	"oompa/backend/internal/config"
	"oompa/backend/internal/logger"
	"oompa/backend/internal/network"
)

const (
	imageTimeout  = 15 * time.Second
	maxImageBytes = 10 << 20
)

var errImageTooLarge = errors.New("image exceeds size limit")

// ImageResult is a fetched entity image.
type ImageResult struct {
	Data        []byte
	ContentType string
}

// ImageService proxies entity images. The image URL always comes from the
// cached entity, never from the caller.
type ImageService interface {
	Fetch(ctx context.Context, id int64) (*ImageResult, error)
}

type imageService struct {
	details       DetailService
	list          ListService
	clientFactory *network.ClientFactory
	limiter       *network.RateLimiter
}

func NewImageService(details DetailService, list ListService, clientFactory *network.ClientFactory, limiter *network.RateLimiter) ImageService {
	if clientFactory == nil {
		clientFactory = network.NewClientFactory(nil)
	}
	return &imageService{
		details:       details,
		list:          list,
		clientFactory: clientFactory,
		limiter:       limiter,
	}
}

func (s *imageService) Fetch(ctx context.Context, id int64) (*ImageResult, error) {
	imageURL, err := s.resolve(id)
	if err != nil {
		return nil, err
	}

	parsedURL, err := url.Parse(imageURL)
	if err != nil || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") || parsedURL.Host == "" {
		return nil, fmt.Errorf("%w: image url for %d", ErrInvalid, id)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{Resource: "image", URL: imageURL, Kind: FetchKindTransport, Err: err}
	}

	session := s.clientFactory.NewAzureSession(ctx, imageTimeout)
	defer session.Close()

	headers := azuretls.OrderedHeaders{
		{"accept", "image/avif,image/webp,image/apng,image/svg+xml,image/*,*/*;q=0.8"},
		{"sec-ch-ua", config.ChromeSecChUa},
		{"sec-ch-ua-mobile", "?0"},
		{"sec-ch-ua-platform", `"Windows"`},
		{"sec-fetch-dest", "image"},
		{"sec-fetch-mode", "no-cors"},
		{"sec-fetch-site", "cross-site"},
		{"user-agent", config.ChromeUserAgent},
	}

	resp, err := session.Do(&azuretls.Request{
		Method:         http.MethodGet,
		Url:            imageURL,
		OrderedHeaders: headers,
		IgnoreBody:     true,
	})
	if err != nil {
		logger.Warn("image fetch failed", "module", "service", "action", "fetch", "resource", "image", "result", "failed", "host", parsedURL.Host, "error", err)
		return nil, &FetchError{Resource: "image", URL: imageURL, Kind: FetchKindTransport, Err: err}
	}
	defer resp.CloseBody()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("image http error", "module", "service", "action", "fetch", "resource", "image", "result", "failed", "host", parsedURL.Host, "status_code", resp.StatusCode)
		return nil, &FetchError{Resource: "image", URL: imageURL, Kind: FetchKindStatus, StatusCode: resp.StatusCode, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	data, err := readLimited(resp.RawBody, maxImageBytes)
	if err != nil {
		logger.Warn("image read failed", "module", "service", "action", "fetch", "resource", "image", "result", "failed", "host", parsedURL.Host, "error", err)
		return nil, &FetchError{Resource: "image", URL: imageURL, Kind: FetchKindTransport, Err: err}
	}

	return &ImageResult{
		Data:        data,
		ContentType: contentType,
	}, nil
}

// resolve finds the image reference in the detail cache first, then in the list.
func (s *imageService) resolve(id int64) (string, error) {
	if s.details != nil {
		if entry, ok := s.details.Lookup(id); ok && entry.Value.Image != "" {
			return entry.Value.Image, nil
		}
	}
	if s.list != nil {
		for _, item := range s.list.State().Items {
			if item.ID == id && item.Image != "" {
				return item.Image, nil
			}
		}
	}
	return "", fmt.Errorf("%w: image for %d", ErrNotFound, id)
}

// readLimited reads r fully, failing once more than limit bytes arrive.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errImageTooLarge
	}
	return data, nil
}
