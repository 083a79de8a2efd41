package upstream

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/trongate/trongate/util"
)

// HttpJsonRpcClient is the forwarding collaborator: it performs the actual
// network call to the TRON backend and reports status, body and headers back
// without interpreting them. Timeout policy lives here, not in the engine.
type HttpJsonRpcClient struct {
	Url *url.URL

	logger     *zerolog.Logger
	httpClient *http.Client
}

// UpstreamResponse carries the raw upstream reply.
type UpstreamResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func NewHttpJsonRpcClient(logger *zerolog.Logger, parsedUrl *url.URL) *HttpJsonRpcClient {
	var httpClient *http.Client

	if util.IsTest() {
		// Plain client so gock can intercept the default transport.
		httpClient = &http.Client{}
	} else {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
			},
		}
	}

	return &HttpJsonRpcClient{
		Url:        parsedUrl,
		logger:     logger,
		httpClient: httpClient,
	}
}

// SendRequest POSTs the prepared body to the backend. The inbound
// Content-Length is not copied since the body may have been rewritten; the
// transport recomputes framing from the actual payload.
func (c *HttpJsonRpcClient) SendRequest(ctx context.Context, method string, body []byte, headers http.Header) (*UpstreamResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Url.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	util.CopyHeaders(req.Header, headers, "Content-Length", "Host", "Connection")

	c.logger.Debug().Str("method", method).Int("bodyLength", len(body)).Msgf("forwarding POST request to %s", c.Url)

	return c.do(req)
}

// SendGetRequest relays a GET request to the destination base URL with the
// caller's query string appended.
func (c *HttpJsonRpcClient) SendGetRequest(ctx context.Context, rawQuery string, headers http.Header) (*UpstreamResponse, error) {
	target := c.Url.String()
	if rawQuery != "" {
		target = target + "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	util.CopyHeaders(req.Header, headers, "Content-Length", "Host", "Connection")

	c.logger.Debug().Msgf("forwarding GET request to %s", target)

	return c.do(req)
}

func (c *HttpJsonRpcClient) do(req *http.Request) (*UpstreamResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().Int("status", resp.StatusCode).Int("bodyLength", len(respBody)).Msg("received upstream response")

	return &UpstreamResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}
