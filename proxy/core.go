package proxy

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"

	"github.com/trongate/trongate/common"
	"github.com/trongate/trongate/telemetry"
	"github.com/trongate/trongate/upstream"
)

// ProxyCore is the request/response transformation engine. It holds no state
// across calls and is safe for unbounded concurrent use; the only blocking
// point is the upstream client call.
type ProxyCore struct {
	logger *zerolog.Logger
	client *upstream.HttpJsonRpcClient
}

func NewProxyCore(logger *zerolog.Logger, client *upstream.HttpJsonRpcClient) *ProxyCore {
	return &ProxyCore{
		logger: logger,
		client: client,
	}
}

// HandleJsonRpc runs one inbound POST body through the engine: classify by
// method, answer locally or normalize, forward, then repair the response.
// Bodies that are not JSON-RPC envelopes are proxied byte-for-byte.
func (p *ProxyCore) HandleJsonRpc(ctx context.Context, body []byte, headers http.Header) (int, http.Header, []byte, error) {
	rpcReq, err := common.ParseJsonRpcRequest(body)
	if err != nil {
		p.logger.Warn().Err(err).Msg("not a JSON-RPC request, forwarding as-is")
		return p.forwardAndRewrite(ctx, "unknown", body, headers)
	}

	behavior := MethodBehavior(rpcReq.Method)
	p.logger.Debug().Object("request", rpcReq).Str("behavior", behavior.String()).Msg("parsed JSON-RPC request")
	telemetry.MetricRequestTotal.WithLabelValues(rpcReq.Method, behavior.String()).Inc()

	switch behavior {
	case BehaviorShortCircuit:
		return p.shortCircuit(rpcReq)
	case BehaviorNormalize:
		if o := methodOverrides[rpcReq.Method]; o.normalize != nil && o.normalize(rpcReq) {
			if normalized, err := sonic.Marshal(rpcReq); err == nil {
				body = normalized
			} else {
				p.logger.Warn().Err(err).Str("method", rpcReq.Method).Msg("failed to re-serialize normalized request, forwarding original")
			}
		}
	}

	return p.forwardAndRewrite(ctx, rpcReq.Method, body, headers)
}

// ForwardGet relays a GET (or fallback) request to the destination base URL,
// preserving the caller's query string. No transformation applies.
func (p *ProxyCore) ForwardGet(ctx context.Context, rawQuery string, headers http.Header) (int, http.Header, []byte, error) {
	resp, err := p.client.SendGetRequest(ctx, rawQuery, headers)
	if err != nil {
		telemetry.MetricUpstreamErrorTotal.WithLabelValues("http_get").Inc()
		return 0, nil, nil, common.NewErrUpstreamRequest(err, "http_get")
	}
	return resp.StatusCode, CorrectFraming(resp.Header, len(resp.Body), false), resp.Body, nil
}

// shortCircuit answers eth_getTransactionCount locally with a zero nonce: the
// backend's account model cannot provide one in the shape tooling expects.
// The upstream is never contacted on this path.
func (p *ProxyCore) shortCircuit(rpcReq *common.JsonRpcRequest) (int, http.Header, []byte, error) {
	resp := &common.JsonRpcResponse{
		JSONRPC: "2.0",
		Result:  json.RawMessage(`"0x0"`),
		ID:      rpcReq.ID,
	}

	body, err := sonic.Marshal(resp)
	if err != nil {
		return 0, nil, nil, err
	}

	p.logger.Debug().Str("method", rpcReq.Method).Msg("short-circuited request locally")

	hdr := make(http.Header)
	hdr.Set("Content-Type", "application/json")
	return http.StatusOK, hdr, body, nil
}

func (p *ProxyCore) forwardAndRewrite(ctx context.Context, method string, body []byte, headers http.Header) (int, http.Header, []byte, error) {
	resp, err := p.client.SendRequest(ctx, method, body, headers)
	if err != nil {
		telemetry.MetricUpstreamErrorTotal.WithLabelValues(method).Inc()
		return 0, nil, nil, common.NewErrUpstreamRequest(err, method)
	}

	newBody, modified := RewriteResponse(p.logger, method, resp.Body)
	if modified {
		telemetry.MetricResponseRewriteTotal.WithLabelValues(method).Inc()
	}

	return resp.StatusCode, CorrectFraming(resp.Header, len(newBody), modified), newBody, nil
}
