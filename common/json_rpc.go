package common

import (
	"encoding/json"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
)

// JsonRpcRequest is the inbound envelope. The id and params elements are kept
// as raw JSON so whatever the caller sent (string ids, numeric ids, nested
// objects) survives re-serialization byte-for-byte.
type JsonRpcRequest struct {
	JSONRPC string            `json:"jsonrpc,omitempty"`
	ID      json.RawMessage   `json:"id,omitempty"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
}

// JsonRpcResponse is used for responses the gateway produces locally.
// Error is a pointer so a response without an error never serializes the key.
type JsonRpcResponse struct {
	JSONRPC string          `json:"jsonrpc,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *JsonRpcError   `json:"error,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
}

type JsonRpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// ParseJsonRpcRequest decodes a POST body into a request envelope. Bodies
// without a method name are not considered JSON-RPC at all.
func ParseJsonRpcRequest(body []byte) (*JsonRpcRequest, error) {
	rpcReq := new(JsonRpcRequest)
	if err := sonic.Unmarshal(body, rpcReq); err != nil {
		return nil, err
	}

	if rpcReq.Method == "" {
		return nil, fmt.Errorf("missing method in request")
	}

	if rpcReq.JSONRPC == "" {
		rpcReq.JSONRPC = "2.0"
	}

	return rpcReq, nil
}

func (r *JsonRpcRequest) MarshalZerologObject(e *zerolog.Event) {
	e.Str("method", r.Method).Int("params", len(r.Params))
	if len(r.ID) > 0 {
		e.RawJSON("id", r.ID)
	}
}

func (r *JsonRpcResponse) MarshalZerologObject(e *zerolog.Event) {
	if len(r.ID) > 0 {
		e.RawJSON("id", r.ID)
	}
	if len(r.Result) > 0 {
		e.RawJSON("result", r.Result)
	}
	if r.Error != nil {
		e.Int("errorCode", r.Error.Code).Str("errorMessage", r.Error.Message)
	}
}
