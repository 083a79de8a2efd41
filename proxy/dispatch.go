package proxy

import "github.com/trongate/trongate/common"

// Behavior selects how the gateway treats a given JSON-RPC method.
type Behavior int

const (
	// BehaviorPassthrough forwards request and response untouched.
	BehaviorPassthrough Behavior = iota
	// BehaviorShortCircuit answers locally without contacting the upstream.
	BehaviorShortCircuit
	// BehaviorNormalize rewrites the params before forwarding.
	BehaviorNormalize
	// BehaviorRewriteResponse forwards as-is and post-processes the response.
	BehaviorRewriteResponse
)

func (b Behavior) String() string {
	switch b {
	case BehaviorShortCircuit:
		return "short_circuit"
	case BehaviorNormalize:
		return "normalize"
	case BehaviorRewriteResponse:
		return "rewrite_response"
	default:
		return "passthrough"
	}
}

type methodOverride struct {
	behavior  Behavior
	normalize func(*common.JsonRpcRequest) bool
}

// methodOverrides is the dispatch table for methods the TRON backend cannot
// serve in their Ethereum shape. Matching is exact and case-sensitive;
// everything absent from the table is passthrough.
var methodOverrides = map[string]methodOverride{
	"eth_getTransactionCount": {behavior: BehaviorShortCircuit},
	"eth_call":                {behavior: BehaviorNormalize, normalize: normalizeEthCall},
	"eth_estimateGas":         {behavior: BehaviorNormalize, normalize: normalizeEthEstimateGas},
	"eth_getBlockByNumber":    {behavior: BehaviorRewriteResponse},
	"eth_getBlockByHash":      {behavior: BehaviorRewriteResponse},
}

// MethodBehavior returns the behavior for a method name.
func MethodBehavior(method string) Behavior {
	if o, ok := methodOverrides[method]; ok {
		return o.behavior
	}
	return BehaviorPassthrough
}
