package proxy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMethodBehavior(t *testing.T) {
	tests := []struct {
		method   string
		behavior Behavior
	}{
		{"eth_getTransactionCount", BehaviorShortCircuit},
		{"eth_call", BehaviorNormalize},
		{"eth_estimateGas", BehaviorNormalize},
		{"eth_getBlockByNumber", BehaviorRewriteResponse},
		{"eth_getBlockByHash", BehaviorRewriteResponse},
		{"eth_blockNumber", BehaviorPassthrough},
		{"web3_clientVersion", BehaviorPassthrough},
		{"", BehaviorPassthrough},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			assert.Equal(t, tt.behavior, MethodBehavior(tt.method))
		})
	}
}

func TestMethodBehavior_IsCaseSensitive(t *testing.T) {
	assert.Equal(t, BehaviorPassthrough, MethodBehavior("ETH_CALL"))
	assert.Equal(t, BehaviorPassthrough, MethodBehavior("eth_Call"))
}

func TestBehaviorString(t *testing.T) {
	assert.Equal(t, "short_circuit", BehaviorShortCircuit.String())
	assert.Equal(t, "normalize", BehaviorNormalize.String())
	assert.Equal(t, "rewrite_response", BehaviorRewriteResponse.String())
	assert.Equal(t, "passthrough", BehaviorPassthrough.String())
}
