package proxy

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = zerolog.Nop()

func decodeBody(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestRewriteResponse_StripsNullError(t *testing.T) {
	body := []byte(`{"jsonrpc":"2.0","error":null,"result":"0x1","id":1}`)

	out, modified := RewriteResponse(&testLogger, "eth_blockNumber", body)

	assert.True(t, modified)
	decoded := decodeBody(t, out)
	assert.NotContains(t, decoded, "error")
	assert.Equal(t, "0x1", decoded["result"])
}

func TestRewriteResponse_KeepsRealError(t *testing.T) {
	body := []byte(`{"jsonrpc":"2.0","error":{"code":-32000,"message":"execution reverted"},"id":1}`)

	out, modified := RewriteResponse(&testLogger, "eth_call", body)

	assert.False(t, modified)
	assert.Equal(t, body, out)
}

func TestRewriteResponse_StateRootRepair(t *testing.T) {
	wellFormed := "0x" + strings.Repeat("ab", 32)

	tests := []struct {
		name      string
		result    string
		repaired  bool
		stateRoot string
	}{
		{
			name:      "absent stateRoot is added",
			result:    `{"number":"0x1b4"}`,
			repaired:  true,
			stateRoot: StateRootPlaceholder,
		},
		{
			name:      "empty 0x stateRoot is replaced",
			result:    `{"number":"0x1b4","stateRoot":"0x"}`,
			repaired:  true,
			stateRoot: StateRootPlaceholder,
		},
		{
			name:      "short stateRoot is replaced",
			result:    `{"number":"0x1b4","stateRoot":"0xabcd"}`,
			repaired:  true,
			stateRoot: StateRootPlaceholder,
		},
		{
			name:      "overlong stateRoot is replaced",
			result:    `{"number":"0x1b4","stateRoot":"` + wellFormed + `ff"}`,
			repaired:  true,
			stateRoot: StateRootPlaceholder,
		},
		{
			name:      "non-string stateRoot is replaced",
			result:    `{"number":"0x1b4","stateRoot":42}`,
			repaired:  true,
			stateRoot: StateRootPlaceholder,
		},
		{
			name:      "well-formed stateRoot is untouched",
			result:    `{"number":"0x1b4","stateRoot":"` + wellFormed + `"}`,
			repaired:  false,
			stateRoot: wellFormed,
		},
	}

	for _, method := range []string{"eth_getBlockByNumber", "eth_getBlockByHash"} {
		for _, tt := range tests {
			t.Run(method+"/"+tt.name, func(t *testing.T) {
				body := []byte(`{"jsonrpc":"2.0","result":` + tt.result + `,"id":1}`)

				out, modified := RewriteResponse(&testLogger, method, body)

				assert.Equal(t, tt.repaired, modified)
				decoded := decodeBody(t, out)
				result := decoded["result"].(map[string]interface{})
				assert.Equal(t, tt.stateRoot, result["stateRoot"])
				// the rest of the block passes through untouched
				assert.Equal(t, "0x1b4", result["number"])
			})
		}
	}
}

func TestRewriteResponse_NonBlockMethodLeavesStateRoot(t *testing.T) {
	body := []byte(`{"jsonrpc":"2.0","result":{"stateRoot":"0x"},"id":1}`)

	out, modified := RewriteResponse(&testLogger, "eth_getTransactionReceipt", body)

	assert.False(t, modified)
	assert.Equal(t, body, out)
}

func TestRewriteResponse_NonObjectResultUntouched(t *testing.T) {
	for _, body := range []string{
		`{"jsonrpc":"2.0","result":null,"id":1}`,
		`{"jsonrpc":"2.0","result":"0x1b4","id":1}`,
	} {
		out, modified := RewriteResponse(&testLogger, "eth_getBlockByNumber", []byte(body))
		assert.False(t, modified)
		assert.Equal(t, []byte(body), out)
	}
}

func TestRewriteResponse_InvalidJsonPassthrough(t *testing.T) {
	body := []byte(`<html>502 bad gateway</html>`)

	out, modified := RewriteResponse(&testLogger, "eth_getBlockByNumber", body)

	assert.False(t, modified)
	assert.Equal(t, body, out)
}

func TestRewriteResponse_NonObjectEnvelopeUntouched(t *testing.T) {
	body := []byte(`[{"jsonrpc":"2.0","result":"0x1","id":1}]`)

	out, modified := RewriteResponse(&testLogger, "eth_blockNumber", body)

	assert.False(t, modified)
	assert.Equal(t, body, out)
}

func TestRewriteResponse_BothRulesApplyInOnePass(t *testing.T) {
	body := []byte(`{"jsonrpc":"2.0","error":null,"result":{"number":"0x1b4","stateRoot":"0x"},"id":1}`)

	out, modified := RewriteResponse(&testLogger, "eth_getBlockByNumber", body)

	assert.True(t, modified)
	decoded := decodeBody(t, out)
	assert.NotContains(t, decoded, "error")
	result := decoded["result"].(map[string]interface{})
	assert.Equal(t, StateRootPlaceholder, result["stateRoot"])
}
