package proxy

import (
	"encoding/json"

	"github.com/bytedance/sonic"
	"github.com/trongate/trongate/common"
)

// Per-method param normalizers. Each returns whether the request was actually
// changed; a shape mismatch (missing or non-object first param) is not an
// error, the caller just forwards the original bytes.

func normalizeEthCall(r *common.JsonRpcRequest) bool {
	obj, ok := callObject(r)
	if !ok {
		return false
	}

	collapseInputData(obj)
	delete(obj, "chainId")

	return setCallObject(r, obj)
}

// normalizeEthEstimateGas applies the full TRON shape: calldata collapse,
// fields the backend rejects stripped, from/to converted to the 0x41 form and
// the params list truncated to the lone transaction object (tooling appends a
// block tag the backend treats as an arity mismatch). An explicit "to": null
// is kept as-is since it signals contract creation.
func normalizeEthEstimateGas(r *common.JsonRpcRequest) bool {
	obj, ok := callObject(r)
	if !ok {
		return false
	}

	collapseInputData(obj)
	delete(obj, "chainId")
	delete(obj, "gas")
	delete(obj, "gasPrice")

	if from, ok := obj["from"].(string); ok {
		obj["from"] = ToTronHexAddress(from)
	}
	if to, ok := obj["to"]; ok && to != nil {
		if s, ok := to.(string); ok {
			obj["to"] = ToTronHexAddress(s)
		}
	}

	r.Params = r.Params[:1]

	return setCallObject(r, obj)
}

// collapseInputData keeps "data" as the canonical calldata key: when both are
// present "input" loses, when only "input" is present it is renamed.
func collapseInputData(obj map[string]interface{}) {
	if in, ok := obj["input"]; ok {
		if _, hasData := obj["data"]; !hasData {
			obj["data"] = in
		}
		delete(obj, "input")
	}
}

func callObject(r *common.JsonRpcRequest) (map[string]interface{}, bool) {
	if len(r.Params) == 0 {
		return nil, false
	}
	var obj map[string]interface{}
	if err := sonic.Unmarshal(r.Params[0], &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

func setCallObject(r *common.JsonRpcRequest, obj map[string]interface{}) bool {
	raw, err := sonic.Marshal(obj)
	if err != nil {
		return false
	}
	r.Params[0] = json.RawMessage(raw)
	return true
}
