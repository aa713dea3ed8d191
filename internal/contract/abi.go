package contract

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/sha3"
)

// ABIEntry is one ABI entry (function, event, etc.).
type ABIEntry struct {
	Name            string     `json:"name"`
	Type            string     `json:"type"`
	Inputs          []ABIParam `json:"inputs"`
	Outputs         []ABIParam `json:"outputs"`
	StateMutability string     `json:"stateMutability"`
}

// ABIParam is a parameter in an ABI entry.
type ABIParam struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// IsReadFunction returns true if the function is read-only (view/pure).
func (e ABIEntry) IsReadFunction() bool {
	return e.Type == "function" &&
		(e.StateMutability == "view" || e.StateMutability == "pure")
}

// IsWriteFunction returns true if the function modifies state.
func (e ABIEntry) IsWriteFunction() bool {
	return e.Type == "function" &&
		(e.StateMutability == "nonpayable" || e.StateMutability == "payable")
}

// parseABI parses a raw ABI JSON array.
func parseABI(data []byte) ([]ABIEntry, error) {
	var abi []ABIEntry
	if err := json.Unmarshal(data, &abi); err != nil {
		return nil, fmt.Errorf("parsing ABI: %w", err)
	}
	return abi, nil
}

// functionSelector computes the 4-byte selector for a function.
func functionSelector(fn *ABIEntry) string {
	sig := fn.Name + "("
	types := make([]string, len(fn.Inputs))
	for i, p := range fn.Inputs {
		types[i] = p.Type
	}
	sig += strings.Join(types, ",") + ")"

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(sig))
	return "0x" + hex.EncodeToString(h.Sum(nil)[:4])
}

// EventTopic computes the keccak256 topic hash for an event signature,
// e.g. EventTopic("TransferCreated(uint256,uint256,address,address,uint256)").
func EventTopic(sig string) string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(sig))
	return "0x" + hex.EncodeToString(h.Sum(nil))
}

// --- ABI encoding ---

// isDynamicType reports whether a type uses offset+tail encoding.
func isDynamicType(typ string) bool {
	return typ == "string" || typ == "bytes" || strings.HasSuffix(typ, "[]")
}

// encodeCall builds calldata: 4-byte selector + head words + dynamic tails.
func encodeCall(fn *ABIEntry, args []string) (string, error) {
	selector := functionSelector(fn)

	heads := make([]string, len(fn.Inputs))
	var tails strings.Builder
	// Every parameter occupies exactly one head word; dynamic params put an
	// offset there, counted in bytes from the start of the argument area.
	tailOffset := 32 * len(fn.Inputs)

	for i, param := range fn.Inputs {
		var argStr string
		if i < len(args) {
			argStr = args[i]
		}
		if isDynamicType(param.Type) {
			tail, err := encodeDynamic(param.Type, argStr)
			if err != nil {
				return "", fmt.Errorf("encoding param %s: %w", param.Name, err)
			}
			heads[i] = fmt.Sprintf("%064x", tailOffset)
			tails.WriteString(tail)
			tailOffset += len(tail) / 2
		} else {
			enc, err := encodeStatic(param.Type, argStr)
			if err != nil {
				return "", fmt.Errorf("encoding param %s: %w", param.Name, err)
			}
			heads[i] = enc
		}
	}

	return selector + strings.Join(heads, "") + tails.String(), nil
}

// encodeStatic encodes a single static ABI value as a 32-byte hex word.
func encodeStatic(typ, val string) (string, error) {
	switch {
	case typ == "address":
		v := strings.TrimPrefix(val, "0x")
		if len(v) > 40 {
			return "", fmt.Errorf("invalid address: %s", val)
		}
		return strings.Repeat("0", 64-len(v)) + strings.ToLower(v), nil

	case strings.HasPrefix(typ, "uint") || strings.HasPrefix(typ, "int"):
		n := new(big.Int)
		if _, ok := n.SetString(val, 0); !ok {
			return "", fmt.Errorf("invalid integer: %s", val)
		}
		if n.Sign() < 0 {
			return "", fmt.Errorf("negative value not supported: %s", val)
		}
		return fmt.Sprintf("%064x", n), nil

	case typ == "bool":
		if val == "true" || val == "1" {
			return fmt.Sprintf("%064d", 1), nil
		}
		return fmt.Sprintf("%064d", 0), nil

	case typ == "bytes32":
		v := strings.TrimPrefix(val, "0x")
		if len(v) > 64 {
			return "", fmt.Errorf("bytes32 too long: %s", val)
		}
		return v + strings.Repeat("0", 64-len(v)), nil

	default:
		return "", fmt.Errorf("unsupported static type: %s", typ)
	}
}

// encodeDynamic encodes a dynamic value (length word + right-padded data).
func encodeDynamic(typ, val string) (string, error) {
	var data []byte
	switch typ {
	case "string":
		data = []byte(val)
	case "bytes":
		b, err := hex.DecodeString(strings.TrimPrefix(val, "0x"))
		if err != nil {
			return "", fmt.Errorf("invalid bytes value: %w", err)
		}
		data = b
	default:
		return "", fmt.Errorf("unsupported dynamic type: %s", typ)
	}

	padded := len(data)
	if rem := padded % 32; rem != 0 {
		padded += 32 - rem
	}
	buf := make([]byte, padded)
	copy(buf, data)

	return fmt.Sprintf("%064x", len(data)) + hex.EncodeToString(buf), nil
}

// --- ABI decoding ---

// decodeResult decodes the raw hex result into string values, one per
// declared output. Struct returns are declared flattened in the bundled
// ABI, which matches how static tuples lay out on the wire.
func decodeResult(fn *ABIEntry, hexData string) ([]string, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(hexData, "0x"))
	if err != nil {
		return nil, fmt.Errorf("decoding hex result: %w", err)
	}

	if len(fn.Outputs) == 0 {
		return nil, nil
	}

	var results []string
	offset := 0

	for _, out := range fn.Outputs {
		if offset+32 > len(data) {
			results = append(results, "")
			continue
		}

		word := data[offset : offset+32]
		offset += 32

		val, err := decodeWord(out.Type, word, data)
		if err != nil {
			results = append(results, "")
			continue
		}
		results = append(results, val)
	}

	return results, nil
}

func decodeWord(typ string, word []byte, fullData []byte) (string, error) {
	switch {
	case typ == "address":
		return "0x" + hex.EncodeToString(word[12:]), nil

	case strings.HasSuffix(typ, "[]"):
		// Offset word → length word → inline elements. Only static element
		// types occur in the bundled ABI (uint256[] id lists).
		offsetVal := new(big.Int).SetBytes(word).Uint64()
		if offsetVal+32 > uint64(len(fullData)) {
			return "", fmt.Errorf("array offset out of range")
		}
		length := new(big.Int).SetBytes(fullData[offsetVal : offsetVal+32]).Uint64()
		elems := make([]string, 0, length)
		elemType := strings.TrimSuffix(typ, "[]")
		for i := uint64(0); i < length; i++ {
			start := offsetVal + 32 + i*32
			if start+32 > uint64(len(fullData)) {
				return "", fmt.Errorf("array element out of range")
			}
			v, err := decodeWord(elemType, fullData[start:start+32], fullData)
			if err != nil {
				return "", err
			}
			elems = append(elems, v)
		}
		return strings.Join(elems, ","), nil

	case strings.HasPrefix(typ, "uint") || strings.HasPrefix(typ, "int"):
		n := new(big.Int).SetBytes(word)
		return n.String(), nil

	case typ == "bool":
		if word[31] == 1 {
			return "true", nil
		}
		return "false", nil

	case typ == "string":
		// String uses an offset + length encoding.
		offsetVal := new(big.Int).SetBytes(word).Uint64()
		if offsetVal+32 > uint64(len(fullData)) {
			return "", nil
		}
		length := new(big.Int).SetBytes(fullData[offsetVal : offsetVal+32]).Uint64()
		start := offsetVal + 32
		if start+length > uint64(len(fullData)) {
			return "", nil
		}
		return string(fullData[start : start+length]), nil

	default:
		return "0x" + hex.EncodeToString(word), nil
	}
}

// DecodeWords decodes raw 32-byte words from event log data, one value per
// type. Event data contains only the non-indexed params, laid out like a
// function return.
func DecodeWords(hexData string, types []string) ([]string, error) {
	outs := make([]ABIParam, len(types))
	for i, t := range types {
		outs[i] = ABIParam{Type: t}
	}
	return decodeResult(&ABIEntry{Outputs: outs}, hexData)
}

// TopicToUint parses an indexed uint topic (32-byte hex word) as a decimal string.
func TopicToUint(topic string) (uint64, error) {
	n, ok := new(big.Int).SetString(strings.TrimPrefix(topic, "0x"), 16)
	if !ok {
		return 0, fmt.Errorf("invalid topic: %s", topic)
	}
	return n.Uint64(), nil
}

// UintTopic encodes an unsigned integer as a 32-byte topic word, the form
// eth_getLogs expects for an indexed uint filter.
func UintTopic(n uint64) string {
	return fmt.Sprintf("0x%064x", n)
}

// TopicToAddress extracts the address from an indexed address topic.
func TopicToAddress(topic string) string {
	t := strings.TrimPrefix(topic, "0x")
	if len(t) < 40 {
		return "0x" + t
	}
	return "0x" + strings.ToLower(t[len(t)-40:])
}
