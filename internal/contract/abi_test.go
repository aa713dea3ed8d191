package contract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionSelector(t *testing.T) {
	tests := []struct {
		name     string
		fn       ABIEntry
		expected string
	}{
		{
			"admin()",
			ABIEntry{Name: "admin"},
			"0xf851a440",
		},
		{
			"hasAdmin()",
			ABIEntry{Name: "hasAdmin"},
			"0xa4b121e2",
		},
		{
			"getUserByAddress(address)",
			ABIEntry{Name: "getUserByAddress", Inputs: []ABIParam{{Type: "address"}}},
			"0x69c212f6",
		},
		{
			"createToken(string,string,uint256,uint256,uint256)",
			ABIEntry{Name: "createToken", Inputs: []ABIParam{
				{Type: "string"}, {Type: "string"}, {Type: "uint256"}, {Type: "uint256"}, {Type: "uint256"},
			}},
			"0xf0d02ec3",
		},
		{
			"transfer(address,uint256,uint256)",
			ABIEntry{Name: "transfer", Inputs: []ABIParam{
				{Type: "address"}, {Type: "uint256"}, {Type: "uint256"},
			}},
			"0x095bcdb6",
		},
		{
			"acceptTransfer(uint256)",
			ABIEntry{Name: "acceptTransfer", Inputs: []ABIParam{{Type: "uint256"}}},
			"0x274fae7c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, functionSelector(&tt.fn))
		})
	}
}

func TestEventTopic(t *testing.T) {
	assert.Equal(t,
		"0x4eabe49c107bba371b29bac6cc80df03a9461239e795428e9b6312818558f3f2",
		EventTopic("TransferCreated(uint256,uint256,address,address,uint256)"))
	assert.Equal(t,
		"0xcd4cc36733f05e6b67752ebb5ed8654f4828cfb407adde65112fde3c981d36a6",
		EventTopic("TokenCreated(uint256,string,uint256,address,uint256)"))
}

func TestEncodeStaticAddress(t *testing.T) {
	got, err := encodeStatic("address", "0x1234567890abcdef1234567890abcdef12345678")
	require.NoError(t, err)
	assert.Equal(t, "0000000000000000000000001234567890abcdef1234567890abcdef12345678", got)
	assert.Len(t, got, 64)
}

func TestEncodeStaticUint(t *testing.T) {
	got, err := encodeStatic("uint256", "1000")
	require.NoError(t, err)
	assert.Equal(t, "00000000000000000000000000000000000000000000000000000000000003e8", got)
}

func TestEncodeStaticRejectsNegative(t *testing.T) {
	_, err := encodeStatic("uint256", "-1")
	assert.Error(t, err)
}

func TestEncodeStaticRejectsGarbage(t *testing.T) {
	_, err := encodeStatic("uint256", "not-a-number")
	assert.Error(t, err)
}

func TestEncodeCallStaticArgs(t *testing.T) {
	fn := &ABIEntry{
		Name: "transfer", Type: "function",
		Inputs: []ABIParam{{Type: "address"}, {Type: "uint256"}, {Type: "uint256"}},
	}
	calldata, err := encodeCall(fn, []string{"0x1234567890abcdef1234567890abcdef12345678", "7", "100"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(calldata, "0x095bcdb6"))
	// selector (10 chars with 0x) + 3 words of 64.
	assert.Len(t, calldata, 10+3*64)
	assert.Equal(t,
		"0000000000000000000000000000000000000000000000000000000000000007",
		calldata[10+64:10+128])
}

func TestEncodeCallDynamicStrings(t *testing.T) {
	fn := &ABIEntry{
		Name: "createToken", Type: "function",
		Inputs: []ABIParam{
			{Type: "string"}, {Type: "string"}, {Type: "uint256"}, {Type: "uint256"}, {Type: "uint256"},
		},
	}
	calldata, err := encodeCall(fn, []string{"abc", "", "0", "5", "0"})
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(calldata, "0xf0d02ec3"))
	body := calldata[10:]

	// Five head words, then the two string tails.
	words := make([]string, 0, len(body)/64)
	for i := 0; i+64 <= len(body); i += 64 {
		words = append(words, body[i:i+64])
	}
	require.Len(t, words, 8)

	// Head: offset 0xa0 (after 5 words), offset 0xe0 (after "abc" tail), 0, 5, 0.
	assert.Equal(t, "00000000000000000000000000000000000000000000000000000000000000a0", words[0])
	assert.Equal(t, "00000000000000000000000000000000000000000000000000000000000000e0", words[1])
	assert.Equal(t, "0000000000000000000000000000000000000000000000000000000000000005", words[3])

	// Tail: "abc" = length 3 + padded utf-8, then the empty string's length 0.
	assert.Equal(t, "0000000000000000000000000000000000000000000000000000000000000003", words[5])
	assert.Equal(t, "6162630000000000000000000000000000000000000000000000000000000000", words[6])
	assert.Equal(t, "0000000000000000000000000000000000000000000000000000000000000000", words[7])
}

func TestDecodeResultUintArray(t *testing.T) {
	fn := &ABIEntry{Name: "getUserTokens", Outputs: []ABIParam{{Type: "uint256[]"}}}
	// offset 0x20, length 2, elements 7 and 9.
	hexData := "0x" +
		"0000000000000000000000000000000000000000000000000000000000000020" +
		"0000000000000000000000000000000000000000000000000000000000000002" +
		"0000000000000000000000000000000000000000000000000000000000000007" +
		"0000000000000000000000000000000000000000000000000000000000000009"

	out, err := decodeResult(fn, hexData)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "7,9", out[0])
}

func TestDecodeResultEmptyArray(t *testing.T) {
	fn := &ABIEntry{Name: "getUserTokens", Outputs: []ABIParam{{Type: "uint256[]"}}}
	hexData := "0x" +
		"0000000000000000000000000000000000000000000000000000000000000020" +
		"0000000000000000000000000000000000000000000000000000000000000000"

	out, err := decodeResult(fn, hexData)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "", out[0])
}

func TestDecodeResultFlattenedUserTuple(t *testing.T) {
	fn := &ABIEntry{
		Name: "getUserByAddress",
		Outputs: []ABIParam{
			{Type: "uint256"}, {Type: "address"}, {Type: "uint8"}, {Type: "uint8"},
		},
	}
	hexData := "0x" +
		"0000000000000000000000000000000000000000000000000000000000000003" +
		"0000000000000000000000001234567890abcdef1234567890abcdef12345678" +
		"0000000000000000000000000000000000000000000000000000000000000002" +
		"0000000000000000000000000000000000000000000000000000000000000001"

	out, err := decodeResult(fn, hexData)
	require.NoError(t, err)
	require.Len(t, out, 4)
	assert.Equal(t, "3", out[0])
	assert.Equal(t, "0x1234567890abcdef1234567890abcdef12345678", out[1])
	assert.Equal(t, "2", out[2])
	assert.Equal(t, "1", out[3])
}

func TestDecodeResultMixedStaticAndString(t *testing.T) {
	fn := &ABIEntry{
		Name: "getTokenInfo",
		Outputs: []ABIParam{
			{Type: "uint256"}, {Type: "string"}, {Type: "string"}, {Type: "uint256"}, {Type: "address"},
		},
	}
	hexData := "0x" +
		"0000000000000000000000000000000000000000000000000000000000000001" + // id
		"00000000000000000000000000000000000000000000000000000000000000a0" + // name offset
		"00000000000000000000000000000000000000000000000000000000000000e0" + // features offset
		"0000000000000000000000000000000000000000000000000000000000000000" + // parent
		"0000000000000000000000001234567890abcdef1234567890abcdef12345678" + // creator
		"0000000000000000000000000000000000000000000000000000000000000003" +
		"6162630000000000000000000000000000000000000000000000000000000000" +
		"0000000000000000000000000000000000000000000000000000000000000000"

	out, err := decodeResult(fn, hexData)
	require.NoError(t, err)
	require.Len(t, out, 5)
	assert.Equal(t, "1", out[0])
	assert.Equal(t, "abc", out[1])
	assert.Equal(t, "", out[2])
	assert.Equal(t, "0", out[3])
	assert.Equal(t, "0x1234567890abcdef1234567890abcdef12345678", out[4])
}

func TestDecodeResultBool(t *testing.T) {
	fn := &ABIEntry{Name: "hasAdmin", Outputs: []ABIParam{{Type: "bool"}}}
	out, err := decodeResult(fn, "0x0000000000000000000000000000000000000000000000000000000000000001")
	require.NoError(t, err)
	assert.Equal(t, []string{"true"}, out)
}

func TestTopicRoundTrip(t *testing.T) {
	topic := UintTopic(42)
	assert.Len(t, topic, 66)

	n, err := TopicToUint(topic)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), n)
}

func TestTopicToAddress(t *testing.T) {
	topic := "0x0000000000000000000000001234567890ABCDEF1234567890abcdef12345678"
	assert.Equal(t, "0x1234567890abcdef1234567890abcdef12345678", TopicToAddress(topic))
}

func TestIsDynamicType(t *testing.T) {
	assert.True(t, isDynamicType("string"))
	assert.True(t, isDynamicType("bytes"))
	assert.True(t, isDynamicType("uint256[]"))
	assert.False(t, isDynamicType("uint256"))
	assert.False(t, isDynamicType("address"))
}
