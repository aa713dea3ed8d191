package contract

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/chaintrace/chaintrace/internal/chain"
	"github.com/chaintrace/chaintrace/internal/config"
	"github.com/chaintrace/chaintrace/internal/wallet"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Sender sends write transactions to contracts.
type Sender struct {
	client  *chain.EVMClient
	abi     []ABIEntry
	signer  *wallet.Signer
	chainID *big.Int
}

// NewSender creates a Sender.
func NewSender(rpcURL string, abi []ABIEntry, signer *wallet.Signer, chainID *big.Int) *Sender {
	return &Sender{
		client:  chain.NewEVMClient(rpcURL),
		abi:     abi,
		signer:  signer,
		chainID: chainID,
	}
}

// From returns the sending address.
func (s *Sender) From() string { return s.signer.Address() }

// Send calls a write function and broadcasts the transaction.
// Returns the transaction hash.
func (s *Sender) Send(contractAddr, funcName string, args ...string) (string, error) {
	var fn *ABIEntry
	for i := range s.abi {
		if s.abi[i].Type == "function" && s.abi[i].Name == funcName {
			fn = &s.abi[i]
			break
		}
	}
	if fn == nil {
		return "", fmt.Errorf("function %q not found in ABI", funcName)
	}
	if !fn.IsWriteFunction() {
		return "", fmt.Errorf("function %q is not a write function", funcName)
	}

	calldata, err := encodeCall(fn, args)
	if err != nil {
		return "", fmt.Errorf("encoding call: %w", err)
	}

	from := s.signer.Address()

	gas, err := s.client.EstimateGas(from, contractAddr, calldata, nil)
	if err != nil {
		// Estimation fails for calls the contract would revert; surface the
		// reason instead of broadcasting a doomed transaction.
		var rev *chain.RevertError
		if errors.As(err, &rev) {
			return "", rev
		}
		gas = config.GasLimitContractCall
	}

	gasPrice, err := s.client.GasPrice()
	if err != nil {
		return "", fmt.Errorf("getting gas price: %w", err)
	}

	nonce, err := s.client.GetNonce(from)
	if err != nil {
		return "", fmt.Errorf("getting nonce: %w", err)
	}

	calldataBytes, err := hex.DecodeString(strings.TrimPrefix(calldata, "0x"))
	if err != nil {
		return "", fmt.Errorf("decoding calldata: %w", err)
	}
	toAddr := common.HexToAddress(contractAddr)

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   s.chainID,
		Nonce:     nonce,
		GasTipCap: gasPrice,
		GasFeeCap: new(big.Int).Mul(gasPrice, big.NewInt(2)),
		Gas:       gas,
		To:        &toAddr,
		Value:     big.NewInt(0),
		Data:      calldataBytes,
	})

	raw, err := s.signer.SignTx(tx, s.chainID)
	if err != nil {
		return "", fmt.Errorf("signing transaction: %w", err)
	}

	hash, err := s.client.SendRawTransaction("0x" + hex.EncodeToString(raw))
	if err != nil {
		return "", fmt.Errorf("broadcasting transaction: %w", err)
	}

	return hash, nil
}

// SendAndWait broadcasts a write call and blocks until it is mined.
func (s *Sender) SendAndWait(contractAddr, funcName string, timeout time.Duration, args ...string) (*chain.TxReceipt, error) {
	hash, err := s.Send(contractAddr, funcName, args...)
	if err != nil {
		return nil, err
	}
	return s.client.WaitForReceipt(hash, timeout)
}
