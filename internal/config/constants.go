package config

import "time"

// Gas limit used as an EstimateGas fallback when the node cannot simulate
// the call. Conservative upper bound; actual gas used will be lower.
const GasLimitContractCall = uint64(200_000)

// Timeout constants used across cmd.
const (
	TxConfirmTimeout = 3 * time.Minute // standard transaction confirmation wait
)
