package request

// SetWalletConnectionRequest is the request body for PUT /api/wallet/connection.
type SetWalletConnectionRequest struct {
	Connected *bool  `json:"connected"`         // Connected is required.
	Address   string `json:"address,omitempty"` // Address is a 0x-prefixed hex address, required when connecting.
	ChainID   int64  `json:"chainId,omitempty"`
}

// WalletAsset is one holding reported by the wallet collaborator.
type WalletAsset struct {
	Symbol   string   `json:"symbol"`
	Balance  *float64 `json:"balance,omitempty"`
	ValueUSD float64  `json:"valueUSD"`
	IsNative *bool    `json:"isNative,omitempty"`
}

// UpdateWalletAssetsRequest is the request body for PUT /api/wallet/assets.
type UpdateWalletAssetsRequest struct {
	Assets []WalletAsset `json:"assets"`
}
