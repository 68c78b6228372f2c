package validation

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/request"
)

// ValidateAddress checks that address is a 0x-prefixed, 20-byte hex string.
func ValidateAddress(address string) bool {
	return strings.HasPrefix(address, "0x") && common.IsHexAddress(address)
}

func ValidateSetWalletConnection(req request.SetWalletConnectionRequest) error {
	errs := fields{}

	if req.Connected == nil {
		errs["connected"] = "connected is required"
	} else if *req.Connected {
		if !ValidateAddress(req.Address) {
			errs["address"] = "address must be a 0x-prefixed 40 character hex string"
		}
		if req.ChainID <= 0 {
			errs["chainId"] = "chainId is required when connecting"
		}
	}

	return errs.err()
}

func ValidateUpdateWalletAssets(req request.UpdateWalletAssetsRequest) error {
	errs := fields{}

	seen := make(map[string]bool, len(req.Assets))
	for i, a := range req.Assets {
		field := fmt.Sprintf("assets[%d]", i)
		switch {
		case strings.TrimSpace(a.Symbol) == "":
			errs[field] = "symbol is required"
		case seen[a.Symbol]:
			errs[field] = fmt.Sprintf("duplicate symbol %s", a.Symbol)
		case a.ValueUSD < 0:
			errs[field] = "valueUSD cannot be negative"
		case a.Balance != nil && *a.Balance < 0:
			errs[field] = "balance cannot be negative"
		}
		seen[a.Symbol] = true
	}

	return errs.err()
}
