package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
var (
	// ErrProposalNotFound indicates that a governance proposal with the given ID does not exist.
	ErrProposalNotFound = errors.New("proposal not found")

	// ErrKeyNotFound indicates that the snapshot store holds no value under the requested key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrWalletNotConnected indicates a wallet operation that needs a connected address.
	ErrWalletNotConnected = errors.New("wallet not connected")

	// ErrUnsupportedChain indicates a chain ID with no token table or RPC endpoint.
	ErrUnsupportedChain = errors.New("unsupported chain")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrProposalClosed indicates a vote on a proposal whose voting period has ended.
	ErrProposalClosed = errors.New("proposal is not open for voting")

	// ErrInvalidVoteChoice indicates a vote that is not for, against or abstain.
	ErrInvalidVoteChoice = errors.New("invalid vote choice")

	// ErrInvalidConfig indicates an imported configuration document that could not be parsed.
	ErrInvalidConfig = errors.New("invalid config JSON")

	// ErrInvalidCredentials indicates a login with an empty password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrInvalidDateRange indicates that the provided date range is invalid.
	ErrInvalidDateRange = errors.New("invalid date range")

	ErrInvalidCursor = errors.New("invalid pagination cursor")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToPersistState   = errors.New("failed to persist treasury state")
	ErrFailedToSyncWallet     = errors.New("failed to sync wallet")
	ErrFailedToRetrieveLogs   = errors.New("failed to retrieve logs")
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
	ErrFailedToExportConfig   = errors.New("failed to export configuration")
	ErrFailedToExportReport   = errors.New("failed to export transaction report")
)

// Data integrity errors represent inconsistencies or corruption in stored data.
var (
	// ErrCorruptSnapshot indicates a stored snapshot that could not be decoded or unsealed.
	ErrCorruptSnapshot = errors.New("stored snapshot is corrupt")
)
