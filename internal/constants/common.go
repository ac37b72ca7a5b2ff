package constants

// Common string constants used throughout the codebase
const (
	// Log levels
	ErrorLevel = "error"

	// Environments
	ProdEnvironment = "prod"

	// Agent types known to the permission catalog
	PaymentsAgentType = "payments"
	TradingAgentType  = "trading"
	BridgingAgentType = "bridging"

	// Action tags agents may request
	TransferAction = "transfer"
	ConvertAction  = "convert"
	BridgeAction   = "bridge"

	// Revocation reasons recorded on terminated session keys
	UserRequestedReason    = "user_requested"
	AnomalyDetectedReason  = "anomaly_detected"
	ChallengeFailedReason  = "challenge_failed"
	ChallengeAbortedReason = "challenge_aborted"
)
