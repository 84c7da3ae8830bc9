package config

// Named constants enumerated in the external interface: bounds and
// thresholds callers and collaborators are expected to know about even
// when they never touch the YAML config file.
const (
	MaxMessageChars = 5000
	MaxBulkBytes    = 5 * 1024 * 1024
	MinCharsForImport = 10

	ClassifierTimeoutMs = 2000

	ConversationGapHours  = 6
	ResponseTimeCapHours  = 24

	MessageImbalanceRatio   = 3.0
	SlowResponseMinutes     = 180.0
	FrequencyDropRatio      = 0.5
	OneSidedInitiationRatio = 4.0
	LowEngagementAvgChars   = 20.0
)
