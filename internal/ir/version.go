package ir

// Version constants stamped on stored records.
const (
	// RecordVersion is the layout version of Record.
	RecordVersion = "1"

	// EngineVersion is the calculation engine version.
	EngineVersion = "0.3.0"
)
