package model

// Version constants for the persisted schema and engine.
const (
	// SchemaVersion is the record schema version.
	SchemaVersion = "1"

	// EngineVersion is the rotorgraph engine version.
	EngineVersion = "0.1.0"
)
