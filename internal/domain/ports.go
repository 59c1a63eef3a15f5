package domain

// GitInfo provides best-effort version-control metadata for receipts.
// Implementations must degrade to errors, never panic; callers treat any
// error as "no metadata".
type GitInfo interface {
	IsGitRepo(workspaceRoot string) bool
	CommitHash(workspaceRoot string) (string, error)
	Branch(workspaceRoot string) (string, error)
}

// ProfileLoader resolves a named or file-based profile, validated and
// ready to run.
type ProfileLoader interface {
	Load(workspaceRoot string) (*DodProfile, error)
	LoadFile(path string) (*DodProfile, error)
}

// ReceiptStore persists receipts as JSON documents.
type ReceiptStore interface {
	Save(receipt *Receipt) (string, error)
	Load(path string) (*Receipt, error)
	List() ([]string, error)
}

// EvidenceBundler assembles the audit bundle for a completed run and
// returns the bundle path (directory or archive).
type EvidenceBundler interface {
	Generate(result *DodValidationResult, workspaceRoot string) (string, error)
}

// Observer receives executor lifecycle events. All methods may be invoked
// concurrently for checks in the same wave; implementations must be
// goroutine-safe. The executor never depends on observer state.
type Observer interface {
	OnWaveStart(wave int, checkIDs []string)
	OnCheckDone(result DodCheckResult)
}
