package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"time"
)

// ReceiptVersion is bumped whenever the hash input layout changes.
const ReceiptVersion = "1.0"

// ReceiptMetadata carries the audited facts of the run that are not
// individual check outcomes. Git fields are best-effort and may be empty.
type ReceiptMetadata struct {
	WorkspaceRoot string `json:"workspace_root"`
	RunID         string `json:"run_id,omitempty"`
	Passed        int    `json:"passed"`
	Failed        int    `json:"failed"`
	Warned        int    `json:"warned"`
	Skipped       int    `json:"skipped"`
	GitCommit     string `json:"git_commit,omitempty"`
	GitBranch     string `json:"git_branch,omitempty"`
}

// Receipt is the tamper-evident audit record of a completed run. Any
// mutation after creation invalidates FinalHash.
type Receipt struct {
	Version     string          `json:"version"`
	Timestamp   time.Time       `json:"timestamp"`
	Verdict     Verdict         `json:"verdict"`
	Score       float64         `json:"score"`
	Profile     string          `json:"profile"`
	Mode        ValidationMode  `json:"mode"`
	DurationMS  int64           `json:"duration_ms"`
	CheckHashes []string        `json:"check_hashes"`
	FinalHash   string          `json:"final_hash"`
	Metadata    ReceiptMetadata `json:"metadata"`
}

// HashCheckResult computes the canonical SHA-256 of one result. The input
// order is fixed: id, category, status, severity, message, evidence hashes
// sorted lexicographically (stored evidence order is untouched), then
// remediation strings in original order. Pure: identical input, identical
// hash. Fields are newline-delimited in the hash input.
func HashCheckResult(r DodCheckResult) string {
	h := sha256.New()
	write := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{'\n'})
	}

	write(r.ID)
	write(string(r.Category))
	write(string(r.Status))
	write(string(r.Severity))
	write(r.Message)

	evHashes := make([]string, 0, len(r.Evidence))
	for _, ev := range r.Evidence {
		evHashes = append(evHashes, ev.Hash)
	}
	sort.Strings(evHashes)
	for _, eh := range evHashes {
		write(eh)
	}

	for _, rem := range r.Remediation {
		write(rem)
	}

	return hex.EncodeToString(h.Sum(nil))
}

// hashScore renders a score for hash input in a fixed canonical form.
func hashScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 2, 64)
}

func sha256Hex(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ChainHashes left-folds SHA-256 over the ordered check hashes and seals
// the result with the run metadata. Reordering the same hash set changes
// the final hash: execution order is an audited fact.
func ChainHashes(hashes []string, verdict Verdict, score float64, profile string, mode ValidationMode) string {
	meta := []string{string(verdict), hashScore(score), profile, string(mode)}

	if len(hashes) == 0 {
		return sha256Hex(meta...)
	}

	chain := hashes[0]
	for _, h := range hashes[1:] {
		chain = sha256Hex(chain, h)
	}
	return sha256Hex(append([]string{chain}, meta...)...)
}

// BuildReceipt derives a receipt from a completed, immutable run result.
// Per-check hashes are recomputed here rather than trusted from the
// results, so the receipt stands on its own.
func BuildReceipt(result *DodValidationResult, meta ReceiptMetadata) *Receipt {
	hashes := make([]string, 0, len(result.CheckResults))
	for _, cr := range result.CheckResults {
		hashes = append(hashes, HashCheckResult(cr))
	}

	passed, failed, warned, skipped := Counts(result.CheckResults)
	meta.Passed = passed
	meta.Failed = failed
	meta.Warned = warned
	meta.Skipped = skipped
	meta.RunID = result.RunID

	return &Receipt{
		Version:     ReceiptVersion,
		Timestamp:   result.Timestamp,
		Verdict:     result.Verdict,
		Score:       result.ReadinessScore,
		Profile:     result.Profile,
		Mode:        result.Mode,
		DurationMS:  result.DurationMS,
		CheckHashes: hashes,
		FinalHash:   ChainHashes(hashes, result.Verdict, result.ReadinessScore, result.Profile, result.Mode),
		Metadata:    meta,
	}
}

// VerifyReceipt recomputes the chain from the stored hashes and metadata
// and compares it to FinalHash. A mismatch means the receipt was altered
// after generation. An empty chain always verifies against its metadata.
func VerifyReceipt(r *Receipt) bool {
	expected := ChainHashes(r.CheckHashes, r.Verdict, r.Score, r.Profile, r.Mode)
	return expected == r.FinalHash
}
