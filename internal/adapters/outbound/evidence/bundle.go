package evidence

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gowebpki/jcs"

	"github.com/dodgate/dodgate/internal/domain"
)

// FileType tags an entry in the evidence manifest.
type FileType string

const (
	FileTypeReceipt  FileType = "Receipt"
	FileTypeReport   FileType = "Report"
	FileTypeLog      FileType = "Log"
	FileTypeArtifact FileType = "Artifact"
	FileTypeManifest FileType = "Manifest"
)

// ManifestEntry describes one file in the bundle.
type ManifestEntry struct {
	Path      string   `json:"path"`
	SizeBytes int64    `json:"size_bytes"`
	Hash      string   `json:"hash"`
	FileType  FileType `json:"file_type"`
}

// Manifest is the bundle's integrity index. TotalSizeBytes always equals
// the sum of entry sizes.
type Manifest struct {
	CreatedAt      time.Time                `json:"created_at"`
	Profile        string                   `json:"profile"`
	Mode           domain.ValidationMode    `json:"mode"`
	Verdict        domain.Verdict           `json:"verdict"`
	ReadinessScore float64                  `json:"readiness_score"`
	Files          map[string]ManifestEntry `json:"files"`
	TotalSizeBytes int64                    `json:"total_size_bytes"`
}

// wellKnownArtifacts is the fixed set of workspace files snapshotted into
// the bundle when present.
var wellKnownArtifacts = []string{
	"go.mod",
	"go.sum",
	"Cargo.toml",
	"Makefile",
	"README.md",
	".dodgate.yaml",
	"ggen.toml",
}

// BundleGenerator assembles receipt, report, per-check logs, artifact
// snapshots and a hashed manifest into a timestamped directory, optionally
// compressed into a tar.gz.
type BundleGenerator struct {
	outputDir string
	compress  bool
	clock     func() time.Time
	warnings  []string
}

// New creates a generator writing bundles under outputDir.
func New(outputDir string) *BundleGenerator {
	return &BundleGenerator{outputDir: outputDir, clock: time.Now}
}

// WithCompression makes Generate produce a tar.gz and delete the
// uncompressed directory.
func (g *BundleGenerator) WithCompression() *BundleGenerator {
	g.compress = true
	return g
}

// WithClock overrides the clock for deterministic testing.
func (g *BundleGenerator) WithClock(clock func() time.Time) *BundleGenerator {
	g.clock = clock
	return g
}

// Warnings returns non-fatal problems from the last Generate call, such as
// missing receipt or report files.
func (g *BundleGenerator) Warnings() []string {
	return g.warnings
}

// Generate builds the bundle for a completed run and returns the bundle
// path (directory, or archive when compression is on). Infrastructure
// failures are errors: a broken bundle compromises the audit trail.
func (g *BundleGenerator) Generate(result *domain.DodValidationResult, workspaceRoot string) (string, error) {
	g.warnings = nil

	if _, err := os.Stat(workspaceRoot); err != nil {
		return "", fmt.Errorf("workspace root %s: %w", workspaceRoot, err)
	}

	now := g.clock()
	bundleDir := filepath.Join(g.outputDir, now.Format("2006-01-02-150405"))
	for _, sub := range []string{"logs", "artifacts"} {
		if err := os.MkdirAll(filepath.Join(bundleDir, sub), 0o755); err != nil {
			return "", fmt.Errorf("creating bundle dirs: %w", err)
		}
	}

	// Best-effort space probe: catches disk-full and permission problems
	// before any real content is written.
	if err := g.probeWritable(bundleDir); err != nil {
		return "", err
	}

	if err := g.copyIfPresent(result.ReceiptPath, filepath.Join(bundleDir, "receipt.json"), "receipt"); err != nil {
		return "", err
	}
	if err := g.copyIfPresent(result.ReportPath, filepath.Join(bundleDir, "report.md"), "report"); err != nil {
		return "", err
	}

	for _, r := range result.CheckResults {
		logPath := filepath.Join(bundleDir, "logs", logFileName(r.ID))
		if err := os.WriteFile(logPath, []byte(renderCheckLog(r)), 0o644); err != nil {
			return "", fmt.Errorf("writing check log %s: %w", logPath, err)
		}
	}

	for _, rel := range wellKnownArtifacts {
		src := filepath.Join(workspaceRoot, rel)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		dst := filepath.Join(bundleDir, "artifacts", rel)
		if err := copyFile(src, dst); err != nil {
			return "", fmt.Errorf("snapshotting artifact %s: %w", rel, err)
		}
	}

	if err := g.writeManifest(bundleDir, result, now); err != nil {
		return "", err
	}

	if g.compress {
		return compressBundle(bundleDir)
	}
	return bundleDir, nil
}

func (g *BundleGenerator) probeWritable(dir string) error {
	probe := filepath.Join(dir, ".probe")
	if err := os.WriteFile(probe, []byte("probe"), 0o644); err != nil {
		return fmt.Errorf("evidence dir not writable: %w", err)
	}
	return os.Remove(probe)
}

// copyIfPresent copies src into the bundle. An unrecorded or missing
// source degrades to a warning; a present file that cannot be copied is an
// audit-infrastructure failure and aborts the bundle.
func (g *BundleGenerator) copyIfPresent(src, dst, label string) error {
	if src == "" {
		g.warnings = append(g.warnings, fmt.Sprintf("no %s recorded for this run", label))
		return nil
	}
	if _, err := os.Stat(src); err != nil {
		g.warnings = append(g.warnings, fmt.Sprintf("%s missing at %s, skipped", label, src))
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("copying %s: %w", label, err)
	}
	return nil
}

// writeManifest hashes every file in the bundle and writes manifest.json
// as RFC 8785 canonical JSON. The manifest does not self-reference.
func (g *BundleGenerator) writeManifest(bundleDir string, result *domain.DodValidationResult, now time.Time) error {
	manifest := Manifest{
		CreatedAt:      now.UTC(),
		Profile:        result.Profile,
		Mode:           result.Mode,
		Verdict:        result.Verdict,
		ReadinessScore: result.ReadinessScore,
		Files:          make(map[string]ManifestEntry),
	}

	err := filepath.Walk(bundleDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(bundleDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "manifest.json" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		sum := sha256.Sum256(data)

		manifest.Files[rel] = ManifestEntry{
			Path:      rel,
			SizeBytes: info.Size(),
			Hash:      hex.EncodeToString(sum[:]),
			FileType:  classify(rel),
		}
		manifest.TotalSizeBytes += info.Size()
		return nil
	})
	if err != nil {
		return fmt.Errorf("indexing bundle: %w", err)
	}

	data, err := json.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	canonical, err := jcs.Transform(data)
	if err != nil {
		return fmt.Errorf("canonicalizing manifest: %w", err)
	}

	return os.WriteFile(filepath.Join(bundleDir, "manifest.json"), canonical, 0o644)
}

func classify(rel string) FileType {
	switch {
	case rel == "receipt.json":
		return FileTypeReceipt
	case rel == "report.md":
		return FileTypeReport
	case rel == "manifest.json":
		return FileTypeManifest
	case strings.HasPrefix(rel, "logs/"):
		return FileTypeLog
	default:
		return FileTypeArtifact
	}
}

// logFileName lowercases the check id and swaps underscores for dashes.
func logFileName(id string) string {
	return strings.ReplaceAll(strings.ToLower(id), "_", "-") + ".log"
}

// renderCheckLog produces one check's log body. Empty evidence and
// remediation blocks are omitted.
func renderCheckLog(r domain.DodCheckResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Check: %s\n", r.ID)
	fmt.Fprintf(&b, "Status: %s\n", r.Status)
	fmt.Fprintf(&b, "Severity: %s\n", r.Severity)
	fmt.Fprintf(&b, "Category: %s\n", r.Category.DisplayName())
	fmt.Fprintf(&b, "Duration: %dms\n", r.DurationMS)
	fmt.Fprintf(&b, "Message: %s\n", r.Message)

	if len(r.Evidence) > 0 {
		b.WriteString("\nEvidence:\n")
		for _, ev := range r.Evidence {
			fmt.Fprintf(&b, "- [%s] %s\n", ev.Kind, ev.Content)
		}
	}

	if len(r.Remediation) > 0 {
		b.WriteString("\nRemediation:\n")
		for _, rem := range r.Remediation {
			fmt.Fprintf(&b, "- %s\n", rem)
		}
	}

	return b.String()
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
