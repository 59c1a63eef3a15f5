package evidence_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dodgate/dodgate/internal/adapters/outbound/evidence"
	"github.com/dodgate/dodgate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2026, 8, 15, 14, 5, 9, 0, time.UTC)
}

func bundleFixture(t *testing.T) (*domain.DodValidationResult, string) {
	t.Helper()

	ws := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(ws, "go.mod"), []byte("module x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(ws, "README.md"), []byte("# x\n"), 0o644))

	artifacts := t.TempDir()
	receiptPath := filepath.Join(artifacts, "receipt.json")
	require.NoError(t, os.WriteFile(receiptPath, []byte(`{"version":"1.0"}`), 0o644))
	reportPath := filepath.Join(artifacts, "report.md")
	require.NoError(t, os.WriteFile(reportPath, []byte("# report\n"), 0o644))

	result := &domain.DodValidationResult{
		Verdict:        domain.VerdictPass,
		ReadinessScore: 95,
		Profile:        "default",
		Mode:           domain.ModeFull,
		CheckResults: []domain.DodCheckResult{
			{
				ID: "BUILD_CHECK", Category: domain.CategoryBuildCorrectness,
				Status: domain.StatusPass, Severity: domain.SeverityFatal,
				Message:  "compiles",
				Evidence: []domain.Evidence{domain.NewEvidence("command_output", "ok")},
			},
			{
				ID: "GOFMT_CHECK", Category: domain.CategoryBuildCorrectness,
				Status: domain.StatusWarn, Severity: domain.SeverityWarning,
				Message:     "2 files need formatting",
				Remediation: []string{"Run gofmt -w ."},
			},
		},
		ReceiptPath: receiptPath,
		ReportPath:  reportPath,
		Timestamp:   fixedClock(),
	}
	return result, ws
}

func readManifest(t *testing.T, bundleDir string) evidence.Manifest {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(bundleDir, "manifest.json"))
	require.NoError(t, err)

	var m evidence.Manifest
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestGenerate_BundleLayout(t *testing.T) {
	result, ws := bundleFixture(t)
	gen := evidence.New(t.TempDir()).WithClock(fixedClock)

	bundleDir, err := gen.Generate(result, ws)
	require.NoError(t, err)

	assert.Equal(t, "2026-08-15-140509", filepath.Base(bundleDir))
	assert.Empty(t, gen.Warnings())

	for _, rel := range []string{
		"receipt.json",
		"report.md",
		"manifest.json",
		filepath.Join("logs", "build-check.log"),
		filepath.Join("logs", "gofmt-check.log"),
		filepath.Join("artifacts", "go.mod"),
		filepath.Join("artifacts", "README.md"),
	} {
		_, err := os.Stat(filepath.Join(bundleDir, rel))
		assert.NoError(t, err, "expected bundle file %s", rel)
	}
}

func TestGenerate_CheckLogContent(t *testing.T) {
	result, ws := bundleFixture(t)
	bundleDir, err := evidence.New(t.TempDir()).WithClock(fixedClock).Generate(result, ws)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(bundleDir, "logs", "gofmt-check.log"))
	require.NoError(t, err)
	body := string(data)

	assert.Contains(t, body, "Check: GOFMT_CHECK")
	assert.Contains(t, body, "Status: Warn")
	assert.Contains(t, body, "Category: Build Correctness")
	assert.Contains(t, body, "Remediation:\n- Run gofmt -w .")
	assert.NotContains(t, body, "Evidence:", "empty evidence block is omitted")
}

func TestGenerate_ManifestIntegrity(t *testing.T) {
	result, ws := bundleFixture(t)
	bundleDir, err := evidence.New(t.TempDir()).WithClock(fixedClock).Generate(result, ws)
	require.NoError(t, err)

	m := readManifest(t, bundleDir)

	assert.Equal(t, "default", m.Profile)
	assert.Equal(t, domain.VerdictPass, m.Verdict)
	assert.NotContains(t, m.Files, "manifest.json", "the manifest never indexes itself")

	var sum int64
	for rel, entry := range m.Files {
		assert.Equal(t, rel, entry.Path)
		assert.Len(t, entry.Hash, 64)
		sum += entry.SizeBytes

		info, err := os.Stat(filepath.Join(bundleDir, filepath.FromSlash(rel)))
		require.NoError(t, err)
		assert.Equal(t, info.Size(), entry.SizeBytes)
	}
	assert.Equal(t, sum, m.TotalSizeBytes)

	assert.Equal(t, evidence.FileTypeReceipt, m.Files["receipt.json"].FileType)
	assert.Equal(t, evidence.FileTypeReport, m.Files["report.md"].FileType)
	assert.Equal(t, evidence.FileTypeLog, m.Files["logs/build-check.log"].FileType)
	assert.Equal(t, evidence.FileTypeArtifact, m.Files["artifacts/go.mod"].FileType)
}

func TestGenerate_MissingReceiptWarnsButSucceeds(t *testing.T) {
	result, ws := bundleFixture(t)
	result.ReceiptPath = ""
	result.ReportPath = filepath.Join(t.TempDir(), "vanished.md")

	gen := evidence.New(t.TempDir()).WithClock(fixedClock)
	bundleDir, err := gen.Generate(result, ws)
	require.NoError(t, err)

	warnings := gen.Warnings()
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "no receipt recorded")
	assert.Contains(t, warnings[1], "report missing")

	_, err = os.Stat(filepath.Join(bundleDir, "manifest.json"))
	assert.NoError(t, err)
}

func TestGenerate_UncopyableReceiptIsError(t *testing.T) {
	result, ws := bundleFixture(t)
	// Present but unreadable as a file: the stat passes, the copy cannot.
	result.ReceiptPath = t.TempDir()

	_, err := evidence.New(t.TempDir()).WithClock(fixedClock).Generate(result, ws)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "copying receipt")
}

func TestGenerate_MissingWorkspaceIsError(t *testing.T) {
	result, _ := bundleFixture(t)

	_, err := evidence.New(t.TempDir()).Generate(result, filepath.Join(t.TempDir(), "gone"))
	assert.Error(t, err)
}

func TestGenerate_Compression(t *testing.T) {
	result, ws := bundleFixture(t)
	out := t.TempDir()

	archive, err := evidence.New(out).WithClock(fixedClock).WithCompression().Generate(result, ws)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(archive, ".tar.gz"))
	info, err := os.Stat(archive)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// The uncompressed directory is gone once the archive exists.
	_, err = os.Stat(strings.TrimSuffix(archive, ".tar.gz"))
	assert.True(t, os.IsNotExist(err))
}
