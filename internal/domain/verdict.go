package domain

// ComputeVerdict reports whether the run is releasable at all: a single
// (Fail, Fatal) result forces not-ready. Non-fatal failures never block.
func ComputeVerdict(results []DodCheckResult) bool {
	return len(FatalFailures(results)) == 0
}

// FatalFailures filters the results that alone can block a release.
func FatalFailures(results []DodCheckResult) []DodCheckResult {
	var out []DodCheckResult
	for _, r := range results {
		if r.Status == StatusFail && r.Severity == SeverityFatal {
			out = append(out, r)
		}
	}
	return out
}

// OverallVerdict folds the hard fatal gate, the readiness score and the
// warning budget into the tri-state verdict. Fatal failure wins outright;
// below the score bar or over the warning budget degrades to PartialPass.
func OverallVerdict(results []DodCheckResult, readinessScore float64, thresholds Thresholds) Verdict {
	if !ComputeVerdict(results) {
		return VerdictFail
	}
	if readinessScore < thresholds.MinReadinessScore {
		return VerdictPartialPass
	}
	_, _, warned, _ := Counts(results)
	if warned > thresholds.MaxWarnings {
		return VerdictPartialPass
	}
	return VerdictPass
}
