package domain

// Scoring turns raw check results and profile weights into category and
// readiness scores. All functions here are pure.

const warningPenalty = 2.0

// ComputeCategoryScore derives the score for one category from the run's
// results. Warn and Skip outcomes are excluded from the pass ratio; each
// warning costs a flat penalty, floored at zero. A category with no
// pass/fail outcomes scores 0.
func ComputeCategoryScore(cat CheckCategory, weight float64, results []DodCheckResult) CategoryScore {
	cs := CategoryScore{Category: cat, Weight: weight}
	for _, r := range results {
		if r.Category != cat {
			continue
		}
		switch r.Status {
		case StatusPass:
			cs.Passed++
		case StatusFail:
			cs.Failed++
		case StatusWarn:
			cs.Warned++
		case StatusSkip:
			cs.Skipped++
		}
	}

	denom := cs.Passed + cs.Failed
	if denom == 0 {
		cs.Score = 0
		return cs
	}

	score := float64(cs.Passed)/float64(denom)*100 - warningPenalty*float64(cs.Warned)
	if score < 0 {
		score = 0
	}
	cs.Score = score
	return cs
}

// ComputeCategoryScores scores every category carrying a weight in the
// profile.
func ComputeCategoryScores(profile *DodProfile, results []DodCheckResult) map[CheckCategory]CategoryScore {
	scores := make(map[CheckCategory]CategoryScore, len(profile.CategoryWeights))
	for cat, weight := range profile.CategoryWeights {
		scores[cat] = ComputeCategoryScore(cat, weight, results)
	}
	return scores
}

// ComputeReadinessScore is the weighted sum of category scores. Weights are
// taken as-is; profile validation guarantees they sum to 1.0.
func ComputeReadinessScore(scores map[CheckCategory]CategoryScore) float64 {
	var total float64
	for _, cs := range scores {
		total += cs.Score * cs.Weight
	}
	return total
}
