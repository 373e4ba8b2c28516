// Package linter implements the docx template lint pipeline: structural
// validation, engine syntax delegation, quality checks and report assembly.
package linter

import "strings"

// Completeness score weights. Errors cost more than warnings; a small
// bonus rewards documents that actually contain template tags.
const (
	errorWeight   = 15.0
	warningWeight = 5.0
	tagBonusEach  = 2.0
	tagBonusMax   = 10.0
)

// completenessScore computes the 0-100 heuristic quality metric from the
// issue counts relative to the tag count. More errors never increase the
// score; zero issues always yields 100.
func completenessScore(text string, errorCount, warningCount, tagCount int) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	score := 100.0
	score -= float64(errorCount) * errorWeight
	score -= float64(warningCount) * warningWeight

	if tagCount > 0 {
		bonus := float64(tagCount) * tagBonusEach
		if bonus > tagBonusMax {
			bonus = tagBonusMax
		}
		score += bonus
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
