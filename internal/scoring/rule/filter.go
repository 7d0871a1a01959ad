package rule

import (
	"log/slog"

	"indigo/internal/scoring"
)

// Filter returns a copy of summaries in which judge scores that fail admission
// are removed. An entry with an empty jury name is always dropped: such a
// record cannot be attributed in the protocol. Beyond that, an entry is kept
// only if every rule admits it.
//
// If a rule evaluation fails, the error is logged and the entry is kept:
// a broken rule must not silently wipe a contest's scores.
//
// The stored average score of each participant is left untouched even when
// entries are dropped — the source remains authoritative for averages, and
// ranking depends on them alone.
func Filter(summaries []scoring.ParticipantSummary, rules []Rule) []scoring.ParticipantSummary {
	filtered := make([]scoring.ParticipantSummary, 0, len(summaries))

	for _, summary := range summaries {
		kept := make([]scoring.JudgeScore, 0, len(summary.JudgeScores))
		for _, entry := range summary.JudgeScores {
			if len(entry.JudgeName) == 0 {
				slog.Warn("Judge score without jury name skipped", "participant", summary.Name)
				continue
			}

			admitted := true
			for i := range rules {
				ok, err := rules[i].Admit(entry)
				if err != nil {
					slog.Error("rule eval", "error", err, "rule", rules[i].When, "participant", summary.Name)
					continue
				}
				if !ok {
					admitted = false
					break
				}
			}

			if !admitted {
				slog.Warn("Judge score rejected by admission rules",
					"participant", summary.Name, "jury", entry.JudgeName, "score", entry.Score)
				continue
			}

			kept = append(kept, entry)
		}

		summary.JudgeScores = kept
		filtered = append(filtered, summary)
	}

	return filtered
}
