package scoreboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"indigo/internal/journal"
	"indigo/internal/protocol"
	"indigo/internal/scoring"
	"indigo/internal/scoring/rule"
)

// ScoresRepository is the read side of the remote score store consumed by the
// board. Implemented by repository.Client; tests substitute their own.
type ScoresRepository interface {
	FetchScores(ctx context.Context, contestID int) ([]scoring.ParticipantSummary, error)
}

// Board binds a contest selection to the ranked scoring view and the protocol
// export action. It holds the only mutable state of the pipeline: the
// currently selected contest and its ranked participant list.
//
// Selections may overlap in time. Every selection bumps a generation counter,
// and a fetch result is installed only if no newer selection happened while
// the request was in flight; a stale response never overwrites the newer
// selection's state.
type Board struct {
	repo    ScoresRepository
	rules   []rule.Rule        // admission rules applied to fetched judge scores
	saver   protocol.FileSaver // archive capability for produced protocols, may be nil
	journal *journal.Journal   // export audit trail, may be nil

	mu         sync.Mutex
	generation uint64
	contestID  int
	ranked     []scoring.ParticipantSummary
}

// SelectContest switches the board to the given contest: fetches its score
// records from the repository, filters judge scores through the admission
// rules and installs the ranked list. Reselecting the same contest re-fetches.
//
// A failed fetch is logged and treated as an empty result set; it is not an
// error for the caller. If a newer selection was made while the fetch was in
// flight, the result is discarded.
func (b *Board) SelectContest(ctx context.Context, contestID int) {
	b.mu.Lock()
	b.generation++
	generation := b.generation
	b.contestID = contestID
	b.ranked = nil
	b.mu.Unlock()

	summaries, err := b.repo.FetchScores(ctx, contestID)
	if err != nil {
		slog.Warn("Scores fetch failed, contest treated as empty", "contest_id", contestID, "error", err)
		summaries = nil
	}
	ranked := scoring.Rank(rule.Filter(summaries, b.rules))

	b.mu.Lock()
	defer b.mu.Unlock()
	if generation != b.generation {
		slog.Debug("Stale scores response discarded", "contest_id", contestID)
		return
	}
	b.ranked = ranked
}

// Snapshot returns the currently selected contest id and a copy of its ranked
// participant list.
func (b *Board) Snapshot() (int, []scoring.ParticipantSummary) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ranked := make([]scoring.ParticipantSummary, len(b.ranked))
	copy(ranked, b.ranked)
	return b.contestID, ranked
}

// ExportProtocol produces the official protocol for the ranked list currently
// on the board. The exact list shown by Snapshot is exported, so the ranking
// order in the file is byte-identical to the one on screen.
//
// The artifact is archived through the saver (when configured; a save failure
// is logged and does not fail the export) and registered in the journal.
// An empty board is a no-op: returns (Artifact{}, false) without error.
func (b *Board) ExportProtocol() (protocol.Artifact, bool) {
	contestID, ranked := b.Snapshot()

	artifact, ok := protocol.Build(contestID, ranked, time.Now())
	if !ok {
		return protocol.Artifact{}, false
	}

	if b.saver != nil {
		if err := b.saver.Save(artifact); err != nil {
			slog.Error("Protocol save failed", "filename", artifact.Filename, "error", err)
		}
	}

	if b.journal != nil {
		judgeRows := 0
		for _, participant := range ranked {
			judgeRows += len(participant.JudgeScores)
		}
		b.journal.Append(contestID, artifact.Filename, len(ranked), judgeRows)
	}

	return artifact, true
}

// NewBoard creates a scoring board.
// Parameters:
//   - repo: score repository client
//   - rules: judge score admission rules, may be empty
//   - saver: archive for produced protocols, may be nil
//   - jrnl: export journal, may be nil
//
// Returns a pointer to a board with no contest selected.
func NewBoard(repo ScoresRepository, rules []rule.Rule, saver protocol.FileSaver, jrnl *journal.Journal) *Board {
	return &Board{
		repo:    repo,
		rules:   rules,
		saver:   saver,
		journal: jrnl,
	}
}
