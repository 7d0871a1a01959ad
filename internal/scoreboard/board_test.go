package scoreboard

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indigo/internal/journal"
	"indigo/internal/protocol"
	"indigo/internal/scoring"
)

func avg(v float64) *float64 {
	return &v
}

// stubRepo serves canned summaries per contest id.
type stubRepo struct {
	data map[int][]scoring.ParticipantSummary
	err  error
}

func (r *stubRepo) FetchScores(_ context.Context, contestID int) ([]scoring.ParticipantSummary, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.data[contestID], nil
}

// blockingRepo holds each fetch until its release channel is closed and
// signals when the fetch has started, making overlap deterministic in tests.
type blockingRepo struct {
	data    map[int][]scoring.ParticipantSummary
	started map[int]chan struct{}
	release map[int]chan struct{}
}

func (r *blockingRepo) FetchScores(_ context.Context, contestID int) ([]scoring.ParticipantSummary, error) {
	close(r.started[contestID])
	<-r.release[contestID]
	return r.data[contestID], nil
}

// capturingSaver keeps every saved artifact.
type capturingSaver struct {
	saved []protocol.Artifact
}

func (s *capturingSaver) Save(artifact protocol.Artifact) error {
	s.saved = append(s.saved, artifact)
	return nil
}

func TestBoard_SelectContest_RanksFetched(t *testing.T) {
	repo := &stubRepo{data: map[int][]scoring.ParticipantSummary{
		7: {
			{ID: 1, Name: "Смирнова", AverageScore: avg(7.0)},
			{ID: 2, Name: "Иванов", AverageScore: avg(9.5)},
		},
	}}
	board := NewBoard(repo, nil, nil, nil)

	board.SelectContest(context.Background(), 7)

	contestID, ranked := board.Snapshot()
	assert.Equal(t, 7, contestID)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Иванов", ranked[0].Name, "participants must be ranked by average descending")
}

func TestBoard_FetchFailureTreatedAsEmpty(t *testing.T) {
	repo := &stubRepo{err: errors.New("connection refused")}
	board := NewBoard(repo, nil, nil, nil)

	board.SelectContest(context.Background(), 7)

	contestID, ranked := board.Snapshot()
	assert.Equal(t, 7, contestID)
	assert.Empty(t, ranked, "a failed fetch must yield an empty ranked list")
}

func TestBoard_StaleResponseDiscarded(t *testing.T) {
	repo := &blockingRepo{
		data: map[int][]scoring.ParticipantSummary{
			1: {{ID: 10, Name: "Старый", AverageScore: avg(9.9)}},
			2: {{ID: 20, Name: "Новый", AverageScore: avg(5.0)}},
		},
		started: map[int]chan struct{}{1: make(chan struct{}), 2: make(chan struct{})},
		release: map[int]chan struct{}{1: make(chan struct{}), 2: make(chan struct{})},
	}
	board := NewBoard(repo, nil, nil, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		board.SelectContest(context.Background(), 1)
	}()
	// Дожидаемся, пока первый запрос реально уйдёт, и только потом
	// выбираем другой конкурс.
	<-repo.started[1]

	close(repo.release[2])
	board.SelectContest(context.Background(), 2)

	// Отпускаем устаревший ответ: он не должен перетереть новый выбор.
	close(repo.release[1])
	wg.Wait()

	contestID, ranked := board.Snapshot()
	assert.Equal(t, 2, contestID)
	require.Len(t, ranked, 1)
	assert.Equal(t, 20, ranked[0].ID, "stale response must not overwrite the newer selection")
}

func TestBoard_ExportProtocol_EmptyNoOp(t *testing.T) {
	saver := &capturingSaver{}
	board := NewBoard(&stubRepo{}, nil, saver, nil)
	board.SelectContest(context.Background(), 7)

	_, ok := board.ExportProtocol()
	assert.False(t, ok, "export of an empty board must be a no-op")
	assert.Empty(t, saver.saved)
}

func TestBoard_ExportProtocol_SavesAndJournals(t *testing.T) {
	repo := &stubRepo{data: map[int][]scoring.ParticipantSummary{
		42: {
			{ID: 1, Name: "Иванов", AverageScore: avg(9.5), ScoreCount: 2,
				JudgeScores: []scoring.JudgeScore{
					{JudgeName: "Петрова", Score: 9.0},
					{JudgeName: "Сидоров", Score: 10.0},
				}},
			{ID: 2, Name: "Смирнова", AverageScore: nil, ScoreCount: 0},
		},
	}}
	saver := &capturingSaver{}
	jrnl := journal.NewJournal("", 0, 0, 8)
	board := NewBoard(repo, nil, saver, jrnl)

	board.SelectContest(context.Background(), 42)
	artifact, ok := board.ExportProtocol()
	require.True(t, ok)

	assert.True(t, strings.HasPrefix(artifact.Filename, "protocol_contest_42_"))
	require.Len(t, saver.saved, 1)
	assert.Equal(t, artifact.Filename, saver.saved[0].Filename)

	records := jrnl.Recent()
	require.Len(t, records, 1)
	assert.Equal(t, 42, records[0].ContestID)
	assert.Equal(t, 2, records[0].Participants)
	assert.Equal(t, 2, records[0].JudgeRows)
	assert.NotEmpty(t, records[0].ID)
}

func TestBoard_ReselectSameContestRefetches(t *testing.T) {
	repo := &stubRepo{data: map[int][]scoring.ParticipantSummary{
		7: {{ID: 1, Name: "Иванов", AverageScore: avg(9.5)}},
	}}
	board := NewBoard(repo, nil, nil, nil)

	board.SelectContest(context.Background(), 7)
	repo.data[7] = append(repo.data[7], scoring.ParticipantSummary{ID: 2, Name: "Петров", AverageScore: avg(8.0)})
	board.SelectContest(context.Background(), 7)

	_, ranked := board.Snapshot()
	assert.Len(t, ranked, 2, "reselecting the same contest must re-fetch")
}
