package protocol

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indigo/internal/scoring"
)

func avg(v float64) *float64 {
	return &v
}

func comment(s string) *string {
	return &s
}

// exampleRanked — эталонный сценарий из протокола: два участника,
// у первого две оценки жюри, у второго ни одной.
func exampleRanked() []scoring.ParticipantSummary {
	return []scoring.ParticipantSummary{
		{
			ID: 1, Name: "Иванов", Age: 15, Nomination: "Вокал",
			AverageScore: avg(9.5), ScoreCount: 2,
			JudgeScores: []scoring.JudgeScore{
				{JudgeName: "Петрова", Score: 9.0, Comment: nil},
				{JudgeName: "Сидоров", Score: 10.0, Comment: comment("Отлично")},
			},
		},
		{
			ID: 2, Name: "Смирнова", Age: 12, Nomination: "Танец",
			AverageScore: nil, ScoreCount: 0,
			JudgeScores: []scoring.JudgeScore{},
		},
	}
}

func TestBuild_EmptyIsNoOp(t *testing.T) {
	artifact, ok := Build(7, nil, time.Now())
	assert.False(t, ok, "empty ranked list must not produce an artifact")
	assert.Empty(t, artifact.Data)

	_, ok = Build(7, []scoring.ParticipantSummary{}, time.Now())
	assert.False(t, ok)
}

func TestBuild_ExampleProtocol(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)
	artifact, ok := Build(42, exampleRanked(), at)
	require.True(t, ok)

	expected := "\xEF\xBB\xBF" + strings.Join([]string{
		"Место,ФИО,Возраст,Номинация,Средний балл,Количество оценок",
		`1,"Иванов",15,"Вокал",9.50,2`,
		`2,"Смирнова",12,"Танец",—,0`,
		"",
		"",
		"Детальные оценки жюри:",
		"Участник,Член жюри,Оценка,Комментарий",
		`"Иванов","Петрова",9.0,""`,
		`"Иванов","Сидоров",10.0,"Отлично"`,
	}, "\n")

	assert.Equal(t, expected, string(artifact.Data), "protocol bytes must match the reference contract exactly")
	assert.Equal(t, "text/csv;charset=utf-8", artifact.MimeType)
}

func TestBuild_Filename(t *testing.T) {
	at := time.Date(2025, 3, 1, 23, 59, 59, 0, time.UTC)
	artifact, ok := Build(42, exampleRanked(), at)
	require.True(t, ok)
	assert.Equal(t, "protocol_contest_42_2025-03-01.csv", artifact.Filename)
}

func TestBuild_RowCounts(t *testing.T) {
	ranked := exampleRanked()
	artifact, ok := Build(1, ranked, time.Now())
	require.True(t, ok)

	lines := strings.Split(strings.TrimPrefix(string(artifact.Data), "\xEF\xBB\xBF"), "\n")

	// Секция 1: заголовок + строка на каждого участника
	section1 := lines[:len(ranked)+1]
	assert.Len(t, section1, 3)

	// Две пустые строки и подзаголовок между секциями
	assert.Equal(t, "", lines[len(ranked)+1])
	assert.Equal(t, "", lines[len(ranked)+2])
	assert.Equal(t, "Детальные оценки жюри:", lines[len(ranked)+3])

	// Секция 2: заголовок + строка на каждую пару (участник, оценка)
	judgeRows := 0
	for _, p := range ranked {
		judgeRows += len(p.JudgeScores)
	}
	section2 := lines[len(ranked)+4:]
	assert.Len(t, section2, judgeRows+1)
}

func TestBuild_NilAverageNeverZero(t *testing.T) {
	ranked := []scoring.ParticipantSummary{
		{ID: 1, Name: "Смирнова", Age: 12, Nomination: "Танец", AverageScore: nil, ScoreCount: 0},
	}
	artifact, ok := Build(3, ranked, time.Now())
	require.True(t, ok)

	content := string(artifact.Data)
	assert.Contains(t, content, `1,"Смирнова",12,"Танец",—,0`)
	assert.NotContains(t, content, "0.00", "nil average must display as — and never as 0.00")
}

// Кавычки внутри значений экранируются только во второй секции —
// воспроизводим асимметрию эталонного поведения.
func TestBuild_QuoteEscapingAsymmetry(t *testing.T) {
	ranked := []scoring.ParticipantSummary{
		{
			ID: 1, Name: `Ансамбль "Радуга"`, Age: 10, Nomination: "Вокал",
			AverageScore: avg(8.0), ScoreCount: 1,
			JudgeScores: []scoring.JudgeScore{
				{JudgeName: "Петрова", Score: 8.0, Comment: comment(`Номер "Весна"`)},
			},
		},
	}
	artifact, ok := Build(5, ranked, time.Now())
	require.True(t, ok)

	content := string(artifact.Data)
	assert.Contains(t, content, `1,"Ансамбль "Радуга"",10,"Вокал",8.00,1`,
		"section 1 does not escape internal quotes")
	assert.Contains(t, content, `"Ансамбль "Радуга"","Петрова",8.0,"Номер ""Весна"""`,
		"section 2 doubles internal quotes in the comment")
}

func TestDirectorySaver_Save(t *testing.T) {
	dir := t.TempDir()
	saver := NewDirectorySaver(dir)

	artifact, ok := Build(42, exampleRanked(), time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	require.NoError(t, saver.Save(artifact))

	written, err := os.ReadFile(filepath.Join(dir, artifact.Filename))
	require.NoError(t, err)
	assert.Equal(t, artifact.Data, written)
}
