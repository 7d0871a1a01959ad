package journal

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"

	"indigo/internal/utils"
)

// Record describes one produced protocol export.
type Record struct {
	// ID — unique identifier of the export record.
	ID string `json:"id"`
	// Time — moment the protocol was produced.
	Time time.Time `json:"time"`
	// ContestID — contest the protocol belongs to.
	ContestID int `json:"contest_id"`
	// Filename — name of the produced CSV artifact.
	Filename string `json:"filename"`
	// Participants — number of ranked participants in section 1.
	Participants int `json:"participants"`
	// JudgeRows — number of per-judge rows in section 2.
	JudgeRows int `json:"judge_rows"`
}

// Journal keeps an audit trail of protocol exports.
// Each export is written as one JSON line to a rotating file (lumberjack)
// and pushed into a bounded in-memory ring served by the API as the list
// of recent exports. A journal created without a file keeps only the ring.
type Journal struct {
	lumberjack *lumberjack.Logger        // rotating file writer, nil when file logging is disabled
	logger     *slog.Logger              // structured logger with custom JSONL output
	recent     *utils.RingBuffer[Record] // most recent export records
}

// Append registers a produced protocol export.
// Assigns the record a fresh identifier and the current time, stores it in
// the recent ring, and, if file logging is enabled, writes it as a JSON line.
// The method is thread-safe thanks to lumberjack and slog.
func (j *Journal) Append(contestID int, filename string, participants, judgeRows int) Record {
	record := Record{
		ID:           uuid.NewString(),
		Time:         time.Now(),
		ContestID:    contestID,
		Filename:     filename,
		Participants: participants,
		JudgeRows:    judgeRows,
	}

	j.recent.Push(record)

	if j.logger != nil {
		j.logger.Info("",
			"id", record.ID,
			"contest_id", record.ContestID,
			"filename", record.Filename,
			"participants", record.Participants,
			"judge_rows", record.JudgeRows,
		)
	}

	return record
}

// Recent returns a copy of the stored export records, oldest first.
func (j *Journal) Recent() []Record {
	return j.recent.ToSlice()
}

// Close closes the underlying file. Should be called when shutting down
// to ensure write completion and rotation of the last file.
// Safe to call on a journal without a file.
func (j *Journal) Close() {
	if j.lumberjack != nil {
		j.lumberjack.Close()
	}
}

// NewJournal creates a new export journal.
// Parameters:
// - file: path to the JSONL file; empty string disables file logging
// - maxSize: maximum file size in MB before rotation
// - maxBackups: maximum number of old files to keep
// - recentSize: capacity of the in-memory recent-exports ring
//
// Returns a pointer to an initialized journal.
func NewJournal(file string, maxSize, maxBackups, recentSize int) *Journal {
	journal := Journal{
		recent: utils.NewRingBuffer[Record](recentSize),
	}

	if len(file) != 0 {
		journal.lumberjack = &lumberjack.Logger{
			Filename:   file,
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
			Compress:   true,
		}
		handler := NewExportJSONHandler(journal.lumberjack, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
		journal.logger = slog.New(handler)
	}

	return &journal
}
