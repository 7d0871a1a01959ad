package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"indigo/internal/journal"
	"indigo/internal/scoreboard"
	"indigo/internal/scoring"
)

// ApiV1Router manages routes for API version 1.
// Handles the ranked scoring view of a contest, the protocol CSV download,
// the recent exports listing, and serving static files.
// All endpoints follow a REST-like structure.
type ApiV1Router struct {
	// board — scoring board binding contest selection to the ranked view and export.
	board *scoreboard.Board
	// journal — export journal backing the recent exports endpoint.
	journal *journal.Journal
	// static — path to directory with static files.
	// If empty, static file serving is disabled.
	static string
}

// rankedParticipant is a participant summary extended with the user-visible
// place number (1-based, in ranked order).
type rankedParticipant struct {
	Place int `json:"place"`
	scoring.ParticipantSummary
}

type scoresResponse struct {
	ContestID    int                 `json:"contest_id"`
	Participants []rankedParticipant `json:"participants"`
}

// Mux returns a configured *http.ServeMux with registered handlers.
// Registers the following routes:
// - GET /api/v1/contests/{id}/scores — ranked scoring view of a contest
// - GET /api/v1/contests/{id}/protocol — protocol CSV download
// - GET /api/v1/exports — recent protocol exports
// - GET /static/... — serves static files (if enabled)
func (ar *ApiV1Router) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/contests/{id}/scores", ar.scoresHandler)
	mux.HandleFunc("GET /api/v1/contests/{id}/protocol", ar.protocolHandler)
	mux.HandleFunc("GET /api/v1/exports", ar.exportsHandler)

	if len(ar.static) != 0 {
		fs := http.FileServer(http.Dir(ar.static))
		mux.Handle("GET /static/", http.StripPrefix("/static/", fs))
	}

	return mux
}

// contestID extracts and parses the contest id from the URL path.
func contestID(r *http.Request) (int, error) {
	return strconv.Atoi(r.PathValue("id"))
}

// scoresHandler handles requests for the ranked scoring view of a contest.
// Selects the contest on the board (every request re-fetches from the score
// repository) and returns the ranked participants with 1-based places.
// A failed fetch yields an empty participant list, not an error status.
func (ar *ApiV1Router) scoresHandler(w http.ResponseWriter, r *http.Request) {
	id, err := contestID(r)
	if err != nil {
		slog.Warn("Invalid contest id", "id", r.PathValue("id"), "error", err)
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}

	ar.board.SelectContest(r.Context(), id)
	selected, ranked := ar.board.Snapshot()

	response := scoresResponse{
		ContestID:    selected,
		Participants: make([]rankedParticipant, 0, len(ranked)),
	}
	for i, participant := range ranked {
		response.Participants = append(response.Participants, rankedParticipant{
			Place:              i + 1,
			ParticipantSummary: participant,
		})
	}

	body, err := json.Marshal(response)
	if err != nil {
		slog.Warn("Unable to marshal scores response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// protocolHandler handles requests for the official protocol of a contest.
// Selects the contest, produces the CSV artifact and streams it as a file
// download. A contest without participants yields 204 No Content: an empty
// export is a no-op, not an error.
func (ar *ApiV1Router) protocolHandler(w http.ResponseWriter, r *http.Request) {
	id, err := contestID(r)
	if err != nil {
		slog.Warn("Invalid contest id", "id", r.PathValue("id"), "error", err)
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}

	ar.board.SelectContest(r.Context(), id)
	artifact, ok := ar.board.ExportProtocol()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", artifact.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.Write(artifact.Data)
}

// exportsHandler returns the recent protocol export records, oldest first.
func (ar *ApiV1Router) exportsHandler(w http.ResponseWriter, r *http.Request) {
	body, err := json.Marshal(ar.journal.Recent())
	if err != nil {
		slog.Warn("Unable to marshal exports response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// NewApiV1Router creates a new API v1 router.
// Parameters:
// - static: path to static files (can be empty)
// - board: scoring board
// - jrnl: export journal
//
// Returns pointer to configured ApiV1Router.
func NewApiV1Router(static string, board *scoreboard.Board, jrnl *journal.Journal) *ApiV1Router {
	return &ApiV1Router{
		board:   board,
		journal: jrnl,
		static:  static,
	}
}
