// Package httpapi is the HTTP surface over the puzzle store and the
// generation orchestrator: a public read path for the day's puzzle and
// an admin-guarded endpoint to trigger a new one.
package httpapi

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lesmotsdatche/crossgen/internal/domain"
	"github.com/lesmotsdatche/crossgen/internal/storage"
	"github.com/lesmotsdatche/crossgen/pkg/orchestrator"
)

// Handlers holds the dependencies shared by the HTTP routes.
type Handlers struct {
	store *storage.Store
	orch  *orchestrator.Orchestrator
}

func NewHandlers(store *storage.Store, orch *orchestrator.Orchestrator) *Handlers {
	return &Handlers{store: store, orch: orch}
}

// Health reports basic liveness.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
}

// GetPuzzleByDate returns the published puzzle for the requested date
// with answers stripped from its clues.
func (h *Handlers) GetPuzzleByDate(c *gin.Context) {
	date := c.Param("date")

	puzzle, err := h.store.Get(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
		return
	}
	if puzzle == nil || puzzle.Status != domain.StatusPublished {
		c.JSON(http.StatusNotFound, gin.H{"error": "puzzle not found"})
		return
	}

	c.JSON(http.StatusOK, sanitizeForClient(puzzle))
}

// GenerateRequest is the body accepted by the generation trigger.
type GenerateRequest struct {
	Date        string `json:"date" binding:"required"`
	Difficulty  int    `json:"difficulty" binding:"required,min=1,max=5"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	Seed        int64  `json:"seed"`
	MaxAttempts int    `json:"maxAttempts"`
}

// TriggerGeneration runs the orchestrator for the requested date,
// stores the result, and publishes it if the QA scorecard raised no
// risk flags. A flagged draft is stored but left unpublished for
// editorial review.
func (h *Handlers) TriggerGeneration(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Minute)
	defer cancel()

	bundle, err := h.orch.Generate(ctx, orchestrator.Request{
		Date:        req.Date,
		Difficulty:  req.Difficulty,
		Rows:        req.Rows,
		Cols:        req.Cols,
		Seed:        req.Seed,
		MaxAttempts: req.MaxAttempts,
	})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	puzzle := bundle.Puzzle
	if puzzle.ID == "" {
		puzzle.ID = uuid.New().String()
	}
	puzzle.CreatedAt = time.Now()
	puzzle.Status = domain.StatusDraft

	if err := h.store.Put(ctx, &puzzle); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store generated puzzle"})
		return
	}

	if len(bundle.Report.RiskFlags) == 0 {
		if err := h.store.UpdateStatus(ctx, puzzle.Date, domain.StatusPublished); err != nil {
			log.Printf("generated puzzle for %s stored as draft but publish failed: %v", puzzle.Date, err)
		} else {
			puzzle.Status = domain.StatusPublished
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"puzzle": puzzle,
		"report": bundle.Report,
	})
}

// sanitizeForClient clears every clue's Answer and OriginalAnswer and
// every cell's Solution before a puzzle leaves the service.
func sanitizeForClient(puzzle *domain.Puzzle) *domain.Puzzle {
	sanitized := *puzzle

	sanitized.Clues.Across = make([]domain.Clue, len(puzzle.Clues.Across))
	for i, clue := range puzzle.Clues.Across {
		clue.Answer = ""
		clue.OriginalAnswer = ""
		sanitized.Clues.Across[i] = clue
	}

	sanitized.Clues.Down = make([]domain.Clue, len(puzzle.Clues.Down))
	for i, clue := range puzzle.Clues.Down {
		clue.Answer = ""
		clue.OriginalAnswer = ""
		sanitized.Clues.Down[i] = clue
	}

	sanitized.Grid = make([][]domain.Cell, len(puzzle.Grid))
	for r, row := range puzzle.Grid {
		sanitized.Grid[r] = make([]domain.Cell, len(row))
		for c, cell := range row {
			cell.Solution = 0
			sanitized.Grid[r][c] = cell
		}
	}

	return &sanitized
}
