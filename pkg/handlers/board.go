package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dfarias/merenda-gateway-go/pkg/board"
)

// boardPayload is what the scheduler page renders from
func boardPayload(snap *board.Snapshot, poolNeedID int) gin.H {
	return gin.H{
		"needs":   snap.Needs,
		"columns": snap.Board.Columns,
		"pool":    snap.Pool(poolNeedID),
	}
}

// poolFilter reads the ?need= query: absent or "all" selects everything
func poolFilter(c *gin.Context) (int, bool) {
	raw := c.DefaultQuery("need", "all")
	if raw == "all" {
		return board.AllNeeds, true
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// GetBoard performs the full three-source fetch and returns the freshly
// derived board plus the filter pool
func (h *Handler) GetBoard(c *gin.Context) {
	needID, ok := poolFilter(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid need filter"})
		return
	}

	snap, err := board.Load(c.Request.Context(), h.kitchen(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, boardPayload(snap, needID))
}

// DropGesture resolves a settled drag gesture: copy from the pool,
// move between days, or a no-op drop
func (h *Handler) DropGesture(c *gin.Context) {
	var gesture board.Gesture
	if err := c.ShouldBindJSON(&gesture); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	client := h.kitchen(c)
	rec := board.NewReconciler(client, client, h.Log)
	res := rec.Drop(c.Request.Context(), gesture)
	h.recordAudit(c, "drop", gesture.RelationID, gesture.SourceDay, gesture.DestDay, string(res.Outcome))

	switch res.Outcome {
	case board.OutcomeNoop:
		c.JSON(http.StatusOK, gin.H{"outcome": res.Outcome})
	case board.OutcomeAlreadyScheduled:
		// warning, not an error; the client keeps its current board
		c.JSON(http.StatusConflict, gin.H{
			"outcome": res.Outcome,
			"warning": "Este aluno já está agendado neste dia.",
		})
	case board.OutcomeFailed:
		payload := gin.H{"outcome": res.Outcome, "error": "Não foi possível salvar o agendamento."}
		if res.Snapshot != nil {
			payload["board"] = boardPayload(res.Snapshot, board.AllNeeds)
		}
		c.JSON(http.StatusBadGateway, payload)
	default:
		payload := gin.H{"outcome": res.Outcome}
		if res.Snapshot != nil {
			payload["board"] = boardPayload(res.Snapshot, board.AllNeeds)
		} else if res.Err != nil {
			// mutation landed but the reload failed; the client should re-fetch
			payload["warning"] = "Não foi possível recarregar o cronograma."
		}
		c.JSON(http.StatusOK, payload)
	}
}

// RemoveOccurrence unschedules a relation from one day. The UI asks for
// confirmation before calling this.
func (h *Handler) RemoveOccurrence(c *gin.Context) {
	dayID, err := strconv.Atoi(c.Param("day"))
	if err != nil || dayID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day id"})
		return
	}
	relationID, err := strconv.Atoi(c.Param("relation"))
	if err != nil || relationID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid relation id"})
		return
	}

	client := h.kitchen(c)
	rec := board.NewReconciler(client, client, h.Log)
	res := rec.Remove(c.Request.Context(), relationID, dayID)
	h.recordAudit(c, "remove", relationID, dayID, 0, string(res.Outcome))

	if res.Outcome == board.OutcomeFailed {
		h.respondError(c, res.Err)
		return
	}

	payload := gin.H{"outcome": res.Outcome}
	if res.Snapshot != nil {
		payload["board"] = boardPayload(res.Snapshot, board.AllNeeds)
	}
	c.JSON(http.StatusOK, payload)
}

// GetPool returns just the filtered drag-source list, for filter
// changes that do not need a full board reload
func (h *Handler) GetPool(c *gin.Context) {
	needID, ok := poolFilter(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid need filter"})
		return
	}

	snap, err := board.Load(c.Request.Context(), h.kitchen(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pool": snap.Pool(needID)})
}
