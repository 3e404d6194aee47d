package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dfarias/merenda-gateway-go/pkg/models"
)

// weekday labels as the kitchen backend names its schedule columns
var weekdayLabels = [7]string{"Domingo", "Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado"}

// TodayCounts joins today's meal counts with the class list so the
// counting screen renders one row per class, counted or not
func (h *Handler) TodayCounts(c *gin.Context) {
	ctx := c.Request.Context()
	client := h.kitchen(c)

	classes, err := client.Classes(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	counts, err := client.CountsToday(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}

	byClass := make(map[int]models.MealCount, len(counts))
	for _, count := range counts {
		byClass[count.ClassID] = count
	}

	rows := make([]gin.H, 0, len(classes))
	for _, class := range classes {
		row := gin.H{"turma": class}
		if count, ok := byClass[class.ID]; ok {
			row["contagem"] = count
		}
		rows = append(rows, row)
	}

	c.JSON(http.StatusOK, gin.H{"date": time.Now().Format("2006-01-02"), "rows": rows})
}

// AddCount records a class's count for today
func (h *Handler) AddCount(c *gin.Context) {
	var req struct {
		ClassID  int `json:"turmas_id" binding:"required"`
		Quantity int `json:"qtd_contagem" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.kitchen(c).AddCount(c.Request.Context(), req.ClassID, req.Quantity); err != nil {
		h.respondError(c, err)
		return
	}
	h.RecordDeviceUsage(c, req.Quantity)
	c.JSON(http.StatusOK, gin.H{"message": "Contagem registrada"})
}

// UpdateCount corrects an already recorded count
func (h *Handler) UpdateCount(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid count id"})
		return
	}
	var req struct {
		Quantity int `json:"qtd_contagem" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.kitchen(c).UpdateCount(c.Request.Context(), id, req.Quantity); err != nil {
		h.respondError(c, err)
		return
	}
	h.RecordDeviceUsage(c, 0)
	c.JSON(http.StatusOK, gin.H{"message": "Contagem atualizada"})
}

// TodaySpecials returns the relations scheduled on today's weekday
// along with today's special-needs check-ins, so the counting screen
// can tick scheduled students off as they arrive
func (h *Handler) TodaySpecials(c *gin.Context) {
	ctx := c.Request.Context()
	client := h.kitchen(c)

	days, err := client.WeeklySchedule(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}

	today := weekdayLabels[time.Now().Weekday()]
	var scheduled []models.ScheduledStudent
	for _, day := range days {
		if day.Label == today {
			scheduled = day.Students
			break
		}
	}

	entries, err := client.NESEntries(ctx, time.Now().Format("2006-01-02"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"weekday":   today,
		"scheduled": scheduled,
		"entries":   entries,
	})
}

// CheckInSpecial records a scheduled special-needs student on a count
func (h *Handler) CheckInSpecial(c *gin.Context) {
	var req struct {
		CountID    int `json:"contagem_id" binding:"required"`
		RelationID int `json:"alunos_has_necessidades_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.kitchen(c).AddNESEntry(c.Request.Context(), req.CountID, req.RelationID); err != nil {
		h.respondError(c, err)
		return
	}
	h.RecordDeviceUsage(c, 1)
	c.JSON(http.StatusOK, gin.H{"message": "Aluno registrado na contagem"})
}

// CheckOutSpecial undoes a special-needs check-in
func (h *Handler) CheckOutSpecial(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	if err := h.kitchen(c).RemoveNESEntry(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Registro removido"})
}

// CountsReport returns raw counts for a date range plus the backend's
// dashboard aggregate, for the general report screen
func (h *Handler) CountsReport(c *gin.Context) {
	ctx := c.Request.Context()
	client := h.kitchen(c)

	from := c.Query("data_inicio")
	to := c.Query("data_fim")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "data_inicio and data_fim are required"})
		return
	}

	counts, err := client.CountsRange(ctx, from, to)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

// CountsDashboard proxies the backend's aggregated dashboard figures
func (h *Handler) CountsDashboard(c *gin.Context) {
	raw, err := h.kitchen(c).CountsDashboard(c.Request.Context(), c.Query("data"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}
