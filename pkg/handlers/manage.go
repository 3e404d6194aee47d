package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dfarias/merenda-gateway-go/pkg/board"
)

func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func (h *Handler) bindBody(c *gin.Context) (map[string]any, bool) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return body, true
}

func (h *Handler) okOrError(c *gin.Context, err error, message string) {
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// ListNeeds returns every need category, flagging the reserved one
func (h *Handler) ListNeeds(c *gin.Context) {
	needs, err := h.kitchen(c).Needs(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"needs":       needs,
		"schedulable": board.SchedulableNeeds(needs),
	})
}

// NeedDetail returns one need with its associated students
func (h *Handler) NeedDetail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	need, err := h.kitchen(c).NeedWithStudents(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, need)
}

// CreateNeed registers a need category
func (h *Handler) CreateNeed(c *gin.Context) {
	var req struct {
		Label string `json:"necessidade" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.okOrError(c, h.kitchen(c).CreateNeed(c.Request.Context(), req.Label), "Necessidade criada")
}

// UpdateNeed renames a need category
func (h *Handler) UpdateNeed(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Label string `json:"necessidade" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.okOrError(c, h.kitchen(c).UpdateNeed(c.Request.Context(), id, req.Label), "Necessidade atualizada")
}

// DeleteNeed removes a need category
func (h *Handler) DeleteNeed(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.okOrError(c, h.kitchen(c).DeleteNeed(c.Request.Context(), id), "Necessidade removida")
}

// ListStudents lists student records
func (h *Handler) ListStudents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "1000"))
	students, err := h.kitchen(c).Students(c.Request.Context(), page, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": students})
}

// CreateStudent registers a student
func (h *Handler) CreateStudent(c *gin.Context) {
	body, ok := h.bindBody(c)
	if !ok {
		return
	}
	h.okOrError(c, h.kitchen(c).CreateStudent(c.Request.Context(), body), "Aluno criado")
}

// UpdateStudent updates a student record
func (h *Handler) UpdateStudent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	body, ok := h.bindBody(c)
	if !ok {
		return
	}
	h.okOrError(c, h.kitchen(c).UpdateStudent(c.Request.Context(), id, body), "Aluno atualizado")
}

// DeleteStudent removes a student record
func (h *Handler) DeleteStudent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.okOrError(c, h.kitchen(c).DeleteStudent(c.Request.Context(), id), "Aluno removido")
}

// AssociateNeeds creates student-need relations; the new relation ids
// appear on the next board reload
func (h *Handler) AssociateNeeds(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		NeedIDs []int `json:"necessidades" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.okOrError(c, h.kitchen(c).AssociateNeeds(c.Request.Context(), id, req.NeedIDs), "Aluno associado")
}

// DissociateStudent removes a student's relation to a need
func (h *Handler) DissociateStudent(c *gin.Context) {
	needID, ok := pathID(c, "id")
	if !ok {
		return
	}
	studentID, ok := pathID(c, "student")
	if !ok {
		return
	}
	h.okOrError(c, h.kitchen(c).DissociateStudent(c.Request.Context(), needID, studentID), "Aluno desassociado")
}

// SyncRelationDays reconciles a relation's full weekday set against a
// desired set: assigns the missing days in one call, then removes each
// dropped day. The calls are independent; a partial failure leaves the
// relation on some intermediate set, visible on the next reload.
func (h *Handler) SyncRelationDays(c *gin.Context) {
	relationID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Days []int `json:"dias"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	client := h.kitchen(c)

	snap, err := board.Load(ctx, client)
	if err != nil {
		h.respondError(c, err)
		return
	}

	current := make(map[int]bool)
	for _, col := range snap.Board.Columns {
		for _, occ := range col.Occurrences {
			if occ.RelationID == relationID {
				current[col.DayID] = true
			}
		}
	}

	desired := make(map[int]bool, len(req.Days))
	var toAdd []int
	for _, dayID := range req.Days {
		desired[dayID] = true
		if !current[dayID] {
			toAdd = append(toAdd, dayID)
		}
	}

	if len(toAdd) > 0 {
		if err := client.AssignDays(ctx, relationID, toAdd); err != nil {
			h.respondError(c, err)
			return
		}
	}
	for dayID := range current {
		if desired[dayID] {
			continue
		}
		if err := client.UnassignDays(ctx, relationID, []int{dayID}); err != nil {
			h.respondError(c, err)
			return
		}
	}

	h.recordAudit(c, "sync_days", relationID, 0, 0, "ok")
	c.JSON(http.StatusOK, gin.H{"message": "Agendamento atualizado"})
}

// RelationDays lists the weekdays one relation is scheduled on
func (h *Handler) RelationDays(c *gin.Context) {
	relationID, ok := pathID(c, "id")
	if !ok {
		return
	}
	days, err := h.kitchen(c).RelationDays(c.Request.Context(), relationID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// ListClasses lists school classes
func (h *Handler) ListClasses(c *gin.Context) {
	classes, err := h.kitchen(c).Classes(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"classes": classes})
}

// CreateClass registers a class
func (h *Handler) CreateClass(c *gin.Context) {
	body, ok := h.bindBody(c)
	if !ok {
		return
	}
	h.okOrError(c, h.kitchen(c).CreateClass(c.Request.Context(), body), "Turma criada")
}

// UpdateClass updates a class
func (h *Handler) UpdateClass(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	body, ok := h.bindBody(c)
	if !ok {
		return
	}
	h.okOrError(c, h.kitchen(c).UpdateClass(c.Request.Context(), id, body), "Turma atualizada")
}

// DeleteClass removes a class
func (h *Handler) DeleteClass(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.okOrError(c, h.kitchen(c).DeleteClass(c.Request.Context(), id), "Turma removida")
}

// ListCategories lists meal categories
func (h *Handler) ListCategories(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	categories, err := h.kitchen(c).Categories(c.Request.Context(), page)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory registers a category
func (h *Handler) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"nome_categoria" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.okOrError(c, h.kitchen(c).CreateCategory(c.Request.Context(), req.Name), "Categoria criada")
}

// UpdateCategory renames a category
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Name string `json:"nome_categoria" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.okOrError(c, h.kitchen(c).UpdateCategory(c.Request.Context(), id, req.Name), "Categoria atualizada")
}

// DeleteCategory removes a category
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.okOrError(c, h.kitchen(c).DeleteCategory(c.Request.Context(), id), "Categoria removida")
}
