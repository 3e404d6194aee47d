package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListMenus lists the published menu PDFs
func (h *Handler) ListMenus(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	menus, err := h.kitchen(c).Menus(c.Request.Context(), page)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"menus": menus})
}

// LatestMenu returns the most recent menu, for the viewer screens
func (h *Handler) LatestMenu(c *gin.Context) {
	menu, err := h.kitchen(c).LatestMenu(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if menu == nil {
		c.JSON(http.StatusOK, gin.H{"menu": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu": menu})
}

// UploadMenu forwards a menu PDF to the kitchen backend
func (h *Handler) UploadMenu(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not open upload"})
		return
	}
	defer file.Close()

	if err := h.kitchen(c).UploadMenu(c.Request.Context(), fileHeader.Filename, file); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cardápio publicado"})
}

// DeleteMenu removes a published menu
func (h *Handler) DeleteMenu(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.okOrError(c, h.kitchen(c).DeleteMenu(c.Request.Context(), id), "Cardápio removido")
}

// ListAuthorized lists the direction-authorized meal requests
func (h *Handler) ListAuthorized(c *gin.Context) {
	entries, err := h.kitchen(c).AuthorizedEntries(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// CreateAuthorized files a request; status always starts "pendente"
func (h *Handler) CreateAuthorized(c *gin.Context) {
	body, ok := h.bindBody(c)
	if !ok {
		return
	}
	h.okOrError(c, h.kitchen(c).CreateAuthorizedEntry(c.Request.Context(), body), "Solicitação registrada")
}

// UpdateAuthorized updates a request, typically approving or denying it
func (h *Handler) UpdateAuthorized(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	body, ok := h.bindBody(c)
	if !ok {
		return
	}
	h.okOrError(c, h.kitchen(c).UpdateAuthorizedEntry(c.Request.Context(), id, body), "Solicitação atualizada")
}

// DeleteAuthorized removes a request
func (h *Handler) DeleteAuthorized(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.okOrError(c, h.kitchen(c).DeleteAuthorizedEntry(c.Request.Context(), id), "Solicitação removida")
}

// ListProduction lists production/waste control entries
func (h *Handler) ListProduction(c *gin.Context) {
	records, err := h.kitchen(c).ProductionRecords(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

// CreateProduction adds a production/waste entry
func (h *Handler) CreateProduction(c *gin.Context) {
	body, ok := h.bindBody(c)
	if !ok {
		return
	}
	h.okOrError(c, h.kitchen(c).CreateProductionRecord(c.Request.Context(), body), "Registro criado")
}

// UpdateProduction updates a production/waste entry
func (h *Handler) UpdateProduction(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	body, ok := h.bindBody(c)
	if !ok {
		return
	}
	h.okOrError(c, h.kitchen(c).UpdateProductionRecord(c.Request.Context(), id, body), "Registro atualizado")
}

// DeleteProduction removes a production/waste entry
func (h *Handler) DeleteProduction(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.okOrError(c, h.kitchen(c).DeleteProductionRecord(c.Request.Context(), id), "Registro removido")
}

// ListUsers lists application users
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	users, err := h.kitchen(c).Users(c.Request.Context(), page)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// CreateUser registers an application user
func (h *Handler) CreateUser(c *gin.Context) {
	body, ok := h.bindBody(c)
	if !ok {
		return
	}
	h.okOrError(c, h.kitchen(c).CreateUser(c.Request.Context(), body), "Usuário criado")
}

// UpdateUser updates an application user
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	body, ok := h.bindBody(c)
	if !ok {
		return
	}
	h.okOrError(c, h.kitchen(c).UpdateUser(c.Request.Context(), id, body), "Usuário atualizado")
}

// DeleteUser removes an application user
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.okOrError(c, h.kitchen(c).DeleteUser(c.Request.Context(), id), "Usuário removido")
}
