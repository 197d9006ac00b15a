package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/saloes-online/internal/audit"
	"github.com/BruksfildServices01/saloes-online/internal/dto"
	"github.com/BruksfildServices01/saloes-online/internal/httperr"
	"github.com/BruksfildServices01/saloes-online/internal/httpresp"
	"github.com/BruksfildServices01/saloes-online/internal/middleware"
	"github.com/BruksfildServices01/saloes-online/internal/models"
)

type ClientRepository interface {
	List(ctx context.Context, salaoID string) ([]models.Client, error)
	Create(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, id string) error
}

// ClientHandler administra a tabela clientes. Só existe com banco remoto;
// repo nil responde 503.
type ClientHandler struct {
	repo  ClientRepository
	audit audit.Recorder
}

func NewClientHandler(repo ClientRepository, rec audit.Recorder) *ClientHandler {
	if rec == nil {
		rec = audit.Nop{}
	}
	return &ClientHandler{repo: repo, audit: rec}
}

type CreateClientRequest struct {
	SalaoID  string `json:"salao_id"`
	Nome     string `json:"nome" binding:"required"`
	Email    string `json:"email"`
	Telefone string `json:"telefone"`
	Endereco string `json:"endereco"`
}

func (h *ClientHandler) available(c *gin.Context) bool {
	if h.repo == nil {
		httperr.ServiceUnavailable(c, "remote_not_configured", "Banco remoto não configurado.")
		return false
	}
	return true
}

// ======================================================
// LIST CLIENTS
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	if !h.available(c) {
		return
	}

	clients, err := h.repo.List(c.Request.Context(), strings.TrimSpace(c.Query("salao_id")))
	if err != nil {
		httperr.BadGateway(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	out := make([]dto.ClientListDTO, 0, len(clients))
	for _, cl := range clients {
		item := dto.ClientListDTO{
			ID:        cl.ID,
			SalaoID:   cl.SalaoID,
			Nome:      cl.Nome,
			Email:     cl.Email,
			Telefone:  cl.Telefone,
			Endereco:  cl.Endereco,
			CreatedAt: cl.CreatedAt,
		}
		if cl.Salao != nil {
			item.SalaoNome = cl.Salao.Nome
		}
		out = append(out, item)
	}

	httpresp.List(c, out)
}

func (h *ClientHandler) Create(c *gin.Context) {
	if !h.available(c) {
		return
	}

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Nome) == "" {
		httperr.BadRequest(c, "invalid_request", "Nome é obrigatório.")
		return
	}

	client := models.Client{
		Nome:     strings.TrimSpace(req.Nome),
		Email:    strings.TrimSpace(req.Email),
		Telefone: strings.TrimSpace(req.Telefone),
		Endereco: strings.TrimSpace(req.Endereco),
	}
	if id := strings.TrimSpace(req.SalaoID); id != "" {
		client.SalaoID = &id
	}

	if err := h.repo.Create(c.Request.Context(), &client); err != nil {
		httperr.BadGateway(c, "failed_to_create_client", "Erro ao cadastrar cliente.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    middleware.Actor(c),
		Action:   audit.ActionClientCreated,
		Entity:   "cliente",
		EntityID: client.ID,
	})

	httpresp.Created(c, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	if !h.available(c) {
		return
	}

	id := c.Param("id")
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		httperr.BadGateway(c, "failed_to_delete_client", "Erro ao excluir cliente.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    middleware.Actor(c),
		Action:   audit.ActionClientDeleted,
		Entity:   "cliente",
		EntityID: id,
	})

	c.Status(http.StatusNoContent)
}
