package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/saloes-online/internal/httperr"
	"github.com/BruksfildServices01/saloes-online/internal/usecase/lead"
)

type LeadSubmitter interface {
	Execute(ctx context.Context, in lead.Input) (lead.Result, error)
}

type LeadHandler struct {
	submit LeadSubmitter
}

func NewLeadHandler(submit LeadSubmitter) *LeadHandler {
	return &LeadHandler{submit: submit}
}

func (h *LeadHandler) Submit(c *gin.Context) {
	var in lead.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	res, err := h.submit.Execute(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"delivered": res.Delivered,
		"message":   leadMessage(res),
	})
}

func leadMessage(res lead.Result) string {
	if !res.Delivered {
		return "Cadastro recebido! Entraremos em contato em breve."
	}
	return "Cadastro enviado com sucesso! Entraremos em contato em breve."
}
