package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/saloes-online/internal/catalog"
	"github.com/BruksfildServices01/saloes-online/internal/domain/salon"
	"github.com/BruksfildServices01/saloes-online/internal/httperr"
)

type businessMessage struct {
	status  int
	message string
}

var businessMessages = map[string]businessMessage{
	"nome_required":             {http.StatusBadRequest, "Nome é obrigatório."},
	"endereco_required":         {http.StatusBadRequest, "Endereço é obrigatório."},
	"telefone_required":         {http.StatusBadRequest, "Telefone é obrigatório."},
	"missing_required_fields":   {http.StatusBadRequest, "Por favor, preencha todos os campos obrigatórios."},
	"invalid_email":             {http.StatusBadRequest, "E-mail inválido."},
	"invalid_email_domain":      {http.StatusBadRequest, "O domínio do e-mail informado não parece ser válido."},
	"email_send_failed":         {http.StatusBadGateway, "Erro ao enviar cadastro. Tente novamente."},
	"empty_logo":                {http.StatusBadRequest, "Arquivo de logo vazio."},
	"invalid_logo_format":       {http.StatusBadRequest, "Formato de logo não suportado. Use PNG, JPG, GIF, WEBP ou SVG."},
	"invalid_logo_image":        {http.StatusBadRequest, "Não foi possível ler a imagem do logo."},
	"invalid_logo_url":          {http.StatusBadRequest, "URL de logo inválida."},
	"invalid_data_uri":          {http.StatusBadRequest, "Logo embutido inválido."},
	"logo_too_large":            {http.StatusBadRequest, "O logo deve ter no máximo 5MB."},
	"logo_dimensions_too_large": {http.StatusBadRequest, "O logo deve ter no máximo 4096x4096 pixels."},
}

// writeError traduz erros de domínio e do backend remoto para a resposta HTTP.
func writeError(c *gin.Context, err error) {
	if code := httperr.Code(err); code != "" {
		if m, ok := businessMessages[code]; ok {
			httperr.Write(c, m.status, code, m.message)
			return
		}
		httperr.BadRequest(c, code, "Dados inválidos.")
		return
	}

	switch {
	case errors.Is(err, salon.ErrNotFound):
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
	case errors.Is(err, salon.ErrNotConfigured):
		httperr.ServiceUnavailable(c, "remote_not_configured", "Banco remoto não configurado.")
	default:
		httperr.BadGateway(c, "remote_error", catalog.Message(err))
	}
}
