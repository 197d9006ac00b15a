package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/saloes-online/internal/audit"
	"github.com/BruksfildServices01/saloes-online/internal/catalog"
	"github.com/BruksfildServices01/saloes-online/internal/domain/salon"
	"github.com/BruksfildServices01/saloes-online/internal/httperr"
	"github.com/BruksfildServices01/saloes-online/internal/httpresp"
	"github.com/BruksfildServices01/saloes-online/internal/middleware"
	"github.com/BruksfildServices01/saloes-online/internal/storage"
)

// MaxLogoSize é o limite do arquivo de logo enviado pelo painel.
const MaxLogoSize = 5 << 20

// MaxJSONBody cabe um logo de MaxLogoSize embutido em base64 e os demais campos.
const MaxJSONBody = MaxLogoSize*4/3 + 64<<10

// LogoStore é a parte do storage usada pelos handlers.
type LogoStore interface {
	Upload(ctx context.Context, salonID, filename string, data []byte) (string, error)
	Delete(ctx context.Context, url string) error
}

type SalonHandler struct {
	store *catalog.Store
	logos LogoStore
	audit audit.Recorder
	log   *zap.Logger
}

// NewSalonHandler aceita logos nil quando o storage não está configurado;
// nesse caso logos embutidos ficam gravados como vieram.
func NewSalonHandler(store *catalog.Store, logos LogoStore, rec audit.Recorder, log *zap.Logger) *SalonHandler {
	if rec == nil {
		rec = audit.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SalonHandler{store: store, logos: logos, audit: rec, log: log}
}

// ======================================================
// PÚBLICO
// ======================================================

func (h *SalonHandler) PublicList(c *gin.Context) {
	httpresp.List(c, h.store.Search(c.Query("query"), true))
}

func (h *SalonHandler) PublicGet(c *gin.Context) {
	s, ok := h.store.Get(c.Param("id"))
	if !ok || !s.Ativo {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}
	httpresp.OK(c, s)
}

// ======================================================
// PAINEL
// ======================================================

func (h *SalonHandler) List(c *gin.Context) {
	list := h.store.Search(c.Query("query"), false)

	switch strings.TrimSpace(c.Query("ativo")) {
	case "true":
		list = salon.FilterActive(list)
	case "false":
		list = filterInactive(list)
	}

	httpresp.List(c, list)
}

func (h *SalonHandler) State(c *gin.Context) {
	httpresp.OK(c, h.store.State())
}

func (h *SalonHandler) Refresh(c *gin.Context) {
	if err := h.store.Refresh(c.Request.Context()); err != nil {
		httperr.BadGateway(c, "refresh_failed", h.store.LastError())
		return
	}
	httpresp.OK(c, h.store.State())
}

// bindLimitedJSON lê o corpo com limite de MaxJSONBody e já responde o erro.
func bindLimitedJSON(c *gin.Context, v any) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxJSONBody)

	if err := c.ShouldBindJSON(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httperr.Write(c, http.StatusRequestEntityTooLarge, "request_too_large", "Requisição muito grande.")
			return false
		}
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return false
	}
	return true
}

// decodeInlineLogo é DecodeDataURI com o mesmo limite do upload.
func decodeInlineLogo(value string) (data []byte, ext string, ok bool, err error) {
	data, ext, ok, err = storage.DecodeDataURI(value)
	if err == nil && len(data) > MaxLogoSize {
		return nil, "", ok, httperr.ErrBusiness("logo_too_large")
	}
	return data, ext, ok, err
}

func (h *SalonHandler) Create(c *gin.Context) {
	var in salon.Input
	if !bindLimitedJSON(c, &in) {
		return
	}

	inline, ext, isInline, err := decodeInlineLogo(in.Logo)
	if err != nil {
		writeError(c, err)
		return
	}
	if isInline && h.logos != nil {
		in.Logo = ""
	}

	created, err := h.store.Add(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	if isInline && h.logos != nil {
		created = h.attachLogo(c.Request.Context(), created, "logo."+ext, inline)
	}

	h.audit.Dispatch(audit.Event{
		Actor:    middleware.Actor(c),
		Action:   audit.ActionSalonCreated,
		Entity:   "salao",
		EntityID: created.ID,
		Metadata: gin.H{"nome": created.Nome},
	})

	httpresp.Created(c, created)
}

// attachLogo envia um logo embutido depois que o salão já tem id. Falha no
// envio não desfaz o cadastro: o salão segue sem logo.
func (h *SalonHandler) attachLogo(ctx context.Context, s salon.Salon, filename string, data []byte) salon.Salon {
	url, err := h.logos.Upload(ctx, s.ID, filename, data)
	if err != nil {
		h.log.Warn("inline logo upload failed", zap.String("salao_id", s.ID), zap.Error(err))
		return s
	}

	updated, err := h.store.Update(ctx, s.ID, salon.Patch{Logo: &url})
	if err != nil {
		h.log.Warn("failed to attach logo", zap.String("salao_id", s.ID), zap.Error(err))
		return s
	}
	return updated
}

func (h *SalonHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var p salon.Patch
	if !bindLimitedJSON(c, &p) {
		return
	}
	if p.IsEmpty() {
		httperr.BadRequest(c, "empty_patch", "Nenhum campo para atualizar.")
		return
	}

	if p.Logo != nil && h.logos != nil {
		data, ext, isInline, err := decodeInlineLogo(*p.Logo)
		if err != nil {
			writeError(c, err)
			return
		}
		if isInline {
			url, err := h.logos.Upload(c.Request.Context(), id, "logo."+ext, data)
			if err != nil {
				writeError(c, err)
				return
			}
			p.Logo = &url
		}
	}

	updated, err := h.store.Update(c.Request.Context(), id, p)
	if err != nil {
		writeError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    middleware.Actor(c),
		Action:   audit.ActionSalonUpdated,
		Entity:   "salao",
		EntityID: id,
		Metadata: p,
	})

	httpresp.OK(c, updated)
}

func (h *SalonHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	previous, existed := h.store.Get(id)

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	if existed && previous.Logo != "" && h.logos != nil {
		// logos fora do bucket (URLs externas, data URIs) são ignorados
		if err := h.logos.Delete(c.Request.Context(), previous.Logo); err != nil && !httperr.IsBusiness(err, "invalid_logo_url") {
			h.log.Warn("failed to delete logo", zap.String("salao_id", id), zap.Error(err))
		}
	}

	if existed {
		h.audit.Dispatch(audit.Event{
			Actor:    middleware.Actor(c),
			Action:   audit.ActionSalonDeleted,
			Entity:   "salao",
			EntityID: id,
			Metadata: gin.H{"nome": previous.Nome},
		})
	}

	c.Status(http.StatusNoContent)
}

func (h *SalonHandler) Toggle(c *gin.Context) {
	id := c.Param("id")

	updated, err := h.store.ToggleActive(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    middleware.Actor(c),
		Action:   audit.ActionSalonToggled,
		Entity:   "salao",
		EntityID: id,
		Metadata: gin.H{"ativo": updated.Ativo},
	})

	httpresp.OK(c, updated)
}

func (h *SalonHandler) UploadLogo(c *gin.Context) {
	if h.logos == nil {
		httperr.ServiceUnavailable(c, "storage_not_configured", "Storage de logos não configurado.")
		return
	}

	id := c.Param("id")
	if _, ok := h.store.Get(id); !ok {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	// margem para os cabeçalhos do multipart
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxLogoSize+64<<10)

	file, err := c.FormFile("logo")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httperr.BadRequest(c, "logo_too_large", "O logo deve ter no máximo 5MB.")
			return
		}
		httperr.BadRequest(c, "missing_logo", "Envie o arquivo no campo \"logo\".")
		return
	}
	if file.Size > MaxLogoSize {
		httperr.BadRequest(c, "logo_too_large", "O logo deve ter no máximo 5MB.")
		return
	}

	f, err := file.Open()
	if err != nil {
		httperr.BadRequest(c, "missing_logo", "Não foi possível ler o arquivo.")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxLogoSize+1))
	if err != nil {
		httperr.BadRequest(c, "missing_logo", "Não foi possível ler o arquivo.")
		return
	}

	url, err := h.logos.Upload(c.Request.Context(), id, file.Filename, data)
	if err != nil {
		if httperr.Code(err) != "" {
			writeError(c, err)
			return
		}
		h.log.Error("logo upload failed", zap.String("salao_id", id), zap.Error(err))
		httperr.BadGateway(c, "logo_upload_failed", "Erro ao enviar logo.")
		return
	}

	updated, err := h.store.Update(c.Request.Context(), id, salon.Patch{Logo: &url})
	if err != nil {
		writeError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    middleware.Actor(c),
		Action:   audit.ActionSalonLogoUploaded,
		Entity:   "salao",
		EntityID: id,
		Metadata: gin.H{"url": url},
	})

	httpresp.OK(c, updated)
}

func filterInactive(list []salon.Salon) []salon.Salon {
	out := make([]salon.Salon, 0, len(list))
	for _, s := range list {
		if !s.Ativo {
			out = append(out, s)
		}
	}
	return out
}
