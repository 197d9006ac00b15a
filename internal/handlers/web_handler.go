package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/saloes-online/internal/audit"
	"github.com/BruksfildServices01/saloes-online/internal/auth"
	"github.com/BruksfildServices01/saloes-online/internal/catalog"
	"github.com/BruksfildServices01/saloes-online/internal/domain/salon"
	"github.com/BruksfildServices01/saloes-online/internal/httperr"
	"github.com/BruksfildServices01/saloes-online/internal/middleware"
	"github.com/BruksfildServices01/saloes-online/internal/usecase/lead"
)

const (
	webLoginPath     = "/web/admin/login"
	webDashboardPath = "/web/admin/dashboard"
)

// WebHandler serve as páginas HTML: vitrine pública, formulário de contato e
// o painel administrativo com sessão em cookie.
type WebHandler struct {
	store *catalog.Store
	leads LeadSubmitter
	auth  *auth.Service
	audit audit.Recorder
}

func NewWebHandler(store *catalog.Store, leads LeadSubmitter, svc *auth.Service, rec audit.Recorder) *WebHandler {
	if rec == nil {
		rec = audit.Nop{}
	}
	return &WebHandler{store: store, leads: leads, auth: svc, audit: rec}
}

func (h *WebHandler) render(c *gin.Context, status int, page string, data gin.H) {
	view := gin.H{
		"Page":     page,
		"Title":    "",
		"Admin":    false,
		"Flashes":  []interface{}{},
		"Error":    "",
		"Query":    "",
		"Form":     lead.Input{},
		"Sent":     "",
		"Username": "",
	}

	s := sessions.Default(c)
	if user, _ := s.Get(middleware.SessionUserKey).(string); user != "" {
		view["Admin"] = true
	}
	if flashes := s.Flashes(); len(flashes) > 0 {
		view["Flashes"] = flashes
		_ = s.Save()
	}

	for k, v := range data {
		view[k] = v
	}
	c.HTML(status, "base", view)
}

func (h *WebHandler) flash(c *gin.Context, msg string) {
	s := sessions.Default(c)
	s.AddFlash(msg)
	_ = s.Save()
}

// ======================================================
// PÚBLICO
// ======================================================

func (h *WebHandler) Home(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	h.render(c, http.StatusOK, "home", gin.H{
		"Query":  query,
		"Saloes": h.store.Search(query, true),
	})
}

func (h *WebHandler) ContactPage(c *gin.Context) {
	h.render(c, http.StatusOK, "contato", gin.H{"Title": "Central de Atendimento"})
}

func (h *WebHandler) ContactSubmit(c *gin.Context) {
	in := lead.Input{
		Nome:     c.PostForm("nome"),
		Email:    c.PostForm("email"),
		Telefone: c.PostForm("telefone"),
		Endereco: c.PostForm("endereco"),
		Mensagem: c.PostForm("mensagem"),
	}

	res, err := h.leads.Execute(c.Request.Context(), in)
	if err != nil {
		status, msg := http.StatusBadRequest, "Dados inválidos."
		if m, ok := businessMessages[httperr.Code(err)]; ok {
			status, msg = m.status, m.message
		}
		h.render(c, status, "contato", gin.H{
			"Title": "Central de Atendimento",
			"Error": msg,
			"Form":  in,
		})
		return
	}

	h.render(c, http.StatusOK, "contato", gin.H{
		"Title": "Central de Atendimento",
		"Sent":  leadMessage(res),
	})
}

// ======================================================
// LOGIN
// ======================================================

func (h *WebHandler) LoginPage(c *gin.Context) {
	if user, _ := sessions.Default(c).Get(middleware.SessionUserKey).(string); user != "" {
		c.Redirect(http.StatusSeeOther, webDashboardPath)
		return
	}
	h.render(c, http.StatusOK, "login", gin.H{"Title": "Login"})
}

func (h *WebHandler) LoginSubmit(c *gin.Context) {
	username := c.PostForm("username")

	sess, err := h.auth.Login(username, c.PostForm("password"))
	if err != nil {
		status := http.StatusUnauthorized
		var locked auth.LockedError
		if errors.As(err, &locked) {
			status = http.StatusTooManyRequests
		}
		h.render(c, status, "login", gin.H{
			"Title":    "Login",
			"Error":    loginMessage(err),
			"Username": username,
		})
		return
	}

	s := sessions.Default(c)
	s.Set(middleware.SessionUserKey, sess.Username)
	s.AddFlash("Login realizado com sucesso.")
	if err := s.Save(); err != nil {
		h.render(c, http.StatusInternalServerError, "login", gin.H{"Error": "Erro interno do servidor."})
		return
	}

	c.Redirect(http.StatusSeeOther, webDashboardPath)
}

func (h *WebHandler) Logout(c *gin.Context) {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	_ = s.Save()
	c.Redirect(http.StatusSeeOther, "/web")
}

// ======================================================
// PAINEL
// ======================================================

func (h *WebHandler) Dashboard(c *gin.Context) {
	h.dashboard(c, http.StatusOK, "")
}

func (h *WebHandler) dashboard(c *gin.Context, status int, errMsg string) {
	query := strings.TrimSpace(c.Query("query"))
	h.render(c, status, "dashboard", gin.H{
		"Title":  "Painel",
		"Query":  query,
		"Error":  errMsg,
		"Saloes": h.store.Search(query, false),
		"State":  h.store.State(),
	})
}

func (h *WebHandler) CreateSalon(c *gin.Context) {
	in := salon.Input{
		Nome:                 c.PostForm("nome"),
		Endereco:             c.PostForm("endereco"),
		Telefone:             c.PostForm("telefone"),
		Email:                c.PostForm("email"),
		Logo:                 c.PostForm("logo"),
		SiteURL:              c.PostForm("siteUrl"),
		HorarioFuncionamento: c.PostForm("horarioFuncionamento"),
		Servicos:             salon.ParseServicos(c.PostForm("servicos")),
		Descricao:            c.PostForm("descricao"),
	}

	created, err := h.store.Add(c.Request.Context(), in)
	if err != nil {
		h.dashboard(c, http.StatusBadRequest, h.errorMessage(err))
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    middleware.Actor(c),
		Action:   audit.ActionSalonCreated,
		Entity:   "salao",
		EntityID: created.ID,
		Metadata: gin.H{"nome": created.Nome},
	})

	h.flash(c, "Salão adicionado com sucesso!")
	c.Redirect(http.StatusSeeOther, webDashboardPath)
}

func (h *WebHandler) EditSalonPage(c *gin.Context) {
	current, ok := h.store.Get(c.Param("id"))
	if !ok {
		h.flash(c, "Salão não encontrado.")
		c.Redirect(http.StatusSeeOther, webDashboardPath)
		return
	}
	h.render(c, http.StatusOK, "editar", gin.H{"Title": "Editar salão", "Salao": current})
}

func (h *WebHandler) UpdateSalon(c *gin.Context) {
	id := c.Param("id")

	current, ok := h.store.Get(id)
	if !ok {
		h.flash(c, "Salão não encontrado.")
		c.Redirect(http.StatusSeeOther, webDashboardPath)
		return
	}

	p := patchFromForm(c)
	if p.IsEmpty() {
		c.Redirect(http.StatusSeeOther, webDashboardPath)
		return
	}

	if _, err := h.store.Update(c.Request.Context(), id, p); err != nil {
		h.render(c, http.StatusBadRequest, "editar", gin.H{
			"Title": "Editar salão",
			"Error": h.errorMessage(err),
			"Salao": p.Apply(current),
		})
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    middleware.Actor(c),
		Action:   audit.ActionSalonUpdated,
		Entity:   "salao",
		EntityID: id,
		Metadata: p,
	})

	h.flash(c, "Salão atualizado com sucesso!")
	c.Redirect(http.StatusSeeOther, webDashboardPath)
}

// patchFromForm só inclui os campos presentes no formulário.
func patchFromForm(c *gin.Context) salon.Patch {
	field := func(name string) *string {
		v, ok := c.GetPostForm(name)
		if !ok {
			return nil
		}
		return &v
	}

	p := salon.Patch{
		Nome:                 field("nome"),
		Endereco:             field("endereco"),
		Telefone:             field("telefone"),
		Email:                field("email"),
		Logo:                 field("logo"),
		SiteURL:              field("siteUrl"),
		HorarioFuncionamento: field("horarioFuncionamento"),
		Descricao:            field("descricao"),
	}
	if raw, ok := c.GetPostForm("servicos"); ok {
		servicos := salon.ParseServicos(raw)
		p.Servicos = &servicos
	}
	return p
}

// errorMessage prefere o texto de negócio ao retrato do store.
func (h *WebHandler) errorMessage(err error) string {
	if m, ok := businessMessages[httperr.Code(err)]; ok {
		return m.message
	}
	return h.store.LastError()
}

func (h *WebHandler) ToggleSalon(c *gin.Context) {
	id := c.Param("id")

	updated, err := h.store.ToggleActive(c.Request.Context(), id)
	if err != nil {
		h.flash(c, h.store.LastError())
		c.Redirect(http.StatusSeeOther, webDashboardPath)
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    middleware.Actor(c),
		Action:   audit.ActionSalonToggled,
		Entity:   "salao",
		EntityID: id,
		Metadata: gin.H{"ativo": updated.Ativo},
	})

	c.Redirect(http.StatusSeeOther, webDashboardPath)
}

func (h *WebHandler) DeleteSalon(c *gin.Context) {
	id := c.Param("id")

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		h.flash(c, h.store.LastError())
		c.Redirect(http.StatusSeeOther, webDashboardPath)
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    middleware.Actor(c),
		Action:   audit.ActionSalonDeleted,
		Entity:   "salao",
		EntityID: id,
	})

	h.flash(c, "Salão excluído.")
	c.Redirect(http.StatusSeeOther, webDashboardPath)
}
