package lead

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/saloes-online/internal/audit"
	"github.com/BruksfildServices01/saloes-online/internal/httperr"
	"github.com/BruksfildServices01/saloes-online/internal/notify"
	"github.com/BruksfildServices01/saloes-online/internal/validators"
)

type Input struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Telefone string `json:"telefone"`
	Endereco string `json:"endereco"`
	Mensagem string `json:"mensagem"`
}

type Result struct {
	Delivered bool `json:"delivered"`
	SMSSent   bool `json:"sms_sent"`
}

// DomainValidator diz se o domínio do e-mail existe.
type DomainValidator func(ctx context.Context, email string) bool

// SubmitLead valida o contato do formulário público e o encaminha ao
// administrador. Nada é gravado no banco.
type SubmitLead struct {
	email  notify.Notifier
	sms    notify.Notifier
	domain DomainValidator
	audit  audit.Recorder
	log    *zap.Logger
}

// NewSubmitLead recebe os notificadores já configurados; nil significa
// "não configurado".
func NewSubmitLead(
	email notify.Notifier,
	sms notify.Notifier,
	domain DomainValidator,
	rec audit.Recorder,
	log *zap.Logger,
) *SubmitLead {
	if rec == nil {
		rec = audit.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SubmitLead{
		email:  email,
		sms:    sms,
		domain: domain,
		audit:  rec,
		log:    log,
	}
}

func (uc *SubmitLead) Execute(ctx context.Context, in Input) (Result, error) {
	in = trim(in)

	if in.Nome == "" || in.Email == "" || in.Telefone == "" {
		return Result{}, httperr.ErrBusiness("missing_required_fields")
	}
	if !validators.IsEmailSyntaxValid(in.Email) {
		return Result{}, httperr.ErrBusiness("invalid_email")
	}
	if uc.domain != nil && !uc.domain(ctx, in.Email) {
		return Result{}, httperr.ErrBusiness("invalid_email_domain")
	}

	msg := notify.Lead{
		Nome:     in.Nome,
		Email:    in.Email,
		Telefone: in.Telefone,
		Endereco: in.Endereco,
		Mensagem: in.Mensagem,
	}

	var res Result

	if uc.email == nil {
		uc.log.Warn("email not configured, lead only logged",
			zap.String("nome", in.Nome),
			zap.String("email", in.Email),
			zap.String("telefone", in.Telefone),
		)
	} else {
		if err := uc.email.Notify(ctx, msg); err != nil {
			uc.log.Error("lead email failed", zap.String("email", in.Email), zap.Error(err))
			return Result{}, httperr.ErrBusiness("email_send_failed")
		}
		res.Delivered = true
	}

	if uc.sms != nil {
		if err := uc.sms.Notify(ctx, msg); err != nil {
			uc.log.Warn("lead sms failed", zap.Error(err))
		} else {
			res.SMSSent = true
		}
	}

	uc.audit.Dispatch(audit.Event{
		Actor:  in.Email,
		Action: audit.ActionLeadSubmitted,
		Entity: "lead",
		Metadata: map[string]any{
			"nome":      in.Nome,
			"delivered": res.Delivered,
		},
	})

	return res, nil
}

func trim(in Input) Input {
	in.Nome = strings.TrimSpace(in.Nome)
	in.Email = strings.TrimSpace(in.Email)
	in.Telefone = strings.TrimSpace(in.Telefone)
	in.Endereco = strings.TrimSpace(in.Endereco)
	in.Mensagem = strings.TrimSpace(in.Mensagem)
	return in
}
