package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// MessageSender é a parte do cliente Twilio usada para enviar mensagens.
type MessageSender interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioSMS manda uma cópia do lead para o telefone do administrador.
// Números em E.164 ("+55...") recebem pelo WhatsApp, os demais por SMS.
type TwilioSMS struct {
	api  MessageSender
	from string
	to   string
}

func NewTwilioSMS(accountSID, authToken, from, to string) *TwilioSMS {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return NewTwilioSMSWithAPI(client.Api, from, to)
}

func NewTwilioSMSWithAPI(api MessageSender, from, to string) *TwilioSMS {
	return &TwilioSMS{api: api, from: from, to: to}
}

func (t *TwilioSMS) Notify(_ context.Context, lead Lead) error {
	to, from := t.to, t.from
	if strings.HasPrefix(to, "+") {
		to = "whatsapp:" + to
		from = "whatsapp:" + from
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(SMSBody(lead))

	if _, err := t.api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio: %w", err)
	}
	return nil
}

func SMSBody(lead Lead) string {
	return fmt.Sprintf(
		"Novo cadastro no Salões Online\nNome: %s\nEmail: %s\nTelefone: %s\nEndereço: %s\n%s",
		lead.Nome,
		lead.Email,
		lead.Telefone,
		orDefault(lead.Endereco, defaultEndereco),
		orDefault(lead.Mensagem, defaultMensagem),
	)
}
