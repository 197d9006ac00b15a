package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

func TestTemplateParamsDefaults(t *testing.T) {
	params := TemplateParams(Lead{Nome: "Ana", Email: "ana@exemplo.com", Telefone: "119999"})

	require.Equal(t, "Administrador", params["to_name"])
	require.Equal(t, "Ana", params["from_name"])
	require.Equal(t, "ana@exemplo.com", params["reply_to"])
	require.Equal(t, "Não informado", params["address"])
	require.Equal(t, "Nenhuma mensagem adicional", params["message"])
}

func TestEmailJSNotify(t *testing.T) {
	var got emailJSRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte("OK"))
	}))
	defer srv.Close()

	e := NewEmailJS(EmailJSConfig{
		ServiceID:  "service_abc",
		TemplateID: "template_abc",
		PublicKey:  "pk",
		PrivateKey: "sk",
		Endpoint:   srv.URL,
	}, srv.Client())

	err := e.Notify(context.Background(), Lead{
		Nome:     "Ana",
		Email:    "ana@exemplo.com",
		Telefone: "119999",
		Mensagem: "Quero anunciar",
	})
	require.NoError(t, err)
	require.Equal(t, "service_abc", got.ServiceID)
	require.Equal(t, "template_abc", got.TemplateID)
	require.Equal(t, "pk", got.UserID)
	require.Equal(t, "sk", got.AccessToken)
	require.Equal(t, "Quero anunciar", got.TemplateParams["message"])
}

func TestEmailJSErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("The template ID is invalid"))
	}))
	defer srv.Close()

	e := NewEmailJS(EmailJSConfig{Endpoint: srv.URL}, srv.Client())

	err := e.Notify(context.Background(), Lead{Nome: "Ana"})
	require.ErrorContains(t, err, "The template ID is invalid")
	require.ErrorContains(t, err, "400")
}

type fakeSender struct {
	params *twilioApi.CreateMessageParams
	err    error
}

func (f *fakeSender) CreateMessage(p *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.params = p
	return &twilioApi.ApiV2010Message{}, f.err
}

func TestTwilioChannel(t *testing.T) {
	tests := []struct {
		name     string
		to       string
		wantTo   string
		wantFrom string
	}{
		{name: "whatsapp", to: "+5511988887777", wantTo: "whatsapp:+5511988887777", wantFrom: "whatsapp:+15550001111"},
		{name: "sms", to: "11988887777", wantTo: "11988887777", wantFrom: "+15550001111"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeSender{}
			sms := NewTwilioSMSWithAPI(api, "+15550001111", tt.to)

			require.NoError(t, sms.Notify(context.Background(), Lead{Nome: "Ana"}))
			require.Equal(t, tt.wantTo, *api.params.To)
			require.Equal(t, tt.wantFrom, *api.params.From)
			require.Contains(t, *api.params.Body, "Nome: Ana")
		})
	}
}

func TestTwilioError(t *testing.T) {
	sms := NewTwilioSMSWithAPI(&fakeSender{err: errors.New("invalid number")}, "+1", "+2")
	require.ErrorContains(t, sms.Notify(context.Background(), Lead{}), "invalid number")
}
