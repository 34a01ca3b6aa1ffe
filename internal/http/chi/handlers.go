package chi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/whatsapp-bridge-api/webhook"
	"github.com/marcelsud/whatsapp-bridge-api/whatsapp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// RequestTimeout bounds every request but /webhook/trigger, audio conversion included
const RequestTimeout = 60 * time.Second

// Options carries what the router needs besides the services
type Options struct {
	APIKey   string
	LogLevel string
	// Metrics is mounted at /metrics when set
	Metrics http.Handler
}

// Handlers sets up the API routes
func Handlers(ctx context.Context, opts Options, whatsappService whatsapp.UseCase, webhookService webhook.UseCase) *chi.Mux {
	// Logger
	logger := httplog.NewLogger("whatsapp-bridge-api", httplog.Options{
		JSON:     true,
		LogLevel: opts.LogLevel,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(otelhttp.NewMiddleware("whatsapp-bridge-api"))
	r.Use(requireAPIKey(opts.APIKey))

	// A sync trigger is bounded by its own timeout_seconds, not by RequestTimeout
	r.Method(http.MethodPost, "/webhook/trigger", postTrigger(webhookService))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(RequestTimeout))

		// Docs and health
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Method(http.MethodGet, "/openapi.json", openAPI())
		r.Method(http.MethodGet, "/docs", docsPage(swaggerPage))
		r.Method(http.MethodGet, "/redoc", docsPage(redocPage))

		// WhatsApp bridge
		r.Method(http.MethodGet, "/contacts/search", searchContacts(whatsappService))
		r.Method(http.MethodGet, "/contacts/{jid}/chats", getContactChats(whatsappService))
		r.Method(http.MethodGet, "/contacts/{jid}/last-interaction", getLastInteraction(whatsappService))
		r.Method(http.MethodGet, "/messages", listMessages(whatsappService))
		r.Method(http.MethodGet, "/messages/{message_id}/context", getMessageContext(whatsappService))
		r.Method(http.MethodPost, "/messages/send-text", sendText(whatsappService))
		r.Method(http.MethodPost, "/messages/send-file", sendFile(whatsappService))
		r.Method(http.MethodPost, "/messages/send-audio", sendAudio(whatsappService))
		r.Method(http.MethodGet, "/chats", listChats(whatsappService))
		r.Method(http.MethodGet, "/chats/direct-by-contact", getDirectChatByContact(whatsappService))
		r.Method(http.MethodGet, "/chats/{chat_jid}", getChat(whatsappService))
		r.Method(http.MethodPost, "/media/download", downloadMedia(whatsappService))

		// Webhook relay
		r.Method(http.MethodPost, "/webhook/ingest", postIngest(webhookService))
		r.Method(http.MethodGet, "/webhook/events", getEvents(webhookService))

		if opts.Metrics != nil {
			r.Method(http.MethodGet, "/metrics", opts.Metrics)
		}
	})

	return r
}
