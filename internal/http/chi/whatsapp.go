package chi

import (
	"encoding/json"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/marcelsud/whatsapp-bridge-api/whatsapp"
)

/*
* Corpos das requisições na camada web, por isso eles têm as tags json.
* Campos obrigatórios são ponteiros: ausente é diferente de vazio
 */
type sendTextRequest struct {
	Recipient *string `json:"recipient"`
	Message   *string `json:"message"`
}

func (r sendTextRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Recipient, validation.NotNil),
		validation.Field(&r.Message, validation.NotNil),
	)
}

type sendMediaRequest struct {
	Recipient *string `json:"recipient"`
	MediaPath *string `json:"media_path"`
}

func (r sendMediaRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Recipient, validation.NotNil),
		validation.Field(&r.MediaPath, validation.NotNil),
	)
}

type downloadMediaRequest struct {
	MessageID *string `json:"message_id"`
	ChatJID   *string `json:"chat_jid"`
}

func (r downloadMediaRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MessageID, validation.NotNil),
		validation.Field(&r.ChatJID, validation.NotNil),
	)
}

type sendResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type downloadResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	FilePath string `json:"file_path,omitempty"`
}

type outputResponse struct {
	Output *string `json:"output"`
}

type messagesResponse struct {
	Messages []whatsapp.Message `json:"messages"`
}

// decodeBody reads a JSON body into v and validates it
func decodeBody(r *http.Request, v validation.Validatable) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return v.Validate()
}

func searchContacts(service whatsapp.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query, err := requiredParam(r, "query")
		if err != nil {
			writeValidationError(w, err)
			return
		}
		contacts, err := service.SearchContacts(r.Context(), query)
		if err != nil {
			writeServerError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, contacts)
	})
}

func listMessages(service whatsapp.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filter, err := messageFilter(r)
		if err != nil {
			writeValidationError(w, err)
			return
		}
		listing, err := service.ListMessages(r.Context(), filter)
		if err != nil {
			writeServerError(w, r, err)
			return
		}
		if listing.Output != nil {
			writeJSON(w, http.StatusOK, outputResponse{Output: listing.Output})
			return
		}
		messages := listing.Messages
		if messages == nil {
			messages = []whatsapp.Message{}
		}
		writeJSON(w, http.StatusOK, messagesResponse{Messages: messages})
	})
}

func messageFilter(r *http.Request) (whatsapp.MessageFilter, error) {
	q := r.URL.Query()
	f := whatsapp.MessageFilter{
		SenderPhoneNumber: q.Get("sender_phone_number"),
		ChatJID:           q.Get("chat_jid"),
		Query:             q.Get("query"),
	}
	var err error
	if f.After, err = timeParam(r, "after"); err != nil {
		return f, err
	}
	if f.Before, err = timeParam(r, "before"); err != nil {
		return f, err
	}
	if f.Limit, err = intParam(r, "limit", 20); err != nil {
		return f, err
	}
	if f.Page, err = intParam(r, "page", 0); err != nil {
		return f, err
	}
	if f.IncludeContext, err = boolParam(r, "include_context", true); err != nil {
		return f, err
	}
	if f.ContextBefore, err = intParam(r, "context_before", 1); err != nil {
		return f, err
	}
	if f.ContextAfter, err = intParam(r, "context_after", 1); err != nil {
		return f, err
	}
	return f, nil
}

func listChats(service whatsapp.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f := whatsapp.ChatFilter{
			Query:  r.URL.Query().Get("query"),
			SortBy: whatsapp.NewChatSort(r.URL.Query().Get("sort_by")),
		}
		var err error
		if f.Limit, err = intParam(r, "limit", 20); err != nil {
			writeValidationError(w, err)
			return
		}
		if f.Page, err = intParam(r, "page", 0); err != nil {
			writeValidationError(w, err)
			return
		}
		if f.IncludeLastMessage, err = boolParam(r, "include_last_message", true); err != nil {
			writeValidationError(w, err)
			return
		}
		chats, err := service.ListChats(r.Context(), f)
		if err != nil {
			writeServerError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, chats)
	})
}

func getChat(service whatsapp.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		includeLast, err := boolParam(r, "include_last_message", true)
		if err != nil {
			writeValidationError(w, err)
			return
		}
		chat, err := service.GetChat(r.Context(), pathParam(r, "chat_jid"), includeLast)
		if err != nil {
			writeServerError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, chat)
	})
}

func getDirectChatByContact(service whatsapp.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		phone, err := requiredParam(r, "sender_phone_number")
		if err != nil {
			writeValidationError(w, err)
			return
		}
		chat, err := service.GetDirectChatByContact(r.Context(), phone)
		if err != nil {
			writeServerError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, chat)
	})
}

func getContactChats(service whatsapp.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, err := intParam(r, "limit", 20)
		if err != nil {
			writeValidationError(w, err)
			return
		}
		page, err := intParam(r, "page", 0)
		if err != nil {
			writeValidationError(w, err)
			return
		}
		chats, err := service.GetContactChats(r.Context(), pathParam(r, "jid"), limit, page)
		if err != nil {
			writeServerError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, chats)
	})
}

func getLastInteraction(service whatsapp.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		line, err := service.GetLastInteraction(r.Context(), pathParam(r, "jid"))
		if err != nil {
			writeServerError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, outputResponse{Output: line})
	})
}

func getMessageContext(service whatsapp.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		before, err := intParam(r, "before", 5)
		if err != nil {
			writeValidationError(w, err)
			return
		}
		after, err := intParam(r, "after", 5)
		if err != nil {
			writeValidationError(w, err)
			return
		}
		mc, err := service.GetMessageContext(r.Context(), pathParam(r, "message_id"), before, after)
		if err != nil {
			writeServerError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, mc)
	})
}

func sendText(service whatsapp.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req sendTextRequest
		if err := decodeBody(r, &req); err != nil {
			writeValidationError(w, err)
			return
		}
		res := service.SendMessage(r.Context(), *req.Recipient, *req.Message)
		writeJSON(w, http.StatusOK, sendResponse{Success: res.Success, Message: res.Message})
	})
}

func sendFile(service whatsapp.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req sendMediaRequest
		if err := decodeBody(r, &req); err != nil {
			writeValidationError(w, err)
			return
		}
		res := service.SendFile(r.Context(), *req.Recipient, *req.MediaPath)
		writeJSON(w, http.StatusOK, sendResponse{Success: res.Success, Message: res.Message})
	})
}

func sendAudio(service whatsapp.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req sendMediaRequest
		if err := decodeBody(r, &req); err != nil {
			writeValidationError(w, err)
			return
		}
		res := service.SendAudio(r.Context(), *req.Recipient, *req.MediaPath)
		writeJSON(w, http.StatusOK, sendResponse{Success: res.Success, Message: res.Message})
	})
}

func downloadMedia(service whatsapp.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req downloadMediaRequest
		if err := decodeBody(r, &req); err != nil {
			writeValidationError(w, err)
			return
		}
		res := service.DownloadMedia(r.Context(), *req.MessageID, *req.ChatJID)
		if !res.Success {
			writeJSON(w, http.StatusOK, downloadResponse{Message: "Failed to download media"})
			return
		}
		writeJSON(w, http.StatusOK, downloadResponse{Success: true, Message: res.Message, FilePath: res.FilePath})
	})
}
