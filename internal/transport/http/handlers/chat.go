package http_handlers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/mradvance/aihub/internal/domain"
	"github.com/mradvance/aihub/internal/logger"
	"github.com/mradvance/aihub/internal/metrics"
	"github.com/mradvance/aihub/internal/transport/http/dto"
	"github.com/mradvance/aihub/internal/transport/http/response"
)

// historyWindow is how many transcript entries get forwarded for context.
const historyWindow = 10

const dataPrefix = "data: "

// ChatHandler relays chat requests to the external assessment backend and
// streams its `data:`-prefixed JSON events back unbuffered. There is no
// retry or reconnection: a transport failure ends the stream with a final
// error event.
type ChatHandler struct {
	backendURL string
	client     *http.Client
}

// NewChatHandler wires the relay against the backend base URL. The client
// carries no overall timeout; stream lifetime is bounded by the request
// context only.
func NewChatHandler(backendURL string, client *http.Client) *ChatHandler {
	if client == nil {
		client = &http.Client{}
	}
	return &ChatHandler{
		backendURL: strings.TrimRight(backendURL, "/"),
		client:     client,
	}
}

// streamEvent is one relay frame. Exactly three kinds exist: token
// (append), complete (finalize), error (abort).
type streamEvent struct {
	Type  string `json:"type"`
	Token string `json:"token,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req dto.ChatRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}
	req.TrimHistory(historyWindow)

	body, err := json.Marshal(req)
	if err != nil {
		response.WriteError(w, r, domain.ErrInternal(err))
		return
	}

	upstream, err := http.NewRequestWithContext(r.Context(), http.MethodPost, h.backendURL+"/chat", bytes.NewReader(body))
	if err != nil {
		response.WriteError(w, r, domain.ErrInternal(err))
		return
	}
	upstream.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(upstream)
	if err != nil {
		response.WriteError(w, r, domain.ErrBackendUnavailable(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		response.WriteError(w, r, domain.ErrBackendUnavailable(nil))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.WriteError(w, r, domain.ErrInternal(nil))
		return
	}

	metrics.RecordChatRelay()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, dataPrefix) {
			continue
		}

		var evt streamEvent
		if err := json.Unmarshal([]byte(line[len(dataPrefix):]), &evt); err != nil {
			// Partial or malformed frame: skip it, like the shell does.
			continue
		}

		switch evt.Type {
		case "token", "complete", "error":
			writeEvent(w, flusher, evt)
		default:
			continue
		}

		if evt.Type == "complete" || evt.Type == "error" {
			return
		}
	}

	if err := scanner.Err(); err != nil {
		logger.WithCtx(r.Context()).Warn().Err(err).Msg("chat stream interrupted")
		writeEvent(w, flusher, streamEvent{Type: "error", Error: "connection to assessment backend lost"})
	}
}

func writeEvent(w http.ResponseWriter, flusher http.Flusher, evt streamEvent) {
	payload, err := json.Marshal(evt)
	if err != nil {
		return
	}
	_, _ = w.Write([]byte(dataPrefix))
	_, _ = w.Write(payload)
	_, _ = w.Write([]byte("\n\n"))
	flusher.Flush()
}

// RiskScore is a pass-through proxy: named numeric factors in, upstream
// {score, level, factors} out, verbatim.
func (h *ChatHandler) RiskScore(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		response.WriteError(w, r, domain.ErrInvalidJSON(err))
		return
	}
	if !json.Valid(body) {
		response.WriteError(w, r, domain.ErrInvalidJSON(nil))
		return
	}

	upstream, err := http.NewRequestWithContext(r.Context(), http.MethodPost, h.backendURL+"/risk-score", bytes.NewReader(body))
	if err != nil {
		response.WriteError(w, r, domain.ErrInternal(err))
		return
	}
	upstream.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(upstream)
	if err != nil {
		response.WriteError(w, r, domain.ErrBackendUnavailable(err))
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}
