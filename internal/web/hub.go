package web

import (
	"encoding/json"
	"sync"

	"checklist/internal/model"
	"checklist/internal/render"

	"github.com/charmbracelet/log"
)

const clientBuffer = 64

// wsMessage is one render instruction pushed to browsers.
type wsMessage struct {
	Type  string          `json:"type"` // renderAll | move | patch
	Items []model.Item    `json:"items,omitempty"`
	Move  *model.Movement `json:"move,omitempty"`
	Item  *model.Item     `json:"item,omitempty"`
}

// hub is the browser render adapter. It mirrors the rows every connected page
// shows and fans each instruction out to them.
//
// A client whose buffer fills up is dropped instead of skipping messages: a
// page that misses a movement would show the wrong order. Its page reconnects
// and starts over from a full render.
type hub struct {
	log *log.Logger

	mu      sync.Mutex
	rows    *render.Rows
	clients map[chan []byte]struct{}
}

func newHub(logger *log.Logger) *hub {
	return &hub{
		log:     logger,
		rows:    render.NewRows(),
		clients: map[chan []byte]struct{}{},
	}
}

// subscribe registers a client and queues a full render as its first message.
func (h *hub) subscribe() (ch chan []byte, cancel func()) {
	ch = make(chan []byte, clientBuffer)

	h.mu.Lock()
	if b, err := json.Marshal(wsMessage{Type: "renderAll", Items: h.rows.Items()}); err == nil {
		ch <- b
	}
	h.clients[ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.clients[ch]; ok {
			delete(h.clients, ch)
			close(ch)
		}
	}
}

func (h *hub) clientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *hub) RenderAll(items []model.Item) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rows.RenderAll(items)
	h.broadcastLocked(wsMessage{Type: "renderAll", Items: items})
}

func (h *hub) ApplyMovement(mv model.Movement) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rows.ApplyMovement(mv)
	h.broadcastLocked(wsMessage{Type: "move", Move: &mv})
}

func (h *hub) PatchRow(item model.Item) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rows.PatchRow(item)
	h.broadcastLocked(wsMessage{Type: "patch", Item: &item})
}

func (h *hub) broadcastLocked(msg wsMessage) {
	b, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("encode ws message", "type", msg.Type, "err", err)
		return
	}
	for ch := range h.clients {
		select {
		case ch <- b:
		default:
			h.log.Warn("ws client too slow; dropping")
			delete(h.clients, ch)
			close(ch)
		}
	}
}
