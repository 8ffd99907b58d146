package ws

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
)

type Client struct {
	ID   string
	Send chan []byte
}

type unicastMsg struct {
	id  string
	msg []byte
}

// Message é o envelope enviado aos navegadores.
type Message struct {
	Tipo string `json:"tipo"`
	Data any    `json:"data"`
}

const (
	TipoNotificacao = "notificacao"
	TipoHistorico   = "historico"
)

type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client // id -> client
	register chan *Client
	unreg    chan *Client

	sendAll chan []byte     // envio para todos
	unicast chan unicastMsg // envio para 1 cliente

	// OnRegister roda fora do loop do hub, após o cliente entrar.
	OnRegister func(c *Client)

	log     *slog.Logger
	stop    chan struct{}
	stopped chan struct{}

	nextID atomic.Uint64
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients:  make(map[string]*Client),
		register: make(chan *Client),
		unreg:    make(chan *Client),
		sendAll:  make(chan []byte, 1024),
		unicast:  make(chan unicastMsg, 1024),
		log:      log.With("cmp", "ws.hub"),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

func (h *Hub) newID() string {
	id := h.nextID.Add(1)
	return fmt.Sprintf("c%d", id)
}

// drop remove o cliente; chamar com h.mu travado.
func (h *Hub) drop(id string) {
	if c, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(c.Send)
	}
}

func (h *Hub) Run() {
	h.log.Info("hub_run_start")
	defer close(h.stopped)

	for {
		select {
		case c := <-h.register:
			if c.ID == "" {
				c.ID = h.newID()
			}
			h.mu.Lock()
			h.clients[c.ID] = c
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Info("client_registered", "id", c.ID, "total", total)
			if h.OnRegister != nil {
				go h.OnRegister(c)
			}

		case c := <-h.unreg:
			if c == nil {
				continue
			}
			h.mu.Lock()
			h.drop(c.ID)
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Info("client_unregistered", "id", c.ID, "total", total)

		case msg := <-h.sendAll:
			var slow []string
			h.mu.RLock()
			for id, c := range h.clients {
				select {
				case c.Send <- msg:
				default:
					slow = append(slow, id)
				}
			}
			h.mu.RUnlock()
			if len(slow) > 0 {
				// cliente lento -> dropa para não travar o hub
				h.mu.Lock()
				for _, id := range slow {
					h.drop(id)
				}
				h.mu.Unlock()
				h.log.Warn("broadcast_drop_slow", "ids", slow)
			}

		case u := <-h.unicast:
			h.mu.RLock()
			c := h.clients[u.id]
			h.mu.RUnlock()
			if c == nil {
				h.log.Warn("send_one_miss", "id", u.id)
				continue
			}
			select {
			case c.Send <- u.msg:
			default:
				h.mu.Lock()
				h.drop(u.id)
				h.mu.Unlock()
				h.log.Warn("send_one_drop_slow", "id", u.id)
			}

		case <-h.stop:
			h.mu.Lock()
			for id := range h.clients {
				h.drop(id)
			}
			h.mu.Unlock()
			h.log.Info("hub_run_stop")
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.stop)
	<-h.stopped
}

func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Register(c *Client)   { h.register <- c }
func (h *Hub) Unregister(c *Client) { h.unreg <- c }

func (h *Hub) Broadcast(b []byte)               { h.sendAll <- b }
func (h *Hub) SendToClient(id string, b []byte) { h.unicast <- unicastMsg{id: id, msg: b} }

// Notify envia a notificação para todos os clientes conectados.
func (h *Hub) Notify(n models.Notificacao) error {
	b, err := json.Marshal(Message{Tipo: TipoNotificacao, Data: n})
	if err != nil {
		return err
	}
	h.Broadcast(b)
	return nil
}

// SendHistory envia a lista recente para um cliente recém-chegado.
func (h *Hub) SendHistory(id string, items []models.Notificacao) error {
	if items == nil {
		items = []models.Notificacao{}
	}
	b, err := json.Marshal(Message{Tipo: TipoHistorico, Data: items})
	if err != nil {
		return err
	}
	h.SendToClient(id, b)
	return nil
}
