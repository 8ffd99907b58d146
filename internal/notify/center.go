package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
)

const DefaultMax = 20

// Center guarda as notificações da sessão: lista limitada, mais nova primeiro.
type Center struct {
	mu    sync.RWMutex
	max   int
	items []models.Notificacao

	now   func() time.Time
	newID func() string
}

func NewCenter(max int) *Center {
	if max <= 0 {
		max = DefaultMax
	}
	return &Center{
		max:   max,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

// Add insere no topo e descarta o excedente mais antigo. ID e data são
// preenchidos quando vierem vazios.
func (c *Center) Add(n models.Notificacao) models.Notificacao {
	if n.ID == "" {
		n.ID = c.newID()
	}
	if n.CriadaEm.IsZero() {
		n.CriadaEm = c.now()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]models.Notificacao, 0, min(len(c.items)+1, c.max))
	items = append(items, n)
	for _, it := range c.items {
		if len(items) == c.max {
			break
		}
		items = append(items, it)
	}
	c.items = items
	return n
}

func (c *Center) List() []models.Notificacao {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Notificacao(nil), c.items...)
}

func (c *Center) Unread() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, it := range c.items {
		if !it.Lida {
			n++
		}
	}
	return n
}

// MarkRead devolve false quando o id não está mais na lista.
func (c *Center) MarkRead(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Lida = true
			return true
		}
	}
	return false
}

func (c *Center) MarkAllRead() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for i := range c.items {
		if !c.items[i].Lida {
			c.items[i].Lida = true
			n++
		}
	}
	return n
}

func (c *Center) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}
