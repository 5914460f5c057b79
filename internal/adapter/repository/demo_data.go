package repository

import (
	"strconv"
	"time"

	"github.com/hugohenrick/pdv-mesas/internal/domain/money"
	"github.com/hugohenrick/pdv-mesas/internal/domain/sale"
	"github.com/hugohenrick/pdv-mesas/internal/domain/store"
	"github.com/hugohenrick/pdv-mesas/internal/domain/table"
)

// Lojas do modo demonstração
const (
	DemoStore1 = "loja-1"
	DemoStore2 = "loja-2"
)

// NewDemoStore cria um MemoryStore com as duas lojas e, em cada uma, a Mesa 1
// livre na área interna e a Mesa 2 ocupada na área externa com uma conta aberta.
func NewDemoStore() *MemoryStore {
	m := NewMemoryStore()
	now := time.Now()

	for i, id := range []string{DemoStore1, DemoStore2} {
		m.AddStore(&store.Store{
			ID:        id,
			Name:      "Loja " + strconv.Itoa(i+1),
			Code:      "L" + strconv.Itoa(i+1),
			Status:    store.StatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		})
		seedDemoTables(m, id)
	}
	return m
}

func seedDemoTables(m *MemoryStore, storeID string) {
	inside, _ := table.NewTable(storeID, 1, "Mesa 1", 4, "Área interna")
	outside, _ := table.NewTable(storeID, 2, "Mesa 2", 2, "Área externa")

	open := sale.NewSale(storeID, outside.ID, "Caixa", "Cliente demonstração", 2)
	_ = outside.Open(open.ID)

	var items []sale.LineItem
	for _, p := range []struct {
		code, name string
		qty        int
		price      string
	}{
		{"101", "Refrigerante lata", 2, "6.50"},
		{"205", "Porção de fritas", 1, "32.90"},
	} {
		item, err := sale.NewLineItem(open.ID, p.code, p.name, sale.ByQuantity(p.qty, money.MustParse(p.price)), 0, "")
		if err != nil {
			continue
		}
		items = append(items, *item)
	}
	open.ApplyTotals(sale.Recompute(items, 0))

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.tables[inside.ID] = inside
	m.state.tables[outside.ID] = outside
	m.state.sales[open.ID] = open
	m.state.items[open.ID] = items
}
