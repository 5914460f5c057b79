package dto

import (
	"time"

	"github.com/hugohenrick/pdv-mesas/internal/domain/table"
)

// CreateTableRequest representa os dados para cadastro de uma mesa
type CreateTableRequest struct {
	Number   int    `json:"number" binding:"required,min=1"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
	Location string `json:"location"`
}

// CurrentSaleResponse é o resumo da venda aberta exibido no card da mesa
type CurrentSaleResponse struct {
	ID            string    `json:"id"`
	CustomerName  string    `json:"customer_name"`
	CustomerCount int       `json:"customer_count"`
	TotalAmount   string    `json:"total_amount"`
	OpenedAt      time.Time `json:"opened_at"`
}

// TableResponse representa uma mesa na resposta da API
type TableResponse struct {
	ID            string               `json:"id"`
	StoreID       string               `json:"store_id"`
	Number        int                  `json:"number"`
	Name          string               `json:"name"`
	Capacity      int                  `json:"capacity"`
	Location      string               `json:"location"`
	Status        string               `json:"status"`
	StatusLabel   string               `json:"status_label"`
	CurrentSaleID string               `json:"current_sale_id,omitempty"`
	CurrentSale   *CurrentSaleResponse `json:"current_sale,omitempty"`
	Version       int64                `json:"version"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// TableListResponse representa a lista de mesas da loja
type TableListResponse struct {
	Tables []TableResponse `json:"tables"`
	Total  int             `json:"total"`
}

// ToTableResponse converte uma mesa para resposta
func ToTableResponse(t *table.Table) TableResponse {
	return TableResponse{
		ID:            t.ID,
		StoreID:       t.StoreID,
		Number:        t.Number,
		Name:          t.Name,
		Capacity:      t.Capacity,
		Location:      t.Location,
		Status:        string(t.Status),
		StatusLabel:   t.Status.Label(),
		CurrentSaleID: t.CurrentSaleID,
		Version:       t.Version,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// ToTableWithSaleResponse converte uma mesa com a venda vinculada
func ToTableWithSaleResponse(ws table.WithSale) TableResponse {
	resp := ToTableResponse(&ws.Table)
	if ws.CurrentSale != nil {
		resp.CurrentSale = &CurrentSaleResponse{
			ID:            ws.CurrentSale.ID,
			CustomerName:  ws.CurrentSale.CustomerName,
			CustomerCount: ws.CurrentSale.CustomerCount,
			TotalAmount:   ws.CurrentSale.TotalAmount.String(),
			OpenedAt:      ws.CurrentSale.OpenedAt,
		}
	}
	return resp
}

// ToTableListResponse converte a lista de mesas
func ToTableListResponse(tables []table.WithSale) TableListResponse {
	resp := TableListResponse{Tables: make([]TableResponse, 0, len(tables)), Total: len(tables)}
	for _, t := range tables {
		resp.Tables = append(resp.Tables, ToTableWithSaleResponse(t))
	}
	return resp
}
