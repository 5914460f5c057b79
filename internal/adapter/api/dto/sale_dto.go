package dto

import (
	"time"

	"github.com/hugohenrick/pdv-mesas/internal/domain/cart"
	"github.com/hugohenrick/pdv-mesas/internal/domain/money"
	"github.com/hugohenrick/pdv-mesas/internal/domain/sale"
	"github.com/hugohenrick/pdv-mesas/pkg/apperror"
)

// Valores monetários trafegam como texto com duas casas ("54.70"); a entrada
// também aceita vírgula decimal ("54,70").

// OpenSaleRequest representa os dados para abrir a venda de uma mesa
type OpenSaleRequest struct {
	OperatorName  string `json:"operator_name"`
	CustomerName  string `json:"customer_name"`
	CustomerCount int    `json:"customer_count" binding:"required"`
}

// CartItemRequest é uma entrada do carrinho enviada na confirmação. Itens
// unitários usam quantity e unit_price; itens a peso usam weight_kg e price_per_gram.
type CartItemRequest struct {
	ProductCode    string `json:"product_code" binding:"required"`
	ProductName    string `json:"product_name"`
	Quantity       int    `json:"quantity"`
	UnitPrice      string `json:"unit_price"`
	WeightKg       string `json:"weight_kg"`
	PricePerGram   string `json:"price_per_gram"`
	DiscountAmount string `json:"discount_amount"`
	Notes          string `json:"notes"`
}

// CommitCartRequest representa o carrinho a ser confirmado na venda
type CommitCartRequest struct {
	Items []CartItemRequest `json:"items" binding:"required,dive"`
}

// UpdateItemRequest altera a quantidade de um item; zero remove o item
type UpdateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// DiscountRequest define o desconto da venda
type DiscountRequest struct {
	DiscountAmount string `json:"discount_amount" binding:"required"`
}

// CloseSaleRequest representa os dados do fechamento da conta
type CloseSaleRequest struct {
	PaymentType     string `json:"payment_type"`
	TenderedAmount  string `json:"tendered_amount"`
	RequestCleaning bool   `json:"request_cleaning"`
	Notes           string `json:"notes"`
}

// LineItemResponse representa um item da venda
type LineItemResponse struct {
	ID             string    `json:"id"`
	ProductCode    string    `json:"product_code"`
	ProductName    string    `json:"product_name"`
	Quantity       int       `json:"quantity,omitempty"`
	UnitPrice      string    `json:"unit_price,omitempty"`
	WeightKg       string    `json:"weight_kg,omitempty"`
	PricePerGram   string    `json:"price_per_gram,omitempty"`
	DiscountAmount string    `json:"discount_amount"`
	Subtotal       string    `json:"subtotal"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// SaleResponse representa uma venda na resposta da API
type SaleResponse struct {
	ID             string             `json:"id"`
	StoreID        string             `json:"store_id"`
	TableID        string             `json:"table_id"`
	OperatorName   string             `json:"operator_name"`
	CustomerName   string             `json:"customer_name"`
	CustomerCount  int                `json:"customer_count"`
	Subtotal       string             `json:"subtotal"`
	DiscountAmount string             `json:"discount_amount"`
	TotalAmount    string             `json:"total_amount"`
	Status         string             `json:"status"`
	PaymentType    string             `json:"payment_type,omitempty"`
	TenderedAmount string             `json:"tendered_amount,omitempty"`
	ChangeAmount   string             `json:"change_amount"`
	Notes          string             `json:"notes,omitempty"`
	OpenedAt       time.Time          `json:"opened_at"`
	ClosedAt       *time.Time         `json:"closed_at,omitempty"`
	Items          []LineItemResponse `json:"items"`
}

// ChangeResponse representa o troco calculado no fechamento
type ChangeResponse struct {
	Amount    string `json:"amount"`
	Shortfall bool   `json:"shortfall"`
	Missing   string `json:"missing,omitempty"`
}

// CloseSaleResponse representa o resultado do fechamento
type CloseSaleResponse struct {
	Sale   SaleResponse   `json:"sale"`
	Table  TableResponse  `json:"table"`
	Change ChangeResponse `json:"change"`
}

// ReconcileResponse representa o resultado da reconciliação de uma venda
type ReconcileResponse struct {
	Sale          SaleResponse `json:"sale"`
	Drifted       bool         `json:"drifted"`
	PreviousTotal string       `json:"previous_total"`
}

// ReconcileStoreResponse resume a reconciliação de todas as vendas abertas da loja
type ReconcileStoreResponse struct {
	Checked  int      `json:"checked"`
	Repaired int      `json:"repaired"`
	SaleIDs  []string `json:"repaired_sale_ids"`
}

// ToCart monta o carrinho a partir da requisição, aplicando as mesmas regras
// da montagem feita no terminal
func (r CommitCartRequest) ToCart() (*cart.Cart, error) {
	c := cart.New()
	for _, item := range r.Items {
		if err := addToCart(c, item); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func addToCart(c *cart.Cart, item CartItemRequest) error {
	if item.WeightKg != "" || item.PricePerGram != "" {
		weight, err := money.ParseDecimal(item.WeightKg)
		if err != nil {
			return apperror.Validation("weight_kg", "%v", err)
		}
		pricePerGram, err := money.ParseDecimal(item.PricePerGram)
		if err != nil {
			return apperror.Validation("price_per_gram", "%v", err)
		}
		if err := c.AddWeighed(item.ProductCode, item.ProductName, weight, pricePerGram); err != nil {
			return err
		}
	} else {
		price, err := money.Parse(item.UnitPrice)
		if err != nil {
			return apperror.Validation("unit_price", "%v", err)
		}
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		if quantity < 0 {
			return apperror.Validation("quantity", "quantidade não pode ser negativa")
		}
		if quantity > sale.MaxQuantity {
			return apperror.Validation("quantity", "quantidade máxima é %d", sale.MaxQuantity)
		}
		previous := quantityOf(c, item.ProductCode)
		if err := c.Add(item.ProductCode, item.ProductName, price); err != nil {
			return err
		}
		if quantity > 1 {
			if err := c.SetQuantity(item.ProductCode, previous+quantity); err != nil {
				return err
			}
		}
	}

	if item.DiscountAmount != "" {
		discount, err := money.ParseNonNegative(item.DiscountAmount)
		if err != nil {
			return apperror.Validation("discount_amount", "%v", err)
		}
		if err := c.SetDiscount(item.ProductCode, discount); err != nil {
			return err
		}
	}
	if item.Notes != "" {
		c.SetNotes(item.ProductCode, item.Notes)
	}
	return nil
}

func quantityOf(c *cart.Cart, code string) int {
	for _, e := range c.Entries() {
		if e.ProductCode == code {
			return e.Quantity
		}
	}
	return 0
}

// ParseTendered interpreta o valor entregue; texto vazio significa não informado
func (r CloseSaleRequest) ParseTendered() (*money.Money, error) {
	if r.TenderedAmount == "" {
		return nil, nil
	}
	m, err := money.ParseNonNegative(r.TenderedAmount)
	if err != nil {
		return nil, apperror.Validation("tendered_amount", "%v", err)
	}
	return &m, nil
}

// ToLineItemResponse converte um item da venda
func ToLineItemResponse(item sale.LineItem) LineItemResponse {
	resp := LineItemResponse{
		ID:             item.ID,
		ProductCode:    item.ProductCode,
		ProductName:    item.ProductName,
		DiscountAmount: item.DiscountAmount.String(),
		Subtotal:       item.Subtotal.String(),
		Notes:          item.Notes,
		CreatedAt:      item.CreatedAt,
	}
	if item.IsWeighed() {
		resp.WeightKg = item.WeightKg.StringFixed(3)
		resp.PricePerGram = item.PricePerGram.String()
	} else {
		resp.Quantity = item.Quantity
		resp.UnitPrice = item.UnitPrice.String()
	}
	return resp
}

// ToSaleResponse converte uma venda e seus itens
func ToSaleResponse(s *sale.Sale) SaleResponse {
	resp := SaleResponse{
		ID:             s.ID,
		StoreID:        s.StoreID,
		TableID:        s.TableID,
		OperatorName:   s.OperatorName,
		CustomerName:   s.CustomerName,
		CustomerCount:  s.CustomerCount,
		Subtotal:       s.Subtotal.String(),
		DiscountAmount: s.DiscountAmount.String(),
		TotalAmount:    s.TotalAmount.String(),
		Status:         string(s.Status),
		PaymentType:    string(s.PaymentType),
		ChangeAmount:   s.ChangeAmount.String(),
		Notes:          s.Notes,
		OpenedAt:       s.OpenedAt,
		ClosedAt:       s.ClosedAt,
		Items:          make([]LineItemResponse, 0, len(s.Items)),
	}
	if s.TenderedAmount > 0 {
		resp.TenderedAmount = s.TenderedAmount.String()
	}
	for _, item := range s.Items {
		resp.Items = append(resp.Items, ToLineItemResponse(item))
	}
	return resp
}

// ToChangeResponse converte o cálculo de troco
func ToChangeResponse(c sale.Change) ChangeResponse {
	resp := ChangeResponse{Amount: c.Amount.String(), Shortfall: c.Shortfall}
	if c.Shortfall {
		resp.Missing = c.Missing.String()
	}
	return resp
}
