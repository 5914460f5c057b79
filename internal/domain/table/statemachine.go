package table

import (
	"time"

	"github.com/hugohenrick/pdv-mesas/pkg/apperror"
)

// Transições permitidas:
//
//	free -> occupied -> awaiting_payment -> free
//	awaiting_payment -> cleaning -> free
//	qualquer -> cleaning | free (administrativo, sem venda vinculada)
//
// Toda transição valida antes de alterar: quando rejeitada, a mesa fica intacta.

func (t *Table) conflict(format string, args ...interface{}) error {
	return apperror.Conflict("mesa", t.ID, format, args...)
}

func (t *Table) touch(status Status) {
	t.Status = status
	t.UpdatedAt = time.Now()
}

// Open vincula uma venda à mesa livre e a marca como ocupada
func (t *Table) Open(saleID string) error {
	if saleID == "" {
		return apperror.Validation("sale_id", "venda não informada")
	}
	if !t.IsActive {
		return t.conflict("mesa desativada")
	}
	if t.Status != StatusFree {
		return t.conflict("mesa não está livre (status %s)", t.Status)
	}
	if t.HasSale() {
		return t.conflict("mesa já possui a venda %s vinculada", t.CurrentSaleID)
	}
	t.CurrentSaleID = saleID
	t.touch(StatusOccupied)
	return nil
}

// RequestBill move a mesa ocupada para aguardando conta. A venda continua
// vinculada e aberta até o pagamento.
func (t *Table) RequestBill() error {
	if t.Status != StatusOccupied {
		return t.conflict("conta só pode ser pedida com a mesa ocupada (status %s)", t.Status)
	}
	if !t.HasSale() {
		return t.conflict("mesa ocupada sem venda vinculada")
	}
	t.touch(StatusAwaitingPayment)
	return nil
}

// Release desvincula a venda paga e move a mesa para o próximo status
func (t *Table) Release(saleID string, next Status) error {
	if t.Status != StatusOccupied && t.Status != StatusAwaitingPayment {
		return t.conflict("mesa não está em atendimento (status %s)", t.Status)
	}
	if !t.HasSale() || t.CurrentSaleID != saleID {
		return t.conflict("venda %s não é a venda vinculada à mesa", saleID)
	}
	switch next {
	case StatusFree, StatusCleaning, StatusAwaitingPayment:
	default:
		return apperror.Validation("status", "status %s inválido após o fechamento", next)
	}
	t.CurrentSaleID = ""
	t.touch(next)
	return nil
}

// MarkClean coloca a mesa em limpeza. Com venda vinculada retorna
// StateConflictError: a venda precisa ser fechada antes, senão ficaria aberta
// sem mesa.
func (t *Table) MarkClean() error {
	if t.HasSale() {
		return t.conflict("feche a venda %s antes de liberar a mesa", t.CurrentSaleID)
	}
	t.touch(StatusCleaning)
	return nil
}

// MarkFree libera a mesa manualmente. Assim como MarkClean, é rejeitada com
// StateConflictError enquanto houver venda vinculada.
func (t *Table) MarkFree() error {
	if t.HasSale() {
		return t.conflict("feche a venda %s antes de liberar a mesa", t.CurrentSaleID)
	}
	t.touch(StatusFree)
	return nil
}
