package repository

import "github.com/jcsalazar/abasto-api/internal/domain/entity"

// FinancialTransactionRepository puerto para el registro de créditos/débitos presupuestales.
type FinancialTransactionRepository interface {
	Create(tx *entity.FinancialTransaction) error
	ListByUnit(unitID string, limit, offset int) ([]*entity.FinancialTransaction, error)
}
