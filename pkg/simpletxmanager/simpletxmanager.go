// Package simpletxmanager — менеджер транзакций для чистого *sql.DB,
// без обертки метрик. Вся логика повторов живет в txmanager, здесь только
// адаптер *sql.DB под интерфейс TxBeginner.
package simpletxmanager

import (
	"context"
	"database/sql"

	"github.com/clinicdesk/CDS-ClinicBookingService/pkg/dbmetrics"
	"github.com/clinicdesk/CDS-ClinicBookingService/pkg/txmanager"
)

type sqlBeginner struct {
	db *sql.DB
}

func (b sqlBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return b.db.BeginTx(ctx, opts)
}

// TransactionManager менеджер транзакций поверх *sql.DB
type TransactionManager struct {
	*txmanager.TransactionManager
}

// NewTransactionManager создает менеджер транзакций для чистого *sql.DB
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{
		TransactionManager: txmanager.NewTransactionManager(sqlBeginner{db: db}),
	}
}
