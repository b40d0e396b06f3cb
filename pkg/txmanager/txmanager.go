// Package txmanager — менеджер транзакций поверх обернутого в метрики подключения.
// Активная транзакция протаскивается в репозитории через context (dbmetrics.WithTx),
// поэтому код репозиториев не знает, выполняется он в транзакции или нет.
//
// DoSerializable повторяет транзакцию ограниченное число раз при конфликте
// сериализации или кратковременной недоступности БД, с джиттером между
// попытками. Исчерпав попытки, возвращает ErrTxConflict / ErrUnavailable —
// вызывающая сторона отдает их клиенту как retryable-ошибки.
package txmanager

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"time"

	"github.com/lib/pq"

	"github.com/clinicdesk/CDS-ClinicBookingService/pkg/dbmetrics"
)

const (
	// MaxSerializableAttempts максимальное число попыток сериализуемой транзакции
	MaxSerializableAttempts = 3

	baseBackoff = 25 * time.Millisecond
)

var (
	// ErrTxConflict возвращается, когда транзакция не зафиксировалась из-за
	// конфликта сериализации после всех попыток
	ErrTxConflict = errors.New("txmanager: transaction conflict")

	// ErrUnavailable возвращается, когда БД недоступна после всех попыток
	ErrUnavailable = errors.New("txmanager: storage unavailable")

	// ErrBeginTx возвращается при ошибке открытия транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")
)

// TxBeginner интерфейс источника транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// RetryObserver получает уведомления о повторах транзакций (метрики)
type RetryObserver interface {
	IncTxRetry(reason string)
}

// TransactionManager менеджер транзакций
type TransactionManager struct {
	db       TxBeginner
	observer RetryObserver
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// SetRetryObserver подключает наблюдателя повторов (опционально)
func (m *TransactionManager) SetRetryObserver(observer RetryObserver) {
	m.observer = observer
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию (read committed)
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.runOnce(ctx, &sql.TxOptions{}, fn)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.runOnce(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции с ограниченным
// числом повторов при конфликте сериализации / недоступности БД
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var lastErr error
	for attempt := 1; attempt <= MaxSerializableAttempts; attempt++ {
		err := m.runOnce(ctx, opts, fn)
		if err == nil {
			return nil
		}

		reason, retryable := classify(err)
		if !retryable {
			return err
		}

		lastErr = err
		if m.observer != nil {
			m.observer.IncTxRetry(reason)
		}

		if attempt < MaxSerializableAttempts {
			select {
			case <-time.After(backoff(attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	reason, _ := classify(lastErr)
	if reason == "unavailable" {
		return fmt.Errorf("%w: after %d attempts: %v", ErrUnavailable, MaxSerializableAttempts, lastErr)
	}
	return fmt.Errorf("%w: after %d attempts: %v", ErrTxConflict, MaxSerializableAttempts, lastErr)
}

func (m *TransactionManager) runOnce(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		if _, retryable := classify(err); retryable {
			return err
		}
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// backoff возвращает задержку перед повтором: base * 2^(attempt-1) + джиттер
func backoff(attempt int) time.Duration {
	d := baseBackoff << (attempt - 1)
	jitter := time.Duration(rand.Int63n(int64(d)))
	return d + jitter
}

// classify определяет, является ли ошибка retryable, и по какой причине
func classify(err error) (reason string, retryable bool) {
	if err == nil {
		return "", false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		// serialization_failure, deadlock_detected
		case pqErr.Code == "40001" || pqErr.Code == "40P01":
			return "conflict", true
		// class 08 — connection exceptions
		case pqErr.Code.Class() == "08":
			return "unavailable", true
		}
		return "", false
	}

	if errors.Is(err, driver.ErrBadConn) {
		return "unavailable", true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return "unavailable", true
	}

	return "", false
}

// IsConflict сообщает, что ошибка — конфликт сериализации (после повторов)
func IsConflict(err error) bool {
	return errors.Is(err, ErrTxConflict)
}

// IsUnavailable сообщает, что ошибка — недоступность хранилища (после повторов)
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
