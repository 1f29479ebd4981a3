// Package db открывает подключения к PostgreSQL через драйвер pgx.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

// DriverName — имя, под которым pgx регистрируется в database/sql.
const DriverName = "pgx"

// RetryIntervals задаёт паузы между повторными попытками подключения.
var RetryIntervals = []time.Duration{1 * time.Second, 3 * time.Second, 5 * time.Second}

// Open открывает пул на одно соединение. Каждому владельцу подключения,
// циклу записи и кэшу учётных данных, выдаётся свой пул.
func Open(dsn string) (*sql.DB, error) {
	conn, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxIdleTime(5 * time.Minute)
	return conn, nil
}

// ConnectDB открывает подключение и дожидается ответа базы, повторяя попытку
// при ошибках соединения.
func ConnectDB(ctx context.Context, dsn string, sugar *zap.SugaredLogger) (*sql.DB, error) {
	conn, err := Open(dsn)
	if err != nil {
		return nil, err
	}

	if err := PingWithRetry(ctx, conn, sugar); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// PingWithRetry проверяет соединение, повторяя попытку с паузами RetryIntervals,
// пока ошибка относится к классу сетевых.
func PingWithRetry(ctx context.Context, conn *sql.DB, sugar *zap.SugaredLogger) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = conn.PingContext(ctx)
		if err == nil {
			return nil
		}
		if !IsConnectionError(err) || attempt >= len(RetryIntervals) {
			break
		}

		wait := RetryIntervals[attempt]
		sugar.Warnw("Database is not reachable, retrying", "attempt", attempt+1, "wait", wait, "error", err)

		select {
		case <-ctx.Done():
			return fmt.Errorf("connect to database: %w", ctx.Err())
		case <-time.After(wait):
		}
	}
	return fmt.Errorf("connect to database: %w", err)
}

// IsConnectionError сообщает, стоит ли повторять операцию: сервер отказал в соединении
// или вернул ошибку класса 08 (Connection Exception).
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) == 5 && pgErr.Code[:2] == "08" {
		return true
	}
	return false
}

// DataBaseConnection открывает короткоживущее подключение и проверяет доступность базы.
func DataBaseConnection(ctx context.Context, dsn string) error {
	conn, err := sql.Open(DriverName, dsn)
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.PingContext(ctx)
}

// DSNPinger проверяет доступность базы отдельным подключением,
// не занимая соединения, которыми владеют цикл записи и кэш учётных данных.
type DSNPinger struct {
	DSN string
}

// Ping реализует проверку для обработчика /ping.
func (p DSNPinger) Ping(ctx context.Context) error {
	return DataBaseConnection(ctx, p.DSN)
}
