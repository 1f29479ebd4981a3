package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/levinOo/fleet-stats-collector/internal/models"
	"go.uber.org/multierr"
)

const (
	stagingFloatTable = "staging_stats_val_float32"
	stagingIntTable   = "staging_stats_val_int32"

	finalizeFloatCall = "CALL insert_into_stats_float32($1)"
	finalizeIntCall   = "CALL insert_into_stats_int32($1)"

	selectCredentialsQuery = "SELECT machine, id_key FROM svc_access_credential ORDER BY machine"

	stagingColumns = 6

	// Ограничение протокола PostgreSQL на число параметров в одном запросе.
	maxQueryParams   = 65535
	maxRowsPerInsert = maxQueryParams / stagingColumns
)

// DBStorage — бэкенд PostgreSQL.
//
// Замеры сначала массово вставляются в промежуточные таблицы, затем хранимые процедуры
// переносят строки своей партии в нормализованные таблицы и удаляют их из промежуточных.
// Всё это происходит в одной транзакции.
type DBStorage struct {
	db  *sql.DB
	ids *BatchIDGenerator

	// writeMu защищает буферы строк, которые живут только в пределах одного WriteStats.
	writeMu   sync.Mutex
	floatRows []RowStat[float32]
	intRows   []RowStat[int32]
}

// NewDBStorage создаёт бэкенд поверх открытого подключения.
// Если ids равен nil, создаётся генератор, начинающий с текущего времени.
func NewDBStorage(db *sql.DB, ids *BatchIDGenerator) *DBStorage {
	if ids == nil {
		ids = NewBatchIDGenerator()
	}
	return &DBStorage{db: db, ids: ids}
}

// Ping проверяет доступность базы данных.
func (d *DBStorage) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// LoadCredentials читает все учётные данные агентов.
func (d *DBStorage) LoadCredentials(ctx context.Context) ([]models.Credential, error) {
	if err := d.ensureConnected(ctx); err != nil {
		return nil, err
	}

	rows, err := d.db.QueryContext(ctx, selectCredentialsQuery)
	if err != nil {
		return nil, wrapDBError("select credentials", err)
	}
	defer rows.Close()

	var creds []models.Credential
	for rows.Next() {
		var c models.Credential
		if err := rows.Scan(&c.Machine, &c.Key); err != nil {
			return nil, wrapDBError("scan credential", err)
		}
		creds = append(creds, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("iterate credentials", err)
	}

	return creds, nil
}

// WriteStats сохраняет партию пакетов в одной транзакции.
// При любой ошибке транзакция откатывается, частично записанных данных не остаётся.
func (d *DBStorage) WriteStats(ctx context.Context, batch []*models.StatsPackage) (err error) {
	floats, ints := CountRows(batch)
	if floats+ints == 0 {
		return nil
	}

	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	if err = d.ensureConnected(ctx); err != nil {
		return err
	}

	floatID := d.ids.Next()
	intID := d.ids.Next()

	d.resetBuffers()
	defer d.resetBuffers()
	d.floatRows, d.intRows = flatten(batch, floatID, intID, d.floatRows, d.intRows)

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapDBError("begin transaction", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = multierr.Append(err, fmt.Errorf("rollback: %w", rbErr))
		}
	}()

	if err = insertStaging(ctx, tx, stagingFloatTable, d.floatRows); err != nil {
		return err
	}
	if err = insertStaging(ctx, tx, stagingIntTable, d.intRows); err != nil {
		return err
	}

	if len(d.floatRows) > 0 {
		if _, err = tx.ExecContext(ctx, finalizeFloatCall, floatID); err != nil {
			return wrapDBError("finalize float32 batch "+strconv.FormatInt(floatID, 10), err)
		}
	}
	if len(d.intRows) > 0 {
		if _, err = tx.ExecContext(ctx, finalizeIntCall, intID); err != nil {
			return wrapDBError("finalize int32 batch "+strconv.FormatInt(intID, 10), err)
		}
	}

	if err = tx.Commit(); err != nil {
		return wrapDBError("commit", err)
	}
	return nil
}

func (d *DBStorage) resetBuffers() {
	clear(d.floatRows)
	clear(d.intRows)
	d.floatRows = d.floatRows[:0]
	d.intRows = d.intRows[:0]
}

// ensureConnected проверяет соединение и один раз повторяет попытку:
// database/sql при повторном обращении берёт из пула новое подключение.
func (d *DBStorage) ensureConnected(ctx context.Context) error {
	err := d.db.PingContext(ctx)
	if err == nil {
		return nil
	}

	retryErr := d.db.PingContext(ctx)
	if retryErr == nil {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrBackendUnavailable, multierr.Combine(err, retryErr))
}

func insertStaging[T models.Number](ctx context.Context, tx *sql.Tx, table string, rows []RowStat[T]) error {
	for start := 0; start < len(rows); start += maxRowsPerInsert {
		end := min(start+maxRowsPerInsert, len(rows))

		query, args := buildStagingInsert(table, rows[start:end])
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return wrapDBError("insert into "+table, err)
		}
	}
	return nil
}

func buildStagingInsert[T models.Number](table string, rows []RowStat[T]) (string, []any) {
	var sb strings.Builder
	sb.Grow(96 + len(rows)*40)

	sb.WriteString("INSERT INTO ")
	sb.WriteString(table)
	sb.WriteString(" (batch_id, mac_name, stat_name, instant, stat_val, quality) VALUES ")

	args := make([]any, 0, len(rows)*stagingColumns)
	argIndex := 1
	for i, r := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for c := 0; c < stagingColumns; c++ {
			if c > 0 {
				sb.WriteString(", ")
			}
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(argIndex))
			argIndex++
		}
		sb.WriteByte(')')

		args = append(args, r.BatchID, r.Machine, r.StatName, r.Instant, r.Value, r.Quality)
	}

	return sb.String(), args
}

// wrapDBError добавляет к ошибке описание операции и, если это ошибка сервера, её SQLSTATE.
func wrapDBError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %s (SQLSTATE %s): %w", op, pgErr.Message, pgErr.Code, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
