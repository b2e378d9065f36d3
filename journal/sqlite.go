package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite journals runs into a local database file. Run IDs are ULIDs,
// so created_at ordering and run_id ordering agree.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// RecordRun writes the run header and its order/skip rows in one
// transaction, so a crash never leaves a run without its children.
func (j *SQLite) RecordRun(r RunRecord) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO runs
		(run_id, created_at, equity, risk_per_trade_pct, risk_per_trade_usd, max_total_risk_usd, total_risk_usd, order_count, skip_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.CreatedAt, r.Equity, r.RiskPerTradePct, r.RiskPerTradeUSD,
		r.MaxTotalRiskUSD, r.TotalRiskUSD, len(r.Orders), len(r.Skips),
	); err != nil {
		return err
	}

	for i, o := range r.Orders {
		if _, err := tx.Exec(`
			INSERT INTO orders
			(run_id, seq, symbol, direction, entry, stop, unit_size, unit_type, risk_per_trade_usd, max_loss_if_stopped, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.RunID, i, o.Symbol, o.Direction, o.Entry, o.Stop,
			o.UnitSize, o.UnitType, o.RiskPerTradeUSD, o.MaxLossIfStopped, o.Notes,
		); err != nil {
			return err
		}
	}

	for i, s := range r.Skips {
		if _, err := tx.Exec(`
			INSERT INTO skips (run_id, seq, symbol, reason)
			VALUES (?, ?, ?, ?)`,
			r.RunID, i, s.Symbol, s.Reason,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

// GetRun returns one run with its orders and skips, in recorded order.
func (j *SQLite) GetRun(runID string) (RunRecord, error) {
	var rec RunRecord

	row := j.db.QueryRow(`
		SELECT run_id, created_at, equity, risk_per_trade_pct, risk_per_trade_usd, max_total_risk_usd, total_risk_usd, order_count, skip_count
		FROM runs
		WHERE run_id = ?`, runID)

	err := row.Scan(
		&rec.RunID,
		&rec.CreatedAt,
		&rec.Equity,
		&rec.RiskPerTradePct,
		&rec.RiskPerTradeUSD,
		&rec.MaxTotalRiskUSD,
		&rec.TotalRiskUSD,
		&rec.OrderCount,
		&rec.SkipCount,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return RunRecord{}, fmt.Errorf("run %q not found", runID)
		}
		return RunRecord{}, err
	}

	if rec.Orders, err = j.ListOrdersByRun(runID); err != nil {
		return RunRecord{}, err
	}
	if rec.Skips, err = j.ListSkipsByRun(runID); err != nil {
		return RunRecord{}, err
	}

	return rec, nil
}

// ListOrdersByRun returns a run's accepted orders in recorded order.
func (j *SQLite) ListOrdersByRun(runID string) ([]OrderRow, error) {
	rows, err := j.db.Query(`
		SELECT symbol, direction, entry, stop, unit_size, unit_type, risk_per_trade_usd, max_loss_if_stopped, notes
		FROM orders
		WHERE run_id = ?
		ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OrderRow
	for rows.Next() {
		var o OrderRow
		if err := rows.Scan(
			&o.Symbol,
			&o.Direction,
			&o.Entry,
			&o.Stop,
			&o.UnitSize,
			&o.UnitType,
			&o.RiskPerTradeUSD,
			&o.MaxLossIfStopped,
			&o.Notes,
		); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSkipsByRun returns a run's skip records in recorded order.
func (j *SQLite) ListSkipsByRun(runID string) ([]SkipRow, error) {
	rows, err := j.db.Query(`
		SELECT symbol, reason
		FROM skips
		WHERE run_id = ?
		ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SkipRow
	for rows.Next() {
		var s SkipRow
		if err := rows.Scan(&s.Symbol, &s.Reason); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRuns returns run summaries, newest first, without child rows.
func (j *SQLite) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := j.db.Query(`
		SELECT run_id, created_at, equity, risk_per_trade_pct, risk_per_trade_usd, max_total_risk_usd, total_risk_usd, order_count, skip_count
		FROM runs
		ORDER BY created_at DESC, run_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		if err := rows.Scan(
			&rec.RunID,
			&rec.CreatedAt,
			&rec.Equity,
			&rec.RiskPerTradePct,
			&rec.RiskPerTradeUSD,
			&rec.MaxTotalRiskUSD,
			&rec.TotalRiskUSD,
			&rec.OrderCount,
			&rec.SkipCount,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
