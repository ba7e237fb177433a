package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteJournal persists trades, equity snapshots and run summaries in a
// single SQLite database.
type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, run_id, instrument, quantity, entry_price, exit_price, entry_time, exit_time, pnl, fees, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.RunID, t.Instrument, t.Quantity, t.EntryPrice,
		t.ExitPrice, t.EntryTime, t.ExitTime, t.PnL, t.Fees, t.Reason,
	)
	return err
}

func (j *SQLiteJournal) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity (run_id, time, equity) VALUES (?, ?, ?)`,
		e.RunID, e.Time, e.Equity,
	)
	return err
}

func (j *SQLiteJournal) RecordRun(r Run) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, strategy, instruments, start_time, end_time, initial_capital, final_equity,
		 trades, wins, losses, win_rate, profit_factor, sharpe, sortino, max_drawdown, return_pct)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Strategy, joinInstruments(r.Instruments), r.Start, r.End,
		r.InitialCapital, r.FinalEquity, r.Trades, r.Wins, r.Losses, r.WinRate,
		r.ProfitFac, r.Sharpe, r.Sortino, r.MaxDrawdown, r.ReturnPct,
	)
	return err
}

func (j *SQLiteJournal) GetRun(runID string) (Run, error) {
	row := j.db.QueryRow(`
		SELECT run_id, created, strategy, instruments, start_time, end_time, initial_capital, final_equity,
		       trades, wins, losses, win_rate, profit_factor, sharpe, sortino, max_drawdown, return_pct
		FROM runs WHERE run_id = ?`, runID)

	var r Run
	var instruments string
	err := row.Scan(
		&r.RunID, &r.Created, &r.Strategy, &instruments, &r.Start, &r.End,
		&r.InitialCapital, &r.FinalEquity, &r.Trades, &r.Wins, &r.Losses, &r.WinRate,
		&r.ProfitFac, &r.Sharpe, &r.Sortino, &r.MaxDrawdown, &r.ReturnPct,
	)
	if err == sql.ErrNoRows {
		return Run{}, fmt.Errorf("run %q not found", runID)
	}
	if err != nil {
		return Run{}, err
	}
	r.Instruments = splitInstruments(instruments)
	return r, nil
}

// ListRuns returns run summaries, most recent first.
func (j *SQLiteJournal) ListRuns(limit int) ([]Run, error) {
	rows, err := j.db.Query(`
		SELECT run_id, created, strategy, instruments, start_time, end_time, initial_capital, final_equity,
		       trades, wins, losses, win_rate, profit_factor, sharpe, sortino, max_drawdown, return_pct
		FROM runs ORDER BY created DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var instruments string
		if err := rows.Scan(
			&r.RunID, &r.Created, &r.Strategy, &instruments, &r.Start, &r.End,
			&r.InitialCapital, &r.FinalEquity, &r.Trades, &r.Wins, &r.Losses, &r.WinRate,
			&r.ProfitFac, &r.Sharpe, &r.Sortino, &r.MaxDrawdown, &r.ReturnPct,
		); err != nil {
			return nil, err
		}
		r.Instruments = splitInstruments(instruments)
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListTradesByRun returns a run's trades in exit-time order.
func (j *SQLiteJournal) ListTradesByRun(runID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, run_id, instrument, quantity, entry_price, exit_price, entry_time, exit_time, pnl, fees, reason
		FROM trades WHERE run_id = ? ORDER BY exit_time ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := rows.Scan(
			&rec.TradeID, &rec.RunID, &rec.Instrument, &rec.Quantity, &rec.EntryPrice,
			&rec.ExitPrice, &rec.EntryTime, &rec.ExitTime, &rec.PnL, &rec.Fees, &rec.Reason,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListEquityByRun returns a run's equity curve in time order.
func (j *SQLiteJournal) ListEquityByRun(runID string) ([]EquitySnapshot, error) {
	rows, err := j.db.Query(`
		SELECT run_id, time, equity FROM equity WHERE run_id = ? ORDER BY time ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquitySnapshot
	for rows.Next() {
		var e EquitySnapshot
		if err := rows.Scan(&e.RunID, &e.Time, &e.Equity); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListTradesClosedBetween returns trades with exit_time in [start, end).
func (j *SQLiteJournal) ListTradesClosedBetween(start, end time.Time) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, run_id, instrument, quantity, entry_price, exit_price, entry_time, exit_time, pnl, fees, reason
		FROM trades WHERE exit_time >= ? AND exit_time < ? ORDER BY exit_time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := rows.Scan(
			&rec.TradeID, &rec.RunID, &rec.Instrument, &rec.Quantity, &rec.EntryPrice,
			&rec.ExitPrice, &rec.EntryTime, &rec.ExitTime, &rec.PnL, &rec.Fees, &rec.Reason,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
