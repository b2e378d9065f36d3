package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created_at DATETIME NOT NULL,
	equity REAL NOT NULL,
	risk_per_trade_pct REAL NOT NULL,
	risk_per_trade_usd REAL NOT NULL,
	max_total_risk_usd REAL NOT NULL,
	total_risk_usd REAL NOT NULL,
	order_count INTEGER NOT NULL,
	skip_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	symbol TEXT NOT NULL,
	direction TEXT NOT NULL,
	entry REAL NOT NULL,
	stop REAL NOT NULL,
	unit_size INTEGER NOT NULL,
	unit_type TEXT NOT NULL,
	risk_per_trade_usd REAL NOT NULL,
	max_loss_if_stopped REAL NOT NULL,
	notes TEXT NOT NULL,
	PRIMARY KEY (run_id, seq)
);

CREATE TABLE IF NOT EXISTS skips (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	symbol TEXT NOT NULL,
	reason TEXT NOT NULL,
	PRIMARY KEY (run_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`
