package journal

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// CSV journals runs into three append-only files under one directory:
// runs.csv, orders.csv and skips.csv. Appending keeps history across
// invocations; the run_id column ties the files together.
type CSV struct {
	runs, orders, skips *csv.Writer
	rf, of, sf          *os.File
}

func NewCSV(dir string) (*CSV, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	rf, err := openAppend(filepath.Join(dir, "runs.csv"), []string{
		"run_id", "created_at", "equity", "risk_per_trade_pct", "risk_per_trade_usd",
		"max_total_risk_usd", "total_risk_usd", "order_count", "skip_count",
	})
	if err != nil {
		return nil, err
	}
	of, err := openAppend(filepath.Join(dir, "orders.csv"), []string{
		"run_id", "seq", "symbol", "direction", "entry", "stop",
		"unit_size", "unit_type", "risk_per_trade_usd", "max_loss_if_stopped", "notes",
	})
	if err != nil {
		rf.Close()
		return nil, err
	}
	sf, err := openAppend(filepath.Join(dir, "skips.csv"), []string{
		"run_id", "seq", "symbol", "reason",
	})
	if err != nil {
		rf.Close()
		of.Close()
		return nil, err
	}

	return &CSV{
		runs:   csv.NewWriter(rf),
		orders: csv.NewWriter(of),
		skips:  csv.NewWriter(sf),
		rf:     rf,
		of:     of,
		sf:     sf,
	}, nil
}

// openAppend opens path for appending and writes the header if the file
// is new or empty.
func openAppend(path string, header []string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	st, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if st.Size() == 0 {
		w := csv.NewWriter(file)
		if err := w.Write(header); err != nil {
			file.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			file.Close()
			return nil, err
		}
	}

	return file, nil
}

func (j *CSV) RecordRun(r RunRecord) error {
	if err := j.runs.Write([]string{
		r.RunID,
		r.CreatedAt.Format(time.RFC3339),
		money(r.Equity),
		pct(r.RiskPerTradePct),
		money(r.RiskPerTradeUSD),
		money(r.MaxTotalRiskUSD),
		money(r.TotalRiskUSD),
		strconv.Itoa(len(r.Orders)),
		strconv.Itoa(len(r.Skips)),
	}); err != nil {
		return err
	}

	for i, o := range r.Orders {
		if err := j.orders.Write([]string{
			r.RunID,
			strconv.Itoa(i),
			o.Symbol,
			o.Direction,
			price(o.Entry),
			price(o.Stop),
			strconv.Itoa(o.UnitSize),
			o.UnitType,
			money(o.RiskPerTradeUSD),
			money(o.MaxLossIfStopped),
			o.Notes,
		}); err != nil {
			return err
		}
	}

	for i, s := range r.Skips {
		if err := j.skips.Write([]string{
			r.RunID,
			strconv.Itoa(i),
			s.Symbol,
			s.Reason,
		}); err != nil {
			return err
		}
	}

	j.runs.Flush()
	if err := j.runs.Error(); err != nil {
		return err
	}
	j.orders.Flush()
	if err := j.orders.Error(); err != nil {
		return err
	}
	j.skips.Flush()
	return j.skips.Error()
}

func (j *CSV) Close() error {
	j.runs.Flush()
	if err := j.runs.Error(); err != nil {
		return err
	}
	j.orders.Flush()
	if err := j.orders.Error(); err != nil {
		return err
	}
	j.skips.Flush()
	if err := j.skips.Error(); err != nil {
		return err
	}

	if err := j.rf.Close(); err != nil {
		return err
	}
	if err := j.of.Close(); err != nil {
		return err
	}
	return j.sf.Close()
}

func money(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}

func pct(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

func price(x float64) string {
	return strconv.FormatFloat(x, 'f', 4, 64)
}
