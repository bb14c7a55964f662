package ledger

import (
	"fmt"
	"sort"
	"time"

	"inventory-service/internal/model"
)

// Period selects the truncation used to bucket sales for reporting.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// ParsePeriod maps a query-string value to a Period, defaulting to
// daily for an empty value.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return Period(s), nil
	case "":
		return PeriodDaily, nil
	default:
		return "", invalidf("period", "must be daily, weekly or monthly")
	}
}

// Summarize buckets the window's sales by the period truncation and
// sums revenue and profit per bucket, ascending by period key. A nil
// profit counts as zero. Aggregation runs here rather than in SQL so
// the same truncation rules hold on every database driver.
func (l *Ledger) Summarize(period Period, r DateRange) ([]model.SummaryBucket, error) {
	q := r.scope(l.db.Model(&model.Sale{}), "date")
	var sales []model.Sale
	if err := q.Find(&sales).Error; err != nil {
		return nil, err
	}

	buckets := map[string]*model.SummaryBucket{}
	for _, s := range sales {
		key := periodKey(s.Date, period)
		b, ok := buckets[key]
		if !ok {
			b = &model.SummaryBucket{Period: key}
			buckets[key] = b
		}
		b.TotalSales += s.TotalAmount
		if s.Profit != nil {
			b.TotalProfit += *s.Profit
		}
	}

	out := make([]model.SummaryBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out, nil
}

// Totals sums the whole window: sale count, revenue, profit and margin
// (profit over revenue, zero when there is no revenue).
func (l *Ledger) Totals(r DateRange) (model.SalesTotals, error) {
	q := r.scope(l.db.Model(&model.Sale{}), "date")
	var sales []model.Sale
	if err := q.Find(&sales).Error; err != nil {
		return model.SalesTotals{}, err
	}

	var t model.SalesTotals
	for _, s := range sales {
		t.Count++
		t.TotalSales += s.TotalAmount
		if s.Profit != nil {
			t.TotalProfit += *s.Profit
		}
	}
	if t.TotalSales != 0 {
		t.Margin = t.TotalProfit / t.TotalSales
	}
	return t, nil
}

// periodKey truncates a date to its bucket key.
func periodKey(t time.Time, period Period) string {
	switch period {
	case PeriodMonthly:
		return t.Format("2006-01")
	case PeriodWeekly:
		return fmt.Sprintf("%04d-%02d", t.Year(), weekOfYear(t))
	default:
		return t.Format("2006-01-02")
	}
}

// weekOfYear numbers weeks the way strftime's %W does: weeks start on
// Monday and days before the year's first Monday fall in week 00. Kept
// over ISO-8601 weeks so weekly buckets line up with the historical
// reports, year-boundary quirk included.
func weekOfYear(t time.Time) int {
	dow := (int(t.Weekday()) + 6) % 7 // Monday = 0
	return (t.YearDay() + 6 - dow) / 7
}
