package report

import (
	"errors"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/finance"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/report"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared"
	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// View statuses
const (
	ViewLoading = "loading"
	ViewError   = "error"
	ViewReady   = "ready"
)

// Card titles, in display order
const (
	CardNetCashFlow     = "Net Cash Flow"
	CardPendingPayables = "Pending Payables"
	CardPendingPayouts  = "Pending Payouts"
	CardTotalIncome     = "Total Income"
)

var cardTitles = []string{CardNetCashFlow, CardPendingPayables, CardPendingPayouts, CardTotalIncome}

const genericLoadError = "We couldn't load the dashboard. Please try again"

// FetchState is where the summary load stands
type FetchState struct {
	Loading bool
	Err     error
}

// Card is one summary tile
type Card struct {
	Title    string `json:"title"`
	Value    string `json:"value,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Trend    string `json:"trend,omitempty"`
}

// ChartPoint is one month of the bar chart
type ChartPoint struct {
	Label    string          `json:"label"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Payouts  decimal.Decimal `json:"payouts"`
}

// PieSlice is one category of the pie chart
type PieSlice struct {
	Label      string          `json:"label"`
	Amount     decimal.Decimal `json:"amount"`
	Display    string          `json:"display"`
	Percentage decimal.Decimal `json:"percentage"`
}

// DashboardView is everything the dashboard renders
type DashboardView struct {
	Status     string       `json:"status"`
	Error      string       `json:"error,omitempty"`
	Year       int          `json:"year,omitempty"`
	Cards      []Card       `json:"cards"`
	Monthly    []ChartPoint `json:"monthly"`
	Categories []PieSlice   `json:"categories"`
}

// Present turns a load state and summary into a view. It only reads the
// summary.
func Present(state FetchState, summary *report.Summary) DashboardView {
	view := DashboardView{Cards: []Card{}, Monthly: []ChartPoint{}, Categories: []PieSlice{}}

	switch {
	case state.Loading:
		view.Status = ViewLoading
		for _, title := range cardTitles {
			view.Cards = append(view.Cards, Card{Title: title})
		}
		return view
	case state.Err != nil:
		view.Status = ViewError
		view.Error = humanMessage(state.Err)
		return view
	case summary == nil:
		view.Status = ViewError
		view.Error = genericLoadError
		return view
	}

	view.Status = ViewReady
	view.Year = summary.Year

	trend := "up"
	if summary.NetCashFlow.IsNegative() {
		trend = "down"
	}
	view.Cards = []Card{
		{Title: CardNetCashFlow, Value: valueobject.FormatSAR(summary.NetCashFlow), Trend: trend},
		{Title: CardPendingPayables, Value: valueobject.FormatSAR(summary.PendingPayables),
			Subtitle: "Overdue: " + valueobject.FormatSAR(summary.OverduePayables)},
		{Title: CardPendingPayouts, Value: valueobject.FormatSAR(summary.PendingPayouts),
			Subtitle: "Overdue: " + valueobject.FormatSAR(summary.OverduePayouts)},
		{Title: CardTotalIncome, Value: valueobject.FormatSAR(summary.TotalIncome),
			Subtitle: "Expenses: " + valueobject.FormatSAR(summary.TotalExpenses)},
	}

	for _, m := range summary.Monthly {
		view.Monthly = append(view.Monthly, ChartPoint{
			Label:    monthLabel(m.Month),
			Income:   m.Income,
			Expenses: m.Expenses,
			Payouts:  m.Payouts,
		})
	}

	total := decimal.Zero
	for _, c := range summary.Categories {
		total = total.Add(c.Amount)
	}
	hundred := decimal.NewFromInt(100)
	for _, c := range summary.Categories {
		pct := decimal.Zero
		if !total.IsZero() {
			pct = c.Amount.Div(total).Mul(hundred).Round(1)
		}
		view.Categories = append(view.Categories, PieSlice{
			Label:      finance.FinanceCategory(c.Category).DisplayName(),
			Amount:     c.Amount,
			Display:    valueobject.FormatSAR(c.Amount),
			Percentage: pct,
		})
	}
	return view
}

func monthLabel(m time.Month) string {
	return m.String()[:3]
}

func humanMessage(err error) string {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return genericLoadError
}
