package terminal

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/template"

	"github.com/nicolasberthel/enerfolio/pkg/models/domain"
	"golang.org/x/exp/maps"
)

// Reporter renders chart and portfolio views as text tables.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (r *Reporter) HandleChart(c domain.ChartData) error {
	types := collectEnergyTypes(c.Rows)

	header := []string{"Timestamp", "Consumption"}
	for _, et := range types {
		header = append(header, string(et))
	}

	fmt.Fprintf(r.writer, "\nMeter %s - %s (%s to %s)\n\n",
		c.MeterID, c.Label,
		c.Period.From.Format("2006-01-02"), c.Period.To.Format("2006-01-02"))

	printRow(r.writer, header)
	for _, row := range c.Rows {
		cells := []string{
			row.Time.Format("2006-01-02 15:04"),
			fmt.Sprintf("%.2f", row.Consumption),
		}
		for _, et := range types {
			cells = append(cells, fmt.Sprintf("%.2f", row.Production[et]))
		}
		printRow(r.writer, cells)
	}

	if len(c.Markers) > 0 {
		fmt.Fprintf(r.writer, "\nTransactions in period:\n")
		for _, m := range c.Markers {
			fmt.Fprintf(r.writer, "  %s  %-4s %4d shares of %s @ %.2f\n",
				m.Date.Format("2006-01-02"), m.Direction, m.Shares, m.ProjectName, m.PricePerShare)
		}
	}
	return nil
}

func (r *Reporter) HandlePortfolio(
	userID string,
	valuations []domain.InvestmentValuation,
	summary domain.PortfolioSummary,
) error {
	tmpl := `
Portfolio {{.UserID}}

{{range .Valuations}}
{{.ProjectName}} ({{.EnergyType}})
  Shares:         {{.Shares}}
  Avg price:      {{printf "%.2f" .AveragePurchasePrice}}
  Cost basis:     {{printf "%.2f" .CostBasis}}
  Current value:  {{printf "%.2f" .CurrentValue}}
  Gain/loss:      {{printf "%.2f" .GainLoss}} ({{printf "%.2f" .GainLossPercent}}%)
{{end}}
Total: {{printf "%.2f" .Summary.CurrentValue}} ({{printf "%+.2f" .Summary.GainLoss}}, {{printf "%.2f" .Summary.GainLossPercent}}%)
`
	t, err := template.New("portfolio").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(r.writer, struct {
		UserID     string
		Valuations []domain.InvestmentValuation
		Summary    domain.PortfolioSummary
	}{userID, valuations, summary})
}

func (r *Reporter) HandleProjects(projects []domain.Project) error {
	printRow(r.writer, []string{"ID", "Name", "Energy", "Status", "Price", "Available"})
	for _, p := range projects {
		printRow(r.writer, []string{
			p.ID, p.Name, string(p.EnergyType), string(p.Status),
			fmt.Sprintf("%.2f", p.SharePrice), fmt.Sprint(p.AvailableShares),
		})
	}
	return nil
}

func collectEnergyTypes(rows []domain.ReconciledRow) []domain.EnergyType {
	seen := make(map[domain.EnergyType]struct{})
	for _, row := range rows {
		for et := range row.Production {
			seen[et] = struct{}{}
		}
	}
	types := maps.Keys(seen)
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func printRow(w io.Writer, cells []string) {
	for i, c := range cells {
		if i == 0 {
			fmt.Fprintf(w, "%-18s", c)
			continue
		}
		fmt.Fprintf(w, " | %12s", c)
	}
	fmt.Fprintln(w)
}
