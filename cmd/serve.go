package cmd

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/etnz/immosim"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr  string
	redis string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the simulation as a web form" }
func (*serveCmd) Usage() string {
	return `ims serve [-addr <addr>] [-redis <addr>]

  Serves an HTML form pre-filled from the portfolio file. Submitting the
  form recomputes the simulation from the submitted assumptions without
  touching the file. /export.csv streams the result table as CSV.

  Rendered results are cached per set of assumptions, in memory by default,
  in Redis when -redis is given.
`
}

func (p *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.addr, "addr", ":8080", "Address to listen on.")
	f.StringVar(&p.redis, "redis", "", "Redis address for the result cache. In-memory by default.")
}

func (p *serveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var cache immosim.ResultCache = immosim.NewMemoryCache()
	if p.redis != "" {
		cache = immosim.NewRedisCache(p.redis)
	}

	s := newServer(cache)
	log.Printf("Serving the portfolio simulation on %s", p.addr)
	if err := http.ListenAndServe(p.addr, s.mux); err != nil {
		fmt.Fprintln(os.Stderr, "Server failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// server holds the handlers of the web form.
type server struct {
	mux   *http.ServeMux
	cache immosim.ResultCache
}

func newServer(cache immosim.ResultCache) *server {
	s := &server{mux: http.NewServeMux(), cache: cache}
	s.mux.HandleFunc("/", s.handleForm)
	s.mux.HandleFunc("/export.csv", s.handleExport)
	return s
}

// page is the data rendered by the form template.
type page struct {
	Buildings []immosim.Building
	Results   template.HTML
	Error     string
}

// handleForm renders the form pre-filled from the portfolio file on GET,
// and recomputes from the submitted assumptions on POST.
func (s *server) handleForm(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	var data page
	switch r.Method {
	case http.MethodGet:
		buildings, err := DecodeBuildings()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data.Buildings = buildings
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		buildings, err := parseBuildings(r.Form)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		data.Buildings = buildings
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if len(data.Buildings) > 0 {
		results, err := s.resultsHTML(data.Buildings)
		if err != nil {
			data.Error = err.Error()
		} else {
			data.Results = results
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := formTemplate.Execute(w, data); err != nil {
		log.Println("template error:", err)
	}
}

// handleExport streams the simulation of the portfolio file as CSV.
func (s *server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	buildings, err := DecodeBuildings()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	result, err := immosim.Simulate(immosim.DefaultConfig(), buildings)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="simulation.csv"`)
	if err := immosim.ExportCSV(w, result.Results); err != nil {
		log.Println("csv export error:", err)
	}
}

// resultsHTML renders the simulation of the given assumptions, with the
// result cache in front: the same assumptions are only ever rendered once.
func (s *server) resultsHTML(buildings []immosim.Building) (template.HTML, error) {
	cfg := immosim.DefaultConfig()

	key, err := immosim.CacheKey(cfg, buildings)
	if err != nil {
		return "", err
	}
	if cached, ok := s.cache.Get(key); ok {
		return template.HTML(cached), nil
	}

	result, err := immosim.Simulate(cfg, buildings)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := resultsTemplate.Execute(&buf, result); err != nil {
		return "", err
	}
	if err := s.cache.Set(key, buf.String()); err != nil {
		log.Println("cache error:", err)
	}
	return template.HTML(buf.String()), nil
}

// parseBuildings rebuilds the buildings from the parallel form field slices,
// one entry per building row. Rows with an empty name are ignored.
func parseBuildings(form url.Values) ([]immosim.Building, error) {
	names := form["name"]
	buildings := make([]immosim.Building, 0, len(names))

	field := func(key string, i int) string {
		values := form[key]
		if i < len(values) {
			return values[i]
		}
		return ""
	}
	pct := func(key string, i int) (immosim.Percent, error) {
		raw := field(key, i)
		if raw == "" {
			return 0, nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, fmt.Errorf("building %d: invalid %s %q", i+1, key, raw)
		}
		return immosim.Percent(v), nil
	}
	amount := func(key string, i int, currency string) (immosim.Money, error) {
		raw := field(key, i)
		if raw == "" {
			return immosim.M(0, currency), nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return immosim.Money{}, fmt.Errorf("building %d: invalid %s %q", i+1, key, raw)
		}
		return immosim.M(v, currency), nil
	}

	for i, name := range names {
		if name == "" {
			continue
		}
		currency := field("currency", i)
		b := immosim.Building{Name: name, Currency: currency}

		var err error
		if b.Rent, err = amount("rent", i, currency); err != nil {
			return nil, err
		}
		if b.Capex, err = amount("capex", i, currency); err != nil {
			return nil, err
		}
		for _, p := range []struct {
			key  string
			dest *immosim.Percent
		}{
			{"purchaseCap", &b.PurchaseCap},
			{"exitCap", &b.ExitCap},
			{"ltv", &b.LTV},
			{"interestRate", &b.InterestRate},
			{"occupancy", &b.Occupancy},
			{"occupancyDrift", &b.OccupancyDrift},
			{"indexation", &b.Indexation},
			{"costRatio", &b.CostRatio},
		} {
			if *p.dest, err = pct(p.key, i); err != nil {
				return nil, err
			}
		}

		if term := field("termYears", i); term != "" {
			if b.TermYears, err = strconv.Atoi(term); err != nil {
				return nil, fmt.Errorf("building %d: invalid termYears %q", i+1, term)
			}
		}
		buildings = append(buildings, b)
	}

	if len(buildings) == 0 {
		return nil, errors.New("no buildings submitted")
	}
	return buildings, nil
}

var formTemplate = template.Must(template.New("form").Parse(`<!DOCTYPE html>
<html>
<head><title>Portfolio Simulation</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 1em; }
th, td { border: 1px solid #ccc; padding: 0.3em 0.6em; text-align: right; }
th:first-child, td:first-child { text-align: left; }
input { width: 6em; text-align: right; }
input[name=name] { width: 10em; text-align: left; }
.error { color: #a00; }
</style>
</head>
<body>
<h1>Portfolio Simulation</h1>
<form method="POST" action="/">
<table>
<tr><th>Building</th><th>Rent</th><th>Purchase Cap %</th><th>Exit Cap %</th><th>LTV %</th><th>Rate %</th><th>Term y</th><th>Occupancy %</th><th>Drift %</th><th>Indexation %</th><th>Capex</th><th>Costs %</th></tr>
{{range .Buildings}}
<tr>
<td><input name="name" value="{{.Name}}"></td>
<td><input name="rent" value="{{.Rent.Decimal}}"></td>
<td><input name="purchaseCap" value="{{printf "%g" .PurchaseCap}}"></td>
<td><input name="exitCap" value="{{printf "%g" .ExitCap}}"></td>
<td><input name="ltv" value="{{printf "%g" .LTV}}"></td>
<td><input name="interestRate" value="{{printf "%g" .InterestRate}}"></td>
<td><input name="termYears" value="{{.TermYears}}"></td>
<td><input name="occupancy" value="{{printf "%g" .Occupancy}}"></td>
<td><input name="occupancyDrift" value="{{printf "%g" .OccupancyDrift}}"></td>
<td><input name="indexation" value="{{printf "%g" .Indexation}}"></td>
<td><input name="capex" value="{{.Capex.Decimal}}"></td>
<td><input name="costRatio" value="{{printf "%g" .CostRatio}}"></td>
</tr>
{{end}}
<tr>
<td><input name="name" placeholder="new building"></td>
<td><input name="rent" value="100000"></td>
<td><input name="purchaseCap" value="5"></td>
<td><input name="exitCap" value="6"></td>
<td><input name="ltv" value="60"></td>
<td><input name="interestRate" value="0"></td>
<td><input name="termYears" value="7"></td>
<td><input name="occupancy" value="95"></td>
<td><input name="occupancyDrift" value="0"></td>
<td><input name="indexation" value="2"></td>
<td><input name="capex" value="50000"></td>
<td><input name="costRatio" value="0"></td>
</tr>
</table>
<button type="submit">Simulate</button>
<a href="/export.csv">Export CSV</a>
</form>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{.Results}}
</body>
</html>
`))

var resultsTemplate = template.Must(template.New("results").Parse(`<h2>Results</h2>
<table>
<tr><th>Building</th><th>Total Investment</th><th>Debt</th><th>Equity</th><th>Monthly Payment</th><th>Total Interest</th><th>Occupancy</th><th>Final Revenue</th><th>NOI</th><th>Exit Value</th></tr>
{{range .Results}}
<tr><td>{{.Name}}</td><td>{{.TotalInvestment}}</td><td>{{.Debt}}</td><td>{{.Equity}}</td><td>{{.MonthlyPayment}}</td><td>{{.TotalInterest}}</td><td>{{.FinalOccupancy}}</td><td>{{.FinalRevenue}}</td><td>{{.NOI}}</td><td>{{.ExitValue}}</td></tr>
{{end}}
</table>
<h2>Portfolio Totals</h2>
<table>
<tr><th>Buildings</th><th>Total Equity</th><th>Total Debt</th><th>Total NOI</th><th>Projected Exit Value</th></tr>
<tr><td>{{.Summary.Buildings}}</td><td>{{.Summary.Equity}}</td><td>{{.Summary.Debt}}</td><td>{{.Summary.NOI}}</td><td>{{.Summary.ExitValue}}</td></tr>
</table>
{{if .Failures}}
<h2>Skipped Buildings</h2>
<ul>{{range .Failures}}<li>{{.Error}}</li>{{end}}</ul>
{{end}}
`))
