// Package insee downloads French rent indices published by INSEE, the
// national statistics institute. The portfolio simulation takes indexation
// as an assumption; this package helps pick a realistic one from the
// indices that French commercial leases are legally indexed on.
package insee

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/immosim"
)

// RentIndices maps the short name of each lease index to its INSEE series
// identifier (idbank). ILAT covers offices, ILC retail, IRL housing.
var RentIndices = map[string]string{
	"ILAT": "001617112",
	"ILC":  "001532540",
	"IRL":  "001515333",
}

// IndexNames returns the supported index names, sorted.
func IndexNames() []string {
	names := make([]string, 0, len(RentIndices))
	for name := range RentIndices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// A Quarter identifies a calendar quarter, the publication period of the
// lease indices.
type Quarter struct {
	Year int
	Q    int
}

func (q Quarter) String() string { return fmt.Sprintf("%d-T%d", q.Year, q.Q) }

// Before reports whether q is strictly earlier than o.
func (q Quarter) Before(o Quarter) bool {
	return q.Year < o.Year || (q.Year == o.Year && q.Q < o.Q)
}

// parseQuarter parses the INSEE period format "2025-T2".
func parseQuarter(s string) (Quarter, error) {
	parts := strings.Split(s, "-T")
	if len(parts) != 2 {
		return Quarter{}, fmt.Errorf("invalid quarterly period format: %q", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Quarter{}, fmt.Errorf("invalid year in period %q: %w", s, err)
	}
	q, err := strconv.Atoi(parts[1])
	if err != nil || q < 1 || q > 4 {
		return Quarter{}, fmt.Errorf("invalid quarter in period %q", s)
	}
	return Quarter{Year: year, Q: q}, nil
}

// Series holds a quarterly INSEE index series.
type Series struct {
	Libelle    string
	IDBank     string
	LastUpdate time.Time
	Values     map[Quarter]float64
}

// Quarters returns the quarters that carry a value, in chronological order.
func (s *Series) Quarters() []Quarter {
	quarters := make([]Quarter, 0, len(s.Values))
	for q := range s.Values {
		quarters = append(quarters, q)
	}
	sort.Slice(quarters, func(i, j int) bool { return quarters[i].Before(quarters[j]) })
	return quarters
}

// Latest returns the most recent quarter and its value.
func (s *Series) Latest() (Quarter, float64, error) {
	quarters := s.Quarters()
	if len(quarters) == 0 {
		return Quarter{}, 0, fmt.Errorf("series %s has no values", s.IDBank)
	}
	last := quarters[len(quarters)-1]
	return last, s.Values[last], nil
}

// AnnualGrowth returns the compound annual growth of the index over the
// given number of years ending at the latest published quarter, as a
// percentage. It needs at least years*4 quarters of history.
func (s *Series) AnnualGrowth(years int) (immosim.Percent, error) {
	if years <= 0 {
		return 0, fmt.Errorf("years must be positive, got %d", years)
	}
	quarters := s.Quarters()
	span := years * 4
	if len(quarters) < span+1 {
		return 0, fmt.Errorf("series %s has %d quarters, need %d for a %d-year growth", s.IDBank, len(quarters), span+1, years)
	}
	last := s.Values[quarters[len(quarters)-1]]
	first := s.Values[quarters[len(quarters)-1-span]]
	if first <= 0 {
		return 0, fmt.Errorf("series %s has a non-positive base value %g", s.IDBank, first)
	}
	growth := math.Pow(last/first, 1/float64(years)) - 1
	return immosim.Percent(growth * 100), nil
}

// Fetch downloads the named rent index over the last years of history,
// plus one extra year so AnnualGrowth has its base quarter.
func Fetch(name string, years int) (*Series, error) {
	idBank, ok := RentIndices[name]
	if !ok {
		return nil, fmt.Errorf("unknown index %q, supported: %s", name, strings.Join(IndexNames(), ", "))
	}
	now := time.Now()
	return getSeries(idBank, now.AddDate(-years-1, 0, 0), now)
}

// getSeries constructs the URL, downloads, and parses an INSEE time series.
func getSeries(idBank string, from, to time.Time) (*Series, error) {
	startQuarter := (int(from.Month())-1)/3 + 1
	endQuarter := (int(to.Month())-1)/3 + 1

	url := fmt.Sprintf("https://bdm.insee.fr/series/%s/csv?lang=fr&ordre=antechronologique&transposition=donneescolonne&periodeDebut=%d&anneeDebut=%d&periodeFin=%d&anneeFin=%d&revision=sansrevisions",
		idBank,
		startQuarter,
		from.Year(),
		endQuarter,
		to.Year(),
	)
	log.Println("Downloading from INSEE:", url)

	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download from INSEE for ID %s: %w", idBank, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download from INSEE for ID %s: received status %s", idBank, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	zipReader, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to open zip archive from INSEE response: %w", err)
	}

	var foundFiles []string
	for _, f := range zipReader.File {
		foundFiles = append(foundFiles, f.Name)
		if f.Name == "valeurs_trimestrielles.csv" {
			csvFile, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("failed to open %q from zip archive: %w", f.Name, err)
			}
			defer csvFile.Close()
			return parseSeries(csvFile)
		}
	}

	return nil, fmt.Errorf("no quarterly values file in downloaded zip for ID %s (found: %s)", idBank, strings.Join(foundFiles, ", "))
}

// parseSeries reads the INSEE CSV format from an io.Reader.
func parseSeries(r io.Reader) (*Series, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	if len(records) < 4 {
		return nil, fmt.Errorf("not enough records in csv to parse series")
	}
	for i := 0; i < 3; i++ {
		if len(records[i]) < 2 {
			return nil, fmt.Errorf("malformed header row %d in csv: %d fields, need 2", i, len(records[i]))
		}
	}

	series := &Series{
		Libelle: records[0][1],
		IDBank:  records[1][1],
		Values:  make(map[Quarter]float64),
	}

	series.LastUpdate, err = time.Parse("02/01/2006 15:04", records[2][1])
	if err != nil {
		return nil, fmt.Errorf("failed to parse last update date %q: %w", records[2][1], err)
	}

	// Row 3 is the "Période" header; values follow, most recent first,
	// with empty cells for quarters not yet published.
	for i := 4; i < len(records); i++ {
		if len(records[i]) < 2 || records[i][1] == "" {
			continue
		}
		quarter, err := parseQuarter(records[i][0])
		if err != nil {
			return nil, err
		}
		val, err := strconv.ParseFloat(records[i][1], 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse value %q for period %q: %w", records[i][1], records[i][0], err)
		}
		series.Values[quarter] = val
	}
	return series, nil
}
