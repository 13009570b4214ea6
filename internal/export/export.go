package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/octobees/maps-scraper/internal/entity"
)

// Header is the fixed CSV column order. It matches the Listing JSON field
// names and their order; the presentation layer relies on both.
var Header = []string{"name", "address", "reviews_average", "reviews_count", "phone_number", "website"}

// WriteCSV renders listings as CSV: header row first, values quoted only
// when they contain a quote, comma or newline, numeric fields unquoted.
func WriteCSV(w io.Writer, listings []entity.Listing) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, l := range listings {
		row := []string{
			l.Name,
			l.Address,
			strconv.FormatFloat(l.ReviewsAverage, 'f', -1, 64),
			strconv.Itoa(l.ReviewsCount),
			l.PhoneNumber,
			l.Website,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON renders listings as a pretty-printed JSON array. A nil slice
// still renders as [] so consumers never see null.
func WriteJSON(w io.Writer, listings []entity.Listing) error {
	if listings == nil {
		listings = []entity.Listing{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(listings)
}

// ReadCSV parses a document produced by WriteCSV back into listings.
func ReadCSV(r io.Reader) ([]entity.Listing, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv: missing header row")
	}

	listings := make([]entity.Listing, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != len(Header) {
			return nil, fmt.Errorf("csv: row %d: expected %d columns, got %d", i+2, len(Header), len(rec))
		}
		avg, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("csv: row %d: reviews_average: %w", i+2, err)
		}
		count, err := strconv.Atoi(rec[3])
		if err != nil {
			return nil, fmt.Errorf("csv: row %d: reviews_count: %w", i+2, err)
		}
		listings = append(listings, entity.Listing{
			Name:           rec[0],
			Address:        rec[1],
			ReviewsAverage: avg,
			ReviewsCount:   count,
			PhoneNumber:    rec[4],
			Website:        rec[5],
		})
	}
	return listings, nil
}
