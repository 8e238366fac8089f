package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

var requiredColumns = []string{ColTV, ColRadio, ColSocialMedia, ColInfluencer, ColSales}

// normalizeHeader maps header variants such as "Social Media" and "social_media" onto a
// single key
func normalizeHeader(h string) string {
	h = strings.TrimSpace(h)
	h = strings.ReplaceAll(h, " ", "_")
	return strings.ToLower(h)
}

// LoadCSV parses the marketing csv. Empty cells are kept as missing values so that
// DropMissing can exclude them before fitting.
func LoadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty csv, %w", ErrNoObservations)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[normalizeHeader(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	colIdx := make(map[string]int, len(requiredColumns))
	for _, col := range requiredColumns {
		idx, exists := index[normalizeHeader(col)]
		if !exists {
			return nil, fmt.Errorf("%s, %w", col, ErrMissingColumn)
		}
		colIdx[col] = idx
	}

	var obs []Observation
	row := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}
		row++

		field := func(col string) string {
			idx := colIdx[col]
			if idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}

		o := Observation{
			TV:         field(ColTV),
			Influencer: field(ColInfluencer),
		}
		numeric := []struct {
			col string
			dst *float64
		}{
			{ColRadio, &o.Radio},
			{ColSocialMedia, &o.SocialMedia},
			{ColSales, &o.Sales},
		}
		for _, n := range numeric {
			v, err := parseFloat(field(n.col))
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %q, %w", row, n.col, field(n.col), ErrInvalidValue)
			}
			*n.dst = v
		}
		obs = append(obs, o)
	}

	if len(obs) == 0 {
		return nil, ErrNoObservations
	}
	return &Dataset{obs: obs}, nil
}

// LoadCSVFile opens and parses a marketing csv from disk
func LoadCSVFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return LoadCSV(f)
}

// WriteCSV writes the dataset with the canonical header
func (d *Dataset) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(requiredColumns); err != nil {
		return err
	}
	for _, o := range d.obs {
		rec := []string{
			o.TV,
			formatFloat(o.Radio),
			formatFloat(o.SocialMedia),
			o.Influencer,
			formatFloat(o.Sales),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func parseFloat(s string) (float64, error) {
	switch strings.ToLower(s) {
	case "", "nan", "na", "null":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
