// Package importer loads reference data from CSV files. Each importer reads a
// headered CSV, matches rows on their natural key and only inserts what is
// missing, so feeds can be replayed.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/filipinasabroad/abroad-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Importer struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Importer {
	return &Importer{db: db}
}

// Result counts what an import run did with the rows it read.
type Result struct {
	Created int
	Updated int
	Skipped int
}

// Schools imports CSV columns: name, country_code, city, website,
// description. The natural key is name+country+city; existing rows are left
// untouched.
func (i *Importer) Schools(r io.Reader) (*Result, error) {
	rows, err := readCSV(r, []string{"name", "country_code", "city"})
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for n, row := range rows {
		name := row["name"]
		country := strings.ToUpper(row["country_code"])
		city := row["city"]
		if name == "" || len(country) != 2 || city == "" {
			return nil, fmt.Errorf("row %d: name, country_code and city are required", n+2)
		}

		var count int64
		err := i.db.Model(&models.School{}).
			Where("name = ? AND country_code = ? AND city = ?", name, country, city).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			res.Skipped++
			continue
		}

		school := models.School{
			Name:        name,
			CountryCode: country,
			City:        city,
			Website:     row["website"],
			Description: row["description"],
		}
		if err := i.db.Create(&school).Error; err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		res.Created++
	}
	return res, nil
}

// Programs imports CSV columns: school_name, school_city, title,
// degree_level, duration_months, tuition_annual, currency,
// application_deadline, language, city, country_code, description. The
// school must already exist; the natural key is school+title+degree_level.
func (i *Importer) Programs(r io.Reader) (*Result, error) {
	rows, err := readCSV(r, []string{"school_name", "school_city", "title", "degree_level", "city", "country_code"})
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for n, row := range rows {
		var school models.School
		err := i.db.
			Where("name = ? AND city = ?", row["school_name"], row["school_city"]).
			First(&school).Error
		if err != nil {
			return nil, fmt.Errorf("row %d: school %q in %q not found (import schools first)", n+2, row["school_name"], row["school_city"])
		}

		degreeLevel := strings.ToUpper(row["degree_level"])
		var count int64
		err = i.db.Model(&models.Program{}).
			Where("school_id = ? AND title = ? AND degree_level = ?", school.ID, row["title"], degreeLevel).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			res.Skipped++
			continue
		}

		program := models.Program{
			SchoolID:    school.ID,
			Title:       row["title"],
			DegreeLevel: degreeLevel,
			Currency:    currencyOrDefault(row["currency"]),
			Language:    row["language"],
			City:        row["city"],
			CountryCode: strings.ToUpper(row["country_code"]),
			Description: row["description"],
		}
		if program.Title == "" || program.DegreeLevel == "" {
			return nil, fmt.Errorf("row %d: title and degree_level are required", n+2)
		}
		if v, err := optionalInt(row["duration_months"]); err != nil {
			return nil, fmt.Errorf("row %d: duration_months: %w", n+2, err)
		} else {
			program.DurationMonths = v
		}
		if v, err := optionalInt(row["tuition_annual"]); err != nil {
			return nil, fmt.Errorf("row %d: tuition_annual: %w", n+2, err)
		} else {
			program.TuitionAnnual = v
		}
		if v, err := optionalDate(row["application_deadline"]); err != nil {
			return nil, fmt.Errorf("row %d: application_deadline: %w", n+2, err)
		} else {
			program.ApplicationDeadline = v
		}

		if err := i.db.Create(&program).Error; err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		res.Created++
	}
	return res, nil
}

// Accommodations imports CSV columns: provider_name, provider_url, type,
// monthly_rent, currency, city, country_code, description. The natural key
// is provider_url+city.
func (i *Importer) Accommodations(r io.Reader) (*Result, error) {
	rows, err := readCSV(r, []string{"provider_name", "provider_url", "type", "monthly_rent", "city", "country_code"})
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for n, row := range rows {
		rent, err := strconv.Atoi(row["monthly_rent"])
		if err != nil {
			return nil, fmt.Errorf("row %d: monthly_rent: %w", n+2, err)
		}

		var count int64
		err = i.db.Model(&models.Accommodation{}).
			Where("provider_url = ? AND city = ?", row["provider_url"], row["city"]).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			res.Skipped++
			continue
		}

		acc := models.Accommodation{
			ProviderName: row["provider_name"],
			ProviderURL:  row["provider_url"],
			Type:         strings.ToUpper(row["type"]),
			MonthlyRent:  rent,
			Currency:     currencyOrDefault(row["currency"]),
			City:         row["city"],
			CountryCode:  strings.ToUpper(row["country_code"]),
			Description:  row["description"],
		}
		if err := i.db.Create(&acc).Error; err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		res.Created++
	}
	return res, nil
}

// VisaRequirements imports CSV columns: nationality_code,
// destination_country_code, summary, required_documents, official_url.
// Rows upsert on the (nationality, destination) pair so refreshed guidance
// replaces the old text.
func (i *Importer) VisaRequirements(r io.Reader) (*Result, error) {
	rows, err := readCSV(r, []string{"nationality_code", "destination_country_code", "summary"})
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for n, row := range rows {
		nationality := strings.ToUpper(row["nationality_code"])
		destination := strings.ToUpper(row["destination_country_code"])
		if len(nationality) != 2 || len(destination) != 2 || row["summary"] == "" {
			return nil, fmt.Errorf("row %d: nationality_code, destination_country_code and summary are required", n+2)
		}

		var existing int64
		err := i.db.Model(&models.VisaRequirement{}).
			Where("nationality_code = ? AND destination_country_code = ?", nationality, destination).
			Count(&existing).Error
		if err != nil {
			return nil, err
		}

		req := models.VisaRequirement{
			NationalityCode:        nationality,
			DestinationCountryCode: destination,
			Summary:                row["summary"],
			RequiredDocuments:      row["required_documents"],
			OfficialURL:            row["official_url"],
		}
		err = i.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "nationality_code"}, {Name: "destination_country_code"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"summary":            req.Summary,
				"required_documents": req.RequiredDocuments,
				"official_url":       req.OfficialURL,
				"updated_at":         time.Now(),
			}),
		}).Create(&req).Error
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}

		if existing > 0 {
			res.Updated++
		} else {
			res.Created++
		}
	}
	return res, nil
}

// readCSV parses a headered CSV into column-name keyed rows and checks the
// required columns are present.
func readCSV(r io.Reader, required []string) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[h] = i
	}
	for _, col := range required {
		if _, ok := cols[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]string, len(header))
		for name, idx := range cols {
			if idx < len(record) {
				row[name] = strings.TrimSpace(record[idx])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func currencyOrDefault(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 3 {
		return "EUR"
	}
	return s
}

func optionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
