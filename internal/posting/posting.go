package posting

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
)

const (
	IDField      = "ID"
	CompanyField = "Company"
	StatusField  = "Status"

	StatusNotApplied = "Not Applied"
	StatusApplied    = "Applied"
	StatusInterview  = "Interview"
	StatusRejected   = "Rejected"
	StatusOffer      = "Offer"

	dateLayout = "2006-01-02"
)

var now = time.Now

// Posting is a job posting as delivered by a job board adapter.
type Posting struct {
	ID            string `json:"id" mapstructure:"id"`
	Title         string `json:"title" mapstructure:"title"`
	Company       string `json:"company" mapstructure:"company"`
	Location      string `json:"location" mapstructure:"location"`
	Description   string `json:"description" mapstructure:"description"`
	URL           string `json:"url" mapstructure:"url"`
	Source        string `json:"source" mapstructure:"source"`
	DateFound     string `json:"date_found" mapstructure:"date_found"`
	Status        string `json:"status" mapstructure:"status"`
	MatchingScore int    `json:"matching_score" mapstructure:"matching_score"`
	Salary        string `json:"salary,omitempty" mapstructure:"salary"`

	FilterMatchScore   int      `json:"filter_match_score,omitempty" mapstructure:"filter_match_score"`
	FilterMatchReasons []string `json:"filter_match_reasons,omitempty" mapstructure:"filter_match_reasons"`
}

// Postings is an ordered collection of postings.
type Postings struct {
	Items []*Posting
}

// Decode builds a Posting from a loosely typed record. Numbers are accepted for
// text fields, structured salaries are flattened to text, and missing id, date
// and status get their defaults.
func Decode(raw map[string]any) (*Posting, error) {
	p := &Posting{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       flattenToString,
		WeaklyTypedInput: true,
		Result:           p,
	})
	if err != nil {
		return nil, fmt.Errorf("creating decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding posting: %w", err)
	}

	p.applyDefaults()
	return p, nil
}

func (p *Posting) applyDefaults() {
	if strings.TrimSpace(p.ID) == "" {
		p.ID = uuid.NewString()
	}
	if strings.TrimSpace(p.DateFound) == "" {
		p.DateFound = now().Format(dateLayout)
	}
	if strings.TrimSpace(p.Status) == "" {
		p.Status = StatusNotApplied
	}
}

// flattenToString turns maps such as {"min": 90000, "max": 120000} into
// "max 120000 min 90000" when the target field is a string.
func flattenToString(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String || from.Kind() != reflect.Map {
		return data, nil
	}

	values, ok := data.(map[string]any)
	if !ok {
		return data, nil
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		if values[key] == nil {
			continue
		}
		parts = append(parts, key, fmt.Sprint(values[key]))
	}
	return strings.Join(parts, " "), nil
}

// LoadFile reads a JSON array of posting records.
func LoadFile(path string) (*Postings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing postings file %q: %w", path, err)
	}

	postings := &Postings{Items: make([]*Posting, 0, len(records))}
	for i, record := range records {
		p, err := Decode(record)
		if err != nil {
			return nil, fmt.Errorf("posting #%d: %w", i, err)
		}
		postings.Items = append(postings.Items, p)
	}

	return postings, nil
}

func (p *Posting) GetStringField(name string) string {
	if p == nil {
		return ""
	}
	switch name {
	case IDField:
		return p.ID
	case CompanyField:
		return p.Company
	case StatusField:
		return p.Status
	default:
		return ""
	}
}

func (v *Postings) Len() int {
	return len(v.Items)
}

func (v *Postings) FindByID(id string) *Posting {
	for _, p := range v.Items {
		if p != nil && p.ID == id {
			return p
		}
	}
	return nil
}

// IDs returns the posting ids in order.
func (v *Postings) IDs() []string {
	ids := make([]string, 0, len(v.Items))
	for _, p := range v.Items {
		if p == nil {
			continue
		}
		ids = append(ids, p.ID)
	}
	return ids
}

// Exclude removes postings whose field equals one of targets, ignoring case, and
// returns the removed ids. The order of the remaining postings is kept.
func (v *Postings) Exclude(field string, targets []string) []string {
	if len(targets) == 0 {
		return nil
	}

	var excluded []string
	v.Items = slices.DeleteFunc(v.Items, func(p *Posting) bool {
		if p == nil {
			return false
		}
		value := p.GetStringField(field)
		for _, target := range targets {
			if strings.EqualFold(value, strings.TrimSpace(target)) {
				excluded = append(excluded, p.ID)
				return true
			}
		}
		return false
	})
	return excluded
}

func (v *Postings) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "postings_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v.Items); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ReportByCompany groups a short summary of every posting by company.
func (v *Postings) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, p := range v.Items {
		if p == nil {
			continue
		}
		company := p.Company
		if company == "" {
			company = "Unknown Company"
		}

		entry := map[string]string{
			"id":             p.ID,
			"title":          p.Title,
			"url":            p.URL,
			"location":       p.Location,
			"salary":         p.Salary,
			"status":         p.Status,
			"matching_score": fmt.Sprintf("%d", p.MatchingScore),
		}
		if len(p.FilterMatchReasons) > 0 {
			entry["filter_match_score"] = fmt.Sprintf("%d", p.FilterMatchScore)
			entry["filter_match_reasons"] = strings.Join(p.FilterMatchReasons, "; ")
		}

		report[company] = append(report[company], entry)
	}
	return report
}
