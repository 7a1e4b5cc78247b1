package posting

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"
)

// Excluded is the content of an exclude file: postings that must not show up again.
type Excluded struct {
	Items []*ExcludedPosting
}

type ExcludedPosting struct {
	ID         string
	URL        string
	Company    string
	Reason     string
	ExcludedAt time.Time
}

func (v *Postings) ToExcluded(reason string) *Excluded {
	excluded := &Excluded{}
	for _, p := range v.Items {
		if p == nil {
			continue
		}
		excluded.Items = append(excluded.Items, &ExcludedPosting{
			ID:         p.ID,
			URL:        p.URL,
			Company:    p.Company,
			Reason:     reason,
			ExcludedAt: now().UTC(),
		})
	}
	return excluded
}

// GetExcludedFromFile reads an exclude file. A missing or empty file is an empty list.
func GetExcludedFromFile(path string) (*Excluded, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Excluded{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &Excluded{}, nil
	}

	var excluded Excluded
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (v *Excluded) Append(s *Excluded) {
	v.Items = append(v.Items, s.Items...)
}

func (v *Excluded) IDs() []string {
	ids := make([]string, 0, len(v.Items))
	for _, p := range v.Items {
		ids = append(ids, p.ID)
	}
	return ids
}

func (v *Excluded) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
