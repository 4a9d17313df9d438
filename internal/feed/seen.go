package feed

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"
)

// SeenOpportunities is the on-disk list of opportunities that already produced an alert.
type SeenOpportunities struct {
	Items []*SeenOpportunity
}

type SeenOpportunity struct {
	ID         string
	PlayerName string
	ProfileID  string `json:",omitempty"`
	SeenAt     time.Time
}

// ToSeen marks every opportunity in the list as seen by the given watch profile.
func (v *Opportunities) ToSeen(profileID string, now time.Time) *SeenOpportunities {
	seen := &SeenOpportunities{}
	for _, o := range v.Items {
		seen.Items = append(seen.Items, &SeenOpportunity{
			ID:         o.ID,
			PlayerName: o.PlayerName,
			ProfileID:  profileID,
			SeenAt:     now.UTC(),
		})
	}
	return seen
}

// LoadSeen reads the seen file. A missing or empty file yields an empty list.
func LoadSeen(path string) (*SeenOpportunities, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &SeenOpportunities{}, nil
		}
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &SeenOpportunities{}, nil
	}

	var seen SeenOpportunities
	if err := json.NewDecoder(file).Decode(&seen); err != nil {
		return nil, err
	}
	return &seen, nil
}

func (v *SeenOpportunities) Append(s *SeenOpportunities) {
	v.Items = append(v.Items, s.Items...)
}

func (v *SeenOpportunities) IDs() []string {
	ids := make([]string, 0, len(v.Items))
	for _, o := range v.Items {
		ids = append(ids, o.ID)
	}
	return ids
}

func (v *SeenOpportunities) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
