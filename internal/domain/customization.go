package domain

import (
	"encoding/json"
	"sort"
)

// Customization holds the options a customer picked for a single burger.
type Customization struct {
	Patty  string   `bson:"patty,omitempty" json:"patty,omitempty"`
	Extras []string `bson:"extras,omitempty" json:"extras,omitempty"`
	Sauces []string `bson:"sauces,omitempty" json:"sauces,omitempty"`
	Notes  string   `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Key returns a canonical form of the customization, JSON-encoded so field
// values can never collide across element or field boundaries. Extras and
// sauces are sets: two customizations that differ only in listing order
// yield the same key.
func (c Customization) Key() string {
	canonical := Customization{
		Patty:  c.Patty,
		Extras: sortedCopy(c.Extras),
		Sauces: sortedCopy(c.Sauces),
		Notes:  c.Notes,
	}

	data, err := json.Marshal(canonical)
	if err != nil {
		// Unreachable: the struct holds only strings and string slices.
		panic(err)
	}
	return string(data)
}

func sortedCopy(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	copied := append([]string(nil), values...)
	sort.Strings(copied)
	return copied
}
