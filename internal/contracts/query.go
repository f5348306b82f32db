package contracts

import (
	"fmt"
	"slices"
	"strings"

	"github.com/RomaniOSDev/17PaperRoost/internal/models"
)

// SortKey selects the ordering of the home list.
type SortKey string

const (
	SortDate   SortKey = "date"
	SortStatus SortKey = "status"
	SortType   SortKey = "type"
)

func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortDate, nil
	case SortDate, SortStatus, SortType:
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Sort returns a sorted copy of list. Ties keep their relative order.
func Sort(list []models.Contract, key SortKey) []models.Contract {
	switch key {
	case SortStatus:
		return SortByStatus(list)
	case SortType:
		return SortByType(list)
	default:
		return SortByCreatedDesc(list)
	}
}

// SortByCreatedDesc puts the newest contract first.
func SortByCreatedDesc(list []models.Contract) []models.Contract {
	out := slices.Clone(list)
	slices.SortStableFunc(out, func(a, b models.Contract) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

// SortByStatus orders by status label, alphabetically.
func SortByStatus(list []models.Contract) []models.Contract {
	out := slices.Clone(list)
	slices.SortStableFunc(out, func(a, b models.Contract) int {
		return strings.Compare(a.Status.String(), b.Status.String())
	})
	return out
}

// SortByType orders by type label, alphabetically.
func SortByType(list []models.Contract) []models.Contract {
	out := slices.Clone(list)
	slices.SortStableFunc(out, func(a, b models.Contract) int {
		return strings.Compare(string(a.ContractType), string(b.ContractType))
	})
	return out
}

// Filter is a search request; zero fields match everything.
type Filter struct {
	Query  string
	Status *models.ContractStatus
	Type   models.ContractType
}

func (f Filter) Match(c models.Contract) bool {
	if f.Status != nil && c.Status != *f.Status {
		return false
	}
	if f.Type != "" && c.ContractType != f.Type {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	for _, field := range []string{c.Title, c.Participants, c.Notes} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Search returns the matching contracts in insertion order.
func (s *Store) Search(f Filter) []models.Contract {
	var out []models.Contract
	for _, c := range s.List() {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	return out
}

const recentCount = 6

type Stats struct {
	Total    int
	ByStatus map[models.ContractStatus]int
	ByType   map[models.ContractType]int
	Recent   []models.Contract
}

func (s *Store) Stats() Stats {
	list := s.List()
	st := Stats{
		Total:    len(list),
		ByStatus: make(map[models.ContractStatus]int, len(models.Statuses)),
		ByType:   make(map[models.ContractType]int),
	}
	for _, c := range list {
		st.ByStatus[c.Status]++
		st.ByType[c.ContractType]++
	}
	recent := SortByCreatedDesc(list)
	st.Recent = recent[:min(recentCount, len(recent))]
	return st
}
