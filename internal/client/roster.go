package client

import (
	"sort"
	"strings"

	"school-store/internal/domain/dto"
)

// SortField names the roster columns a teacher can sort by.
type SortField string

const (
	SortByUsername  SortField = "username"
	SortByFirstName SortField = "first_name"
	SortByLastName  SortField = "last_name"
	SortByEmail     SortField = "email"
	SortByBalance   SortField = "points_balance"
)

// SortUsers returns a sorted copy. String fields compare case-insensitively,
// the balance numerically; missing values rank as empty string / zero. The
// sort is stable, so equal keys keep their original relative order and the
// descending order is the exact reverse of ascending for distinct keys.
func SortUsers(users []dto.UserDTO, field SortField, ascending bool) []dto.UserDTO {
	out := make([]dto.UserDTO, len(users))
	copy(out, users)

	less := func(a, b dto.UserDTO) bool {
		if field == SortByBalance {
			return a.PointsBalance < b.PointsBalance
		}
		return strings.ToLower(stringField(a, field)) < strings.ToLower(stringField(b, field))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})

	return out
}

func stringField(u dto.UserDTO, field SortField) string {
	switch field {
	case SortByUsername:
		return u.Username
	case SortByFirstName:
		return u.FirstName
	case SortByLastName:
		return u.LastName
	case SortByEmail:
		return u.Email
	default:
		return ""
	}
}

// FilterUsers keeps users whose name, username, or email contains the query,
// case-insensitively. An empty query keeps everything.
func FilterUsers(users []dto.UserDTO, query string) []dto.UserDTO {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return users
	}

	var out []dto.UserDTO
	for _, u := range users {
		haystack := strings.ToLower(u.FirstName + " " + u.LastName + " " + u.Username + " " + u.Email)
		if strings.Contains(haystack, query) {
			out = append(out, u)
		}
	}
	return out
}

// FilterUsersByRole keeps users with the given role; empty role keeps all.
func FilterUsersByRole(users []dto.UserDTO, role string) []dto.UserDTO {
	if role == "" {
		return users
	}

	var out []dto.UserDTO
	for _, u := range users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out
}

// FilterItemsByCategory keeps catalog items in the given category; empty
// category keeps all.
func FilterItemsByCategory(items []dto.ItemDTO, category string) []dto.ItemDTO {
	if category == "" {
		return items
	}

	var out []dto.ItemDTO
	for _, item := range items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}
