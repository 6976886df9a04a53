package navigation

import (
	_ "embed"
	"fmt"

	"github.com/crowdfund-dashboard/internal/domain"
	"github.com/pelletier/go-toml/v2"
)

//go:embed menus.toml
var defaultMenus []byte

type Service interface {
	Menu(role string) ([]domain.MenuItem, error)
}

type menus struct {
	Admin    []domain.MenuItem `toml:"admin"`
	Business []domain.MenuItem `toml:"business"`
	Investor []domain.MenuItem `toml:"investor"`
}

type service struct {
	byRole map[string][]domain.MenuItem
}

// NewService parses the built-in menu definitions.
func NewService() (Service, error) {
	return NewServiceFromTOML(defaultMenus)
}

// NewServiceFromTOML parses menu definitions keyed by role name.
func NewServiceFromTOML(doc []byte) (Service, error) {
	var m menus
	if err := toml.Unmarshal(doc, &m); err != nil {
		return nil, fmt.Errorf("parse menus: %w", err)
	}
	return &service{byRole: map[string][]domain.MenuItem{
		domain.RoleAdmin:    m.Admin,
		domain.RoleBusiness: m.Business,
		domain.RoleInvestor: m.Investor,
	}}, nil
}

func (s *service) Menu(role string) ([]domain.MenuItem, error) {
	items, ok := s.byRole[role]
	if !ok {
		return nil, fmt.Errorf("no menu for role %q: %w", role, domain.ErrForbidden)
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	return items, nil
}
