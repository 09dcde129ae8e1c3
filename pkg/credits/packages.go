package credits

import (
	_ "embed"
	"errors"
	"fmt"

	"go.yaml.in/yaml/v4"
)

var (
	ErrPaymentsUnavailable = errors.New("Payment integration coming soon")
	ErrUnknownPackage      = errors.New("unknown credit package")
)

// Package is a purchasable credit bundle shown on the employer credits page.
type Package struct {
	ID         string   `yaml:"id" json:"id"`
	Name       string   `yaml:"name" json:"name"`
	Credits    int64    `yaml:"credits" json:"credits"`
	PriceINR   int64    `yaml:"price_inr" json:"price_inr"`
	Rate       float64  `yaml:"per_credit" json:"per_credit"`
	Popular    bool     `yaml:"popular" json:"popular"`
	SavingsPct int      `yaml:"savings_pct" json:"savings_pct,omitempty"`
	Reveals    string   `yaml:"reveals" json:"reveals"`
	Features   []string `yaml:"features" json:"features"`
}

// PerCredit is the advertised price of one credit in rupees. Without a
// catalog rate it is computed from the price.
func (p Package) PerCredit() float64 {
	if p.Rate > 0 {
		return p.Rate
	}
	return float64(p.PriceINR) / float64(p.Credits)
}

type catalog struct {
	Packages []Package `yaml:"packages"`
}

//go:embed packages.yaml
var packagesYAML []byte

// LoadPackages parses a YAML catalog.
func LoadPackages(data []byte) ([]Package, error) {
	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse packages: %w", err)
	}
	for _, p := range c.Packages {
		if p.ID == "" || p.Credits <= 0 {
			return nil, fmt.Errorf("parse packages: invalid package %q", p.Name)
		}
	}
	return c.Packages, nil
}

// builtin is parsed at startup; a broken packages.yaml stops the binary, not a request.
var builtin = mustLoadPackages(packagesYAML)

func mustLoadPackages(data []byte) []Package {
	pkgs, err := LoadPackages(data)
	if err != nil {
		panic(err)
	}
	return pkgs
}

// Packages returns a copy of the built-in catalog.
func Packages() []Package {
	return append([]Package(nil), builtin...)
}

// FindPackage looks a package up by id.
func FindPackage(id string) (Package, bool) {
	for _, p := range Packages() {
		if p.ID == id {
			return p, true
		}
	}
	return Package{}, false
}

// Purchase is not wired to a payment provider yet.
func Purchase(id string) error {
	if _, ok := FindPackage(id); !ok {
		return ErrUnknownPackage
	}
	return ErrPaymentsUnavailable
}
