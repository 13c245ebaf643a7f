package promotion

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Promotion is one time-boxed spirit promotion from the catalog.
// Field names follow the catalog JSON, which is shared with the website.
type Promotion struct {
	ID          string  `json:"id"`
	StartDate   string  `json:"startDate"` // YYYY-MM-DD, inclusive, London time
	EndDate     string  `json:"endDate"`   // YYYY-MM-DD, inclusive, London time
	ImageFolder string  `json:"imageFolder"`
	Active      bool    `json:"active"`
	Spirit      Spirit  `json:"spirit"`
	Details     Details `json:"promotion"`
}

// Spirit describes the discounted product. Opaque to the resolver.
type Spirit struct {
	Name               string   `json:"name"`
	Category           string   `json:"category"`
	OriginalPrice      string   `json:"originalPrice"` // e.g. "£4.00"
	SpecialPrice       string   `json:"specialPrice"`  // e.g. "£3.00"
	Discount           string   `json:"discount,omitempty"`
	Description        string   `json:"description,omitempty"`
	LongDescription    string   `json:"longDescription,omitempty"`
	TastingNotes       []string `json:"tastingNotes,omitempty"`
	ServingSuggestions []string `json:"servingSuggestions,omitempty"`
	Botanicals         []string `json:"botanicals,omitempty"`
	ABV                string   `json:"abv,omitempty"`
	Origin             string   `json:"origin,omitempty"`
	Distillery         string   `json:"distillery,omitempty"`
}

// Details carries the marketing copy for a promotion.
type Details struct {
	Headline        string `json:"headline"`
	Subheadline     string `json:"subheadline,omitempty"`
	OfferText       string `json:"offerText"`
	CTAText         string `json:"ctaText,omitempty"`
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	HeroAlt         string `json:"heroAlt,omitempty"`
}

var (
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	priceRe = regexp.MustCompile(`^£\s*(\d+(?:\.\d{1,2})?)$`)
)

// Validate checks the record shape the catalog loader requires. It does not
// consult the clock: an expired promotion is still a valid record.
func (p *Promotion) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("id is required")
	}
	if !dateRe.MatchString(p.StartDate) {
		return fmt.Errorf("invalid startDate %q, expected YYYY-MM-DD", p.StartDate)
	}
	if !dateRe.MatchString(p.EndDate) {
		return fmt.Errorf("invalid endDate %q, expected YYYY-MM-DD", p.EndDate)
	}
	if p.StartDate > p.EndDate {
		return fmt.Errorf("startDate %s is after endDate %s", p.StartDate, p.EndDate)
	}
	if p.ImageFolder == "" {
		return fmt.Errorf("imageFolder is required")
	}
	if p.Spirit.Name == "" {
		return fmt.Errorf("spirit.name is required")
	}
	if p.Spirit.Category == "" {
		return fmt.Errorf("spirit.category is required")
	}
	if !priceRe.MatchString(strings.TrimSpace(p.Spirit.OriginalPrice)) {
		return fmt.Errorf("malformed spirit.originalPrice %q", p.Spirit.OriginalPrice)
	}
	if !priceRe.MatchString(strings.TrimSpace(p.Spirit.SpecialPrice)) {
		return fmt.Errorf("malformed spirit.specialPrice %q", p.Spirit.SpecialPrice)
	}
	if p.Details.Headline == "" {
		return fmt.Errorf("promotion.headline is required")
	}
	if p.Details.MetaTitle == "" {
		return fmt.Errorf("promotion.metaTitle is required")
	}
	if p.Details.MetaDescription == "" {
		return fmt.Errorf("promotion.metaDescription is required")
	}
	return nil
}

// NormalisePrice pads a price label to two decimal places:
// "£3" -> "£3.00", "£3.5" -> "£3.50". Anything else passes through unchanged.
func NormalisePrice(label string) string {
	trimmed := strings.TrimSpace(label)
	m := priceRe.FindStringSubmatch(trimmed)
	if m == nil {
		return trimmed
	}

	whole, frac, _ := strings.Cut(m[1], ".")
	frac = (frac + "00")[:2]
	return "£" + whole + "." + frac
}

// Savings returns the difference between two price labels as "£X.XX".
func Savings(original, special string) (string, error) {
	orig, err := parsePrice(original)
	if err != nil {
		return "", err
	}
	spec, err := parsePrice(special)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("£%.2f", orig-spec), nil
}

func parsePrice(label string) (float64, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(strings.TrimPrefix(strings.TrimSpace(label), "£"), " ", ""))
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed price %q", label)
	}
	return v, nil
}
