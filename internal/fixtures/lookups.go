package fixtures

import "github.com/pkordes/tripjournal/internal/domain"

// CategoryStyle is the display metadata for an expense category key.
type CategoryStyle struct {
	Label string
	Icon  string
	Color string
}

var categoryStyles = map[domain.CategoryKey]CategoryStyle{
	domain.CategoryFood:          {Label: "Food", Icon: "🍽️", Color: "#FF6384"},
	domain.CategoryTransport:     {Label: "Transport", Icon: "🚌", Color: "#36A2EB"},
	domain.CategoryAccommodation: {Label: "Lodging", Icon: "🏨", Color: "#FFCE56"},
	domain.CategoryActivity:      {Label: "Sightseeing", Icon: "🎭", Color: "#4BC0C0"},
	domain.CategoryShopping:      {Label: "Shopping", Icon: "🛍️", Color: "#9966FF"},
	domain.CategoryCafe:          {Label: "Cafe", Icon: "☕", Color: "#FFA726"},
	domain.CategoryBar:           {Label: "Bar", Icon: "🍺", Color: "#AB47BC"},
	domain.CategoryOther:         {Label: "Other", Icon: "📦", Color: "#C9CBCF"},
}

// Currency is the display metadata for a currency code.
type Currency struct {
	Code   string
	Symbol string
	Name   string
}

// currencies is ordered as the budget picker lists them.
var currencies = []Currency{
	{Code: "USD", Symbol: "$", Name: "US dollar"},
	{Code: "KRW", Symbol: "₩", Name: "South Korean won"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese yen"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "Pound sterling"},
	{Code: "CNY", Symbol: "¥", Name: "Chinese yuan"},
	{Code: "THB", Symbol: "฿", Name: "Thai baht"},
	{Code: "VND", Symbol: "₫", Name: "Vietnamese dong"},
}

// StyleFor returns the label, icon and color for key.
// Unknown keys get the "other" style with the raw key as label.
func StyleFor(key domain.CategoryKey) CategoryStyle {
	if s, ok := categoryStyles[key]; ok {
		return s
	}
	s := categoryStyles[domain.CategoryOther]
	s.Label = string(key)
	return s
}

// CurrencySymbol returns the symbol for code, or code itself when unknown.
func CurrencySymbol(code string) string {
	for _, c := range currencies {
		if c.Code == code {
			return c.Symbol
		}
	}
	return code
}

// Currencies returns the known currencies in picker order.
func Currencies() []Currency {
	return append([]Currency(nil), currencies...)
}

// KeyedStyle pairs a category key with its display metadata.
type KeyedStyle struct {
	Key domain.CategoryKey
	CategoryStyle
}

// CategoryStyles returns the style of every known key in display order.
func CategoryStyles() []KeyedStyle {
	out := make([]KeyedStyle, 0, len(domain.CategoryKeys))
	for _, k := range domain.CategoryKeys {
		out = append(out, KeyedStyle{Key: k, CategoryStyle: categoryStyles[k]})
	}
	return out
}
