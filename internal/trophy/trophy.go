package trophy

import (
	"fmt"
	"sort"

	"github.com/grovesmith/backend/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Trophy is an achievement a recipient earns from their balances.
type Trophy struct {
	ID          string `json:"id" example:"big-saver"`
	Title       string `json:"title" example:"Big Saver"`
	Description string `json:"description" example:"Saved $50 or more"`
	Category    string `json:"category" example:"save"` // A category type or "general"
	Earned      bool   `json:"earned" example:"false"`
}

// Formatter formats money amounts for one currency and locale.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewFormatter returns a Formatter for the ISO 4217 currency code and the
// BCP 47 locale.
func NewFormatter(code, locale string) (Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Formatter{}, fmt.Errorf("invalid currency %q: %w", code, err)
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return Formatter{}, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	return Formatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
	}, nil
}

// Money formats a whole amount with the currency symbol, e.g. "$50".
func (f Formatter) Money(amount int64) string {
	return f.printer.Sprintf("%v%v", currency.Symbol(f.unit), number.Decimal(amount))
}

var (
	bigSaver      = decimal.NewFromInt(50)
	championGiver = decimal.NewFromInt(25)
	goalAchiever  = decimal.NewFromInt(10)
)

// For evaluates all trophies against the balances. Earned trophies come
// first, otherwise the order is fixed.
func For(balances models.Amounts, f Formatter) []Trophy {
	trophies := []Trophy{
		{
			ID:          "first-saver",
			Title:       "First Saver",
			Description: "Saved your first dollar",
			Category:    string(models.Save),
			Earned:      balances.Save.IsPositive(),
		},
		{
			ID:          "generous-giver",
			Title:       "Generous Giver",
			Description: "Made your first donation",
			Category:    string(models.Give),
			Earned:      balances.Give.IsPositive(),
		},
		{
			ID:          "smart-investor",
			Title:       "Smart Investor",
			Description: "Made your first investment",
			Category:    string(models.Invest),
			Earned:      balances.Invest.IsPositive(),
		},
		{
			ID:          "wise-spender",
			Title:       "Wise Spender",
			Description: "Made your first purchase",
			Category:    string(models.Spend),
			Earned:      balances.Spend.IsPositive(),
		},
		{
			ID:          "big-saver",
			Title:       "Big Saver",
			Description: fmt.Sprintf("Saved %s or more", f.Money(bigSaver.IntPart())),
			Category:    string(models.Save),
			Earned:      balances.Save.GreaterThanOrEqual(bigSaver),
		},
		{
			ID:          "champion-giver",
			Title:       "Champion Giver",
			Description: fmt.Sprintf("Given %s or more", f.Money(championGiver.IntPart())),
			Category:    string(models.Give),
			Earned:      balances.Give.GreaterThanOrEqual(championGiver),
		},
		{
			ID:          "goal-achiever",
			Title:       "Goal Achiever",
			Description: "Reached all category goals",
			Category:    "general",
			Earned:      allAtLeast(balances, goalAchiever),
		},
	}

	sort.SliceStable(trophies, func(i, j int) bool {
		return trophies[i].Earned && !trophies[j].Earned
	})

	return trophies
}

func allAtLeast(balances models.Amounts, threshold decimal.Decimal) bool {
	for _, t := range models.CategoryTypes {
		if balances.Get(t).LessThan(threshold) {
			return false
		}
	}

	return true
}

// Next returns the first trophy that is not earned yet.
func Next(trophies []Trophy) (Trophy, bool) {
	for _, t := range trophies {
		if !t.Earned {
			return t, true
		}
	}

	return Trophy{}, false
}
