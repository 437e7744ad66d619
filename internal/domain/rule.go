package domain

import "github.com/shopspring/decimal"

// Frequency says how often a rule fires.
type Frequency string

const (
	FrequencyMonthly Frequency = "monthly"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyYearly  Frequency = "yearly"
)

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyMonthly, FrequencyWeekly, FrequencyYearly:
		return true
	}
	return false
}

// Rule Model (recurring rule). Day is a day of month for monthly and
// yearly rules and a weekday (0=Monday..6=Sunday) for weekly rules.
type Rule struct {
	ID          uint            `gorm:"primaryKey" json:"id"`                      // Primary key
	UserID      uint            `gorm:"index;not null" json:"user_id"`             // Owning user
	Description string          `gorm:"size:255;not null" json:"description"`      // Copied to generated transactions
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"` // Default amount
	Type        TransactionType `gorm:"size:16;not null" json:"type"`              // income or expense
	Frequency   Frequency       `gorm:"size:16;not null" json:"frequency"`         // monthly, weekly or yearly
	Day         int             `gorm:"not null" json:"day"`                       // Day of month or weekday
	Month       *int            `json:"month"`                                     // 1-12, yearly rules only
	CategoryID  *uint           `gorm:"index" json:"category_id"`                  // Default category
	IsActive    bool            `gorm:"not null" json:"is_active"`                 // Inactive rules generate nothing

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
}

// Schedule returns the calendar variant for the rule.
func (r Rule) Schedule() (Schedule, error) {
	if err := ValidateRule(&r); err != nil {
		return nil, err
	}
	switch r.Frequency {
	case FrequencyWeekly:
		return WeeklySchedule{Weekday: WeekdayFromIndex(r.Day)}, nil
	case FrequencyYearly:
		return YearlySchedule{Month: monthOf(*r.Month), Day: r.Day}, nil
	default:
		return MonthlySchedule{Day: r.Day}, nil
	}
}

// Plan returns the planned transactions the rule implies for the month.
// Nothing is persisted.
func (r Rule) Plan(year int, month int) ([]Transaction, error) {
	if err := ValidPeriod(month); err != nil {
		return nil, err
	}
	s, err := r.Schedule()
	if err != nil {
		return nil, err
	}
	dates := s.Dates(year, monthOf(month))
	out := make([]Transaction, 0, len(dates))
	for _, d := range dates {
		ruleID := r.ID
		out = append(out, Transaction{
			UserID:      r.UserID,
			Date:        d,
			Amount:      r.Amount,
			Type:        r.Type,
			Description: r.Description,
			State:       StatePlanned,
			CategoryID:  r.CategoryID,
			RuleID:      &ruleID,
		})
	}
	return out, nil
}
