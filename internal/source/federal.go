package source

import (
	"context"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"

	"holiday-manager/internal/holiday"
)

// Federal produces the US federal holidays for a year without network
// access. Dates are the actual (not observed) days.
type Federal struct {
	holidays []*cal.Holiday
}

func NewFederal() *Federal {
	return &Federal{holidays: []*cal.Holiday{
		us.NewYear,
		us.MlkDay,
		us.PresidentsDay,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ColumbusDay,
		us.VeteransDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	}}
}

func (f *Federal) Name() string { return "federal" }

func (f *Federal) Fetch(_ context.Context, year int) ([]holiday.Record, error) {
	var out []holiday.Record
	for _, h := range f.holidays {
		actual, _ := h.Calc(year)
		if actual.IsZero() {
			continue
		}
		out = append(out, holiday.Record{Name: h.Name, Date: actual.Format(holiday.DateLayout)})
	}
	return out, nil
}
