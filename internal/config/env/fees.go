package envconfig

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/csytan/triplecrownforheart/internal/model"
)

// feeScheduleDocument is the YAML shape of FEE_SCHEDULE_PATH:
//
//	items:
//	  registration:
//	    base: "75.00"
//	    options:
//	      jersey: {none: "0", m: "40.00"}
type feeScheduleDocument struct {
	Items map[string]feeItemDocument `yaml:"items"`
}

type feeItemDocument struct {
	Base    string                       `yaml:"base"`
	Options map[string]map[string]string `yaml:"options"`
}

// LoadFeeSchedule reads the registration price list. An empty path yields an
// empty schedule: every IPN is then treated as a donation.
func LoadFeeSchedule(path string) (model.FeeSchedule, error) {
	const op = "config.LoadFeeSchedule"

	if path == "" {
		return model.NewFeeSchedule(nil), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return model.FeeSchedule{}, fmt.Errorf("%s: %w", op, err)
	}

	var doc feeScheduleDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return model.FeeSchedule{}, fmt.Errorf("%s: %w: %w", op, model.ErrInvalidConfig, err)
	}

	items := make(map[string]model.FeeItem, len(doc.Items))
	for name, item := range doc.Items {
		base, err := decimal.NewFromString(item.Base)
		if err != nil {
			return model.FeeSchedule{}, fmt.Errorf("%s: %w: %s base %q", op, model.ErrInvalidConfig, name, item.Base)
		}

		options := make(map[string]map[string]decimal.Decimal, len(item.Options))
		for opt, prices := range item.Options {
			options[opt] = make(map[string]decimal.Decimal, len(prices))
			for sel, raw := range prices {
				price, err := decimal.NewFromString(raw)
				if err != nil {
					return model.FeeSchedule{}, fmt.Errorf("%s: %w: %s.%s.%s price %q",
						op, model.ErrInvalidConfig, name, opt, sel, raw)
				}
				options[opt][sel] = price
			}
		}

		items[name] = model.NewFeeItem(base, options)
	}

	return model.NewFeeSchedule(items), nil
}
