package definition

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/mendelian/mendel/pkg/domain"
)

// tupleParams configures the "tuple" rule: the compound result is the drawn
// labels joined in draw order.
type tupleParams struct {
	Separator string `mapstructure:"separator"`
}

// countParams configures the "count-at-least" rule: the trial classifies as
// Result when Label occurs at least Min times in the draw tuple, and as
// Otherwise when it does not.
type countParams struct {
	Label     string `mapstructure:"label"`
	Min       int    `mapstructure:"min"`
	Result    string `mapstructure:"result"`
	Otherwise string `mapstructure:"otherwise"`
}

// anyOfParams configures the "any-of" rule: the trial classifies as Result
// when any drawn label is in Labels.
type anyOfParams struct {
	Labels    []string `mapstructure:"labels"`
	Result    string   `mapstructure:"result"`
	Otherwise string   `mapstructure:"otherwise"`
}

func decodeParams(kind string, params map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return fmt.Errorf("%w: rule %q: %v", domain.ErrConfiguration, kind, err)
	}
	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("%w: rule %q params: %v", domain.ErrConfiguration, kind, err)
	}
	return nil
}

// buildRule turns a rule definition into an evaluation function.
func buildRule(def RuleDef) (domain.Rule, error) {
	switch def.Kind {
	case "tuple", "":
		var p tupleParams
		if err := decodeParams("tuple", def.Params, &p); err != nil {
			return nil, err
		}
		if p.Separator == "" {
			p.Separator = "+"
		}
		return func(drawn []domain.Outcome) (string, error) {
			labels := make([]string, len(drawn))
			for i, o := range drawn {
				labels[i] = o.Label
			}
			return strings.Join(labels, p.Separator), nil
		}, nil

	case "count-at-least":
		var p countParams
		if err := decodeParams(def.Kind, def.Params, &p); err != nil {
			return nil, err
		}
		if p.Label == "" || p.Result == "" {
			return nil, fmt.Errorf("%w: rule %q requires label and result", domain.ErrConfiguration, def.Kind)
		}
		if p.Min <= 0 {
			return nil, fmt.Errorf("%w: rule %q requires min > 0", domain.ErrConfiguration, def.Kind)
		}
		if p.Otherwise == "" {
			p.Otherwise = "other"
		}
		return func(drawn []domain.Outcome) (string, error) {
			n := 0
			for _, o := range drawn {
				if o.Label == p.Label {
					n++
				}
			}
			if n >= p.Min {
				return p.Result, nil
			}
			return p.Otherwise, nil
		}, nil

	case "any-of":
		var p anyOfParams
		if err := decodeParams(def.Kind, def.Params, &p); err != nil {
			return nil, err
		}
		if len(p.Labels) == 0 || p.Result == "" {
			return nil, fmt.Errorf("%w: rule %q requires labels and result", domain.ErrConfiguration, def.Kind)
		}
		if p.Otherwise == "" {
			p.Otherwise = "other"
		}
		wanted := make(map[string]struct{}, len(p.Labels))
		for _, l := range p.Labels {
			wanted[l] = struct{}{}
		}
		return func(drawn []domain.Outcome) (string, error) {
			for _, o := range drawn {
				if _, ok := wanted[o.Label]; ok {
					return p.Result, nil
				}
			}
			return p.Otherwise, nil
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown rule kind %q", domain.ErrConfiguration, def.Kind)
	}
}
