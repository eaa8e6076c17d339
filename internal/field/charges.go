package field

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/maxwell/internal/dynamo"
)

// DecodeCharges parses a list of {x, y, charge} records, in YAML or JSON,
// and installs it as the charge set. Malformed input leaves the
// configuration with no charges.
func (c *Configuration) DecodeCharges(data []byte) error {
	charges, err := ParseCharges(data)
	if err != nil {
		dynamo.Recordf(c.diag, "error deserializing charges: %v", err)
		c.charges = nil
		return err
	}
	c.charges = charges
	return nil
}

// ParseCharges decodes a charge list without installing it.
func ParseCharges(data []byte) ([]dynamo.Charge, error) {
	var raw []map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", dynamo.ErrMalformedCharges, err)
	}

	charges := make([]dynamo.Charge, 0, len(raw))
	for k, rec := range raw {
		var q dynamo.Charge
		var err error
		if q.X, err = number(rec, "x"); err == nil {
			if q.Y, err = number(rec, "y"); err == nil {
				q.Strength, err = number(rec, "charge")
			}
		}
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", dynamo.ErrMalformedCharges, k, err)
		}
		charges = append(charges, q)
	}
	return charges, nil
}

func number(rec map[string]any, key string) (float64, error) {
	v, ok := rec[key]
	if !ok {
		return 0, fmt.Errorf("missing field %q", key)
	}
	var f float64
	switch n := v.(type) {
	case nil:
		return 0, fmt.Errorf("field %q is null", key)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	case float64:
		f = n
	default:
		return 0, fmt.Errorf("field %q is %T, not a number", key, v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("field %q is not finite", key)
	}
	return f, nil
}

// EncodeCharges renders charges in the same format DecodeCharges reads.
func EncodeCharges(charges []dynamo.Charge) ([]byte, error) {
	return yaml.Marshal(charges)
}
