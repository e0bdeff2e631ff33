// Package columns holds column types shared by the escrow tables.
package columns

import (
	"database/sql/driver"
	"fmt"
	"strconv"

	"escrow/internal/core/domain/model/kernel"
)

// Amount stores a kernel.Amount in a numeric(20,0) column. The value travels
// as decimal text because bigint cannot hold the upper half of uint64.
type Amount uint64

func FromAmount(a kernel.Amount) Amount {
	return Amount(a)
}

func (a Amount) Amount() kernel.Amount {
	return kernel.Amount(a)
}

// Value implements driver.Valuer.
func (a Amount) Value() (driver.Value, error) {
	return strconv.FormatUint(uint64(a), 10), nil
}

// Scan implements sql.Scanner.
func (a *Amount) Scan(src any) error {
	var text string
	switch v := src.(type) {
	case string:
		text = v
	case []byte:
		text = string(v)
	case int64:
		if v < 0 {
			return fmt.Errorf("amount column holds negative value %d", v)
		}
		*a = Amount(v)
		return nil
	case nil:
		return fmt.Errorf("amount column is NULL")
	default:
		return fmt.Errorf("cannot scan %T into amount column", src)
	}

	parsed, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return fmt.Errorf("amount column holds %q: %w", text, err)
	}
	*a = Amount(parsed)
	return nil
}
