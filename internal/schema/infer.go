package schema

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/vvka-141/pgcsv/pkg/pgcsv"
)

// Infer returns the destination columns for b.
func Infer(b *pgcsv.Batch, strictTyping bool) []pgcsv.Column {
	cols := make([]pgcsv.Column, len(b.Columns))
	for i, name := range b.Columns {
		cols[i] = pgcsv.Column{Name: name, Type: pgcsv.TypeText}
		if strictTyping {
			cols[i].Type = inferColumn(b, i)
		}
	}
	return cols
}

func inferColumn(b *pgcsv.Batch, col int) pgcsv.ColumnType {
	if b.Hint(col) == pgcsv.TypeTimestamp {
		return pgcsv.TypeTimestamp
	}

	candidates := map[pgcsv.ColumnType]bool{
		pgcsv.TypeBigInt:  true,
		pgcsv.TypeDouble:  true,
		pgcsv.TypeBoolean: true,
	}
	seen := false

	for _, row := range b.Rows {
		if col >= len(row) || row[col] == nil {
			continue
		}
		s, ok := row[col].(string)
		if !ok {
			if _, isTime := row[col].(time.Time); isTime {
				return pgcsv.TypeTimestamp
			}
			return pgcsv.TypeText
		}
		seen = true
		if candidates[pgcsv.TypeBigInt] && !isInteger(s) {
			candidates[pgcsv.TypeBigInt] = false
		}
		if candidates[pgcsv.TypeDouble] && !isFloat(s) {
			candidates[pgcsv.TypeDouble] = false
		}
		if candidates[pgcsv.TypeBoolean] && !isBool(s) {
			candidates[pgcsv.TypeBoolean] = false
		}
		if !candidates[pgcsv.TypeBigInt] && !candidates[pgcsv.TypeDouble] && !candidates[pgcsv.TypeBoolean] {
			return pgcsv.TypeText
		}
	}

	switch {
	case !seen:
		return pgcsv.TypeText
	case candidates[pgcsv.TypeBigInt]:
		return pgcsv.TypeBigInt
	case candidates[pgcsv.TypeDouble]:
		return pgcsv.TypeDouble
	case candidates[pgcsv.TypeBoolean]:
		return pgcsv.TypeBoolean
	default:
		return pgcsv.TypeText
	}
}

func isInteger(s string) bool {
	if hasLeadingZero(s) {
		return false
	}
	_, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return err == nil
}

func isFloat(s string) bool {
	if hasLeadingZero(s) {
		return false
	}
	_, err := parseFloat(s)
	return err == nil
}

// hasLeadingZero keeps codes such as "0042" as text.
func hasLeadingZero(s string) bool {
	digits := strings.TrimLeft(strings.TrimSpace(s), "+-")
	return len(digits) > 1 && digits[0] == '0' && digits[1] >= '0' && digits[1] <= '9'
}

func hasHexPrefix(s string) bool {
	digits := strings.TrimLeft(s, "+-")
	return len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X')
}

func isBool(s string) bool {
	_, err := parseBool(s)
	return err == nil
}

// parseFloat accepts decimal notation only; strconv would also take hex floats.
func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if hasHexPrefix(s) {
		return 0, strconv.ErrSyntax
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrSyntax
	}
	return f, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, strconv.ErrSyntax
	}
}
