package contract

import (
	"errors"
	"strconv"
	"strings"
)

// ErrMalformedIDList reports a bracketed id list that does not follow
// the <id1>,<id2>,... shape. It is a plain parse failure, distinct from
// the coded business errors of the store layer.
var ErrMalformedIDList = errors.New("malformed bracketed id list")

// FormatIDList serializes ids as a comma-joined list of bracketed
// identifiers, e.g. "<3>,<7>,<12>". An empty set serializes to "".
func FormatIDList(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('<')
		b.WriteString(strconv.FormatInt(id, 10))
		b.WriteByte('>')
	}
	return b.String()
}

// ParseIDList parses a bracketed id list produced by FormatIDList.
func ParseIDList(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if len(part) < 3 || part[0] != '<' || part[len(part)-1] != '>' {
			return nil, ErrMalformedIDList
		}
		id, err := strconv.ParseInt(part[1:len(part)-1], 10, 64)
		if err != nil {
			return nil, ErrMalformedIDList
		}
		ids = append(ids, id)
	}
	return ids, nil
}
