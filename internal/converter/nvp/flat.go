package nvp

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/csytan/triplecrownforheart/internal/model"
)

// ListMarker prefixes the repeated attributes of NVP list responses.
const ListMarker = "L_"

// Lazy attribute, greedy trailing index: "L_NETAMT12" -> ("NETAMT", "12").
var indexedKey = regexp.MustCompile(`^(.*?)(\d+)$`)

// ParseFlatRecords groups marker-prefixed keys by their trailing numeric index.
// Keys without the marker, without a trailing index or with an empty attribute
// are dropped. Records come back ordered by numeric index.
func ParseFlatRecords(values url.Values, marker string) []model.FlatGroupedRecord {
	grouped := make(map[string]map[string]string)

	for key, vals := range values {
		rest, ok := strings.CutPrefix(key, marker)
		if !ok {
			continue
		}

		m := indexedKey.FindStringSubmatch(rest)
		if m == nil || m[1] == "" {
			continue
		}
		attr, index := m[1], m[2]

		attrs, ok := grouped[index]
		if !ok {
			attrs = make(map[string]string)
			grouped[index] = attrs
		}
		if len(vals) > 0 {
			attrs[attr] = vals[0]
		}
	}

	records := make([]model.FlatGroupedRecord, 0, len(grouped))
	for index, attrs := range grouped {
		records = append(records, model.FlatGroupedRecord{Index: index, Attrs: attrs})
	}

	sort.Slice(records, func(i, j int) bool {
		return indexLess(records[i].Index, records[j].Index)
	})

	return records
}

func indexLess(a, b string) bool {
	ai, aerr := strconv.ParseUint(a, 10, 64)
	bi, berr := strconv.ParseUint(b, 10, 64)
	if aerr != nil || berr != nil || ai == bi {
		return a < b
	}
	return ai < bi
}
