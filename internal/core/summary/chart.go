package summary

import (
	"slices"
	"strconv"
	"strings"

	"github.com/sdezurik/MolProbity/internal/core/residue"
	"github.com/sdezurik/MolProbity/internal/core/validation"
)

// ChartRow is one residue flagged by at least one criterion.
type ChartRow struct {
	Key   residue.Key
	Flags map[validation.Criterion]validation.Severity
}

// Count returns how many criteria flag the residue.
func (r ChartRow) Count() int { return len(r.Flags) }

// Chart is the multi-criterion outlier table of a model.
type Chart struct {
	Criteria []validation.Criterion // columns, in validation.Criteria order
	Rows     []ChartRow             // residue.Compare order
}

// BuildChart merges per-criterion outlier maps. Only criteria present in
// outliers become columns; only flagged residues become rows.
func BuildChart(outliers map[validation.Criterion]validation.OutlierMap) Chart {
	var c Chart
	for _, crit := range validation.Criteria {
		if _, ok := outliers[crit]; ok {
			c.Criteria = append(c.Criteria, crit)
		}
	}

	rows := make(map[residue.Key]ChartRow)
	for _, crit := range c.Criteria {
		for k, sev := range outliers[crit].All() {
			row, ok := rows[k]
			if !ok {
				row = ChartRow{Key: k, Flags: make(map[validation.Criterion]validation.Severity)}
				rows[k] = row
			}
			row.Flags[crit] = sev
		}
	}

	keys := make([]residue.Key, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, residue.Compare)
	for _, k := range keys {
		c.Rows = append(c.Rows, rows[k])
	}
	return c
}

// Has reports whether the chart flags key under crit.
func (c Chart) Has(key residue.Key, crit validation.Criterion) bool {
	i, found := slices.BinarySearchFunc(c.Rows, key, func(r ChartRow, k residue.Key) int {
		return residue.Compare(r.Key, k)
	})
	if !found {
		return false
	}
	_, ok := c.Rows[i].Flags[crit]
	return ok
}

// CSV renders the chart: "#residue", one column per criterion, then the
// number of criteria flagging the residue.
func (c Chart) CSV() []byte {
	var b strings.Builder
	header := []string{"#residue"}
	for _, crit := range c.Criteria {
		header = append(header, string(crit))
	}
	header = append(header, "count")
	b.WriteString(strings.Join(header, ","))
	b.WriteByte('\n')

	for _, row := range c.Rows {
		fields := []string{string(row.Key)}
		for _, crit := range c.Criteria {
			if sev, ok := row.Flags[crit]; ok {
				fields = append(fields, sev.String())
			} else {
				fields = append(fields, "")
			}
		}
		fields = append(fields, strconv.Itoa(row.Count()))
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
