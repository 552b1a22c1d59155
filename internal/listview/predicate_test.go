package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingRules = []Rule{
	{Mode: MatchSubstring, Field: "keyword", Column: "shipper"},
	{Mode: MatchExact, Field: "status"},
	{Mode: MatchDateRange, Field: "start_date", Paired: "end_date", Column: "doc_date"},
}

var bookingColumns = map[string]bool{"id": true, "shipper": true, "status": true, "doc_date": true}

func mustComposer(t *testing.T, rules []Rule, known map[string]bool) *Composer {
	t.Helper()
	c, err := NewComposer(rules, known)
	require.NoError(t, err)
	return c
}

func TestExactMatchPreservesOrder(t *testing.T) {
	records := []Record{
		rec("id", 1, "status", "DRAFT"),
		rec("id", 2, "status", "SENT"),
		rec("id", 3, "status", "DRAFT"),
	}
	c := mustComposer(t, bookingRules, bookingColumns)
	out := Filter(records, c.Build(Criteria{"status": "DRAFT"}))
	assert.Equal(t, []float64{1, 3}, ids(out))
}

func TestDateRangeInclusive(t *testing.T) {
	records := []Record{
		rec("id", 1, "doc_date", "2026-01-05"),
		rec("id", 2, "doc_date", "2026-01-15"),
		rec("id", 3, "doc_date", "2026-01-25"),
		rec("id", 4, "doc_date", "2026-01-20"),
		rec("id", 5, "doc_date", "2026-01-10"),
	}
	c := mustComposer(t, bookingRules, bookingColumns)

	out := Filter(records[:3], c.Build(Criteria{"start_date": "2026-01-10", "end_date": "2026-01-20"}))
	assert.Equal(t, []float64{2}, ids(out))

	out = Filter(records, c.Build(Criteria{"start_date": "2026-01-10", "end_date": "2026-01-20"}))
	assert.Equal(t, []float64{2, 4, 5}, ids(out), "bounds are inclusive")
}

func TestDateRangeOpenEnded(t *testing.T) {
	records := []Record{
		rec("id", 1, "doc_date", "2026-01-05"),
		rec("id", 2, "doc_date", "2026-01-15"),
		rec("id", 3, "doc_date", "2026-01-25T08:30:00"),
	}
	c := mustComposer(t, bookingRules, bookingColumns)

	assert.Equal(t, []float64{2, 3}, ids(Filter(records, c.Build(Criteria{"start_date": "2026-01-10"}))))
	assert.Equal(t, []float64{1, 2}, ids(Filter(records, c.Build(Criteria{"end_date": "2026-01-15"}))))
	assert.Equal(t, []float64{3}, ids(Filter(records, c.Build(Criteria{"start_date": "2026-01-25", "end_date": "2026-01-25"}))))
}

func TestSubstringCaseInsensitive(t *testing.T) {
	records := []Record{
		rec("id", 1, "shipper", "Hanjin Logistics"),
		rec("id", 2, "shipper", "한진해운"),
		rec("id", 3, "shipper", nil),
	}
	c := mustComposer(t, bookingRules, bookingColumns)

	assert.Equal(t, []float64{1}, ids(Filter(records, c.Build(Criteria{"keyword": "HANJIN"}))))
	assert.Equal(t, []float64{2}, ids(Filter(records, c.Build(Criteria{"keyword": "한진"}))))
	assert.Equal(t, []float64{1, 2, 3}, ids(Filter(records, c.Build(Criteria{"keyword": ""}))))
}

func TestUnknownColumnRuleIsSkipped(t *testing.T) {
	rules := append([]Rule{{Mode: MatchExact, Field: "carrier", Column: "carrier_code"}}, bookingRules...)
	c := mustComposer(t, rules, bookingColumns)
	assert.Len(t, c.Rules(), len(bookingRules))

	records := []Record{rec("id", 1, "status", "DRAFT")}
	assert.Len(t, Filter(records, c.Build(Criteria{"carrier": "HMM"})), 1)
}

func TestUnsupportedModeRejected(t *testing.T) {
	_, err := NewComposer([]Rule{{Mode: "regex", Field: "x"}}, nil)
	assert.Error(t, err)
}

func TestFilterIdempotent(t *testing.T) {
	records := []Record{
		rec("id", 1, "shipper", "Hanjin", "status", "DRAFT", "doc_date", "2026-01-11"),
		rec("id", 2, "shipper", "HMM", "status", "SENT", "doc_date", "2026-01-12"),
		rec("id", 3, "shipper", "hanjin", "status", "DRAFT", "doc_date", "2026-02-01"),
	}
	c := mustComposer(t, bookingRules, bookingColumns)
	p := c.Build(Criteria{"keyword": "han", "start_date": "2026-01-01", "end_date": "2026-01-31"})

	once := Filter(records, p)
	assert.Equal(t, ids(once), ids(Filter(once, p)))
}

func TestAddingConstraintNeverGrowsResult(t *testing.T) {
	records := []Record{
		rec("id", 1, "shipper", "Hanjin", "status", "DRAFT", "doc_date", "2026-01-11"),
		rec("id", 2, "shipper", "HMM", "status", "SENT", "doc_date", "2026-01-12"),
		rec("id", 3, "shipper", "hanjin", "status", "SENT", "doc_date", "2026-02-01"),
		rec("id", 4, "shipper", "Pan Ocean", "status", "DRAFT", "doc_date", "2026-01-20"),
	}
	c := mustComposer(t, bookingRules, bookingColumns)

	steps := []Criteria{
		{},
		{"status": "SENT"},
		{"status": "SENT", "keyword": "h"},
		{"status": "SENT", "keyword": "h", "end_date": "2026-01-31"},
	}
	prev := len(records)
	for _, crit := range steps {
		n := len(Filter(records, c.Build(crit)))
		assert.LessOrEqual(t, n, prev, "criteria %v", crit)
		prev = n
	}
	assert.Equal(t, 1, prev)
}
