package admin

import (
	"database/sql"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuaha311/aesthetics-clinic/internal/model"
)

func TestSetValue(t *testing.T) {
	var img model.BeforeAfterImage
	rv := reflect.ValueOf(&img).Elem()

	require.NoError(t, setValue(column(rv, "title"), KindText, "Peel results"))
	assert.Equal(t, "Peel results", img.Title)

	require.NoError(t, setValue(column(rv, "patient_age"), KindNumber, "42"))
	assert.Equal(t, sql.NullInt32{Int32: 42, Valid: true}, img.PatientAge)
	require.NoError(t, setValue(column(rv, "patient_age"), KindNumber, ""))
	assert.False(t, img.PatientAge.Valid)
	assert.Equal(t, errInvalidNumber, setValue(column(rv, "sessions"), KindNumber, "-3"))
	assert.Equal(t, errInvalidNumber, setValue(column(rv, "sessions"), KindNumber, "three"))

	var tm model.Testimonial
	rv = reflect.ValueOf(&tm).Elem()
	id := uuid.New()
	require.NoError(t, setValue(column(rv, "treatment_id"), KindForeignKey, id.String()))
	assert.Equal(t, uuid.NullUUID{UUID: id, Valid: true}, tm.TreatmentID)
	require.NoError(t, setValue(column(rv, "treatment_id"), KindForeignKey, ""))
	assert.False(t, tm.TreatmentID.Valid)
	assert.Equal(t, errInvalidChoice, setValue(column(rv, "treatment_id"), KindForeignKey, "nope"))

	require.NoError(t, setValue(column(rv, "date"), KindDate, "2024-03-09"))
	assert.Equal(t, time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC), tm.Date)
	assert.Equal(t, errInvalidDate, setValue(column(rv, "date"), KindDate, "09/03/2024"))

	require.NoError(t, setValue(column(rv, "featured"), KindBool, "on"))
	assert.True(t, tm.Featured)
	require.NoError(t, setValue(column(rv, "featured"), KindBool, ""))
	assert.False(t, tm.Featured)
}

func TestFormatValue(t *testing.T) {
	tm := model.Testimonial{
		Name:     "Alice",
		Date:     time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC),
		Featured: true,
	}
	rv := reflect.ValueOf(&tm).Elem()

	assert.Equal(t, "Alice", formatValue(column(rv, "name"), KindText))
	assert.Equal(t, "2024-03-09", formatValue(column(rv, "date"), KindDate))
	assert.Equal(t, "on", formatValue(column(rv, "featured"), KindBool))
	assert.Equal(t, "", formatValue(column(rv, "treatment_id"), KindForeignKey))

	var post model.BlogPost
	prv := reflect.ValueOf(&post).Elem()
	require.NoError(t, setValue(column(prv, "published_date"), KindDateTime, "2024-03-09T14:30"))
	assert.Equal(t, "2024-03-09T14:30", formatValue(column(prv, "published_date"), KindDateTime))
}

func TestColumnPanicsOnUnknownName(t *testing.T) {
	var tr model.Treatment
	rv := reflect.ValueOf(&tr).Elem()
	assert.NotPanics(t, func() { column(rv, "updated_at") })
	assert.Panics(t, func() { column(rv, "colour") })
}

func TestChangedColumns(t *testing.T) {
	fields := []Field{
		{Column: "name", Kind: KindText},
		{Column: "featured", Kind: KindBool},
		{Column: "price_range", Kind: KindText, ReadOnly: true},
	}
	before := model.Treatment{Name: "Peel", PriceRange: "$100"}
	after := before
	after.Featured = true
	after.PriceRange = "$200"

	got := changedColumns(reflect.ValueOf(&before).Elem(), reflect.ValueOf(&after).Elem(), fields)
	assert.Equal(t, []string{"featured"}, got)
}

func TestQueryURL(t *testing.T) {
	params := url.Values{"q": {"peel"}, "p": {"2"}, "featured": {"1"}}

	assert.Equal(t, "?category=FACE&featured=1&q=peel", queryURL(params, map[string]string{"category": "FACE"}))
	assert.Equal(t, "?p=3&q=peel", queryURL(params, map[string]string{"p": "3", "featured": ""}))
	assert.Equal(t, "2", params.Get("p"))
}

func TestHierarchyRange(t *testing.T) {
	tests := []struct {
		name       string
		params     url.Values
		start, end time.Time
		ok         bool
	}{
		{name: "none", params: url.Values{}},
		{name: "bad year", params: url.Values{"date__year": {"abc"}}},
		{
			name:   "year",
			params: url.Values{"date__year": {"2024"}},
			start:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			end:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			ok:     true,
		},
		{
			name:   "month",
			params: url.Values{"date__year": {"2024"}, "date__month": {"12"}},
			start:  time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			end:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			ok:     true,
		},
		{
			name:   "day",
			params: url.Values{"date__year": {"2024"}, "date__month": {"2"}, "date__day": {"29"}},
			start:  time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			end:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			ok:     true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, ok := hierarchyRange(tt.params, "date")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestDateFilterChoices(t *testing.T) {
	now := time.Date(2024, time.March, 9, 15, 0, 0, 0, time.UTC)
	choices := dateFilterChoices(now)
	require.Len(t, choices, 5)
	assert.Equal(t, dateFilterChoice{label: "Today", gte: "2024-03-09", lt: "2024-03-10"}, choices[1])
	assert.Equal(t, dateFilterChoice{label: "This month", gte: "2024-03-01", lt: "2024-04-01"}, choices[3])
}
