package factory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/rotation-engine/factory"
	"github.com/warp/rotation-engine/rotation"
)

func validWire() factory.SelectionJSON {
	return factory.SelectionJSON{
		ScheduleType:        "platoon_ten",
		ShiftType:           "swing",
		StartDate:           "2026-01-01",
		PlatoonDaysOff:      "thu_fri",
		RotatingOffStartDay: "wednesday",
	}
}

func TestParseSelection_Valid(t *testing.T) {
	sel, err := factory.ParseSelection(validWire())
	require.NoError(t, err)

	assert.Equal(t, rotation.SchedulePlatoonTen, sel.ScheduleType)
	assert.Equal(t, rotation.ShiftSwing, sel.ShiftType)
	assert.True(t, sel.StartDate.Equal(rotation.NewDate(2026, time.January, 1)))
	assert.Equal(t, rotation.PlatoonOffThuFri, sel.PlatoonDaysOff)
	assert.Equal(t, rotation.Wednesday, sel.RotatingOffStartDay)
}

func TestParseSelection_DefaultsForOmittedOptions(t *testing.T) {
	wire := factory.SelectionJSON{
		ScheduleType: "five_by_eight",
		ShiftType:    "day",
		StartDate:    "2026-01-01",
	}
	sel, err := factory.ParseSelection(wire)
	require.NoError(t, err)
	assert.Equal(t, rotation.PlatoonOffMonTue, sel.PlatoonDaysOff)
	assert.Equal(t, rotation.Monday, sel.RotatingOffStartDay)
}

func TestParseSelection_RejectsUnknownEnums(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*factory.SelectionJSON)
	}{
		{"schedule type", func(w *factory.SelectionJSON) { w.ScheduleType = "nine_eighty" }},
		{"shift type", func(w *factory.SelectionJSON) { w.ShiftType = "graveyard" }},
		{"start date", func(w *factory.SelectionJSON) { w.StartDate = "Jan 1 2026" }},
		{"platoon days off", func(w *factory.SelectionJSON) { w.PlatoonDaysOff = "wed_thu" }},
		{"weekday", func(w *factory.SelectionJSON) { w.RotatingOffStartDay = "someday" }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			wire := validWire()
			c.mutate(&wire)
			_, err := factory.ParseSelection(wire)
			require.Error(t, err)
			assert.ErrorIs(t, err, factory.ErrInvalidSelection)
		})
	}
}

func TestParseSelectionJSON_BadDocument(t *testing.T) {
	_, err := factory.ParseSelectionJSON([]byte(`{"schedule_type": 5}`))
	assert.ErrorIs(t, err, factory.ErrInvalidSelection)
}

func TestFormatSelection_RoundTrip(t *testing.T) {
	sel, err := factory.ParseSelection(validWire())
	require.NoError(t, err)

	wire := factory.FormatSelection(sel)
	back, err := factory.ParseSelection(wire)
	require.NoError(t, err)
	assert.Equal(t, sel, back)
}

func TestParseWeekday_CaseInsensitive(t *testing.T) {
	day, err := factory.ParseWeekday("Friday")
	require.NoError(t, err)
	assert.Equal(t, rotation.Friday, day)
}

func TestParsePreferredView(t *testing.T) {
	view, err := factory.ParsePreferredView("")
	require.NoError(t, err)
	assert.Equal(t, factory.ViewWeek, view)

	view, err = factory.ParsePreferredView("year")
	require.NoError(t, err)
	assert.Equal(t, factory.ViewYear, view)

	_, err = factory.ParsePreferredView("month")
	assert.ErrorIs(t, err, factory.ErrInvalidSelection)
}
