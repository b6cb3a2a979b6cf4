package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdayOf(t *testing.T) {
	// 2024-06-02 was a Sunday
	date := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, Sunday, WeekdayOf(date))
	assert.Equal(t, Monday, WeekdayOf(date.AddDate(0, 0, 1)))
}

func TestParseWeekday(t *testing.T) {
	d, ok := ParseWeekday(" monday ")
	require.True(t, ok)
	assert.Equal(t, Monday, d)
	assert.Equal(t, 1, d.Order())
	assert.Equal(t, 7, Sunday.Order())

	_, ok = ParseWeekday("Funday")
	assert.False(t, ok)
}

func TestParseAppointmentStatus(t *testing.T) {
	s, ok := ParseAppointmentStatus("No Show")
	require.True(t, ok)
	assert.Equal(t, StatusNoShow, s)

	_, ok = ParseAppointmentStatus("scheduled")
	assert.False(t, ok, "status values are case sensitive")
}

func TestMedicines_RoundTrip(t *testing.T) {
	in := Medicines{{
		Name:           "Paracetamol",
		Dosage:         "500mg",
		Frequency:      "3 times a day",
		TimeOfDay:      []TimeOfDay{Morning, Evening},
		RelationToMeal: AfterMeal,
	}}

	v, err := in.Value()
	require.NoError(t, err)

	var out Medicines
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)
}

func TestMedicines_ScanEdgeCases(t *testing.T) {
	var m Medicines
	require.NoError(t, m.Scan(nil))
	assert.Equal(t, Medicines{}, m)

	require.NoError(t, m.Scan("null"))
	assert.Equal(t, Medicines{}, m)

	assert.Error(t, m.Scan(42))
	assert.Error(t, m.Scan([]byte("{broken")))

	v, err := Medicines(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)
}

func TestParseMealRelation(t *testing.T) {
	r, ok := ParseMealRelation("")
	require.True(t, ok)
	assert.Equal(t, AfterMeal, r)

	_, ok = ParseMealRelation("during")
	assert.False(t, ok)
}

func TestDoctor_HasCredentials(t *testing.T) {
	user, hash, empty := "drhouse", "$2a$10$x", ""

	assert.False(t, (&Doctor{}).HasCredentials())
	assert.False(t, (&Doctor{Username: &user, PasswordHash: &empty}).HasCredentials())
	assert.True(t, (&Doctor{Username: &user, PasswordHash: &hash}).HasCredentials())
}

func TestImageExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     string
		ok       bool
	}{
		{"house.png", "png", true},
		{"portrait.JPG", "jpg", true},
		{"archive.tar.jpeg", "jpeg", true},
		{"avatar.gif", "", false},
		{"script.php", "", false},
		{"noext", "", false},
		{"trailing.", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ImageExtension(tt.filename)
		assert.Equal(t, tt.ok, ok, tt.filename)
		assert.Equal(t, tt.want, got, tt.filename)
	}
}
