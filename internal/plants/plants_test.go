package plants

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNew_SeedsCadenceFromArchetype(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	p := New(Registration{Nickname: " Spike ", CommonName: "Golden barrel cactus", Family: "Cactaceae"}, now)

	if _, err := uuid.Parse(p.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", p.ID, err)
	}
	if p.Nickname != "Spike" {
		t.Errorf("Nickname = %q, want Spike", p.Nickname)
	}
	if p.Archetype != "cactus" {
		t.Errorf("Archetype = %s, want cactus", p.Archetype)
	}
	if p.MatchMethod != "family" {
		t.Errorf("MatchMethod = %s, want family", p.MatchMethod)
	}
	if p.WateringIntervalDays != 21 || p.FertilizingIntervalDays != 90 {
		t.Errorf("intervals = %d/%d, want 21/90", p.WateringIntervalDays, p.FertilizingIntervalDays)
	}
	if !p.DroughtTolerant {
		t.Error("cactus should default to drought tolerant")
	}
	if !p.CreatedAt.Equal(now) {
		t.Errorf("CreatedAt = %v, want %v", p.CreatedAt, now)
	}
	if !p.LastWateredAt.IsZero() {
		t.Error("new plant should never have been watered")
	}
}

func TestNew_ExplicitValuesWin(t *testing.T) {
	no := false
	p := New(Registration{
		CommonName:              "aloe",
		WateringIntervalDays:    10,
		FertilizingIntervalDays: 45,
		DroughtTolerant:         &no,
	}, time.Now())

	if p.Archetype != "aloe" {
		t.Errorf("Archetype = %s, want aloe", p.Archetype)
	}
	if p.WateringIntervalDays != 10 || p.FertilizingIntervalDays != 45 {
		t.Errorf("intervals = %d/%d, want 10/45", p.WateringIntervalDays, p.FertilizingIntervalDays)
	}
	if p.DroughtTolerant {
		t.Error("explicit drought tolerance should override archetype default")
	}
}

func TestDisplayName(t *testing.T) {
	p := &Plant{CommonName: "Boston fern"}
	if p.DisplayName() != "Boston fern" {
		t.Errorf("DisplayName() = %q", p.DisplayName())
	}
	p.Nickname = "Fernando"
	if p.DisplayName() != "Fernando" {
		t.Errorf("DisplayName() = %q", p.DisplayName())
	}
}

func TestParseCareKind(t *testing.T) {
	tests := []struct {
		in      string
		want    CareKind
		wantErr bool
	}{
		{"water", CareWater, false},
		{" Watered ", CareWater, false},
		{"feed", CareFertilize, false},
		{"fertilise", CareFertilize, false},
		{"prune", "", true},
	}

	for _, tt := range tests {
		got, err := ParseCareKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCareKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCareKind(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestCareRecord(t *testing.T) {
	watered := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	p := &Plant{LastWateredAt: watered, WateringIntervalDays: 4, FertilizingIntervalDays: 20, DroughtTolerant: true}
	rec := p.CareRecord()

	if !rec.LastWateredAt.Equal(watered) || rec.WateringIntervalDays != 4 || rec.FertilizingIntervalDays != 20 || !rec.DroughtTolerant {
		t.Errorf("CareRecord() = %+v", rec)
	}
}
