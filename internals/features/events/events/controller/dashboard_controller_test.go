package controller

import (
	"testing"
	"time"
)

func TestPeriodRange(t *testing.T) {
	// Miércoles 11 de marzo de 2026
	today := time.Date(2026, 3, 11, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		period   string
		wantFrom time.Time
		wantTo   time.Time
		bounded  bool
	}{
		{
			name:     "dia",
			period:   "dia",
			wantFrom: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
			bounded:  true,
		},
		{
			name:     "vacío equivale a dia",
			period:   "",
			wantFrom: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
			bounded:  true,
		},
		{
			name:     "semana arranca en lunes",
			period:   "semana",
			wantFrom: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
			bounded:  true,
		},
		{
			name:     "mes",
			period:   "mes",
			wantFrom: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			bounded:  true,
		},
		{
			name:    "todo no acota",
			period:  "todo",
			bounded: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, bounded := periodRange(tt.period, today)
			if bounded != tt.bounded {
				t.Fatalf("bounded = %v, esperaba %v", bounded, tt.bounded)
			}
			if !bounded {
				return
			}
			if !from.Equal(tt.wantFrom) || !to.Equal(tt.wantTo) {
				t.Errorf("rango = [%v, %v), esperaba [%v, %v)", from, to, tt.wantFrom, tt.wantTo)
			}
		})
	}
}

func TestPeriodRangeSundayWeek(t *testing.T) {
	// Domingo 15 de marzo de 2026: la semana sigue siendo la del lunes 9.
	sunday := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	from, to, bounded := periodRange("semana", sunday)
	if !bounded {
		t.Fatal("semana debe acotar")
	}
	wantFrom := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	if !from.Equal(wantFrom) || !to.Equal(wantTo) {
		t.Errorf("rango = [%v, %v), esperaba [%v, %v)", from, to, wantFrom, wantTo)
	}
}
