package turkish

import "testing"

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"03.11.2025 Pazartesi", "2025-11-03", true},
		{"03.11.2025", "2025-11-03", true},
		{"  07.02.2026 Cumartesi  ", "2026-02-07", true},
		{"Pazartesi", "", false},
		{"", "", false},
		{"3.11.2025", "", false}, // single-digit day, not the site's format
	}

	for _, tc := range tests {
		got, ok := ParseDate(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseDate(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"0,2", 0.2, false},
		{"150", 150.0, false},
		{"1,5", 1.5, false},
		{" 12 ", 12.0, false},
		{"GR", 0, true},
	}

	for _, tc := range tests {
		got, err := ParseAmount(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseAmount(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"EKŞİLİ KÖFTE", "Ekşili Köfte"},
		{"YAYLA ÇORBASI", "Yayla Çorbası"},
		{"pirinç pilavı", "Pirinç Pilavı"},
		{"ızgara köfte", "Izgara Köfte"},
		{"iç pilav", "İç Pilav"},
	}

	for _, tc := range tests {
		if got := TitleCase(tc.in); got != tc.want {
			t.Errorf("TitleCase(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
