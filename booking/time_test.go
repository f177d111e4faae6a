package booking

import "testing"

func TestTimeToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"08:30", 510},
		{"23:59", 1439},
	}
	for _, c := range cases {
		got, err := TimeToMinutes(c.in)
		if err != nil {
			t.Errorf("TimeToMinutes(%q) error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("TimeToMinutes(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestTimeToMinutesInvalid(t *testing.T) {
	for _, in := range []string{"", "8", "24:00", "12:60", "ab:cd", "-1:00"} {
		if _, err := TimeToMinutes(in); err == nil {
			t.Errorf("TimeToMinutes(%q) should fail", in)
		}
	}
}

func TestMinutesToTime(t *testing.T) {
	if got := MinutesToTime(510); got != "08:30" {
		t.Fatalf("MinutesToTime(510) = %q", got)
	}
	if got := MinutesToTime(0); got != "00:00" {
		t.Fatalf("MinutesToTime(0) = %q", got)
	}
}
