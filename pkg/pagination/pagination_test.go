package pagination

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   Params
		want Params
	}{
		{"defaults", Params{}, Params{Skip: 0, Take: DefaultTake}},
		{"negative skip", Params{Skip: -5, Take: 10}, Params{Skip: 0, Take: 10}},
		{"capped take", Params{Take: 5000}, Params{Take: MaxTake}},
		{"passthrough", Params{Skip: 50, Take: 20}, Params{Skip: 50, Take: 20}},
	}
	for _, tc := range cases {
		if got := tc.in.Normalize(); got != tc.want {
			t.Fatalf("%s: got %+v want %+v", tc.name, got, tc.want)
		}
	}
}
