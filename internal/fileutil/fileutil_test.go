package fileutil_test

import (
	"testing"

	"kithara/internal/fileutil"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"cmbt.rng.slinger.wav", "cmbt.rng.slinger.wav"},
		{`44-16 WAVs\track.wav`, "44-16 WAVs_track.wav"},
		{"a/b:c*d?e\"f<g>h|i", "a_b_c_d_e_f_g_h_i"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := fileutil.SanitizeFilename(tc.in); got != tc.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
