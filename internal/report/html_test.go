package report

import "testing"

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "no  markup\nhere", "no markup here"},
		{"inline tags", "regulated by <strong>ASIC</strong> and the <strong>FCA</strong>.", "regulated by ASIC and the FCA."},
		{"entities", "spreads &amp; commissions", "spreads & commissions"},
		{"block tags separate words", "<p>one</p><p>two</p>", "one two"},
		{"attributes", `<a href="/x?a=1&b=2" title="a > b">link</a>`, "link"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := StripHTML(tt.input); got != tt.want {
				t.Errorf("StripHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
