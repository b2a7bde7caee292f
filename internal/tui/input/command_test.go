package input

import "testing"

var testCommands = []Command{
	{Name: "/jump", Usage: "Jump"},
	{Name: "/days", Usage: "Days"},
	{Name: "/debug", Usage: "Debug"},
}

func TestMatch(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"jump", nil},
		{"", nil},
		{"/", []string{"/jump", "/days", "/debug"}},
		{"/jump", []string{"/jump"}},
		{"/d", []string{"/days", "/debug"}},
		{"/D", []string{"/days", "/debug"}},
		{"  /j", []string{"/jump"}},
		{"/jump x", nil},
		{"/x", nil},
	}

	for _, tt := range tests {
		got := Match(tt.input, testCommands)
		if len(got) != len(tt.want) {
			t.Fatalf("Match(%q) = %v, want %v", tt.input, got, tt.want)
		}
		for i := range got {
			if got[i].Name != tt.want[i] {
				t.Errorf("Match(%q)[%d] = %s, want %s", tt.input, i, got[i].Name, tt.want[i])
			}
		}
	}
}

func TestComplete(t *testing.T) {
	value, ok := Complete("/j", testCommands)
	if !ok || value != "/jump " {
		t.Fatalf("Complete(/j) = %q, %v, want %q", value, ok, "/jump ")
	}

	value, ok = Complete("/d", testCommands)
	if !ok || value != "/days " {
		t.Fatalf("Complete(/d) = %q, %v, want first match", value, ok)
	}

	if _, ok := Complete("/zzz", testCommands); ok {
		t.Fatal("Complete(/zzz) should not match")
	}
}
