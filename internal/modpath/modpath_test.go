package modpath

import "testing"

func TestStringRendering(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want string
	}{
		{"internal single", Internal("a"), "'a"},
		{"internal nested", Internal("a", "b"), "'a'b"},
		{"external nested", External("pkg", "a", "b"), "pkg'a'b"},
		{"external bare", External("pkg"), "pkg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.path.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	a := Internal("a", "b")
	b := Internal("a", "b")
	c := External("pkg", "a", "b")
	if !a.Equal(b) {
		t.Errorf("expected equal internal paths")
	}
	if a.Equal(c) {
		t.Errorf("expected internal and external paths to differ")
	}
}

func TestIsPublic(t *testing.T) {
	if !IsPublic("Foo") {
		t.Errorf("Foo should be public")
	}
	if IsPublic("foo") {
		t.Errorf("foo should not be public")
	}
	if IsPublic("") {
		t.Errorf("empty name should not be public")
	}
}

func TestLastComponent(t *testing.T) {
	if got := Internal("a", "b", "c").LastComponent(); got != "c" {
		t.Errorf("LastComponent() = %q, want %q", got, "c")
	}
	if got := External("pkg").LastComponent(); got != "pkg" {
		t.Errorf("LastComponent() = %q, want %q", got, "pkg")
	}
}
