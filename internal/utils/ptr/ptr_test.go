package ptr

import "testing"

func TestTo(t *testing.T) {
	s := "CALVERT"
	p := To(s)
	if p == nil {
		t.Fatal("Expected non-nil pointer")
	}
	if *p != s {
		t.Errorf("Expected %q, got %q", s, *p)
	}
	if p == &s {
		t.Error("Expected different address")
	}
}

func TestStringAndFloat64(t *testing.T) {
	if got := *String("HAKAI"); got != "HAKAI" {
		t.Errorf("Expected HAKAI, got %q", got)
	}
	if got := *Float64(51.6); got != 51.6 {
		t.Errorf("Expected 51.6, got %v", got)
	}
}

func TestDeref(t *testing.T) {
	if got := Deref[string](nil, "gray"); got != "gray" {
		t.Errorf("Expected fallback, got %q", got)
	}
	if got := Deref(String("red"), "gray"); got != "red" {
		t.Errorf("Expected red, got %q", got)
	}
}

func TestClone(t *testing.T) {
	if Clone[float64](nil) != nil {
		t.Fatal("Expected nil clone of nil pointer")
	}

	orig := Float64(-128.1)
	c := Clone(orig)
	if c == orig {
		t.Fatal("Expected a new pointer")
	}
	*c = 0
	if *orig != -128.1 {
		t.Errorf("Clone shares storage with the original: %v", *orig)
	}
}
