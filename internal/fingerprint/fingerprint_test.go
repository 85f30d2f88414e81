package fingerprint

import "testing"

func TestSentenceIsDeterministic(t *testing.T) {
	a := Sentence([]string{"Hello world", "tag1"})
	b := Sentence([]string{"Hello world", "tag2"})
	if a != b {
		t.Fatalf("sentence hash should ignore trailing fields: %d != %d", a, b)
	}
	if a != Sentence([]string{"Hello world"}) {
		t.Fatalf("sentence hash changed between calls")
	}
}

func TestRowMatchesSentenceForSingleField(t *testing.T) {
	fields := []string{"Goodbye"}
	if Row(fields) != Sentence(fields) {
		t.Fatalf("single-field row must hash like its sentence")
	}
}

func TestRowDistinguishesMetadata(t *testing.T) {
	a := Row([]string{"Hello world", "tag1"})
	b := Row([]string{"Hello world", "tag2"})
	if a == b {
		t.Fatalf("rows with different metadata collided: %d", a)
	}
	if Sentence([]string{"Hello world", "tag1"}) == a {
		t.Fatalf("multi-field row hash should differ from its sentence hash")
	}
}

func TestRowIsFieldBoundarySensitive(t *testing.T) {
	cases := [][2][]string{
		{{"a", "b"}, {"ab"}},
		{{"ab", "c"}, {"a", "bc"}},
		{{"", "x"}, {"x", ""}},
	}
	for _, c := range cases {
		if Row(c[0]) == Row(c[1]) {
			t.Fatalf("field boundary collision between %q and %q", c[0], c[1])
		}
	}
}
