package tagging

import "testing"

func TestDerive(t *testing.T) {
	cases := []struct {
		name string
		want Metadata
	}{
		{"01_my_song.mp3", Metadata{Title: "01 My Song"}},
		{"THE BEST - OF THE REST.mp3", Metadata{Album: "The Best", Title: "Of the Rest"}},
		{"Album Name - Mixed Case title.mp4", Metadata{Album: "Album Name", Title: "Mixed Case title"}},
		{"one - two - three.mp3", Metadata{Album: "One", Title: "Two - Three"}},
		{"rock and roll with the band.mp3", Metadata{Title: "Rock and Roll with the Band"}},
		{"12345.mp3", Metadata{Title: "12345"}},
		{"/music/Some   Dir/spaced__out   name.m4v", Metadata{Title: "Spaced Out Name"}},
	}
	for _, tc := range cases {
		if got := Derive(tc.name); got != tc.want {
			t.Fatalf("Derive(%q) = %#v, want %#v", tc.name, got, tc.want)
		}
	}
}

func TestDeriveKeepsFirstShortWordCapitalized(t *testing.T) {
	if got := Derive("the end of the road.mp3").Title; got != "The End of the Road" {
		t.Fatalf("unexpected title %q", got)
	}
}
