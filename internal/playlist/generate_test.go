package playlist_test

import (
	"path/filepath"
	"slices"
	"testing"

	"filerename/internal/logging"
	"filerename/internal/media"
	"filerename/internal/naming"
	"filerename/internal/playlist"
	"filerename/internal/testsupport"
)

func newGenerator(dryRun bool) *playlist.Generator {
	return playlist.NewGenerator(naming.DefaultRuleSet(), media.NewClassifier(media.DefaultExtensions()), dryRun, logging.NewNop())
}

func TestGenerateListsAudioInOrder(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "Album")
	testsupport.BuildTree(t, dir, map[string]string{
		"02 b.mp3":     "b",
		"01 a.MP3":     "a",
		"clip.mp4":     "v",
		"image.iso":    "i",
		"nested/":      "",
		"nested/x.mp3": "x",
	})

	result, err := newGenerator(false).Generate(dir)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !result.Created || result.Path != filepath.Join(dir, "Album.m3u") {
		t.Fatalf("unexpected result %#v", result)
	}
	if content := testsupport.ReadFile(t, result.Path); content != "01 a.MP3\n02 b.mp3\n" {
		t.Fatalf("unexpected playlist content %q", content)
	}
}

func TestGenerateSkipsExistingPlaylist(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Album")
	testsupport.BuildTree(t, dir, map[string]string{
		"a.mp3":     "a",
		"Album.m3u": "custom\n",
	})

	result, err := newGenerator(false).Generate(dir)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if result.Created || result.Skipped != playlist.SkipExists {
		t.Fatalf("expected skip for existing playlist, got %#v", result)
	}
	if content := testsupport.ReadFile(t, filepath.Join(dir, "Album.m3u")); content != "custom\n" {
		t.Fatalf("existing playlist modified: %q", content)
	}
}

func TestGenerateSkipsDirectoriesWithoutAudio(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Videos")
	testsupport.BuildTree(t, dir, map[string]string{"clip.mp4": "v"})

	result, err := newGenerator(false).Generate(dir)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if result.Created || result.Skipped != playlist.SkipNoAudio {
		t.Fatalf("expected skip for directory without audio, got %#v", result)
	}
	if names := testsupport.Names(t, dir); !slices.Equal(names, []string{"clip.mp4"}) {
		t.Fatalf("unexpected entries %v", names)
	}
}

func TestGenerateDryRunAnnouncesOnly(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Album")
	testsupport.BuildTree(t, dir, map[string]string{"a.mp3": "a"})
	before := testsupport.Listing(t, dir)

	result, err := newGenerator(true).Generate(dir)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if result.Created || len(result.Entries) != 1 {
		t.Fatalf("unexpected dry-run result %#v", result)
	}
	if after := testsupport.Listing(t, dir); !slices.Equal(before, after) {
		t.Fatalf("dry-run changed the tree: %v", after)
	}
}

func TestGenerateDryRunUsesTransformedName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Best (of)")
	testsupport.BuildTree(t, dir, map[string]string{
		"a.mp3":          "a",
		"Best - of).m3u": "a.mp3\n",
	})

	result, err := newGenerator(true).Generate(dir)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if result.Skipped != playlist.SkipExists {
		t.Fatalf("expected the renamed playlist to count as existing, got %#v", result)
	}
}

func TestGenerateDryRunSeesPlaylistPendingRename(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Album (Live)")
	testsupport.BuildTree(t, dir, map[string]string{
		"a.mp3":            "a",
		"Album (Live).m3u": "a.mp3\n",
	})

	result, err := newGenerator(true).Generate(dir)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if result.Skipped != playlist.SkipExists || result.Path != filepath.Join(dir, "Album - Live).m3u") {
		t.Fatalf("expected skip for playlist awaiting rename, got %#v", result)
	}
}
