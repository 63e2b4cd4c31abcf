package renamer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"filerename/internal/census"
	"filerename/internal/faults"
	"filerename/internal/logging"
	"filerename/internal/media"
	"filerename/internal/naming"
	"filerename/internal/renamer"
	"filerename/internal/tagging"
	"filerename/internal/testsupport"
)

func newRenamer(dryRun bool, mutate ...func(*renamer.Options)) *renamer.Renamer {
	opts := renamer.Options{
		Rules:      naming.DefaultRuleSet(),
		Classifier: media.NewClassifier(media.DefaultExtensions()),
		DryRun:     dryRun,
	}
	for _, fn := range mutate {
		fn(&opts)
	}
	return renamer.New(opts, logging.NewNop())
}

func libraryTree(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "Library (2024)")
	testsupport.BuildTree(t, root, map[string]string{
		"Artist: One/Album (Live)/01 Intro (live).mp3": "intro",
		"Artist: One/Album (Live)/02 Song: Two.mp3":    "song",
		"Artist: One/Album (Live)/Album (Live).m3u":    "#EXTM3U\n#EXTINF:1,Intro (live)\n01 Intro (live).mp3\n02 Song: Two.mp3\n",
		"Artist: One/Album (Live)/cover.iso":           "iso",
		"Artist: One/clip (hd).mp4":                    "clip",
		"Artist: One/all.m3u":                          "Album (Live)/01 Intro (live).mp3\r\nclip (hd).mp4\r\n",
		"Empty (dir)/":                                 "",
		"plain.mp3":                                    "plain",
	})
	return root
}

func TestWalkDryRunLeavesTreeUntouched(t *testing.T) {
	root := libraryTree(t)
	before := testsupport.Listing(t, root)

	r := newRenamer(true)
	final, err := r.Walk(context.Background(), root, true)
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if final != root {
		t.Fatalf("dry-run should return the original root, got %q", final)
	}
	if after := testsupport.Listing(t, root); !slices.Equal(before, after) {
		t.Fatalf("dry-run changed the tree:\nbefore %v\nafter  %v", before, after)
	}

	changes := r.Changes()
	if len(changes) == 0 {
		t.Fatal("expected dry-run to report changes")
	}
	for _, change := range changes {
		if change.Applied {
			t.Fatalf("dry-run change marked applied: %#v", change)
		}
	}
	if changes[0].Kind != renamer.ChangeDir || changes[0].To != filepath.Join(filepath.Dir(root), "Library - 2024)") {
		t.Fatalf("expected root rename first, got %#v", changes[0])
	}
}

func TestWalkApplyRenamesTree(t *testing.T) {
	root := libraryTree(t)
	before, err := census.Take(root)
	if err != nil {
		t.Fatalf("census before: %v", err)
	}

	final, err := newRenamer(false).Walk(context.Background(), root, true)
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	want := filepath.Join(filepath.Dir(root), "Library - 2024)")
	if final != want {
		t.Fatalf("final root = %q, want %q", final, want)
	}

	after, err := census.Take(final)
	if err != nil {
		t.Fatalf("census after: %v", err)
	}
	if err := census.Compare(before, after); err != nil {
		t.Fatalf("census changed: %v", err)
	}

	listing := testsupport.Listing(t, final)
	names := make([]string, 0, len(listing))
	for _, entry := range listing {
		if !strings.HasSuffix(entry, "/") {
			entry = entry[:strings.LastIndex(entry, " ")]
		}
		names = append(names, entry)
	}
	slices.Sort(names)
	expected := []string{
		"Artist One/",
		"Artist One/Album - Live)/",
		"Artist One/Album - Live)/01 Intro - live).mp3",
		"Artist One/Album - Live)/02 Song Two.mp3",
		"Artist One/Album - Live)/Album - Live).m3u",
		"Artist One/Album - Live)/cover.iso",
		"Artist One/all.m3u",
		"Artist One/clip - hd).mp4",
		"Empty - dir)/",
		"plain.mp3",
	}
	slices.Sort(expected)
	if !slices.Equal(names, expected) {
		t.Fatalf("unexpected tree:\n got %q\nwant %q", names, expected)
	}
}

func TestWalkApplyPlaylistEntriesResolve(t *testing.T) {
	root := libraryTree(t)
	final, err := newRenamer(false).Walk(context.Background(), root, false)
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if final != root {
		t.Fatalf("root should keep its name without renameSelf, got %q", final)
	}

	albumList := filepath.Join(root, "Artist One/Album - Live)/Album - Live).m3u")
	content := testsupport.ReadFile(t, albumList)
	if !strings.Contains(content, "#EXTINF:1,Intro (live)\n") {
		t.Fatalf("directive was modified: %q", content)
	}
	assertEntriesResolve(t, albumList)

	// Directory components stay verbatim, so this nested entry keeps the old
	// directory name and does not resolve after the walk.
	all := testsupport.ReadFile(t, filepath.Join(root, "Artist One/all.m3u"))
	if all != "Album (Live)/01 Intro - live).mp3\r\nclip - hd).mp4\r\n" {
		t.Fatalf("unexpected all.m3u content %q", all)
	}
}

func assertEntriesResolve(t *testing.T, playlistPath string) {
	t.Helper()
	for _, line := range strings.Split(testsupport.ReadFile(t, playlistPath), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, err := os.Stat(filepath.Join(filepath.Dir(playlistPath), line)); err != nil {
			t.Fatalf("playlist entry %q does not resolve: %v", line, err)
		}
	}
}

func TestWalkFileConflictKeepsBothFiles(t *testing.T) {
	root := t.TempDir()
	testsupport.BuildTree(t, root, map[string]string{
		"a - b).mp3": "existing",
		"a (b).mp3":  "incoming",
	})

	_, err := newRenamer(false).Walk(context.Background(), root, false)
	if !errors.Is(err, faults.ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if got := testsupport.ReadFile(t, filepath.Join(root, "a - b).mp3")); got != "existing" {
		t.Fatalf("destination overwritten: %q", got)
	}
	if got := testsupport.ReadFile(t, filepath.Join(root, "a (b).mp3")); got != "incoming" {
		t.Fatalf("source lost: %q", got)
	}
}

func TestWalkDirectoryConflict(t *testing.T) {
	root := t.TempDir()
	testsupport.BuildTree(t, root, map[string]string{
		"x: y/a.mp3": "a",
		"x y/b.mp3":  "b",
	})
	before := testsupport.Listing(t, root)

	_, err := newRenamer(false).Walk(context.Background(), root, false)
	if !errors.Is(err, faults.ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if after := testsupport.Listing(t, root); !slices.Equal(before, after) {
		t.Fatalf("conflict changed the tree:\nbefore %v\nafter  %v", before, after)
	}
}

func TestWalkEmptyNameIsConflict(t *testing.T) {
	tests := []struct {
		name string
		tree map[string]string
	}{
		{"audio file", map[string]string{":.mp3": "a"}},
		{"video file", map[string]string{" : .mp4": "v"}},
		{"directory", map[string]string{":/a.mp3": "a"}},
		{"playlist", map[string]string{":.m3u": "a.mp3\n", "a.mp3": "a"}},
	}
	for _, tt := range tests {
		for _, dryRun := range []bool{true, false} {
			root := t.TempDir()
			testsupport.BuildTree(t, root, tt.tree)
			before := testsupport.Listing(t, root)

			_, err := newRenamer(dryRun).Walk(context.Background(), root, false)
			if !errors.Is(err, faults.ErrConflict) {
				t.Fatalf("%s (dry-run=%v): expected conflict error, got %v", tt.name, dryRun, err)
			}
			if after := testsupport.Listing(t, root); !slices.Equal(before, after) {
				t.Fatalf("%s (dry-run=%v): tree changed:\nbefore %v\nafter  %v", tt.name, dryRun, before, after)
			}
		}
	}
}

func TestWalkDryRunGenerationMatchesApply(t *testing.T) {
	tree := map[string]string{
		"Album (Live)/Album (Live).m3u": "a.mp3\n",
		"Album (Live)/a.mp3":            "a",
		"Other/b.mp3":                   "b",
	}
	generated := func(dryRun bool) []string {
		root := t.TempDir()
		testsupport.BuildTree(t, root, tree)
		r := newRenamer(dryRun, func(o *renamer.Options) { o.GeneratePlaylists = true })
		if _, err := r.Walk(context.Background(), root, false); err != nil {
			t.Fatalf("Walk (dry-run=%v) returned error: %v", dryRun, err)
		}
		var paths []string
		for _, change := range r.Changes() {
			if change.Kind == renamer.ChangeGenerated {
				rel, _ := filepath.Rel(root, change.To)
				paths = append(paths, filepath.ToSlash(rel))
			}
		}
		return paths
	}

	dry, applied := generated(true), generated(false)
	want := []string{"Other/Other.m3u"}
	if !slices.Equal(dry, want) || !slices.Equal(applied, want) {
		t.Fatalf("generated playlists differ: dry-run %v, apply %v, want %v", dry, applied, want)
	}
}

func TestWalkUnsupportedFileFailsBeforeMutation(t *testing.T) {
	root := t.TempDir()
	testsupport.BuildTree(t, root, map[string]string{
		"Album (1)/song (a).mp3": "song",
		"Album (1)/notes.txt":    "notes",
	})
	before := testsupport.Listing(t, root)

	_, err := newRenamer(false).Walk(context.Background(), root, false)
	if !errors.Is(err, faults.ErrUnsupportedFile) {
		t.Fatalf("expected unsupported file error, got %v", err)
	}
	if after := testsupport.Listing(t, root); !slices.Equal(before, after) {
		t.Fatalf("unsupported file did not stop mutation:\nbefore %v\nafter  %v", before, after)
	}
}

func TestPreflightReportsEveryUnsupportedFile(t *testing.T) {
	root := t.TempDir()
	testsupport.BuildTree(t, root, map[string]string{
		"a/ok.mp3":    "",
		"b/notes.txt": "",
		"c/d/README":  "",
		"c/image.ISO": "",
	})

	err := newRenamer(false).Preflight(root)
	if !errors.Is(err, faults.ErrUnsupportedFile) {
		t.Fatalf("expected unsupported file error, got %v", err)
	}
	for _, name := range []string{"notes.txt", "README"} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("expected %s in %v", name, err)
		}
	}
	if strings.Contains(err.Error(), "image.ISO") {
		t.Fatalf("ignored file reported as unsupported: %v", err)
	}
}

func TestWalkMissingDirectory(t *testing.T) {
	_, err := newRenamer(false).Walk(context.Background(), filepath.Join(t.TempDir(), "missing"), true)
	if !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestWalkHonorsCancellation(t *testing.T) {
	root := libraryTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newRenamer(false).Walk(ctx, root, true); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestWalkIsIdempotent(t *testing.T) {
	root := libraryTree(t)
	final, err := newRenamer(false).Walk(context.Background(), root, true)
	if err != nil {
		t.Fatalf("first Walk returned error: %v", err)
	}
	before := testsupport.Listing(t, final)

	r := newRenamer(false)
	again, err := r.Walk(context.Background(), final, true)
	if err != nil {
		t.Fatalf("second Walk returned error: %v", err)
	}
	if again != final || len(r.Changes()) != 0 {
		t.Fatalf("second pass changed something: %q %#v", again, r.Changes())
	}
	if after := testsupport.Listing(t, final); !slices.Equal(before, after) {
		t.Fatalf("second pass changed the tree")
	}
}

func TestWalkGeneratesPlaylistsAfterRenaming(t *testing.T) {
	root := filepath.Join(t.TempDir(), "Mix (A)")
	testsupport.BuildTree(t, root, map[string]string{
		"b (2).mp3":    "b",
		"a (1).mp3":    "a",
		"Sub/c.mp3":    "c",
		"Sub/Sub.m3u":  "c.mp3\n",
		"Videos/v.mp4": "v",
	})

	r := newRenamer(false, func(o *renamer.Options) { o.GeneratePlaylists = true })
	final, err := r.Walk(context.Background(), root, true)
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	generated := filepath.Join(final, "Mix - A).m3u")
	if content := testsupport.ReadFile(t, generated); content != "a - 1).mp3\nb - 2).mp3\n" {
		t.Fatalf("unexpected generated playlist %q", content)
	}
	if r.Generated() != 1 {
		t.Fatalf("expected one generated playlist, got %d", r.Generated())
	}
	if names := testsupport.Names(t, filepath.Join(final, "Videos")); !slices.Equal(names, []string{"v.mp4"}) {
		t.Fatalf("playlist generated for directory without audio: %v", names)
	}
	assertEntriesResolve(t, generated)
}

func TestWalkRetagsEveryMediaFile(t *testing.T) {
	root := t.TempDir()
	testsupport.BuildTree(t, root, map[string]string{
		"Album - one (x).mp3": "a",
		"sub/clip.mp4":        "v",
		"sub/list.m3u":        "clip.mp4\n",
		"sub/disc.iso":        "i",
	})

	var retagged []string
	r := newRenamer(false, func(o *renamer.Options) {
		o.EditTags = true
		o.Tagging = tagging.Options{Writer: tagging.WriterFFmpeg}
	})
	r.WithCommandRunner(func(_ context.Context, _ string, args ...string) error {
		retagged = append(retagged, args[slices.Index(args, "-i")+1])
		return os.WriteFile(args[len(args)-1], []byte("tagged"), 0o644)
	})

	if _, err := r.Walk(context.Background(), root, false); err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	want := []string{
		filepath.Join(root, "Album - one - x).mp3"),
		filepath.Join(root, "sub", "clip.mp4"),
	}
	if !slices.Equal(retagged, want) {
		t.Fatalf("retagged %q, want %q", retagged, want)
	}
	if r.Retagged() != 2 {
		t.Fatalf("expected 2 retagged files, got %d", r.Retagged())
	}
	if got := testsupport.ReadFile(t, filepath.Join(root, "sub", "disc.iso")); got != "i" {
		t.Fatalf("ignored file touched: %q", got)
	}
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	testsupport.BuildTree(t, dir, map[string]string{
		"song (1).mp3":  "s",
		"list (1).m3u":  "song (1).mp3\n",
		"disc (1).iso":  "i",
		"notes (1).txt": "n",
	})
	r := newRenamer(false)
	ctx := context.Background()

	got, err := r.ProcessFile(ctx, filepath.Join(dir, "song (1).mp3"))
	if err != nil || got != filepath.Join(dir, "song - 1).mp3") {
		t.Fatalf("ProcessFile(mp3) = %q, %v", got, err)
	}
	got, err = r.ProcessFile(ctx, filepath.Join(dir, "list (1).m3u"))
	if err != nil || got != filepath.Join(dir, "list - 1).m3u") {
		t.Fatalf("ProcessFile(m3u) = %q, %v", got, err)
	}
	assertEntriesResolve(t, got)

	got, err = r.ProcessFile(ctx, filepath.Join(dir, "disc (1).iso"))
	if err != nil || got != filepath.Join(dir, "disc (1).iso") {
		t.Fatalf("ProcessFile(iso) = %q, %v", got, err)
	}
	if _, err := r.ProcessFile(ctx, filepath.Join(dir, "notes (1).txt")); !errors.Is(err, faults.ErrUnsupportedFile) {
		t.Fatalf("expected unsupported file error, got %v", err)
	}
	if _, err := r.ProcessFile(ctx, filepath.Join(dir, "gone.mp3")); !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if _, err := r.ProcessFile(ctx, dir); !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("expected not found error for directory, got %v", err)
	}
}

func TestRenameFileDryRunReportsOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a: b.mp3")
	testsupport.WriteFile(t, path, "x")

	r := newRenamer(true)
	got, err := r.RenameFile(path)
	if err != nil {
		t.Fatalf("RenameFile returned error: %v", err)
	}
	if got != path {
		t.Fatalf("dry-run should keep path, got %q", got)
	}
	changes := r.Changes()
	if len(changes) != 1 || changes[0].To != filepath.Join(dir, "a b.mp3") || changes[0].Applied {
		t.Fatalf("unexpected changes %#v", changes)
	}
	if names := testsupport.Names(t, dir); !slices.Equal(names, []string{"a: b.mp3"}) {
		t.Fatalf("dry-run renamed file: %v", names)
	}
}
