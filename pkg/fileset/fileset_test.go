package fileset

import (
	"log"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCollect(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.o"), "a")
	writeFile(t, filepath.Join(root, "sub", "b.o"), "b")
	writeFile(t, filepath.Join(root, "sub", "deep", "c.so"), "c")
	writeFile(t, filepath.Join(root, "readme.txt"), "r")
	writeFile(t, filepath.Join(root, "lib.dll.pdb"), "p")

	testCases := []struct {
		name     string
		matchers []Matcher
		want     []string
	}{
		{
			name:     "objects",
			matchers: []Matcher{Suffix(".o")},
			want:     []string{"a.o", filepath.Join("sub", "b.o")},
		},
		{
			name:     "objects and shared",
			matchers: []Matcher{Suffix(".o"), Suffix(".so")},
			want:     []string{"a.o", filepath.Join("sub", "b.o"), filepath.Join("sub", "deep", "c.so")},
		},
		{
			name:     "dll pattern catches derived names",
			matchers: []Matcher{Pattern(regexp.MustCompile(`.*\.dll.*`))},
			want:     []string{"lib.dll.pdb"},
		},
		{
			name:     "no match",
			matchers: []Matcher{Suffix(".dylib")},
			want:     nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Collect(root, tc.matchers...)
			if err != nil {
				t.Fatalf("Collect: %v", err)
			}
			sort.Strings(got)
			sort.Strings(tc.want)
			if len(got) != len(tc.want) {
				t.Fatalf("Collect = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("Collect[%d] = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestCollectMissingRoot(t *testing.T) {
	got, err := Collect(filepath.Join(t.TempDir(), "nope"), Suffix(".o"))
	if err != nil {
		t.Fatalf("Collect on missing root: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Collect on missing root = %v, want empty", got)
	}
}

func TestCollectFollowsSymlinkedDirs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks not reliable on windows")
	}

	root := t.TempDir()
	other := t.TempDir()
	writeFile(t, filepath.Join(other, "linked.o"), "x")
	if err := os.Symlink(other, filepath.Join(root, "link")); err != nil {
		t.Fatal(err)
	}
	// Self-referential link must not loop the walk
	if err := os.Symlink(root, filepath.Join(root, "self")); err != nil {
		t.Fatal(err)
	}

	got, err := Collect(root, Suffix(".o"))
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != 1 || got[0] != filepath.Join("link", "linked.o") {
		t.Errorf("Collect = %v, want [link/linked.o]", got)
	}
}

func TestCopyAllKeepSrcPath(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "dir", "x.h"), "x")
	writeFile(t, filepath.Join(src, "y.h"), "y")

	copied := CopyAll(src, dst, []string{filepath.Join("dir", "x.h"), "y.h"}, true, nil)
	if copied != 2 {
		t.Fatalf("copied = %d, want 2", copied)
	}
	for _, rel := range []string{filepath.Join("dir", "x.h"), "y.h"} {
		if _, err := os.Stat(filepath.Join(dst, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}
}

func TestCopyAllFlatten(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "deep", "down", "lib.so"), "s")

	copied := CopyAll(src, dst, []string{filepath.Join("deep", "down", "lib.so")}, false, nil)
	if copied != 1 {
		t.Fatalf("copied = %d, want 1", copied)
	}
	if _, err := os.Stat(filepath.Join(dst, "lib.so")); err != nil {
		t.Errorf("flattened copy missing: %v", err)
	}
}

func TestCopyAllSkipsUnreadable(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "good1.h"), "1")
	writeFile(t, filepath.Join(src, "good2.h"), "2")

	files := []string{"good1.h", "missing.h", "good2.h", "alias.h"}
	logger := log.New(os.Stderr, "", 0)

	copied := CopyAll(src, dst, files, true, logger)
	if copied != 2 {
		t.Fatalf("copied = %d, want 2", copied)
	}
	if _, err := os.Stat(filepath.Join(dst, "good1.h")); err != nil {
		t.Error("good1.h not copied")
	}
	if _, err := os.Stat(filepath.Join(dst, "missing.h")); err == nil {
		t.Error("missing.h unexpectedly present")
	}
}
