package bundle_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"modbundle/internal/bundle"
	"modbundle/internal/project"
)

func TestBundleFromDirectory(t *testing.T) {
	cases := []struct {
		name string
		dir  string
	}{
		{name: "flat module file", dir: "test-1"},
		{name: "directory modules", dir: "test-2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			root := filepath.Join("testdata", tc.dir)
			b := bundle.New("main", project.NewDirResolver(root), bundle.Options{})
			if err := b.Load(context.Background()); err != nil {
				t.Fatalf("Load: %v", err)
			}

			outPath := filepath.Join(t.TempDir(), "bundled.rs")
			f, err := os.Create(outPath)
			if err != nil {
				t.Fatal(err)
			}
			if err := b.Write(f); err != nil {
				f.Close()
				t.Fatalf("Write: %v", err)
			}
			if err := f.Close(); err != nil {
				t.Fatal(err)
			}

			got, err := os.ReadFile(outPath)
			if err != nil {
				t.Fatal(err)
			}
			want, err := os.ReadFile(filepath.Join(root, "expected.txt"))
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != string(want) {
				t.Fatalf("bundle mismatch\n got:\n%s\nwant:\n%s", got, want)
			}
		})
	}
}
