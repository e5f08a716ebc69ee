package fai

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadIndex(t *testing.T) {
	idx, err := ReadIndex("testdata/ref.fa.fai")
	if err != nil {
		t.Fatal(err)
	}

	if size, found := idx.Size("chr1"); !found || size != 40 {
		t.Errorf("expected chr1 of length 40, got %d (found: %t)", size, found)
	}
	if size, found := idx.Size("chr2"); !found || size != 12 {
		t.Errorf("expected chr2 of length 12, got %d (found: %t)", size, found)
	}
	if _, found := idx.Size("chrM"); found {
		t.Error("chrM should not be found")
	}

	names := idx.Names()
	if len(names) != 2 || names[0] != "chr1" || names[1] != "chr2" {
		t.Errorf("unexpected contig names: %v", names)
	}

	expected := "chr1\t40\t6\t40\t41\nchr2\t12\t53\t12\t13\n"
	if idx.String() != expected {
		t.Errorf("index does not round trip:\n%s", idx.String())
	}
}

func TestReadIndexMalformed(t *testing.T) {
	tests := []string{
		"chr1\t40\t6\t40\n",
		"chr1\t40\t6\tforty\t41\n",
		"chr1\t40\t6\t40\t41\nchr1\t12\t53\t12\t13\n",
	}
	dir := t.TempDir()
	for i, test := range tests {
		file := filepath.Join(dir, "bad.fai")
		if err := os.WriteFile(file, []byte(test), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := ReadIndex(file); err == nil {
			t.Errorf("test %d: expected error reading %q", i, test)
		}
	}
}
