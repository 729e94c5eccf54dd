package flatpack

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func BenchmarkPack(b *testing.B) {
	cases := []struct {
		name      string
		fileCount int
		fileSize  int
	}{
		{name: "files=128/size=16k", fileCount: 128, fileSize: 16 << 10},
		{name: "files=8/size=4m", fileCount: 8, fileSize: 4 << 20},
	}

	for _, bc := range cases {
		b.Run(bc.name, func(b *testing.B) {
			dir := b.TempDir()
			paths := makeBenchFiles(b, filepath.Join(dir, "src"), bc.fileCount, bc.fileSize)
			b.SetBytes(int64(bc.fileCount * bc.fileSize))

			a := NewArchive()
			for _, p := range paths {
				if err := a.Put(p); err != nil {
					b.Fatal(err)
				}
			}
			dest := filepath.Join(dir, "bench.arch")

			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				if _, err := a.Pack(context.Background(), dest); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkUnpack(b *testing.B) {
	cases := []struct {
		name      string
		fileCount int
		fileSize  int
	}{
		{name: "files=128/size=16k", fileCount: 128, fileSize: 16 << 10},
		{name: "files=8/size=4m", fileCount: 8, fileSize: 4 << 20},
	}

	for _, bc := range cases {
		b.Run(bc.name, func(b *testing.B) {
			dir := b.TempDir()
			paths := makeBenchFiles(b, filepath.Join(dir, "src"), bc.fileCount, bc.fileSize)
			b.SetBytes(int64(bc.fileCount * bc.fileSize))

			a := NewArchive()
			for _, p := range paths {
				if err := a.Put(p); err != nil {
					b.Fatal(err)
				}
			}
			src := filepath.Join(dir, "bench.arch")
			if _, err := a.Pack(context.Background(), src); err != nil {
				b.Fatal(err)
			}
			dest := filepath.Join(dir, "out")

			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				if err := Unpack(context.Background(), src, dest); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func makeBenchFiles(b *testing.B, dir string, fileCount, fileSize int) []string {
	b.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		b.Fatal(err)
	}
	paths := make([]string, 0, fileCount)
	rng := rand.New(rand.NewSource(1)) //nolint:gosec // reproducible benchmark content
	for i := range fileCount {
		path := filepath.Join(dir, fmt.Sprintf("file%05d.dat", i))
		content := make([]byte, fileSize)
		if _, err := rng.Read(content); err != nil {
			b.Fatal(err)
		}
		if err := os.WriteFile(path, content, 0o644); err != nil {
			b.Fatal(err)
		}
		paths = append(paths, path)
	}
	return paths
}
