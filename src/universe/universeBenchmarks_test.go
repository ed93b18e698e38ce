package universe

import (
	"fmt"
	"testing"
)

var testTemplate = []Coord{{1, 1}, {1, 2}, {2, 1}, {2, 2}, {3, 3}, {4, 2}, {4, 3}, {5, 3}}

func newBenchUniverse(b *testing.B, size uint32) *Universe {
	u := New()
	if err := u.SetWidth(size); err != nil {
		b.Fatal(err)
	}
	if err := u.SetHeight(size); err != nil {
		b.Fatal(err)
	}
	return u
}

func Benchmark_Tick(b *testing.B) {
	for _, size := range []uint32{64, 200, 512} {
		b.Run(fmt.Sprintf("%vx%v", size, size), func(b *testing.B) {
			u := newBenchUniverse(b, size)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				u.Clear()
				_ = u.SetCells(testTemplate)
				b.StartTimer()
				u.Tick()
			}
		})
	}
}

func Benchmark_DefaultRun(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		u := New()
		for step := 0; step < 100; step++ {
			u.Tick()
		}
	}
}
