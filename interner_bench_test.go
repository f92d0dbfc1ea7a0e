package hashintern

import (
	"testing"

	"github.com/hupe1980/hashintern/hasher"
	"github.com/hupe1980/hashintern/testutil"
)

const (
	benchWords   = 100_000
	benchWordLen = 5
)

var benchInput = testutil.Words(benchWords, benchWordLen)

func filled(b *testing.B, opts ...Option) (*StringInterner, []Symbol) {
	b.Helper()
	in := NewString(opts...)
	syms := make([]Symbol, len(benchInput))
	for i, w := range benchInput {
		syms[i] = in.MustGetOrIntern(w)
	}
	return in, syms
}

func BenchmarkInternFillEmpty(b *testing.B) {
	b.Run("new", func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			in := NewString()
			for _, w := range benchInput {
				in.MustGetOrIntern(w)
			}
		}
	})

	b.Run("with_capacity", func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			in := NewString(WithCapacity(benchWords, benchWords*benchWordLen))
			for _, w := range benchInput {
				in.MustGetOrIntern(w)
			}
		}
	})
}

func BenchmarkInternAlreadyFilled(b *testing.B) {
	for _, h := range []hasher.Hasher{hasher.XXHash{}, hasher.NewMaphash(), hasher.FNV1a{}} {
		b.Run(h.Name(), func(b *testing.B) {
			in, _ := filled(b, WithHasher(h))
			b.ReportAllocs()
			for b.Loop() {
				for _, w := range benchInput {
					in.MustGetOrIntern(w)
				}
			}
		})
	}
}

func BenchmarkResolve(b *testing.B) {
	in, syms := filled(b)

	b.Run("checked", func(b *testing.B) {
		for b.Loop() {
			for _, s := range syms {
				if _, ok := in.Resolve(s); !ok {
					b.Fatal("unresolved symbol")
				}
			}
		}
	})

	b.Run("unchecked", func(b *testing.B) {
		for b.Loop() {
			for _, s := range syms {
				_ = in.ResolveUnchecked(s)
			}
		}
	})
}

func BenchmarkGetHash(b *testing.B) {
	in, syms := filled(b)

	for b.Loop() {
		for _, s := range syms {
			_ = in.GetHashUnchecked(s)
		}
	}
}

func BenchmarkGet(b *testing.B) {
	in, _ := filled(b)

	for b.Loop() {
		for _, w := range benchInput {
			if _, ok := in.Get(w); !ok {
				b.Fatal("missing value")
			}
		}
	}
}

func BenchmarkIter(b *testing.B) {
	in, _ := filled(b)

	for b.Loop() {
		n := 0
		for range in.All() {
			n++
		}
		if n != benchWords {
			b.Fatal("short iteration")
		}
	}
}
