package band

import "testing"

func TestIndexRoundTrip(t *testing.T) {
	t.Parallel()
	for _, dims := range []struct{ n, ml, mu int }{
		{5, 1, 1},
		{8, 2, 1},
		{10, 0, 3},
		{3, 2, 2},
	} {
		n, ml, mu := dims.n, dims.ml, dims.mu
		seen := make(map[int]struct{})
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				row, ok := Index(i, j, ml, mu)
				if !InBand(i, j, ml, mu) != !ok {
					t.Fatalf("InBand/Index disagree at i=%d j=%d", i, j)
				}
				if !ok {
					continue
				}
				if row < 0 || row >= Ldab(ml, mu) {
					t.Fatalf("row %d out of [0,%d) for i=%d j=%d", row, Ldab(ml, mu), i, j)
				}
				key := j*Ldab(ml, mu) + row
				if _, dup := seen[key]; dup {
					t.Fatalf("physical slot (row=%d,col=%d) reused", row, j)
				}
				seen[key] = struct{}{}
			}
		}
	}
}

func TestWidth(t *testing.T) {
	t.Parallel()
	if got, want := Width(1, 2), 2*1+2+1; got != want {
		t.Errorf("Width(1,2) = %d, want %d", got, want)
	}
	if got, want := Ldab(1, 2), 1+2+1; got != want {
		t.Errorf("Ldab(1,2) = %d, want %d", got, want)
	}
}
