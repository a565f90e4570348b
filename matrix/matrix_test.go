package matrix

import "testing"

func TestDenseStoreSetAt(t *testing.T) {
	t.Parallel()
	d := NewDenseStore(3)
	d.Set(1, 2, 5)
	if got := d.At(1, 2); got != 5 {
		t.Errorf("At(1,2) = %g, want 5", got)
	}
	if got := d.At(0, 0); got != 0 {
		t.Errorf("At(0,0) = %g, want 0", got)
	}
	lo, hi := d.RowRange(1)
	if lo != 0 || hi != 2 {
		t.Errorf("RowRange(1) = (%d,%d), want (0,2)", lo, hi)
	}
}

func TestDenseStoreZero(t *testing.T) {
	t.Parallel()
	d := NewDenseStore(2)
	d.Set(0, 1, 3)
	d.Zero()
	if got := d.At(0, 1); got != 0 {
		t.Errorf("At(0,1) after Zero = %g, want 0", got)
	}
}

func TestBandStoreSetAt(t *testing.T) {
	t.Parallel()
	b := NewBandStore(5, 1, 1)
	for i := 0; i < 5; i++ {
		b.Set(i, i, 2)
		if i > 0 {
			b.Set(i, i-1, -1)
		}
		if i < 4 {
			b.Set(i, i+1, -1)
		}
	}
	for i := 0; i < 5; i++ {
		if got := b.At(i, i); got != 2 {
			t.Errorf("At(%d,%d) = %g, want 2", i, i, got)
		}
	}
	if got := b.At(0, 4); got != 0 {
		t.Errorf("At(0,4) (outside band) = %g, want 0", got)
	}
}

func TestBandStoreSetOutsideBandPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("Set outside band did not panic")
		}
	}()
	b := NewBandStore(5, 1, 1)
	b.Set(0, 4, 1)
}

func TestBandStoreRanges(t *testing.T) {
	t.Parallel()
	b := NewBandStore(5, 1, 2)
	lo, hi := b.RowRange(2)
	if lo != 1 || hi != 4 {
		t.Errorf("RowRange(2) = (%d,%d), want (1,4)", lo, hi)
	}
	lo, hi = b.ColRange(2)
	if lo != 0 || hi != 3 {
		t.Errorf("ColRange(2) = (%d,%d), want (0,3)", lo, hi)
	}
}

func TestBandStoreZero(t *testing.T) {
	t.Parallel()
	b := NewBandStore(3, 1, 1)
	b.Set(0, 0, 4)
	b.Zero()
	if got := b.At(0, 0); got != 0 {
		t.Errorf("At(0,0) after Zero = %g, want 0", got)
	}
}
