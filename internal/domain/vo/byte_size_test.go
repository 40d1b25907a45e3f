package vo

import (
	"errors"
	"math"
	"testing"
)

func TestByteSizeFromGiB(t *testing.T) {
	tests := []struct {
		name    string
		gib     int64
		want    int64
		wantErr error
	}{
		{"zero", 0, 0, nil},
		{"one", 1, 1073741824, nil},
		{"hundred", 100, 107374182400, nil},
		{"largest", math.MaxInt64 / GiB, (math.MaxInt64 / GiB) * GiB, nil},
		{"overflow", math.MaxInt64/GiB + 1, 0, ErrSizeOverflow},
		{"negative", -1, 0, ErrNegativeSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ByteSizeFromGiB(tt.gib)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ByteSizeFromGiB() error = %v, want %v", err, tt.wantErr)
			}
			if got.Bytes() != tt.want {
				t.Errorf("Bytes() = %d, want %d", got.Bytes(), tt.want)
			}
		})
	}
}

func TestByteSize_Units(t *testing.T) {
	bs := MustByteSize(3*GiB + 512*MiB)

	if bs.GiB() != 3 {
		t.Errorf("GiB() = %d, want 3", bs.GiB())
	}
	if bs.MiB() != 3584 {
		t.Errorf("MiB() = %d, want 3584", bs.MiB())
	}
	if bs.KiB() != 3584*1024 {
		t.Errorf("KiB() = %d, want %d", bs.KiB(), 3584*1024)
	}
	if got := bs.String(); got != "3.5 GiB" {
		t.Errorf("String() = %q, want %q", got, "3.5 GiB")
	}
}

func TestByteSize_Compare(t *testing.T) {
	small := MustByteSize(10)
	large := MustByteSize(20)

	if !large.AtLeast(small) || !small.AtLeast(small) || small.AtLeast(large) {
		t.Error("AtLeast() returned unexpected results")
	}
}

func TestNewByteSize_Negative(t *testing.T) {
	if _, err := NewByteSize(-1); !errors.Is(err, ErrNegativeSize) {
		t.Errorf("NewByteSize(-1) error = %v, want ErrNegativeSize", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustByteSize(-1) did not panic")
		}
	}()
	MustByteSize(-1)
}

func TestByteSizeFromUint64_Clamps(t *testing.T) {
	if got := ByteSizeFromUint64(math.MaxUint64).Bytes(); got != math.MaxInt64 {
		t.Errorf("Bytes() = %d, want MaxInt64", got)
	}
	if got := ByteSizeFromUint64(5).Bytes(); got != 5 {
		t.Errorf("Bytes() = %d, want 5", got)
	}
}
