package domain

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestRunResult_RecordDeletion(t *testing.T) {
	target, err := NewReclaimTarget("/data", 10)
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunResult(target, time.Now())
	r.FreeBytesBefore = 100

	r.RecordDeletion(DeletedDirectory{Name: "a", SizeBytes: 300, FreeBytesAfter: 400})
	r.RecordDeletion(DeletedDirectory{Name: "b", SizeBytes: 700, FreeBytesAfter: 1100})

	if r.DirectoriesDeleted != 2 || len(r.Deleted) != 2 {
		t.Errorf("DirectoriesDeleted = %d, len(Deleted) = %d, want 2", r.DirectoriesDeleted, len(r.Deleted))
	}
	if r.BytesFreed != 1000 {
		t.Errorf("BytesFreed = %d, want 1000", r.BytesFreed)
	}
	if r.FreeBytesAfter != 1100 {
		t.Errorf("FreeBytesAfter = %d, want 1100", r.FreeBytesAfter)
	}
	if r.TargetPath != "/data" || r.ThresholdBytes != 10<<30 {
		t.Errorf("target = %s, %d", r.TargetPath, r.ThresholdBytes)
	}
}

func TestRunResult_Summary(t *testing.T) {
	r := &RunResult{
		DirectoriesDeleted: 2,
		BytesFreed:         30 << 30,
		Elapsed:            1500 * time.Millisecond,
	}

	want := "Directories deleted: 2\n" +
		"Space freed: 32212254720 bytes, 31457280 KiB, 30720 MiB, 30 GiB (30 GiB)\n" +
		"Elapsed: 1500 ms, 1 s"
	if got := r.Summary(); got != want {
		t.Errorf("Summary() =\n%s\nwant\n%s", got, want)
	}
}

func TestVolumeState_Satisfies(t *testing.T) {
	tests := []struct {
		name      string
		free      uint64
		threshold int64
		want      bool
	}{
		{"zero threshold", 0, 0, true},
		{"equal", 100, 100, true},
		{"above", 101, 100, true},
		{"below", 99, 100, false},
		{"free beyond int64", math.MaxUint64, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (VolumeState{Free: tt.free}).Satisfies(tt.threshold); got != tt.want {
				t.Errorf("Satisfies() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewReclaimTarget(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		gib     int64
		wantErr error
	}{
		{"valid", "/data", 100, nil},
		{"zero threshold", "/data", 0, nil},
		{"missing path", "", 100, ErrPathRequired},
		{"negative threshold", "/data", -1, ErrInvalidThreshold},
		{"overflowing threshold", "/data", 1 << 40, ErrInvalidThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := NewReclaimTarget(tt.path, tt.gib)
			if tt.wantErr != nil {
				if !IsConfigurationError(err) || !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewReclaimTarget() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewReclaimTarget() error = %v", err)
			}
			if target.Path() != tt.path || target.ThresholdBytes() != tt.gib*1024*1024*1024 {
				t.Errorf("target = %s, %d", target.Path(), target.ThresholdBytes())
			}
			if target.Threshold().GiB() != tt.gib {
				t.Errorf("Threshold().GiB() = %d, want %d", target.Threshold().GiB(), tt.gib)
			}
		})
	}
}
