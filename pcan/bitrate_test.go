package pcan

import (
	"errors"
	"syscall"
	"testing"
)

func TestParseFDInit(t *testing.T) {
	init, err := parseFDInit("f_clock=80000000,nom_brp=10,nom_tseg1=5,nom_tseg2=2,nom_sjw=1,data_brp=4,data_tseg1=7,data_tseg2=2,data_sjw=1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if init.ClockHz != 80000000 {
		t.Errorf("clock = %d", init.ClockHz)
	}
	if init.Nominal.Bitrate != 1000000 {
		t.Errorf("nominal bit rate = %d, want 1000000", init.Nominal.Bitrate)
	}
	if init.Data.Bitrate != 2000000 {
		t.Errorf("data bit rate = %d, want 2000000", init.Data.Bitrate)
	}
	if init.Nominal.SamplePoint != 7500 {
		t.Errorf("nominal sample point = %d, want 7500", init.Nominal.SamplePoint)
	}

	init, err = parseFDInit(" f_clock_mhz = 20 , nom_brp=5, junk, nom_tseg1=2, nom_tseg2=1, data_brp=x")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if init.ClockHz != 20000000 || init.Nominal.BRP != 5 || init.Data.BRP != 0 {
		t.Errorf("unexpected init %+v", init)
	}
	if init.Nominal.Bitrate != 1000000 {
		t.Errorf("nominal bit rate = %d, want 1000000", init.Nominal.Bitrate)
	}
	if init.Data.Bitrate != 0 {
		t.Errorf("data bit rate of incomplete timing = %d", init.Data.Bitrate)
	}

	if _, err := parseFDInit("  "); !errors.Is(err, syscall.EINVAL) {
		t.Errorf("empty string: got %v, want EINVAL", err)
	}
}

func TestBTR0BTR1ToInit(t *testing.T) {
	tests := []struct {
		code TPCANBaudrate
		want uint32
	}{
		{PCAN_BAUD_1M, 1000000},
		{PCAN_BAUD_500K, 500000},
	}
	for _, tt := range tests {
		init := btr0btr1ToInit(tt.code)
		if init.Nominal.Bitrate != tt.want {
			t.Errorf("btr0btr1ToInit(0x%04X) bit rate = %d, want %d", tt.code, init.Nominal.Bitrate, tt.want)
		}
		if init.ClockHz != btr0btr1ClockHz {
			t.Errorf("clock = %d", init.ClockHz)
		}
	}
}

func TestParseBaudrate(t *testing.T) {
	tests := map[string]TPCANBaudrate{
		"500k":   PCAN_BAUD_500K,
		"1M":     PCAN_BAUD_1M,
		" 125K ": PCAN_BAUD_125K,
		"0x011C": PCAN_BAUD_250K,
	}
	for in, want := range tests {
		if got, ok := ParseBaudrate(in); !ok || got != want {
			t.Errorf("ParseBaudrate(%q) = 0x%04X %v, want 0x%04X", in, got, ok, want)
		}
	}
	for _, in := range []string{"", "400k", "0xZZ"} {
		if _, ok := ParseBaudrate(in); ok {
			t.Errorf("ParseBaudrate(%q) succeeded", in)
		}
	}
}
