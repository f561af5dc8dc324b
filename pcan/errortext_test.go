package pcan

import "testing"

func TestErrorText(t *testing.T) {
	status, text := errorText(PCAN_ERROR_QRCVEMPTY, LANG_GERMAN)
	if status != PCAN_ERROR_OK || text != "Empfangswarteschlange ist leer." {
		t.Errorf("german text = 0x%x %q", status, text)
	}
	_, english := errorText(PCAN_ERROR_QRCVEMPTY, LANG_ENGLISH)
	if _, text := errorText(PCAN_ERROR_QRCVEMPTY, 0x42); text != english {
		t.Errorf("unknown language text = %q, want %q", text, english)
	}
	if status, _ := errorText(0x12345, LANG_ENGLISH); status != PCAN_ERROR_ILLPARAMVAL {
		t.Errorf("unknown status = 0x%x, want ILLPARAMVAL", status)
	}
}
