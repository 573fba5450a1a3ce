package model

import "testing"

func TestStringListValueScan(t *testing.T) {
	list := StringList{"loops", "functions"}

	v, err := list.Value()
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}

	var scanned StringList
	if err := scanned.Scan(v); err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(scanned) != 2 || scanned[0] != "loops" || scanned[1] != "functions" {
		t.Errorf("scanned = %v, want original list", scanned)
	}
}

func TestStringListNilValue(t *testing.T) {
	var list StringList
	v, err := list.Value()
	if err != nil {
		t.Fatalf("Value() error: %v", err)
	}
	if v != "[]" {
		t.Errorf("Value() = %v, want empty JSON array", v)
	}
}

func TestStringListScanEdgeCases(t *testing.T) {
	var list StringList
	if err := list.Scan(nil); err != nil || list != nil {
		t.Errorf("Scan(nil) = %v, list = %v; want nil, nil", err, list)
	}
	if err := list.Scan([]byte(`["a"]`)); err != nil || len(list) != 1 {
		t.Errorf("Scan(bytes) = %v, list = %v", err, list)
	}
	if err := list.Scan(42); err == nil {
		t.Error("Scan(int) should fail")
	}
}

func TestValidStudentLevel(t *testing.T) {
	for _, level := range StudentLevels {
		if !ValidStudentLevel(level) {
			t.Errorf("ValidStudentLevel(%q) = false", level)
		}
	}
	if ValidStudentLevel("advanced") {
		t.Error(`ValidStudentLevel("advanced") = true, want false`)
	}
	if ValidStudentLevel("") {
		t.Error(`ValidStudentLevel("") = true, want false`)
	}
}
