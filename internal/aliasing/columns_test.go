package aliasing

import "testing"

func TestColumnUINameBijection(t *testing.T) {
	for _, field := range RecognisedFields() {
		ui := UIName(field)

		snake, ok := SnakeName(ui)
		if !ok {
			t.Fatalf("UIName(%q) = %q has no reverse mapping", field, ui)
		}

		if snake != field {
			t.Fatalf("bijection broken: field %q -> ui %q -> field %q", field, ui, snake)
		}
	}
}

func TestIsRecognised(t *testing.T) {
	if !IsRecognised(FieldLatitude) {
		t.Errorf("expected %q to be recognised", FieldLatitude)
	}

	if IsRecognised("not_a_field") {
		t.Errorf("expected unrecognised field to report false")
	}
}

func TestRequiredFields(t *testing.T) {
	want := map[string]bool{
		FieldCollectionDay:   true,
		FieldCollectionMonth: true,
		FieldCollectionYear:  true,
		FieldLatitude:        true,
		FieldLongitude:       true,
		FieldHostSpecies:     true,
	}

	if len(RequiredFields) != len(want) {
		t.Fatalf("expected %d required fields, got %d", len(want), len(RequiredFields))
	}

	for _, f := range RequiredFields {
		if !want[f] {
			t.Errorf("unexpected required field %q", f)
		}
	}
}

func TestIsDisallowedHostSpecies(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"Homo Sapiens", true},
		{"homo sapien", true},
		{"HUMAN", true},
		{"Panthera leo", false},
	}

	for _, tt := range tests {
		if got := IsDisallowedHostSpecies(tt.value); got != tt.want {
			t.Errorf("IsDisallowedHostSpecies(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestValueVocabularies(t *testing.T) {
	if !IsValidDetectionOutcome("Positive") {
		t.Errorf("expected Positive to be valid")
	}

	if IsValidDetectionOutcome("maybe") {
		t.Errorf("expected maybe to be invalid")
	}

	if !IsValidOrganismSex("FEMALE") {
		t.Errorf("expected FEMALE to be valid")
	}

	if !IsValidDeadOrAlive("dead") {
		t.Errorf("expected dead to be valid")
	}
}
