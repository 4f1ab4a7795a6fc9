package images

import "testing"

func TestValidate(t *testing.T) {
	p := testPolicy()
	cases := []struct {
		name      string
		mediaType string
		size      int64
		wantOK    bool
	}{
		{"jpeg under max", "image/jpeg", 1024, true},
		{"png at max", "image/png", p.MaxUploadBytes, true},
		{"svg allowed", "image/svg+xml", 512, true},
		{"webp allowed", "image/webp", 512, true},
		{"over max", "image/jpeg", p.MaxUploadBytes + 1, false},
		{"empty file", "image/jpeg", 0, false},
		{"negative size", "image/jpeg", -5, false},
		{"not an image", "application/pdf", 1024, false},
		{"unknown image subtype", "image/x-unheard-of", 1024, false},
		{"empty type", "", 1024, false},
	}
	for _, tc := range cases {
		err := Validate(UploadCandidate{Name: "f", MediaType: tc.mediaType, Size: tc.size}, p)
		if tc.wantOK && err != nil {
			t.Errorf("%s: unexpected reject: %v", tc.name, err)
		}
		if !tc.wantOK && err == nil {
			t.Errorf("%s: expected reject", tc.name)
		}
	}
}

func TestValidateReturnsValidationError(t *testing.T) {
	err := Validate(UploadCandidate{MediaType: "text/plain", Size: 10}, testPolicy())
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
}
