package detector

import "testing"

func TestDetector_IsLikelyUrdu(t *testing.T) {
	d := New()

	if !d.IsLikelyUrdu("مشکلات میں بھی خوشی تلاش کرو، یہ تمہیں مضبوط بنائے گا۔") {
		t.Error("expected Urdu sentence to classify as Urdu")
	}
}

func TestDetector_IsLikelyUrdu_English(t *testing.T) {
	d := New()

	if d.IsLikelyUrdu("Find happiness even in difficulties.") {
		t.Error("expected English sentence not to classify as Urdu")
	}
}

func TestDetector_IsLikelyUrdu_Empty(t *testing.T) {
	d := New()

	if d.IsLikelyUrdu("") {
		t.Error("expected empty text not to classify as Urdu")
	}
}

func TestDetector_Detect_Empty(t *testing.T) {
	d := New()

	_, ok := d.Detect("")
	if ok {
		t.Error("expected no detection for empty text")
	}
}
