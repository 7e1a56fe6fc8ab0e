package immosim

import "testing"

func TestFetchEuribor_UnknownTenor(t *testing.T) {
	if _, err := FetchEuribor("2W"); err == nil {
		t.Error("FetchEuribor() accepted an unknown tenor")
	}
}

func TestSuggestInterestRate_NegativeMargin(t *testing.T) {
	if _, err := SuggestInterestRate("3M", -1); err == nil {
		t.Error("SuggestInterestRate() accepted a negative margin")
	}
}
