package lexicon

import (
	"reflect"
	"testing"
)

func TestLookup_ChestPainIsHigh(t *testing.T) {
	lex := DefaultSymptomLexicon()

	inputs := []string{
		"chest pain",
		"I have had CHEST PAIN since this morning",
		"chest pain and a mild headache",
		"cough, fever and chest pain",
	}

	for _, input := range inputs {
		got := lex.Lookup(input)
		if got.Urgency != UrgencyHigh {
			t.Errorf("Lookup(%q).Urgency = %v, want High", input, got.Urgency)
		}
		if got.Confidence != 0.92 {
			t.Errorf("Lookup(%q).Confidence = %v, want 0.92", input, got.Confidence)
		}
	}
}

func TestLookup_NoMatchReturnsFallback(t *testing.T) {
	lex := DefaultSymptomLexicon()

	for _, input := range []string{"", "   ", "my knee hurts", "chest-pain", "head ache"} {
		got := lex.Lookup(input)
		want := Fallback()
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Lookup(%q) = %+v, want fallback %+v", input, got, want)
		}
	}
}

func TestLookup_HeadacheAndFever(t *testing.T) {
	lex := DefaultSymptomLexicon()

	got := lex.Lookup("I have a severe headache and fever")

	wantConditions := []string{
		"Migraine", "Tension Headache", "Sinusitis",
		"Viral Infection", "Bacterial Infection", "Inflammation",
	}
	if !reflect.DeepEqual(got.Conditions, wantConditions) {
		t.Errorf("Conditions = %v, want %v", got.Conditions, wantConditions)
	}
	if got.Confidence != 0.87 {
		t.Errorf("Confidence = %v, want 0.87", got.Confidence)
	}
	if got.Urgency != UrgencyMedium {
		t.Errorf("Urgency = %v, want Medium", got.Urgency)
	}
	if !reflect.DeepEqual(got.MatchedKeywords, []string{"headache", "fever"}) {
		t.Errorf("MatchedKeywords = %v", got.MatchedKeywords)
	}
}

func TestLookup_ConditionsFollowTableOrder(t *testing.T) {
	lex := DefaultSymptomLexicon()

	// Text order is fever before headache; table order wins.
	got := lex.Lookup("fever, then a headache")
	if got.Conditions[0] != "Migraine" {
		t.Errorf("first condition = %q, want Migraine", got.Conditions[0])
	}
}

func TestLookup_DuplicatesAreKept(t *testing.T) {
	lex := NewSymptomLexicon([]SymptomRecord{
		{Keyword: "rash", Conditions: []string{"Allergy", "Eczema"}, Confidence: 0.6, Urgency: UrgencyLow},
		{Keyword: "itch", Conditions: []string{"Allergy"}, Confidence: 0.7, Urgency: UrgencyLow},
	})

	got := lex.Lookup("itchy rash")
	want := []string{"Allergy", "Eczema", "Allergy"}
	if !reflect.DeepEqual(got.Conditions, want) {
		t.Errorf("Conditions = %v, want %v", got.Conditions, want)
	}
}

func TestLookup_UrgencyNeverDowngrades(t *testing.T) {
	lex := NewSymptomLexicon([]SymptomRecord{
		{Keyword: "a", Conditions: []string{"A"}, Confidence: 0.1, Urgency: UrgencyHigh},
		{Keyword: "b", Conditions: []string{"B"}, Confidence: 0.2, Urgency: UrgencyLow},
		{Keyword: "c", Conditions: []string{"C"}, Confidence: 0.3, Urgency: UrgencyMedium},
	})

	for _, input := range []string{"a", "ab", "abc", "ca", "bca"} {
		if got := lex.Lookup(input); got.Urgency != UrgencyHigh {
			t.Errorf("Lookup(%q).Urgency = %v, want High", input, got.Urgency)
		}
	}
	if got := lex.Lookup("bc"); got.Urgency != UrgencyMedium {
		t.Errorf("Lookup(bc).Urgency = %v, want Medium", got.Urgency)
	}
}

func TestLookup_UnicodeCaseFolding(t *testing.T) {
	lex := NewSymptomLexicon([]SymptomRecord{
		{Keyword: "Übelkeit", Conditions: []string{"Gastritis"}, Confidence: 0.6, Urgency: UrgencyLow},
	})

	got := lex.Lookup("starke ÜBELKEIT seit gestern")
	if len(got.MatchedKeywords) != 1 {
		t.Fatalf("expected a match, got %+v", got)
	}
}

func TestLookup_DoesNotAliasTable(t *testing.T) {
	lex := DefaultSymptomLexicon()

	got := lex.Lookup("headache")
	got.Conditions[0] = "changed"

	again := lex.Lookup("headache")
	if again.Conditions[0] != "Migraine" {
		t.Errorf("lookup result aliases the table: %v", again.Conditions)
	}

	fb := lex.Lookup("nothing")
	fb.Conditions[0] = "changed"
	if Fallback().Conditions[0] != FallbackCondition {
		t.Error("fallback record was mutated")
	}
}
