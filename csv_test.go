package main

import (
	"reflect"
	"strings"
	"testing"
)

func TestEscapeCSVField(t *testing.T) {
	cases := []struct {
		name  string
		field string
		want  string
	}{
		{"plain", "Dog", "Dog"},
		{"comma", "red, white and blue", `"red, white and blue"`},
		{"quote", `say "cheese"`, `"say ""cheese"""`},
		{"newline", "line one\nline two", "\"line one\nline two\""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := escapeCSVField(tc.field); got != tc.want {
				t.Errorf("escapeCSVField(%q) = %q, want %q", tc.field, got, tc.want)
			}
		})
	}
}

func TestExportQuestionsCSV(t *testing.T) {
	questions := []Question{
		{ID: 1, Text: "Name a popular pet", Answers: []Answer{
			{Text: "Dog", Points: 45},
			{Text: "Cat", Points: 30},
		}},
	}

	doc := ExportQuestionsCSV(questions)
	lines := strings.Split(strings.TrimRight(doc, "\n"), "\n")

	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if lines[0] != csvHeader {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if lines[1] != "1,Name a popular pet,Dog,45,Cat,30,,,,,," {
		t.Errorf("unexpected row: %q", lines[1])
	}
}

func TestCSVRoundTrip(t *testing.T) {
	t.Run("plain fields", func(t *testing.T) {
		questions := []Question{
			{ID: 1, Text: "Name a popular pet", Answers: []Answer{
				{Text: "Dog", Points: 45},
				{Text: "Cat", Points: 30},
			}},
			{ID: 2, Text: "Name a sport", Answers: []Answer{
				{Text: "Football", Points: 50},
			}},
		}

		parsed, err := ParseQuestionsCSV(ExportQuestionsCSV(questions))
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if !reflect.DeepEqual(parsed, questions) {
			t.Errorf("round trip mismatch:\n got %+v\nwant %+v", parsed, questions)
		}
	})

	t.Run("quoted fields", func(t *testing.T) {
		questions := []Question{
			{ID: 1, Text: `Name a "famous" person, living or dead`, Answers: []Answer{
				{Text: "Lincoln, Abraham", Points: 40},
			}},
		}

		parsed, err := ParseQuestionsCSV(ExportQuestionsCSV(questions))
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if !reflect.DeepEqual(parsed, questions) {
			t.Errorf("round trip mismatch:\n got %+v\nwant %+v", parsed, questions)
		}
	})
}

func TestParseQuestionsCSVErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"empty document", ""},
		{"wrong header", "a,b,c\n1,q,Dog,45"},
		{"bad question number", csvHeader + "\nx,q,Dog,45"},
		{"bad points", csvHeader + "\n1,q,Dog,many"},
		{"unterminated quote", csvHeader + "\n1,\"q,Dog,45"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseQuestionsCSV(tc.doc); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestExportCombinedCSV(t *testing.T) {
	questions := []Question{
		{ID: 1, Text: "Name a popular pet", Answers: []Answer{{Text: "Dog", Points: 45}}},
	}
	fastMoney := []FastMoneyQuestion{
		{ID: 1, Text: "Name a color", Answers: []FastMoneyAnswer{{Text: "Blue", Points: 40}}},
	}

	t.Run("both banks with markers", func(t *testing.T) {
		doc := ExportCombinedCSV(questions, fastMoney)

		regularAt := strings.Index(doc, regularSectionMarker)
		fastAt := strings.Index(doc, fastMoneySectionMarker)
		if regularAt == -1 || fastAt == -1 || fastAt < regularAt {
			t.Fatalf("markers missing or out of order:\n%s", doc)
		}
		if !strings.Contains(doc, "1,Name a popular pet,Dog,45") {
			t.Errorf("regular row missing:\n%s", doc)
		}
		if !strings.Contains(doc, "1,Name a color,Blue,40") {
			t.Errorf("fast money row missing:\n%s", doc)
		}
	})

	t.Run("empty banks are omitted", func(t *testing.T) {
		doc := ExportCombinedCSV(nil, fastMoney)
		if strings.Contains(doc, regularSectionMarker) {
			t.Error("regular marker should be omitted for an empty bank")
		}
		if !strings.Contains(doc, fastMoneySectionMarker) {
			t.Error("fast money marker missing")
		}

		if got := ExportCombinedCSV(nil, nil); got != "" {
			t.Errorf("expected empty document, got %q", got)
		}
	})
}
