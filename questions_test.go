package main

import "testing"

func TestNormalizeAnswers(t *testing.T) {
	answers := normalizeAnswers([]Answer{
		{Text: "Toast", Points: 10},
		{Text: "   ", Points: 99},
		{Text: "Eggs", Points: 40, Revealed: true},
		{Text: "", Points: 50},
		{Text: "Cereal", Points: 25},
	})

	if len(answers) != 3 {
		t.Fatalf("expected blank answers dropped, got %d", len(answers))
	}
	if answers[0].Text != "Eggs" || answers[1].Text != "Cereal" || answers[2].Text != "Toast" {
		t.Errorf("expected points-descending order, got %+v", answers)
	}
	for _, a := range answers {
		if a.Revealed {
			t.Errorf("answer %q should come back covered", a.Text)
		}
	}
}

func TestNextQuestionID(t *testing.T) {
	t.Run("empty bank starts at 1", func(t *testing.T) {
		if got := nextQuestionID(nil); got != 1 {
			t.Errorf("expected 1, got %d", got)
		}
	})

	t.Run("max plus one", func(t *testing.T) {
		bank := []Question{{ID: 3}, {ID: 7}, {ID: 2}}
		if got := nextQuestionID(bank); got != 8 {
			t.Errorf("expected 8, got %d", got)
		}
	})

	t.Run("fast money variant", func(t *testing.T) {
		bank := []FastMoneyQuestion{{ID: 5}}
		if got := nextFastMoneyID(bank); got != 6 {
			t.Errorf("expected 6, got %d", got)
		}
	})
}

func TestCoverQuestions(t *testing.T) {
	original := []Question{
		{ID: 1, Text: "q", Answers: []Answer{
			{Text: "Dog", Points: 45, Revealed: true},
		}},
	}

	covered := coverQuestions(original)

	if covered[0].Answers[0].Revealed {
		t.Error("expected revealed flag cleared")
	}
	if !original[0].Answers[0].Revealed {
		t.Error("input slice was mutated")
	}
}

func TestSeedBanks(t *testing.T) {
	questions := seedQuestions()
	if len(questions) == 0 {
		t.Fatal("expected seed questions")
	}
	for _, q := range questions {
		if q.Text == "" || len(q.Answers) == 0 {
			t.Errorf("incomplete seed question %d", q.ID)
		}
	}

	fastMoney := seedFastMoneyQuestions()
	if len(fastMoney) < fastMoneyQuestionCount {
		t.Fatalf("need at least %d fast money seeds, got %d", fastMoneyQuestionCount, len(fastMoney))
	}
}
