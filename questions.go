package main

import (
	"sort"
	"strings"
)

// Answer is a single ranked survey answer on a regular question.
type Answer struct {
	Text     string `json:"text"`
	Points   int    `json:"points"`
	Revealed bool   `json:"revealed"`
}

// Question is a regular round question with its ranked answers,
// sorted by points descending.
type Question struct {
	ID      int      `json:"id"`
	Text    string   `json:"question"`
	Answers []Answer `json:"answers"`
}

// FastMoneyAnswer has no revealed flag; fast money answers are never
// shown on the board one at a time.
type FastMoneyAnswer struct {
	Text   string `json:"text"`
	Points int    `json:"points"`
}

type FastMoneyQuestion struct {
	ID      int               `json:"id"`
	Text    string            `json:"question"`
	Answers []FastMoneyAnswer `json:"answers"`
}

// SoundSettings maps each logical sound channel to a media URL.
type SoundSettings struct {
	WrongAnswer   string `json:"wrongAnswer"`
	GameStart     string `json:"gameStart"`
	CorrectAnswer string `json:"correctAnswer"`
	RoundEnd      string `json:"roundEnd"`
}

// GameSettings are the operator-editable show settings, preserved
// across game resets.
type GameSettings struct {
	Title  string        `json:"title"`
	Sounds SoundSettings `json:"sounds"`
}

func defaultSettings() GameSettings {
	return GameSettings{
		Title: "Family Feud",
		Sounds: SoundSettings{
			WrongAnswer:   "https://app1.sharemyimage.com/2025/06/26/sestrike.mp4",
			GameStart:     "https://app1.sharemyimage.com/2025/06/26/Selong.mp4",
			CorrectAnswer: "https://app1.sharemyimage.com/2025/06/26/SECorrect.mp4",
			RoundEnd:      "https://app1.sharemyimage.com/2025/06/26/SEopeningshort.mp4",
		},
	}
}

func seedQuestions() []Question {
	return []Question{
		{
			ID:   1,
			Text: "Name something you might find in a kitchen",
			Answers: []Answer{
				{Text: "Refrigerator", Points: 35},
				{Text: "Stove", Points: 25},
				{Text: "Microwave", Points: 20},
				{Text: "Sink", Points: 15},
				{Text: "Dishes", Points: 5},
			},
		},
		{
			ID:   2,
			Text: "Name a popular pet",
			Answers: []Answer{
				{Text: "Dog", Points: 45},
				{Text: "Cat", Points: 30},
				{Text: "Fish", Points: 15},
				{Text: "Bird", Points: 8},
				{Text: "Hamster", Points: 2},
			},
		},
	}
}

func seedFastMoneyQuestions() []FastMoneyQuestion {
	return []FastMoneyQuestion{
		{
			ID:   1,
			Text: "Name something you find in a bathroom",
			Answers: []FastMoneyAnswer{
				{Text: "Toilet", Points: 30},
				{Text: "Shower", Points: 25},
				{Text: "Mirror", Points: 20},
				{Text: "Sink", Points: 15},
				{Text: "Toothbrush", Points: 10},
			},
		},
		{
			ID:   2,
			Text: "Name a reason you might be late for work",
			Answers: []FastMoneyAnswer{
				{Text: "Traffic", Points: 35},
				{Text: "Overslept", Points: 30},
				{Text: "Car problems", Points: 20},
				{Text: "Weather", Points: 10},
				{Text: "Sick", Points: 5},
			},
		},
		{
			ID:   3,
			Text: "Name something people do at the beach",
			Answers: []FastMoneyAnswer{
				{Text: "Swim", Points: 40},
				{Text: "Sunbathe", Points: 25},
				{Text: "Build sandcastles", Points: 15},
				{Text: "Play volleyball", Points: 12},
				{Text: "Read", Points: 8},
			},
		},
		{
			ID:   4,
			Text: "Name a food that's better the next day",
			Answers: []FastMoneyAnswer{
				{Text: "Pizza", Points: 35},
				{Text: "Chili", Points: 25},
				{Text: "Soup", Points: 20},
				{Text: "Pasta", Points: 15},
				{Text: "Chinese food", Points: 5},
			},
		},
		{
			ID:   5,
			Text: "Name something you might lose",
			Answers: []FastMoneyAnswer{
				{Text: "Keys", Points: 40},
				{Text: "Phone", Points: 30},
				{Text: "Wallet", Points: 20},
				{Text: "Socks", Points: 8},
				{Text: "Mind", Points: 2},
			},
		},
	}
}

// normalizeAnswers drops answers with blank text, sorts the rest by
// points descending, and covers everything back up. This is the single
// mutation point that establishes the descending-order invariant every
// downstream consumer (board, export, scoring) relies on.
func normalizeAnswers(answers []Answer) []Answer {
	out := make([]Answer, 0, len(answers))
	for _, a := range answers {
		if strings.TrimSpace(a.Text) == "" {
			continue
		}
		out = append(out, Answer{Text: a.Text, Points: a.Points})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Points > out[j].Points
	})
	return out
}

func normalizeFastMoneyAnswers(answers []FastMoneyAnswer) []FastMoneyAnswer {
	out := make([]FastMoneyAnswer, 0, len(answers))
	for _, a := range answers {
		if strings.TrimSpace(a.Text) == "" {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Points > out[j].Points
	})
	return out
}

func nextQuestionID(questions []Question) int {
	max := 0
	for _, q := range questions {
		if q.ID > max {
			max = q.ID
		}
	}
	return max + 1
}

func nextFastMoneyID(questions []FastMoneyQuestion) int {
	max := 0
	for _, q := range questions {
		if q.ID > max {
			max = q.ID
		}
	}
	return max + 1
}

// coverQuestions returns a deep copy of questions with every revealed
// flag reset to false.
func coverQuestions(questions []Question) []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		answers := make([]Answer, len(q.Answers))
		for j, a := range q.Answers {
			answers[j] = Answer{Text: a.Text, Points: a.Points}
		}
		out[i] = Question{ID: q.ID, Text: q.Text, Answers: answers}
	}
	return out
}
