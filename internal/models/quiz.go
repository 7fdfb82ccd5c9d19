package models

// QuizQuestion is one multiple-choice question in a generated quiz.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Topic         string   `json:"topic"`
	Explanation   string   `json:"explanation"`
}
