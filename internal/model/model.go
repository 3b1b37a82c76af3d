package model

import "encoding/json"

// Roles as issued by the backend token.
const (
	RoleGuest = "GUEST"
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Interview lifecycle states owned by the backend.
const (
	StatusScheduled  = "SCHEDULED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

const (
	DifficultyEasy   = "EASY"
	DifficultyMedium = "MEDIUM"
	DifficultyHard   = "HARD"
)

type LoginResult struct {
	Token string `json:"token"`
}

type UserAccount struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	BirthDate   string   `json:"birthDate"`
	Roles       []string `json:"roles"`
	MemberSince string   `json:"memberSince"`
}

func (u UserAccount) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Username
	}
	return name
}

type Uploader struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type Document struct {
	ID                string    `json:"id"`
	SecondaryFilename string    `json:"secondaryFilename"`
	Filename          string    `json:"filename"`
	CreatedAt         string    `json:"createdAt"`
	UploadedBy        *Uploader `json:"uploadedBy"`
}

// Question is received verbatim from the backend and never mutated
// client-side.
type Question struct {
	ID      string `json:"questionId"`
	Title   string `json:"title"`
	OptionA string `json:"optionA"`
	OptionB string `json:"optionB"`
	OptionC string `json:"optionC"`
	OptionD string `json:"optionD"`
}

func (q Question) Options() map[string]string {
	return map[string]string{
		"A": q.OptionA,
		"B": q.OptionB,
		"C": q.OptionC,
		"D": q.OptionD,
	}
}

// AnswerResult is the backend's grading response for one submitted
// answer. Older backend builds report the verdict as "correct" instead
// of "isCorrect"; decoding normalizes to one field, first present wins.
type AnswerResult struct {
	Correct       bool
	CorrectAnswer string
	Explanation   string
	Progress      int
}

func (r *AnswerResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		IsCorrect     *bool  `json:"isCorrect"`
		Correct       *bool  `json:"correct"`
		CorrectAnswer string `json:"correctAnswer"`
		Explanation   string `json:"explanation"`
		Progress      int    `json:"currentProgress"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.IsCorrect != nil:
		r.Correct = *raw.IsCorrect
	case raw.Correct != nil:
		r.Correct = *raw.Correct
	default:
		r.Correct = false
	}

	r.CorrectAnswer = raw.CorrectAnswer
	r.Explanation = raw.Explanation
	r.Progress = raw.Progress

	return nil
}

// AnsweredQuestion merges a question snapshot with the grading response
// for it. Assembled client-side, one per submitted answer.
type AnsweredQuestion struct {
	Question        Question
	SubmittedAnswer string
	Correct         bool
	CorrectAnswer   string
	Explanation     string
}

type Interview struct {
	ID               string `json:"interviewId"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Difficulty       string `json:"difficulty"`
	Status           string `json:"status"`
	CreatedBy        string `json:"createdBy"`
	AssignedToUserID string `json:"assignedToUserId"`
	ScheduledDate    string `json:"scheduledDate"`

	// Populated on the history listing only.
	DocumentTitle     string            `json:"documentTitle,omitempty"`
	DurationInSeconds *int64            `json:"durationInSeconds,omitempty"`
	CandidateReview   string            `json:"candidateReview,omitempty"`
	Questions         []HistoryQuestion `json:"questions,omitempty"`
}

// HistoryQuestion is a graded question as stored by the backend,
// returned on the interview history listing.
type HistoryQuestion struct {
	QuestionText       string  `json:"questionText"`
	OptionA            string  `json:"optionA"`
	OptionB            string  `json:"optionB"`
	OptionC            string  `json:"optionC"`
	OptionD            string  `json:"optionD"`
	SubmittedAnswer    *string `json:"submittedAnswer"`
	IsCorrect          *bool   `json:"isCorrect"`
	CorrectOption      string  `json:"correctOption"`
	AnswerTimeInMillis *int64  `json:"answerTimeInMillis"`
}

// PerformanceStats summarizes the graded questions of one interview.
type PerformanceStats struct {
	Total       int
	Answered    int
	Correct     int
	Accuracy    float64
	AvgTimeSecs float64
}

func CalculateStats(questions []HistoryQuestion) PerformanceStats {
	stats := PerformanceStats{Total: len(questions)}

	var timeTotal, timeCount int64
	for _, q := range questions {
		if q.SubmittedAnswer != nil {
			stats.Answered++
		}
		if q.IsCorrect != nil && *q.IsCorrect {
			stats.Correct++
		}
		if q.AnswerTimeInMillis != nil {
			timeTotal += *q.AnswerTimeInMillis
			timeCount++
		}
	}

	if stats.Answered > 0 {
		stats.Accuracy = float64(stats.Correct) / float64(stats.Answered) * 100
	}
	if timeCount > 0 {
		stats.AvgTimeSecs = float64(timeTotal) / float64(timeCount) / 1000
	}

	return stats
}
