package models

// TopicPerformance is the per-topic slice of the analytics rollup.
type TopicPerformance struct {
	TopicID            uint   `json:"topic_id"`
	TopicName          string `json:"topic_name"`
	QuestionsAttempted int    `json:"questions_attempted"`
	QuestionsCorrect   int    `json:"questions_correct"`
	Accuracy           int    `json:"accuracy"`              // percent, rounded half up
	AvgTimePerQuestion int    `json:"avg_time_per_question"` // seconds, rounded half up
}

// AnalyticsSummary totals the progress rows across every topic.
type AnalyticsSummary struct {
	QuestionsAttempted int `json:"questions_attempted"`
	QuestionsCorrect   int `json:"questions_correct"`
	Accuracy           int `json:"accuracy"`
	TotalTimeSpent     int `json:"total_time_spent"` // seconds
	HoursSpent         int `json:"hours_spent"`
}
