package record

import "time"

// Habit is one tracked recurring habit.
type Habit struct {
	Name      string    `json:"name"`
	Schedule  string    `json:"schedule,omitempty"`
	Streak    int       `json:"streak,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// FocusSession is one completed deep-work session.
type FocusSession struct {
	Date        string    `json:"date"`
	Task        string    `json:"task,omitempty"`
	Minutes     int       `json:"minutes"`
	CompletedAt time.Time `json:"completedAt,omitempty"`
}

// Workout is one logged workout.
type Workout struct {
	Date      string `json:"date"`
	Type      string `json:"type,omitempty"`
	Minutes   int    `json:"minutes,omitempty"`
	Completed bool   `json:"completed"`
}

// JournalEntry is one free-form journal entry with tagged metadata.
type JournalEntry struct {
	Date       string    `json:"date"`
	Text       string    `json:"text"`
	Mood       float64   `json:"mood,omitempty"`
	Energy     float64   `json:"energy,omitempty"`
	Categories []string  `json:"categories,omitempty"`
	People     []string  `json:"people,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}

// Transaction is one finance ledger entry.
type Transaction struct {
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category,omitempty"`
	Note     string  `json:"note,omitempty"`
}

// Recurring is one recurring finance commitment.
type Recurring struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Interval string  `json:"interval,omitempty"`
}

// Finance groups transactions with recurring and budget metadata.
type Finance struct {
	Transactions []Transaction      `json:"transactions,omitempty"`
	Recurring    []Recurring        `json:"recurring,omitempty"`
	Budgets      map[string]float64 `json:"budgets,omitempty"`
}

// NutritionEntry is one logged meal.
type NutritionEntry struct {
	Date     string `json:"date"`
	Meal     string `json:"meal,omitempty"`
	Calories int    `json:"calories,omitempty"`
}
