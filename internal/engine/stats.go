package engine

// Stats is the lifetime statistics record accumulated across finished games.
// It is persisted as structured text by the storage layer.
type Stats struct {
	GamesPlayed int `yaml:"games_played"`
	GamesWon    int `yaml:"games_won"`
	TotalScore  int `yaml:"total_score"`
	BestCombo   int `yaml:"best_combo"`
	HighestTile int `yaml:"highest_tile"`
}

// Persister is the engine's only I/O surface: a small key-value contract for
// the high score and stats records. Reads must tolerate absence or corruption
// of saved data by returning zero values; the engine treats every call as
// best-effort and never lets a storage failure disturb game state.
type Persister interface {
	HighScore() (int, error)
	SaveHighScore(score int) error
	Stats() (Stats, error)
	SaveStats(s Stats) error
}
