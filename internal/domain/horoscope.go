package domain

import "time"

// DailyHoroscope is the templated reading for one sign on one date.
type DailyHoroscope struct {
	Sign         ZodiacSign `json:"sign"`
	Date         time.Time  `json:"date"`
	Summary      string     `json:"summary"`
	General      string     `json:"general"`
	Love         string     `json:"love"`
	Career       string     `json:"career"`
	Health       string     `json:"health"`
	Advice       string     `json:"advice"`
	EnergyLevel  int        `json:"energy_level"`
	KeyThemes    []string   `json:"key_themes"`
	LuckyNumbers []int      `json:"lucky_numbers"`
	LuckyColors  []string   `json:"lucky_colors"`
	Moon         MoonState  `json:"moon"`
}
