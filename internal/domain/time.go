package domain

import "fmt"

// Season indexes into the four-season in-game year.
type Season int

// Seasons in calendar order.
const (
	SeasonSpring Season = iota
	SeasonSummer
	SeasonAutumn
	SeasonWinter

	SeasonsPerYear = 4
)

// MinutesPerDay is the number of game-minutes in one in-game day.
const MinutesPerDay = 24 * 60

var seasonNames = [SeasonsPerYear]string{"Spring", "Summer", "Autumn", "Winter"}

// String returns the display name of the season.
func (s Season) String() string {
	if s < 0 || int(s) >= SeasonsPerYear {
		return fmt.Sprintf("Season(%d)", int(s))
	}
	return seasonNames[s]
}

// Valid reports whether the season index is in range.
func (s Season) Valid() bool {
	return s >= 0 && int(s) < SeasonsPerYear
}

// GameTime is a fully derived view of the in-game clock. TotalMinutes is the
// single source of truth; every other field is a pure function of it plus the
// calendar configuration. Nothing outside the clock stores these fields.
type GameTime struct {
	TotalMinutes int64  `json:"total_minutes"`
	Day          int    `json:"day"`
	Season       Season `json:"season"`
	Year         int    `json:"year"`
	Hour         int    `json:"hour"`
	Minute       int    `json:"minute"`
}

// Stamp returns the calendar date portion of the time.
func (t GameTime) Stamp() CalendarStamp {
	return CalendarStamp{Day: t.Day, Season: t.Season, Year: t.Year}
}

// String renders the time as "Day 3 of Summer, Year 2, 08:15".
func (t GameTime) String() string {
	return fmt.Sprintf("Day %d of %s, Year %d, %02d:%02d", t.Day, t.Season, t.Year, t.Hour, t.Minute)
}

// CalendarStamp is a calendar date without a time of day. Plant instances
// capture one at planting and at each harvest; it is stored verbatim across
// save/load, never re-derived.
type CalendarStamp struct {
	Day    int    `json:"day"`
	Season Season `json:"season"`
	Year   int    `json:"year"`
}

// String renders the stamp as "Day 3 of Summer, Year 2".
func (c CalendarStamp) String() string {
	return fmt.Sprintf("Day %d of %s, Year %d", c.Day, c.Season, c.Year)
}
