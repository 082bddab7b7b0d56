package clock

import "github.com/greenhollow/almanac/internal/domain"

// Calendar derivation. Every field of a GameTime is a pure function of the
// minute counter plus the calendar config; nothing here mutates state.

// TimeFromMinutes derives the full calendar view for a minute counter.
func (c Config) TimeFromMinutes(totalMinutes int64) domain.GameTime {
	if totalMinutes < 0 {
		totalMinutes = 0
	}

	dayIndex := totalMinutes / domain.MinutesPerDay
	minuteOfDay := totalMinutes % domain.MinutesPerDay

	seasonTotal := int64(c.StartingSeason) + dayIndex/int64(c.SeasonLengthDays)

	return domain.GameTime{
		TotalMinutes: totalMinutes,
		Day:          int(dayIndex%int64(c.SeasonLengthDays)) + 1,
		Season:       domain.Season(seasonTotal % domain.SeasonsPerYear),
		Year:         c.StartingYear + int(seasonTotal/domain.SeasonsPerYear),
		Hour:         int(minuteOfDay / 60),
		Minute:       int(minuteOfDay % 60),
	}
}

// MinutesFromTime reconstructs the minute counter from derived calendar
// fields. For any totalMinutes >= 0, MinutesFromTime(TimeFromMinutes(m)) == m.
func (c Config) MinutesFromTime(t domain.GameTime) int64 {
	return c.AbsoluteDay(t.Stamp())*domain.MinutesPerDay + int64(t.Hour)*60 + int64(t.Minute)
}

// AbsoluteDay converts a calendar stamp to the zero-based count of days since
// the clock epoch. Used for day-granular bookkeeping such as water decay.
func (c Config) AbsoluteDay(stamp domain.CalendarStamp) int64 {
	seasonTotal := int64(stamp.Year-c.StartingYear)*domain.SeasonsPerYear +
		int64(stamp.Season) - int64(c.StartingSeason)
	return seasonTotal*int64(c.SeasonLengthDays) + int64(stamp.Day) - 1
}
