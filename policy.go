package sigcache

import "time"

// Relative refresh presets. Select one with SetInterval.
const (
	Interval5Minutes  = 5 * time.Minute
	Interval10Minutes = 10 * time.Minute
	Interval30Minutes = 30 * time.Minute
	Interval1Hour     = time.Hour
	Interval6Hours    = 6 * time.Hour
	Interval12Hours   = 12 * time.Hour
	Interval24Hours   = 24 * time.Hour

	// DefaultInterval is the refresh window used when no interval or policy
	// option is given.
	DefaultInterval = Interval24Hours
)

// Policy decides the next instant at which a gated write is allowed.
// A Policy is one of three variants: a fixed deadline derived from a
// relative interval, a fixed calendar instant, or a custom function
// evaluated on every check. Deadlines are computed once, when the policy
// is selected, and held fixed until the policy is replaced.
type Policy struct {
	deadline time.Time
	interval time.Duration // non-zero when deadline came from a relative interval
	fn       func() time.Time
}

// After returns a policy allowing the next write at now+d.
// The deadline is fixed at selection time, not re-derived per check.
func After(now time.Time, d time.Duration) Policy {
	return Policy{deadline: now.Add(d), interval: d}
}

// At returns a policy allowing the next write at the fixed instant t.
func At(t time.Time) Policy {
	return Policy{deadline: t}
}

// Func returns a policy that defers to fn on every check.
// The function is stored verbatim.
func Func(fn func() time.Time) Policy {
	return Policy{fn: fn}
}

// NextAllowed returns the next instant a write is permitted.
func (p Policy) NextAllowed() time.Time {
	if p.fn != nil {
		return p.fn()
	}
	return p.deadline
}

// Interval returns the relative interval the policy was built from,
// or zero for calendar and custom policies.
func (p Policy) Interval() time.Duration {
	return p.interval
}

// nextDayAt8 returns tomorrow at 08:00 in now's location.
func nextDayAt8(now time.Time) time.Time {
	d := now.AddDate(0, 0, 1)
	return time.Date(d.Year(), d.Month(), d.Day(), 8, 0, 0, 0, d.Location())
}

// nextMonday returns the coming Monday at 00:00. When now is already a
// Monday this resolves to today at midnight, which is in the past and
// therefore leaves writes ungated for the rest of the day.
func nextMonday(now time.Time) time.Time {
	// Monday-based weekday: Monday=0 .. Sunday=6
	w := (int(now.Weekday()) + 6) % 7
	d := now.AddDate(0, 0, (7-w)%7)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// firstOfNextMonth returns the first day of the following month at 00:00.
func firstOfNextMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
}

// firstOfNextYear returns January 1st of the following year at 00:00.
func firstOfNextYear(now time.Time) time.Time {
	return time.Date(now.Year()+1, 1, 1, 0, 0, 0, 0, now.Location())
}
