package health

// Urgency orders reminders; higher is more pressing.
type Urgency int

const (
	UrgencyRoutine Urgency = iota
	UrgencySoon
	UrgencyUrgent
)

func (u Urgency) String() string {
	switch u {
	case UrgencyUrgent:
		return "urgent"
	case UrgencySoon:
		return "soon"
	default:
		return "routine"
	}
}

// Reminder is a single due care task for a plant.
type Reminder struct {
	Plant   string
	Kind    string // "water" or "fertilize"
	Urgency Urgency
	Message string
}

// DueReminders returns the care tasks that are due today for plant.
// A task is due once its days-until value reaches zero; the concern raises
// its urgency.
func DueReminders(plant string, m Metrics) []Reminder {
	var out []Reminder

	if m.DaysUntilWaterNeeded == 0 {
		u := UrgencyRoutine
		switch m.PrimaryConcern {
		case ConcernWaterUrgent:
			u = UrgencyUrgent
		case ConcernWaterSoon:
			u = UrgencySoon
		}
		out = append(out, Reminder{
			Plant:   plant,
			Kind:    "water",
			Urgency: u,
			Message: "Time to water " + plant,
		})
	}

	if m.DaysUntilFertilizerNeeded == 0 {
		u := UrgencyRoutine
		switch m.PrimaryConcern {
		case ConcernFertilizer:
			u = UrgencyUrgent
		case ConcernFertilizeSoon:
			u = UrgencySoon
		}
		out = append(out, Reminder{
			Plant:   plant,
			Kind:    "fertilize",
			Urgency: u,
			Message: "Time to fertilize " + plant,
		})
	}

	return out
}
