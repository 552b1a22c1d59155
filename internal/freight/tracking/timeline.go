package tracking

import (
	"time"

	"github.com/cargodesk/cargodesk/internal/listview"
)

// Stage names a milestone.
type Stage string

const (
	StageBooked    Stage = "BOOKED"
	StageDeparted  Stage = "DEPARTED"
	StageArrived   Stage = "ARRIVED"
	StageDelivered Stage = "DELIVERED"
)

// State of a milestone relative to today.
type State string

const (
	StateDone    State = "done"
	StateCurrent State = "current"
	StatePending State = "pending"
)

// Milestone is one step of the shipment journey. Estimated is set when Date
// comes from a schedule rather than a reported event.
type Milestone struct {
	Stage     Stage      `json:"stage"`
	Date      *time.Time `json:"date,omitempty"`
	Estimated bool       `json:"estimated"`
	State     State      `json:"state"`
}

// Timeline is the milestone view of a shipment.
type Timeline struct {
	Stage      Stage       `json:"stage"`
	Progress   int         `json:"progress"`
	Milestones []Milestone `json:"milestones"`
}

// Timeline derives milestone states as of today. Departure and arrival count
// as done once reported, or once their estimate is a day already passed.
// A later done milestone implies every earlier one.
func (s Shipment) Timeline(today time.Time) Timeline {
	day := today.Format(listview.DateLayout)
	booked := s.BookingDate

	steps := []Milestone{
		{Stage: StageBooked, Date: &booked},
		step(StageDeparted, s.ATD, s.ETD),
		step(StageArrived, s.ATA, s.ETA),
		step(StageDelivered, s.DeliveredAt, nil),
	}
	done := make([]bool, len(steps))
	done[0] = true
	done[1] = s.ATD != nil || passed(s.ETD, day)
	done[2] = s.ATA != nil || passed(s.ETA, day)
	done[3] = s.DeliveredAt != nil

	last := 0
	for i, d := range done {
		if d {
			last = i
		}
	}
	for i := range steps {
		switch {
		case i <= last:
			steps[i].State = StateDone
		case i == last+1:
			steps[i].State = StateCurrent
		default:
			steps[i].State = StatePending
		}
	}
	return Timeline{
		Stage:      steps[last].Stage,
		Progress:   (last + 1) * 100 / len(steps),
		Milestones: steps,
	}
}

func step(stage Stage, actual, estimate *time.Time) Milestone {
	if actual != nil {
		return Milestone{Stage: stage, Date: actual}
	}
	if estimate != nil {
		return Milestone{Stage: stage, Date: estimate, Estimated: true}
	}
	return Milestone{Stage: stage}
}

func passed(estimate *time.Time, today string) bool {
	return estimate != nil && estimate.Format(listview.DateLayout) < today
}
