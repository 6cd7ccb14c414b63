package plan

// Tier selects the motivational message for a completion percentage.
type Tier int

const (
	TierStart Tier = iota
	TierEarly
	TierMidpoint
	TierComplete
)

var tierMessages = map[Tier]string{
	TierStart:    "Vamos começar! O primeiro treino da semana está te esperando.",
	TierEarly:    "Bom começo! Continue assim.",
	TierMidpoint: "Mais da metade concluída, falta pouco!",
	TierComplete: "Semana completa! Parabéns pela dedicação.",
}

func (t Tier) Message() string {
	return tierMessages[t]
}

func (t Tier) String() string {
	switch t {
	case TierEarly:
		return "early"
	case TierMidpoint:
		return "midpoint"
	case TierComplete:
		return "complete"
	default:
		return "start"
	}
}

// Progress is the weekly completion summary.
type Progress struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
	Tier      Tier    `json:"-"`
	Message   string  `json:"message"`
}

// TierFor applies the threshold ladder: 0, (0,50), [50,100), 100.
func TierFor(percent float64) Tier {
	switch {
	case percent <= 0:
		return TierStart
	case percent < 50:
		return TierEarly
	case percent < 100:
		return TierMidpoint
	default:
		return TierComplete
	}
}

// ComputeProgress counts titled entries and how many of them are in t.
func ComputeProgress(c Catalog, t Tracker) Progress {
	var completed, total int
	for _, entry := range c.entries {
		if entry.IsRestDay() {
			continue
		}
		total++
		if t.Has(entry.ID) {
			completed++
		}
	}

	var percent float64
	if total > 0 {
		percent = 100 * float64(completed) / float64(total)
	}

	tier := TierFor(percent)
	return Progress{
		Completed: completed,
		Total:     total,
		Percent:   percent,
		Tier:      tier,
		Message:   tier.Message(),
	}
}
