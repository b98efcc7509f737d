package sim

// PopulationSeries holds S, I and R over time as parallel slices.
// Time[i] is the timestep (stochastic averages) or continuous time
// (deterministic curves) of row i.
type PopulationSeries struct {
	Time         []float64
	Susceptibles []float64
	Infectives   []float64
	Removed      []float64
}

// Len returns the number of rows.
func (s PopulationSeries) Len() int { return len(s.Time) }

func newPopulationSeries(rows int) PopulationSeries {
	return PopulationSeries{
		Time:         make([]float64, rows),
		Susceptibles: make([]float64, rows),
		Infectives:   make([]float64, rows),
		Removed:      make([]float64, rows),
	}
}

// TrajectoryAccumulator sums run trajectories per timestep.
// Runs that absorb before the horizon hold their final frame for the
// remaining timesteps.
type TrajectoryAccumulator struct {
	sums []Frame
	runs int
}

// NewTrajectoryAccumulator covers timesteps 0..horizon.
func NewTrajectoryAccumulator(horizon int) *TrajectoryAccumulator {
	return &TrajectoryAccumulator{sums: make([]Frame, horizon+1)}
}

// Add folds one run's frames into the sums. Frames beyond the horizon are ignored.
func (a *TrajectoryAccumulator) Add(frames []Frame) {
	if len(frames) == 0 {
		return
	}
	last := frames[len(frames)-1]
	for t := range a.sums {
		f := last
		if t < len(frames) {
			f = frames[t]
		}
		a.sums[t].Susceptibles += f.Susceptibles
		a.sums[t].Infectives += f.Infectives
		a.sums[t].Removed += f.Removed
	}
	a.runs++
}

// Runs returns the number of runs added.
func (a *TrajectoryAccumulator) Runs() int { return a.runs }

// Mean returns the per-timestep average over all runs added.
func (a *TrajectoryAccumulator) Mean() PopulationSeries {
	out := newPopulationSeries(len(a.sums))
	for t, sum := range a.sums {
		out.Time[t] = float64(t)
		if a.runs == 0 {
			continue
		}
		out.Susceptibles[t] = float64(sum.Susceptibles) / float64(a.runs)
		out.Infectives[t] = float64(sum.Infectives) / float64(a.runs)
		out.Removed[t] = float64(sum.Removed) / float64(a.runs)
	}
	return out
}
