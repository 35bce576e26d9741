package galaxy

// Field owns the recurrence state of a run and produces whole frames.
type Field struct {
	params   Params
	timeStep float64
	state    State
	frame    int
}

// NewField creates a field at the configured initial state.
func NewField(cfg Config) *Field {
	return &Field{params: cfg.Params(), timeStep: cfg.TimeStep, state: cfg.Initial}
}

// State returns the current recurrence state.
func (f *Field) State() State { return f.state }

// FrameIndex returns the number of frames produced so far.
func (f *Field) FrameIndex() int { return f.frame }

// Particles returns the number of samples per frame.
func (f *Field) Particles() int { return f.params.N * f.params.N }

// Frame appends one frame of samples to dst in row-major (i, j) order and
// advances time. The samples are computed strictly in sequence.
func (f *Field) Frame(dst []Sample) []Sample {
	n := f.params.N
	s := f.state
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var sample Sample
			s, sample = Step(s, i, j, f.params)
			dst = append(dst, sample)
		}
	}
	s.T += f.timeStep
	f.state = s
	f.frame++
	return dst
}
