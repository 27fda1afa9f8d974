package optim

// SGD is stochastic gradient descent with optional classical momentum.
// Velocity is kept per parameter slice, keyed by the slice's first element, so
// the same slices must be passed on every step.
type SGD struct {
	LearningRate float64
	Momentum     float64
	velocity     map[*float64][]float64
}

func NewSGD(lr float64) *SGD { return &SGD{LearningRate: lr} }

// NewMomentumSGD returns an SGD that accumulates velocity with coefficient mu.
func NewMomentumSGD(lr, mu float64) *SGD { return &SGD{LearningRate: lr, Momentum: mu} }

// Step updates weights in place from grads.
func (o *SGD) Step(weights, grads []float64) {
	if len(weights) == 0 {
		return
	}
	if o.Momentum == 0 {
		for i := range weights {
			weights[i] -= o.LearningRate * grads[i]
		}
		return
	}
	if o.velocity == nil {
		o.velocity = make(map[*float64][]float64)
	}
	key := &weights[0]
	v, ok := o.velocity[key]
	if !ok {
		v = make([]float64, len(weights))
		o.velocity[key] = v
	}
	for i := range weights {
		v[i] = o.Momentum*v[i] - o.LearningRate*grads[i]
		weights[i] += v[i]
	}
}
