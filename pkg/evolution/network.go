// Package evolution breeds feed-forward steering networks with a plain genetic algorithm.
package evolution

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrGenomeArity is returned when a network is fed the wrong number of inputs.
	ErrGenomeArity = errors.New("genome arity mismatch")
	// ErrLayout is returned for a network layout that cannot be built.
	ErrLayout = errors.New("invalid network layout")
)

// Network is a fully connected feed-forward network with tanh activations.
// Layer i maps sizes[i] activations to sizes[i+1]. It is not safe for concurrent use.
type Network struct {
	sizes   []int
	weights []*mat.Dense    // sizes[i+1] x sizes[i]
	biases  []*mat.VecDense // sizes[i+1]
	acts    []*mat.VecDense // scratch, acts[0] is the input
}

// NewNetwork builds a network with weights drawn uniformly from [-1, 1].
func NewNetwork(sizes []int, r *rand.Rand) (*Network, error) {
	n, err := newZeroNetwork(sizes)
	if err != nil {
		return nil, err
	}
	for _, p := range n.params() {
		for i := range p {
			p[i] = r.Float64()*2 - 1
		}
	}
	return n, nil
}

func newZeroNetwork(sizes []int) (*Network, error) {
	if len(sizes) < 2 {
		return nil, fmt.Errorf("%w: need at least an input and an output layer, got %v", ErrLayout, sizes)
	}
	for _, s := range sizes {
		if s < 1 {
			return nil, fmt.Errorf("%w: layer sizes must be positive, got %v", ErrLayout, sizes)
		}
	}
	n := &Network{
		sizes: append([]int(nil), sizes...),
		acts:  make([]*mat.VecDense, len(sizes)),
	}
	n.acts[0] = mat.NewVecDense(sizes[0], nil)
	for i := 1; i < len(sizes); i++ {
		n.weights = append(n.weights, mat.NewDense(sizes[i], sizes[i-1], nil))
		n.biases = append(n.biases, mat.NewVecDense(sizes[i], nil))
		n.acts[i] = mat.NewVecDense(sizes[i], nil)
	}
	return n, nil
}

// Layout returns a copy of the layer sizes.
func (n *Network) Layout() []int { return append([]int(nil), n.sizes...) }

func (n *Network) Inputs() int  { return n.sizes[0] }
func (n *Network) Outputs() int { return n.sizes[len(n.sizes)-1] }

// Params is the number of weights and biases.
func (n *Network) Params() int {
	total := 0
	for _, p := range n.params() {
		total += len(p)
	}
	return total
}

// params exposes the backing arrays of every weight matrix and bias vector, in layer order.
func (n *Network) params() [][]float64 {
	out := make([][]float64, 0, 2*len(n.weights))
	for i := range n.weights {
		out = append(out, n.weights[i].RawMatrix().Data, n.biases[i].RawVector().Data)
	}
	return out
}

// Forward runs the network. The returned slice is reused by the next call.
func (n *Network) Forward(inputs []float64) ([]float64, error) {
	if len(inputs) != n.Inputs() {
		return nil, fmt.Errorf("%w: got %d inputs, want %d", ErrGenomeArity, len(inputs), n.Inputs())
	}
	copy(n.acts[0].RawVector().Data, inputs)
	for i, w := range n.weights {
		out := n.acts[i+1]
		out.MulVec(w, n.acts[i])
		out.AddVec(out, n.biases[i])
		data := out.RawVector().Data
		for j, v := range data {
			data[j] = math.Tanh(v)
		}
	}
	return n.acts[len(n.acts)-1].RawVector().Data, nil
}

// Clone deep-copies the network.
func (n *Network) Clone() *Network {
	c, _ := newZeroNetwork(n.sizes)
	dst := c.params()
	for i, p := range n.params() {
		copy(dst[i], p)
	}
	return c
}

// sameLayout reports whether two networks can be crossed over.
func (n *Network) sameLayout(o *Network) bool {
	if len(n.sizes) != len(o.sizes) {
		return false
	}
	for i := range n.sizes {
		if n.sizes[i] != o.sizes[i] {
			return false
		}
	}
	return true
}
