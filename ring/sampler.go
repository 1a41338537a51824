package ring

import (
	"math"

	"github.com/qsafelabs/pqcrypt-go/utils"
)

// Sampler draws uniform, small-magnitude and discrete-Gaussian integers from
// an injected CSPRNG. A Sampler holds no mutable state of its own; it is as
// safe for concurrent use as the CSPRNG behind it.
type Sampler struct {
	rng utils.CSPRNG
}

// NewSampler creates a sampler over the given randomness source. A nil rng
// falls back to the system CSPRNG.
func NewSampler(rng utils.CSPRNG) *Sampler {
	if rng == nil {
		rng = utils.NewSystemRNG()
	}
	return &Sampler{rng: rng}
}

// UniformInt draws a uniform integer in [0, q).
func (s *Sampler) UniformInt(q int) (int32, error) {
	v, err := s.rng.RandomInt(0, q)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// UniformVector draws n uniform integers in [0, q). n is capped at
// MaxVectorLength to bound allocations driven by decoded parameters.
func (s *Sampler) UniformVector(n, q int) ([]int32, error) {
	if err := utils.CheckLength(n, utils.MaxVectorLength); err != nil {
		return nil, err
	}
	result := make([]int32, n)
	for i := 0; i < n; i++ {
		v, err := s.rng.RandomInt(0, q)
		if err != nil {
			return nil, err
		}
		result[i] = int32(v)
	}
	return result, nil
}

// UniformMatrix draws a rows x cols matrix of uniform integers in [0, q),
// stored in row-major order. The element count is capped at
// MaxMatrixElements.
func (s *Sampler) UniformMatrix(rows, cols, q int) ([]int32, error) {
	size, err := utils.SafeMultiply(rows, cols)
	if err != nil {
		return nil, err
	}
	if err := utils.CheckLength(size, utils.MaxMatrixElements); err != nil {
		return nil, err
	}
	result := make([]int32, size)
	for i := 0; i < size; i++ {
		v, err := s.rng.RandomInt(0, q)
		if err != nil {
			return nil, err
		}
		result[i] = int32(v)
	}
	return result, nil
}

// SmallInt draws a uniform integer in [-bound, bound]. Used for secret and
// error coefficients.
func (s *Sampler) SmallInt(bound int) (int32, error) {
	v, err := s.rng.RandomInt(-bound, bound+1)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// SmallVector draws n uniform integers in [-bound, bound].
func (s *Sampler) SmallVector(n, bound int) ([]int32, error) {
	result := make([]int32, n)
	for i := 0; i < n; i++ {
		v, err := s.SmallInt(bound)
		if err != nil {
			return nil, err
		}
		result[i] = v
	}
	return result, nil
}

// BinaryVector draws n uniform bits as a {0,1} vector.
func (s *Sampler) BinaryVector(n int) ([]int32, error) {
	result := make([]int32, n)
	for i := 0; i < n; i++ {
		v, err := s.rng.RandomInt(0, 2)
		if err != nil {
			return nil, err
		}
		result[i] = int32(v)
	}
	return result, nil
}

// DiscreteGaussian draws one integer from a discrete Gaussian of standard
// deviation sigma, approximated by the Box-Muller transform rounded to the
// nearest integer.
func (s *Sampler) DiscreteGaussian(sigma float64) (int32, error) {
	u1, err := s.rng.RandomFloat()
	if err != nil {
		return 0, err
	}
	u2, err := s.rng.RandomFloat()
	if err != nil {
		return 0, err
	}
	// Map u1 from [0,1) to (0,1] so the logarithm is finite.
	z := math.Sqrt(-2*math.Log(1-u1)) * math.Cos(2*math.Pi*u2)
	return int32(math.Round(z * sigma)), nil
}

// GaussianVector draws n discrete-Gaussian integers of standard deviation
// sigma.
func (s *Sampler) GaussianVector(n int, sigma float64) ([]int32, error) {
	result := make([]int32, n)
	for i := 0; i < n; i++ {
		v, err := s.DiscreteGaussian(sigma)
		if err != nil {
			return nil, err
		}
		result[i] = v
	}
	return result, nil
}
