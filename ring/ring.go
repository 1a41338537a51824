// Package ring provides modular integer, vector, matrix and negacyclic
// polynomial arithmetic over a prime modulus q. Every result leaving this
// package is normalized into [0, q); no negative remainders escape.
package ring

// Mod returns x mod q, ensuring the result is always non-negative in [0, q).
func Mod(x int64, q int) int32 {
	r := x % int64(q)
	if r < 0 {
		r += int64(q)
	}
	return int32(r)
}

// CenterMod returns x mod q centered in (-q/2, q/2]. Used for decoding where
// the error term is small and centered around 0.
func CenterMod(x int32, q int) int32 {
	r := Mod(int64(x), q)
	if int(r) > q/2 {
		return r - int32(q)
	}
	return r
}

// MatVecMul computes the matrix-vector product A * v mod q.
// A is a rows x cols matrix stored in row-major order; v has cols entries.
func MatVecMul(A, v []int32, rows, cols, q int) []int32 {
	result := make([]int32, rows)
	for i := 0; i < rows; i++ {
		var sum int64
		rowOffset := i * cols
		for j := 0; j < cols; j++ {
			sum += int64(A[rowOffset+j]) * int64(v[j])
		}
		result[i] = Mod(sum, q)
	}
	return result
}

// MatTVecMul computes the transpose product A^T * v mod q.
// A is a rows x cols matrix in row-major order; v has rows entries; the
// result has cols entries.
func MatTVecMul(A, v []int32, rows, cols, q int) []int32 {
	acc := make([]int64, cols)
	for i := 0; i < rows; i++ {
		vi := int64(v[i])
		if vi == 0 {
			continue
		}
		rowOffset := i * cols
		for j := 0; j < cols; j++ {
			acc[j] += int64(A[rowOffset+j]) * vi
		}
	}
	result := make([]int32, cols)
	for j := 0; j < cols; j++ {
		result[j] = Mod(acc[j], q)
	}
	return result
}

// VecAdd adds two vectors element-wise modulo q.
func VecAdd(a, b []int32, q int) []int32 {
	result := make([]int32, len(a))
	for i := range a {
		result[i] = Mod(int64(a[i])+int64(b[i]), q)
	}
	return result
}

// VecSub subtracts two vectors element-wise modulo q.
func VecSub(a, b []int32, q int) []int32 {
	result := make([]int32, len(a))
	for i := range a {
		result[i] = Mod(int64(a[i])-int64(b[i]), q)
	}
	return result
}

// InnerProduct computes the dot product of two vectors modulo q.
func InnerProduct(a, b []int32, q int) int32 {
	var sum int64
	for i := range a {
		sum += int64(a[i]) * int64(b[i])
	}
	return Mod(sum, q)
}

// PolyMul multiplies two degree-(n-1) polynomials in the negacyclic ring
// Z_q[x]/(x^n+1) by schoolbook convolution. A product landing on wraparound
// index (i+j) mod n with i+j >= n picks up a sign flip.
func PolyMul(a, b []int32, q int) []int32 {
	n := len(a)
	acc := make([]int64, n)
	for i := 0; i < n; i++ {
		ai := int64(a[i])
		if ai == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			bj := int64(b[j])
			if bj == 0 {
				continue
			}
			k := i + j
			if k >= n {
				acc[k-n] -= ai * bj
			} else {
				acc[k] += ai * bj
			}
		}
	}
	result := make([]int32, n)
	for k := 0; k < n; k++ {
		result[k] = Mod(acc[k], q)
	}
	return result
}
