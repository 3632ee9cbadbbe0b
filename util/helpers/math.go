package helpers

import "golang.org/x/exp/constraints"

func Min[T constraints.Ordered](numbers ...T) T {
	var min T = numbers[0]
	for _, n := range numbers {
		if n < min {
			min = n
		}
	}
	return min
}

// CeilDiv returns ceil(a / b) for non-negative a and positive b.
func CeilDiv[T constraints.Integer](a, b T) T {
	if a == 0 {
		return 0
	}
	return (a-1)/b + 1
}

// GetBit reports whether bit i (0 = least significant) of b is set.
func GetBit(b uint8, i int) bool {
	return b&(1<<uint(i)) != 0
}

func SetBit(b *uint8, i int, v bool) {
	if v {
		*b |= 1 << uint(i)
	} else {
		*b &^= 1 << uint(i)
	}
}
